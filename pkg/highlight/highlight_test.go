package highlight

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestHighlight(t *testing.T) {
	h := New(DefaultTheme)

	t.Run("known language", func(t *testing.T) {
		out, lang := h.Highlight("func main() {}\n", "go")
		assert.Equal(t, "go", lang)
		assert.Contains(t, out, `class="kd"`)
		assert.NotContains(t, out, "<pre")
	})

	t.Run("unknown language is escaped", func(t *testing.T) {
		out, lang := h.Highlight("<b>&</b>", "no-such-language")
		assert.Equal(t, Plain, lang)
		assert.Equal(t, "&lt;b&gt;&amp;&lt;/b&gt;", out)
	})

	t.Run("no language", func(t *testing.T) {
		_, lang := h.Highlight("x", "")
		assert.Equal(t, Plain, lang)
	})

	t.Run("markup is escaped", func(t *testing.T) {
		out, _ := h.Highlight(`x := "<b>"`, "go")
		assert.NotContains(t, out, "<b>")
	})
}

func TestWriteCSS(t *testing.T) {
	var sb strings.Builder
	require.NoError(t, New("no-such-theme").WriteCSS(&sb))
	assert.Contains(t, sb.String(), ".chroma")
}
