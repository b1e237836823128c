package lexer

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestHTMLEscape(t *testing.T) {
	t.Run("encode", func(t *testing.T) {
		assert.Equal(t, "&amp;amp; &lt;b&gt; &quot;q&quot; &#39;", HTMLEscape(`&amp; <b> "q" '`, true))
	})

	t.Run("keeps entities", func(t *testing.T) {
		assert.Equal(t, "&amp; &copy; &#169; &#xA9; &lt;", HTMLEscape("& &copy; &#169; &#xA9; <", false))
	})

	t.Run("idempotent", func(t *testing.T) {
		for _, s := range []string{`<a href="x">&amp; & 'q'</a>`, "plain", "&&;"} {
			once := HTMLEscape(s, false)
			assert.Equal(t, once, HTMLEscape(once, false), s)
		}
	})
}

func TestNormalizeLabel(t *testing.T) {
	assert.Equal(t, "foo bar", NormalizeLabel("Foo\n  BAR"))
	assert.Equal(t, NormalizeLabel("STRASSE"), NormalizeLabel("strasse"))
}

func TestNormalizeNewlines(t *testing.T) {
	assert.Equal(t, "a\nb\nc\n", NormalizeNewlines("a\r\nb\rc\n"))
	assert.Equal(t, "unchanged\n", NormalizeNewlines("unchanged\n"))
}

func TestSplitCells(t *testing.T) {
	assert.Equal(t, []string{"a", "b"}, splitCells("| a | b |", 0))
	assert.Equal(t, []string{"a", "b", ""}, splitCells("a | b", 3))
	assert.Equal(t, []string{"a"}, splitCells("| a | b |", 1))
	assert.Equal(t, []string{`a \\`, "b"}, splitCells(`a \\| b`, 0))
}
