package mdpreview

import (
	"strings"
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// noHighlight escapes nothing and keeps the requested language.
type noHighlight struct{}

func (noHighlight) Highlight(code, lang string) (string, string) {
	if lang == "" {
		return code, "plaintext"
	}
	return code, lang
}

func convert(t *testing.T, src string, opts ...Option) Result {
	t.Helper()
	opts = append([]Option{WithHighlighter(noHighlight{})}, opts...)
	res, err := New(opts...).Parse(src)
	require.NoError(t, err)
	return res
}

func TestParse(t *testing.T) {
	cases := []struct {
		name string
		src  string
		want string
	}{
		{
			"heading and paragraph",
			"# Hello\n\nSome *text*.\n",
			`<h1 style="position: relative;" line-start="1" line-end="1"><span style="position: absolute; top: -50px;" id="hello"></span>Hello<a class="anchor octicon-link" href="#hello"></a></h1>` + "\n" +
				`<p line-start="3" line-end="3">Some <em>text</em>.</p>` + "\n",
		},
		{
			"task list",
			"- [x] done\n- [ ] todo\n",
			`<ul class="contains-task-list" line-start="1" line-end="2">` + "\n" +
				`<li class="task-list-item" line-start="1" line-end="1"><input disabled="" type="checkbox" class="task-list-item-checkbox" checked=""> done</li>` + "\n" +
				`<li class="task-list-item" line-start="2" line-end="2"><input disabled="" type="checkbox" class="task-list-item-checkbox"> todo</li>` + "\n" +
				"</ul>\n",
		},
		{
			"code",
			"```go\nx := 1\n```\n",
			`<pre line-start="1" line-end="3"><code class="hljs language-go">x := 1` + "\n</code></pre>\n",
		},
		{
			"blockquote",
			"> a\n",
			`<blockquote line-start="1" line-end="1">` + "\n<p>a</p>\n</blockquote>\n",
		},
		{
			"table",
			"| a | b |\n|---|:-:|\n| 1 | 2 |\n",
			"<table>\n<thead>\n" +
				`<tr line-start="1" line-end="1">` + "\n<th>a</th>\n" + `<th align="center">b</th>` + "\n</tr>\n</thead>\n" +
				`<tbody><tr line-start="3" line-end="3">` + "\n<td>1</td>\n" + `<td align="center">2</td>` + "\n</tr>\n</tbody></table>\n",
		},
		{
			"thematic break",
			"a\n\n---\n",
			`<p line-start="1" line-end="1">a</p>` + "\n" + `<hr line-start="3" line-end="3">` + "\n",
		},
		{
			"duplicate headings",
			"# A\n# A\n",
			`<h1 style="position: relative;" line-start="1" line-end="1"><span style="position: absolute; top: -50px;" id="a"></span>A<a class="anchor octicon-link" href="#a"></a></h1>` + "\n" +
				`<h1 style="position: relative;" line-start="2" line-end="2"><span style="position: absolute; top: -50px;" id="a-1"></span>A<a class="anchor octicon-link" href="#a-1"></a></h1>` + "\n",
		},
	}
	for _, c := range cases {
		t.Run(c.name, func(t *testing.T) {
			res := convert(t, c.src)
			if diff := cmp.Diff(c.want, res.HTML); diff != "" {
				t.Errorf("Parse(%q) (-want +got):\n%s", c.src, diff)
			}
			assert.Empty(t, res.Script)
		})
	}
}

func TestSlugsResetPerDocument(t *testing.T) {
	c := New(WithHighlighter(noHighlight{}))
	for i := 0; i < 2; i++ {
		res, err := c.Parse("# A\n")
		require.NoError(t, err)
		assert.Contains(t, res.HTML, `id="a"`)
	}
}

func TestImagePrefix(t *testing.T) {
	res := convert(t, "![a](img/x.png)\n\n<img src=\"y.png\">\n", WithImagePrefix("/assets/"))
	assert.Contains(t, res.HTML, `<img src="/assets/img/x.png" alt="a">`)
	assert.Contains(t, res.HTML, `<img src="/assets/y.png"`)
}

func TestDetailsOpen(t *testing.T) {
	src := "<details>\n<summary>x</summary>\n\ntext\n\n</details>\n"

	res := convert(t, src, WithDetailsOpen(true))
	assert.Contains(t, res.HTML, `<details open="" line-start="1" line-end="6">`)

	res = convert(t, src)
	assert.Contains(t, res.HTML, `<details line-start="1" line-end="6">`)
}

func TestFootnotes(t *testing.T) {
	res := convert(t, "Hi[^1]\n\n[^1]: Note\n")
	assert.True(t, strings.HasPrefix(res.HTML,
		`<p line-start="1" line-end="1">Hi<sup><a href="#footnote-1" id="footnote-ref-1" data-footnote-ref>1</a></sup></p>`+"\n"+
			`<section class="footnotes" data-footnotes>`+"\n<ol>\n"+`<li id="footnote-1">`+"\n<p>Note "), res.HTML)
	assert.Contains(t, res.HTML, `href="#footnote-ref-1"`)
	assert.True(t, strings.HasSuffix(res.HTML, "</p>\n</li>\n</ol>\n</section>\n"), res.HTML)
}

func TestScripts(t *testing.T) {
	t.Run("mermaid", func(t *testing.T) {
		res := convert(t, "```mermaid\ngraph TD\n```\n")
		assert.Equal(t, `<section class="mermaid-container" line-start="1" line-end="3"><div class="mermaid">graph TD`+"\n</div></section>", res.HTML)
		assert.Equal(t, MermaidScript, res.Script)
	})

	t.Run("nested mermaid", func(t *testing.T) {
		res := convert(t, "> ```mermaid\n> a\n> ```\n")
		assert.Equal(t, MermaidScript, res.Script)
	})

	t.Run("code copy", func(t *testing.T) {
		res := convert(t, "text\n", WithCodeCopy(true))
		assert.Contains(t, res.Script, `id="code-copy-script"`)
		assert.NotContains(t, res.Script, "mermaid")
	})
}

func TestDefaultHighlighter(t *testing.T) {
	c := New()
	res, err := c.Parse("```go\nfunc main() {}\n```\n")
	require.NoError(t, err)
	assert.Contains(t, res.HTML, `<code class="hljs language-go">`)
	assert.Contains(t, res.HTML, `<span class="kd">func</span>`)

	var css strings.Builder
	require.NoError(t, c.WriteCSS(&css))
	assert.Contains(t, css.String(), ".chroma")

	css.Reset()
	require.NoError(t, New(WithHighlighter(noHighlight{})).WriteCSS(&css))
	assert.Empty(t, css.String())
}

func TestTokens(t *testing.T) {
	tokens, err := New().Tokens("# a\n\ntext\n")
	require.NoError(t, err)
	assert.Len(t, tokens, 2)
}
