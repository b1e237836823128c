// Package highlight colors fenced code blocks with chroma. Output uses CSS
// classes; the matching stylesheet comes from WriteCSS.
package highlight

import (
	"io"
	"strings"

	"github.com/alecthomas/chroma/v2"
	"github.com/alecthomas/chroma/v2/formatters/html"
	"github.com/alecthomas/chroma/v2/lexers"
	"github.com/alecthomas/chroma/v2/styles"

	"github.com/flytaly/mdpreview/pkg/lexer"
)

// Plain is the language reported for code that was not highlighted.
const Plain = "plaintext"

const DefaultTheme = "github"

type Highlighter struct {
	formatter *html.Formatter
	style     *chroma.Style
}

// New creates a highlighter for the named chroma style. Unknown names fall
// back to DefaultTheme.
func New(theme string) *Highlighter {
	style := styles.Get(theme)
	if style == styles.Fallback {
		style = styles.Get(DefaultTheme)
	}
	return &Highlighter{
		formatter: html.New(html.WithClasses(true), html.PreventSurroundingPre(true)),
		style:     style,
	}
}

// Highlight returns the highlighted HTML for code together with the name of
// the language that was used. Code in an unknown language is only escaped.
func (h *Highlighter) Highlight(code, lang string) (string, string) {
	if lang == "" || strings.EqualFold(lang, Plain) {
		return lexer.HTMLEscape(code, true), Plain
	}
	l := lexers.Get(lang)
	if l == nil {
		return lexer.HTMLEscape(code, true), Plain
	}
	it, err := chroma.Coalesce(l).Tokenise(nil, code)
	if err != nil {
		return lexer.HTMLEscape(code, true), Plain
	}
	var sb strings.Builder
	if err := h.formatter.Format(&sb, h.style, it); err != nil {
		return lexer.HTMLEscape(code, true), Plain
	}
	return sb.String(), lang
}

// WriteCSS writes the stylesheet for the highlighter's style.
func (h *Highlighter) WriteCSS(w io.Writer) error {
	return h.formatter.WriteCSS(w, h.style)
}
