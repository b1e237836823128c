package parser

import "github.com/flytaly/mdpreview/pkg/lexer"

// Renderer formats single tokens. The parser hands it the already rendered
// children of a token together with the token's source map, which is nil for
// nested tokens.
type Renderer interface {
	// block level
	Code(text, lang string, sm *lexer.SourceMap) string
	Blockquote(body string, sm *lexer.SourceMap) string
	Alert(body string, variant lexer.AlertVariant, sm *lexer.SourceMap) string
	HTML(html string, block bool, sm *lexer.SourceMap) string
	Heading(text string, depth int, sm *lexer.SourceMap) string
	ThematicBreak(sm *lexer.SourceMap) string
	List(body string, ordered bool, start int, classes []string, sm *lexer.SourceMap) string
	ListItem(text string, task, checked bool, sm *lexer.SourceMap) string
	Checkbox(checked bool, classes []string) string
	Paragraph(text string, sm *lexer.SourceMap) string
	Table(header, body string) string
	TableRow(content string, sm *lexer.SourceMap) string
	TableCell(content string, header bool, align lexer.Align) string
	Footnotes(items string) string
	FootnoteItem(label, body string) string

	// inline level
	FootnoteRef(label string) string
	Strong(text string) string
	Em(text string) string
	CodeSpan(text string) string
	HardBreak() string
	Strikethrough(text string) string
	Link(href, title, text string) string
	Image(href, title, text string) string
	Text(text string) string
}
