/*
Package parser walks a token tree produced by the lexer and emits the output
document through a Renderer.
*/
package parser

import (
	"fmt"
	"strings"

	"github.com/flytaly/mdpreview/pkg/lexer"
)

var taskCheckboxClasses = []string{"task-list-item-checkbox"}

type Parser struct {
	r Renderer

	footnotes []*lexer.Footnote
	seen      map[string]bool
}

// New creates a parser that emits through r
func New(r Renderer) *Parser {
	return &Parser{r: r, seen: make(map[string]bool)}
}

// Parse renders a document. Footnote definitions found anywhere in the tree
// are rendered once, after the document body, in definition order.
func (p *Parser) Parse(tokens []lexer.Token) string {
	p.footnotes = p.footnotes[:0]
	clear(p.seen)

	out := p.parse(tokens, true, "")
	if len(p.footnotes) == 0 {
		return out
	}
	var items strings.Builder
	// footnote bodies may define footnotes of their own
	for i := 0; i < len(p.footnotes); i++ {
		fn := p.footnotes[i]
		items.WriteString(p.r.FootnoteItem(fn.Label, p.parse(fn.Tokens, true, "")))
	}
	return out + p.r.Footnotes(items.String())
}

// parse renders block tokens. top selects whether bare text runs are wrapped
// in paragraphs. lead is written in front of the inline content of the
// first paragraph or text run.
func (p *Parser) parse(tokens []lexer.Token, top bool, lead string) string {
	var out strings.Builder
	takeLead := func() string {
		s := lead
		lead = ""
		return s
	}

	for i := 0; i < len(tokens); i++ {
		switch t := tokens[i].(type) {
		case *lexer.Space, *lexer.LinkRefDef:
			continue

		case *lexer.ThematicBreak:
			out.WriteString(p.r.ThematicBreak(t.SourceMap))

		case *lexer.Heading:
			out.WriteString(p.r.Heading(p.ParseInline(t.Tokens), t.Depth, t.SourceMap))

		case *lexer.Code:
			out.WriteString(p.r.Code(t.Text, t.Lang, t.SourceMap))

		case *lexer.Table:
			out.WriteString(p.table(t))

		case *lexer.Blockquote:
			out.WriteString(p.r.Blockquote(p.parse(t.Tokens, true, ""), t.SourceMap))

		case *lexer.Alert:
			out.WriteString(p.r.Alert(p.parse(t.Tokens, true, ""), t.Variant, t.SourceMap))

		case *lexer.List:
			out.WriteString(p.list(t))

		case *lexer.HTMLBlock:
			out.WriteString(p.r.HTML(t.Text, true, t.SourceMap))

		case *lexer.Footnote:
			if key := lexer.NormalizeLabel(t.Label); !p.seen[key] {
				p.seen[key] = true
				p.footnotes = append(p.footnotes, t)
			}

		case *lexer.Paragraph:
			out.WriteString(p.r.Paragraph(takeLead()+p.ParseInline(t.Tokens), t.SourceMap))

		case *lexer.Text:
			body := takeLead() + p.blockText(t)
			sm := t.SourceMap
			for i+1 < len(tokens) {
				next, ok := tokens[i+1].(*lexer.Text)
				if !ok {
					break
				}
				i++
				body += "\n" + p.blockText(next)
				sm = next.SourceMap
			}
			if top {
				out.WriteString(p.r.Paragraph(body, sm))
			} else {
				out.WriteString(body)
			}

		default:
			panic(fmt.Sprintf("parser: unexpected %s token at block level", t.Kind()))
		}
	}
	if lead != "" {
		return lead + out.String()
	}
	return out.String()
}

func (p *Parser) blockText(t *lexer.Text) string {
	if t.Tokens == nil {
		return t.Text
	}
	return p.ParseInline(t.Tokens)
}

func (p *Parser) list(t *lexer.List) string {
	var (
		body     strings.Builder
		hasTasks bool
	)
	for _, item := range t.Items {
		var text string
		switch {
		case !item.Task:
			text = p.parse(item.Tokens, t.Loose, "")
		case t.Loose:
			hasTasks = true
			text = p.parse(item.Tokens, true, p.r.Checkbox(item.Checked, taskCheckboxClasses)+" ")
		default:
			hasTasks = true
			text = p.r.Checkbox(item.Checked, taskCheckboxClasses) + " " + p.parse(item.Tokens, false, "")
		}
		body.WriteString(p.r.ListItem(text, item.Task, item.Checked, item.SourceMap))
	}
	var classes []string
	if hasTasks {
		classes = append(classes, "contains-task-list")
	}
	return p.r.List(body.String(), t.Ordered, t.Start, classes, t.SourceMap)
}

// table renders the header row and the body rows. Rows get single line
// source maps: the header on the first line of the table and each body row
// two lines further down.
func (p *Parser) table(t *lexer.Table) string {
	rowMap := func(offset int) *lexer.SourceMap {
		if t.SourceMap == nil {
			return nil
		}
		line := t.SourceMap.Start + offset
		return &lexer.SourceMap{Start: line, End: line}
	}

	var cells strings.Builder
	for _, c := range t.Header {
		cells.WriteString(p.r.TableCell(p.ParseInline(c.Tokens), true, c.Align))
	}
	header := p.r.TableRow(cells.String(), rowMap(0))

	var body strings.Builder
	for j, row := range t.Rows {
		cells.Reset()
		for _, c := range row {
			cells.WriteString(p.r.TableCell(p.ParseInline(c.Tokens), false, c.Align))
		}
		body.WriteString(p.r.TableRow(cells.String(), rowMap(2+j)))
	}
	return p.r.Table(header, body.String())
}

// ParseInline renders inline tokens.
func (p *Parser) ParseInline(tokens []lexer.Token) string {
	var out strings.Builder
	for _, tok := range tokens {
		switch t := tok.(type) {
		case *lexer.Escape:
			out.WriteString(p.r.Text(t.Text))
		case *lexer.InlineTag:
			out.WriteString(p.r.HTML(t.Text, false, nil))
		case *lexer.Link:
			out.WriteString(p.r.Link(t.Href, t.Title, p.ParseInline(t.Tokens)))
		case *lexer.Image:
			out.WriteString(p.r.Image(t.Href, t.Title, t.Text))
		case *lexer.Strong:
			out.WriteString(p.r.Strong(p.ParseInline(t.Tokens)))
		case *lexer.Em:
			out.WriteString(p.r.Em(p.ParseInline(t.Tokens)))
		case *lexer.CodeSpan:
			out.WriteString(p.r.CodeSpan(t.Text))
		case *lexer.HardBreak:
			out.WriteString(p.r.HardBreak())
		case *lexer.Strikethrough:
			out.WriteString(p.r.Strikethrough(p.ParseInline(t.Tokens)))
		case *lexer.FootnoteRef:
			out.WriteString(p.r.FootnoteRef(t.Label))
		case *lexer.Text:
			out.WriteString(p.r.Text(t.Text))
		default:
			panic(fmt.Sprintf("parser: unexpected %s token at inline level", t.Kind()))
		}
	}
	return out.String()
}
