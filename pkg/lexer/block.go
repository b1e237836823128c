package lexer

import (
	"net/url"
	"strings"
)

func (l *Lexer) indentedCode(src string) *Code {
	n := indentedCodeLen(src)
	if n == 0 {
		return nil
	}
	raw := src[:n]
	return &Code{
		Leaf: Leaf{Raw: raw, SourceMap: l.sourceMap(raw)},
		Text: strings.TrimRight(codeIndentRe.ReplaceAllString(raw, ""), "\n"),
	}
}

func (l *Lexer) fencedCode(src string) *Code {
	f, ok := fencedCode(src)
	if !ok {
		return nil
	}
	return &Code{
		Leaf:   Leaf{Raw: f.raw, SourceMap: l.sourceMap(f.raw)},
		Fenced: true,
		Lang:   unescapeBackslashes(strings.TrimSpace(f.info)),
		Text:   indentCodeCompensation(f.raw, f.text),
	}
}

func (l *Lexer) heading(src string) *Heading {
	h, ok := atxHeading(src)
	if !ok {
		return nil
	}
	raw := src[:h.n]
	return &Heading{
		Leaf:  Leaf{Raw: raw, SourceMap: l.sourceMap(raw)},
		Depth: h.depth,
		Text:  h.text,
	}
}

func (l *Lexer) thematicBreak(src string) *ThematicBreak {
	n := thematicBreak(src, 3, true)
	if n == 0 {
		return nil
	}
	raw := src[:n]
	return &ThematicBreak{Leaf: Leaf{Raw: raw, SourceMap: l.sourceMap(raw)}}
}

// blockquote lexes the quoted text as a nested document. A quote whose text
// starts with an alert marker becomes an Alert.
func (l *Lexer) blockquote(src string) Token {
	n := blockquoteLen(src)
	if n == 0 {
		return nil
	}
	raw := src[:n]
	text := strings.TrimRight(quotePrefixRe.ReplaceAllString(raw, ""), "\n")
	sm := l.sourceMap(raw)
	tokens := l.blockTokens(text, false, true)

	if v, _ := matchAlert(text); v != AlertNone && len(tokens) > 0 {
		if p, ok := tokens[0].(*Paragraph); ok {
			_, m := matchAlert(p.Text)
			p.Text = strings.TrimLeft(p.Text[m:], " ")
			if p.Text == "" {
				tokens = tokens[1:]
			}
			return &Alert{Leaf: Leaf{Raw: raw, SourceMap: sm}, Variant: v, Text: text, Tokens: tokens}
		}
	}
	return &Blockquote{Leaf: Leaf{Raw: raw, SourceMap: sm}, Text: text, Tokens: tokens}
}

func (l *Lexer) htmlBlock(src string) *HTMLBlock {
	n, pre := htmlBlockLen(src)
	if n == 0 {
		return nil
	}
	raw := src[:n]
	return &HTMLBlock{Leaf: Leaf{Raw: raw, SourceMap: l.sourceMap(raw)}, Pre: pre, Text: raw}
}

func (l *Lexer) linkRefDef(src string) *LinkRefDef {
	d, ok := linkDefinition(src)
	if !ok {
		return nil
	}
	raw := src[:d.n]
	return &LinkRefDef{
		Leaf:  Leaf{Raw: raw, SourceMap: l.sourceMap(raw)},
		Label: d.label,
		Href:  d.href,
		Title: d.title,
	}
}

// footnote reads a footnote definition. Continuation lines are either
// indented by four spaces or lazy paragraph lines; a blank line continues the
// definition only when an indented line follows it.
func (l *Lexer) footnote(src string) *Footnote {
	m := footnoteDefRe.FindStringSubmatchIndex(src)
	if m == nil {
		return nil
	}
	label := src[m[2]:m[3]]
	e := lineEnd(src, m[1])
	lines := []string{src[m[1]:e]}
	n := nextLine(src, e)
	blank := false
scan:
	for n < len(src) {
		e = lineEnd(src, n)
		line := src[n:e]
		switch {
		case isBlank(line):
			k := n
			for k < len(src) && isBlank(src[k:lineEnd(src, k)]) {
				k = nextLine(src, k)
			}
			if k >= len(src) || !strings.HasPrefix(src[k:], "    ") {
				break scan
			}
			for ; n < k; n = nextLine(src, n) {
				lines = append(lines, "")
			}
			blank = true
			continue
		case strings.HasPrefix(line, "    "):
			lines = append(lines, line[4:])
		case !blank && !paragraphInterrupted(src[n:]) && !footnoteDefRe.MatchString(line):
			lines = append(lines, line)
		default:
			break scan
		}
		blank = false
		n = nextLine(src, n)
	}
	raw := src[:n]
	if key := NormalizeLabel(label); l.footnotes[key] == "" {
		l.footnotes[key] = label
	}
	escaped := HTMLEscape(label, true)
	text := strings.TrimRight(strings.Join(lines, "\n"), "\n") +
		` <a href="#footnote-ref-` + url.PathEscape(label) + `" data-footnote-backref aria-label="Back to reference ` + escaped + `">↩</a>`
	return &Footnote{
		Leaf:   Leaf{Raw: raw, SourceMap: l.sourceMap(raw)},
		Label:  label,
		Text:   text,
		Tokens: l.blockTokens(text, false, true),
	}
}

// table builds a table from a header, a delimiter row and body rows. The
// header and delimiter rows must have the same number of cells.
func (l *Lexer) table(src string) *Table {
	m, ok := matchTable(src)
	if !ok || !strings.ContainsAny(m.delim, ":|") {
		return nil
	}
	headers := splitCells(m.header, 0)
	aligns := strings.Split(alignTrimRe.ReplaceAllString(m.delim, ""), "|")
	if len(headers) != len(aligns) {
		return nil
	}

	t := &Table{Align: make([]Align, len(aligns))}
	for i, a := range aligns {
		t.Align[i] = parseAlign(a)
	}
	for i, h := range headers {
		t.Header = append(t.Header, &TableCell{Leaf: Leaf{Raw: h}, Text: h, Header: true, Align: t.Align[i]})
	}
	if strings.TrimSpace(m.body) != "" {
		for _, row := range strings.Split(rowTailRe.ReplaceAllString(m.body, ""), "\n") {
			cells := splitCells(row, len(headers))
			r := make([]*TableCell, len(cells))
			for i, c := range cells {
				r[i] = &TableCell{Leaf: Leaf{Raw: c}, Text: c, Align: t.Align[i]}
			}
			t.Rows = append(t.Rows, r)
		}
	}
	t.Raw = m.raw
	t.SourceMap = l.sourceMap(m.raw)
	return t
}

func (l *Lexer) setextHeading(src string) *Heading {
	n, text, depth := setextHeading(src)
	if n == 0 {
		return nil
	}
	raw := src[:n]
	return &Heading{
		Leaf:  Leaf{Raw: raw, SourceMap: l.sourceMap(raw)},
		Depth: depth,
		Text:  text,
	}
}

// paragraph stops before a line that starts a footnote definition. clipped
// reports whether that happened.
func (l *Lexer) paragraph(src string) (p *Paragraph, clipped bool) {
	n := paragraphLen(src)
	if n == 0 {
		return nil, false
	}
	if loc := footnoteStartRe.FindStringIndex(src[:n]); loc != nil {
		n, clipped = loc[0], true
	}
	raw := src[:n]
	return &Paragraph{Leaf: Leaf{Raw: raw, SourceMap: l.sourceMap(raw)}, Text: raw}, clipped
}

func (l *Lexer) text(src string) *Text {
	n := lineEnd(src, 0)
	if n == 0 {
		return nil
	}
	raw := src[:n]
	return &Text{Leaf: Leaf{Raw: raw, SourceMap: l.sourceMap(raw)}, Text: raw}
}
