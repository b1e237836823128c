// Package lexer turns Markdown (CommonMark with the GitHub extensions) into a
// tree of tokens. Tokens produced at the top level of the document carry the
// range of source lines they were read from.
package lexer

import (
	"fmt"
	"slices"
	"strings"
)

// Reference is the destination of a link reference definition.
type Reference struct {
	Href  string
	Title string
}

// State is the scanning state shared by the rules.
type State struct {
	InLink     bool
	InRawBlock bool
	Top        bool
}

// CoverageError is returned when no rule consumed the remaining input. It
// points at a defect in the rule table rather than at malformed Markdown.
type CoverageError struct {
	Inline  bool
	Offset  int
	Snippet string
}

func (e *CoverageError) Error() string {
	pass := "block"
	if e.Inline {
		pass = "inline"
	}
	return fmt.Sprintf("lexer: no %s rule matched at offset %d: %q", pass, e.Offset, e.Snippet)
}

// Lexer holds the state of a single document. It is not safe for concurrent
// use; Lex may be called again to reuse it for another document.
type Lexer struct {
	links     map[string]Reference
	footnotes map[string]string // normalized label to the label as defined
	line      int
	state     State
	queue     []Token
}

func New() *Lexer {
	return &Lexer{
		links:     make(map[string]Reference),
		footnotes: make(map[string]string),
		line:      1,
		state:     State{Top: true},
	}
}

// Lex tokenizes a whole document. The block structure is resolved first; the
// inline content of every block is tokenized afterwards so that link
// references defined anywhere in the document are known.
func (l *Lexer) Lex(src string) ([]Token, error) {
	l.reset()
	return guard(func() []Token { return l.lex(src) })
}

// guard turns a CoverageError raised by lex into a returned error. Other
// panics are passed on.
func guard(lex func() []Token) (tokens []Token, err error) {
	defer func() {
		if r := recover(); r != nil {
			cerr, ok := r.(*CoverageError)
			if !ok {
				panic(r)
			}
			tokens, err = nil, cerr
		}
	}()
	return lex(), nil
}

func (l *Lexer) lex(src string) []Token {
	tokens := l.blockTokens(NormalizeNewlines(src), true, true)
	for i := 0; i < len(l.queue); i++ {
		switch t := l.queue[i].(type) {
		case inlineOwner:
			t.setInline(l.InlineTokens(t.inlineSource()))
		case *Table:
			for _, c := range t.Header {
				c.Tokens = l.InlineTokens(c.Text)
			}
			for _, row := range t.Rows {
				for _, c := range row {
					c.Tokens = l.InlineTokens(c.Text)
				}
			}
		}
	}
	l.queue = l.queue[:0]
	return tokens
}

func (l *Lexer) reset() {
	clear(l.links)
	clear(l.footnotes)
	l.line = 1
	l.state = State{Top: true}
	l.queue = l.queue[:0]
}

// Links returns the link reference table of the last document.
func (l *Lexer) Links() map[string]Reference {
	return l.links
}

func (l *Lexer) hasLink(key string) bool {
	_, ok := l.links[key]
	return ok
}

// State returns the current scanning state.
func (l *Lexer) State() State {
	return l.state
}

// sourceMap assigns the next lines to a token consumed at the top level.
func (l *Lexer) sourceMap(raw string) *SourceMap {
	if !l.state.Top {
		return nil
	}
	lines := strings.Split(raw, "\n")
	sm := &SourceMap{Start: l.line, End: l.line + len(lines) - 1}
	l.line = sm.End
	for i := len(lines) - 1; i > 0 && lines[i] == ""; i-- {
		sm.End--
	}
	return sm
}

// advance moves the line counter over a run of blank lines.
func (l *Lexer) advance(raw string) {
	if l.state.Top {
		l.line += strings.Count(raw, "\n")
	}
}

// push appends t and queues its inline content.
func (l *Lexer) push(tokens []Token, t Token) []Token {
	switch t.(type) {
	case inlineOwner, *Table:
		l.queue = append(l.queue, t)
	}
	return append(tokens, t)
}

// mergeInto appends a token's source to the last token when that token is of
// one of the accepted kinds.
func mergeInto(tokens []Token, raw, text string, sm *SourceMap, accept ...Kind) bool {
	if len(tokens) == 0 {
		return false
	}
	last := tokens[len(tokens)-1]
	if !slices.Contains(accept, last.Kind()) {
		return false
	}
	leaf := last.leaf()
	if strings.HasSuffix(leaf.Raw, "\n") {
		leaf.Raw += raw
	} else {
		leaf.Raw += "\n" + raw
	}
	switch t := last.(type) {
	case *Paragraph:
		t.Text += "\n" + text
	case *Text:
		t.Text += "\n" + text
	}
	if leaf.SourceMap != nil && sm != nil {
		leaf.SourceMap.End = sm.End
	}
	return true
}

// blockTokens tokenizes src into block tokens. Source maps are assigned only
// when top is set; paragraphs selects between paragraph and text tokens for
// plain lines.
func (l *Lexer) blockTokens(src string, top, paragraphs bool) []Token {
	saved := l.state.Top
	l.state.Top = top
	defer func() { l.state.Top = saved }()

	src = expandLeadingTabs(src)
	total := len(src)
	var (
		tokens  []Token
		pending []pendingClose
		clipped bool
	)
	for src != "" {
		if n := spaceLen(src); n > 0 {
			raw := src[:n]
			src = src[n:]
			l.advance(raw)
			if n == 1 && len(tokens) > 0 {
				tokens[len(tokens)-1].leaf().Raw += raw
			} else {
				tokens = append(tokens, &Space{Leaf: Leaf{Raw: raw}})
			}
			continue
		}

		if t := l.indentedCode(src); t != nil {
			src = src[len(t.Raw):]
			if !mergeInto(tokens, t.Raw, t.Text, t.SourceMap, KindParagraph, KindText) {
				tokens = append(tokens, t)
			}
			continue
		}

		if t := l.fencedCode(src); t != nil {
			src = src[len(t.Raw):]
			tokens = append(tokens, t)
			continue
		}

		if t := l.heading(src); t != nil {
			src = src[len(t.Raw):]
			tokens = l.push(tokens, t)
			continue
		}

		if t := l.thematicBreak(src); t != nil {
			src = src[len(t.Raw):]
			tokens = append(tokens, t)
			continue
		}

		if t := l.blockquote(src); t != nil {
			src = src[len(t.GetRaw()):]
			tokens = append(tokens, t)
			continue
		}

		if t := l.list(src); t != nil {
			src = src[len(t.Raw):]
			tokens = append(tokens, t)
			continue
		}

		if t := l.htmlBlock(src); t != nil {
			src = src[len(t.Raw):]
			pending = trackHTMLClose(pending, tokens, t)
			tokens = append(tokens, t)
			continue
		}

		if t := l.linkRefDef(src); t != nil {
			src = src[len(t.Raw):]
			if mergeInto(tokens, t.Raw, t.Raw, t.SourceMap, KindParagraph, KindText) {
				continue
			}
			if key := NormalizeLabel(t.Label); !l.hasLink(key) {
				l.links[key] = Reference{Href: t.Href, Title: t.Title}
			}
			tokens = append(tokens, t)
			continue
		}

		if t := l.footnote(src); t != nil {
			src = src[len(t.Raw):]
			tokens = append(tokens, t)
			continue
		}

		if t := l.table(src); t != nil {
			src = src[len(t.Raw):]
			tokens = l.push(tokens, t)
			continue
		}

		if t := l.setextHeading(src); t != nil {
			src = src[len(t.Raw):]
			tokens = l.push(tokens, t)
			continue
		}

		if paragraphs {
			if t, cut := l.paragraph(src); t != nil {
				src = src[len(t.Raw):]
				if !clipped || !mergeInto(tokens, t.Raw, t.Text, t.SourceMap, KindParagraph) {
					tokens = l.push(tokens, t)
				}
				clipped = cut
				continue
			}
		}

		if t := l.text(src); t != nil {
			src = src[len(t.Raw):]
			if !mergeInto(tokens, t.Raw, t.Text, t.SourceMap, KindText) {
				tokens = l.push(tokens, t)
			}
			continue
		}

		panic(&CoverageError{Offset: total - len(src), Snippet: snippet(src)})
	}
	return tokens
}
