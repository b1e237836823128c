package lexer

import (
	"io"
	"strings"

	"golang.org/x/net/html"
	"golang.org/x/net/html/atom"
)

// pendingClose is an HTML block whose first element was left open.
type pendingClose struct {
	name  string
	index int
}

var voidElements = map[atom.Atom]bool{
	atom.Area:   true,
	atom.Base:   true,
	atom.Br:     true,
	atom.Col:    true,
	atom.Embed:  true,
	atom.Hr:     true,
	atom.Img:    true,
	atom.Input:  true,
	atom.Link:   true,
	atom.Meta:   true,
	atom.Param:  true,
	atom.Source: true,
	atom.Track:  true,
	atom.Wbr:    true,
}

// trackHTMLClose records t when its first element is not closed inside it.
// Otherwise, when t ends with a closing tag, the most recent pending block
// with that element is resolved: its source map is extended to the end of t.
func trackHTMLClose(pending []pendingClose, tokens []Token, t *HTMLBlock) []pendingClose {
	if name := unclosedElement(t.Raw); name != "" {
		return append(pending, pendingClose{name: name, index: len(tokens)})
	}
	closing := lastClosingTag(t.Raw)
	if closing == "" {
		return pending
	}
	for i := len(pending) - 1; i >= 0; i-- {
		if pending[i].name != closing {
			continue
		}
		if open := tokens[pending[i].index].GetSourceMap(); open != nil && t.SourceMap != nil {
			open.End = t.SourceMap.End
		}
		return append(pending[:i], pending[i+1:]...)
	}
	return pending
}

// unclosedElement returns the name of the first element of raw if raw does
// not contain its matching end tag.
func unclosedElement(raw string) string {
	z := html.NewTokenizer(strings.NewReader(raw))
	var (
		name  string
		depth int
	)
	for {
		switch z.Next() {
		case html.ErrorToken:
			if z.Err() == io.EOF && depth > 0 {
				return name
			}
			return ""
		case html.StartTagToken:
			tn, _ := z.TagName()
			if name == "" {
				if voidElements[atom.Lookup(tn)] {
					return ""
				}
				name = string(tn)
			}
			if string(tn) == name {
				depth++
			}
		case html.EndTagToken:
			if name == "" {
				return ""
			}
			if tn, _ := z.TagName(); string(tn) == name {
				depth--
				if depth == 0 {
					return ""
				}
			}
		case html.SelfClosingTagToken, html.CommentToken, html.DoctypeToken:
			if name == "" {
				return ""
			}
		}
	}
}

// lastClosingTag returns the element name when the last tag of raw is an end
// tag.
func lastClosingTag(raw string) string {
	z := html.NewTokenizer(strings.NewReader(raw))
	var last string
	for {
		switch z.Next() {
		case html.ErrorToken:
			return last
		case html.EndTagToken:
			tn, _ := z.TagName()
			last = string(tn)
		case html.StartTagToken, html.SelfClosingTagToken, html.CommentToken, html.DoctypeToken:
			last = ""
		}
	}
}
