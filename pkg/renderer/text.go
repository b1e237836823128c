package renderer

import (
	"slices"
	"strings"

	"golang.org/x/net/html"
	"golang.org/x/net/html/atom"
)

// elementText returns the text content of an HTML fragment. Character
// references are decoded. The fragment itself is returned if it can't be
// parsed.
func elementText(frag string) string {
	fakeBody := &html.Node{Type: html.ElementNode, Data: "body", DataAtom: atom.Body}

	nodes, err := html.ParseFragment(strings.NewReader(frag), fakeBody)
	if err != nil {
		return frag
	}

	var sb strings.Builder
	slices.Reverse(nodes)
	for stack := nodes; len(stack) > 0; {
		node := stack[len(stack)-1]
		stack = stack[:len(stack)-1]
		if node.Type == html.TextNode {
			sb.WriteString(node.Data)
			continue
		}
		for child := node.LastChild; child != nil; child = child.PrevSibling {
			stack = append(stack, child)
		}
	}
	return sb.String()
}

// startsWithTag reports whether the fragment opens with exactly the given
// tag, attributes included.
func startsWithTag(frag, tag string) bool {
	z := html.NewTokenizer(strings.NewReader(frag))
	if z.Next() != html.StartTagToken {
		return false
	}
	return string(z.Raw()) == tag
}
