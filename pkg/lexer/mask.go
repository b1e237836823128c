package lexer

import (
	"regexp"
	"unicode/utf8"
)

// spans the emphasis resolver must not look into: inline links, code spans
// and anything between angle brackets
var skipRe = regexp.MustCompile("\\[[^\\[\\]]*?\\]\\([^\\(\\)]*?\\)|`[^`]*?`|<[^<>]*?>")

// mask returns a copy of src, byte for byte the same length, in which
// resolvable reference links, skipped spans and escaped punctuation are
// replaced by filler. Delimiter runs inside them are then invisible to
// emStrong.
func (l *Lexer) mask(src string) string {
	b := []byte(src)

	if len(l.links) > 0 {
		for i := 0; i < len(b); {
			if b[i] != '[' && b[i] != '!' {
				i++
				continue
			}
			n, _, ref := refSearch(string(b[i:]))
			if n == 0 {
				i++
				continue
			}
			if l.hasLink(NormalizeLabel(ref)) {
				fill(b[i:i+n], '[', 'a', ']')
			}
			i += n
		}
	}

	for _, loc := range skipRe.FindAllIndex(b, -1) {
		fill(b[loc[0]:loc[1]], '[', 'a', ']')
	}

	for i := 0; i+1 < len(b); i++ {
		if b[i] != '\\' {
			continue
		}
		r, size := utf8.DecodeRune(b[i+1:])
		if !isPunct(r) {
			continue
		}
		fill(b[i:i+1+size], '+', '+', '+')
		i += size
	}
	return string(b)
}

// refSearch is refLink for the masking pass: a shortcut reference must not be
// followed by '('.
func refSearch(s string) (n int, text, ref string) {
	if m := reflinkRe.FindStringSubmatch(s); m != nil && !isBlank(m[2]) {
		return len(m[0]), m[1], m[2]
	}
	m := nolinkRe.FindStringSubmatch(s)
	if m == nil || isBlank(m[1]) {
		return 0, "", ""
	}
	n = len(m[0])
	if n < len(s) && s[n] == '(' {
		base := len(m[1]) + 2
		if s[0] == '!' {
			base++
		}
		if n == base {
			return 0, "", ""
		}
		n = base
	}
	return n, m[1], m[1]
}

// fill overwrites b with middle, bracketed by first and last.
func fill(b []byte, first, middle, last byte) {
	for i := range b {
		b[i] = middle
	}
	if len(b) > 1 {
		b[0] = first
		b[len(b)-1] = last
	}
}
