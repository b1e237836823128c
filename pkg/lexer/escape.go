package lexer

import (
	"regexp"
	"strings"

	"golang.org/x/text/cases"
)

var (
	entityRe    = regexp.MustCompile(`^&(?:#\d{1,7}|#[Xx][a-fA-F0-9]{1,6}|\w+);`)
	backslashRe = regexp.MustCompile("\\\\([!\"#$%&'()*+,\\-./:;<=>?@\\[\\]\\\\^_`{|}~])")
	bracketRe   = regexp.MustCompile(`\\([\[\]])`)
	spacesRe    = regexp.MustCompile(`\s+`)

	htmlEscaper = strings.NewReplacer(
		`&`, "&amp;",
		`<`, "&lt;",
		`>`, "&gt;",
		`"`, "&quot;",
		`'`, "&#39;",
	)
)

// HTMLEscape escapes the HTML special characters of s. Unless encode is set,
// an ampersand that already starts a character reference is kept, which makes
// the escaping idempotent.
func HTMLEscape(s string, encode bool) string {
	if encode {
		return htmlEscaper.Replace(s)
	}
	if !strings.ContainsAny(s, `&<>"'`) {
		return s
	}
	var b strings.Builder
	b.Grow(len(s) + 16)
	for i := 0; i < len(s); i++ {
		switch c := s[i]; c {
		case '<':
			b.WriteString("&lt;")
		case '>':
			b.WriteString("&gt;")
		case '"':
			b.WriteString("&quot;")
		case '\'':
			b.WriteString("&#39;")
		case '&':
			if entityRe.MatchString(s[i:]) {
				b.WriteByte(c)
			} else {
				b.WriteString("&amp;")
			}
		default:
			b.WriteByte(c)
		}
	}
	return b.String()
}

// unescapeBackslashes drops the backslash in front of ASCII punctuation.
func unescapeBackslashes(s string) string {
	if strings.IndexByte(s, '\\') < 0 {
		return s
	}
	return backslashRe.ReplaceAllString(s, "$1")
}

// NormalizeLabel folds a link label for lookups in the reference table.
func NormalizeLabel(s string) string {
	return cases.Fold().String(spacesRe.ReplaceAllString(s, " "))
}
