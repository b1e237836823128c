package lexer

import (
	"strings"
	"unicode"
	"unicode/utf8"
)

// skipChar returns the first index at or after i where s[i] != c.
func skipChar(s string, i int, c byte) int {
	n := len(s)
	for i < n && s[i] == c {
		i++
	}
	return i
}

// like skipChar but only skips up to max characters
func skipCharN(s string, i int, c byte, max int) int {
	n := len(s)
	for i < n && max > 0 && s[i] == c {
		i++
		max--
	}
	return i
}

// lineEnd returns the index of the newline ending the line that contains i,
// or len(s).
func lineEnd(s string, i int) int {
	if j := strings.IndexByte(s[i:], '\n'); j >= 0 {
		return i + j
	}
	return len(s)
}

// nextLine returns the index just past the line containing i.
func nextLine(s string, i int) int {
	e := lineEnd(s, i)
	if e < len(s) {
		e++
	}
	return e
}

func firstLine(s string) string {
	return s[:lineEnd(s, 0)]
}

// firstNonSpace is the index of the first byte that is not ' ', or -1.
func firstNonSpace(s string) int {
	for i := 0; i < len(s); i++ {
		if s[i] != ' ' {
			return i
		}
	}
	return -1
}

func onlySpaces(s string) bool {
	return firstNonSpace(s) < 0
}

func isBlank(s string) bool {
	return strings.TrimSpace(s) == ""
}

// from is s[i:], clamped to the string bounds.
func from(s string, i int) string {
	if i >= len(s) {
		return ""
	}
	return s[i:]
}

func isDigit(c byte) bool {
	return c >= '0' && c <= '9'
}

func isLetter(c byte) bool {
	return (c >= 'a' && c <= 'z') || (c >= 'A' && c <= 'Z')
}

func isASCIIPunct(c byte) bool {
	return strings.IndexByte("!\"#$%&'()*+,-./:;<=>?@[\\]^_`{|}~", c) >= 0
}

// isPunct reports Unicode punctuation plus the ASCII symbols that CommonMark
// treats as punctuation.
func isPunct(r rune) bool {
	return unicode.IsPunct(r) || strings.ContainsRune("$+<=>^`|~", r)
}

func isSpace(r rune) bool {
	return unicode.IsSpace(r) || r == '\uFEFF'
}

// startsWithSpace reports whether s begins with a whitespace rune. An empty
// string counts as the end of the line.
func startsWithSpace(s string) bool {
	if s == "" {
		return true
	}
	r, _ := utf8.DecodeRuneInString(s)
	return isSpace(r)
}

func lastRune(s string) rune {
	r, _ := utf8.DecodeLastRuneInString(s)
	return r
}

// NormalizeNewlines replaces CRLF and lone CR line endings with LF.
func NormalizeNewlines(s string) string {
	if strings.IndexByte(s, '\r') < 0 {
		return s
	}
	return strings.ReplaceAll(strings.ReplaceAll(s, "\r\n", "\n"), "\r", "\n")
}

// snippet returns a short prefix of s for error messages.
func snippet(s string) string {
	const max = 24
	if len(s) <= max {
		return s
	}
	i := max
	for i > 0 && !utf8.RuneStart(s[i]) {
		i--
	}
	return s[:i] + "…"
}

// asciiLower lowercases ASCII letters only, keeping byte offsets stable.
func asciiLower(s string) string {
	b := []byte(s)
	for i, c := range b {
		if c >= 'A' && c <= 'Z' {
			b[i] = c + 'a' - 'A'
		}
	}
	return string(b)
}
