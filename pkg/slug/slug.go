// Package slug builds GitHub compatible anchor ids for headings.
package slug

import (
	"strconv"
	"strings"
	"unicode"

	"golang.org/x/text/cases"
	"golang.org/x/text/language"
)

var lower = cases.Lower(language.Und)

// Slugger hands out unique slugs within one document.
type Slugger struct {
	occurrences map[string]int
}

func New() *Slugger {
	return &Slugger{occurrences: make(map[string]int)}
}

// Slug returns the slug of text. Repeated slugs get a numeric suffix.
func (s *Slugger) Slug(text string) string {
	orig := Make(text)
	result := orig
	for {
		if _, ok := s.occurrences[result]; !ok {
			break
		}
		s.occurrences[orig]++
		result = orig + "-" + strconv.Itoa(s.occurrences[orig])
	}
	s.occurrences[result] = 0
	return result
}

// Reset forgets the slugs handed out so far.
func (s *Slugger) Reset() {
	clear(s.occurrences)
}

// Make lowercases text, drops everything except letters, digits, marks,
// connector punctuation and dashes, and turns spaces into dashes.
func Make(text string) string {
	var sb strings.Builder
	for _, r := range lower.String(text) {
		switch {
		case r == ' ':
			sb.WriteByte('-')
		case r == '-' || r == '_':
			sb.WriteRune(r)
		case unicode.In(r, unicode.L, unicode.M, unicode.N, unicode.Pc):
			sb.WriteRune(r)
		}
	}
	return sb.String()
}
