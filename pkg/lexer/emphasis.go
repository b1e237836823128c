package lexer

import (
	"unicode"
	"unicode/utf8"
)

// delimClass classifies a closing candidate run by the characters around it.
type delimClass int

const (
	delimSkip  delimClass = iota
	delimRight            // can only close
	delimLeft             // can only open
	delimBoth
)

// emStrong resolves emphasis opened by the '*' or '_' run at the start of
// src. masked is the masked copy of src, prevChar the last character of the
// preceding text run (zero when there is none).
func (l *Lexer) emStrong(src, masked string, prevChar rune, cache *scanCache) Token {
	c := src[0]
	if c != '*' && c != '_' {
		return nil
	}
	lLength := skipChar(src, 0, c)
	if lLength == len(src) {
		return nil
	}
	next, _ := utf8.DecodeRuneInString(src[lLength:])
	if isSpace(next) {
		return nil
	}
	nextPunct := isPunct(next)
	if c == '_' && !nextPunct && prevChar != 0 && (unicode.IsLetter(prevChar) || unicode.IsNumber(prevChar)) {
		return nil
	}
	if nextPunct && prevChar != 0 && !isSpace(prevChar) && !(isPunct(prevChar) && prevChar != '*' && prevChar != '_') {
		return nil
	}

	s := masked[lLength:]
	if !cache.delimIndex(c).closes(lLength, len(cache.masked)-len(s)+orphanLen(s, c)) {
		return nil
	}
	delimTotal := lLength
	midDelimTotal := 0
	for pos := 0; ; {
		class, start, end, resume, ok := scanDelim(s, pos, c)
		if !ok {
			return nil
		}
		pos = resume
		if class == delimSkip {
			continue
		}
		rLength := end - start
		if class == delimLeft {
			delimTotal += rLength
			continue
		}
		if class == delimBoth && lLength%3 != 0 && (lLength+rLength)%3 == 0 {
			midDelimTotal += rLength
			continue
		}
		delimTotal -= rLength
		if delimTotal > 0 {
			continue
		}
		rLength = min(rLength, rLength+delimTotal+midDelimTotal)
		raw := src[:lLength+start+rLength]
		if min(lLength, rLength)%2 == 1 {
			text := raw[1 : len(raw)-1]
			return &Em{Leaf: Leaf{Raw: raw}, Text: text, Tokens: l.InlineTokens(text)}
		}
		text := raw[2 : len(raw)-2]
		return &Strong{Leaf: Leaf{Raw: raw}, Text: text, Tokens: l.InlineTokens(text)}
	}
}

// scanDelim finds the next closing candidate at or after pos. Runs of text
// and orphaned delimiters are reported as delimSkip; start and end bound the
// delimiter run otherwise. Scanning continues at resume.
func scanDelim(s string, pos int, c byte) (class delimClass, start, end, resume int, ok bool) {
	for i := pos; i < len(s); {
		if i == 0 {
			if n := orphanLen(s, c); n > 0 {
				return delimSkip, 0, 0, n, true
			}
		}
		r, size := utf8.DecodeRuneInString(s[i:])
		if byte(r) == c && size == 1 {
			i++
			continue
		}
		// text runs longer than one character are skipped up to their
		// last character
		last := i
		for j := i; j < len(s) && s[j] != c; {
			last = j
			_, sz := utf8.DecodeRuneInString(s[j:])
			j += sz
		}
		if last > i {
			return delimSkip, 0, 0, last, true
		}
		if cl, e, ok := classify(s, i+size, r, c); ok {
			return cl, i + size, e, e, true
		}
		i += size
	}
	return 0, 0, 0, 0, false
}

// classify looks at the delimiter run starting at p, preceded by prev.
func classify(s string, p int, prev rune, c byte) (delimClass, int, bool) {
	if p >= len(s) || s[p] != c {
		return 0, 0, false
	}
	e := skipChar(s, p, c)
	prevPunct, prevSpace := isPunct(prev), isSpace(prev)
	atEnd := e == len(s)
	var next rune
	if !atEnd {
		next, _ = utf8.DecodeRuneInString(s[e:])
	}
	nextPunct, nextSpace := !atEnd && isPunct(next), !atEnd && isSpace(next)
	nextOther := !atEnd && !nextPunct && !nextSpace

	switch {
	case prevPunct && (atEnd || nextSpace):
		return delimRight, e, true
	case !prevPunct && !prevSpace && !nextOther:
		return delimRight, e, true
	case (prevPunct || prevSpace) && nextOther:
		return delimLeft, e, true
	case prevSpace && nextPunct:
		return delimLeft, e, true
	case prevPunct && nextPunct:
		return delimBoth, e, true
	case c == '*' && !prevPunct && !prevSpace && nextOther:
		return delimBoth, e, true
	}
	return 0, 0, false
}

// orphanLen skips a leading stretch holding a double delimiter of the other
// kind around a single c, such as "__*__" for c == '*'.
func orphanLen(s string, c byte) int {
	other := "__"
	if c == '_' {
		other = "**"
	}
	i := indexDelim(s, 0)
	if i < 0 || !hasPrefixAt(s, i, other) {
		return 0
	}
	j := indexDelim(s, i+2)
	if j < 0 || s[j] != c {
		return 0
	}
	k := indexDelim(s, j+1)
	if k < 0 || !hasPrefixAt(s, k, other) {
		return 0
	}
	return k
}

func indexDelim(s string, i int) int {
	for ; i < len(s); i++ {
		if s[i] == '*' || s[i] == '_' {
			return i
		}
	}
	return -1
}

func hasPrefixAt(s string, i int, prefix string) bool {
	return len(s)-i >= len(prefix) && s[i:i+len(prefix)] == prefix
}
