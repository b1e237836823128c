package lexer

import (
	"sort"
	"strings"
	"unicode/utf8"
)

// scanCache remembers what the inline scanners learned about the text of a
// single InlineTokens call, so that no scanner looks at the same stretch
// of text again for every candidate opener. Positions are kept as the
// length of the remaining text, which is the same for src and its masked
// copy.
type scanCache struct {
	masked string
	delims map[byte]*delimIndex

	// the run of destination characters at which an inline link tail
	// failed, up to and including the character that ends it
	linkMissFrom, linkMissTo int

	// remaining length from which a search found nothing
	codeMiss  map[int]int
	tildeMiss [3]int
	finds     map[string]hit
}

// hit is the result of a substring search that started at from.
type hit struct {
	from int
	at   int // -1 when there is no match
}

func newScanCache(masked string) *scanCache {
	return &scanCache{masked: masked, linkMissFrom: -1, tildeMiss: [3]int{-1, -1, -1}}
}

// index returns strings.Index(src, sub) for a suffix src of the cached text.
// Searches move forward only, so each part of the text is scanned once per
// substring.
func (c *scanCache) index(src, sub string) int {
	rem := len(src)
	if f, ok := c.finds[sub]; ok && f.from >= rem {
		if f.at < 0 {
			return -1
		}
		if f.at <= rem {
			return rem - f.at
		}
	}
	at := -1
	if i := strings.Index(src, sub); i >= 0 {
		at = rem - i
	}
	if c.finds == nil {
		c.finds = make(map[string]hit)
	}
	c.finds[sub] = hit{from: rem, at: at}
	if at < 0 {
		return -1
	}
	return rem - at
}

// linkMissed reports whether the link tail starting at rem lies inside a
// run of text where a tail already failed to match.
func (c *scanCache) linkMissed(rem int) bool {
	return c.linkMissTo <= rem && rem <= c.linkMissFrom
}

func (c *scanCache) missLink(from, to int) {
	c.linkMissFrom, c.linkMissTo = from, to
}

// codeMissed reports whether a search for a backtick string of length n
// from rem is known to fail.
func (c *scanCache) codeMissed(n, rem int) bool {
	from, ok := c.codeMiss[n]
	return ok && rem <= from
}

func (c *scanCache) missCode(n, rem int) {
	if c.codeMiss == nil {
		c.codeMiss = make(map[int]int)
	}
	c.codeMiss[n] = rem
}

// delimIndex returns the closer index for c, building it on first use.
func (c *scanCache) delimIndex(ch byte) *delimIndex {
	if d, ok := c.delims[ch]; ok {
		return d
	}
	if c.delims == nil {
		c.delims = make(map[byte]*delimIndex)
	}
	d := newDelimIndex(c.masked, ch)
	c.delims[ch] = d
	return d
}

// delimIndex holds every delimiter run of one character in the masked text
// with the running balance emStrong keeps while it looks for a closer.
// Openers whose run length leaves the same remainder modulo 3 see the same
// balance, since the rule of 3 only depends on that remainder.
type delimIndex struct {
	starts []int
	sums   [3][]int // sums[v][i]: balance after the first i runs
	mins   [3][]int // mins[v][i]: smallest of sums[v][i:]
}

func newDelimIndex(masked string, c byte) *delimIndex {
	type run struct {
		n     int
		class delimClass
	}
	d := &delimIndex{}
	var runs []run
	for i := 0; i < len(masked); {
		if masked[i] != c {
			i++
			continue
		}
		e := skipChar(masked, i, c)
		class := delimSkip
		if i > 0 {
			prev, _ := utf8.DecodeLastRuneInString(masked[:i])
			if cl, _, ok := classify(masked, i, prev, c); ok {
				class = cl
			}
		}
		d.starts = append(d.starts, i)
		runs = append(runs, run{e - i, class})
		i = e
	}

	for v := range d.sums {
		sums := make([]int, len(runs)+1)
		for i, r := range runs {
			sums[i+1] = sums[i] + balance(v, r.n, r.class)
		}
		mins := make([]int, len(sums))
		mins[len(mins)-1] = sums[len(sums)-1]
		for i := len(sums) - 2; i >= 0; i-- {
			mins[i] = min(sums[i], mins[i+1])
		}
		d.sums[v], d.mins[v] = sums, mins
	}
	return d
}

// balance is what a run of length n adds to the count of open delimiters
// for an opener of length v modulo 3.
func balance(v, n int, class delimClass) int {
	switch class {
	case delimLeft:
		return n
	case delimRight:
		return -n
	case delimBoth:
		if v != 0 && (v+n)%3 == 0 {
			return 0
		}
		return -n
	}
	return 0
}

// closes reports whether an opener of length n, scanning from offset from
// of the masked text, reaches a closer.
func (d *delimIndex) closes(n, from int) bool {
	b := sort.SearchInts(d.starts, from)
	v := n % 3
	if b+1 >= len(d.sums[v]) {
		return false
	}
	return d.mins[v][b+1] <= d.sums[v][b]-n
}
