package lexer

import (
	"strconv"
	"strings"
	"unicode"
)

// marker describes the bullet shared by the items of one list.
type marker struct {
	ordered bool
	char    byte // bullet character, or the delimiter after the number
	start   int
}

// listStart matches the first item of a list: up to three spaces, a bullet
// or a number of at most nine digits followed by '.' or ')', then the end of
// the line or whitespace and some content.
func listStart(s string) (m marker, ok bool) {
	i := skipCharN(s, 0, ' ', 3)
	b, ok := m.parse(s, i)
	if !ok {
		return m, false
	}
	switch {
	case b == len(s) || s[b] == '\n':
		return m, true
	case s[b] == ' ' || s[b] == '\t':
		return m, b+1 < len(s) && s[b+1] != '\n'
	}
	return m, false
}

// parse reads a bullet at i into m and returns the index after it.
func (m *marker) parse(s string, i int) (int, bool) {
	if i >= len(s) {
		return 0, false
	}
	switch c := s[i]; c {
	case '*', '+', '-':
		m.char = c
		return i + 1, true
	}
	j := i
	for j < len(s) && isDigit(s[j]) {
		j++
	}
	if j == i || j-i > 9 || j >= len(s) || (s[j] != '.' && s[j] != ')') {
		return 0, false
	}
	m.ordered = true
	m.char = s[j]
	m.start, _ = strconv.Atoi(s[i:j])
	return j + 1, true
}

// item matches an item with the same kind of bullet. It returns the bullet
// with its indentation and the rest of the line including the newline.
func (m marker) item(s string) (bullet, rest string, ok bool) {
	i := skipCharN(s, 0, ' ', 3)
	var next marker
	b, ok := next.parse(s, i)
	if !ok || next.ordered != m.ordered || next.char != m.char {
		return "", "", false
	}
	switch {
	case b == len(s):
	case s[b] == '\n':
		return s[:b], "\n", true
	case s[b] == ' ' || s[b] == '\t':
	default:
		return "", "", false
	}
	return s[:b], s[b:nextLine(s, b)], true
}

// nextBullet matches any bullet after at most n spaces, followed by
// whitespace or the end of the line.
func nextBullet(line string, n int) bool {
	i := skipCharN(line, 0, ' ', n)
	var m marker
	b, ok := m.parse(line, i)
	return ok && (b == len(line) || line[b] == ' ' || line[b] == '\t')
}

func fenceAt(line string, n int) bool {
	i := skipCharN(line, 0, ' ', n)
	return strings.HasPrefix(line[i:], "```") || strings.HasPrefix(line[i:], "~~~")
}

func headingAt(line string, n int) bool {
	i := skipCharN(line, 0, ' ', n)
	return strings.HasPrefix(line[i:], "#")
}

// expandTabs3 replaces leading tabs with three spaces each.
func expandTabs3(line string) string {
	i := skipChar(line, 0, '\t')
	if i == 0 {
		return line
	}
	return strings.Repeat("   ", i) + line[i:]
}

// endsWithBlankLine reports whether raw ends with a blank line.
func endsWithBlankLine(raw string) bool {
	s := strings.TrimRight(raw, " ")
	if !strings.HasSuffix(s, "\n") {
		return false
	}
	return strings.HasSuffix(strings.TrimRight(s[:len(s)-1], " "), "\n")
}

// list reads consecutive items with the same bullet kind. Each item absorbs
// the following lines that are indented past its bullet, plus lazy
// continuation lines, until a new bullet, fence, heading or thematic break
// appears at a shallower indentation.
func (l *Lexer) list(src string) *List {
	m, ok := listStart(src)
	if !ok {
		return nil
	}
	list := &List{Ordered: m.ordered, Start: m.start}
	var (
		orig          = src
		raw           string
		itemContents  string
		endsWithBlank bool
		rawLen        int
	)
	for src != "" {
		bullet, rest, ok := m.item(src)
		if !ok || thematicBreak(src, 3, true) > 0 {
			break
		}
		raw = bullet + rest
		src = src[len(raw):]

		line := expandTabs3(firstLine(rest))
		next := firstLine(src)

		indent := firstNonSpace(rest)
		if indent < 0 {
			indent = len(rest)
		}
		if indent > 4 {
			indent = 1
		}
		itemContents = from(line, indent)
		indent += len(bullet)

		blankLine := false
		endEarly := false
		if line == "" && onlySpaces(next) {
			n := min(len(next)+1, len(src))
			raw += src[:n]
			src = src[n:]
			endEarly = true
		}

		if !endEarly {
			n := max(0, min(3, indent-1))
			for src != "" {
				rawLine := firstLine(src)
				next = rawLine
				if fenceAt(next, n) || headingAt(next, n) || nextBullet(next, n) || thematicBreak(src, n, false) > 0 {
					break
				}
				if i := firstNonSpace(next); i >= indent || isBlank(next) {
					itemContents += "\n" + from(next, indent)
				} else {
					if blankLine {
						break
					}
					if i := firstNonSpace(line); i >= 4 {
						break
					}
					if fenceAt(line, n) || headingAt(line, n) || thematicBreak(line, n, false) > 0 {
						break
					}
					itemContents += "\n" + next
				}
				if !blankLine && isBlank(next) {
					blankLine = true
				}
				consumed := src[:min(len(rawLine)+1, len(src))]
				raw += consumed
				src = src[len(consumed):]
				line = from(next, indent)
			}
		}

		if !list.Loose {
			if endsWithBlank {
				list.Loose = true
			} else if endsWithBlankLine(raw) {
				endsWithBlank = true
			}
		}

		item := &ListItem{}
		if len(itemContents) >= 4 && itemContents[0] == '[' && strings.IndexByte(" xX", itemContents[1]) >= 0 &&
			itemContents[2] == ']' && itemContents[3] == ' ' {
			item.Task = true
			item.Checked = itemContents[1] != ' '
			itemContents = strings.TrimLeft(itemContents[3:], " ")
		}
		item.Raw = raw
		item.Text = itemContents
		item.SourceMap = l.sourceMap(raw)
		list.Items = append(list.Items, item)
		rawLen += len(raw)
	}
	if len(list.Items) == 0 {
		return nil
	}

	last := list.Items[len(list.Items)-1]
	trimmed := strings.TrimRightFunc(last.Raw, unicode.IsSpace)
	if last.SourceMap != nil {
		l.line -= strings.Count(last.Raw[len(trimmed):], "\n")
		last.SourceMap.End = last.SourceMap.Start + strings.Count(trimmed, "\n")
	}
	rawLen -= len(last.Raw) - len(trimmed)
	last.Raw = trimmed
	last.Text = strings.TrimRightFunc(itemContents, unicode.IsSpace)
	list.Raw = orig[:rawLen]

	for _, item := range list.Items {
		item.Tokens = l.blockTokens(item.Text, false, false)
		if list.Loose {
			continue
		}
		for _, t := range item.Tokens {
			if t.Kind() == KindSpace && strings.Count(t.GetRaw(), "\n") >= 2 {
				list.Loose = true
				break
			}
		}
	}
	for _, item := range list.Items {
		item.Loose = list.Loose
	}
	if first := list.Items[0].SourceMap; first != nil {
		list.SourceMap = &SourceMap{Start: first.Start, End: last.SourceMap.End}
	}
	return list
}
