package lexer

import (
	"regexp"
	"strings"
)

// Block rules. Each scanner works on the remaining source and returns the
// number of bytes it would consume, zero meaning no match.

var (
	leadingTabsRe = regexp.MustCompile(`(?m)^( *)(\t+)`)
	codeIndentRe  = regexp.MustCompile(`(?m)^ {1,4}`)
	quotePrefixRe = regexp.MustCompile(`(?m)^ *>[ \t]?`)
	rowTailRe     = regexp.MustCompile(`\n[ \t]*$`)
	alignTrimRe   = regexp.MustCompile(`^\||\| *$`)

	footnoteDefRe   = regexp.MustCompile(`^ {0,3}\[\^([^\]\n]+)\]:[ \t]*`)
	footnoteStartRe = regexp.MustCompile(`\n {0,3}\[\^[^\]\n]+\]:`)

	htmlOpenLineRe  = regexp.MustCompile("(?i)^<([a-z][\\w-]*)(?: +[a-z:_][\\w.:-]*(?: *= *\"[^\"\\n]*\"| *= *'[^'\\n]*'| *= *[^\\s\"'=<>`]+)?)*? */?>[ \\t]*(?:\\n|$)")
	htmlCloseLineRe = regexp.MustCompile(`(?i)^</([a-z][\w-]*)\s*>[ \t]*(?:\n|$)`)
)

// block level tag names that start an HTML block of type 6
var blockTags = map[string]bool{}

func init() {
	for _, t := range strings.Split("address|article|aside|base|basefont|blockquote|body|caption|center|col|colgroup|dd|details|dialog|dir|div|dl|dt|fieldset|figcaption|figure|footer|form|frame|frameset|h1|h2|h3|h4|h5|h6|head|header|hr|html|iframe|legend|li|link|main|menu|menuitem|meta|nav|noframes|ol|optgroup|option|p|param|search|section|summary|table|tbody|td|tfoot|th|thead|title|tr|track|ul", "|") {
		blockTags[t] = true
	}
}

// expandLeadingTabs replaces tabs in line indentation with four spaces each.
func expandLeadingTabs(s string) string {
	if strings.IndexByte(s, '\t') < 0 {
		return s
	}
	return leadingTabsRe.ReplaceAllStringFunc(s, func(m string) string {
		i := strings.IndexByte(m, '\t')
		return m[:i] + strings.Repeat("    ", len(m)-i)
	})
}

// spaceLen matches a run of blank lines.
func spaceLen(s string) int {
	n := 0
	for {
		i := skipChar(s, n, ' ')
		if i == len(s) {
			return i
		}
		if s[i] != '\n' {
			return n
		}
		n = i + 1
	}
}

// indentedCodeLen matches lines indented by four spaces, with blank lines
// in between.
func indentedCodeLen(s string) int {
	n := 0
	for strings.HasPrefix(s[n:], "    ") {
		end := lineEnd(s, n+4)
		if end == n+4 {
			break
		}
		n = end
		if n == len(s) {
			break
		}
		n++
		for {
			i := skipChar(s, n, ' ')
			if i == len(s) {
				n = i
				break
			}
			if s[i] != '\n' {
				break
			}
			n = i + 1
		}
	}
	return n
}

type fence struct {
	raw  string
	info string
	text string
}

// fencedCode matches a backtick or tilde fence. An unterminated fence runs
// to the end of the input.
func fencedCode(s string) (f fence, ok bool) {
	i := skipCharN(s, 0, ' ', 3)
	if i >= len(s) || (s[i] != '`' && s[i] != '~') {
		return f, false
	}
	c := s[i]
	j := skipChar(s, i, c)
	size := j - i
	if size < 3 {
		return f, false
	}
	eol := lineEnd(s, j)
	f.info = s[j:eol]
	if c == '`' && strings.IndexByte(f.info, '`') >= 0 {
		return f, false
	}
	start := eol
	if start < len(s) {
		start++
	}
	for n := start; n < len(s); n = nextLine(s, n) {
		if m := closingFence(s[n:], c, size); m >= 0 {
			if n > start {
				f.text = s[start : n-1]
			}
			f.raw = s[:n+m]
			return f, true
		}
	}
	f.raw = s
	f.text = strings.TrimSuffix(s[start:], "\n")
	return f, true
}

// closingFence returns the length of the closing fence line without its
// newline, or -1.
func closingFence(line string, c byte, size int) int {
	i := skipCharN(line, 0, ' ', 3)
	j := skipChar(line, i, c)
	if j-i < size {
		return -1
	}
	for j < len(line) && (line[j] == '`' || line[j] == '~') {
		j++
	}
	j = skipChar(line, j, ' ')
	if j < len(line) && line[j] != '\n' {
		return -1
	}
	return j
}

// indentCodeCompensation removes the fence indentation from the content lines.
func indentCodeCompensation(raw, text string) string {
	i := 0
	for i < len(raw) && (raw[i] == ' ' || raw[i] == '\t' || raw[i] == '\n') {
		i++
	}
	if i == 0 || !strings.HasPrefix(raw[i:], "```") {
		return text
	}
	indent := i
	lines := strings.Split(text, "\n")
	for k, line := range lines {
		ws := 0
		for ws < len(line) && (line[ws] == ' ' || line[ws] == '\t') {
			ws++
		}
		if ws == 0 {
			continue
		}
		if ws >= indent {
			lines[k] = line[indent:]
		}
	}
	return strings.Join(lines, "\n")
}

type atx struct {
	n     int
	depth int
	text  string
}

// atxHeading matches one to six '#' followed by whitespace or the end of the
// line. A closing sequence of '#' is removed from the text.
func atxHeading(s string) (h atx, ok bool) {
	i := skipCharN(s, 0, ' ', 3)
	j := skipChar(s, i, '#')
	h.depth = j - i
	if h.depth < 1 || h.depth > 6 || !startsWithSpace(s[j:]) {
		return h, false
	}
	eol := lineEnd(s, j)
	text := strings.TrimSpace(s[j:eol])
	if strings.HasSuffix(text, "#") {
		trimmed := strings.TrimRight(text, "#")
		if trimmed == "" || strings.HasSuffix(trimmed, " ") {
			text = strings.TrimSpace(trimmed)
		}
	}
	h.text = text
	h.n = skipChar(s, eol, '\n')
	return h, true
}

// headingStart reports whether s starts with an ATX heading marker.
func headingStart(s string) bool {
	i := skipCharN(s, 0, ' ', 3)
	j := skipChar(s, i, '#')
	return j-i >= 1 && j-i <= 6 && startsWithSpace(s[j:])
}

// thematicBreak matches three or more '-', '_' or '*' after at most indent
// spaces. Tabs are allowed between the markers when tabs is set.
func thematicBreak(s string, indent int, tabs bool) int {
	i := skipCharN(s, 0, ' ', indent)
	if i >= len(s) {
		return 0
	}
	c := s[i]
	if c != '-' && c != '_' && c != '*' {
		return 0
	}
	count := 0
	j := i
scan:
	for ; j < len(s); j++ {
		switch {
		case s[j] == c:
			count++
		case s[j] == ' ' || (tabs && s[j] == '\t'):
		default:
			break scan
		}
	}
	if count < 3 || (j < len(s) && s[j] != '\n') {
		return 0
	}
	return skipChar(s, j, '\n')
}

// blockquoteLen matches consecutive '>' lines together with their lazy
// paragraph continuations.
func blockquoteLen(s string) int {
	n := 0
	for n < len(s) {
		i := skipCharN(s, n, ' ', 3)
		if i >= len(s) || s[i] != '>' {
			break
		}
		i++
		if i < len(s) && s[i] == ' ' {
			i++
		}
		if p := paragraphLen(s[i:]); p > 0 {
			i += p
		} else {
			i = lineEnd(s, i)
		}
		if i < len(s) {
			i++
		}
		n = i
	}
	return n
}

// paragraphLen matches a run of non-blank lines that no other block
// interrupts. The final newline is not included.
func paragraphLen(s string) int {
	n := lineEnd(s, 0)
	if n == 0 {
		return 0
	}
	for n < len(s) {
		next := s[n+1:]
		e := lineEnd(next, 0)
		if e == 0 || paragraphInterrupted(next) {
			break
		}
		n += 1 + e
	}
	return n
}

// paragraphInterrupted reports whether the line starting s ends a paragraph.
func paragraphInterrupted(s string) bool {
	return thematicBreak(s, 3, true) > 0 ||
		headingStart(s) ||
		quoteStart(s) ||
		fenceStart(s) ||
		listInterrupt(s) ||
		htmlInterrupt(s) ||
		tableStart(s) ||
		blankWithSpaces(s)
}

func quoteStart(s string) bool {
	i := skipCharN(s, 0, ' ', 3)
	return i < len(s) && s[i] == '>'
}

// fenceStart reports an opening fence line that is followed by a newline.
func fenceStart(s string) bool {
	i := skipCharN(s, 0, ' ', 3)
	if i >= len(s) || (s[i] != '`' && s[i] != '~') {
		return false
	}
	c := s[i]
	j := skipChar(s, i, c)
	if j-i < 3 {
		return false
	}
	eol := lineEnd(s, j)
	if eol == len(s) {
		return false
	}
	return c == '~' || strings.IndexByte(s[j:eol], '`') < 0
}

// listInterrupt matches the list items allowed to interrupt a paragraph: a
// bullet or "1." / "1)" followed by a space.
func listInterrupt(s string) bool {
	i := skipCharN(s, 0, ' ', 3)
	switch {
	case i < len(s) && (s[i] == '*' || s[i] == '+' || s[i] == '-'):
		i++
	case strings.HasPrefix(s[i:], "1.") || strings.HasPrefix(s[i:], "1)"):
		i += 2
	default:
		return false
	}
	return i < len(s) && s[i] == ' '
}

// htmlInterrupt matches the HTML block starts allowed to interrupt a
// paragraph. Only column zero counts and tag names are case sensitive.
func htmlInterrupt(s string) bool {
	if !strings.HasPrefix(s, "<") {
		return false
	}
	for _, p := range []string{"<script", "<pre", "<style", "<textarea", "<!--"} {
		if strings.HasPrefix(s, p) {
			return true
		}
	}
	i := 1
	if i < len(s) && s[i] == '/' {
		i++
	}
	j := i
	for j < len(s) && (isLetter(s[j]) || isDigit(s[j])) {
		j++
	}
	if !blockTags[s[i:j]] {
		return false
	}
	rest := s[j:]
	return strings.HasPrefix(rest, " ") || strings.HasPrefix(rest, "\n") ||
		strings.HasPrefix(rest, ">") || strings.HasPrefix(rest, "/>")
}

func blankWithSpaces(s string) bool {
	i := skipChar(s, 0, ' ')
	return i > 0 && i < len(s) && s[i] == '\n'
}

// htmlBlockLen matches the seven kinds of CommonMark HTML blocks. pre is set
// for pre, script and style elements.
func htmlBlockLen(s string) (n int, pre bool) {
	i := skipCharN(s, 0, ' ', 3)
	if i >= len(s) || s[i] != '<' {
		return 0, false
	}
	rest := s[i:]
	lower := asciiLower(rest)

	// raw text elements end at their closing tag
	for _, name := range []string{"script", "pre", "style", "textarea"} {
		if !strings.HasPrefix(lower, "<"+name) || !startsWithSpaceOrGT(rest[len(name)+1:]) {
			continue
		}
		pre = name != "textarea"
		k := strings.Index(lower[len(name)+1:], "</"+name+">")
		if k < 0 {
			return len(s), pre
		}
		k += len(name) + 1 + len(name) + 3
		e := lineEnd(rest, k)
		if e == len(rest) {
			return len(s), pre
		}
		return i + skipChar(rest, e, '\n'), pre
	}

	switch {
	case strings.HasPrefix(rest, "<!--") && !strings.HasPrefix(rest[4:], ">") && !strings.HasPrefix(rest[4:], "->"):
		k := strings.Index(rest[4:], "-->")
		if k < 0 {
			return len(s), false
		}
		e := lineEnd(rest, 4+k+3)
		return i + skipChar(rest, e, '\n'), false
	case strings.HasPrefix(rest, "<?"):
		return i + untilThen(rest, 2, "?>"), false
	case len(rest) > 2 && strings.HasPrefix(rest, "<!") && isLetter(rest[2]):
		return i + untilThen(rest, 2, ">"), false
	case strings.HasPrefix(rest, "<![CDATA["):
		return i + untilThen(rest, 9, "]]>"), false
	}

	// block level tags end at a blank line
	j := 1
	if j < len(rest) && rest[j] == '/' {
		j++
	}
	k := j
	for k < len(rest) && (isLetter(rest[k]) || isDigit(rest[k])) {
		k++
	}
	if blockTags[lower[j:k]] {
		after := rest[k:]
		if strings.HasPrefix(after, " ") || strings.HasPrefix(after, "\n") ||
			strings.HasPrefix(after, ">") || strings.HasPrefix(after, "/>") {
			return i + blankLineEnd(rest, k), false
		}
	}

	// any other complete tag alone on its line
	var m []int
	if m = htmlOpenLineRe.FindStringSubmatchIndex(rest); m == nil {
		m = htmlCloseLineRe.FindStringSubmatchIndex(rest)
	}
	if m == nil || rawTextPrefix(lower[m[2]:m[3]]) {
		return 0, false
	}
	end := strings.LastIndexByte(rest[:m[1]], '>') + 1
	return i + blankLineEnd(rest, end), false
}

func startsWithSpaceOrGT(s string) bool {
	return s != "" && (s[0] == '>' || startsWithSpace(s))
}

func rawTextPrefix(name string) bool {
	for _, p := range []string{"script", "pre", "style", "textarea"} {
		if strings.HasPrefix(name, p) {
			return true
		}
	}
	return false
}

// untilThen returns the index after the first end at or after i, including
// the newlines that follow it, or len(s).
func untilThen(s string, i int, end string) int {
	k := strings.Index(s[i:], end)
	if k < 0 {
		return len(s)
	}
	return skipChar(s, i+k+len(end), '\n')
}

// blankLineEnd returns the index just past the first blank line run at or
// after i, or len(s).
func blankLineEnd(s string, i int) int {
	for q := i; q < len(s); q++ {
		if s[q] != '\n' {
			continue
		}
		end := -1
		for r := q; r < len(s) && s[r] == '\n'; {
			r = skipChar(s, r+1, ' ')
			if r < len(s) && s[r] == '\n' {
				end = r + 1
			}
		}
		if end > 0 {
			return end
		}
	}
	return len(s)
}

type def struct {
	n     int
	label string
	href  string
	title string
}

// linkDefinition matches [label]: destination "optional title".
func linkDefinition(s string) (d def, ok bool) {
	i := skipCharN(s, 0, ' ', 3)
	if i >= len(s) || s[i] != '[' {
		return d, false
	}
	j := i + 1
	for j < len(s) {
		c := s[j]
		if c == '\\' && j+1 < len(s) && s[j+1] != '\n' {
			j += 2
			continue
		}
		if c == '[' || c == ']' || c == '\\' {
			break
		}
		j++
	}
	label := s[i+1 : j]
	if isBlank(label) || strings.HasPrefix(label, "^") || !strings.HasPrefix(s[j:], "]:") {
		return d, false
	}
	j = skipChar(s, j+2, ' ')
	if j < len(s) && s[j] == '\n' {
		j = skipChar(s, j+1, ' ')
	}
	if j >= len(s) {
		return d, false
	}

	var ends []int
	if s[j] == '<' {
		for k := j + 1; k < len(s) && s[k] != '\n'; k++ {
			if s[k] == '>' {
				ends = append(ends, k+1)
			}
		}
	} else if !startsWithSpace(s[j:]) {
		k := j
		for k < len(s) && !startsWithSpace(s[k:]) {
			k++
		}
		ends = append(ends, k)
	}

	for _, h := range ends {
		href := s[j:h]
		if strings.HasPrefix(href, "<") {
			href = href[1 : len(href)-1]
		}
		d.label = label
		d.href = unescapeBackslashes(href)
		if t, n, ok := defTitle(s, h); ok {
			d.title = unescapeBackslashes(t)
			d.n = n
			return d, true
		}
		if n := defLineEnd(s, h); n > 0 {
			d.n = n
			return d, true
		}
	}
	return def{}, false
}

// defTitle matches the separator, the title and the end of its line.
func defTitle(s string, h int) (title string, n int, ok bool) {
	p := skipChar(s, h, ' ')
	sep := p > h
	if p < len(s) && s[p] == '\n' {
		p = skipChar(s, p+1, ' ')
		sep = true
	}
	if !sep || p >= len(s) {
		return "", 0, false
	}
	var closers []int
	switch s[p] {
	case '"':
		var escaped []int
		for k := p + 1; k < len(s); k++ {
			if s[k] == '\\' {
				if k+1 < len(s) && s[k+1] == '"' {
					escaped = append(escaped, k+1)
					k++
				}
				continue
			}
			if s[k] == '"' {
				closers = append(closers, k)
				break
			}
		}
		for e := len(escaped) - 1; e >= 0; e-- {
			closers = append(closers, escaped[e])
		}
	case '\'':
		if k := strings.IndexByte(s[p+1:], '\''); k >= 0 && !strings.Contains(s[p+1:p+1+k], "\n\n") {
			closers = append(closers, p+1+k)
		}
	case '(':
		if k := strings.IndexAny(s[p+1:], "()"); k >= 0 && s[p+1+k] == ')' {
			closers = append(closers, p+1+k)
		}
	}
	for _, c := range closers {
		if n := defLineEnd(s, c+1); n > 0 {
			return s[p+1 : c], n, true
		}
	}
	return "", 0, false
}

// defLineEnd matches trailing spaces and the newlines ending a definition.
func defLineEnd(s string, i int) int {
	q := skipChar(s, i, ' ')
	if q == len(s) {
		return q
	}
	if s[q] != '\n' {
		return 0
	}
	return skipChar(s, q, '\n')
}

type tableMatch struct {
	raw    string
	header string
	delim  string
	body   string
}

// matchTable matches a header row, a delimiter row and the body rows up to the
// first line that starts another block.
func matchTable(s string) (t tableMatch, ok bool) {
	i := skipChar(s, 0, ' ')
	if i >= len(s) || s[i] == '\n' {
		return t, false
	}
	eol := lineEnd(s, i)
	if eol == len(s) {
		return t, false
	}
	t.header = s[i:eol]
	ds := skipCharN(s, eol+1, ' ', 3)
	de := delimiterRow(s[ds:])
	if de < 0 {
		return t, false
	}
	de += ds
	t.delim = s[ds:de]
	if de == len(s) {
		t.raw = s
		return t, true
	}
	n := de + 1
	start := n
	for n < len(s) && !tableRowInterrupted(s[n:]) {
		n = nextLine(s, n)
	}
	t.body = s[start:n]
	n = skipChar(s, n, '\n')
	t.raw = s[:n]
	return t, true
}

// tableStart reports whether s begins with a header and delimiter row.
func tableStart(s string) bool {
	i := skipChar(s, 0, ' ')
	if i >= len(s) || s[i] == '\n' {
		return false
	}
	eol := lineEnd(s, i)
	if eol == len(s) {
		return false
	}
	ds := skipCharN(s, eol+1, ' ', 3)
	return delimiterRow(s[ds:]) >= 0
}

// delimiterRow matches cells of the form :?-+:? separated by pipes and
// returns the index of the line end, or -1.
func delimiterRow(s string) int {
	cell := func(i int) int {
		if i < len(s) && s[i] == ':' {
			i++
		}
		k := skipChar(s, i, '-')
		if k == i {
			return -1
		}
		if k < len(s) && s[k] == ':' {
			k++
		}
		return skipChar(s, k, ' ')
	}
	i := 0
	if i < len(s) && s[i] == '|' {
		i = skipChar(s, 1, ' ')
	}
	if i = cell(i); i < 0 {
		return -1
	}
	for i < len(s) && s[i] == '|' {
		j := skipChar(s, i+1, ' ')
		k := cell(j)
		if k < 0 {
			i = j
			break
		}
		i = k
	}
	if i < len(s) && s[i] != '\n' {
		return -1
	}
	return i
}

func tableRowInterrupted(s string) bool {
	return blankLineStart(s) ||
		thematicBreak(s, 3, true) > 0 ||
		headingStart(s) ||
		quoteStart(s) ||
		(strings.HasPrefix(s, "    ") && len(s) > 4 && s[4] != '\n') ||
		fenceStart(s) ||
		listInterrupt(s) ||
		htmlInterrupt(s)
}

func blankLineStart(s string) bool {
	i := skipChar(s, 0, ' ')
	return i < len(s) && s[i] == '\n'
}

// splitCells splits a table row on unescaped pipes. With count > 0 the
// result is padded or truncated to count cells.
func splitCells(row string, count int) []string {
	var cells []string
	start := 0
	for i := 0; i < len(row); i++ {
		if row[i] != '|' {
			continue
		}
		bs := 0
		for j := i - 1; j >= 0 && row[j] == '\\'; j-- {
			bs++
		}
		if bs%2 == 1 {
			continue
		}
		cells = append(cells, row[start:i])
		start = i + 1
	}
	cells = append(cells, row[start:])
	if isBlank(cells[0]) {
		cells = cells[1:]
	}
	if len(cells) > 0 && isBlank(cells[len(cells)-1]) {
		cells = cells[:len(cells)-1]
	}
	if count > 0 {
		if len(cells) > count {
			cells = cells[:count]
		}
		for len(cells) < count {
			cells = append(cells, "")
		}
	}
	for i, c := range cells {
		cells[i] = strings.ReplaceAll(strings.TrimSpace(c), `\|`, "|")
	}
	return cells
}

// parseAlign reads one delimiter cell.
func parseAlign(s string) Align {
	s = strings.Trim(s, " ")
	left := strings.HasPrefix(s, ":")
	right := strings.HasSuffix(s, ":") && len(s) > 1
	dashes := strings.TrimSuffix(strings.TrimPrefix(s, ":"), ":")
	if dashes == "" || strings.Trim(dashes, "-") != "" {
		return AlignNone
	}
	switch {
	case left && right:
		return AlignCenter
	case left:
		return AlignLeft
	case right:
		return AlignRight
	}
	return AlignNone
}

// setextHeading matches paragraph lines followed by a '=' or '-' underline.
func setextHeading(s string) (n int, text string, depth int) {
	if bulletStart(s) {
		return 0, "", 0
	}
	for pos := 0; ; {
		e := lineEnd(s, pos)
		if e == len(s) {
			return 0, "", 0
		}
		if e > 0 {
			if m, d := underline(s[e+1:]); m > 0 {
				return e + 1 + m, s[:e], d
			}
		}
		next := s[e+1:]
		if blankLineAhead(next) || bulletStart(next) {
			return 0, "", 0
		}
		pos = e + 1
	}
}

// underline matches a setext underline and returns its length and the
// heading depth it implies.
func underline(s string) (int, int) {
	i := skipCharN(s, 0, ' ', 3)
	if i >= len(s) || (s[i] != '=' && s[i] != '-') {
		return 0, 0
	}
	c := s[i]
	j := skipChar(s, i, c)
	j = skipChar(s, j, ' ')
	if j < len(s) && s[j] != '\n' {
		return 0, 0
	}
	depth := 2
	if c == '=' {
		depth = 1
	}
	return skipChar(s, j, '\n'), depth
}

// blankLineAhead reports whether the line starting s holds only whitespace.
func blankLineAhead(s string) bool {
	for i := 0; i < len(s); i++ {
		switch s[i] {
		case '\n':
			return true
		case ' ', '\t', '\v', '\f', '\r':
		default:
			return false
		}
	}
	return false
}

// bulletStart reports a list marker followed by a space at column zero.
func bulletStart(s string) bool {
	if s == "" {
		return false
	}
	i := 0
	switch s[0] {
	case '*', '+', '-':
		i = 1
	default:
		for i < len(s) && i < 10 && isDigit(s[i]) {
			i++
		}
		if i == 0 || i > 9 || i >= len(s) || (s[i] != '.' && s[i] != ')') {
			return false
		}
		i++
	}
	return i < len(s) && s[i] == ' '
}
