package lexer

import (
	"regexp"
	"strings"
	"unicode/utf8"
)

const (
	linkLabel = "(?:\\[(?:\\\\.|[^\\[\\]\\\\])*\\]|\\\\.|`[^`]*`|[^\\[\\]\\\\`])*?"
	linkHref  = `<(?:\\.|[^\n<>\\])+>|[^\s\x00-\x1f]*`
	linkTitle = `"(?:\\"?|[^"\\])*"|'(?:\\'?|[^'\\])*'|\((?:\\\)?|[^)\\])*\)`
	refLabel  = `(?:\\.|[^\[\]\\])+`
	tagAttr   = "\\s+[a-zA-Z:_][\\w.:-]*(?:\\s*=\\s*\"[^\"]*\"|\\s*=\\s*'[^']*'|\\s*=\\s*[^\\s\"'=<>`]+)?"
	emailHost = `[a-zA-Z0-9](?:[a-zA-Z0-9-]{0,61}[a-zA-Z0-9])?(?:\.[a-zA-Z0-9](?:[a-zA-Z0-9-]{0,61}[a-zA-Z0-9])?)+`
)

var (
	linkHeadRe   = regexp.MustCompile(`^!?\[(` + linkLabel + `)\]\(`)
	linkTailRe   = regexp.MustCompile(`^\s*(` + linkHref + `)(?:\s+(` + linkTitle + `))?\s*\)`)
	angledTailRe = regexp.MustCompile(`^\s*(<(?:\\.|[^\n<>\\])+>)(?:\s+(` + linkTitle + `))?\s*\)`)
	reflinkRe    = regexp.MustCompile(`^!?\[(` + linkLabel + `)\]\[(` + refLabel + `)\]`)
	nolinkRe     = regexp.MustCompile(`^!?\[(` + refLabel + `)\](?:\[\])?`)
	tagRe        = regexp.MustCompile(`^(?:</[a-zA-Z][\w:-]*\s*>|<[a-zA-Z][\w-]*(?:` + tagAttr + `)*?\s*/?>)`)
	declRe       = regexp.MustCompile(`^<![a-zA-Z]+\s`)
	autolinkRe   = regexp.MustCompile(`^<([a-zA-Z][a-zA-Z0-9+.-]{1,31}:[^\s\x00-\x1f<>]*|[a-zA-Z0-9.!#$%&'*+/=?^_` + "`" + `{|}~-]+(@)` + emailHost + `)>`)
	urlRe        = regexp.MustCompile(`(?i)^((?:ftp|https?)://|www\.)(?:[a-zA-Z0-9\-]+\.?)+[^\s<]*`)
	extEmailRe   = regexp.MustCompile(`^[A-Za-z0-9._+-]+@[a-zA-Z0-9_-]+(?:\.[a-zA-Z0-9_-]*[a-zA-Z0-9])+`)
	fullEmailRe  = regexp.MustCompile(`^[A-Za-z0-9._+-]+@[a-zA-Z0-9_-]+(?:\.[a-zA-Z0-9_-]*[a-zA-Z0-9])+$`)
	footRefRe    = regexp.MustCompile(`^\[\^([^\]\n]+)\]`)
	linkOpenRe   = regexp.MustCompile(`(?i)^<a `)
	linkCloseRe  = regexp.MustCompile(`(?i)^</a>`)
	rawOpenRe    = regexp.MustCompile(`(?i)^<(?:pre|code|kbd|script|style|textarea)(?:\s|>)`)
	rawCloseRe   = regexp.MustCompile(`(?i)^</(?:pre|code|kbd|script|style|textarea)(?:\s|>)`)
	entityTailRe = regexp.MustCompile(`^[a-zA-Z0-9]+;$`)
)

// InlineTokens tokenizes the inline content of a block.
func (l *Lexer) InlineTokens(src string) []Token {
	var (
		tokens   []Token
		masked   = l.mask(src)
		cache    = newScanCache(masked)
		total    = len(src)
		prevChar rune
		keepPrev bool
	)
	for src != "" {
		if !keepPrev {
			prevChar = 0
		}
		keepPrev = false

		if t := l.escape(src); t != nil {
			src = src[len(t.Raw):]
			tokens = append(tokens, t)
			continue
		}

		if t := l.tag(src, cache); t != nil {
			src = src[len(t.Raw):]
			tokens = append(tokens, t)
			continue
		}

		if t := l.link(src, cache); t != nil {
			src = src[len(t.GetRaw()):]
			tokens = append(tokens, t)
			continue
		}

		if t := l.reflink(src); t != nil {
			src = src[len(t.GetRaw()):]
			tokens = appendInline(tokens, t)
			continue
		}

		if t := l.emStrong(src, masked[len(masked)-len(src):], prevChar, cache); t != nil {
			src = src[len(t.GetRaw()):]
			tokens = append(tokens, t)
			continue
		}

		if t := l.codeSpan(src, cache); t != nil {
			src = src[len(t.Raw):]
			tokens = append(tokens, t)
			continue
		}

		if t := l.hardBreak(src); t != nil {
			src = src[len(t.Raw):]
			tokens = append(tokens, t)
			continue
		}

		if t := l.strikethrough(src, cache); t != nil {
			src = src[len(t.Raw):]
			tokens = append(tokens, t)
			continue
		}

		if t := l.footnoteRef(src); t != nil {
			src = src[len(t.Raw):]
			tokens = append(tokens, t)
			continue
		}

		if t := l.autolink(src); t != nil {
			src = src[len(t.Raw):]
			tokens = append(tokens, t)
			continue
		}

		if !l.state.InLink {
			if t := l.url(src); t != nil {
				src = src[len(t.Raw):]
				tokens = append(tokens, t)
				continue
			}
		}

		if t := l.inlineText(src); t != nil {
			src = src[len(t.Raw):]
			if !strings.HasSuffix(t.Raw, "_") {
				prevChar = lastRune(t.Raw)
			}
			keepPrev = true
			tokens = appendInline(tokens, t)
			continue
		}

		panic(&CoverageError{Inline: true, Offset: total - len(src), Snippet: snippet(src)})
	}
	return tokens
}

// appendInline appends t, merging consecutive text runs.
func appendInline(tokens []Token, t Token) []Token {
	if txt, ok := t.(*Text); ok && len(tokens) > 0 {
		if last, ok := tokens[len(tokens)-1].(*Text); ok {
			last.Raw += txt.Raw
			last.Text += txt.Text
			return tokens
		}
	}
	return append(tokens, t)
}

func (l *Lexer) escape(src string) *Escape {
	if len(src) < 2 || src[0] != '\\' || !isASCIIPunct(src[1]) {
		return nil
	}
	return &Escape{Leaf: Leaf{Raw: src[:2]}, Text: HTMLEscape(src[1:2], false)}
}

// tag matches raw inline HTML and tracks whether the scanner is inside a
// link or a raw text element.
func (l *Lexer) tag(src string, cache *scanCache) *InlineTag {
	if src[0] != '<' {
		return nil
	}
	n := rawTagLen(src, cache)
	if n == 0 {
		return nil
	}
	switch {
	case !l.state.InLink && linkOpenRe.MatchString(src):
		l.state.InLink = true
	case l.state.InLink && linkCloseRe.MatchString(src):
		l.state.InLink = false
	}
	switch {
	case !l.state.InRawBlock && rawOpenRe.MatchString(src):
		l.state.InRawBlock = true
	case l.state.InRawBlock && rawCloseRe.MatchString(src):
		l.state.InRawBlock = false
	}
	raw := src[:n]
	return &InlineTag{
		Leaf:       Leaf{Raw: raw},
		Text:       raw,
		InLink:     l.state.InLink,
		InRawBlock: l.state.InRawBlock,
	}
}

// rawTagLen matches an open or closing tag, a comment, a processing
// instruction, a declaration or a CDATA section.
func rawTagLen(s string, cache *scanCache) int {
	until := func(start int, end string) int {
		k := cache.index(s[start:], end)
		if k < 0 {
			return 0
		}
		return start + k + len(end)
	}
	switch {
	case strings.HasPrefix(s, "<!--"):
		// a comment must not start with > or ->
		if strings.HasPrefix(s[4:], ">") || strings.HasPrefix(s[4:], "->") {
			return 0
		}
		return until(4, "-->")
	case strings.HasPrefix(s, "<?"):
		return until(2, "?>")
	case strings.HasPrefix(s, "<![CDATA["):
		return until(9, "]]>")
	}
	if m := declRe.FindString(s); m != "" {
		return until(len(m), ">")
	}
	return len(tagRe.FindString(s))
}

// link matches an inline link or image.
func (l *Lexer) link(src string, cache *scanCache) Token {
	h := linkHeadRe.FindStringSubmatchIndex(src)
	if h == nil {
		return nil
	}
	m := linkTail(src[h[1]:], cache)
	if m == nil {
		return nil
	}
	for i := range m {
		if m[i] >= 0 {
			m[i] += h[1]
		}
	}
	raw := src[:m[1]]
	label := src[h[2]:h[3]]
	href := strings.TrimSpace(src[m[2]:m[3]])
	var title string
	if m[4] >= 0 {
		title = src[m[4]:m[5]]
	}

	angled := strings.HasPrefix(href, "<")
	if angled {
		if !strings.HasSuffix(href, ">") {
			return nil
		}
		body := href[:len(href)-1]
		if (len(body)-len(strings.TrimRight(body, `\`)))%2 == 1 {
			return nil
		}
	}
	if !angled {
		if i := findClosingBracket(href); i > -1 {
			raw = strings.TrimSpace(src[:m[2]+i+1])
			href = href[:i]
			title = ""
		}
	}
	if angled {
		href = href[1 : len(href)-1]
	}
	if title != "" {
		title = title[1 : len(title)-1]
	}
	return l.outputLink(raw, label, unescapeBackslashes(href), unescapeBackslashes(title), src[0] == '!')
}

// linkTail matches the destination and title of an inline link after "](".
// A destination without angle brackets stops at the first blank or control
// character, so once a tail fails no later tail starting inside the same
// run of text can match without angle brackets either.
func linkTail(s string, cache *scanCache) []int {
	run := strings.TrimLeft(s, " \t\n\f\r")
	from := len(run)
	if cache.linkMissed(from) {
		if !strings.HasPrefix(run, "<") {
			return nil
		}
		return angledTailRe.FindStringSubmatchIndex(s)
	}
	m := linkTailRe.FindStringSubmatchIndex(s)
	if m == nil {
		end := strings.IndexFunc(run, func(r rune) bool { return r == ' ' || r < 0x20 })
		if end < 0 {
			end = len(run)
		}
		cache.missLink(from, from-end)
	}
	return m
}

// findClosingBracket returns the index of the first unbalanced ')' in s, or
// -1. Parentheses escaped with a backslash are skipped.
func findClosingBracket(s string) int {
	level := 0
	for i := 0; i < len(s); i++ {
		switch s[i] {
		case '\\':
			i++
		case '(':
			level++
		case ')':
			level--
			if level < 0 {
				return i
			}
		}
	}
	return -1
}

func (l *Lexer) outputLink(raw, label, href, title string, image bool) Token {
	if title != "" {
		title = HTMLEscape(title, false)
	}
	text := bracketRe.ReplaceAllString(label, "$1")
	if image {
		return &Image{Leaf: Leaf{Raw: raw}, Href: href, Title: title, Text: HTMLEscape(text, false)}
	}
	inLink := l.state.InLink
	l.state.InLink = true
	tokens := l.InlineTokens(text)
	l.state.InLink = inLink
	return &Link{Leaf: Leaf{Raw: raw}, Href: href, Title: title, Text: text, Tokens: tokens}
}

// refLink matches [text][label], [label][] and [label]. It returns the match
// length, the link text and the reference label.
func refLink(src string) (n int, text, ref string) {
	if m := reflinkRe.FindStringSubmatch(src); m != nil && !isBlank(m[2]) {
		return len(m[0]), m[1], m[2]
	}
	if m := nolinkRe.FindStringSubmatch(src); m != nil && !isBlank(m[1]) {
		return len(m[0]), m[1], m[1]
	}
	return 0, "", ""
}

// reflink resolves a reference link against the link table. An unknown
// label yields its first character as text.
func (l *Lexer) reflink(src string) Token {
	n, text, ref := refLink(src)
	if n == 0 || (strings.HasPrefix(ref, "^") && l.footnotes[NormalizeLabel(ref[1:])] != "") {
		return nil
	}
	link, ok := l.links[NormalizeLabel(ref)]
	if !ok {
		return &Text{Leaf: Leaf{Raw: src[:1]}, Text: src[:1]}
	}
	return l.outputLink(src[:n], text, link.Href, link.Title, src[0] == '!')
}

// codeSpan matches a backtick string and the next backtick string of the
// same length.
func (l *Lexer) codeSpan(src string, cache *scanCache) *CodeSpan {
	open := skipChar(src, 0, '`')
	if open == 0 || open == len(src) {
		return nil
	}
	from := len(src) - open - 1
	if cache.codeMissed(open, from) {
		return nil
	}
	for p := open + 1; p < len(src); {
		k := strings.IndexByte(src[p:], '`')
		if k < 0 {
			break
		}
		p += k
		run := skipChar(src, p, '`') - p
		if run == open {
			text := strings.ReplaceAll(src[open:p], "\n", " ")
			if strings.TrimLeft(text, " ") != "" && strings.HasPrefix(text, " ") && strings.HasSuffix(text, " ") {
				text = text[1 : len(text)-1]
			}
			return &CodeSpan{Leaf: Leaf{Raw: src[:p+open]}, Text: HTMLEscape(text, true)}
		}
		p += run
	}
	cache.missCode(open, from)
	return nil
}

// hardBreak matches two or more spaces or a backslash before a newline that
// is not the end of the block.
func (l *Lexer) hardBreak(src string) *HardBreak {
	i := 1
	if src[0] != '\\' {
		if i = skipChar(src, 0, ' '); i < 2 {
			return nil
		}
	}
	if i >= len(src) || src[i] != '\n' || isBlank(src[i+1:]) {
		return nil
	}
	return &HardBreak{Leaf: Leaf{Raw: src[:i+1]}}
}

// strikethrough matches text between one or two tildes.
func (l *Lexer) strikethrough(src string, cache *scanCache) *Strikethrough {
	if src[0] != '~' {
		return nil
	}
	k := skipChar(src, 0, '~')
	if k > 2 || startsWithSpace(src[k:]) {
		return nil
	}
	// whether a position closes does not depend on the opener
	from := len(src) - k - 1
	if from <= cache.tildeMiss[k] {
		return nil
	}
	delim := src[:k]
	for p := k + 1; p+k <= len(src); p++ {
		if src[p:p+k] != delim {
			continue
		}
		if r := lastRune(src[k:p]); isSpace(r) || r == '~' {
			continue
		}
		if p+k < len(src) && src[p+k] == '~' {
			continue
		}
		text := src[k:p]
		return &Strikethrough{Leaf: Leaf{Raw: src[:p+k]}, Text: text, Tokens: l.InlineTokens(text)}
	}
	cache.tildeMiss[k] = from
	return nil
}

// footnoteRef matches [^label] for a label defined in the document. The
// reference takes the label of the definition.
func (l *Lexer) footnoteRef(src string) *FootnoteRef {
	m := footRefRe.FindStringSubmatch(src)
	if m == nil {
		return nil
	}
	label := l.footnotes[NormalizeLabel(m[1])]
	if label == "" {
		return nil
	}
	return &FootnoteRef{Leaf: Leaf{Raw: m[0]}, Label: label}
}

func (l *Lexer) autolink(src string) *Link {
	m := autolinkRe.FindStringSubmatch(src)
	if m == nil {
		return nil
	}
	text := HTMLEscape(m[1], false)
	href := text
	if m[2] == "@" {
		href = "mailto:" + text
	}
	return &Link{
		Leaf:   Leaf{Raw: m[0]},
		Href:   href,
		Text:   text,
		Tokens: []Token{&Text{Leaf: Leaf{Raw: text}, Text: text}},
	}
}

// url matches bare URLs and email addresses. Trailing punctuation that is
// unlikely to belong to the URL is given back.
func (l *Lexer) url(src string) *Link {
	var raw, href string
	if m := urlRe.FindStringSubmatch(src); m != nil {
		raw = backpedal(m[0])
		href = raw
		if strings.EqualFold(m[1], "www.") {
			href = "http://" + raw
		}
	} else if raw = email(src); raw != "" {
		href = "mailto:" + HTMLEscape(raw, false)
	}
	if raw == "" {
		return nil
	}
	text := HTMLEscape(raw, false)
	return &Link{
		Leaf:   Leaf{Raw: raw},
		Href:   href,
		Text:   text,
		Tokens: []Token{&Text{Leaf: Leaf{Raw: raw}, Text: text}},
	}
}

const urlPunct = `?!.,:;*_'"~)`

// backpedal trims trailing punctuation, unbalanced parentheses and a final
// entity from a bare URL.
func backpedal(s string) string {
	for {
		n := backpedalOnce(s)
		if n == len(s) {
			return s
		}
		s = s[:n]
	}
}

func backpedalOnce(s string) int {
	i := 0
	for i < len(s) {
		c := s[i]
		switch {
		case c == '(':
			k := strings.IndexByte(s[i+1:], ')')
			if k < 0 {
				return i
			}
			i += k + 2
		case c == '&':
			if entityTailRe.MatchString(s[i+1:]) {
				return i
			}
			i++
		case strings.IndexByte(urlPunct, c) >= 0:
			j := i
			for j < len(s) && strings.IndexByte(urlPunct, s[j]) >= 0 {
				j++
			}
			if j == len(s) {
				j--
			}
			if j == i {
				return i
			}
			i = j
		default:
			for i < len(s) && strings.IndexByte(urlPunct+"(&", s[i]) < 0 {
				i++
			}
		}
	}
	return i
}

// email matches an extended email address not followed by '-' or '_'.
func email(src string) string {
	m := extEmailRe.FindString(src)
	for end := len(m); end > 0; end-- {
		if !fullEmailRe.MatchString(src[:end]) {
			continue
		}
		if end < len(src) && (src[end] == '-' || src[end] == '_') {
			continue
		}
		return src[:end]
	}
	return ""
}

// inlineText consumes text up to the next character that may start another
// inline rule.
func (l *Lexer) inlineText(src string) *Text {
	n := inlineTextLen(src)
	raw := src[:n]
	text := raw
	if !l.state.InRawBlock {
		text = HTMLEscape(raw, false)
	}
	return &Text{Leaf: Leaf{Raw: raw}, Text: text}
}

func inlineTextLen(s string) int {
	i := 0
	if s[0] == '`' || s[0] == '~' {
		for i < len(s) && (s[i] == '`' || s[i] == '~') {
			i++
		}
	} else {
		_, i = utf8.DecodeRuneInString(s)
	}
	if hardBreakAhead(s[i:]) || emailAhead(s[i:]) {
		return i
	}
	for i < len(s) {
		if textStop(s[i:]) {
			return i
		}
		r, size := utf8.DecodeRuneInString(s[i:])
		if r != ' ' && hardBreakAhead(s[i+size:]) {
			return i + size
		}
		if (r >= utf8.RuneSelf || !isEmailChar(byte(r))) && emailAhead(s[i+size:]) {
			return i + size
		}
		i += size
	}
	return i
}

func textStop(s string) bool {
	if strings.IndexByte("\\<![`*~_", s[0]) >= 0 {
		return true
	}
	for _, p := range []string{"http://", "https://", "ftp://", "www."} {
		if strings.HasPrefix(s, p) {
			return true
		}
	}
	return false
}

// hardBreakAhead matches two or more spaces and a newline.
func hardBreakAhead(s string) bool {
	i := skipChar(s, 0, ' ')
	return i >= 2 && i < len(s) && s[i] == '\n'
}

func isEmailChar(c byte) bool {
	return isLetter(c) || isDigit(c) || strings.IndexByte(".!#$%&'*+/=?_`{|}~-", c) >= 0
}

// emailAhead matches the local part of an email address and the '@'.
func emailAhead(s string) bool {
	i := 0
	for i < len(s) && isEmailChar(s[i]) {
		i++
	}
	return i > 0 && i < len(s) && s[i] == '@'
}
