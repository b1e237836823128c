package lexer

// Kind identifies the concrete type behind a Token.
type Kind int

//go:generate stringer -type=Kind -trimprefix=Kind
const (
	KindSpace Kind = iota
	KindIndentedCode
	KindFencedCode
	KindHeading
	KindThematicBreak
	KindBlockquote
	KindAlert
	KindList
	KindListItem
	KindTable
	KindTableCell
	KindHTMLBlock
	KindParagraph
	KindText
	KindLinkRefDef
	KindFootnote
	KindFootnoteRef
	KindEscape
	KindInlineTag
	KindLink
	KindImage
	KindStrong
	KindEm
	KindCodeSpan
	KindHardBreak
	KindStrikethrough
)

// SourceMap is an inclusive range of 1-based document lines.
type SourceMap struct {
	Start int
	End   int
}

// Token is a node of the token tree. The set of implementations is closed.
type Token interface {
	Kind() Kind
	GetRaw() string           // exact source text consumed by the token
	GetSourceMap() *SourceMap // nil unless the token was produced at the top level
	leaf() *Leaf
}

// Leaf holds the fields shared by every token.
type Leaf struct {
	Raw       string
	SourceMap *SourceMap
}

func (l *Leaf) GetRaw() string { return l.Raw }

func (l *Leaf) GetSourceMap() *SourceMap { return l.SourceMap }

func (l *Leaf) leaf() *Leaf { return l }

// inlineOwner is a token whose text is tokenized by the deferred inline pass.
type inlineOwner interface {
	Token
	inlineSource() string
	setInline([]Token)
}

// Space is a run of blank lines.
type Space struct {
	Leaf
}

func (*Space) Kind() Kind { return KindSpace }

// Code is an indented or fenced code block.
type Code struct {
	Leaf
	Fenced bool
	Lang   string
	Text   string
}

func (c *Code) Kind() Kind {
	if c.Fenced {
		return KindFencedCode
	}
	return KindIndentedCode
}

type Heading struct {
	Leaf
	Depth  int
	Text   string
	Tokens []Token
}

func (*Heading) Kind() Kind { return KindHeading }

type ThematicBreak struct {
	Leaf
}

func (*ThematicBreak) Kind() Kind { return KindThematicBreak }

type Blockquote struct {
	Leaf
	Text   string
	Tokens []Token
}

func (*Blockquote) Kind() Kind { return KindBlockquote }

// Alert is a blockquote whose first line carries one of the alert markers.
type Alert struct {
	Leaf
	Variant AlertVariant
	Text    string
	Tokens  []Token
}

func (*Alert) Kind() Kind { return KindAlert }

type List struct {
	Leaf
	Ordered bool
	Start   int
	Loose   bool
	Items   []*ListItem
}

func (*List) Kind() Kind { return KindList }

type ListItem struct {
	Leaf
	Task    bool
	Checked bool
	Loose   bool
	Text    string
	Tokens  []Token
}

func (*ListItem) Kind() Kind { return KindListItem }

// Align is the alignment of a table column.
type Align int

const (
	AlignNone Align = iota
	AlignLeft
	AlignCenter
	AlignRight
)

func (a Align) String() string {
	switch a {
	case AlignLeft:
		return "left"
	case AlignCenter:
		return "center"
	case AlignRight:
		return "right"
	}
	return ""
}

type Table struct {
	Leaf
	Align  []Align
	Header []*TableCell
	Rows   [][]*TableCell
}

func (*Table) Kind() Kind { return KindTable }

type TableCell struct {
	Leaf
	Text   string
	Header bool
	Align  Align
	Tokens []Token
}

func (*TableCell) Kind() Kind { return KindTableCell }

// HTMLBlock is a block of raw HTML.
type HTMLBlock struct {
	Leaf
	Pre  bool
	Text string
}

func (*HTMLBlock) Kind() Kind { return KindHTMLBlock }

type Paragraph struct {
	Leaf
	Text   string
	Tokens []Token
}

func (*Paragraph) Kind() Kind { return KindParagraph }

// Text is either a block level text line (with inline children) or an inline
// text run (Tokens is nil, Text is already escaped).
type Text struct {
	Leaf
	Text   string
	Tokens []Token
}

func (*Text) Kind() Kind { return KindText }

// LinkRefDef is a link reference definition. It renders to nothing.
type LinkRefDef struct {
	Leaf
	Label string
	Href  string
	Title string
}

func (*LinkRefDef) Kind() Kind { return KindLinkRefDef }

type Footnote struct {
	Leaf
	Label  string
	Text   string
	Tokens []Token
}

func (*Footnote) Kind() Kind { return KindFootnote }

type FootnoteRef struct {
	Leaf
	Label string
}

func (*FootnoteRef) Kind() Kind { return KindFootnoteRef }

type Escape struct {
	Leaf
	Text string
}

func (*Escape) Kind() Kind { return KindEscape }

// InlineTag is raw inline HTML.
type InlineTag struct {
	Leaf
	Text       string
	InLink     bool
	InRawBlock bool
}

func (*InlineTag) Kind() Kind { return KindInlineTag }

type Link struct {
	Leaf
	Href   string
	Title  string
	Text   string
	Tokens []Token
}

func (*Link) Kind() Kind { return KindLink }

type Image struct {
	Leaf
	Href  string
	Title string
	Text  string
}

func (*Image) Kind() Kind { return KindImage }

type Strong struct {
	Leaf
	Text   string
	Tokens []Token
}

func (*Strong) Kind() Kind { return KindStrong }

type Em struct {
	Leaf
	Text   string
	Tokens []Token
}

func (*Em) Kind() Kind { return KindEm }

type CodeSpan struct {
	Leaf
	Text string
}

func (*CodeSpan) Kind() Kind { return KindCodeSpan }

type HardBreak struct {
	Leaf
}

func (*HardBreak) Kind() Kind { return KindHardBreak }

type Strikethrough struct {
	Leaf
	Text   string
	Tokens []Token
}

func (*Strikethrough) Kind() Kind { return KindStrikethrough }

func (h *Heading) inlineSource() string {
	return h.Text
}

func (h *Heading) setInline(t []Token) {
	h.Tokens = t
}

func (p *Paragraph) inlineSource() string {
	return p.Text
}

func (p *Paragraph) setInline(t []Token) {
	p.Tokens = t
}

func (t *Text) inlineSource() string {
	return t.Text
}

func (t *Text) setInline(toks []Token) {
	t.Tokens = toks
}

func (c *TableCell) inlineSource() string {
	return c.Text
}

func (c *TableCell) setInline(t []Token) {
	c.Tokens = t
}

// Children returns the nested tokens of t, if any.
func Children(t Token) []Token {
	switch t := t.(type) {
	case *Heading:
		return t.Tokens
	case *Blockquote:
		return t.Tokens
	case *Alert:
		return t.Tokens
	case *List:
		items := make([]Token, len(t.Items))
		for i, it := range t.Items {
			items[i] = it
		}
		return items
	case *ListItem:
		return t.Tokens
	case *Table:
		var cells []Token
		for _, c := range t.Header {
			cells = append(cells, c)
		}
		for _, row := range t.Rows {
			for _, c := range row {
				cells = append(cells, c)
			}
		}
		return cells
	case *TableCell:
		return t.Tokens
	case *Paragraph:
		return t.Tokens
	case *Text:
		return t.Tokens
	case *Footnote:
		return t.Tokens
	case *Link:
		return t.Tokens
	case *Strong:
		return t.Tokens
	case *Em:
		return t.Tokens
	case *Strikethrough:
		return t.Tokens
	}
	return nil
}
