/*
Package mdpreview converts Markdown into the HTML of a live preview pane.

Every top level block of the output carries line-start and line-end
attributes with the source lines it was produced from, so an editor can keep
its viewport and the preview in sync.
*/
package mdpreview

import (
	"io"
	"strings"
	"sync"

	"github.com/flytaly/mdpreview/pkg/config"
	"github.com/flytaly/mdpreview/pkg/highlight"
	"github.com/flytaly/mdpreview/pkg/lexer"
	"github.com/flytaly/mdpreview/pkg/log"
	"github.com/flytaly/mdpreview/pkg/parser"
	"github.com/flytaly/mdpreview/pkg/renderer"
)

// Result is a converted document.
type Result struct {
	HTML string
	// Script holds the scripts the HTML depends on. It is empty when the
	// document needs none.
	Script string
}

type Option func(*Converter)

// WithConfig replaces all settings at once.
func WithConfig(cfg config.Config) Option {
	return func(c *Converter) { c.cfg = cfg }
}

// WithImagePrefix resolves relative image sources against prefix.
func WithImagePrefix(prefix string) Option {
	return func(c *Converter) { c.cfg.RelativeImageURLPrefix = prefix }
}

func WithDetailsOpen(open bool) Option {
	return func(c *Converter) { c.cfg.DetailsTagDefaultOpen = open }
}

func WithCodeCopy(enabled bool) Option {
	return func(c *Converter) { c.cfg.CodeCopy = enabled }
}

func WithHighlighter(h renderer.Highlighter) Option {
	return func(c *Converter) { c.hl = h }
}

func WithLogger(l log.Logger) Option {
	return func(c *Converter) { c.logger = l }
}

// Converter turns Markdown documents into HTML. It is safe for concurrent
// use; conversions are serialized.
type Converter struct {
	cfg    config.Config
	hl     renderer.Highlighter
	logger log.Logger

	mu       sync.Mutex
	lexer    *lexer.Lexer
	renderer *renderer.HTMLRenderer
	parser   *parser.Parser
}

func New(opts ...Option) *Converter {
	c := &Converter{cfg: config.Default()}
	for _, opt := range opts {
		opt(c)
	}
	if c.hl == nil {
		c.hl = highlight.New(c.cfg.Theme)
	}
	if c.logger == nil {
		c.logger = log.NewEmptyLog()
	}
	c.lexer = lexer.New()
	c.renderer = renderer.New(c.cfg, c.hl)
	c.parser = parser.New(c.renderer)
	return c
}

// Parse converts a whole document.
func (c *Converter) Parse(src string) (Result, error) {
	c.mu.Lock()
	defer c.mu.Unlock()

	tokens, err := c.lexer.Lex(src)
	if err != nil {
		c.logger.Error("%v", err)
		return Result{}, err
	}
	c.renderer.Reset()
	res := Result{HTML: c.parser.Parse(tokens)}

	var script strings.Builder
	if hasMermaid(tokens) {
		script.WriteString(MermaidScript)
	}
	if c.cfg.CodeCopy {
		script.WriteString(CodeCopyScript)
	}
	res.Script = script.String()
	return res, nil
}

// Tokens lexes src without rendering it.
func (c *Converter) Tokens(src string) ([]lexer.Token, error) {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.lexer.Lex(src)
}

// WriteCSS writes the stylesheet of the highlighter, if it has one.
func (c *Converter) WriteCSS(w io.Writer) error {
	if h, ok := c.hl.(interface{ WriteCSS(io.Writer) error }); ok {
		return h.WriteCSS(w)
	}
	return nil
}

func hasMermaid(tokens []lexer.Token) bool {
	for _, t := range tokens {
		if code, ok := t.(*lexer.Code); ok {
			if f := strings.Fields(code.Lang); len(f) > 0 && f[0] == "mermaid" {
				return true
			}
			continue
		}
		if hasMermaid(lexer.Children(t)) {
			return true
		}
	}
	return false
}
