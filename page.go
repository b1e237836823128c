package mdpreview

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/flytaly/mdpreview/pkg/lexer"
)

const pageStyle = `
.markdown-body { max-width: 980px; margin: 0 auto; padding: 45px; font-family: -apple-system, "Segoe UI", Helvetica, Arial, sans-serif; line-height: 1.5; }
.markdown-body pre { position: relative; padding: 16px; overflow: auto; background: #f6f8fa; border-radius: 6px; }
.markdown-body .anchor { float: left; margin-left: -20px; padding-right: 4px; }
.markdown-alert { padding: 0.5rem 1rem; margin-bottom: 16px; border-left: 0.25em solid #d0d7de; }
.markdown-alert-title { display: flex; align-items: center; font-weight: 500; }
.markdown-alert-note { border-left-color: #0969da; }
.markdown-alert-important { border-left-color: #8250df; }
.markdown-alert-warning { border-left-color: #9a6700; }
.markdown-alert-tip { border-left-color: #1a7f37; }
.markdown-alert-caution { border-left-color: #cf222e; }
.task-list-item { list-style-type: none; }
.copy-button { position: absolute; top: 8px; right: 8px; }
.copy-button .copy-success, .copy-button.success .copy-base { display: none; }
.copy-button.success .copy-success { display: inline; }
`

// Page wraps a converted document into a standalone HTML page.
func (c *Converter) Page(title string, res Result) string {
	var css strings.Builder
	if err := c.WriteCSS(&css); err != nil {
		c.logger.Warning("highlight css: %v", err)
	}
	var sb strings.Builder
	sb.WriteString("<!DOCTYPE html>\n<html>\n<head>\n<meta charset=\"utf-8\">\n")
	sb.WriteString("<title>" + lexer.HTMLEscape(title, true) + "</title>\n")
	sb.WriteString("<style>" + css.String() + pageStyle + "</style>\n</head>\n<body>\n")
	sb.WriteString("<article class=\"markdown-body\">\n" + res.HTML + "</article>\n")
	sb.WriteString(res.Script)
	sb.WriteString("</body>\n</html>\n")
	return sb.String()
}

// OutputPath is the default page path for a Markdown file: the same name
// with an .html extension.
func OutputPath(src string) string {
	return strings.TrimSuffix(src, filepath.Ext(src)) + ".html"
}

// RenderFile converts the Markdown file src into a page written to dst.
func (c *Converter) RenderFile(src, dst string) error {
	data, err := os.ReadFile(src)
	if err != nil {
		return fmt.Errorf("read %s: %w", src, err)
	}
	res, err := c.Parse(string(data))
	if err != nil {
		return fmt.Errorf("convert %s: %w", src, err)
	}
	title := strings.TrimSuffix(filepath.Base(src), filepath.Ext(src))
	if err := os.WriteFile(dst, []byte(c.Page(title, res)), 0o644); err != nil {
		return fmt.Errorf("write %s: %w", dst, err)
	}
	c.logger.Info("rendered %s -> %s", src, dst)
	return nil
}
