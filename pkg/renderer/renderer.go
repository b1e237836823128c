// Package renderer turns tokens into the HTML of the preview: GitHub flavored
// markup with source line attributes for scroll sync.
package renderer

import (
	"net/url"
	"strconv"
	"strings"
	"unicode"

	"github.com/flytaly/mdpreview/pkg/config"
	"github.com/flytaly/mdpreview/pkg/lexer"
	"github.com/flytaly/mdpreview/pkg/slug"
)

// Highlighter colors the code of a fenced block. It returns the markup and
// the language actually used.
type Highlighter interface {
	Highlight(code, lang string) (string, string)
}

type HTMLRenderer struct {
	cfg     config.Config
	hl      Highlighter
	slugger *slug.Slugger
}

func New(cfg config.Config, hl Highlighter) *HTMLRenderer {
	return &HTMLRenderer{cfg: cfg, hl: hl, slugger: slug.New()}
}

// Reset starts a new document. Heading slugs are unique per document.
func (r *HTMLRenderer) Reset() {
	r.slugger.Reset()
}

func (r *HTMLRenderer) Code(code, info string, sm *lexer.SourceMap) string {
	lang := info
	if i := strings.IndexFunc(info, unicode.IsSpace); i >= 0 {
		lang = info[:i]
	}
	code = strings.TrimSuffix(code, "\n") + "\n"

	if lang == "mermaid" {
		return injectAttrs(`<section><div class="mermaid">`+code+`</div></section>`,
			[]attr{{"class", "mermaid-container"}}, sm)
	}

	highlighted, used := r.hl.Highlight(code, lang)
	out := `<pre><code class="hljs language-` + lexer.HTMLEscape(used, true) + `">` + highlighted + "</code></pre>\n"
	return injectAttrs(out, nil, sm)
}

func (r *HTMLRenderer) Blockquote(body string, sm *lexer.SourceMap) string {
	return injectAttrs("<blockquote>\n"+body+"</blockquote>\n", nil, sm)
}

func (r *HTMLRenderer) Alert(body string, v lexer.AlertVariant, sm *lexer.SourceMap) string {
	name := v.String()
	out := `<div class="markdown-alert markdown-alert-` + strings.ToLower(name) + `">` + "\n" +
		`<p class="markdown-alert-title">` + v.Icon() + name + "</p>\n" +
		body + "</div>\n"
	return injectAttrs(out, nil, sm)
}

func (r *HTMLRenderer) HTML(html string, block bool, sm *lexer.SourceMap) string {
	out := fixHTMLLocalImageHref(html, r.cfg.RelativeImageURLPrefix)
	var attrs []attr
	if r.cfg.DetailsTagDefaultOpen && startsWithTag(html, "<details>") {
		attrs = append(attrs, attr{"open", ""})
	}
	return injectAttrs(out, attrs, sm)
}

func (r *HTMLRenderer) Heading(text string, depth int, sm *lexer.SourceMap) string {
	id := r.slugger.Slug(elementText(text))
	h := "h" + strconv.Itoa(depth)
	// the empty span is offset upwards so that a jump to #id leaves some
	// room above the heading
	out := "<" + h + `><span style="position: absolute; top: -50px;" id="` + id + `"></span>` +
		text + `<a class="anchor octicon-link" href="#` + id + `"></a></` + h + ">\n"
	return injectAttrs(out, []attr{{"style", "position: relative;"}}, sm)
}

func (r *HTMLRenderer) ThematicBreak(sm *lexer.SourceMap) string {
	return injectAttrs("<hr>\n", nil, sm)
}

func (r *HTMLRenderer) List(body string, ordered bool, start int, classes []string, sm *lexer.SourceMap) string {
	tag := "ul"
	if ordered {
		tag = "ol"
	}
	var attrs []attr
	if len(classes) > 0 {
		attrs = append(attrs, attr{"class", strings.Join(classes, " ")})
	}
	if ordered && start != 0 && start != 1 {
		attrs = append(attrs, attr{"start", strconv.Itoa(start)})
	}
	return injectAttrs("<"+tag+">\n"+body+"</"+tag+">\n", attrs, sm)
}

func (r *HTMLRenderer) ListItem(text string, task, checked bool, sm *lexer.SourceMap) string {
	var attrs []attr
	if task {
		attrs = append(attrs, attr{"class", "task-list-item"})
	}
	return injectAttrs("<li>"+text+"</li>\n", attrs, sm)
}

func (r *HTMLRenderer) Checkbox(checked bool, classes []string) string {
	attrs := []attr{{"disabled", ""}, {"type", "checkbox"}, {"class", strings.Join(classes, " ")}}
	if checked {
		attrs = append(attrs, attr{"checked", ""})
	}
	return injectAttrs("<input>", attrs, nil)
}

func (r *HTMLRenderer) Paragraph(text string, sm *lexer.SourceMap) string {
	return injectAttrs("<p>"+text+"</p>\n", nil, sm)
}

func (r *HTMLRenderer) Table(header, body string) string {
	if body != "" {
		body = "<tbody>" + body + "</tbody>"
	}
	return "<table>\n<thead>\n" + header + "</thead>\n" + body + "</table>\n"
}

func (r *HTMLRenderer) TableRow(content string, sm *lexer.SourceMap) string {
	return injectAttrs("<tr>\n"+content+"</tr>\n", nil, sm)
}

func (r *HTMLRenderer) TableCell(content string, header bool, align lexer.Align) string {
	tag := "td"
	if header {
		tag = "th"
	}
	var attrs []attr
	if align != lexer.AlignNone {
		attrs = append(attrs, attr{"align", align.String()})
	}
	return injectAttrs("<"+tag+">"+content+"</"+tag+">\n", attrs, nil)
}

func (r *HTMLRenderer) Footnotes(items string) string {
	return "<section class=\"footnotes\" data-footnotes>\n<ol>\n" + items + "</ol>\n</section>\n"
}

func (r *HTMLRenderer) FootnoteItem(label, body string) string {
	return `<li id="footnote-` + url.PathEscape(label) + `">` + "\n" + body + "</li>\n"
}

func (r *HTMLRenderer) FootnoteRef(label string) string {
	id := url.PathEscape(label)
	return `<sup><a href="#footnote-` + id + `" id="footnote-ref-` + id + `" data-footnote-ref>` +
		lexer.HTMLEscape(label, true) + "</a></sup>"
}

func (r *HTMLRenderer) Strong(text string) string { return "<strong>" + text + "</strong>" }

func (r *HTMLRenderer) Em(text string) string { return "<em>" + text + "</em>" }

func (r *HTMLRenderer) CodeSpan(text string) string { return "<code>" + text + "</code>" }

func (r *HTMLRenderer) HardBreak() string { return "<br>" }

func (r *HTMLRenderer) Strikethrough(text string) string { return "<del>" + text + "</del>" }

func (r *HTMLRenderer) Link(href, title, text string) string {
	href, ok := cleanURL(href)
	if !ok {
		return text
	}
	attrs := []attr{{"href", href}}
	if title != "" {
		attrs = append(attrs, attr{"title", title})
	}
	return injectAttrs("<a>"+text+"</a>", attrs, nil)
}

func (r *HTMLRenderer) Image(href, title, text string) string {
	href, ok := cleanURL(href)
	if !ok {
		return text
	}
	attrs := []attr{{"src", fixLocalImageHref(href, r.cfg.RelativeImageURLPrefix)}, {"alt", text}}
	if title != "" {
		attrs = append(attrs, attr{"title", title})
	}
	return injectAttrs("<img>", attrs, nil)
}

func (r *HTMLRenderer) Text(text string) string { return text }
