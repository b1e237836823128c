package renderer

import (
	"net/url"
	"regexp"
	"strconv"
	"strings"
	"unicode/utf8"

	"github.com/flytaly/mdpreview/pkg/lexer"
)

type attr struct{ key, val string }

// the end of the first opening tag
var openTagEndRe = regexp.MustCompile(`[a-zA-Z0-9/"]>`)

// injectAttrs adds attributes to the first tag of html. A non-nil source map
// adds line-start and line-end.
func injectAttrs(html string, attrs []attr, sm *lexer.SourceMap) string {
	if sm != nil {
		attrs = append(attrs, attr{"line-start", strconv.Itoa(sm.Start)}, attr{"line-end", strconv.Itoa(sm.End)})
	}
	if len(attrs) == 0 {
		return html
	}
	loc := openTagEndRe.FindStringIndex(html)
	if loc == nil {
		return html
	}
	at := loc[0] + 1
	if html[loc[0]:loc[1]] == "/>" {
		at = loc[0]
		if html[at-1] == ' ' {
			at--
		}
	}
	var sb strings.Builder
	sb.WriteString(html[:at])
	for _, a := range attrs {
		sb.WriteString(" " + a.key + `="` + a.val + `"`)
	}
	sb.WriteString(html[at:])
	return sb.String()
}

// cleanURL percent-encodes href the way encodeURI does, leaving existing
// percent signs alone. It fails on invalid UTF-8.
func cleanURL(href string) (string, bool) {
	if !utf8.ValidString(href) {
		return "", false
	}
	const hex = "0123456789ABCDEF"
	var sb strings.Builder
	for i := 0; i < len(href); i++ {
		c := href[i]
		if keepInURI(c) {
			sb.WriteByte(c)
			continue
		}
		sb.WriteByte('%')
		sb.WriteByte(hex[c>>4])
		sb.WriteByte(hex[c&15])
	}
	return sb.String(), true
}

func keepInURI(c byte) bool {
	switch {
	case 'a' <= c && c <= 'z', 'A' <= c && c <= 'Z', '0' <= c && c <= '9':
		return true
	}
	return strings.IndexByte(";,/?:@&=+$-_.!~*'()#%", c) >= 0
}

var absoluteURLRe = regexp.MustCompile(`^[\w+]+://`)

// fixLocalImageHref resolves a relative image source against prefix.
// Absolute and root relative sources are returned unchanged.
func fixLocalImageHref(href, prefix string) string {
	if prefix == "" || absoluteURLRe.MatchString(href) || strings.HasPrefix(href, "/") {
		return href
	}
	p, err := url.Parse(prefix)
	if err != nil {
		return href
	}
	ref, err := url.Parse(href)
	if err != nil {
		return href
	}
	dummy := &url.URL{Scheme: "http", Host: "__dummy__", Path: "/"}
	base := dummy.ResolveReference(p)
	resolved := base.ResolveReference(ref).String()
	if base.Host != dummy.Host {
		return resolved
	}
	resolved = strings.TrimPrefix(resolved, "http://"+dummy.Host)
	if !strings.HasPrefix(prefix, "/") {
		resolved = strings.TrimPrefix(resolved, "/")
	}
	return resolved
}

var htmlImgRe = regexp.MustCompile(`<img\s+([^>]*?)src\s*=\s*(?:"([^">]+?)"|'([^'>]+?)')([^>]*)>`)

// fixHTMLLocalImageHref rewrites the sources of <img> tags in raw HTML.
func fixHTMLLocalImageHref(html, prefix string) string {
	if prefix == "" {
		return html
	}
	return htmlImgRe.ReplaceAllStringFunc(html, func(tag string) string {
		m := htmlImgRe.FindStringSubmatch(tag)
		src := m[2]
		if src == "" {
			src = m[3]
		}
		return `<img ` + m[1] + `src="` + fixLocalImageHref(src, prefix) + `"` + m[4] + `>`
	})
}
