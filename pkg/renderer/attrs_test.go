package renderer

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestInjectAttrs(t *testing.T) {
	assert.Equal(t, `<p line-start="1" line-end="2">x</p>`, injectAttrs("<p>x</p>", nil, lines(1, 2)))
	assert.Equal(t, `<br k="v" />`, injectAttrs("<br />", []attr{{"k", "v"}}, nil))
	assert.Equal(t, `<br line-start="1" line-end="1"/>`, injectAttrs("<br/>", nil, lines(1, 1)))
	assert.Equal(t, `<img src="a.png" k="v"/>`, injectAttrs(`<img src="a.png"/>`, []attr{{"k", "v"}}, nil))
	assert.Equal(t, `<a href="x" k="v">`, injectAttrs(`<a href="x">`, []attr{{"k", "v"}}, nil))
	assert.Equal(t, "<!-- c -->", injectAttrs("<!-- c -->", []attr{{"k", "v"}}, nil))
	assert.Equal(t, "<p>", injectAttrs("<p>", nil, nil))
}

func TestCleanURL(t *testing.T) {
	cases := []struct{ in, want string }{
		{"/a b", "/a%20b"},
		{"100%", "100%"},
		{"a%20b", "a%20b"},
		{"ü", "%C3%BC"},
		{`x"y`, "x%22y"},
		{"https://x.y/?q=1&r=(2)#f", "https://x.y/?q=1&r=(2)#f"},
	}
	for _, c := range cases {
		got, ok := cleanURL(c.in)
		assert.True(t, ok, c.in)
		assert.Equal(t, c.want, got, c.in)
	}
	_, ok := cleanURL("\xff")
	assert.False(t, ok)
}

func TestFixLocalImageHref(t *testing.T) {
	cases := []struct{ href, prefix, want string }{
		{"img/a.png", "", "img/a.png"},
		{"img/a.png", "/static/", "/static/img/a.png"},
		{"img/a.png", "static/", "static/img/a.png"},
		{"./a.png", "assets/", "assets/a.png"},
		{"../a.png", "/s/t/", "/s/a.png"},
		{"https://x.y/a.png", "/s/", "https://x.y/a.png"},
		{"/a.png", "/s/", "/a.png"},
		{"a.png", "https://cdn.example.com/img/", "https://cdn.example.com/img/a.png"},
	}
	for _, c := range cases {
		assert.Equal(t, c.want, fixLocalImageHref(c.href, c.prefix), c.href+" @ "+c.prefix)
	}
}

func TestElementText(t *testing.T) {
	assert.Equal(t, "a & b c", elementText("a &amp; <b>b</b> <em>c</em>"))
	assert.Equal(t, "plain", elementText("plain"))
}

func TestStartsWithTag(t *testing.T) {
	assert.True(t, startsWithTag("<details>\nx", "<details>"))
	assert.False(t, startsWithTag(" <details>", "<details>"))
	assert.False(t, startsWithTag("<details open>", "<details>"))
	assert.False(t, startsWithTag("text", "<details>"))
}
