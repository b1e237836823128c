package slug

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestMake(t *testing.T) {
	cases := []struct{ in, want string }{
		{"Hello World", "hello-world"},
		{"Foo & Bar!", "foo--bar"},
		{"snake_case-name", "snake_case-name"},
		{"Привет, Мир", "привет-мир"},
		{"  padded ", "--padded-"},
		{"C++ (and `Go`) 1.21", "c-and-go-121"},
		{"emoji 🙂 here", "emoji--here"},
	}
	for _, c := range cases {
		assert.Equal(t, c.want, Make(c.in), c.in)
	}
}

func TestSlugger(t *testing.T) {
	s := New()
	assert.Equal(t, "intro", s.Slug("Intro"))
	assert.Equal(t, "intro-1", s.Slug("Intro"))
	assert.Equal(t, "intro-2", s.Slug("intro"))
	assert.Equal(t, "intro-1-1", s.Slug("Intro 1"))

	s.Reset()
	assert.Equal(t, "intro", s.Slug("Intro"))
}
