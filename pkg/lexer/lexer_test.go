package lexer

import (
	"strings"
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func lex(t *testing.T, src string) ([]Token, *Lexer) {
	t.Helper()
	l := New()
	tokens, err := l.Lex(src)
	require.NoError(t, err)
	return tokens, l
}

func kinds(tokens []Token) []Kind {
	out := make([]Kind, len(tokens))
	for i, t := range tokens {
		out[i] = t.Kind()
	}
	return out
}

// find returns the first token of kind k in a depth first walk.
func find(tokens []Token, k Kind) Token {
	for _, t := range tokens {
		if t.Kind() == k {
			return t
		}
		if found := find(Children(t), k); found != nil {
			return found
		}
	}
	return nil
}

const document = "# Title\n" +
	"\n" +
	"Some *text* here\n" +
	"more text\n" +
	"\n" +
	"- a\n" +
	"- [x] b\n" +
	"\n" +
	"> quote\n" +
	"\n" +
	"```go\n" +
	"x := 1\n" +
	"```\n" +
	"\n" +
	"| a | b |\n" +
	"|---|:-:|\n" +
	"| 1 | 2 |\n" +
	"\n" +
	"[foo]: /url\n" +
	"\n" +
	"<div>\n" +
	"hi\n" +
	"</div>\n" +
	"\n" +
	"Setext\n" +
	"======\n" +
	"\n" +
	"---\n" +
	"Last[^1]\n" +
	"\n" +
	"[^1]: The note.\n"

func TestLexSpanCoverage(t *testing.T) {
	cases := []string{
		document,
		"",
		"plain",
		"a\n\n\n\nb\n",
		"- a\n\n- b\n\n\n  c\n",
		"> a\nlazy\n> b\n\n    code\n",
		"<div>\n\n*x*\n\n</div>\n",
		"para\n[ref]: /x\n",
		"a\r\nb\rc\n",
		"- a ",
		"- a\n- b ",
		"para \n",
	}
	for _, src := range cases {
		t.Run(src, func(t *testing.T) {
			tokens, _ := lex(t, src)
			var b strings.Builder
			for _, tok := range tokens {
				b.WriteString(tok.GetRaw())
			}
			assert.Equal(t, NormalizeNewlines(src), b.String())
		})
	}
}

func TestLexDocument(t *testing.T) {
	tokens, l := lex(t, document)

	want := []Kind{
		KindHeading, KindParagraph, KindSpace, KindList, KindSpace, KindBlockquote,
		KindFencedCode, KindSpace, KindTable, KindLinkRefDef, KindHTMLBlock,
		KindHeading, KindThematicBreak, KindParagraph, KindSpace, KindFootnote,
	}
	if diff := cmp.Diff(want, kinds(tokens)); diff != "" {
		t.Errorf("kinds mismatch (-want +got):\n%s", diff)
	}
	assert.Equal(t, Reference{Href: "/url"}, l.Links()["foo"])
}

func TestLexSourceMaps(t *testing.T) {
	t.Run("exact lines", func(t *testing.T) {
		tokens, _ := lex(t, "# A\n\npara one\npara two\n\n---\n")
		var got []SourceMap
		for _, tok := range tokens {
			if sm := tok.GetSourceMap(); sm != nil {
				got = append(got, *sm)
			}
		}
		want := []SourceMap{{1, 1}, {3, 4}, {6, 6}}
		if diff := cmp.Diff(want, got); diff != "" {
			t.Errorf("source maps (-want +got):\n%s", diff)
		}
	})

	t.Run("monotonic", func(t *testing.T) {
		tokens, _ := lex(t, document)
		prev := 0
		for _, tok := range tokens {
			sm := tok.GetSourceMap()
			if sm == nil {
				continue
			}
			assert.GreaterOrEqual(t, sm.Start, prev, "%s starts before the previous token ends", tok.Kind())
			assert.GreaterOrEqual(t, sm.End, sm.Start, tok.Kind().String())
			prev = sm.End
		}
	})

	t.Run("nested tokens have no map", func(t *testing.T) {
		tokens, _ := lex(t, "> quoted\n> text\n")
		require.Len(t, tokens, 1)
		assert.Equal(t, &SourceMap{1, 2}, tokens[0].GetSourceMap())
		for _, child := range Children(tokens[0]) {
			assert.Nil(t, child.GetSourceMap())
		}
	})

	t.Run("setext heading", func(t *testing.T) {
		tokens, _ := lex(t, "Title\n=====\n\ntext\n")
		require.Len(t, tokens, 2)
		h := tokens[0].(*Heading)
		assert.Equal(t, 1, h.Depth)
		assert.Equal(t, "Title", h.Text)
		assert.Equal(t, &SourceMap{1, 2}, h.SourceMap)
		assert.Equal(t, &SourceMap{4, 4}, tokens[1].GetSourceMap())
	})

	t.Run("list items", func(t *testing.T) {
		tokens, _ := lex(t, "- a\n- b\n\npara\n")
		require.Len(t, tokens, 3)
		list := tokens[0].(*List)
		assert.Equal(t, "- a\n- b", list.Raw)
		assert.Equal(t, &SourceMap{1, 2}, list.SourceMap)
		assert.Equal(t, &SourceMap{1, 1}, list.Items[0].SourceMap)
		assert.Equal(t, &SourceMap{2, 2}, list.Items[1].SourceMap)
		assert.Equal(t, &SourceMap{4, 4}, tokens[2].GetSourceMap())
	})
}

func TestLexHTMLBlockClose(t *testing.T) {
	tokens, _ := lex(t, "<div>\n\n*x*\n\n</div>\n")
	require.Len(t, tokens, 4)
	assert.Equal(t, KindHTMLBlock, tokens[0].Kind())
	assert.Equal(t, &SourceMap{1, 5}, tokens[0].GetSourceMap())
	assert.Equal(t, &SourceMap{5, 5}, tokens[3].GetSourceMap())

	t.Run("closed in place", func(t *testing.T) {
		tokens, _ := lex(t, "<div>hi</div>\n\ntext\n")
		assert.Equal(t, &SourceMap{1, 1}, tokens[0].GetSourceMap())
	})
}

func TestLexList(t *testing.T) {
	t.Run("tight", func(t *testing.T) {
		tokens, _ := lex(t, "- a\n- b")
		list := tokens[0].(*List)
		assert.False(t, list.Loose)
		require.Len(t, list.Items, 2)
		for i, text := range []string{"a", "b"} {
			item := list.Items[i]
			assert.False(t, item.Loose)
			assert.Equal(t, text, item.Text)
			assert.Equal(t, []Kind{KindText}, kinds(item.Tokens))
		}
	})

	t.Run("loose", func(t *testing.T) {
		tokens, _ := lex(t, "- a\n\n- b")
		list := tokens[0].(*List)
		assert.True(t, list.Loose)
		for _, item := range list.Items {
			assert.True(t, item.Loose)
		}
	})

	t.Run("ordered", func(t *testing.T) {
		tokens, _ := lex(t, "3. three\n4. four\n")
		list := tokens[0].(*List)
		assert.True(t, list.Ordered)
		assert.Equal(t, 3, list.Start)
		assert.Len(t, list.Items, 2)
	})

	t.Run("tasks", func(t *testing.T) {
		tokens, _ := lex(t, "- [ ] todo\n- [x] done\n- plain\n")
		items := tokens[0].(*List).Items
		require.Len(t, items, 3)
		assert.True(t, items[0].Task)
		assert.False(t, items[0].Checked)
		assert.Equal(t, "todo", items[0].Text)
		assert.True(t, items[1].Task)
		assert.True(t, items[1].Checked)
		assert.Equal(t, "done", items[1].Text)
		assert.False(t, items[2].Task)
	})

	t.Run("bullet change starts a new list", func(t *testing.T) {
		tokens, _ := lex(t, "- a\n+ b\n")
		assert.Equal(t, []Kind{KindList, KindList}, kinds(tokens))
	})
}

func TestLexTable(t *testing.T) {
	t.Run("cells are reconciled with the header", func(t *testing.T) {
		tokens, _ := lex(t, "| a | b |\n|:--|--:|\n| 1 |\n| 1 | 2 | 3 |\n")
		require.Len(t, tokens, 1)
		table := tokens[0].(*Table)
		assert.Equal(t, []Align{AlignLeft, AlignRight}, table.Align)

		var rows [][]string
		for _, row := range table.Rows {
			var cells []string
			for _, c := range row {
				cells = append(cells, c.Text)
			}
			rows = append(rows, cells)
		}
		if diff := cmp.Diff([][]string{{"1", ""}, {"1", "2"}}, rows); diff != "" {
			t.Errorf("rows (-want +got):\n%s", diff)
		}
		assert.Equal(t, "a", table.Header[0].Text)
		assert.True(t, table.Header[0].Header)
		assert.Equal(t, AlignRight, table.Rows[0][1].Align)
	})

	t.Run("alignment", func(t *testing.T) {
		tokens, _ := lex(t, "a | b | c | d\n--- | :---: | ---: | :---\n")
		table := tokens[0].(*Table)
		assert.Equal(t, []Align{AlignNone, AlignCenter, AlignRight, AlignLeft}, table.Align)
		assert.Empty(t, table.Rows)
	})

	t.Run("escaped pipe", func(t *testing.T) {
		tokens, _ := lex(t, "| a | b |\n|---|---|\n| x \\| y | z |\n")
		table := tokens[0].(*Table)
		require.Len(t, table.Rows, 1)
		assert.Equal(t, "x | y", table.Rows[0][0].Text)
	})

	t.Run("column count mismatch", func(t *testing.T) {
		tokens, _ := lex(t, "| a | b |\n|---|\n")
		require.Len(t, tokens, 1)
		assert.Equal(t, KindParagraph, tokens[0].Kind())
	})

	t.Run("cells are inline lexed", func(t *testing.T) {
		tokens, _ := lex(t, "| *a* |\n|---|\n")
		table := tokens[0].(*Table)
		assert.Equal(t, []Kind{KindEm}, kinds(table.Header[0].Tokens))
	})
}

func TestLexReferences(t *testing.T) {
	t.Run("first definition wins", func(t *testing.T) {
		tokens, l := lex(t, "[foo]: /first\n[foo]: /second\n\n[text][foo]\n")
		assert.Equal(t, "/first", l.Links()["foo"].Href)
		link, ok := find(tokens, KindLink).(*Link)
		require.True(t, ok)
		assert.Equal(t, "/first", link.Href)
	})

	t.Run("labels are normalized", func(t *testing.T) {
		tokens, _ := lex(t, "[Foo  Bar]\n\n[foo bar]: /x \"T\"\n")
		link, ok := find(tokens, KindLink).(*Link)
		require.True(t, ok)
		assert.Equal(t, "/x", link.Href)
		assert.Equal(t, "T", link.Title)
	})

	t.Run("unknown label stays text", func(t *testing.T) {
		tokens, _ := lex(t, "[missing]\n")
		p := tokens[0].(*Paragraph)
		require.Len(t, p.Tokens, 1)
		assert.Equal(t, "[missing]", p.Tokens[0].(*Text).Text)
	})

	t.Run("definition after text is merged", func(t *testing.T) {
		tokens, l := lex(t, "- item\n  [x]: /y\n")
		assert.Empty(t, l.Links())
		item := tokens[0].(*List).Items[0]
		require.Len(t, item.Tokens, 1)
		assert.Equal(t, "item\n[x]: /y", item.Tokens[0].(*Text).Text)
	})
}

func TestLexAlert(t *testing.T) {
	cases := []struct {
		src     string
		variant AlertVariant
	}{
		{"> [!NOTE]\n> Be careful\n", AlertNote},
		{"> [!TIP]\n> Be careful\n", AlertTip},
		{"> **Warning**\n> Be careful\n", AlertWarning},
		{"> [!IMPORTANT]\n> Be careful\n", AlertImportant},
		{"> [!CAUTION]\n> Be careful\n", AlertCaution},
	}
	for _, c := range cases {
		t.Run(c.variant.String(), func(t *testing.T) {
			tokens, _ := lex(t, c.src)
			require.Len(t, tokens, 1)
			alert, ok := tokens[0].(*Alert)
			require.True(t, ok, "got %s", tokens[0].Kind())
			assert.Equal(t, c.variant, alert.Variant)
			require.Len(t, alert.Tokens, 1)
			assert.Equal(t, "Be careful", alert.Tokens[0].(*Paragraph).Text)
			assert.Contains(t, alert.Variant.Icon(), "<svg")
		})
	}

	t.Run("plain blockquote", func(t *testing.T) {
		tokens, _ := lex(t, "> [!OTHER]\n> text\n")
		assert.Equal(t, KindBlockquote, tokens[0].Kind())
	})
}

func TestLexFootnote(t *testing.T) {
	tokens, _ := lex(t, "Text[^1].\n\n[^1]: The note.\n    More.\n")
	require.Equal(t, []Kind{KindParagraph, KindSpace, KindFootnote}, kinds(tokens))

	p := tokens[0].(*Paragraph)
	assert.Equal(t, []Kind{KindText, KindFootnoteRef, KindText}, kinds(p.Tokens))
	assert.Equal(t, "1", p.Tokens[1].(*FootnoteRef).Label)

	fn := tokens[2].(*Footnote)
	assert.Equal(t, "1", fn.Label)
	assert.True(t, strings.HasPrefix(fn.Text, "The note.\nMore. "))
	assert.Contains(t, fn.Text, `href="#footnote-ref-1"`)
	assert.Equal(t, &SourceMap{3, 4}, fn.SourceMap)

	t.Run("labels are case folded", func(t *testing.T) {
		tokens, _ := lex(t, "a[^Note]\n\n[^note]: x\n")
		p := tokens[0].(*Paragraph)
		require.Equal(t, []Kind{KindText, KindFootnoteRef}, kinds(p.Tokens))
		assert.Equal(t, "note", p.Tokens[1].(*FootnoteRef).Label)
	})

	t.Run("undefined reference", func(t *testing.T) {
		tokens, _ := lex(t, "See [^nope]\n")
		p := tokens[0].(*Paragraph)
		require.Len(t, p.Tokens, 1)
		assert.Equal(t, "See [^nope]", p.Tokens[0].(*Text).Text)
	})
}

func TestLexCode(t *testing.T) {
	t.Run("fenced", func(t *testing.T) {
		tokens, _ := lex(t, "```go\nx := 1\n```\n")
		code := tokens[0].(*Code)
		assert.Equal(t, KindFencedCode, code.Kind())
		assert.Equal(t, "go", code.Lang)
		assert.Equal(t, "x := 1", code.Text)
	})

	t.Run("unterminated fence", func(t *testing.T) {
		tokens, _ := lex(t, "~~~\nopen\n")
		code := tokens[0].(*Code)
		assert.Equal(t, "open", code.Text)
		assert.Equal(t, "~~~\nopen\n", code.Raw)
	})

	t.Run("indented", func(t *testing.T) {
		tokens, _ := lex(t, "    a\n    b\n")
		code := tokens[0].(*Code)
		assert.Equal(t, KindIndentedCode, code.Kind())
		assert.Equal(t, "a\nb", code.Text)
	})

	t.Run("indented code does not interrupt a paragraph", func(t *testing.T) {
		tokens, _ := lex(t, "para\n    code\n")
		require.Len(t, tokens, 1)
		assert.Equal(t, "para\n    code", tokens[0].(*Paragraph).Text)
	})
}

func TestLexReuse(t *testing.T) {
	l := New()
	_, err := l.Lex("[a]: /one\n")
	require.NoError(t, err)
	tokens, err := l.Lex("[a]\n")
	require.NoError(t, err)
	assert.Empty(t, l.Links())
	assert.Nil(t, find(tokens, KindLink))
	assert.Equal(t, &SourceMap{1, 1}, tokens[0].GetSourceMap())
}

func TestCoverageError(t *testing.T) {
	err := &CoverageError{Inline: true, Offset: 4, Snippet: "x"}
	assert.Equal(t, `lexer: no inline rule matched at offset 4: "x"`, err.Error())

	t.Run("returned instead of raised", func(t *testing.T) {
		l := New()
		tokens, err := guard(func() []Token {
			l.blockTokens("[a]: /x\n\n*b*\n", true, true)
			panic(&CoverageError{Offset: 3, Snippet: "b*"})
		})
		assert.Nil(t, tokens)
		var cerr *CoverageError
		require.ErrorAs(t, err, &cerr)
		assert.Equal(t, 3, cerr.Offset)
		assert.False(t, cerr.Inline)

		// the lexer starts over on the next document
		tokens, err = l.Lex("[a]\n")
		require.NoError(t, err)
		assert.Empty(t, l.Links())
		assert.Equal(t, []Kind{KindParagraph}, kinds(tokens))
		assert.Equal(t, &SourceMap{1, 1}, tokens[0].GetSourceMap())
	})

	t.Run("other panics pass through", func(t *testing.T) {
		assert.PanicsWithValue(t, "boom", func() {
			_, _ = guard(func() []Token { panic("boom") })
		})
	})
}
