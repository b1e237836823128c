package preview

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/gookit/color"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/flytaly/mdpreview"
	"github.com/flytaly/mdpreview/pkg/fswatcher"
	"github.com/flytaly/mdpreview/pkg/log"
	"github.com/flytaly/mdpreview/testutils"
)

func setup(t *testing.T) (model, string) {
	t.Helper()
	old := color.Enable
	color.Enable = false
	t.Cleanup(func() { color.Enable = old })

	root := t.TempDir()
	testutils.WriteFiles(t, root, map[string]string{
		"docs/a.md":  "# A\n",
		"docs/b.txt": "b",
	})

	logger := log.NewChanLog(16, nil)
	m, err := newModel(ProgramCfg{
		Root:      root,
		Paths:     []string{filepath.Join(root, "docs")},
		Interval:  fswatcher.MinInterval,
		Converter: mdpreview.New(mdpreview.WithLogger(logger)),
		Log:       logger,
	})
	require.NoError(t, err)
	t.Cleanup(func() { _ = m.poller.Close() })
	return m, root
}

func keyMsg(s string) tea.KeyMsg {
	return tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune(s)}
}

func TestNewModel(t *testing.T) {
	m, _ := setup(t)
	assert.Equal(t, []string{"docs/a.md"}, m.files)
	assert.True(t, m.watching)

	_, err := newModel(ProgramCfg{Root: t.TempDir(), Paths: []string{"../x"}})
	assert.Error(t, err)

	empty := t.TempDir()
	_, err = newModel(ProgramCfg{Root: empty, Paths: []string{"."}})
	assert.Error(t, err)
}

func TestRelative(t *testing.T) {
	rel, err := relative("/root", "/root/a/b.md")
	require.NoError(t, err)
	assert.Equal(t, "a/b.md", rel)

	rel, err = relative("/root", "./a/../c.md")
	require.NoError(t, err)
	assert.Equal(t, "c.md", rel)

	_, err = relative("/root", "/other/c.md")
	assert.Error(t, err)
}

func TestRender(t *testing.T) {
	m, root := setup(t)
	msg := m.render("docs/a.md")()
	rendered, ok := msg.(renderedMsg)
	require.True(t, ok)
	require.NoError(t, rendered.err)

	data, err := os.ReadFile(filepath.Join(root, "docs", "a.html"))
	require.NoError(t, err)
	assert.Contains(t, string(data), `id="a"`)

	next, _ := m.Update(rendered)
	assert.Contains(t, next.(model).rendered, "docs/a.md")
}

func TestUpdate(t *testing.T) {
	t.Run("toggle log", func(t *testing.T) {
		m, _ := setup(t)
		next, _ := m.Update(keyMsg("l"))
		assert.True(t, next.(model).showLog)
		next, _ = next.Update(keyMsg("l"))
		assert.False(t, next.(model).showLog)
	})

	t.Run("toggle watch", func(t *testing.T) {
		m, _ := setup(t)
		next, cmd := m.Update(keyMsg("w"))
		assert.False(t, next.(model).watching)
		assert.Nil(t, cmd)
		assert.Contains(t, next.View(), "Paused")

		next, cmd = next.Update(keyMsg("w"))
		assert.True(t, next.(model).watching)
		assert.NotNil(t, cmd)
	})

	t.Run("write event renders", func(t *testing.T) {
		m, _ := setup(t)
		_, cmd := m.Update(eventMsg{Name: "docs/a.md", Op: fswatcher.Write})
		assert.NotNil(t, cmd)
	})

	t.Run("remove event is logged", func(t *testing.T) {
		m, _ := setup(t)
		m.rendered["docs/a.md"] = time.Now()
		next, _ := m.Update(eventMsg{Name: "docs/a.md", Op: fswatcher.Remove})
		assert.NotContains(t, next.(model).rendered, "docs/a.md")
		r := <-m.logger.Records()
		assert.Equal(t, log.LevelWarning, r.Level)
	})

	t.Run("log records are kept", func(t *testing.T) {
		m, _ := setup(t)
		var next tea.Model = m
		for i := 0; i < maxLogRecords+5; i++ {
			next, _ = next.Update(log.Record{Message: "x"})
		}
		assert.Len(t, next.(model).logs, maxLogRecords)
	})

	t.Run("quit", func(t *testing.T) {
		m, _ := setup(t)
		next, cmd := m.Update(keyMsg("q"))
		assert.True(t, next.(model).quitting)
		assert.NotNil(t, cmd)
		assert.Empty(t, next.View())
	})
}

func TestView(t *testing.T) {
	m, root := setup(t)
	m.showLog = true
	m.logs = []log.Record{{Time: time.Date(2024, 1, 1, 10, 0, 0, 0, time.UTC), Message: "hello"}}
	view := m.View()
	assert.Contains(t, view, "Watching "+root)
	assert.Contains(t, view, "pending")
	assert.Contains(t, view, "docs/a.md")
	assert.Contains(t, view, "10:00:00 INFO  hello")
}

func TestTail(t *testing.T) {
	assert.Equal(t, "short", tail("short", 10))
	assert.Equal(t, "...klmnop", tail("abcdefghijklmnop", 9))
}
