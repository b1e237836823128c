package cmd

import (
	"bytes"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/gookit/color"
	"github.com/spf13/cobra"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/flytaly/mdpreview/pkg/lexer"
)

func noColor(t *testing.T) {
	old := color.Enable
	color.Enable = false
	t.Cleanup(func() { color.Enable = old })
}

func TestPrintTokens(t *testing.T) {
	noColor(t)
	tokens, err := lexer.New().Lex("# Title\n\n- a\n")
	require.NoError(t, err)

	var out bytes.Buffer
	printTokens(&out, tokens, 0)
	lines := strings.Split(strings.TrimRight(out.String(), "\n"), "\n")
	require.GreaterOrEqual(t, len(lines), 4)
	assert.True(t, strings.HasPrefix(lines[0], `Heading [1-1] "# Title`), lines[0])
	assert.Equal(t, `  Text "Title"`, lines[1])
	assert.Equal(t, `List [3-3] "- a\n"`, lines[2])
	assert.Equal(t, `  ListItem [3-3] "- a"`, lines[3])
}

func TestExcerpt(t *testing.T) {
	assert.Equal(t, `"short"`, excerpt("short", 10))
	assert.Equal(t, `"abcdefg..."`, excerpt("abcdefghijklmnop", 10))
}

func newTestCommand(args ...string) (*cobra.Command, error) {
	cmd := &cobra.Command{Use: "test"}
	addPersistentFlags(cmd)
	return cmd, cmd.ParseFlags(args)
}

func TestGetConfig(t *testing.T) {
	t.Setenv("HOME", t.TempDir())

	t.Run("flags override file", func(t *testing.T) {
		path := filepath.Join(t.TempDir(), "cfg.yaml")
		require.NoError(t, os.WriteFile(path, []byte("relativeImageUrlPrefix: /a/\ncodeCopy: true\n"), 0o644))

		cmd, err := newTestCommand("--config", path, "--image-prefix", "/b/", "--details-open")
		require.NoError(t, err)
		cfg, err := getConfig(cmd)
		require.NoError(t, err)
		assert.Equal(t, "/b/", cfg.RelativeImageURLPrefix)
		assert.True(t, cfg.DetailsTagDefaultOpen)
		assert.True(t, cfg.CodeCopy)
	})

	t.Run("home config", func(t *testing.T) {
		home := t.TempDir()
		t.Setenv("HOME", home)
		require.NoError(t, os.WriteFile(filepath.Join(home, defaultConfigName), []byte("theme: monokai\n"), 0o644))

		cmd, err := newTestCommand()
		require.NoError(t, err)
		cfg, err := getConfig(cmd)
		require.NoError(t, err)
		assert.Equal(t, "monokai", cfg.Theme)
	})

	t.Run("missing explicit config", func(t *testing.T) {
		cmd, err := newTestCommand("--config", filepath.Join(t.TempDir(), "nope.yaml"))
		require.NoError(t, err)
		_, err = getConfig(cmd)
		assert.Error(t, err)
	})
}

func TestRender(t *testing.T) {
	t.Setenv("HOME", t.TempDir())
	var out bytes.Buffer
	rootCmd.SetIn(strings.NewReader("*hi*\n"))
	rootCmd.SetOut(&out)
	rootCmd.SetArgs([]string{"render", "--fragment"})
	defer rootCmd.SetArgs(nil)

	require.NoError(t, rootCmd.Execute())
	assert.Equal(t, "<p line-start=\"1\" line-end=\"1\"><em>hi</em></p>\n", out.String())
}
