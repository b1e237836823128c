package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParse(t *testing.T) {
	t.Run("all keys", func(t *testing.T) {
		cfg, err := Parse([]byte("relativeImageUrlPrefix: /static/\ndetailsTagDefaultOpen: true\ncodeCopy: true\ntheme: monokai\n"))
		require.NoError(t, err)
		want := Config{RelativeImageURLPrefix: "/static/", DetailsTagDefaultOpen: true, CodeCopy: true, Theme: "monokai"}
		if diff := cmp.Diff(want, cfg); diff != "" {
			t.Errorf("Parse() (-want +got):\n%s", diff)
		}
	})

	t.Run("defaults", func(t *testing.T) {
		cfg, err := Parse([]byte("codeCopy: true\n"))
		require.NoError(t, err)
		assert.True(t, cfg.CodeCopy)
		assert.Equal(t, Default().Theme, cfg.Theme)
	})

	t.Run("invalid", func(t *testing.T) {
		_, err := Parse([]byte("codeCopy: [\n"))
		assert.Error(t, err)
	})
}

func TestLoad(t *testing.T) {
	path := filepath.Join(t.TempDir(), "mdpreview.yaml")
	require.NoError(t, os.WriteFile(path, []byte("relativeImageUrlPrefix: img/\n"), 0o644))

	cfg, err := Load(path)
	require.NoError(t, err)
	assert.Equal(t, "img/", cfg.RelativeImageURLPrefix)

	_, err = Load(filepath.Join(t.TempDir(), "missing.yaml"))
	assert.ErrorIs(t, err, os.ErrNotExist)
}
