package testutils

import (
	"io/fs"
	"os"
	"path"
	"path/filepath"
	"testing"
	"testing/fstest"
	"time"

	"github.com/google/go-cmp/cmp"
	"github.com/google/go-cmp/cmp/cmpopts"
)

// Compare reports the difference between two slices of paths.
// Order is not significant.
func Compare(t *testing.T, got, want []string) {
	t.Helper()
	less := func(a, b string) bool { return a < b }
	if diff := cmp.Diff(want, got, cmpopts.SortSlices(less), cmpopts.EquateEmpty()); diff != "" {
		t.Errorf("paths mismatch (-want +got):\n%s", diff)
	}
}

// MapFS returns fs with empty files and folders from a slice with filenames.
// Names without an extension are folders.
func MapFS(files []string, modTime time.Time) fstest.MapFS {
	fsys := fstest.MapFS{}
	for _, v := range files {
		if path.Ext(v) == "" {
			fsys[v] = &fstest.MapFile{Mode: fs.ModeDir, ModTime: modTime}
			continue
		}
		fsys[v] = &fstest.MapFile{ModTime: modTime}
	}
	return fsys
}

// WriteFiles creates files with the given content under root.
// Keys are slash separated paths.
func WriteFiles(t *testing.T, root string, files map[string]string) {
	t.Helper()
	for name, content := range files {
		p := filepath.Join(root, filepath.FromSlash(name))
		if err := os.MkdirAll(filepath.Dir(p), 0o755); err != nil {
			t.Fatal(err)
		}
		if err := os.WriteFile(p, []byte(content), 0o644); err != nil {
			t.Fatal(err)
		}
	}
}
