// SPDX-License-Identifier: MPL-2.0

package part

import (
	"errors"
	"os"
	"path/filepath"
	"testing"

	"github.com/unistylus/unistylus/internal/variable"

	"github.com/spf13/afero"
)

const (
	testSrc = "/project/src"
	testOut = "/project/dist"
)

var errInjected = errors.New("injected read failure")

// failingFs fails every open of one path, leaving the rest of the tree intact.
type failingFs struct {
	afero.Fs
	failPath string
}

func (f failingFs) Open(name string) (afero.File, error) {
	if filepath.Clean(name) == filepath.Clean(f.failPath) {
		return nil, &os.PathError{Op: "open", Path: name, Err: errInjected}
	}
	return f.Fs.Open(name)
}

func (f failingFs) OpenFile(name string, flag int, perm os.FileMode) (afero.File, error) {
	if filepath.Clean(name) == filepath.Clean(f.failPath) {
		return nil, &os.PathError{Op: "open", Path: name, Err: errInjected}
	}
	return f.Fs.OpenFile(name, flag, perm)
}

func newTree(t *testing.T, files map[string]string) afero.Fs {
	t.Helper()

	fs := afero.NewMemMapFs()
	for path, content := range files {
		full := filepath.Join(testSrc, filepath.FromSlash(path))
		if err := fs.MkdirAll(filepath.Dir(full), 0o755); err != nil {
			t.Fatalf("mkdir %s: %v", full, err)
		}
		if err := afero.WriteFile(fs, full, []byte(content), 0o644); err != nil {
			t.Fatalf("write %s: %v", full, err)
		}
	}
	return fs
}

func mkdir(t *testing.T, fs afero.Fs, rel string) {
	t.Helper()

	if err := fs.MkdirAll(filepath.Join(testSrc, filepath.FromSlash(rel)), 0o755); err != nil {
		t.Fatalf("mkdir %s: %v", rel, err)
	}
}

func table(axes ...any) *variable.Table {
	t := variable.NewTable()
	for i := 0; i < len(axes); i += 2 {
		t.Set(axes[i].(string), axes[i+1].(variable.Axis))
	}
	return t
}

func exportPaths(items []Item) []string {
	paths := make([]string, len(items))
	for i, it := range items {
		paths[i] = it.ExportPath
	}
	return paths
}

func contentOf(t *testing.T, items []Item, exportPath string) string {
	t.Helper()

	for _, it := range items {
		if it.ExportPath == exportPath {
			return it.StyleContent
		}
	}
	t.Fatalf("no item with export path %q in %v", exportPath, exportPaths(items))
	return ""
}
