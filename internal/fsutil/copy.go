// SPDX-License-Identifier: MPL-2.0

package fsutil

import (
	"fmt"
	"path/filepath"

	"github.com/bmatcuk/doublestar/v4"
	"github.com/spf13/afero"
)

// CopySpec copies From, relative to a source directory, to To, relative to
// a destination directory. When From is a glob, every match is copied under
// To's static prefix, keeping its path relative to From's static prefix:
// {From: "assets/**/*.svg", To: "icons"} copies assets/a/b.svg to icons/a/b.svg.
type CopySpec struct {
	From string
	To   string
}

// Copies applies specs in order. Globs matching nothing copy nothing; a
// missing literal path is an error.
func Copies(fsys afero.Fs, srcDir, dstDir string, specs []CopySpec) error {
	for _, spec := range specs {
		if err := copySpec(fsys, srcDir, dstDir, spec); err != nil {
			return err
		}
	}
	return nil
}

func copySpec(fsys afero.Fs, srcDir, dstDir string, spec CopySpec) error {
	from := filepath.ToSlash(spec.From)
	if !hasMeta(from) {
		return CopyPath(fsys, filepath.Join(srcDir, filepath.FromSlash(from)), filepath.Join(dstDir, filepath.FromSlash(spec.To)))
	}

	fromBase, _ := doublestar.SplitPattern(from)
	toBase := filepath.ToSlash(spec.To)
	if hasMeta(toBase) {
		toBase, _ = doublestar.SplitPattern(toBase)
	}

	matches, err := Glob(fsys, srcDir, from)
	if err != nil {
		return err
	}
	for _, m := range matches {
		rel, err := filepath.Rel(filepath.FromSlash(fromBase), filepath.FromSlash(m))
		if err != nil {
			return fmt.Errorf("copy %s: %w", m, err)
		}
		src := filepath.Join(srcDir, filepath.FromSlash(m))
		dst := filepath.Join(dstDir, filepath.FromSlash(toBase), rel)
		if err := CopyPath(fsys, src, dst); err != nil {
			return err
		}
	}
	return nil
}

// Glob returns the slash-separated files under root matching pattern.
func Glob(fsys afero.Fs, root, pattern string) ([]string, error) {
	iofs := afero.NewIOFS(afero.NewBasePathFs(fsys, root))
	matches, err := doublestar.Glob(iofs, pattern, doublestar.WithFilesOnly())
	if err != nil {
		return nil, fmt.Errorf("glob %s: %w", pattern, err)
	}
	return matches, nil
}

func hasMeta(p string) bool {
	for _, c := range p {
		switch c {
		case '*', '?', '[', '{':
			return true
		}
	}
	return false
}
