// SPDX-License-Identifier: MPL-2.0

package fsutil

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"

	"github.com/spf13/afero"
)

const (
	dirPerm  os.FileMode = 0o755
	filePerm os.FileMode = 0o644
)

// Exists reports whether path exists.
func Exists(fsys afero.Fs, path string) bool {
	_, err := fsys.Stat(path)
	return err == nil
}

// ClearDir empties dir, creating it when missing. The directory itself is
// kept so watchers and servers pointed at it survive.
func ClearDir(fsys afero.Fs, dir string) error {
	infos, err := afero.ReadDir(fsys, dir)
	if errors.Is(err, fs.ErrNotExist) {
		return fsys.MkdirAll(dir, dirPerm)
	}
	if err != nil {
		return fmt.Errorf("clear %s: %w", dir, err)
	}
	for _, info := range infos {
		if err := fsys.RemoveAll(filepath.Join(dir, info.Name())); err != nil {
			return fmt.Errorf("clear %s: %w", dir, err)
		}
	}
	return nil
}

// WriteFile writes content to path, creating parent directories.
func WriteFile(fsys afero.Fs, path string, content []byte) error {
	if err := fsys.MkdirAll(filepath.Dir(path), dirPerm); err != nil {
		return fmt.Errorf("write %s: %w", path, err)
	}
	if err := afero.WriteFile(fsys, path, content, filePerm); err != nil {
		return fmt.Errorf("write %s: %w", path, err)
	}
	return nil
}

// CopyPath copies a file, or a directory recursively, from src to dst.
func CopyPath(fsys afero.Fs, src, dst string) error {
	info, err := fsys.Stat(src)
	if err != nil {
		return fmt.Errorf("copy %s: %w", src, err)
	}
	if !info.IsDir() {
		return copyFile(fsys, src, dst)
	}
	return afero.Walk(fsys, src, func(path string, info os.FileInfo, err error) error {
		if err != nil {
			return err
		}
		rel, err := filepath.Rel(src, path)
		if err != nil {
			return err
		}
		target := filepath.Join(dst, rel)
		if info.IsDir() {
			return fsys.MkdirAll(target, dirPerm)
		}
		return copyFile(fsys, path, target)
	})
}

func copyFile(fsys afero.Fs, src, dst string) error {
	data, err := afero.ReadFile(fsys, src)
	if err != nil {
		return fmt.Errorf("copy %s: %w", src, err)
	}
	return WriteFile(fsys, dst, data)
}
