// Package fs provides the file system adapters: metadata queries, source resolution and the
// file operations behind built-in tasks.
package fs

import (
	"errors"
	"io/fs"
	"os"
	"time"

	"go.trai.ch/kumade/internal/core/ports"
	"go.trai.ch/zerr"
)

var _ ports.FileSystem = (*FileSystem)(nil)

// FileSystem implements ports.FileSystem on top of os.Stat.
// Every call hits the file system; nothing is cached.
type FileSystem struct{}

// NewFileSystem creates a new FileSystem.
func NewFileSystem() *FileSystem {
	return &FileSystem{}
}

// Exists reports whether path exists.
func (f *FileSystem) Exists(path string) (bool, error) {
	if _, err := os.Stat(path); err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return false, nil
		}
		return false, zerr.With(zerr.Wrap(err, "failed to stat path"), "path", path)
	}
	return true, nil
}

// LastModified returns the modification time of path.
func (f *FileSystem) LastModified(path string) (time.Time, error) {
	info, err := os.Stat(path)
	if err != nil {
		return time.Time{}, zerr.With(zerr.Wrap(err, "failed to stat path"), "path", path)
	}
	return info.ModTime(), nil
}

// IsDir reports whether path exists and is a directory.
func (f *FileSystem) IsDir(path string) (bool, error) {
	info, err := os.Stat(path)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return false, nil
		}
		return false, zerr.With(zerr.Wrap(err, "failed to stat path"), "path", path)
	}
	return info.IsDir(), nil
}

// RemoveAll deletes every path. Paths that do not exist are ignored.
func RemoveAll(paths ...string) error {
	for _, path := range paths {
		if err := os.RemoveAll(path); err != nil {
			return zerr.With(zerr.Wrap(err, "failed to remove path"), "path", path)
		}
	}
	return nil
}

// MkdirAll creates path and any missing parents.
func MkdirAll(path string) error {
	if err := os.MkdirAll(path, 0o750); err != nil {
		return zerr.With(zerr.Wrap(err, "failed to create directory"), "path", path)
	}
	return nil
}
