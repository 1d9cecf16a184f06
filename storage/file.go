package storage

import (
	"context"
	"errors"
	"fmt"
	"io/fs"
	"path"
	"strings"

	"github.com/spf13/afero"
)

const (
	fileExt = ".json"
	tmpExt  = ".tmp"
)

// FileBackend keeps one JSON file per key inside a directory.
type FileBackend struct {
	fs  afero.Fs
	dir string
}

// NewFileBackend creates the directory if needed and returns a backend
// storing its values there.
func NewFileBackend(fsys afero.Fs, dir string) (*FileBackend, error) {
	if err := fsys.MkdirAll(dir, 0o755); err != nil {
		return nil, fmt.Errorf("failed to create data directory %s: %w", dir, err)
	}

	return &FileBackend{fs: fsys, dir: dir}, nil
}

func (b *FileBackend) filename(key string) string {
	return path.Join(b.dir, key+fileExt)
}

// Get reads the file for key.
func (b *FileBackend) Get(_ context.Context, key string) ([]byte, error) {
	data, err := afero.ReadFile(b.fs, b.filename(key))
	if errors.Is(err, fs.ErrNotExist) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("failed to read %s: %w", key, err)
	}

	return data, nil
}

// Set writes value to a fresh temporary file and renames it over the old
// one, so concurrent writers never share a temporary file.
func (b *FileBackend) Set(_ context.Context, key string, value []byte) error {
	f, err := afero.TempFile(b.fs, b.dir, key+"-*"+tmpExt)
	if err != nil {
		return fmt.Errorf("failed to create temporary file for %s: %w", key, err)
	}
	tmp := f.Name()

	if _, err := f.Write(value); err != nil {
		f.Close()
		_ = b.fs.Remove(tmp)
		return fmt.Errorf("failed to write %s: %w", key, err)
	}
	if err := f.Close(); err != nil {
		_ = b.fs.Remove(tmp)
		return fmt.Errorf("failed to write %s: %w", key, err)
	}

	if err := b.fs.Rename(tmp, b.filename(key)); err != nil {
		_ = b.fs.Remove(tmp)
		return fmt.Errorf("failed to replace %s: %w", key, err)
	}

	return nil
}

// Clear removes every value file in the directory. Other files are left alone.
func (b *FileBackend) Clear(_ context.Context) error {
	entries, err := afero.ReadDir(b.fs, b.dir)
	if err != nil {
		return fmt.Errorf("failed to list %s: %w", b.dir, err)
	}

	for _, e := range entries {
		if e.IsDir() || !strings.HasSuffix(e.Name(), fileExt) {
			continue
		}
		if err := b.fs.Remove(path.Join(b.dir, e.Name())); err != nil {
			return fmt.Errorf("failed to remove %s: %w", e.Name(), err)
		}
	}

	return nil
}

// Close is a no-op for files.
func (b *FileBackend) Close() error {
	return nil
}
