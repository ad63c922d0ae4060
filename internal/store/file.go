package store

import (
	"context"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
)

// FileBackend keeps every collection in <dir>/<name>.json.
type FileBackend struct {
	dir string
}

func NewFileBackend(dir string) (*FileBackend, error) {
	if dir == "" {
		return nil, fmt.Errorf("data dir is empty")
	}
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, fmt.Errorf("create data dir %q: %w", dir, err)
	}
	return &FileBackend{dir: dir}, nil
}

func (b *FileBackend) Dir() string { return b.dir }

func (b *FileBackend) path(name string) string {
	return filepath.Join(b.dir, name+".json")
}

func (b *FileBackend) Load(ctx context.Context, name string) ([]byte, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	data, err := os.ReadFile(b.path(name))
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return nil, &StorageError{Op: "load", Collection: name, Err: ErrNotFound}
		}
		return nil, &StorageError{Op: "load", Collection: name, Err: err}
	}
	return data, nil
}

// Save writes to a temp file in the same directory and renames it over the
// target, so readers never observe a half-written collection.
func (b *FileBackend) Save(ctx context.Context, name string, data []byte) error {
	if err := ctx.Err(); err != nil {
		return err
	}

	tmp, err := os.CreateTemp(b.dir, name+".*.tmp")
	if err != nil {
		return &StorageError{Op: "save", Collection: name, Err: err}
	}
	tmpName := tmp.Name()

	if _, err := tmp.Write(data); err != nil {
		_ = tmp.Close()
		_ = os.Remove(tmpName)
		return &StorageError{Op: "save", Collection: name, Err: err}
	}
	if err := tmp.Close(); err != nil {
		_ = os.Remove(tmpName)
		return &StorageError{Op: "save", Collection: name, Err: err}
	}
	if err := os.Rename(tmpName, b.path(name)); err != nil {
		_ = os.Remove(tmpName)
		return &StorageError{Op: "save", Collection: name, Err: err}
	}
	return nil
}
