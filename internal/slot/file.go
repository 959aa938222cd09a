package slot

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
)

// FileStore keeps each slot in its own file, <dir>/<name>.json.
type FileStore struct {
	dir string
}

// NewFileStore creates dir (mode 0700) if needed and returns a FileStore over it.
func NewFileStore(dir string) (*FileStore, error) {
	if err := os.MkdirAll(dir, 0700); err != nil {
		return nil, fmt.Errorf("failed to create data directory: %w", err)
	}
	return &FileStore{dir: dir}, nil
}

// Dir returns the data directory.
func (f *FileStore) Dir() string { return f.dir }

func (f *FileStore) path(name string) string {
	return filepath.Join(f.dir, name+".json")
}

// Get implements Store.
func (f *FileStore) Get(ctx context.Context, name string) ([]byte, bool, error) {
	if err := checkName(name); err != nil {
		return nil, false, err
	}
	data, err := os.ReadFile(f.path(name))
	if err != nil {
		if os.IsNotExist(err) {
			return nil, false, nil
		}
		return nil, false, fmt.Errorf("failed to read slot %s: %w", name, err)
	}
	return data, true, nil
}

// Set implements Store. The write goes through a temp file and a rename so a
// crash never leaves a partially written slot.
func (f *FileStore) Set(ctx context.Context, name string, value []byte) error {
	if err := checkName(name); err != nil {
		return err
	}
	if err := ctx.Err(); err != nil {
		return err
	}

	path := f.path(name)
	tmpPath := path + ".tmp"
	if err := os.WriteFile(tmpPath, value, 0600); err != nil {
		return fmt.Errorf("failed to write slot %s: %w", name, err)
	}
	if err := os.Rename(tmpPath, path); err != nil {
		os.Remove(tmpPath)
		return fmt.Errorf("failed to rename slot %s: %w", name, err)
	}
	return nil
}

// Close implements Store.
func (f *FileStore) Close() error { return nil }
