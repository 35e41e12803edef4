package store

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
)

// FileKV is a KV backed by one file per key under a data directory, giving
// the dashboard durable local storage without any external service.
type FileKV struct {
	dir string
}

// NewFileKV creates a file-backed store rooted at dir, creating the
// directory if necessary.
func NewFileKV(dir string) (*FileKV, error) {
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, fmt.Errorf("create data dir %q: %w", dir, err)
	}
	return &FileKV{dir: dir}, nil
}

// Get implements the KV interface.
func (f *FileKV) Get(ctx context.Context, key string) ([]byte, bool, error) {
	raw, err := os.ReadFile(f.path(key))
	if os.IsNotExist(err) {
		return nil, false, nil
	}
	if err != nil {
		return nil, false, fmt.Errorf("read key %q: %w", key, err)
	}
	return raw, true, nil
}

// Set implements the KV interface. The value is written to a temporary file
// first so a crash mid-write cannot corrupt the stored collection.
func (f *FileKV) Set(ctx context.Context, key string, value []byte) error {
	path := f.path(key)
	tmp := path + ".tmp"
	if err := os.WriteFile(tmp, value, 0o644); err != nil {
		return fmt.Errorf("write key %q: %w", key, err)
	}
	if err := os.Rename(tmp, path); err != nil {
		return fmt.Errorf("finalize key %q: %w", key, err)
	}
	return nil
}

// Delete implements the KV interface.
func (f *FileKV) Delete(ctx context.Context, key string) error {
	err := os.Remove(f.path(key))
	if err != nil && !os.IsNotExist(err) {
		return fmt.Errorf("delete key %q: %w", key, err)
	}
	return nil
}

func (f *FileKV) path(key string) string {
	return filepath.Join(f.dir, key+".json")
}

// Ensure FileKV implements the KV interface.
var _ KV = (*FileKV)(nil)
