package storage

import (
	"context"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"

	"github.com/google/uuid"
)

// FileStore keeps each collection in <dir>/<collection>.json.
type FileStore struct {
	dir string
}

// NewFileStore returns a FileStore rooted at dir, creating the directory if
// it does not exist.
func NewFileStore(dir string) (*FileStore, error) {
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, fmt.Errorf("storage.NewFileStore: %w", err)
	}
	return &FileStore{dir: dir}, nil
}

// Path returns the file backing the named collection.
func (s *FileStore) Path(collection string) string {
	return filepath.Join(s.dir, collection+".json")
}

// Load reads the collection file. A missing file is an empty collection.
func (s *FileStore) Load(_ context.Context, collection string) ([]byte, error) {
	if err := validateName(collection); err != nil {
		return nil, err
	}
	data, err := os.ReadFile(s.Path(collection))
	if errors.Is(err, fs.ErrNotExist) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("storage.FileStore.Load: %w", err)
	}
	return data, nil
}

// Save writes data to a uniquely named temp file in the same directory, syncs
// it and renames it over the collection file, so readers never observe a
// partially written document.
func (s *FileStore) Save(_ context.Context, collection string, data []byte) error {
	if err := validateName(collection); err != nil {
		return err
	}
	target := s.Path(collection)
	tmp := filepath.Join(s.dir, "."+collection+"."+uuid.NewString()+".tmp")

	if err := writeSynced(tmp, data); err != nil {
		_ = os.Remove(tmp)
		return fmt.Errorf("storage.FileStore.Save: %w", err)
	}
	if err := os.Rename(tmp, target); err != nil {
		_ = os.Remove(tmp)
		return fmt.Errorf("storage.FileStore.Save: rename: %w", err)
	}
	return nil
}

func writeSynced(path string, data []byte) error {
	f, err := os.OpenFile(path, os.O_WRONLY|os.O_CREATE|os.O_EXCL, 0o644)
	if err != nil {
		return err
	}
	if _, err := f.Write(data); err != nil {
		f.Close()
		return err
	}
	if err := f.Sync(); err != nil {
		f.Close()
		return err
	}
	return f.Close()
}
