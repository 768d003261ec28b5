package attachment

import (
	"fmt"
	"io"
	"os"
	"path/filepath"
)

// FileStore is the blob half of the attachment resource.
type FileStore interface {
	Save(storedName string, src io.Reader) (int64, error)
	Open(storedName string) (io.ReadCloser, error)
	// Remove returns os.ErrNotExist (wrapped) when the file is already
	// gone; callers treat that as a non-fatal drift warning.
	Remove(storedName string) error
}

// DiskStore keeps attachment bytes as flat files under one directory.
// Stored names are already sanitized, so no path handling beyond Join.
type DiskStore struct {
	dir string
}

func NewDiskStore(dir string) (*DiskStore, error) {
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, fmt.Errorf("create upload dir: %w", err)
	}
	return &DiskStore{dir: dir}, nil
}

func (s *DiskStore) path(storedName string) string {
	return filepath.Join(s.dir, filepath.Base(storedName))
}

func (s *DiskStore) Save(storedName string, src io.Reader) (int64, error) {
	dst, err := os.Create(s.path(storedName))
	if err != nil {
		return 0, fmt.Errorf("create attachment file: %w", err)
	}
	defer dst.Close()

	n, err := io.Copy(dst, src)
	if err != nil {
		// remove the partial write; the row has not been created yet
		_ = os.Remove(s.path(storedName))
		return 0, fmt.Errorf("write attachment file: %w", err)
	}
	return n, nil
}

func (s *DiskStore) Open(storedName string) (io.ReadCloser, error) {
	return os.Open(s.path(storedName))
}

func (s *DiskStore) Remove(storedName string) error {
	return os.Remove(s.path(storedName))
}
