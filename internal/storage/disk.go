package storage

import (
	"io"
	"os"
	"path/filepath"
)

// DiskStore is the OS-backed PathStore.
type DiskStore struct{}

// NewDiskStore creates a disk-backed store.
func NewDiskStore() *DiskStore {
	return &DiskStore{}
}

// Exists reports whether path exists.
func (s *DiskStore) Exists(path string) bool {
	_, err := os.Stat(path)
	return err == nil
}

// Stat returns metadata for path.
func (s *DiskStore) Stat(path string) (FileInfo, error) {
	info, err := os.Stat(path)
	if err != nil {
		return FileInfo{}, err
	}
	return FileInfo{
		Name:     info.Name(),
		Size:     info.Size(),
		IsDir:    info.IsDir(),
		Modified: info.ModTime(),
	}, nil
}

// List returns the full paths of path's direct children in name order.
func (s *DiskStore) List(path string) ([]string, error) {
	entries, err := os.ReadDir(path)
	if err != nil {
		return nil, err
	}
	children := make([]string, 0, len(entries))
	for _, entry := range entries {
		children = append(children, filepath.Join(path, entry.Name()))
	}
	return children, nil
}

// MkdirAll creates path and any missing parents.
func (s *DiskStore) MkdirAll(path string) error {
	return os.MkdirAll(path, 0o755)
}

// OpenRead opens path for sequential reading.
func (s *DiskStore) OpenRead(path string) (io.ReadCloser, error) {
	return os.Open(path)
}

// OpenReaderAt opens path for random-access reading and reports its size.
func (s *DiskStore) OpenReaderAt(path string) (ReaderAtCloser, int64, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, 0, err
	}
	info, err := f.Stat()
	if err != nil {
		f.Close()
		return nil, 0, err
	}
	return f, info.Size(), nil
}

// OpenWrite opens path for writing, truncating any existing file.
func (s *DiskStore) OpenWrite(path string) (io.WriteCloser, error) {
	return os.Create(path)
}

// Remove deletes a file or empty directory.
func (s *DiskStore) Remove(path string) error {
	return os.Remove(path)
}

// RemoveAll deletes path recursively.
func (s *DiskStore) RemoveAll(path string) error {
	return os.RemoveAll(path)
}
