package storage

import (
	"bytes"
	"fmt"
	"io"
	"io/fs"
	"path/filepath"
	"sort"
	"strings"
	"sync"
	"time"
)

// MemStore is an in-memory PathStore for tests and ephemeral use.
// It mirrors the disk store's semantics: writes require an existing parent
// directory, List returns children in name order, and RemoveAll of a
// missing path succeeds.
type MemStore struct {
	mu    sync.RWMutex
	files map[string]memFile
	dirs  map[string]bool
}

type memFile struct {
	data     []byte
	modified time.Time
}

// NewMemStore creates an empty in-memory store.
func NewMemStore() *MemStore {
	return &MemStore{
		files: make(map[string]memFile),
		dirs:  map[string]bool{sep(): true},
	}
}

func sep() string {
	return string(filepath.Separator)
}

func clean(path string) string {
	return filepath.Clean(path)
}

// Exists reports whether path exists.
func (s *MemStore) Exists(path string) bool {
	s.mu.RLock()
	defer s.mu.RUnlock()
	p := clean(path)
	_, file := s.files[p]
	return file || s.dirs[p]
}

// Stat returns metadata for path.
func (s *MemStore) Stat(path string) (FileInfo, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	p := clean(path)
	if f, ok := s.files[p]; ok {
		return FileInfo{
			Name:     filepath.Base(p),
			Size:     int64(len(f.data)),
			Modified: f.modified,
		}, nil
	}
	if s.dirs[p] {
		return FileInfo{Name: filepath.Base(p), IsDir: true}, nil
	}
	return FileInfo{}, &fs.PathError{Op: "stat", Path: path, Err: fs.ErrNotExist}
}

// List returns the full paths of path's direct children in name order.
func (s *MemStore) List(path string) ([]string, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	p := clean(path)
	if _, ok := s.files[p]; ok {
		return nil, &fs.PathError{Op: "list", Path: path, Err: fmt.Errorf("not a directory")}
	}
	if !s.dirs[p] {
		return nil, &fs.PathError{Op: "list", Path: path, Err: fs.ErrNotExist}
	}

	seen := make(map[string]bool)
	for candidate := range s.files {
		if filepath.Dir(candidate) == p {
			seen[candidate] = true
		}
	}
	for candidate := range s.dirs {
		if candidate != p && filepath.Dir(candidate) == p {
			seen[candidate] = true
		}
	}

	children := make([]string, 0, len(seen))
	for child := range seen {
		children = append(children, child)
	}
	sort.Strings(children)
	return children, nil
}

// MkdirAll creates path and any missing parents.
func (s *MemStore) MkdirAll(path string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	p := clean(path)
	if _, ok := s.files[p]; ok {
		return &fs.PathError{Op: "mkdir", Path: path, Err: fmt.Errorf("not a directory")}
	}
	for dir := p; ; dir = filepath.Dir(dir) {
		s.dirs[dir] = true
		if dir == filepath.Dir(dir) {
			break
		}
	}
	return nil
}

// OpenRead opens path for sequential reading.
func (s *MemStore) OpenRead(path string) (io.ReadCloser, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	f, ok := s.files[clean(path)]
	if !ok {
		return nil, &fs.PathError{Op: "open", Path: path, Err: fs.ErrNotExist}
	}
	return io.NopCloser(bytes.NewReader(f.data)), nil
}

// OpenReaderAt opens path for random-access reading and reports its size.
func (s *MemStore) OpenReaderAt(path string) (ReaderAtCloser, int64, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	f, ok := s.files[clean(path)]
	if !ok {
		return nil, 0, &fs.PathError{Op: "open", Path: path, Err: fs.ErrNotExist}
	}
	return nopReaderAtCloser{bytes.NewReader(f.data)}, int64(len(f.data)), nil
}

// OpenWrite opens path for writing. The parent directory must exist; bytes
// become visible atomically when the returned sink is closed.
func (s *MemStore) OpenWrite(path string) (io.WriteCloser, error) {
	s.mu.RLock()
	p := clean(path)
	parentOK := s.dirs[filepath.Dir(p)]
	isDir := s.dirs[p]
	s.mu.RUnlock()

	if isDir {
		return nil, &fs.PathError{Op: "create", Path: path, Err: fmt.Errorf("is a directory")}
	}
	if !parentOK {
		return nil, &fs.PathError{Op: "create", Path: path, Err: fs.ErrNotExist}
	}
	return &memWriter{store: s, path: p}, nil
}

// Remove deletes a file or empty directory.
func (s *MemStore) Remove(path string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	p := clean(path)
	if _, ok := s.files[p]; ok {
		delete(s.files, p)
		return nil
	}
	if s.dirs[p] {
		prefix := p + sep()
		for candidate := range s.files {
			if strings.HasPrefix(candidate, prefix) {
				return &fs.PathError{Op: "remove", Path: path, Err: fmt.Errorf("directory not empty")}
			}
		}
		for candidate := range s.dirs {
			if strings.HasPrefix(candidate, prefix) {
				return &fs.PathError{Op: "remove", Path: path, Err: fmt.Errorf("directory not empty")}
			}
		}
		delete(s.dirs, p)
		return nil
	}
	return &fs.PathError{Op: "remove", Path: path, Err: fs.ErrNotExist}
}

// RemoveAll deletes path recursively. Missing paths are not an error.
func (s *MemStore) RemoveAll(path string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	p := clean(path)
	prefix := p + sep()
	for candidate := range s.files {
		if candidate == p || strings.HasPrefix(candidate, prefix) {
			delete(s.files, candidate)
		}
	}
	for candidate := range s.dirs {
		if candidate == p || strings.HasPrefix(candidate, prefix) {
			delete(s.dirs, candidate)
		}
	}
	return nil
}

type memWriter struct {
	store  *MemStore
	path   string
	buf    bytes.Buffer
	closed bool
}

func (w *memWriter) Write(p []byte) (int, error) {
	if w.closed {
		return 0, fmt.Errorf("write to closed file: %s", w.path)
	}
	return w.buf.Write(p)
}

func (w *memWriter) Close() error {
	if w.closed {
		return nil
	}
	w.closed = true
	w.store.mu.Lock()
	defer w.store.mu.Unlock()
	w.store.files[w.path] = memFile{data: w.buf.Bytes(), modified: time.Now()}
	return nil
}

type nopReaderAtCloser struct {
	*bytes.Reader
}

func (nopReaderAtCloser) Close() error { return nil }
