// Package storage defines the PathStore capability set: a byte-stream
// source/sink abstraction over named paths plus a directory enumerator.
// Any backend satisfying the contract can be substituted, including the
// in-memory one used for testing.
package storage

import (
	"io"
	"time"
)

// FileInfo describes a stored path.
type FileInfo struct {
	Name     string    `json:"name"`
	Size     int64     `json:"size"`
	IsDir    bool      `json:"is_dir"`
	Modified time.Time `json:"modified"`
}

// ReaderAtCloser combines random-access reads with resource release.
type ReaderAtCloser interface {
	io.ReaderAt
	io.Closer
}

// PathStore abstracts a hierarchical file system. Paths are opaque strings
// in the host's path syntax. Implementations carry no cross-call state;
// every call re-reads the backing store.
type PathStore interface {
	// Exists reports whether a file or directory exists at path.
	Exists(path string) bool

	// Stat returns metadata for path.
	Stat(path string) (FileInfo, error)

	// List returns the full paths of path's direct children.
	// Order is implementation-defined; the disk store returns name order.
	List(path string) ([]string, error)

	// MkdirAll creates path and any missing parents.
	MkdirAll(path string) error

	// OpenRead opens a sequential byte source for path.
	OpenRead(path string) (io.ReadCloser, error)

	// OpenReaderAt opens a random-access byte source for path and reports
	// its size. Needed by archive containers that require seekable input.
	OpenReaderAt(path string) (ReaderAtCloser, int64, error)

	// OpenWrite opens a byte sink for path, truncating any existing file.
	OpenWrite(path string) (io.WriteCloser, error)

	// Remove deletes a file or empty directory.
	Remove(path string) error

	// RemoveAll deletes path recursively. Missing paths are not an error.
	RemoveAll(path string) error
}
