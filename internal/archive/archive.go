// Package archive defines the archive-container capability set consumed by
// the archiving engine: a writer handle that accepts named entries and a
// reader handle that enumerates them. The zip implementation delegates the
// codec work (deflate, CRC32) to the standard archive library.
package archive

import "io"

// Entry is one named byte-stream inside a container.
type Entry interface {
	// Name returns the entry's archive-relative path (slash-separated).
	Name() string

	// IsDir reports whether the entry represents a directory.
	IsDir() bool

	// Size returns the entry's uncompressed size in bytes.
	Size() int64

	// Open returns the entry's byte stream. The caller must close it.
	Open() (io.ReadCloser, error)
}

// Writer writes named entries into a container.
type Writer interface {
	// Create adds an entry and returns the sink for its bytes. The sink is
	// valid until the next Create or Close call.
	Create(name string) (io.Writer, error)

	// Close finalizes the container. Entries written so far are not rolled
	// back if an earlier write failed.
	Close() error
}

// Reader enumerates a container's entries in stored order.
type Reader interface {
	Entries() []Entry
	Close() error
}

// Container creates writer and reader handles over byte streams.
type Container interface {
	NewWriter(w io.Writer) Writer
	OpenReader(r io.ReaderAt, size int64) (Reader, error)
}
