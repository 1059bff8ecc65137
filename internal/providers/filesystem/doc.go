// Package filesystem provides file, directory, and archive operations over a
// pluggable PathStore backend.
//
// This package is organized into specialized modules:
//   - basic: Core file operations (read, write, append, copy, delete, stat)
//   - directory: Directory operations (list, create, delete)
//   - archives: Archive operations (ZIP compress/extract/read-text, TAR with
//     gzip/zstd compression)
//   - search: File search and filtering (pattern, glob, extension)
//   - formats: Structured formats (YAML, TOML, JSON merge)
//   - metadata: Content type detection
//
// All operations return a structured Result: either Success with a data
// payload, or a typed Error naming the failing path and phase. Basic,
// directory, archive, format, and metadata operations go through the
// PathStore abstraction so an in-memory backend can substitute for the disk
// in tests. Search operations walk the host filesystem directly for speed.
//
// Archive caveat: a failure mid-compress or mid-extract aborts the operation
// but does not roll back entries already written, so a truncated archive or
// a partially populated destination can remain on disk.
package filesystem
