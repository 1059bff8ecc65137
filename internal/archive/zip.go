package archive

import (
	"archive/zip"
	"io"
	"strings"
)

// Zip returns the zip container implementation.
func Zip() Container {
	return zipContainer{}
}

type zipContainer struct{}

func (zipContainer) NewWriter(w io.Writer) Writer {
	return &zipWriter{zw: zip.NewWriter(w)}
}

func (zipContainer) OpenReader(r io.ReaderAt, size int64) (Reader, error) {
	zr, err := zip.NewReader(r, size)
	if err != nil {
		return nil, err
	}
	return &zipReader{zr: zr}, nil
}

type zipWriter struct {
	zw *zip.Writer
}

func (w *zipWriter) Create(name string) (io.Writer, error) {
	return w.zw.Create(name)
}

func (w *zipWriter) Close() error {
	return w.zw.Close()
}

type zipReader struct {
	zr *zip.Reader
}

func (r *zipReader) Entries() []Entry {
	entries := make([]Entry, len(r.zr.File))
	for i, f := range r.zr.File {
		entries[i] = zipEntry{f: f}
	}
	return entries
}

// Close is a no-op; the underlying ReaderAt is owned by the caller.
func (r *zipReader) Close() error {
	return nil
}

type zipEntry struct {
	f *zip.File
}

func (e zipEntry) Name() string {
	return e.f.Name
}

func (e zipEntry) Size() int64 {
	return int64(e.f.UncompressedSize64)
}

func (e zipEntry) IsDir() bool {
	return e.f.FileInfo().IsDir() || strings.HasSuffix(e.f.Name, "/")
}

func (e zipEntry) Open() (io.ReadCloser, error) {
	return e.f.Open()
}
