package archive

import (
	"bytes"
	"io"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestZipWriteRead(t *testing.T) {
	var buf bytes.Buffer

	w := Zip().NewWriter(&buf)
	entry, err := w.Create("dir/file.txt")
	require.NoError(t, err)
	_, err = entry.Write([]byte("payload"))
	require.NoError(t, err)
	require.NoError(t, w.Close())

	r, err := Zip().OpenReader(bytes.NewReader(buf.Bytes()), int64(buf.Len()))
	require.NoError(t, err)
	defer r.Close()

	entries := r.Entries()
	require.Len(t, entries, 1)
	assert.Equal(t, "dir/file.txt", entries[0].Name())
	assert.Equal(t, int64(7), entries[0].Size())
	assert.False(t, entries[0].IsDir())

	rc, err := entries[0].Open()
	require.NoError(t, err)
	data, err := io.ReadAll(rc)
	require.NoError(t, err)
	require.NoError(t, rc.Close())
	assert.Equal(t, "payload", string(data))
}

func TestZipOpenReaderInvalid(t *testing.T) {
	junk := []byte("not a zip archive")
	_, err := Zip().OpenReader(bytes.NewReader(junk), int64(len(junk)))
	assert.Error(t, err)
}
