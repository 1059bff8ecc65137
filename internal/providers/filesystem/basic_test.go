package filesystem

import (
	"context"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/parcelfs/parcelfs/internal/shared/types"
)

func newBasicOps(t *testing.T) *BasicOps {
	t.Helper()
	archives, _ := newArchivesOps(t)
	return &BasicOps{FilesystemOps: archives.FilesystemOps}
}

func TestWriteReadRoundTrip(t *testing.T) {
	ops := newBasicOps(t)
	ctx := context.Background()

	require.NoError(t, ops.Store.MkdirAll(filepath.FromSlash("/data")))
	res, err := ops.Write(ctx, filepath.FromSlash("/data/note.txt"), "hello")
	require.NoError(t, err)
	require.True(t, res.Success)

	res, err = ops.Read(ctx, filepath.FromSlash("/data/note.txt"))
	require.NoError(t, err)
	require.True(t, res.Success)
	assert.Equal(t, "hello", res.Data["content"])
}

func TestReadDirectory(t *testing.T) {
	ops := newBasicOps(t)

	require.NoError(t, ops.Store.MkdirAll(filepath.FromSlash("/data")))
	res, err := ops.Read(context.Background(), filepath.FromSlash("/data"))
	require.NoError(t, err)
	require.NotNil(t, res.Error)
	assert.Equal(t, types.ErrIsADirectory, res.Error.Kind)
}

func TestReadMissing(t *testing.T) {
	ops := newBasicOps(t)

	res, err := ops.Read(context.Background(), filepath.FromSlash("/nope.txt"))
	require.NoError(t, err)
	require.NotNil(t, res.Error)
	assert.Equal(t, types.ErrNotFound, res.Error.Kind)
}

func TestAppendCreatesAndExtends(t *testing.T) {
	ops := newBasicOps(t)
	ctx := context.Background()

	require.NoError(t, ops.Store.MkdirAll(filepath.FromSlash("/data")))
	path := filepath.FromSlash("/data/log.txt")

	res, err := ops.Append(ctx, path, "one")
	require.NoError(t, err)
	require.True(t, res.Success)

	res, err = ops.Append(ctx, path, "-two")
	require.NoError(t, err)
	require.True(t, res.Success)

	res, err = ops.Read(ctx, path)
	require.NoError(t, err)
	assert.Equal(t, "one-two", res.Data["content"])
}

func TestCopyFile(t *testing.T) {
	ops := newBasicOps(t)
	ctx := context.Background()

	writeTestFile(t, ops.Store, filepath.FromSlash("/data/a.txt"), "alpha")

	res, err := ops.Copy(ctx, filepath.FromSlash("/data/a.txt"), filepath.FromSlash("/data/b.txt"))
	require.NoError(t, err)
	require.True(t, res.Success)
	assert.Equal(t, int64(5), res.Data["size"])

	res, err = ops.Read(ctx, filepath.FromSlash("/data/b.txt"))
	require.NoError(t, err)
	assert.Equal(t, "alpha", res.Data["content"])
}

func TestCopyDirectoryRejected(t *testing.T) {
	ops := newBasicOps(t)

	require.NoError(t, ops.Store.MkdirAll(filepath.FromSlash("/data/dir")))
	res, err := ops.Copy(context.Background(), filepath.FromSlash("/data/dir"), filepath.FromSlash("/data/copy"))
	require.NoError(t, err)
	require.NotNil(t, res.Error)
	assert.Equal(t, types.ErrIsADirectory, res.Error.Kind)
}

func TestDeleteMissing(t *testing.T) {
	ops := newBasicOps(t)

	res, err := ops.Delete(context.Background(), filepath.FromSlash("/nope.txt"))
	require.NoError(t, err)
	require.NotNil(t, res.Error)
	assert.Equal(t, types.ErrNotFound, res.Error.Kind)
}

func TestExistsAndStat(t *testing.T) {
	ops := newBasicOps(t)
	ctx := context.Background()

	writeTestFile(t, ops.Store, filepath.FromSlash("/data/a.txt"), "alpha")

	res, err := ops.Exists(ctx, filepath.FromSlash("/data/a.txt"))
	require.NoError(t, err)
	assert.True(t, res.Data["exists"].(bool))

	res, err = ops.Exists(ctx, filepath.FromSlash("/nope"))
	require.NoError(t, err)
	assert.False(t, res.Data["exists"].(bool))

	res, err = ops.Stat(ctx, filepath.FromSlash("/data/a.txt"))
	require.NoError(t, err)
	require.True(t, res.Success)
	assert.Equal(t, "a.txt", res.Data["name"])
	assert.Equal(t, int64(5), res.Data["size"])
	assert.Equal(t, false, res.Data["is_dir"])
}
