package filesystem

import (
	"context"
	"fmt"
	"io"
	"path/filepath"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/parcelfs/parcelfs/internal/archive"
	"github.com/parcelfs/parcelfs/internal/logging"
	"github.com/parcelfs/parcelfs/internal/shared/paths"
	"github.com/parcelfs/parcelfs/internal/shared/types"
	"github.com/parcelfs/parcelfs/internal/storage"
)

func newArchivesOps(t *testing.T) (*ArchivesOps, *storage.MemStore) {
	t.Helper()
	store := storage.NewMemStore()
	ops := &FilesystemOps{
		Store: store,
		Zip:   archive.Zip(),
		Dirs:  paths.Dirs{Temp: filepath.FromSlash("/scratch")},
		Log:   logging.NewNop(),
	}
	return &ArchivesOps{FilesystemOps: ops}, store
}

func writeTestFile(t *testing.T, store storage.PathStore, path, content string) {
	t.Helper()
	require.NoError(t, store.MkdirAll(filepath.Dir(path)))
	w, err := store.OpenWrite(path)
	require.NoError(t, err)
	_, err = w.Write([]byte(content))
	require.NoError(t, err)
	require.NoError(t, w.Close())
}

func readTestFile(t *testing.T, store storage.PathStore, path string) string {
	t.Helper()
	r, err := store.OpenRead(path)
	require.NoError(t, err)
	defer r.Close()
	data, err := io.ReadAll(r)
	require.NoError(t, err)
	return string(data)
}

func entryNames(t *testing.T, res *types.Result) []string {
	t.Helper()
	entries := res.Data["entries"].([]map[string]interface{})
	names := make([]string, 0, len(entries))
	for _, e := range entries {
		names = append(names, e["name"].(string))
	}
	return names
}

func TestArchivesGetTools(t *testing.T) {
	ops, _ := newArchivesOps(t)

	tools := ops.GetTools()
	assert.Len(t, tools, 8)

	ids := make(map[string]bool)
	for _, tool := range tools {
		ids[tool.ID] = true
		assert.NotEmpty(t, tool.Name)
		assert.NotEmpty(t, tool.Description)
	}
	assert.True(t, ids["filesystem.zip.create"])
	assert.True(t, ids["filesystem.zip.extract"])
	assert.True(t, ids["filesystem.zip.list"])
	assert.True(t, ids["filesystem.zip.read_text"])
	assert.True(t, ids["filesystem.tar.create"])
	assert.True(t, ids["filesystem.tar.extract"])
	assert.True(t, ids["filesystem.tar.list"])
	assert.True(t, ids["filesystem.extract_auto"])
}

func TestCompressEntryNamesRelativeToParent(t *testing.T) {
	ops, store := newArchivesOps(t)
	ctx := context.Background()

	writeTestFile(t, store, filepath.FromSlash("/data/src/a.txt"), "alpha")
	writeTestFile(t, store, filepath.FromSlash("/data/src/sub/b.txt"), "beta")

	res, err := ops.Compress(ctx, filepath.FromSlash("/data/src"), filepath.FromSlash("/data/out.zip"))
	require.NoError(t, err)
	require.True(t, res.Success, "compress failed: %v", res.Error)
	assert.Equal(t, 2, res.Data["files"])

	list, err := ops.ZipList(ctx, filepath.FromSlash("/data/out.zip"))
	require.NoError(t, err)
	require.True(t, list.Success)
	assert.ElementsMatch(t, []string{"src/a.txt", "src/sub/b.txt"}, entryNames(t, list))
}

func TestCompressSingleFile(t *testing.T) {
	ops, store := newArchivesOps(t)
	ctx := context.Background()

	writeTestFile(t, store, filepath.FromSlash("/data/file.txt"), "solo")

	res, err := ops.Compress(ctx, filepath.FromSlash("/data/file.txt"), filepath.FromSlash("/data/file.zip"))
	require.NoError(t, err)
	require.True(t, res.Success)

	list, err := ops.ZipList(ctx, filepath.FromSlash("/data/file.zip"))
	require.NoError(t, err)
	assert.Equal(t, []string{"file.txt"}, entryNames(t, list))
}

func TestCompressMissingSource(t *testing.T) {
	ops, store := newArchivesOps(t)

	res, err := ops.Compress(context.Background(), filepath.FromSlash("/nope"), filepath.FromSlash("/data/out.zip"))
	require.NoError(t, err)
	require.NotNil(t, res.Error)
	assert.False(t, res.Success)
	assert.Equal(t, types.ErrNotFound, res.Error.Kind)
	// No archive is created when the source check fails.
	assert.False(t, store.Exists(filepath.FromSlash("/data/out.zip")))
}

func TestCompressEmptyInput(t *testing.T) {
	ops, _ := newArchivesOps(t)

	res, err := ops.Compress(context.Background(), "", "")
	require.NoError(t, err)
	require.NotNil(t, res.Error)
	assert.Equal(t, types.ErrInvalidInput, res.Error.Kind)
}

func TestZipRoundTrip(t *testing.T) {
	ops, store := newArchivesOps(t)
	ctx := context.Background()

	writeTestFile(t, store, filepath.FromSlash("/data/src/a.txt"), "alpha")
	writeTestFile(t, store, filepath.FromSlash("/data/src/sub/b.txt"), "beta")

	res, err := ops.Compress(ctx, filepath.FromSlash("/data/src"), filepath.FromSlash("/data/out.zip"))
	require.NoError(t, err)
	require.True(t, res.Success)

	res, err = ops.Decompress(ctx, filepath.FromSlash("/data/out.zip"), filepath.FromSlash("/restored"))
	require.NoError(t, err)
	require.True(t, res.Success, "decompress failed: %v", res.Error)
	assert.Equal(t, 2, res.Data["files"])

	assert.Equal(t, "alpha", readTestFile(t, store, filepath.FromSlash("/restored/src/a.txt")))
	assert.Equal(t, "beta", readTestFile(t, store, filepath.FromSlash("/restored/src/sub/b.txt")))
}

func TestDecompressIdempotent(t *testing.T) {
	ops, store := newArchivesOps(t)
	ctx := context.Background()

	writeTestFile(t, store, filepath.FromSlash("/data/src/a.txt"), "alpha")
	_, err := ops.Compress(ctx, filepath.FromSlash("/data/src"), filepath.FromSlash("/data/out.zip"))
	require.NoError(t, err)

	for i := 0; i < 2; i++ {
		res, err := ops.Decompress(ctx, filepath.FromSlash("/data/out.zip"), filepath.FromSlash("/restored"))
		require.NoError(t, err)
		require.True(t, res.Success)
	}
	assert.Equal(t, "alpha", readTestFile(t, store, filepath.FromSlash("/restored/src/a.txt")))
}

func TestDecompressInvalidArchive(t *testing.T) {
	ops, store := newArchivesOps(t)

	writeTestFile(t, store, filepath.FromSlash("/data/bad.zip"), "this is not a zip")

	res, err := ops.Decompress(context.Background(), filepath.FromSlash("/data/bad.zip"), filepath.FromSlash("/restored"))
	require.NoError(t, err)
	require.NotNil(t, res.Error)
	assert.Equal(t, types.ErrInvalidArchive, res.Error.Kind)
	// The destination is not created when the archive fails to parse.
	assert.False(t, store.Exists(filepath.FromSlash("/restored")))
}

func TestDecompressMissingArchive(t *testing.T) {
	ops, store := newArchivesOps(t)

	res, err := ops.Decompress(context.Background(), filepath.FromSlash("/nope.zip"), filepath.FromSlash("/restored"))
	require.NoError(t, err)
	require.NotNil(t, res.Error)
	assert.Equal(t, types.ErrNotFound, res.Error.Kind)
	// The destination is not created when the archive check fails.
	assert.False(t, store.Exists(filepath.FromSlash("/restored")))
}

func TestConcurrentDisjointArchives(t *testing.T) {
	ops, store := newArchivesOps(t)
	ctx := context.Background()

	const workers = 8
	for i := 0; i < workers; i++ {
		writeTestFile(t, store, filepath.FromSlash(fmt.Sprintf("/data/src%d/file.txt", i)), fmt.Sprintf("payload-%d", i))
	}

	var wg sync.WaitGroup
	errs := make([]error, workers)
	for i := 0; i < workers; i++ {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			src := filepath.FromSlash(fmt.Sprintf("/data/src%d", i))
			archivePath := filepath.FromSlash(fmt.Sprintf("/data/out%d.zip", i))
			dest := filepath.FromSlash(fmt.Sprintf("/restored%d", i))

			if res, _ := ops.Compress(ctx, src, archivePath); !res.Success {
				errs[i] = res.Error
				return
			}
			if res, _ := ops.Decompress(ctx, archivePath, dest); !res.Success {
				errs[i] = res.Error
			}
		}(i)
	}
	wg.Wait()

	for i := 0; i < workers; i++ {
		require.NoError(t, errs[i])
		got := readTestFile(t, store, filepath.FromSlash(fmt.Sprintf("/restored%d/src%d/file.txt", i, i)))
		assert.Equal(t, fmt.Sprintf("payload-%d", i), got)
	}
}

func TestZipListMissingArchive(t *testing.T) {
	ops, _ := newArchivesOps(t)

	res, err := ops.ZipList(context.Background(), filepath.FromSlash("/nope.zip"))
	require.NoError(t, err)
	require.NotNil(t, res.Error)
	assert.Equal(t, types.ErrNotFound, res.Error.Kind)
}
