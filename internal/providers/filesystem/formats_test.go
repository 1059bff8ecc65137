package filesystem

import (
	"context"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/parcelfs/parcelfs/internal/shared/types"
)

func newFormatsOps(t *testing.T) *FormatsOps {
	t.Helper()
	archives, _ := newArchivesOps(t)
	return &FormatsOps{FilesystemOps: archives.FilesystemOps}
}

func TestYAMLRoundTrip(t *testing.T) {
	ops := newFormatsOps(t)
	ctx := context.Background()

	require.NoError(t, ops.Store.MkdirAll(filepath.FromSlash("/data")))
	path := filepath.FromSlash("/data/config.yaml")

	res, err := ops.YAMLWrite(ctx, path, map[string]interface{}{"name": "parcelfs", "port": 8090})
	require.NoError(t, err)
	require.True(t, res.Success, "yaml write failed: %v", res.Error)

	res, err = ops.YAMLRead(ctx, path)
	require.NoError(t, err)
	require.True(t, res.Success)
	parsed := res.Data["data"].(map[string]interface{})
	assert.Equal(t, "parcelfs", parsed["name"])
}

func TestYAMLReadInvalid(t *testing.T) {
	ops := newFormatsOps(t)

	writeTestFile(t, ops.Store, filepath.FromSlash("/data/bad.yaml"), "{invalid: [yaml")

	res, err := ops.YAMLRead(context.Background(), filepath.FromSlash("/data/bad.yaml"))
	require.NoError(t, err)
	require.NotNil(t, res.Error)
	assert.Equal(t, types.ErrInvalidInput, res.Error.Kind)
}

func TestTOMLRoundTrip(t *testing.T) {
	ops := newFormatsOps(t)
	ctx := context.Background()

	require.NoError(t, ops.Store.MkdirAll(filepath.FromSlash("/data")))
	path := filepath.FromSlash("/data/config.toml")

	res, err := ops.TOMLWrite(ctx, path, map[string]interface{}{"name": "parcelfs"})
	require.NoError(t, err)
	require.True(t, res.Success, "toml write failed: %v", res.Error)

	res, err = ops.TOMLRead(ctx, path)
	require.NoError(t, err)
	require.True(t, res.Success)
	parsed := res.Data["data"].(map[string]interface{})
	assert.Equal(t, "parcelfs", parsed["name"])
}

func TestJSONMerge(t *testing.T) {
	ops := newFormatsOps(t)
	ctx := context.Background()

	writeTestFile(t, ops.Store, filepath.FromSlash("/data/a.json"), `{"a": 1, "shared": "first"}`)
	writeTestFile(t, ops.Store, filepath.FromSlash("/data/b.json"), `{"b": 2, "shared": "second"}`)

	files := []string{filepath.FromSlash("/data/a.json"), filepath.FromSlash("/data/b.json")}
	res, err := ops.JSONMerge(ctx, files, filepath.FromSlash("/data/merged.json"))
	require.NoError(t, err)
	require.True(t, res.Success, "merge failed: %v", res.Error)
	assert.Equal(t, 3, res.Data["keys"])

	merged := readTestFile(t, ops.Store, filepath.FromSlash("/data/merged.json"))
	assert.Contains(t, merged, `"second"`)
	assert.NotContains(t, merged, `"first"`)
}

func TestJSONMergeMissingFile(t *testing.T) {
	ops := newFormatsOps(t)

	res, err := ops.JSONMerge(context.Background(), []string{filepath.FromSlash("/nope.json")}, filepath.FromSlash("/data/out.json"))
	require.NoError(t, err)
	require.NotNil(t, res.Error)
	assert.Equal(t, types.ErrNotFound, res.Error.Kind)
}
