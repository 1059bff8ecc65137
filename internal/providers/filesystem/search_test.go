package filesystem

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/parcelfs/parcelfs/internal/shared/types"
)

// Search ops walk the host filesystem, so these tests use a real temp dir.
func newSearchDir(t *testing.T) (*SearchOps, string) {
	t.Helper()
	archives, _ := newArchivesOps(t)
	ops := &SearchOps{FilesystemOps: archives.FilesystemOps}

	dir := t.TempDir()
	require.NoError(t, os.MkdirAll(filepath.Join(dir, "sub"), 0o755))
	require.NoError(t, os.WriteFile(filepath.Join(dir, "main.go"), []byte("package main"), 0o644))
	require.NoError(t, os.WriteFile(filepath.Join(dir, "readme.md"), []byte("# readme"), 0o644))
	require.NoError(t, os.WriteFile(filepath.Join(dir, "sub", "util.go"), []byte("package sub"), 0o644))
	return ops, dir
}

func TestFind(t *testing.T) {
	ops, dir := newSearchDir(t)

	res, err := ops.Find(context.Background(), dir, "*.go")
	require.NoError(t, err)
	require.True(t, res.Success, "find failed: %v", res.Error)
	assert.Equal(t, 2, res.Data["count"])
	assert.ElementsMatch(t, []string{"main.go", filepath.Join("sub", "util.go")}, res.Data["matches"])
}

// A tree wide enough to keep several fastwalk workers appending at once.
// Exercises the mutex around the shared match slice; run with -race.
func TestFindWideTree(t *testing.T) {
	archives, _ := newArchivesOps(t)
	ops := &SearchOps{FilesystemOps: archives.FilesystemOps}

	dir := t.TempDir()
	const dirs, perDir = 32, 64
	for i := 0; i < dirs; i++ {
		sub := filepath.Join(dir, fmt.Sprintf("d%02d", i))
		require.NoError(t, os.MkdirAll(sub, 0o755))
		for j := 0; j < perDir; j++ {
			name := filepath.Join(sub, fmt.Sprintf("f%03d.txt", j))
			require.NoError(t, os.WriteFile(name, []byte("x"), 0o644))
		}
	}

	res, err := ops.Find(context.Background(), dir, "*.txt")
	require.NoError(t, err)
	require.True(t, res.Success, "find failed: %v", res.Error)
	assert.Equal(t, dirs*perDir, res.Data["count"])
	assert.Len(t, res.Data["matches"], dirs*perDir)

	res, err = ops.FilterByExtension(context.Background(), dir, []string{".txt"})
	require.NoError(t, err)
	require.True(t, res.Success, "filter failed: %v", res.Error)
	assert.Equal(t, dirs*perDir, res.Data["count"])
}

func TestFindMissingRoot(t *testing.T) {
	ops, dir := newSearchDir(t)

	res, err := ops.Find(context.Background(), filepath.Join(dir, "nope"), "*.go")
	require.NoError(t, err)
	require.NotNil(t, res.Error)
	assert.Equal(t, types.ErrNotFound, res.Error.Kind)
}

func TestGlob(t *testing.T) {
	ops, dir := newSearchDir(t)

	res, err := ops.Glob(context.Background(), dir, "**/*.go")
	require.NoError(t, err)
	require.True(t, res.Success, "glob failed: %v", res.Error)
	assert.Equal(t, 2, res.Data["count"])
}

func TestGlobOnFile(t *testing.T) {
	ops, dir := newSearchDir(t)

	res, err := ops.Glob(context.Background(), filepath.Join(dir, "main.go"), "*")
	require.NoError(t, err)
	require.NotNil(t, res.Error)
	assert.Equal(t, types.ErrNotADirectory, res.Error.Kind)
}

func TestFilterByExtension(t *testing.T) {
	ops, dir := newSearchDir(t)

	// Extensions are normalized, with or without the leading dot.
	res, err := ops.FilterByExtension(context.Background(), dir, []string{"md", ".go"})
	require.NoError(t, err)
	require.True(t, res.Success, "filter failed: %v", res.Error)
	assert.Equal(t, 3, res.Data["count"])
}
