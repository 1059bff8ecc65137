package paths

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestResolve(t *testing.T) {
	dirs := Resolve("testapp")

	assert.Equal(t, "testapp", filepath.Base(dirs.Cache))
	assert.Equal(t, "testapp", filepath.Base(dirs.Data))
	assert.Equal(t, "testapp", filepath.Base(dirs.Temp))
	assert.True(t, filepath.IsAbs(dirs.Temp))
}

func TestEnsureAll(t *testing.T) {
	base := t.TempDir()
	dirs := Dirs{
		Cache: filepath.Join(base, "cache", "app"),
		Data:  filepath.Join(base, "data", "app"),
		Temp:  filepath.Join(base, "temp", "app"),
	}

	require.NoError(t, dirs.EnsureAll())
	for _, dir := range []string{dirs.Cache, dirs.Data, dirs.Temp} {
		info, err := os.Stat(dir)
		require.NoError(t, err)
		assert.True(t, info.IsDir())
	}

	// Idempotent when directories already exist.
	assert.NoError(t, dirs.EnsureAll())
}
