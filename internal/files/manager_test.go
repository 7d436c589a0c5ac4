package files

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"campaignpulse/internal/config"
)

func testPaths(t *testing.T) *config.Paths {
	t.Helper()
	dir := t.TempDir()
	paths := &config.Paths{
		ExecutableDir: dir,
		DataDir:       filepath.Join(dir, "data"),
		ExportsDir:    filepath.Join(dir, "exports"),
		LogsDir:       filepath.Join(dir, "logs"),
		WebDir:        filepath.Join(dir, "web"),
		StaticDir:     filepath.Join(dir, "web", "static"),
	}
	require.NoError(t, paths.EnsureDirectories())
	return paths
}

func TestManager_FileExists(t *testing.T) {
	paths := testPaths(t)
	m := NewManager(paths)

	assert.False(t, m.FileExists("rows.csv"))

	require.NoError(t, os.WriteFile(filepath.Join(paths.DataDir, "rows.csv"), []byte("x"), 0644))
	assert.True(t, m.FileExists("rows.csv"))
}

func TestManager_CopyFile(t *testing.T) {
	paths := testPaths(t)
	m := NewManager(paths)

	src := filepath.Join(paths.DataDir, "src.csv")
	require.NoError(t, os.WriteFile(src, []byte("ID\n1\n"), 0644))

	require.NoError(t, m.CopyFile(src, "exports/copy.csv"))

	content, err := os.ReadFile(paths.GetExportPath("copy.csv"))
	require.NoError(t, err)
	assert.Equal(t, "ID\n1\n", string(content))
}

func TestManager_PruneExports(t *testing.T) {
	paths := testPaths(t)
	m := NewManager(paths)

	now := time.Now()
	for i, name := range []string{"a.csv", "b.xlsx", "c.html", "d.csv"} {
		path := paths.GetExportPath(name)
		require.NoError(t, os.WriteFile(path, []byte("x"), 0644))
		mtime := now.Add(time.Duration(i-4) * time.Hour)
		require.NoError(t, os.Chtimes(path, mtime, mtime))
	}

	removed, err := m.PruneExports(2)
	require.NoError(t, err)
	assert.Equal(t, 2, removed)

	remaining, err := m.ListFiles(paths.ExportsDir)
	require.NoError(t, err)
	assert.ElementsMatch(t, []string{"c.html", "d.csv"}, remaining)
}

func TestManager_PruneExports_UnderLimit(t *testing.T) {
	paths := testPaths(t)
	m := NewManager(paths)

	require.NoError(t, os.WriteFile(paths.GetExportPath("only.csv"), []byte("x"), 0644))

	removed, err := m.PruneExports(5)
	require.NoError(t, err)
	assert.Zero(t, removed)
}
