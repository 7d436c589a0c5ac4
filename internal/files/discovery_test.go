package files

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	apperrors "campaignpulse/internal/errors"
)

func touch(t *testing.T, path string, mtime time.Time) {
	t.Helper()
	require.NoError(t, os.WriteFile(path, []byte("ID\n1\n"), 0644))
	require.NoError(t, os.Chtimes(path, mtime, mtime))
}

func TestDiscovery_ResolveDataset_File(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "marketing_campaign.csv")
	touch(t, path, time.Now())

	got, err := NewDiscovery("").ResolveDataset(path)
	require.NoError(t, err)
	assert.Equal(t, path, got)
}

func TestDiscovery_ResolveDataset_DirectoryPicksNewest(t *testing.T) {
	dir := t.TempDir()
	now := time.Now()
	touch(t, filepath.Join(dir, "old.csv"), now.Add(-2*time.Hour))
	touch(t, filepath.Join(dir, "newest.csv"), now)
	touch(t, filepath.Join(dir, "mid.csv"), now.Add(-time.Hour))
	// Non-CSV files are ignored.
	touch(t, filepath.Join(dir, "notes.txt"), now.Add(time.Hour))

	got, err := NewDiscovery("").ResolveDataset(dir)
	require.NoError(t, err)
	assert.Equal(t, filepath.Join(dir, "newest.csv"), got)
}

func TestDiscovery_ResolveDataset_Missing(t *testing.T) {
	_, err := NewDiscovery("").ResolveDataset(filepath.Join(t.TempDir(), "absent.csv"))
	require.Error(t, err)
	assert.ErrorIs(t, err, apperrors.ErrDatasetNotFound)
}

func TestDiscovery_ResolveDataset_EmptyDirectory(t *testing.T) {
	_, err := NewDiscovery("").ResolveDataset(t.TempDir())
	require.Error(t, err)
	assert.ErrorIs(t, err, apperrors.ErrDatasetNotFound)
}

func TestDiscovery_FindCSVFiles_SortedOldestFirst(t *testing.T) {
	dir := t.TempDir()
	now := time.Now()
	touch(t, filepath.Join(dir, "b.csv"), now)
	touch(t, filepath.Join(dir, "a.csv"), now.Add(-time.Hour))

	files, err := NewDiscovery("").FindCSVFiles(dir)
	require.NoError(t, err)
	require.Len(t, files, 2)
	assert.Equal(t, "a.csv", files[0].Name)
	assert.Equal(t, "b.csv", files[1].Name)
}

func TestDiscovery_RelativePathUsesBase(t *testing.T) {
	base := t.TempDir()
	sub := filepath.Join(base, "data")
	require.NoError(t, os.MkdirAll(sub, 0755))
	touch(t, filepath.Join(sub, "rows.csv"), time.Now())

	got, err := NewDiscovery(base).ResolveDataset("data")
	require.NoError(t, err)
	assert.Equal(t, filepath.Join(sub, "rows.csv"), got)
}

func TestLatestFile(t *testing.T) {
	_, ok := LatestFile(nil)
	assert.False(t, ok)

	now := time.Now()
	files := []FileInfo{
		{Name: "a", ModTime: now.Add(-time.Hour)},
		{Name: "b", ModTime: now},
		{Name: "c", ModTime: now.Add(-time.Minute)},
	}
	latest, ok := LatestFile(files)
	require.True(t, ok)
	assert.Equal(t, "b", latest.Name)
}
