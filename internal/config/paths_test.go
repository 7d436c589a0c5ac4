package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestGetPaths(t *testing.T) {
	paths, err := GetPaths()
	require.NoError(t, err)
	require.NotNil(t, paths)

	assert.NotEmpty(t, paths.ExecutableDir)
	assert.True(t, filepath.IsAbs(paths.ExecutableDir))

	// Every directory hangs off the executable directory.
	assert.Equal(t, filepath.Join(paths.ExecutableDir, "data"), paths.DataDir)
	assert.Equal(t, filepath.Join(paths.ExecutableDir, "exports"), paths.ExportsDir)
	assert.Equal(t, filepath.Join(paths.ExecutableDir, "logs"), paths.LogsDir)
	assert.Equal(t, filepath.Join(paths.ExecutableDir, "web"), paths.WebDir)
	assert.Equal(t, filepath.Join(paths.WebDir, "static"), paths.StaticDir)

	assert.Equal(t, filepath.Join(paths.DataDir, DatasetFileName), paths.DatasetCSV)
	assert.Equal(t, filepath.Join(paths.ExportsDir, ReportFileName), paths.ReportHTML)
}

func TestPaths_EnsureDirectories(t *testing.T) {
	dir := t.TempDir()
	paths := &Paths{
		ExecutableDir: dir,
		DataDir:       filepath.Join(dir, "data"),
		ExportsDir:    filepath.Join(dir, "exports"),
		LogsDir:       filepath.Join(dir, "logs"),
		WebDir:        filepath.Join(dir, "web"),
	}

	require.NoError(t, paths.EnsureDirectories())

	for _, d := range []string{paths.DataDir, paths.ExportsDir, paths.LogsDir, paths.WebDir} {
		info, err := os.Stat(d)
		require.NoError(t, err)
		assert.True(t, info.IsDir())
	}

	// Second call is a no-op.
	require.NoError(t, paths.EnsureDirectories())
}

func TestPaths_Helpers(t *testing.T) {
	paths := &Paths{
		ExecutableDir: "/opt/campaignpulse",
		DataDir:       "/opt/campaignpulse/data",
		ExportsDir:    "/opt/campaignpulse/exports",
		LogsDir:       "/opt/campaignpulse/logs",
		WebDir:        "/opt/campaignpulse/web",
		StaticDir:     "/opt/campaignpulse/web/static",
	}

	assert.Equal(t, filepath.Join(paths.DataDir, "extra.csv"), paths.GetDatasetPath("extra.csv"))
	assert.Equal(t, filepath.Join(paths.ExportsDir, "out.xlsx"), paths.GetExportPath("out.xlsx"))
	assert.Equal(t, filepath.Join(paths.LogsDir, "app.log"), paths.GetLogPath("app.log"))
	assert.Equal(t, filepath.Join(paths.WebDir, "index.html"), paths.GetWebFilePath("index.html"))
	assert.Equal(t, filepath.Join(paths.StaticDir, "app.js"), paths.GetStaticFilePath("app.js"))
	assert.Equal(t, filepath.Join(paths.ExecutableDir, "config.yaml"), paths.GetRelativePath("config.yaml"))
}

func TestPaths_GetDatedExportPath(t *testing.T) {
	paths := &Paths{ExportsDir: "/exports"}
	date := time.Date(2024, 1, 15, 0, 0, 0, 0, time.UTC)

	got := paths.GetDatedExportPath("campaign_export", "csv", date)
	assert.Equal(t, filepath.Join("/exports", "campaign_export_20240115.csv"), got)
}

func TestFileExists(t *testing.T) {
	dir := t.TempDir()
	existing := filepath.Join(dir, "present.csv")
	require.NoError(t, os.WriteFile(existing, []byte("ID\n1\n"), 0644))

	assert.True(t, FileExists(existing))
	assert.False(t, FileExists(filepath.Join(dir, "absent.csv")))
}

func TestPaths_ValidateDataset(t *testing.T) {
	dir := t.TempDir()

	t.Run("missing everything", func(t *testing.T) {
		p := &Paths{
			DataDir:    filepath.Join(dir, "nope"),
			DatasetCSV: filepath.Join(dir, "nope", DatasetFileName),
		}
		assert.Error(t, p.ValidateDataset())
	})

	t.Run("data dir present", func(t *testing.T) {
		dataDir := filepath.Join(dir, "data")
		require.NoError(t, os.MkdirAll(dataDir, 0755))
		p := &Paths{
			DataDir:    dataDir,
			DatasetCSV: filepath.Join(dataDir, DatasetFileName),
		}
		assert.NoError(t, p.ValidateDataset())
	})
}
