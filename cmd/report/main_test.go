package main

import (
	"log/slog"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"campaignpulse/internal/config"
	"campaignpulse/internal/shared/testutil"
)

func writeDataset(t *testing.T) string {
	return testutil.WriteSampleDataset(t)
}

func discardLogger() *slog.Logger {
	return testutil.DiscardLogger()
}

func listByExt(t *testing.T, dir, ext string) []string {
	t.Helper()
	entries, err := os.ReadDir(dir)
	require.NoError(t, err)

	var matches []string
	for _, e := range entries {
		if strings.HasSuffix(e.Name(), ext) {
			matches = append(matches, filepath.Join(dir, e.Name()))
		}
	}
	return matches
}

func TestRun_GeneratesReportAndExports(t *testing.T) {
	dataset := writeDataset(t)
	outDir := filepath.Join(t.TempDir(), "exports")

	err := run(config.Default(), discardLogger(), dataset, outDir, "dashboard.html", "", "", true, time.Minute)
	require.NoError(t, err)

	report, err := os.ReadFile(filepath.Join(outDir, "dashboard.html"))
	require.NoError(t, err)
	assert.Contains(t, string(report), "echarts")
	assert.Contains(t, string(report), "CampaignPulse Dashboard")

	require.Len(t, listByExt(t, outDir, ".csv"), 1)
	require.Len(t, listByExt(t, outDir, ".xlsx"), 1)
}

func TestRun_ReportOnly(t *testing.T) {
	dataset := writeDataset(t)
	outDir := filepath.Join(t.TempDir(), "exports")

	err := run(config.Default(), discardLogger(), dataset, outDir, "report.html", "", "", false, time.Minute)
	require.NoError(t, err)

	assert.FileExists(t, filepath.Join(outDir, "report.html"))
	assert.Empty(t, listByExt(t, outDir, ".csv"))
	assert.Empty(t, listByExt(t, outDir, ".xlsx"))
}

func TestRun_FilteredExport(t *testing.T) {
	dataset := writeDataset(t)
	outDir := filepath.Join(t.TempDir(), "exports")

	err := run(config.Default(), discardLogger(), dataset, outDir, "dashboard.html", "PhD", "", true, time.Minute)
	require.NoError(t, err)

	csvs := listByExt(t, outDir, ".csv")
	require.Len(t, csvs, 1)

	content, err := os.ReadFile(csvs[0])
	require.NoError(t, err)
	lines := strings.Split(strings.TrimSpace(string(content)), "\n")
	assert.Len(t, lines, 2) // header + single PhD row
}

func TestRun_UnknownEducation(t *testing.T) {
	dataset := writeDataset(t)
	outDir := filepath.Join(t.TempDir(), "exports")

	err := run(config.Default(), discardLogger(), dataset, outDir, "dashboard.html", "Astrology", "", true, time.Minute)
	require.Error(t, err)
}

func TestRun_MissingDataset(t *testing.T) {
	outDir := filepath.Join(t.TempDir(), "exports")

	err := run(config.Default(), discardLogger(), filepath.Join(t.TempDir(), "absent.csv"), outDir, "dashboard.html", "", "", false, time.Minute)
	require.Error(t, err)
}
