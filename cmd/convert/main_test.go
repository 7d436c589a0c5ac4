package main

import (
	"io"
	"log/slog"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/xuri/excelize/v2"
)

func discardLogger() *slog.Logger {
	return slog.New(slog.NewJSONHandler(io.Discard, nil))
}

func writeWorkbook(t *testing.T, dir, name string) string {
	t.Helper()

	rows := [][]interface{}{
		{"ID", "Education", "Income", "Dt_Customer", "Age", "Response", "AcceptedCmp1", "AcceptedCmp2", "AcceptedCmp3", "AcceptedCmp4"},
		{1, "Graduation", 52000, "2012-03-15", 45, 1, 1, 0, 0, 0},
		{2, "PhD", 71000, "2013-07-04", 38, 0, 0, 1, 0, 0},
	}

	f := excelize.NewFile()
	defer f.Close()
	require.NoError(t, f.SetSheetName("Sheet1", "Customers"))
	for i, row := range rows {
		cell, err := excelize.CoordinatesToCellName(1, i+1)
		require.NoError(t, err)
		require.NoError(t, f.SetSheetRow("Customers", cell, &row))
	}

	path := filepath.Join(dir, name)
	require.NoError(t, f.SaveAs(path))
	return path
}

func TestRun_ConvertsWorkbook(t *testing.T) {
	xlsxPath := writeWorkbook(t, t.TempDir(), "campaign.xlsx")
	outPath := filepath.Join(t.TempDir(), "campaign.csv")

	require.NoError(t, run(discardLogger(), xlsxPath, outPath, time.Minute))

	content, err := os.ReadFile(outPath)
	require.NoError(t, err)
	assert.Contains(t, string(content), "Dt_Customer")
	assert.Contains(t, string(content), "PhD")
}

func TestRun_DefaultOutputNextToInput(t *testing.T) {
	dir := t.TempDir()
	xlsxPath := writeWorkbook(t, dir, "campaign.xlsx")

	require.NoError(t, run(discardLogger(), xlsxPath, "", time.Minute))
	assert.FileExists(t, filepath.Join(dir, "campaign.csv"))
}

func TestRun_DirectoryPicksLatestWorkbook(t *testing.T) {
	dir := t.TempDir()
	old := writeWorkbook(t, dir, "old.xlsx")
	require.NoError(t, os.Chtimes(old, time.Now().Add(-time.Hour), time.Now().Add(-time.Hour)))
	writeWorkbook(t, dir, "new.xlsx")

	outPath := filepath.Join(t.TempDir(), "out.csv")
	require.NoError(t, run(discardLogger(), dir, outPath, time.Minute))
	assert.FileExists(t, outPath)
}

func TestRun_MissingInput(t *testing.T) {
	err := run(discardLogger(), filepath.Join(t.TempDir(), "absent.xlsx"), "", time.Minute)
	require.Error(t, err)
}

func TestRun_EmptyDirectory(t *testing.T) {
	err := run(discardLogger(), t.TempDir(), "", time.Minute)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "no .xlsx workbooks")
}
