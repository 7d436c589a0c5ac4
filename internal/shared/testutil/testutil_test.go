package testutil

import (
	"log/slog"
	"os"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestWriteSampleDataset(t *testing.T) {
	path := WriteSampleDataset(t)

	content, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Contains(t, string(content), "Dt_Customer")
	assert.Contains(t, string(content), "PhD")
}

func TestCapturingHandler(t *testing.T) {
	h, logger := NewCapturingHandler()

	logger.Info("dataset loaded", slog.Int("rows", 4))
	logger.With(slog.String("component", "loader")).Warn("row skipped")

	records := h.Records()
	require.Len(t, records, 2)

	loaded, ok := h.Find("dataset loaded")
	require.True(t, ok)
	assert.Equal(t, slog.LevelInfo, loaded.Level)
	assert.EqualValues(t, 4, loaded.Attrs["rows"])

	skipped, ok := h.Find("row skipped")
	require.True(t, ok)
	assert.Equal(t, "loader", skipped.Attrs["component"])

	_, ok = h.Find("never logged")
	assert.False(t, ok)
}
