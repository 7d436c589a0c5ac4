package services

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"campaignpulse/internal/config"
)

type fakeClientCounter struct{ count int }

func (f fakeClientCounter) ClientCount() int { return f.count }

func TestHealthService_HealthCheck(t *testing.T) {
	data := newTestDatasetService(t, writeDataset(t))
	paths := config.PathsConfig{DataDir: t.TempDir()}
	hs := NewHealthService("1.0.0", "", paths, data, fakeClientCounter{count: 2}, discardLogger())

	// Before the dataset loads the service is degraded.
	status := hs.HealthCheck(context.Background())
	assert.Equal(t, "degraded", status.Status)

	_, err := data.Load(context.Background())
	require.NoError(t, err)

	status = hs.HealthCheck(context.Background())
	assert.Equal(t, "ok", status.Status)
	assert.Equal(t, "1.0.0", status.Version)

	dataset := status.Services["dataset"].(ServiceHealth)
	assert.Equal(t, "ready", dataset.Status)
}

func TestHealthService_LivenessAndVersion(t *testing.T) {
	data := newTestDatasetService(t, writeDataset(t))
	hs := NewHealthService("1.0.0", "2026-01-01T00:00:00Z", config.PathsConfig{DataDir: t.TempDir()}, data, nil, discardLogger())

	alive := hs.LivenessCheck(context.Background())
	assert.Equal(t, "alive", alive.Status)
	assert.NotEmpty(t, alive.Runtime["go_version"])

	version := hs.Version()
	assert.Equal(t, "1.0.0", version["version"])
	assert.Equal(t, "2026-01-01T00:00:00Z", version["build_time"])
}

func TestHealthService_Stats(t *testing.T) {
	data := newTestDatasetService(t, writeDataset(t))
	_, err := data.Load(context.Background())
	require.NoError(t, err)

	hs := NewHealthService("1.0.0", "", config.PathsConfig{DataDir: t.TempDir()}, data, fakeClientCounter{count: 3}, discardLogger())

	stats := hs.Stats(context.Background())
	assert.Equal(t, 3, stats["websocket_clients"])
	assert.Equal(t, 4, stats["dataset_rows"])
}
