package services

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"runtime"
	"time"

	"campaignpulse/internal/config"
)

// HealthService reports service health for the health endpoints.
type HealthService struct {
	version   string
	buildTime string
	paths     config.PathsConfig
	data      *DatasetService
	hub       interface{ ClientCount() int }
	startTime time.Time
	logger    *slog.Logger
}

// HealthStatus is the health endpoint response body.
type HealthStatus struct {
	Status    string                 `json:"status"`
	Timestamp time.Time              `json:"timestamp"`
	Version   string                 `json:"version"`
	Runtime   map[string]interface{} `json:"runtime,omitempty"`
	Services  map[string]interface{} `json:"services,omitempty"`
}

// ServiceHealth describes one dependency's health.
type ServiceHealth struct {
	Status  string `json:"status"`
	Message string `json:"message,omitempty"`
}

// NewHealthService creates a health service. hub may be nil for the
// one-shot report CLI.
func NewHealthService(version, buildTime string, paths config.PathsConfig, data *DatasetService, hub interface{ ClientCount() int }, logger *slog.Logger) *HealthService {
	if logger == nil {
		logger = slog.Default()
	}

	return &HealthService{
		version:   version,
		buildTime: buildTime,
		paths:     paths,
		data:      data,
		hub:       hub,
		startTime: time.Now(),
		logger:    logger.With(slog.String("component", "health_service")),
	}
}

// HealthCheck returns the overall health status.
func (hs *HealthService) HealthCheck(ctx context.Context) HealthStatus {
	status := HealthStatus{
		Status:    "ok",
		Timestamp: time.Now(),
		Version:   hs.version,
		Services:  make(map[string]interface{}),
	}

	status.Services["dataset"] = hs.checkDatasetHealth()
	status.Services["storage"] = hs.checkStorageHealth()

	for _, service := range status.Services {
		if sh, ok := service.(ServiceHealth); ok && sh.Status != "ready" {
			status.Status = "degraded"
			break
		}
	}

	return status
}

// LivenessCheck reports that the process is alive.
func (hs *HealthService) LivenessCheck(ctx context.Context) HealthStatus {
	return HealthStatus{
		Status:    "alive",
		Timestamp: time.Now(),
		Version:   hs.version,
		Runtime: map[string]interface{}{
			"uptime":     time.Since(hs.startTime).Seconds(),
			"go_version": runtime.Version(),
			"goroutines": runtime.NumGoroutine(),
		},
	}
}

// Version returns build and runtime information.
func (hs *HealthService) Version() map[string]interface{} {
	result := map[string]interface{}{
		"version":      hs.version,
		"go_version":   runtime.Version(),
		"os":           runtime.GOOS,
		"arch":         runtime.GOARCH,
		"uptime":       time.Since(hs.startTime).Seconds(),
		"start_time":   hs.startTime.Format(time.RFC3339),
		"current_time": time.Now().Format(time.RFC3339),
	}
	if hs.buildTime != "" {
		result["build_time"] = hs.buildTime
	}
	return result
}

// Stats returns runtime statistics for the detailed health endpoint.
func (hs *HealthService) Stats(ctx context.Context) map[string]interface{} {
	stats := map[string]interface{}{
		"uptime_seconds": time.Since(hs.startTime).Seconds(),
		"go_version":     runtime.Version(),
		"os":             runtime.GOOS,
		"arch":           runtime.GOARCH,
	}

	if hs.hub != nil {
		stats["websocket_clients"] = hs.hub.ClientCount()
	}
	if info, err := hs.data.Info(); err == nil {
		stats["dataset_rows"] = info.Rows
		stats["dataset_loaded_at"] = info.LoadedAt.Format(time.RFC3339)
	}

	return stats
}

func (hs *HealthService) checkDatasetHealth() ServiceHealth {
	info, err := hs.data.Info()
	if err != nil {
		return ServiceHealth{
			Status:  "not_ready",
			Message: fmt.Sprintf("dataset: %v", err),
		}
	}
	return ServiceHealth{
		Status:  "ready",
		Message: fmt.Sprintf("%d rows loaded", info.Rows),
	}
}

func (hs *HealthService) checkStorageHealth() ServiceHealth {
	if _, err := os.Stat(hs.paths.DataDir); os.IsNotExist(err) {
		return ServiceHealth{
			Status:  "not_ready",
			Message: fmt.Sprintf("data directory not found: %s", hs.paths.DataDir),
		}
	}
	return ServiceHealth{Status: "ready"}
}
