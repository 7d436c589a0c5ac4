package http

import (
	"context"
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/render"

	"campaignpulse/internal/services"
)

// HealthChecker is the slice of the health service the endpoints need.
type HealthChecker interface {
	HealthCheck(ctx context.Context) services.HealthStatus
	LivenessCheck(ctx context.Context) services.HealthStatus
	Version() map[string]interface{}
	Stats(ctx context.Context) map[string]interface{}
}

// HealthHandler serves liveness, readiness and version endpoints.
type HealthHandler struct {
	service HealthChecker
	logger  *slog.Logger
}

// NewHealthHandler creates a health handler.
func NewHealthHandler(service HealthChecker, logger *slog.Logger) *HealthHandler {
	if logger == nil {
		logger = slog.Default()
	}
	return &HealthHandler{
		service: service,
		logger:  logger.With(slog.String("handler", "health")),
	}
}

// Routes returns the detailed health API routes.
func (h *HealthHandler) Routes() chi.Router {
	r := chi.NewRouter()
	r.Use(render.SetContentType(render.ContentTypeJSON))

	r.Get("/", h.Health)
	r.Get("/version", h.Version)
	r.Get("/stats", h.Stats)

	return r
}

// Health reports overall health; degraded dependencies yield 503 so load
// balancers stop routing to the instance.
func (h *HealthHandler) Health(w http.ResponseWriter, r *http.Request) {
	status := h.service.HealthCheck(r.Context())

	if status.Status != "ok" {
		render.Status(r, http.StatusServiceUnavailable)
	}
	render.JSON(w, r, status)
}

// Liveness reports that the process is up. Mounted at /healthz.
func (h *HealthHandler) Liveness(w http.ResponseWriter, r *http.Request) {
	render.JSON(w, r, h.service.LivenessCheck(r.Context()))
}

// Version reports build and runtime information.
func (h *HealthHandler) Version(w http.ResponseWriter, r *http.Request) {
	render.JSON(w, r, map[string]interface{}{
		"status": "success",
		"data":   h.service.Version(),
	})
}

// Stats reports runtime statistics.
func (h *HealthHandler) Stats(w http.ResponseWriter, r *http.Request) {
	render.JSON(w, r, map[string]interface{}{
		"status": "success",
		"data":   h.service.Stats(r.Context()),
	})
}
