package http

import (
	"context"
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/render"

	"campaignpulse/internal/errors"
	"campaignpulse/internal/middleware"
	"campaignpulse/pkg/contracts/domain"
)

// DatasetManager is the slice of the dataset service the dataset API needs.
type DatasetManager interface {
	Info() (domain.DatasetInfo, error)
	Reload(ctx context.Context) (domain.DatasetInfo, error)
}

// DatasetHandler serves dataset metadata and triggers reloads.
type DatasetHandler struct {
	service      DatasetManager
	logger       *slog.Logger
	errorHandler *errors.ErrorHandler
}

// NewDatasetHandler creates a dataset API handler.
func NewDatasetHandler(service DatasetManager, logger *slog.Logger, errorHandler *errors.ErrorHandler) *DatasetHandler {
	if logger == nil {
		logger = slog.Default()
	}
	return &DatasetHandler{
		service:      service,
		logger:       logger.With(slog.String("handler", "dataset")),
		errorHandler: errorHandler,
	}
}

// Routes returns the dataset API routes.
func (h *DatasetHandler) Routes() chi.Router {
	r := chi.NewRouter()
	r.Use(render.SetContentType(render.ContentTypeJSON))

	r.Get("/", h.GetInfo)
	r.With(middleware.ContentTypeValidator("application/json")).Post("/reload", h.Reload)

	return r
}

// GetInfo returns metadata about the loaded dataset.
func (h *DatasetHandler) GetInfo(w http.ResponseWriter, r *http.Request) {
	info, err := h.service.Info()
	if err != nil {
		h.errorHandler.HandleError(w, r, err)
		return
	}

	render.JSON(w, r, map[string]interface{}{
		"status": "success",
		"data":   info,
	})
}

// Reload re-reads the dataset from disk and swaps the snapshot. A reload
// already in flight yields 409.
func (h *DatasetHandler) Reload(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	h.logger.InfoContext(ctx, "dataset reload requested",
		slog.String("request_id", middleware.GetReqID(ctx)),
		slog.String("remote_addr", r.RemoteAddr),
	)

	info, err := h.service.Reload(ctx)
	if err != nil {
		h.errorHandler.HandleError(w, r, err)
		return
	}

	render.JSON(w, r, map[string]interface{}{
		"status":  "success",
		"message": "dataset reloaded",
		"data":    info,
	})
}
