package http

import (
	"bytes"
	"context"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"

	"campaignpulse/internal/errors"
	"campaignpulse/internal/middleware"
	"campaignpulse/internal/services"
	apiv1 "campaignpulse/pkg/contracts/api/v1"
	"campaignpulse/pkg/contracts/domain"
)

// ExportStreamer is the slice of the export service the download API needs.
type ExportStreamer interface {
	Filename(format string) string
	WriteCSV(ctx context.Context, w io.Writer, filter domain.Filter) error
	WriteExcel(ctx context.Context, w io.Writer, filter domain.Filter) error
}

// StructValidator checks a decoded request contract against its
// validation tags.
type StructValidator interface {
	ValidateStruct(v interface{}) error
}

// ExportHandler serves filtered dataset downloads.
type ExportHandler struct {
	service      ExportStreamer
	validate     StructValidator
	logger       *slog.Logger
	errorHandler *errors.ErrorHandler
}

// NewExportHandler creates an export download handler.
func NewExportHandler(service ExportStreamer, validate StructValidator, logger *slog.Logger, errorHandler *errors.ErrorHandler) *ExportHandler {
	if logger == nil {
		logger = slog.Default()
	}
	return &ExportHandler{
		service:      service,
		validate:     validate,
		logger:       logger.With(slog.String("handler", "export")),
		errorHandler: errorHandler,
	}
}

// Routes returns the export download routes.
func (h *ExportHandler) Routes() chi.Router {
	r := chi.NewRouter()
	r.Get("/{format}", h.Download)
	return r
}

// Download writes the filtered dataset in the requested format. The export
// is buffered before any header is written so a failed filter or writer
// still yields a proper problem response.
func (h *ExportHandler) Download(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	req := apiv1.ExportRequest{
		FilterRequest: apiv1.FilterRequest{
			Educations: r.URL.Query()["education"],
			Region:     r.URL.Query().Get("region"),
		},
		Format: chi.URLParam(r, "format"),
	}
	if err := h.validate.ValidateStruct(req); err != nil {
		h.errorHandler.HandleError(w, r, err)
		return
	}
	format := req.Format
	filter := services.FilterFromRequest(req.FilterRequest)

	h.logger.InfoContext(ctx, "export requested",
		slog.String("request_id", middleware.GetReqID(ctx)),
		slog.String("format", format),
		slog.Any("educations", filter.Educations),
		slog.String("region", filter.Region),
	)

	var buf bytes.Buffer
	var contentType string

	switch format {
	case services.FormatCSV:
		contentType = "text/csv; charset=utf-8"
		if err := h.service.WriteCSV(ctx, &buf, filter); err != nil {
			h.errorHandler.HandleError(w, r, err)
			return
		}
	case services.FormatXLSX:
		contentType = "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet"
		if err := h.service.WriteExcel(ctx, &buf, filter); err != nil {
			h.errorHandler.HandleError(w, r, err)
			return
		}
	default:
		h.errorHandler.HandleError(w, r, fmt.Errorf("%w: %q", errors.ErrUnsupportedFormat, format))
		return
	}

	filename := h.service.Filename(format)
	w.Header().Set("Content-Type", contentType)
	w.Header().Set("Content-Disposition", fmt.Sprintf(`attachment; filename="%s"`, filename))
	w.Header().Set("Content-Length", fmt.Sprintf("%d", buf.Len()))
	w.Header().Set("Cache-Control", "no-store")

	start := time.Now()
	if _, err := buf.WriteTo(w); err != nil {
		// The response is already streaming; all we can do is log.
		h.logger.WarnContext(ctx, "export write aborted",
			slog.String("format", format),
			slog.String("error", err.Error()),
			slog.Duration("elapsed", time.Since(start)))
	}
}
