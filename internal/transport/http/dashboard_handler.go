package http

import (
	"context"
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/render"

	"campaignpulse/internal/errors"
	"campaignpulse/internal/middleware"
	"campaignpulse/internal/services"
	"campaignpulse/pkg/contracts/domain"
)

// DashboardReader is the slice of the dashboard service the JSON API needs.
type DashboardReader interface {
	Dashboard(ctx context.Context, filter domain.Filter) (*domain.Dashboard, error)
	Campaigns(ctx context.Context, filter domain.Filter) ([]domain.CampaignRate, error)
	AgeGroups(ctx context.Context, filter domain.Filter) ([]domain.AgeGroupRate, error)
	Trends(ctx context.Context, filter domain.Filter) (domain.YearlyTrends, error)
	Months(ctx context.Context, filter domain.Filter) (domain.MonthlyPerformance, error)
	Comparison(ctx context.Context, filter domain.Filter) (domain.YearComparison, error)
	Regions(ctx context.Context, filter domain.Filter) (domain.RegionalAnalysis, error)
	FilterOptions(ctx context.Context) (domain.FilterOptions, error)
}

// DashboardHandler serves the dashboard aggregates as JSON.
type DashboardHandler struct {
	service      DashboardReader
	logger       *slog.Logger
	errorHandler *errors.ErrorHandler
}

// NewDashboardHandler creates a dashboard API handler.
func NewDashboardHandler(service DashboardReader, logger *slog.Logger, errorHandler *errors.ErrorHandler) *DashboardHandler {
	if logger == nil {
		logger = slog.Default()
	}
	return &DashboardHandler{
		service:      service,
		logger:       logger.With(slog.String("handler", "dashboard")),
		errorHandler: errorHandler,
	}
}

// Routes returns the dashboard API routes.
func (h *DashboardHandler) Routes() chi.Router {
	r := chi.NewRouter()
	r.Use(render.SetContentType(render.ContentTypeJSON))

	r.Get("/dashboard", h.GetDashboard)
	r.Get("/campaigns", h.GetCampaigns)
	r.Get("/age-groups", h.GetAgeGroups)
	r.Get("/trends", h.GetTrends)
	r.Get("/months", h.GetMonths)
	r.Get("/comparison", h.GetComparison)
	r.Get("/regions", h.GetRegions)
	r.Get("/filters", h.GetFilterOptions)

	return r
}

// GetDashboard returns the full dashboard for the current filter.
func (h *DashboardHandler) GetDashboard(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	filter := services.ParseFilter(r.URL.Query())

	h.logger.InfoContext(ctx, "dashboard requested",
		slog.String("request_id", middleware.GetReqID(ctx)),
		slog.Any("educations", filter.Educations),
		slog.String("region", filter.Region),
	)

	dashboard, err := h.service.Dashboard(ctx, filter)
	if err != nil {
		h.errorHandler.HandleError(w, r, err)
		return
	}

	render.JSON(w, r, map[string]interface{}{
		"status": "success",
		"data":   dashboard,
	})
}

// GetCampaigns returns per-campaign response rates.
func (h *DashboardHandler) GetCampaigns(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	filter := services.ParseFilter(r.URL.Query())

	campaigns, err := h.service.Campaigns(ctx, filter)
	if err != nil {
		h.errorHandler.HandleError(w, r, err)
		return
	}

	render.JSON(w, r, map[string]interface{}{
		"status": "success",
		"data":   campaigns,
		"count":  len(campaigns),
	})
}

// GetAgeGroups returns age-group response rates.
func (h *DashboardHandler) GetAgeGroups(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	filter := services.ParseFilter(r.URL.Query())

	groups, err := h.service.AgeGroups(ctx, filter)
	if err != nil {
		h.errorHandler.HandleError(w, r, err)
		return
	}

	render.JSON(w, r, map[string]interface{}{
		"status": "success",
		"data":   groups,
		"count":  len(groups),
	})
}

// GetTrends returns the multi-year trend series.
func (h *DashboardHandler) GetTrends(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	filter := services.ParseFilter(r.URL.Query())

	trends, err := h.service.Trends(ctx, filter)
	if err != nil {
		h.errorHandler.HandleError(w, r, err)
		return
	}

	render.JSON(w, r, map[string]interface{}{
		"status": "success",
		"data":   trends,
	})
}

// GetMonths returns monthly performance plus the best-month ranking.
func (h *DashboardHandler) GetMonths(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	filter := services.ParseFilter(r.URL.Query())

	months, err := h.service.Months(ctx, filter)
	if err != nil {
		h.errorHandler.HandleError(w, r, err)
		return
	}

	render.JSON(w, r, map[string]interface{}{
		"status": "success",
		"data":   months,
	})
}

// GetComparison returns the year-over-year month comparison.
func (h *DashboardHandler) GetComparison(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	filter := services.ParseFilter(r.URL.Query())

	comparison, err := h.service.Comparison(ctx, filter)
	if err != nil {
		h.errorHandler.HandleError(w, r, err)
		return
	}

	render.JSON(w, r, map[string]interface{}{
		"status": "success",
		"data":   comparison,
	})
}

// GetRegions returns the regional analysis. The region query parameter
// switches between the four-region comparison and a single-region detail.
func (h *DashboardHandler) GetRegions(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	filter := services.ParseFilter(r.URL.Query())

	regional, err := h.service.Regions(ctx, filter)
	if err != nil {
		h.errorHandler.HandleError(w, r, err)
		return
	}

	render.JSON(w, r, map[string]interface{}{
		"status": "success",
		"data":   regional,
	})
}

// GetFilterOptions returns the selectable sidebar filter values.
func (h *DashboardHandler) GetFilterOptions(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	options, err := h.service.FilterOptions(ctx)
	if err != nil {
		h.errorHandler.HandleError(w, r, err)
		return
	}

	render.JSON(w, r, map[string]interface{}{
		"status": "success",
		"data":   options,
	})
}
