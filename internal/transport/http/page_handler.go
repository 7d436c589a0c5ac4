package http

import (
	"bytes"
	_ "embed"
	"html/template"
	"log/slog"
	"net/http"
	"net/url"
	"time"

	"github.com/go-chi/chi/v5"

	"campaignpulse/internal/charts"
	"campaignpulse/internal/errors"
	"campaignpulse/internal/infrastructure"
	"campaignpulse/internal/middleware"
	"campaignpulse/internal/services"
	"campaignpulse/pkg/contracts/domain"
)

//go:embed templates/dashboard.html
var dashboardTemplate string

// chartTitles maps registry chart names to their page headings.
var chartTitles = map[string]string{
	charts.NameCampaigns:       "Campaign Response Rates",
	charts.NameAgeGroups:       "Response Rate by Age Group",
	charts.NameTrends:          "Yearly Campaign Trends",
	charts.NameMonthly:         "Monthly Campaign Performance",
	charts.NameComparison:      "2023 vs 2024 Monthly Response",
	charts.NameRegions:         "Response Rate by Region",
	charts.NameRegionMatrix:    "Campaign Rates per Region",
	charts.NameRegionHeatmap:   "Region by Campaign Heatmap",
	charts.NameRegionCampaigns: "Campaign Rates in Selected Region",
	charts.NameRegionAges:      "Age Distribution in Selected Region",
	charts.NameRegionMonthly:   "Monthly Response in Selected Region",
}

// DatasetInfoReader exposes dataset metadata for the page header.
type DatasetInfoReader interface {
	Info() (domain.DatasetInfo, error)
}

// PageHandler renders the dashboard HTML page and the individual chart
// documents embedded in it.
type PageHandler struct {
	dashboard    DashboardReader
	dataset      DatasetInfoReader
	metrics      *infrastructure.BusinessMetrics
	logger       *slog.Logger
	errorHandler *errors.ErrorHandler
	tmpl         *template.Template
}

// NewPageHandler creates the page handler. The dashboard template is
// embedded at build time, so parse failures are programmer errors and
// panic at startup.
func NewPageHandler(dashboard DashboardReader, dataset DatasetInfoReader, metrics *infrastructure.BusinessMetrics, logger *slog.Logger, errorHandler *errors.ErrorHandler) *PageHandler {
	if logger == nil {
		logger = slog.Default()
	}
	return &PageHandler{
		dashboard:    dashboard,
		dataset:      dataset,
		metrics:      metrics,
		logger:       logger.With(slog.String("handler", "page")),
		errorHandler: errorHandler,
		tmpl:         template.Must(template.New("dashboard").Parse(dashboardTemplate)),
	}
}

// Routes returns the HTML page routes.
func (h *PageHandler) Routes() chi.Router {
	r := chi.NewRouter()
	r.Get("/", h.Home)
	r.Get("/charts/{name}", h.Chart)
	return r
}

// filterOption is one sidebar control value with its selection state.
type filterOption struct {
	Value    string
	Selected bool
}

// chartRef points an embedded chart frame at its /charts/{name} document.
type chartRef struct {
	Name  string
	Title string
	Src   string
}

// pageData is the template payload for the dashboard page.
type pageData struct {
	Title       string
	GeneratedAt string
	Info        domain.DatasetInfo
	Dashboard   *domain.Dashboard
	Educations  []filterOption
	Regions     []filterOption
	Charts      []chartRef
	Query       string
}

// Home renders the dashboard page for the current filter selection.
func (h *PageHandler) Home(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	filter := services.ParseFilter(r.URL.Query())

	h.logger.InfoContext(ctx, "dashboard page requested",
		slog.String("request_id", middleware.GetReqID(ctx)),
		slog.Any("educations", filter.Educations),
		slog.String("region", filter.Region),
	)

	info, err := h.dataset.Info()
	if err != nil {
		h.errorHandler.HandleError(w, r, err)
		return
	}
	dashboard, err := h.dashboard.Dashboard(ctx, filter)
	if err != nil {
		h.errorHandler.HandleError(w, r, err)
		return
	}
	options, err := h.dashboard.FilterOptions(ctx)
	if err != nil {
		h.errorHandler.HandleError(w, r, err)
		return
	}

	data := pageData{
		Title:       "CampaignPulse",
		GeneratedAt: dashboard.GeneratedAt.Format(time.RFC1123),
		Info:        info,
		Dashboard:   dashboard,
		Educations:  educationOptions(options, filter),
		Regions:     regionOptions(options, filter),
		Charts:      chartRefs(dashboard, filter),
		Query:       filterQuery(filter),
	}

	// Render to a buffer first so a template failure still gets a clean
	// problem response.
	var buf bytes.Buffer
	if err := h.tmpl.Execute(&buf, data); err != nil {
		h.errorHandler.HandleError(w, r, err)
		return
	}

	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	buf.WriteTo(w)
}

// Chart renders one named chart as a standalone HTML document.
func (h *PageHandler) Chart(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	name := chi.URLParam(r, "name")
	filter := services.ParseFilter(r.URL.Query())
	start := time.Now()

	dashboard, err := h.dashboard.Dashboard(ctx, filter)
	if err != nil {
		h.errorHandler.HandleError(w, r, err)
		return
	}

	var buf bytes.Buffer
	err = charts.Render(&buf, name, dashboard)
	infrastructure.RecordChartRender(ctx, h.metrics, name, time.Since(start), err)
	if err != nil {
		h.errorHandler.HandleError(w, r, err)
		return
	}

	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	buf.WriteTo(w)
}

func educationOptions(options domain.FilterOptions, filter domain.Filter) []filterOption {
	selected := make(map[string]bool, len(filter.Educations))
	for _, e := range filter.Educations {
		selected[e] = true
	}

	result := make([]filterOption, 0, len(options.Educations))
	for _, e := range options.Educations {
		result = append(result, filterOption{Value: e, Selected: selected[e]})
	}
	return result
}

func regionOptions(options domain.FilterOptions, filter domain.Filter) []filterOption {
	result := make([]filterOption, 0, len(options.Regions))
	for _, r := range options.Regions {
		selected := filter.Region == r || (!filter.HasRegion() && r == domain.AllRegions)
		result = append(result, filterOption{Value: r, Selected: selected})
	}
	return result
}

// chartRefs lists the charts available under the dashboard's regional mode,
// in the fixed page order.
func chartRefs(dashboard *domain.Dashboard, filter domain.Filter) []chartRef {
	names := []string{
		charts.NameCampaigns,
		charts.NameAgeGroups,
		charts.NameTrends,
		charts.NameMonthly,
		charts.NameComparison,
	}
	if dashboard.Regional.Comparison != nil {
		names = append(names, charts.NameRegions, charts.NameRegionMatrix, charts.NameRegionHeatmap)
	}
	if dashboard.Regional.Detail != nil {
		names = append(names, charts.NameRegionCampaigns, charts.NameRegionAges, charts.NameRegionMonthly)
	}

	query := filterQuery(filter)
	refs := make([]chartRef, 0, len(names))
	for _, name := range names {
		src := "/charts/" + name
		if query != "" {
			src += "?" + query
		}
		refs = append(refs, chartRef{Name: name, Title: chartTitles[name], Src: src})
	}
	return refs
}

func filterQuery(filter domain.Filter) string {
	values := url.Values{}
	for _, e := range filter.Educations {
		values.Add("education", e)
	}
	if filter.HasRegion() {
		values.Set("region", filter.Region)
	}
	return values.Encode()
}
