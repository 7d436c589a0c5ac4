package services

import (
	"context"
	"fmt"
	"log/slog"
	"net/url"
	"strings"

	"campaignpulse/internal/analytics"
	apperrors "campaignpulse/internal/errors"
	"campaignpulse/internal/infrastructure"
	apiv1 "campaignpulse/pkg/contracts/api/v1"
	"campaignpulse/pkg/contracts/domain"
)

// DashboardService turns the current dataset snapshot plus sidebar filters
// into dashboard aggregates.
type DashboardService struct {
	data     *DatasetService
	analyzer *analytics.Analyzer
	metrics  *infrastructure.BusinessMetrics
	logger   *slog.Logger
}

// NewDashboardService creates a dashboard service.
func NewDashboardService(data *DatasetService, metrics *infrastructure.BusinessMetrics, logger *slog.Logger) *DashboardService {
	if logger == nil {
		logger = slog.Default()
	}
	logger = logger.With(slog.String("component", "dashboard_service"))

	return &DashboardService{
		data:     data,
		analyzer: analytics.NewAnalyzer(logger),
		metrics:  metrics,
		logger:   logger,
	}
}

// ParseFilter reads the sidebar filter from query parameters into the v1
// filter contract and normalizes it into a domain filter.
func ParseFilter(values url.Values) domain.Filter {
	return FilterFromRequest(apiv1.FilterRequest{
		Educations: values["education"],
		Region:     values.Get("region"),
	})
}

// FilterFromRequest normalizes a filter contract into a domain filter.
// Education entries may be comma-separated; blanks are dropped.
func FilterFromRequest(req apiv1.FilterRequest) domain.Filter {
	var filter domain.Filter

	for _, raw := range req.Educations {
		for _, part := range strings.Split(raw, ",") {
			if e := strings.TrimSpace(part); e != "" {
				filter.Educations = append(filter.Educations, e)
			}
		}
	}

	filter.Region = strings.TrimSpace(req.Region)
	return filter
}

// ValidateFilter checks the filter against the loaded dataset's known
// education levels and the fixed region set.
func (s *DashboardService) ValidateFilter(dataset *domain.Dataset, filter domain.Filter) error {
	if len(filter.Educations) > 0 {
		known := make(map[string]struct{})
		for _, e := range dataset.Educations() {
			known[e] = struct{}{}
		}
		for _, e := range filter.Educations {
			if _, ok := known[e]; !ok {
				return fmt.Errorf("%w: %q", apperrors.ErrUnknownEducation, e)
			}
		}
	}

	if filter.Region != "" && filter.Region != domain.AllRegions {
		valid := false
		for _, r := range domain.Regions() {
			if filter.Region == string(r) {
				valid = true
				break
			}
		}
		if !valid {
			return fmt.Errorf("%w: %q", apperrors.ErrUnknownRegion, filter.Region)
		}
	}

	return nil
}

// Dashboard computes the full dashboard for the filter.
func (s *DashboardService) Dashboard(ctx context.Context, filter domain.Filter) (*domain.Dashboard, error) {
	dataset, err := s.data.Dataset()
	if err != nil {
		return nil, err
	}
	if err := s.ValidateFilter(dataset, filter); err != nil {
		return nil, err
	}

	infrastructure.RecordFilterUsage(ctx, s.metrics, len(filter.Educations), filter.HasRegion())

	return s.analyzer.Dashboard(ctx, filter.Apply(dataset.Customers), filter), nil
}

// Campaigns returns per-campaign response rates for the filter.
func (s *DashboardService) Campaigns(ctx context.Context, filter domain.Filter) ([]domain.CampaignRate, error) {
	customers, err := s.filtered(ctx, filter)
	if err != nil {
		return nil, err
	}
	return s.analyzer.CampaignRates(customers), nil
}

// AgeGroups returns age-group response rates for the filter.
func (s *DashboardService) AgeGroups(ctx context.Context, filter domain.Filter) ([]domain.AgeGroupRate, error) {
	customers, err := s.filtered(ctx, filter)
	if err != nil {
		return nil, err
	}
	return s.analyzer.AgeGroupRates(customers), nil
}

// Trends returns the multi-year trend series for the filter.
func (s *DashboardService) Trends(ctx context.Context, filter domain.Filter) (domain.YearlyTrends, error) {
	customers, err := s.filtered(ctx, filter)
	if err != nil {
		return domain.YearlyTrends{}, err
	}
	return s.analyzer.YearlyTrends(customers), nil
}

// Months returns monthly performance and best months for the filter.
func (s *DashboardService) Months(ctx context.Context, filter domain.Filter) (domain.MonthlyPerformance, error) {
	customers, err := s.filtered(ctx, filter)
	if err != nil {
		return domain.MonthlyPerformance{}, err
	}
	return s.analyzer.MonthlyPerformance(customers), nil
}

// Comparison returns the year-over-year month comparison for the filter.
func (s *DashboardService) Comparison(ctx context.Context, filter domain.Filter) (domain.YearComparison, error) {
	customers, err := s.filtered(ctx, filter)
	if err != nil {
		return domain.YearComparison{}, err
	}
	return s.analyzer.YearComparison(customers), nil
}

// Regions returns the regional analysis for the filter. The region
// selection decides detail versus comparison mode.
func (s *DashboardService) Regions(ctx context.Context, filter domain.Filter) (domain.RegionalAnalysis, error) {
	customers, err := s.filtered(ctx, filter)
	if err != nil {
		return domain.RegionalAnalysis{}, err
	}
	return s.analyzer.RegionalAnalysis(customers, filter), nil
}

// FilterOptions returns the selectable filter values for the sidebar.
func (s *DashboardService) FilterOptions(ctx context.Context) (domain.FilterOptions, error) {
	dataset, err := s.data.Dataset()
	if err != nil {
		return domain.FilterOptions{}, err
	}
	return s.analyzer.FilterOptions(dataset), nil
}

// filtered validates the filter and applies it to the snapshot.
func (s *DashboardService) filtered(ctx context.Context, filter domain.Filter) ([]domain.Customer, error) {
	dataset, err := s.data.Dataset()
	if err != nil {
		return nil, err
	}
	if err := s.ValidateFilter(dataset, filter); err != nil {
		return nil, err
	}

	infrastructure.RecordFilterUsage(ctx, s.metrics, len(filter.Educations), filter.HasRegion())
	return filter.Apply(dataset.Customers), nil
}
