package http

import (
	"context"
	"io"
	"log/slog"
	"time"

	"campaignpulse/internal/errors"
	"campaignpulse/pkg/contracts/domain"
)

func testLogger() *slog.Logger {
	return slog.New(slog.NewJSONHandler(io.Discard, nil))
}

func testErrorHandler() *errors.ErrorHandler {
	return errors.NewErrorHandler(testLogger(), false)
}

// sampleDashboard builds a small but structurally complete dashboard in
// comparison mode.
func sampleDashboard() *domain.Dashboard {
	return &domain.Dashboard{
		GeneratedAt: time.Date(2026, 1, 15, 12, 0, 0, 0, time.UTC),
		Overview: domain.Overview{
			ResponseRate:  50,
			TotalIncome:   210000,
			CustomerCount: 4,
		},
		Campaigns: []domain.CampaignRate{
			{Campaign: domain.CampaignSpring, Rate: 25, Color: "#1f77b4"},
			{Campaign: domain.CampaignSummer, Rate: 25, Color: "#ff7f0e"},
			{Campaign: domain.CampaignAutumn, Rate: 25, Color: "#2ca02c"},
			{Campaign: domain.CampaignWinter, Rate: 25, Color: "#9467bd"},
		},
		AgeGroups: []domain.AgeGroupRate{
			{Group: domain.AgeGroup35to49, Rate: 50},
			{Group: domain.AgeGroup65Plus, Rate: 50},
		},
		Trends: domain.YearlyTrends{
			Years: []int{2019, 2020, 2021, 2022, 2023, 2024},
			Series: []domain.TrendSeries{
				{
					Campaign: domain.CampaignSpring,
					Color:    "#1f77b4",
					Points: []domain.TrendPoint{
						{Year: 2019, Rate: 25},
						{Year: 2020, Rate: 20, Synthetic: true},
					},
				},
			},
		},
		Monthly: domain.MonthlyPerformance{
			Months: []string{"Jan", "Mar"},
			Series: []domain.MonthlySeries{
				{Campaign: domain.CampaignSpring, Color: "#1f77b4", Rates: []float64{25, 0}},
			},
			BestMonths: []domain.BestMonth{
				{Campaign: domain.CampaignSpring, Month: "Jan", Rate: 25},
			},
		},
		Comparison: domain.YearComparison{
			Months: []string{"Jan", "Feb", "Mar", "Apr", "May", "Jun", "Jul", "Aug", "Sep", "Oct", "Nov", "Dec"},
			Years: []domain.ComparisonYear{
				{DisplayYear: 2023, SourceYear: 2020, Color: "#1f77b4"},
				{DisplayYear: 2024, SourceYear: 2021, Color: "#ff7f0e"},
			},
		},
		Regional: domain.RegionalAnalysis{
			Mode: domain.RegionalModeComparison,
			Comparison: &domain.RegionComparison{
				Regions: []domain.RegionRate{
					{Region: domain.RegionNorth, Rate: 50},
					{Region: domain.RegionSouth, Rate: 25},
					{Region: domain.RegionEast, Rate: 0},
					{Region: domain.RegionWest, Rate: 75},
				},
				Matrix: domain.RegionCampaignMatrix{
					Year:      2021,
					Regions:   []domain.Region{domain.RegionNorth, domain.RegionSouth, domain.RegionEast, domain.RegionWest},
					Campaigns: domain.Campaigns(),
					Rates: [][]float64{
						{25, 0, 0, 0},
						{0, 25, 0, 0},
						{0, 0, 0, 0},
						{0, 0, 25, 25},
					},
				},
			},
		},
		Enhancements: []domain.Enhancement{
			{Title: "Synthetic Trend Years", Body: "Years without observations carry extrapolated rates."},
		},
	}
}

// fakeDashboardReader returns canned aggregates and records the last filter
// it was called with.
type fakeDashboardReader struct {
	dashboard  *domain.Dashboard
	err        error
	lastFilter domain.Filter
}

func (f *fakeDashboardReader) Dashboard(ctx context.Context, filter domain.Filter) (*domain.Dashboard, error) {
	f.lastFilter = filter
	if f.err != nil {
		return nil, f.err
	}
	return f.dashboard, nil
}

func (f *fakeDashboardReader) Campaigns(ctx context.Context, filter domain.Filter) ([]domain.CampaignRate, error) {
	f.lastFilter = filter
	if f.err != nil {
		return nil, f.err
	}
	return f.dashboard.Campaigns, nil
}

func (f *fakeDashboardReader) AgeGroups(ctx context.Context, filter domain.Filter) ([]domain.AgeGroupRate, error) {
	f.lastFilter = filter
	if f.err != nil {
		return nil, f.err
	}
	return f.dashboard.AgeGroups, nil
}

func (f *fakeDashboardReader) Trends(ctx context.Context, filter domain.Filter) (domain.YearlyTrends, error) {
	f.lastFilter = filter
	if f.err != nil {
		return domain.YearlyTrends{}, f.err
	}
	return f.dashboard.Trends, nil
}

func (f *fakeDashboardReader) Months(ctx context.Context, filter domain.Filter) (domain.MonthlyPerformance, error) {
	f.lastFilter = filter
	if f.err != nil {
		return domain.MonthlyPerformance{}, f.err
	}
	return f.dashboard.Monthly, nil
}

func (f *fakeDashboardReader) Comparison(ctx context.Context, filter domain.Filter) (domain.YearComparison, error) {
	f.lastFilter = filter
	if f.err != nil {
		return domain.YearComparison{}, f.err
	}
	return f.dashboard.Comparison, nil
}

func (f *fakeDashboardReader) Regions(ctx context.Context, filter domain.Filter) (domain.RegionalAnalysis, error) {
	f.lastFilter = filter
	if f.err != nil {
		return domain.RegionalAnalysis{}, f.err
	}
	return f.dashboard.Regional, nil
}

func (f *fakeDashboardReader) FilterOptions(ctx context.Context) (domain.FilterOptions, error) {
	if f.err != nil {
		return domain.FilterOptions{}, f.err
	}
	return domain.FilterOptions{
		Educations: []string{"Basic", "Graduation", "Master", "PhD"},
		Regions:    []string{domain.AllRegions, "North", "South", "East", "West"},
	}, nil
}
