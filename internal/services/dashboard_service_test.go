package services

import (
	"context"
	"net/url"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	apperrors "campaignpulse/internal/errors"
	"campaignpulse/pkg/contracts/domain"
)

func loadedDashboardService(t *testing.T) *DashboardService {
	t.Helper()
	data := newTestDatasetService(t, writeDataset(t))
	_, err := data.Load(context.Background())
	require.NoError(t, err)
	return NewDashboardService(data, nil, discardLogger())
}

func TestParseFilter(t *testing.T) {
	tests := []struct {
		name  string
		query string
		want  domain.Filter
	}{
		{name: "empty", query: "", want: domain.Filter{}},
		{
			name:  "repeated education params",
			query: "education=PhD&education=Master",
			want:  domain.Filter{Educations: []string{"PhD", "Master"}},
		},
		{
			name:  "comma separated educations",
			query: "education=PhD,Master",
			want:  domain.Filter{Educations: []string{"PhD", "Master"}},
		},
		{
			name:  "region",
			query: "region=North",
			want:  domain.Filter{Region: "North"},
		},
		{
			name:  "whitespace trimmed",
			query: "education=%20PhD%20,&region=%20South%20",
			want:  domain.Filter{Educations: []string{"PhD"}, Region: "South"},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			values, err := url.ParseQuery(tt.query)
			require.NoError(t, err)
			assert.Equal(t, tt.want, ParseFilter(values))
		})
	}
}

func TestDashboardService_ValidateFilter(t *testing.T) {
	s := loadedDashboardService(t)
	dataset, err := s.data.Dataset()
	require.NoError(t, err)

	assert.NoError(t, s.ValidateFilter(dataset, domain.Filter{}))
	assert.NoError(t, s.ValidateFilter(dataset, domain.Filter{Educations: []string{"PhD"}, Region: "North"}))
	assert.NoError(t, s.ValidateFilter(dataset, domain.Filter{Region: domain.AllRegions}))

	err = s.ValidateFilter(dataset, domain.Filter{Educations: []string{"Astrology"}})
	assert.ErrorIs(t, err, apperrors.ErrUnknownEducation)

	err = s.ValidateFilter(dataset, domain.Filter{Region: "Atlantis"})
	assert.ErrorIs(t, err, apperrors.ErrUnknownRegion)
}

func TestDashboardService_Dashboard(t *testing.T) {
	s := loadedDashboardService(t)

	dashboard, err := s.Dashboard(context.Background(), domain.Filter{})
	require.NoError(t, err)

	assert.Equal(t, 4, dashboard.Overview.CustomerCount)
	assert.InDelta(t, 50.0, dashboard.Overview.ResponseRate, 1e-9)
	assert.Len(t, dashboard.Campaigns, 4)
	assert.Equal(t, domain.RegionalModeComparison, dashboard.Regional.Mode)
	assert.Len(t, dashboard.Enhancements, 4)
}

func TestDashboardService_DashboardFiltered(t *testing.T) {
	s := loadedDashboardService(t)

	dashboard, err := s.Dashboard(context.Background(), domain.Filter{Educations: []string{"PhD"}})
	require.NoError(t, err)
	assert.Equal(t, 1, dashboard.Overview.CustomerCount)
}

func TestDashboardService_RegionsDetailMode(t *testing.T) {
	s := loadedDashboardService(t)

	// ID 2 maps to East (2 % 4).
	regional, err := s.Regions(context.Background(), domain.Filter{Region: "East"})
	require.NoError(t, err)
	require.Equal(t, domain.RegionalModeDetail, regional.Mode)
	require.NotNil(t, regional.Detail)
	assert.Equal(t, "East", regional.Detail.Region)
}

func TestDashboardService_NotLoaded(t *testing.T) {
	data := newTestDatasetService(t, writeDataset(t))
	s := NewDashboardService(data, nil, discardLogger())

	_, err := s.Dashboard(context.Background(), domain.Filter{})
	assert.ErrorIs(t, err, apperrors.ErrDatasetNotLoaded)

	_, err = s.FilterOptions(context.Background())
	assert.ErrorIs(t, err, apperrors.ErrDatasetNotLoaded)
}

func TestDashboardService_FilterOptions(t *testing.T) {
	s := loadedDashboardService(t)

	options, err := s.FilterOptions(context.Background())
	require.NoError(t, err)
	assert.Equal(t, []string{"Basic", "Graduation", "Master", "PhD"}, options.Educations)
	assert.Equal(t, []string{domain.AllRegions, "North", "South", "East", "West"}, options.Regions)
}

func TestDashboardService_Sections(t *testing.T) {
	s := loadedDashboardService(t)
	ctx := context.Background()

	campaigns, err := s.Campaigns(ctx, domain.Filter{})
	require.NoError(t, err)
	assert.Len(t, campaigns, 4)

	ageGroups, err := s.AgeGroups(ctx, domain.Filter{})
	require.NoError(t, err)
	assert.NotEmpty(t, ageGroups)

	trends, err := s.Trends(ctx, domain.Filter{})
	require.NoError(t, err)
	assert.NotEmpty(t, trends.Series)

	months, err := s.Months(ctx, domain.Filter{})
	require.NoError(t, err)
	assert.NotEmpty(t, months.Series)
	assert.NotEmpty(t, months.BestMonths)

	comparison, err := s.Comparison(ctx, domain.Filter{})
	require.NoError(t, err)
	assert.Len(t, comparison.Months, 12)
}
