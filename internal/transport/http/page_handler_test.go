package http

import (
	"io"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"campaignpulse/internal/errors"
	"campaignpulse/pkg/contracts/domain"
)

type fakeInfoReader struct {
	info domain.DatasetInfo
	err  error
}

func (f *fakeInfoReader) Info() (domain.DatasetInfo, error) {
	if f.err != nil {
		return domain.DatasetInfo{}, f.err
	}
	return f.info, nil
}

func pageTestServer(dashboard *fakeDashboardReader, dataset *fakeInfoReader) *httptest.Server {
	h := NewPageHandler(dashboard, dataset, nil, testLogger(), testErrorHandler())
	return httptest.NewServer(h.Routes())
}

func fetchPage(t *testing.T, url string) (int, string) {
	t.Helper()
	resp, err := http.Get(url)
	require.NoError(t, err)
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	require.NoError(t, err)
	return resp.StatusCode, string(body)
}

func TestPageHandler_Home(t *testing.T) {
	dashboard := &fakeDashboardReader{dashboard: sampleDashboard()}
	dataset := &fakeInfoReader{info: domain.DatasetInfo{Rows: 2240, LoadedAt: time.Now()}}
	srv := pageTestServer(dashboard, dataset)
	defer srv.Close()

	status, body := fetchPage(t, srv.URL+"/")
	assert.Equal(t, http.StatusOK, status)

	assert.Contains(t, body, "CampaignPulse")
	assert.Contains(t, body, "2240 customers")
	assert.Contains(t, body, `name="education"`)
	assert.Contains(t, body, domain.AllRegions)
	assert.Contains(t, body, "Best Month per Campaign")
	assert.Contains(t, body, "Synthetic Trend Years")

	// Comparison mode embeds the regional comparison charts, not the
	// single-region detail ones.
	assert.Contains(t, body, "/charts/region-heatmap")
	assert.NotContains(t, body, "/charts/region-ages")
}

func TestPageHandler_HomeCarriesFilterIntoChartFrames(t *testing.T) {
	dashboard := &fakeDashboardReader{dashboard: sampleDashboard()}
	dataset := &fakeInfoReader{info: domain.DatasetInfo{Rows: 2240, LoadedAt: time.Now()}}
	srv := pageTestServer(dashboard, dataset)
	defer srv.Close()

	status, body := fetchPage(t, srv.URL+"/?education=PhD")
	assert.Equal(t, http.StatusOK, status)
	assert.Contains(t, body, "/charts/campaigns?education=PhD")
}

func TestPageHandler_HomeDetailMode(t *testing.T) {
	detail := sampleDashboard()
	detail.Regional = domain.RegionalAnalysis{
		Mode: domain.RegionalModeDetail,
		Detail: &domain.RegionDetail{
			Region:       "North",
			ResponseRate: 50,
			Campaigns: []domain.CampaignRate{
				{Campaign: domain.CampaignSpring, Rate: 50, Color: "#1f77b4"},
			},
			AgeDistribution: []domain.AgeShare{
				{Group: domain.AgeGroup35to49, Count: 1, Percent: 100},
			},
			Monthly: []domain.MonthRate{{Month: "Jan", Rate: 50}},
		},
	}
	dashboard := &fakeDashboardReader{dashboard: detail}
	dataset := &fakeInfoReader{info: domain.DatasetInfo{Rows: 2240, LoadedAt: time.Now()}}
	srv := pageTestServer(dashboard, dataset)
	defer srv.Close()

	status, body := fetchPage(t, srv.URL+"/?region=North")
	assert.Equal(t, http.StatusOK, status)
	assert.Contains(t, body, "/charts/region-ages")
	assert.NotContains(t, body, "/charts/region-heatmap")
}

func TestPageHandler_HomeNotLoaded(t *testing.T) {
	dashboard := &fakeDashboardReader{dashboard: sampleDashboard()}
	dataset := &fakeInfoReader{err: errors.ErrDatasetNotLoaded}
	srv := pageTestServer(dashboard, dataset)
	defer srv.Close()

	status, _ := fetchPage(t, srv.URL+"/")
	assert.Equal(t, http.StatusUnprocessableEntity, status)
}

func TestPageHandler_Chart(t *testing.T) {
	dashboard := &fakeDashboardReader{dashboard: sampleDashboard()}
	dataset := &fakeInfoReader{info: domain.DatasetInfo{Rows: 2240}}
	srv := pageTestServer(dashboard, dataset)
	defer srv.Close()

	status, body := fetchPage(t, srv.URL+"/charts/campaigns")
	assert.Equal(t, http.StatusOK, status)
	assert.Contains(t, body, "echarts")
}

func TestPageHandler_ChartUnknown(t *testing.T) {
	dashboard := &fakeDashboardReader{dashboard: sampleDashboard()}
	dataset := &fakeInfoReader{info: domain.DatasetInfo{Rows: 2240}}
	srv := pageTestServer(dashboard, dataset)
	defer srv.Close()

	status, _ := fetchPage(t, srv.URL+"/charts/bogus")
	assert.Equal(t, http.StatusNotFound, status)
}

func TestPageHandler_ChartDetailOnlyInComparisonMode(t *testing.T) {
	dashboard := &fakeDashboardReader{dashboard: sampleDashboard()}
	dataset := &fakeInfoReader{info: domain.DatasetInfo{Rows: 2240}}
	srv := pageTestServer(dashboard, dataset)
	defer srv.Close()

	// sampleDashboard is in comparison mode, so detail charts 404.
	status, _ := fetchPage(t, srv.URL+"/charts/region-ages")
	assert.Equal(t, http.StatusNotFound, status)
}
