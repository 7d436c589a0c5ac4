package charts

import (
	"fmt"
	"io"

	"github.com/go-echarts/go-echarts/v2/components"
	"github.com/go-echarts/go-echarts/v2/render"

	"campaignpulse/internal/errors"
	"campaignpulse/pkg/contracts/domain"
)

// Chart names served under /charts/{name}.
const (
	NameCampaigns       = "campaigns"
	NameAgeGroups       = "age-groups"
	NameTrends          = "trends"
	NameMonthly         = "monthly"
	NameComparison      = "comparison"
	NameRegions         = "regions"
	NameRegionMatrix    = "region-matrix"
	NameRegionHeatmap   = "region-heatmap"
	NameRegionCampaigns = "region-campaigns"
	NameRegionAges      = "region-ages"
	NameRegionMonthly   = "region-monthly"
)

// Names returns every chart name the registry can serve, in dashboard order.
// The regional names branch on the filter: the last three require a region
// selection, the three before them require All Regions.
func Names() []string {
	return []string{
		NameCampaigns,
		NameAgeGroups,
		NameTrends,
		NameMonthly,
		NameComparison,
		NameRegions,
		NameRegionMatrix,
		NameRegionHeatmap,
		NameRegionCampaigns,
		NameRegionAges,
		NameRegionMonthly,
	}
}

// Build constructs the named chart from a computed dashboard. Unknown names
// and regional charts not available under the current filter mode return
// ErrChartUnknown.
func Build(name string, dashboard *domain.Dashboard) (render.Renderer, error) {
	switch name {
	case NameCampaigns:
		return CampaignBar(dashboard.Campaigns), nil
	case NameAgeGroups:
		return AgeGroupBar(dashboard.AgeGroups), nil
	case NameTrends:
		return TrendsLine(dashboard.Trends), nil
	case NameMonthly:
		return MonthlyLine(dashboard.Monthly), nil
	case NameComparison:
		return ComparisonBar(dashboard.Comparison), nil
	case NameRegions, NameRegionMatrix, NameRegionHeatmap:
		comparison := dashboard.Regional.Comparison
		if comparison == nil {
			return nil, fmt.Errorf("%w: %s requires the All Regions view", errors.ErrChartUnknown, name)
		}
		switch name {
		case NameRegions:
			return RegionBar(comparison), nil
		case NameRegionMatrix:
			return MatrixBar(comparison.Matrix), nil
		default:
			return MatrixHeatMap(comparison.Matrix), nil
		}
	case NameRegionCampaigns, NameRegionAges, NameRegionMonthly:
		detail := dashboard.Regional.Detail
		if detail == nil {
			return nil, fmt.Errorf("%w: %s requires a region selection", errors.ErrChartUnknown, name)
		}
		switch name {
		case NameRegionCampaigns:
			return RegionCampaignBar(detail), nil
		case NameRegionAges:
			return RegionAgePie(detail), nil
		default:
			return RegionMonthlyLine(detail), nil
		}
	default:
		return nil, fmt.Errorf("%w: %s", errors.ErrChartUnknown, name)
	}
}

// Render builds the named chart and writes its HTML to w.
func Render(w io.Writer, name string, dashboard *domain.Dashboard) error {
	chart, err := Build(name, dashboard)
	if err != nil {
		return err
	}
	if err := chart.Render(w); err != nil {
		return errors.ChartRenderError(name, err)
	}
	return nil
}

// Page assembles every chart available under the dashboard's filter mode
// into one self-contained page, in the fixed dashboard order.
func Page(dashboard *domain.Dashboard) *components.Page {
	page := components.NewPage()
	page.SetLayout(components.PageCenterLayout)
	page.PageTitle = "CampaignPulse Dashboard"

	page.AddCharts(
		CampaignBar(dashboard.Campaigns),
		AgeGroupBar(dashboard.AgeGroups),
		TrendsLine(dashboard.Trends),
		MonthlyLine(dashboard.Monthly),
		ComparisonBar(dashboard.Comparison),
	)

	if detail := dashboard.Regional.Detail; detail != nil {
		page.AddCharts(
			RegionCampaignBar(detail),
			RegionAgePie(detail),
			RegionMonthlyLine(detail),
		)
	}
	if comparison := dashboard.Regional.Comparison; comparison != nil {
		page.AddCharts(
			RegionBar(comparison),
			MatrixBar(comparison.Matrix),
			MatrixHeatMap(comparison.Matrix),
		)
	}
	return page
}
