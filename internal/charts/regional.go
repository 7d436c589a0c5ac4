package charts

import (
	"fmt"

	"github.com/go-echarts/go-echarts/v2/charts"
	"github.com/go-echarts/go-echarts/v2/opts"

	"campaignpulse/pkg/contracts/domain"
)

// RegionCampaignBar builds the per-campaign bar chart of the regional detail
// view.
func RegionCampaignBar(detail *domain.RegionDetail) *charts.Bar {
	bar := CampaignBar(detail.Campaigns)
	bar.SetGlobalOptions(
		charts.WithTitleOpts(opts.Title{Title: fmt.Sprintf("%s: Response Rate by Campaign", detail.Region)}),
	)
	return bar
}

// RegionAgePie builds the age-distribution pie of the regional detail view,
// slices labeled with their percentage share.
func RegionAgePie(detail *domain.RegionDetail) *charts.Pie {
	pie := charts.NewPie()
	pie.SetGlobalOptions(
		charts.WithInitializationOpts(opts.Initialization{Width: chartWidth, Height: chartHeight}),
		charts.WithTitleOpts(opts.Title{Title: fmt.Sprintf("%s: Customers by Age Group", detail.Region)}),
		charts.WithTooltipOpts(opts.Tooltip{Show: opts.Bool(true)}),
		charts.WithLegendOpts(opts.Legend{Show: opts.Bool(true), Bottom: "0"}),
	)

	data := make([]opts.PieData, 0, len(detail.AgeDistribution))
	for _, share := range detail.AgeDistribution {
		data = append(data, opts.PieData{
			Name:  string(share.Group),
			Value: share.Count,
		})
	}

	pie.AddSeries("Age Groups", data).SetSeriesOptions(
		charts.WithLabelOpts(opts.Label{
			Show:      opts.Bool(true),
			Formatter: "{b}: {d}%",
		}),
		charts.WithPieChartOpts(opts.PieChart{
			Radius: []string{"35%", "70%"},
		}),
	)
	return pie
}

// RegionMonthlyLine builds the monthly overall response-rate line of the
// regional detail view.
func RegionMonthlyLine(detail *domain.RegionDetail) *charts.Line {
	line := charts.NewLine()
	line.SetGlobalOptions(
		charts.WithInitializationOpts(opts.Initialization{Width: chartWidth, Height: chartHeight}),
		charts.WithTitleOpts(opts.Title{Title: fmt.Sprintf("%s: Monthly Response Rate", detail.Region)}),
		charts.WithTooltipOpts(opts.Tooltip{Show: opts.Bool(true), Trigger: "axis"}),
		charts.WithYAxisOpts(opts.YAxis{Name: "Response Rate (%)"}),
	)

	labels := make([]string, 0, len(detail.Monthly))
	data := make([]opts.LineData, 0, len(detail.Monthly))
	for _, m := range detail.Monthly {
		labels = append(labels, m.Month)
		data = append(data, opts.LineData{Value: round2(m.Rate)})
	}

	line.SetXAxis(labels)
	line.AddSeries("Response Rate", data,
		charts.WithLineChartOpts(opts.LineChart{Smooth: opts.Bool(true)}))
	return line
}

// RegionBar builds the response-rate-per-region bar chart of the comparison
// view.
func RegionBar(comparison *domain.RegionComparison) *charts.Bar {
	bar := charts.NewBar()
	bar.SetGlobalOptions(
		charts.WithInitializationOpts(opts.Initialization{Width: chartWidth, Height: chartHeight}),
		charts.WithTitleOpts(opts.Title{Title: "Response Rate by Region"}),
		charts.WithTooltipOpts(opts.Tooltip{Show: opts.Bool(true)}),
		charts.WithYAxisOpts(opts.YAxis{Name: "Response Rate (%)"}),
	)

	labels := make([]string, 0, len(comparison.Regions))
	data := make([]opts.BarData, 0, len(comparison.Regions))
	for _, r := range comparison.Regions {
		labels = append(labels, string(r.Region))
		data = append(data, opts.BarData{Value: round2(r.Rate)})
	}

	bar.SetXAxis(labels)
	bar.AddSeries("Response Rate", data,
		charts.WithLabelOpts(opts.Label{
			Show:      opts.Bool(true),
			Position:  "top",
			Formatter: "{c}%",
		}))
	return bar
}

// MatrixBar builds the grouped campaign-by-region bar chart over the latest
// observed year.
func MatrixBar(matrix domain.RegionCampaignMatrix) *charts.Bar {
	bar := charts.NewBar()
	bar.SetGlobalOptions(
		charts.WithInitializationOpts(opts.Initialization{Width: chartWidth, Height: chartHeight}),
		charts.WithTitleOpts(opts.Title{Title: fmt.Sprintf("Campaign Performance by Region (%d)", matrix.Year)}),
		charts.WithTooltipOpts(opts.Tooltip{Show: opts.Bool(true)}),
		charts.WithLegendOpts(opts.Legend{Show: opts.Bool(true), Bottom: "0"}),
		charts.WithYAxisOpts(opts.YAxis{Name: "Response Rate (%)"}),
	)

	labels := make([]string, 0, len(matrix.Regions))
	for _, r := range matrix.Regions {
		labels = append(labels, string(r))
	}
	bar.SetXAxis(labels)

	for j, campaign := range matrix.Campaigns {
		data := make([]opts.BarData, 0, len(matrix.Regions))
		for i := range matrix.Regions {
			data = append(data, opts.BarData{Value: round2(matrix.Rates[i][j])})
		}
		bar.AddSeries(string(campaign), data,
			charts.WithItemStyleOpts(opts.ItemStyle{Color: campaign.Color()}))
	}
	return bar
}

// MatrixHeatMap builds the region-by-campaign heatmap over the latest
// observed year, with a visual map scale.
func MatrixHeatMap(matrix domain.RegionCampaignMatrix) *charts.HeatMap {
	hm := charts.NewHeatMap()

	regionLabels := make([]string, 0, len(matrix.Regions))
	maxRate := 0.0
	for i, r := range matrix.Regions {
		regionLabels = append(regionLabels, string(r))
		for j := range matrix.Campaigns {
			if matrix.Rates[i][j] > maxRate {
				maxRate = matrix.Rates[i][j]
			}
		}
	}
	campaignLabels := make([]string, 0, len(matrix.Campaigns))
	for _, c := range matrix.Campaigns {
		campaignLabels = append(campaignLabels, string(c))
	}
	if maxRate == 0 {
		maxRate = 1
	}

	hm.SetGlobalOptions(
		charts.WithInitializationOpts(opts.Initialization{Width: chartWidth, Height: chartHeight}),
		charts.WithTitleOpts(opts.Title{Title: fmt.Sprintf("Region vs Campaign Heatmap (%d)", matrix.Year)}),
		charts.WithTooltipOpts(opts.Tooltip{Show: opts.Bool(true)}),
		charts.WithXAxisOpts(opts.XAxis{Type: "category", Data: campaignLabels}),
		charts.WithYAxisOpts(opts.YAxis{Type: "category", Data: regionLabels}),
		charts.WithVisualMapOpts(opts.VisualMap{
			Calculable: opts.Bool(true),
			Min:        0,
			Max:        float32(round2(maxRate)),
			InRange: &opts.VisualMapInRange{
				Color: []string{"#f7fbff", "#6baed6", "#08306b"},
			},
		}),
	)

	data := make([]opts.HeatMapData, 0, len(matrix.Regions)*len(matrix.Campaigns))
	for i := range matrix.Regions {
		for j := range matrix.Campaigns {
			data = append(data, opts.HeatMapData{
				Value: [3]interface{}{j, i, round2(matrix.Rates[i][j])},
			})
		}
	}

	hm.AddSeries("Response Rate", data,
		charts.WithLabelOpts(opts.Label{Show: opts.Bool(true)}))
	return hm
}
