// Package charts builds the dashboard's go-echarts charts from analytics
// results. Builders only shape data for display; they never recompute
// aggregates. Values are rounded to two decimals here, at render time.
package charts

import (
	"fmt"
	"math"

	"github.com/go-echarts/go-echarts/v2/charts"
	"github.com/go-echarts/go-echarts/v2/opts"

	"campaignpulse/pkg/contracts/domain"
)

const (
	chartWidth  = "900px"
	chartHeight = "460px"
)

// CampaignBar builds the "Response Rate by Campaign" bar chart, one bar per
// campaign in its fixed color, values inside the bars.
func CampaignBar(rates []domain.CampaignRate) *charts.Bar {
	bar := charts.NewBar()
	bar.SetGlobalOptions(
		charts.WithInitializationOpts(opts.Initialization{Width: chartWidth, Height: chartHeight}),
		charts.WithTitleOpts(opts.Title{Title: "Response Rate by Campaign"}),
		charts.WithTooltipOpts(opts.Tooltip{Show: opts.Bool(true)}),
		charts.WithYAxisOpts(opts.YAxis{Name: "Response Rate (%)"}),
	)

	labels := make([]string, 0, len(rates))
	data := make([]opts.BarData, 0, len(rates))
	for _, r := range rates {
		labels = append(labels, string(r.Campaign))
		data = append(data, opts.BarData{
			Value:     round2(r.Rate),
			ItemStyle: &opts.ItemStyle{Color: r.Color},
		})
	}

	bar.SetXAxis(labels)
	bar.AddSeries("Response Rate", data,
		charts.WithLabelOpts(opts.Label{
			Show:      opts.Bool(true),
			Position:  "inside",
			Formatter: "{c}%",
		}))
	return bar
}

// AgeGroupBar builds the "Response Rate by Age Group" bar chart.
func AgeGroupBar(rates []domain.AgeGroupRate) *charts.Bar {
	bar := charts.NewBar()
	bar.SetGlobalOptions(
		charts.WithInitializationOpts(opts.Initialization{Width: chartWidth, Height: chartHeight}),
		charts.WithTitleOpts(opts.Title{Title: "Response Rate by Age Group"}),
		charts.WithTooltipOpts(opts.Tooltip{Show: opts.Bool(true)}),
		charts.WithYAxisOpts(opts.YAxis{Name: "Response Rate (%)"}),
	)

	// Sequential palette, darker with age.
	palette := []string{"#c6dbef", "#6baed6", "#2171b5", "#08306b"}

	labels := make([]string, 0, len(rates))
	data := make([]opts.BarData, 0, len(rates))
	for i, r := range rates {
		labels = append(labels, string(r.Group))
		data = append(data, opts.BarData{
			Value:     round2(r.Rate),
			ItemStyle: &opts.ItemStyle{Color: palette[i%len(palette)]},
		})
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

// TrendsLine builds the 2019-2024 campaign trends line chart with the fixed
// annotations as mark points.
func TrendsLine(trends domain.YearlyTrends) *charts.Line {
	line := charts.NewLine()
	line.SetGlobalOptions(
		charts.WithInitializationOpts(opts.Initialization{Width: chartWidth, Height: chartHeight}),
		charts.WithTitleOpts(opts.Title{Title: "Campaign Response Rate Trends (2019-2024)"}),
		charts.WithTooltipOpts(opts.Tooltip{Show: opts.Bool(true), Trigger: "axis"}),
		charts.WithLegendOpts(opts.Legend{Show: opts.Bool(true), Bottom: "0"}),
		charts.WithYAxisOpts(opts.YAxis{Name: "Response Rate (%)"}),
	)

	labels := make([]string, 0, len(trends.Years))
	for _, y := range trends.Years {
		labels = append(labels, fmt.Sprintf("%d", y))
	}
	line.SetXAxis(labels)

	for _, series := range trends.Series {
		data := make([]opts.LineData, 0, len(series.Points))
		for _, p := range series.Points {
			data = append(data, opts.LineData{Value: round2(p.Rate)})
		}

		seriesOpts := []charts.SeriesOpts{
			charts.WithLineStyleOpts(opts.LineStyle{Color: series.Color}),
			charts.WithItemStyleOpts(opts.ItemStyle{Color: series.Color}),
			charts.WithLineChartOpts(opts.LineChart{Smooth: opts.Bool(true)}),
		}
		for _, mark := range annotationMarks(series, trends.Annotations) {
			seriesOpts = append(seriesOpts, charts.WithMarkPointNameCoordItemOpts(mark))
		}

		line.AddSeries(string(series.Campaign), data, seriesOpts...)
	}
	return line
}

// annotationMarks converts the fixed trend annotations belonging to one
// series into mark points on its line.
func annotationMarks(series domain.TrendSeries, annotations []domain.TrendAnnotation) []opts.MarkPointNameCoordItem {
	var marks []opts.MarkPointNameCoordItem
	for _, a := range annotations {
		if a.Campaign != series.Campaign {
			continue
		}
		for i, p := range series.Points {
			if p.Year != a.Year {
				continue
			}
			marks = append(marks, opts.MarkPointNameCoordItem{
				Name:       a.Label,
				Coordinate: []interface{}{i, round2(p.Rate)},
				Label: &opts.Label{
					Show:      opts.Bool(true),
					Formatter: a.Label,
					Position:  "top",
				},
			})
		}
	}
	return marks
}

// MonthlyLine builds the monthly campaign performance line chart with each
// campaign's peak month marked.
func MonthlyLine(monthly domain.MonthlyPerformance) *charts.Line {
	line := charts.NewLine()
	line.SetGlobalOptions(
		charts.WithInitializationOpts(opts.Initialization{Width: chartWidth, Height: chartHeight}),
		charts.WithTitleOpts(opts.Title{Title: "Monthly Campaign Performance"}),
		charts.WithTooltipOpts(opts.Tooltip{Show: opts.Bool(true), Trigger: "axis"}),
		charts.WithLegendOpts(opts.Legend{Show: opts.Bool(true), Bottom: "0"}),
		charts.WithYAxisOpts(opts.YAxis{Name: "Response Rate (%)"}),
	)

	line.SetXAxis(monthly.Months)

	for _, series := range monthly.Series {
		data := make([]opts.LineData, 0, len(series.Rates))
		peak := -1
		for i, rate := range series.Rates {
			data = append(data, opts.LineData{Value: round2(rate)})
			if peak < 0 || rate > series.Rates[peak] {
				peak = i
			}
		}

		seriesOpts := []charts.SeriesOpts{
			charts.WithLineStyleOpts(opts.LineStyle{Color: series.Color}),
			charts.WithItemStyleOpts(opts.ItemStyle{Color: series.Color}),
		}
		if peak >= 0 {
			seriesOpts = append(seriesOpts, charts.WithMarkPointNameCoordItemOpts(opts.MarkPointNameCoordItem{
				Name:       "Peak",
				Coordinate: []interface{}{peak, round2(series.Rates[peak])},
			}))
		}

		line.AddSeries(string(series.Campaign), data, seriesOpts...)
	}
	return line
}

// ComparisonBar builds the 2023 vs 2024 monthly response-rate grouped bar
// chart.
func ComparisonBar(comparison domain.YearComparison) *charts.Bar {
	bar := charts.NewBar()
	bar.SetGlobalOptions(
		charts.WithInitializationOpts(opts.Initialization{Width: chartWidth, Height: chartHeight}),
		charts.WithTitleOpts(opts.Title{Title: "2023 vs 2024 Monthly Response Rates"}),
		charts.WithTooltipOpts(opts.Tooltip{Show: opts.Bool(true)}),
		charts.WithLegendOpts(opts.Legend{Show: opts.Bool(true), Bottom: "0"}),
		charts.WithYAxisOpts(opts.YAxis{Name: "Response Rate (%)"}),
	)

	bar.SetXAxis(comparison.Months)
	for _, year := range comparison.Years {
		data := make([]opts.BarData, 0, len(year.Rates))
		for _, rate := range year.Rates {
			data = append(data, opts.BarData{Value: round2(rate)})
		}
		bar.AddSeries(fmt.Sprintf("%d", year.DisplayYear), data,
			charts.WithItemStyleOpts(opts.ItemStyle{Color: year.Color}))
	}
	return bar
}

// round2 rounds a display value to two decimals.
func round2(v float64) float64 {
	return math.Round(v*100) / 100
}
