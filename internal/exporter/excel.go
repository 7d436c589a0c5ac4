package exporter

import (
	"fmt"
	"io"
	"log/slog"
	"math"

	"github.com/xuri/excelize/v2"

	"campaignpulse/pkg/contracts/domain"
)

// Workbook sheet names, in tab order.
const (
	SheetData      = "Data"
	SheetCampaigns = "Campaign Rates"
	SheetAgeGroups = "Age Groups"
	SheetTrends    = "Yearly Trends"
	SheetMonthly   = "Monthly Performance"
	SheetRegions   = "Regions"
)

// ExcelWriter exports the filtered dataset plus analytics summaries as one
// Excel workbook.
type ExcelWriter struct {
	logger *slog.Logger
}

// NewExcelWriter creates an Excel writer. A nil logger falls back to
// slog.Default.
func NewExcelWriter(logger *slog.Logger) *ExcelWriter {
	if logger == nil {
		logger = slog.Default()
	}
	return &ExcelWriter{logger: logger}
}

// Write builds the workbook from the customers and their computed dashboard
// and writes it to w.
func (ew *ExcelWriter) Write(w io.Writer, customers []domain.Customer, dashboard *domain.Dashboard) error {
	f, err := ew.build(customers, dashboard)
	if err != nil {
		return err
	}
	defer f.Close()

	if err := f.Write(w); err != nil {
		return fmt.Errorf("failed to write workbook: %w", err)
	}
	return nil
}

// WriteFile builds the workbook and saves it to path.
func (ew *ExcelWriter) WriteFile(path string, customers []domain.Customer, dashboard *domain.Dashboard) error {
	f, err := ew.build(customers, dashboard)
	if err != nil {
		return err
	}
	defer f.Close()

	ew.logger.Info("writing Excel export",
		slog.String("path", path),
		slog.Int("rows", len(customers)))

	if err := f.SaveAs(path); err != nil {
		return fmt.Errorf("failed to save workbook: %w", err)
	}
	return nil
}

func (ew *ExcelWriter) build(customers []domain.Customer, dashboard *domain.Dashboard) (*excelize.File, error) {
	f := excelize.NewFile()

	if err := f.SetSheetName("Sheet1", SheetData); err != nil {
		return nil, fmt.Errorf("failed to name data sheet: %w", err)
	}
	if err := writeDataSheet(f, customers); err != nil {
		return nil, err
	}

	sheets := []struct {
		name string
		rows [][]interface{}
	}{
		{SheetCampaigns, campaignRows(dashboard.Campaigns)},
		{SheetAgeGroups, ageGroupRows(dashboard.AgeGroups)},
		{SheetTrends, trendRows(dashboard.Trends)},
		{SheetMonthly, monthlyRows(dashboard.Monthly)},
		{SheetRegions, regionRows(dashboard.Regional)},
	}
	for _, sheet := range sheets {
		if _, err := f.NewSheet(sheet.name); err != nil {
			return nil, fmt.Errorf("failed to create sheet %s: %w", sheet.name, err)
		}
		if err := writeRows(f, sheet.name, sheet.rows); err != nil {
			return nil, err
		}
	}

	return f, nil
}

func writeDataSheet(f *excelize.File, customers []domain.Customer) error {
	header := make([]interface{}, 0)
	for _, h := range CustomerHeader() {
		header = append(header, h)
	}
	rows := make([][]interface{}, 0, len(customers)+1)
	rows = append(rows, header)

	for _, c := range customers {
		row := []interface{}{
			c.ID, c.Education, c.Income, c.Age, string(c.AgeGroup),
			string(c.Region), c.EnrolledAt.Format("2006-01-02"),
			c.Year, c.MonthName(), c.Response,
		}
		for _, v := range c.Accepted {
			row = append(row, v)
		}
		rows = append(rows, row)
	}

	return writeRows(f, SheetData, rows)
}

func campaignRows(rates []domain.CampaignRate) [][]interface{} {
	rows := [][]interface{}{{"Campaign", "Response Rate (%)"}}
	for _, r := range rates {
		rows = append(rows, []interface{}{string(r.Campaign), round2(r.Rate)})
	}
	return rows
}

func ageGroupRows(rates []domain.AgeGroupRate) [][]interface{} {
	rows := [][]interface{}{{"Age Group", "Response Rate (%)"}}
	for _, r := range rates {
		rows = append(rows, []interface{}{string(r.Group), round2(r.Rate)})
	}
	return rows
}

// trendRows lays the trend block out year-major: one row per year, one
// column per campaign, synthetic values flagged in a trailing column.
func trendRows(trends domain.YearlyTrends) [][]interface{} {
	header := []interface{}{"Year"}
	for _, s := range trends.Series {
		header = append(header, string(s.Campaign))
	}
	header = append(header, "Synthetic")
	rows := [][]interface{}{header}

	for i, year := range trends.Years {
		row := []interface{}{year}
		synthetic := false
		for _, s := range trends.Series {
			row = append(row, round2(s.Points[i].Rate))
			synthetic = synthetic || s.Points[i].Synthetic
		}
		row = append(row, synthetic)
		rows = append(rows, row)
	}
	return rows
}

func monthlyRows(monthly domain.MonthlyPerformance) [][]interface{} {
	header := []interface{}{"Month"}
	for _, s := range monthly.Series {
		header = append(header, string(s.Campaign))
	}
	rows := [][]interface{}{header}

	for i, month := range monthly.Months {
		row := []interface{}{month}
		for _, s := range monthly.Series {
			row = append(row, round2(s.Rates[i]))
		}
		rows = append(rows, row)
	}

	rows = append(rows, []interface{}{})
	rows = append(rows, []interface{}{"Campaign", "Best Month", "Rate (%)"})
	for _, best := range monthly.BestMonths {
		rows = append(rows, []interface{}{string(best.Campaign), best.Month, round2(best.Rate)})
	}
	return rows
}

func regionRows(regional domain.RegionalAnalysis) [][]interface{} {
	if regional.Detail != nil {
		detail := regional.Detail
		rows := [][]interface{}{
			{"Region", detail.Region},
			{"Response Rate (%)", round2(detail.ResponseRate)},
			{"Average Income", round2(detail.AvgIncome)},
			{"Latest Year", detail.LatestYear},
			{"Latest Year Rate (%)", round2(detail.LatestYearRate)},
		}
		if detail.Delta != nil {
			rows = append(rows, []interface{}{"YoY Delta (%)", round2(*detail.Delta)})
		}
		rows = append(rows, []interface{}{})
		rows = append(rows, []interface{}{"Campaign", "Response Rate (%)"})
		for _, r := range detail.Campaigns {
			rows = append(rows, []interface{}{string(r.Campaign), round2(r.Rate)})
		}
		return rows
	}

	comparison := regional.Comparison
	rows := [][]interface{}{{"Region", "Response Rate (%)"}}
	for _, r := range comparison.Regions {
		rows = append(rows, []interface{}{string(r.Region), round2(r.Rate)})
	}

	rows = append(rows, []interface{}{})
	matrixHeader := []interface{}{fmt.Sprintf("Region \\ Campaign (%d)", comparison.Matrix.Year)}
	for _, c := range comparison.Matrix.Campaigns {
		matrixHeader = append(matrixHeader, string(c))
	}
	rows = append(rows, matrixHeader)
	for i, region := range comparison.Matrix.Regions {
		row := []interface{}{string(region)}
		for _, rate := range comparison.Matrix.Rates[i] {
			row = append(row, round2(rate))
		}
		rows = append(rows, row)
	}
	return rows
}

func writeRows(f *excelize.File, sheet string, rows [][]interface{}) error {
	for i, row := range rows {
		cell, err := excelize.CoordinatesToCellName(1, i+1)
		if err != nil {
			return fmt.Errorf("failed to address row %d: %w", i+1, err)
		}
		if err := f.SetSheetRow(sheet, cell, &row); err != nil {
			return fmt.Errorf("failed to write row %d of %s: %w", i+1, sheet, err)
		}
	}
	return nil
}

func round2(v float64) float64 {
	return math.Round(v*100) / 100
}
