package dataprocessing

import (
	"context"
	"encoding/csv"
	"fmt"
	"log/slog"
	"os"
	"strings"
	"time"

	"github.com/xuri/excelize/v2"

	"campaignpulse/internal/errors"
)

// Converter turns an Excel workbook export of the dataset into the canonical
// CSV the Loader consumes. Column order in the workbook does not matter; the
// sheet is located by its header row.
type Converter struct {
	logger *slog.Logger
}

// NewConverter creates a Converter. A nil logger falls back to slog.Default.
func NewConverter(logger *slog.Logger) *Converter {
	if logger == nil {
		logger = slog.Default()
	}
	return &Converter{logger: logger}
}

// Convert reads the workbook at xlsxPath and writes the canonical CSV to
// csvPath. It returns the number of data rows written.
func (c *Converter) Convert(ctx context.Context, xlsxPath, csvPath string) (int, error) {
	start := time.Now()

	f, err := excelize.OpenFile(xlsxPath)
	if err != nil {
		return 0, errors.NewParsingError(fmt.Sprintf("failed to open workbook %s", xlsxPath), err)
	}
	defer f.Close()

	sheet, rows, err := findDataSheet(f)
	if err != nil {
		return 0, err
	}

	records, err := canonicalRecords(rows)
	if err != nil {
		return 0, err
	}

	if err := writeCSV(csvPath, records); err != nil {
		return 0, err
	}

	c.logger.InfoContext(ctx, "workbook converted",
		slog.String("workbook", xlsxPath),
		slog.String("sheet", sheet),
		slog.String("csv", csvPath),
		slog.Int("rows", len(records)-1),
		slog.Duration("duration", time.Since(start)))

	return len(records) - 1, nil
}

// findDataSheet scans the workbook for the first sheet whose header row
// carries the ID and Dt_Customer columns.
func findDataSheet(f *excelize.File) (string, [][]string, error) {
	for _, sheet := range f.GetSheetList() {
		rows, err := f.GetRows(sheet)
		if err != nil || len(rows) < 2 {
			continue
		}
		header := rows[0]
		if headerIndex(header, "ID") >= 0 && headerIndex(header, "Dt_Customer") >= 0 {
			return sheet, rows, nil
		}
	}
	return "", nil, fmt.Errorf("%w: no sheet with ID and Dt_Customer columns", errors.ErrMissingColumn)
}

// canonicalRecords reorders workbook rows into the canonical column order.
// The age column is Age when the workbook has one, Year_Birth otherwise.
func canonicalRecords(rows [][]string) ([][]string, error) {
	header := rows[0]

	names := append([]string{}, requiredColumns...)
	ageColumn := "Age"
	if headerIndex(header, ageColumn) < 0 {
		ageColumn = "Year_Birth"
	}
	names = append(names, ageColumn)

	indexes := make([]int, len(names))
	var missing []string
	for i, name := range names {
		idx := headerIndex(header, name)
		if idx < 0 {
			missing = append(missing, name)
			continue
		}
		indexes[i] = idx
	}
	if len(missing) > 0 {
		return nil, fmt.Errorf("%w: %s", errors.ErrMissingColumn, strings.Join(missing, ", "))
	}

	records := make([][]string, 0, len(rows))
	records = append(records, names)
	for _, row := range rows[1:] {
		if isEmptyRow(row) {
			continue
		}
		record := make([]string, len(indexes))
		for i, idx := range indexes {
			if idx < len(row) {
				record[i] = strings.TrimSpace(row[idx])
			}
		}
		records = append(records, record)
	}

	if len(records) < 2 {
		return nil, errors.ErrDatasetEmpty
	}
	return records, nil
}

// writeCSV writes records to path, creating or truncating the file.
func writeCSV(path string, records [][]string) error {
	file, err := os.Create(path)
	if err != nil {
		return errors.NewExportError(fmt.Sprintf("failed to create %s", path), err)
	}
	defer file.Close()

	w := csv.NewWriter(file)
	if err := w.WriteAll(records); err != nil {
		return errors.NewExportError(fmt.Sprintf("failed to write %s", path), err)
	}
	w.Flush()
	return w.Error()
}

// isEmptyRow reports whether every cell in the row is blank after trimming.
func isEmptyRow(row []string) bool {
	for _, cell := range row {
		if strings.TrimSpace(cell) != "" {
			return false
		}
	}
	return true
}

// headerIndex resolves a column name in a header row, exact match first and
// case-insensitive as a fallback.
func headerIndex(header []string, name string) int {
	for i, h := range header {
		if strings.TrimSpace(h) == name {
			return i
		}
	}
	for i, h := range header {
		if strings.EqualFold(strings.TrimSpace(h), name) {
			return i
		}
	}
	return -1
}
