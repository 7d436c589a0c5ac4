package exporter

import (
	"encoding/csv"
	"fmt"
	"io"
	"log/slog"
	"os"
	"path/filepath"
	"strconv"

	"campaignpulse/pkg/contracts/domain"
)

// CSVWriter exports customer rows as CSV.
type CSVWriter struct {
	logger *slog.Logger
}

// NewCSVWriter creates a CSV writer. A nil logger falls back to slog.Default.
func NewCSVWriter(logger *slog.Logger) *CSVWriter {
	if logger == nil {
		logger = slog.Default()
	}
	return &CSVWriter{logger: logger}
}

// WriteOptions configures CSV output.
type WriteOptions struct {
	// BOMPrefix prepends a UTF-8 BOM so Excel recognizes the encoding.
	BOMPrefix bool
}

// CustomerHeader returns the export column order: the normalized fields
// followed by the four campaign indicators under their display names.
func CustomerHeader() []string {
	header := []string{
		"ID", "Education", "Income", "Age", "Age Group",
		"Region", "Enrolled", "Year", "Month", "Response",
	}
	for _, campaign := range domain.Campaigns() {
		header = append(header, string(campaign))
	}
	return header
}

// CustomerRecord flattens one customer into the export column order.
func CustomerRecord(c domain.Customer) []string {
	record := []string{
		strconv.FormatInt(c.ID, 10),
		c.Education,
		strconv.FormatFloat(c.Income, 'f', -1, 64),
		strconv.Itoa(c.Age),
		string(c.AgeGroup),
		string(c.Region),
		c.EnrolledAt.Format("2006-01-02"),
		strconv.Itoa(c.Year),
		c.MonthName(),
		strconv.Itoa(c.Response),
	}
	for _, v := range c.Accepted {
		record = append(record, strconv.Itoa(v))
	}
	return record
}

// Write streams the customers to w as CSV, header first.
func (cw *CSVWriter) Write(w io.Writer, customers []domain.Customer, options WriteOptions) error {
	if options.BOMPrefix {
		if _, err := w.Write([]byte{0xEF, 0xBB, 0xBF}); err != nil {
			return fmt.Errorf("failed to write BOM: %w", err)
		}
	}

	writer := csv.NewWriter(w)
	if err := writer.Write(CustomerHeader()); err != nil {
		return fmt.Errorf("failed to write header: %w", err)
	}
	for i, c := range customers {
		if err := writer.Write(CustomerRecord(c)); err != nil {
			return fmt.Errorf("failed to write record %d: %w", i, err)
		}
	}

	writer.Flush()
	return writer.Error()
}

// WriteFile writes the customers to a CSV file, creating the directory if
// needed.
func (cw *CSVWriter) WriteFile(path string, customers []domain.Customer, options WriteOptions) error {
	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		return fmt.Errorf("failed to create directory: %w", err)
	}

	file, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("failed to create file: %w", err)
	}
	defer file.Close()

	cw.logger.Info("writing CSV export",
		slog.String("path", path),
		slog.Int("rows", len(customers)))

	if err := cw.Write(file, customers, options); err != nil {
		return err
	}
	return file.Close()
}
