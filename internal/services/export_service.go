package services

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"path/filepath"
	"time"

	"campaignpulse/internal/exporter"
	"campaignpulse/internal/files"
	"campaignpulse/internal/infrastructure"
	"campaignpulse/pkg/contracts/domain"
)

// Export formats.
const (
	FormatCSV  = "csv"
	FormatXLSX = "xlsx"
)

// exportKeep bounds how many old export files are retained on disk.
const exportKeep = 20

// ExportHub receives export completion events. *websocket.Hub satisfies it.
type ExportHub interface {
	BroadcastExportCompleted(format, filename string)
}

// ExportService streams filtered dataset exports and writes report files.
type ExportService struct {
	data      *DatasetService
	dashboard *DashboardService
	csv       *exporter.CSVWriter
	excel     *exporter.ExcelWriter
	manager   *files.Manager
	csvBOM    bool
	hub       ExportHub
	metrics   *infrastructure.BusinessMetrics
	logger    *slog.Logger
}

// ExportOption configures optional export service dependencies.
type ExportOption func(*ExportService)

// WithExportHub wires a broadcast hub for export notifications.
func WithExportHub(hub ExportHub) ExportOption {
	return func(s *ExportService) { s.hub = hub }
}

// WithExportMetrics wires business metrics for export instrumentation.
func WithExportMetrics(metrics *infrastructure.BusinessMetrics) ExportOption {
	return func(s *ExportService) { s.metrics = metrics }
}

// WithExportManager wires a file manager for on-disk exports and pruning.
func WithExportManager(manager *files.Manager) ExportOption {
	return func(s *ExportService) { s.manager = manager }
}

// NewExportService creates an export service. csvBOM controls whether CSV
// output is prefixed with a UTF-8 BOM for Excel compatibility.
func NewExportService(data *DatasetService, dashboard *DashboardService, csvBOM bool, logger *slog.Logger, opts ...ExportOption) *ExportService {
	if logger == nil {
		logger = slog.Default()
	}
	logger = logger.With(slog.String("component", "export_service"))

	s := &ExportService{
		data:      data,
		dashboard: dashboard,
		csv:       exporter.NewCSVWriter(logger),
		excel:     exporter.NewExcelWriter(logger),
		csvBOM:    csvBOM,
		logger:    logger,
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// Filename returns a timestamped download name for an export.
func (s *ExportService) Filename(format string) string {
	return fmt.Sprintf("campaign_export_%s.%s", time.Now().Format("20060102_150405"), format)
}

// WriteCSV streams the filtered rows as CSV.
func (s *ExportService) WriteCSV(ctx context.Context, w io.Writer, filter domain.Filter) error {
	start := time.Now()

	customers, err := s.filteredCustomers(ctx, filter)
	if err != nil {
		infrastructure.RecordExport(ctx, s.metrics, FormatCSV, time.Since(start), err)
		return err
	}

	err = s.csv.Write(w, customers, exporter.WriteOptions{BOMPrefix: s.csvBOM})
	infrastructure.RecordExport(ctx, s.metrics, FormatCSV, time.Since(start), err)
	if err != nil {
		return err
	}

	s.logger.InfoContext(ctx, "csv export completed",
		slog.Int("rows", len(customers)),
		slog.Duration("duration", time.Since(start)))
	return nil
}

// WriteExcel streams the filtered rows plus the dashboard summaries as an
// Excel workbook.
func (s *ExportService) WriteExcel(ctx context.Context, w io.Writer, filter domain.Filter) error {
	start := time.Now()

	customers, err := s.filteredCustomers(ctx, filter)
	if err != nil {
		infrastructure.RecordExport(ctx, s.metrics, FormatXLSX, time.Since(start), err)
		return err
	}

	dashboard, err := s.dashboard.Dashboard(ctx, filter)
	if err != nil {
		infrastructure.RecordExport(ctx, s.metrics, FormatXLSX, time.Since(start), err)
		return err
	}

	err = s.excel.Write(w, customers, dashboard)
	infrastructure.RecordExport(ctx, s.metrics, FormatXLSX, time.Since(start), err)
	if err != nil {
		return err
	}

	s.logger.InfoContext(ctx, "excel export completed",
		slog.Int("rows", len(customers)),
		slog.Duration("duration", time.Since(start)))
	return nil
}

// ExportCSVFile writes a CSV export into dir and prunes old exports.
func (s *ExportService) ExportCSVFile(ctx context.Context, dir string, filter domain.Filter) (string, error) {
	customers, err := s.filteredCustomers(ctx, filter)
	if err != nil {
		return "", err
	}

	path := filepath.Join(dir, s.Filename(FormatCSV))
	if err := s.csv.WriteFile(path, customers, exporter.WriteOptions{BOMPrefix: s.csvBOM}); err != nil {
		return "", err
	}

	s.afterFileExport(ctx, FormatCSV, path)
	return path, nil
}

// ExportExcelFile writes an Excel export into dir and prunes old exports.
func (s *ExportService) ExportExcelFile(ctx context.Context, dir string, filter domain.Filter) (string, error) {
	customers, err := s.filteredCustomers(ctx, filter)
	if err != nil {
		return "", err
	}
	dashboard, err := s.dashboard.Dashboard(ctx, filter)
	if err != nil {
		return "", err
	}

	path := filepath.Join(dir, s.Filename(FormatXLSX))
	if err := s.excel.WriteFile(path, customers, dashboard); err != nil {
		return "", err
	}

	s.afterFileExport(ctx, FormatXLSX, path)
	return path, nil
}

func (s *ExportService) afterFileExport(ctx context.Context, format, path string) {
	if s.hub != nil {
		s.hub.BroadcastExportCompleted(format, filepath.Base(path))
	}
	if s.manager != nil {
		if _, err := s.manager.PruneExports(exportKeep); err != nil {
			s.logger.WarnContext(ctx, "export pruning failed", slog.String("error", err.Error()))
		}
	}
}

func (s *ExportService) filteredCustomers(ctx context.Context, filter domain.Filter) ([]domain.Customer, error) {
	dataset, err := s.data.Dataset()
	if err != nil {
		return nil, err
	}
	if err := s.dashboard.ValidateFilter(dataset, filter); err != nil {
		return nil, err
	}
	return filter.Apply(dataset.Customers), nil
}
