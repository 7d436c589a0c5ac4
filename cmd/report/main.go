// Command report generates a one-shot dashboard report: a self-contained
// HTML page with every chart, plus optional CSV and XLSX exports of the
// filtered dataset.
package main

import (
	"context"
	"flag"
	"fmt"
	"log/slog"
	"net/url"
	"os"
	"path/filepath"
	"time"

	"golang.org/x/sync/errgroup"

	"campaignpulse/internal/charts"
	"campaignpulse/internal/config"
	"campaignpulse/internal/infrastructure"
	"campaignpulse/internal/services"
)

func main() {
	dataset := flag.String("dataset", "", "campaign CSV path, or a directory holding CSVs (defaults to the configured dataset path)")
	out := flag.String("out", "", "output directory (defaults to the configured export directory)")
	report := flag.String("report", "", "report HTML filename (defaults to the configured report file)")
	education := flag.String("education", "", "comma-separated education filter, e.g. PhD,Master")
	region := flag.String("region", "", "region filter (North, South, East, West or All Regions)")
	noExports := flag.Bool("no-exports", false, "generate only the HTML report, skip CSV/XLSX exports")
	timeout := flag.Duration("timeout", 2*time.Minute, "overall generation timeout")
	flag.Parse()

	cfg, err := config.Load()
	if err != nil {
		slog.Warn("failed to load config, using defaults", slog.String("error", err.Error()))
		cfg = config.Default()
	}

	logger, err := infrastructure.InitializeLogger(cfg.Logging)
	if err != nil {
		slog.Warn("failed to initialize logger, using default", slog.String("error", err.Error()))
		logger = slog.Default()
	}

	if *dataset == "" {
		*dataset = cfg.GetDatasetPath()
	}
	if *out == "" {
		*out = cfg.Export.Dir
	}
	if *report == "" {
		*report = cfg.Export.ReportFile
	}

	if err := run(cfg, logger, *dataset, *out, *report, *education, *region, !*noExports, *timeout); err != nil {
		logger.Error("report generation failed", slog.String("error", err.Error()))
		os.Exit(1)
	}
}

func run(cfg *config.Config, logger *slog.Logger, datasetPath, outDir, reportFile, education, region string, withExports bool, timeout time.Duration) error {
	// One trace ID for the whole run so the log lines correlate.
	ctx, cancel := context.WithTimeout(infrastructure.ContextWithTraceID(context.Background()), timeout)
	defer cancel()

	if err := os.MkdirAll(outDir, 0755); err != nil {
		return fmt.Errorf("cannot create output directory %s: %w", outDir, err)
	}

	query := url.Values{}
	if education != "" {
		query.Set("education", education)
	}
	if region != "" {
		query.Set("region", region)
	}
	filter := services.ParseFilter(query)

	data := services.NewDatasetService(datasetPath, cfg.Dataset.ReloadDebounce, false, logger)
	defer data.Close()

	info, err := data.Load(ctx)
	if err != nil {
		return fmt.Errorf("loading dataset: %w", err)
	}
	logger.InfoContext(ctx, "dataset loaded",
		slog.String("path", info.Path),
		slog.Int("rows", info.Rows),
		slog.Int("skipped", info.SkippedRows))

	dashboardSvc := services.NewDashboardService(data, nil, logger)
	exportSvc := services.NewExportService(data, dashboardSvc, cfg.Export.CSVBOM, logger)

	dashboard, err := dashboardSvc.Dashboard(ctx, filter)
	if err != nil {
		return fmt.Errorf("computing dashboard: %w", err)
	}

	start := time.Now()
	g, ctx := errgroup.WithContext(ctx)

	reportPath := filepath.Join(outDir, reportFile)
	g.Go(func() error {
		f, err := os.Create(reportPath)
		if err != nil {
			return fmt.Errorf("creating report file: %w", err)
		}
		defer f.Close()

		if err := charts.Page(dashboard).Render(f); err != nil {
			return fmt.Errorf("rendering report: %w", err)
		}
		logger.InfoContext(ctx, "report written", slog.String("path", reportPath))
		return nil
	})

	if withExports {
		g.Go(func() error {
			path, err := exportSvc.ExportCSVFile(ctx, outDir, filter)
			if err != nil {
				return fmt.Errorf("csv export: %w", err)
			}
			logger.InfoContext(ctx, "csv export written", slog.String("path", path))
			return nil
		})
		g.Go(func() error {
			path, err := exportSvc.ExportExcelFile(ctx, outDir, filter)
			if err != nil {
				return fmt.Errorf("xlsx export: %w", err)
			}
			logger.InfoContext(ctx, "xlsx export written", slog.String("path", path))
			return nil
		})
	}

	if err := g.Wait(); err != nil {
		return err
	}

	logger.InfoContext(ctx, "report generation complete",
		slog.Duration("duration", time.Since(start)),
		slog.Int("customers", dashboard.Overview.CustomerCount))
	return nil
}
