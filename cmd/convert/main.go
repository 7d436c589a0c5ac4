// Command convert turns an Excel workbook of campaign data into the CSV
// layout the dashboard loads. Given a directory it picks the most recently
// modified workbook.
package main

import (
	"context"
	"flag"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"strings"
	"time"

	"campaignpulse/internal/config"
	"campaignpulse/internal/dataprocessing"
	"campaignpulse/internal/files"
	"campaignpulse/internal/infrastructure"
	"campaignpulse/internal/validation"
)

func main() {
	in := flag.String("in", "", "input .xlsx file, or a directory holding workbooks")
	out := flag.String("out", "", "output .csv path (defaults to <input>.csv next to the workbook)")
	timeout := flag.Duration("timeout", time.Minute, "conversion timeout")
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

	if *in == "" {
		flag.Usage()
		logger.Error("missing required -in flag")
		os.Exit(2)
	}

	if err := run(logger, *in, *out, *timeout); err != nil {
		logger.Error("conversion failed", slog.String("error", err.Error()))
		os.Exit(1)
	}
}

func run(logger *slog.Logger, in, out string, timeout time.Duration) error {
	ctx, cancel := context.WithTimeout(context.Background(), timeout)
	defer cancel()

	xlsxPath, err := resolveInput(in)
	if err != nil {
		return err
	}

	validator := validation.NewFileValidator(logger)
	if err := validator.ValidateExcelFile(xlsxPath); err != nil {
		return fmt.Errorf("validating %s: %w", xlsxPath, err)
	}

	if out == "" {
		out = strings.TrimSuffix(xlsxPath, filepath.Ext(xlsxPath)) + ".csv"
	}
	if err := validator.ValidateOutputDirectory(filepath.Dir(out)); err != nil {
		return err
	}

	converter := dataprocessing.NewConverter(logger)
	rows, err := converter.Convert(ctx, xlsxPath, out)
	if err != nil {
		return fmt.Errorf("converting %s: %w", xlsxPath, err)
	}

	logger.Info("conversion complete",
		slog.String("input", xlsxPath),
		slog.String("output", out),
		slog.Int("rows", rows))
	return nil
}

// resolveInput maps a directory argument to its newest workbook.
func resolveInput(in string) (string, error) {
	stat, err := os.Stat(in)
	if err != nil {
		return "", fmt.Errorf("input %s: %w", in, err)
	}
	if !stat.IsDir() {
		return in, nil
	}

	discovery := files.NewDiscovery(in)
	workbooks, err := discovery.FindExcelFiles(in)
	if err != nil {
		return "", fmt.Errorf("scanning %s: %w", in, err)
	}
	latest, ok := files.LatestFile(workbooks)
	if !ok {
		return "", fmt.Errorf("no .xlsx workbooks found in %s", in)
	}
	return latest.Path, nil
}
