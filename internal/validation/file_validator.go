// Package validation checks dataset input files and output locations before
// the loader or an export touches them.
package validation

import (
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"strings"

	"campaignpulse/internal/errors"
)

// FileValidator validates dataset files and output directories for the web
// service and the companion CLIs.
type FileValidator struct {
	logger *slog.Logger
}

// NewFileValidator creates a file validator. A nil logger falls back to
// slog.Default.
func NewFileValidator(logger *slog.Logger) *FileValidator {
	if logger == nil {
		logger = slog.Default()
	}
	return &FileValidator{logger: logger}
}

// ValidateFile checks that path exists, is a regular file and is readable.
func (v *FileValidator) ValidateFile(path string) error {
	info, err := os.Stat(path)
	if os.IsNotExist(err) {
		return fmt.Errorf("%w: %s", errors.ErrDatasetNotFound, path)
	}
	if err != nil {
		return fmt.Errorf("failed to stat file %s: %w", path, err)
	}
	if info.IsDir() {
		return fmt.Errorf("%s is a directory, not a file", path)
	}

	file, err := os.Open(path)
	if err != nil {
		return fmt.Errorf("file %s is not readable: %w", path, err)
	}
	file.Close()

	v.logger.Debug("file validated",
		slog.String("file", path),
		slog.Int64("size", info.Size()))
	return nil
}

// ValidateCSVFile checks that path is a readable .csv file.
func (v *FileValidator) ValidateCSVFile(path string) error {
	if err := v.ValidateFile(path); err != nil {
		return err
	}
	if ext := strings.ToLower(filepath.Ext(path)); ext != ".csv" {
		return fmt.Errorf("%w: %s is not a CSV file (extension %s)", errors.ErrUnsupportedFormat, path, ext)
	}
	return nil
}

// ValidateExcelFile checks that path is a readable Excel workbook and not an
// Office lock file.
func (v *FileValidator) ValidateExcelFile(path string) error {
	if err := v.ValidateFile(path); err != nil {
		return err
	}

	ext := strings.ToLower(filepath.Ext(path))
	if ext != ".xlsx" && ext != ".xls" {
		return fmt.Errorf("%w: %s is not an Excel file (extension %s)", errors.ErrUnsupportedFormat, path, ext)
	}
	if strings.HasPrefix(filepath.Base(path), "~$") {
		return fmt.Errorf("file %s is a temporary Excel lock file", path)
	}
	return nil
}

// ValidateOutputDirectory ensures the directory exists, creating it if
// needed, and verifies it is writable.
func (v *FileValidator) ValidateOutputDirectory(dir string) error {
	if err := os.MkdirAll(dir, 0755); err != nil {
		return fmt.Errorf("failed to create output directory %s: %w", dir, err)
	}

	testFile := filepath.Join(dir, ".write_test")
	file, err := os.Create(testFile)
	if err != nil {
		return fmt.Errorf("output directory %s is not writable: %w", dir, err)
	}
	file.Close()
	os.Remove(testFile)

	return nil
}
