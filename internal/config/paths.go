package config

import (
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"time"
)

// Paths contains all the application paths
// This is the single source of truth for ALL file paths in the application
type Paths struct {
	ExecutableDir string
	WebDir        string
	StaticDir     string
	DataDir       string
	ExportsDir    string
	LogsDir       string

	// Well-known files
	DatasetCSV string
	ReportHTML string
}

// GetPaths returns the application paths relative to the executable location
// All paths are ALWAYS relative to the executable directory, never the current working directory
func GetPaths() (*Paths, error) {
	exe, err := os.Executable()
	if err != nil {
		return nil, fmt.Errorf("failed to get executable path: %v", err)
	}

	// Resolve symlinks to get the actual executable location
	exe, err = filepath.EvalSymlinks(exe)
	if err != nil {
		return nil, fmt.Errorf("failed to resolve executable symlinks: %v", err)
	}

	// Get the directory containing the executable
	exeDir := filepath.Dir(exe)

	// All paths are relative to the executable directory.
	// Directory structure:
	// dist/
	//   ├── data/              (marketing_campaign.csv)
	//   ├── exports/           (CSV/XLSX exports, dashboard.html report)
	//   ├── logs/              (Application logs)
	//   └── web/               (Frontend assets)

	dataDir := filepath.Join(exeDir, DefaultDataDir)
	exportsDir := filepath.Join(exeDir, DefaultExportsDir)

	paths := &Paths{
		ExecutableDir: exeDir,
		DataDir:       dataDir,
		ExportsDir:    exportsDir,
		WebDir:        filepath.Join(exeDir, DefaultWebDir),
		StaticDir:     filepath.Join(exeDir, DefaultWebDir, "static"),
		LogsDir:       filepath.Join(exeDir, DefaultLogsDir),

		DatasetCSV: filepath.Join(dataDir, DatasetFileName),
		ReportHTML: filepath.Join(exportsDir, ReportFileName),
	}

	return paths, nil
}

// EnsureDirectories creates all required directories if they don't exist
func (p *Paths) EnsureDirectories() error {
	directories := []string{
		p.DataDir,
		p.ExportsDir,
		p.LogsDir,
		p.WebDir,
	}

	logger := slog.Default()

	for _, dir := range directories {
		if err := os.MkdirAll(dir, 0755); err != nil {
			return fmt.Errorf("failed to create directory %s: %v", dir, err)
		}

		if logger != nil {
			logger.Debug("Ensured directory exists",
				slog.String("directory", dir))
		}
	}

	return nil
}

// GetRelativePath returns a path relative to the executable directory
func (p *Paths) GetRelativePath(subpath string) string {
	return filepath.Join(p.ExecutableDir, subpath)
}

// FileExists checks if a file exists
func FileExists(path string) bool {
	_, err := os.Stat(path)
	return !os.IsNotExist(err)
}

// GetWebFilePath returns the path to a web file
func (p *Paths) GetWebFilePath(filename string) string {
	return filepath.Join(p.WebDir, filename)
}

// GetStaticFilePath returns the path to a static file
func (p *Paths) GetStaticFilePath(filename string) string {
	return filepath.Join(p.StaticDir, filename)
}

// GetDatasetPath returns the path for a dataset file in the data directory
func (p *Paths) GetDatasetPath(filename string) string {
	return filepath.Join(p.DataDir, filename)
}

// GetExportPath returns the path for an export file
func (p *Paths) GetExportPath(filename string) string {
	return filepath.Join(p.ExportsDir, filename)
}

// GetLogPath returns the path for a log file
func (p *Paths) GetLogPath(filename string) string {
	return filepath.Join(p.LogsDir, filename)
}

// GetDatedExportPath returns the path for a dated export file
// (e.g. campaign_export_20240115.csv)
func (p *Paths) GetDatedExportPath(prefix, ext string, date time.Time) string {
	filename := fmt.Sprintf("%s_%s.%s", prefix, date.Format("20060102"), ext)
	return filepath.Join(p.ExportsDir, filename)
}

// LogPathResolution logs detailed path resolution information for debugging
func (p *Paths) LogPathResolution() {
	logger := slog.Default()
	if logger == nil {
		return
	}

	logger.Info("Path resolution summary",
		slog.Group("directories",
			slog.String("executable", p.ExecutableDir),
			slog.String("data", p.DataDir),
			slog.String("exports", p.ExportsDir),
			slog.String("logs", p.LogsDir),
			slog.String("web", p.WebDir),
		),
		slog.Group("files",
			slog.String("dataset_csv", p.DatasetCSV),
			slog.String("report_html", p.ReportHTML),
		))
}

// ValidateDataset checks that the dataset file or directory exists and
// returns detailed error information
func (p *Paths) ValidateDataset() error {
	if !FileExists(p.DatasetCSV) && !FileExists(p.DataDir) {
		return fmt.Errorf("dataset missing: neither %s nor %s exists", p.DatasetCSV, p.DataDir)
	}
	return nil
}
