package files

import (
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"
	"time"

	"campaignpulse/internal/errors"
)

// FileInfo describes one discovered file.
type FileInfo struct {
	Path    string
	Name    string
	Size    int64
	ModTime time.Time
}

// Discovery locates dataset files under a base directory.
type Discovery struct {
	basePath string
}

// NewDiscovery creates a discovery instance rooted at basePath. Absolute
// paths passed to its methods bypass the base.
func NewDiscovery(basePath string) *Discovery {
	return &Discovery{basePath: basePath}
}

// ResolveDataset resolves the configured dataset path to a concrete CSV
// file. A file path is returned as-is after an existence check; a directory
// resolves to its most recently modified *.csv.
func (d *Discovery) ResolveDataset(path string) (string, error) {
	fullPath := d.resolve(path)

	info, err := os.Stat(fullPath)
	if err != nil {
		if os.IsNotExist(err) {
			return "", fmt.Errorf("%w: %s", errors.ErrDatasetNotFound, fullPath)
		}
		return "", fmt.Errorf("failed to stat %s: %w", fullPath, err)
	}

	if !info.IsDir() {
		return fullPath, nil
	}

	files, err := d.FindCSVFiles(fullPath)
	if err != nil {
		return "", err
	}
	latest, ok := LatestFile(files)
	if !ok {
		return "", fmt.Errorf("%w: no CSV files in %s", errors.ErrDatasetNotFound, fullPath)
	}
	return latest.Path, nil
}

// FindCSVFiles lists the CSV files in dir, sorted oldest first.
func (d *Discovery) FindCSVFiles(dir string) ([]FileInfo, error) {
	return d.findByExtension(dir, ".csv")
}

// FindExcelFiles lists the Excel workbooks in dir, sorted oldest first.
func (d *Discovery) FindExcelFiles(dir string) ([]FileInfo, error) {
	files, err := d.findByExtension(dir, ".xlsx")
	if err != nil {
		return nil, err
	}
	xls, err := d.findByExtension(dir, ".xls")
	if err != nil {
		return nil, err
	}
	files = append(files, xls...)
	sortByModTime(files)
	return files, nil
}

func (d *Discovery) findByExtension(dir, ext string) ([]FileInfo, error) {
	fullPath := d.resolve(dir)

	entries, err := os.ReadDir(fullPath)
	if err != nil {
		return nil, fmt.Errorf("failed to read directory %s: %w", fullPath, err)
	}

	var files []FileInfo
	for _, entry := range entries {
		if entry.IsDir() {
			continue
		}
		name := entry.Name()
		if !strings.EqualFold(filepath.Ext(name), ext) {
			continue
		}
		info, err := entry.Info()
		if err != nil {
			continue
		}
		files = append(files, FileInfo{
			Path:    filepath.Join(fullPath, name),
			Name:    name,
			Size:    info.Size(),
			ModTime: info.ModTime(),
		})
	}

	sortByModTime(files)
	return files, nil
}

func (d *Discovery) resolve(path string) string {
	if filepath.IsAbs(path) || d.basePath == "" {
		return path
	}
	return filepath.Join(d.basePath, path)
}

func sortByModTime(files []FileInfo) {
	sort.Slice(files, func(i, j int) bool {
		return files[i].ModTime.Before(files[j].ModTime)
	})
}

// LatestFile returns the most recently modified file from a list.
func LatestFile(files []FileInfo) (FileInfo, bool) {
	if len(files) == 0 {
		return FileInfo{}, false
	}
	latest := files[0]
	for _, file := range files[1:] {
		if file.ModTime.After(latest.ModTime) {
			latest = file
		}
	}
	return latest, true
}
