package files

import (
	"fmt"
	"io"
	"log/slog"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"campaignpulse/internal/config"
)

// Manager provides file operations rooted at the application's directory
// layout, plus export housekeeping.
type Manager struct {
	paths *config.Paths
}

// NewManager creates a file manager instance.
func NewManager(paths *config.Paths) *Manager {
	return &Manager{paths: paths}
}

// FileExists checks whether a file exists at the given path.
func (m *Manager) FileExists(path string) bool {
	_, err := os.Stat(m.resolvePath(path))
	return err == nil
}

// EnsureDirectory creates a directory if it does not exist.
func (m *Manager) EnsureDirectory(path string) error {
	fullPath := m.resolvePath(path)
	if _, err := os.Stat(fullPath); os.IsNotExist(err) {
		return os.MkdirAll(fullPath, 0755)
	}
	return nil
}

// CopyFile copies a file from source to destination, creating the
// destination directory as needed.
func (m *Manager) CopyFile(src, dst string) error {
	srcPath := m.resolvePath(src)
	dstPath := m.resolvePath(dst)

	slog.Info("copying file",
		slog.String("src", srcPath),
		slog.String("dst", dstPath))

	if err := os.MkdirAll(filepath.Dir(dstPath), 0755); err != nil {
		return fmt.Errorf("failed to create destination directory: %w", err)
	}

	srcFile, err := os.Open(srcPath)
	if err != nil {
		return fmt.Errorf("failed to open source file: %w", err)
	}
	defer srcFile.Close()

	dstFile, err := os.Create(dstPath)
	if err != nil {
		return fmt.Errorf("failed to create destination file: %w", err)
	}
	defer dstFile.Close()

	if _, err := io.Copy(dstFile, srcFile); err != nil {
		return fmt.Errorf("failed to copy file content: %w", err)
	}
	return dstFile.Sync()
}

// ListFiles returns the names of all files in a directory, non-recursive.
func (m *Manager) ListFiles(dir string) ([]string, error) {
	entries, err := os.ReadDir(m.resolvePath(dir))
	if err != nil {
		return nil, err
	}

	var files []string
	for _, entry := range entries {
		if !entry.IsDir() {
			files = append(files, entry.Name())
		}
	}
	return files, nil
}

// PruneExports deletes the oldest files in the exports directory beyond
// keep. It returns the number of files removed.
func (m *Manager) PruneExports(keep int) (int, error) {
	entries, err := os.ReadDir(m.paths.ExportsDir)
	if err != nil {
		if os.IsNotExist(err) {
			return 0, nil
		}
		return 0, fmt.Errorf("failed to read exports directory: %w", err)
	}

	var files []FileInfo
	for _, entry := range entries {
		if entry.IsDir() {
			continue
		}
		info, err := entry.Info()
		if err != nil {
			continue
		}
		files = append(files, FileInfo{
			Path:    filepath.Join(m.paths.ExportsDir, entry.Name()),
			Name:    entry.Name(),
			ModTime: info.ModTime(),
		})
	}
	if len(files) <= keep {
		return 0, nil
	}

	// Oldest first; delete everything before the kept tail.
	sort.Slice(files, func(i, j int) bool {
		return files[i].ModTime.Before(files[j].ModTime)
	})

	removed := 0
	for _, file := range files[:len(files)-keep] {
		if err := os.Remove(file.Path); err != nil {
			slog.Warn("failed to prune export",
				slog.String("path", file.Path),
				slog.String("error", err.Error()))
			continue
		}
		removed++
	}

	if removed > 0 {
		slog.Info("pruned old exports",
			slog.Int("removed", removed),
			slog.Int("kept", keep))
	}
	return removed, nil
}

// resolvePath maps a relative path onto the application's directory layout.
func (m *Manager) resolvePath(path string) string {
	if filepath.IsAbs(path) {
		return path
	}

	switch {
	case strings.HasPrefix(path, "exports/"):
		return m.paths.GetExportPath(strings.TrimPrefix(path, "exports/"))
	case strings.HasPrefix(path, "logs/"):
		return m.paths.GetLogPath(strings.TrimPrefix(path, "logs/"))
	case strings.HasPrefix(path, "web/"):
		return m.paths.GetWebFilePath(strings.TrimPrefix(path, "web/"))
	case strings.HasPrefix(path, "static/"):
		return m.paths.GetStaticFilePath(strings.TrimPrefix(path, "static/"))
	default:
		return filepath.Join(m.paths.DataDir, path)
	}
}
