package checks

import (
	"os"
	"path/filepath"

	"go.uber.org/zap"
)

// DirectoryReport describes one directory of the effective search path.
type DirectoryReport struct {
	Path      string `json:"path"`
	Exists    bool   `json:"exists"`
	TargetDir bool   `json:"target_dir"`
	Libraries int    `json:"libraries"`
}

// SearchPathReport describes the effective search path.
type SearchPathReport struct {
	Directories []DirectoryReport `json:"directories"`
	Missing     []string          `json:"missing"`
}

// CheckSearchPath inspects every directory of dirs and its target subdirectory.
// Libraries counts regular files carrying the library suffix in both.
func CheckSearchPath(dirs []string, target string, isLibrary func(name string) bool) *SearchPathReport {
	report := &SearchPathReport{Directories: []DirectoryReport{}, Missing: []string{}}
	for _, dir := range dirs {
		entry := DirectoryReport{Path: dir}
		info, err := os.Stat(dir)
		if err != nil || !info.IsDir() {
			report.Missing = append(report.Missing, dir)
			report.Directories = append(report.Directories, entry)
			continue
		}
		entry.Exists = true
		entry.Libraries = countLibraries(dir, isLibrary)

		if target != "" {
			if info, err := os.Stat(filepath.Join(dir, target)); err == nil && info.IsDir() {
				entry.TargetDir = true
				entry.Libraries += countLibraries(filepath.Join(dir, target), isLibrary)
			}
		}
		report.Directories = append(report.Directories, entry)
	}
	return report
}

// FixSearchPath creates the missing directories.
func FixSearchPath(missing []string, logger *zap.Logger) error {
	for _, dir := range missing {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			logger.Error("Failed to create directory", zap.String("dir", dir), zap.Error(err))
			return err
		}
		logger.Info("Created missing directory", zap.String("dir", dir))
	}
	return nil
}

func countLibraries(dir string, isLibrary func(name string) bool) int {
	entries, err := os.ReadDir(dir)
	if err != nil {
		return 0
	}
	n := 0
	for _, e := range entries {
		if e.Type().IsRegular() && isLibrary(e.Name()) {
			n++
		}
	}
	return n
}
