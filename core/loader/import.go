package loader

import (
	"fmt"
	"io/fs"
	"os"
	"path"
	"path/filepath"

	"github.com/hashicorp/go-multierror"
	"go.uber.org/zap"
)

// ImportResult summarizes a directory scan.
type ImportResult struct {
	// Loaded lists the files that loaded successfully, in visit order.
	Loaded []string `json:"loaded"`
	// Failures holds one error per file that could not be loaded.
	Failures []error `json:"-"`
}

// ImportAll loads every component library found in the effective search path.
// Each directory is scanned flat and through its target subdirectory. Missing
// directories, symlinks, non-regular files and files that fail to load are skipped.
func (l *Loader) ImportAll(pathList string) *ImportResult {
	result := &ImportResult{}
	for _, dir := range l.SearchPath(pathList) {
		for _, d := range []string{dir, filepath.Join(dir, l.target)} {
			entries, err := os.ReadDir(d)
			if err != nil {
				l.logger.Debug("Skipping directory", zap.String("dir", d), zap.Error(err))
				continue
			}
			for _, entry := range entries {
				if entry.Type()&fs.ModeSymlink != 0 || !entry.Type().IsRegular() {
					continue
				}
				file := filepath.Join(d, entry.Name())
				if err := l.loadLibraryFile(file, l.codec.ShortName(entry.Name()), false); err != nil {
					result.Failures = append(result.Failures, err)
					continue
				}
				result.Loaded = append(result.Loaded, file)
			}
		}
	}
	l.logger.Info("Imported component libraries",
		zap.Int("loaded", len(result.Loaded)),
		zap.Int("skipped", len(result.Failures)))
	return result
}

// ImportPackage loads the package packageName from the effective search path.
// It succeeds at once if a component type named packageName is already registered.
func (l *Loader) ImportPackage(packageName, pathList string) error {
	if l.factories.Has(packageName) {
		l.logger.Debug("Package already imported", zap.String("package", packageName))
		return nil
	}

	var attempts *multierror.Error
	for _, dir := range l.SearchPath(pathList) {
		for _, candidate := range l.PackageCandidates(dir, packageName) {
			info, err := os.Stat(candidate)
			if err != nil {
				attempts = multierror.Append(attempts, err)
				continue
			}
			if !info.Mode().IsRegular() {
				attempts = multierror.Append(attempts, fmt.Errorf("%s: not a regular file", candidate))
				continue
			}
			if err := l.loadLibraryFile(candidate, l.codec.ShortName(filepath.Base(candidate)), true); err != nil {
				attempts = multierror.Append(attempts, err)
				continue
			}
			return nil
		}
	}

	l.logger.Error("Could not import package",
		zap.String("package", packageName),
		zap.Error(attempts.ErrorOrNil()))
	return fmt.Errorf("%w: %s: %w", ErrPackageNotFound, packageName, attempts.ErrorOrNil())
}

// PackageCandidates returns, in attempt order, the files that may hold packageName under dir:
// {name, libname} in the package directory, then the same in its target subdirectory.
func (l *Loader) PackageCandidates(dir, packageName string) []string {
	pkgDir, name := path.Split(filepath.ToSlash(packageName))
	base := filepath.Join(dir, filepath.FromSlash(pkgDir))
	return []string{
		filepath.Join(base, l.codec.FileName(name, false)),
		filepath.Join(base, l.codec.FileName(name, true)),
		filepath.Join(base, l.target, l.codec.FileName(name, false)),
		filepath.Join(base, l.target, l.codec.FileName(name, true)),
	}
}

func baseName(file string) string {
	return filepath.Base(file)
}
