package checks

import (
	"os"
	"path/filepath"

	"component-loader/core/dynlib"
	"component-loader/core/libname"
	"component-loader/core/loader"
)

// LibraryReport is the probe result of one library file.
type LibraryReport struct {
	Path      string   `json:"path"`
	ShortName string   `json:"short_name"`
	Protocol  string   `json:"protocol,omitempty"`
	Types     []string `json:"types,omitempty"`
	Error     string   `json:"error,omitempty"`
	// ShadowedBy is set when a later file with the same short name replaces this one on import.
	ShadowedBy string `json:"shadowed_by,omitempty"`
}

// LibrariesReport lists every library file an import of the search path would visit.
type LibrariesReport struct {
	Libraries []LibraryReport `json:"libraries"`
	Valid     int             `json:"valid"`
	Invalid   int             `json:"invalid"`
}

// ProbeLibraries probes the library files found in dirs and their target
// subdirectories, in import visit order. Nothing is registered.
func ProbeLibraries(opener dynlib.Opener, codec libname.Codec, dirs []string, target string) *LibrariesReport {
	report := &LibrariesReport{Libraries: []LibraryReport{}}
	last := make(map[string]int)

	for _, dir := range dirs {
		visit := []string{dir}
		if target != "" {
			visit = append(visit, filepath.Join(dir, target))
		}
		for _, d := range visit {
			entries, err := os.ReadDir(d)
			if err != nil {
				continue
			}
			for _, e := range entries {
				if !e.Type().IsRegular() || !codec.HasSuffix(e.Name()) {
					continue
				}
				path := filepath.Join(d, e.Name())
				lib := LibraryReport{Path: path, ShortName: codec.ShortName(e.Name())}
				shape, err := loader.Probe(opener, path)
				if err != nil {
					lib.Error = err.Error()
					report.Invalid++
				} else {
					lib.Protocol = shape.Protocol()
					lib.Types = shape.Types()
					report.Valid++
				}
				if prev, ok := last[lib.ShortName]; ok {
					report.Libraries[prev].ShadowedBy = path
				}
				last[lib.ShortName] = len(report.Libraries)
				report.Libraries = append(report.Libraries, lib)
			}
		}
	}
	return report
}
