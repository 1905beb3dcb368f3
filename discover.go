package esb

import (
	"io/fs"
	"log/slog"
	"path/filepath"
	"sort"
)

// DiscoverSearchPaths recursively walks root and collects every directory
// literally named "include" (compiler search paths) and every directory
// named "ld" (linker search paths). Unreadable entries are logged and
// skipped. Results are sorted for reproducible output; consumers treat
// them as sets.
func DiscoverSearchPaths(root string, log *slog.Logger) (includeDirs, libDirs []string) {
	err := filepath.WalkDir(root, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			log.Warn("skipping unreadable entry", "path", path, "err", err)
			if d != nil && d.IsDir() {
				return filepath.SkipDir
			}
			return nil
		}
		if !d.IsDir() {
			return nil
		}
		switch filepath.Base(path) {
		case "include":
			includeDirs = append(includeDirs, path)
		case "ld":
			libDirs = append(libDirs, path)
		}
		return nil
	})
	if err != nil {
		log.Warn("search path discovery aborted", "root", root, "err", err)
	}
	sort.Strings(includeDirs)
	sort.Strings(libDirs)
	return includeDirs, libDirs
}
