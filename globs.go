package esb

import (
	"path/filepath"
	"sort"
	"strings"
)

// TrackedGlobFiles expands every "{prefix}_*" environment variable as a
// glob pattern, registers each match with the tracker and returns them as
// overlay files keeping their own names.
func TrackedGlobFiles(env Environ, prefix string, tracker Tracker) ([]OverlayFile, error) {
	var patterns []string
	for _, pair := range env.All() {
		key, value, _ := strings.Cut(pair, "=")
		if strings.HasPrefix(key, prefix+"_") && value != "" {
			tracker.TrackEnvVar(key)
			patterns = append(patterns, value)
		}
	}
	sort.Strings(patterns)

	var files []OverlayFile
	for _, pattern := range patterns {
		matches, err := filepath.Glob(pattern)
		if err != nil {
			return nil, newConfigurationErrorf("invalid glob %q: %v", pattern, err)
		}
		for _, match := range matches {
			tracker.TrackFile(match)
			files = append(files, OverlayFile{Src: match, Dest: filepath.Base(match)})
		}
	}
	return files, nil
}
