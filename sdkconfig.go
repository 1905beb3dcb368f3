package esb

import (
	"fmt"
	"path/filepath"
	"strings"

	"github.com/mgenware/esb/io2"
)

// OverlayFile is a configuration file copied into the generated project.
// Src is the on-disk source, Dest the logical file name inside the project.
// When several overlay files are applied in sequence, later entries
// override earlier ones.
type OverlayFile struct {
	Src  string
	Dest string
}

// ListSpecificConfigs expands path into its profile/chip-specialized
// variants and keeps the ones that exist as regular files, most specific
// first:
//
//	{name}.{profile}.{chip} > {name}.{chip} > {name}.{profile} > {name}
func ListSpecificConfigs(path string, profile ProfileEnum, chip MCUEnum) []string {
	name := filepath.Base(path)
	dir := filepath.Dir(path)
	candidates := []string{
		fmt.Sprintf("%s.%s.%s", name, profile, chip),
		fmt.Sprintf("%s.%s", name, chip),
		fmt.Sprintf("%s.%s", name, profile),
		name,
	}

	var found []string
	for _, candidate := range candidates {
		p := filepath.Join(dir, candidate)
		if io2.FileExists(p) {
			found = append(found, p)
		}
	}
	return found
}

// ResolvePrimarySdkconfig picks the most specific variant of the primary
// sdkconfig file. The destination name inside the generated project is
// always "sdkconfig.{profile}". Returns ok == false when no variant exists.
func ResolvePrimarySdkconfig(cfg *Config, chip MCUEnum, tracker Tracker) (OverlayFile, bool) {
	path := cfg.AbsFromWorkspace(cfg.Sdkconfig)
	found := ListSpecificConfigs(path, cfg.Profile, chip)
	if len(found) == 0 {
		return OverlayFile{}, false
	}
	src := found[0]
	tracker.TrackFile(src)
	return OverlayFile{Src: src, Dest: fmt.Sprintf("%s.%s", SdkconfigFile, cfg.Profile)}, true
}

// ResolveSdkconfigDefaults expands the semicolon-separated defaults list.
// Each listed path's expansion is reversed so that, across the final
// sequence, the most specific defaults are applied last and win. The
// primary sdkconfig is intentionally not reversed: it fully overrides,
// while defaults layer incrementally.
func ResolveSdkconfigDefaults(cfg *Config, chip MCUEnum, tracker Tracker) []OverlayFile {
	var files []OverlayFile
	for _, entry := range strings.Split(cfg.SdkconfigDefaults, ";") {
		if entry == "" {
			continue
		}
		path := cfg.AbsFromWorkspace(entry)
		found := ListSpecificConfigs(path, cfg.Profile, chip)
		for i := len(found) - 1; i >= 0; i-- {
			src := found[i]
			tracker.TrackFile(src)
			files = append(files, OverlayFile{Src: src, Dest: filepath.Base(src)})
		}
	}
	return files
}
