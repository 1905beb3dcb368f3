package esb

import (
	"fmt"
	"path/filepath"
	"strings"
)

type InstallDirKind string

const (
	InstallGlobal    InstallDirKind = "global"
	InstallWorkspace InstallDirKind = "workspace"
	InstallOut       InstallDirKind = "out"
	InstallCustom    InstallDirKind = "custom"
	InstallFromEnv   InstallDirKind = "fromenv"
)

const customPrefix = "custom:"

// InstallDir is the resolved toolchain install location. Exactly one kind
// is active; only workspace/out/custom carry a path.
type InstallDir struct {
	kind InstallDirKind
	path string
}

func (d InstallDir) Kind() InstallDirKind {
	return d.kind
}

// Path returns the concrete install path for the workspace, out and custom
// kinds. Global and fromenv have no path.
func (d InstallDir) Path() (string, bool) {
	switch d.kind {
	case InstallWorkspace, InstallOut, InstallCustom:
		return d.path, true
	}
	return "", false
}

func (d InstallDir) IsFromEnv() bool {
	return d.kind == InstallFromEnv
}

func (d InstallDir) String() string {
	if d.path != "" {
		return fmt.Sprintf("%s (%s)", d.kind, d.path)
	}
	return string(d.kind)
}

// ResolveInstallDir resolves the install-location directive into a concrete
// InstallDir. envValue is the raw value of the install-dir environment
// variable; when unset or blank defaultDirective is used instead and the
// returned bool is true.
//
// Recognized directives (case-insensitive): "global", "workspace", "out",
// "fromenv" and "custom:<dir>". A custom dir is resolved relative to the
// workspace root when not absolute.
func ResolveInstallDir(envValue, defaultDirective, workspaceDir, outDir, builderName string) (InstallDir, bool, error) {
	location := strings.TrimSpace(envValue)
	isDefault := false
	if location == "" {
		location = defaultDirective
		isDefault = true
	}

	needWorkspace := func() (string, error) {
		if workspaceDir == "" {
			return "", newConfigurationErrorf("no workspace root found, required by install directive %q", location)
		}
		return workspaceDir, nil
	}

	var dir InstallDir
	switch lower := strings.ToLower(location); {
	case lower == string(InstallGlobal):
		dir = InstallDir{kind: InstallGlobal}
	case lower == string(InstallWorkspace):
		ws, err := needWorkspace()
		if err != nil {
			return InstallDir{}, false, err
		}
		dir = InstallDir{
			kind: InstallWorkspace,
			path: filepath.Join(ws, ToolsWorkspaceInstallDir, builderName),
		}
	case lower == string(InstallOut):
		dir = InstallDir{kind: InstallOut, path: filepath.Join(outDir, builderName)}
	case lower == string(InstallFromEnv):
		dir = InstallDir{kind: InstallFromEnv}
	case strings.HasPrefix(lower, customPrefix):
		// Keep the original casing of the path suffix.
		suffix := location[len(customPrefix):]
		if !filepath.IsAbs(suffix) {
			ws, err := needWorkspace()
			if err != nil {
				return InstallDir{}, false, err
			}
			suffix = filepath.Join(ws, suffix)
		}
		dir = InstallDir{kind: InstallCustom, path: filepath.Clean(suffix)}
	default:
		return InstallDir{}, false, newConfigurationErrorf(
			"invalid install directive %q, should be one of `global`, `workspace`, `out`, `fromenv` or `custom:<dir>`",
			location)
	}
	return dir, isDefault, nil
}
