package esb

import (
	"log/slog"
	"path/filepath"
	"strings"
)

// ComponentsDir is the SDK components tree inside the generated project's
// library-dependency dir.
func ComponentsDir(projectDir string, profile ProfileEnum, sdkName string) string {
	return filepath.Join(projectDir, ".pio", "libdeps", string(profile), sdkName, "components")
}

// fixedComponentIncludes are component dirs whose headers the bindings
// need but which do not follow the include/ directory convention.
var fixedComponentIncludes = []string{
	filepath.Join("common", "app_wifi"),
	filepath.Join("common", "app_hap_setup_payload"),
	filepath.Join("common", "qrcode", "include"),
}

// BindgenArgs are the inputs the binding generator runs with. This core
// computes them; it does not run the generator.
type BindgenArgs struct {
	Header    string
	ClangArgs []string
}

// BuildBindgenArgs assembles the clang arguments for the binding
// generator: the fixed component includes, every discovered include and
// linker-script dir under componentsDir, and the clang target for the MCU.
func BuildBindgenArgs(header, componentsDir string, mcu MCUEnum, log *slog.Logger) BindgenArgs {
	var args []string
	for _, rel := range fixedComponentIncludes {
		args = append(args, "-I"+filepath.Join(componentsDir, rel))
	}

	includeDirs, libDirs := DiscoverSearchPaths(componentsDir, log)
	for _, dir := range includeDirs {
		args = append(args, "-I"+dir)
	}
	for _, dir := range libDirs {
		args = append(args, "-L"+dir)
	}

	args = append(args, "-target", mcu.ClangTarget())
	return BindgenArgs{Header: header, ClangArgs: args}
}

// CInclArgs extracts the compiler include flags from the build's variable
// dump.
func CInclArgs(vars *SconsVariables) []string {
	return strings.Fields(vars.IncFlags)
}

// LinkArgs extracts the linker arguments from the build's variable dump:
// search dirs first, then flags, then libraries.
func LinkArgs(vars *SconsVariables) []string {
	var args []string
	args = append(args, strings.Fields(vars.LibDirFlags)...)
	args = append(args, strings.Fields(vars.LinkFlags)...)
	args = append(args, strings.Fields(vars.LibFlags)...)
	return args
}
