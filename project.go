package esb

import (
	"encoding/json"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"strings"

	"github.com/mgenware/esb/io2"
)

// sconsDumpFile is written into the project dir by the extra script during
// the external build.
const sconsDumpFile = "scons_dump.json"

// sconsDumpScript dumps the build's resolved variables after the scons
// environment is fully constructed.
const sconsDumpScript = `Import("env")

import json
import os


def esb_dump_vars(*args, **kwargs):
    vars = {
        "project_dir": env.subst("$PROJECT_DIR"),
        "release_build": env.subst("$PIOENV") == "release",
        "path": env["ENV"].get("PATH", ""),
        "incflags": env.subst("$_CPPINCFLAGS"),
        "libflags": env.subst("$_LIBFLAGS"),
        "libdirflags": env.subst("$_LIBDIRFLAGS"),
        "linkflags": env.subst("$LINKFLAGS"),
        "cc": env.subst("$CC"),
        "cflags": env.subst("$CFLAGS"),
        "ccflags": env.subst("$CCFLAGS"),
        "pio_platform_dir": env.PioPlatform().get_dir(),
        "pio_framework_dir": env.PioPlatform().get_package_dir("framework-espidf") or "",
    }
    path = os.path.join(env.subst("$PROJECT_DIR"), "scons_dump.json")
    with open(path, "w") as f:
        json.dump(vars, f, indent=2)


env.AddPostAction("buildprog", esb_dump_vars)
esb_dump_vars()
`

// projectMainSrc keeps the generated project buildable; the real entry
// point comes from the binding layer at link time.
const projectMainSrc = `void app_main(void) {}
`

// SconsVariables is the read-only snapshot of the external build's
// resolved variables. Loaded once, never mutated.
type SconsVariables struct {
	ProjectDir      string `json:"project_dir"`
	ReleaseBuild    bool   `json:"release_build"`
	Path            string `json:"path"`
	IncFlags        string `json:"incflags"`
	LibFlags        string `json:"libflags"`
	LibDirFlags     string `json:"libdirflags"`
	LinkFlags       string `json:"linkflags"`
	CC              string `json:"cc"`
	CFlags          string `json:"cflags"`
	CCFlags         string `json:"ccflags"`
	PioPlatformDir  string `json:"pio_platform_dir"`
	PioFrameworkDir string `json:"pio_framework_dir"`
}

// SconsVariablesFromDump reads the dump left behind by the external build.
func SconsVariablesFromDump(projectDir string) (*SconsVariables, error) {
	return readSconsDump(filepath.Join(projectDir, sconsDumpFile))
}

// SconsVariablesFromEnv detects a build already running under PlatformIO:
// when the scons-dump variable points at an existing dump, the pipeline
// skips install/resolve/build and generates bindings only.
func SconsVariablesFromEnv(env Environ) *SconsVariables {
	path, ok := env.Lookup(SconsDumpVar)
	if !ok || path == "" {
		return nil
	}
	vars, err := readSconsDump(path)
	if err != nil {
		return nil
	}
	return vars
}

func readSconsDump(path string) (*SconsVariables, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	var vars SconsVariables
	if err := json.Unmarshal(data, &vars); err != nil {
		return nil, fmt.Errorf("parsing scons dump %s: %w", path, err)
	}
	return &vars, nil
}

// ProjectBuilder materializes the generated PlatformIO project: the
// platformio.ini, the copied sdkconfig layers and the scons dump script.
type ProjectBuilder struct {
	Dir     string
	SDK     SDKPackage
	Options []string
	Log     *slog.Logger

	files []OverlayFile
}

func NewProjectBuilder(dir string, sdk SDKPackage, log *slog.Logger) *ProjectBuilder {
	return &ProjectBuilder{Dir: dir, SDK: sdk, Log: log}
}

// AddFiles appends overlay files; within the final sequence later entries
// override earlier ones, so callers must append in increasing precedence.
func (b *ProjectBuilder) AddFiles(files ...OverlayFile) {
	b.files = append(b.files, files...)
}

func (b *ProjectBuilder) AddOptions(options ...string) {
	b.Options = append(b.Options, options...)
}

// Generate writes the project to disk and returns its path.
func (b *ProjectBuilder) Generate(resolution *Resolution) (string, error) {
	if err := io2.Mkdirp(filepath.Join(b.Dir, "src")); err != nil {
		return "", err
	}
	if err := os.WriteFile(filepath.Join(b.Dir, "src", "main.c"), []byte(projectMainSrc), 0644); err != nil {
		return "", err
	}
	if err := os.WriteFile(filepath.Join(b.Dir, "dump_scons_vars.py"), []byte(sconsDumpScript), 0644); err != nil {
		return "", err
	}
	if err := os.WriteFile(filepath.Join(b.Dir, "platformio.ini"), []byte(b.renderIni(resolution)), 0644); err != nil {
		return "", err
	}
	for _, file := range b.files {
		b.Log.Debug("copying project file", "src", file.Src, "dest", file.Dest)
		if err := io2.CopyFile(file.Src, filepath.Join(b.Dir, file.Dest)); err != nil {
			return "", err
		}
	}
	return b.Dir, nil
}

func (b *ProjectBuilder) renderIni(resolution *Resolution) string {
	var sb strings.Builder
	sb.WriteString("[platformio]\n")
	sb.WriteString("default_envs = debug\n\n")

	sb.WriteString("[env]\n")
	fmt.Fprintf(&sb, "platform = %s\n", resolution.Platform)
	fmt.Fprintf(&sb, "board = %s\n", resolution.Board)
	fmt.Fprintf(&sb, "framework = %s\n", strings.Join(resolution.Frameworks, ", "))
	fmt.Fprintf(&sb, "lib_deps = %s\n", b.SDK.LibDep())
	sb.WriteString("extra_scripts = post:dump_scons_vars.py\n")
	for _, option := range b.Options {
		sb.WriteString(option)
		sb.WriteString("\n")
	}

	sb.WriteString("\n[env:debug]\nbuild_type = debug\n")
	sb.WriteString("\n[env:release]\nbuild_type = release\n")
	return sb.String()
}
