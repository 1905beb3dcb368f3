package esb

import (
	"fmt"
	"log/slog"
	"path/filepath"
	"regexp"
)

// Defaults for the resolution stage; the generated project always targets
// the ESP-IDF framework on the espressif32 platform.
const (
	DefaultPlatform  = "espressif32"
	DefaultFramework = "espidf"
	builderName      = "platformio"
)

// cfgKeyAllow selects target-identifier kconfig keys that are propagated
// even when their value is not a true tristate.
var cfgKeyAllow = regexp.MustCompile(`IDF_TARGET`)

// Pipeline runs the whole resolution and orchestration flow. Strictly
// single-threaded: each stage, including subprocess invocations, completes
// before the next begins.
type Pipeline struct {
	Config  *Config
	Runner  Runner
	Tracker *ChangeSet
	Log     *slog.Logger
}

func NewPipeline(cfg *Config) *Pipeline {
	return &Pipeline{
		Config:  cfg,
		Runner:  NewTunnelRunner(),
		Tracker: NewChangeSet(),
		Log:     slog.Default(),
	}
}

// Run executes the pipeline and returns the outputs to propagate. When the
// enclosing build already runs under PlatformIO, the install, resolution
// and build stages are skipped and bindings inputs are computed from the
// pre-existing variable dump.
func (p *Pipeline) Run() (*BuildOutputs, error) {
	cfg := p.Config

	if vars := SconsVariablesFromEnv(cfg.Env); vars != nil {
		p.Log.Info("PlatformIO build detected: generating bindings only")
		return p.finish(vars, false)
	}

	for _, name := range []string{ToolsInstallDirVar, SdkconfigVar, SdkconfigDefaultsVar, MCUVar} {
		p.Tracker.TrackEnvVar(name)
	}

	installDir, isDefault, err := ResolveInstallDir(
		cfg.InstallDirective, cfg.InstallDefault, cfg.WorkspaceDir, cfg.OutDir, builderName)
	if err != nil {
		return nil, err
	}

	// The default install directive also permits reusing a toolchain that
	// is already on $PATH.
	pio, err := AcquireToolchain(installDir, isDefault, p.Runner, p.Log)
	if err != nil {
		return nil, err
	}

	resolution, err := NewResolver(pio).Resolve(ResolutionParams{
		Platform:   DefaultPlatform,
		Frameworks: []string{DefaultFramework},
		MCU:        cfg.MCU,
		Target:     cfg.Target,
	})
	if err != nil {
		return nil, err
	}
	p.Log.Info("resolved build target", "board", resolution.Board, "mcu", resolution.MCU)

	builder := NewProjectBuilder(filepath.Join(cfg.OutDir, cfg.SDK.Name), cfg.SDK, p.Log)
	builder.AddOptions(cfg.Options...)

	globFiles, err := TrackedGlobFiles(cfg.Env, TrackedGlobPrefix, p.Tracker)
	if err != nil {
		return nil, err
	}
	builder.AddFiles(globFiles...)

	if primary, ok := ResolvePrimarySdkconfig(cfg, resolution.MCU, p.Tracker); ok {
		builder.AddFiles(primary)
	}
	builder.AddFiles(ResolveSdkconfigDefaults(cfg, resolution.MCU, p.Tracker)...)

	projectDir, err := builder.Generate(resolution)
	if err != nil {
		return nil, err
	}

	if err := pio.LibInstallGlobal(); err != nil {
		return nil, err
	}
	if err := pio.Build(projectDir, cfg.Profile == ProfileRelease); err != nil {
		return nil, err
	}

	vars, err := SconsVariablesFromDump(projectDir)
	if err != nil {
		return nil, fmt.Errorf("reading build variable dump: %w", err)
	}
	return p.finish(vars, true)
}

// finish computes the downstream outputs from the build's variable dump.
// withLink is false in bindings-only mode.
func (p *Pipeline) finish(vars *SconsVariables, withLink bool) (*BuildOutputs, error) {
	cfg := p.Config

	profile := ProfileDebug
	if vars.ReleaseBuild {
		profile = ProfileRelease
	}
	entries, err := ParseKconfigFile(filepath.Join(vars.ProjectDir, fmt.Sprintf("%s.%s", SdkconfigFile, profile)))
	if err != nil {
		return nil, fmt.Errorf("reading generated sdkconfig: %w", err)
	}
	cfgArgs := TranslateCfgFlags(entries, cfgKeyAllow)

	target, ok := cfgArgs.Get(cfgName("CONFIG_IDF_TARGET"))
	if !ok {
		return nil, newResolutionErrorf("no IDF_TARGET in generated config, cfgs: %v", cfgArgs.Args)
	}
	mcu := MCUEnum(target)

	header := cfg.AbsFromWorkspace(cfg.BindingsHeader)
	p.Tracker.TrackFile(header)

	componentsDir := ComponentsDir(vars.ProjectDir, profile, cfg.SDK.Name)
	bindgen := BuildBindgenArgs(header, componentsDir, mcu, p.Log)

	outputs := &BuildOutputs{
		Scons:        vars,
		Cfg:          cfgArgs,
		Bindgen:      bindgen,
		CIncl:        CInclArgs(vars),
		MCU:          mcu,
		FrameworkDir: vars.PioFrameworkDir,
		Tracked:      p.Tracker,
	}
	if withLink {
		outputs.Link = LinkArgs(vars)
		outputs.EnvPath = vars.Path
	}
	return outputs, nil
}
