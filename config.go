package esb

import (
	"os"
	"path/filepath"

	"github.com/joho/godotenv"
	"gopkg.in/yaml.v3"
)

// Settings is the optional esb.yaml file at the workspace root. Everything
// in it can also be supplied through the environment; the environment wins.
type Settings struct {
	InstallDir        string     `yaml:"install_dir"`
	Sdkconfig         string     `yaml:"sdkconfig"`
	SdkconfigDefaults string     `yaml:"sdkconfig_defaults"`
	MCU               string     `yaml:"mcu"`
	BindingsHeader    string     `yaml:"bindings_header"`
	SDK               SDKPackage `yaml:"sdk"`
	Options           []string   `yaml:"options"`
}

// Config is the fully resolved pipeline input, constructed once at the top
// of a build invocation and threaded through every stage. No stage reads
// the process environment directly.
type Config struct {
	WorkspaceDir string
	OutDir       string
	Profile      ProfileEnum
	Target       string

	// Raw install-location directive from the environment, "" when unset.
	InstallDirective string
	// Directive used when InstallDirective is blank.
	InstallDefault string

	// Primary sdkconfig path and the semicolon-separated defaults list,
	// possibly relative to the workspace root.
	Sdkconfig         string
	SdkconfigDefaults string

	// MCU override; "" means derive from the target triple.
	MCU string

	BindingsHeader string
	SDK            SDKPackage
	// Extra platformio.ini lines for the generated project.
	Options []string

	Env Environ
}

// LoadConfig builds a Config from the given environment, the workspace
// .env file and the optional esb.yaml settings file.
func LoadConfig(workspaceDir string, baseEnv Environ) (*Config, error) {
	env := Environ(baseEnv)
	if dotenv, err := godotenv.Read(filepath.Join(workspaceDir, DotenvFile)); err == nil {
		env = chainEnviron{baseEnv, MapEnviron(dotenv)}
	}

	var settings Settings
	if data, err := os.ReadFile(filepath.Join(workspaceDir, SettingsFile)); err == nil {
		if err := yaml.Unmarshal(data, &settings); err != nil {
			return nil, newConfigurationErrorf("invalid %s: %v", SettingsFile, err)
		}
	}

	lookup := func(key, settingsValue, defaultValue string) string {
		if v, ok := env.Lookup(key); ok && v != "" {
			return v
		}
		if settingsValue != "" {
			return settingsValue
		}
		return defaultValue
	}

	profile, ok := env.Lookup(ProfileVar)
	if !ok || profile == "" {
		return nil, newConfigurationErrorf("no $%s environment variable", ProfileVar)
	}
	if !SupportedProfiles[ProfileEnum(profile)] {
		return nil, newConfigurationErrorf("unsupported profile %q", profile)
	}
	target, ok := env.Lookup(TargetVar)
	if !ok || target == "" {
		return nil, newConfigurationErrorf("no $%s environment variable", TargetVar)
	}
	outDir, ok := env.Lookup(OutDirVar)
	if !ok || outDir == "" {
		return nil, newConfigurationErrorf("no $%s environment variable", OutDirVar)
	}

	installDirective, _ := env.Lookup(ToolsInstallDirVar)

	sdk := settings.SDK
	if sdk.Url == "" {
		sdk = DefaultSDKPackage
	}

	cfg := &Config{
		WorkspaceDir:      workspaceDir,
		OutDir:            outDir,
		Profile:           ProfileEnum(profile),
		Target:            target,
		InstallDirective:  installDirective,
		InstallDefault:    defaultString(settings.InstallDir, string(InstallWorkspace)),
		Sdkconfig:         lookup(SdkconfigVar, settings.Sdkconfig, SdkconfigFile),
		SdkconfigDefaults: lookup(SdkconfigDefaultsVar, settings.SdkconfigDefaults, SdkconfigDefaultsFile),
		MCU:               lookup(MCUVar, settings.MCU, ""),
		BindingsHeader:    defaultString(settings.BindingsHeader, filepath.Join("src", "include", "bindings.h")),
		SDK:               sdk,
		Options:           append(EnvValues(env, PioConfOptionPrefix), settings.Options...),
		Env:               env,
	}
	return cfg, nil
}

func defaultString(value, fallback string) string {
	if value != "" {
		return value
	}
	return fallback
}

// AbsFromWorkspace resolves path relative to the workspace root unless it
// is already absolute.
func (c *Config) AbsFromWorkspace(path string) string {
	if filepath.IsAbs(path) {
		return path
	}
	return filepath.Join(c.WorkspaceDir, path)
}
