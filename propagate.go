package esb

import (
	"fmt"
	"io"
)

// Propagated metadata keys consumed by the enclosing build system.
const (
	EnvPathMetaVar    = "ESB_ENV_PATH"
	EspIdfPathMetaVar = "ESB_ESP_IDF_PATH"
	MCUMetaVar        = "ESB_MCU"
)

// BuildOutputs is everything the pipeline propagates outward: cfg flags,
// binding-generator inputs, include and link arguments, toolchain
// environment metadata and the rerun-tracking set.
type BuildOutputs struct {
	Scons   *SconsVariables
	Cfg     CfgArgs
	Bindgen BindgenArgs
	// Compiler include flags from the variable dump.
	CIncl []string
	// Linker arguments; nil in bindings-only mode, where the enclosing
	// PlatformIO build links the final image itself.
	Link []string

	MCU          MCUEnum
	EnvPath      string
	FrameworkDir string

	Tracked *ChangeSet
}

// EnvVars renders the propagated metadata as KEY=VALUE pairs, the way the
// enclosing build system imports it into dependent build steps.
func (o *BuildOutputs) EnvVars() []string {
	env := []string{
		MCUMetaVar + "=" + string(o.MCU),
		EspIdfPathMetaVar + "=" + o.FrameworkDir,
	}
	if o.EnvPath != "" {
		env = append(env, EnvPathMetaVar+"="+o.EnvPath)
	}
	return env
}

// WriteMetadata emits the full propagation surface as directive lines on
// the enclosing build's configuration channel: cfg flags, binding
// generator arguments, include and link arguments, metadata values and
// the rerun-tracking set.
func (o *BuildOutputs) WriteMetadata(w io.Writer) error {
	write := func(prefix string, values []string) error {
		for _, v := range values {
			if _, err := fmt.Fprintf(w, "%s=%s\n", prefix, v); err != nil {
				return err
			}
		}
		return nil
	}

	if err := write("cfg", o.Cfg.Args); err != nil {
		return err
	}
	if _, err := fmt.Fprintf(w, "bindgen-header=%s\n", o.Bindgen.Header); err != nil {
		return err
	}
	if err := write("bindgen-clang-arg", o.Bindgen.ClangArgs); err != nil {
		return err
	}
	if err := write("incl-arg", o.CIncl); err != nil {
		return err
	}
	if err := write("link-arg", o.Link); err != nil {
		return err
	}
	if err := write("env", o.EnvVars()); err != nil {
		return err
	}
	if o.Tracked != nil {
		if err := write("rerun-if-changed", o.Tracked.Files()); err != nil {
			return err
		}
		if err := write("rerun-if-env-changed", o.Tracked.EnvVars()); err != nil {
			return err
		}
	}
	return nil
}
