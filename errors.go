package esb

import "fmt"

// ConfigurationError reports a malformed install directive or an
// unparseable environment value. It aborts the pipeline before any
// subprocess runs.
type ConfigurationError struct {
	Reason string
}

func (e *ConfigurationError) Error() string {
	return "configuration error: " + e.Reason
}

func newConfigurationErrorf(format string, a ...any) error {
	return &ConfigurationError{Reason: fmt.Sprintf(format, a...)}
}

// ToolchainNotFoundError reports that a toolchain was mandated from the
// environment but could not be found on the search path.
type ToolchainNotFoundError struct {
	// Name of the environment variable that mandated the environment
	// toolchain and the value it carried.
	Var   string
	Value string
}

func (e *ToolchainNotFoundError) Error() string {
	return fmt.Sprintf(
		"platformio not found in environment ($PATH) but required by $%s == %s",
		e.Var, e.Value)
}

// ResolutionError reports that the platform/framework/target combination
// cannot be satisfied by the installed toolchain's package index.
type ResolutionError struct {
	Reason string
}

func (e *ResolutionError) Error() string {
	return "resolution error: " + e.Reason
}

func newResolutionErrorf(format string, a ...any) error {
	return &ResolutionError{Reason: fmt.Sprintf(format, a...)}
}

// BuildError reports a non-zero exit of an external subprocess. The
// subprocess's own output has already been streamed to the console by the
// tunnel logger.
type BuildError struct {
	Cmd string
	Err error
}

func (e *BuildError) Error() string {
	return fmt.Sprintf("external command %q failed: %v", e.Cmd, e.Err)
}

func (e *BuildError) Unwrap() error {
	return e.Err
}
