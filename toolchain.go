package esb

import (
	"fmt"
	"log/slog"
	"os"
	"os/exec"
	"path/filepath"

	"github.com/mgenware/esb/io2"
	"github.com/mgenware/j9/v3"
)

// Runner executes external commands. The production implementation wraps a
// j9 tunnel; tests substitute a recorder so resolution logic runs without
// subprocesses.
type Runner interface {
	Run(name string, args ...string) error
	// Output runs a shell command and returns its trimmed stdout.
	Output(cmd string) (string, error)
	LookPath(name string) (string, error)
}

// TunnelRunner runs commands through a j9 tunnel, streaming their output
// to the console logger.
type TunnelRunner struct {
	Tunnel *j9.Tunnel
}

func NewTunnelRunner() *TunnelRunner {
	return &TunnelRunner{Tunnel: j9.NewTunnel(j9.NewLocalNode(), j9.NewConsoleLogger())}
}

// The tunnel panics when a spawned command fails; convert that into a
// BuildError so callers stay on the error path.
func (r *TunnelRunner) Run(name string, args ...string) (err error) {
	defer func() {
		if p := recover(); p != nil {
			err = &BuildError{Cmd: name, Err: fmt.Errorf("%v", p)}
		}
	}()
	r.Tunnel.Spawn(&j9.SpawnOpt{Name: name, Args: args})
	return nil
}

func (r *TunnelRunner) Output(cmd string) (out string, err error) {
	defer func() {
		if p := recover(); p != nil {
			err = &BuildError{Cmd: cmd, Err: fmt.Errorf("%v", p)}
		}
	}()
	output := r.Tunnel.Shell(&j9.ShellOpt{Cmd: cmd})
	return string(output), nil
}

func (r *TunnelRunner) LookPath(name string) (string, error) {
	fname, err := exec.LookPath(name)
	if err == nil {
		fname, err = filepath.Abs(fname)
	}
	return fname, err
}

// installerCmd is the external PlatformIO installer. It performs its own
// idempotent install checks, so concurrent pipeline invocations sharing an
// install dir are left to it.
const installerCmd = "get-platformio"

// Pio is a handle to a PlatformIO toolchain installation.
type Pio struct {
	// Path to the platformio executable.
	Exe string
	// Core directory holding installed packages. For global and fromenv
	// installs this is the platformio default.
	CoreDir string

	Runner Runner
	Log    *slog.Logger
}

// TryPioFromEnv locates a platformio executable already reachable on the
// search path. Returns nil when there is none.
func TryPioFromEnv(runner Runner, log *slog.Logger) *Pio {
	exe, err := runner.LookPath("platformio")
	if err != nil {
		exe, err = runner.LookPath("pio")
	}
	if err != nil {
		return nil
	}
	return &Pio{Exe: exe, CoreDir: defaultCoreDir(), Runner: runner, Log: log}
}

func defaultCoreDir() string {
	if dir := os.Getenv("PLATFORMIO_CORE_DIR"); dir != "" {
		return dir
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return ""
	}
	return filepath.Join(home, ".platformio")
}

// InstallPio installs a fresh toolchain at dir by delegating to the
// external installer. Creating the target directory is the only filesystem
// mutation performed before handing off.
func InstallPio(dir InstallDir, runner Runner, log *slog.Logger) (*Pio, error) {
	path, hasPath := dir.Path()
	args := []string{}
	if hasPath {
		if err := io2.Mkdirp(path); err != nil {
			return nil, fmt.Errorf("creating install dir %s: %w", path, err)
		}
		args = append(args, "--install-dir", path)
	}
	if err := runner.Run(installerCmd, args...); err != nil {
		return nil, err
	}

	if !hasPath {
		pio := TryPioFromEnv(runner, log)
		if pio == nil {
			return nil, newConfigurationErrorf("platformio not found after global install")
		}
		return pio, nil
	}
	return &Pio{
		Exe:     filepath.Join(path, "penv", "bin", "platformio"),
		CoreDir: path,
		Runner:  runner,
		Log:     log,
	}, nil
}

// AcquireToolchain decides between reusing a toolchain from the
// environment and installing a fresh one at dir.
//
// allowFromEnv permits reuse when a toolchain is reachable on $PATH; the
// fromenv directive additionally forbids installing at all.
func AcquireToolchain(dir InstallDir, allowFromEnv bool, runner Runner, log *slog.Logger) (*Pio, error) {
	requireFromEnv := dir.IsFromEnv()
	maybeFromEnv := requireFromEnv || allowFromEnv

	pio := TryPioFromEnv(runner, log)
	switch {
	case pio != nil && maybeFromEnv:
		log.Info("using platformio from environment", "exe", pio.Exe)
		return pio, nil
	case pio != nil:
		log.Warn(fmt.Sprintf("ignoring platformio in environment: $%s != %s",
			ToolsInstallDirVar, InstallFromEnv))
		return InstallPio(dir, runner, log)
	case requireFromEnv:
		return nil, &ToolchainNotFoundError{Var: ToolsInstallDirVar, Value: dir.String()}
	default:
		return InstallPio(dir, runner, log)
	}
}

// LibInstallGlobal runs the toolchain's global library install step.
func (p *Pio) LibInstallGlobal() error {
	return p.Runner.Run(p.Exe, "lib", "--global", "install")
}

// Build runs the external build for the given generated project.
func (p *Pio) Build(projectDir string, release bool) error {
	env := string(ProfileDebug)
	if release {
		env = string(ProfileRelease)
	}
	return p.Runner.Run(p.Exe, "run", "-d", projectDir, "-e", env)
}

// Board is one entry of the toolchain's board index.
type Board struct {
	ID         string   `json:"id"`
	MCU        string   `json:"mcu"`
	Platform   string   `json:"platform"`
	Frameworks []string `json:"frameworks"`
}

// FrameworkDir returns the install location of an SDK framework package.
func (p *Pio) FrameworkDir(framework string) string {
	return filepath.Join(p.CoreDir, "packages", "framework-"+framework)
}
