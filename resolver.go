package esb

import (
	"encoding/json"
	"fmt"
	"strings"
)

// ResolutionParams names the logical platform/framework/target triple to
// resolve. Immutable once constructed; passed once into a Resolver.
type ResolutionParams struct {
	Platform   string
	Frameworks []string
	// Optional MCU override; "" derives the MCU from Target.
	MCU    string
	Target string
}

// Resolution is the concrete outcome: the MCU to compile for, the board
// the generated project declares, and where the SDK framework lives.
type Resolution struct {
	Platform     string
	Board        string
	MCU          MCUEnum
	Frameworks   []string
	FrameworkDir string
}

// Resolver resolves ResolutionParams against the installed toolchain's
// board index.
type Resolver struct {
	Pio *Pio
	// BoardIndex overrides the toolchain query; used by tests.
	BoardIndex func(platform string) ([]Board, error)
}

func NewResolver(pio *Pio) *Resolver {
	return &Resolver{Pio: pio}
}

func (r *Resolver) boards(platform string) ([]Board, error) {
	if r.BoardIndex != nil {
		return r.BoardIndex(platform)
	}
	out, err := r.Pio.Runner.Output(fmt.Sprintf("%s boards --json-output %s", r.Pio.Exe, platform))
	if err != nil {
		return nil, err
	}
	var boards []Board
	if err := json.Unmarshal([]byte(out), &boards); err != nil {
		return nil, fmt.Errorf("parsing board index: %w", err)
	}
	return boards, nil
}

func (r *Resolver) Resolve(params ResolutionParams) (*Resolution, error) {
	mcu := strings.ToLower(params.MCU)
	if mcu == "" {
		derived, ok := TargetMCUs[params.Target]
		if !ok {
			return nil, newResolutionErrorf(
				"cannot derive MCU from target %q, set $%s explicitly", params.Target, MCUVar)
		}
		mcu = string(derived)
	}
	if !SupportedMCUs[MCUEnum(mcu)] {
		return nil, newResolutionErrorf("unsupported MCU %q", mcu)
	}

	boards, err := r.boards(params.Platform)
	if err != nil {
		return nil, newResolutionErrorf("querying board index for platform %q: %v", params.Platform, err)
	}
	board, ok := pickBoard(boards, mcu, params.Frameworks)
	if !ok {
		return nil, newResolutionErrorf(
			"no board for platform %q, frameworks %v, MCU %q", params.Platform, params.Frameworks, mcu)
	}

	resolution := &Resolution{
		Platform:   params.Platform,
		Board:      board.ID,
		MCU:        MCUEnum(mcu),
		Frameworks: params.Frameworks,
	}
	if r.Pio != nil && len(params.Frameworks) > 0 {
		resolution.FrameworkDir = r.Pio.FrameworkDir(params.Frameworks[0])
	}
	return resolution, nil
}

// pickBoard returns the first board matching the MCU and supporting every
// requested framework.
func pickBoard(boards []Board, mcu string, frameworks []string) (Board, bool) {
	for _, board := range boards {
		if !strings.EqualFold(board.MCU, mcu) {
			continue
		}
		supported := make(map[string]bool, len(board.Frameworks))
		for _, f := range board.Frameworks {
			supported[f] = true
		}
		ok := true
		for _, f := range frameworks {
			if !supported[f] {
				ok = false
				break
			}
		}
		if ok {
			return board, true
		}
	}
	return Board{}, false
}
