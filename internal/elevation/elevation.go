// Package elevation makes sure live runs hold administrative rights.
//
// The current privilege level is checked once at process start. When it is
// insufficient, the same executable is relaunched through the OS elevation
// prompt with the resolved invocation, and the unelevated parent is expected
// to exit without running anything.
package elevation

import (
	"errors"
	"fmt"
	"os"

	"setup-windows/internal/logger"
)

// State is the outcome of Guard.Ensure.
type State int

const (
	// Unchecked is the zero value, used for dry runs where the guard is skipped.
	Unchecked State = iota
	AlreadyElevated
	ReElevated
	ElevationDeclined
)

func (s State) String() string {
	switch s {
	case AlreadyElevated:
		return "already-elevated"
	case ReElevated:
		return "re-elevated"
	case ElevationDeclined:
		return "declined"
	default:
		return "unchecked"
	}
}

// ErrDeclined is returned by a Relaunch func when the user refused the elevation prompt.
var ErrDeclined = errors.New("elevation declined by user")

// ElevatedMarker is appended to relaunch arguments so the child never relaunches again.
const ElevatedMarker = "--elevated"

// Guard checks privileges and re-launches the process elevated when needed.
type Guard struct {
	// Check reports whether the current process is elevated.
	Check func() (bool, error)
	// Relaunch starts exe elevated with args and returns without waiting.
	Relaunch func(exe string, args []string) error
	// Executable returns the path of the running binary.
	Executable func() (string, error)
	// Relaunched is true when this process was itself started by a relaunch.
	Relaunched bool
}

// NewGuard returns a Guard wired to the platform implementation.
func NewGuard(relaunched bool) *Guard {
	return &Guard{
		Check:      IsElevated,
		Relaunch:   RelaunchElevated,
		Executable: os.Executable,
		Relaunched: relaunched,
	}
}

// Ensure returns AlreadyElevated, ReElevated or ElevationDeclined.
// args is the full invocation (without the program name) the elevated child should run.
// On ReElevated the caller must exit immediately with status 0.
func (g *Guard) Ensure(args []string) (State, error) {
	elevated, err := g.Check()
	if err != nil {
		logger.Warn("[WARN] Could not determine privilege level: %v\n", err)
	}
	if elevated {
		logger.Debug("[DEBUG] Process is already elevated\n")
		return AlreadyElevated, nil
	}

	if g.Relaunched {
		logger.Error("[ERROR] Relaunched process is still not elevated\n")
		return ElevationDeclined, fmt.Errorf("%w: relaunched process has no administrative rights", ErrDeclined)
	}

	exe, err := g.Executable()
	if err != nil {
		return ElevationDeclined, fmt.Errorf("cannot locate own executable: %w", err)
	}

	childArgs := append(append([]string(nil), args...), ElevatedMarker)
	logger.Info("[INFO] Requesting administrative privileges (UAC)...\n")
	logger.Debug("[DEBUG] Relaunching %s %v\n", exe, childArgs)
	if err := g.Relaunch(exe, childArgs); err != nil {
		if errors.Is(err, ErrDeclined) {
			logger.Warn("[WARN] Elevation prompt was declined\n")
		} else {
			logger.Error("[ERROR] Elevated relaunch failed: %v\n", err)
		}
		return ElevationDeclined, err
	}
	return ReElevated, nil
}
