package installer

import (
	"errors"
	"fmt"
	"time"
)

// Status is the terminal outcome of one step.
type Status int

const (
	StatusSkipped Status = iota + 1
	StatusSucceeded
	StatusFailed
)

func (s Status) String() string {
	switch s {
	case StatusSkipped:
		return "skipped"
	case StatusSucceeded:
		return "succeeded"
	case StatusFailed:
		return "failed"
	default:
		return "pending"
	}
}

// MarshalText lets the run report store statuses by name.
func (s Status) MarshalText() ([]byte, error) {
	return []byte(s.String()), nil
}

// UnmarshalText is the inverse of MarshalText.
func (s *Status) UnmarshalText(b []byte) error {
	switch string(b) {
	case "skipped":
		*s = StatusSkipped
	case "succeeded":
		*s = StatusSucceeded
	case "failed":
		*s = StatusFailed
	default:
		return fmt.Errorf("unknown step status %q", b)
	}
	return nil
}

// StepResult is the outcome of executing one action. It is never mutated after creation.
type StepResult struct {
	Action   string        `json:"action"`           // Package identifier or "cleanup"
	Status   Status        `json:"status"`           // Terminal status of the step
	Reason   string        `json:"reason,omitempty"` // Failure reason; empty unless Status is StatusFailed
	Duration time.Duration `json:"duration"`         // Wall time spent, zero for skipped steps
	Output   string        `json:"output,omitempty"` // Last lines of the tool's output when it exited non-zero
}

// OK reports whether the step counts as success for the exit code.
func (r StepResult) OK() bool {
	return r.Status == StatusSkipped || r.Status == StatusSucceeded
}

func (r StepResult) String() string {
	if r.Status == StatusFailed {
		return fmt.Sprintf("%s: %s (%s)", r.Action, r.Status, r.Reason)
	}
	return fmt.Sprintf("%s: %s", r.Action, r.Status)
}

func skipped(action string) StepResult {
	return StepResult{Action: action, Status: StatusSkipped}
}

func succeeded(action string, d time.Duration) StepResult {
	return StepResult{Action: action, Status: StatusSucceeded, Duration: d}
}

// failed records a failed step. The output tail of an *ExitError in err is kept.
func failed(action, reason string, d time.Duration, err error) StepResult {
	res := StepResult{Action: action, Status: StatusFailed, Reason: reason, Duration: d}
	var exitErr *ExitError
	if errors.As(err, &exitErr) {
		res.Output = exitErr.Output
	}
	return res
}

// ErrManagerUnavailable means the package manager could not be started at all.
var ErrManagerUnavailable = errors.New("package manager unavailable")

// ErrCleanupUnavailable means the cleanup utility could not be fetched, unpacked or started.
var ErrCleanupUnavailable = errors.New("cleanup utility unavailable")

// ExitError reports a collaborator process that ran and exited non-zero.
type ExitError struct {
	Tool   string // "winget", "tron"
	Code   int
	Output string // Tail of the combined output, if captured
}

func (e *ExitError) Error() string {
	msg := fmt.Sprintf("%s exited with code %s", e.Tool, formatExitCode(e.Code))
	if desc, ok := wingetCodes[uint32(e.Code)]; ok && e.Tool == "winget" {
		msg += " (" + desc + ")"
	}
	return msg
}

// wingetCodes describes the HRESULTs operators hit most often.
var wingetCodes = map[uint32]string{
	0x8A150011: "installer hash mismatch",
	0x8A150014: "no package found matching input criteria",
	0x8A15002B: "no applicable upgrade found",
	0x8A150061: "package already installed",
}

// formatExitCode prints small codes in decimal and HRESULT-sized codes in hex.
func formatExitCode(code int) string {
	if code >= 0 && code <= 255 {
		return fmt.Sprintf("%d", code)
	}
	return fmt.Sprintf("0x%08X", uint32(code))
}
