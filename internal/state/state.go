package state

import (
	"encoding/json" // For JSON encoding and decoding of the state file
	"os"            // For file system operations like reading and writing files
	"path/filepath"
	"time"

	"github.com/google/uuid"

	"setup-windows/internal/installer"
	"setup-windows/internal/logger"
	"setup-windows/internal/plan"
)

// State is the record of the last run, written next to the log file so an
// operator can see which packages to retry.
type State struct {
	RunID     string                 `json:"run_id"`     // Unique identifier, also printed in the log
	StartedAt time.Time              `json:"started_at"` // When the run began
	DryRun    bool                   `json:"dry_run"`    // True if nothing was actually executed
	Selection plan.Selection         `json:"selection"`  // The resolved user selection
	Results   []installer.StepResult `json:"results"`    // One entry per executed action, in plan order
	ExitCode  int                    `json:"exit_code"`  // Process exit code derived from the results
}

// New starts a State for a run with a fresh run ID.
func New(sel plan.Selection, dryRun bool) *State {
	return &State{
		RunID:     uuid.NewString(),
		StartedAt: time.Now().UTC(),
		DryRun:    dryRun,
		Selection: sel,
	}
}

// Failed returns the actions whose step failed.
func (s *State) Failed() []string {
	var out []string
	for _, r := range s.Results {
		if r.Status == installer.StatusFailed {
			out = append(out, r.Action)
		}
	}
	return out
}

// LoadState loads the saved state from a JSON file at the given path.
// If the file does not exist or cannot be parsed, it returns nil.
func LoadState(path string) *State {
	file, err := os.ReadFile(path)
	if err != nil {
		logger.Debug("[DEBUG] No previous run state at %s: %v\n", path, err)
		return nil
	}

	var st State
	if err := json.Unmarshal(file, &st); err != nil {
		logger.Warn("[WARN] Ignoring unreadable run state %s: %v\n", path, err)
		return nil
	}
	return &st
}

// SaveState writes the given State struct to a JSON file at the given path.
// It pretty-prints the JSON with indentation for readability.
// Errors during marshalling or writing are logged but not propagated.
func SaveState(path string, st *State) {
	file, err := json.MarshalIndent(st, "", "  ")
	if err != nil {
		logger.Error("[ERROR] Failed to marshal state: %v\n", err)
		return
	}

	logger.Debug("[DEBUG] Writing state to %s:\n%s\n", path, string(file))

	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		logger.Error("[ERROR] Failed to create state directory for %s: %v\n", path, err)
		return
	}
	if err := os.WriteFile(path, file, 0644); err != nil {
		logger.Error("[ERROR] Failed to write state file %s: %v\n", path, err)
	}
}
