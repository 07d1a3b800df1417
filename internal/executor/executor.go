// Package executor drives an execution plan through the installers and
// collects one result per action.
package executor

import (
	"errors"

	"setup-windows/internal/elevation"
	"setup-windows/internal/installer"
	"setup-windows/internal/logger"
	"setup-windows/internal/plan"
)

// ErrElevationDeclined aborts a live run before any action starts.
var ErrElevationDeclined = errors.New("administrative rights are required for a live run")

// Summary is the ordered list of step results for one run.
type Summary struct {
	Results []installer.StepResult `json:"results"`
}

// Failed counts the failed steps.
func (s Summary) Failed() int {
	n := 0
	for _, r := range s.Results {
		if !r.OK() {
			n++
		}
	}
	return n
}

// ExitCode is 0 when every step succeeded or was skipped, 1 otherwise.
func (s Summary) ExitCode() int {
	if s.Failed() > 0 {
		return 1
	}
	return 0
}

// Executor runs plans sequentially.
type Executor struct {
	Installer *installer.PackageInstaller
	Cleanup   *installer.CleanupRunner
}

// New creates an Executor.
func New(pkgs *installer.PackageInstaller, cleanup *installer.CleanupRunner) *Executor {
	return &Executor{Installer: pkgs, Cleanup: cleanup}
}

// Execute runs every action of p in order, one at a time, and never stops on a
// failed step. A live run (dryRun false) requires elev to be
// elevation.AlreadyElevated; otherwise nothing runs and ErrElevationDeclined is
// returned with an empty summary. Dry runs ignore elev.
func (e *Executor) Execute(p plan.Plan, dryRun bool, elev elevation.State) (Summary, error) {
	if !dryRun && elev != elevation.AlreadyElevated {
		logger.Error("[ERROR] Not running %d actions: elevation state is %s\n", p.Len(), elev)
		return Summary{}, ErrElevationDeclined
	}

	results := make([]installer.StepResult, 0, p.Len())
	for i, action := range p.Actions {
		logger.Debug("[DEBUG] Step %d/%d: %s %s\n", i+1, p.Len(), action.Kind, action.Label())

		var res installer.StepResult
		switch action.Kind {
		case plan.InstallPackage:
			res = e.Installer.Install(action.PackageID, dryRun)
		case plan.RunCleanup:
			res = e.Cleanup.Run(dryRun)
		default:
			res = installer.StepResult{Action: action.Label(), Status: installer.StatusFailed, Reason: "unknown action " + action.Kind.String()}
		}

		if !res.OK() {
			logger.Warn("[WARN] %s failed; continuing with the remaining steps. Re-run later or install it manually.\n", action.Label())
		}
		results = append(results, res)
	}
	return Summary{Results: results}, nil
}
