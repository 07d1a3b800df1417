package installer

import (
	"errors"
	"strings"
	"time"

	"setup-windows/internal/logger"
)

// CleanupLabel identifies the cleanup step in results and logs.
const CleanupLabel = "cleanup"

// CleanupTool runs the post-install maintenance utility once.
// Errors follow the PackageManager conventions, using ErrCleanupUnavailable
// when the utility cannot be obtained or started.
type CleanupTool interface {
	RunCleanup() error
}

// CleanupRunner turns cleanup outcomes into a step result.
type CleanupRunner struct {
	Tool CleanupTool
}

// NewCleanupRunner creates a CleanupRunner backed by t.
func NewCleanupRunner(t CleanupTool) *CleanupRunner {
	return &CleanupRunner{Tool: t}
}

// Run invokes the cleanup utility unless dryRun is set. A failure here does not
// affect earlier installs; it is recorded as a single failed step.
func (c *CleanupRunner) Run(dryRun bool) StepResult {
	if dryRun {
		logger.Info("[INFO] (dry-run) Would download and run the cleanup utility\n")
		return skipped(CleanupLabel)
	}

	logger.Info("[INFO] Running cleanup utility...\n")
	start := time.Now()
	err := c.Tool.RunCleanup()
	elapsed := time.Since(start)

	if err == nil {
		logger.Info("[INFO] Cleanup finished successfully.\n")
		return succeeded(CleanupLabel, elapsed)
	}

	reason := err.Error()
	if errors.Is(err, ErrCleanupUnavailable) && !strings.HasPrefix(reason, ErrCleanupUnavailable.Error()) {
		reason = ErrCleanupUnavailable.Error() + ": " + reason
	}
	logger.Error("[ERROR] Cleanup failed: %v\n", err)
	return failed(CleanupLabel, reason, elapsed, err)
}
