package installer

import (
	"errors"
	"time"

	"setup-windows/internal/catalog"
	"setup-windows/internal/logger"
)

// PackageManager installs one package and reports failure as an error.
// Implementations return an error wrapping ErrManagerUnavailable when the tool
// cannot be started and an *ExitError when it ran and exited non-zero.
type PackageManager interface {
	InstallPackage(id string) error
}

// PackageInstaller turns package manager outcomes into step results.
type PackageInstaller struct {
	Manager PackageManager
}

// NewPackageInstaller creates a PackageInstaller backed by m.
func NewPackageInstaller(m PackageManager) *PackageInstaller {
	return &PackageInstaller{Manager: m}
}

// Install installs id once, synchronously. With dryRun set the manager is never called.
// Failures are returned as data so the caller can continue with the next package.
func (p *PackageInstaller) Install(id catalog.PackageID, dryRun bool) StepResult {
	label := string(id)
	if dryRun {
		logger.Info("[INFO] (dry-run) Would install %s\n", label)
		return skipped(label)
	}

	logger.Info("[INFO] Installing %s...\n", label)
	start := time.Now()
	err := p.Manager.InstallPackage(label)
	elapsed := time.Since(start)

	if err == nil {
		logger.Info("[INFO] Installed %s successfully.\n", label)
		return succeeded(label, elapsed)
	}

	reason := err.Error()
	if errors.Is(err, ErrManagerUnavailable) {
		reason = ErrManagerUnavailable.Error()
	}
	logger.Error("[ERROR] Failed to install %s: %v\n", label, err)
	res := failed(label, reason, elapsed, err)
	if res.Output != "" {
		logger.Error("[ERROR] winget output:\n%s\n", res.Output)
	}
	return res
}
