package installer

import (
	"errors"
	"fmt"
	"os/exec"
	"strings"

	"setup-windows/internal/logger"
)

// DefaultWingetPath is resolved through PATH.
const DefaultWingetPath = "winget"

// Winget drives the Windows Package Manager CLI.
type Winget struct {
	Path      string   // Executable name or absolute path; DefaultWingetPath when empty
	ExtraArgs []string // Appended after the standard install flags
}

// NewWinget creates a Winget using path (or DefaultWingetPath) and extra install flags.
func NewWinget(path string, extraArgs []string) *Winget {
	return &Winget{Path: path, ExtraArgs: extraArgs}
}

// InstallArgs returns the argument list used to install id.
func (w *Winget) InstallArgs(id string) []string {
	args := []string{
		"install",
		"--id", id,
		"--exact",
		"--silent",
		"--accept-source-agreements",
		"--accept-package-agreements",
	}
	return append(args, w.ExtraArgs...)
}

// InstallPackage runs `winget install` for id and waits for it to finish.
// winget's own idempotence covers packages that are already present.
func (w *Winget) InstallPackage(id string) error {
	bin, err := w.lookPath()
	if err != nil {
		return err
	}

	cmd := exec.Command(bin, w.InstallArgs(id)...)
	logger.Debug("[DEBUG] Running command: %s\n", strings.Join(cmd.Args, " "))
	output, err := cmd.CombinedOutput()
	logger.Debug("[DEBUG] winget output for %s:\n%s\n", id, output)
	if err != nil {
		return classifyRunError("winget", err, output)
	}
	return nil
}

func (w *Winget) lookPath() (string, error) {
	path := w.Path
	if path == "" {
		path = DefaultWingetPath
	}
	bin, err := exec.LookPath(path)
	if err != nil {
		return "", fmt.Errorf("%w: %v", ErrManagerUnavailable, err)
	}
	return bin, nil
}

// classifyRunError maps an exec failure to *ExitError or ErrManagerUnavailable.
func classifyRunError(tool string, err error, output []byte) error {
	var exitErr *exec.ExitError
	if errors.As(err, &exitErr) {
		return &ExitError{Tool: tool, Code: exitErr.ExitCode(), Output: tail(string(output), 20)}
	}
	var execErr *exec.Error
	if errors.As(err, &execErr) {
		if tool == "winget" {
			return fmt.Errorf("%w: %v", ErrManagerUnavailable, err)
		}
		return fmt.Errorf("%w: %v", ErrCleanupUnavailable, err)
	}
	return fmt.Errorf("%s failed: %w", tool, err)
}

// tail keeps the last n non-empty lines of s.
func tail(s string, n int) string {
	var lines []string
	for _, line := range strings.Split(s, "\n") {
		if trimmed := strings.TrimSpace(line); trimmed != "" {
			lines = append(lines, trimmed)
		}
	}
	if len(lines) > n {
		lines = lines[len(lines)-n:]
	}
	return strings.Join(lines, "\n")
}
