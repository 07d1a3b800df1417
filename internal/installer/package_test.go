package installer

import (
	"errors"
	"fmt"
	"io"
	"os"
	"os/exec"
	"strconv"
	"testing"

	"github.com/fatih/color"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// exitCodeEnv makes the test binary act as a failing tool: it prints a line and
// exits with the code in the variable instead of running tests.
const exitCodeEnv = "SETUP_WINDOWS_FAKE_TOOL_EXIT"

func TestMain(m *testing.M) {
	if code := os.Getenv(exitCodeEnv); code != "" {
		n, _ := strconv.Atoi(code)
		fmt.Println("Installer failed with exit code:", n)
		os.Exit(n)
	}
	color.Output = io.Discard
	os.Exit(m.Run())
}

// fakeManager records calls and returns per-package errors.
type fakeManager struct {
	calls []string
	errs  map[string]error
}

func (f *fakeManager) InstallPackage(id string) error {
	f.calls = append(f.calls, id)
	return f.errs[id]
}

func TestInstallDryRunNeverCallsManager(t *testing.T) {
	m := &fakeManager{}
	res := NewPackageInstaller(m).Install("Valve.Steam", true)

	assert.Equal(t, StatusSkipped, res.Status)
	assert.Equal(t, "Valve.Steam", res.Action)
	assert.Empty(t, m.calls)
	assert.True(t, res.OK())
}

func TestInstallSucceeded(t *testing.T) {
	m := &fakeManager{}
	res := NewPackageInstaller(m).Install("Git.Git", false)

	assert.Equal(t, StatusSucceeded, res.Status)
	assert.Empty(t, res.Reason)
	assert.Equal(t, []string{"Git.Git"}, m.calls)
}

func TestInstallFailureClassification(t *testing.T) {
	tests := []struct {
		name   string
		err    error
		reason string
	}{
		{
			name:   "unavailable",
			err:    fmt.Errorf("%w: exec: \"winget\": executable file not found in %%PATH%%", ErrManagerUnavailable),
			reason: "package manager unavailable",
		},
		{
			name:   "exit code",
			err:    &ExitError{Tool: "winget", Code: 1},
			reason: "winget exited with code 1",
		},
		{
			name:   "known hresult",
			err:    &ExitError{Tool: "winget", Code: int(int32(-1978335212))},
			reason: "winget exited with code 0x8A150014 (no package found matching input criteria)",
		},
		{
			name:   "other",
			err:    errors.New("boom"),
			reason: "boom",
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			m := &fakeManager{errs: map[string]error{"7zip.7zip": tt.err}}
			res := NewPackageInstaller(m).Install("7zip.7zip", false)

			require.Equal(t, StatusFailed, res.Status)
			assert.Equal(t, tt.reason, res.Reason)
			assert.False(t, res.OK())
		})
	}
}

func TestWingetInstallArgs(t *testing.T) {
	w := NewWinget("", []string{"--scope", "machine"})
	assert.Equal(t, []string{
		"install", "--id", "Mozilla.Firefox", "--exact", "--silent",
		"--accept-source-agreements", "--accept-package-agreements",
		"--scope", "machine",
	}, w.InstallArgs("Mozilla.Firefox"))
}

func TestWingetMissingExecutableIsUnavailable(t *testing.T) {
	w := NewWinget("definitely-not-a-real-winget-binary", nil)

	err := w.InstallPackage("Git.Git")
	assert.ErrorIs(t, err, ErrManagerUnavailable)

	res := NewPackageInstaller(w).Install("Git.Git", false)
	assert.Equal(t, "package manager unavailable", res.Reason)
}

func TestWingetNonZeroExit(t *testing.T) {
	t.Setenv(exitCodeEnv, "3")
	w := NewWinget(os.Args[0], nil)

	err := w.InstallPackage("Git.Git")
	var exitErr *ExitError
	require.ErrorAs(t, err, &exitErr)
	assert.Equal(t, "winget", exitErr.Tool)
	assert.Equal(t, 3, exitErr.Code)
	assert.Contains(t, exitErr.Output, "Installer failed with exit code: 3")

	res := NewPackageInstaller(w).Install("Git.Git", false)
	require.Equal(t, StatusFailed, res.Status)
	assert.Equal(t, "winget exited with code 3", res.Reason)
	assert.Contains(t, res.Output, "Installer failed with exit code: 3")
}

func TestClassifyRunErrorStartFailure(t *testing.T) {
	startErr := &exec.Error{Name: "cmd", Err: exec.ErrNotFound}

	assert.ErrorIs(t, classifyRunError("tron", startErr, nil), ErrCleanupUnavailable)
	assert.ErrorIs(t, classifyRunError("winget", startErr, nil), ErrManagerUnavailable)

	res := NewCleanupRunner(&fakeCleanup{err: classifyRunError("tron", startErr, nil)}).Run(false)
	require.Equal(t, StatusFailed, res.Status)
	assert.Equal(t, "cleanup utility unavailable: "+startErr.Error(), res.Reason)
	assert.Empty(t, res.Output)
}

func TestStatusText(t *testing.T) {
	for _, s := range []Status{StatusSkipped, StatusSucceeded, StatusFailed} {
		b, err := s.MarshalText()
		require.NoError(t, err)
		var back Status
		require.NoError(t, back.UnmarshalText(b))
		assert.Equal(t, s, back)
	}
	var s Status
	assert.Error(t, s.UnmarshalText([]byte("exploded")))
	assert.Equal(t, "pending", s.String())
}

func TestTail(t *testing.T) {
	assert.Equal(t, "c\nd", tail("a\n\nb\nc\n  \nd\n", 2))
	assert.Equal(t, "a", tail("a", 5))
}
