package state

import (
	"io"
	"os"
	"path/filepath"
	"testing"

	"github.com/fatih/color"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"setup-windows/internal/catalog"
	"setup-windows/internal/installer"
	"setup-windows/internal/plan"
)

func TestMain(m *testing.M) {
	color.Output = io.Discard
	os.Exit(m.Run())
}

func TestSaveAndLoadState(t *testing.T) {
	path := filepath.Join(t.TempDir(), "logs", "last-run.json")
	st := New(plan.Selection{Preset: catalog.PresetSecondaryPC, Browser: catalog.BrowserFirefox}, false)
	st.Results = []installer.StepResult{
		{Action: "7zip.7zip", Status: installer.StatusFailed, Reason: "winget exited with code 1"},
		{Action: "VideoLAN.VLC", Status: installer.StatusSucceeded},
	}
	st.ExitCode = 1

	SaveState(path, st)
	loaded := LoadState(path)
	require.NotNil(t, loaded)

	assert.Equal(t, st.RunID, loaded.RunID)
	assert.True(t, st.StartedAt.Equal(loaded.StartedAt))
	assert.Equal(t, st.Selection, loaded.Selection)
	assert.Equal(t, st.Results, loaded.Results)
	assert.Equal(t, []string{"7zip.7zip"}, loaded.Failed())

	raw, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Contains(t, string(raw), `"status": "failed"`)
	assert.Contains(t, string(raw), `"preset": "secondaryPC"`)
}

func TestNewAssignsRunID(t *testing.T) {
	a := New(plan.Selection{}, true)
	b := New(plan.Selection{}, true)
	_, err := uuid.Parse(a.RunID)
	require.NoError(t, err)
	assert.NotEqual(t, a.RunID, b.RunID)
	assert.True(t, a.DryRun)
}

func TestLoadStateMissingOrCorrupt(t *testing.T) {
	dir := t.TempDir()
	assert.Nil(t, LoadState(filepath.Join(dir, "missing.json")))

	bad := filepath.Join(dir, "bad.json")
	require.NoError(t, os.WriteFile(bad, []byte("{not json"), 0644))
	assert.Nil(t, LoadState(bad))
}
