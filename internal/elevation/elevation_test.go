package elevation

import (
	"errors"
	"io"
	"os"
	"testing"

	"github.com/fatih/color"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMain(m *testing.M) {
	color.Output = io.Discard
	os.Exit(m.Run())
}

type relaunchRecorder struct {
	calls int
	exe   string
	args  []string
	err   error
}

func (r *relaunchRecorder) relaunch(exe string, args []string) error {
	r.calls++
	r.exe, r.args = exe, args
	return r.err
}

func newTestGuard(elevated bool, rec *relaunchRecorder) *Guard {
	return &Guard{
		Check:      func() (bool, error) { return elevated, nil },
		Relaunch:   rec.relaunch,
		Executable: func() (string, error) { return `C:\tools\setup-windows.exe`, nil },
	}
}

func TestEnsureAlreadyElevated(t *testing.T) {
	rec := &relaunchRecorder{}
	state, err := newTestGuard(true, rec).Ensure([]string{"install"})

	require.NoError(t, err)
	assert.Equal(t, AlreadyElevated, state)
	assert.Zero(t, rec.calls)
}

func TestEnsureRelaunchesWithMarker(t *testing.T) {
	rec := &relaunchRecorder{}
	args := []string{"install", "--preset", "gamer"}
	state, err := newTestGuard(false, rec).Ensure(args)

	require.NoError(t, err)
	assert.Equal(t, ReElevated, state)
	assert.Equal(t, `C:\tools\setup-windows.exe`, rec.exe)
	assert.Equal(t, []string{"install", "--preset", "gamer", ElevatedMarker}, rec.args)
	assert.Equal(t, []string{"install", "--preset", "gamer"}, args, "caller args must not be modified")
}

func TestEnsureDeclined(t *testing.T) {
	rec := &relaunchRecorder{err: ErrDeclined}
	state, err := newTestGuard(false, rec).Ensure(nil)

	assert.Equal(t, ElevationDeclined, state)
	assert.ErrorIs(t, err, ErrDeclined)
}

func TestEnsureRelaunchFailure(t *testing.T) {
	rec := &relaunchRecorder{err: errors.New("no shell")}
	state, err := newTestGuard(false, rec).Ensure(nil)

	assert.Equal(t, ElevationDeclined, state)
	assert.EqualError(t, err, "no shell")
}

func TestEnsureRelaunchedChildNeverLoops(t *testing.T) {
	rec := &relaunchRecorder{}
	g := newTestGuard(false, rec)
	g.Relaunched = true

	state, err := g.Ensure([]string{"install"})
	assert.Equal(t, ElevationDeclined, state)
	assert.ErrorIs(t, err, ErrDeclined)
	assert.Zero(t, rec.calls)
}

func TestEnsureCheckErrorTreatedAsUnelevated(t *testing.T) {
	rec := &relaunchRecorder{}
	g := newTestGuard(false, rec)
	g.Check = func() (bool, error) { return false, errors.New("token unavailable") }

	state, err := g.Ensure(nil)
	require.NoError(t, err)
	assert.Equal(t, ReElevated, state)
}

func TestStateString(t *testing.T) {
	assert.Equal(t, "unchecked", Unchecked.String())
	assert.Equal(t, "declined", ElevationDeclined.String())
}
