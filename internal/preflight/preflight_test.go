package preflight

import (
	"errors"
	"io"
	"os"
	"testing"

	"github.com/fatih/color"
	"github.com/shirou/gopsutil/v3/host"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMain(m *testing.M) {
	color.Output = io.Discard
	os.Exit(m.Run())
}

func windowsHost() (*host.InfoStat, error) {
	return &host.InfoStat{OS: "windows", Platform: "Microsoft Windows 11 Pro", PlatformVersion: "10.0.22631"}, nil
}

func TestParseWingetVersion(t *testing.T) {
	v, err := ParseWingetVersion("v1.9.25200\r\n")
	require.NoError(t, err)
	assert.Equal(t, "1.9.25200", v.String())

	_, err = ParseWingetVersion("not a version")
	assert.Error(t, err)
}

func TestRunHealthyHost(t *testing.T) {
	p := &Probe{
		HostInfo:      windowsHost,
		LookPath:      func(string) (string, error) { return `C:\winget.exe`, nil },
		WingetVersion: func(string) (string, error) { return "v1.9.25200", nil },
	}
	res := p.Run("", false)

	assert.Empty(t, res.Warnings)
	assert.Equal(t, `C:\winget.exe`, res.WingetPath)
	assert.Equal(t, "1.9.25200", res.WingetVersion)
	assert.Equal(t, "10.0.22631", res.PlatformVersion)
}

func TestRunWarnsOnOldWinget(t *testing.T) {
	p := &Probe{
		HostInfo:      windowsHost,
		LookPath:      func(string) (string, error) { return "winget", nil },
		WingetVersion: func(string) (string, error) { return "v1.2.10271", nil },
	}
	res := p.Run("winget", false)
	require.Len(t, res.Warnings, 1)
	assert.Contains(t, res.Warnings[0], "older than "+MinWingetVersion)
}

func TestRunMissingWinget(t *testing.T) {
	p := &Probe{
		HostInfo: func() (*host.InfoStat, error) { return &host.InfoStat{OS: "linux"}, nil },
		LookPath: func(string) (string, error) { return "", errors.New("not found") },
		WingetVersion: func(string) (string, error) {
			t.Fatal("winget must not run when it is missing")
			return "", nil
		},
	}
	res := p.Run("winget", false)
	assert.Len(t, res.Warnings, 2)
	assert.Empty(t, res.WingetPath)
}

func TestRunDryRunNeverExecutesWinget(t *testing.T) {
	p := &Probe{
		HostInfo: windowsHost,
		LookPath: func(string) (string, error) { return "winget", nil },
		WingetVersion: func(string) (string, error) {
			t.Fatal("dry run must not execute winget")
			return "", nil
		},
	}
	res := p.Run("winget", true)
	assert.Empty(t, res.Warnings)
	assert.Empty(t, res.WingetVersion)
}
