// Package preflight inspects the host before a run. It only warns; nothing
// it finds stops the run, since each install reports its own failure.
package preflight

import (
	"fmt"
	"os/exec"
	"strings"

	"github.com/hashicorp/go-version"
	"github.com/shirou/gopsutil/v3/host"

	"setup-windows/internal/logger"
)

// MinWingetVersion is the oldest winget known to accept every install flag we pass.
const MinWingetVersion = "1.4.0"

// Result is what the probe found.
type Result struct {
	OS              string
	Platform        string
	PlatformVersion string
	WingetPath      string // Empty when winget is not on PATH
	WingetVersion   string // Empty when not queried or unparseable
	Warnings        []string
}

// Probe gathers host facts. The function fields are swappable for tests.
type Probe struct {
	HostInfo      func() (*host.InfoStat, error)
	LookPath      func(file string) (string, error)
	WingetVersion func(path string) (string, error)
}

// NewProbe returns a Probe backed by gopsutil and the real winget.
func NewProbe() *Probe {
	return &Probe{
		HostInfo:      host.Info,
		LookPath:      exec.LookPath,
		WingetVersion: wingetVersion,
	}
}

// Run probes the host. With dryRun set winget is located but never executed.
func (p *Probe) Run(wingetPath string, dryRun bool) Result {
	var res Result

	if info, err := p.HostInfo(); err != nil {
		res.warn("could not read host information: %v", err)
	} else {
		res.OS, res.Platform, res.PlatformVersion = info.OS, info.Platform, info.PlatformVersion
		logger.Debug("[DEBUG] Host: %s %s %s (%s)\n", info.OS, info.Platform, info.PlatformVersion, info.KernelVersion)
		if info.OS != "windows" {
			res.warn("this tool targets Windows; detected %s", info.OS)
		}
	}

	if wingetPath == "" {
		wingetPath = "winget"
	}
	bin, err := p.LookPath(wingetPath)
	if err != nil {
		res.warn("'%s' not found on this system PATH. Package installs will fail", wingetPath)
		return res.log()
	}
	res.WingetPath = bin

	if dryRun {
		return res.log()
	}

	raw, err := p.WingetVersion(bin)
	if err != nil {
		res.warn("could not query winget version: %v", err)
		return res.log()
	}
	v, err := ParseWingetVersion(raw)
	if err != nil {
		res.warn("unrecognised winget version %q", strings.TrimSpace(raw))
		return res.log()
	}
	res.WingetVersion = v.String()
	if v.LessThan(version.Must(version.NewVersion(MinWingetVersion))) {
		res.warn("winget %s is older than %s; update App Installer from the Microsoft Store", v, MinWingetVersion)
	}
	return res.log()
}

// ParseWingetVersion parses `winget --version` output such as "v1.9.25200".
func ParseWingetVersion(out string) (*version.Version, error) {
	return version.NewVersion(strings.TrimPrefix(strings.TrimSpace(out), "v"))
}

func wingetVersion(path string) (string, error) {
	out, err := exec.Command(path, "--version").Output()
	if err != nil {
		return "", err
	}
	return string(out), nil
}

func (r *Result) warn(format string, a ...any) {
	r.Warnings = append(r.Warnings, fmt.Sprintf(format, a...))
}

func (r Result) log() Result {
	for _, w := range r.Warnings {
		logger.Warn("[WARN] %s\n", w)
	}
	return r
}
