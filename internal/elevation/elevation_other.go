//go:build !windows

package elevation

import (
	"errors"
	"os"
)

// IsElevated reports whether the process runs as root.
func IsElevated() (bool, error) {
	return os.Geteuid() == 0, nil
}

// RelaunchElevated is not available off Windows.
func RelaunchElevated(exe string, args []string) error {
	return errors.New("elevated relaunch is only supported on Windows")
}
