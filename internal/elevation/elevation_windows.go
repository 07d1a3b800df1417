//go:build windows

package elevation

import (
	"errors"
	"fmt"
	"os"
	"strings"

	"golang.org/x/sys/windows"
)

// IsElevated verifies whether the current process token is a member of the
// local Administrators group. Under UAC the filtered token of an unelevated
// admin carries the group as deny-only, which reports false here.
func IsElevated() (bool, error) {
	var adminSid *windows.SID
	err := windows.AllocateAndInitializeSid(
		&windows.SECURITY_NT_AUTHORITY,
		2,
		windows.SECURITY_BUILTIN_DOMAIN_RID,
		windows.DOMAIN_ALIAS_RID_ADMINS,
		0, 0, 0, 0, 0, 0,
		&adminSid)
	if err != nil {
		return false, err
	}
	defer windows.FreeSid(adminSid)

	token := windows.Token(0)
	return token.IsMember(adminSid)
}

// RelaunchElevated starts exe with the "runas" verb, which shows the UAC prompt.
func RelaunchElevated(exe string, args []string) error {
	quoted := make([]string, len(args))
	for i, a := range args {
		quoted[i] = windows.EscapeArg(a)
	}

	cwd, _ := os.Getwd()
	verbPtr, _ := windows.UTF16PtrFromString("runas")
	exePtr, err := windows.UTF16PtrFromString(exe)
	if err != nil {
		return err
	}
	argPtr, err := windows.UTF16PtrFromString(strings.Join(quoted, " "))
	if err != nil {
		return err
	}
	cwdPtr, _ := windows.UTF16PtrFromString(cwd)

	err = windows.ShellExecute(0, verbPtr, exePtr, argPtr, cwdPtr, windows.SW_NORMAL)
	if errors.Is(err, windows.ERROR_CANCELLED) {
		return ErrDeclined
	}
	if err != nil {
		return fmt.Errorf("ShellExecute runas failed: %w", err)
	}
	return nil
}
