// Command setup-windows installs an application preset on a fresh Windows machine.
package main

import (
	"os"

	"setup-windows/cmd"
)

func main() {
	os.Exit(cmd.Execute())
}
