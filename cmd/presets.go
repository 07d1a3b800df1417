package cmd

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"setup-windows/internal/catalog"
)

// newPresetsCmd lists every preset with its packages, then the browser and
// antivirus choices.
func newPresetsCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "presets",
		Short: "List presets, browsers and antivirus vendors",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			w := cmd.OutOrStdout()

			fmt.Fprintln(w, "Presets:")
			for _, p := range catalog.Presets() {
				pkgs, err := catalog.PackagesForPreset(p)
				if err != nil {
					return err
				}
				ids := make([]string, len(pkgs))
				for i, id := range pkgs {
					ids[i] = string(id)
				}
				if len(ids) == 0 {
					ids = []string{"(nothing)"}
				}
				fmt.Fprintf(w, "  %-13s %s\n", p, strings.Join(ids, ", "))
			}

			fmt.Fprintln(w, "Browsers:")
			for _, b := range catalog.Browsers() {
				id, err := catalog.PackageForBrowser(b)
				if err != nil {
					return err
				}
				if id == "" {
					id = "(preinstalled)"
				}
				fmt.Fprintf(w, "  %-13s %s\n", b, id)
			}

			fmt.Fprintln(w, "Antivirus vendors:")
			for _, a := range catalog.Antiviruses() {
				id, err := catalog.PackageForAntivirus(a)
				if err != nil {
					return err
				}
				suffix := ""
				if a == catalog.DefaultAntivirus {
					suffix = " (default)"
				}
				fmt.Fprintf(w, "  %-13s %s%s\n", a, id, suffix)
			}
			return nil
		},
	}
}
