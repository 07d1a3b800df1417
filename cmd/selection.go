package cmd

import (
	"strconv"

	"github.com/spf13/cobra"

	"setup-windows/internal/catalog"
	"setup-windows/internal/config"
	"setup-windows/internal/plan"
)

// selectionFlags are the flags that pick what gets installed.
type selectionFlags struct {
	preset          string
	browser         string
	antivirus       bool
	antivirusVendor string
	cleanup         bool
}

func (f *selectionFlags) bind(cmd *cobra.Command) {
	cmd.Flags().StringVarP(&f.preset, "preset", "p", "", "Preset to install (see `setup-windows presets`)")
	cmd.Flags().StringVarP(&f.browser, "browser", "b", "", "Browser to add: edge, chrome, firefox, firefox-nightly")
	cmd.Flags().BoolVar(&f.antivirus, "antivirus", false, "Also install an antivirus")
	cmd.Flags().StringVar(&f.antivirusVendor, "antivirus-vendor", "", "Antivirus vendor: malwarebytes, avast, bitdefender")
	cmd.Flags().BoolVar(&f.cleanup, "cleanup", false, "Run the Tron cleanup script after installing")
}

// resolve merges flags over config defaults. Flags the user did not set keep the
// configured value. The preset is left empty when neither source names one.
func (f *selectionFlags) resolve(cmd *cobra.Command, def config.Defaults) (plan.Selection, error) {
	pick := func(name, flagVal, cfgVal string) string {
		if cmd.Flags().Changed(name) {
			return flagVal
		}
		return cfgVal
	}
	pickBool := func(name string, flagVal, cfgVal bool) bool {
		if cmd.Flags().Changed(name) {
			return flagVal
		}
		return cfgVal
	}

	var sel plan.Selection
	if raw := pick("preset", f.preset, def.Preset); raw != "" {
		p, err := catalog.ParsePreset(raw)
		if err != nil {
			return plan.Selection{}, err
		}
		sel.Preset = p
	}

	b, err := catalog.ParseBrowser(pick("browser", f.browser, def.Browser))
	if err != nil {
		return plan.Selection{}, err
	}
	sel.Browser = b

	sel.Antivirus = pickBool("antivirus", f.antivirus, def.Antivirus)
	if sel.Antivirus || cmd.Flags().Changed("antivirus-vendor") {
		a, err := catalog.ParseAntivirus(pick("antivirus-vendor", f.antivirusVendor, def.AntivirusVendor))
		if err != nil {
			return plan.Selection{}, err
		}
		sel.AntivirusVendor = a
	}

	sel.Cleanup = pickBool("cleanup", f.cleanup, def.Cleanup)
	return sel, nil
}

// selectionArgs renders sel back into install flags, for the elevated relaunch.
func selectionArgs(sel plan.Selection) []string {
	args := []string{
		"--preset", string(sel.Preset),
		"--browser", string(sel.Browser),
		"--antivirus=" + strconv.FormatBool(sel.Antivirus),
		"--cleanup=" + strconv.FormatBool(sel.Cleanup),
	}
	if sel.AntivirusVendor != "" {
		args = append(args, "--antivirus-vendor", string(sel.AntivirusVendor))
	}
	return args
}
