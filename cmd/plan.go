package cmd

import (
	"fmt"

	"github.com/spf13/cobra"
	"gopkg.in/yaml.v3"

	"setup-windows/internal/plan"
)

// planOutput is the YAML document printed by `plan --output yaml`.
type planOutput struct {
	Selection plan.Selection `yaml:"selection"`
	Plan      plan.Plan      `yaml:",inline"`
}

// newPlanCmd defines the `plan` subcommand, which compiles a selection and
// prints the steps `install` would run. Nothing is executed.
func newPlanCmd(g *globalOptions) *cobra.Command {
	var flags selectionFlags
	var output string

	cmd := &cobra.Command{
		Use:   "plan",
		Short: "Print the steps install would run for a selection",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			sel, err := flags.resolve(cmd, g.cfg.Defaults)
			if err != nil {
				return withCode(exitUsage, err)
			}
			if sel.Preset == "" {
				return withCode(exitUsage, fmt.Errorf("no preset selected; pass --preset (one of %s)", presetList()))
			}

			p, err := plan.Compile(sel)
			if err != nil {
				return withCode(exitUsage, err)
			}

			w := cmd.OutOrStdout()
			switch output {
			case "text":
				fmt.Fprint(w, p)
				fmt.Fprintln(w, planTotals(p))
			case "yaml":
				out, err := yaml.Marshal(planOutput{Selection: sel, Plan: p})
				if err != nil {
					return err
				}
				_, _ = w.Write(out)
			default:
				return withCode(exitUsage, fmt.Errorf("unknown output format %q (valid: text, yaml)", output))
			}
			return nil
		},
	}
	flags.bind(cmd)
	cmd.Flags().StringVarP(&output, "output", "o", "text", "Output format: text or yaml")
	return cmd
}
