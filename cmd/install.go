package cmd

import (
	"errors"
	"fmt"
	"io"
	"path/filepath"
	"strings"

	"github.com/fatih/color"
	"github.com/spf13/cobra"

	"setup-windows/internal/catalog"
	"setup-windows/internal/config"
	"setup-windows/internal/elevation"
	"setup-windows/internal/executor"
	"setup-windows/internal/installer"
	"setup-windows/internal/logger"
	"setup-windows/internal/plan"
	"setup-windows/internal/preflight"
	"setup-windows/internal/prompt"
	"setup-windows/internal/state"
)

// Collaborators the install command builds from config. Tests replace them.
var (
	newGuard          = elevation.NewGuard
	newProbe          = preflight.NewProbe
	isInteractive     = prompt.IsInteractive
	promptUI          = prompt.UI(prompt.HuhUI{})
	newPackageManager = func(cfg config.Config) installer.PackageManager {
		return installer.NewWinget(cfg.Winget.Path, cfg.Winget.ExtraArgs)
	}
	newCleanupTool = func(cfg config.Config) installer.CleanupTool {
		return &installer.Tron{
			Source:  cfg.Cleanup.Source,
			URL:     cfg.Cleanup.URL,
			Repo:    cfg.Cleanup.Repo,
			Asset:   cfg.Cleanup.Asset,
			Script:  cfg.Cleanup.Script,
			WorkDir: cfg.Cleanup.WorkDir,
		}
	}
)

type installOptions struct {
	selectionFlags
	dryRun   bool
	yes      bool
	elevated bool
}

// newInstallCmd defines the `install` subcommand.
// It resolves a selection, compiles it, makes sure the process is elevated
// for live runs, then executes every step and writes a run report.
func newInstallCmd(g *globalOptions) *cobra.Command {
	opts := &installOptions{}
	cmd := &cobra.Command{
		Use:   "install",
		Short: "Install a preset with winget",
		Long: "Install every package of a preset plus the chosen browser and antivirus. " +
			"Without --preset the selection is asked for interactively.",
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runInstall(cmd, g, opts)
		},
	}
	opts.bind(cmd)
	cmd.Flags().BoolVarP(&opts.dryRun, "dry-run", "n", false, "Show what would run without installing anything")
	cmd.Flags().BoolVarP(&opts.yes, "yes", "y", false, "Never prompt; fail if no preset is configured")
	cmd.Flags().BoolVar(&opts.elevated, strings.TrimPrefix(elevation.ElevatedMarker, "--"), false, "Set on the elevated relaunch")
	_ = cmd.Flags().MarkHidden(strings.TrimPrefix(elevation.ElevatedMarker, "--"))
	return cmd
}

func runInstall(cmd *cobra.Command, g *globalOptions, opts *installOptions) error {
	cfg := g.cfg

	logPath := g.logFile
	if logPath == "" {
		logPath = cfg.LogFile()
	}
	if err := logger.SetLogFile(logPath); err != nil {
		logger.Warn("[WARN] Logging to console only: %v\n", err)
	}
	// The run report sits next to whichever log file is in use.
	reportPath := cfg.ReportFile()
	if g.logFile != "" {
		reportPath = filepath.Join(filepath.Dir(g.logFile), config.ReportFileName)
	}

	sel, err := resolveSelection(cmd, cfg, opts)
	if err != nil {
		return err
	}

	p, err := plan.Compile(sel)
	if err != nil {
		return withCode(exitUsage, err)
	}

	mode := "live"
	if opts.dryRun {
		mode = "dry-run"
	}
	logger.Info("[INFO] Selection (%s):\n%s", mode, prompt.Summary(sel))
	logger.Info("[INFO] Plan with %d steps (%s):\n%s", p.Len(), planTotals(p), p)

	if last := state.LoadState(reportPath); last != nil {
		if failed := last.Failed(); len(failed) > 0 {
			logger.Info("[INFO] Previous run %s left failed steps: %s\n", last.RunID, strings.Join(failed, ", "))
		}
	}

	elev := elevation.Unchecked
	if !opts.dryRun {
		elev, err = newGuard(opts.elevated).Ensure(relaunchArgs(g, sel))
		switch elev {
		case elevation.ReElevated:
			logger.Info("[INFO] Continuing in the elevated window\n")
			return nil
		case elevation.ElevationDeclined:
			return withCode(exitNotElevated, fmt.Errorf("administrative rights are required: %w", err))
		}
	}

	// Only the process that will do the work looks at winget.
	newProbe().Run(cfg.Winget.Path, opts.dryRun)

	st := state.New(sel, opts.dryRun)
	logger.Info("[INFO] Run %s started\n", st.RunID)

	ex := executor.New(
		installer.NewPackageInstaller(newPackageManager(cfg)),
		installer.NewCleanupRunner(newCleanupTool(cfg)),
	)
	summary, err := ex.Execute(p, opts.dryRun, elev)
	if err != nil {
		return withCode(exitNotElevated, err)
	}

	printSummary(cmd.OutOrStdout(), summary)

	st.Results = summary.Results
	st.ExitCode = summary.ExitCode()
	state.SaveState(reportPath, st)

	if n := summary.Failed(); n > 0 {
		logger.Error("[ERROR] %d of %d steps failed: %s\n", n, len(summary.Results), strings.Join(st.Failed(), ", "))
		return withCode(exitStepsFailed, fmt.Errorf("%d steps failed", n))
	}
	logger.Info("[INFO] All done\n")
	return nil
}

// resolveSelection merges flags and config, falling back to the interactive
// prompt when no preset is known and a terminal is attached.
func resolveSelection(cmd *cobra.Command, cfg config.Config, opts *installOptions) (plan.Selection, error) {
	sel, err := opts.resolve(cmd, cfg.Defaults)
	if err != nil {
		return plan.Selection{}, withCode(exitUsage, err)
	}
	if sel.Preset != "" {
		return sel, nil
	}

	if opts.yes || opts.elevated || !isInteractive() {
		return plan.Selection{}, withCode(exitUsage,
			fmt.Errorf("no preset selected; pass --preset (one of %s)", presetList()))
	}

	sel, err = prompt.AskSelection(promptUI, sel)
	if errors.Is(err, prompt.ErrAborted) {
		return plan.Selection{}, withCode(exitAborted, err)
	}
	if err != nil {
		return plan.Selection{}, err
	}
	return sel, nil
}

// relaunchArgs is the command line the elevated child runs: the same global
// flags and the already resolved selection, so it never prompts again.
func relaunchArgs(g *globalOptions, sel plan.Selection) []string {
	var args []string
	if g.debug {
		args = append(args, "--debug")
	}
	if g.configPath != "" {
		args = append(args, "--config", g.configPath)
	}
	if g.logFile != "" {
		args = append(args, "--log-file", g.logFile)
	}
	args = append(args, "install", "--yes")
	return append(args, selectionArgs(sel)...)
}

// printSummary writes one colored line per step.
func printSummary(w io.Writer, s executor.Summary) {
	ok := color.New(color.FgGreen)
	skip := color.New(color.FgYellow)
	bad := color.New(color.FgRed)

	fmt.Fprintln(w, "\nSummary:")
	for _, r := range s.Results {
		switch r.Status {
		case installer.StatusSucceeded:
			ok.Fprintf(w, "  [OK]   %s\n", r.Action)
		case installer.StatusSkipped:
			skip.Fprintf(w, "  [SKIP] %s (dry run)\n", r.Action)
		default:
			bad.Fprintf(w, "  [FAIL] %s: %s\n", r.Action, r.Reason)
		}
	}
	fmt.Fprintf(w, "%d steps, %d failed\n", len(s.Results), s.Failed())
}

// planTotals summarizes p as "N packages" with a cleanup note when present.
func planTotals(p plan.Plan) string {
	totals := fmt.Sprintf("%d packages", len(p.Packages()))
	if p.HasCleanup() {
		totals += ", then cleanup"
	}
	return totals
}

func presetList() string {
	names := make([]string, 0, len(catalog.Presets()))
	for _, p := range catalog.Presets() {
		names = append(names, string(p))
	}
	return strings.Join(names, ", ")
}
