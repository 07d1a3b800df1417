package cmd

import (
	"errors"
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"setup-windows/internal/config"
	"setup-windows/internal/logger"
)

// Process exit codes.
const (
	exitOK          = 0
	exitStepsFailed = 1
	exitUsage       = 2
	exitNotElevated = 3
	exitAborted     = 4
)

// exitError carries a specific process exit code up through cobra.
type exitError struct {
	code int
	err  error
}

func (e *exitError) Error() string { return e.err.Error() }
func (e *exitError) Unwrap() error { return e.err }

func withCode(code int, err error) error {
	return &exitError{code: code, err: err}
}

// globalOptions holds the persistent flags shared by every subcommand.
type globalOptions struct {
	debug      bool          // --debug enables debug logging
	configPath string        // --config points at an optional YAML file
	logFile    string        // --log-file overrides the configured log location
	cfg        config.Config // Loaded in PersistentPreRunE
}

// newRootCmd builds the base command for the CLI tool `setup-windows`.
func newRootCmd() *cobra.Command {
	opts := &globalOptions{}

	rootCmd := &cobra.Command{
		Use:   "setup-windows",
		Short: "Install an application preset on a fresh Windows machine",
		Long: "setup-windows installs a bundle of applications through winget, " +
			"optionally adds a browser and an antivirus, and can run the Tron cleanup script afterwards.",
		SilenceUsage:  true,
		SilenceErrors: true,

		// PersistentPreRunE runs before any subcommand: set up logging, then load config.
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			logger.Init(opts.debug)
			cfg, err := config.LoadConfig(opts.configPath)
			if err != nil {
				return withCode(exitUsage, err)
			}
			opts.cfg = cfg
			return nil
		},
	}

	rootCmd.PersistentFlags().BoolVar(&opts.debug, "debug", false, "Enable debug logging")
	rootCmd.PersistentFlags().StringVarP(&opts.configPath, "config", "c", "", "Path to an optional YAML configuration file")
	rootCmd.PersistentFlags().StringVar(&opts.logFile, "log-file", "", "Log file path (default <log.dir>/"+config.LogFileName+")")

	rootCmd.AddCommand(newInstallCmd(opts))
	rootCmd.AddCommand(newPlanCmd(opts))
	rootCmd.AddCommand(newPresetsCmd())
	return rootCmd
}

// Execute runs the CLI with os.Args and returns the process exit code.
func Execute() int {
	return run(newRootCmd(), os.Args[1:])
}

func run(rootCmd *cobra.Command, args []string) int {
	rootCmd.SetArgs(args)
	err := rootCmd.Execute()
	defer logger.Close()
	if err == nil {
		return exitOK
	}

	var ee *exitError
	if errors.As(err, &ee) {
		if ee.code != exitStepsFailed {
			logger.Error("[ERROR] %v\n", err)
		}
		return ee.code
	}
	// Anything cobra itself rejects (unknown flag, bad arg count) is a usage error.
	fmt.Fprintln(rootCmd.ErrOrStderr(), "Error:", err)
	return exitUsage
}
