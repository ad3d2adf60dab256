package main

import (
	"fmt"
	"log/slog"
	"os"

	"github.com/spf13/cobra"
	"mercator-hq/triage/pkg/cli"
	"mercator-hq/triage/pkg/config"
	"mercator-hq/triage/pkg/telemetry/logging"
)

var (
	// Global flags
	cfgFile string
	verbose bool
)

var rootCmd = &cobra.Command{
	Use:   "triage",
	Short: "Triage - rule-driven patient triage",
	Long: `Triage evaluates patients against declarative triage protocols.

A protocol names reusable symptom predicates and combines them with
all/any/not into prioritised rules. The first matching rule of each
protocol decides its level, and the most severe level across protocols
wins:
  emergency > urgent > less_urgent > non_urgent

Configuration is read from --config and TRIAGE_* environment variables.`,
	Version:           Version,
	SilenceUsage:      true,
	SilenceErrors:     true,
	PersistentPreRunE: setupRuntime,
}

// Execute runs the root command.
func Execute() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(cli.ExitCode(err))
	}
}

func init() {
	// Global persistent flags (available to all subcommands)
	rootCmd.PersistentFlags().StringVarP(&cfgFile, "config", "c", "", "config file path (defaults when empty)")
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "verbose output")
}

var appLogger *slog.Logger

// setupRuntime loads the configuration and builds the logger shared by
// every subcommand.
func setupRuntime(cmd *cobra.Command, args []string) error {
	cfg, err := config.LoadConfigWithEnvOverrides(cfgFile)
	if err != nil {
		return cli.NewConfigError("config", err.Error())
	}
	if verbose {
		cfg.Telemetry.Logging.Level = "debug"
	}
	config.SetConfig(cfg)

	logger, err := logging.New(logging.FromConfig(cfg.Telemetry.Logging))
	if err != nil {
		return cli.NewConfigError("telemetry.logging", err.Error())
	}
	appLogger = logger.Slog()
	return nil
}

// currentConfig returns the loaded configuration, or the defaults when
// setupRuntime has not run.
func currentConfig() *config.Config {
	if cfg := config.GetConfig(); cfg != nil {
		return cfg
	}
	return config.Default()
}

func currentLogger() *slog.Logger {
	if appLogger != nil {
		return appLogger
	}
	return slog.Default()
}
