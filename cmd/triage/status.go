package main

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"

	"github.com/spf13/cobra"
	"mercator-hq/triage/pkg/cli"
	"mercator-hq/triage/pkg/telemetry/health"
	"mercator-hq/triage/pkg/triage"
)

var statusFlags struct {
	protocols string
	format    string
}

var statusCmd = &cobra.Command{
	Use:   "status",
	Short: "Check that protocols load and pass their tests",
	Long: `Run health checks against the configured protocol set.

The checks confirm that the protocol path exists, that at least one
protocol loads, that every embedded protocol test passes and, when a
metrics textfile is configured, that its directory exists. Each check is
bounded by telemetry.health.check_timeout. The command fails when any
check fails.

Examples:
  triage status
  triage status --protocols protocols/ --format json`,
	RunE: func(cmd *cobra.Command, args []string) error {
		return runStatus(cmd.Context(), cmd.OutOrStdout())
	},
}

func init() {
	rootCmd.AddCommand(statusCmd)

	statusCmd.Flags().StringVarP(&statusFlags.protocols, "protocols", "p", "", "protocol file or directory (default from config)")
	statusCmd.Flags().StringVar(&statusFlags.format, "format", "text", "output format: text, json, csv")
}

func runStatus(ctx context.Context, out io.Writer) error {
	if ctx == nil {
		ctx = context.Background()
	}

	format, err := cli.ParseFormat(statusFlags.format)
	if err != nil {
		return err
	}

	cfg := currentConfig()
	logger := currentLogger()

	path := statusFlags.protocols
	if path == "" {
		path = cfg.Protocol.Path
	}

	// A load failure is reported by the checks rather than returned.
	engine, loadErr := newEngine(cfg, triage.FromConfig(cfg), path, logger)
	if engine != nil {
		defer engine.Close()
	}

	checker := health.New(cfg.Telemetry.Health.CheckTimeout)

	checker.Register("protocol_source", func(ctx context.Context) error {
		if _, err := os.Stat(path); err != nil {
			return fmt.Errorf("protocol path unavailable: %w", err)
		}
		return nil
	})

	checker.Register("protocols_loaded", func(ctx context.Context) error {
		if loadErr != nil {
			return loadErr
		}
		if engine.Status().Protocols == 0 {
			return triage.ErrNoProtocolsLoaded
		}
		return nil
	})

	checker.Register("protocol_tests", func(ctx context.Context) error {
		if loadErr != nil {
			return errors.New("protocols not loaded")
		}
		results, err := engine.RunTests(ctx)
		if err != nil {
			return err
		}
		if failed := testReport(results).failed(); failed > 0 {
			return fmt.Errorf("%d of %d test(s) failed", failed, len(results))
		}
		return nil
	})

	if textfile := cfg.Telemetry.Metrics.TextfilePath; textfile != "" {
		checker.Register("metrics_textfile", func(ctx context.Context) error {
			dir := filepath.Dir(textfile)
			info, err := os.Stat(dir)
			if err != nil {
				return fmt.Errorf("metrics directory unavailable: %w", err)
			}
			if !info.IsDir() {
				return fmt.Errorf("metrics directory %s is not a directory", dir)
			}
			return nil
		})
	}

	report := checker.Run(ctx)
	logger.Debug("health checks complete",
		"status", report.Status,
		"checks", len(report.Checks),
	)

	if err := cli.NewFormatter(format).FormatTo(out, statusReport(report)); err != nil {
		return err
	}

	if !report.Healthy() {
		failed := 0
		for _, result := range report.Checks {
			if result.Status != health.StatusOK {
				failed++
			}
		}
		return cli.NewCommandError("status", fmt.Errorf("%d of %d check(s) failed", failed, len(report.Checks)))
	}
	return nil
}

type statusReport health.Report

func (r statusReport) WriteText(w io.Writer) error {
	fmt.Fprintf(w, "Status: %s\n", r.Status)
	for _, name := range health.Report(r).Names() {
		result := r.Checks[name]
		if result.Status == health.StatusOK {
			fmt.Fprintf(w, "  ✓ %s\n", name)
			continue
		}
		fmt.Fprintf(w, "  ✗ %s: %s\n", name, result.Message)
	}
	return nil
}

func (r statusReport) Header() []string {
	return []string{"check", "status", "message", "duration_ms"}
}

func (r statusReport) Rows() [][]string {
	names := health.Report(r).Names()
	rows := make([][]string, 0, len(names))
	for _, name := range names {
		result := r.Checks[name]
		rows = append(rows, []string{
			name,
			string(result.Status),
			result.Message,
			fmt.Sprintf("%.3f", float64(result.Duration.Microseconds())/1000),
		})
	}
	return rows
}
