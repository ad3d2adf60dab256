package main

import (
	"context"
	"fmt"
	"io"
	"strconv"

	"github.com/spf13/cobra"
	"mercator-hq/triage/pkg/cli"
	"mercator-hq/triage/pkg/triage"
)

var testFlags struct {
	protocols string
	format    string
}

var testCmd = &cobra.Command{
	Use:   "test",
	Short: "Run the tests embedded in protocols",
	Long: `Run the test cases declared in each protocol's tests section.

Each test evaluates its patient against the protocol that declares it and
compares the level, and the rule when given, with the expectation. The
command fails when any test fails.

Examples:
  triage test --protocols protocols/
  triage test --protocols protocols/respiratory.yaml --format json`,
	RunE: func(cmd *cobra.Command, args []string) error {
		return runProtocolTests(cmd.Context(), cmd.OutOrStdout())
	},
}

func init() {
	rootCmd.AddCommand(testCmd)

	testCmd.Flags().StringVarP(&testFlags.protocols, "protocols", "p", "", "protocol file or directory (default from config)")
	testCmd.Flags().StringVar(&testFlags.format, "format", "text", "output format: text, json, csv")
}

func runProtocolTests(ctx context.Context, out io.Writer) error {
	if ctx == nil {
		ctx = context.Background()
	}

	format, err := cli.ParseFormat(testFlags.format)
	if err != nil {
		return err
	}

	cfg := currentConfig()
	logger := currentLogger()

	tracer, shutdown, err := newTracer(cfg, logger)
	if err != nil {
		return cli.NewConfigError("telemetry.tracing", err.Error())
	}
	defer shutdown()

	engine, err := newEngine(cfg, triage.FromConfig(cfg), testFlags.protocols, logger,
		triage.WithTracer(tracer.Tracer()),
	)
	if err != nil {
		return cli.NewCommandError("test", err)
	}
	defer engine.Close()

	results, err := engine.RunTests(ctx)
	if err != nil {
		return cli.NewCommandError("test", err)
	}

	report := testReport(results)
	if err := cli.NewFormatter(format).FormatTo(out, report); err != nil {
		return err
	}

	if failed := report.failed(); failed > 0 {
		return cli.NewCommandError("test", fmt.Errorf("%d of %d test(s) failed", failed, len(results)))
	}
	return nil
}

type testReport []*triage.TestResult

func (r testReport) failed() int {
	n := 0
	for _, res := range r {
		if !res.Passed {
			n++
		}
	}
	return n
}

func (r testReport) WriteText(w io.Writer) error {
	if len(r) == 0 {
		_, err := fmt.Fprintln(w, "No protocol tests found")
		return err
	}

	current := ""
	for _, res := range r {
		if res.Protocol != current {
			current = res.Protocol
			fmt.Fprintln(w, current)
		}
		if res.Passed {
			fmt.Fprintf(w, "  ✓ %s\n", res.Test)
			continue
		}
		fmt.Fprintf(w, "  ✗ %s: %s", res.Test, res.Message)
		if res.Location.IsValid() {
			fmt.Fprintf(w, " (%s)", res.Location)
		}
		fmt.Fprintln(w)
	}

	failed := r.failed()
	_, err := fmt.Fprintf(w, "\nSummary: %d passed, %d failed\n", len(r)-failed, failed)
	return err
}

func (r testReport) Header() []string {
	return []string{"protocol", "test", "passed", "message"}
}

func (r testReport) Rows() [][]string {
	rows := make([][]string, 0, len(r))
	for _, res := range r {
		rows = append(rows, []string{res.Protocol, res.Test, strconv.FormatBool(res.Passed), res.Message})
	}
	return rows
}
