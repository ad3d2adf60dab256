package main

import (
	"context"
	"fmt"
	"io"
	"strings"

	"github.com/spf13/cobra"
	"mercator-hq/triage/pkg/cli"
	"mercator-hq/triage/pkg/patient"
	"mercator-hq/triage/pkg/telemetry/metrics"
	"mercator-hq/triage/pkg/triage"
)

var evaluateFlags struct {
	protocols string
	patients  string
	name      string
	symptoms  []string
	trace     bool
	format    string
}

var evaluateCmd = &cobra.Command{
	Use:   "evaluate",
	Short: "Triage patients against protocols",
	Long: `Evaluate patients against every loaded protocol and print the decided
triage level.

Patients come either from a YAML file (a single patient, a list, or several
documents) or from --name and --symptom flags. Symptom tags are matched case
insensitively and spaces or dashes are read as underscores.

Examples:
  # One patient
  triage evaluate --protocols protocols/ --name Ana --symptom fever --symptom "dry cough"

  # A file of patients with the predicates each rule evaluated
  triage evaluate --patients patients.yaml --trace

  # CSV for spreadsheets
  triage evaluate --patients patients.yaml --format csv`,
	RunE: func(cmd *cobra.Command, args []string) error {
		return runEvaluate(cmd.Context(), cmd.OutOrStdout())
	},
}

func init() {
	rootCmd.AddCommand(evaluateCmd)

	evaluateCmd.Flags().StringVarP(&evaluateFlags.protocols, "protocols", "p", "", "protocol file or directory (default from config)")
	evaluateCmd.Flags().StringVarP(&evaluateFlags.patients, "patients", "f", "", "YAML file of patients")
	evaluateCmd.Flags().StringVar(&evaluateFlags.name, "name", "", "patient name")
	evaluateCmd.Flags().StringArrayVarP(&evaluateFlags.symptoms, "symptom", "s", nil, "patient symptom (repeatable)")
	evaluateCmd.Flags().BoolVar(&evaluateFlags.trace, "trace", false, "show the predicates evaluated for each rule")
	evaluateCmd.Flags().StringVar(&evaluateFlags.format, "format", "text", "output format: text, json, csv")
}

func runEvaluate(ctx context.Context, out io.Writer) error {
	if ctx == nil {
		ctx = context.Background()
	}

	format, err := cli.ParseFormat(evaluateFlags.format)
	if err != nil {
		return err
	}

	patients, err := evaluatePatients()
	if err != nil {
		return err
	}

	cfg := currentConfig()
	logger := currentLogger()

	engineCfg := triage.FromConfig(cfg)
	engineCfg.EnableTrace = engineCfg.EnableTrace || evaluateFlags.trace

	collector := metrics.NewCollector(&cfg.Telemetry.Metrics, nil)
	defer flushMetrics(cfg, collector, logger)

	tracer, shutdown, err := newTracer(cfg, logger)
	if err != nil {
		return cli.NewConfigError("telemetry.tracing", err.Error())
	}
	defer shutdown()

	engine, err := newEngine(cfg, engineCfg, evaluateFlags.protocols, logger,
		triage.WithRecorder(collector),
		triage.WithTracer(tracer.Tracer()),
	)
	if err != nil {
		return cli.NewCommandError("evaluate", err)
	}
	defer engine.Close()

	decisions, err := engine.EvaluateBatch(ctx, patients)
	if err != nil {
		return cli.NewCommandError("evaluate", err)
	}

	return cli.NewFormatter(format).FormatTo(out, evaluationReport(decisions))
}

func evaluatePatients() ([]patient.Patient, error) {
	switch {
	case evaluateFlags.patients != "" && evaluateFlags.name != "":
		return nil, cli.NewConfigError("patients", "--patients and --name are mutually exclusive")

	case evaluateFlags.patients != "":
		patients, err := patient.LoadFile(evaluateFlags.patients)
		if err != nil {
			return nil, cli.NewCommandError("evaluate", err)
		}
		return patients, nil

	case evaluateFlags.name != "":
		set, err := patient.ParseSymptomSet(evaluateFlags.symptoms...)
		if err != nil {
			return nil, cli.NewConfigError("symptom", err.Error())
		}
		return []patient.Patient{{Name: evaluateFlags.name, Symptoms: set}}, nil

	default:
		return nil, cli.NewConfigError("patients", "either --patients or --name must be specified")
	}
}

// evaluationReport renders decisions for the formatters. JSON output is
// the decision list itself.
type evaluationReport []*triage.Decision

func (r evaluationReport) WriteText(w io.Writer) error {
	for _, d := range r {
		fmt.Fprintf(w, "%s\n", d.Patient)
		if d.Matched() {
			fmt.Fprintf(w, "  → %s (%s: %s)\n", d.Level, d.Protocol, d.Rule)
		} else {
			fmt.Fprintf(w, "  → %s (%s: default level)\n", d.Level, d.Protocol)
		}

		for _, o := range d.Outcomes {
			for _, rt := range o.Trace {
				mark := "✗"
				if rt.Matched {
					mark = "✓"
				}
				fmt.Fprintf(w, "    %s %s/%s\n", mark, o.Protocol, rt.Rule)
				for _, step := range rt.Steps {
					label := step.Name
					if label == "" {
						label = strings.ToUpper(string(step.Kind))
					}
					fmt.Fprintf(w, "      %s%s = %t\n", strings.Repeat("  ", step.Depth), label, step.Result)
				}
			}
		}
	}

	_, err := fmt.Fprintf(w, "\n%d patient(s) evaluated\n", len(r))
	return err
}

func (r evaluationReport) Header() []string {
	return []string{"id", "patient", "symptoms", "level", "protocol", "rule"}
}

func (r evaluationReport) Rows() [][]string {
	rows := make([][]string, 0, len(r))
	for _, d := range r {
		symptoms := make([]string, 0, d.Patient.Symptoms.Len())
		for _, s := range d.Patient.Symptoms.Sorted() {
			symptoms = append(symptoms, s.String())
		}
		rows = append(rows, []string{
			d.ID,
			d.Patient.Name,
			strings.Join(symptoms, ";"),
			string(d.Level),
			d.Protocol,
			d.Rule,
		})
	}
	return rows
}
