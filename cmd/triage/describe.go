package main

import (
	"fmt"
	"io"

	"github.com/spf13/cobra"
	"mercator-hq/triage/pkg/cli"
	"mercator-hq/triage/pkg/patient"
	"mercator-hq/triage/pkg/protocol/compiler"
	"mercator-hq/triage/pkg/spec"
	"mercator-hq/triage/pkg/triage"
)

var describeFlags struct {
	protocols string
	expand    bool
	format    string
}

var describeCmd = &cobra.Command{
	Use:   "describe",
	Short: "Show compiled rule expressions",
	Long: `Print every loaded protocol with its rules in evaluation order and the
boolean expression each rule compiles to.

Definitions appear by name; --expand inlines them.

Examples:
  triage describe --protocols protocols/
  triage describe --expand --format json`,
	RunE: func(cmd *cobra.Command, args []string) error {
		return describeProtocols(cmd.OutOrStdout())
	},
}

func init() {
	rootCmd.AddCommand(describeCmd)

	describeCmd.Flags().StringVarP(&describeFlags.protocols, "protocols", "p", "", "protocol file or directory (default from config)")
	describeCmd.Flags().BoolVar(&describeFlags.expand, "expand", false, "inline definitions")
	describeCmd.Flags().StringVar(&describeFlags.format, "format", "text", "output format: text, json, csv")
}

func describeProtocols(out io.Writer) error {
	format, err := cli.ParseFormat(describeFlags.format)
	if err != nil {
		return err
	}

	cfg := currentConfig()
	engine, err := newEngine(cfg, triage.FromConfig(cfg), describeFlags.protocols, currentLogger())
	if err != nil {
		return cli.NewCommandError("describe", err)
	}
	defer engine.Close()

	var report describeReport
	for _, c := range engine.Protocols() {
		report = append(report, describeProtocol(c, describeFlags.expand))
	}

	return cli.NewFormatter(format).FormatTo(out, report)
}

// ProtocolDescription is the rendered form of a compiled protocol.
type ProtocolDescription struct {
	Name         string            `json:"name"`
	Version      string            `json:"version,omitempty"`
	File         string            `json:"file,omitempty"`
	DefaultLevel string            `json:"default_level"`
	Rules        []RuleDescription `json:"rules"`
}

// RuleDescription is the rendered form of a compiled rule.
type RuleDescription struct {
	Name       string   `json:"name"`
	Level      string   `json:"level"`
	Priority   int      `json:"priority"`
	Expression string   `json:"expression"`
	Depth      int      `json:"depth"`
	Predicates []string `json:"predicates"`
}

func describeProtocol(c *compiler.Compiled, expand bool) ProtocolDescription {
	d := ProtocolDescription{
		Name:         c.Name,
		Version:      c.Version,
		File:         c.SourceFile,
		DefaultLevel: string(c.DefaultLevel),
		Rules:        make([]RuleDescription, 0, len(c.Rules)),
	}

	for _, r := range c.Rules {
		// Rule specs are labelled with the rule name; render the condition.
		expr := r.Spec
		if named, ok := r.Spec.(*spec.NamedSpec[patient.Patient]); ok {
			expr = named.Inner()
		}

		rendered := spec.Describe(expr)
		if expand {
			rendered = spec.DescribeExpanded(expr)
		}

		d.Rules = append(d.Rules, RuleDescription{
			Name:       r.Name,
			Level:      string(r.Level),
			Priority:   r.Priority,
			Expression: rendered,
			Depth:      spec.Depth(expr),
			Predicates: spec.Leaves(expr),
		})
	}
	return d
}

type describeReport []ProtocolDescription

func (r describeReport) WriteText(w io.Writer) error {
	for _, p := range r {
		fmt.Fprintf(w, "%s", p.Name)
		if p.Version != "" {
			fmt.Fprintf(w, " v%s", p.Version)
		}
		fmt.Fprintf(w, " (default: %s)\n", p.DefaultLevel)

		for _, rule := range p.Rules {
			fmt.Fprintf(w, "  [%d] %s → %s\n", rule.Priority, rule.Name, rule.Level)
			fmt.Fprintf(w, "      %s\n", rule.Expression)
		}
	}
	_, err := fmt.Fprintf(w, "\n%d protocol(s)\n", len(r))
	return err
}

func (r describeReport) Header() []string {
	return []string{"protocol", "rule", "priority", "level", "expression"}
}

func (r describeReport) Rows() [][]string {
	var rows [][]string
	for _, p := range r {
		for _, rule := range p.Rules {
			rows = append(rows, []string{p.Name, rule.Name, fmt.Sprint(rule.Priority), rule.Level, rule.Expression})
		}
	}
	return rows
}
