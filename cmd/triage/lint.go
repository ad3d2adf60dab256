package main

import (
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"sort"

	"github.com/spf13/cobra"
	"mercator-hq/triage/pkg/cli"
	"mercator-hq/triage/pkg/protocol"
	perrors "mercator-hq/triage/pkg/protocol/errors"
)

var lintFlags struct {
	file   string
	dir    string
	strict bool
	format string
}

var lintCmd = &cobra.Command{
	Use:   "lint",
	Short: "Validate protocol files",
	Long: `Validate triage protocol files for syntax and semantic errors.

The lint command parses, validates and compiles each protocol file:
  - YAML syntax and nesting depth
  - Protocol structure (names, levels, non-empty symptom lists)
  - References between definitions, including cycles
  - Unknown symptom tags (warnings, errors with --strict)

Without --file or --dir the configured protocol path is linted.

Examples:
  # Lint single file
  triage lint --file protocols/respiratory.yaml

  # Lint directory, warnings as errors
  triage lint --dir protocols/ --strict

  # JSON output
  triage lint --dir protocols/ --format json`,
	RunE: func(cmd *cobra.Command, args []string) error {
		return lintProtocols(cmd.OutOrStdout())
	},
}

func init() {
	rootCmd.AddCommand(lintCmd)

	lintCmd.Flags().StringVarP(&lintFlags.file, "file", "f", "", "protocol file to validate")
	lintCmd.Flags().StringVarP(&lintFlags.dir, "dir", "d", "", "directory of protocol files")
	lintCmd.Flags().BoolVar(&lintFlags.strict, "strict", false, "treat warnings as errors")
	lintCmd.Flags().StringVar(&lintFlags.format, "format", "text", "output format: text, json")
}

func lintProtocols(out io.Writer) error {
	format, err := cli.ParseFormat(lintFlags.format)
	if err != nil {
		return err
	}
	if format == cli.FormatCSV {
		return cli.NewConfigError("format", "lint supports text and json output")
	}

	cfg := currentConfig()

	files, err := lintFiles(cfg.Protocol.Path)
	if err != nil {
		return cli.NewCommandError("lint", err)
	}

	opts := protocol.Options{
		Strict:      lintFlags.strict || cfg.Protocol.Strict,
		MaxDepth:    cfg.Protocol.MaxDepth,
		MaxFileSize: cfg.Protocol.MaxFileSize,
	}

	report := make(lintReport, 0, len(files))
	for _, file := range files {
		report = append(report, lintFile(file, opts))
	}

	if err := cli.NewFormatter(format).FormatTo(out, report); err != nil {
		return err
	}

	if errs := report.errorCount(); errs > 0 {
		return cli.NewCommandError("lint", fmt.Errorf("validation failed with %d error(s)", errs))
	}
	return nil
}

// lintFiles resolves --file and --dir, falling back to the configured
// protocol path.
func lintFiles(defaultPath string) ([]string, error) {
	var files []string

	if lintFlags.file != "" {
		files = append(files, lintFlags.file)
	}

	if lintFlags.dir != "" {
		matches, err := globProtocols(lintFlags.dir)
		if err != nil {
			return nil, err
		}
		files = append(files, matches...)
	}

	if lintFlags.file == "" && lintFlags.dir == "" {
		info, err := os.Stat(defaultPath)
		if err != nil {
			return nil, fmt.Errorf("either --file or --dir must be specified: %w", err)
		}
		if !info.IsDir() {
			return []string{defaultPath}, nil
		}
		matches, err := globProtocols(defaultPath)
		if err != nil {
			return nil, err
		}
		files = matches
	}

	if len(files) == 0 {
		return nil, fmt.Errorf("no protocol files found")
	}
	return files, nil
}

func globProtocols(dir string) ([]string, error) {
	var files []string
	for _, pattern := range []string{"*.yaml", "*.yml"} {
		matches, err := filepath.Glob(filepath.Join(dir, pattern))
		if err != nil {
			return nil, fmt.Errorf("failed to list protocol files: %w", err)
		}
		files = append(files, matches...)
	}
	sort.Strings(files)
	return files, nil
}

// LintResult is the validation result for a single protocol file.
type LintResult struct {
	File     string        `json:"file"`
	Protocol string        `json:"protocol,omitempty"`
	Valid    bool          `json:"valid"`
	Rules    int           `json:"rules,omitempty"`
	Errors   []LintProblem `json:"errors,omitempty"`
	Warnings []LintProblem `json:"warnings,omitempty"`
}

// LintProblem is a single error or warning.
type LintProblem struct {
	Line       int    `json:"line,omitempty"`
	Column     int    `json:"column,omitempty"`
	Message    string `json:"message"`
	Severity   string `json:"severity"`
	Type       string `json:"type,omitempty"`
	Suggestion string `json:"suggestion,omitempty"`
}

func lintFile(path string, opts protocol.Options) LintResult {
	result := LintResult{File: path, Valid: true}

	compiled, warnings, err := protocol.Load(path, opts)
	for _, w := range warnings {
		result.Warnings = append(result.Warnings, newLintProblem(w))
	}
	if err == nil {
		result.Protocol = compiled.Name
		result.Rules = len(compiled.Rules)
		return result
	}

	result.Valid = false

	var list *perrors.ErrorList
	var single *perrors.Error
	switch {
	case errors.As(err, &list):
		for _, e := range list.Errors {
			if e.IsWarning() {
				// Already reported through warnings.
				continue
			}
			result.Errors = append(result.Errors, newLintProblem(e))
		}
	case errors.As(err, &single):
		result.Errors = append(result.Errors, newLintProblem(single))
	default:
		result.Errors = append(result.Errors, LintProblem{
			Message:  err.Error(),
			Severity: string(perrors.SeverityError),
		})
	}
	return result
}

func newLintProblem(e *perrors.Error) LintProblem {
	severity := e.Severity
	if severity == "" {
		severity = perrors.SeverityError
	}
	return LintProblem{
		Line:       e.Location.Line,
		Column:     e.Location.Column,
		Message:    e.Message,
		Severity:   string(severity),
		Type:       string(e.Type),
		Suggestion: e.Suggestion,
	}
}

type lintReport []LintResult

func (r lintReport) errorCount() int {
	n := 0
	for _, res := range r {
		n += len(res.Errors)
	}
	return n
}

func (r lintReport) WriteText(w io.Writer) error {
	totalWarnings := 0

	for _, result := range r {
		fmt.Fprintf(w, "Validating %s...\n", result.File)

		if result.Valid {
			fmt.Fprintf(w, "✓ Protocol %q valid (%d rule(s))\n", result.Protocol, result.Rules)
		}
		for _, p := range result.Errors {
			fmt.Fprintf(w, "✗ Error: %s\n", p)
		}
		for _, p := range result.Warnings {
			fmt.Fprintf(w, "⚠  Warning: %s\n", p)
			totalWarnings++
		}
		fmt.Fprintln(w)
	}

	fmt.Fprintln(w, "Summary:")
	_, err := fmt.Fprintf(w, "  %d error(s), %d warning(s)\n", r.errorCount(), totalWarnings)
	return err
}

func (p LintProblem) String() string {
	s := p.Message
	if p.Line > 0 {
		s += fmt.Sprintf(" (line %d", p.Line)
		if p.Column > 0 {
			s += fmt.Sprintf(", col %d", p.Column)
		}
		s += ")"
	}
	if p.Type != "" {
		s += fmt.Sprintf(" [%s]", p.Type)
	}
	if p.Suggestion != "" {
		s += fmt.Sprintf(" - %s", p.Suggestion)
	}
	return s
}
