/*
Package cli provides helpers shared by the triage command: output
formatters, typed command errors and signal handling.

Output Formatting:

Commands render their results as text, JSON or CSV:

	format, err := cli.ParseFormat(flags.format)
	if err != nil {
		return err
	}
	if err := cli.NewFormatter(format).FormatTo(os.Stdout, report); err != nil {
		return err
	}

Values that implement TextWriter control their own text rendering, and
values that implement Tabular can be written as CSV.

Signal Handling:

Long-running commands such as watch stop on SIGINT or SIGTERM:

	ctx, stop := cli.SetupSignalHandler(cmd.Context())
	defer stop()
*/
package cli
