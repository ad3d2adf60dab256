package main

import (
	"context"

	"github.com/spf13/cobra"
	"mercator-hq/triage/pkg/cli"
	"mercator-hq/triage/pkg/telemetry/metrics"
	"mercator-hq/triage/pkg/triage"
)

var watchFlags struct {
	protocols string
}

var watchCmd = &cobra.Command{
	Use:   "watch",
	Short: "Reload protocols as they change",
	Long: `Load protocols and reload them whenever a protocol file is created,
modified or removed, until interrupted.

A reload that fails keeps the previously loaded protocols. Each reload is
logged, and when telemetry.metrics.textfile_path is set the metrics file
is rewritten after every reload.

Examples:
  triage watch --protocols protocols/
  TRIAGE_TELEMETRY_LOGGING_LEVEL=debug triage watch`,
	RunE: func(cmd *cobra.Command, args []string) error {
		return runWatch(cmd.Context())
	},
}

func init() {
	rootCmd.AddCommand(watchCmd)

	watchCmd.Flags().StringVarP(&watchFlags.protocols, "protocols", "p", "", "protocol file or directory (default from config)")
}

// reloadFlusher writes the metrics textfile after every reload.
type reloadFlusher struct {
	*metrics.Collector
	flush func()
}

func (r reloadFlusher) ObserveReload(success bool, protocols int) {
	r.Collector.ObserveReload(success, protocols)
	r.flush()
}

func runWatch(parent context.Context) error {
	ctx, stop := cli.SetupSignalHandler(parent)
	defer stop()

	cfg := currentConfig()
	logger := currentLogger()

	collector := metrics.NewCollector(&cfg.Telemetry.Metrics, nil)
	rec := reloadFlusher{
		Collector: collector,
		flush:     func() { flushMetrics(cfg, collector, logger) },
	}
	defer rec.flush()

	tracer, shutdown, err := newTracer(cfg, logger)
	if err != nil {
		return cli.NewConfigError("telemetry.tracing", err.Error())
	}
	defer shutdown()

	engine, err := newEngine(cfg, triage.FromConfig(cfg), watchFlags.protocols, logger,
		triage.WithRecorder(rec),
		triage.WithTracer(tracer.Tracer()),
	)
	if err != nil {
		return cli.NewCommandError("watch", err)
	}
	defer engine.Close()

	status := engine.Status()
	logger.Info("protocols loaded",
		"protocols", status.Protocols,
		"rules", status.Rules,
	)

	if err := engine.Watch(ctx); err != nil {
		return cli.NewCommandError("watch", err)
	}
	return nil
}
