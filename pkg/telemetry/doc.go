// Package telemetry groups the observability packages used by the triage
// engine and CLI.
//
// # Components
//
//   - logging: structured slog logging with patient-name redaction
//   - metrics: Prometheus collectors for evaluations, rules and reloads,
//     written to a textfile
//   - tracing: OpenTelemetry spans for reloads and evaluations, exported
//     to a local file
//   - health: concurrent component checks behind `triage status`
//
// # Usage
//
//	cfg := config.GetConfig()
//
//	logger, _ := logging.New(logging.FromConfig(cfg.Telemetry.Logging))
//	collector := metrics.NewCollector(&cfg.Telemetry.Metrics, nil)
//	tracer, _ := tracing.New(&cfg.Telemetry.Tracing, version)
//	defer tracer.Shutdown(context.Background())
//
//	engine, _ := triage.NewEngine(triage.FromConfig(cfg), src, logger.Slog(),
//	    triage.WithRecorder(collector),
//	    triage.WithTracer(tracer.Tracer()),
//	)
//
// No component opens a network listener; metrics and spans go to files.
package telemetry
