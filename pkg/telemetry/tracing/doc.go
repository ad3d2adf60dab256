// Package tracing records OpenTelemetry spans for triage evaluations.
//
// Spans cover protocol reloads, batches, single evaluations and the
// evaluation of each protocol within them. They are written locally by the
// stdout exporter, to stderr or to a file, so no collector is required.
//
// # Sampling Strategies
//
// Three sampling strategies are supported:
//   - always: Sample all traces
//   - never: Sample no traces
//   - ratio: Sample a fraction of traces by trace ID
//
// # Usage
//
//	tracer, err := tracing.New(&cfg.Telemetry.Tracing, version)
//	if err != nil {
//	    return err
//	}
//	defer tracer.Shutdown(context.Background())
//
//	engine, err := triage.NewEngine(engineCfg, src, logger,
//	    triage.WithTracer(tracer.Tracer()))
//
// # Attributes
//
// Attribute keys use the "triage.*" namespace. Patient names are never
// recorded on spans; only symptom counts are.
package tracing
