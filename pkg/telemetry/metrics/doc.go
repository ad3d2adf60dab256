// Package metrics provides Prometheus metrics collection for the triage
// engine.
//
// # Metrics Categories
//
//   - Evaluation Metrics: decisions by protocol, rule and level, and
//     evaluation duration
//   - Rule Metrics: per-rule hits and misses
//   - Reload Metrics: protocol reloads by result and the number of loaded
//     protocols
//
// # Usage
//
//	collector := metrics.NewCollector(&cfg.Telemetry.Metrics, nil)
//	engine, err := triage.NewEngine(engineCfg, src, logger, triage.WithRecorder(collector))
//
//	// On exit, for the node exporter textfile collector
//	if err := collector.WriteTextfile(cfg.Telemetry.Metrics.TextfilePath); err != nil {
//		...
//	}
//
// Collector satisfies the engine's Recorder interface, so the engine never
// imports this package.
//
// # Exposition
//
// There is no HTTP endpoint. Metrics are written in the Prometheus text
// format with WriteTextfile, which renames into place atomically:
//
//	# HELP triage_engine_evaluations_total Total number of triage decisions
//	# TYPE triage_engine_evaluations_total counter
//	triage_engine_evaluations_total{level="urgent",protocol="respiratory",rule="full-common-picture"} 3
//
// # Cardinality Management
//
// Rule names come from protocol files, so the collector caps the number of
// distinct protocol/rule label pairs. Pairs beyond the limit are recorded
// under the rule label "other".
package metrics
