package main

import (
	"context"
	"log/slog"

	"mercator-hq/triage/pkg/config"
	"mercator-hq/triage/pkg/telemetry/metrics"
	"mercator-hq/triage/pkg/telemetry/tracing"
	"mercator-hq/triage/pkg/triage"
	"mercator-hq/triage/pkg/triage/source"
)

// newFileSource builds a protocol source for path, falling back to the
// configured protocol path when path is empty.
func newFileSource(cfg *config.Config, path string, logger *slog.Logger) *source.FileSource {
	if path == "" {
		path = cfg.Protocol.Path
	}
	return source.NewFileSource(path, logger).
		WithMaxDepth(cfg.Protocol.MaxDepth).
		WithMaxFileSize(cfg.Protocol.MaxFileSize).
		WithDebounceInterval(cfg.Protocol.DebounceInterval)
}

// newEngine loads protocols from path into a new engine.
func newEngine(cfg *config.Config, engineCfg *triage.Config, path string, logger *slog.Logger, opts ...triage.Option) (*triage.Engine, error) {
	return triage.NewEngine(engineCfg, newFileSource(cfg, path, logger), logger, opts...)
}

// newTracer builds the configured tracer. The returned shutdown flushes
// pending spans and must be called before the command returns.
func newTracer(cfg *config.Config, logger *slog.Logger) (*tracing.Tracer, func(), error) {
	tracer, err := tracing.New(&cfg.Telemetry.Tracing, Version)
	if err != nil {
		return nil, nil, err
	}
	shutdown := func() {
		if err := tracer.Shutdown(context.Background()); err != nil {
			logger.Warn("failed to shut down tracer", "error", err)
		}
	}
	return tracer, shutdown, nil
}

// flushMetrics writes the collector to the configured textfile. Failures
// are logged, not returned, so they never mask the command's result.
func flushMetrics(cfg *config.Config, collector *metrics.Collector, logger *slog.Logger) {
	path := cfg.Telemetry.Metrics.TextfilePath
	if err := collector.WriteTextfile(path); err != nil {
		logger.Warn("failed to write metrics textfile", "path", path, "error", err)
	}
}
