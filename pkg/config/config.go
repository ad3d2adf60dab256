package config

import "time"

// Config is the root configuration structure.
type Config struct {
	// Protocol configures where protocols are loaded from and how they are
	// checked.
	Protocol ProtocolConfig `yaml:"protocol"`

	// Engine configures evaluation.
	Engine EngineConfig `yaml:"engine"`

	// Telemetry configures logging and metrics.
	Telemetry TelemetryConfig `yaml:"telemetry"`
}

// ProtocolConfig configures protocol loading.
type ProtocolConfig struct {
	// Path is a protocol file or a directory of .yaml/.yml files.
	// Default: "./protocols"
	Path string `yaml:"path" validate:"required"`

	// Strict treats validation warnings as errors.
	// Default: false
	Strict bool `yaml:"strict"`

	// MaxDepth bounds condition nesting.
	// Default: 16
	MaxDepth int `yaml:"max_depth" validate:"gte=1,lte=64"`

	// MaxFileSize bounds protocol files in bytes.
	// Default: 1MB
	MaxFileSize int64 `yaml:"max_file_size" validate:"gt=0"`

	// DebounceInterval is the quiet period before a watched change
	// triggers a reload.
	// Default: 100ms
	DebounceInterval time.Duration `yaml:"debounce_interval" validate:"gte=0"`
}

// EngineConfig configures the triage engine.
type EngineConfig struct {
	// Workers bounds concurrent evaluations in a batch.
	// Default: 4
	Workers int `yaml:"workers" validate:"gte=1,lte=1024"`

	// EnableTrace records which predicates were evaluated for each rule.
	// Default: false
	EnableTrace bool `yaml:"enable_trace"`

	// MaxProtocols bounds the number of loaded protocols.
	// Default: 100
	MaxProtocols int `yaml:"max_protocols" validate:"gte=1"`

	// EvaluationTimeout bounds a single evaluation; 0 disables it.
	// Default: 0
	EvaluationTimeout time.Duration `yaml:"evaluation_timeout" validate:"gte=0"`
}

// TelemetryConfig contains configuration for observability.
type TelemetryConfig struct {
	// Logging contains logging configuration.
	Logging LoggingConfig `yaml:"logging"`

	// Metrics contains metrics collection configuration.
	Metrics MetricsConfig `yaml:"metrics"`

	// Tracing contains span export configuration.
	Tracing TracingConfig `yaml:"tracing"`

	// Health contains health check configuration.
	Health HealthConfig `yaml:"health"`
}

// LoggingConfig contains logging configuration.
type LoggingConfig struct {
	// Level is the minimum log level to emit.
	// Options: "debug", "info", "warn", "error"
	// Default: "info"
	Level string `yaml:"level" validate:"oneof=debug info warn error"`

	// Format controls the log output format.
	// Options: "json", "text", "console"
	// Default: "console"
	Format string `yaml:"format" validate:"oneof=json text console"`

	// AddSource includes file and line number in log entries.
	// Default: false
	AddSource bool `yaml:"add_source"`

	// RedactPatientNames masks patient names and contact details in logs.
	// Default: true
	RedactPatientNames bool `yaml:"redact_patient_names"`

	// RedactPatterns contains additional redaction patterns.
	RedactPatterns []RedactPattern `yaml:"redact_patterns" validate:"dive"`
}

// RedactPattern defines a custom redaction pattern.
type RedactPattern struct {
	// Name is a descriptive name for the pattern.
	Name string `yaml:"name" validate:"required"`

	// Pattern is the regular expression to match.
	Pattern string `yaml:"pattern" validate:"required,regexp"`

	// Replacement is the string to replace matches with.
	Replacement string `yaml:"replacement"`
}

// MetricsConfig contains metrics collection configuration.
type MetricsConfig struct {
	// Enabled controls whether metrics are collected.
	// Default: true
	Enabled bool `yaml:"enabled"`

	// Namespace is the metric name prefix.
	// Default: "triage"
	Namespace string `yaml:"namespace" validate:"required,metricname"`

	// Subsystem is the metric subsystem name.
	// Default: "engine"
	Subsystem string `yaml:"subsystem" validate:"omitempty,metricname"`

	// TextfilePath is where the CLI writes metrics in the Prometheus text
	// format on exit, for the node exporter textfile collector. Empty
	// disables writing.
	TextfilePath string `yaml:"textfile_path"`

	// DurationBuckets defines histogram buckets for evaluation duration
	// in seconds.
	// Default: exponential from 1µs to 16ms
	DurationBuckets []float64 `yaml:"duration_buckets" validate:"dive,gt=0"`
}

// TracingConfig contains OpenTelemetry tracing configuration. Spans are
// written locally; there is no remote exporter.
type TracingConfig struct {
	// Enabled controls whether spans are recorded.
	// Default: false
	Enabled bool `yaml:"enabled"`

	// Sampler determines the sampling strategy.
	// Options: "always", "never", "ratio"
	// Default: "always"
	Sampler string `yaml:"sampler" validate:"oneof=always never ratio"`

	// SampleRatio is the fraction of traces to sample (0.0 to 1.0).
	// Only used when Sampler is "ratio".
	// Default: 1.0
	SampleRatio float64 `yaml:"sample_ratio" validate:"gte=0,lte=1"`

	// Exporter determines the span exporter.
	// Options: "stdout"
	// Default: "stdout"
	Exporter string `yaml:"exporter" validate:"oneof=stdout"`

	// OutputPath is the file spans are written to. Empty writes to stderr.
	OutputPath string `yaml:"output_path"`

	// ServiceName is recorded on every span's resource.
	// Default: "triage"
	ServiceName string `yaml:"service_name" validate:"required"`
}

// HealthConfig contains health check configuration.
type HealthConfig struct {
	// CheckTimeout bounds each individual check.
	// Default: 5s
	CheckTimeout time.Duration `yaml:"check_timeout" validate:"gte=0"`
}
