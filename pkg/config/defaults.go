package config

import "time"

// Default values for configuration fields.
const (
	// Protocol defaults
	DefaultProtocolPath        = "./protocols"
	DefaultProtocolStrict      = false
	DefaultProtocolMaxDepth    = 16
	DefaultProtocolMaxFileSize = int64(1 << 20)
	DefaultDebounceInterval    = 100 * time.Millisecond

	// Engine defaults
	DefaultEngineWorkers      = 4
	DefaultEngineEnableTrace  = false
	DefaultEngineMaxProtocols = 100

	// Telemetry defaults
	DefaultLoggingLevel       = "info"
	DefaultLoggingFormat      = "console"
	DefaultRedactPatientNames = true
	DefaultMetricsEnabled     = true
	DefaultMetricsNamespace   = "triage"
	DefaultMetricsSubsystem   = "engine"
	DefaultTracingSampler     = "always"
	DefaultTracingSampleRatio = 1.0
	DefaultTracingExporter    = "stdout"
	DefaultTracingService     = "triage"
	DefaultHealthCheckTimeout = 5 * time.Second
)

// Default returns a configuration with every field at its default.
func Default() *Config {
	return &Config{
		Protocol: ProtocolConfig{
			Path:             DefaultProtocolPath,
			Strict:           DefaultProtocolStrict,
			MaxDepth:         DefaultProtocolMaxDepth,
			MaxFileSize:      DefaultProtocolMaxFileSize,
			DebounceInterval: DefaultDebounceInterval,
		},
		Engine: EngineConfig{
			Workers:      DefaultEngineWorkers,
			EnableTrace:  DefaultEngineEnableTrace,
			MaxProtocols: DefaultEngineMaxProtocols,
		},
		Telemetry: TelemetryConfig{
			Logging: LoggingConfig{
				Level:              DefaultLoggingLevel,
				Format:             DefaultLoggingFormat,
				RedactPatientNames: DefaultRedactPatientNames,
			},
			Metrics: MetricsConfig{
				Enabled:   DefaultMetricsEnabled,
				Namespace: DefaultMetricsNamespace,
				Subsystem: DefaultMetricsSubsystem,
			},
			Tracing: TracingConfig{
				Sampler:     DefaultTracingSampler,
				SampleRatio: DefaultTracingSampleRatio,
				Exporter:    DefaultTracingExporter,
				ServiceName: DefaultTracingService,
			},
			Health: HealthConfig{
				CheckTimeout: DefaultHealthCheckTimeout,
			},
		},
	}
}

// ApplyDefaults fills zero-valued fields with their defaults. Booleans
// cannot be told apart from an explicit false, so LoadConfig decodes on
// top of Default() instead of relying on this for them.
func ApplyDefaults(cfg *Config) {
	// Protocol defaults
	if cfg.Protocol.Path == "" {
		cfg.Protocol.Path = DefaultProtocolPath
	}
	if cfg.Protocol.MaxDepth == 0 {
		cfg.Protocol.MaxDepth = DefaultProtocolMaxDepth
	}
	if cfg.Protocol.MaxFileSize == 0 {
		cfg.Protocol.MaxFileSize = DefaultProtocolMaxFileSize
	}
	if cfg.Protocol.DebounceInterval == 0 {
		cfg.Protocol.DebounceInterval = DefaultDebounceInterval
	}

	// Engine defaults
	if cfg.Engine.Workers == 0 {
		cfg.Engine.Workers = DefaultEngineWorkers
	}
	if cfg.Engine.MaxProtocols == 0 {
		cfg.Engine.MaxProtocols = DefaultEngineMaxProtocols
	}

	// Telemetry defaults
	if cfg.Telemetry.Logging.Level == "" {
		cfg.Telemetry.Logging.Level = DefaultLoggingLevel
	}
	if cfg.Telemetry.Logging.Format == "" {
		cfg.Telemetry.Logging.Format = DefaultLoggingFormat
	}
	if cfg.Telemetry.Metrics.Namespace == "" {
		cfg.Telemetry.Metrics.Namespace = DefaultMetricsNamespace
	}
	if cfg.Telemetry.Tracing.Sampler == "" {
		cfg.Telemetry.Tracing.Sampler = DefaultTracingSampler
	}
	if cfg.Telemetry.Tracing.Exporter == "" {
		cfg.Telemetry.Tracing.Exporter = DefaultTracingExporter
	}
	if cfg.Telemetry.Tracing.ServiceName == "" {
		cfg.Telemetry.Tracing.ServiceName = DefaultTracingService
	}
	if cfg.Telemetry.Health.CheckTimeout == 0 {
		cfg.Telemetry.Health.CheckTimeout = DefaultHealthCheckTimeout
	}
}
