package triage

import (
	"fmt"
	"time"

	"mercator-hq/triage/pkg/config"
)

// Config contains configuration for the triage engine.
type Config struct {
	// Workers bounds concurrent evaluations in EvaluateBatch.
	// Default: 4.
	Workers int

	// EnableTrace records the predicates evaluated for every rule.
	// Warning: tracing allocates per evaluation.
	// Default: false.
	EnableTrace bool

	// Strict fails protocol validation on warnings.
	// Default: false.
	Strict bool

	// MaxProtocols is the maximum number of protocols to load.
	// Default: 100.
	MaxProtocols int

	// EvaluationTimeout bounds a single Evaluate call. 0 disables it.
	// Default: 0.
	EvaluationTimeout time.Duration
}

// DefaultConfig returns the default engine configuration.
func DefaultConfig() *Config {
	return &Config{
		Workers:      config.DefaultEngineWorkers,
		MaxProtocols: config.DefaultEngineMaxProtocols,
	}
}

// FromConfig builds an engine configuration from the application
// configuration.
func FromConfig(cfg *config.Config) *Config {
	return &Config{
		Workers:           cfg.Engine.Workers,
		EnableTrace:       cfg.Engine.EnableTrace,
		Strict:            cfg.Protocol.Strict,
		MaxProtocols:      cfg.Engine.MaxProtocols,
		EvaluationTimeout: cfg.Engine.EvaluationTimeout,
	}
}

// Validate validates the engine configuration.
func (c *Config) Validate() error {
	if c.Workers <= 0 {
		return fmt.Errorf("%w: workers must be positive", ErrInvalidConfig)
	}
	if c.MaxProtocols <= 0 {
		return fmt.Errorf("%w: max protocols must be positive", ErrInvalidConfig)
	}
	if c.EvaluationTimeout < 0 {
		return fmt.Errorf("%w: evaluation timeout cannot be negative", ErrInvalidConfig)
	}
	return nil
}
