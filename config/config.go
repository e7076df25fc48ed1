// Package config loads luapat settings from YAML files and the environment.
//
// A configuration file has four sections:
//
//	engine:
//	  max_recursion_depth: 200
//	  enable_prefilter: true
//	  max_prefix_literals: 64
//	governor:
//	  timeout: 50ms
//	  step_threshold: 100000
//	logging:
//	  level: info
//	  format: text
//	metrics:
//	  enabled: true
//	  namespace: luapat
//
// Missing fields take the defaults from defaults.go. LoadWithEnvOverrides
// additionally applies LUAPAT_SECTION_FIELD environment variables, which take
// precedence over the file.
package config

import (
	"log/slog"
	"time"

	"github.com/coregx/luapat"
)

// Config is the root configuration.
type Config struct {
	Engine   EngineConfig   `yaml:"engine"`
	Governor GovernorConfig `yaml:"governor"`
	Logging  LoggingConfig  `yaml:"logging"`
	Metrics  MetricsConfig  `yaml:"metrics"`
}

// EngineConfig mirrors the static part of luapat.Config.
type EngineConfig struct {
	// MaxRecursionDepth is the recursion budget of one match attempt.
	// Default: 200
	MaxRecursionDepth int `yaml:"max_recursion_depth"`

	// EnablePrefilter enables literal-prefix prefiltering.
	// Default: true
	EnablePrefilter *bool `yaml:"enable_prefilter"`

	// MaxPrefixLiterals limits the alternative prefixes a prefilter tracks.
	// Default: 64
	MaxPrefixLiterals int `yaml:"max_prefix_literals"`
}

// GovernorConfig sets the budget applied to every call.
type GovernorConfig struct {
	// Timeout bounds each call by wall-clock time. Zero disables it.
	// Default: 0
	Timeout time.Duration `yaml:"timeout"`

	// StepThreshold is the number of matching steps between two checks.
	// Default: 100000
	StepThreshold uint64 `yaml:"step_threshold"`
}

// LoggingConfig selects the slog handler.
type LoggingConfig struct {
	// Level is one of debug, info, warn, error.
	// Default: "info"
	Level string `yaml:"level"`

	// Format is text or json.
	// Default: "text"
	Format string `yaml:"format"`
}

// MetricsConfig configures the Prometheus collector.
type MetricsConfig struct {
	// Enabled controls whether search metrics are collected.
	// Default: false
	Enabled bool `yaml:"enabled"`

	// Namespace is the metric name prefix.
	// Default: "luapat"
	Namespace string `yaml:"namespace"`

	// Subsystem is the metric subsystem name.
	// Default: ""
	Subsystem string `yaml:"subsystem"`

	// DurationBuckets are the histogram buckets for call durations (seconds).
	DurationBuckets []float64 `yaml:"duration_buckets"`

	// StepBuckets are the histogram buckets for governor step counts.
	StepBuckets []float64 `yaml:"step_buckets"`
}

// EngineConfig converts the configuration to a luapat.Config. logger and
// observer are passed through; either may be nil.
func (c *Config) EngineConfig(logger *slog.Logger, observer luapat.Observer) luapat.Config {
	cfg := luapat.DefaultConfig()
	cfg.MaxRecursionDepth = c.Engine.MaxRecursionDepth
	cfg.MaxPrefixLiterals = c.Engine.MaxPrefixLiterals
	if c.Engine.EnablePrefilter != nil {
		cfg.EnablePrefilter = *c.Engine.EnablePrefilter
	}
	cfg.StepThreshold = c.Governor.StepThreshold
	cfg.Logger = logger
	cfg.Observer = observer
	return cfg
}

// CallOptions returns the per-call options implied by the governor section.
func (c *Config) CallOptions() []luapat.Option {
	if c.Governor.Timeout <= 0 {
		return nil
	}
	return []luapat.Option{luapat.WithTimeout(c.Governor.Timeout)}
}
