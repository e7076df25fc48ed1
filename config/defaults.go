package config

import (
	"github.com/coregx/luapat/governor"
	"github.com/coregx/luapat/matcher"
)

// Default values for configuration fields.
const (
	DefaultMaxRecursionDepth = matcher.DefaultMaxDepth
	DefaultEnablePrefilter   = true
	DefaultMaxPrefixLiterals = 64

	DefaultStepThreshold = governor.DefaultThreshold

	DefaultLogLevel  = "info"
	DefaultLogFormat = "text"

	DefaultMetricsNamespace = "luapat"
)

var (
	// DefaultDurationBuckets span 10µs to about 1s.
	DefaultDurationBuckets = []float64{0.00001, 0.0001, 0.001, 0.01, 0.1, 1}

	// DefaultStepBuckets span 100 to 10M steps.
	DefaultStepBuckets = []float64{100, 1_000, 10_000, 100_000, 1_000_000, 10_000_000}
)

// Default returns a configuration with every default applied.
func Default() *Config {
	cfg := &Config{}
	ApplyDefaults(cfg)
	return cfg
}

// ApplyDefaults fills the zero-valued fields of cfg.
func ApplyDefaults(cfg *Config) {
	if cfg.Engine.MaxRecursionDepth == 0 {
		cfg.Engine.MaxRecursionDepth = DefaultMaxRecursionDepth
	}
	if cfg.Engine.EnablePrefilter == nil {
		enabled := DefaultEnablePrefilter
		cfg.Engine.EnablePrefilter = &enabled
	}
	if cfg.Engine.MaxPrefixLiterals == 0 {
		cfg.Engine.MaxPrefixLiterals = DefaultMaxPrefixLiterals
	}

	if cfg.Governor.StepThreshold == 0 {
		cfg.Governor.StepThreshold = DefaultStepThreshold
	}

	if cfg.Logging.Level == "" {
		cfg.Logging.Level = DefaultLogLevel
	}
	if cfg.Logging.Format == "" {
		cfg.Logging.Format = DefaultLogFormat
	}

	if cfg.Metrics.Namespace == "" {
		cfg.Metrics.Namespace = DefaultMetricsNamespace
	}
	if len(cfg.Metrics.DurationBuckets) == 0 {
		cfg.Metrics.DurationBuckets = append([]float64(nil), DefaultDurationBuckets...)
	}
	if len(cfg.Metrics.StepBuckets) == 0 {
		cfg.Metrics.StepBuckets = append([]float64(nil), DefaultStepBuckets...)
	}
}
