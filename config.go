package luapat

import (
	"log/slog"

	"github.com/coregx/luapat/governor"
	"github.com/coregx/luapat/matcher"
)

// Config controls engine behavior.
//
// Example:
//
//	config := luapat.DefaultConfig()
//	config.MaxRecursionDepth = 500 // allow deeper backtracking
//	engine, err := luapat.New(config)
type Config struct {
	// MaxRecursionDepth is the recursion budget of one match attempt.
	// Exhausting it fails the call with ComplexityExceeded.
	// Default: 200
	MaxRecursionDepth int

	// StepThreshold is the governor stride used when a call does not set
	// its own.
	// Default: 100,000
	StepThreshold uint64

	// EnablePrefilter enables literal-prefix prefiltering of start offsets
	// for ungoverned searches.
	// Default: true
	EnablePrefilter bool

	// MaxPrefixLiterals limits the number of alternative prefixes the
	// prefilter tracks.
	// Default: 64
	MaxPrefixLiterals int

	// Logger receives debug records about aborted searches and prefilter
	// selection. Nil discards them.
	Logger *slog.Logger

	// Observer is notified after every driver call. Nil disables it.
	Observer Observer
}

// DefaultConfig returns a configuration with the standard Lua limits.
func DefaultConfig() Config {
	return Config{
		MaxRecursionDepth: matcher.DefaultMaxDepth,
		StepThreshold:     governor.DefaultThreshold,
		EnablePrefilter:   true,
		MaxPrefixLiterals: 64,
	}
}

// Validate checks if the configuration is valid.
//
// Valid ranges:
//   - MaxRecursionDepth: 1 to 100,000
//   - StepThreshold: at least 1
//   - MaxPrefixLiterals: 1 to 1,000 (checked only with EnablePrefilter)
func (c Config) Validate() error {
	if c.MaxRecursionDepth < 1 || c.MaxRecursionDepth > 100_000 {
		return &ConfigError{
			Field:   "MaxRecursionDepth",
			Message: "must be between 1 and 100,000",
		}
	}
	if c.StepThreshold < 1 {
		return &ConfigError{
			Field:   "StepThreshold",
			Message: "must be at least 1",
		}
	}
	if c.EnablePrefilter {
		if c.MaxPrefixLiterals < 1 || c.MaxPrefixLiterals > 1_000 {
			return &ConfigError{
				Field:   "MaxPrefixLiterals",
				Message: "must be between 1 and 1,000",
			}
		}
	}
	return nil
}

// ConfigError represents an invalid configuration parameter.
type ConfigError struct {
	Field   string
	Message string
}

// Error implements the error interface.
func (e *ConfigError) Error() string {
	return "luapat: invalid config: " + e.Field + ": " + e.Message
}
