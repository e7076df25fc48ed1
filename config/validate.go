package config

import (
	"fmt"
	"strings"
)

// FieldError is a validation error for one configuration field.
type FieldError struct {
	// Field is the dotted path of the field (e.g. "engine.max_recursion_depth").
	Field string

	// Message is a human-readable error message.
	Message string
}

// Error returns the error message for this field error.
func (e FieldError) Error() string {
	return fmt.Sprintf("%s: %s", e.Field, e.Message)
}

// ValidationError collects every failed validation rule.
type ValidationError struct {
	Errors []FieldError
}

// Error returns a formatted string containing all validation errors.
func (e ValidationError) Error() string {
	if len(e.Errors) == 0 {
		return "configuration validation failed"
	}
	if len(e.Errors) == 1 {
		return "configuration validation failed: " + e.Errors[0].Error()
	}

	var sb strings.Builder
	fmt.Fprintf(&sb, "configuration validation failed with %d errors:\n", len(e.Errors))
	for _, err := range e.Errors {
		fmt.Fprintf(&sb, "  - %s\n", err.Error())
	}
	return sb.String()
}

// Validate checks cfg and returns a ValidationError listing every problem,
// or nil.
func Validate(cfg *Config) error {
	var errs []FieldError
	errs = append(errs, validateEngine(&cfg.Engine)...)
	errs = append(errs, validateGovernor(&cfg.Governor)...)
	errs = append(errs, validateLogging(&cfg.Logging)...)
	errs = append(errs, validateMetrics(&cfg.Metrics)...)
	if len(errs) > 0 {
		return ValidationError{Errors: errs}
	}
	return nil
}

func validateEngine(cfg *EngineConfig) []FieldError {
	var errs []FieldError
	if cfg.MaxRecursionDepth < 1 || cfg.MaxRecursionDepth > 100_000 {
		errs = append(errs, FieldError{
			Field:   "engine.max_recursion_depth",
			Message: "must be between 1 and 100000",
		})
	}
	if cfg.MaxPrefixLiterals < 1 || cfg.MaxPrefixLiterals > 1_000 {
		errs = append(errs, FieldError{
			Field:   "engine.max_prefix_literals",
			Message: "must be between 1 and 1000",
		})
	}
	return errs
}

func validateGovernor(cfg *GovernorConfig) []FieldError {
	var errs []FieldError
	if cfg.Timeout < 0 {
		errs = append(errs, FieldError{Field: "governor.timeout", Message: "must not be negative"})
	}
	if cfg.StepThreshold < 1 {
		errs = append(errs, FieldError{Field: "governor.step_threshold", Message: "must be at least 1"})
	}
	return errs
}

func validateLogging(cfg *LoggingConfig) []FieldError {
	var errs []FieldError
	switch strings.ToLower(cfg.Level) {
	case "debug", "info", "warn", "error":
	default:
		errs = append(errs, FieldError{
			Field:   "logging.level",
			Message: fmt.Sprintf("must be one of debug, info, warn, error (got %q)", cfg.Level),
		})
	}
	switch strings.ToLower(cfg.Format) {
	case "text", "json":
	default:
		errs = append(errs, FieldError{
			Field:   "logging.format",
			Message: fmt.Sprintf("must be text or json (got %q)", cfg.Format),
		})
	}
	return errs
}

func validateMetrics(cfg *MetricsConfig) []FieldError {
	var errs []FieldError
	if !validMetricName(cfg.Namespace) {
		errs = append(errs, FieldError{Field: "metrics.namespace", Message: "must be a valid metric name"})
	}
	if cfg.Subsystem != "" && !validMetricName(cfg.Subsystem) {
		errs = append(errs, FieldError{Field: "metrics.subsystem", Message: "must be a valid metric name"})
	}
	if !increasing(cfg.DurationBuckets) {
		errs = append(errs, FieldError{Field: "metrics.duration_buckets", Message: "must be strictly increasing"})
	}
	if !increasing(cfg.StepBuckets) {
		errs = append(errs, FieldError{Field: "metrics.step_buckets", Message: "must be strictly increasing"})
	}
	return errs
}

// validMetricName reports whether s matches [a-zA-Z_][a-zA-Z0-9_]*.
func validMetricName(s string) bool {
	if s == "" {
		return false
	}
	for i := 0; i < len(s); i++ {
		c := s[i]
		switch {
		case c == '_', c >= 'a' && c <= 'z', c >= 'A' && c <= 'Z':
		case c >= '0' && c <= '9' && i > 0:
		default:
			return false
		}
	}
	return true
}

func increasing(b []float64) bool {
	for i := 1; i < len(b); i++ {
		if b[i] <= b[i-1] {
			return false
		}
	}
	return true
}
