package config

import (
	"bytes"
	"errors"
	"fmt"
	"io"
	"os"
	"strconv"
	"time"

	"gopkg.in/yaml.v3"
)

// EnvPrefix is the prefix of environment overrides.
const EnvPrefix = "LUAPAT_"

// Load reads the YAML file at path, applies defaults and validates the result.
// An empty path yields the defaults.
func Load(path string) (*Config, error) {
	if path == "" {
		return Default(), nil
	}
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read configuration file %q: %w", path, err)
	}
	cfg, err := Parse(data)
	if err != nil {
		return nil, fmt.Errorf("configuration file %q: %w", path, err)
	}
	return cfg, nil
}

// Parse decodes YAML configuration data, applies defaults and validates it.
// Unknown fields are rejected.
func Parse(data []byte) (*Config, error) {
	var cfg Config
	if err := decode(data, &cfg); err != nil {
		return nil, err
	}
	ApplyDefaults(&cfg)
	if err := Validate(&cfg); err != nil {
		return nil, err
	}
	return &cfg, nil
}

func decode(data []byte, cfg *Config) error {
	dec := yaml.NewDecoder(bytes.NewReader(data))
	dec.KnownFields(true)
	// An empty document leaves every field to the defaults.
	if err := dec.Decode(cfg); err != nil && !errors.Is(err, io.EOF) {
		return fmt.Errorf("failed to parse configuration: %w", err)
	}
	return nil
}

// LoadWithEnvOverrides loads path like Load and then applies LUAPAT_*
// environment variables. The loading sequence is:
//  1. Load YAML from file (or defaults when path is empty)
//  2. Apply environment variable overrides
//  3. Validate the final configuration
func LoadWithEnvOverrides(path string) (*Config, error) {
	cfg, err := Load(path)
	if err != nil {
		return nil, err
	}
	if err := applyEnvOverrides(cfg, os.LookupEnv); err != nil {
		return nil, err
	}
	if err := Validate(cfg); err != nil {
		return nil, fmt.Errorf("configuration invalid after environment overrides: %w", err)
	}
	return cfg, nil
}

// applyEnvOverrides applies LUAPAT_SECTION_FIELD variables. Malformed values
// are collected into a ValidationError.
func applyEnvOverrides(cfg *Config, lookup func(string) (string, bool)) error {
	var errs []FieldError
	env := func(name string) (string, bool) {
		v, ok := lookup(EnvPrefix + name)
		return v, ok && v != ""
	}
	parseInt := func(name string, dst *int) {
		if v, ok := env(name); ok {
			i, err := strconv.Atoi(v)
			if err != nil {
				errs = append(errs, FieldError{Field: EnvPrefix + name, Message: "must be an integer"})
				return
			}
			*dst = i
		}
	}

	parseInt("ENGINE_MAX_RECURSION_DEPTH", &cfg.Engine.MaxRecursionDepth)
	parseInt("ENGINE_MAX_PREFIX_LITERALS", &cfg.Engine.MaxPrefixLiterals)
	if v, ok := env("ENGINE_ENABLE_PREFILTER"); ok {
		b, err := strconv.ParseBool(v)
		if err != nil {
			errs = append(errs, FieldError{Field: EnvPrefix + "ENGINE_ENABLE_PREFILTER", Message: "must be a boolean"})
		} else {
			cfg.Engine.EnablePrefilter = &b
		}
	}

	if v, ok := env("GOVERNOR_TIMEOUT"); ok {
		d, err := time.ParseDuration(v)
		if err != nil {
			errs = append(errs, FieldError{Field: EnvPrefix + "GOVERNOR_TIMEOUT", Message: "must be a duration"})
		} else {
			cfg.Governor.Timeout = d
		}
	}
	if v, ok := env("GOVERNOR_STEP_THRESHOLD"); ok {
		n, err := strconv.ParseUint(v, 10, 64)
		if err != nil {
			errs = append(errs, FieldError{Field: EnvPrefix + "GOVERNOR_STEP_THRESHOLD", Message: "must be a non-negative integer"})
		} else {
			cfg.Governor.StepThreshold = n
		}
	}

	if v, ok := env("LOGGING_LEVEL"); ok {
		cfg.Logging.Level = v
	}
	if v, ok := env("LOGGING_FORMAT"); ok {
		cfg.Logging.Format = v
	}

	if v, ok := env("METRICS_ENABLED"); ok {
		b, err := strconv.ParseBool(v)
		if err != nil {
			errs = append(errs, FieldError{Field: EnvPrefix + "METRICS_ENABLED", Message: "must be a boolean"})
		} else {
			cfg.Metrics.Enabled = b
		}
	}
	if v, ok := env("METRICS_NAMESPACE"); ok {
		cfg.Metrics.Namespace = v
	}
	if v, ok := env("METRICS_SUBSYSTEM"); ok {
		cfg.Metrics.Subsystem = v
	}

	if len(errs) > 0 {
		return ValidationError{Errors: errs}
	}
	return nil
}
