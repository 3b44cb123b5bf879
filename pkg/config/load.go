package config

import (
	"fmt"
	"os"
	"strconv"
	"time"

	"gopkg.in/yaml.v3"
)

// Load loads configuration from a YAML file at the specified path.
// It applies default values, validates the configuration, and returns any
// errors. Validation failures are reported eagerly here; nothing downstream
// revalidates at request time.
func Load(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read configuration file %q: %w", path, err)
	}

	// Pre-seed boolean fields whose default is true; absent YAML fields
	// keep the seed, present fields override it.
	var cfg Config
	cfg.Metrics.Enabled = DefaultMetricsEnabled
	cfg.Metrics.Probes.Enabled = DefaultProbesEnabled

	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return nil, fmt.Errorf("failed to parse configuration file %q: %w", path, err)
	}

	ApplyDefaults(&cfg)

	if err := Validate(&cfg); err != nil {
		return nil, fmt.Errorf("configuration validation failed: %w", err)
	}

	return &cfg, nil
}

// LoadWithEnvOverrides loads configuration from a YAML file and applies
// environment variable overrides. Environment variables follow the naming
// convention CALLISTO_SECTION_FIELD (e.g., CALLISTO_SERVER_LISTEN_ADDRESS)
// and always take precedence over file-based configuration.
//
// The loading sequence is:
//  1. Load YAML from file
//  2. Apply default values
//  3. Apply environment variable overrides
//  4. Validate final configuration
func LoadWithEnvOverrides(path string) (*Config, error) {
	cfg, err := Load(path)
	if err != nil {
		return nil, err
	}

	applyEnvOverrides(cfg)

	if err := Validate(cfg); err != nil {
		return nil, fmt.Errorf("configuration validation failed after environment overrides: %w", err)
	}

	return cfg, nil
}

// applyEnvOverrides applies environment variable overrides to the
// configuration. Environment variables use the format CALLISTO_SECTION_FIELD.
func applyEnvOverrides(cfg *Config) {
	// Server overrides
	if val := os.Getenv("CALLISTO_SERVER_LISTEN_ADDRESS"); val != "" {
		cfg.Server.ListenAddress = val
	}
	if val := os.Getenv("CALLISTO_SERVER_READ_TIMEOUT"); val != "" {
		if d, err := time.ParseDuration(val); err == nil {
			cfg.Server.ReadTimeout = d
		}
	}
	if val := os.Getenv("CALLISTO_SERVER_WRITE_TIMEOUT"); val != "" {
		if d, err := time.ParseDuration(val); err == nil {
			cfg.Server.WriteTimeout = d
		}
	}
	if val := os.Getenv("CALLISTO_SERVER_IDLE_TIMEOUT"); val != "" {
		if d, err := time.ParseDuration(val); err == nil {
			cfg.Server.IdleTimeout = d
		}
	}

	// Metrics overrides
	if val := os.Getenv("CALLISTO_METRICS_ENABLED"); val != "" {
		if b, err := strconv.ParseBool(val); err == nil {
			cfg.Metrics.Enabled = b
		}
	}
	if val := os.Getenv("CALLISTO_METRICS_PATH"); val != "" {
		cfg.Metrics.Path = val
	}
	if val := os.Getenv("CALLISTO_METRICS_MAX_PATHS_TO_COUNT"); val != "" {
		if i, err := strconv.Atoi(val); err == nil {
			cfg.Metrics.MaxPathsToCount = &i
		}
	}
	if val := os.Getenv("CALLISTO_METRICS_PROBES_ENABLED"); val != "" {
		if b, err := strconv.ParseBool(val); err == nil {
			cfg.Metrics.Probes.Enabled = b
		}
	}
	if val := os.Getenv("CALLISTO_METRICS_PROBES_INTERVAL"); val != "" {
		if d, err := time.ParseDuration(val); err == nil {
			cfg.Metrics.Probes.Interval = d
		}
	}

	// Storage overrides
	if val := os.Getenv("CALLISTO_STORAGE_BACKEND"); val != "" {
		cfg.Storage.Backend = val
	}
	if val := os.Getenv("CALLISTO_STORAGE_PATH"); val != "" {
		cfg.Storage.Path = val
	}

	// Logging overrides
	if val := os.Getenv("CALLISTO_LOGGING_LEVEL"); val != "" {
		cfg.Logging.Level = val
	}
	if val := os.Getenv("CALLISTO_LOGGING_FORMAT"); val != "" {
		cfg.Logging.Format = val
	}
}
