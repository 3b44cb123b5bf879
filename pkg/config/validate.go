package config

import (
	"fmt"
	"regexp"
	"strings"
	"time"

	"github.com/robfig/cron/v3"
)

// FieldError represents a validation error for a specific configuration field.
type FieldError struct {
	// Field is the dotted path to the configuration field (e.g., "metrics.path").
	Field string

	// Message is a human-readable error message.
	Message string
}

// Error returns the error message for this field error.
func (e FieldError) Error() string {
	return fmt.Sprintf("%s: %s", e.Field, e.Message)
}

// ValidationError represents one or more validation errors in a configuration.
// It implements the error interface and provides access to all field errors.
type ValidationError struct {
	// Errors contains all validation errors found in the configuration.
	Errors []FieldError
}

// Error returns a formatted string containing all validation errors.
func (e ValidationError) Error() string {
	if len(e.Errors) == 0 {
		return "configuration validation failed"
	}
	if len(e.Errors) == 1 {
		return fmt.Sprintf("configuration validation failed: %s", e.Errors[0].Error())
	}

	var sb strings.Builder
	sb.WriteString(fmt.Sprintf("configuration validation failed with %d errors:\n", len(e.Errors)))
	for _, err := range e.Errors {
		sb.WriteString(fmt.Sprintf("  - %s\n", err.Error()))
	}
	return sb.String()
}

// recognizedProbes are the probe names accepted in metrics.probes.blacklist.
var recognizedProbes = map[string]bool{
	"go":              true,
	"process":         true,
	"build_info":      true,
	"runtime_sampler": true,
}

// metricNameRe matches valid Prometheus metric name components.
var metricNameRe = regexp.MustCompile(`^[a-zA-Z_][a-zA-Z0-9_]*$`)

// Validate validates the entire configuration and returns a ValidationError
// if any validation rules fail. It returns nil if the configuration is valid.
// All validation errors are collected and returned together.
func Validate(cfg *Config) error {
	var errs []FieldError

	errs = append(errs, validateServer(&cfg.Server)...)
	errs = append(errs, validateMetrics(&cfg.Metrics)...)
	errs = append(errs, validateStorage(&cfg.Storage)...)
	errs = append(errs, validateLogging(&cfg.Logging)...)

	if len(errs) > 0 {
		return ValidationError{Errors: errs}
	}

	return nil
}

// validateServer validates the server configuration section.
func validateServer(cfg *ServerConfig) []FieldError {
	var errs []FieldError

	if cfg.ListenAddress == "" {
		errs = append(errs, FieldError{
			Field:   "server.listen_address",
			Message: "must not be empty",
		})
	} else if !strings.Contains(cfg.ListenAddress, ":") {
		errs = append(errs, FieldError{
			Field:   "server.listen_address",
			Message: fmt.Sprintf("must be in host:port format, got %q", cfg.ListenAddress),
		})
	}

	if cfg.MaxHeaderBytes < 0 {
		errs = append(errs, FieldError{
			Field:   "server.max_header_bytes",
			Message: "must not be negative",
		})
	}

	return errs
}

// validateMetrics validates the metrics configuration section.
func validateMetrics(cfg *MetricsConfig) []FieldError {
	var errs []FieldError

	if cfg.Enabled && !strings.HasPrefix(cfg.Path, "/") {
		errs = append(errs, FieldError{
			Field:   "metrics.path",
			Message: fmt.Sprintf("must begin with \"/\", got %q", cfg.Path),
		})
	}

	if cfg.Namespace != "" && !metricNameRe.MatchString(cfg.Namespace) {
		errs = append(errs, FieldError{
			Field:   "metrics.namespace",
			Message: fmt.Sprintf("invalid Prometheus namespace %q", cfg.Namespace),
		})
	}
	if cfg.Subsystem != "" && !metricNameRe.MatchString(cfg.Subsystem) {
		errs = append(errs, FieldError{
			Field:   "metrics.subsystem",
			Message: fmt.Sprintf("invalid Prometheus subsystem %q", cfg.Subsystem),
		})
	}

	for i := 1; i < len(cfg.DurationBuckets); i++ {
		if cfg.DurationBuckets[i] <= cfg.DurationBuckets[i-1] {
			errs = append(errs, FieldError{
				Field:   "metrics.duration_buckets",
				Message: "bucket boundaries must be strictly increasing",
			})
			break
		}
	}

	for _, p := range cfg.ExcludePaths {
		if p == "" {
			errs = append(errs, FieldError{
				Field:   "metrics.exclude_paths",
				Message: "entries must not be empty",
			})
			break
		}
	}

	if cfg.ExcludePattern != "" {
		if _, err := regexp.Compile(cfg.ExcludePattern); err != nil {
			errs = append(errs, FieldError{
				Field:   "metrics.exclude_pattern",
				Message: fmt.Sprintf("invalid regular expression: %v", err),
			})
		}
	}

	if cfg.MaxPathsToCount != nil && *cfg.MaxPathsToCount < 0 {
		errs = append(errs, FieldError{
			Field:   "metrics.max_paths_to_count",
			Message: fmt.Sprintf("must not be negative, got %d", *cfg.MaxPathsToCount),
		})
	}

	errs = append(errs, validateProbes(&cfg.Probes)...)

	return errs
}

// validateProbes validates the default-probe configuration.
func validateProbes(cfg *ProbesConfig) []FieldError {
	var errs []FieldError

	for _, name := range cfg.Blacklist {
		if !recognizedProbes[name] {
			errs = append(errs, FieldError{
				Field:   "metrics.probes.blacklist",
				Message: fmt.Sprintf("unrecognized probe name %q", name),
			})
		}
	}

	if cfg.Enabled && cfg.Interval < time.Second {
		errs = append(errs, FieldError{
			Field:   "metrics.probes.interval",
			Message: fmt.Sprintf("must be at least 1s, got %s", cfg.Interval),
		})
	}

	return errs
}

// validateStorage validates the storage configuration section.
func validateStorage(cfg *StorageConfig) []FieldError {
	var errs []FieldError

	switch cfg.Backend {
	case "memory":
	case "sqlite":
		if cfg.Path == "" {
			errs = append(errs, FieldError{
				Field:   "storage.path",
				Message: "required when backend is \"sqlite\"",
			})
		}
	default:
		errs = append(errs, FieldError{
			Field:   "storage.backend",
			Message: fmt.Sprintf("must be \"memory\" or \"sqlite\", got %q", cfg.Backend),
		})
	}

	if cfg.SnapshotSchedule != "" {
		if _, err := cron.ParseStandard(cfg.SnapshotSchedule); err != nil {
			errs = append(errs, FieldError{
				Field:   "storage.snapshot_schedule",
				Message: fmt.Sprintf("invalid cron expression %q: %v", cfg.SnapshotSchedule, err),
			})
		}
	}

	return errs
}

// validateLogging validates the logging configuration section.
func validateLogging(cfg *LoggingConfig) []FieldError {
	var errs []FieldError

	switch cfg.Level {
	case "debug", "info", "warn", "error":
	default:
		errs = append(errs, FieldError{
			Field:   "logging.level",
			Message: fmt.Sprintf("must be one of debug, info, warn, error; got %q", cfg.Level),
		})
	}

	switch cfg.Format {
	case "json", "text":
	default:
		errs = append(errs, FieldError{
			Field:   "logging.format",
			Message: fmt.Sprintf("must be \"json\" or \"text\", got %q", cfg.Format),
		})
	}

	return errs
}
