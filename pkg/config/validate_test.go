package config

import (
	"strings"
	"testing"
	"time"
)

func TestValidate_ValidConfig(t *testing.T) {
	cfg := DefaultConfig()

	err := Validate(cfg)
	if err != nil {
		t.Errorf("expected valid config to pass validation, got error: %v", err)
	}
}

func TestValidate_MultipleErrors(t *testing.T) {
	cfg := &Config{
		// Empty listen address, unknown storage backend, empty logging
		// level and format: at least four errors.
		Storage: StorageConfig{Backend: "etcd"},
	}

	err := Validate(cfg)
	if err == nil {
		t.Fatal("expected validation to fail")
	}

	validationErr, ok := err.(ValidationError)
	if !ok {
		t.Fatalf("expected ValidationError, got %T", err)
	}

	if len(validationErr.Errors) < 2 {
		t.Errorf("expected multiple errors, got %d", len(validationErr.Errors))
	}

	errMsg := validationErr.Error()
	if !strings.Contains(errMsg, "validation failed with") {
		t.Errorf("error message should mention multiple errors: %s", errMsg)
	}
}

func TestValidate_MetricsConfig(t *testing.T) {
	negative := -1
	zero := 0

	tests := []struct {
		name       string
		mutate     func(cfg *Config)
		wantError  bool
		errorField string
	}{
		{
			name:      "defaults are valid",
			mutate:    func(cfg *Config) {},
			wantError: false,
		},
		{
			name: "scrape path without leading slash",
			mutate: func(cfg *Config) {
				cfg.Metrics.Path = "metrics"
			},
			wantError:  true,
			errorField: "metrics.path",
		},
		{
			name: "scrape path ignored when disabled",
			mutate: func(cfg *Config) {
				cfg.Metrics.Enabled = false
				cfg.Metrics.Path = "metrics"
			},
			wantError: false,
		},
		{
			name: "invalid namespace",
			mutate: func(cfg *Config) {
				cfg.Metrics.Namespace = "9bad-name"
			},
			wantError:  true,
			errorField: "metrics.namespace",
		},
		{
			name: "non-increasing buckets",
			mutate: func(cfg *Config) {
				cfg.Metrics.DurationBuckets = []float64{0.1, 0.1, 1}
			},
			wantError:  true,
			errorField: "metrics.duration_buckets",
		},
		{
			name: "empty exclude path entry",
			mutate: func(cfg *Config) {
				cfg.Metrics.ExcludePaths = StringList{"/health", ""}
			},
			wantError:  true,
			errorField: "metrics.exclude_paths",
		},
		{
			name: "invalid exclude pattern",
			mutate: func(cfg *Config) {
				cfg.Metrics.ExcludePattern = "^(unclosed"
			},
			wantError:  true,
			errorField: "metrics.exclude_pattern",
		},
		{
			name: "negative max paths",
			mutate: func(cfg *Config) {
				cfg.Metrics.MaxPathsToCount = &negative
			},
			wantError:  true,
			errorField: "metrics.max_paths_to_count",
		},
		{
			name: "zero max paths is allowed",
			mutate: func(cfg *Config) {
				cfg.Metrics.MaxPathsToCount = &zero
			},
			wantError: false,
		},
		{
			name: "unrecognized probe name",
			mutate: func(cfg *Config) {
				cfg.Metrics.Probes.Blacklist = []string{"go", "eventloop"}
			},
			wantError:  true,
			errorField: "metrics.probes.blacklist",
		},
		{
			name: "probe interval below one second",
			mutate: func(cfg *Config) {
				cfg.Metrics.Probes.Interval = 500 * time.Millisecond
			},
			wantError:  true,
			errorField: "metrics.probes.interval",
		},
		{
			name: "short probe interval ignored when probes disabled",
			mutate: func(cfg *Config) {
				cfg.Metrics.Probes.Enabled = false
				cfg.Metrics.Probes.Interval = 500 * time.Millisecond
			},
			wantError: false,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := DefaultConfig()
			tt.mutate(cfg)

			err := Validate(cfg)
			if !tt.wantError {
				if err != nil {
					t.Errorf("unexpected validation error: %v", err)
				}
				return
			}

			if err == nil {
				t.Fatal("expected validation to fail")
			}
			if !strings.Contains(err.Error(), tt.errorField) {
				t.Errorf("error should mention %q, got: %v", tt.errorField, err)
			}
		})
	}
}

func TestValidate_StorageConfig(t *testing.T) {
	tests := []struct {
		name       string
		storage    StorageConfig
		wantError  bool
		errorField string
	}{
		{
			name:      "memory backend",
			storage:   StorageConfig{Backend: "memory", SnapshotSchedule: "@every 5m"},
			wantError: false,
		},
		{
			name:      "sqlite backend with path",
			storage:   StorageConfig{Backend: "sqlite", Path: "data/paths.db", SnapshotSchedule: "0 3 * * *"},
			wantError: false,
		},
		{
			name:       "sqlite backend without path",
			storage:    StorageConfig{Backend: "sqlite"},
			wantError:  true,
			errorField: "storage.path",
		},
		{
			name:       "unknown backend",
			storage:    StorageConfig{Backend: "redis"},
			wantError:  true,
			errorField: "storage.backend",
		},
		{
			name:       "invalid cron expression",
			storage:    StorageConfig{Backend: "memory", SnapshotSchedule: "every five minutes"},
			wantError:  true,
			errorField: "storage.snapshot_schedule",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := DefaultConfig()
			cfg.Storage = tt.storage

			err := Validate(cfg)
			if !tt.wantError {
				if err != nil {
					t.Errorf("unexpected validation error: %v", err)
				}
				return
			}

			if err == nil {
				t.Fatal("expected validation to fail")
			}
			if !strings.Contains(err.Error(), tt.errorField) {
				t.Errorf("error should mention %q, got: %v", tt.errorField, err)
			}
		})
	}
}

func TestValidate_LoggingConfig(t *testing.T) {
	cfg := DefaultConfig()
	cfg.Logging.Level = "verbose"
	cfg.Logging.Format = "xml"

	err := Validate(cfg)
	if err == nil {
		t.Fatal("expected validation to fail")
	}
	if !strings.Contains(err.Error(), "logging.level") {
		t.Errorf("error should mention logging.level, got: %v", err)
	}
	if !strings.Contains(err.Error(), "logging.format") {
		t.Errorf("error should mention logging.format, got: %v", err)
	}
}
