// Package config provides configuration management for Callisto.
//
// This package handles loading, validating, and managing configuration from
// YAML files with environment variable overrides. It provides a type-safe
// configuration system with eager validation and sensible defaults: an
// invalid configuration is rejected before any request is ever processed,
// and nothing revalidates at request time.
//
// # Configuration Loading
//
// Configuration can be loaded in two ways:
//
//  1. From a YAML file only:
//     cfg, err := config.Load("config.yaml")
//
//  2. From a YAML file with environment variable overrides:
//     cfg, err := config.LoadWithEnvOverrides("config.yaml")
//
// # Environment Variable Overrides
//
// Environment variables follow the naming convention CALLISTO_SECTION_FIELD.
// For example:
//
//   - CALLISTO_SERVER_LISTEN_ADDRESS overrides server.listen_address
//   - CALLISTO_METRICS_MAX_PATHS_TO_COUNT overrides metrics.max_paths_to_count
//   - CALLISTO_LOGGING_LEVEL overrides logging.level
//
// Environment variables always take precedence over file-based configuration.
//
// # Configuration Precedence
//
// Configuration values are applied in the following order (later overrides
// earlier):
//
//  1. Default values (defined in defaults.go)
//  2. Values from YAML file
//  3. Environment variable overrides
//  4. Validation (fails fast if invalid)
//
// # Change Notification
//
// There is no runtime reconfiguration. The optional Watcher notifies when
// the configuration file changes on disk so the operator can be told a
// restart is required; it never reloads anything.
package config
