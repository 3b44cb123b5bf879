package config

import (
	"fmt"
	"time"

	"gopkg.in/yaml.v3"
)

// Config is the root configuration structure for Callisto.
// It contains all configuration sections for the HTTP server, metrics
// collection, admitted-path storage, and logging.
type Config struct {
	// Server contains HTTP server configuration including listen address
	// and timeouts.
	Server ServerConfig `yaml:"server"`

	// Metrics contains configuration for request metrics collection
	// including the scrape route, exclusion rules, and the path
	// cardinality cap.
	Metrics MetricsConfig `yaml:"metrics"`

	// Storage contains configuration for admitted-path persistence.
	Storage StorageConfig `yaml:"storage"`

	// Logging contains structured logging configuration.
	Logging LoggingConfig `yaml:"logging"`
}

// ServerConfig contains configuration for the HTTP server.
type ServerConfig struct {
	// ListenAddress is the address and port to listen on.
	// Format: "host:port" (e.g., "127.0.0.1:8080", "0.0.0.0:8080").
	// Default: "127.0.0.1:8080"
	ListenAddress string `yaml:"listen_address"`

	// ReadTimeout is the maximum duration for reading the entire request,
	// including the body. A zero or negative value means no timeout.
	// Default: 30s
	ReadTimeout time.Duration `yaml:"read_timeout"`

	// WriteTimeout is the maximum duration before timing out writes of the
	// response. A zero or negative value means no timeout.
	// Default: 30s
	WriteTimeout time.Duration `yaml:"write_timeout"`

	// IdleTimeout is the maximum amount of time to wait for the next request
	// when keep-alives are enabled. If IdleTimeout is zero, ReadTimeout is used.
	// Default: 120s
	IdleTimeout time.Duration `yaml:"idle_timeout"`

	// ShutdownTimeout is the maximum duration to wait for graceful shutdown.
	// Default: 30s
	ShutdownTimeout time.Duration `yaml:"shutdown_timeout"`

	// MaxHeaderBytes controls the maximum number of bytes the server will
	// read parsing request headers.
	// Default: 1048576 (1MB)
	MaxHeaderBytes int `yaml:"max_header_bytes"`
}

// MetricsConfig contains configuration for request metrics collection.
type MetricsConfig struct {
	// Enabled controls whether the scrape endpoint is exposed. When false
	// the instruments are still registered but no route serves them.
	// Default: true
	Enabled bool `yaml:"enabled"`

	// Path is the route at which the Prometheus scrape output is exposed.
	// Must begin with "/" when Enabled is true.
	// Default: "/metrics"
	Path string `yaml:"path"`

	// Namespace is the Prometheus namespace for all instruments.
	// Default: "callisto"
	Namespace string `yaml:"namespace"`

	// Subsystem is the Prometheus subsystem for all instruments.
	// Default: "http"
	Subsystem string `yaml:"subsystem"`

	// DurationBuckets are the histogram bucket boundaries, in seconds,
	// for the request duration instrument.
	// Default: 0.003, 0.03, 0.1, 0.3, 1.5, 10
	DurationBuckets []float64 `yaml:"duration_buckets"`

	// ExcludePaths lists resolved paths excluded from measurement by exact
	// string match. A single YAML scalar is accepted and normalized to a
	// one-element list.
	ExcludePaths StringList `yaml:"exclude_paths"`

	// ExcludePattern is a regular expression; resolved paths matching it
	// are excluded from measurement. Compiled eagerly at load time.
	ExcludePattern string `yaml:"exclude_pattern"`

	// MaxPathsToCount caps the number of distinct path labels the request
	// counter will ever carry. Zero disables the counter for all new paths.
	// Must be >= 0. A nil value means "not set" and takes the default;
	// an explicit zero is honored.
	// Default: 200
	MaxPathsToCount *int `yaml:"max_paths_to_count"`

	// Probes configures the default process probes (Go runtime, process,
	// and build-info collectors plus the periodic runtime sampler).
	Probes ProbesConfig `yaml:"probes"`
}

// ProbesConfig configures the default process probes.
type ProbesConfig struct {
	// Enabled controls whether the default probes are registered.
	// Default: true
	Enabled bool `yaml:"enabled"`

	// Blacklist disables named probes. Recognized names: "go", "process",
	// "build_info", "runtime_sampler".
	Blacklist []string `yaml:"blacklist"`

	// Interval is the sampling interval for the runtime sampler.
	// Must be >= 1s.
	// Default: 10s
	Interval time.Duration `yaml:"interval"`
}

// StorageConfig contains configuration for admitted-path persistence.
// Persisting the admitted set keeps counter labels stable across restarts;
// without it the "first N distinct paths" are decided again by arrival order.
type StorageConfig struct {
	// Backend selects the storage backend: "memory" or "sqlite".
	// Default: "memory"
	Backend string `yaml:"backend"`

	// Path is the SQLite database file path. Required when Backend is
	// "sqlite", ignored otherwise.
	Path string `yaml:"path"`

	// SnapshotSchedule is a cron expression controlling how often the
	// admitted-path set is snapshotted to the backend.
	// Default: "@every 5m"
	SnapshotSchedule string `yaml:"snapshot_schedule"`
}

// LoggingConfig contains structured logging configuration.
type LoggingConfig struct {
	// Level is the minimum log level: "debug", "info", "warn", "error".
	// Default: "info"
	Level string `yaml:"level"`

	// Format is the log output format: "json" or "text".
	// Default: "json"
	Format string `yaml:"format"`
}

// StringList is a []string that also accepts a single YAML scalar,
// normalizing it to a one-element list.
type StringList []string

// UnmarshalYAML implements yaml.Unmarshaler.
func (s *StringList) UnmarshalYAML(value *yaml.Node) error {
	switch value.Kind {
	case yaml.ScalarNode:
		var single string
		if err := value.Decode(&single); err != nil {
			return err
		}
		*s = StringList{single}
		return nil
	case yaml.SequenceNode:
		var list []string
		if err := value.Decode(&list); err != nil {
			return err
		}
		*s = StringList(list)
		return nil
	default:
		return fmt.Errorf("exclude_paths must be a string or a list of strings")
	}
}

// MaxPaths returns the configured path cardinality cap, resolving the
// default when the field was never set. ApplyDefaults normally resolves
// this; the accessor keeps a zero-value MetricsConfig usable.
func (m *MetricsConfig) MaxPaths() int {
	if m.MaxPathsToCount == nil {
		return DefaultMaxPathsToCount
	}
	return *m.MaxPathsToCount
}
