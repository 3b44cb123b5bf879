package config

import "time"

// Default values for configuration fields.
const (
	// Server defaults
	DefaultListenAddress   = "127.0.0.1:8080"
	DefaultReadTimeout     = 30 * time.Second
	DefaultWriteTimeout    = 30 * time.Second
	DefaultIdleTimeout     = 120 * time.Second
	DefaultShutdownTimeout = 30 * time.Second
	DefaultMaxHeaderBytes  = 1048576 // 1MB

	// Metrics defaults
	DefaultMetricsEnabled  = true
	DefaultMetricsPath     = "/metrics"
	DefaultNamespace       = "callisto"
	DefaultSubsystem       = "http"
	DefaultMaxPathsToCount = 200

	// Probe defaults
	DefaultProbesEnabled = true
	DefaultProbeInterval = 10 * time.Second

	// Storage defaults
	DefaultStorageBackend  = "memory"
	DefaultSnapshotEnabled = true
	DefaultSnapshotCron    = "@every 5m"

	// Logging defaults
	DefaultLogLevel  = "info"
	DefaultLogFormat = "json"
)

// DefaultDurationBuckets are the histogram bucket boundaries, in seconds,
// for the request duration instrument. Tuned for interactive API latencies
// from a few milliseconds up to ten seconds.
func DefaultDurationBuckets() []float64 {
	return []float64{0.003, 0.03, 0.1, 0.3, 1.5, 10}
}

// DefaultConfig returns a configuration with all default values applied.
func DefaultConfig() *Config {
	cfg := &Config{}
	cfg.Metrics.Enabled = DefaultMetricsEnabled
	cfg.Metrics.Probes.Enabled = DefaultProbesEnabled
	ApplyDefaults(cfg)
	return cfg
}

// ApplyDefaults fills in default values for any unset configuration fields.
// It modifies the configuration in place. Boolean fields that default to
// true are handled by the loader (see Load), since a zero value is
// indistinguishable from an explicit false after unmarshaling.
func ApplyDefaults(cfg *Config) {
	// Server defaults
	if cfg.Server.ListenAddress == "" {
		cfg.Server.ListenAddress = DefaultListenAddress
	}
	if cfg.Server.ReadTimeout == 0 {
		cfg.Server.ReadTimeout = DefaultReadTimeout
	}
	if cfg.Server.WriteTimeout == 0 {
		cfg.Server.WriteTimeout = DefaultWriteTimeout
	}
	if cfg.Server.IdleTimeout == 0 {
		cfg.Server.IdleTimeout = DefaultIdleTimeout
	}
	if cfg.Server.ShutdownTimeout == 0 {
		cfg.Server.ShutdownTimeout = DefaultShutdownTimeout
	}
	if cfg.Server.MaxHeaderBytes == 0 {
		cfg.Server.MaxHeaderBytes = DefaultMaxHeaderBytes
	}

	// Metrics defaults
	if cfg.Metrics.Path == "" {
		cfg.Metrics.Path = DefaultMetricsPath
	}
	if cfg.Metrics.Namespace == "" {
		cfg.Metrics.Namespace = DefaultNamespace
	}
	if cfg.Metrics.Subsystem == "" {
		cfg.Metrics.Subsystem = DefaultSubsystem
	}
	if len(cfg.Metrics.DurationBuckets) == 0 {
		cfg.Metrics.DurationBuckets = DefaultDurationBuckets()
	}
	if cfg.Metrics.MaxPathsToCount == nil {
		max := DefaultMaxPathsToCount
		cfg.Metrics.MaxPathsToCount = &max
	}
	if cfg.Metrics.Probes.Interval == 0 {
		cfg.Metrics.Probes.Interval = DefaultProbeInterval
	}

	// Storage defaults
	if cfg.Storage.Backend == "" {
		cfg.Storage.Backend = DefaultStorageBackend
	}
	if cfg.Storage.SnapshotSchedule == "" {
		cfg.Storage.SnapshotSchedule = DefaultSnapshotCron
	}

	// Logging defaults
	if cfg.Logging.Level == "" {
		cfg.Logging.Level = DefaultLogLevel
	}
	if cfg.Logging.Format == "" {
		cfg.Logging.Format = DefaultLogFormat
	}
}
