// Package storage persists the set of admitted metric paths across process
// restarts.
//
// The path-cardinality limiter admits the first N distinct paths it sees,
// so the label set a process ends up with depends on request arrival order.
// Persisting the admitted set and restoring it at startup keeps the counter
// labels stable across restarts instead of re-racing admission every boot.
//
// Two backends are provided:
//
//   - MemoryStore: keeps the snapshot in memory only. The default; suitable
//     when label stability across restarts does not matter.
//   - SQLiteStore: durable single-file storage using modernc.org/sqlite
//     (pure Go, no cgo) with WAL journaling.
//
// The Snapshotter runs the periodic save on a cron schedule and emits a
// cardinality report on each run.
package storage
