package storage

import (
	"context"
	"fmt"
	"log/slog"
	"sync"
	"time"

	"github.com/robfig/cron/v3"
)

// Source is the limiter-side view the Snapshotter saves from. It is
// satisfied by *metrics.PathLimiter.
type Source interface {
	// Snapshot returns a copy of the admitted path set.
	Snapshot() []string

	// Count returns the current number of admitted paths.
	Count() int

	// Capacity returns the configured maximum number of admitted paths.
	Capacity() int
}

// Snapshotter periodically saves the admitted path set to a Store on a
// cron schedule, and logs a cardinality report on each run.
type Snapshotter struct {
	store    Store
	source   Source
	schedule string
	cron     *cron.Cron
	logger   *slog.Logger
	mu       sync.Mutex
	running  bool

	// cacheSize, when set, reports the exclusion memo occupancy for the
	// cardinality report.
	cacheSize func() int
}

// NewSnapshotter creates a snapshotter saving source into store on the
// given cron schedule. cacheSize may be nil.
func NewSnapshotter(store Store, source Source, schedule string, cacheSize func() int) *Snapshotter {
	return &Snapshotter{
		store:     store,
		source:    source,
		schedule:  schedule,
		cron:      cron.New(),
		logger:    slog.Default().With("component", "storage.snapshotter"),
		cacheSize: cacheSize,
	}
}

// Start begins scheduled snapshotting. If the schedule is empty, the
// snapshotter does nothing.
//
// Common schedule expressions:
//   - "@every 5m"   - Every five minutes
//   - "0 * * * *"   - Hourly on the hour
func (s *Snapshotter) Start(ctx context.Context) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.schedule == "" {
		s.logger.Info("snapshot schedule not configured, skipping snapshotter")
		return nil
	}

	if _, err := cron.ParseStandard(s.schedule); err != nil {
		return fmt.Errorf("invalid snapshot schedule %q: %w", s.schedule, err)
	}

	if _, err := s.cron.AddFunc(s.schedule, func() {
		s.runSnapshot(ctx)
	}); err != nil {
		return fmt.Errorf("failed to schedule snapshot: %w", err)
	}

	s.cron.Start()
	s.running = true

	s.logger.Info("snapshotter started",
		"schedule", s.schedule,
		"capacity", s.source.Capacity(),
	)

	go func() {
		<-ctx.Done()
		s.Stop()
	}()

	return nil
}

// runSnapshot executes one save cycle.
func (s *Snapshotter) runSnapshot(ctx context.Context) {
	paths := s.source.Snapshot()

	if err := s.store.Save(ctx, paths); err != nil {
		s.logger.Error("snapshot save failed",
			"error", err,
			"path_count", len(paths),
		)
		return
	}

	attrs := []any{
		"admitted_paths", s.source.Count(),
		"capacity", s.source.Capacity(),
	}
	if s.cacheSize != nil {
		attrs = append(attrs, "exclusion_cache_size", s.cacheSize())
	}
	s.logger.Info("snapshot saved", attrs...)
}

// Stop stops the scheduler and waits for a running snapshot to complete.
func (s *Snapshotter) Stop() {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.cron != nil && s.running {
		ctx := s.cron.Stop()
		<-ctx.Done()
		s.running = false
		s.logger.Info("snapshotter stopped")
	}
}

// IsRunning returns true if the snapshotter is running.
func (s *Snapshotter) IsRunning() bool {
	s.mu.Lock()
	defer s.mu.Unlock()

	return s.running
}

// NextRun returns the next scheduled snapshot time, or nil when no
// snapshot is scheduled.
func (s *Snapshotter) NextRun() *time.Time {
	s.mu.Lock()
	defer s.mu.Unlock()

	entries := s.cron.Entries()
	if len(entries) == 0 {
		return nil
	}

	next := entries[0].Next
	return &next
}
