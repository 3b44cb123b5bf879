package metrics

import "sync"

// PathLimiter caps the number of distinct path labels the request counter
// will ever carry. Unbounded path cardinality in a metrics backend causes
// unbounded memory growth there and in the time-series store it feeds;
// the limiter trades "some paths are silently uncounted once the cap is
// hit" for a hard bound on attacker-controlled label growth.
//
// The policy is "first N distinct paths win": membership is monotonic for
// the lifetime of the limiter, never evicted. With maxPaths == 0 the
// limiter admits nothing and the counter is effectively disabled.
//
// The limiter gates only the request counter. The duration histogram is
// left ungated on purpose: it only ever sees resolved route templates,
// whose cardinality is bounded by the route table, while the counter also
// sees raw unmatched paths.
type PathLimiter struct {
	maxPaths int
	admitted map[string]struct{}
	mu       sync.RWMutex
}

// NewPathLimiter creates a limiter admitting at most maxPaths distinct
// paths. Negative values are treated as zero.
func NewPathLimiter(maxPaths int) *PathLimiter {
	if maxPaths < 0 {
		maxPaths = 0
	}
	return &PathLimiter{
		maxPaths: maxPaths,
		admitted: make(map[string]struct{}),
	}
}

// Admit reports whether path may be counted. A path already admitted is
// always admitted again; a new path is admitted only while the set is
// below capacity. The check-then-insert is atomic: concurrent calls can
// never push the set past capacity or admit the same new path twice.
func (l *PathLimiter) Admit(path string) bool {
	l.mu.RLock()
	if _, ok := l.admitted[path]; ok {
		l.mu.RUnlock()
		return true
	}
	l.mu.RUnlock()

	l.mu.Lock()
	defer l.mu.Unlock()

	// Double-check after acquiring the write lock.
	if _, ok := l.admitted[path]; ok {
		return true
	}

	if len(l.admitted) >= l.maxPaths {
		return false
	}

	l.admitted[path] = struct{}{}
	return true
}

// Count returns the current number of admitted paths.
func (l *PathLimiter) Count() int {
	l.mu.RLock()
	defer l.mu.RUnlock()
	return len(l.admitted)
}

// Capacity returns the configured maximum number of admitted paths.
func (l *PathLimiter) Capacity() int {
	return l.maxPaths
}

// Snapshot returns a copy of the admitted path set, for persistence.
// Order is unspecified.
func (l *PathLimiter) Snapshot() []string {
	l.mu.RLock()
	defer l.mu.RUnlock()

	paths := make([]string, 0, len(l.admitted))
	for p := range l.admitted {
		paths = append(paths, p)
	}
	return paths
}

// Restore seeds the limiter with previously admitted paths, typically
// loaded from storage at startup. Paths beyond capacity are dropped;
// duplicates are harmless. Restore is intended for use before the limiter
// starts serving requests.
func (l *PathLimiter) Restore(paths []string) {
	l.mu.Lock()
	defer l.mu.Unlock()

	for _, p := range paths {
		if len(l.admitted) >= l.maxPaths {
			return
		}
		l.admitted[p] = struct{}{}
	}
}
