package middleware

import (
	"regexp"
	"sync"
)

// ExcludeConfig defines which resolved paths are excluded from measurement.
// The three cases are evaluated in order: literal list membership, pattern
// match, then predicate. All are optional; with none set, every path is
// measured. The predicate cannot be expressed in file configuration and is
// only available to code constructing the middleware directly.
type ExcludeConfig struct {
	// Paths excludes resolved paths by exact string equality.
	Paths []string

	// Pattern excludes resolved paths matching this regular expression.
	Pattern *regexp.Regexp

	// Func excludes resolved paths for which it returns true.
	Func func(path string) bool
}

// maxMemoEntries bounds the exclusion decision cache. Beyond the bound,
// decisions are recomputed per call instead of cached; exclusion rules are
// pure functions of the path, so recomputation is idempotent and only
// costs latency. Without a bound the cache would grow with the same
// attacker-controlled path cardinality the limiter exists to cap.
const maxMemoEntries = 10000

// exclusionMatcher decides whether a resolved path should be measured,
// memoizing one decision per distinct path. A path's decision, once
// computed, never changes: even a non-deterministic predicate is frozen at
// its first answer.
type exclusionMatcher struct {
	literals map[string]struct{}
	pattern  *regexp.Regexp
	fn       func(string) bool

	mu   sync.RWMutex
	memo map[string]bool
}

// newExclusionMatcher normalizes cfg into a matcher. The configuration is
// already shape-checked by pkg/config (string patterns compile eagerly at
// load time), so construction cannot fail here.
func newExclusionMatcher(cfg ExcludeConfig) *exclusionMatcher {
	m := &exclusionMatcher{
		pattern: cfg.Pattern,
		fn:      cfg.Func,
		memo:    make(map[string]bool),
	}
	if len(cfg.Paths) > 0 {
		m.literals = make(map[string]struct{}, len(cfg.Paths))
		for _, p := range cfg.Paths {
			m.literals[p] = struct{}{}
		}
	}
	return m
}

// ShouldMeasure reports whether path should be instrumented. It never
// fails and has no side effects beyond the memo cache.
func (m *exclusionMatcher) ShouldMeasure(path string) bool {
	m.mu.RLock()
	if v, ok := m.memo[path]; ok {
		m.mu.RUnlock()
		return v
	}
	m.mu.RUnlock()

	v := m.compute(path)

	m.mu.Lock()
	defer m.mu.Unlock()

	// A concurrent call may have cached a decision first; that one wins so
	// every caller sees the same frozen answer.
	if cached, ok := m.memo[path]; ok {
		return cached
	}
	if len(m.memo) < maxMemoEntries {
		m.memo[path] = v
	}
	return v
}

// compute evaluates the exclusion rules for a path not yet memoized.
func (m *exclusionMatcher) compute(path string) bool {
	if _, ok := m.literals[path]; ok {
		return false
	}
	if m.pattern != nil && m.pattern.MatchString(path) {
		return false
	}
	if m.fn != nil && m.fn(path) {
		return false
	}
	return true
}

// cacheSize returns the number of memoized decisions, for occupancy
// reporting.
func (m *exclusionMatcher) cacheSize() int {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return len(m.memo)
}
