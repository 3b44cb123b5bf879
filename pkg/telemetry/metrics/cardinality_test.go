package metrics

import (
	"fmt"
	"sync"
	"testing"
)

func TestPathLimiter_Admit(t *testing.T) {
	limiter := NewPathLimiter(2)

	if !limiter.Admit("/a") {
		t.Error(`Admit("/a") = false, want true`)
	}
	if !limiter.Admit("/b") {
		t.Error(`Admit("/b") = false, want true`)
	}
	if limiter.Admit("/c") {
		t.Error(`Admit("/c") = true, want false (at capacity)`)
	}
	if !limiter.Admit("/a") {
		t.Error(`Admit("/a") = false for already-admitted path, want true`)
	}
	if got := limiter.Count(); got != 2 {
		t.Errorf("Count() = %d, want 2", got)
	}
}

func TestPathLimiter_ReadmissionDoesNotGrowSet(t *testing.T) {
	limiter := NewPathLimiter(5)

	for i := 0; i < 100; i++ {
		if !limiter.Admit("/same") {
			t.Fatal("already-admitted path must stay admitted")
		}
	}
	if got := limiter.Count(); got != 1 {
		t.Errorf("Count() = %d after repeated admits of one path, want 1", got)
	}
}

func TestPathLimiter_ZeroCapacity(t *testing.T) {
	limiter := NewPathLimiter(0)

	if limiter.Admit("/anything") {
		t.Error("zero-capacity limiter must never admit")
	}
	if got := limiter.Count(); got != 0 {
		t.Errorf("Count() = %d, want 0", got)
	}
}

func TestPathLimiter_NegativeCapacityTreatedAsZero(t *testing.T) {
	limiter := NewPathLimiter(-3)

	if limiter.Admit("/x") {
		t.Error("negative-capacity limiter must never admit")
	}
	if got := limiter.Capacity(); got != 0 {
		t.Errorf("Capacity() = %d, want 0", got)
	}
}

func TestPathLimiter_ConcurrentAdmission(t *testing.T) {
	const (
		capacity      = 100
		distinctPaths = 150
		workers       = 8
	)

	limiter := NewPathLimiter(capacity)

	var wg sync.WaitGroup
	for w := 0; w < workers; w++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for i := 0; i < distinctPaths; i++ {
				limiter.Admit(fmt.Sprintf("/path/%d", i))
			}
		}()
	}
	wg.Wait()

	if got := limiter.Count(); got != capacity {
		t.Errorf("Count() = %d after concurrent admission of %d distinct paths, want exactly %d",
			got, distinctPaths, capacity)
	}

	// Every admitted path must remain admitted; every path that lost the
	// race must remain denied.
	admitted := 0
	for i := 0; i < distinctPaths; i++ {
		if limiter.Admit(fmt.Sprintf("/path/%d", i)) {
			admitted++
		}
	}
	if admitted != capacity {
		t.Errorf("re-admission count = %d, want %d", admitted, capacity)
	}
}

func TestPathLimiter_SnapshotRestore(t *testing.T) {
	limiter := NewPathLimiter(3)
	limiter.Admit("/a")
	limiter.Admit("/b")

	snap := limiter.Snapshot()
	if len(snap) != 2 {
		t.Fatalf("Snapshot() returned %d paths, want 2", len(snap))
	}

	restored := NewPathLimiter(3)
	restored.Restore(snap)

	if !restored.Admit("/a") || !restored.Admit("/b") {
		t.Error("restored paths must be admitted")
	}
	if !restored.Admit("/c") {
		t.Error("restored limiter should still have one free slot")
	}
	if restored.Admit("/d") {
		t.Error("restored limiter at capacity must deny new paths")
	}
}

func TestPathLimiter_RestoreTruncatesBeyondCapacity(t *testing.T) {
	limiter := NewPathLimiter(2)
	limiter.Restore([]string{"/a", "/b", "/c", "/d"})

	if got := limiter.Count(); got != 2 {
		t.Errorf("Count() = %d after over-capacity restore, want 2", got)
	}
}
