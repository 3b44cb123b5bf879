package storage

import (
	"context"
	"path/filepath"
	"sort"
	"testing"
)

// newTestSQLiteStore creates a store backed by a temp-dir database file.
func newTestSQLiteStore(t *testing.T) *SQLiteStore {
	t.Helper()

	dbPath := filepath.Join(t.TempDir(), "callisto.db")
	store, err := NewSQLiteStore(dbPath)
	if err != nil {
		t.Fatalf("NewSQLiteStore failed: %v", err)
	}
	t.Cleanup(func() {
		if err := store.Close(); err != nil {
			t.Errorf("Close failed: %v", err)
		}
	})
	return store
}

func sorted(paths []string) []string {
	out := make([]string, len(paths))
	copy(out, paths)
	sort.Strings(out)
	return out
}

func TestMemoryStore_SaveAndLoad(t *testing.T) {
	store := NewMemoryStore()
	ctx := context.Background()

	loaded, err := store.Load(ctx)
	if err != nil {
		t.Fatalf("Load failed: %v", err)
	}
	if len(loaded) != 0 {
		t.Errorf("expected empty set from fresh store, got %v", loaded)
	}

	paths := []string{"/orders/{id}", "/users/{id}", "/health"}
	if err := store.Save(ctx, paths); err != nil {
		t.Fatalf("Save failed: %v", err)
	}

	loaded, err = store.Load(ctx)
	if err != nil {
		t.Fatalf("Load failed: %v", err)
	}
	if len(loaded) != len(paths) {
		t.Fatalf("loaded %d paths, want %d", len(loaded), len(paths))
	}

	// Mutating the loaded slice must not affect the store.
	loaded[0] = "/mutated"
	again, _ := store.Load(ctx)
	for _, p := range again {
		if p == "/mutated" {
			t.Error("store shares memory with loaded slice")
		}
	}
}

func TestSQLiteStore_SaveAndLoad(t *testing.T) {
	store := newTestSQLiteStore(t)
	ctx := context.Background()

	paths := []string{"/orders/{id}", "/users/{id}", "/health"}
	if err := store.Save(ctx, paths); err != nil {
		t.Fatalf("Save failed: %v", err)
	}

	loaded, err := store.Load(ctx)
	if err != nil {
		t.Fatalf("Load failed: %v", err)
	}

	want := sorted(paths)
	got := sorted(loaded)
	if len(got) != len(want) {
		t.Fatalf("loaded %d paths, want %d", len(got), len(want))
	}
	for i := range want {
		if got[i] != want[i] {
			t.Errorf("path[%d] = %q, want %q", i, got[i], want[i])
		}
	}
}

func TestSQLiteStore_SaveIsIdempotent(t *testing.T) {
	store := newTestSQLiteStore(t)
	ctx := context.Background()

	if err := store.Save(ctx, []string{"/a", "/b"}); err != nil {
		t.Fatalf("first Save failed: %v", err)
	}
	// A later snapshot is a superset of an earlier one; re-saving must not
	// duplicate rows or fail on the primary key.
	if err := store.Save(ctx, []string{"/a", "/b", "/c"}); err != nil {
		t.Fatalf("second Save failed: %v", err)
	}

	loaded, err := store.Load(ctx)
	if err != nil {
		t.Fatalf("Load failed: %v", err)
	}
	if len(loaded) != 3 {
		t.Errorf("loaded %d paths, want 3: %v", len(loaded), loaded)
	}
}

func TestSQLiteStore_SurvivesReopen(t *testing.T) {
	dbPath := filepath.Join(t.TempDir(), "callisto.db")
	ctx := context.Background()

	store, err := NewSQLiteStore(dbPath)
	if err != nil {
		t.Fatalf("NewSQLiteStore failed: %v", err)
	}
	if err := store.Save(ctx, []string{"/orders/{id}"}); err != nil {
		t.Fatalf("Save failed: %v", err)
	}
	if err := store.Close(); err != nil {
		t.Fatalf("Close failed: %v", err)
	}

	reopened, err := NewSQLiteStore(dbPath)
	if err != nil {
		t.Fatalf("reopen failed: %v", err)
	}
	defer reopened.Close()

	loaded, err := reopened.Load(ctx)
	if err != nil {
		t.Fatalf("Load after reopen failed: %v", err)
	}
	if len(loaded) != 1 || loaded[0] != "/orders/{id}" {
		t.Errorf("loaded %v, want [/orders/{id}]", loaded)
	}
}

func TestSQLiteStore_EmptyPathRejected(t *testing.T) {
	if _, err := NewSQLiteStore(""); err == nil {
		t.Error("expected error for empty db path")
	}
}

func TestSQLiteStore_CloseIdempotent(t *testing.T) {
	store := newTestSQLiteStore(t)

	if err := store.Close(); err != nil {
		t.Fatalf("first Close failed: %v", err)
	}
	if err := store.Close(); err != nil {
		t.Errorf("second Close failed: %v", err)
	}
}
