package storage

import "context"

// Store persists the admitted path set.
//
// Save replaces the stored set wholesale; admission is monotonic, so a
// snapshot always supersedes every earlier one. Load returns the most
// recently saved set, or an empty slice when nothing has been saved.
type Store interface {
	// Load returns the persisted admitted paths.
	Load(ctx context.Context) ([]string, error)

	// Save replaces the persisted set with paths.
	Save(ctx context.Context, paths []string) error

	// Close releases any resources held by the store.
	// Close is idempotent and safe to call multiple times.
	Close() error
}
