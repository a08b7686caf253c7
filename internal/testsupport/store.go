package testsupport

import (
	"context"
	"testing"

	"djutil/internal/catalog"
	"djutil/internal/config"
)

// MustOpenStore opens a catalog.Store for tests and registers cleanup.
func MustOpenStore(t testing.TB, cfg *config.Config) *catalog.Store {
	t.Helper()

	store, err := catalog.Open(cfg.Paths.CatalogPath, cfg.Paths.BackupDir)
	if err != nil {
		t.Fatalf("catalog.Open: %v", err)
	}
	t.Cleanup(func() {
		store.Close()
	})
	return store
}

// SeedEntry inserts a catalog entry for tests using the provided store.
func SeedEntry(t testing.TB, store *catalog.Store, entry catalog.Entry) int64 {
	t.Helper()

	id, err := store.InsertEntry(context.Background(), entry)
	if err != nil {
		t.Fatalf("store.InsertEntry: %v", err)
	}
	return id
}
