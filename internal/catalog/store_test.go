package catalog_test

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"djutil/internal/catalog"
)

func openStore(t *testing.T) *catalog.Store {
	t.Helper()
	dir := t.TempDir()
	store, err := catalog.Open(filepath.Join(dir, "catalog.db"), filepath.Join(dir, "backups"))
	if err != nil {
		t.Fatalf("Open: %v", err)
	}
	t.Cleanup(func() { store.Close() })
	return store
}

func TestStreamingEntriesAndUpdateToLocal(t *testing.T) {
	store := openStore(t)
	ctx := context.Background()

	streamingID, err := store.InsertEntry(ctx, catalog.Entry{Artist: "A", Title: "Streamed", FolderPath: "tidal://track/1"})
	if err != nil {
		t.Fatalf("InsertEntry: %v", err)
	}
	if _, err := store.InsertEntry(ctx, catalog.Entry{Artist: "B", Title: "Local", FolderPath: "/music/local.mp3"}); err != nil {
		t.Fatalf("InsertEntry: %v", err)
	}

	streaming, err := store.AllStreamingEntries(ctx)
	if err != nil {
		t.Fatalf("AllStreamingEntries: %v", err)
	}
	if len(streaming) != 1 || streaming[0].ID != streamingID {
		t.Fatalf("unexpected streaming set: %+v", streaming)
	}

	if err := store.UpdateToLocal(ctx, streamingID, "/music/now-local.mp3", 4096); err != nil {
		t.Fatalf("UpdateToLocal: %v", err)
	}
	entry, err := store.EntryByID(ctx, streamingID)
	if err != nil {
		t.Fatalf("EntryByID: %v", err)
	}
	if entry == nil || entry.FolderPath != "/music/now-local.mp3" || entry.FileSize != 4096 {
		t.Fatalf("update not applied: %+v", entry)
	}
	if entry.IsStreaming() {
		t.Fatal("entry should be local after update")
	}
}

func TestUpdateToLocalMissingEntry(t *testing.T) {
	store := openStore(t)
	if err := store.UpdateToLocal(context.Background(), 999, "/music/x.mp3", 1); err == nil {
		t.Fatal("expected error for missing entry")
	}
}

func TestEntryByIDAbsentReturnsNil(t *testing.T) {
	store := openStore(t)
	entry, err := store.EntryByID(context.Background(), 12345)
	if err != nil {
		t.Fatalf("EntryByID: %v", err)
	}
	if entry != nil {
		t.Fatalf("expected nil for absent entry, got %+v", entry)
	}
}

func TestClearAnalysis(t *testing.T) {
	store := openStore(t)
	ctx := context.Background()
	id, err := store.InsertEntry(ctx, catalog.Entry{Artist: "A", Title: "T", AnalysisPath: "/cache/a.dat", Analyzed: true})
	if err != nil {
		t.Fatalf("InsertEntry: %v", err)
	}
	if err := store.ClearAnalysis(ctx, id); err != nil {
		t.Fatalf("ClearAnalysis: %v", err)
	}
	entry, err := store.EntryByID(ctx, id)
	if err != nil {
		t.Fatalf("EntryByID: %v", err)
	}
	if entry.Analyzed || entry.AnalysisPath != "" {
		t.Fatalf("analysis not cleared: %+v", entry)
	}
	if err := store.ClearAnalysis(ctx, 999); err == nil {
		t.Fatal("expected error for missing entry")
	}
}

func TestBackupCreatesSnapshot(t *testing.T) {
	store := openStore(t)
	ctx := context.Background()
	if _, err := store.InsertEntry(ctx, catalog.Entry{Artist: "A", Title: "T"}); err != nil {
		t.Fatalf("InsertEntry: %v", err)
	}
	path, err := store.Backup(ctx)
	if err != nil {
		t.Fatalf("Backup: %v", err)
	}
	info, err := os.Stat(path)
	if err != nil {
		t.Fatalf("backup file missing: %v", err)
	}
	if info.Size() == 0 {
		t.Fatal("backup file is empty")
	}
}

func TestOpenRefusesSecondWriter(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "catalog.db")
	first, err := catalog.Open(path, dir)
	if err != nil {
		t.Fatalf("Open: %v", err)
	}
	defer first.Close()

	if _, err := catalog.Open(path, dir); err == nil {
		t.Fatal("expected second open to fail while lock is held")
	}
}
