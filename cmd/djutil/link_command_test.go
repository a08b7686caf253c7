package main

import (
	"context"
	"path/filepath"
	"testing"

	"djutil/internal/catalog"
	"djutil/internal/config"
	"djutil/internal/testsupport"
)

func seedCatalog(t *testing.T, cfg *config.Config, entries ...catalog.Entry) {
	t.Helper()

	store, err := catalog.Open(cfg.Paths.CatalogPath, cfg.Paths.BackupDir)
	if err != nil {
		t.Fatalf("catalog.Open: %v", err)
	}
	for _, entry := range entries {
		if _, err := store.InsertEntry(context.Background(), entry); err != nil {
			t.Fatalf("InsertEntry: %v", err)
		}
	}
	if err := store.Close(); err != nil {
		t.Fatalf("close catalog: %v", err)
	}
}

func lookupEntry(t *testing.T, cfg *config.Config, id int64) catalog.Entry {
	t.Helper()

	store, err := catalog.Open(cfg.Paths.CatalogPath, cfg.Paths.BackupDir)
	if err != nil {
		t.Fatalf("catalog.Open: %v", err)
	}
	defer store.Close()
	entry, err := store.EntryByID(context.Background(), id)
	if err != nil {
		t.Fatalf("EntryByID: %v", err)
	}
	if entry == nil {
		t.Fatalf("entry %d not found", id)
	}
	return *entry
}

func TestLinkCommandDryRunLeavesCatalogUntouched(t *testing.T) {
	cfg, configPath := newTestConfigFile(t)
	seedCatalog(t, cfg, catalog.Entry{ID: 1, Artist: "Bicep", Title: "Glue", FolderPath: "tidal://track/1"})

	trackPath := filepath.Join(t.TempDir(), "glue.mp3")
	testsupport.WriteFile(t, trackPath, 256)

	csvPath := filepath.Join(t.TempDir(), "records.csv")
	testsupport.WriteCSV(t, csvPath, "id,artist,title,file path\n1,Bicep,Glue,"+trackPath+"\n")

	out, err := runCLI(t, "--config", configPath, "link", "--csv", csvPath)
	if err != nil {
		t.Fatalf("link: %v\n%s", err, out)
	}
	requireContains(t, out, "dry-run")
	requireContains(t, out, "Dry run: no changes were applied")

	entry := lookupEntry(t, cfg, 1)
	if !entry.IsStreaming() {
		t.Fatalf("dry run must not mutate the entry: %+v", entry)
	}
}

func TestLinkCommandApplyUpdatesEntry(t *testing.T) {
	cfg, configPath := newTestConfigFile(t)
	seedCatalog(t, cfg, catalog.Entry{ID: 1, Artist: "Bicep", Title: "Glue", FolderPath: "tidal://track/1"})

	trackPath := filepath.Join(t.TempDir(), "glue.mp3")
	testsupport.WriteFile(t, trackPath, 256)

	csvPath := filepath.Join(t.TempDir(), "records.csv")
	resultsPath := filepath.Join(t.TempDir(), "results.csv")
	testsupport.WriteCSV(t, csvPath, "id,artist,title,file path\n1,Bicep,Glue,"+trackPath+"\n")

	out, err := runCLI(t, "--config", configPath, "link",
		"--csv", csvPath, "--apply", "--yes", "--results", resultsPath)
	if err != nil {
		t.Fatalf("link --apply: %v\n%s", err, out)
	}
	requireContains(t, out, "Catalog backed up to")
	requireContains(t, out, "Wrote results to")

	entry := lookupEntry(t, cfg, 1)
	if entry.IsStreaming() {
		t.Fatalf("entry should be local after apply: %+v", entry)
	}
	if entry.FolderPath != trackPath {
		t.Fatalf("folder path = %q, want %q", entry.FolderPath, trackPath)
	}
	if entry.FileSize != 256 {
		t.Fatalf("file size = %d, want 256", entry.FileSize)
	}
}

func TestLinkCommandApplyRequiresConfirmation(t *testing.T) {
	cfg, configPath := newTestConfigFile(t)
	seedCatalog(t, cfg, catalog.Entry{ID: 1, Artist: "Bicep", Title: "Glue", FolderPath: "tidal://track/1"})

	trackPath := filepath.Join(t.TempDir(), "glue.mp3")
	testsupport.WriteFile(t, trackPath, 256)

	csvPath := filepath.Join(t.TempDir(), "records.csv")
	testsupport.WriteCSV(t, csvPath, "id,artist,title,file path\n1,Bicep,Glue,"+trackPath+"\n")

	// Test stdin is not a terminal, so apply without --yes must refuse.
	if _, err := runCLI(t, "--config", configPath, "link", "--csv", csvPath, "--apply"); err == nil {
		t.Fatal("expected apply without --yes to fail off-terminal")
	}

	entry := lookupEntry(t, cfg, 1)
	if !entry.IsStreaming() {
		t.Fatal("refused run must not mutate the entry")
	}
}

func TestLinkCommandStrictFailureExitsNonZero(t *testing.T) {
	cfg, configPath := newTestConfigFile(t)
	seedCatalog(t, cfg, catalog.Entry{ID: 1, Artist: "Bicep", Title: "Glue", FolderPath: "tidal://track/1"})

	trackPath := filepath.Join(t.TempDir(), "glue.mp3")
	testsupport.WriteFile(t, trackPath, 256)

	// Entry 99 does not exist, so the first record errors and strict halts.
	csvPath := filepath.Join(t.TempDir(), "records.csv")
	testsupport.WriteCSV(t, csvPath,
		"id,artist,title,file path\n99,Ghost,Track,"+trackPath+"\n1,Bicep,Glue,"+trackPath+"\n")

	out, err := runCLI(t, "--config", configPath, "link", "--csv", csvPath, "--strict")
	if err == nil {
		t.Fatalf("expected strict failure, output:\n%s", out)
	}

	entry := lookupEntry(t, cfg, 1)
	if !entry.IsStreaming() {
		t.Fatal("halted run must not reach the second record")
	}
}
