package main

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"djutil/internal/catalog"
)

func TestExportCommandWritesStreamingEntries(t *testing.T) {
	cfg, configPath := newTestConfigFile(t)
	seedCatalog(t, cfg,
		catalog.Entry{ID: 1, Artist: "Bicep", Title: "Glue", FolderPath: "tidal://track/1"},
		catalog.Entry{ID: 2, Artist: "Burial", Title: "Archangel", FolderPath: "/music/archangel.mp3"},
		catalog.Entry{ID: 3, Artist: "Overmono", Title: "So U Kno", FolderPath: "spotify:track:3"},
	)

	outputPath := filepath.Join(t.TempDir(), "streaming.csv")
	out, err := runCLI(t, "--config", configPath, "export", "--output", outputPath)
	if err != nil {
		t.Fatalf("export: %v\n%s", err, out)
	}
	requireContains(t, out, "Wrote 2 streaming entries")

	data, err := os.ReadFile(outputPath)
	if err != nil {
		t.Fatalf("read export: %v", err)
	}
	content := string(data)
	for _, want := range []string{"rekordboxId", "1,Bicep,Glue", "3,Overmono,So U Kno"} {
		if !strings.Contains(content, want) {
			t.Fatalf("export missing %q:\n%s", want, content)
		}
	}
	if strings.Contains(content, "Burial") {
		t.Fatalf("local entry leaked into export:\n%s", content)
	}
}

func TestExportCommandHonorsLimit(t *testing.T) {
	cfg, configPath := newTestConfigFile(t)
	seedCatalog(t, cfg,
		catalog.Entry{ID: 1, Artist: "Bicep", Title: "Glue", FolderPath: "tidal://track/1"},
		catalog.Entry{ID: 2, Artist: "Overmono", Title: "So U Kno", FolderPath: "spotify:track:2"},
	)

	outputPath := filepath.Join(t.TempDir(), "streaming.csv")
	out, err := runCLI(t, "--config", configPath, "export", "--output", outputPath, "--limit", "1")
	if err != nil {
		t.Fatalf("export --limit: %v\n%s", err, out)
	}
	requireContains(t, out, "Wrote 1 streaming entries")

	data, err := os.ReadFile(outputPath)
	if err != nil {
		t.Fatalf("read export: %v", err)
	}
	if strings.Contains(string(data), "Overmono") {
		t.Fatalf("limit ignored:\n%s", data)
	}
}
