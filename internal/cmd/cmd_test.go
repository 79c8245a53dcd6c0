package cmd

import (
	"bytes"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/spf13/viper"
)

const testSnapshot = `{
	"validFrom": "2024-01-01",
	"validTill": "2024-01-06",
	"offers": [
		{"id": 1, "title": "Apfel", "category": {"name": "Obst"}, "price": {"value": 1.5}},
		{"id": 2, "title": "Wurst", "category": {"name": "Fleisch & Wurst"}, "price": {"value": 3}}
	]
}`

// seedDataDir creates a data directory with one snapshot and points the
// configuration at it. Values set directly on viper outrank the config file
// and environment, so the test never touches the user's config.
func seedDataDir(t *testing.T) string {
	t.Helper()
	dir := t.TempDir()
	week := filepath.Join(dir, "2024", "KW1")
	if err := os.MkdirAll(week, 0755); err != nil {
		t.Fatal(err)
	}
	if err := os.WriteFile(filepath.Join(week, "2024-01-03.json"), []byte(testSnapshot), 0644); err != nil {
		t.Fatal(err)
	}

	viper.Reset()
	t.Cleanup(viper.Reset)
	viper.Set("source.kind", "file")
	viper.Set("source.data_dir", dir)
	viper.Set("source.watch", false)
	viper.Set("logging.enabled", false)

	// Flag storage survives between Execute calls.
	exportSearch, exportFormat, exportInclude = "", "", nil
	return dir
}

func execute(t *testing.T, args ...string) string {
	t.Helper()
	var buf bytes.Buffer
	rootCmd.SetOut(&buf)
	rootCmd.SetErr(&buf)
	rootCmd.SetArgs(args)
	if err := rootCmd.Execute(); err != nil {
		t.Fatalf("Execute(%v) error = %v", args, err)
	}
	return buf.String()
}

func TestCatalogsListsManifest(t *testing.T) {
	seedDataDir(t)

	out := execute(t, "catalogs")
	if !strings.Contains(out, "2024/KW1/2024-01-03.json") {
		t.Errorf("catalogs output = %q", out)
	}
}

func TestExportAppliesDefaultExclusions(t *testing.T) {
	seedDataDir(t)

	out := execute(t, "export", "2024/KW1/2024-01-03.json")
	if !strings.Contains(out, `"title": "Apfel"`) {
		t.Errorf("export should contain the visible offer, got %q", out)
	}
	if strings.Contains(out, "Wurst") {
		t.Error("export must hide categories excluded by default")
	}
}

func TestExportIncludeCategoryOverridesDefault(t *testing.T) {
	seedDataDir(t)

	out := execute(t, "export", "2024/KW1/2024-01-03.json",
		"--include-category", "Fleisch & Wurst")
	if !strings.Contains(out, "Wurst") {
		t.Errorf("re-included category should export, got %q", out)
	}
}

func TestExportPromptFormat(t *testing.T) {
	seedDataDir(t)

	out := execute(t, "export", "--format", "prompt", "2024/KW1/2024-01-03.json")
	if !strings.Contains(out, "There are 1 offers.") {
		t.Errorf("prompt export = %q", out)
	}
}

func TestExportRejectsUnknownFormat(t *testing.T) {
	seedDataDir(t)

	rootCmd.SetOut(&bytes.Buffer{})
	rootCmd.SetErr(&bytes.Buffer{})
	rootCmd.SetArgs([]string{"export", "--format", "xml", "2024/KW1/2024-01-03.json"})
	if err := rootCmd.Execute(); err == nil {
		t.Fatal("an unknown format must be rejected")
	}
}
