package prefs

import (
	"os"
	"path/filepath"
	"reflect"
	"testing"
)

func TestLoad_MissingFileUsesDefaults(t *testing.T) {
	home := t.TempDir()
	t.Setenv("HOME", home)

	p, err := Load("")
	if err != nil {
		t.Fatalf("Load returned error: %v", err)
	}
	if p.Theme != defaultTheme {
		t.Fatalf("Theme = %q, want %q", p.Theme, defaultTheme)
	}
	if p.MaxRecentFiles != defaultMaxRecentFiles {
		t.Fatalf("MaxRecentFiles = %d, want %d", p.MaxRecentFiles, defaultMaxRecentFiles)
	}
	if len(p.RecentFiles) != 0 {
		t.Fatalf("RecentFiles = %v, want empty", p.RecentFiles)
	}
}

func TestLoad_ReadsExistingFile(t *testing.T) {
	home := t.TempDir()
	t.Setenv("HOME", home)

	prefsDir := filepath.Join(home, ".config", "dltview")
	if err := os.MkdirAll(prefsDir, 0o755); err != nil {
		t.Fatalf("MkdirAll: %v", err)
	}

	prefsFile := filepath.Join(prefsDir, "prefs.toml")
	body := "theme = \"Slate\"\nrecent_files = [\"/a.dlt\", \"/b.dlt\", \"/a.dlt\", \"/c.dlt\"]\nmax_recent_files = 2\n"
	if err := os.WriteFile(prefsFile, []byte(body), 0o644); err != nil {
		t.Fatalf("WriteFile: %v", err)
	}

	p, err := Load("")
	if err != nil {
		t.Fatalf("Load returned error: %v", err)
	}
	if p.Theme != "Slate" {
		t.Fatalf("Theme = %q, want %q", p.Theme, "Slate")
	}
	if want := []string{"/a.dlt", "/b.dlt"}; !reflect.DeepEqual(p.RecentFiles, want) {
		t.Fatalf("RecentFiles = %v, want %v", p.RecentFiles, want)
	}
}

func TestSave_CreatesFileAndDirs(t *testing.T) {
	tmp := t.TempDir()
	prefsFile := filepath.Join(tmp, "subdir", "prefs.toml")

	p := Default()
	p.Theme = "Slate"
	p.AddRecentFile("/logs/trace.dlt")
	if err := Save(prefsFile, p); err != nil {
		t.Fatalf("Save returned error: %v", err)
	}

	loaded, err := Load(prefsFile)
	if err != nil {
		t.Fatalf("Load returned error: %v", err)
	}
	if loaded.Theme != "Slate" {
		t.Fatalf("Theme = %q, want %q", loaded.Theme, "Slate")
	}
	if want := []string{"/logs/trace.dlt"}; !reflect.DeepEqual(loaded.RecentFiles, want) {
		t.Fatalf("RecentFiles = %v, want %v", loaded.RecentFiles, want)
	}
}

func TestAddRecentFile_MostRecentFirstAndCapped(t *testing.T) {
	p := Prefs{MaxRecentFiles: 3}
	for _, f := range []string{"/1", "/2", "/3", "/2", "/4", " "} {
		p.AddRecentFile(f)
	}
	if want := []string{"/4", "/2", "/3"}; !reflect.DeepEqual(p.RecentFiles, want) {
		t.Fatalf("RecentFiles = %v, want %v", p.RecentFiles, want)
	}
}

func TestLoad_EmptyThemeFallsBackToDefault(t *testing.T) {
	tmp := t.TempDir()
	prefsFile := filepath.Join(tmp, "prefs.toml")
	if err := os.WriteFile(prefsFile, []byte("theme = \"\"\n"), 0o644); err != nil {
		t.Fatalf("WriteFile: %v", err)
	}

	p, err := Load(prefsFile)
	if err != nil {
		t.Fatalf("Load returned error: %v", err)
	}
	if p.Theme != defaultTheme {
		t.Fatalf("Theme = %q, want %q", p.Theme, defaultTheme)
	}
}

func TestLoad_InvalidTOMLReturnsDefaultsAndError(t *testing.T) {
	tmp := t.TempDir()
	prefsFile := filepath.Join(tmp, "prefs.toml")
	if err := os.WriteFile(prefsFile, []byte("not valid toml {{{\n"), 0o644); err != nil {
		t.Fatalf("WriteFile: %v", err)
	}

	p, err := Load(prefsFile)
	if err == nil {
		t.Fatalf("Load accepted invalid TOML")
	}
	if p.Theme != defaultTheme {
		t.Fatalf("Theme = %q, want %q", p.Theme, defaultTheme)
	}
	if p.MaxRecentFiles != defaultMaxRecentFiles {
		t.Fatalf("MaxRecentFiles = %d, want %d", p.MaxRecentFiles, defaultMaxRecentFiles)
	}
}

func TestLoad_UnreadablePathReturnsError(t *testing.T) {
	dir := t.TempDir()

	p, err := Load(dir)
	if err == nil {
		t.Fatalf("Load of a directory returned no error")
	}
	if p.Theme != defaultTheme {
		t.Fatalf("Theme = %q, want %q", p.Theme, defaultTheme)
	}
}
