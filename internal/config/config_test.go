package config

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/five82/dltview/internal/dlt"
)

func writeConfig(t *testing.T, body string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "config.toml")
	if err := os.WriteFile(path, []byte(body), 0o600); err != nil {
		t.Fatalf("WriteFile: %v", err)
	}
	return path
}

func TestLoad_MissingConfigFallsBackToDefaults(t *testing.T) {
	home := t.TempDir()
	t.Setenv("HOME", home)

	cfg, err := Load(filepath.Join(home, "does-not-exist.toml"))
	if err != nil {
		t.Fatalf("Load returned error: %v", err)
	}
	if cfg.TickRate != defaultTickRate {
		t.Fatalf("TickRate = %v, want %v", cfg.TickRate, defaultTickRate)
	}
	if !cfg.IndexCache {
		t.Fatalf("IndexCache = false, want true")
	}
	if cfg.Workers != 0 {
		t.Fatalf("Workers = %d, want 0", cfg.Workers)
	}
	if cfg.LogFile != "" || cfg.MetricsAddr != "" {
		t.Fatalf("LogFile/MetricsAddr = %q/%q, want empty", cfg.LogFile, cfg.MetricsAddr)
	}
	if cfg.DefaultLogLevel != nil {
		t.Fatalf("DefaultLogLevel = %v, want nil", *cfg.DefaultLogLevel)
	}
}

func TestLoad_DefaultPathUnderHome(t *testing.T) {
	home := t.TempDir()
	t.Setenv("HOME", home)

	dir := filepath.Join(home, ".config", "dltview")
	if err := os.MkdirAll(dir, 0o755); err != nil {
		t.Fatalf("MkdirAll: %v", err)
	}
	if err := os.WriteFile(filepath.Join(dir, "config.toml"), []byte("workers = 3\n"), 0o600); err != nil {
		t.Fatalf("WriteFile: %v", err)
	}

	cfg, err := Load("")
	if err != nil {
		t.Fatalf("Load returned error: %v", err)
	}
	if cfg.Workers != 3 {
		t.Fatalf("Workers = %d, want 3", cfg.Workers)
	}
}

func TestLoad_ParsesAndTrimsConfig(t *testing.T) {
	home := t.TempDir()
	t.Setenv("HOME", home)

	path := writeConfig(t, `
tick_rate_ms = 100
workers = 4
index_cache = false
default_app_id = "  APP1 "
default_context_id = "CTX1"
default_log_level = " warn "
log_file = "  ~/.local/state/dltview/dltview.log  "
log_level = "DEBUG"
metrics_addr = " 127.0.0.1:9464 "
`)

	cfg, err := Load(path)
	if err != nil {
		t.Fatalf("Load returned error: %v", err)
	}
	if cfg.TickRate != 100*time.Millisecond {
		t.Fatalf("TickRate = %v, want 100ms", cfg.TickRate)
	}
	if cfg.Workers != 4 {
		t.Fatalf("Workers = %d, want 4", cfg.Workers)
	}
	if cfg.IndexCache {
		t.Fatalf("IndexCache = true, want false")
	}
	if cfg.DefaultAppID != "APP1" || cfg.DefaultContextID != "CTX1" {
		t.Fatalf("default ids = %q/%q, want APP1/CTX1", cfg.DefaultAppID, cfg.DefaultContextID)
	}
	if cfg.DefaultLogLevel == nil || *cfg.DefaultLogLevel != dlt.LevelWarning {
		t.Fatalf("DefaultLogLevel = %v, want Warning", cfg.DefaultLogLevel)
	}
	if !strings.HasPrefix(cfg.LogFile, home) || !strings.HasSuffix(cfg.LogFile, "dltview.log") {
		t.Fatalf("LogFile = %q, want it under HOME %q", cfg.LogFile, home)
	}
	if cfg.LogLevel != "debug" {
		t.Fatalf("LogLevel = %q, want debug", cfg.LogLevel)
	}
	if cfg.MetricsAddr != "127.0.0.1:9464" {
		t.Fatalf("MetricsAddr = %q, want 127.0.0.1:9464", cfg.MetricsAddr)
	}
}

func TestLoad_TickRateHasFloor(t *testing.T) {
	cfg, err := Load(writeConfig(t, "tick_rate_ms = 0\n"))
	if err != nil {
		t.Fatalf("Load returned error: %v", err)
	}
	if cfg.TickRate != minTickRate {
		t.Fatalf("TickRate = %v, want %v", cfg.TickRate, minTickRate)
	}
}

func TestLoad_EmptyValuesUseDefaults(t *testing.T) {
	cfg, err := Load(writeConfig(t, `
default_log_level = "   "
log_level = ""
`))
	if err != nil {
		t.Fatalf("Load returned error: %v", err)
	}
	if cfg.DefaultLogLevel != nil {
		t.Fatalf("DefaultLogLevel = %v, want nil", *cfg.DefaultLogLevel)
	}
	if cfg.LogLevel != defaultLogLevel {
		t.Fatalf("LogLevel = %q, want %q", cfg.LogLevel, defaultLogLevel)
	}
}

func TestLoad_Errors(t *testing.T) {
	tests := map[string]string{
		"invalid toml":      "not valid toml {{{\n",
		"unknown log level": "default_log_level = \"loud\"\n",
		"negative workers":  "workers = -1\n",
	}
	for name, body := range tests {
		t.Run(name, func(t *testing.T) {
			if _, err := Load(writeConfig(t, body)); err == nil {
				t.Fatalf("Load returned nil error, want failure")
			}
		})
	}
}

func TestExpandPath(t *testing.T) {
	home := t.TempDir()
	t.Setenv("HOME", home)

	got, err := ExpandPath("~/x.log")
	if err != nil {
		t.Fatalf("ExpandPath returned error: %v", err)
	}
	if got != filepath.Join(home, "x.log") {
		t.Fatalf("ExpandPath = %q, want %q", got, filepath.Join(home, "x.log"))
	}
	if _, err := ExpandPath("  "); err == nil {
		t.Fatalf("ExpandPath(blank) returned nil error")
	}
}
