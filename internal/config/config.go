package config

import (
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"
	"time"

	toml "github.com/pelletier/go-toml/v2"

	"github.com/five82/dltview/internal/dlt"
)

// Config holds the startup settings of the viewer.
type Config struct {
	TickRate         time.Duration
	Workers          int
	IndexCache       bool
	DefaultAppID     string
	DefaultContextID string
	DefaultLogLevel  *dlt.LogLevel
	LogFile          string
	LogLevel         string
	MetricsAddr      string
}

const (
	defaultConfigPath = "~/.config/dltview/config.toml"
	defaultTickRate   = 250 * time.Millisecond
	defaultLogLevel   = "info"
	minTickRate       = 10 * time.Millisecond
)

// Default returns the settings used when no config file exists.
func Default() Config {
	return Config{
		TickRate:   defaultTickRate,
		IndexCache: true,
		LogLevel:   defaultLogLevel,
	}
}

// Load locates and parses the config file, falling back to defaults when missing.
func Load(path string) (Config, error) {
	resolved, err := resolvePath(path)
	if err != nil {
		return Config{}, err
	}

	cfg := Default()

	file, err := os.Open(resolved)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return cfg, nil
		}
		return Config{}, fmt.Errorf("open config: %w", err)
	}
	defer file.Close()

	bytes, err := io.ReadAll(file)
	if err != nil {
		return Config{}, fmt.Errorf("read config: %w", err)
	}

	var raw struct {
		TickRateMS       *int   `toml:"tick_rate_ms"`
		Workers          int    `toml:"workers"`
		IndexCache       *bool  `toml:"index_cache"`
		DefaultAppID     string `toml:"default_app_id"`
		DefaultContextID string `toml:"default_context_id"`
		DefaultLogLevel  string `toml:"default_log_level"`
		LogFile          string `toml:"log_file"`
		LogLevel         string `toml:"log_level"`
		MetricsAddr      string `toml:"metrics_addr"`
	}
	if err := toml.Unmarshal(bytes, &raw); err != nil {
		return Config{}, fmt.Errorf("parse config: %w", err)
	}

	if raw.TickRateMS != nil {
		cfg.TickRate = max(time.Duration(*raw.TickRateMS)*time.Millisecond, minTickRate)
	}
	if raw.Workers < 0 {
		return Config{}, fmt.Errorf("parse config: workers must not be negative, got %d", raw.Workers)
	}
	cfg.Workers = raw.Workers
	if raw.IndexCache != nil {
		cfg.IndexCache = *raw.IndexCache
	}

	cfg.DefaultAppID = strings.TrimSpace(raw.DefaultAppID)
	cfg.DefaultContextID = strings.TrimSpace(raw.DefaultContextID)
	if level := strings.TrimSpace(raw.DefaultLogLevel); level != "" {
		parsed, err := dlt.ParseLogLevel(level)
		if err != nil {
			return Config{}, fmt.Errorf("parse config: default_log_level: %w", err)
		}
		cfg.DefaultLogLevel = &parsed
	}

	if logFile := strings.TrimSpace(raw.LogFile); logFile != "" {
		cfg.LogFile = mustExpand(logFile)
	}
	if level := strings.TrimSpace(raw.LogLevel); level != "" {
		cfg.LogLevel = strings.ToLower(level)
	}
	cfg.MetricsAddr = strings.TrimSpace(raw.MetricsAddr)

	return cfg, nil
}

// ExpandPath resolves a leading tilde and makes path absolute.
func ExpandPath(path string) (string, error) {
	return expandPath(path)
}

func resolvePath(path string) (string, error) {
	if strings.TrimSpace(path) == "" {
		return expandPath(defaultConfigPath)
	}
	return expandPath(path)
}

func mustExpand(path string) string {
	expanded, err := expandPath(path)
	if err != nil {
		return path
	}
	return expanded
}

func expandPath(path string) (string, error) {
	trimmed := strings.TrimSpace(path)
	if trimmed == "" {
		return "", fmt.Errorf("path is empty")
	}
	if strings.HasPrefix(trimmed, "~") {
		home, err := os.UserHomeDir()
		if err != nil {
			return "", fmt.Errorf("resolve home dir: %w", err)
		}
		trimmed = filepath.Join(home, strings.TrimPrefix(trimmed, "~"))
	}
	return filepath.Abs(trimmed)
}
