// Package prefs handles dltview user preferences persistence.
// Preferences are stored in ~/.config/dltview/prefs.toml.
package prefs

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"slices"
	"strings"

	toml "github.com/pelletier/go-toml/v2"
)

// Prefs holds user preferences that change while the viewer runs.
type Prefs struct {
	Theme          string   `toml:"theme"`
	RecentFiles    []string `toml:"recent_files"`
	MaxRecentFiles int      `toml:"max_recent_files"`
}

const (
	defaultPrefsPath      = "~/.config/dltview/prefs.toml"
	defaultTheme          = "Nightfox"
	defaultMaxRecentFiles = 10
)

// Default returns the preferences used when none are stored.
func Default() Prefs {
	return Prefs{Theme: defaultTheme, MaxRecentFiles: defaultMaxRecentFiles}
}

// DefaultPath returns the default preferences file path.
func DefaultPath() string {
	return defaultPrefsPath
}

// Load reads preferences from the given path. A missing file yields the
// defaults and no error. Unreadable or malformed files also yield the
// defaults, together with the error so the caller can report it.
func Load(path string) (Prefs, error) {
	prefs := Default()

	resolved, err := resolvePath(path)
	if err != nil {
		return prefs, fmt.Errorf("resolve path: %w", err)
	}

	bytes, err := os.ReadFile(resolved)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return prefs, nil
		}
		return prefs, fmt.Errorf("read prefs: %w", err)
	}

	if err := toml.Unmarshal(bytes, &prefs); err != nil {
		return Default(), fmt.Errorf("parse prefs: %w", err)
	}

	if strings.TrimSpace(prefs.Theme) == "" {
		prefs.Theme = defaultTheme
	}
	if prefs.MaxRecentFiles <= 0 {
		prefs.MaxRecentFiles = defaultMaxRecentFiles
	}
	prefs.RecentFiles = compactRecent(prefs.RecentFiles, prefs.MaxRecentFiles)

	return prefs, nil
}

// Save writes preferences to the given path, creating directories as needed.
func Save(path string, p Prefs) error {
	resolved, err := resolvePath(path)
	if err != nil {
		return fmt.Errorf("resolve path: %w", err)
	}

	dir := filepath.Dir(resolved)
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return fmt.Errorf("create prefs dir: %w", err)
	}

	bytes, err := toml.Marshal(p)
	if err != nil {
		return fmt.Errorf("marshal prefs: %w", err)
	}

	if err := os.WriteFile(resolved, bytes, 0o644); err != nil {
		return fmt.Errorf("write prefs: %w", err)
	}

	return nil
}

// AddRecentFile moves path to the front of the recent files list, dropping
// duplicates and anything past MaxRecentFiles.
func (p *Prefs) AddRecentFile(path string) {
	path = strings.TrimSpace(path)
	if path == "" {
		return
	}
	limit := p.MaxRecentFiles
	if limit <= 0 {
		limit = defaultMaxRecentFiles
	}
	p.RecentFiles = compactRecent(append([]string{path}, p.RecentFiles...), limit)
}

func compactRecent(files []string, limit int) []string {
	out := make([]string, 0, min(len(files), limit))
	for _, f := range files {
		f = strings.TrimSpace(f)
		if f == "" || slices.Contains(out, f) {
			continue
		}
		out = append(out, f)
		if len(out) == limit {
			break
		}
	}
	return out
}

func resolvePath(path string) (string, error) {
	if strings.TrimSpace(path) == "" {
		return expandPath(defaultPrefsPath)
	}
	return expandPath(path)
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
