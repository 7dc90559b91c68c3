// Package config handles sawmill's persisted settings: the last opened
// location, the recent-file list, and the tag palette.
// Settings are stored in ~/.config/sawmill/config.toml.
package config

import (
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	toml "github.com/pelletier/go-toml/v2"

	"github.com/tlogan/sawmill/internal/tags"
)

// MaxRecentFiles bounds the recent-file list.
const MaxRecentFiles = 10

const defaultConfigPath = "~/.config/sawmill/config.toml"

// TagEntry is the persisted form of one tag.
type TagEntry struct {
	Name      string `toml:"name"`
	Color     string `toml:"color"`
	Enabled   bool   `toml:"enabled"`
	ShowCount bool   `toml:"show_count"`
	Order     int    `toml:"order"`
}

// Config holds all persisted settings.
type Config struct {
	LastDirectory string     `toml:"last_directory"`
	LastFile      string     `toml:"last_file"`
	RecentFiles   []string   `toml:"recent_files"`
	Tags          []TagEntry `toml:"tags"`
}

// DefaultPath returns the default config file path.
func DefaultPath() string {
	return defaultConfigPath
}

// Load reads the config from path (empty uses the default location). Missing
// or unreadable files degrade to defaults rather than failing: the viewer
// must start regardless. Recent files are validated for existence and
// de-duplicated, most recent first; the last file and directory are dropped
// when they no longer exist.
func Load(path string) Config {
	cfg := Config{Tags: defaultTagEntries()}

	resolved, err := resolvePath(path)
	if err != nil {
		return cfg
	}

	file, err := os.Open(resolved)
	if err != nil {
		return cfg
	}
	defer func() { _ = file.Close() }()

	raw, err := io.ReadAll(file)
	if err != nil {
		return cfg
	}

	var loaded Config
	if err := toml.Unmarshal(raw, &loaded); err != nil {
		return cfg
	}

	if len(loaded.Tags) > 0 {
		cfg.Tags = loaded.Tags
	}
	if dir := strings.TrimSpace(loaded.LastDirectory); dirExists(dir) {
		cfg.LastDirectory = dir
	}
	if f := strings.TrimSpace(loaded.LastFile); fileExists(f) {
		cfg.LastFile = f
	}
	cfg.RecentFiles = pruneRecent(loaded.RecentFiles)
	return cfg
}

// Save writes the config to path (empty uses the default location), creating
// directories as needed.
func Save(path string, cfg Config) error {
	resolved, err := resolvePath(path)
	if err != nil {
		return fmt.Errorf("resolve path: %w", err)
	}

	if err := os.MkdirAll(filepath.Dir(resolved), 0o755); err != nil {
		return fmt.Errorf("create config dir: %w", err)
	}

	raw, err := toml.Marshal(cfg)
	if err != nil {
		return fmt.Errorf("marshal config: %w", err)
	}
	if err := os.WriteFile(resolved, raw, 0o644); err != nil {
		return fmt.Errorf("write config: %w", err)
	}
	return nil
}

// RememberFile records path as the most recently opened file: it becomes the
// last file, its directory the last directory, and it moves to the front of
// the de-duplicated recent list.
func (c *Config) RememberFile(path string) {
	path = strings.TrimSpace(path)
	if path == "" {
		return
	}
	c.LastFile = path
	c.LastDirectory = filepath.Dir(path)

	recent := make([]string, 0, MaxRecentFiles)
	recent = append(recent, path)
	for _, p := range c.RecentFiles {
		if p == path {
			continue
		}
		recent = append(recent, p)
		if len(recent) >= MaxRecentFiles {
			break
		}
	}
	c.RecentFiles = recent
}

// SeedRegistry installs the persisted tags into reg, falling back to the
// built-in palette when none were persisted.
func (c Config) SeedRegistry(reg *tags.Registry) {
	if len(c.Tags) == 0 {
		reg.Seed(tags.Defaults())
		return
	}
	seed := make([]tags.Tag, 0, len(c.Tags))
	for _, t := range c.Tags {
		seed = append(seed, tags.Tag{
			Name:      t.Name,
			Color:     t.Color,
			Enabled:   t.Enabled,
			ShowCount: t.ShowCount,
			Order:     t.Order,
		})
	}
	reg.Seed(seed)
}

// SyncTags replaces the persisted tag set with the registry's current tags.
// Called after the registry reports newly discovered tags or a tag edit.
func (c *Config) SyncTags(reg *tags.Registry) {
	all := reg.All()
	entries := make([]TagEntry, 0, len(all))
	for _, t := range all {
		entries = append(entries, TagEntry{
			Name:      t.Name,
			Color:     t.Color,
			Enabled:   t.Enabled,
			ShowCount: t.ShowCount,
			Order:     t.Order,
		})
	}
	c.Tags = entries
}

func defaultTagEntries() []TagEntry {
	defs := tags.Defaults()
	entries := make([]TagEntry, 0, len(defs))
	for _, t := range defs {
		entries = append(entries, TagEntry{
			Name:      t.Name,
			Color:     t.Color,
			Enabled:   t.Enabled,
			ShowCount: t.ShowCount,
			Order:     t.Order,
		})
	}
	return entries
}

func pruneRecent(paths []string) []string {
	seen := make(map[string]struct{})
	out := make([]string, 0, MaxRecentFiles)
	for _, p := range paths {
		p = strings.TrimSpace(p)
		if p == "" {
			continue
		}
		if _, dup := seen[p]; dup {
			continue
		}
		if !fileExists(p) {
			continue
		}
		seen[p] = struct{}{}
		out = append(out, p)
		if len(out) >= MaxRecentFiles {
			break
		}
	}
	return out
}

func fileExists(path string) bool {
	if path == "" {
		return false
	}
	info, err := os.Stat(path)
	return err == nil && !info.IsDir()
}

func dirExists(path string) bool {
	if path == "" {
		return false
	}
	info, err := os.Stat(path)
	return err == nil && info.IsDir()
}

func resolvePath(path string) (string, error) {
	if strings.TrimSpace(path) == "" {
		return expandPath(defaultConfigPath)
	}
	return expandPath(path)
}

func expandPath(path string) (string, error) {
	trimmed := strings.TrimSpace(path)
	if trimmed == "" {
		return "", errors.New("path is empty")
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
