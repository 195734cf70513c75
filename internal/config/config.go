// Package config provides configuration loading and structs for the kensaku server.
package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"gopkg.in/yaml.v3"
)

// ErrNotFound is returned by Load when the config file does not exist.
// A missing search configuration is fatal at construction; there is no default file.
var ErrNotFound = errors.New("search config not found")

// Config holds all configuration for the application.
type Config struct {
	Debug       bool          `yaml:"debug"`
	Server      ServerConfig  `yaml:"server"`
	Storage     StorageConfig `yaml:"storage"`
	Watch       WatchConfig   `yaml:"watch"`
	SearchModes []SearchMode  `yaml:"search_modes"`
	Search      SearchConfig  `yaml:"search"`
}

// ServerConfig holds HTTP server settings.
type ServerConfig struct {
	Host string `yaml:"host"`
	Port int    `yaml:"port"`
}

// StorageConfig holds the message database path.
type StorageConfig struct {
	DatabasePath string `yaml:"database_path"`
}

// WatchConfig holds message drop-directory watch settings.
type WatchConfig struct {
	Directory string `yaml:"directory"`
	Enabled   bool   `yaml:"enabled"`
}

// SearchMode is a named search mode entry ("exact", "regex"; "semantic" is
// recognized but never enabled).
type SearchMode struct {
	Name    string       `yaml:"name"`
	Enabled bool         `yaml:"enabled"`
	Weight  float64      `yaml:"weight"`
	Options RegexOptions `yaml:"options"`
}

// RegexOptions holds options for the regex search mode.
type RegexOptions struct {
	IgnoreCase *bool `yaml:"ignore_case"`
	DotAll     bool  `yaml:"dot_all"`
	// Unicode is accepted for config compatibility. Go's regexp engine (RE2)
	// is always Unicode-aware, so disabling it has no effect.
	Unicode          *bool `yaml:"unicode"`
	MaxPatternLength int   `yaml:"max_pattern_length"`
}

// IgnoreCaseOrDefault returns the ignore_case option; defaults to true when unset.
func (o *RegexOptions) IgnoreCaseOrDefault() bool {
	if o.IgnoreCase != nil {
		return *o.IgnoreCase
	}
	return true
}

// UnicodeOrDefault returns the unicode option; defaults to true when unset.
func (o *RegexOptions) UnicodeOrDefault() bool {
	if o.Unicode != nil {
		return *o.Unicode
	}
	return true
}

// SearchConfig holds mode selection and hybrid weighting.
type SearchConfig struct {
	DefaultMode   string             `yaml:"default_mode"`
	HybridWeights map[string]float64 `yaml:"hybrid_weights"`
}

// HybridWeight returns the hybrid weight for a mode name.
// Missing entries default to 1.0 for exact, 1.2 for regex, 1.0 otherwise.
func (s *SearchConfig) HybridWeight(mode string) float64 {
	if w, ok := s.HybridWeights[mode]; ok {
		return w
	}
	if mode == "regex" {
		return 1.2
	}
	return 1.0
}

// Load reads and parses the config file at path, expands paths, and applies defaults.
// Returns ErrNotFound if the file does not exist.
func Load(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, fmt.Errorf("%w: %s", ErrNotFound, path)
		}
		return nil, fmt.Errorf("failed to read config: %w", err)
	}

	var cfg Config
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return nil, fmt.Errorf("failed to parse config: %w", err)
	}

	ApplyDefaults(&cfg)

	configDir := filepath.Dir(path)
	cfg.Storage.DatabasePath = expandPath(cfg.Storage.DatabasePath, configDir)
	if cfg.Watch.Directory != "" {
		cfg.Watch.Directory = expandPath(cfg.Watch.Directory, configDir)
	}

	return &cfg, nil
}

// expandPath converts a path to absolute. Paths starting with "./" are relative to configDir;
// other relative paths are relative to the home directory.
func expandPath(path string, configDir string) string {
	if filepath.IsAbs(path) {
		return path
	}
	if strings.HasPrefix(path, "./") || path == "." {
		return filepath.Join(configDir, path)
	}
	if home, err := os.UserHomeDir(); err == nil {
		return filepath.Join(home, path)
	}
	return path
}
