// Package config loads apidef configuration from .apidef/config.yml with
// environment variable overrides.
package config

import (
	"fmt"
	"strings"
)

// Config is the complete apidef configuration.
type Config struct {
	Scan    ScanConfig    `yaml:"scan" mapstructure:"scan"`
	Outputs OutputsConfig `yaml:"outputs" mapstructure:"outputs"`
	Needs   NeedsConfig   `yaml:"needs" mapstructure:"needs"`
	Watch   WatchConfig   `yaml:"watch" mapstructure:"watch"`
	Cache   CacheConfig   `yaml:"cache" mapstructure:"cache"`
}

// ScanConfig controls file discovery.
type ScanConfig struct {
	Extensions []string `yaml:"extensions" mapstructure:"extensions"` // file extensions to scan, with leading dot
	Exclude    []string `yaml:"exclude" mapstructure:"exclude"`       // glob patterns for directories to skip
}

// OutputsConfig names the generated artifacts.
type OutputsConfig struct {
	Def        string `yaml:"def" mapstructure:"def"`                 // definition file path
	Index      string `yaml:"index" mapstructure:"index"`             // JSON index path
	AutoImport string `yaml:"auto_import" mapstructure:"auto_import"` // generated import header path
	DB         string `yaml:"db" mapstructure:"db"`                   // symbol database path
	APIHeader  string `yaml:"api_header" mapstructure:"api_header"`   // header included by the auto-import file
}

// NeedsConfig holds defaults for the needs workflow.
type NeedsConfig struct {
	Vis string `yaml:"vis" mapstructure:"vis"` // "public" or "private"
}

// WatchConfig controls watch mode.
type WatchConfig struct {
	DebounceMs int `yaml:"debounce_ms" mapstructure:"debounce_ms"`
}

// CacheConfig controls the extraction cache.
type CacheConfig struct {
	Capacity int `yaml:"capacity" mapstructure:"capacity"` // max files with cached results
}

// Default returns a configuration with sensible defaults.
func Default() *Config {
	return &Config{
		Scan: ScanConfig{
			Extensions: []string{".c", ".h", ".cc", ".cpp", ".hpp"},
			Exclude:    []string{".git", "build", "dist", "out", ".cache", ".vscode"},
		},
		Outputs: OutputsConfig{
			Def:        "framework/api.def",
			Index:      "framework/api_index.json",
			AutoImport: "framework/auto_import.h",
			DB:         ".apidef/index.db",
			APIHeader:  "framework/api.h",
		},
		Needs: NeedsConfig{
			Vis: "public",
		},
		Watch: WatchConfig{
			DebounceMs: 500,
		},
		Cache: CacheConfig{
			Capacity: 4096,
		},
	}
}

// Validate checks the configuration for values the tool cannot work with.
func Validate(cfg *Config) error {
	for _, ext := range cfg.Scan.Extensions {
		if !strings.HasPrefix(ext, ".") {
			return fmt.Errorf("scan.extensions entry %q must start with a dot", ext)
		}
	}
	switch cfg.Needs.Vis {
	case "public", "private":
	default:
		return fmt.Errorf("needs.vis must be \"public\" or \"private\", got %q", cfg.Needs.Vis)
	}
	if cfg.Watch.DebounceMs < 0 {
		return fmt.Errorf("watch.debounce_ms must not be negative")
	}
	if cfg.Cache.Capacity < 0 {
		return fmt.Errorf("cache.capacity must not be negative")
	}
	return nil
}
