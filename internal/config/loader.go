package config

import (
	"fmt"
	"path/filepath"
	"strings"

	"github.com/spf13/viper"
)

// Load loads configuration for a project root with the following priority
// (highest to lowest):
//  1. Environment variables (APIDEF_*)
//  2. Config file (.apidef/config.yml under the root)
//  3. Default values
//
// A missing config file is not an error.
func Load(rootDir string) (*Config, error) {
	return load(filepath.Join(rootDir, ".apidef"), "")
}

// LoadFile loads configuration from an explicit config file path.
func LoadFile(path string) (*Config, error) {
	return load("", path)
}

func load(configDir, configFile string) (*Config, error) {
	v := viper.New()

	if configFile != "" {
		v.SetConfigFile(configFile)
	} else {
		v.SetConfigName("config")
		v.SetConfigType("yaml")
		v.AddConfigPath(configDir)
	}

	v.SetEnvPrefix("APIDEF")
	v.AutomaticEnv()
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))

	v.BindEnv("needs.vis")
	v.BindEnv("watch.debounce_ms")
	v.BindEnv("cache.capacity")
	v.BindEnv("outputs.def")
	v.BindEnv("outputs.index")
	v.BindEnv("outputs.auto_import")
	v.BindEnv("outputs.db")
	v.BindEnv("outputs.api_header")

	setDefaults(v)

	if err := v.ReadInConfig(); err != nil {
		// Only an explicitly named file is required to exist.
		_, notFound := err.(viper.ConfigFileNotFoundError)
		if configFile != "" || !notFound {
			return nil, fmt.Errorf("failed to read config file: %w", err)
		}
	}

	cfg := &Config{}
	if err := v.Unmarshal(cfg); err != nil {
		return nil, fmt.Errorf("failed to unmarshal config: %w", err)
	}

	if err := Validate(cfg); err != nil {
		return nil, fmt.Errorf("invalid configuration: %w", err)
	}
	return cfg, nil
}

// setDefaults seeds viper with the Default() values.
func setDefaults(v *viper.Viper) {
	defaults := Default()

	v.SetDefault("scan.extensions", defaults.Scan.Extensions)
	v.SetDefault("scan.exclude", defaults.Scan.Exclude)

	v.SetDefault("outputs.def", defaults.Outputs.Def)
	v.SetDefault("outputs.index", defaults.Outputs.Index)
	v.SetDefault("outputs.auto_import", defaults.Outputs.AutoImport)
	v.SetDefault("outputs.db", defaults.Outputs.DB)
	v.SetDefault("outputs.api_header", defaults.Outputs.APIHeader)

	v.SetDefault("needs.vis", defaults.Needs.Vis)
	v.SetDefault("watch.debounce_ms", defaults.Watch.DebounceMs)
	v.SetDefault("cache.capacity", defaults.Cache.Capacity)
}
