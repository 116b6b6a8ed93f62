// Package config provides configuration loading for the slidie CLI.
//
// Configuration is loaded using Viper from an optional YAML file plus
// environment variable overrides. Every setting has a default, so slidie
// works without any configuration.
//
// Configuration priority (highest to lowest):
//  1. Command-line flags (applied by the CLI)
//  2. Environment variables (SLIDIE_ prefix, e.g. SLIDIE_OUTPUT_FORMAT)
//  3. Config file specified by SLIDIE_CONFIG_PATH
//  4. User config directory (e.g. ~/.config/slidie/slidie.yaml)
//  5. ./slidie.yaml
//  6. [DefaultConfig] defaults
package config

// Config is the root configuration.
type Config struct {
	Output OutputConfig `mapstructure:"output"`
	Log    LogConfig    `mapstructure:"log"`
	Cache  CacheConfig  `mapstructure:"cache"`
}

// OutputConfig controls how results are printed.
type OutputConfig struct {
	// Format is the default output format of "slidie steps":
	// text or json.
	Format string `mapstructure:"format"`

	// Color enables terminal colors in text output.
	Color bool `mapstructure:"color"`
}

// LogConfig controls diagnostic logging.
type LogConfig struct {
	// Level is one of debug, info, warn or error.
	Level string `mapstructure:"level"`
}

// CacheConfig controls the rendered output cache.
type CacheConfig struct {
	// Enabled turns the cache on.
	Enabled bool `mapstructure:"enabled"`

	// Dir overrides the cache directory. Empty means the platform's user
	// cache directory.
	Dir string `mapstructure:"dir"`
}

// DefaultConfig returns the built-in defaults.
func DefaultConfig() *Config {
	return &Config{
		Output: OutputConfig{
			Format: "text",
			Color:  true,
		},
		Log: LogConfig{
			Level: "info",
		},
		Cache: CacheConfig{
			Enabled: true,
		},
	}
}
