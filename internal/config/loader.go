package config

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/spf13/viper"
)

const (
	appName    = "slidie"
	envPrefix  = "SLIDIE"
	configName = "slidie.yaml"
)

// Loader reads configuration with Viper.
type Loader struct {
	v *viper.Viper
}

// NewLoader returns a Loader with defaults and SLIDIE_ environment
// overrides registered.
func NewLoader() *Loader {
	v := viper.New()
	v.SetConfigType("yaml")
	v.SetEnvPrefix(envPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	d := DefaultConfig()
	v.SetDefault("output.format", d.Output.Format)
	v.SetDefault("output.color", d.Output.Color)
	v.SetDefault("log.level", d.Log.Level)
	v.SetDefault("cache.enabled", d.Cache.Enabled)
	v.SetDefault("cache.dir", d.Cache.Dir)

	return &Loader{v: v}
}

// Load reads the first config file found in the search path, if any, and
// returns the resulting configuration.
func (l *Loader) Load() (*Config, error) {
	if path := findConfigFile(); path != "" {
		return l.LoadFromFile(path)
	}
	return l.unmarshal()
}

// LoadFromFile reads the config file at path.
func (l *Loader) LoadFromFile(path string) (*Config, error) {
	l.v.SetConfigFile(path)
	if err := l.v.ReadInConfig(); err != nil {
		return nil, fmt.Errorf("error reading config file: %w", err)
	}
	return l.unmarshal()
}

func (l *Loader) unmarshal() (*Config, error) {
	var cfg Config
	if err := l.v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("error parsing config: %w", err)
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return &cfg, nil
}

// Validate checks that every setting holds a known value.
func (c *Config) Validate() error {
	switch c.Output.Format {
	case "text", "json":
	default:
		return fmt.Errorf("output.format: unknown format %q (must be text or json)", c.Output.Format)
	}
	switch strings.ToLower(c.Log.Level) {
	case "debug", "info", "warn", "error":
	default:
		return fmt.Errorf("log.level: unknown level %q", c.Log.Level)
	}
	return nil
}

// findConfigFile returns the highest priority config file which exists,
// or "" if there is none.
func findConfigFile() string {
	if path := os.Getenv(envPrefix + "_CONFIG_PATH"); path != "" {
		return path
	}
	var candidates []string
	if dir, err := os.UserConfigDir(); err == nil {
		candidates = append(candidates, filepath.Join(dir, appName, configName))
	}
	candidates = append(candidates, configName)

	for _, path := range candidates {
		if _, err := os.Stat(path); err == nil {
			return path
		}
	}
	return ""
}

// CacheDir returns the configured cache directory, defaulting to slidie's
// directory below the user cache dir.
func (c *Config) CacheDir() (string, error) {
	if c.Cache.Dir != "" {
		return c.Cache.Dir, nil
	}
	dir, err := os.UserCacheDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(dir, appName), nil
}
