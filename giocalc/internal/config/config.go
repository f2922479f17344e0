// Package config loads giocalc settings.
//
// Values are layered, lowest first: built-in defaults, the config file
// (TOML or YAML, chosen by extension), GIOCALC_* environment variables, and
// command line flags.
package config

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/BurntSushi/toml"
	"github.com/fjl/giocalc/giocalc/internal/calc"
	"github.com/spf13/pflag"
	"github.com/spf13/viper"
	"gopkg.in/yaml.v3"
)

const envPrefix = "GIOCALC"

// Config holds all settings.
type Config struct {
	LogLevel     string        `mapstructure:"log_level"`
	ErrorReset   string        `mapstructure:"error_reset"`
	ErrorDisplay time.Duration `mapstructure:"error_display"`
	ErrorText    string        `mapstructure:"error_text"`
	Transcript   string        `mapstructure:"transcript"`
	Window       WindowConfig  `mapstructure:"window"`
}

// WindowConfig is the initial desktop window size in dp.
type WindowConfig struct {
	Width  int `mapstructure:"width"`
	Height int `mapstructure:"height"`
}

// Default returns the built-in settings.
func Default() Config {
	return Config{
		LogLevel:     "info",
		ErrorReset:   calc.ResetDelayed.String(),
		ErrorDisplay: calc.DefaultErrorDelay,
		ErrorText:    calc.DefaultErrorText,
		Window:       WindowConfig{Width: 400, Height: 600},
	}
}

// ResetMode returns the parsed error_reset setting.
func (c Config) ResetMode() (calc.ResetMode, error) {
	m, err := calc.ParseResetMode(c.ErrorReset)
	if err != nil {
		return m, fmt.Errorf("error_reset: %w", err)
	}
	return m, nil
}

// flagKeys maps command line flags to config keys.
var flagKeys = map[string]string{
	"log-level":     "log_level",
	"error-reset":   "error_reset",
	"error-display": "error_display",
	"transcript":    "transcript",
}

// DefaultPath returns the config file used when none is given.
func DefaultPath() (string, error) {
	dir, err := os.UserConfigDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(dir, "giocalc", "config.toml"), nil
}

// Load reads the settings. If path is empty, the default path is tried and
// may be missing. Flags that were set on the command line override the file
// and environment; flags may be nil.
func Load(path string, flags *pflag.FlagSet) (Config, error) {
	explicit := path != ""
	if !explicit {
		p, err := DefaultPath()
		if err == nil {
			path = p
		}
	}

	cfg := Default()
	v := viper.New()
	v.SetDefault("log_level", cfg.LogLevel)
	v.SetDefault("error_reset", cfg.ErrorReset)
	v.SetDefault("error_display", cfg.ErrorDisplay)
	v.SetDefault("error_text", cfg.ErrorText)
	v.SetDefault("transcript", cfg.Transcript)
	v.SetDefault("window.width", cfg.Window.Width)
	v.SetDefault("window.height", cfg.Window.Height)

	if path != "" {
		m, err := readFile(path)
		switch {
		case err == nil:
			if err := v.MergeConfigMap(m); err != nil {
				return Config{}, fmt.Errorf("config %s: %w", path, err)
			}
		case os.IsNotExist(err) && !explicit:
			// no config file
		default:
			return Config{}, fmt.Errorf("config %s: %w", path, err)
		}
	}

	v.SetEnvPrefix(envPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	if flags != nil {
		for name, key := range flagKeys {
			if f := flags.Lookup(name); f != nil {
				if err := v.BindPFlag(key, f); err != nil {
					return Config{}, err
				}
			}
		}
	}

	if err := v.Unmarshal(&cfg); err != nil {
		return Config{}, fmt.Errorf("config: %w", err)
	}
	cfg.Transcript = expandPath(cfg.Transcript)
	if err := cfg.Validate(); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

// Validate checks all settings.
func (c Config) Validate() error {
	switch strings.ToLower(c.LogLevel) {
	case "trace", "debug", "info", "warn", "error":
	default:
		return fmt.Errorf("log_level: unknown level %q", c.LogLevel)
	}
	if _, err := c.ResetMode(); err != nil {
		return err
	}
	if c.ErrorDisplay <= 0 {
		return fmt.Errorf("error_display must be positive, got %v", c.ErrorDisplay)
	}
	if strings.TrimSpace(c.ErrorText) == "" {
		return fmt.Errorf("error_text must not be empty")
	}
	if c.Window.Width <= 0 || c.Window.Height <= 0 {
		return fmt.Errorf("window size must be positive, got %dx%d", c.Window.Width, c.Window.Height)
	}
	return nil
}

// readFile decodes a config file into a generic map.
func readFile(path string) (map[string]any, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	m := make(map[string]any)
	switch ext := strings.ToLower(filepath.Ext(path)); ext {
	case ".toml":
		if _, err := toml.Decode(string(data), &m); err != nil {
			return nil, err
		}
	case ".yaml", ".yml":
		if err := yaml.Unmarshal(data, &m); err != nil {
			return nil, err
		}
	default:
		return nil, fmt.Errorf("unsupported config format %q", ext)
	}
	return m, nil
}

func expandPath(p string) string {
	if p == "" {
		return p
	}
	p = os.ExpandEnv(p)
	if strings.HasPrefix(p, "~/") {
		if home, err := os.UserHomeDir(); err == nil {
			p = filepath.Join(home, p[2:])
		}
	}
	return p
}
