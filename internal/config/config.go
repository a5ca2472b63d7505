package config

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/spf13/viper"
)

// Config holds application configuration.
type Config struct {
	History HistoryConfig
	UI      UIConfig
	Log     LogConfig
}

// HistoryConfig holds sqlite settings for the command transcript.
type HistoryConfig struct {
	Path string
}

// UIConfig holds presentation settings.
type UIConfig struct {
	HeadCount     int    `mapstructure:"head_count"`
	TailCount     int    `mapstructure:"tail_count"`
	CurrentMarker string `mapstructure:"current_marker"`
	Verbose       bool
}

// LogConfig holds file-logger settings. Logs go to a file because the TUI
// owns the terminal.
type LogConfig struct {
	Path  string
	Level string
}

// Load reads configuration from file and env. Env var overrides use prefix FRAMEWALK_.
func Load() (Config, error) {
	v := viper.New()

	// default values
	v.SetDefault("history.path", filepath.Join(os.Getenv("HOME"), ".local", "share", "framewalk", "history.db"))
	v.SetDefault("ui.head_count", 10)
	v.SetDefault("ui.tail_count", 10)
	v.SetDefault("ui.current_marker", "▶")
	v.SetDefault("ui.verbose", false)
	v.SetDefault("log.path", filepath.Join(os.Getenv("HOME"), ".local", "share", "framewalk", "framewalk.log"))
	v.SetDefault("log.level", "info")

	v.SetConfigType("toml")

	cfgPath := os.Getenv("FRAMEWALK_CONFIG")
	if cfgPath != "" {
		v.SetConfigFile(cfgPath)
	} else {
		v.AddConfigPath(filepath.Join(os.Getenv("HOME"), ".config", "framewalk"))
		v.SetConfigName("config")
	}

	v.SetEnvPrefix("FRAMEWALK")
	v.AutomaticEnv()
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))

	// read config file if present
	_ = v.ReadInConfig()

	var c Config
	if err := v.Unmarshal(&c); err != nil {
		return Config{}, fmt.Errorf("unmarshal config: %w", err)
	}
	return c, nil
}

// Save writes the provided config to disk, creating the config directory if
// needed. Used by the TUI settings surface for non-sensitive preferences.
func Save(cfg Config) error {
	path := os.Getenv("FRAMEWALK_CONFIG")
	if path == "" {
		path = filepath.Join(os.Getenv("HOME"), ".config", "framewalk", "config.toml")
	}
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return fmt.Errorf("mkdir config dir: %w", err)
	}

	v := viper.New()
	v.SetConfigType("toml")
	v.Set("history.path", cfg.History.Path)
	v.Set("ui.head_count", cfg.UI.HeadCount)
	v.Set("ui.tail_count", cfg.UI.TailCount)
	v.Set("ui.current_marker", cfg.UI.CurrentMarker)
	v.Set("ui.verbose", cfg.UI.Verbose)
	v.Set("log.path", cfg.Log.Path)
	v.Set("log.level", cfg.Log.Level)

	if err := v.WriteConfigAs(path); err != nil {
		return fmt.Errorf("write config: %w", err)
	}
	return nil
}
