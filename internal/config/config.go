// Package config loads settings for the todo command.
//
// Sources, lowest to highest priority:
//  1. Defaults
//  2. User config file ($XDG_CONFIG_HOME/todo/config.toml or ~/.config/todo/config.toml)
//  3. Project config file (todo.toml in the current directory)
//  4. Explicit config file (-config)
//  5. Environment variables (TODO_FILE, TODO_THEME, TODO_LOG_LEVEL, TODO_LOG_FORMAT)
//
// CLI flags are applied on top by the caller.
package config

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"strings"

	"github.com/BurntSushi/toml"
)

const (
	DefaultDataFile  = "todolist.json"
	DefaultTheme     = "classic"
	DefaultLogLevel  = "warn"
	DefaultLogFormat = "text"

	ProjectFileName = "todo.toml"
)

// Config holds every setting the command reads.
type Config struct {
	DataFile string `toml:"data_file"`
	Theme    string `toml:"theme"`
	Log      Log    `toml:"log"`
}

type Log struct {
	Level  string `toml:"level"`
	Format string `toml:"format"`
}

// Default returns the built-in settings.
func Default() *Config {
	return &Config{
		DataFile: DefaultDataFile,
		Theme:    DefaultTheme,
		Log: Log{
			Level:  DefaultLogLevel,
			Format: DefaultLogFormat,
		},
	}
}

// Load layers the config sources. explicit may be empty; when set, the file
// must exist.
func Load(explicit string) (*Config, error) {
	cfg := Default()

	if p := userConfigFile(); p != "" {
		if err := loadOptionalFile(cfg, p); err != nil {
			return nil, fmt.Errorf("loading user config file %s: %w", p, err)
		}
	}
	if err := loadOptionalFile(cfg, ProjectFileName); err != nil {
		return nil, fmt.Errorf("loading project config file %s: %w", ProjectFileName, err)
	}
	if explicit != "" {
		if _, err := toml.DecodeFile(explicit, cfg); err != nil {
			return nil, fmt.Errorf("loading config file %s: %w", explicit, err)
		}
	}

	loadFromEnv(cfg)
	cfg.DataFile = ExpandPath(cfg.DataFile)
	return cfg, nil
}

func loadOptionalFile(cfg *Config, path string) error {
	if _, err := os.Stat(path); err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return nil
		}
		return err
	}
	_, err := toml.DecodeFile(path, cfg)
	return err
}

func userConfigFile() string {
	if dir := os.Getenv("XDG_CONFIG_HOME"); dir != "" {
		return filepath.Join(dir, "todo", "config.toml")
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return ""
	}
	return filepath.Join(home, ".config", "todo", "config.toml")
}

func loadFromEnv(cfg *Config) {
	if v := os.Getenv("TODO_FILE"); v != "" {
		cfg.DataFile = v
	}
	if v := os.Getenv("TODO_THEME"); v != "" {
		cfg.Theme = v
	}
	if v := os.Getenv("TODO_LOG_LEVEL"); v != "" {
		cfg.Log.Level = v
	}
	if v := os.Getenv("TODO_LOG_FORMAT"); v != "" {
		cfg.Log.Format = v
	}
}

// ExpandPath expands environment variables and a leading ~/.
func ExpandPath(p string) string {
	if p == "" {
		return p
	}
	expanded := os.ExpandEnv(p)
	if expanded == "~" || strings.HasPrefix(expanded, "~/") {
		home, err := os.UserHomeDir()
		if err != nil {
			return expanded
		}
		return filepath.Join(home, strings.TrimPrefix(expanded[1:], "/"))
	}
	return expanded
}
