// Package config handles the XDG configuration directory and settings file.
package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/spf13/viper"

	"taskpad/internal/task"
)

const (
	// AppName is the application directory name.
	AppName = "taskpad"

	// SettingsFile is the optional settings filename inside the config dir.
	SettingsFile = "config.yaml"

	// EnvPrefix prefixes environment overrides, e.g. TASKPAD_STORAGE_BACKEND.
	EnvPrefix = "TASKPAD"
)

// Storage backends.
const (
	BackendFile   = "file"
	BackendSQLite = "sqlite"
)

// ErrInvalidSetting is returned by Load for values it cannot accept.
var ErrInvalidSetting = errors.New("invalid setting")

// Config holds configuration paths and settings.
type Config struct {
	// Dir is the configuration directory path.
	Dir string

	// Debug enables debug logging.
	Debug bool

	// Quiet suppresses informational output.
	Quiet bool

	// Backend is the slot backend, BackendFile or BackendSQLite.
	Backend string

	// DataPath is the data directory (file) or database file (sqlite).
	DataPath string

	// DefaultCategory is used by add when no category is given.
	DefaultCategory task.Category

	// LogFile, when set, receives JSON logs at LogLevel.
	LogFile  string
	LogLevel string
}

// New creates a new Config with the default or specified config directory
// and default settings. If configDir is empty, uses XDG_CONFIG_HOME/taskpad
// or $HOME/.config/taskpad.
func New(configDir string) (*Config, error) {
	dir := configDir
	if dir == "" {
		dir = DefaultConfigDir()
	}
	return &Config{
		Dir:             dir,
		Backend:         BackendFile,
		DefaultCategory: task.Personal,
		LogLevel:        "info",
	}, nil
}

// DefaultConfigDir returns the default configuration directory.
// Uses XDG_CONFIG_HOME if set, otherwise $HOME/.config.
func DefaultConfigDir() string {
	if xdg := os.Getenv("XDG_CONFIG_HOME"); xdg != "" {
		return filepath.Join(xdg, AppName)
	}
	home, err := os.UserHomeDir()
	if err != nil {
		// Fallback to current directory if home can't be determined
		return AppName
	}
	return filepath.Join(home, ".config", AppName)
}

// SettingsPath returns the path to the settings file.
func (c *Config) SettingsPath() string {
	return filepath.Join(c.Dir, SettingsFile)
}

// Load reads the settings file (if present) and TASKPAD_* environment
// overrides into c.
func (c *Config) Load() error {
	v := viper.New()
	v.SetConfigType("yaml")
	v.SetEnvPrefix(EnvPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	v.SetDefault("storage.backend", c.Backend)
	v.SetDefault("storage.path", "")
	v.SetDefault("tasks.default_category", string(c.DefaultCategory))
	v.SetDefault("log.file", c.LogFile)
	v.SetDefault("log.level", c.LogLevel)

	if _, err := os.Stat(c.SettingsPath()); err == nil {
		v.SetConfigFile(c.SettingsPath())
		if err := v.ReadInConfig(); err != nil {
			return fmt.Errorf("failed to read %s: %w", SettingsFile, err)
		}
	}

	backend := strings.ToLower(strings.TrimSpace(v.GetString("storage.backend")))
	switch backend {
	case BackendFile, BackendSQLite:
	default:
		return fmt.Errorf("%w: storage.backend: %s", ErrInvalidSetting, backend)
	}
	c.Backend = backend

	category, err := task.ParseCategory(v.GetString("tasks.default_category"))
	if err != nil {
		return fmt.Errorf("%w: tasks.default_category: %v", ErrInvalidSetting, err)
	}
	c.DefaultCategory = category

	c.DataPath = v.GetString("storage.path")
	c.LogFile = v.GetString("log.file")
	c.LogLevel = v.GetString("log.level")
	return nil
}

// ResolvedDataPath returns DataPath, or the backend's default location under Dir.
func (c *Config) ResolvedDataPath() string {
	if c.DataPath != "" {
		return c.DataPath
	}
	if c.Backend == BackendSQLite {
		return filepath.Join(c.Dir, AppName+".db")
	}
	return filepath.Join(c.Dir, "data")
}

// EnsureDir creates the config directory if it doesn't exist.
// Directory is created with mode 0700.
func (c *Config) EnsureDir() error {
	return os.MkdirAll(c.Dir, 0700)
}
