package config

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"strings"

	"github.com/BurntSushi/toml"
	"github.com/kastheco/dye/log"
)

const (
	ConfigFileName = "config.toml"
	defaultShell   = "posix"
)

// Environment variables read by dye.
const (
	EnvDir         = "DYE_DIR"
	EnvThemeFile   = "DYE_THEME_FILE"
	EnvPatternFile = "DYE_PATTERN_FILE"
	EnvColors      = "DYE_COLORS"
	EnvLogFile     = "DYE_LOG_FILE"
	EnvNoColor     = "NO_COLOR"
)

// GetConfigDir returns the dye configuration directory: $DYE_DIR when set,
// otherwise $XDG_CONFIG_HOME/dye, otherwise ~/.config/dye. The directory is
// not created.
func GetConfigDir() (string, error) {
	if dir := os.Getenv(EnvDir); dir != "" {
		return ExpandHome(dir), nil
	}
	if xdg := os.Getenv("XDG_CONFIG_HOME"); xdg != "" {
		return filepath.Join(xdg, "dye"), nil
	}
	homeDir, err := os.UserHomeDir()
	if err != nil {
		return "", fmt.Errorf("failed to get config home directory: %w", err)
	}
	return filepath.Join(homeDir, ".config", "dye"), nil
}

// Config represents the optional config.toml in the config directory.
type Config struct {
	// Theme is the default theme, either a name under themes/ or a path.
	Theme string `toml:"theme"`
	// Pattern is the default pattern, either a name under patterns/ or a path.
	Pattern string `toml:"pattern"`
	// Shell selects the assignment syntax of apply: "posix" or "fish".
	Shell string `toml:"shell"`
	// Comment makes apply annotate its output.
	Comment bool `toml:"comment"`
	// LogFile enables the rotating log file when DYE_LOG_FILE is not set.
	LogFile string `toml:"log_file"`
}

// fileConfig mirrors Config with pointer fields so we can distinguish
// "not set" from zero values when merging.
type fileConfig struct {
	Theme   *string `toml:"theme"`
	Pattern *string `toml:"pattern"`
	Shell   *string `toml:"shell"`
	Comment *bool   `toml:"comment"`
	LogFile *string `toml:"log_file"`
}

// DefaultConfig returns the default configuration
func DefaultConfig() *Config {
	return &Config{Shell: defaultShell}
}

// LoadConfig reads config.toml from the config directory. A missing or
// broken file is logged and the defaults are used.
func LoadConfig() *Config {
	configDir, err := GetConfigDir()
	if err != nil {
		log.ErrorLog.Printf("failed to get config directory: %v", err)
		return DefaultConfig()
	}

	cfg, err := LoadConfigFrom(filepath.Join(configDir, ConfigFileName))
	if err != nil {
		if !errors.Is(err, fs.ErrNotExist) {
			log.WarningLog.Printf("failed to load config file: %v", err)
		}
		return DefaultConfig()
	}
	return cfg
}

// LoadConfigFrom reads a config file and overlays it on the defaults.
func LoadConfigFrom(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}

	var fc fileConfig
	if _, err := toml.Decode(string(data), &fc); err != nil {
		return nil, fmt.Errorf("failed to parse %s: %w", path, err)
	}

	cfg := DefaultConfig()
	if fc.Theme != nil {
		cfg.Theme = *fc.Theme
	}
	if fc.Pattern != nil {
		cfg.Pattern = *fc.Pattern
	}
	if fc.Shell != nil {
		cfg.Shell = *fc.Shell
	}
	if fc.Comment != nil {
		cfg.Comment = *fc.Comment
	}
	if fc.LogFile != nil {
		cfg.LogFile = ExpandHome(*fc.LogFile)
	}
	return cfg, nil
}

// LogFilePath returns $DYE_LOG_FILE, falling back to the config file setting.
func (c *Config) LogFilePath() string {
	if f := os.Getenv(EnvLogFile); f != "" {
		return ExpandHome(f)
	}
	return c.LogFile
}

// ExpandHome replaces a leading ~ with the user's home directory.
func ExpandHome(path string) string {
	if path != "~" && !strings.HasPrefix(path, "~/") {
		return path
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return path
	}
	if path == "~" {
		return home
	}
	return filepath.Join(home, path[2:])
}
