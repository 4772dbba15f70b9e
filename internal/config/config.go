// Package config handles the XDG configuration directory, settings file
// and credential paths.
package config

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"

	"gopkg.in/yaml.v3"
)

const (
	// AppName is the application directory name.
	AppName = "taskflow"

	// SettingsFile is the YAML settings filename.
	SettingsFile = "config.yaml"

	// TokenFile is the stored session token filename.
	TokenFile = "token.json"
)

// Settings are the service endpoints read from config.yaml.
type Settings struct {
	// APIURL is the base URL of the TaskFlow API.
	APIURL string `yaml:"api_url"`

	// AuthURL is the base URL of the identity provider.
	AuthURL string `yaml:"auth_url"`

	// ClientID is the public client identifier sent on auth requests.
	ClientID string `yaml:"client_id"`
}

// Config holds configuration paths and settings.
type Config struct {
	// Dir is the configuration directory path.
	Dir string

	// Settings are the endpoints loaded from config.yaml (defaults if the
	// file is absent).
	Settings Settings

	// Debug enables debug logging.
	Debug bool

	// Quiet suppresses informational output.
	Quiet bool
}

// DefaultSettings point at the hosted TaskFlow service.
var DefaultSettings = Settings{
	APIURL:   "https://taskflow.app",
	AuthURL:  "https://auth.taskflow.app",
	ClientID: "taskflow-cli",
}

// New creates a Config with the default or specified config directory and
// loads config.yaml if present.
func New(configDir string) (*Config, error) {
	dir := configDir
	if dir == "" {
		dir = DefaultConfigDir()
	}
	cfg := &Config{Dir: dir, Settings: DefaultSettings}
	if err := cfg.loadSettings(); err != nil {
		return nil, err
	}
	return cfg, nil
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

func (c *Config) loadSettings() error {
	data, err := os.ReadFile(c.SettingsPath())
	if errors.Is(err, fs.ErrNotExist) {
		return nil
	}
	if err != nil {
		return fmt.Errorf("failed to read %s: %w", SettingsFile, err)
	}
	var s Settings
	if err := yaml.Unmarshal(data, &s); err != nil {
		return fmt.Errorf("invalid %s: %w", SettingsFile, err)
	}
	if s.APIURL != "" {
		c.Settings.APIURL = s.APIURL
	}
	if s.AuthURL != "" {
		c.Settings.AuthURL = s.AuthURL
	}
	if s.ClientID != "" {
		c.Settings.ClientID = s.ClientID
	}
	return nil
}

// SettingsPath returns the path to the YAML settings file.
func (c *Config) SettingsPath() string {
	return filepath.Join(c.Dir, SettingsFile)
}

// TokenPath returns the path to the stored session token file.
func (c *Config) TokenPath() string {
	return filepath.Join(c.Dir, TokenFile)
}

// EnsureDir creates the config directory if it doesn't exist.
// Directory is created with mode 0700.
func (c *Config) EnsureDir() error {
	return os.MkdirAll(c.Dir, 0700)
}

// HasToken checks if the token file exists.
func (c *Config) HasToken() bool {
	_, err := os.Stat(c.TokenPath())
	return err == nil
}

// RemoveToken deletes the token file.
func (c *Config) RemoveToken() error {
	return os.Remove(c.TokenPath())
}
