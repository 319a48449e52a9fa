// ABOUTME: Dose configuration management with backend selection.
// ABOUTME: Handles settings, alert options, and the store factory function.

package config

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/harperreed/dose/internal/alert"
	"github.com/harperreed/dose/internal/store"
	"github.com/harperreed/dose/internal/trigger"
)

// Config stores dose tool configuration.
type Config struct {
	// Backend selects the storage backend: "badger" (default) or "charm".
	Backend string `json:"backend,omitempty"`

	// DataDir is the root directory for the badger backend's data.
	// Supports ~ expansion for home directory. Defaults to ~/.local/share/dose.
	DataDir string `json:"data_dir,omitempty"`

	// SnoozeMinutes is the default snooze duration for alerts. Defaults to 5.
	SnoozeMinutes int `json:"snooze_minutes,omitempty"`

	// Alert configures reminder sound behavior.
	Alert *alert.SoundOptions `json:"alert,omitempty"`

	// Channel configures the trigger notification channel.
	Channel *trigger.ChannelConfig `json:"channel,omitempty"`
}

// GetBackend returns the configured backend, defaulting to "badger".
func (c *Config) GetBackend() string {
	if c.Backend == "" {
		return "badger"
	}
	return c.Backend
}

// GetDataDir returns the configured data directory with ~ expanded,
// defaulting to the standard XDG data directory.
func (c *Config) GetDataDir() string {
	if c.DataDir == "" {
		return store.DataDir()
	}
	return ExpandPath(c.DataDir)
}

// GetSnoozeMinutes returns the default snooze duration in minutes.
func (c *Config) GetSnoozeMinutes() int {
	if c.SnoozeMinutes <= 0 {
		return 5
	}
	return c.SnoozeMinutes
}

// GetAlert returns the alert sound options, defaulting when unset.
func (c *Config) GetAlert() alert.SoundOptions {
	if c.Alert == nil {
		return alert.DefaultSoundOptions()
	}
	return *c.Alert
}

// GetChannel returns the notification channel config, defaulting when unset.
func (c *Config) GetChannel() trigger.ChannelConfig {
	if c.Channel == nil {
		return trigger.DefaultChannelConfig()
	}
	return *c.Channel
}

// ExpandPath expands a leading ~ to the user's home directory.
func ExpandPath(path string) string {
	if path == "" {
		return ""
	}
	if path == "~" {
		home, _ := os.UserHomeDir()
		return home
	}
	if strings.HasPrefix(path, "~/") {
		home, _ := os.UserHomeDir()
		return filepath.Join(home, path[2:])
	}
	return path
}

// OpenStore creates a Store implementation based on the configured backend.
func (c *Config) OpenStore() (store.Store, error) {
	switch c.GetBackend() {
	case "badger":
		return store.OpenBadger(c.GetDataDir())
	case "charm":
		return store.OpenCharm()
	default:
		return nil, fmt.Errorf("unknown backend: %q", c.Backend)
	}
}

// GetConfigPath returns the config file path.
func GetConfigPath() string {
	configDir := os.Getenv("XDG_CONFIG_HOME")
	if configDir == "" {
		homeDir, _ := os.UserHomeDir()
		configDir = filepath.Join(homeDir, ".config")
	}
	return filepath.Join(configDir, "dose", "config.json")
}

// Load reads config from disk.
func Load() (*Config, error) {
	path := GetConfigPath()
	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return &Config{}, nil
		}
		return nil, err
	}

	var cfg Config
	if err := json.Unmarshal(data, &cfg); err != nil {
		return nil, err
	}
	return &cfg, nil
}

// Save writes config to disk.
func (c *Config) Save() error {
	path := GetConfigPath()
	dir := filepath.Dir(path)
	if err := os.MkdirAll(dir, 0750); err != nil {
		return err
	}

	data, err := json.MarshalIndent(c, "", "  ")
	if err != nil {
		return err
	}
	return os.WriteFile(path, data, 0600)
}
