// Package config handles configuration file loading and parsing.
package config

import (
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/pelletier/go-toml/v2"
	"gopkg.in/yaml.v3"
)

// Default configuration values.
const (
	DefaultPosition = PositionTopRight
	DefaultOffset   = 16
	DefaultTheme    = "default"
)

// ErrUnknownFormat is returned by Encode for an unsupported output format.
var ErrUnknownFormat = errors.New("unknown config format")

// Config represents the countdown configuration.
type Config struct {
	Alert AlertConfig `toml:"alert" yaml:"alert" json:"alert"`
	TUI   TUIConfig   `toml:"tui" yaml:"tui" json:"tui"`
	GUI   GUIConfig   `toml:"gui" yaml:"gui" json:"gui"`
}

// AlertConfig holds the alarm settings.
type AlertConfig struct {
	Sound  string `toml:"sound" yaml:"sound" json:"sound"`    // wav/ogg/mp3; empty = built-in bell
	Notify bool   `toml:"notify" yaml:"notify" json:"notify"` // Desktop notification on expiry
}

// TUIConfig holds TUI-specific settings.
type TUIConfig struct {
	ShowHelp      bool `toml:"show_help" yaml:"show_help" json:"show_help"`
	AltScreen     bool `toml:"alt_screen" yaml:"alt_screen" json:"alt_screen"`
	ReleaseOnBlur bool `toml:"release_on_blur" yaml:"release_on_blur" json:"release_on_blur"`
}

// GUIConfig holds GTK window settings.
type GUIConfig struct {
	Overlay  bool   `toml:"overlay" yaml:"overlay" json:"overlay"` // Layer-shell overlay instead of a normal window
	Theme    string `toml:"theme" yaml:"theme" json:"theme"`       // Theme name or path to a .css file
	Position string `toml:"position" yaml:"position" json:"position"`
	OffsetX  int    `toml:"offset_x" yaml:"offset_x" json:"offset_x"`
	OffsetY  int    `toml:"offset_y" yaml:"offset_y" json:"offset_y"`
}

// Position represents an overlay corner on screen.
type Position string

const (
	PositionTopLeft     Position = "top-left"
	PositionTopRight    Position = "top-right"
	PositionBottomLeft  Position = "bottom-left"
	PositionBottomRight Position = "bottom-right"
)

// ValidPositions returns all valid position values.
func ValidPositions() []Position {
	return []Position{
		PositionTopLeft,
		PositionTopRight,
		PositionBottomLeft,
		PositionBottomRight,
	}
}

// DefaultConfig returns a Config with default values.
func DefaultConfig() *Config {
	return &Config{
		Alert: AlertConfig{
			Sound:  "", // Built-in bell
			Notify: false,
		},
		TUI: TUIConfig{
			ShowHelp:      true,
			AltScreen:     true,
			ReleaseOnBlur: true,
		},
		GUI: GUIConfig{
			Overlay:  false,
			Theme:    DefaultTheme,
			Position: string(DefaultPosition),
			OffsetX:  DefaultOffset,
			OffsetY:  DefaultOffset,
		},
	}
}

// ConfigPath returns the path to the config file.
// Uses XDG_CONFIG_HOME if set, otherwise ~/.config.
func ConfigPath() string {
	configHome := os.Getenv("XDG_CONFIG_HOME")
	if configHome == "" {
		home, err := os.UserHomeDir()
		if err != nil {
			return ""
		}
		configHome = filepath.Join(home, ".config")
	}
	return filepath.Join(configHome, "countdown", "config.toml")
}

// LoadConfig loads configuration from the specified path.
// If path is empty, uses the default config path.
// Returns default config if file doesn't exist.
func LoadConfig(path string) (*Config, error) {
	if path == "" {
		path = ConfigPath()
	}

	cfg := DefaultConfig()

	data, err := os.ReadFile(path)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return cfg, nil
		}
		return nil, fmt.Errorf("failed to read config file: %w", err)
	}

	if err := toml.Unmarshal(data, cfg); err != nil {
		return nil, fmt.Errorf("failed to parse config file: %w", err)
	}

	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid configuration: %w", err)
	}

	return cfg, nil
}

// Save writes the configuration to the specified path.
// Creates parent directories if needed.
func (c *Config) Save(path string) error {
	if path == "" {
		path = ConfigPath()
	}

	dir := filepath.Dir(path)
	if err := os.MkdirAll(dir, 0755); err != nil {
		return fmt.Errorf("failed to create config directory: %w", err)
	}

	data, err := toml.Marshal(c)
	if err != nil {
		return fmt.Errorf("failed to marshal config: %w", err)
	}

	// Write atomically
	tmpPath := path + ".tmp"
	if err := os.WriteFile(tmpPath, data, 0644); err != nil {
		return fmt.Errorf("failed to write config file: %w", err)
	}
	return os.Rename(tmpPath, path)
}

// Validate checks if the configuration is valid.
func (c *Config) Validate() error {
	validPos := false
	for _, p := range ValidPositions() {
		if c.GUI.Position == string(p) {
			validPos = true
			break
		}
	}
	if !validPos {
		return fmt.Errorf("invalid position %q, must be one of: %v", c.GUI.Position, ValidPositions())
	}

	if c.GUI.OffsetX < 0 || c.GUI.OffsetY < 0 {
		return fmt.Errorf("offsets must not be negative, got %d,%d", c.GUI.OffsetX, c.GUI.OffsetY)
	}

	return nil
}

// Encode renders the configuration as toml, yaml or json.
func (c *Config) Encode(format string) ([]byte, error) {
	switch strings.ToLower(format) {
	case "", "toml":
		return toml.Marshal(c)
	case "yaml", "yml":
		return yaml.Marshal(c)
	case "json":
		data, err := json.MarshalIndent(c, "", "  ")
		if err != nil {
			return nil, err
		}
		return append(data, '\n'), nil
	default:
		return nil, fmt.Errorf("%w: %q", ErrUnknownFormat, format)
	}
}
