// pkg/config/config.go
package config

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strconv"

	"gopkg.in/yaml.v3"
)

// GameConfig contains configuration for an orbit game
type GameConfig struct {
	GridExtent     int             `json:"gridExtent" yaml:"gridExtent"`
	Players        int             `json:"players" yaml:"players"`
	GravityEnabled bool            `json:"gravityEnabled" yaml:"gravityEnabled"`
	Attractor      AttractorConfig `json:"attractor" yaml:"attractor"`
	Window         WindowConfig    `json:"window" yaml:"window"`
	DarkMode       bool            `json:"darkMode" yaml:"darkMode"`
	SavePath       string          `json:"savePath" yaml:"savePath"`
}

// AttractorConfig is the grid position gravity pulls toward
type AttractorConfig struct {
	X int `json:"x" yaml:"x"`
	Y int `json:"y" yaml:"y"`
}

// WindowConfig contains window-related configuration
type WindowConfig struct {
	Width      int    `json:"width" yaml:"width"`
	Height     int    `json:"height" yaml:"height"`
	Fullscreen bool   `json:"fullscreen" yaml:"fullscreen"`
	Title      string `json:"title" yaml:"title"`
}

// LoadConfig loads a configuration from a file. YAML files are
// recognized by extension; everything else parses as JSON.
func LoadConfig(path string) (*GameConfig, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read config file: %w", err)
	}

	var config GameConfig
	switch filepath.Ext(path) {
	case ".yaml", ".yml":
		if err := yaml.Unmarshal(data, &config); err != nil {
			return nil, fmt.Errorf("failed to parse config file: %w", err)
		}
	default:
		if err := json.Unmarshal(data, &config); err != nil {
			return nil, fmt.Errorf("failed to parse config file: %w", err)
		}
	}

	if err := config.Validate(); err != nil {
		return nil, err
	}
	return &config, nil
}

// SaveConfig saves a configuration to a JSON file
func SaveConfig(config *GameConfig, path string) error {
	data, err := json.MarshalIndent(config, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to marshal config: %w", err)
	}

	if err := os.WriteFile(path, data, 0o644); err != nil {
		return fmt.Errorf("failed to write config file: %w", err)
	}

	return nil
}

// Validate checks the invariants the simulation core depends on
func (c *GameConfig) Validate() error {
	if c.GridExtent <= 0 {
		return fmt.Errorf("gridExtent must be positive, got %d", c.GridExtent)
	}
	if c.Players < 1 {
		return fmt.Errorf("players must be at least 1, got %d", c.Players)
	}
	if c.Window.Width <= 0 || c.Window.Height <= 0 {
		return fmt.Errorf("window size must be positive, got %dx%d", c.Window.Width, c.Window.Height)
	}
	return nil
}

// ApplyEnvOverrides overlays ORBIT_* environment variables onto the
// config. Unset variables leave the config untouched; malformed values
// are an error rather than a silent default.
func ApplyEnvOverrides(c *GameConfig) error {
	if v := os.Getenv("ORBIT_GRID_EXTENT"); v != "" {
		n, err := strconv.Atoi(v)
		if err != nil {
			return fmt.Errorf("invalid ORBIT_GRID_EXTENT %q: %w", v, err)
		}
		c.GridExtent = n
	}
	if v := os.Getenv("ORBIT_PLAYERS"); v != "" {
		n, err := strconv.Atoi(v)
		if err != nil {
			return fmt.Errorf("invalid ORBIT_PLAYERS %q: %w", v, err)
		}
		c.Players = n
	}
	if v := os.Getenv("ORBIT_GRAVITY"); v != "" {
		b, err := strconv.ParseBool(v)
		if err != nil {
			return fmt.Errorf("invalid ORBIT_GRAVITY %q: %w", v, err)
		}
		c.GravityEnabled = b
	}
	if v := os.Getenv("ORBIT_DARK_MODE"); v != "" {
		b, err := strconv.ParseBool(v)
		if err != nil {
			return fmt.Errorf("invalid ORBIT_DARK_MODE %q: %w", v, err)
		}
		c.DarkMode = b
	}
	if v := os.Getenv("ORBIT_SAVE_PATH"); v != "" {
		c.SavePath = v
	}
	return c.Validate()
}

// DefaultConfig returns a default game configuration: a two-player
// 40x40 grid with gravity pulling toward the origin.
func DefaultConfig() *GameConfig {
	return &GameConfig{
		GridExtent:     40,
		Players:        2,
		GravityEnabled: true,
		Attractor:      AttractorConfig{X: 0, Y: 0},
		Window: WindowConfig{
			Width:  1600,
			Height: 900,
			Title:  "Orbit",
		},
		DarkMode: true,
		SavePath: "game_state.json",
	}
}
