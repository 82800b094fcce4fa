package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"runtime"

	"gopkg.in/yaml.v3"
)

// ErrInvalid is returned when a loaded config cannot drive the viewer.
var ErrInvalid = errors.New("invalid config")

// Load loads configuration with priority: defaults < file < flags.
func Load() (*Config, error) {
	cfg := Default()

	configPath := ConfigPath()
	if configPath == "" {
		configPath = findConfigFile()
	}

	if configPath != "" {
		if err := loadFromFile(cfg, configPath); err != nil {
			return nil, fmt.Errorf("loading config from %s: %w", configPath, err)
		}
	}

	applyFlags(cfg)

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// Validate rejects values the renderer cannot work with.
func (c *Config) Validate() error {
	switch {
	case c.Graphics.Width <= 0 || c.Graphics.Height <= 0:
		return fmt.Errorf("%w: window size %dx%d", ErrInvalid, c.Graphics.Width, c.Graphics.Height)
	case c.Graphics.Near <= 0 || c.Graphics.Far <= c.Graphics.Near:
		return fmt.Errorf("%w: clip planes near=%g far=%g", ErrInvalid, c.Graphics.Near, c.Graphics.Far)
	case c.Shadow.Resolution <= 0:
		return fmt.Errorf("%w: shadow resolution %d", ErrInvalid, c.Shadow.Resolution)
	case c.Camera.Sensitivity <= 0:
		return fmt.Errorf("%w: camera sensitivity %g", ErrInvalid, c.Camera.Sensitivity)
	case c.Camera.Position == c.Camera.Target:
		return fmt.Errorf("%w: camera position equals target %v", ErrInvalid, c.Camera.Position)
	case c.Camera.Up == [3]float32{}:
		return fmt.Errorf("%w: camera up vector is zero", ErrInvalid)
	}
	return nil
}

// findConfigFile looks for config in standard locations.
func findConfigFile() string {
	candidates := []string{
		"./yardview.yaml",
		filepath.Join(ConfigDir(), "config.yaml"),
	}

	for _, path := range candidates {
		if _, err := os.Stat(path); err == nil {
			return path
		}
	}
	return ""
}

// ConfigDir returns the OS-appropriate config directory.
func ConfigDir() string {
	switch runtime.GOOS {
	case "darwin":
		home, _ := os.UserHomeDir()
		return filepath.Join(home, "Library", "Application Support", "Yardview")
	case "windows":
		return filepath.Join(os.Getenv("APPDATA"), "Yardview")
	default:
		if xdg := os.Getenv("XDG_CONFIG_HOME"); xdg != "" {
			return filepath.Join(xdg, "yardview")
		}
		home, _ := os.UserHomeDir()
		return filepath.Join(home, ".config", "yardview")
	}
}

// loadFromFile loads config from a YAML file, merging with existing values.
func loadFromFile(cfg *Config, path string) error {
	data, err := os.ReadFile(path)
	if err != nil {
		return err
	}
	return yaml.Unmarshal(data, cfg)
}
