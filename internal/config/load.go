package config

import (
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"runtime"

	"gopkg.in/yaml.v3"
)

// ErrInvalidConfig is returned by Validate.
var ErrInvalidConfig = errors.New("invalid config")

// Load loads configuration with priority: defaults < file < flags.
func Load() (*Config, error) {
	cfg := Default()

	// Explicit path takes priority over the standard locations
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

// Validate checks values that would make the simulation meaningless.
func (c *Config) Validate() error {
	if err := c.Movement.Validate(); err != nil {
		return fmt.Errorf("movement: %w", err)
	}
	if c.Simulation.TickRate <= 0 {
		return fmt.Errorf("%w: tick_rate %d must be positive", ErrInvalidConfig, c.Simulation.TickRate)
	}
	if c.Body.Radius <= 0 || c.Body.Height < 2*c.Body.Radius {
		return fmt.Errorf("%w: body %vx%v cannot hold its end spheres", ErrInvalidConfig, c.Body.Height, c.Body.Radius)
	}
	if c.Movement.Shapes.Standing.Height != c.Body.Height {
		return fmt.Errorf("%w: standing shape height %v differs from body height %v",
			ErrInvalidConfig, c.Movement.Shapes.Standing.Height, c.Body.Height)
	}
	for i, s := range c.World.Surfaces {
		if err := s.Validate(); err != nil {
			return fmt.Errorf("world surface %d: %w", i, err)
		}
	}
	return nil
}

// findConfigFile looks for config in standard locations.
func findConfigFile() string {
	candidates := []string{
		"./strider.yaml",
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
		return filepath.Join(home, "Library", "Application Support", "Strider")
	case "windows":
		return filepath.Join(os.Getenv("APPDATA"), "Strider")
	default: // Linux and others
		if xdg := os.Getenv("XDG_CONFIG_HOME"); xdg != "" {
			return filepath.Join(xdg, "strider")
		}
		home, _ := os.UserHomeDir()
		return filepath.Join(home, ".config", "strider")
	}
}

// loadFromFile merges a YAML file over cfg. Unknown keys are rejected so a
// misspelt tuning name does not silently fall back to its default.
func loadFromFile(cfg *Config, path string) error {
	f, err := os.Open(path)
	if err != nil {
		return err
	}
	defer f.Close()

	dec := yaml.NewDecoder(f)
	dec.KnownFields(true)
	if err := dec.Decode(cfg); err != nil && !errors.Is(err, io.EOF) {
		return err
	}
	return nil
}
