// Package config handles simulation configuration loading and management.
package config

import (
	"github.com/go-gl/mathgl/mgl32"

	"github.com/Faultbox/strider/internal/locomotion"
	"github.com/Faultbox/strider/internal/world"
)

// Config holds all settings.
type Config struct {
	Movement   locomotion.Tuning `yaml:"movement"`
	Body       BodyConfig        `yaml:"body"`
	Simulation SimulationConfig  `yaml:"simulation"`
	World      WorldConfig       `yaml:"world"`
	Keybinds   KeybindConfig     `yaml:"keybinds"`
	Window     WindowConfig      `yaml:"window"`
	Logging    LoggingConfig     `yaml:"logging"`
}

// BodyConfig describes the player capsule and where it spawns.
type BodyConfig struct {
	Height float32    `yaml:"height"`
	Radius float32    `yaml:"radius"`
	Spawn  mgl32.Vec3 `yaml:"spawn,flow"`
	Yaw    float32    `yaml:"yaw"` // degrees
}

// SimulationConfig controls the tick driver.
type SimulationConfig struct {
	TickRate    int    `yaml:"tick_rate"` // ticks per second
	MaxTicks    int    `yaml:"max_ticks"` // 0 runs until the input ends
	Script      string `yaml:"script"`    // input script for headless runs
	Trace       string `yaml:"trace"`     // YAML trace output path
	Interactive bool   `yaml:"interactive"`
}

// WorldConfig lists the terrain surfaces.
type WorldConfig struct {
	Surfaces []world.Surface `yaml:"surfaces"`
}

// KeybindConfig maps logical buttons and axes to SDL key names. Stomp may
// name the crouch key or be left empty to share it.
type KeybindConfig struct {
	Jump     string `yaml:"jump"`
	Crouch   string `yaml:"crouch"`
	Stomp    string `yaml:"stomp"`
	Boost    string `yaml:"boost"`
	Forward  string `yaml:"forward"`
	Backward string `yaml:"backward"`
	Left     string `yaml:"left"`
	Right    string `yaml:"right"`
	Quit     string `yaml:"quit"`
}

// WindowConfig holds the interactive status window settings.
type WindowConfig struct {
	Width  int  `yaml:"width"`
	Height int  `yaml:"height"`
	VSync  bool `yaml:"vsync"`
}

// LoggingConfig holds logging settings.
type LoggingConfig struct {
	Level   string `yaml:"level"`
	LogFile string `yaml:"log_file"`
}

// Default returns a Config with sensible default values.
func Default() *Config {
	return &Config{
		Movement: locomotion.DefaultTuning(),
		Body: BodyConfig{
			Height: 2,
			Radius: 0.5,
			Spawn:  mgl32.Vec3{0, 1, 0},
		},
		Simulation: SimulationConfig{
			TickRate: 60,
		},
		World: WorldConfig{
			Surfaces: []world.Surface{
				{Name: "floor", Min: mgl32.Vec2{-50, -50}, Max: mgl32.Vec2{50, 10}},
				{Name: "ramp", Min: mgl32.Vec2{-5, 10}, Max: mgl32.Vec2{5, 20}, Angle: 30},
				{Name: "wall", Min: mgl32.Vec2{-5, 20}, Max: mgl32.Vec2{5, 24}, Height: 5.7735, Angle: 60},
			},
		},
		Keybinds: KeybindConfig{
			Jump:     "Space",
			Crouch:   "Left Ctrl",
			Stomp:    "Left Ctrl",
			Boost:    "Left Shift",
			Forward:  "W",
			Backward: "S",
			Left:     "A",
			Right:    "D",
			Quit:     "Escape",
		},
		Window: WindowConfig{
			Width:  640,
			Height: 360,
			VSync:  true,
		},
		Logging: LoggingConfig{
			Level:   "info",
			LogFile: "",
		},
	}
}
