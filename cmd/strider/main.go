// Package main is the entry point for the strider movement sandbox.
package main

import (
	"context"
	"errors"
	"fmt"
	"os"
	"os/signal"

	"go.uber.org/zap"

	"github.com/Faultbox/strider/internal/config"
	"github.com/Faultbox/strider/internal/input"
	"github.com/Faultbox/strider/internal/logger"
	"github.com/Faultbox/strider/internal/sim"
	"github.com/Faultbox/strider/internal/window"
)

func main() {
	// Parse CLI flags first
	config.ParseFlags()

	cfg, err := config.Load()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Config error: %v\n", err)
		os.Exit(1)
	}

	if err := logger.Init(cfg.Logging.Level, cfg.Logging.LogFile); err != nil {
		fmt.Fprintf(os.Stderr, "Logger error: %v\n", err)
		os.Exit(1)
	}
	defer logger.Sync()

	logger.Info("=== Strider ===")
	logger.Sugar.Debugf("Config: %+v", cfg)

	if config.SaveRequested() {
		if err := cfg.Save(); err != nil {
			logger.Error("failed to save config", zap.Error(err))
			logger.Sync()
			os.Exit(1)
		}
		logger.Info("config saved", zap.String("dir", config.ConfigDir()))
		return
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()

	if cfg.Simulation.Interactive {
		err = runInteractive(ctx, cfg)
	} else {
		err = runScript(ctx, cfg)
	}
	if err != nil {
		logger.Error("run failed", zap.Error(err))
		logger.Sync()
		os.Exit(1)
	}
	logger.Info("closed normally")
}

// runScript replays an input script headlessly.
func runScript(ctx context.Context, cfg *config.Config) error {
	if cfg.Simulation.Script == "" {
		return errors.New("no input script given; use -script or -interactive")
	}
	script, err := input.LoadScript(cfg.Simulation.Script)
	if err != nil {
		return err
	}

	r, err := sim.New(cfg, script, logger.Named("sim"))
	if err != nil {
		return err
	}
	if _, err := r.Run(ctx, cfg.Simulation.MaxTicks); err != nil {
		return err
	}
	if cfg.Simulation.Trace != "" {
		return r.WriteTrace(cfg.Simulation.Trace)
	}
	return nil
}

// runInteractive drives the simulation from the keyboard at a fixed tick
// rate and shows the status in a window until the window closes or ctx ends.
func runInteractive(ctx context.Context, cfg *config.Config) error {
	k := cfg.Keybinds
	bindings, err := window.ResolveBindings(window.KeyNames{
		Jump:     k.Jump,
		Crouch:   k.Crouch,
		Stomp:    k.Stomp,
		Boost:    k.Boost,
		Forward:  k.Forward,
		Backward: k.Backward,
		Left:     k.Left,
		Right:    k.Right,
		Quit:     k.Quit,
	})
	if err != nil {
		return fmt.Errorf("keybinds: %w", err)
	}

	win, err := window.New(window.Config{
		Title:  "Strider",
		Width:  cfg.Window.Width,
		Height: cfg.Window.Height,
		VSync:  cfg.Window.VSync,
	}, logger.Named("window"))
	if err != nil {
		return err
	}
	defer win.Close()

	keyboard := window.NewKeyboard(bindings)
	r, err := sim.New(cfg, keyboard, logger.Named("sim"))
	if err != nil {
		return err
	}

	_, err = r.RunPaced(ctx, cfg.Simulation.MaxTicks, func(f sim.Frame) {
		win.Present(f.Status, f.Position, f.HorizontalSpeed)
	})
	if err != nil && !errors.Is(err, context.Canceled) {
		return err
	}
	return finishInteractive(cfg, r, keyboard)
}

func finishInteractive(cfg *config.Config, r *sim.Runner, keyboard *window.Keyboard) error {
	logger.Info("interactive session ended",
		zap.Bool("quit", keyboard.Quit()),
		zap.Stringer("status", r.Controller().Status()),
		zap.Float32("time", r.Now()),
	)
	if cfg.Simulation.Trace != "" {
		return r.WriteTrace(cfg.Simulation.Trace)
	}
	return nil
}
