// Package sim drives the locomotion controller at a fixed tick rate against
// the planar world and records what happened.
package sim

import (
	"context"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/go-gl/mathgl/mgl32"
	"go.uber.org/zap"
	"gopkg.in/yaml.v3"

	"github.com/Faultbox/strider/internal/config"
	"github.com/Faultbox/strider/internal/input"
	"github.com/Faultbox/strider/internal/locomotion"
	"github.com/Faultbox/strider/internal/world"
)

// Frame is the observable state after one tick.
type Frame struct {
	Tick            int               `yaml:"tick"`
	Time            float32           `yaml:"time"`
	Status          locomotion.Status `yaml:"status"`
	Position        mgl32.Vec3        `yaml:"position,flow"`
	Camera          mgl32.Vec3        `yaml:"camera,flow"`
	Height          float32           `yaml:"height"`
	Movement        mgl32.Vec3        `yaml:"movement,flow"`
	HorizontalSpeed float32           `yaml:"horizontal_speed"`
	VerticalSpeed   float32           `yaml:"vertical_speed"`

	// Ground is the sensor distance, or -1 on a miss.
	Ground     float32 `yaml:"ground"`
	SlopeAngle float32 `yaml:"slope_angle"`

	Jumping   bool `yaml:"jumping,omitempty"`
	Stomping  bool `yaml:"stomping,omitempty"`
	Crouching bool `yaml:"crouching,omitempty"`
	Sliding   bool `yaml:"sliding,omitempty"`
	Boosting  bool `yaml:"boosting,omitempty"`
}

// Trace is the recorded run written by WriteTrace.
type Trace struct {
	TickRate int     `yaml:"tick_rate"`
	Frames   []Frame `yaml:"frames"`
}

// Runner owns the world, the body and the controller for one run.
type Runner struct {
	log        *zap.Logger
	source     input.Source
	terrain    *world.Terrain
	body       *world.Body
	controller *locomotion.Controller

	tickRate int
	dt       float32
	tick     int
	frames   []Frame
	record   bool
}

// New builds a runner from cfg that reads input from source.
func New(cfg *config.Config, source input.Source, log *zap.Logger) (*Runner, error) {
	if source == nil {
		return nil, errors.New("sim: nil input source")
	}
	if log == nil {
		log = zap.NewNop()
	}
	if cfg.Simulation.TickRate <= 0 {
		return nil, fmt.Errorf("%w: tick rate %d", config.ErrInvalidConfig, cfg.Simulation.TickRate)
	}

	terrain, err := world.NewTerrain(cfg.World.Surfaces)
	if err != nil {
		return nil, fmt.Errorf("building terrain: %w", err)
	}
	body := world.NewBody(terrain, cfg.Body.Spawn, cfg.Body.Height, cfg.Body.Radius, cfg.Body.Yaw)

	controller, err := locomotion.New(cfg.Movement, body, terrain, log.Named("locomotion"))
	if err != nil {
		return nil, fmt.Errorf("creating controller: %w", err)
	}

	log.Info("simulation ready",
		zap.Int("tick_rate", cfg.Simulation.TickRate),
		zap.Int("surfaces", len(terrain.Surfaces())),
		zap.Float32s("spawn", cfg.Body.Spawn[:]),
	)

	return &Runner{
		log:        log,
		source:     source,
		terrain:    terrain,
		body:       body,
		controller: controller,
		tickRate:   cfg.Simulation.TickRate,
		dt:         1 / float32(cfg.Simulation.TickRate),
		record:     cfg.Simulation.Trace != "",
	}, nil
}

// Record turns frame recording on or off. It is on when a trace path is configured.
func (r *Runner) Record(on bool) { r.record = on }

// Body returns the simulated capsule.
func (r *Runner) Body() *world.Body { return r.body }

// Controller returns the locomotion controller.
func (r *Runner) Controller() *locomotion.Controller { return r.controller }

// DT returns the fixed tick length in seconds.
func (r *Runner) DT() float32 { return r.dt }

// Now returns the simulation time of the next tick.
func (r *Runner) Now() float32 { return float32(r.tick) * r.dt }

// Step polls the source and advances one tick. It reports false once the
// source is exhausted, without ticking.
func (r *Runner) Step() (Frame, bool) {
	now := r.Now()
	in, ok := r.source.Poll(now)
	if !ok {
		return Frame{}, false
	}

	move := r.controller.Tick(now, r.dt, in)
	state := r.controller.State()
	sample := r.controller.LastSample()
	ground := float32(-1)
	if sample.Hit {
		ground = sample.Distance
	}
	f := Frame{
		Tick:            r.tick,
		Time:            now,
		Status:          r.controller.Status(),
		Position:        r.body.Position(),
		Camera:          r.body.CameraPosition(),
		Height:          r.body.Height(),
		Movement:        move,
		HorizontalSpeed: state.HorizontalSpeed,
		VerticalSpeed:   state.VerticalSpeed,
		Ground:          ground,
		SlopeAngle:      locomotion.SlopeAngle(sample),
		Jumping:         state.Jumping,
		Stomping:        state.Stomping,
		Crouching:       state.Crouching,
		Sliding:         state.Sliding,
		Boosting:        state.Boosting,
	}
	r.tick++
	if r.record {
		r.frames = append(r.frames, f)
	}
	return f, true
}

// Run ticks until the source is exhausted, maxTicks ticks have run or ctx
// is cancelled. maxTicks of zero means no limit. It returns the number of
// ticks run.
func (r *Runner) Run(ctx context.Context, maxTicks int) (int, error) {
	ran := 0
	for maxTicks <= 0 || ran < maxTicks {
		if err := ctx.Err(); err != nil {
			r.log.Warn("simulation interrupted", zap.Int("ticks", ran), zap.Error(err))
			return ran, err
		}
		if _, ok := r.Step(); !ok {
			break
		}
		ran++
	}

	pos := r.body.Position()
	r.log.Info("simulation finished",
		zap.Int("ticks", ran),
		zap.Stringer("status", r.controller.Status()),
		zap.Float32s("position", pos[:]),
	)
	return ran, nil
}

// RunPaced ticks in real time: elapsed wall time is consumed in fixed steps
// and present, if not nil, sees the latest frame once per loop. It stops like
// Run and returns the number of ticks run.
func (r *Runner) RunPaced(ctx context.Context, maxTicks int, present func(Frame)) (int, error) {
	step := time.Duration(float64(time.Second) * float64(r.dt))
	last := time.Now()
	var lag time.Duration
	var frame Frame

	ran := 0
	for maxTicks <= 0 || ran < maxTicks {
		if err := ctx.Err(); err != nil {
			r.log.Info("paced run interrupted", zap.Int("ticks", ran), zap.Error(err))
			return ran, err
		}
		now := time.Now()
		lag += now.Sub(last)
		last = now

		if lag < step {
			time.Sleep(step - lag)
			continue
		}
		for lag >= step && (maxTicks <= 0 || ran < maxTicks) {
			f, ok := r.Step()
			if !ok {
				return ran, nil
			}
			frame = f
			lag -= step
			ran++
		}
		if present != nil {
			present(frame)
		}
	}
	return ran, nil
}

// Frames returns the recorded frames.
func (r *Runner) Frames() []Frame { return r.frames }

// Trace returns the recorded run.
func (r *Runner) Trace() Trace {
	return Trace{TickRate: r.tickRate, Frames: r.frames}
}

// WriteTrace saves the recorded run as YAML.
func (r *Runner) WriteTrace(path string) error {
	data, err := yaml.Marshal(r.Trace())
	if err != nil {
		return fmt.Errorf("encoding trace: %w", err)
	}
	if dir := filepath.Dir(path); dir != "." {
		if err := os.MkdirAll(dir, 0755); err != nil {
			return fmt.Errorf("creating trace directory: %w", err)
		}
	}
	if err := os.WriteFile(path, data, 0644); err != nil {
		return fmt.Errorf("writing trace: %w", err)
	}
	r.log.Info("trace written", zap.String("path", path), zap.Int("frames", len(r.frames)))
	return nil
}

// ReadTrace loads a trace written by WriteTrace.
func ReadTrace(path string) (Trace, error) {
	var t Trace
	data, err := os.ReadFile(path)
	if err != nil {
		return t, fmt.Errorf("reading trace: %w", err)
	}
	if err := yaml.Unmarshal(data, &t); err != nil {
		return t, fmt.Errorf("parsing trace: %w", err)
	}
	return t, nil
}
