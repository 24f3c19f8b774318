package locomotion

import (
	"errors"

	"github.com/go-gl/mathgl/mgl32"
	"go.uber.org/zap"

	"github.com/Faultbox/strider/internal/input"
)

// Shaper receives posture changes from crouch, slide and stand-up.
type Shaper interface {
	SetShape(height float32, center mgl32.Vec3)
	SetCameraOffset(offset float32)
}

// Body is the kinematic capsule the controller drives.
type Body interface {
	Mover
	Shaper
	Position() mgl32.Vec3
	Rotation() mgl32.Quat
	Radius() float32
}

// Controller runs the locomotion state machine for one player.
// It is not safe for concurrent use; drive each instance from a single
// goroutine, one Tick at a time.
type Controller struct {
	tuning     Tuning
	body       Body
	sensor     *GroundSensor
	integrator *Integrator
	log        *zap.Logger

	state    AbilityState
	status   Status
	sample   GroundSample
	slope    float32
	movement mgl32.Vec3

	// per-tick scratch
	now, dt    float32
	horizontal mgl32.Vec3
}

// New creates a controller for body, sensing ground through caster.
// A nil logger disables logging.
func New(tuning Tuning, body Body, caster CapsuleCaster, log *zap.Logger) (*Controller, error) {
	if err := tuning.Validate(); err != nil {
		return nil, err
	}
	if body == nil {
		return nil, errors.New("locomotion: nil body")
	}
	if log == nil {
		log = zap.NewNop()
	}

	c := &Controller{
		tuning:     tuning,
		body:       body,
		sensor:     NewGroundSensor(caster),
		integrator: NewIntegrator(body),
		log:        log,
		state:      newAbilityState(tuning),
		status:     Airborne,
	}
	c.applyShape(tuning.Shapes.Standing)
	return c, nil
}

// Status returns the status classified on the last tick.
func (c *Controller) Status() Status { return c.status }

// State returns a copy of the ability state.
func (c *Controller) State() AbilityState { return c.state }

// LastSample returns the ground sample taken on the last tick.
func (c *Controller) LastSample() GroundSample { return c.sample }

// Movement returns the velocity produced by the last tick.
func (c *Controller) Movement() mgl32.Vec3 { return c.movement }

// Tuning returns the controller's parameters.
func (c *Controller) Tuning() Tuning { return c.tuning }

// Tick senses, classifies, updates the ability state and moves the body.
// now is the simulation time in seconds and dt the time since the previous
// tick. It returns the movement velocity applied this tick.
func (c *Controller) Tick(now, dt float32, in input.Snapshot) mgl32.Vec3 {
	c.sample = c.sensor.Sample(c.body.Position(), c.tuning.Shapes.Standing.Height, c.body.Radius())
	status := Classify(c.sample,
		c.tuning.MaxSlopeAngle,
		c.tuning.SlopeAngleTolerance,
		c.tuning.GroundDistanceTolerance,
	)
	if status != c.status {
		c.log.Debug("status changed",
			zap.Stringer("from", c.status),
			zap.Stringer("to", status),
			zap.Float32("distance", c.sample.Distance),
		)
	}

	c.Step(now, dt, status, c.sample, in)
	c.integrator.Apply(c.movement, dt)
	return c.movement
}

// Step runs the state machine for an already classified status without
// touching the sensor or moving the body. The result is also kept for Movement.
func (c *Controller) Step(now, dt float32, status Status, sample GroundSample, in input.Snapshot) mgl32.Vec3 {
	c.now, c.dt = now, dt
	c.status = status
	c.sample = sample
	c.slope = SlopeAngle(sample)

	c.readAxis(in)
	if !c.state.Boosting && !c.state.Crouching {
		c.state.HorizontalSpeed = mgl32.Clamp(
			c.state.HorizontalSpeed+c.tuning.GroundDeceleration*dt,
			c.tuning.BaseSpeed, c.tuning.MaxSpeed)
	}

	switch status {
	case Grounded:
		c.movement = c.grounded(in)
	case Airborne:
		c.movement = c.airborne(in)
	case SteepSlope:
		c.movement = c.steepSlope(in)
	default:
		c.log.Error("unhandled locomotion status",
			zap.Stringer("status", status),
			zap.Int("value", int(status)),
		)
		c.movement = mgl32.Vec3{}
	}
	return c.movement
}

// readAxis converts the move axis into a unit direction in the body's frame.
func (c *Controller) readAxis(in input.Snapshot) {
	local := normalize(mgl32.Vec3{in.Move.X(), 0, in.Move.Y()})
	c.horizontal = c.body.Rotation().Rotate(local)
}

func (c *Controller) grounded(in input.Snapshot) mgl32.Vec3 {
	s := &c.state
	s.MinJumpTime = c.tuning.GroundMinJumpTime
	s.AirBoostAvailable = true

	// Vertical speed is cleared on the ground so walking off a ledge starts
	// a fresh fall, but not right after takeoff.
	if c.jumpExpired() {
		c.stopJump()
		s.AirJumpAvailable = true
	}

	if s.Stomping {
		c.stopStomp()
		s.VerticalSpeed = 0
	}

	if in.Pressed(input.Jump) {
		if s.Crouching || s.Sliding {
			c.standUp()
		}
		c.startJump()
	}

	switch {
	case in.Pressed(input.Boost):
		if s.Crouching || s.Sliding {
			s.CanCrouch = false
			c.standUp()
		}
		c.startBoost()
	case in.Held(input.Boost):
		if s.Boosting && !s.Sliding {
			c.groundBoost()
		}
	case in.Released(input.Boost):
		c.stopBoost()
		s.CanCrouch = true
	}

	switch {
	case in.Held(input.Crouch):
		if s.Jumping || !s.CanCrouch {
			break
		}
		if s.HorizontalSpeed >= c.tuning.MinimumSlideSpeed && c.horizontal.Len() > 0 {
			c.slide()
		} else {
			if s.Boosting {
				c.stopBoost()
			}
			c.crouch()
		}
	case in.Released(input.Crouch):
		if s.Boosting {
			speed := s.HorizontalSpeed
			c.standUp()
			s.HorizontalSpeed = speed
			s.CanCrouch = true
		} else if s.Crouching || s.Sliding {
			c.standUp()
		}
	}

	tangent := normalize(projectOnPlane(c.horizontal, c.sample.Normal))
	return tangent.Mul(s.HorizontalSpeed * cosDeg(c.slope)).
		Add(Up.Mul(s.VerticalSpeed))
}

func (c *Controller) airborne(in input.Snapshot) mgl32.Vec3 {
	s := &c.state
	s.VerticalSpeed += s.VerticalAcceleration * c.dt

	c.airJump(in)

	if in.Pressed(input.Stomp) {
		c.startStomp()
		if s.Jumping {
			c.stopJump()
		}
		if s.Boosting {
			c.stopBoost()
		}
	}

	if in.Pressed(input.Boost) && s.AirBoostAvailable {
		s.AirBoostAvailable = false
		s.CanCrouch = false
		if s.Stomping {
			c.stopStomp()
		}
		c.startBoost()
	}
	if in.Held(input.Boost) && s.Boosting {
		c.airBoost()
	}
	if in.Released(input.Boost) {
		c.stopBoost()
		s.CanCrouch = true
	}

	move := Up.Mul(s.VerticalSpeed)
	if !s.Stomping {
		move = move.Add(c.horizontal.Mul(s.HorizontalSpeed * c.tuning.MidAirMultiplier))
	}
	return move
}

func (c *Controller) steepSlope(in input.Snapshot) mgl32.Vec3 {
	s := &c.state
	s.MinJumpTime = c.tuning.SlopeMinJumpTime

	// Landing on a steep face mid-jump drops the jump so the player slides
	// instead of carrying the arc up the wall.
	if s.Jumping && c.jumpExpired() {
		c.stopJump()
	}
	if s.Boosting {
		c.stopBoost()
	}

	s.VerticalSpeed += s.VerticalAcceleration * sinDeg(c.slope) * c.dt

	c.airJump(in)

	if in.Pressed(input.Stomp) {
		c.startStomp()
		if s.Jumping {
			c.stopJump()
		}
	}

	tangent := normalize(projectOnPlane(c.horizontal, c.sample.Normal))
	vertical := Up
	if !s.Jumping {
		vertical = normalize(projectOnPlane(Up, c.sample.Normal))
	}
	move := vertical.Mul(s.VerticalSpeed)
	if !s.Stomping {
		move = move.Add(tangent.Mul(s.HorizontalSpeed * c.tuning.SteepSlopeMultiplier))
	}
	return move
}

// airJump spends the air-jump charge on a jump press.
func (c *Controller) airJump(in input.Snapshot) {
	s := &c.state
	if !in.Pressed(input.Jump) || !s.AirJumpAvailable {
		return
	}
	s.AirJumpAvailable = false
	c.startJump()
	if s.Stomping {
		c.stopStomp()
	}
}
