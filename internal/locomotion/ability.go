package locomotion

import (
	"math"

	"github.com/go-gl/mathgl/mgl32"
	"go.uber.org/zap"
)

// AbilityState is the mutable movement state carried between ticks.
// Only the Controller writes it; State returns a copy for inspection.
type AbilityState struct {
	HorizontalSpeed      float32
	VerticalSpeed        float32
	VerticalAcceleration float32

	Jumping   bool
	Stomping  bool
	Crouching bool
	Sliding   bool
	Boosting  bool

	AirJumpAvailable  bool
	AirBoostAvailable bool
	CanCrouch         bool

	LastJumpTime float32
	MinJumpTime  float32
}

// newAbilityState returns the resting state for t.
func newAbilityState(t Tuning) AbilityState {
	return AbilityState{
		HorizontalSpeed:      t.BaseSpeed,
		VerticalAcceleration: t.Gravity,
		CanCrouch:            true,
		LastJumpTime:         -math.MaxFloat32,
		MinJumpTime:          t.GroundMinJumpTime,
	}
}

func (c *Controller) applyShape(p ShapePreset) {
	c.body.SetShape(p.Height, p.Center)
	c.body.SetCameraOffset(p.CameraOffset)
}

// standUp leaves crouch or slide and drops back to walking speed.
func (c *Controller) standUp() {
	c.log.Debug("stand up", zap.Bool("was_sliding", c.state.Sliding))
	c.state.Sliding = false
	c.state.Crouching = false
	c.applyShape(c.tuning.Shapes.Standing)
	c.state.HorizontalSpeed = c.tuning.BaseSpeed
}

func (c *Controller) crouch() {
	if !c.state.Crouching {
		c.log.Debug("crouch")
	}
	c.state.Sliding = false
	c.state.Crouching = true
	c.applyShape(c.tuning.Shapes.Crouching)
	c.state.HorizontalSpeed = c.tuning.CrouchSpeed
}

// slide bleeds speed every tick it is held.
func (c *Controller) slide() {
	if !c.state.Sliding {
		c.log.Debug("slide", zap.Float32("speed", c.state.HorizontalSpeed))
	}
	c.state.Sliding = true
	c.state.Crouching = false
	c.applyShape(c.tuning.Shapes.Sliding)
	c.state.HorizontalSpeed += c.tuning.SlideDeceleration * c.dt
}

func (c *Controller) startBoost() {
	c.log.Debug("boost", zap.Stringer("status", c.status))
	c.state.Boosting = true
	c.state.HorizontalSpeed = max(c.state.HorizontalSpeed, c.tuning.BoostSpeed)
}

// faceForwardIfIdle points the movement along the body's forward axis when
// there is no directional input, so a held boost never stalls.
func (c *Controller) faceForwardIfIdle() {
	if c.horizontal.Len() <= 0 {
		c.horizontal = c.body.Rotation().Rotate(Forward)
	}
}

func (c *Controller) groundBoost() {
	c.faceForwardIfIdle()
	c.state.HorizontalSpeed = mgl32.Clamp(
		c.state.HorizontalSpeed+c.tuning.BoostAcceleration*c.dt, 0, c.tuning.MaxSpeed)
}

func (c *Controller) airBoost() {
	c.faceForwardIfIdle()
}

func (c *Controller) stopBoost() {
	c.state.HorizontalSpeed = max(c.state.HorizontalSpeed, c.tuning.BaseSpeed)
	c.state.Boosting = false
}

func (c *Controller) startStomp() {
	c.log.Debug("stomp", zap.Stringer("status", c.status))
	c.state.Stomping = true
	c.state.VerticalAcceleration = c.tuning.Gravity + c.tuning.StompAcceleration
	c.state.HorizontalSpeed = c.tuning.BaseSpeed
}

func (c *Controller) stopStomp() {
	c.state.VerticalAcceleration = c.tuning.Gravity
	c.state.Stomping = false
}

func (c *Controller) startJump() {
	c.log.Debug("jump",
		zap.Stringer("status", c.status),
		zap.Bool("air_jump_left", c.state.AirJumpAvailable),
	)
	c.state.Jumping = true
	c.state.LastJumpTime = c.now
	c.state.VerticalSpeed = c.tuning.JumpHeight
}

// stopJump ends the jump arc and zeroes vertical speed.
func (c *Controller) stopJump() {
	c.state.VerticalSpeed = 0
	c.state.Jumping = false
}

// jumpExpired reports whether the current status' minimum jump time has
// passed since the last jump.
func (c *Controller) jumpExpired() bool {
	return c.now > c.state.LastJumpTime+c.state.MinJumpTime
}
