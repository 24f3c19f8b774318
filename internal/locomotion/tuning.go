package locomotion

import (
	"errors"
	"fmt"

	"github.com/go-gl/mathgl/mgl32"
)

// ErrInvalidTuning is returned by Tuning.Validate.
var ErrInvalidTuning = errors.New("invalid tuning")

// ShapePreset is a body capsule configuration with its camera height.
type ShapePreset struct {
	Height       float32    `yaml:"height"`
	Center       mgl32.Vec3 `yaml:"center,flow"`
	CameraOffset float32    `yaml:"camera_offset"`
}

// Shapes holds the capsule presets for each posture.
type Shapes struct {
	Standing  ShapePreset `yaml:"standing"`
	Crouching ShapePreset `yaml:"crouching"`
	Sliding   ShapePreset `yaml:"sliding"`
}

// DefaultShapes derives crouch and slide capsules from the standing height.
// Each preset lowers the center by half the height it removes, so the
// capsule bottom stays where it was.
func DefaultShapes(standingHeight float32) Shapes {
	return Shapes{
		Standing: ShapePreset{
			Height:       standingHeight,
			CameraOffset: 0.5,
		},
		Crouching: ShapePreset{
			Height:       standingHeight * 0.75,
			Center:       Down.Mul(standingHeight * 0.125),
			CameraOffset: 0.25,
		},
		Sliding: ShapePreset{
			Height:       standingHeight * 0.5,
			Center:       Down.Mul(standingHeight * 0.25),
			CameraOffset: 0,
		},
	}
}

// Tuning holds every externally configured movement parameter.
// Speeds are in units/s, rates in units/s², angles in degrees and times in
// seconds. Rates are signed: gravity and the decelerations are negative.
type Tuning struct {
	BaseSpeed   float32 `yaml:"base_speed"`
	MaxSpeed    float32 `yaml:"max_speed"`
	CrouchSpeed float32 `yaml:"crouch_speed"`
	BoostSpeed  float32 `yaml:"boost_speed"`

	BoostAcceleration  float32 `yaml:"boost_acceleration"`
	GroundDeceleration float32 `yaml:"ground_deceleration"`

	MidAirMultiplier     float32 `yaml:"mid_air_multiplier"`
	SteepSlopeMultiplier float32 `yaml:"steep_slope_multiplier"`

	Gravity           float32 `yaml:"gravity"`
	JumpHeight        float32 `yaml:"jump_height"`
	StompAcceleration float32 `yaml:"stomp_acceleration"`

	SlideDeceleration float32 `yaml:"slide_deceleration"`
	MinimumSlideSpeed float32 `yaml:"minimum_slide_speed"`

	MaxSlopeAngle           float32 `yaml:"max_slope_angle"`
	SlopeAngleTolerance     float32 `yaml:"slope_angle_tolerance"`
	GroundDistanceTolerance float32 `yaml:"ground_distance_tolerance"`

	GroundMinJumpTime float32 `yaml:"ground_min_jump_time"`
	SlopeMinJumpTime  float32 `yaml:"slope_min_jump_time"`

	Shapes Shapes `yaml:"shapes"`
}

// DefaultTuning returns the tuning used by the reference scene.
func DefaultTuning() Tuning {
	return Tuning{
		BaseSpeed:   8,
		MaxSpeed:    30,
		CrouchSpeed: 4,
		BoostSpeed:  20,

		BoostAcceleration:  10,
		GroundDeceleration: -8,

		MidAirMultiplier:     0.6,
		SteepSlopeMultiplier: 0.3,

		Gravity:           -30,
		JumpHeight:        9,
		StompAcceleration: -60,

		SlideDeceleration: -6,
		MinimumSlideSpeed: 12,

		MaxSlopeAngle:           45,
		SlopeAngleTolerance:     2,
		GroundDistanceTolerance: 0.1,

		GroundMinJumpTime: 0.2,
		SlopeMinJumpTime:  0.3,

		Shapes: DefaultShapes(2),
	}
}

// Validate reports the first parameter outside its allowed range.
func (t Tuning) Validate() error {
	switch {
	case t.BaseSpeed < 0:
		return fmt.Errorf("%w: base_speed %v is negative", ErrInvalidTuning, t.BaseSpeed)
	case t.MaxSpeed < t.BaseSpeed:
		return fmt.Errorf("%w: max_speed %v below base_speed %v", ErrInvalidTuning, t.MaxSpeed, t.BaseSpeed)
	case t.CrouchSpeed < 0:
		return fmt.Errorf("%w: crouch_speed %v is negative", ErrInvalidTuning, t.CrouchSpeed)
	case t.BoostSpeed < 0:
		return fmt.Errorf("%w: boost_speed %v is negative", ErrInvalidTuning, t.BoostSpeed)
	case t.GroundDeceleration > 0:
		return fmt.Errorf("%w: ground_deceleration %v must be <= 0", ErrInvalidTuning, t.GroundDeceleration)
	case t.SlideDeceleration > 0:
		return fmt.Errorf("%w: slide_deceleration %v must be <= 0", ErrInvalidTuning, t.SlideDeceleration)
	case t.Gravity >= 0:
		return fmt.Errorf("%w: gravity %v must point down", ErrInvalidTuning, t.Gravity)
	case t.StompAcceleration > 0:
		return fmt.Errorf("%w: stomp_acceleration %v must be <= 0", ErrInvalidTuning, t.StompAcceleration)
	case t.MaxSlopeAngle < 0 || t.MaxSlopeAngle >= 90:
		return fmt.Errorf("%w: max_slope_angle %v outside [0, 90)", ErrInvalidTuning, t.MaxSlopeAngle)
	case t.GroundDistanceTolerance < 0:
		return fmt.Errorf("%w: ground_distance_tolerance %v is negative", ErrInvalidTuning, t.GroundDistanceTolerance)
	case t.GroundMinJumpTime < 0 || t.SlopeMinJumpTime < 0:
		return fmt.Errorf("%w: minimum jump times must be >= 0", ErrInvalidTuning)
	case t.Shapes.Standing.Height <= 0 || t.Shapes.Crouching.Height <= 0 || t.Shapes.Sliding.Height <= 0:
		return fmt.Errorf("%w: shape heights must be positive", ErrInvalidTuning)
	}
	return nil
}
