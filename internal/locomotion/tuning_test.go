package locomotion

import (
	"errors"
	"testing"
)

func TestDefaultTuningIsValid(t *testing.T) {
	if err := DefaultTuning().Validate(); err != nil {
		t.Fatalf("DefaultTuning().Validate() = %v", err)
	}
}

func TestTuningValidate(t *testing.T) {
	tests := []struct {
		name   string
		modify func(*Tuning)
	}{
		{"negative base speed", func(t *Tuning) { t.BaseSpeed = -1 }},
		{"max below base", func(t *Tuning) { t.MaxSpeed = t.BaseSpeed - 1 }},
		{"upward gravity", func(t *Tuning) { t.Gravity = 1 }},
		{"accelerating ground", func(t *Tuning) { t.GroundDeceleration = 2 }},
		{"accelerating slide", func(t *Tuning) { t.SlideDeceleration = 2 }},
		{"upward stomp", func(t *Tuning) { t.StompAcceleration = 5 }},
		{"vertical walkable slope", func(t *Tuning) { t.MaxSlopeAngle = 90 }},
		{"negative jump time", func(t *Tuning) { t.SlopeMinJumpTime = -1 }},
		{"flat crouch shape", func(t *Tuning) { t.Shapes.Crouching.Height = 0 }},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			tuning := DefaultTuning()
			tt.modify(&tuning)
			if err := tuning.Validate(); !errors.Is(err, ErrInvalidTuning) {
				t.Errorf("Validate() = %v, want ErrInvalidTuning", err)
			}
		})
	}
}

func TestDefaultShapesKeepCapsuleBottom(t *testing.T) {
	shapes := DefaultShapes(2)
	for name, p := range map[string]ShapePreset{
		"standing":  shapes.Standing,
		"crouching": shapes.Crouching,
		"sliding":   shapes.Sliding,
	} {
		if bottom := p.Center.Y() - p.Height/2; !approx(bottom, -1) {
			t.Errorf("%s bottom = %v, want -1", name, bottom)
		}
	}
	if shapes.Crouching.Height != 1.5 || shapes.Sliding.Height != 1 {
		t.Errorf("heights = %v/%v, want 1.5/1", shapes.Crouching.Height, shapes.Sliding.Height)
	}
}
