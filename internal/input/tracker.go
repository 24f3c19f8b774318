package input

import "github.com/go-gl/mathgl/mgl32"

// Levels is the raw down/up state of every button at one instant.
type Levels [buttonCount]bool

// Tracker derives press and release edges by comparing successive levels.
type Tracker struct {
	prev Levels

	// StompAliasesCrouch makes the stomp button follow the crouch button,
	// matching the default single-key binding.
	StompAliasesCrouch bool
}

// NewTracker creates a tracker with every button up.
func NewTracker(stompAliasesCrouch bool) *Tracker {
	return &Tracker{StompAliasesCrouch: stompAliasesCrouch}
}

// Update consumes the current levels and returns this tick's snapshot.
// The move axis is clamped to [-1, 1] per component.
func (t *Tracker) Update(levels Levels, move mgl32.Vec2) Snapshot {
	if t.StompAliasesCrouch {
		levels[Stomp] = levels[Crouch]
	}

	var snap Snapshot
	for b := range levels {
		now, before := levels[b], t.prev[b]
		snap.Buttons[b] = ButtonState{
			Pressed:  now && !before,
			Held:     now,
			Released: !now && before,
		}
	}
	snap.Move = mgl32.Vec2{
		mgl32.Clamp(move.X(), -1, 1),
		mgl32.Clamp(move.Y(), -1, 1),
	}

	t.prev = levels
	return snap
}

// Reset releases every button without reporting edges.
func (t *Tracker) Reset() {
	t.prev = Levels{}
}
