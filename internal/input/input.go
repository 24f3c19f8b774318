// Package input turns level-triggered button state into per-tick edge snapshots.
package input

import (
	"errors"
	"fmt"
	"strings"

	"github.com/go-gl/mathgl/mgl32"
)

// ErrUnknownButton is returned when a button name cannot be resolved.
var ErrUnknownButton = errors.New("unknown button")

// Button is a logical movement button.
type Button int

const (
	Jump Button = iota
	Crouch
	Stomp
	Boost

	buttonCount
)

// NumButtons is the number of logical buttons.
const NumButtons = int(buttonCount)

var buttonNames = [buttonCount]string{
	Jump:   "jump",
	Crouch: "crouch",
	Stomp:  "stomp",
	Boost:  "boost",
}

// String returns the button's config name.
func (b Button) String() string {
	if b < 0 || b >= buttonCount {
		return fmt.Sprintf("button(%d)", int(b))
	}
	return buttonNames[b]
}

// ParseButton resolves a config name such as "jump" to a Button.
func ParseButton(name string) (Button, error) {
	name = strings.ToLower(strings.TrimSpace(name))
	for b, n := range buttonNames {
		if n == name {
			return Button(b), nil
		}
	}
	return 0, fmt.Errorf("%w: %q", ErrUnknownButton, name)
}

// UnmarshalText lets buttons be written by name in YAML.
func (b *Button) UnmarshalText(text []byte) error {
	parsed, err := ParseButton(string(text))
	if err != nil {
		return err
	}
	*b = parsed
	return nil
}

// MarshalText writes the button name.
func (b Button) MarshalText() ([]byte, error) {
	return []byte(b.String()), nil
}

// ButtonState holds one button's edges for a single tick.
// Held is the level and is already true on the Pressed tick.
type ButtonState struct {
	Pressed  bool
	Held     bool
	Released bool
}

// Snapshot is the complete input for one tick.
type Snapshot struct {
	Buttons [buttonCount]ButtonState
	// Move is the raw movement axis: X strafes right, Y moves forward.
	Move mgl32.Vec2
}

// Pressed reports whether b went down this tick.
func (s Snapshot) Pressed(b Button) bool { return s.state(b).Pressed }

// Held reports whether b is down this tick.
func (s Snapshot) Held(b Button) bool { return s.state(b).Held }

// Released reports whether b went up this tick.
func (s Snapshot) Released(b Button) bool { return s.state(b).Released }

func (s Snapshot) state(b Button) ButtonState {
	if b < 0 || b >= buttonCount {
		return ButtonState{}
	}
	return s.Buttons[b]
}

// Source yields one snapshot per tick. ok is false once the source is exhausted.
type Source interface {
	Poll(now float32) (snap Snapshot, ok bool)
}
