package window

import (
	"fmt"

	"github.com/go-gl/mathgl/mgl32"
	"github.com/veandco/go-sdl2/sdl"

	"github.com/Faultbox/strider/internal/input"
)

// Bindings maps logical controls to SDL scancodes.
type Bindings struct {
	Buttons  [input.NumButtons]sdl.Scancode // indexed by input.Button
	Forward  sdl.Scancode
	Backward sdl.Scancode
	Left     sdl.Scancode
	Right    sdl.Scancode
	Quit     sdl.Scancode
}

// KeyNames are SDL key names such as "Left Ctrl", as written in the config.
type KeyNames struct {
	Jump, Crouch, Stomp, Boost     string
	Forward, Backward, Left, Right string
	Quit                           string
}

// ResolveBindings converts key names to scancodes. An empty stomp name
// shares the crouch key.
func ResolveBindings(names KeyNames) (Bindings, error) {
	if names.Stomp == "" {
		names.Stomp = names.Crouch
	}
	var b Bindings
	for _, k := range []struct {
		name string
		dst  *sdl.Scancode
	}{
		{names.Jump, &b.Buttons[input.Jump]},
		{names.Crouch, &b.Buttons[input.Crouch]},
		{names.Stomp, &b.Buttons[input.Stomp]},
		{names.Boost, &b.Buttons[input.Boost]},
		{names.Forward, &b.Forward},
		{names.Backward, &b.Backward},
		{names.Left, &b.Left},
		{names.Right, &b.Right},
		{names.Quit, &b.Quit},
	} {
		code := sdl.GetScancodeFromName(k.name)
		if code == sdl.SCANCODE_UNKNOWN {
			return Bindings{}, fmt.Errorf("unknown key %q", k.name)
		}
		*k.dst = code
	}
	return b, nil
}

// Keyboard is an input.Source reading the live SDL keyboard state.
type Keyboard struct {
	bindings Bindings
	tracker  *input.Tracker
	quit     bool
}

// NewKeyboard creates a keyboard source. Stomp follows the crouch edges when
// both resolve to the same scancode, however the names were spelt.
func NewKeyboard(bindings Bindings) *Keyboard {
	shared := bindings.Buttons[input.Stomp] == bindings.Buttons[input.Crouch]
	return &Keyboard{
		bindings: bindings,
		tracker:  input.NewTracker(shared),
	}
}

// Quit reports whether the window was closed or the quit key pressed.
func (k *Keyboard) Quit() bool { return k.quit }

// Poll drains SDL events and samples the keyboard. It reports false once
// the user has asked to quit.
func (k *Keyboard) Poll(now float32) (input.Snapshot, bool) {
	for event := sdl.PollEvent(); event != nil; event = sdl.PollEvent() {
		if _, ok := event.(*sdl.QuitEvent); ok {
			k.quit = true
		}
	}
	if k.quit {
		return input.Snapshot{}, false
	}
	return k.sample(sdl.GetKeyboardState())
}

// sample turns a keyboard state array into a snapshot.
func (k *Keyboard) sample(keys []uint8) (input.Snapshot, bool) {
	down := func(code sdl.Scancode) bool {
		return int(code) < len(keys) && keys[code] != 0
	}
	if down(k.bindings.Quit) {
		k.quit = true
		return input.Snapshot{}, false
	}

	var levels input.Levels
	for b, code := range k.bindings.Buttons {
		levels[b] = down(code)
	}

	var move mgl32.Vec2
	if down(k.bindings.Forward) {
		move[1]++
	}
	if down(k.bindings.Backward) {
		move[1]--
	}
	if down(k.bindings.Right) {
		move[0]++
	}
	if down(k.bindings.Left) {
		move[0]--
	}
	return k.tracker.Update(levels, move), true
}
