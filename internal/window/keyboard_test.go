package window

import (
	"testing"

	"github.com/veandco/go-sdl2/sdl"

	"github.com/Faultbox/strider/internal/input"
	"github.com/Faultbox/strider/internal/locomotion"
)

func testBindings() Bindings {
	var b Bindings
	b.Buttons[input.Jump] = sdl.SCANCODE_SPACE
	b.Buttons[input.Crouch] = sdl.SCANCODE_LCTRL
	b.Buttons[input.Stomp] = sdl.SCANCODE_LCTRL
	b.Buttons[input.Boost] = sdl.SCANCODE_LSHIFT
	b.Forward = sdl.SCANCODE_W
	b.Backward = sdl.SCANCODE_S
	b.Left = sdl.SCANCODE_A
	b.Right = sdl.SCANCODE_D
	b.Quit = sdl.SCANCODE_ESCAPE
	return b
}

func keys(down ...sdl.Scancode) []uint8 {
	state := make([]uint8, 512) // SDL_NUM_SCANCODES
	for _, c := range down {
		state[c] = 1
	}
	return state
}

func TestKeyboardSampleEdges(t *testing.T) {
	k := NewKeyboard(testBindings())

	snap, ok := k.sample(keys(sdl.SCANCODE_SPACE, sdl.SCANCODE_W, sdl.SCANCODE_D))
	if !ok {
		t.Fatal("sample reported quit")
	}
	if !snap.Pressed(input.Jump) || !snap.Held(input.Jump) {
		t.Errorf("jump = %+v, want pressed and held", snap.Buttons[input.Jump])
	}
	if snap.Move.X() != 1 || snap.Move.Y() != 1 {
		t.Errorf("move = %v, want (1, 1)", snap.Move)
	}

	snap, _ = k.sample(keys(sdl.SCANCODE_W))
	if !snap.Released(input.Jump) {
		t.Error("jump release edge missing")
	}
}

func TestKeyboardStompSharesCrouch(t *testing.T) {
	k := NewKeyboard(testBindings())

	snap, _ := k.sample(keys(sdl.SCANCODE_LCTRL))
	if !snap.Pressed(input.Crouch) || !snap.Pressed(input.Stomp) {
		t.Errorf("crouch %+v stomp %+v, want both pressed",
			snap.Buttons[input.Crouch], snap.Buttons[input.Stomp])
	}
}

func TestResolveBindingsAliasByScancode(t *testing.T) {
	names := KeyNames{
		Jump: "Space", Crouch: "Left Ctrl", Stomp: "left ctrl", Boost: "Left Shift",
		Forward: "W", Backward: "S", Left: "A", Right: "D", Quit: "Escape",
	}
	b, err := ResolveBindings(names)
	if err != nil {
		t.Fatalf("ResolveBindings() error = %v", err)
	}
	snap, _ := NewKeyboard(b).sample(keys(sdl.SCANCODE_LCTRL))
	if !snap.Pressed(input.Stomp) {
		t.Error("differently cased crouch name did not alias stomp")
	}

	names.Stomp = "C"
	if b, err = ResolveBindings(names); err != nil {
		t.Fatalf("ResolveBindings() error = %v", err)
	}
	snap, _ = NewKeyboard(b).sample(keys(sdl.SCANCODE_LCTRL))
	if snap.Pressed(input.Stomp) || !snap.Pressed(input.Crouch) {
		t.Error("separate stomp key still follows crouch")
	}

	names.Jump = "NoSuchKey"
	if _, err := ResolveBindings(names); err == nil {
		t.Error("expected error for unknown key name")
	}
}

func TestKeyboardOpposingKeysCancel(t *testing.T) {
	k := NewKeyboard(testBindings())

	snap, _ := k.sample(keys(sdl.SCANCODE_W, sdl.SCANCODE_S, sdl.SCANCODE_A))
	if snap.Move.X() != -1 || snap.Move.Y() != 0 {
		t.Errorf("move = %v, want (-1, 0)", snap.Move)
	}
}

func TestKeyboardQuitKey(t *testing.T) {
	k := NewKeyboard(testBindings())

	if _, ok := k.sample(keys(sdl.SCANCODE_ESCAPE)); ok {
		t.Error("expected quit key to end input")
	}
	if !k.Quit() {
		t.Error("Quit() = false after quit key")
	}
}

func TestStatusColorDistinct(t *testing.T) {
	seen := map[[4]float32]locomotion.Status{}
	for _, s := range []locomotion.Status{locomotion.Grounded, locomotion.Airborne, locomotion.SteepSlope} {
		c := StatusColor(s)
		if prev, dup := seen[c]; dup {
			t.Errorf("%v and %v share colour %v", prev, s, c)
		}
		seen[c] = s
	}
}
