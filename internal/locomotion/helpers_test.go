package locomotion

import (
	"testing"

	"github.com/go-gl/mathgl/mgl32"
	"go.uber.org/zap"

	"github.com/Faultbox/strider/internal/input"
)

const tickDT = float32(1.0 / 60.0)

type fakeBody struct {
	pos    mgl32.Vec3
	rot    mgl32.Quat
	radius float32
	height float32
	center mgl32.Vec3
	camera float32
	moves  []mgl32.Vec3
}

func newFakeBody() *fakeBody {
	return &fakeBody{rot: mgl32.QuatIdent(), radius: 0.5, height: 2}
}

func (b *fakeBody) Move(d mgl32.Vec3) {
	b.moves = append(b.moves, d)
	b.pos = b.pos.Add(d)
}
func (b *fakeBody) SetShape(h float32, c mgl32.Vec3) { b.height, b.center = h, c }
func (b *fakeBody) SetCameraOffset(o float32)        { b.camera = o }
func (b *fakeBody) Position() mgl32.Vec3             { return b.pos }
func (b *fakeBody) Rotation() mgl32.Quat             { return b.rot }
func (b *fakeBody) Radius() float32                  { return b.radius }

// fixedCaster reports the same hit on every cast and remembers the last query.
type fixedCaster struct {
	hit Hit
	ok  bool

	head, feet  mgl32.Vec3
	radius      float32
	dir         mgl32.Vec3
	maxDistance float32
}

func (f *fixedCaster) CapsuleCast(head, feet mgl32.Vec3, radius float32, dir mgl32.Vec3, maxDistance float32) (Hit, bool) {
	f.head, f.feet, f.radius, f.dir, f.maxDistance = head, feet, radius, dir, maxDistance
	return f.hit, f.ok
}

// slopeNormal returns the normal of a surface rising along +Z by deg degrees.
func slopeNormal(deg float32) mgl32.Vec3 {
	return mgl32.Vec3{0, cosDeg(deg), -sinDeg(deg)}
}

func flatSample() GroundSample {
	return GroundSample{Hit: true, Distance: 0, Normal: Up}
}

func slopeSample(deg float32) GroundSample {
	return GroundSample{Hit: true, Distance: 0, Normal: slopeNormal(deg)}
}

func newTestController(t *testing.T) (*Controller, *fakeBody) {
	t.Helper()
	return newTestControllerWithLog(t, nil)
}

func newTestControllerWithLog(t *testing.T, log *zap.Logger) (*Controller, *fakeBody) {
	t.Helper()
	body := newFakeBody()
	c, err := New(DefaultTuning(), body, &fixedCaster{}, log)
	if err != nil {
		t.Fatalf("New() error = %v", err)
	}
	return c, body
}

// press builds a snapshot for a button going down this tick.
func press(buttons ...input.Button) input.Snapshot {
	var s input.Snapshot
	for _, b := range buttons {
		s.Buttons[b] = input.ButtonState{Pressed: true, Held: true}
	}
	return s
}

func hold(buttons ...input.Button) input.Snapshot {
	var s input.Snapshot
	for _, b := range buttons {
		s.Buttons[b] = input.ButtonState{Held: true}
	}
	return s
}

func release(buttons ...input.Button) input.Snapshot {
	var s input.Snapshot
	for _, b := range buttons {
		s.Buttons[b] = input.ButtonState{Released: true}
	}
	return s
}

func withMove(s input.Snapshot, x, y float32) input.Snapshot {
	s.Move = mgl32.Vec2{x, y}
	return s
}

// approx compares with an absolute tolerance so values near zero still match.
func approx(a, b float32) bool {
	return mgl32.Abs(a-b) <= 1e-4
}

func approxVec(a, b mgl32.Vec3) bool {
	for i := range a {
		if !approx(a[i], b[i]) {
			return false
		}
	}
	return true
}
