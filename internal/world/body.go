package world

import (
	"github.com/go-gl/mathgl/mgl32"

	"github.com/Faultbox/strider/internal/locomotion"
)

// Body is a kinematic capsule that stays on top of the terrain.
type Body struct {
	terrain *Terrain

	position mgl32.Vec3
	rotation mgl32.Quat
	radius   float32
	height   float32
	center   mgl32.Vec3
	camera   float32
}

var _ locomotion.Body = (*Body)(nil)

// NewBody places a capsule of the given size at position, facing yaw degrees
// around the up axis.
func NewBody(terrain *Terrain, position mgl32.Vec3, height, radius, yaw float32) *Body {
	b := &Body{
		terrain:  terrain,
		position: position,
		radius:   radius,
		height:   height,
	}
	b.SetYaw(yaw)
	return b
}

// Move applies the displacement and lifts the capsule out of any surface
// it ends up inside.
func (b *Body) Move(displacement mgl32.Vec3) {
	before := b.bottomSphere()
	b.position = b.position.Add(displacement)
	b.resolve(before)
}

// resolve lifts the capsule so its bottom sphere rests on every surface it
// penetrates. before is the sphere center prior to the move, used to catch
// fast falls that pass through a surface within a single tick.
func (b *Body) resolve(before mgl32.Vec3) {
	if b.terrain == nil {
		return
	}
	feet := b.bottomSphere()

	var lift float32
	for _, s := range b.terrain.surfaces {
		if !s.Contains(feet.X(), feet.Z()) {
			continue
		}
		gap := s.signedDistance(feet)
		if gap >= b.radius {
			continue
		}
		// A center more than a capsule height below the plane is under the
		// patch unless it started the move above it.
		if gap < -b.height && s.signedDistance(before) < 0 {
			continue
		}
		n := s.Normal()
		if need := (b.radius - gap) / n.Y(); need > lift {
			lift = need
		}
	}
	b.position = b.position.Add(locomotion.Up.Mul(lift))
}

// bottomSphere is the center of the capsule's lower end sphere.
func (b *Body) bottomSphere() mgl32.Vec3 {
	inset := b.height/2 - b.radius
	if inset < 0 {
		inset = 0
	}
	return b.position.Add(b.center).Sub(locomotion.Up.Mul(inset))
}

// SetShape resizes the capsule around its local center offset.
func (b *Body) SetShape(height float32, center mgl32.Vec3) {
	b.height = height
	b.center = center
}

// SetCameraOffset sets the camera height above the body position.
func (b *Body) SetCameraOffset(offset float32) { b.camera = offset }

// SetYaw turns the body to face yaw degrees around the up axis.
func (b *Body) SetYaw(yaw float32) {
	b.rotation = mgl32.QuatRotate(mgl32.DegToRad(yaw), locomotion.Up)
}

func (b *Body) Position() mgl32.Vec3 { return b.position }
func (b *Body) Rotation() mgl32.Quat { return b.rotation }
func (b *Body) Radius() float32      { return b.radius }

// Height returns the current capsule height.
func (b *Body) Height() float32 { return b.height }

// CameraPosition is where a first-person camera rig should sit.
func (b *Body) CameraPosition() mgl32.Vec3 {
	return b.position.Add(locomotion.Up.Mul(b.camera))
}
