package locomotion

import "github.com/go-gl/mathgl/mgl32"

// Hit is the result of a successful shape cast.
type Hit struct {
	Distance float32
	Normal   mgl32.Vec3
}

// CapsuleCaster sweeps a capsule through the world.
// head and feet are the centers of the capsule's end spheres.
type CapsuleCaster interface {
	CapsuleCast(head, feet mgl32.Vec3, radius float32, dir mgl32.Vec3, maxDistance float32) (Hit, bool)
}

// GroundSample describes what lies below the body this tick.
type GroundSample struct {
	Hit      bool
	Distance float32
	Normal   mgl32.Vec3
}

// GroundSensor probes for ground straight below the body.
type GroundSensor struct {
	caster CapsuleCaster
}

// NewGroundSensor creates a sensor backed by caster.
func NewGroundSensor(caster CapsuleCaster) *GroundSensor {
	return &GroundSensor{caster: caster}
}

// Sample casts the body capsule down by half its height.
// Nothing within range yields a sample with Hit=false.
func (s *GroundSensor) Sample(position mgl32.Vec3, height, radius float32) GroundSample {
	if s == nil || s.caster == nil {
		return GroundSample{}
	}

	half := height / 2
	inset := half - radius
	if inset < 0 {
		inset = 0
	}
	head := position.Add(Up.Mul(inset))
	feet := position.Add(Down.Mul(inset))

	hit, ok := s.caster.CapsuleCast(head, feet, radius, Down, half)
	if !ok {
		return GroundSample{}
	}
	return GroundSample{
		Hit:      true,
		Distance: hit.Distance,
		Normal:   normalize(hit.Normal),
	}
}
