package locomotion

import (
	"math"

	"github.com/go-gl/mathgl/mgl32"
)

// World axes. The controller works in a Y-up frame with +Z as the body's forward.
var (
	Up      = mgl32.Vec3{0, 1, 0}
	Down    = mgl32.Vec3{0, -1, 0}
	Forward = mgl32.Vec3{0, 0, 1}
)

// normalize returns a unit vector, or the zero vector when v has no length.
// mgl32's Normalize divides by zero on empty input.
func normalize(v mgl32.Vec3) mgl32.Vec3 {
	l := v.Len()
	if l == 0 {
		return mgl32.Vec3{}
	}
	return v.Mul(1 / l)
}

// projectOnPlane removes the component of v along the plane normal n.
func projectOnPlane(v, n mgl32.Vec3) mgl32.Vec3 {
	nn := n.Dot(n)
	if nn == 0 {
		return v
	}
	return v.Sub(n.Mul(v.Dot(n) / nn))
}

// angleDeg returns the unsigned angle between a and b in degrees.
func angleDeg(a, b mgl32.Vec3) float32 {
	la, lb := a.Len(), b.Len()
	if la == 0 || lb == 0 {
		return 0
	}
	cos := mgl32.Clamp(a.Dot(b)/(la*lb), -1, 1)
	return mgl32.RadToDeg(float32(math.Acos(float64(cos))))
}

func sinDeg(deg float32) float32 {
	return float32(math.Sin(float64(mgl32.DegToRad(deg))))
}

func cosDeg(deg float32) float32 {
	return float32(math.Cos(float64(mgl32.DegToRad(deg))))
}

func tanDeg(deg float32) float32 {
	return float32(math.Tan(float64(mgl32.DegToRad(deg))))
}
