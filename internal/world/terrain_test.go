package world

import (
	"errors"
	"testing"

	"github.com/go-gl/mathgl/mgl32"

	"github.com/Faultbox/strider/internal/locomotion"
)

func floor() Surface {
	return Surface{Name: "floor", Min: mgl32.Vec2{-10, -10}, Max: mgl32.Vec2{10, 10}}
}

func ramp(angle float32) Surface {
	return Surface{Name: "ramp", Min: mgl32.Vec2{-10, 0}, Max: mgl32.Vec2{10, 20}, Angle: angle}
}

func mustTerrain(t *testing.T, surfaces ...Surface) *Terrain {
	t.Helper()
	terrain, err := NewTerrain(surfaces)
	if err != nil {
		t.Fatalf("NewTerrain() error = %v", err)
	}
	return terrain
}

// near compares with an absolute tolerance so values near zero still match.
func near(a, b, eps float32) bool {
	return mgl32.Abs(a-b) <= eps
}

func nearVec(a, b mgl32.Vec3, eps float32) bool {
	for i := range a {
		if !near(a[i], b[i], eps) {
			return false
		}
	}
	return true
}

func TestNearAtZero(t *testing.T) {
	if !near(5.96e-8, 0, 1e-5) {
		t.Error("near(5.96e-8, 0) = false")
	}
	if near(1e-3, 0, 1e-5) {
		t.Error("near(1e-3, 0) = true")
	}
	if !nearVec(mgl32.Vec3{1, 0, -2.4e-7}, mgl32.Vec3{1, 0, 0}, 1e-5) {
		t.Error("nearVec ignored absolute tolerance")
	}
}

func TestNewTerrainValidates(t *testing.T) {
	tests := []struct {
		name    string
		surface Surface
	}{
		{"empty footprint", Surface{Name: "a", Min: mgl32.Vec2{1, 1}, Max: mgl32.Vec2{1, 2}}},
		{"vertical", Surface{Name: "b", Max: mgl32.Vec2{1, 1}, Angle: 90}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if _, err := NewTerrain([]Surface{tt.surface}); !errors.Is(err, ErrInvalidSurface) {
				t.Errorf("NewTerrain() error = %v, want ErrInvalidSurface", err)
			}
		})
	}
}

func TestCapsuleCastFlat(t *testing.T) {
	terrain := mustTerrain(t, floor())

	tests := []struct {
		name     string
		feetY    float32
		wantHit  bool
		wantDist float32
	}{
		{"resting", 0.5, true, 0},
		{"hovering", 0.8, true, 0.3},
		{"out of range", 2, false, 0},
		{"below floor", -1, false, 0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			feet := mgl32.Vec3{0, tt.feetY, 0}
			head := feet.Add(mgl32.Vec3{0, 1, 0})
			hit, ok := terrain.CapsuleCast(head, feet, 0.5, locomotion.Down, 1)
			if ok != tt.wantHit {
				t.Fatalf("hit = %v, want %v", ok, tt.wantHit)
			}
			if ok && !near(hit.Distance, tt.wantDist, 1e-5) {
				t.Errorf("distance = %v, want %v", hit.Distance, tt.wantDist)
			}
			if ok && hit.Normal != locomotion.Up {
				t.Errorf("normal = %v, want up", hit.Normal)
			}
		})
	}
}

func TestCapsuleCastOutsideFootprint(t *testing.T) {
	terrain := mustTerrain(t, floor())
	feet := mgl32.Vec3{20, 0.6, 0}
	if _, ok := terrain.CapsuleCast(feet.Add(locomotion.Up), feet, 0.5, locomotion.Down, 1); ok {
		t.Error("cast past the edge should miss")
	}
}

func TestCapsuleCastPicksNearest(t *testing.T) {
	upper := floor()
	upper.Name = "upper"
	upper.Height = 0.5
	terrain := mustTerrain(t, floor(), upper)

	feet := mgl32.Vec3{0, 1.2, 0}
	hit, ok := terrain.CapsuleCast(feet.Add(locomotion.Up), feet, 0.5, locomotion.Down, 2)
	if !ok || !near(hit.Distance, 0.2, 1e-5) {
		t.Errorf("hit = %+v (%v), want upper floor at 0.2", hit, ok)
	}
}

func TestCapsuleCastSlope(t *testing.T) {
	s := ramp(30)
	terrain := mustTerrain(t, s)

	body := NewBody(terrain, mgl32.Vec3{0, 5, 5}, 2, 0.5, 0)
	body.Move(mgl32.Vec3{0, -2, 0})

	sensor := locomotion.NewGroundSensor(terrain)
	sample := sensor.Sample(body.Position(), 2, 0.5)
	if !sample.Hit || sample.Distance > 1e-4 {
		t.Fatalf("sample = %+v, want contact", sample)
	}
	if got := locomotion.SlopeAngle(sample); !near(got, 30, 1e-3) {
		t.Errorf("slope = %v, want 30", got)
	}
}

func TestSurfaceHeightAt(t *testing.T) {
	s := ramp(45)
	if got := s.HeightAt(0, 4); !near(got, 4, 1e-5) {
		t.Errorf("HeightAt() = %v, want 4", got)
	}
	if !s.Contains(0, 4) || s.Contains(0, -1) {
		t.Error("Contains() footprint mismatch")
	}
}
