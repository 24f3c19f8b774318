// Package world provides a minimal planar terrain and kinematic capsule body
// for driving the locomotion controller outside a full physics engine.
package world

import (
	"errors"
	"fmt"
	"math"

	"github.com/go-gl/mathgl/mgl32"

	"github.com/Faultbox/strider/internal/locomotion"
)

// ErrInvalidSurface is returned for surfaces with no area or an impossible incline.
var ErrInvalidSurface = errors.New("invalid surface")

// Surface is a finite planar patch. Its footprint is the XZ rectangle
// [Min, Max]; it sits at Height along its Min.Z edge and rises along +Z by
// Angle degrees.
type Surface struct {
	Name   string     `yaml:"name"`
	Min    mgl32.Vec2 `yaml:"min,flow"`
	Max    mgl32.Vec2 `yaml:"max,flow"`
	Height float32    `yaml:"height"`
	Angle  float32    `yaml:"angle"`
}

// Validate checks the footprint and incline.
func (s Surface) Validate() error {
	if s.Max.X() <= s.Min.X() || s.Max.Y() <= s.Min.Y() {
		return fmt.Errorf("%w: %q has an empty footprint", ErrInvalidSurface, s.Name)
	}
	if s.Angle <= -90 || s.Angle >= 90 {
		return fmt.Errorf("%w: %q angle %v outside (-90, 90)", ErrInvalidSurface, s.Name, s.Angle)
	}
	return nil
}

// Normal returns the upward unit normal.
func (s Surface) Normal() mgl32.Vec3 {
	rad := float64(mgl32.DegToRad(s.Angle))
	return mgl32.Vec3{0, float32(math.Cos(rad)), -float32(math.Sin(rad))}
}

// origin is a point on the plane.
func (s Surface) origin() mgl32.Vec3 {
	return mgl32.Vec3{s.Min.X(), s.Height, s.Min.Y()}
}

// HeightAt returns the surface height at (x, z), ignoring the footprint.
func (s Surface) HeightAt(x, z float32) float32 {
	rad := float64(mgl32.DegToRad(s.Angle))
	return s.Height + (z-s.Min.Y())*float32(math.Tan(rad))
}

// Contains reports whether (x, z) lies within the footprint.
func (s Surface) Contains(x, z float32) bool {
	return x >= s.Min.X() && x <= s.Max.X() && z >= s.Min.Y() && z <= s.Max.Y()
}

// signedDistance is the distance of p above the plane.
func (s Surface) signedDistance(p mgl32.Vec3) float32 {
	return s.Normal().Dot(p.Sub(s.origin()))
}

// Terrain is a set of surfaces.
type Terrain struct {
	surfaces []Surface
}

// NewTerrain validates and stores surfaces.
func NewTerrain(surfaces []Surface) (*Terrain, error) {
	for i, s := range surfaces {
		if err := s.Validate(); err != nil {
			return nil, fmt.Errorf("surface %d: %w", i, err)
		}
	}
	return &Terrain{surfaces: append([]Surface(nil), surfaces...)}, nil
}

// Surfaces returns a copy of the terrain's surfaces.
func (t *Terrain) Surfaces() []Surface {
	return append([]Surface(nil), t.surfaces...)
}

// CapsuleCast sweeps the capsule along dir and reports the nearest surface it
// touches within maxDistance. Only the leading end sphere is tested, which
// is exact for downward sweeps onto upward-facing planes. A capsule already
// touching a surface reports a hit at distance 0.
func (t *Terrain) CapsuleCast(head, feet mgl32.Vec3, radius float32, dir mgl32.Vec3, maxDistance float32) (locomotion.Hit, bool) {
	if dir.Len() == 0 {
		return locomotion.Hit{}, false
	}
	dir = dir.Normalize()

	lead := feet
	if head.Dot(dir) > feet.Dot(dir) {
		lead = head
	}

	var (
		best  locomotion.Hit
		found bool
	)
	for _, s := range t.surfaces {
		n := s.Normal()
		approach := -n.Dot(dir)
		if approach <= 0 {
			continue
		}

		gap := s.signedDistance(lead)
		if gap < 0 {
			// center already below the plane
			continue
		}
		dist := (gap - radius) / approach
		if dist < 0 {
			dist = 0
		}
		if dist > maxDistance {
			continue
		}

		contact := lead.Add(dir.Mul(dist)).Sub(n.Mul(radius))
		if !s.Contains(contact.X(), contact.Z()) {
			continue
		}
		if !found || dist < best.Distance {
			best = locomotion.Hit{Distance: dist, Normal: n}
			found = true
		}
	}
	return best, found
}
