// Package locomotion implements the per-tick player movement controller:
// ground sensing, status classification, the ability state machine and
// displacement integration.
package locomotion

import (
	"errors"
	"fmt"
)

// ErrUnknownStatus is returned when parsing a status name fails.
var ErrUnknownStatus = errors.New("unknown status")

// Status is the player's contact state, recomputed from the ground sample every tick.
type Status int

const (
	Grounded Status = iota
	Airborne
	SteepSlope
)

// String returns the lowercase status name.
func (s Status) String() string {
	switch s {
	case Grounded:
		return "grounded"
	case Airborne:
		return "airborne"
	case SteepSlope:
		return "steep_slope"
	default:
		return "unknown"
	}
}

// ParseStatus resolves a status name produced by String.
func ParseStatus(name string) (Status, error) {
	for _, s := range []Status{Grounded, Airborne, SteepSlope} {
		if s.String() == name {
			return s, nil
		}
	}
	return 0, fmt.Errorf("%w: %q", ErrUnknownStatus, name)
}

// MarshalText writes the status name.
func (s Status) MarshalText() ([]byte, error) {
	return []byte(s.String()), nil
}

// UnmarshalText reads a status name.
func (s *Status) UnmarshalText(text []byte) error {
	parsed, err := ParseStatus(string(text))
	if err != nil {
		return err
	}
	*s = parsed
	return nil
}

// slopeToleranceDivisor scales how quickly the ground-distance tolerance
// grows with the incline.
const slopeToleranceDivisor = 3.0

// SlopeAngle returns the incline of the sampled surface in degrees.
// A miss has no surface and reports 0.
func SlopeAngle(sample GroundSample) float32 {
	if !sample.Hit {
		return 0
	}
	return angleDeg(Up, sample.Normal)
}

// GroundTolerance is the maximum feet-to-surface distance still treated as
// contact for a surface inclined by slopeDeg.
func GroundTolerance(slopeDeg, baseTolerance float32) float32 {
	return baseTolerance + tanDeg(slopeDeg)/slopeToleranceDivisor
}

// Classify maps a ground sample to a Status.
//
// The distance tolerance widens with the slope so that a capsule standing on
// an incline, whose lowest point sits off the surface, is not taken for a fall.
func Classify(sample GroundSample, maxSlopeAngle, slopeAngleTolerance, baseGroundDistanceTolerance float32) Status {
	if !sample.Hit {
		return Airborne
	}

	slope := SlopeAngle(sample)
	if sample.Distance > GroundTolerance(slope, baseGroundDistanceTolerance) {
		return Airborne
	}
	if slope <= maxSlopeAngle+slopeAngleTolerance {
		return Grounded
	}
	return SteepSlope
}
