// Package physics implements the per-frame ball step: flipper easing,
// ray-probe collision response, gravity, speed clamping, spin and
// integration. It is pure and deterministic; geometry queries go through
// a Collider supplied by the caller.
package physics

import (
	"math"
	"time"

	"github.com/go-gl/mathgl/mgl64"
)

// Params holds the tunable constants of the step.
type Params struct {
	Radius      float64    // ball radius, also the contact threshold
	MaxSpeed    float64    // speed cap, in units per frame
	FlipperStep float64    // radians per frame
	FlipperArc  float64    // radians of travel from rest
	Gravity     mgl64.Vec3 // added to velocity on frames without contact

	VerticalDamping float64 // Y scale after every reflection
	FloorBoost      float64 // X/Z scale after a floor contact
	FlipperKick     float64 // whole-vector scale after a flipper contact
	WallDamping     float64 // whole-vector scale after any other contact

	FrameTime time.Duration // reference frame; dt is measured against it
}

// DefaultParams returns the stock tuning.
func DefaultParams() Params {
	return Params{
		Radius:          0.4,
		MaxSpeed:        10,
		FlipperStep:     0.1,
		FlipperArc:      math.Pi / 4,
		Gravity:         mgl64.Vec3{0, -0.01, 0},
		VerticalDamping: 0.8,
		FloorBoost:      1.2,
		FlipperKick:     1.5,
		WallDamping:     0.8,
		FrameTime:       16 * time.Millisecond,
	}
}
