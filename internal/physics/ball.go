package physics

import (
	"math"

	"github.com/go-gl/mathgl/mgl64"
)

// Ball is the single dynamic body.
// AngularVelocity and Rotation only drive the spin shown to the player.
type Ball struct {
	Position        mgl64.Vec3
	Velocity        mgl64.Vec3
	AngularVelocity mgl64.Vec3
	Rotation        mgl64.Vec3
}

// NewBall returns a ball at rest at spawn.
func NewBall(spawn mgl64.Vec3) Ball {
	return Ball{Position: spawn}
}

// Reset puts the ball back at spawn with no motion.
func (b *Ball) Reset(spawn mgl64.Vec3) {
	*b = NewBall(spawn)
}

// Speed returns the magnitude of the velocity.
func (b Ball) Speed() float64 {
	return b.Velocity.Len()
}

func (b Ball) finite() bool {
	for _, v := range [...]mgl64.Vec3{b.Position, b.Velocity} {
		for _, c := range v {
			if math.IsNaN(c) || math.IsInf(c, 0) {
				return false
			}
		}
	}
	return true
}

// clampSpeed scales v down to max when it is faster.
func clampSpeed(v mgl64.Vec3, max float64) mgl64.Vec3 {
	if l := v.Len(); l > max && l > 0 {
		return v.Mul(max / l)
	}
	return v
}

// Reflect mirrors v about the plane with unit normal n: v - 2(v·n)n.
func Reflect(v, n mgl64.Vec3) mgl64.Vec3 {
	return v.Sub(n.Mul(2 * v.Dot(n)))
}
