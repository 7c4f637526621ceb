package physics

import (
	"time"

	"github.com/go-gl/mathgl/mgl64"

	"github.com/vovakirdan/tui-pinball/internal/geom"
)

// State is everything the step mutates.
type State struct {
	Ball  Ball
	Left  Flipper
	Right Flipper
	Spawn mgl64.Vec3
	Frame uint64
}

// NewState returns a ball at rest at spawn and both flippers down.
func NewState(spawn mgl64.Vec3) State {
	return State{
		Ball:  NewBall(spawn),
		Left:  Flipper{Side: Left},
		Right: Flipper{Side: Right},
		Spawn: spawn,
	}
}

// Flipper returns the flipper on the given side.
func (s *State) Flipper(side Side) *Flipper {
	if side == Left {
		return &s.Left
	}
	return &s.Right
}

// Input is the per-frame control state.
type Input struct {
	Left  bool // left flipper held
	Right bool // right flipper held
	Reset bool // put the ball back at spawn
}

// Contact records one probe that touched the ball this frame.
type Contact struct {
	Probe    string
	Surface  Surface
	Distance float64
	Normal   mgl64.Vec3
}

// Report describes what happened during a step.
type Report struct {
	Contacts []Contact
	Reset    bool // the ball was put back at spawn
}

// Collided reports whether any probe applied a correction.
func (r Report) Collided() bool {
	return len(r.Contacts) > 0
}

// Touched reports whether a surface of the given kind was hit.
func (r Report) Touched(surface Surface) bool {
	for _, c := range r.Contacts {
		if c.Surface == surface {
			return true
		}
	}
	return false
}

// Step advances the simulation by one frame.
//
// Order: reset, flipper easing, probes in slice order, gravity when no
// probe touched, speed clamp, spin, integration. Contacts are resolved one
// after another with no iteration, so a ball in a corner is pushed out by
// each surface in turn. Only the integration scales with dt; everything
// else is per frame.
func Step(s *State, in Input, probes []Probe, collider Collider, p Params, dt time.Duration) Report {
	var report Report

	if in.Reset || !s.Ball.finite() {
		s.Ball.Reset(s.Spawn)
		report.Reset = true
	}

	s.Left.Ease(in.Left, p.FlipperStep, p.FlipperArc)
	s.Right.Ease(in.Right, p.FlipperStep, p.FlipperArc)

	for _, probe := range probes {
		if c, ok := resolve(s, probe, collider, p); ok {
			report.Contacts = append(report.Contacts, c)
		}
	}

	b := &s.Ball
	if !report.Collided() {
		b.Velocity = b.Velocity.Add(p.Gravity)
	}

	b.Velocity = clampSpeed(b.Velocity, p.MaxSpeed)

	spin := b.Velocity.Len() / p.Radius
	b.AngularVelocity = mgl64.Vec3{spin, spin, spin}
	b.Rotation = b.Rotation.Add(b.AngularVelocity)

	scale := 1.0
	if p.FrameTime > 0 {
		scale = float64(dt) / float64(p.FrameTime)
	}
	b.Position = b.Position.Add(b.Velocity.Mul(scale))

	s.Frame++
	return report
}

// resolve casts one probe and applies the contact response if the ball
// is within a radius of the surface.
func resolve(s *State, probe Probe, collider Collider, p Params) (Contact, bool) {
	b := &s.Ball
	hit := collider.CastRay(geom.Ray{Origin: b.Position, Direction: probe.Direction}, probe.Mesh, probe.Transform(s))
	if !hit.Hit || hit.Distance > p.Radius {
		return Contact{}, false
	}

	n := hit.Normal
	b.Position = b.Position.Add(n.Mul(p.Radius - hit.Distance))

	v := Reflect(b.Velocity, n)
	v[1] *= p.VerticalDamping

	switch probe.Surface {
	case SurfaceFloor:
		v[0] *= p.FloorBoost
		v[2] *= p.FloorBoost
	case SurfaceFlipper:
		v = v.Mul(p.FlipperKick)
	default:
		v = v.Mul(p.WallDamping)
	}
	b.Velocity = v

	return Contact{
		Probe:    probe.Name,
		Surface:  probe.Surface,
		Distance: hit.Distance,
		Normal:   n,
	}, true
}
