package physics

import "github.com/go-gl/mathgl/mgl64"

// Side identifies a flipper.
type Side int

const (
	Left Side = iota
	Right
)

// String returns the side name.
func (s Side) String() string {
	if s == Left {
		return "left"
	}
	return "right"
}

// Flipper is the eased angle of one flipper, in radians.
// The left flipper travels over [-arc, 0], the right one over [0, arc].
type Flipper struct {
	Side  Side
	Angle float64
}

// Limit returns the fully raised angle for the given arc.
func (f Flipper) Limit(arc float64) float64 {
	if f.Side == Left {
		return -arc
	}
	return arc
}

// Ease moves the angle one step toward the raised position while held
// and back toward rest otherwise. It never overshoots either end.
func (f *Flipper) Ease(held bool, step, arc float64) {
	target := 0.0
	if held {
		target = f.Limit(arc)
	}

	switch {
	case f.Angle < target:
		f.Angle = min(f.Angle+step, target)
	case f.Angle > target:
		f.Angle = max(f.Angle-step, target)
	}

	lo, hi := min(0, f.Limit(arc)), max(0, f.Limit(arc))
	f.Angle = min(max(f.Angle, lo), hi)
}

// Raised reports whether the flipper is off its rest position.
func (f Flipper) Raised() bool {
	return f.Angle != 0
}

// FlipperPose places a flipper mesh at mount and swings it about the
// mount's Y axis. Both sides rotate by -angle so a raised flipper points
// its tip toward -Z.
func FlipperPose(side Side, mount mgl64.Mat4) Pose {
	return func(s *State) mgl64.Mat4 {
		return mount.Mul4(mgl64.HomogRotate3DY(-s.Flipper(side).Angle))
	}
}
