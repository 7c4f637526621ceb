package physics

import (
	"github.com/go-gl/mathgl/mgl64"

	"github.com/vovakirdan/tui-pinball/internal/geom"
)

// Surface selects the restitution rule applied on contact.
type Surface int

const (
	SurfaceFloor Surface = iota
	SurfaceWall
	SurfaceFlipper
)

// String returns the surface name.
func (s Surface) String() string {
	switch s {
	case SurfaceFloor:
		return "floor"
	case SurfaceWall:
		return "wall"
	case SurfaceFlipper:
		return "flipper"
	default:
		return "unknown"
	}
}

// Pose yields the world transform of a probe's mesh for the current state.
type Pose func(s *State) mgl64.Mat4

// StaticPose returns a pose that never moves.
func StaticPose(m mgl64.Mat4) Pose {
	return func(*State) mgl64.Mat4 { return m }
}

// Probe is one ray cast from the ball centre against one mesh.
// Probes are evaluated in slice order every frame.
type Probe struct {
	Name      string
	Surface   Surface
	Direction mgl64.Vec3
	Mesh      geom.Mesh
	Pose      Pose
}

// Transform returns the mesh transform for s. A nil pose is the identity.
func (p Probe) Transform(s *State) mgl64.Mat4 {
	if p.Pose == nil {
		return mgl64.Ident4()
	}
	return p.Pose(s)
}

// Collider answers ray-vs-mesh queries. geom.MeshCollider is the
// production implementation.
type Collider interface {
	CastRay(ray geom.Ray, mesh geom.Mesh, transform mgl64.Mat4) geom.Hit
}
