// Package table builds the pinball board: a tilted slab with four walls
// and two flippers, exposed as the ordered probe list the physics step
// consumes.
package table

import (
	"math"

	"github.com/go-gl/mathgl/mgl64"

	"github.com/vovakirdan/tui-pinball/internal/geom"
	"github.com/vovakirdan/tui-pinball/internal/physics"
)

// Layout describes the board geometry. Distances are world units and
// Tilt is in radians; a positive tilt lifts the back (-Z) end.
type Layout struct {
	Tilt      float64
	Center    mgl64.Vec3
	Width     float64 // along X
	Length    float64 // along Z
	Thickness float64

	WallHeight    float64
	WallThickness float64

	FlipperPivotX float64 // pivots sit at -X and +X
	FlipperZ      float64 // world Z of the pivots
	FlipperLength float64
	FlipperWidth  float64
	FlipperHeight float64

	Spawn mgl64.Vec3
}

// DefaultLayout is the stock board.
func DefaultLayout() Layout {
	return Layout{
		Tilt:          mgl64.DegToRad(6.5),
		Center:        mgl64.Vec3{0, 0, -5},
		Width:         20,
		Length:        40,
		Thickness:     1,
		WallHeight:    3,
		WallThickness: 1,
		FlipperPivotX: 3,
		FlipperZ:      12,
		FlipperLength: 2.5,
		FlipperWidth:  0.6,
		FlipperHeight: 1,
		Spawn:         mgl64.Vec3{1.5, 3.5, -18},
	}
}

// Probe names, in evaluation order.
const (
	ProbeFloor        = "floor"
	ProbeBackWall     = "back wall"
	ProbeLeftFlipper  = "left flipper"
	ProbeRightFlipper = "right flipper"
	ProbeFrontWall    = "front wall"
	ProbeRightWall    = "right wall"
	ProbeLeftWall     = "left wall"
)

// Table is a built board.
type Table struct {
	Layout Layout
	Board  mgl64.Mat4 // board-local to world
	Probes []physics.Probe

	mounts  [2]mgl64.Mat4
	flipper [2]geom.Mesh
}

// Build assembles the board meshes and the probe list for l.
func Build(l Layout) *Table {
	t := &Table{
		Layout: l,
		Board:  mgl64.Translate3D(l.Center[0], l.Center[1], l.Center[2]).Mul4(mgl64.HomogRotate3DX(l.Tilt)),
	}

	top := l.Thickness / 2
	halfW, halfL := l.Width/2, l.Length/2
	wallY := top + l.WallHeight/2
	wt := l.WallThickness

	floor := geom.NewBox(mgl64.Vec3{}, mgl64.Vec3{l.Width, l.Thickness, l.Length})
	back := geom.NewBox(mgl64.Vec3{0, wallY, -halfL + wt/2}, mgl64.Vec3{l.Width, l.WallHeight, wt})
	front := geom.NewBox(mgl64.Vec3{0, wallY, halfL - wt/2}, mgl64.Vec3{l.Width, l.WallHeight, wt})
	left := geom.NewBox(mgl64.Vec3{-halfW + wt/2, wallY, 0}, mgl64.Vec3{wt, l.WallHeight, l.Length})
	right := geom.NewBox(mgl64.Vec3{halfW - wt/2, wallY, 0}, mgl64.Vec3{wt, l.WallHeight, l.Length})

	// Flipper meshes extend from the pivot toward the centre line.
	size := mgl64.Vec3{l.FlipperLength, l.FlipperHeight, l.FlipperWidth}
	t.flipper[physics.Left] = geom.NewBox(mgl64.Vec3{l.FlipperLength / 2, 0, 0}, size)
	t.flipper[physics.Right] = geom.NewBox(mgl64.Vec3{-l.FlipperLength / 2, 0, 0}, size)

	h := top + l.FlipperHeight/2
	zl := (l.FlipperZ - l.Center[2] - h*math.Sin(l.Tilt)) / math.Cos(l.Tilt)
	t.mounts[physics.Left] = t.Board.Mul4(mgl64.Translate3D(-l.FlipperPivotX, h, zl))
	t.mounts[physics.Right] = t.Board.Mul4(mgl64.Translate3D(l.FlipperPivotX, h, zl))

	static := physics.StaticPose(t.Board)
	down := mgl64.Vec3{0, -1, 0}
	t.Probes = []physics.Probe{
		{Name: ProbeFloor, Surface: physics.SurfaceFloor, Direction: down, Mesh: floor, Pose: static},
		{Name: ProbeBackWall, Surface: physics.SurfaceWall, Direction: mgl64.Vec3{0, 0, -1}, Mesh: back, Pose: static},
		{Name: ProbeLeftFlipper, Surface: physics.SurfaceFlipper, Direction: mgl64.Vec3{0, 0, 1}, Mesh: t.flipper[physics.Left], Pose: physics.FlipperPose(physics.Left, t.mounts[physics.Left])},
		{Name: ProbeRightFlipper, Surface: physics.SurfaceFlipper, Direction: mgl64.Vec3{0, 0, 1}, Mesh: t.flipper[physics.Right], Pose: physics.FlipperPose(physics.Right, t.mounts[physics.Right])},
		{Name: ProbeFrontWall, Surface: physics.SurfaceWall, Direction: mgl64.Vec3{0, 0, 1}, Mesh: front, Pose: static},
		{Name: ProbeRightWall, Surface: physics.SurfaceWall, Direction: mgl64.Vec3{1, 0, 0}, Mesh: right, Pose: static},
		{Name: ProbeLeftWall, Surface: physics.SurfaceWall, Direction: mgl64.Vec3{-1, 0, 0}, Mesh: left, Pose: static},
	}
	return t
}

// NewState returns a fresh simulation state at the table's spawn point.
func (t *Table) NewState() physics.State {
	return physics.NewState(t.Layout.Spawn)
}

// FlipperTransform returns the world transform of a flipper mesh for s.
func (t *Table) FlipperTransform(s *physics.State, side physics.Side) mgl64.Mat4 {
	return physics.FlipperPose(side, t.mounts[side])(s)
}

// FlipperSegment returns the world positions of a flipper's pivot and tip.
func (t *Table) FlipperSegment(s *physics.State, side physics.Side) (pivot, tip mgl64.Vec3) {
	m := t.FlipperTransform(s, side)
	end := mgl64.Vec3{t.Layout.FlipperLength, 0, 0}
	if side == physics.Right {
		end = end.Mul(-1)
	}
	return mgl64.TransformCoordinate(mgl64.Vec3{}, m), mgl64.TransformCoordinate(end, m)
}

// SurfacePoint returns the world point on the playfield surface above
// board-local (x, z).
func (t *Table) SurfacePoint(x, z float64) mgl64.Vec3 {
	return mgl64.TransformCoordinate(mgl64.Vec3{x, t.Layout.Thickness / 2, z}, t.Board)
}

// Inner returns the world X/Z extent of the playfield between the walls.
func (t *Table) Inner() (minX, maxX, minZ, maxZ float64) {
	l := t.Layout
	hw := l.Width/2 - l.WallThickness
	hl := l.Length/2 - l.WallThickness
	back := t.SurfacePoint(0, -hl)
	front := t.SurfacePoint(0, hl)
	return -hw, hw, back.Z(), front.Z()
}
