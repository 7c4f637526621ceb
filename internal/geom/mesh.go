// Package geom provides the 3D collision query used by the physics step:
// triangle meshes, rays and ray-vs-mesh intersection under a transform.
// It knows nothing about balls or flippers.
package geom

import "github.com/go-gl/mathgl/mgl64"

// Triangle holds three vertices wound counter-clockwise when seen from the
// side its normal points to.
type Triangle [3]mgl64.Vec3

// Normal returns the unit face normal, or the zero vector for a degenerate triangle.
func (t Triangle) Normal() mgl64.Vec3 {
	n := t[1].Sub(t[0]).Cross(t[2].Sub(t[0]))
	l := n.Len()
	if l == 0 {
		return mgl64.Vec3{}
	}
	return n.Mul(1 / l)
}

// Transform returns the triangle with every vertex moved by m.
func (t Triangle) Transform(m mgl64.Mat4) Triangle {
	return Triangle{
		mgl64.TransformCoordinate(t[0], m),
		mgl64.TransformCoordinate(t[1], m),
		mgl64.TransformCoordinate(t[2], m),
	}
}

// Mesh is a plain triangle soup in model space.
type Mesh struct {
	Triangles []Triangle
}

// boxFaces lists the corners of each face of a unit cube ([-1,1]^3) in
// counter-clockwise order seen from outside.
var boxFaces = [6][4]mgl64.Vec3{
	{{1, -1, -1}, {1, 1, -1}, {1, 1, 1}, {1, -1, 1}},     // +X
	{{-1, -1, -1}, {-1, -1, 1}, {-1, 1, 1}, {-1, 1, -1}}, // -X
	{{-1, 1, -1}, {-1, 1, 1}, {1, 1, 1}, {1, 1, -1}},     // +Y
	{{-1, -1, -1}, {1, -1, -1}, {1, -1, 1}, {-1, -1, 1}}, // -Y
	{{-1, -1, 1}, {1, -1, 1}, {1, 1, 1}, {-1, 1, 1}},     // +Z
	{{-1, -1, -1}, {-1, 1, -1}, {1, 1, -1}, {1, -1, -1}}, // -Z
}

// NewBox builds an axis-aligned box of the given size around center.
// The result has 12 triangles with outward-facing normals.
func NewBox(center, size mgl64.Vec3) Mesh {
	half := size.Mul(0.5)
	corner := func(c mgl64.Vec3) mgl64.Vec3 {
		return mgl64.Vec3{
			center[0] + c[0]*half[0],
			center[1] + c[1]*half[1],
			center[2] + c[2]*half[2],
		}
	}

	tris := make([]Triangle, 0, 12)
	for _, f := range boxFaces {
		a, b, c, d := corner(f[0]), corner(f[1]), corner(f[2]), corner(f[3])
		tris = append(tris, Triangle{a, b, c}, Triangle{a, c, d})
	}
	return Mesh{Triangles: tris}
}
