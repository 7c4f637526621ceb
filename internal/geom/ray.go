package geom

import (
	"math"

	"github.com/go-gl/mathgl/mgl64"
)

// epsilon rejects rays parallel to a triangle and hits behind the origin.
const epsilon = 1e-9

// Ray is a half-line starting at Origin.
type Ray struct {
	Origin    mgl64.Vec3
	Direction mgl64.Vec3
}

// At returns the point at parameter t along the ray.
func (r Ray) At(t float64) mgl64.Vec3 {
	return r.Origin.Add(r.Direction.Mul(t))
}

// Hit is the outcome of a ray query. A zero Hit means no intersection.
type Hit struct {
	Hit      bool
	Distance float64    // along the normalized ray direction
	Point    mgl64.Vec3 // world space
	Normal   mgl64.Vec3 // unit, facing the ray origin
}

// IntersectTriangle runs Möller–Trumbore without back-face culling.
// It returns the ray parameter of the hit.
func IntersectTriangle(r Ray, tri Triangle) (float64, bool) {
	e1 := tri[1].Sub(tri[0])
	e2 := tri[2].Sub(tri[0])

	p := r.Direction.Cross(e2)
	det := e1.Dot(p)
	if math.Abs(det) < epsilon {
		return 0, false
	}
	inv := 1 / det

	s := r.Origin.Sub(tri[0])
	u := s.Dot(p) * inv
	if u < 0 || u > 1 {
		return 0, false
	}

	q := s.Cross(e1)
	v := r.Direction.Dot(q) * inv
	if v < 0 || u+v > 1 {
		return 0, false
	}

	t := e2.Dot(q) * inv
	if t < epsilon {
		return 0, false
	}
	return t, true
}

// CastRay intersects r with mesh placed in the world by transform and
// returns the nearest hit.
func CastRay(r Ray, mesh Mesh, transform mgl64.Mat4) Hit {
	l := r.Direction.Len()
	if l == 0 {
		return Hit{}
	}
	r.Direction = r.Direction.Mul(1 / l)

	var best Hit
	for _, tri := range mesh.Triangles {
		world := tri.Transform(transform)
		n := world.Normal()
		if n.Len() == 0 {
			continue
		}

		t, ok := IntersectTriangle(r, world)
		if !ok || (best.Hit && t >= best.Distance) {
			continue
		}

		// Face the normal back at the ray regardless of winding.
		if n.Dot(r.Direction) > 0 {
			n = n.Mul(-1)
		}
		best = Hit{Hit: true, Distance: t, Point: r.At(t), Normal: n}
	}
	return best
}

// MeshCollider answers ray queries against triangle meshes. It is the
// production collision query handed to the physics step.
type MeshCollider struct{}

// CastRay implements the collider contract by delegating to CastRay.
func (MeshCollider) CastRay(r Ray, mesh Mesh, transform mgl64.Mat4) Hit {
	return CastRay(r, mesh, transform)
}
