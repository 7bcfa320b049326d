package geometry

import (
	"math"

	"github.com/df07/go-wavefront-tracer/pkg/core"
)

// TrianglePool is the shared arena+index vertex/triangle pool (§3, §9): all
// TRIANGLE_MESH_INSTANCE Geoms index into it by a contiguous TriangleRange.
// The k-d tree's primitive-index permutation is over Geoms, not over this
// pool's triangles. Uploaded once per scene by the device-memory lifecycle (4.K).
type TrianglePool struct {
	Positions [][3]core.Vec3
	Normals   [][3]core.Vec3 // per-vertex normals, interpolated barycentrically
	UVs       [][3]core.Vec2
}

// AddTriangle appends one triangle and returns its index.
func (p *TrianglePool) AddTriangle(positions, normals [3]core.Vec3, uvs [3]core.Vec2) int {
	p.Positions = append(p.Positions, positions)
	p.Normals = append(p.Normals, normals)
	p.UVs = append(p.UVs, uvs)
	return len(p.Positions) - 1
}

const triangleEpsilon = 1e-8

// intersectTriangle implements the Möller-Trumbore ray/triangle intersection
// (§4.B), interpolating vertex normals and UVs barycentrically. idx selects
// the triangle in pool; its vertices are in the mesh's object space, and
// the caller (intersectMesh) passes a ray already mapped there by
// ToObjectRay.
func intersectTriangle(ray core.Ray, pool *TrianglePool, idx int, tMin, tMax float64) (Intersection, bool) {
	p := pool.Positions[idx]
	edge1 := p[1].Subtract(p[0])
	edge2 := p[2].Subtract(p[0])

	h := ray.Direction.Cross(edge2)
	a := edge1.Dot(h)
	if math.Abs(a) < triangleEpsilon {
		return Intersection{}, false
	}
	f := 1.0 / a
	s := ray.Origin.Subtract(p[0])
	u := f * s.Dot(h)
	if u < 0 || u > 1 {
		return Intersection{}, false
	}
	q := s.Cross(edge1)
	v := f * ray.Direction.Dot(q)
	if v < 0 || u+v > 1 {
		return Intersection{}, false
	}
	t := f * edge2.Dot(q)
	if t < tMin || t > tMax {
		return Intersection{}, false
	}

	w := 1 - u - v
	n := pool.Normals[idx]
	uvs := pool.UVs[idx]
	shadingNormal := n[0].Multiply(w).Add(n[1].Multiply(u)).Add(n[2].Multiply(v)).Normalize()
	uv := core.NewVec2(
		uvs[0].X*w+uvs[1].X*u+uvs[2].X*v,
		uvs[0].Y*w+uvs[1].Y*u+uvs[2].Y*v,
	)
	tangent := edge1.Normalize()

	return Intersection{
		T:              t,
		Point:          ray.At(t),
		SurfaceNormal:  shadingNormal,
		SurfaceTangent: tangent,
		UV:             uv,
	}, true
}

// intersectMesh walks the triangles in a mesh instance's range and keeps the
// closest hit. Real scenes route this through the k-d tree (§4.C); this
// linear scan is the brute-force fallback the tree traversal falls back to
// inside a leaf, and what pkg/kdtree's leaf-range iteration calls per leaf.
func intersectMesh(ray core.Ray, g Geom, tMin, tMax float64, pool *TrianglePool) (Intersection, bool) {
	if pool == nil {
		return Intersection{}, false
	}
	local := g.Transform.ToObjectRay(ray)

	var closest Intersection
	hitAnything := false
	closestSoFar := tMax

	for i := g.Triangles.Start; i < g.Triangles.Start+g.Triangles.Count; i++ {
		if hit, ok := intersectTriangle(local, pool, i, tMin, closestSoFar); ok {
			hitAnything = true
			closestSoFar = hit.T
			closest = hit
		}
	}
	if !hitAnything {
		return Intersection{}, false
	}

	closest.Point = g.Transform.ToWorld(closest.Point)
	outwardNormal := g.Transform.NormalToWorld(closest.SurfaceNormal)
	closest.SurfaceNormal, closest.FrontFace = faceForward(ray.Direction, outwardNormal)
	closest.SurfaceTangent = g.Transform.NormalToWorld(closest.SurfaceTangent)
	closest.MaterialID = g.MaterialID
	return closest, true
}

func meshBounds(g Geom, pool *TrianglePool) core.AABB {
	if pool == nil || g.Triangles.Count == 0 {
		return core.AABB{}
	}
	points := make([]core.Vec3, 0, g.Triangles.Count*3)
	for i := g.Triangles.Start; i < g.Triangles.Start+g.Triangles.Count; i++ {
		for _, v := range pool.Positions[i] {
			points = append(points, g.Transform.ToWorld(v))
		}
	}
	return core.NewAABBFromPoints(points...)
}
