package geometry

import "github.com/df07/go-wavefront-tracer/pkg/core"

// Intersection is the record returned by Intersect (§3): the nearest
// positive hit distance, a unit normal and tangent in world space,
// texture coordinates, and the material id to look up in the scene's
// material array. t <= 0 (or a false bool) means "miss". SurfaceNormal is
// face-forwarded to point against the incoming ray, so it is not always the
// outward normal: FrontFace is true when it is, and false when the ray hit
// the surface from inside (the outward normal is then -SurfaceNormal).
type Intersection struct {
	T              float64
	SurfaceNormal  core.Vec3
	SurfaceTangent core.Vec3
	UV             core.Vec2
	MaterialID     int
	GeomIndex      int
	Point          core.Vec3
	FrontFace      bool
}

// faceForward returns the normal flipped so it points against the
// incoming ray, and whether the original (outward) side is the front face.
func faceForward(rayDir, outwardNormal core.Vec3) (core.Vec3, bool) {
	frontFace := rayDir.Dot(outwardNormal) < 0
	if frontFace {
		return outwardNormal, true
	}
	return outwardNormal.Negate(), false
}

// Intersect dispatches to the primitive-specific intersector for g.Kind.
// pool is only consulted for TriangleMeshInstance geoms and may be nil
// otherwise (§4.B).
func Intersect(ray core.Ray, g Geom, tMin, tMax float64, pool *TrianglePool) (Intersection, bool) {
	switch g.Kind {
	case Sphere:
		return intersectSphere(ray, g, tMin, tMax)
	case Cube:
		return intersectCube(ray, g, tMin, tMax)
	case TriangleMeshInstance:
		return intersectMesh(ray, g, tMin, tMax, pool)
	default:
		return Intersection{}, false
	}
}
