package geometry

import (
	"math"

	"github.com/df07/go-wavefront-tracer/pkg/core"
)

// intersectSphere transforms the ray into object space, solves the quadratic
// at^2+bt+c=0, and transforms the hit back to world space (§4.B). Grounded
// on the teacher's pkg/geometry/sphere.go, generalized to the object-space /
// affine-transform model required by §3's Geom.
func intersectSphere(ray core.Ray, g Geom, tMin, tMax float64) (Intersection, bool) {
	local := g.Transform.ToObjectRay(ray)

	oc := local.Origin
	a := local.Direction.Dot(local.Direction)
	halfB := oc.Dot(local.Direction)
	c := oc.Dot(oc) - g.Radius*g.Radius

	discriminant := halfB*halfB - a*c
	if discriminant < 0 {
		return Intersection{}, false
	}
	sqrtD := math.Sqrt(discriminant)

	root := (-halfB - sqrtD) / a
	if root < tMin || root > tMax {
		root = (-halfB + sqrtD) / a
		if root < tMin || root > tMax {
			return Intersection{}, false
		}
	}

	localPoint := local.At(root)
	outwardNormalObj := localPoint.Multiply(1.0 / g.Radius)

	theta := math.Acos(-outwardNormalObj.Y)
	phi := math.Atan2(-outwardNormalObj.Z, outwardNormalObj.X) + math.Pi
	uv := core.NewVec2(phi/(2*math.Pi), theta/math.Pi)

	worldPoint := g.Transform.ToWorld(localPoint)
	outwardNormal := g.Transform.NormalToWorld(outwardNormalObj)
	normal, frontFace := faceForward(ray.Direction, outwardNormal)

	tangent := sphereTangent(outwardNormalObj)
	tangent = g.Transform.NormalToWorld(tangent)

	return Intersection{
		T:              root,
		Point:          worldPoint,
		SurfaceNormal:  normal,
		SurfaceTangent: tangent,
		UV:             uv,
		MaterialID:     g.MaterialID,
		FrontFace:      frontFace,
	}, true
}

// sphereTangent returns the tangent along decreasing phi (longitude, and so
// decreasing u),
// used by the microfacet/anisotropic BSDF (§4.A).
func sphereTangent(n core.Vec3) core.Vec3 {
	return core.NewVec3(-n.Z, 0, n.X).Normalize()
}

func sphereBounds(g Geom) core.AABB {
	r := core.NewVec3(g.Radius, g.Radius, g.Radius)
	corners := make([]core.Vec3, 0, 8)
	for _, sx := range []float64{-1, 1} {
		for _, sy := range []float64{-1, 1} {
			for _, sz := range []float64{-1, 1} {
				corner := core.NewVec3(sx*r.X, sy*r.Y, sz*r.Z)
				corners = append(corners, g.Transform.ToWorld(corner))
			}
		}
	}
	return core.NewAABBFromPoints(corners...)
}
