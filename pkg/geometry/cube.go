package geometry

import (
	"github.com/df07/go-wavefront-tracer/pkg/core"
)

// intersectCube intersects the ray with an axis-aligned unit cube
// [-1,1]^3 in object space using the slab method, reporting which face was
// hit so the outward normal and a tangent can be derived (§4.B). Grounded
// on the teacher's pkg/geometry/box.go (AABB slab test), extended to return
// a face normal/tangent/UV rather than a boolean.
func intersectCube(ray core.Ray, g Geom, tMin, tMax float64) (Intersection, bool) {
	local := g.Transform.ToObjectRay(ray)

	tEnter, tExit := tMin, tMax
	enterAxis, exitAxis := -1, -1
	enterSign, exitSign := 1.0, 1.0

	for axis := 0; axis < 3; axis++ {
		origin, dir := component(local.Origin, axis), component(local.Direction, axis)
		if dir == 0 {
			if origin < -1 || origin > 1 {
				return Intersection{}, false
			}
			continue
		}
		invD := 1.0 / dir
		t0 := (-1 - origin) * invD
		t1 := (1 - origin) * invD
		sign0, sign1 := -1.0, 1.0
		if invD < 0 {
			t0, t1 = t1, t0
			sign0, sign1 = sign1, sign0
		}
		if t0 > tEnter {
			tEnter, enterAxis, enterSign = t0, axis, sign0
		}
		if t1 < tExit {
			tExit, exitAxis, exitSign = t1, axis, sign1
		}
		if tExit <= tEnter {
			return Intersection{}, false
		}
	}

	var t float64
	var axis int
	var sign float64
	if tEnter > tMin {
		t, axis, sign = tEnter, enterAxis, enterSign
	} else if tExit <= tMax {
		t, axis, sign = tExit, exitAxis, exitSign
	} else {
		return Intersection{}, false
	}
	if axis < 0 {
		return Intersection{}, false
	}

	localPoint := local.At(t)
	outwardNormalObj := axisVec(axis, sign)
	tangentObj := axisVec((axis+1)%3, 1)

	worldPoint := g.Transform.ToWorld(localPoint)
	outwardNormal := g.Transform.NormalToWorld(outwardNormalObj)
	normal, frontFace := faceForward(ray.Direction, outwardNormal)
	tangent := g.Transform.NormalToWorld(tangentObj)

	u, v := cubeFaceUV(localPoint, axis)

	return Intersection{
		T:              t,
		Point:          worldPoint,
		SurfaceNormal:  normal,
		SurfaceTangent: tangent,
		UV:             core.NewVec2(u, v),
		MaterialID:     g.MaterialID,
		FrontFace:      frontFace,
	}, true
}

func component(v core.Vec3, axis int) float64 {
	switch axis {
	case 0:
		return v.X
	case 1:
		return v.Y
	default:
		return v.Z
	}
}

func axisVec(axis int, sign float64) core.Vec3 {
	switch axis {
	case 0:
		return core.NewVec3(sign, 0, 0)
	case 1:
		return core.NewVec3(0, sign, 0)
	default:
		return core.NewVec3(0, 0, sign)
	}
}

func cubeFaceUV(p core.Vec3, axis int) (u, v float64) {
	switch axis {
	case 0:
		return (p.Y + 1) * 0.5, (p.Z + 1) * 0.5
	case 1:
		return (p.X + 1) * 0.5, (p.Z + 1) * 0.5
	default:
		return (p.X + 1) * 0.5, (p.Y + 1) * 0.5
	}
}

func cubeBounds(g Geom) core.AABB {
	corners := make([]core.Vec3, 0, 8)
	for _, sx := range []float64{-1, 1} {
		for _, sy := range []float64{-1, 1} {
			for _, sz := range []float64{-1, 1} {
				corners = append(corners, g.Transform.ToWorld(core.NewVec3(sx, sy, sz)))
			}
		}
	}
	return core.NewAABBFromPoints(corners...)
}
