package core

import "math"

// AABB is an axis-aligned bounding box, used for both Geom.BoundingBox()
// (§3) and k-d tree node bounds (§4.C). Grounded on the teacher's
// pkg/core/aabb.go.
type AABB struct {
	Min Vec3
	Max Vec3
}

func NewAABB(min, max Vec3) AABB { return AABB{Min: min, Max: max} }

func NewAABBFromPoints(points ...Vec3) AABB {
	if len(points) == 0 {
		return AABB{}
	}
	min, max := points[0], points[0]
	for _, p := range points[1:] {
		min.X, max.X = math.Min(min.X, p.X), math.Max(max.X, p.X)
		min.Y, max.Y = math.Min(min.Y, p.Y), math.Max(max.Y, p.Y)
		min.Z, max.Z = math.Min(min.Z, p.Z), math.Max(max.Z, p.Z)
	}
	return AABB{Min: min, Max: max}
}

// Hit tests ray-box intersection using the slab method, returning the
// overlap interval clipped to [tMin, tMax].
func (a AABB) Hit(ray Ray, tMin, tMax float64) (float64, float64, bool) {
	for axis := 0; axis < 3; axis++ {
		origin, dir, lo, hi := a.axis(ray, axis)
		invD := 1.0 / dir
		t0 := (lo - origin) * invD
		t1 := (hi - origin) * invD
		if invD < 0 {
			t0, t1 = t1, t0
		}
		if t0 > tMin {
			tMin = t0
		}
		if t1 < tMax {
			tMax = t1
		}
		if tMax <= tMin {
			return 0, 0, false
		}
	}
	return tMin, tMax, true
}

func (a AABB) axis(ray Ray, axis int) (origin, dir, lo, hi float64) {
	switch axis {
	case 0:
		return ray.Origin.X, ray.Direction.X, a.Min.X, a.Max.X
	case 1:
		return ray.Origin.Y, ray.Direction.Y, a.Min.Y, a.Max.Y
	default:
		return ray.Origin.Z, ray.Direction.Z, a.Min.Z, a.Max.Z
	}
}

func (a AABB) Union(other AABB) AABB {
	return AABB{
		Min: NewVec3(math.Min(a.Min.X, other.Min.X), math.Min(a.Min.Y, other.Min.Y), math.Min(a.Min.Z, other.Min.Z)),
		Max: NewVec3(math.Max(a.Max.X, other.Max.X), math.Max(a.Max.Y, other.Max.Y), math.Max(a.Max.Z, other.Max.Z)),
	}
}

func (a AABB) Center() Vec3 { return a.Min.Add(a.Max).Multiply(0.5) }
func (a AABB) Size() Vec3   { return a.Max.Subtract(a.Min) }

// LongestAxis returns 0/1/2 for X/Y/Z, the axis the k-d builder (external)
// splits along.
func (a AABB) LongestAxis() int {
	size := a.Size()
	if size.X > size.Y && size.X > size.Z {
		return 0
	} else if size.Y > size.Z {
		return 1
	}
	return 2
}
