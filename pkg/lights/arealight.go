package lights

import (
	"math"

	"github.com/df07/go-wavefront-tracer/pkg/core"
	"github.com/df07/go-wavefront-tracer/pkg/geometry"
	"github.com/df07/go-wavefront-tracer/pkg/material"
)

// sampleAreaLight draws a uniform point on the light's Geom surface, builds
// the shading-point-to-sample direction, and converts the light's uniform
// area pdf (1/Area) to the solid-angle measure the integrator works in
// (§4.A pdf_w = pdf_A * d^2 / |cosθ_l|).
func sampleAreaLight(light Light, point core.Vec3, geoms []geometry.Geom, pool *geometry.TrianglePool, mats []material.Material, sampler core.Sampler) (LightSample, bool) {
	g := geoms[light.GeomIndex]

	samplePoint, sampleNormal, ok := sampleGeomSurface(g, pool, sampler)
	if !ok {
		return LightSample{}, false
	}

	toLight := samplePoint.Subtract(point)
	distSq := toLight.LengthSquared()
	if distSq <= 1e-12 {
		return LightSample{}, false
	}
	dist := math.Sqrt(distSq)
	dir := toLight.Multiply(1 / dist)

	cosLight := -dir.Dot(sampleNormal)
	pdf := core.PDFAreaToSolidAngle(1.0/light.Area, distSq, math.Abs(cosLight))
	if pdf <= 0 {
		return LightSample{}, false
	}

	emission := mats[g.MaterialID].Emittance

	return LightSample{
		Direction: dir,
		Distance:  dist,
		Emission:  emission,
		PDF:       pdf,
	}, true
}

// areaLightPDF computes the solid-angle pdf of `direction` toward a light by
// re-intersecting it: step 3 of §4.E needs this to weight a BSDF-sampled
// direction that happens to land on the light.
func areaLightPDF(light Light, point, direction core.Vec3, geoms []geometry.Geom, pool *geometry.TrianglePool) float64 {
	g := geoms[light.GeomIndex]
	ray := core.NewRay(point, direction)
	hit, ok := geometry.Intersect(ray, g, 1e-4, math.Inf(1), pool)
	if !ok {
		return 0
	}
	cosLight := math.Abs(direction.Dot(hit.SurfaceNormal))
	distSq := hit.T * hit.T * direction.LengthSquared()
	return core.PDFAreaToSolidAngle(1.0/light.Area, distSq, cosLight)
}

// sampleGeomSurface uniformly samples a point and outward normal on the
// surface of any of the three Geom kinds the spec allows as area lights
// (§4.E: "uniform area for triangles/spheres/cubes").
func sampleGeomSurface(g geometry.Geom, pool *geometry.TrianglePool, sampler core.Sampler) (point, normal core.Vec3, ok bool) {
	switch g.Kind {
	case geometry.Sphere:
		return sampleSphereSurface(g, sampler)
	case geometry.Cube:
		return sampleCubeSurface(g, sampler)
	case geometry.TriangleMeshInstance:
		return sampleMeshSurface(g, pool, sampler)
	default:
		return core.Vec3{}, core.Vec3{}, false
	}
}

// sampleSphereSurface draws one uniform direction and derives both the
// world-space surface point and outward normal from it.
func sampleSphereSurface(g geometry.Geom, sampler core.Sampler) (core.Vec3, core.Vec3, bool) {
	dir := uniformSphereDirection(sampler)
	local := dir.Multiply(g.Radius)
	point := g.Transform.ToWorld(local)
	normal := g.Transform.NormalToWorld(dir)
	return point, normal, true
}

func uniformSphereDirection(sampler core.Sampler) core.Vec3 {
	u1, u2 := sampler.Get2D()
	z := 1 - 2*u1
	r := math.Sqrt(math.Max(0, 1-z*z))
	phi := 2 * math.Pi * u2
	return core.NewVec3(r*math.Cos(phi), r*math.Sin(phi), z)
}

func sampleCubeSurface(g geometry.Geom, sampler core.Sampler) (core.Vec3, core.Vec3, bool) {
	u1 := sampler.Get1D()
	u2, u3 := sampler.Get2D()
	// Pick a face pair in proportion to its area under the scale, then a side.
	scale := g.Transform.Scale
	faceAreas := [3]float64{math.Abs(scale.Y * scale.Z), math.Abs(scale.X * scale.Z), math.Abs(scale.X * scale.Y)}
	x := u1 * (faceAreas[0] + faceAreas[1] + faceAreas[2])
	axis := 0
	for axis < 2 && x >= faceAreas[axis] {
		x -= faceAreas[axis]
		axis++
	}
	face := 2 * axis
	if x >= faceAreas[axis]/2 {
		face++
	}
	a := 2*u2 - 1
	b := 2*u3 - 1

	var local, normalObj core.Vec3
	switch face {
	case 0:
		local, normalObj = core.NewVec3(1, a, b), core.NewVec3(1, 0, 0)
	case 1:
		local, normalObj = core.NewVec3(-1, a, b), core.NewVec3(-1, 0, 0)
	case 2:
		local, normalObj = core.NewVec3(a, 1, b), core.NewVec3(0, 1, 0)
	case 3:
		local, normalObj = core.NewVec3(a, -1, b), core.NewVec3(0, -1, 0)
	case 4:
		local, normalObj = core.NewVec3(a, b, 1), core.NewVec3(0, 0, 1)
	default:
		local, normalObj = core.NewVec3(a, b, -1), core.NewVec3(0, 0, -1)
	}

	return g.Transform.ToWorld(local), g.Transform.NormalToWorld(normalObj), true
}

func sampleMeshSurface(g geometry.Geom, pool *geometry.TrianglePool, sampler core.Sampler) (core.Vec3, core.Vec3, bool) {
	if pool == nil || g.Triangles.Count == 0 {
		return core.Vec3{}, core.Vec3{}, false
	}
	u0 := sampler.Get1D()
	idx := g.Triangles.Start + int(u0*float64(g.Triangles.Count))
	if idx >= g.Triangles.Start+g.Triangles.Count {
		idx = g.Triangles.Start + g.Triangles.Count - 1
	}

	u1, u2 := sampler.Get2D()
	b0, b1, b2 := core.UniformSampleTriangle(u1, u2)

	p := pool.Positions[idx]
	point := p[0].Multiply(b0).Add(p[1].Multiply(b1)).Add(p[2].Multiply(b2))

	edge1 := p[1].Subtract(p[0])
	edge2 := p[2].Subtract(p[0])
	normalObj := edge1.Cross(edge2).Normalize()

	return g.Transform.ToWorld(point), g.Transform.NormalToWorld(normalObj), true
}

// GeomSurfaceArea computes the world-space surface area of a Geom used as
// an area light, precomputed once per scene (§3 "precomputed area").
func GeomSurfaceArea(g geometry.Geom, pool *geometry.TrianglePool) float64 {
	switch g.Kind {
	case geometry.Sphere:
		scale := g.Transform.Scale
		avgScale := (scale.X + scale.Y + scale.Z) / 3
		r := g.Radius * avgScale
		return 4 * math.Pi * r * r
	case geometry.Cube:
		scale := g.Transform.Scale
		return 8 * (scale.X*scale.Y + scale.Y*scale.Z + scale.X*scale.Z)
	case geometry.TriangleMeshInstance:
		if pool == nil {
			return 0
		}
		total := 0.0
		for i := g.Triangles.Start; i < g.Triangles.Start+g.Triangles.Count; i++ {
			p := pool.Positions[i]
			w0 := g.Transform.ToWorld(p[0])
			w1 := g.Transform.ToWorld(p[1])
			w2 := g.Transform.ToWorld(p[2])
			total += w1.Subtract(w0).Cross(w2.Subtract(w0)).Length() * 0.5
		}
		return total
	default:
		return 0
	}
}
