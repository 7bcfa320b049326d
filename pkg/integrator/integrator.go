// Package integrator implements §4.G's three shading policies: naive,
// direct-lighting MIS (reference/debug), and full. Grounded on the
// teacher's pkg/integrator path-tracing shade step, restructured around the
// wavefront driver's per-path Shade call instead of the teacher's recursive
// Trace.
package integrator

import (
	"github.com/df07/go-wavefront-tracer/pkg/core"
	"github.com/df07/go-wavefront-tracer/pkg/geometry"
	"github.com/df07/go-wavefront-tracer/pkg/kdtree"
	"github.com/df07/go-wavefront-tracer/pkg/lights"
	"github.com/df07/go-wavefront-tracer/pkg/material"
)

// Policy selects which of §4.G's three integrators a Shade call runs.
type Policy int

const (
	Naive Policy = iota
	DirectMIS
	Full
)

// RussianRouletteThreshold is the default remaining-bounce count below which
// the Full integrator starts rolling for termination (§4.G step iv). The
// roll itself happens in the wavefront driver, which owns remainingBounces;
// Shade only reports NextThroughput for the driver to divide by q.
const RussianRouletteThreshold = 3

// Scene bundles the read-only scene-wide data Shade needs: geometry,
// materials, lights, and the k-d tree for shadow rays. It is built once by
// pkg/scene and never mutated after init (§4.K / §5).
type Scene struct {
	Geoms     []geometry.Geom
	Pool      *geometry.TrianglePool
	Materials []material.Material
	Lights    []lights.Light
	Tree      *kdtree.Tree
	Env       *lights.EnvironmentMap
	Atlas     *material.TextureAtlas
}

// Vertex is everything Shade needs about the current path state at one
// surface hit: throughput and the bookkeeping Full needs to avoid
// double-counting direct light already added at the prior vertex (§4.G
// step i).
type Vertex struct {
	Throughput      core.Vec3
	IsFromCamera    bool
	IsSpecularPrior bool
	PriorScatterPDF float64   // pdf the ray arriving at this hit was sampled with
	PriorNormal     core.Vec3 // shading normal at the vertex the arriving ray was sampled from
}

// Result is what Shade contributes and whether the path should keep going.
type Result struct {
	ColorContribution core.Vec3
	NextRay           core.Ray
	NextThroughput    core.Vec3
	Continue          bool
	NextIsSpecular    bool
	NextScatterPDF    float64
}

// Shade implements §4.G's dispatch across the three policies for one
// surface hit (or environment miss, when hitOK is false).
func Shade(policy Policy, s *Scene, v Vertex, ray core.Ray, hit geometry.Intersection, hitOK bool, sampler core.Sampler) Result {
	if !hitOK {
		return shadeMiss(policy, v, s.Env, ray)
	}

	mat := s.Materials[hit.MaterialID]

	switch policy {
	case Naive:
		return shadeNaive(s, v, ray, hit, mat, sampler)
	case DirectMIS:
		return shadeDirectMIS(s, v, ray, hit, mat, sampler)
	default:
		return shadeFull(s, v, ray, hit, mat, sampler)
	}
}

func shadeMiss(policy Policy, v Vertex, env *lights.EnvironmentMap, ray core.Ray) Result {
	if env == nil {
		return Result{Continue: false}
	}
	switch policy {
	case Naive:
		return Result{ColorContribution: v.Throughput.MultiplyVec(env.Le(ray.Direction)), Continue: false}
	case DirectMIS:
		if v.IsFromCamera {
			return Result{ColorContribution: v.Throughput.MultiplyVec(env.Le(ray.Direction)), Continue: false}
		}
		return Result{Continue: false}
	default: // Full
		if !v.IsFromCamera && !v.IsSpecularPrior {
			return Result{Continue: false}
		}
		return Result{ColorContribution: v.Throughput.MultiplyVec(env.Le(ray.Direction)), Continue: false}
	}
}

func shadeNaive(s *Scene, v Vertex, ray core.Ray, hit geometry.Intersection, mat material.Material, sampler core.Sampler) Result {
	if mat.IsEmissive() {
		return Result{ColorContribution: v.Throughput.MultiplyVec(mat.Emittance), Continue: false}
	}
	return continuePath(s, v, ray, hit, mat, sampler)
}

// shadeDirectMIS ignores emissive surfaces except at the camera's first hit,
// and otherwise terminates every path with a single MIS direct estimate
// (§4.G: "used as a reference/debug integrator").
func shadeDirectMIS(s *Scene, v Vertex, ray core.Ray, hit geometry.Intersection, mat material.Material, sampler core.Sampler) Result {
	if mat.IsEmissive() {
		if v.IsFromCamera {
			return Result{ColorContribution: v.Throughput.MultiplyVec(mat.Emittance), Continue: false}
		}
		return Result{Continue: false}
	}

	albedo := resolveAlbedo(s, mat, hit)
	direct := lights.SampleDirect(s.Lights, s.Tree, s.Geoms, s.Pool, s.Materials,
		hit.Point, hit.SurfaceNormal, hit.SurfaceTangent, ray.Direction, mat, albedo, sampler)
	return Result{ColorContribution: v.Throughput.MultiplyVec(direct), Continue: false}
}

func shadeFull(s *Scene, v Vertex, ray core.Ray, hit geometry.Intersection, mat material.Material, sampler core.Sampler) Result {
	if mat.IsEmissive() {
		if v.IsFromCamera || v.IsSpecularPrior {
			return Result{ColorContribution: v.Throughput.MultiplyVec(mat.Emittance), Continue: false}
		}
		weight := bsdfHitWeight(s, v, ray, hit)
		return Result{ColorContribution: v.Throughput.MultiplyVec(mat.Emittance).Multiply(weight), Continue: false}
	}

	var direct core.Vec3
	if !mat.IsSpecularTag() {
		albedo := resolveAlbedo(s, mat, hit)
		direct = lights.SampleDirect(s.Lights, s.Tree, s.Geoms, s.Pool, s.Materials,
			hit.Point, hit.SurfaceNormal, hit.SurfaceTangent, ray.Direction, mat, albedo, sampler)
	}

	result := continuePath(s, v, ray, hit, mat, sampler)
	result.ColorContribution = v.Throughput.MultiplyVec(direct)
	return result
}

func continuePath(s *Scene, v Vertex, ray core.Ray, hit geometry.Intersection, mat material.Material, sampler core.Sampler) Result {
	// The dielectric scatters tell entering from exiting by the side of the
	// normal the ray arrives on, so they get the outward normal rather than
	// the face-forwarded one.
	normal := hit.SurfaceNormal
	if !hit.FrontFace && (mat.Tag == material.SpecTransmit || mat.Tag == material.SpecFresnel) {
		normal = normal.Negate()
	}
	scatter, ok := material.Scatter(ray, hit.Point, normal, hit.SurfaceTangent, mat, s.Atlas, hit.UV, sampler)
	if !ok {
		return Result{Continue: false}
	}
	return Result{
		NextRay:        scatter.Scattered,
		NextThroughput: v.Throughput.MultiplyVec(scatter.Attenuation),
		Continue:       true,
		NextIsSpecular: scatter.Specular,
		NextScatterPDF: scatter.PDF,
	}
}

func resolveAlbedo(s *Scene, mat material.Material, hit geometry.Intersection) core.Vec3 {
	if mat.AlbedoTextureIndex >= 0 && s.Atlas != nil {
		return s.Atlas.Sample(mat.AlbedoTextureIndex, hit.UV)
	}
	return mat.Albedo
}

// bsdfHitWeight computes the MIS weight for emission picked up after a
// non-specular bounce happened to land on an emissive geom (§4.G step i /
// §4.E step 3-4's BSDF-sampling term).
func bsdfHitWeight(s *Scene, v Vertex, ray core.Ray, hit geometry.Intersection) float64 {
	lightIdx := findLightForGeom(s.Lights, hit.GeomIndex)
	if lightIdx < 0 {
		return 1
	}
	return lights.BSDFSampleWeight(s.Lights[lightIdx], len(s.Lights), ray.Origin, v.PriorNormal, ray.Direction, v.PriorScatterPDF, s.Geoms, s.Pool)
}

func findLightForGeom(lightList []lights.Light, geomIndex int) int {
	for i, l := range lightList {
		if l.Kind == lights.Area && l.GeomIndex == geomIndex {
			return i
		}
	}
	return -1
}
