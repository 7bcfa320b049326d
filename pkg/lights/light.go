// Package lights implements §4.E: area-light and environment sampling with
// power-heuristic MIS. Grounded on the teacher's pkg/lights (Light/LightSample
// shape) and pkg/core/sampling.go's PowerHeuristic, simplified from the
// teacher's BDPT-oriented importance-weighted sampler down to the uniform
// 1/N_L selection spec.md §4.E mandates.
package lights

import (
	"github.com/df07/go-wavefront-tracer/pkg/core"
	"github.com/df07/go-wavefront-tracer/pkg/geometry"
	"github.com/df07/go-wavefront-tracer/pkg/material"
)

// Kind tags whether a Light is a finite area light or the environment.
type Kind int

const (
	Area Kind = iota
	Environment
)

// Light is a handle to an emissive Geom (area light), or the scene's single
// environment map (§3). GeomIndex and Area are precomputed at scene init;
// the surface normal is not stored and is derived with each surface sample.
type Light struct {
	Kind      Kind
	GeomIndex int     // index into the scene's Geom slice, for Kind == Area
	Area      float64 // precomputed surface area, for Kind == Area
	Env       *EnvironmentMap
}

// LightSample is the result of sampling a point on a light from a shading
// point: a direction, distance, emission, and the solid-angle pdf of that
// direction (§3, §4.E).
type LightSample struct {
	Direction core.Vec3
	Distance  float64
	Emission  core.Vec3
	PDF       float64
}

// SamplePoint samples a point on the light as seen from `point` (§4.E step
// 2): uniform area for area lights, cosine-weighted on the upper hemisphere
// of `normal` for the environment.
func SamplePoint(light Light, point, normal core.Vec3, geoms []geometry.Geom, pool *geometry.TrianglePool, mats []material.Material, sampler core.Sampler) (LightSample, bool) {
	if light.Kind == Environment {
		return light.Env.sampleDirection(normal, sampler)
	}
	return sampleAreaLight(light, point, geoms, pool, mats, sampler)
}

// PDF returns the solid-angle pdf of sampling `direction` from `point`
// toward this light (§4.E step 3's "sample the BSDF ... compute pdf").
func PDF(light Light, point, normal, direction core.Vec3, geoms []geometry.Geom, pool *geometry.TrianglePool) float64 {
	if light.Kind == Environment {
		return light.Env.pdfDirection(normal, direction)
	}
	return areaLightPDF(light, point, direction, geoms, pool)
}

// Emit evaluates what an escaping ray direction sees on the environment,
// used both by the integrator's miss path and by the BSDF-sampling MIS term
// when a scattered ray hits the environment.
func (l Light) Emit(direction core.Vec3) core.Vec3 {
	if l.Kind != Environment || l.Env == nil {
		return core.Vec3{}
	}
	return l.Env.Le(direction)
}
