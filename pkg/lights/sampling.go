package lights

import (
	"math"

	"github.com/df07/go-wavefront-tracer/pkg/core"
	"github.com/df07/go-wavefront-tracer/pkg/geometry"
	"github.com/df07/go-wavefront-tracer/pkg/kdtree"
	"github.com/df07/go-wavefront-tracer/pkg/material"
)

// SelectUniform picks one of the scene's lights with probability 1/N_L,
// where the environment (if present) counts as one extra source (§4.E
// step 1).
func SelectUniform(lightList []Light, u float64) (Light, float64, bool) {
	n := len(lightList)
	if n == 0 {
		return Light{}, 0, false
	}
	idx := int(u * float64(n))
	if idx >= n {
		idx = n - 1
	}
	return lightList[idx], 1.0 / float64(n), true
}

// SampleDirect implements the light-sampling half of §4.E's MIS estimator
// at one shading point: pick a light uniformly, sample a direction toward
// it, trace a shadow ray through the k-d tree, and weight the result by
// the power heuristic against the material's own pdf for that direction.
// The complementary BSDF-sampling term is realized across the next bounce:
// when a scattered ray happens to land on an area light, the integrator
// applies the matching weight to the emission it picks up there (§4.E step
// 3-4). The environment has no such term: a miss after a non-specular
// bounce adds nothing, so there the environment is reached only through
// this light-sampling estimate.
//
// Delta materials return zero — §4.E: "pure specular materials skip MIS",
// their direct contribution arrives entirely through the bounce path.
func SampleDirect(
	lightList []Light,
	tree *kdtree.Tree,
	geoms []geometry.Geom,
	pool *geometry.TrianglePool,
	mats []material.Material,
	point, normal, tangent, viewDir core.Vec3,
	m material.Material,
	albedo core.Vec3,
	sampler core.Sampler,
) core.Vec3 {
	if len(lightList) == 0 {
		return core.Vec3{}
	}

	light, selectPDF, ok := SelectUniform(lightList, sampler.Get1D())
	if !ok {
		return core.Vec3{}
	}

	sample, ok := SamplePoint(light, point, normal, geoms, pool, mats, sampler)
	if !ok {
		return core.Vec3{}
	}

	cosTheta := sample.Direction.Dot(normal)
	if cosTheta <= 0 {
		return core.Vec3{}
	}

	lightPDF := sample.PDF * selectPDF
	if lightPDF <= 0 {
		return core.Vec3{}
	}

	f := material.EvaluateBRDF(viewDir, sample.Direction, normal, tangent, m, albedo)
	if f.IsZero() {
		return core.Vec3{}
	}

	if occluded(tree, geoms, pool, point, normal, sample.Direction, sample.Distance) {
		return core.Vec3{}
	}

	scatterPDF, isDelta := material.PDF(viewDir, sample.Direction, normal, tangent, m)
	weight := 1.0
	if !isDelta {
		weight = core.PowerHeuristic(1, lightPDF, 1, scatterPDF)
	}

	return f.MultiplyVec(sample.Emission).Multiply(cosTheta * weight / lightPDF)
}

// BSDFSampleWeight returns the MIS weight to apply to emission picked up by
// a BSDF-sampled bounce that lands on `light` (§4.E step 3-4's other half):
// the scattering pdf the path already carries, power-heuristic-combined
// against that same direction's light-sampling pdf.
func BSDFSampleWeight(light Light, numLights int, point, normal, direction core.Vec3, scatterPDF float64, geoms []geometry.Geom, pool *geometry.TrianglePool) float64 {
	if numLights == 0 || scatterPDF <= 0 {
		return 1
	}
	lightPDF := PDF(light, point, normal, direction, geoms, pool) / float64(numLights)
	if lightPDF <= 0 {
		return 1
	}
	return core.PowerHeuristic(1, scatterPDF, 1, lightPDF)
}

func occluded(tree *kdtree.Tree, geoms []geometry.Geom, pool *geometry.TrianglePool, point, normal, direction core.Vec3, distance float64) bool {
	origin := core.OffsetOrigin(point, normal, direction)
	maxT := distance - 2e-3
	if math.IsInf(distance, 1) {
		maxT = math.Inf(1)
	}
	if maxT <= 0 {
		return false
	}
	ray := core.NewRay(origin, direction)
	_, hit := tree.Hit(ray, 1e-4, maxT, geoms, pool)
	return hit
}
