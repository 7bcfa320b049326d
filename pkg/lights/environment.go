package lights

import (
	"math"

	"github.com/df07/go-wavefront-tracer/pkg/core"
)

// EnvironmentMap is a lat-long HDR environment queried by direction (§3).
// Decoding/resampling the source HDR file is an external concern (internal
// /envmap, §6); this type only holds the already-decoded lat-long buffer
// (one float64 core.Vec3 per pixel) the core reads.
type EnvironmentMap struct {
	Width, Height int
	Pixels        []core.Vec3 // row-major, row 0 = +Y (up)
}

// Le samples the environment for a world-space direction, nearest-neighbor
// (matching §9's texture-sampling convention).
func (e *EnvironmentMap) Le(direction core.Vec3) core.Vec3 {
	if e == nil || e.Width == 0 || e.Height == 0 {
		return core.Vec3{}
	}
	d := direction.Normalize()
	u := 0.5 + math.Atan2(d.X, -d.Z)/(2*math.Pi)
	v := math.Acos(core.Clamp1(d.Y, -1, 1)) / math.Pi

	x := int(u * float64(e.Width))
	y := int(v * float64(e.Height))
	x = ((x % e.Width) + e.Width) % e.Width
	if y >= e.Height {
		y = e.Height - 1
	}
	if y < 0 {
		y = 0
	}
	return e.Pixels[y*e.Width+x]
}

// sampleDirection draws a cosine-weighted direction on the upper hemisphere
// of the shading normal (§4.E step 2 for the environment light) and returns
// its solid-angle pdf directly (cosθ/π, with no distance/area conversion
// since the environment is at infinity).
func (e *EnvironmentMap) sampleDirection(normal core.Vec3, sampler core.Sampler) (LightSample, bool) {
	dir := core.RandomCosineDirection(normal, sampler)
	cosTheta := dir.Dot(normal)
	pdf := core.CosineHemispherePDF(cosTheta)
	if pdf <= 0 {
		return LightSample{}, false
	}
	return LightSample{
		Direction: dir,
		Distance:  math.Inf(1),
		Emission:  e.Le(dir),
		PDF:       pdf,
	}, true
}

// pdfDirection returns the pdf used above, for the BSDF-sampling MIS term
// when a scattered ray escapes to the environment.
func (e *EnvironmentMap) pdfDirection(normal, direction core.Vec3) float64 {
	return core.CosineHemispherePDF(direction.Dot(normal))
}
