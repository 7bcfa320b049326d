// Package material implements the BSDF variants of §4.D: diffuse,
// specular-reflect, specular-transmit, Fresnel-dielectric, microfacet/GGX,
// and emissive. Materials are a tag plus a flat field block (§9's Design
// Notes) dispatched through a small switch rather than virtual dispatch, so
// per-thread divergence stays predictable and the wavefront driver's
// optional material-sort (§4.F.b) groups identical-tag work together.
package material

import "github.com/df07/go-wavefront-tracer/pkg/core"

// Tag identifies which BSDF a Material evaluates.
type Tag int

const (
	Diffuse Tag = iota
	SpecReflect
	SpecTransmit
	SpecFresnel
	Microfacet
	Emissive
)

// Medium describes a homogeneous participating medium attached to a
// transmissive material (§3, §9's SUB_SCATTERING sketch). Valid is false
// for materials with no medium.
type Medium struct {
	Valid          bool
	AbsorptionCoef float64 // σ_t, the extinction coefficient
	ScatterColor   core.Vec3
}

// Material is the variant-over-tag record (§3): base color, specular color,
// index of refraction, roughness, emittance, and an optional texture/medium
// reference. A non-zero Emittance marks a material emissive regardless of
// Tag, matching §3's "emittance (scalar; non-zero ⇒ emissive)".
type Material struct {
	Tag                Tag
	Albedo             core.Vec3
	SpecularColor      core.Vec3
	IOR                float64
	Roughness          float64
	Emittance          core.Vec3
	AlbedoTextureIndex int // -1 when no texture
	Medium             Medium
}

// IsEmissive reports whether a hit on this material should contribute
// emitted radiance (§3).
func (m Material) IsEmissive() bool {
	return m.Emittance.Luminance() > 0
}

// IsSpecularTag reports whether this material's BSDF is a delta
// distribution, matching §4.E's "pure specular materials skip MIS".
func (m Material) IsSpecularTag() bool {
	switch m.Tag {
	case SpecReflect, SpecTransmit, SpecFresnel:
		return true
	default:
		return false
	}
}

// ScatterResult is what Scatter (4.D) returns: the new ray, the throughput
// multiplier f*|cosθ|/pdf already folded in (Attenuation), and the raw pdf
// so the integrator can form MIS weights. PDF <= 0 marks a delta/specular
// scatter, per §3's ScatterResult.IsSpecular rule.
type ScatterResult struct {
	Scattered   core.Ray
	Attenuation core.Vec3
	PDF         float64
	Specular    bool
}

func (s ScatterResult) IsSpecular() bool { return s.Specular || s.PDF <= 0 }
