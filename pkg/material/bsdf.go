package material

import (
	"math"

	"github.com/df07/go-wavefront-tracer/pkg/core"
)

// Scatter implements 4.D's operation: given the incoming ray and the hit's
// world-space point/normal/tangent, produce a new ray and the throughput
// multiplier f*|cosθ|/pdf. Terminates the path (ok=false) when the sampled
// direction falls into the wrong hemisphere, per §4.D's closing rule.
func Scatter(rayIn core.Ray, point, normal, tangent core.Vec3, m Material, atlas *TextureAtlas, uv core.Vec2, sampler core.Sampler) (ScatterResult, bool) {
	albedo := m.Albedo
	if m.AlbedoTextureIndex >= 0 && atlas != nil {
		albedo = atlas.Sample(m.AlbedoTextureIndex, uv)
	}

	switch m.Tag {
	case Diffuse:
		return scatterDiffuse(point, normal, albedo, sampler)
	case SpecReflect:
		return scatterSpecReflect(rayIn, point, normal, m.SpecularColor)
	case SpecTransmit:
		return scatterSpecTransmit(rayIn, point, normal, m)
	case SpecFresnel:
		return scatterSpecFresnel(rayIn, point, normal, m, sampler)
	case Microfacet:
		return scatterMicrofacet(rayIn, point, normal, tangent, albedo, m.Roughness, sampler)
	default: // Emissive: not scattered here, §4.G handles emission.
		return ScatterResult{}, false
	}
}

func scatterDiffuse(point, normal, albedo core.Vec3, sampler core.Sampler) (ScatterResult, bool) {
	dir := core.RandomCosineDirection(normal, sampler)
	cosTheta := dir.Dot(normal)
	if cosTheta <= 0 {
		return ScatterResult{}, false
	}
	pdf := core.CosineHemispherePDF(cosTheta)
	origin := core.OffsetOrigin(point, normal, dir)
	return ScatterResult{
		Scattered:   core.NewRay(origin, dir),
		Attenuation: albedo, // (albedo/π) * cosθ / (cosθ/π) simplifies to albedo
		PDF:         pdf,
	}, true
}

func scatterSpecReflect(rayIn core.Ray, point, normal, specColor core.Vec3) (ScatterResult, bool) {
	dir := rayIn.Direction.Normalize().Reflect(normal)
	if dir.Dot(normal) <= 0 {
		return ScatterResult{}, false
	}
	origin := core.OffsetOrigin(point, normal, dir)
	return ScatterResult{
		Scattered:   core.NewRay(origin, dir),
		Attenuation: specColor,
		Specular:    true,
	}, true
}

func scatterSpecTransmit(rayIn core.Ray, point, normal core.Vec3, m Material) (ScatterResult, bool) {
	unitDir := rayIn.Direction.Normalize()
	frontFace := unitDir.Dot(normal) < 0
	n := normal
	eta := 1.0 / m.IOR
	if !frontFace {
		n = normal.Negate()
		eta = m.IOR
	}

	refracted, didRefract := unitDir.Refract(n, eta)
	var dir core.Vec3
	if didRefract {
		dir = refracted
	} else {
		// Total internal reflection: fall back to the reflect branch (§4.D).
		dir = unitDir.Reflect(n)
	}
	if dir.IsZero() {
		return ScatterResult{}, false
	}

	origin := core.OffsetOrigin(point, normal, dir)
	return ScatterResult{
		Scattered:   core.NewRay(origin, dir),
		Attenuation: core.NewVec3(1, 1, 1),
		Specular:    true,
	}, true
}

func scatterSpecFresnel(rayIn core.Ray, point, normal core.Vec3, m Material, sampler core.Sampler) (ScatterResult, bool) {
	unitDir := rayIn.Direction.Normalize()
	frontFace := unitDir.Dot(normal) < 0
	n := normal
	eta := 1.0 / m.IOR
	if !frontFace {
		n = normal.Negate()
		eta = m.IOR
	}

	cosTheta := math.Min(unitDir.Negate().Dot(n), 1.0)
	r0 := (1 - m.IOR) / (1 + m.IOR)
	r0 = r0 * r0
	reflectance := core.SchlickFresnel(cosTheta, r0)

	refracted, canRefract := unitDir.Refract(n, eta)

	var dir core.Vec3
	if !canRefract || sampler.Get1D() < reflectance {
		dir = unitDir.Reflect(normal)
	} else {
		dir = refracted
	}
	if dir.IsZero() {
		return ScatterResult{}, false
	}

	origin := core.OffsetOrigin(point, normal, dir)
	return ScatterResult{
		Scattered:   core.NewRay(origin, dir),
		Attenuation: m.SpecularColor,
		Specular:    true,
	}, true
}

func scatterMicrofacet(rayIn core.Ray, point, normal, tangent, albedo core.Vec3, roughness float64, sampler core.Sampler) (ScatterResult, bool) {
	alpha := math.Max(1e-3, roughness*roughness)
	bitangent := normal.Cross(tangent)

	wo := worldToLocal(rayIn.Direction.Negate().Normalize(), tangent, bitangent, normal)
	if wo.Z <= 0 {
		return ScatterResult{}, false
	}

	u1, u2 := sampler.Get2D()
	h := core.SampleGGXVisibleNormal(wo, alpha, u1, u2)
	wi := wo.Negate().Reflect(h)
	if wi.Z <= 0 {
		return ScatterResult{}, false
	}

	dir := localToWorld(wi, tangent, bitangent, normal)

	cosThetaH := h.Z
	d := core.GGXDistribution(cosThetaH, alpha)
	g := core.SmithG(wo.Z, wi.Z, alpha)
	r0 := 0.04 // dielectric-ish default specular reflectance at normal incidence
	f := core.SchlickFresnel(wo.Dot(h), r0)

	brdf := albedo.Multiply(f * d * g / (4 * wo.Z * wi.Z))
	pdfH := d * wo.Dot(h) * core.SmithG1(wo.Z, alpha) / wo.Z
	pdf := pdfH / (4 * wo.Dot(h))
	if pdf <= 0 || math.IsNaN(pdf) {
		return ScatterResult{}, false
	}

	origin := core.OffsetOrigin(point, normal, dir)
	attenuation := brdf.Multiply(wi.Z / pdf)
	return ScatterResult{
		Scattered:   core.NewRay(origin, dir),
		Attenuation: attenuation,
		PDF:         pdf,
	}, true
}

// EvaluateBRDF evaluates f(incomingDir, outgoingDir) at a shading point for
// the light-sampling MIS term (§4.E). Pure specular materials return zero —
// MIS only covers non-delta BSDFs, matching §4.E's "pure specular materials
// skip MIS".
func EvaluateBRDF(incomingDir, outgoingDir, normal, tangent core.Vec3, m Material, albedo core.Vec3) core.Vec3 {
	switch m.Tag {
	case Diffuse:
		if outgoingDir.Dot(normal) <= 0 {
			return core.Vec3{}
		}
		return albedo.Multiply(1.0 / math.Pi)
	case Microfacet:
		return evaluateMicrofacetBRDF(incomingDir, outgoingDir, normal, tangent, m.Roughness, albedo)
	default:
		return core.Vec3{}
	}
}

func evaluateMicrofacetBRDF(incomingDir, outgoingDir, normal, tangent core.Vec3, roughness float64, albedo core.Vec3) core.Vec3 {
	bitangent := normal.Cross(tangent)
	wo := worldToLocal(incomingDir.Negate().Normalize(), tangent, bitangent, normal)
	wi := worldToLocal(outgoingDir.Normalize(), tangent, bitangent, normal)
	if wo.Z <= 0 || wi.Z <= 0 {
		return core.Vec3{}
	}
	h := wo.Add(wi).Normalize()
	alpha := math.Max(1e-3, roughness*roughness)
	d := core.GGXDistribution(h.Z, alpha)
	g := core.SmithG(wo.Z, wi.Z, alpha)
	f := core.SchlickFresnel(wo.Dot(h), 0.04)
	return albedo.Multiply(f * d * g / (4 * wo.Z * wi.Z))
}

// PDF returns the pdf of sampling outgoingDir given incomingDir at a
// shading point, and whether the material is a delta (isDelta=true means
// "no direct-lighting MIS term applies here").
func PDF(incomingDir, outgoingDir, normal, tangent core.Vec3, m Material) (pdf float64, isDelta bool) {
	switch m.Tag {
	case Diffuse:
		cosTheta := outgoingDir.Dot(normal)
		return core.CosineHemispherePDF(cosTheta), false
	case Microfacet:
		bitangent := normal.Cross(tangent)
		wo := worldToLocal(incomingDir.Negate().Normalize(), tangent, bitangent, normal)
		wi := worldToLocal(outgoingDir.Normalize(), tangent, bitangent, normal)
		if wo.Z <= 0 || wi.Z <= 0 {
			return 0, false
		}
		h := wo.Add(wi).Normalize()
		alpha := math.Max(1e-3, m.Roughness*m.Roughness)
		d := core.GGXDistribution(h.Z, alpha)
		pdfH := d * wo.Dot(h) * core.SmithG1(wo.Z, alpha) / wo.Z
		return pdfH / (4 * wo.Dot(h)), false
	default:
		return 0, true
	}
}

func worldToLocal(v, t, b, n core.Vec3) core.Vec3 {
	return core.NewVec3(v.Dot(t), v.Dot(b), v.Dot(n))
}

func localToWorld(v, t, b, n core.Vec3) core.Vec3 {
	return t.Multiply(v.X).Add(b.Multiply(v.Y)).Add(n.Multiply(v.Z))
}
