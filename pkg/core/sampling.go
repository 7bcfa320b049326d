package core

import "math"

// This file implements 4.A's sampling primitives: concentric disk sampling,
// cosine-weighted hemisphere sampling with its exact pdf, GGX visible-normal
// sampling, uniform triangle sampling, and area<->solid-angle pdf
// conversions. Grounded on the teacher's pkg/core/sampling.go (PowerHeuristic
// / BalanceHeuristic / CombinePDFs are kept verbatim in spirit) extended with
// the geometric samplers the wavefront material/light stages need.

// PowerHeuristic implements the β=2 power heuristic for MIS (§4.E, §8.4).
func PowerHeuristic(nf int, fPdf float64, ng int, gPdf float64) float64 {
	if fPdf == 0 {
		return 0
	}
	f := float64(nf) * fPdf
	g := float64(ng) * gPdf
	return (f * f) / (f*f + g*g)
}

// BalanceHeuristic implements the balance heuristic for MIS.
func BalanceHeuristic(nf int, fPdf float64, ng int, gPdf float64) float64 {
	if fPdf == 0 {
		return 0
	}
	f := float64(nf) * fPdf
	g := float64(ng) * gPdf
	return f / (f + g)
}

// CombinePDFs returns the MIS weight for the light-sampling term given the
// light and material (BSDF) pdfs for the same direction.
func CombinePDFs(lightPdf, materialPdf float64, usePowerHeuristic bool) float64 {
	if lightPdf == 0 {
		return 0
	}
	if usePowerHeuristic {
		return PowerHeuristic(1, lightPdf, 1, materialPdf)
	}
	return BalanceHeuristic(1, lightPdf, 1, materialPdf)
}

// ConcentricSampleDisk maps a uniform square sample (u1,u2) in [0,1)^2 onto
// the unit disk with Shirley's concentric mapping, preserving area relative
// position. Used by cosine-hemisphere sampling and by the thin-lens DoF
// sampler (§4.F).
func ConcentricSampleDisk(u1, u2 float64) Vec2 {
	ox := 2*u1 - 1
	oy := 2*u2 - 1
	if ox == 0 && oy == 0 {
		return Vec2{}
	}
	var r, theta float64
	if math.Abs(ox) > math.Abs(oy) {
		r = ox
		theta = (math.Pi / 4) * (oy / ox)
	} else {
		r = oy
		theta = (math.Pi / 2) - (math.Pi/4)*(ox/oy)
	}
	return Vec2{r * math.Cos(theta), r * math.Sin(theta)}
}

// CosineSampleHemisphere draws a direction in the local hemisphere (z>=0)
// with pdf cosθ/π.
func CosineSampleHemisphere(u1, u2 float64) Vec3 {
	d := ConcentricSampleDisk(u1, u2)
	z := math.Sqrt(math.Max(0, 1-d.X*d.X-d.Y*d.Y))
	return NewVec3(d.X, d.Y, z)
}

// CosineHemispherePDF returns cosθ/π for cosTheta >= 0, else 0.
func CosineHemispherePDF(cosTheta float64) float64 {
	if cosTheta <= 0 {
		return 0
	}
	return cosTheta / math.Pi
}

// RandomCosineDirection draws a cosine-weighted direction around the world
// normal n using the local hemisphere sample rotated into n's frame.
func RandomCosineDirection(n Vec3, sampler Sampler) Vec3 {
	u1, u2 := sampler.Get2D()
	local := CosineSampleHemisphere(u1, u2)
	t, b := OrthonormalBasis(n)
	return t.Multiply(local.X).Add(b.Multiply(local.Y)).Add(n.Multiply(local.Z)).Normalize()
}

// UniformSampleTriangle returns barycentric coordinates (b0,b1,b2) uniformly
// distributed over a triangle, following the standard sqrt(u1) reparametrization.
func UniformSampleTriangle(u1, u2 float64) (b0, b1, b2 float64) {
	su0 := math.Sqrt(u1)
	b0 = 1 - su0
	b1 = u2 * su0
	b2 = 1 - b0 - b1
	return
}

// SampleGGXVisibleNormal samples a microfacet normal from the GGX
// distribution of visible normals (Heitz 2018), given the local (tangent
// space, z-up) outgoing direction wo and isotropic roughness alpha. This is
// the "Smith masking visible-normal variant" required by §4.A / §4.D's
// MICROFACET material.
func SampleGGXVisibleNormal(wo Vec3, alpha, u1, u2 float64) Vec3 {
	// Transform the view direction to the hemisphere configuration.
	vh := NewVec3(alpha*wo.X, alpha*wo.Y, wo.Z).Normalize()

	// Build an orthonormal basis around vh.
	lensq := vh.X*vh.X + vh.Y*vh.Y
	var t1 Vec3
	if lensq > 0 {
		invLen := 1.0 / math.Sqrt(lensq)
		t1 = NewVec3(-vh.Y*invLen, vh.X*invLen, 0)
	} else {
		t1 = NewVec3(1, 0, 0)
	}
	t2 := vh.Cross(t1)

	// Sample a disk with an extra horizon-clipping bias.
	r := math.Sqrt(u1)
	phi := 2 * math.Pi * u2
	p1 := r * math.Cos(phi)
	p2 := r * math.Sin(phi)
	s := 0.5 * (1 + vh.Z)
	p2 = (1-s)*math.Sqrt(math.Max(0, 1-p1*p1)) + s*p2

	// Project onto the hemisphere and unstretch back to the ellipsoid config.
	nh := t1.Multiply(p1).Add(t2.Multiply(p2)).Add(vh.Multiply(math.Sqrt(math.Max(0, 1-p1*p1-p2*p2))))
	return NewVec3(alpha*nh.X, alpha*nh.Y, math.Max(1e-6, nh.Z)).Normalize()
}

// GGXDistribution evaluates the GGX/Trowbridge-Reitz normal distribution
// function D(h) for a local-space half vector with roughness alpha.
func GGXDistribution(cosThetaH, alpha float64) float64 {
	a2 := alpha * alpha
	d := cosThetaH*cosThetaH*(a2-1) + 1
	return a2 / (math.Pi * d * d)
}

// SmithG1 evaluates the Smith masking function for one direction (local
// space, z-up) against a GGX lobe of roughness alpha.
func SmithG1(cosTheta, alpha float64) float64 {
	if cosTheta <= 0 {
		return 0
	}
	a2 := alpha * alpha
	tan2 := (1 - cosTheta*cosTheta) / (cosTheta * cosTheta)
	return 2.0 / (1.0 + math.Sqrt(1.0+a2*tan2))
}

// SmithG evaluates the separable Smith masking-shadowing term G(wo,wi).
func SmithG(cosThetaO, cosThetaI, alpha float64) float64 {
	return SmithG1(cosThetaO, alpha) * SmithG1(cosThetaI, alpha)
}

// SchlickFresnel computes the Schlick approximation of Fresnel reflectance
// given cosTheta between the incident direction and the surface/microfacet
// normal and the material's reflectance at normal incidence r0.
func SchlickFresnel(cosTheta, r0 float64) float64 {
	x := Clamp1(1-cosTheta, 0, 1)
	x2 := x * x
	return r0 + (1-r0)*x2*x2*x
}

// Clamp1 clamps a scalar to [lo, hi].
func Clamp1(v, lo, hi float64) float64 {
	return math.Max(lo, math.Min(hi, v))
}

// PDFAreaToSolidAngle converts a pdf expressed over a light's surface area
// measure to the equivalent pdf over solid angle as seen from a shading
// point: pdf_w = pdf_A * d^2 / |cosθ_l| (§4.A).
func PDFAreaToSolidAngle(pdfArea, distSquared, absCosLight float64) float64 {
	if absCosLight <= 0 {
		return 0
	}
	return pdfArea * distSquared / absCosLight
}
