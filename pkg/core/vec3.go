package core

import (
	"fmt"
	"math"
)

// Vec3 represents a 3D vector or an RGB color.
type Vec3 struct {
	X, Y, Z float64
}

// Vec2 represents a 2D vector, used for UV coordinates and disk/oct samples.
type Vec2 struct {
	X, Y float64
}

func NewVec3(x, y, z float64) Vec3 { return Vec3{X: x, Y: y, Z: z} }
func NewVec2(x, y float64) Vec2    { return Vec2{X: x, Y: y} }

func (v Vec2) Add(other Vec2) Vec2          { return Vec2{v.X + other.X, v.Y + other.Y} }
func (v Vec2) Multiply(scalar float64) Vec2 { return Vec2{v.X * scalar, v.Y * scalar} }

func (v Vec3) String() string {
	return fmt.Sprintf("{%.3g, %.3g, %.3g}", v.X, v.Y, v.Z)
}

func (v Vec3) Add(other Vec3) Vec3      { return Vec3{v.X + other.X, v.Y + other.Y, v.Z + other.Z} }
func (v Vec3) Subtract(other Vec3) Vec3 { return Vec3{v.X - other.X, v.Y - other.Y, v.Z - other.Z} }
func (v Vec3) Multiply(s float64) Vec3  { return Vec3{v.X * s, v.Y * s, v.Z * s} }

func (v Vec3) Length() float64        { return math.Sqrt(v.X*v.X + v.Y*v.Y + v.Z*v.Z) }
func (v Vec3) LengthSquared() float64 { return v.X*v.X + v.Y*v.Y + v.Z*v.Z }

func (v Vec3) Dot(other Vec3) float64    { return v.X*other.X + v.Y*other.Y + v.Z*other.Z }
func (v Vec3) AbsDot(other Vec3) float64 { return math.Abs(v.Dot(other)) }

// Clamp clamps each component to [minVal, maxVal].
func (v Vec3) Clamp(minVal, maxVal float64) Vec3 {
	return Vec3{
		X: max(minVal, min(maxVal, v.X)),
		Y: max(minVal, min(maxVal, v.Y)),
		Z: max(minVal, min(maxVal, v.Z)),
	}
}

// GammaCorrect applies gamma correction, used by the display/readback path.
func (v Vec3) GammaCorrect(gamma float64) Vec3 {
	invGamma := 1.0 / gamma
	return Vec3{math.Pow(v.X, invGamma), math.Pow(v.Y, invGamma), math.Pow(v.Z, invGamma)}
}

func (v Vec3) Normalize() Vec3 {
	length := v.Length()
	if length == 0 {
		return Vec3{}
	}
	return Vec3{v.X / length, v.Y / length, v.Z / length}
}

func (v Vec3) Cross(other Vec3) Vec3 {
	return Vec3{
		X: v.Y*other.Z - v.Z*other.Y,
		Y: v.Z*other.X - v.X*other.Z,
		Z: v.X*other.Y - v.Y*other.X,
	}
}

func (v Vec3) MultiplyVec(other Vec3) Vec3 {
	return Vec3{v.X * other.X, v.Y * other.Y, v.Z * other.Z}
}

func (v Vec3) DivideVec(other Vec3) Vec3 {
	return Vec3{v.X / other.X, v.Y / other.Y, v.Z / other.Z}
}

func (v Vec3) Square() Vec3 {
	return Vec3{v.X * v.X, v.Y * v.Y, v.Z * v.Z}
}

// Luminance returns perceptual luminance using Rec. 709 weights.
func (v Vec3) Luminance() float64 {
	return 0.2126*v.X + 0.7152*v.Y + 0.0722*v.Z
}

// MaxComponent returns max(r,g,b), used as the Russian-roulette survival estimate.
func (v Vec3) MaxComponent() float64 {
	return math.Max(v.X, math.Max(v.Y, v.Z))
}

func (v Vec3) IsZero() bool { return v.X == 0 && v.Y == 0 && v.Z == 0 }
func (v Vec3) Negate() Vec3 { return Vec3{-v.X, -v.Y, -v.Z} }

// HasNaN reports whether any component is NaN or Inf, used to silently drop
// degenerate path contributions (§7) instead of poisoning the accumulator.
func (v Vec3) HasNaN() bool {
	return math.IsNaN(v.X) || math.IsNaN(v.Y) || math.IsNaN(v.Z) ||
		math.IsInf(v.X, 0) || math.IsInf(v.Y, 0) || math.IsInf(v.Z, 0)
}

func (v Vec3) Equals(other Vec3) bool {
	const tolerance = 1e-9
	return math.Abs(v.X-other.X) < tolerance &&
		math.Abs(v.Y-other.Y) < tolerance &&
		math.Abs(v.Z-other.Z) < tolerance
}

// Reflect reflects v around the unit normal n.
func (v Vec3) Reflect(n Vec3) Vec3 {
	return v.Subtract(n.Multiply(2 * v.Dot(n)))
}

// Refract refracts the unit vector v (pointing toward the surface) through
// the unit normal n given the ratio of indices of refraction etaiOverEtat.
// The bool result is false on total internal reflection.
func (v Vec3) Refract(n Vec3, etaiOverEtat float64) (Vec3, bool) {
	cosTheta := math.Min(v.Negate().Dot(n), 1.0)
	sin2Theta := etaiOverEtat * etaiOverEtat * math.Max(0, 1-cosTheta*cosTheta)
	if sin2Theta >= 1.0 {
		return Vec3{}, false
	}
	cosThetaT := math.Sqrt(1 - sin2Theta)
	perp := v.Add(n.Multiply(cosTheta)).Multiply(etaiOverEtat)
	parallel := n.Multiply(-cosThetaT)
	return perp.Add(parallel), true
}

// Rotate applies rotation around X, Y, Z axes (in that order) to the vector.
// Rotation angles are in radians. Used by Geom's affine transform.
func (v Vec3) Rotate(rotation Vec3) Vec3 {
	if rotation.X == 0 && rotation.Y == 0 && rotation.Z == 0 {
		return v
	}

	result := v

	if rotation.X != 0 {
		cosX := math.Cos(rotation.X)
		sinX := math.Sin(rotation.X)
		y := result.Y*cosX - result.Z*sinX
		z := result.Y*sinX + result.Z*cosX
		result = NewVec3(result.X, y, z)
	}

	if rotation.Y != 0 {
		cosY := math.Cos(rotation.Y)
		sinY := math.Sin(rotation.Y)
		x := result.X*cosY + result.Z*sinY
		z := -result.X*sinY + result.Z*cosY
		result = NewVec3(x, result.Y, z)
	}

	if rotation.Z != 0 {
		cosZ := math.Cos(rotation.Z)
		sinZ := math.Sin(rotation.Z)
		x := result.X*cosZ - result.Y*sinZ
		y := result.X*sinZ + result.Y*cosZ
		result = NewVec3(x, y, result.Z)
	}

	return result
}

// OrthonormalBasis builds a right-handed (tangent, bitangent) basis around
// the unit vector n, used when a hit doesn't carry its own surfaceTangent.
func OrthonormalBasis(n Vec3) (tangent, bitangent Vec3) {
	sign := math.Copysign(1, n.Z)
	a := -1.0 / (sign + n.Z)
	b := n.X * n.Y * a
	tangent = NewVec3(1+sign*n.X*n.X*a, sign*b, -sign*n.X)
	bitangent = NewVec3(b, sign+n.Y*n.Y*a, -n.Y)
	return
}

// Ray represents a ray with an origin and a (not necessarily unit) direction.
type Ray struct {
	Origin    Vec3
	Direction Vec3
}

func NewRay(origin, direction Vec3) Ray { return Ray{Origin: origin, Direction: direction} }

func NewRayTo(origin, target Vec3) Ray {
	return NewRay(origin, target.Subtract(origin).Normalize())
}

// At returns the point at parameter t along the ray.
func (r Ray) At(t float64) Vec3 { return r.Origin.Add(r.Direction.Multiply(t)) }

// rayEpsilon is the self-intersection offset applied to spawned rays (§4.B).
const rayEpsilon = 1e-3

// OffsetOrigin nudges a new ray origin along dir (or along the surface
// normal when transmitting) to avoid immediate self-intersection.
func OffsetOrigin(p, normal, dir Vec3) Vec3 {
	if normal.Dot(dir) < 0 {
		return p.Subtract(normal.Multiply(rayEpsilon))
	}
	return p.Add(normal.Multiply(rayEpsilon))
}
