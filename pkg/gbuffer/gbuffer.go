// Package gbuffer implements §4.H: the per-pixel geometric auxiliary buffer
// captured at the primary hit (depth == 0), which the denoiser (pkg/denoise)
// reads to tell true edges apart from noise. Grounded on the teacher's
// pkg/renderer G-buffer plumbing, generalized to the oct-normal / z-depth
// encodings the spec names as build-time choices.
package gbuffer

import (
	"math"

	"github.com/df07/go-wavefront-tracer/pkg/core"
)

// NormalEncoding selects how surface normals are packed into the G-buffer.
type NormalEncoding int

const (
	NormalVec3 NormalEncoding = iota
	NormalOct
)

// PositionEncoding selects how surface position is packed into the G-buffer.
type PositionEncoding int

const (
	PositionVec3 PositionEncoding = iota
	PositionDepth
)

// Pixel holds one primary-hit sample in whichever encoding the build chose.
// Normal is always populated in decoded Vec3 form for the caller's
// convenience; NormalOct additionally carries the packed 2-vector so the
// denoiser can exercise the encode/decode round trip the spec describes.
type Pixel struct {
	Valid bool

	Normal    core.Vec3 // decoded unit normal
	OctNormal core.Vec2 // packed form, only meaningful when NormalEncoding == NormalOct

	Position core.Vec3 // decoded world position
	Depth    float64   // packed form, only meaningful when PositionEncoding == PositionDepth
}

// Buffer is the fixed-size per-pixel G-buffer allocated at scene init (§4.K).
type Buffer struct {
	Width, Height int
	NormalEnc     NormalEncoding
	PositionEnc   PositionEncoding
	Pixels        []Pixel
}

func NewBuffer(width, height int, normalEnc NormalEncoding, positionEnc PositionEncoding) *Buffer {
	return &Buffer{
		Width:       width,
		Height:      height,
		NormalEnc:   normalEnc,
		PositionEnc: positionEnc,
		Pixels:      make([]Pixel, width*height),
	}
}

// Write stores the primary-hit normal/position for pixelIndex, encoding it
// according to the buffer's fixed build-time choice. ray/t let the
// PositionDepth encoding store the hit distance as Depth, alongside the
// Position origin+t·dir that §4.H's decode rule reconstructs from it.
func (b *Buffer) Write(pixelIndex int, ray core.Ray, t float64, normal core.Vec3) {
	p := Pixel{Valid: true}

	switch b.NormalEnc {
	case NormalOct:
		p.OctNormal = EncodeOctNormal(normal)
		p.Normal = DecodeOctNormal(p.OctNormal)
	default:
		p.Normal = normal
	}

	switch b.PositionEnc {
	case PositionDepth:
		p.Depth = t
		p.Position = ray.At(t)
	default:
		p.Position = ray.At(t)
	}

	b.Pixels[pixelIndex] = p
}

// EncodeOctNormal maps a unit normal onto the signed-octahedron 2-vector
// (§4.H).
func EncodeOctNormal(n core.Vec3) core.Vec2 {
	l1 := math.Abs(n.X) + math.Abs(n.Y) + math.Abs(n.Z)
	if l1 == 0 {
		return core.Vec2{}
	}
	p := core.NewVec2(n.X/l1, n.Y/l1)
	if n.Z >= 0 {
		return p
	}
	return foldOct(p)
}

// DecodeOctNormal inverts EncodeOctNormal: restore z = 1 − |x| − |y|; if
// z < 0, fold xy back; renormalize (§4.H).
func DecodeOctNormal(p core.Vec2) core.Vec3 {
	z := 1 - math.Abs(p.X) - math.Abs(p.Y)
	xy := p
	if z < 0 {
		xy = foldOct(p)
	}
	n := core.NewVec3(xy.X, xy.Y, z)
	if n.IsZero() {
		return n
	}
	return n.Normalize()
}

func foldOct(p core.Vec2) core.Vec2 {
	return core.NewVec2(
		(1-math.Abs(p.Y))*sign(p.X),
		(1-math.Abs(p.X))*sign(p.Y),
	)
}

func sign(v float64) float64 {
	if v < 0 {
		return -1
	}
	return 1
}
