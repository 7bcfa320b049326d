// Package denoise implements §4.I: the edge-aware À-Trous wavelet filter and
// its Gaussian fallback, both consuming the primary-hit G-buffer (pkg/gbuffer)
// to tell genuine edges from noise. The per-pixel passes run serially on
// the calling goroutine.
package denoise

import (
	"math"

	"github.com/df07/go-wavefront-tracer/pkg/core"
	"github.com/df07/go-wavefront-tracer/pkg/gbuffer"
)

// kernel1D is the B3-spline weights used both as separable 1D taps and
// flattened into the 5x5 kernel (§4.I).
var kernel1D = [5]float64{1.0 / 16, 1.0 / 4, 3.0 / 8, 1.0 / 4, 1.0 / 16}

// Weights bundles the three edge-stopping parameters σ_c, σ_n, σ_p.
type Weights struct {
	SigmaColor    float64
	SigmaNormal   float64
	SigmaPosition float64
}

// ATrous runs the edge-aware wavelet filter over `accum/iteration` (the
// per-pixel mean radiance so far), guided by `gb`, for a maximum filter
// footprint `filterSize`. The result is the filtered mean multiplied back by
// `iteration`, per §4.I's "final output is multiplied back by the iteration
// count so the display code can divide uniformly".
func ATrous(accum []core.Vec3, width, height, iteration int, gb *gbuffer.Buffer, w Weights, filterSize int) []core.Vec3 {
	if iteration <= 0 {
		iteration = 1
	}

	mean := make([]core.Vec3, len(accum))
	inv := 1.0 / float64(iteration)
	for i, c := range accum {
		mean[i] = c.Multiply(inv)
	}

	passes := passCount(filterSize)
	src := mean
	dst := make([]core.Vec3, len(accum))

	for k := 0; k < passes; k++ {
		stride := 1 << uint(k)
		atrousPass(src, dst, width, height, gb, w, stride)
		src, dst = dst, src
	}

	out := make([]core.Vec3, len(accum))
	for i, c := range src {
		out[i] = c.Multiply(float64(iteration))
	}
	return out
}

// passCount returns ⌊log2(F/4)⌋ + 1 passes so that a non-trivial footprint
// always runs at least the base stride-1 pass (§4.I).
func passCount(filterSize int) int {
	if filterSize <= 4 {
		return 1
	}
	n := int(math.Floor(math.Log2(float64(filterSize)/4.0))) + 1
	if n < 1 {
		n = 1
	}
	return n
}

func atrousPass(src, dst []core.Vec3, width, height int, gb *gbuffer.Buffer, w Weights, stride int) {
	for y := 0; y < height; y++ {
		for x := 0; x < width; x++ {
			idx := y*width + x
			dst[idx] = filterPixel(src, width, height, gb, w, stride, x, y, idx)
		}
	}
}

func filterPixel(src []core.Vec3, width, height int, gb *gbuffer.Buffer, w Weights, stride, x, y, idx int) core.Vec3 {
	centerColor := src[idx]
	centerNormal, centerPos := decodedAt(gb, idx)

	var sum core.Vec3
	var wsum float64

	for j := -2; j <= 2; j++ {
		for i := -2; i <= 2; i++ {
			tx := x + i*stride
			ty := y + j*stride
			if tx < 0 {
				tx = 0
			}
			if tx >= width {
				tx = width - 1
			}
			if ty < 0 {
				ty = 0
			}
			if ty >= height {
				ty = height - 1
			}
			tIdx := ty*width + tx

			h := kernel1D[i+2] * kernel1D[j+2]

			tapColor := src[tIdx]
			tapNormal, tapPos := decodedAt(gb, tIdx)

			dc := tapColor.Subtract(centerColor)
			colorWeight := math.Exp(-dc.Dot(dc) / positiveOr(w.SigmaColor))

			dn := tapNormal.Subtract(centerNormal)
			normalDistSq := math.Max(dn.Dot(dn), 0)
			normalWeight := math.Exp(-normalDistSq / positiveOr(w.SigmaNormal))

			dp := tapPos.Subtract(centerPos)
			posWeight := math.Exp(-dp.Dot(dp) / positiveOr(w.SigmaPosition))

			weight := h * colorWeight * normalWeight * posWeight
			sum = sum.Add(tapColor.Multiply(weight))
			wsum += weight
		}
	}

	if wsum <= 0 {
		return centerColor
	}
	return sum.Multiply(1 / wsum)
}

func decodedAt(gb *gbuffer.Buffer, idx int) (normal, position core.Vec3) {
	if gb == nil || idx >= len(gb.Pixels) {
		return core.Vec3{}, core.Vec3{}
	}
	px := gb.Pixels[idx]
	if gb.NormalEnc == gbuffer.NormalOct {
		return gbuffer.DecodeOctNormal(px.OctNormal), px.Position
	}
	return px.Normal, px.Position
}

func positiveOr(sigma float64) float64 {
	if sigma <= 0 {
		return 1e-8
	}
	return sigma
}
