package denoise

import (
	"math"

	"github.com/df07/go-wavefront-tracer/pkg/core"
)

// GaussianKernel is the cached quarter-kernel of a fixed isotropic Gaussian
// of variance σ², mirror-symmetric about the center tap (§4.I's fallback).
// Only the (radius+1)x(radius+1) quadrant is stored; callers mirror the
// other three via absolute offsets.
type GaussianKernel struct {
	Radius  int
	Sigma2  float64
	Weights []float64 // (Radius+1)*(Radius+1), row-major
}

// NewGaussianKernel builds the quarter-kernel for variance sigma2 out to
// `radius` taps in each direction.
func NewGaussianKernel(radius int, sigma2 float64) *GaussianKernel {
	if radius < 0 {
		radius = 0
	}
	if sigma2 <= 0 {
		sigma2 = 1e-8
	}
	n := radius + 1
	weights := make([]float64, n*n)
	for j := 0; j <= radius; j++ {
		for i := 0; i <= radius; i++ {
			d2 := float64(i*i + j*j)
			weights[j*n+i] = math.Exp(-d2 / (2 * sigma2))
		}
	}
	return &GaussianKernel{Radius: radius, Sigma2: sigma2, Weights: weights}
}

func (k *GaussianKernel) at(i, j int) float64 {
	n := k.Radius + 1
	if i < 0 {
		i = -i
	}
	if j < 0 {
		j = -j
	}
	return k.Weights[j*n+i]
}

// Gaussian applies the fixed isotropic blur to `accum/iteration`, returning
// the result multiplied back by iteration (matching ATrous's convention so
// the two filters are interchangeable at the display boundary).
func Gaussian(accum []core.Vec3, width, height, iteration int, k *GaussianKernel) []core.Vec3 {
	if iteration <= 0 {
		iteration = 1
	}
	mean := make([]core.Vec3, len(accum))
	inv := 1.0 / float64(iteration)
	for i, c := range accum {
		mean[i] = c.Multiply(inv)
	}

	out := make([]core.Vec3, len(accum))
	r := k.Radius
	for y := 0; y < height; y++ {
		for x := 0; x < width; x++ {
			var sum core.Vec3
			var wsum float64
			for j := -r; j <= r; j++ {
				ty := clampIndex(y+j, height)
				for i := -r; i <= r; i++ {
					tx := clampIndex(x+i, width)
					w := k.at(i, j)
					sum = sum.Add(mean[ty*width+tx].Multiply(w))
					wsum += w
				}
			}
			out[y*width+x] = sum.Multiply(float64(iteration) / wsum)
		}
	}
	return out
}

func clampIndex(v, limit int) int {
	if v < 0 {
		return 0
	}
	if v >= limit {
		return limit - 1
	}
	return v
}
