package denoise

import (
	"testing"

	"github.com/df07/go-wavefront-tracer/pkg/core"
	"github.com/df07/go-wavefront-tracer/pkg/gbuffer"
	"github.com/stretchr/testify/assert"
)

func uniformGBuffer(width, height int) *gbuffer.Buffer {
	gb := gbuffer.NewBuffer(width, height, gbuffer.NormalVec3, gbuffer.PositionVec3)
	for i := range gb.Pixels {
		gb.Pixels[i] = gbuffer.Pixel{
			Valid:    true,
			Normal:   core.NewVec3(0, 0, 1),
			Position: core.NewVec3(float64(i%width), float64(i/width), 0),
		}
	}
	return gb
}

// TestATrousZeroWeightsIsIdentity matches §8's "with σ → 0, the output
// equals the input at every pixel whose neighbors differ" invariant.
func TestATrousZeroWeightsIsIdentity(t *testing.T) {
	const w, h = 4, 4
	accum := make([]core.Vec3, w*h)
	for i := range accum {
		accum[i] = core.NewVec3(float64(i), float64(i)*2, float64(i)*3)
	}
	gb := uniformGBuffer(w, h)

	out := ATrous(accum, w, h, 1, gb, Weights{SigmaColor: 1e-8, SigmaNormal: 1e-8, SigmaPosition: 1e-8}, 4)

	for i := range accum {
		assert.InDelta(t, accum[i].X, out[i].X, 1e-6)
		assert.InDelta(t, accum[i].Y, out[i].Y, 1e-6)
		assert.InDelta(t, accum[i].Z, out[i].Z, 1e-6)
	}
}

// TestATrousInfiniteWeightsIsLowPass checks that with all edge-stopping
// disabled (σ → ∞), a one-hot impulse gets smoothed rather than passed
// through untouched.
func TestATrousInfiniteWeightsIsLowPass(t *testing.T) {
	const w, h = 8, 8
	accum := make([]core.Vec3, w*h)
	accum[w*h/2] = core.NewVec3(100, 100, 100)
	gb := uniformGBuffer(w, h)

	out := ATrous(accum, w, h, 1, gb, Weights{SigmaColor: 1e8, SigmaNormal: 1e8, SigmaPosition: 1e8}, 4)

	assert.Less(t, out[w*h/2].X, accum[w*h/2].X)
	neighborIdx := w*h/2 + 1
	assert.Greater(t, out[neighborIdx].X, 0.0)
}

func TestGaussianPreservesUniformField(t *testing.T) {
	const w, h = 6, 6
	accum := make([]core.Vec3, w*h)
	for i := range accum {
		accum[i] = core.NewVec3(5, 5, 5)
	}
	k := NewGaussianKernel(2, 1.0)
	out := Gaussian(accum, w, h, 1, k)
	for i := range out {
		assert.InDelta(t, 5.0, out[i].X, 1e-6)
	}
}

func TestPassCount(t *testing.T) {
	assert.Equal(t, 1, passCount(4))
	assert.Equal(t, 2, passCount(8))
	assert.Equal(t, 3, passCount(16))
	assert.Equal(t, 5, passCount(64))
}
