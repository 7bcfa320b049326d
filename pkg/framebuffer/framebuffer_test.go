package framebuffer

import (
	"testing"

	"github.com/df07/go-wavefront-tracer/pkg/core"
	"github.com/stretchr/testify/assert"
)

func TestAddAccumulatesAcrossIterations(t *testing.T) {
	fb := New(2, 1)
	fb.Add(0, core.NewVec3(1, 0, 0))
	fb.EndIteration()
	fb.Add(0, core.NewVec3(1, 0, 0))
	fb.EndIteration()

	mean := fb.Mean()
	assert.InDelta(t, 1.0, mean[0].X, 1e-9)
}

func TestReadClampsToDisplayRange(t *testing.T) {
	fb := New(1, 1)
	fb.Add(0, core.NewVec3(10, -5, 0.5))
	fb.EndIteration()

	out := fb.Read()
	assert.Equal(t, 255.0, out[0].X)
	assert.Equal(t, 0.0, out[0].Y)
	assert.InDelta(t, 127.5, out[0].Z, 1e-9)
}

func TestReadBeforeAnyIterationDoesNotDivideByZero(t *testing.T) {
	fb := New(1, 1)
	out := fb.Read()
	assert.Equal(t, 0.0, out[0].X)
}
