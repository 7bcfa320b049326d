// Package framebuffer implements §4.J: the radiance accumulator and the
// normalization/tonemap-free conversion the display boundary performs.
// Grounded on the teacher's pkg/renderer accumulation buffer, simplified to
// the spec's "sum without clamping, divide by iteration at read time" rule.
package framebuffer

import (
	"math"

	"github.com/df07/go-wavefront-tracer/pkg/core"
)

// Framebuffer is a per-pixel radiance accumulator summed across iterations
// without tone mapping or clamping (§4.J). Allocated once at scene init and
// appended to only; see §4.K / §5 "the accumulator is append-only".
type Framebuffer struct {
	Width, Height int
	Accum         []core.Vec3
	Iteration     int
}

func New(width, height int) *Framebuffer {
	return &Framebuffer{Width: width, Height: height, Accum: make([]core.Vec3, width*height)}
}

// Add scatters `color` into pixelIndex (§4.F step 3's per-pixel scatter-add;
// safe without atomics because the stable partition keeps pixelIndex unique
// across live paths within one iteration, per §5).
func (f *Framebuffer) Add(pixelIndex int, color core.Vec3) {
	f.Accum[pixelIndex] = f.Accum[pixelIndex].Add(color)
}

// EndIteration advances the iteration counter used by Read's normalization.
func (f *Framebuffer) EndIteration() {
	f.Iteration++
}

// Read returns the host-visible mean radiance, clamped to [0,255] per
// channel after ×255, per §4.J / the external `readFramebuffer` contract
// (§6) combined with the display rule.
func (f *Framebuffer) Read() []core.Vec3 {
	out := make([]core.Vec3, len(f.Accum))
	n := f.Iteration
	if n <= 0 {
		n = 1
	}
	inv := 1.0 / float64(n)
	for i, c := range f.Accum {
		out[i] = DisplayClamp(c.Multiply(inv))
	}
	return out
}

// Mean returns color/iteration without the [0,255] display clamp, the form
// the denoiser (§4.I) and G-buffer-guided passes consume.
func (f *Framebuffer) Mean() []core.Vec3 {
	n := f.Iteration
	if n <= 0 {
		n = 1
	}
	inv := 1.0 / float64(n)
	out := make([]core.Vec3, len(f.Accum))
	for i, c := range f.Accum {
		out[i] = c.Multiply(inv)
	}
	return out
}

// DisplayClamp converts a mean (un-accumulated, color/iteration) radiance
// value to host-visible [0,255] display space (§4.J), shared by Read and by
// callers normalizing the denoiser's re-multiplied-by-iteration output.
func DisplayClamp(c core.Vec3) core.Vec3 {
	return core.NewVec3(clamp255(c.X), clamp255(c.Y), clamp255(c.Z))
}

func clamp255(v float64) float64 {
	v = v * 255
	if math.IsNaN(v) {
		return 0
	}
	if v < 0 {
		return 0
	}
	if v > 255 {
		return 255
	}
	return v
}
