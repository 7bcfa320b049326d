package scene

import (
	"fmt"

	"github.com/df07/go-wavefront-tracer/pkg/core"
	"github.com/df07/go-wavefront-tracer/pkg/denoise"
	"github.com/df07/go-wavefront-tracer/pkg/framebuffer"
	"github.com/df07/go-wavefront-tracer/pkg/gbuffer"
	"github.com/df07/go-wavefront-tracer/pkg/integrator"
	"github.com/df07/go-wavefront-tracer/pkg/wavefront"
)

// Context is the device-memory-lifecycle object §4.K/§6 specify: a single
// Init(scene) allocates every per-scene and per-framebuffer array; a single
// Free releases all of it; RenderIteration/ReadFramebuffer/Denoise are the
// only other entry points. Re-initializing requires Free first.
//
// There is no actual separate "device" here — pkg/wavefront's goroutine
// pool stands in for the massively-parallel hardware (§5) — but the
// lifecycle discipline (own everything from one Init, release it all from
// one Free) is kept because it is the contract the spec's external API
// makes. The G-buffer and framebuffer are allocated once, here; the
// wavefront driver allocates its path and intersection arrays afresh on
// every RenderIteration call.
type Context struct {
	scene  *Scene
	driver *wavefront.Driver
	fb     *framebuffer.Framebuffer
	gb     *gbuffer.Buffer

	initialized bool
}

// RenderConfig selects the integrator policy and the optional wavefront
// stages (§4.F, §4.G) a given Init should run with.
type RenderConfig struct {
	Policy  integrator.Policy
	Options wavefront.Options
}

// Init allocates every device array sized from the scene: the integrator's
// read-only geometry/material/light view, the k-d tree, the G-buffer, the
// framebuffer accumulator, and the wavefront driver (§4.K). The driver's
// path and intersection arrays are not allocated here but per iteration.
// Reinitialization requires Free first.
func Init(s *Scene, cfg RenderConfig) (*Context, error) {
	if s.Camera == nil {
		return nil, fmt.Errorf("scene: camera is required")
	}

	tree := BuildKDTree(s.Geoms)

	integratorScene := &integrator.Scene{
		Geoms:     s.Geoms,
		Pool:      s.Pool,
		Materials: s.Materials,
		Lights:    s.Lights,
		Tree:      tree,
		Env:       s.Env,
	}

	opts := cfg.Options
	if opts.TraceDepth <= 0 {
		opts.TraceDepth = s.TraceDepth
	}
	opts.AntiAliasing = s.Camera.AntiAliasing

	driver := wavefront.NewDriver(integratorScene, s.Width, s.Height, cfg.Policy, opts)
	fb := framebuffer.New(s.Width, s.Height)
	gb := gbuffer.NewBuffer(s.Width, s.Height, gbuffer.NormalOct, gbuffer.PositionDepth)

	return &Context{scene: s, driver: driver, fb: fb, gb: gb, initialized: true}, nil
}

// RenderIteration advances the accumulator by one sample per pixel (§6).
func (c *Context) RenderIteration(iteration int) error {
	if !c.initialized {
		return fmt.Errorf("scene: context not initialized")
	}
	cam := c.scene.Camera
	c.driver.RenderIteration(iteration, c.fb, c.gb, func(pixelIndex, width, height int, rng *core.RNG) core.Ray {
		return cam.GenerateRay(pixelIndex, width, height, rng)
	})
	return nil
}

// ReadFramebuffer returns a host-visible copy of the display-ready (mean,
// clamped) radiance (§6).
func (c *Context) ReadFramebuffer() []core.Vec3 {
	return c.fb.Read()
}

// Denoise runs the À-Trous filter over the current accumulator using the
// G-buffer captured at the last RenderIteration's depth-0 pass (§4.I, §6),
// and returns host-visible [0,255] display values, matching ReadFramebuffer's
// contract so callers never need to know the filter's internal scale.
func (c *Context) Denoise(sigmaColor, sigmaNormal, sigmaPosition float64, filterSize int) []core.Vec3 {
	w := denoise.Weights{SigmaColor: sigmaColor, SigmaNormal: sigmaNormal, SigmaPosition: sigmaPosition}
	filtered := denoise.ATrous(c.fb.Accum, c.scene.Width, c.scene.Height, c.fb.Iteration, c.gb, w, filterSize)

	n := c.fb.Iteration
	if n <= 0 {
		n = 1
	}
	inv := 1.0 / float64(n)
	out := make([]core.Vec3, len(filtered))
	for i, v := range filtered {
		out[i] = framebuffer.DisplayClamp(v.Multiply(inv))
	}
	return out
}

// Free releases all device state. Init must be called again before reuse.
func (c *Context) Free() {
	c.driver = nil
	c.fb = nil
	c.gb = nil
	c.scene = nil
	c.initialized = false
}
