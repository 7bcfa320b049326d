package wavefront

import (
	"math"
	"sort"

	"github.com/df07/go-wavefront-tracer/pkg/core"
	"github.com/df07/go-wavefront-tracer/pkg/framebuffer"
	"github.com/df07/go-wavefront-tracer/pkg/gbuffer"
	"github.com/df07/go-wavefront-tracer/pkg/geometry"
	"github.com/df07/go-wavefront-tracer/pkg/integrator"
	"github.com/df07/go-wavefront-tracer/pkg/kdtree"
)

// Options configures the §4.F driver's optional stages.
type Options struct {
	TraceDepth       int
	SortByMaterial   bool // §4.F.b
	FirstBounceCache bool // §4.F.2a, requires a static camera and AA off
	AntiAliasing     bool
	RussianRoulette  bool
	RRThreshold      int // remainingBounces below which RR starts rolling
	UseBruteForceHit bool
}

// RayGenerator builds the primary ray for one pixel of one iteration,
// applying sub-pixel jitter and thin-lens DOF per §4.F step 1. Owned by
// pkg/scene's Camera.
type RayGenerator func(pixelIndex int, width, height int, rng *core.RNG) core.Ray

// Driver owns one scene's per-iteration path array and runs §4.F's
// generate → (intersect → shade → compact)* → accumulate loop.
type Driver struct {
	Scene   *integrator.Scene
	Width   int
	Height  int
	Policy  integrator.Policy
	Options Options

	firstBounce       []hitRecord
	firstBounceCached bool
}

func NewDriver(scene *integrator.Scene, width, height int, policy integrator.Policy, opts Options) *Driver {
	if opts.TraceDepth <= 0 {
		opts.TraceDepth = 8
	}
	if opts.RRThreshold <= 0 {
		opts.RRThreshold = integrator.RussianRouletteThreshold
	}
	return &Driver{Scene: scene, Width: width, Height: height, Policy: policy, Options: opts}
}

// RenderIteration implements §4.F in full: generates one sample per pixel,
// runs the depth loop with intersect/shade/compact, writes the G-buffer at
// depth 0, and scatters the surviving color into fb.
func (d *Driver) RenderIteration(iteration int, fb *framebuffer.Framebuffer, gb *gbuffer.Buffer, gen RayGenerator) {
	n := d.Width * d.Height
	paths := make([]PathSegment, n)
	for i := 0; i < n; i++ {
		rng := core.NewRNG(iteration, i, 0)
		paths[i] = PathSegment{
			PixelIndex:       i,
			Ray:              gen(i, d.Width, d.Height, rng),
			Throughput:       core.NewVec3(1, 1, 1),
			RemainingBounces: d.Options.TraceDepth,
			IsFromCamera:     true,
			Sampler:          rng,
			Alive:            true,
		}
	}

	live := paths
	for depth := 0; depth < d.Options.TraceDepth; depth++ {
		hits := d.intersect(live, depth, iteration, gb)
		d.shade(live, hits, depth, fb)
		live = d.compact(live)
		if len(live) == 0 {
			break
		}
	}

	fb.EndIteration()
}

func (d *Driver) intersect(paths []PathSegment, depth, iteration int, gb *gbuffer.Buffer) []hitRecord {
	if depth == 0 && d.Options.FirstBounceCache && d.firstBounceCached && !d.Options.AntiAliasing {
		// Defensive copy: shade's sortByMaterial reorders hits in place, and
		// the cache must stay aligned with the freshly generated paths on
		// every subsequent iteration, not whatever order the first caller
		// left it in.
		hits := make([]hitRecord, len(d.firstBounce))
		copy(hits, d.firstBounce)
		return hits
	}

	hits := make([]hitRecord, len(paths))
	parallelFor(len(paths), func(i int) {
		p := &paths[i]
		var isect geometry.Intersection
		var ok bool
		if d.Options.UseBruteForceHit {
			isect, ok = kdtree.BruteForceHit(p.Ray, 1e-4, math.Inf(1), d.Scene.Geoms, d.Scene.Pool)
		} else {
			isect, ok = d.Scene.Tree.Hit(p.Ray, 1e-4, math.Inf(1), d.Scene.Geoms, d.Scene.Pool)
		}
		hits[i] = hitRecord{isect: isect, ok: ok}
		if depth == 0 && gb != nil && ok {
			gb.Write(p.PixelIndex, p.Ray, isect.T, isect.SurfaceNormal)
		}
	})

	if depth == 0 && d.Options.FirstBounceCache && !d.Options.AntiAliasing {
		// Store a copy: shade may sort hits in place right after this.
		d.firstBounce = append([]hitRecord(nil), hits...)
		d.firstBounceCached = true
	}
	return hits
}

// sortByMaterial groups live paths by the material of their depth's hit, so
// threads executing the same BSDF branch stay contiguous (§4.F.b). Applied
// in place on both slices together to keep path/hit pairs aligned.
func (d *Driver) sortByMaterial(paths []PathSegment, hits []hitRecord) {
	idx := make([]int, len(paths))
	for i := range idx {
		idx[i] = i
	}
	sort.Slice(idx, func(a, b int) bool {
		return materialKey(d.Scene, hits[idx[a]]) < materialKey(d.Scene, hits[idx[b]])
	})

	sortedPaths := make([]PathSegment, len(paths))
	sortedHits := make([]hitRecord, len(hits))
	for newPos, oldPos := range idx {
		sortedPaths[newPos] = paths[oldPos]
		sortedHits[newPos] = hits[oldPos]
	}
	copy(paths, sortedPaths)
	copy(hits, sortedHits)
}

func materialKey(s *integrator.Scene, h hitRecord) int {
	if !h.ok {
		return -1
	}
	return h.isect.MaterialID
}

// shade runs one bounce of the integrator for every live path and scatters
// a path's accumulated color into fb the instant it terminates — §4.F's
// "finalGather" scatter-add, done per-path rather than deferred to the end
// of the depth loop, since compact's in-place partition overwrites a dead
// path's array slot as soon as a later round shifts a survivor into it.
func (d *Driver) shade(paths []PathSegment, hits []hitRecord, depth int, fb *framebuffer.Framebuffer) {
	if d.Options.SortByMaterial {
		d.sortByMaterial(paths, hits)
	}
	parallelFor(len(paths), func(i int) {
		p := &paths[i]
		v := integrator.Vertex{
			Throughput:      p.Throughput,
			IsFromCamera:    p.IsFromCamera,
			IsSpecularPrior: p.IsSpecularPrior,
			PriorScatterPDF: p.PriorScatterPDF,
			PriorNormal:     p.PriorNormal,
		}
		result := integrator.Shade(d.Policy, d.Scene, v, p.Ray, hits[i].isect, hits[i].ok, p.Sampler)
		p.Color = p.Color.Add(result.ColorContribution)

		if !result.Continue {
			p.Alive = false
			p.RemainingBounces = 0
			fb.Add(p.PixelIndex, p.Color)
			return
		}

		p.RemainingBounces--
		if p.RemainingBounces <= 0 {
			p.Alive = false
			fb.Add(p.PixelIndex, p.Color)
			return
		}

		if d.Options.RussianRoulette && p.RemainingBounces < d.Options.RRThreshold {
			q := maxComponent(result.NextThroughput)
			if q <= 0 {
				p.Alive = false
				fb.Add(p.PixelIndex, p.Color)
				return
			}
			if p.Sampler.Get1D() >= q {
				p.Alive = false
				fb.Add(p.PixelIndex, p.Color)
				return
			}
			result.NextThroughput = result.NextThroughput.Multiply(1 / q)
		}

		p.Ray = result.NextRay
		p.Throughput = result.NextThroughput
		p.IsFromCamera = false
		p.IsSpecularPrior = result.NextIsSpecular
		p.PriorScatterPDF = result.NextScatterPDF
		if hits[i].ok {
			p.PriorNormal = hits[i].isect.SurfaceNormal
		}
	})
}

// compact stable-partitions so paths with Alive == true stay contiguous at
// the front, preserving relative order and pixelIndex uniqueness (§4.F.d).
func (d *Driver) compact(paths []PathSegment) []PathSegment {
	out := paths[:0]
	for _, p := range paths {
		if p.Alive {
			out = append(out, p)
		}
	}
	return out
}

func maxComponent(v core.Vec3) float64 {
	m := v.X
	if v.Y > m {
		m = v.Y
	}
	if v.Z > m {
		m = v.Z
	}
	return m
}
