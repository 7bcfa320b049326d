package wavefront

import (
	"github.com/df07/go-wavefront-tracer/pkg/core"
	"github.com/df07/go-wavefront-tracer/pkg/geometry"
)

// PathSegment is the array-of-structs per-path record §3 specifies: the
// current ray, accumulated throughput and color, remaining bounce budget,
// and the bookkeeping the Full integrator needs for its double-count rule
// (§4.G). pixelIndex survives compaction, preserving the uniqueness the
// framebuffer scatter-add relies on (§5).
type PathSegment struct {
	PixelIndex       int
	Ray              core.Ray
	Throughput       core.Vec3
	Color            core.Vec3
	RemainingBounces int
	IsFromCamera     bool
	IsSpecularPrior  bool
	PriorScatterPDF  float64
	PriorNormal      core.Vec3
	Sampler          *core.RNG
	Alive            bool
}

// hitRecord pairs a PathSegment with the scene hit its current ray found
// (or the miss) for one depth step.
type hitRecord struct {
	isect geometry.Intersection
	ok    bool
}
