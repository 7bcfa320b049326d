package scene

import (
	"github.com/df07/go-wavefront-tracer/pkg/core"
	"github.com/df07/go-wavefront-tracer/pkg/geometry"
	"github.com/df07/go-wavefront-tracer/pkg/kdtree"
)

// maxLeafPrims bounds how many primitives a leaf keeps before the builder
// tries another split; small scenes bottom out quickly.
const maxLeafPrims = 4

// maxBuildDepth bounds recursion so the traverser's per-thread stack (§5:
// "bounded per-thread stack ≤ tree depth") stays small even on pathological
// inputs.
const maxBuildDepth = 24

// BuildKDTree is the host-side builder §4.C/§6 calls external: a top-down
// BSP over the scene's Geom bounding boxes that splits each node at the
// midpoint of its longest axis and sends each Geom to the side holding its
// box center, grounded on the teacher's pkg/geometry BVH recursion but emitting a flat
// kdtree.Node array plus primitive-index permutation instead of a pointer
// tree, per §3/§9's "arena + index" convention.
func BuildKDTree(geoms []geometry.Geom) *kdtree.Tree {
	if len(geoms) == 0 {
		return &kdtree.Tree{}
	}

	bounds := make([]core.AABB, len(geoms))
	worldBounds := geoms[0].BoundingBox()
	for i, g := range geoms {
		bounds[i] = g.BoundingBox()
		worldBounds = worldBounds.Union(bounds[i])
	}

	prims := make([]int, len(geoms))
	for i := range prims {
		prims[i] = i
	}

	b := &builder{geoms: geoms, bounds: bounds}
	b.nodes = append(b.nodes, kdtree.Node{})
	b.build(0, prims, worldBounds, 0)

	return &kdtree.Tree{Nodes: b.nodes, Primitives: b.order, Bounds: worldBounds}
}

type builder struct {
	geoms  []geometry.Geom
	bounds []core.AABB
	nodes  []kdtree.Node
	order  []int // primitive permutation, append-only as leaves are emitted
}

// build fills nodeIdx (already reserved in b.nodes) and recurses, returning
// nothing: child indices are written directly into the parent's Node once
// known, matching the flat-array convention kdtree.Tree expects.
func (b *builder) build(nodeIdx int, prims []int, bounds core.AABB, depth int) {
	if len(prims) <= maxLeafPrims || depth >= maxBuildDepth {
		b.emitLeaf(nodeIdx, prims)
		return
	}

	axis := int8(bounds.LongestAxis())
	splitPos := axisComponent(bounds.Center(), axis)

	var left, right []int
	for _, p := range prims {
		c := axisComponent(b.bounds[p].Center(), axis)
		if c < splitPos {
			left = append(left, p)
		} else {
			right = append(right, p)
		}
	}

	// A degenerate split (every primitive on one side, e.g. coincident
	// centers) would recurse forever; fall back to a leaf.
	if len(left) == 0 || len(right) == 0 {
		b.emitLeaf(nodeIdx, prims)
		return
	}

	leftBounds, rightBounds := childBounds(bounds, axis, splitPos)

	leftIdx := len(b.nodes)
	b.nodes = append(b.nodes, kdtree.Node{})
	rightIdx := len(b.nodes)
	b.nodes = append(b.nodes, kdtree.Node{})

	b.nodes[nodeIdx] = kdtree.Node{
		Axis:     axis,
		SplitPos: splitPos,
		Left:     int32(leftIdx),
		Right:    int32(rightIdx),
	}

	b.build(leftIdx, left, leftBounds, depth+1)
	b.build(rightIdx, right, rightBounds, depth+1)
}

func (b *builder) emitLeaf(nodeIdx int, prims []int) {
	start := len(b.order)
	b.order = append(b.order, prims...)
	b.nodes[nodeIdx] = kdtree.Node{
		Axis:      -1,
		PrimStart: int32(start),
		PrimCount: int32(len(prims)),
	}
}

func childBounds(bounds core.AABB, axis int8, splitPos float64) (core.AABB, core.AABB) {
	left, right := bounds, bounds
	switch axis {
	case 0:
		left.Max.X, right.Min.X = splitPos, splitPos
	case 1:
		left.Max.Y, right.Min.Y = splitPos, splitPos
	default:
		left.Max.Z, right.Min.Z = splitPos, splitPos
	}
	return left, right
}

func axisComponent(v core.Vec3, axis int8) float64 {
	switch axis {
	case 0:
		return v.X
	case 1:
		return v.Y
	default:
		return v.Z
	}
}
