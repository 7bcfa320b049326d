// Package kdtree implements the traversal half of §4.C: a short-stack
// descent over a flat, prebuilt node array. The builder is an external
// collaborator per §6/§9 (arena+index, no per-node heap) — see
// pkg/scene/kdbuilder.go for the host-side construction this package
// assumes as a precondition. The traverser here only assumes the nodes are
// topologically valid and indexed consistently with the permuted primitive
// array; it never builds or rebalances.
package kdtree

import (
	"math"

	"github.com/df07/go-wavefront-tracer/pkg/core"
	"github.com/df07/go-wavefront-tracer/pkg/geometry"
)

// leafAxis marks a Node as a leaf (interior nodes use Axis 0/1/2).
const leafAxis = -1

// Node is the packed k-d node (§3): either an interior split (Axis,
// SplitPos, Left/Right child indices) or a leaf (PrimStart/PrimCount
// indexing into Tree.Primitives). No pointers — children are array
// indices so the whole array can be uploaded once per scene (§9).
type Node struct {
	Axis      int8
	SplitPos  float64
	Left      int32
	Right     int32
	PrimStart int32
	PrimCount int32
}

func (n Node) IsLeaf() bool { return n.Axis == leafAxis }

// Tree is the flat node array plus the primitive-index permutation the
// builder produced, and the bounds of the root used to seed traversal.
type Tree struct {
	Nodes      []Node
	Primitives []int // permutation into the scene's Geom slice
	Bounds     core.AABB
}

// stackEntry is one frame of the traversal's bounded stack (depth of the
// tree, never more — §5's "bounded per-thread stack (≤ tree depth)").
type stackEntry struct {
	node       int32
	tMin, tMax float64
}

// Hit traverses the tree for the nearest intersection in [tMin, tMax],
// testing leaf primitives against geoms/pool via geometry.Intersect. The
// near/far child order follows the ray's sign on the split axis; the far
// child is only pushed when its interval is non-empty (§4.C).
func (t *Tree) Hit(ray core.Ray, tMin, tMax float64, geoms []geometry.Geom, pool *geometry.TrianglePool) (geometry.Intersection, bool) {
	if len(t.Nodes) == 0 {
		return geometry.Intersection{}, false
	}

	rootMin, rootMax, ok := t.Bounds.Hit(ray, tMin, tMax)
	if !ok {
		return geometry.Intersection{}, false
	}

	var best geometry.Intersection
	found := false
	closest := rootMax

	stack := make([]stackEntry, 0, 64)
	stack = append(stack, stackEntry{node: 0, tMin: rootMin, tMax: rootMax})

	for len(stack) > 0 {
		entry := stack[len(stack)-1]
		stack = stack[:len(stack)-1]

		if entry.tMin > closest {
			continue
		}
		node := &t.Nodes[entry.node]

		if node.IsLeaf() {
			for i := int(node.PrimStart); i < int(node.PrimStart+node.PrimCount); i++ {
				g := geoms[t.Primitives[i]]
				if hit, ok := geometry.Intersect(ray, g, tMin, closest, pool); ok {
					hit.GeomIndex = t.Primitives[i]
					found = true
					closest = hit.T
					best = hit
				}
			}
			continue
		}

		originAxis := axisComponent(ray.Origin, node.Axis)
		dirAxis := axisComponent(ray.Direction, node.Axis)

		var tSplit float64
		if dirAxis != 0 {
			tSplit = (node.SplitPos - originAxis) / dirAxis
		} else {
			tSplit = math.Inf(1)
		}

		nearChild, farChild := node.Left, node.Right
		if originAxis > node.SplitPos || (originAxis == node.SplitPos && dirAxis > 0) {
			nearChild, farChild = node.Right, node.Left
		}

		// Descend near first; only push far if its interval is non-empty.
		if tSplit > entry.tMax || tSplit < 0 {
			stack = append(stack, stackEntry{node: nearChild, tMin: entry.tMin, tMax: entry.tMax})
		} else if tSplit < entry.tMin {
			stack = append(stack, stackEntry{node: farChild, tMin: entry.tMin, tMax: entry.tMax})
		} else {
			stack = append(stack, stackEntry{node: farChild, tMin: tSplit, tMax: entry.tMax})
			stack = append(stack, stackEntry{node: nearChild, tMin: entry.tMin, tMax: tSplit})
		}
	}

	return best, found
}

// BruteForceHit is the "or brute list" alternative §4.F allows in place of
// a k-d tree: test every geom directly. Used by small scenes and as a
// reference to validate the tree traversal against.
func BruteForceHit(ray core.Ray, tMin, tMax float64, geoms []geometry.Geom, pool *geometry.TrianglePool) (geometry.Intersection, bool) {
	var best geometry.Intersection
	found := false
	closest := tMax
	for i, g := range geoms {
		if hit, ok := geometry.Intersect(ray, g, tMin, closest, pool); ok {
			hit.GeomIndex = i
			found = true
			closest = hit.T
			best = hit
		}
	}
	return best, found
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
