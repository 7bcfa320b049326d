package meshloader

import (
	"testing"

	"github.com/df07/go-wavefront-tracer/pkg/core"
	"github.com/df07/go-wavefront-tracer/pkg/geometry"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestToTriangleRangeAppendsWorldSpaceTriangle(t *testing.T) {
	d := &PLYData{
		Vertices: []core.Vec3{
			core.NewVec3(0, 0, 0),
			core.NewVec3(1, 0, 0),
			core.NewVec3(0, 1, 0),
		},
		Faces: []int{0, 1, 2},
	}
	pool := &geometry.TrianglePool{}

	r := ToTriangleRange(pool, d, geometry.Transform{Translation: core.NewVec3(10, 0, 0), Scale: core.NewVec3(1, 1, 1)})

	require.Equal(t, 1, r.Count)
	assert.Equal(t, core.NewVec3(10, 0, 0), pool.Positions[r.Start][0])
}

func TestToTriangleRangeComputesFlatNormalWhenMissing(t *testing.T) {
	d := &PLYData{
		Vertices: []core.Vec3{
			core.NewVec3(0, 0, 0),
			core.NewVec3(1, 0, 0),
			core.NewVec3(0, 1, 0),
		},
		Faces: []int{0, 1, 2},
	}
	pool := &geometry.TrianglePool{}

	ToTriangleRange(pool, d, geometry.Identity())

	n := pool.Normals[0][0]
	assert.InDelta(t, 0, n.X, 1e-9)
	assert.InDelta(t, 0, n.Y, 1e-9)
	assert.InDelta(t, 1, n.Z, 1e-9)
}
