package gbuffer

import (
	"testing"

	"github.com/df07/go-wavefront-tracer/pkg/core"
	"github.com/stretchr/testify/assert"
)

func TestOctNormalRoundTrip(t *testing.T) {
	dirs := []core.Vec3{
		core.NewVec3(0, 1, 0),
		core.NewVec3(0, -1, 0),
		core.NewVec3(1, 0, 0),
		core.NewVec3(0, 0, 1),
		core.NewVec3(0, 0, -1),
		core.NewVec3(1, 1, 1).Normalize(),
		core.NewVec3(-1, 1, -1).Normalize(),
		core.NewVec3(0.3, -0.8, 0.2).Normalize(),
	}
	for _, n := range dirs {
		packed := EncodeOctNormal(n)
		decoded := DecodeOctNormal(packed)
		assert.InDelta(t, n.X, decoded.X, 1e-6)
		assert.InDelta(t, n.Y, decoded.Y, 1e-6)
		assert.InDelta(t, n.Z, decoded.Z, 1e-6)
	}
}

func TestBufferWriteVec3Encoding(t *testing.T) {
	buf := NewBuffer(2, 2, NormalVec3, PositionVec3)
	ray := core.NewRay(core.NewVec3(0, 0, 0), core.NewVec3(0, 0, -1))
	normal := core.NewVec3(0, 1, 0)

	buf.Write(0, ray, 5.0, normal)

	px := buf.Pixels[0]
	assert.True(t, px.Valid)
	assert.Equal(t, normal, px.Normal)
	assert.Equal(t, ray.At(5.0), px.Position)
}

func TestBufferWriteDepthEncoding(t *testing.T) {
	buf := NewBuffer(1, 1, NormalOct, PositionDepth)
	ray := core.NewRay(core.NewVec3(1, 2, 3), core.NewVec3(0, 0, -1))
	normal := core.NewVec3(0, 0, 1)

	buf.Write(0, ray, 4.0, normal)

	px := buf.Pixels[0]
	assert.Equal(t, 4.0, px.Depth)
	assert.InDelta(t, 0, px.Normal.Subtract(normal).Length(), 1e-6)
	assert.Equal(t, ray.At(4.0), px.Position)
}
