package scene

import (
	"testing"

	"github.com/df07/go-wavefront-tracer/pkg/core"
	"github.com/df07/go-wavefront-tracer/pkg/integrator"
	"github.com/df07/go-wavefront-tracer/pkg/material"
	"github.com/df07/go-wavefront-tracer/pkg/wavefront"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestAddQuadRegistersEmissiveAsAreaLight(t *testing.T) {
	s := New(10, 10, NewCamera(Config{Center: core.NewVec3(0, 0, -10), LookAt: core.NewVec3(0, 0, 0), Up: core.NewVec3(0, 1, 0), VFovDegrees: 40, Width: 10, Height: 10}))
	matID := s.AddMaterial(material.Material{Tag: material.Emissive, Emittance: core.NewVec3(5, 5, 5), AlbedoTextureIndex: -1})

	s.AddQuad(core.NewVec3(0, 0, 0), core.NewVec3(1, 0, 0), core.NewVec3(0, 0, 1), matID)

	require.Len(t, s.Lights, 1)
	assert.Greater(t, s.Lights[0].Area, 0.0)
}

func TestContextInitRenderReadRoundTrip(t *testing.T) {
	s := NewCornellScene(8, 8)

	ctx, err := Init(s, RenderConfig{Policy: integrator.Full, Options: wavefront.Options{TraceDepth: 4}})
	require.NoError(t, err)

	require.NoError(t, ctx.RenderIteration(1))
	out := ctx.ReadFramebuffer()
	assert.Len(t, out, 64)

	ctx.Free()
}
