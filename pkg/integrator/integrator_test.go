package integrator

import (
	"testing"

	"github.com/df07/go-wavefront-tracer/pkg/core"
	"github.com/df07/go-wavefront-tracer/pkg/geometry"
	"github.com/df07/go-wavefront-tracer/pkg/material"
	"github.com/stretchr/testify/assert"
)

func emptyScene() *Scene {
	return &Scene{
		Geoms:     nil,
		Materials: nil,
		Lights:    nil,
	}
}

func TestShadeNaiveTerminatesOnEmissiveHit(t *testing.T) {
	s := emptyScene()
	mat := material.Material{Tag: material.Emissive, Emittance: core.NewVec3(5, 5, 5), AlbedoTextureIndex: -1}
	s.Materials = []material.Material{mat}

	hit := geometry.Intersection{MaterialID: 0, Point: core.NewVec3(0, 0, 0), SurfaceNormal: core.NewVec3(0, 1, 0)}
	v := Vertex{Throughput: core.NewVec3(1, 1, 1)}

	result := Shade(Naive, s, v, core.Ray{}, hit, true, core.NewRNGFromSeed(1))

	assert.False(t, result.Continue)
	assert.Equal(t, mat.Emittance, result.ColorContribution)
}

func TestShadeNaiveMissWithoutEnvironmentIsZero(t *testing.T) {
	s := emptyScene()
	v := Vertex{Throughput: core.NewVec3(1, 1, 1)}

	result := Shade(Naive, s, v, core.Ray{Direction: core.NewVec3(0, 1, 0)}, geometry.Intersection{}, false, core.NewRNGFromSeed(1))
	assert.False(t, result.Continue)
	assert.Equal(t, core.Vec3{}, result.ColorContribution) // nil Env -> zero contribution
}

func TestShadeFullSpecularMaterialContinuesAsSpecularBounce(t *testing.T) {
	s := emptyScene()
	mat := material.Material{Tag: material.SpecReflect, SpecularColor: core.NewVec3(1, 1, 1), AlbedoTextureIndex: -1}
	s.Materials = []material.Material{mat}

	hit := geometry.Intersection{
		MaterialID:    0,
		Point:         core.NewVec3(0, 0, 0),
		SurfaceNormal: core.NewVec3(0, 1, 0),
		GeomIndex:     -1,
	}
	ray := core.NewRay(core.NewVec3(0, 1, 0), core.NewVec3(0, -1, 0))
	v := Vertex{Throughput: core.NewVec3(1, 1, 1), IsFromCamera: true}

	result := Shade(Full, s, v, ray, hit, true, core.NewRNGFromSeed(7))

	assert.True(t, result.Continue)
	assert.True(t, result.NextIsSpecular)
}

func TestShadeDirectMISTerminatesEveryPath(t *testing.T) {
	s := emptyScene()
	mat := material.Material{Tag: material.Diffuse, Albedo: core.NewVec3(0.8, 0.8, 0.8), AlbedoTextureIndex: -1}
	s.Materials = []material.Material{mat}
	hit := geometry.Intersection{MaterialID: 0, Point: core.NewVec3(0, 0, 0), SurfaceNormal: core.NewVec3(0, 1, 0), SurfaceTangent: core.NewVec3(1, 0, 0)}
	v := Vertex{Throughput: core.NewVec3(1, 1, 1)}

	result := Shade(DirectMIS, s, v, core.NewRay(core.NewVec3(0, 1, 0), core.NewVec3(0, -1, 0)), hit, true, core.NewRNGFromSeed(3))
	assert.False(t, result.Continue)
}
