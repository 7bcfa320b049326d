package scene

import (
	"testing"

	"github.com/df07/go-wavefront-tracer/pkg/core"
	"github.com/df07/go-wavefront-tracer/pkg/geometry"
	"github.com/df07/go-wavefront-tracer/pkg/material"
	"github.com/stretchr/testify/assert"
)

func TestBuildKDTreeFindsNearestOfManySpheres(t *testing.T) {
	s := New(10, 10, NewCamera(Config{Center: core.NewVec3(0, 0, -10), LookAt: core.NewVec3(0, 0, 0), Up: core.NewVec3(0, 1, 0), VFovDegrees: 40, Width: 10, Height: 10}))
	matID := s.AddMaterial(material.Material{Tag: material.Diffuse, Albedo: core.NewVec3(1, 1, 1), AlbedoTextureIndex: -1})

	for i := 0; i < 50; i++ {
		s.AddSphere(core.NewVec3(float64(i)*3, 0, 0), 1, matID)
	}

	tree := BuildKDTree(s.Geoms)
	assert.NotEmpty(t, tree.Nodes)
	assert.Len(t, tree.Primitives, 50)

	ray := core.NewRay(core.NewVec3(0, 0, -10), core.NewVec3(0, 0, 1))
	hit, ok := tree.Hit(ray, 1e-4, 1e8, s.Geoms, s.Pool)
	assert.True(t, ok)
	assert.InDelta(t, 9, hit.T, 1e-6)

	brute, bok := geometry.Intersect(ray, s.Geoms[0], 1e-4, 1e8, s.Pool)
	assert.True(t, bok)
	assert.Equal(t, hit.T, brute.T)
}

func TestBuildKDTreeEmptyGeomsIsSafe(t *testing.T) {
	tree := BuildKDTree(nil)
	_, ok := tree.Hit(core.NewRay(core.Vec3{}, core.NewVec3(0, 0, 1)), 0, 100, nil, nil)
	assert.False(t, ok)
}
