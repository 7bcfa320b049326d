package scene

import (
	"github.com/df07/go-wavefront-tracer/pkg/core"
	"github.com/df07/go-wavefront-tracer/pkg/material"
)

// NewCornellScene builds the classic Cornell box: diffuse walls, an
// emissive ceiling panel, a mirror sphere, and a glass sphere. Dimensions
// and material colors are grounded on the teacher's pkg/scene/cornell.go;
// walls are rebuilt as 2-triangle quads and the spheres/area light as
// SPHERE/TRIANGLE_MESH_INSTANCE Geoms per §3's Geom variant instead of the
// teacher's Shape-interface Quad/Sphere types.
func NewCornellScene(width, height int) *Scene {
	cam := NewCamera(Config{
		Center:        core.NewVec3(278, 278, -800),
		LookAt:        core.NewVec3(278, 278, 0),
		Up:            core.NewVec3(0, 1, 0),
		VFovDegrees:   40,
		Width:         width,
		Height:        height,
		AntiAliasing:  true,
	})

	s := New(width, height, cam)
	s.TraceDepth = 16

	white := material.Material{Tag: material.Diffuse, Albedo: core.NewVec3(0.73, 0.73, 0.73), AlbedoTextureIndex: -1}
	red := material.Material{Tag: material.Diffuse, Albedo: core.NewVec3(0.65, 0.05, 0.05), AlbedoTextureIndex: -1}
	green := material.Material{Tag: material.Diffuse, Albedo: core.NewVec3(0.12, 0.45, 0.15), AlbedoTextureIndex: -1}
	mirror := material.Material{Tag: material.SpecReflect, SpecularColor: core.NewVec3(0.8, 0.8, 0.9), AlbedoTextureIndex: -1}
	glass := material.Material{Tag: material.SpecFresnel, SpecularColor: core.NewVec3(1, 1, 1), IOR: 1.5, AlbedoTextureIndex: -1}
	light := material.Material{Tag: material.Emissive, Emittance: core.NewVec3(15, 15, 15), AlbedoTextureIndex: -1}

	whiteID := s.AddMaterial(white)
	redID := s.AddMaterial(red)
	greenID := s.AddMaterial(green)
	mirrorID := s.AddMaterial(mirror)
	glassID := s.AddMaterial(glass)
	lightID := s.AddMaterial(light)

	const boxSize = 555.0

	s.AddQuad(core.NewVec3(0, 0, 0), core.NewVec3(boxSize, 0, 0), core.NewVec3(0, 0, boxSize), whiteID)       // floor
	s.AddQuad(core.NewVec3(0, boxSize, 0), core.NewVec3(boxSize, 0, 0), core.NewVec3(0, 0, boxSize), whiteID) // ceiling
	s.AddQuad(core.NewVec3(0, 0, boxSize), core.NewVec3(boxSize, 0, 0), core.NewVec3(0, boxSize, 0), whiteID) // back wall
	s.AddQuad(core.NewVec3(0, 0, 0), core.NewVec3(0, 0, boxSize), core.NewVec3(0, boxSize, 0), redID)         // left wall
	s.AddQuad(core.NewVec3(boxSize, 0, 0), core.NewVec3(0, boxSize, 0), core.NewVec3(0, 0, boxSize), greenID) // right wall

	const lightSize = 130.0
	offset := (boxSize - lightSize) / 2
	s.AddQuad(
		core.NewVec3(offset, boxSize-1, offset),
		core.NewVec3(lightSize, 0, 0),
		core.NewVec3(0, 0, lightSize),
		lightID,
	)

	s.AddSphere(core.NewVec3(185, 82.5, 169), 82.5, mirrorID)
	s.AddSphere(core.NewVec3(370, 90, 351), 90, glassID)

	return s
}
