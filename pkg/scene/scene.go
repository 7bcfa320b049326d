// Package scene implements §6's host-side scene ownership: the primitive,
// material, and light lists; the k-d tree builder (the "external" builder
// §4.C's traverser assumes); and the device-memory-lifecycle Context that
// wraps init/renderIteration/readFramebuffer/denoise/free. Grounded on the
// teacher's pkg/scene (demo-scene construction, AddXxxLight helpers) and
// pkg/renderer (camera config surface), rebuilt around the tag-based
// Geom/Material model instead of the teacher's Shape/Light interfaces.
package scene

import (
	"github.com/df07/go-wavefront-tracer/pkg/core"
	"github.com/df07/go-wavefront-tracer/pkg/geometry"
	"github.com/df07/go-wavefront-tracer/pkg/lights"
	"github.com/df07/go-wavefront-tracer/pkg/material"
)

// Scene is the CPU-side description consumed read-only at Context.Init
// (§3, §6): "scene owns the primitive list, material list, light list...".
type Scene struct {
	Width, Height int
	Camera        *Camera

	Geoms     []geometry.Geom
	Pool      *geometry.TrianglePool
	Materials []material.Material
	Lights    []lights.Light
	Env       *lights.EnvironmentMap

	TraceDepth int
}

func New(width, height int, cam *Camera) *Scene {
	return &Scene{
		Width:      width,
		Height:     height,
		Camera:     cam,
		Pool:       &geometry.TrianglePool{},
		TraceDepth: 8,
	}
}

// AddMaterial registers a material and returns its id.
func (s *Scene) AddMaterial(m material.Material) int {
	s.Materials = append(s.Materials, m)
	return len(s.Materials) - 1
}

// AddSphere adds a sphere Geom at worldCenter with the given radius, and
// registers it as an area light too when the material is emissive.
func (s *Scene) AddSphere(worldCenter core.Vec3, radius float64, materialID int) int {
	g := geometry.NewSphere(geometry.Transform{Translation: worldCenter, Scale: core.NewVec3(radius, radius, radius)}, 1, materialID)
	return s.addGeom(g, materialID)
}

// AddCube adds an axis-aligned cube centered at worldCenter with the given
// half-extents.
func (s *Scene) AddCube(worldCenter, halfExtents core.Vec3, materialID int) int {
	g := geometry.NewCube(geometry.Transform{Translation: worldCenter, Scale: halfExtents}, materialID)
	return s.addGeom(g, materialID)
}

// AddQuad adds a planar quad (corner + two edge vectors) as two
// world-baked triangles in the shared pool — quads aren't one of the
// spec's three Geom kinds (§3: SPHERE/CUBE/TRIANGLE_MESH_INSTANCE), so
// walls and area-light panels are instanced as a 2-triangle mesh with an
// identity transform.
func (s *Scene) AddQuad(corner, u, v core.Vec3, materialID int) int {
	p0 := corner
	p1 := corner.Add(u)
	p2 := corner.Add(u).Add(v)
	p3 := corner.Add(v)

	n := u.Cross(v).Normalize()
	uv00, uv10, uv11, uv01 := core.NewVec2(0, 0), core.NewVec2(1, 0), core.NewVec2(1, 1), core.NewVec2(0, 1)

	start := len(s.Pool.Positions)
	s.Pool.AddTriangle([3]core.Vec3{p0, p1, p2}, [3]core.Vec3{n, n, n}, [3]core.Vec2{uv00, uv10, uv11})
	s.Pool.AddTriangle([3]core.Vec3{p0, p2, p3}, [3]core.Vec3{n, n, n}, [3]core.Vec2{uv00, uv11, uv01})

	g := geometry.NewTriangleMeshInstance(geometry.Identity(), geometry.TriangleRange{Start: start, Count: 2}, materialID, s.Pool)
	return s.addGeom(g, materialID)
}

// AddMeshInstance registers a pre-populated triangle range (e.g. loaded by
// an external mesh loader, §6) as a Geom.
func (s *Scene) AddMeshInstance(transform geometry.Transform, triangles geometry.TriangleRange, materialID int) int {
	g := geometry.NewTriangleMeshInstance(transform, triangles, materialID, s.Pool)
	return s.addGeom(g, materialID)
}

func (s *Scene) addGeom(g geometry.Geom, materialID int) int {
	s.Geoms = append(s.Geoms, g)
	idx := len(s.Geoms) - 1
	if materialID >= 0 && materialID < len(s.Materials) && s.Materials[materialID].IsEmissive() {
		s.Lights = append(s.Lights, lights.Light{
			Kind:      lights.Area,
			GeomIndex: idx,
			Area:      lights.GeomSurfaceArea(g, s.Pool),
		})
	}
	return idx
}

// SetEnvironment installs the scene's single HDR environment and registers
// it as the +1 light source §4.E counts (§3).
func (s *Scene) SetEnvironment(env *lights.EnvironmentMap) {
	s.Env = env
	s.Lights = append(s.Lights, lights.Light{Kind: lights.Environment, Env: env})
}
