// Package geometry implements ray-vs-primitive intersection (§4.B) and the
// Geom variant (§3): sphere, cube, and triangle-mesh-instance, each carrying
// an affine transform and a materialId rather than a material pointer, so
// that the wavefront driver can sort paths by material id (§4.F.b) without
// touching geometry at all.
package geometry

import "github.com/df07/go-wavefront-tracer/pkg/core"

// Kind tags which primitive a Geom is.
type Kind int

const (
	Sphere Kind = iota
	Cube
	TriangleMeshInstance
)

// Transform is the affine transform (translation, rotation, non-uniform
// scale) carried by every Geom (§3). No inverse is stored: ToObjectRay
// applies the inverse steps (untranslate, unrotate, unscale) per ray.
type Transform struct {
	Translation core.Vec3
	Rotation    core.Vec3 // Euler angles, radians, applied X then Y then Z
	Scale       core.Vec3
}

// Identity returns the transform used by Geoms with no placement (most
// triangle meshes bake their placement into world-space vertices already).
func Identity() Transform {
	return Transform{Scale: core.NewVec3(1, 1, 1)}
}

// ToWorld maps an object-space point into world space.
func (t Transform) ToWorld(p core.Vec3) core.Vec3 {
	scaled := core.NewVec3(p.X*t.Scale.X, p.Y*t.Scale.Y, p.Z*t.Scale.Z)
	return scaled.Rotate(t.Rotation).Add(t.Translation)
}

// ToObjectRay maps a world-space ray into object space, which is where
// sphere/cube intersection (and the k-d tree built over object-space
// triangles) operate.
func (t Transform) ToObjectRay(r core.Ray) core.Ray {
	// ToWorld rotates X then Y then Z, so undo Z first and X last.
	unrotate := func(v core.Vec3) core.Vec3 {
		v = v.Rotate(core.NewVec3(0, 0, -t.Rotation.Z))
		v = v.Rotate(core.NewVec3(0, -t.Rotation.Y, 0))
		return v.Rotate(core.NewVec3(-t.Rotation.X, 0, 0))
	}
	origin := unrotate(r.Origin.Subtract(t.Translation))
	dir := unrotate(r.Direction)
	return core.NewRay(
		core.NewVec3(origin.X/t.Scale.X, origin.Y/t.Scale.Y, origin.Z/t.Scale.Z),
		core.NewVec3(dir.X/t.Scale.X, dir.Y/t.Scale.Y, dir.Z/t.Scale.Z),
	)
}

// NormalToWorld transforms an object-space normal by the inverse-transpose
// of the transform (§4.B): for our translation+rotation+scale representation
// that is rotate-then-divide-by-scale.
func (t Transform) NormalToWorld(n core.Vec3) core.Vec3 {
	scaled := core.NewVec3(n.X/t.Scale.X, n.Y/t.Scale.Y, n.Z/t.Scale.Z)
	return scaled.Rotate(t.Rotation).Normalize()
}

// TriangleRange indexes into a shared TrianglePool for TRIANGLE_MESH_INSTANCE
// Geoms (§3, §9 arena+index convention).
type TriangleRange struct {
	Start, Count int
}

// Geom is a single scene primitive: a variant tag, its placement, the
// material it resolves to, and (for meshes) the triangle range it instances.
type Geom struct {
	Kind       Kind
	Transform  Transform
	MaterialID int
	Radius     float64 // SPHERE / CUBE half-extent in object space
	Triangles  TriangleRange
	bounds     core.AABB
}

func NewSphere(transform Transform, radius float64, materialID int) Geom {
	g := Geom{Kind: Sphere, Transform: transform, Radius: radius, MaterialID: materialID}
	g.bounds = sphereBounds(g)
	return g
}

func NewCube(transform Transform, materialID int) Geom {
	g := Geom{Kind: Cube, Transform: transform, Radius: 1, MaterialID: materialID}
	g.bounds = cubeBounds(g)
	return g
}

func NewTriangleMeshInstance(transform Transform, triangles TriangleRange, materialID int, pool *TrianglePool) Geom {
	g := Geom{Kind: TriangleMeshInstance, Transform: transform, Triangles: triangles, MaterialID: materialID}
	g.bounds = meshBounds(g, pool)
	return g
}

// BoundingBox returns the world-space AABB consumed by the (external) k-d
// tree builder and by Preprocess steps that need finite world bounds.
func (g Geom) BoundingBox() core.AABB { return g.bounds }
