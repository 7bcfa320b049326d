// Package meshloader is the external mesh-loading concern §6 assigns
// outside the device core: decoding a mesh file format and appending its
// triangles to a scene's shared geometry.TrianglePool as one
// TRIANGLE_MESH_INSTANCE Geom (§3, §9's "arena + index" convention).
// LoadPLY/PLYData are grounded on the teacher's pkg/loaders/ply.go parser;
// ToTriangleRange and LoadGLTF are new, since the teacher's loader fed its
// own Shape-interface TriangleMesh type instead of the pool/range model.
package meshloader

import (
	"fmt"

	"github.com/qmuntal/gltf"
	"github.com/qmuntal/gltf/modeler"

	"github.com/df07/go-wavefront-tracer/pkg/core"
	"github.com/df07/go-wavefront-tracer/pkg/geometry"
)

// ToTriangleRange appends a loaded mesh's triangles to pool, applying a
// uniform world transform to vertex positions and normals (meshes loaded
// this way are pre-baked into world space, like scene.AddQuad's panels,
// rather than carrying a runtime Transform on the Geom itself).
func ToTriangleRange(pool *geometry.TrianglePool, d *PLYData, transform geometry.Transform) geometry.TriangleRange {
	start := len(pool.Positions)
	hasNormals := len(d.Normals) == len(d.Vertices)

	for f := 0; f+2 < len(d.Faces); f += 3 {
		var positions, normals [3]core.Vec3
		var uvs [3]core.Vec2
		for k := 0; k < 3; k++ {
			vi := d.Faces[f+k]
			p := d.Vertices[vi]
			positions[k] = transform.ToWorld(p)
			if hasNormals {
				normals[k] = transform.NormalToWorld(d.Normals[vi])
			}
			if len(d.TexCoords) == len(d.Vertices) {
				uvs[k] = d.TexCoords[vi]
			}
		}
		if !hasNormals {
			n := positions[1].Subtract(positions[0]).Cross(positions[2].Subtract(positions[0])).Normalize()
			normals = [3]core.Vec3{n, n, n}
		}
		pool.AddTriangle(positions, normals, uvs)
	}

	count := len(pool.Positions) - start
	return geometry.TriangleRange{Start: start, Count: count}
}

// LoadGLTF decodes a glTF/GLB document and appends every mesh primitive's
// triangles (POSITION/NORMAL accessors; TEXCOORD_0 is not read, so the
// triangles' UVs are left zero) to pool in world space,
// applying transform uniformly since the wavefront Geom variant carries no
// per-instance skeleton (§3: TRIANGLE_MESH_INSTANCE is a flat index range,
// not a scene graph).
func LoadGLTF(path string, pool *geometry.TrianglePool, transform geometry.Transform) (geometry.TriangleRange, error) {
	doc, err := gltf.Open(path)
	if err != nil {
		return geometry.TriangleRange{}, fmt.Errorf("meshloader: open %s: %w", path, err)
	}

	start := len(pool.Positions)
	for _, mesh := range doc.Meshes {
		for _, prim := range mesh.Primitives {
			posIdx, ok := prim.Attributes["POSITION"]
			if !ok {
				continue
			}
			positions, err := readPositions(doc, posIdx)
			if err != nil {
				return geometry.TriangleRange{}, fmt.Errorf("meshloader: %s: %w", path, err)
			}
			var normals []core.Vec3
			if normIdx, ok := prim.Attributes["NORMAL"]; ok {
				normals, _ = readNormals(doc, normIdx)
			}
			indices, err := readIndices(doc, prim.Indices)
			if err != nil {
				return geometry.TriangleRange{}, fmt.Errorf("meshloader: %s: %w", path, err)
			}

			for i := 0; i+2 < len(indices); i += 3 {
				var tp, tn [3]core.Vec3
				var tuv [3]core.Vec2
				for k := 0; k < 3; k++ {
					vi := indices[i+k]
					tp[k] = transform.ToWorld(positions[vi])
					if normals != nil {
						tn[k] = transform.NormalToWorld(normals[vi])
					}
				}
				if normals == nil {
					n := tp[1].Subtract(tp[0]).Cross(tp[2].Subtract(tp[0])).Normalize()
					tn = [3]core.Vec3{n, n, n}
				}
				pool.AddTriangle(tp, tn, tuv)
			}
		}
	}

	count := len(pool.Positions) - start
	return geometry.TriangleRange{Start: start, Count: count}, nil
}

func readPositions(doc *gltf.Document, index uint32) ([]core.Vec3, error) {
	data, err := modeler.ReadPosition(doc, doc.Accessors[index], nil)
	if err != nil {
		return nil, err
	}
	return toVec3s(data), nil
}

func readNormals(doc *gltf.Document, index uint32) ([]core.Vec3, error) {
	data, err := modeler.ReadNormal(doc, doc.Accessors[index], nil)
	if err != nil {
		return nil, err
	}
	return toVec3s(data), nil
}

func toVec3s(data [][3]float32) []core.Vec3 {
	out := make([]core.Vec3, len(data))
	for i, v := range data {
		out[i] = core.NewVec3(float64(v[0]), float64(v[1]), float64(v[2]))
	}
	return out
}

func readIndices(doc *gltf.Document, index *uint32) ([]int, error) {
	if index == nil {
		return nil, fmt.Errorf("primitive has no index accessor")
	}
	raw, err := modeler.ReadIndices(doc, doc.Accessors[*index], nil)
	if err != nil {
		return nil, err
	}
	out := make([]int, len(raw))
	for i, v := range raw {
		out[i] = int(v)
	}
	return out, nil
}
