package geometry

import (
	"fmt"

	"github.com/df07/go-pathtracer/pkg/core"
	"github.com/df07/go-pathtracer/pkg/material"
)

// TriangleMesh represents a collection of triangles with efficient ray intersection
// It uses an internal BVH for fast intersection tests
type TriangleMesh struct {
	triangles []Hittable
	bvh       *BVH
}

// TriangleMeshOptions contains optional parameters for triangle mesh creation
type TriangleMeshOptions struct {
	UVs       []core.Vec2         // Optional per-vertex texture coordinates
	Materials []material.Material // Optional per-triangle materials
	Sampler   core.Sampler        // Drives BVH axis selection; a fixed seed is used when nil
}

// meshBVHSeed makes mesh BVHs reproducible when no sampler is supplied
const meshBVHSeed = 1

// NewTriangleMesh creates a new triangle mesh from vertices and face indices.
// Each group of 3 indices forms a triangle; options may be nil.
func NewTriangleMesh(vertices []core.Vec3, faces []int, mat material.Material, options *TriangleMeshOptions) (*TriangleMesh, error) {
	if len(faces) == 0 {
		return nil, fmt.Errorf("%w: no faces", ErrInvalidMesh)
	}
	if len(faces)%3 != 0 {
		return nil, fmt.Errorf("%w: %d face indices is not a multiple of 3", ErrInvalidMesh, len(faces))
	}

	numTriangles := len(faces) / 3
	if options == nil {
		options = &TriangleMeshOptions{}
	}
	if options.UVs != nil && len(options.UVs) != len(vertices) {
		return nil, fmt.Errorf("%w: %d texture coordinates for %d vertices", ErrInvalidMesh, len(options.UVs), len(vertices))
	}
	if options.Materials != nil && len(options.Materials) != numTriangles {
		return nil, fmt.Errorf("%w: %d materials for %d triangles", ErrInvalidMesh, len(options.Materials), numTriangles)
	}

	triangles := make([]Hittable, numTriangles)
	for i := 0; i < numTriangles; i++ {
		i0, i1, i2 := faces[i*3], faces[i*3+1], faces[i*3+2]
		for _, idx := range [3]int{i0, i1, i2} {
			if idx < 0 || idx >= len(vertices) {
				return nil, fmt.Errorf("%w: face %d index %d out of range [0,%d)", ErrInvalidMesh, i, idx, len(vertices))
			}
		}

		triangleMaterial := mat
		if options.Materials != nil {
			triangleMaterial = options.Materials[i]
		}

		if options.UVs != nil {
			triangles[i] = NewTriangleWithUVs(vertices[i0], vertices[i1], vertices[i2],
				options.UVs[i0], options.UVs[i1], options.UVs[i2], triangleMaterial)
		} else {
			triangles[i] = NewTriangle(vertices[i0], vertices[i1], vertices[i2], triangleMaterial)
		}
	}

	sampler := options.Sampler
	if sampler == nil {
		sampler = core.NewSeededSampler(meshBVHSeed)
	}
	bvh, err := NewBVH(triangles, 0, 0, sampler)
	if err != nil {
		return nil, fmt.Errorf("mesh bvh: %w", err)
	}

	return &TriangleMesh{
		triangles: triangles,
		bvh:       bvh,
	}, nil
}

// Hit tests if a ray intersects with any triangle in the mesh
func (tm *TriangleMesh) Hit(ray core.Ray, tMin, tMax float64, rec *material.HitRecord) bool {
	return tm.bvh.Hit(ray, tMin, tMax, rec)
}

// BoundingBox returns the axis-aligned bounding box for the entire mesh
func (tm *TriangleMesh) BoundingBox(time0, time1 float64) (core.AABB, bool) {
	return tm.bvh.BoundingBox(time0, time1)
}

// TriangleCount returns the number of triangles in this mesh
func (tm *TriangleMesh) TriangleCount() int {
	return len(tm.triangles)
}
