package geometry

import (
	"math"

	"github.com/df07/go-pathtracer/pkg/core"
	"github.com/df07/go-pathtracer/pkg/material"
)

// dummyMaterial never scatters
type dummyMaterial struct{}

func (dummyMaterial) Scatter(rayIn core.Ray, hit material.HitRecord, sampler core.Sampler) (material.ScatterResult, bool) {
	return material.ScatterResult{}, false
}

// unboundedObject has no bounding box
type unboundedObject struct{}

func (unboundedObject) Hit(ray core.Ray, tMin, tMax float64, rec *material.HitRecord) bool {
	return false
}

func (unboundedObject) BoundingBox(time0, time1 float64) (core.AABB, bool) {
	return core.AABB{}, false
}

func vecNear(a, b core.Vec3, tolerance float64) bool {
	return math.Abs(a.X-b.X) <= tolerance &&
		math.Abs(a.Y-b.Y) <= tolerance &&
		math.Abs(a.Z-b.Z) <= tolerance
}

func mustRect(p0, p1 core.Vec3) *AARect {
	r, err := NewAARect(p0, p1, dummyMaterial{})
	if err != nil {
		panic(err)
	}
	return r
}

func mustBox(p0, p1 core.Vec3) *Box {
	b, err := NewBox(p0, p1, dummyMaterial{})
	if err != nil {
		panic(err)
	}
	return b
}
