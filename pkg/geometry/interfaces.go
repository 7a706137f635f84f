package geometry

import (
	"errors"

	"github.com/df07/go-pathtracer/pkg/core"
	"github.com/df07/go-pathtracer/pkg/material"
)

// Hittable is anything a ray can be intersected with
type Hittable interface {
	// Hit reports the closest intersection with t in [tMin, tMax]. rec is
	// only written when Hit returns true.
	Hit(ray core.Ray, tMin, tMax float64, rec *material.HitRecord) bool

	// BoundingBox returns a box enclosing the object for every ray time in
	// [time0, time1], or false when the object has no finite bounds.
	BoundingBox(time0, time1 float64) (core.AABB, bool)
}

var (
	// ErrMissingBoundingBox is returned when a BVH is built over an object without a bounding box
	ErrMissingBoundingBox = errors.New("object has no bounding box")

	// ErrDegenerateRect is returned when rectangle corners do not share exactly one coordinate
	ErrDegenerateRect = errors.New("rectangle corners must share exactly one coordinate")

	// ErrInvalidDensity is returned for a participating medium with non-positive density
	ErrInvalidDensity = errors.New("medium density must be positive")

	// ErrInvalidMesh is returned for malformed triangle mesh buffers
	ErrInvalidMesh = errors.New("invalid triangle mesh")
)

// rectPadding keeps flat primitives from producing zero-thickness boxes
const rectPadding = 1e-4
