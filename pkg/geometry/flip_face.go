package geometry

import (
	"github.com/df07/go-pathtracer/pkg/core"
	"github.com/df07/go-pathtracer/pkg/material"
)

// FlipFace inverts the front/back orientation reported by the wrapped object.
// The normal still opposes the incoming ray.
type FlipFace struct {
	Object Hittable
}

// NewFlipFace wraps an object so its front face becomes its back face
func NewFlipFace(object Hittable) *FlipFace {
	return &FlipFace{Object: object}
}

// Hit delegates and flips the face flag
func (f *FlipFace) Hit(ray core.Ray, tMin, tMax float64, rec *material.HitRecord) bool {
	if !f.Object.Hit(ray, tMin, tMax, rec) {
		return false
	}
	rec.FrontFace = !rec.FrontFace
	return true
}

// BoundingBox returns the wrapped object's box
func (f *FlipFace) BoundingBox(time0, time1 float64) (core.AABB, bool) {
	return f.Object.BoundingBox(time0, time1)
}
