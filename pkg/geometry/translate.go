package geometry

import (
	"github.com/df07/go-pathtracer/pkg/core"
	"github.com/df07/go-pathtracer/pkg/material"
)

// Translate shifts the wrapped object by a constant offset
type Translate struct {
	Object Hittable
	Offset core.Vec3
}

// NewTranslate wraps object so it appears moved by offset
func NewTranslate(object Hittable, offset core.Vec3) *Translate {
	return &Translate{Object: object, Offset: offset}
}

// Hit moves the ray into object space, delegates, and moves the hit back
func (t *Translate) Hit(ray core.Ray, tMin, tMax float64, rec *material.HitRecord) bool {
	moved := core.NewRayAtTime(ray.Origin.Subtract(t.Offset), ray.Direction, ray.Time)
	if !t.Object.Hit(moved, tMin, tMax, rec) {
		return false
	}

	rec.Point = rec.Point.Add(t.Offset)
	// Recover the outward normal before re-orienting against the world ray
	outward := rec.Normal
	if !rec.FrontFace {
		outward = outward.Negate()
	}
	rec.SetFaceNormal(ray, outward)
	return true
}

// BoundingBox returns the wrapped box shifted by the offset
func (t *Translate) BoundingBox(time0, time1 float64) (core.AABB, bool) {
	box, ok := t.Object.BoundingBox(time0, time1)
	if !ok {
		return core.AABB{}, false
	}
	return box.Translate(t.Offset), true
}
