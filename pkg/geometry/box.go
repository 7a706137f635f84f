package geometry

import (
	"fmt"

	"github.com/df07/go-pathtracer/pkg/core"
	"github.com/df07/go-pathtracer/pkg/material"
)

// Box represents an axis-aligned box made up of 6 rectangles
type Box struct {
	Min, Max core.Vec3
	Material material.Material
	sides    HittableList
}

// NewBox creates a box spanning the two opposite corners p0 and p1. The box
// must have non-zero extent along every axis.
func NewBox(p0, p1 core.Vec3, material material.Material) (*Box, error) {
	b := &Box{
		Min:      p0.Min(p1),
		Max:      p0.Max(p1),
		Material: material,
	}

	// One pair of faces per axis; the face at the min side is flipped so its
	// normal points out of the box.
	for axis := 0; axis < 3; axis++ {
		maxFace, err := NewAARect(b.Min.WithAxis(axis, b.Max.Axis(axis)), b.Max, material)
		if err != nil {
			return nil, fmt.Errorf("box face: %w", err)
		}
		minFace, err := NewAARect(b.Min, b.Max.WithAxis(axis, b.Min.Axis(axis)), material)
		if err != nil {
			return nil, fmt.Errorf("box face: %w", err)
		}
		b.sides.Add(maxFace)
		b.sides.Add(NewFlipFace(minFace))
	}

	return b, nil
}

// Hit returns the closest face hit
func (b *Box) Hit(ray core.Ray, tMin, tMax float64, rec *material.HitRecord) bool {
	return b.sides.Hit(ray, tMin, tMax, rec)
}

// BoundingBox returns the box itself
func (b *Box) BoundingBox(time0, time1 float64) (core.AABB, bool) {
	return core.NewAABB(b.Min, b.Max), true
}
