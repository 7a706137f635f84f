package geometry

import (
	"fmt"

	"github.com/df07/go-pathtracer/pkg/core"
	"github.com/df07/go-pathtracer/pkg/material"
)

// AARect is an axis-aligned rectangle lying in the plane Axis = K. Its
// outward normal points along +Axis.
type AARect struct {
	Axis     int // Constant axis: 0=X, 1=Y, 2=Z
	K        float64
	Min, Max core.Vec3 // Corners; only the two in-plane axes are meaningful
	Material material.Material

	uAxis, vAxis int
}

// NewAARect creates a rectangle from two opposite corners. The corners must
// be equal in exactly one coordinate, which becomes the plane axis.
func NewAARect(p0, p1 core.Vec3, material material.Material) (*AARect, error) {
	axis := -1
	for i := 0; i < 3; i++ {
		if p0.Axis(i) == p1.Axis(i) {
			if axis != -1 {
				return nil, fmt.Errorf("corners %v and %v: %w", p0, p1, ErrDegenerateRect)
			}
			axis = i
		}
	}
	if axis == -1 {
		return nil, fmt.Errorf("corners %v and %v: %w", p0, p1, ErrDegenerateRect)
	}

	r := &AARect{
		Axis:     axis,
		K:        p0.Axis(axis),
		Min:      p0.Min(p1),
		Max:      p0.Max(p1),
		Material: material,
	}
	// In-plane axes in increasing order: yz for X, xz for Y, xy for Z
	r.uAxis, r.vAxis = (axis+1)%3, (axis+2)%3
	if r.uAxis > r.vAxis {
		r.uAxis, r.vAxis = r.vAxis, r.uAxis
	}
	return r, nil
}

// Hit tests the ray against the rectangle's plane and extent
func (r *AARect) Hit(ray core.Ray, tMin, tMax float64, rec *material.HitRecord) bool {
	d := ray.Direction.Axis(r.Axis)
	if d == 0 {
		return false
	}
	t := (r.K - ray.Origin.Axis(r.Axis)) / d
	if t < tMin || t > tMax {
		return false
	}

	point := ray.At(t)
	a := point.Axis(r.uAxis)
	b := point.Axis(r.vAxis)
	a0, a1 := r.Min.Axis(r.uAxis), r.Max.Axis(r.uAxis)
	b0, b1 := r.Min.Axis(r.vAxis), r.Max.Axis(r.vAxis)
	if a < a0 || a > a1 || b < b0 || b > b1 {
		return false
	}

	rec.T = t
	rec.Point = point
	rec.Material = r.Material
	rec.UV = core.NewVec2((a-a0)/(a1-a0), (b-b0)/(b1-b0))
	rec.SetFaceNormal(ray, core.Vec3{}.WithAxis(r.Axis, 1))
	return true
}

// BoundingBox returns the rectangle's box padded along the plane axis
func (r *AARect) BoundingBox(time0, time1 float64) (core.AABB, bool) {
	return core.NewAABB(r.Min, r.Max).Pad(rectPadding), true
}
