package geometry

import (
	"fmt"

	"github.com/go-gl/mathgl/mgl64"

	"github.com/df07/go-pathtracer/pkg/core"
	"github.com/df07/go-pathtracer/pkg/material"
)

// Rotate turns the wrapped object about a coordinate axis through the origin
type Rotate struct {
	Object  Hittable
	Axis    int     // 0=X, 1=Y, 2=Z
	Degrees float64 // Counter-clockwise looking down the axis toward the origin

	toWorld  mgl64.Mat3
	toObject mgl64.Mat3
}

// NewRotateY rotates object about the vertical axis
func NewRotateY(object Hittable, degrees float64) *Rotate {
	r, _ := NewRotate(object, 1, degrees)
	return r
}

// NewRotate rotates object about the given axis (0=X, 1=Y, 2=Z)
func NewRotate(object Hittable, axis int, degrees float64) (*Rotate, error) {
	radians := mgl64.DegToRad(degrees)

	var m mgl64.Mat3
	switch axis {
	case 0:
		m = mgl64.Rotate3DX(radians)
	case 1:
		m = mgl64.Rotate3DY(radians)
	case 2:
		m = mgl64.Rotate3DZ(radians)
	default:
		return nil, fmt.Errorf("invalid rotation axis %d", axis)
	}

	return &Rotate{
		Object:   object,
		Axis:     axis,
		Degrees:  degrees,
		toWorld:  m,
		toObject: m.Transpose(), // Rotations are orthonormal
	}, nil
}

// Hit rotates the ray into object space, delegates, then rotates the hit back
func (r *Rotate) Hit(ray core.Ray, tMin, tMax float64, rec *material.HitRecord) bool {
	local := core.NewRayAtTime(
		transform(r.toObject, ray.Origin),
		transform(r.toObject, ray.Direction),
		ray.Time,
	)
	if !r.Object.Hit(local, tMin, tMax, rec) {
		return false
	}

	rec.Point = transform(r.toWorld, rec.Point)
	outward := rec.Normal
	if !rec.FrontFace {
		outward = outward.Negate()
	}
	rec.SetFaceNormal(ray, transform(r.toWorld, outward))
	return true
}

// BoundingBox transforms all 8 corners of the wrapped box and bounds the
// result. The wrapped box must be valid and finite, otherwise no box is
// reported.
func (r *Rotate) BoundingBox(time0, time1 float64) (core.AABB, bool) {
	box, ok := r.Object.BoundingBox(time0, time1)
	if !ok || !box.IsValid() {
		return core.AABB{}, false
	}

	corners := box.Corners()
	for i := range corners {
		corners[i] = transform(r.toWorld, corners[i])
	}
	return core.NewAABBFromPoints(corners[:]...), true
}

func transform(m mgl64.Mat3, v core.Vec3) core.Vec3 {
	out := m.Mul3x1(mgl64.Vec3{v.X, v.Y, v.Z})
	return core.NewVec3(out[0], out[1], out[2])
}
