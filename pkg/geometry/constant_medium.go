package geometry

import (
	"fmt"
	"math"

	"github.com/df07/go-pathtracer/pkg/core"
	"github.com/df07/go-pathtracer/pkg/material"
)

// mediumExitEpsilon separates the entry crossing from the exit search
const mediumExitEpsilon = 0.0001

// ConstantMedium is a volume of constant density bounded by a closed shape.
// Rays passing through scatter at an exponentially distributed depth.
type ConstantMedium struct {
	Boundary      Hittable
	PhaseFunction material.Material

	negInvDensity float64
	sampler       core.Sampler
}

// NewConstantMedium creates a medium inside boundary. Free-flight distances
// are drawn from sampler, which must not be shared across goroutines.
func NewConstantMedium(boundary Hittable, density float64, albedo material.Texture, sampler core.Sampler) (*ConstantMedium, error) {
	if !(density > 0) || math.IsInf(density, 1) {
		return nil, fmt.Errorf("density %g: %w", density, ErrInvalidDensity)
	}
	return &ConstantMedium{
		Boundary:      boundary,
		PhaseFunction: material.NewTexturedIsotropic(albedo),
		negInvDensity: -1 / density,
		sampler:       sampler,
	}, nil
}

// Density returns the medium density
func (m *ConstantMedium) Density() float64 {
	return -1 / m.negInvDensity
}

// Hit reports a scattering event inside the medium. The boundary must be
// crossed twice along the ray; the reported normal is arbitrary.
func (m *ConstantMedium) Hit(ray core.Ray, tMin, tMax float64, rec *material.HitRecord) bool {
	var entry, exit material.HitRecord
	if !m.Boundary.Hit(ray, math.Inf(-1), math.Inf(1), &entry) {
		return false
	}
	if !m.Boundary.Hit(ray, entry.T+mediumExitEpsilon, math.Inf(1), &exit) {
		return false
	}

	t0, t1 := entry.T, exit.T
	if t0 < tMin {
		t0 = tMin
	}
	if t1 > tMax {
		t1 = tMax
	}
	if t0 >= t1 {
		return false
	}
	if t0 < 0 {
		t0 = 0
	}

	rayLength := ray.Direction.Length()
	if rayLength == 0 {
		return false
	}
	distanceInside := (t1 - t0) * rayLength
	hitDistance := m.negInvDensity * math.Log(m.sampler.Get1D())
	if hitDistance > distanceInside {
		return false
	}

	rec.T = t0 + hitDistance/rayLength
	rec.Point = ray.At(rec.T)
	rec.Normal = core.NewVec3(1, 0, 0) // arbitrary
	rec.FrontFace = true               // also arbitrary
	rec.UV = core.Vec2{}
	rec.Material = m.PhaseFunction
	return true
}

// BoundingBox returns the boundary's box
func (m *ConstantMedium) BoundingBox(time0, time1 float64) (core.AABB, bool) {
	return m.Boundary.BoundingBox(time0, time1)
}
