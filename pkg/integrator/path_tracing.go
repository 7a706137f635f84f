package integrator

import (
	"math"

	"github.com/df07/go-pathtracer/pkg/core"
	"github.com/df07/go-pathtracer/pkg/geometry"
	"github.com/df07/go-pathtracer/pkg/material"
)

// ShadowAcneEpsilon is the minimum hit distance for secondary rays, so a
// scattered ray does not re-hit the surface it leaves from.
const ShadowAcneEpsilon = 0.001

// PathTracingIntegrator implements unidirectional path tracing
type PathTracingIntegrator struct {
	Background Background
	MaxDepth   int
}

// NewPathTracingIntegrator creates a new path tracing integrator
func NewPathTracingIntegrator(background Background, maxDepth int) *PathTracingIntegrator {
	if background == nil {
		background = NewSolidBackground(core.Vec3{})
	}
	return &PathTracingIntegrator{
		Background: background,
		MaxDepth:   maxDepth,
	}
}

// RayColor computes the color for a single camera ray
func (pt *PathTracingIntegrator) RayColor(ray core.Ray, world geometry.Hittable, sampler core.Sampler) core.Vec3 {
	return Radiance(ray, pt.Background, world, pt.MaxDepth, sampler)
}

// Radiance estimates the light arriving along ray by following one random
// scattering path of at most depth bounces. The result is linear and unclamped.
func Radiance(ray core.Ray, background Background, world geometry.Hittable, depth int, sampler core.Sampler) core.Vec3 {
	// If we've exceeded the ray bounce limit, no more light is gathered
	if depth <= 0 {
		return core.Vec3{}
	}

	var rec material.HitRecord
	if !world.Hit(ray, ShadowAcneEpsilon, math.Inf(1), &rec) {
		return background.Color(ray)
	}

	emitted := material.Emitted(rec.Material, rec.UV, rec.Point)

	scatter, didScatter := rec.Material.Scatter(ray, rec, sampler)
	if !didScatter {
		// Light source or full absorption
		return emitted
	}

	incoming := Radiance(scatter.Scattered, background, world, depth-1, sampler)
	return emitted.Add(scatter.Attenuation.MultiplyVec(incoming))
}
