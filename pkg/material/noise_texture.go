package material

import (
	"math"

	"github.com/df07/go-pathtracer/pkg/core"
)

// DefaultTurbulenceDepth is the number of noise octaves used by NoiseTexture
const DefaultTurbulenceDepth = 7

// NoiseTexture is a marble-like grayscale pattern built from Perlin turbulence
type NoiseTexture struct {
	Noise *Perlin
	Scale float64
}

// NewNoiseTexture creates a noise texture with the given frequency scale
func NewNoiseTexture(scale float64, sampler core.Sampler) *NoiseTexture {
	return &NoiseTexture{Noise: NewPerlin(sampler), Scale: scale}
}

// Evaluate returns a gray level in [0, 1] phase-shifted along z by turbulence
func (n *NoiseTexture) Evaluate(uv core.Vec2, point core.Vec3) core.Vec3 {
	gray := 0.5 * (1 + math.Sin(n.Scale*point.Z+10*n.Noise.Turbulence(point, DefaultTurbulenceDepth)))
	return core.NewVec3(gray, gray, gray)
}
