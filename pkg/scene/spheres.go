package scene

import (
	"github.com/df07/go-pathtracer/pkg/core"
	"github.com/df07/go-pathtracer/pkg/geometry"
	"github.com/df07/go-pathtracer/pkg/integrator"
	"github.com/df07/go-pathtracer/pkg/loaders"
	"github.com/df07/go-pathtracer/pkg/material"
	"github.com/df07/go-pathtracer/pkg/renderer"
)

var skyBlue = core.NewVec3(0.70, 0.80, 1.00)

// outdoorCamera is the view shared by the sphere scenes
func outdoorCamera() renderer.CameraConfig {
	return renderer.CameraConfig{
		Center:      core.NewVec3(13, 2, 3),
		LookAt:      core.NewVec3(0, 0, 0),
		Up:          core.NewVec3(0, 1, 0),
		Width:       400,
		AspectRatio: 16.0 / 9.0,
		VFov:        20.0,
	}
}

// NewTwoSpheresScene creates a small sphere sitting on a large ground sphere,
// viewed from the origin down -Z
func NewTwoSpheresScene(opts Options) (*Scene, error) {
	config := renderer.CameraConfig{
		Center:      core.NewVec3(0, 0, 0),
		LookAt:      core.NewVec3(0, 0, -1),
		Up:          core.NewVec3(0, 1, 0),
		Width:       400,
		AspectRatio: 16.0 / 9.0,
		VFov:        90.0,
	}
	sky := integrator.NewGradientBackground(core.NewVec3(0.5, 0.7, 1.0), core.NewVec3(1.0, 1.0, 1.0))
	s := New("two-spheres", config, sky)
	s.SamplingConfig = renderer.SamplingConfig{SamplesPerPixel: 100, MaxDepth: 50}

	s.Add(
		geometry.NewSphere(core.NewVec3(0, 0, -1), 0.5, material.NewLambertian(core.NewVec3(0.7, 0.3, 0.3))),
		geometry.NewSphere(core.NewVec3(0, -100.5, -1), 100, material.NewLambertian(core.NewVec3(0.8, 0.8, 0.0))),
	)
	return s, nil
}

// NewRandomSpheresScene creates the checkered field of small random spheres
// around three large ones. Diffuse spheres bounce during the shutter interval.
func NewRandomSpheresScene(opts Options) (*Scene, error) {
	config := outdoorCamera()
	config.Aperture = 0.1
	config.FocusDistance = 10.0
	config.Time0, config.Time1 = 0.0, 1.0

	s := New("random-spheres", config, integrator.NewSolidBackground(skyBlue))
	s.SamplingConfig = renderer.SamplingConfig{SamplesPerPixel: 100, MaxDepth: 50}
	sampler := opts.Sampler

	checker := material.NewCheckerColors(core.NewVec3(0.2, 0.3, 0.1), core.NewVec3(0.9, 0.9, 0.9))
	s.Add(geometry.NewSphere(core.NewVec3(0, -1000, 0), 1000, material.NewTexturedLambertian(checker)))

	clearing := core.NewVec3(4, 0.2, 0)
	for a := -11; a < 11; a++ {
		for b := -11; b < 11; b++ {
			chooseMat := sampler.Get1D()
			center := core.NewVec3(float64(a)+0.9*sampler.Get1D(), 0.2, float64(b)+0.9*sampler.Get1D())

			if center.Subtract(clearing).Length() <= 0.9 {
				continue
			}

			switch {
			case chooseMat < 0.8:
				albedo := core.RandomVec3(sampler, 0, 1).MultiplyVec(core.RandomVec3(sampler, 0, 1))
				center1 := center.Add(core.NewVec3(0, core.RandomRange(sampler, 0, 0.5), 0))
				s.Add(geometry.NewMovingSphere(center, center1, 0.0, 1.0, 0.2, material.NewLambertian(albedo)))
			case chooseMat < 0.95:
				albedo := core.RandomVec3(sampler, 0.5, 1)
				fuzz := core.RandomRange(sampler, 0, 0.5)
				s.Add(geometry.NewSphere(center, 0.2, material.NewMetal(albedo, fuzz)))
			default:
				s.Add(geometry.NewSphere(center, 0.2, material.NewDielectric(1.5)))
			}
		}
	}

	s.Add(
		geometry.NewSphere(core.NewVec3(0, 1, 0), 1.0, material.NewDielectric(1.5)),
		geometry.NewSphere(core.NewVec3(-4, 1, 0), 1.0, material.NewLambertian(core.NewVec3(0.4, 0.2, 0.1))),
		geometry.NewSphere(core.NewVec3(4, 1, 0), 1.0, material.NewMetal(core.NewVec3(0.7, 0.6, 0.5), 0.0)),
	)
	return s, nil
}

// NewPerlinScene creates two spheres sharing a marble noise texture
func NewPerlinScene(opts Options) (*Scene, error) {
	s := New("perlin", outdoorCamera(), integrator.NewSolidBackground(skyBlue))
	s.SamplingConfig = renderer.SamplingConfig{SamplesPerPixel: 100, MaxDepth: 50}

	marble := material.NewTexturedLambertian(material.NewNoiseTexture(4, opts.Sampler))
	s.Add(
		geometry.NewSphere(core.NewVec3(0, -1000, 0), 1000, marble),
		geometry.NewSphere(core.NewVec3(0, 2, 0), 2, marble),
	)
	return s, nil
}

// NewEarthScene creates a globe textured with earthmap.jpg from the asset
// directory. A missing image renders magenta.
func NewEarthScene(opts Options) (*Scene, error) {
	s := New("earth", outdoorCamera(), integrator.NewSolidBackground(skyBlue))
	s.SamplingConfig = renderer.SamplingConfig{SamplesPerPixel: 100, MaxDepth: 50}

	earth := loaders.LoadImageTexture(opts.asset("earthmap.jpg"), opts.Logger)
	s.Add(geometry.NewSphere(core.NewVec3(0, 0, 0), 2, material.NewTexturedLambertian(earth)))
	return s, nil
}

// NewSimpleLightScene creates the Perlin spheres lit only by emitters
func NewSimpleLightScene(opts Options) (*Scene, error) {
	config := outdoorCamera()
	config.Center = core.NewVec3(26, 3, 6)
	config.LookAt = core.NewVec3(0, 2, 0)

	s := New("simple-light", config, integrator.NewSolidBackground(core.Vec3{}))
	s.SamplingConfig = renderer.SamplingConfig{SamplesPerPixel: 400, MaxDepth: 50}

	marble := material.NewTexturedLambertian(material.NewNoiseTexture(4, opts.Sampler))
	light := material.NewDiffuseLight(core.NewVec3(4, 4, 4))

	var sh shapes
	rect := sh.rect(core.NewVec3(3, 1, -2), core.NewVec3(5, 3, -2), light)
	if sh.err != nil {
		return nil, sh.err
	}

	s.Add(
		geometry.NewSphere(core.NewVec3(0, -1000, 0), 1000, marble),
		geometry.NewSphere(core.NewVec3(0, 2, 0), 2, marble),
		geometry.NewSphere(core.NewVec3(0, 7, 0), 2, light),
		rect,
	)
	return s, nil
}
