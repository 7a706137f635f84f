package scene

import (
	"github.com/df07/go-pathtracer/pkg/core"
	"github.com/df07/go-pathtracer/pkg/geometry"
	"github.com/df07/go-pathtracer/pkg/integrator"
	"github.com/df07/go-pathtracer/pkg/material"
	"github.com/df07/go-pathtracer/pkg/renderer"
)

// Cornell box dimensions (standard 555x555x555 units)
const boxSize = 555.0

func cornellCamera() renderer.CameraConfig {
	return renderer.CameraConfig{
		Center:      core.NewVec3(278, 278, -800), // Position camera outside the box looking in
		LookAt:      core.NewVec3(278, 278, 0),
		Up:          core.NewVec3(0, 1, 0),
		Width:       400,
		AspectRatio: 1.0,
		VFov:        40.0,
	}
}

// cornellWalls adds the five walls and a ceiling light of the given extent
// and brightness
func cornellWalls(s *Scene, sh *shapes, lightMin, lightMax, emission float64) {
	white := material.NewLambertian(core.NewVec3(0.73, 0.73, 0.73))
	red := material.NewLambertian(core.NewVec3(0.65, 0.05, 0.05))
	green := material.NewLambertian(core.NewVec3(0.12, 0.45, 0.15))
	light := material.NewDiffuseLight(core.NewVec3(emission, emission, emission))

	s.Add(
		sh.rect(core.NewVec3(boxSize, 0, 0), core.NewVec3(boxSize, boxSize, boxSize), green), // right
		sh.rect(core.NewVec3(0, 0, 0), core.NewVec3(0, boxSize, boxSize), red),               // left
		sh.rect(core.NewVec3(lightMin, boxSize-1, lightMin+14), core.NewVec3(lightMax, boxSize-1, lightMax-11), light),
		sh.rect(core.NewVec3(0, 0, 0), core.NewVec3(boxSize, 0, boxSize), white),             // floor
		sh.rect(core.NewVec3(0, boxSize, 0), core.NewVec3(boxSize, boxSize, boxSize), white), // ceiling
		sh.rect(core.NewVec3(0, 0, boxSize), core.NewVec3(boxSize, boxSize, boxSize), white), // back
	)
}

// cornellBlocks returns the tall and short boxes, rotated and moved into place
func cornellBlocks(sh *shapes) (tall, short geometry.Hittable) {
	white := material.NewLambertian(core.NewVec3(0.73, 0.73, 0.73))

	tall = sh.box(core.NewVec3(0, 0, 0), core.NewVec3(165, 330, 165), white)
	short = sh.box(core.NewVec3(0, 0, 0), core.NewVec3(165, 165, 165), white)
	if sh.err != nil {
		return nil, nil
	}

	tall = geometry.NewTranslate(geometry.NewRotateY(tall, 15), core.NewVec3(265, 0, 295))
	short = geometry.NewTranslate(geometry.NewRotateY(short, -18), core.NewVec3(130, 0, 65))
	return tall, short
}

// NewCornellScene creates the classic Cornell box with two rotated blocks
func NewCornellScene(opts Options) (*Scene, error) {
	s := New("cornell", cornellCamera(), integrator.NewSolidBackground(core.Vec3{}))
	s.SamplingConfig = renderer.SamplingConfig{SamplesPerPixel: 200, MaxDepth: 50}

	var sh shapes
	cornellWalls(s, &sh, 213, 343, 15)
	tall, short := cornellBlocks(&sh)
	if sh.err != nil {
		return nil, sh.err
	}
	s.Add(tall, short)
	return s, nil
}

// NewCornellSmokeScene replaces the Cornell blocks with dark smoke and white fog
func NewCornellSmokeScene(opts Options) (*Scene, error) {
	s := New("cornell-smoke", cornellCamera(), integrator.NewSolidBackground(core.Vec3{}))
	s.SamplingConfig = renderer.SamplingConfig{SamplesPerPixel: 200, MaxDepth: 50}

	var sh shapes
	cornellWalls(s, &sh, 113, 443, 7)
	tall, short := cornellBlocks(&sh)
	smoke := sh.medium(tall, 0.01, core.NewVec3(0, 0, 0), opts.Sampler)
	fog := sh.medium(short, 0.01, core.NewVec3(1, 1, 1), opts.Sampler)
	if sh.err != nil {
		return nil, sh.err
	}
	s.Add(smoke, fog)
	return s, nil
}
