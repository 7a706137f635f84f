package scene

import (
	"github.com/df07/go-pathtracer/pkg/core"
	"github.com/df07/go-pathtracer/pkg/geometry"
	"github.com/df07/go-pathtracer/pkg/integrator"
	"github.com/df07/go-pathtracer/pkg/loaders"
	"github.com/df07/go-pathtracer/pkg/material"
	"github.com/df07/go-pathtracer/pkg/renderer"
)

// NewFinalScene creates the showcase scene: a field of random-height boxes,
// a moving sphere, glass and metal spheres, a subsurface-like glass ball
// filled with blue fog, a thin global mist, textured globes, a rotated
// cluster of small spheres and a metal pyramid mesh.
func NewFinalScene(opts Options) (*Scene, error) {
	config := renderer.CameraConfig{
		Center:      core.NewVec3(478, 278, -600),
		LookAt:      core.NewVec3(278, 278, 0),
		Up:          core.NewVec3(0, 1, 0),
		Width:       400,
		AspectRatio: 1.0,
		VFov:        40.0,
		Time0:       0.0,
		Time1:       1.0,
	}
	s := New("final", config, integrator.NewSolidBackground(core.Vec3{}))
	s.SamplingConfig = renderer.SamplingConfig{SamplesPerPixel: 1000, MaxDepth: 50}
	sampler := opts.Sampler

	var sh shapes

	// Ground: 20x20 boxes of random height, grouped under their own BVH
	ground := material.NewLambertian(core.NewVec3(0.48, 0.83, 0.53))
	const boxesPerSide = 20
	boxes := make([]geometry.Hittable, 0, boxesPerSide*boxesPerSide)
	for i := 0; i < boxesPerSide; i++ {
		for j := 0; j < boxesPerSide; j++ {
			w := 100.0
			x0 := -1000.0 + float64(i)*w
			z0 := -1000.0 + float64(j)*w
			y1 := core.RandomRange(sampler, 1, 101)
			boxes = append(boxes, sh.box(core.NewVec3(x0, 0, z0), core.NewVec3(x0+w, y1, z0+w), ground))
		}
	}
	s.Add(sh.bvh(boxes, sampler))

	light := material.NewDiffuseLight(core.NewVec3(7, 7, 7))
	s.Add(sh.rect(core.NewVec3(123, 554, 147), core.NewVec3(423, 554, 412), light))

	center0 := core.NewVec3(400, 400, 200)
	center1 := center0.Add(core.NewVec3(30, 0, 0))
	s.Add(geometry.NewMovingSphere(center0, center1, 0, 1, 50, material.NewLambertian(core.NewVec3(0.7, 0.3, 0.1))))

	s.Add(
		geometry.NewSphere(core.NewVec3(260, 150, 45), 50, material.NewDielectric(1.5)),
		geometry.NewSphere(core.NewVec3(0, 150, 145), 50, material.NewMetal(core.NewVec3(0.8, 0.8, 0.9), 1.0)),
	)

	// Glass shell with blue fog inside
	boundary := geometry.NewSphere(core.NewVec3(360, 150, 145), 70, material.NewDielectric(1.5))
	s.Add(boundary, sh.medium(boundary, 0.2, core.NewVec3(0.2, 0.4, 0.9), sampler))

	// Thin mist over everything
	mist := geometry.NewSphere(core.NewVec3(0, 0, 0), 5000, material.NewDielectric(1.5))
	s.Add(sh.medium(mist, 0.0001, core.NewVec3(1, 1, 1), sampler))

	earth := loaders.LoadImageTexture(opts.asset("earthmap.jpg"), opts.Logger)
	s.Add(geometry.NewSphere(core.NewVec3(400, 200, 400), 100, material.NewTexturedLambertian(earth)))

	marble := material.NewTexturedLambertian(material.NewNoiseTexture(0.1, sampler))
	s.Add(geometry.NewSphere(core.NewVec3(220, 280, 300), 80, marble))

	// Cluster of small white spheres, rotated and moved as one instance
	white := material.NewLambertian(core.NewVec3(0.73, 0.73, 0.73))
	const clusterSize = 1000
	cluster := make([]geometry.Hittable, 0, clusterSize)
	for j := 0; j < clusterSize; j++ {
		cluster = append(cluster, geometry.NewSphere(core.RandomVec3(sampler, 0, 165), 10, white))
	}
	clusterBVH := sh.bvh(cluster, sampler)

	// Square pyramid mesh in front of the light
	pyramid := sh.mesh(
		[]core.Vec3{
			core.NewVec3(-40, 0, -40), core.NewVec3(40, 0, -40),
			core.NewVec3(40, 0, 40), core.NewVec3(-40, 0, 40),
			core.NewVec3(0, 90, 0),
		},
		[]int{
			0, 1, 4,
			1, 2, 4,
			2, 3, 4,
			3, 0, 4,
			0, 2, 1,
			0, 3, 2,
		},
		material.NewMetal(core.NewVec3(0.9, 0.75, 0.4), 0.2),
	)

	if sh.err != nil {
		return nil, sh.err
	}
	s.Add(
		geometry.NewTranslate(geometry.NewRotateY(clusterBVH, 15), core.NewVec3(-100, 270, 395)),
		geometry.NewTranslate(pyramid, core.NewVec3(150, 110, -50)),
	)
	return s, nil
}
