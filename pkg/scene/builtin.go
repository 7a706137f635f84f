package scene

import (
	"fmt"
	"path/filepath"
	"sort"

	"github.com/df07/go-pathtracer/pkg/core"
	"github.com/df07/go-pathtracer/pkg/geometry"
	"github.com/df07/go-pathtracer/pkg/material"
)

// Options carries the shared inputs of the scene builders
type Options struct {
	Sampler  core.Sampler // Random placement, Perlin tables and media; seeded by the caller
	Logger   core.Logger
	AssetDir string // Directory searched for texture images
}

func (o Options) withDefaults() Options {
	if o.Sampler == nil {
		o.Sampler = core.NewSeededSampler(42)
	}
	if o.Logger == nil {
		o.Logger = core.NopLogger{}
	}
	return o
}

func (o Options) asset(name string) string {
	if o.AssetDir == "" {
		return name
	}
	return filepath.Join(o.AssetDir, name)
}

// Builder constructs a scene
type Builder func(opts Options) (*Scene, error)

// SceneInfo describes a built-in scene
type SceneInfo struct {
	Name        string
	Description string
}

type builtinScene struct {
	info  SceneInfo
	build Builder
}

var builtins = map[string]builtinScene{
	"two-spheres":    {SceneInfo{"two-spheres", "Small sphere resting on a large ground sphere"}, NewTwoSpheresScene},
	"random-spheres": {SceneInfo{"random-spheres", "Grid of random diffuse, metal and glass spheres with motion blur"}, NewRandomSpheresScene},
	"perlin":         {SceneInfo{"perlin", "Two spheres with Perlin marble texture"}, NewPerlinScene},
	"earth":          {SceneInfo{"earth", "Image-textured globe"}, NewEarthScene},
	"simple-light":   {SceneInfo{"simple-light", "Perlin spheres lit by a rectangle and a sphere light"}, NewSimpleLightScene},
	"cornell":        {SceneInfo{"cornell", "Cornell box with two rotated boxes"}, NewCornellScene},
	"cornell-smoke":  {SceneInfo{"cornell-smoke", "Cornell box with smoke and fog blocks"}, NewCornellSmokeScene},
	"final":          {SceneInfo{"final", "Everything: box field, media, textures, instances and a mesh"}, NewFinalScene},
}

// List returns the built-in scenes sorted by name
func List() []SceneInfo {
	infos := make([]SceneInfo, 0, len(builtins))
	for _, b := range builtins {
		infos = append(infos, b.info)
	}
	sort.Slice(infos, func(i, j int) bool {
		return infos[i].Name < infos[j].Name
	})
	return infos
}

// Build constructs the built-in scene with the given name
func Build(name string, opts Options) (*Scene, error) {
	b, ok := builtins[name]
	if !ok {
		return nil, fmt.Errorf("%w: %q", ErrUnknownScene, name)
	}
	s, err := b.build(opts.withDefaults())
	if err != nil {
		return nil, fmt.Errorf("building scene %q: %w", name, err)
	}
	return s, nil
}

// shapes wraps fallible geometry constructors and keeps the first error, so
// a builder can create many shapes and check once at the end.
type shapes struct {
	err error
}

func (sh *shapes) rect(p0, p1 core.Vec3, mat material.Material) geometry.Hittable {
	if sh.err != nil {
		return nil
	}
	r, err := geometry.NewAARect(p0, p1, mat)
	if err != nil {
		sh.err = err
		return nil
	}
	return r
}

func (sh *shapes) box(p0, p1 core.Vec3, mat material.Material) geometry.Hittable {
	if sh.err != nil {
		return nil
	}
	b, err := geometry.NewBox(p0, p1, mat)
	if err != nil {
		sh.err = err
		return nil
	}
	return b
}

func (sh *shapes) medium(boundary geometry.Hittable, density float64, albedo core.Vec3, sampler core.Sampler) geometry.Hittable {
	if sh.err != nil {
		return nil
	}
	m, err := geometry.NewConstantMedium(boundary, density, material.NewSolidColor(albedo), sampler)
	if err != nil {
		sh.err = err
		return nil
	}
	return m
}

func (sh *shapes) bvh(objects []geometry.Hittable, sampler core.Sampler) geometry.Hittable {
	if sh.err != nil {
		return nil
	}
	b, err := geometry.NewBVH(objects, 0, 1, sampler)
	if err != nil {
		sh.err = err
		return nil
	}
	return b
}

func (sh *shapes) mesh(vertices []core.Vec3, faces []int, mat material.Material) geometry.Hittable {
	if sh.err != nil {
		return nil
	}
	m, err := geometry.NewTriangleMesh(vertices, faces, mat, nil)
	if err != nil {
		sh.err = err
		return nil
	}
	return m
}
