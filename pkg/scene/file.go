package scene

import (
	"bytes"
	"errors"
	"fmt"
	"io"
	"math"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"gopkg.in/yaml.v3"

	"github.com/df07/go-pathtracer/pkg/core"
	"github.com/df07/go-pathtracer/pkg/geometry"
	"github.com/df07/go-pathtracer/pkg/integrator"
	"github.com/df07/go-pathtracer/pkg/loaders"
	"github.com/df07/go-pathtracer/pkg/material"
	"github.com/df07/go-pathtracer/pkg/renderer"
)

// ErrInvalidSceneFile is returned for scene descriptions that parse but do
// not describe a valid scene
var ErrInvalidSceneFile = errors.New("invalid scene file")

// File is the YAML scene description
type File struct {
	Name       string                  `yaml:"name"`
	Camera     CameraSpec              `yaml:"camera"`
	Background BackgroundSpec          `yaml:"background"`
	Sampling   SamplingSpec            `yaml:"sampling"`
	Textures   map[string]TextureSpec  `yaml:"textures"`
	Materials  map[string]MaterialSpec `yaml:"materials"`
	Objects    []ObjectSpec            `yaml:"objects"`
}

// CameraSpec describes the camera; omitted fields keep the defaults
type CameraSpec struct {
	LookFrom      []float64 `yaml:"look_from"`
	LookAt        []float64 `yaml:"look_at"`
	Up            []float64 `yaml:"up"`
	Width         int       `yaml:"width"`
	AspectRatio   float64   `yaml:"aspect_ratio"`
	VFov          float64   `yaml:"vfov"`
	Aperture      float64   `yaml:"aperture"`
	FocusDistance float64   `yaml:"focus_distance"`
	Time0         float64   `yaml:"time0"`
	Time1         float64   `yaml:"time1"`
}

// BackgroundSpec is either a solid color or a top/bottom gradient
type BackgroundSpec struct {
	Color  []float64 `yaml:"color"`
	Top    []float64 `yaml:"top"`
	Bottom []float64 `yaml:"bottom"`
}

// SamplingSpec overrides the sampling defaults
type SamplingSpec struct {
	SamplesPerPixel int `yaml:"samples_per_pixel"`
	MaxDepth        int `yaml:"max_depth"`
}

// TextureSpec describes a named texture: solid, checker, noise or image
type TextureSpec struct {
	Type  string    `yaml:"type"`
	Color []float64 `yaml:"color"`
	Even  []float64 `yaml:"even"`
	Odd   []float64 `yaml:"odd"`
	Scale float64   `yaml:"scale"`
	Path  string    `yaml:"path"`
}

// MaterialSpec describes a named material: lambertian, metal, dielectric,
// light or isotropic. Texture refers to a named texture and overrides Color.
type MaterialSpec struct {
	Type    string    `yaml:"type"`
	Color   []float64 `yaml:"color"`
	Texture string    `yaml:"texture"`
	Fuzz    float64   `yaml:"fuzz"`
	IOR     float64   `yaml:"ior"`
}

// ObjectSpec describes one primitive and its optional modifiers. Modifiers
// apply in the order flip, rotate, translate, medium.
type ObjectSpec struct {
	Type     string      `yaml:"type"`
	Material string      `yaml:"material"`
	Center   []float64   `yaml:"center"`
	Center1  []float64   `yaml:"center1"`
	Time0    float64     `yaml:"time0"`
	Time1    float64     `yaml:"time1"`
	Radius   float64     `yaml:"radius"`
	P0       []float64   `yaml:"p0"`
	P1       []float64   `yaml:"p1"`
	Vertices [][]float64 `yaml:"vertices"`
	Faces    []int       `yaml:"faces"`
	Path     string      `yaml:"path"`

	Flip      bool        `yaml:"flip"`
	Rotate    *RotateSpec `yaml:"rotate"`
	Translate []float64   `yaml:"translate"`
	Medium    *MediumSpec `yaml:"medium"`
}

// RotateSpec rotates an object about a coordinate axis
type RotateSpec struct {
	Axis    string  `yaml:"axis"`
	Degrees float64 `yaml:"degrees"`
}

// MediumSpec fills an object's volume with a constant density medium
type MediumSpec struct {
	Density float64   `yaml:"density"`
	Color   []float64 `yaml:"color"`
}

// LoadFile reads and builds a YAML scene. Relative texture and PLY paths are
// resolved against the scene file's directory.
func LoadFile(path string, opts Options) (*Scene, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading scene file: %w", err)
	}

	opts = opts.withDefaults()
	if opts.AssetDir == "" {
		opts.AssetDir = filepath.Dir(path)
	}

	s, err := Decode(bytes.NewReader(data), opts)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	if s.Name == "" {
		s.Name = strings.TrimSuffix(filepath.Base(path), filepath.Ext(path))
	}
	return s, nil
}

// Decode parses a YAML scene description and builds the scene
func Decode(r io.Reader, opts Options) (*Scene, error) {
	var file File
	dec := yaml.NewDecoder(r)
	dec.KnownFields(true)
	if err := dec.Decode(&file); err != nil {
		return nil, fmt.Errorf("parsing scene: %w", err)
	}
	return file.Build(opts)
}

// Build turns the description into a scene
func (f *File) Build(opts Options) (*Scene, error) {
	opts = opts.withDefaults()
	b := &fileBuilder{file: f, opts: opts, textures: map[string]material.Texture{}, materials: map[string]material.Material{}}

	config, err := b.camera()
	if err != nil {
		return nil, err
	}
	background, err := b.background()
	if err != nil {
		return nil, err
	}

	s := New(f.Name, config, background)
	if f.Sampling.SamplesPerPixel > 0 {
		s.SamplingConfig.SamplesPerPixel = f.Sampling.SamplesPerPixel
	}
	if f.Sampling.MaxDepth > 0 {
		s.SamplingConfig.MaxDepth = f.Sampling.MaxDepth
	}

	// Sorted so noise textures draw from the sampler in a fixed order
	for _, name := range sortedKeys(f.Textures) {
		tex, err := b.texture(f.Textures[name])
		if err != nil {
			return nil, fmt.Errorf("texture %q: %w", name, err)
		}
		b.textures[name] = tex
	}
	for _, name := range sortedKeys(f.Materials) {
		mat, err := b.material(f.Materials[name])
		if err != nil {
			return nil, fmt.Errorf("material %q: %w", name, err)
		}
		b.materials[name] = mat
	}

	if len(f.Objects) == 0 {
		return nil, fmt.Errorf("%w: no objects", ErrInvalidSceneFile)
	}
	for i, spec := range f.Objects {
		object, err := b.object(spec)
		if err != nil {
			return nil, fmt.Errorf("object %d (%s): %w", i, spec.Type, err)
		}
		s.Add(object)
	}
	return s, nil
}

func sortedKeys[V any](m map[string]V) []string {
	keys := make([]string, 0, len(m))
	for k := range m {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}

type fileBuilder struct {
	file      *File
	opts      Options
	textures  map[string]material.Texture
	materials map[string]material.Material
}

func vec(name string, values []float64) (core.Vec3, error) {
	if len(values) != 3 {
		return core.Vec3{}, fmt.Errorf("%w: %s needs 3 components, got %d", ErrInvalidSceneFile, name, len(values))
	}
	return core.NewVec3(values[0], values[1], values[2]), nil
}

// optionalVec returns fallback when values is empty
func optionalVec(name string, values []float64, fallback core.Vec3) (core.Vec3, error) {
	if len(values) == 0 {
		return fallback, nil
	}
	return vec(name, values)
}

func (b *fileBuilder) camera() (renderer.CameraConfig, error) {
	spec := b.file.Camera
	config := renderer.DefaultCameraConfig()

	var err error
	if config.Center, err = optionalVec("camera.look_from", spec.LookFrom, config.Center); err != nil {
		return config, err
	}
	if config.LookAt, err = optionalVec("camera.look_at", spec.LookAt, config.LookAt); err != nil {
		return config, err
	}
	if config.Up, err = optionalVec("camera.up", spec.Up, config.Up); err != nil {
		return config, err
	}
	if spec.Time1 < spec.Time0 {
		return config, fmt.Errorf("%w: camera shutter closes before it opens", ErrInvalidSceneFile)
	}

	return renderer.MergeCameraConfig(config, renderer.CameraConfig{
		Width:         spec.Width,
		AspectRatio:   spec.AspectRatio,
		VFov:          spec.VFov,
		Aperture:      spec.Aperture,
		FocusDistance: spec.FocusDistance,
		Time0:         spec.Time0,
		Time1:         spec.Time1,
	}), nil
}

func (b *fileBuilder) background() (integrator.Background, error) {
	spec := b.file.Background
	if len(spec.Top) > 0 || len(spec.Bottom) > 0 {
		top, err := vec("background.top", spec.Top)
		if err != nil {
			return nil, err
		}
		bottom, err := vec("background.bottom", spec.Bottom)
		if err != nil {
			return nil, err
		}
		return integrator.NewGradientBackground(top, bottom), nil
	}
	c, err := optionalVec("background.color", spec.Color, core.Vec3{})
	if err != nil {
		return nil, err
	}
	return integrator.NewSolidBackground(c), nil
}

func (b *fileBuilder) texture(spec TextureSpec) (material.Texture, error) {
	switch spec.Type {
	case "solid", "":
		c, err := vec("color", spec.Color)
		if err != nil {
			return nil, err
		}
		return material.NewSolidColor(c), nil
	case "checker":
		even, err := vec("even", spec.Even)
		if err != nil {
			return nil, err
		}
		odd, err := vec("odd", spec.Odd)
		if err != nil {
			return nil, err
		}
		return material.NewCheckerColors(even, odd), nil
	case "noise":
		scale := spec.Scale
		if scale == 0 {
			scale = 1
		}
		return material.NewNoiseTexture(scale, b.opts.Sampler), nil
	case "image":
		if spec.Path == "" {
			return nil, fmt.Errorf("%w: image texture without path", ErrInvalidSceneFile)
		}
		return loaders.LoadImageTexture(b.resolve(spec.Path), b.opts.Logger), nil
	default:
		return nil, fmt.Errorf("%w: unknown texture type %q", ErrInvalidSceneFile, spec.Type)
	}
}

// albedo resolves a material's named texture or inline color
func (b *fileBuilder) albedo(spec MaterialSpec) (material.Texture, error) {
	if spec.Texture != "" {
		tex, ok := b.textures[spec.Texture]
		if !ok {
			return nil, fmt.Errorf("%w: unknown texture %q", ErrInvalidSceneFile, spec.Texture)
		}
		return tex, nil
	}
	c, err := vec("color", spec.Color)
	if err != nil {
		return nil, err
	}
	return material.NewSolidColor(c), nil
}

func (b *fileBuilder) material(spec MaterialSpec) (material.Material, error) {
	if spec.Type == "dielectric" {
		if spec.IOR <= 0 {
			return nil, fmt.Errorf("%w: dielectric needs a positive ior", ErrInvalidSceneFile)
		}
		return material.NewDielectric(spec.IOR), nil
	}

	albedo, err := b.albedo(spec)
	if err != nil {
		return nil, err
	}
	switch spec.Type {
	case "lambertian":
		return material.NewTexturedLambertian(albedo), nil
	case "metal":
		return material.NewTexturedMetal(albedo, spec.Fuzz), nil
	case "light":
		return material.NewTexturedDiffuseLight(albedo), nil
	case "isotropic":
		return material.NewTexturedIsotropic(albedo), nil
	default:
		return nil, fmt.Errorf("%w: unknown material type %q", ErrInvalidSceneFile, spec.Type)
	}
}

func (b *fileBuilder) resolve(path string) string {
	if filepath.IsAbs(path) {
		return path
	}
	return b.opts.asset(path)
}

func (b *fileBuilder) object(spec ObjectSpec) (geometry.Hittable, error) {
	mat, ok := b.materials[spec.Material]
	if !ok {
		return nil, fmt.Errorf("%w: unknown material %q", ErrInvalidSceneFile, spec.Material)
	}

	object, err := b.primitive(spec, mat)
	if err != nil {
		return nil, err
	}

	if spec.Flip {
		object = geometry.NewFlipFace(object)
	}
	if spec.Rotate != nil {
		axis, ok := map[string]int{"x": 0, "y": 1, "z": 2}[strings.ToLower(spec.Rotate.Axis)]
		if !ok {
			return nil, fmt.Errorf("%w: rotation axis %q", ErrInvalidSceneFile, spec.Rotate.Axis)
		}
		if object, err = geometry.NewRotate(object, axis, spec.Rotate.Degrees); err != nil {
			return nil, err
		}
	}
	if len(spec.Translate) > 0 {
		offset, err := vec("translate", spec.Translate)
		if err != nil {
			return nil, err
		}
		object = geometry.NewTranslate(object, offset)
	}
	if spec.Medium != nil {
		albedo, err := optionalVec("medium.color", spec.Medium.Color, core.NewVec3(1, 1, 1))
		if err != nil {
			return nil, err
		}
		if object, err = geometry.NewConstantMedium(object, spec.Medium.Density, material.NewSolidColor(albedo), b.opts.Sampler); err != nil {
			return nil, err
		}
	}
	return object, nil
}

// checkRadius rejects spheres without a surface. Negative radii are kept:
// they flip the normals inward for hollow glass.
func checkRadius(radius float64) error {
	if radius == 0 || math.IsNaN(radius) || math.IsInf(radius, 0) {
		return fmt.Errorf("%w: sphere radius must be finite and non-zero, got %v", ErrInvalidSceneFile, radius)
	}
	return nil
}

func (b *fileBuilder) primitive(spec ObjectSpec, mat material.Material) (geometry.Hittable, error) {
	switch spec.Type {
	case "sphere":
		center, err := vec("center", spec.Center)
		if err != nil {
			return nil, err
		}
		if err := checkRadius(spec.Radius); err != nil {
			return nil, err
		}
		return geometry.NewSphere(center, spec.Radius, mat), nil
	case "moving_sphere":
		if err := checkRadius(spec.Radius); err != nil {
			return nil, err
		}
		c0, err := vec("center", spec.Center)
		if err != nil {
			return nil, err
		}
		c1, err := vec("center1", spec.Center1)
		if err != nil {
			return nil, err
		}
		return geometry.NewMovingSphere(c0, c1, spec.Time0, spec.Time1, spec.Radius, mat), nil
	case "rect", "box":
		p0, err := vec("p0", spec.P0)
		if err != nil {
			return nil, err
		}
		p1, err := vec("p1", spec.P1)
		if err != nil {
			return nil, err
		}
		if spec.Type == "rect" {
			return geometry.NewAARect(p0, p1, mat)
		}
		return geometry.NewBox(p0, p1, mat)
	case "mesh":
		vertices := make([]core.Vec3, len(spec.Vertices))
		for i, v := range spec.Vertices {
			p, err := vec(fmt.Sprintf("vertices[%d]", i), v)
			if err != nil {
				return nil, err
			}
			vertices[i] = p
		}
		return geometry.NewTriangleMesh(vertices, spec.Faces, mat, &geometry.TriangleMeshOptions{Sampler: b.opts.Sampler})
	case "ply":
		data, err := loaders.LoadPLY(b.resolve(spec.Path))
		if err != nil {
			return nil, err
		}
		b.opts.Logger.Debugf("Loaded PLY %s: %d vertices, %d triangles", spec.Path, len(data.Vertices), data.TriangleCount())
		options := &geometry.TriangleMeshOptions{Sampler: b.opts.Sampler}
		if len(data.TexCoords) == len(data.Vertices) {
			options.UVs = data.TexCoords
		}
		return geometry.NewTriangleMesh(data.Vertices, data.Faces, mat, options)
	default:
		return nil, fmt.Errorf("%w: unknown object type %q", ErrInvalidSceneFile, spec.Type)
	}
}
