package scene

import (
	"errors"
	"fmt"

	"github.com/df07/go-pathtracer/pkg/core"
	"github.com/df07/go-pathtracer/pkg/geometry"
	"github.com/df07/go-pathtracer/pkg/integrator"
	"github.com/df07/go-pathtracer/pkg/renderer"
)

// ErrUnknownScene is returned when a scene name is not registered
var ErrUnknownScene = errors.New("unknown scene")

// Scene contains all the elements needed for rendering
type Scene struct {
	Name           string
	Objects        *geometry.HittableList // Objects in the scene
	Camera         *renderer.Camera
	CameraConfig   renderer.CameraConfig
	Background     integrator.Background
	SamplingConfig renderer.SamplingConfig
	BVH            *geometry.BVH // Acceleration structure, built by Preprocess
}

// New creates an empty scene with a camera and a background
func New(name string, cameraConfig renderer.CameraConfig, background integrator.Background) *Scene {
	if background == nil {
		background = integrator.NewSolidBackground(core.Vec3{})
	}
	return &Scene{
		Name:           name,
		Objects:        geometry.NewHittableList(),
		Camera:         renderer.NewCamera(cameraConfig),
		CameraConfig:   cameraConfig,
		Background:     background,
		SamplingConfig: renderer.DefaultSamplingConfig(),
	}
}

// Add appends objects to the scene and invalidates any built BVH
func (s *Scene) Add(objects ...geometry.Hittable) {
	for _, object := range objects {
		s.Objects.Add(object)
	}
	s.BVH = nil
}

// SetCameraConfig replaces the camera
func (s *Scene) SetCameraConfig(config renderer.CameraConfig) {
	s.CameraConfig = config
	s.Camera = renderer.NewCamera(config)
}

// Preprocess builds the BVH over the scene objects for the camera's shutter
// interval. It fails if any object cannot report a bounding box.
func (s *Scene) Preprocess(sampler core.Sampler, logger core.Logger) error {
	if logger == nil {
		logger = core.NopLogger{}
	}

	bvh, err := geometry.NewBVH(s.Objects.Objects, s.CameraConfig.Time0, s.CameraConfig.Time1, sampler)
	if err != nil {
		return fmt.Errorf("building BVH for scene %q: %w", s.Name, err)
	}
	s.BVH = bvh

	stats := bvh.Stats()
	logger.Infof("Built BVH over %d objects: %d nodes, %d leaves, max depth %d",
		s.Objects.Len(), stats.TotalNodes, stats.LeafNodes, stats.MaxDepth)
	return nil
}

// GetCamera returns the scene camera
func (s *Scene) GetCamera() *renderer.Camera {
	return s.Camera
}

// GetBackground returns the color seen by rays that escape the scene
func (s *Scene) GetBackground() integrator.Background {
	return s.Background
}

// GetWorld returns the BVH when built, otherwise the flat object list
func (s *Scene) GetWorld() geometry.Hittable {
	if s.BVH != nil {
		return s.BVH
	}
	return s.Objects
}

// GetPrimitiveCount returns the total number of primitive objects in the scene
func (s *Scene) GetPrimitiveCount() int {
	count := 0
	for _, object := range s.Objects.Objects {
		count += countPrimitives(object)
	}
	return count
}

// countPrimitives counts primitives in a single object, looking through wrappers
func countPrimitives(object geometry.Hittable) int {
	switch obj := object.(type) {
	case *geometry.TriangleMesh:
		return obj.TriangleCount()
	case *geometry.HittableList:
		count := 0
		for _, inner := range obj.Objects {
			count += countPrimitives(inner)
		}
		return count
	case *geometry.BVH:
		return obj.Stats().TotalShapes
	case *geometry.Translate:
		return countPrimitives(obj.Object)
	case *geometry.Rotate:
		return countPrimitives(obj.Object)
	case *geometry.FlipFace:
		return countPrimitives(obj.Object)
	case *geometry.ConstantMedium:
		return countPrimitives(obj.Boundary)
	default:
		return 1
	}
}
