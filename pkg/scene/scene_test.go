package scene

import (
	"errors"
	"math"
	"testing"

	"github.com/df07/go-pathtracer/pkg/core"
	"github.com/df07/go-pathtracer/pkg/geometry"
	"github.com/df07/go-pathtracer/pkg/material"
	"github.com/df07/go-pathtracer/pkg/renderer"
)

// unbounded is a hittable with no bounding box
type unbounded struct{}

func (unbounded) Hit(ray core.Ray, tMin, tMax float64, rec *material.HitRecord) bool { return false }
func (unbounded) BoundingBox(time0, time1 float64) (core.AABB, bool)               { return core.AABB{}, false }

func TestNewSceneDefaults(t *testing.T) {
	s := New("empty", renderer.DefaultCameraConfig(), nil)

	if s.Background == nil {
		t.Fatal("Expected a default background")
	}
	if got := s.Background.Color(core.NewRay(core.Vec3{}, core.NewVec3(0, 1, 0))); got != (core.Vec3{}) {
		t.Errorf("Default background = %v, want black", got)
	}
	if s.SamplingConfig != renderer.DefaultSamplingConfig() {
		t.Errorf("SamplingConfig = %+v, want defaults", s.SamplingConfig)
	}
	if s.GetWorld() != s.Objects {
		t.Error("World should be the object list before Preprocess")
	}
}

func TestScenePreprocess(t *testing.T) {
	s := New("spheres", renderer.DefaultCameraConfig(), nil)
	mat := material.NewLambertian(core.NewVec3(0.5, 0.5, 0.5))
	for i := 0; i < 10; i++ {
		s.Add(geometry.NewSphere(core.NewVec3(float64(i), 0, -5), 0.4, mat))
	}

	if err := s.Preprocess(core.NewSeededSampler(42), nil); err != nil {
		t.Fatalf("Preprocess failed: %v", err)
	}
	if s.BVH == nil {
		t.Fatal("Expected BVH after Preprocess")
	}
	if s.GetWorld() != s.BVH {
		t.Error("World should be the BVH after Preprocess")
	}
	if stats := s.BVH.Stats(); stats.LeafNodes != 10 {
		t.Errorf("BVH leaves = %d, want 10", stats.LeafNodes)
	}

	s.Add(geometry.NewSphere(core.NewVec3(0, 5, -5), 1, mat))
	if s.BVH != nil {
		t.Error("Add should invalidate the BVH")
	}
}

func TestScenePreprocessMissingBoundingBox(t *testing.T) {
	s := New("broken", renderer.DefaultCameraConfig(), nil)
	s.Add(geometry.NewSphere(core.NewVec3(0, 0, -1), 0.5, material.NewDielectric(1.5)), unbounded{})

	err := s.Preprocess(core.NewSeededSampler(42), nil)
	if !errors.Is(err, geometry.ErrMissingBoundingBox) {
		t.Fatalf("Expected ErrMissingBoundingBox, got %v", err)
	}
	if s.BVH != nil {
		t.Error("BVH should not be set after a failed build")
	}
}

func TestSceneGetPrimitiveCount(t *testing.T) {
	s := New("count", renderer.DefaultCameraConfig(), nil)
	mat := material.NewLambertian(core.NewVec3(0.5, 0.5, 0.5))
	box, err := geometry.NewBox(core.NewVec3(0, 0, 0), core.NewVec3(1, 1, 1), mat)
	if err != nil {
		t.Fatal(err)
	}
	mesh, err := geometry.NewTriangleMesh(
		[]core.Vec3{core.NewVec3(0, 0, 0), core.NewVec3(1, 0, 0), core.NewVec3(1, 1, 0), core.NewVec3(0, 1, 0)},
		[]int{0, 1, 2, 0, 2, 3}, mat, nil)
	if err != nil {
		t.Fatal(err)
	}

	s.Add(
		geometry.NewSphere(core.NewVec3(0, 0, 0), 1, mat),
		geometry.NewTranslate(geometry.NewRotateY(box, 30), core.NewVec3(2, 0, 0)),
		mesh,
	)
	if got := s.GetPrimitiveCount(); got != 4 {
		t.Errorf("GetPrimitiveCount = %d, want 4", got)
	}
}

func TestTwoSpheresCenterRay(t *testing.T) {
	s, err := Build("two-spheres", Options{})
	if err != nil {
		t.Fatalf("Build failed: %v", err)
	}
	if err := s.Preprocess(core.NewSeededSampler(42), nil); err != nil {
		t.Fatalf("Preprocess failed: %v", err)
	}

	ray := s.Camera.GetRay(0.5, 0.5, core.NewSeededSampler(1))
	var rec material.HitRecord
	if !s.GetWorld().Hit(ray, 0.001, math.Inf(1), &rec) {
		t.Fatal("Center ray should hit the front sphere")
	}
	if math.Abs(rec.T-0.5) > 1e-9 {
		t.Errorf("Hit t = %f, want 0.5", rec.T)
	}

	// The ground sphere lies beyond the front sphere along this ray
	var ground material.HitRecord
	if s.Objects.Objects[1].Hit(ray, 0.001, math.Inf(1), &ground) && ground.T <= rec.T {
		t.Errorf("Ground hit t = %f should be farther than %f", ground.T, rec.T)
	}
}
