package renderer

import (
	"math"
	"testing"

	"github.com/df07/go-pathtracer/pkg/core"
)

func vecNear(a, b core.Vec3, tol float64) bool {
	return math.Abs(a.X-b.X) < tol && math.Abs(a.Y-b.Y) < tol && math.Abs(a.Z-b.Z) < tol
}

func TestCameraCenterRayHitsLookAt(t *testing.T) {
	config := CameraConfig{
		Center:      core.NewVec3(3, 2, 5),
		LookAt:      core.NewVec3(0, 1, -1),
		Up:          core.NewVec3(0, 1, 0),
		Width:       200,
		AspectRatio: 2.0,
		VFov:        30.0,
	}
	camera := NewCamera(config)
	sampler := core.NewSeededSampler(42)

	ray := camera.GetRay(0.5, 0.5, sampler)
	if !vecNear(ray.Origin, config.Center, 1e-12) {
		t.Errorf("Pinhole ray origin = %v, want %v", ray.Origin, config.Center)
	}

	want := config.LookAt.Subtract(config.Center).Normalize()
	if got := ray.Direction.Normalize(); !vecNear(got, want, 1e-9) {
		t.Errorf("Center ray direction = %v, want %v", got, want)
	}
}

func TestCameraViewportCorners(t *testing.T) {
	config := CameraConfig{
		Center:      core.NewVec3(0, 0, 0),
		LookAt:      core.NewVec3(0, 0, -1),
		Up:          core.NewVec3(0, 1, 0),
		Width:       100,
		AspectRatio: 2.0,
		VFov:        90.0,
	}
	camera := NewCamera(config)
	sampler := core.NewSeededSampler(1)

	// 90 degree vfov at focus distance 1 spans y in [-1, 1] and x in [-2, 2]
	tests := []struct {
		name string
		s, t float64
		want core.Vec3
	}{
		{"lower left", 0, 0, core.NewVec3(-2, -1, -1)},
		{"upper right", 1, 1, core.NewVec3(2, 1, -1)},
		{"upper left", 0, 1, core.NewVec3(-2, 1, -1)},
		{"lower right", 1, 0, core.NewVec3(2, -1, -1)},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			ray := camera.GetRay(tt.s, tt.t, sampler)
			if !vecNear(ray.Direction, tt.want, 1e-9) {
				t.Errorf("Direction = %v, want %v", ray.Direction, tt.want)
			}
		})
	}
}

func TestCameraThinLensFocus(t *testing.T) {
	config := CameraConfig{
		Center:        core.NewVec3(0, 0, 0),
		LookAt:        core.NewVec3(0, 0, -10),
		Up:            core.NewVec3(0, 1, 0),
		Width:         100,
		AspectRatio:   1.0,
		VFov:          40.0,
		Aperture:      2.0,
		FocusDistance: 10.0,
	}
	camera := NewCamera(config)
	sampler := core.NewSeededSampler(42)

	sawOffset := false
	for i := 0; i < 100; i++ {
		ray := camera.GetRay(0.5, 0.5, sampler)

		if ray.Origin.Subtract(config.Center).Length() > 1.0+1e-9 {
			t.Fatalf("Lens sample %v outside aperture radius 1", ray.Origin)
		}
		if ray.Origin.Z != 0 {
			t.Fatalf("Lens sample %v not on the lens plane", ray.Origin)
		}
		if ray.Origin.Length() > 1e-6 {
			sawOffset = true
		}

		// Every lens sample for the center pixel converges on the focus point
		focus := ray.At(1.0)
		if !vecNear(focus, config.LookAt, 1e-9) {
			t.Fatalf("Ray from %v reaches %v, want focus point %v", ray.Origin, focus, config.LookAt)
		}
	}
	if !sawOffset {
		t.Error("Expected lens samples away from the center")
	}
}

func TestCameraShutterTime(t *testing.T) {
	tests := []struct {
		name         string
		time0, time1 float64
	}{
		{"open shutter", 0.0, 1.0},
		{"offset shutter", 2.0, 2.5},
		{"instant", 0.3, 0.3},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			config := DefaultCameraConfig()
			config.Time0, config.Time1 = tt.time0, tt.time1
			camera := NewCamera(config)
			sampler := core.NewSeededSampler(7)

			for i := 0; i < 50; i++ {
				ray := camera.GetRay(0.3, 0.7, sampler)
				if ray.Time < tt.time0 || ray.Time > tt.time1 {
					t.Fatalf("Ray time %f outside [%f, %f]", ray.Time, tt.time0, tt.time1)
				}
			}
		})
	}
}

func TestCameraConfigHeight(t *testing.T) {
	tests := []struct {
		width  int
		aspect float64
		want   int
	}{
		{400, 16.0 / 9.0, 225},
		{600, 1.0, 600},
		{1, 4.0, 1},
		{100, 0, 100},
	}
	for _, tt := range tests {
		config := CameraConfig{Width: tt.width, AspectRatio: tt.aspect}
		if got := config.Height(); got != tt.want {
			t.Errorf("Height(%d, %f) = %d, want %d", tt.width, tt.aspect, got, tt.want)
		}
	}
}

func TestMergeCameraConfig(t *testing.T) {
	base := DefaultCameraConfig()

	merged := MergeCameraConfig(base, CameraConfig{Width: 800, VFov: 20})
	if merged.Width != 800 || merged.VFov != 20 {
		t.Errorf("Overrides not applied: %+v", merged)
	}
	if merged.Center != base.Center || merged.AspectRatio != base.AspectRatio {
		t.Errorf("Zero override fields should keep base values: %+v", merged)
	}

	merged = MergeCameraConfig(base, CameraConfig{Time1: 1})
	if merged.Time0 != 0 || merged.Time1 != 1 {
		t.Errorf("Shutter interval = [%f, %f], want [0, 1]", merged.Time0, merged.Time1)
	}

	if got := MergeCameraConfig(base, CameraConfig{}); got != base {
		t.Errorf("Empty override changed config: %+v", got)
	}
}
