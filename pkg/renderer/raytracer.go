package renderer

import (
	"math/rand"
	"time"

	"github.com/df07/go-pathtracer/pkg/core"
	"github.com/df07/go-pathtracer/pkg/geometry"
	"github.com/df07/go-pathtracer/pkg/integrator"
)

// SamplingConfig contains rendering configuration
type SamplingConfig struct {
	SamplesPerPixel int // Number of rays per pixel
	MaxDepth        int // Maximum ray bounce depth
}

// DefaultSamplingConfig returns sensible default values
func DefaultSamplingConfig() SamplingConfig {
	return SamplingConfig{
		SamplesPerPixel: 200,
		MaxDepth:        50,
	}
}

// Scene interface to avoid circular imports
type Scene interface {
	GetCamera() *Camera
	GetBackground() integrator.Background
	GetWorld() geometry.Hittable
}

// Raytracer drives the per-pixel sampling loop. It is single-threaded and
// draws every random number from one sampler, so a fixed seed reproduces
// the same image.
type Raytracer struct {
	scene   Scene
	width   int
	height  int
	config  SamplingConfig
	sampler core.Sampler
	logger  core.Logger
}

// NewRaytracer creates a new raytracer
func NewRaytracer(scene Scene, width, height int) *Raytracer {
	return &Raytracer{
		scene:   scene,
		width:   width,
		height:  height,
		config:  DefaultSamplingConfig(),
		sampler: core.NewRandomSampler(rand.New(rand.NewSource(42))), // Deterministic for testing
		logger:  core.NopLogger{},
	}
}

// SetSamplingConfig updates the sampling configuration
func (rt *Raytracer) SetSamplingConfig(config SamplingConfig) {
	rt.config = config
}

// SetSampler replaces the random source
func (rt *Raytracer) SetSampler(sampler core.Sampler) {
	rt.sampler = sampler
}

// SetLogger sets where progress messages go
func (rt *Raytracer) SetLogger(logger core.Logger) {
	if logger == nil {
		logger = core.NopLogger{}
	}
	rt.logger = logger
}

// Render samples every pixel and returns the accumulated frame plus timing
// statistics. Scanlines are visited from the top of the image down.
func (rt *Raytracer) Render() (*Frame, RenderStats) {
	start := time.Now()
	frame := NewFrame(rt.width, rt.height, rt.config.SamplesPerPixel)
	camera := rt.scene.GetCamera()
	var li integrator.Integrator = integrator.NewPathTracingIntegrator(rt.scene.GetBackground(), rt.config.MaxDepth)
	world := rt.scene.GetWorld()

	rt.logger.Infof("Rendering %dx%d, %d samples per pixel, max depth %d",
		rt.width, rt.height, rt.config.SamplesPerPixel, rt.config.MaxDepth)

	spanX, spanY := span(rt.width), span(rt.height)
	for j := rt.height - 1; j >= 0; j-- {
		rt.logger.Debugf("Scanlines remaining: %d", j+1)
		for i := 0; i < rt.width; i++ {
			// Frame rows run top-down while j counts up from the bottom
			x, y := i, rt.height-1-j
			for sample := 0; sample < rt.config.SamplesPerPixel; sample++ {
				// Jitter within the pixel
				s := (float64(i) + rt.sampler.Get1D()) / spanX
				t := (float64(j) + rt.sampler.Get1D()) / spanY

				ray := camera.GetRay(s, t, rt.sampler)
				frame.Add(x, y, li.RayColor(ray, world, rt.sampler))
			}
		}
	}

	stats := RenderStats{
		Width:           rt.width,
		Height:          rt.height,
		SamplesPerPixel: rt.config.SamplesPerPixel,
		MaxDepth:        rt.config.MaxDepth,
		TotalSamples:    rt.width * rt.height * rt.config.SamplesPerPixel,
		Duration:        time.Since(start),
	}
	rt.logger.Infof("Render finished in %v", stats.Duration)
	return frame, stats
}

// span is the divisor mapping pixel indices onto [0, 1]
func span(n int) float64 {
	if n <= 1 {
		return 1
	}
	return float64(n - 1)
}
