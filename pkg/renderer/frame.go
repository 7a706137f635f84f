package renderer

import (
	"image"
	"image/color"
	"math"

	"github.com/df07/go-pathtracer/pkg/core"
)

// Frame accumulates linear radiance samples per pixel. Row 0 is the top of
// the image.
type Frame struct {
	Width   int
	Height  int
	Samples int         // Samples per pixel the sums are divided by
	Pixels  []core.Vec3 // Row-major sums of samples
}

// NewFrame allocates a black frame
func NewFrame(width, height, samples int) *Frame {
	return &Frame{
		Width:   width,
		Height:  height,
		Samples: samples,
		Pixels:  make([]core.Vec3, width*height),
	}
}

// Add accumulates a sample into pixel (x, y)
func (f *Frame) Add(x, y int, sample core.Vec3) {
	i := y*f.Width + x
	f.Pixels[i] = f.Pixels[i].Add(sample)
}

// At returns the accumulated sum of pixel (x, y)
func (f *Frame) At(x, y int) core.Vec3 {
	return f.Pixels[y*f.Width+x]
}

// RGB returns the 8-bit gamma-corrected color of pixel (x, y)
func (f *Frame) RGB(x, y int) (r, g, b uint8) {
	c := f.At(x, y)
	return QuantizeChannel(c.X, f.Samples), QuantizeChannel(c.Y, f.Samples), QuantizeChannel(c.Z, f.Samples)
}

// Image converts the frame to an 8-bit RGBA image
func (f *Frame) Image() *image.RGBA {
	img := image.NewRGBA(image.Rect(0, 0, f.Width, f.Height))
	for y := 0; y < f.Height; y++ {
		for x := 0; x < f.Width; x++ {
			r, g, b := f.RGB(x, y)
			img.SetRGBA(x, y, color.RGBA{R: r, G: g, B: b, A: 255})
		}
	}
	return img
}

// QuantizeChannel averages a summed channel over samples, applies gamma 2,
// clamps to [0, 0.999] and scales to [0, 255].
func QuantizeChannel(sum float64, samples int) uint8 {
	v := sum
	if samples > 0 {
		v = sum / float64(samples)
	}
	if math.IsNaN(v) || v < 0 {
		v = 0
	}
	v = math.Sqrt(v)
	if v > 0.999 {
		v = 0.999
	}
	return uint8(256 * v)
}
