package material

import (
	"github.com/df07/go-pathtracer/pkg/core"
)

// ImageTexture provides color from an 8-bit RGB image buffer
type ImageTexture struct {
	Width  int
	Height int
	Stride int    // Bytes per row, at least 3*Width
	Data   []byte // Row-major, top row first, 3 bytes per pixel
}

// missingImageColor marks a texture without data so it stands out in renders
var missingImageColor = core.NewVec3(1, 0, 1)

// NewImageTextureWithStride creates a texture over an RGB buffer whose rows
// are stride bytes apart, for buffers with padded rows
func NewImageTextureWithStride(width, height, stride int, data []byte) *ImageTexture {
	return &ImageTexture{
		Width:  width,
		Height: height,
		Stride: stride,
		Data:   data,
	}
}

// Empty reports whether the texture has no usable pixel data
func (t *ImageTexture) Empty() bool {
	return t == nil || t.Width <= 0 || t.Height <= 0 || t.Stride < 3*t.Width ||
		len(t.Data) < t.Stride*(t.Height-1)+3*t.Width
}

// Evaluate samples the texture at given UV coordinates using nearest-neighbor filtering
func (t *ImageTexture) Evaluate(uv core.Vec2, point core.Vec3) core.Vec3 {
	if t.Empty() {
		return missingImageColor
	}

	// Clamp input texture coordinates to [0,1] x [1,0]
	u := clamp01(uv.X)
	v := 1.0 - clamp01(uv.Y) // Flip V to image coordinates

	x := int(u * float64(t.Width))
	y := int(v * float64(t.Height))

	// u = 1 and v = 0 land one past the last pixel
	if x >= t.Width {
		x = t.Width - 1
	}
	if y >= t.Height {
		y = t.Height - 1
	}

	const colorScale = 1.0 / 255.0
	offset := y*t.Stride + x*3
	return core.NewVec3(
		float64(t.Data[offset])*colorScale,
		float64(t.Data[offset+1])*colorScale,
		float64(t.Data[offset+2])*colorScale,
	)
}

func clamp01(x float64) float64 {
	if x < 0 {
		return 0
	}
	if x > 1 {
		return 1
	}
	return x
}
