package loaders

import (
	"fmt"
	"image"
	_ "image/jpeg" // JPEG decoder
	_ "image/png"  // PNG decoder
	"os"

	_ "golang.org/x/image/bmp" // BMP decoder

	"github.com/df07/go-pathtracer/pkg/core"
	"github.com/df07/go-pathtracer/pkg/material"
)

// ImageData contains a decoded image as packed 8-bit RGB, row 0 at the top
type ImageData struct {
	Width  int
	Height int
	Format string // Decoder that recognized the file: png, jpeg or bmp
	Stride int    // Bytes per row
	Pixels []byte // 3 bytes per pixel
}

// LoadImage loads a PNG, JPEG or BMP image and converts it to packed RGB bytes
func LoadImage(filename string) (*ImageData, error) {
	file, err := os.Open(filename)
	if err != nil {
		return nil, fmt.Errorf("failed to open image file: %w", err)
	}
	defer file.Close()

	// Decode image (auto-detects the format from the file header)
	img, format, err := image.Decode(file)
	if err != nil {
		return nil, fmt.Errorf("failed to decode image %s: %w", filename, err)
	}

	bounds := img.Bounds()
	width := bounds.Dx()
	height := bounds.Dy()
	pixels := make([]byte, 0, width*height*3)

	for y := 0; y < height; y++ {
		for x := 0; x < width; x++ {
			r, g, b, _ := img.At(x+bounds.Min.X, y+bounds.Min.Y).RGBA()
			// RGBA returns 16-bit channels
			pixels = append(pixels, uint8(r>>8), uint8(g>>8), uint8(b>>8))
		}
	}

	return &ImageData{
		Width:  width,
		Height: height,
		Format: format,
		Stride: 3 * width,
		Pixels: pixels,
	}, nil
}

// LoadImageTexture loads an image file as a texture. A file that cannot be
// read or decoded yields an empty texture, which renders as solid magenta.
func LoadImageTexture(filename string, logger core.Logger) *material.ImageTexture {
	if logger == nil {
		logger = core.NopLogger{}
	}

	data, err := LoadImage(filename)
	if err != nil {
		logger.Warnf("Could not load texture image %s, using fallback color: %v", filename, err)
		return &material.ImageTexture{}
	}

	logger.Debugf("Loaded %s texture %s (%dx%d)", data.Format, filename, data.Width, data.Height)
	return material.NewImageTextureWithStride(data.Width, data.Height, data.Stride, data.Pixels)
}
