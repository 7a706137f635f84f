package renderer

import (
	"bufio"
	"fmt"
	"image/png"
	"io"
	"os"
	"strings"
)

// Output formats
const (
	FormatPPM = "ppm"
	FormatPNG = "png"
)

// WritePPM encodes the frame as a plain-text P3 image, top row first
func WritePPM(w io.Writer, f *Frame) error {
	bw := bufio.NewWriter(w)
	if _, err := fmt.Fprintf(bw, "P3\n%d %d\n255\n", f.Width, f.Height); err != nil {
		return err
	}
	for y := 0; y < f.Height; y++ {
		for x := 0; x < f.Width; x++ {
			r, g, b := f.RGB(x, y)
			if _, err := fmt.Fprintf(bw, "%d %d %d\n", r, g, b); err != nil {
				return err
			}
		}
	}
	return bw.Flush()
}

// WritePNG encodes the frame as PNG using the same quantization as WritePPM
func WritePNG(w io.Writer, f *Frame) error {
	return png.Encode(w, f.Image())
}

// FormatFromPath picks an output format from the file extension, defaulting to PPM
func FormatFromPath(path string) string {
	if strings.HasSuffix(strings.ToLower(path), ".png") {
		return FormatPNG
	}
	return FormatPPM
}

// SaveFrame writes the frame to path in the given format
func SaveFrame(path, format string, f *Frame) error {
	file, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("creating %s: %w", path, err)
	}

	switch format {
	case FormatPNG:
		err = WritePNG(file, f)
	case FormatPPM, "":
		err = WritePPM(file, f)
	default:
		err = fmt.Errorf("unknown output format %q", format)
	}
	if err != nil {
		file.Close()
		return fmt.Errorf("writing %s: %w", path, err)
	}
	return file.Close()
}
