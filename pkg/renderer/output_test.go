package renderer

import (
	"bytes"
	"image/png"
	"math"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/df07/go-pathtracer/pkg/core"
)

func TestQuantizeChannel(t *testing.T) {
	tests := []struct {
		name    string
		sum     float64
		samples int
		want    uint8
	}{
		{"black", 0, 1, 0},
		{"white clamps to 255", 1, 1, 255},
		{"hdr clamps to 255", 50, 1, 255},
		{"quarter gamma corrected", 0.25, 1, 128},
		{"averaged over samples", 1, 4, 128},
		{"negative is black", -0.5, 1, 0},
		{"nan is black", math.NaN(), 1, 0},
		{"zero samples uses sum", 0.25, 0, 128},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := QuantizeChannel(tt.sum, tt.samples); got != tt.want {
				t.Errorf("QuantizeChannel(%v, %d) = %d, want %d", tt.sum, tt.samples, got, tt.want)
			}
		})
	}
}

func TestWritePPM(t *testing.T) {
	frame := NewFrame(2, 2, 1)
	frame.Add(0, 0, core.NewVec3(1, 0, 0))
	frame.Add(1, 0, core.NewVec3(0, 0.25, 0))
	frame.Add(0, 1, core.NewVec3(0, 0, 0.5))
	frame.Add(0, 1, core.NewVec3(0, 0, 0.5))
	frame.Add(1, 1, core.NewVec3(0.04, 0.04, 0.04))

	var buf bytes.Buffer
	if err := WritePPM(&buf, frame); err != nil {
		t.Fatalf("WritePPM failed: %v", err)
	}

	want := "P3\n2 2\n255\n" +
		"255 0 0\n" +
		"0 128 0\n" +
		"0 0 255\n" +
		"51 51 51\n"
	if buf.String() != want {
		t.Errorf("PPM output mismatch\ngot:\n%s\nwant:\n%s", buf.String(), want)
	}
}

func TestWritePNGMatchesPPMQuantization(t *testing.T) {
	frame := NewFrame(3, 1, 4)
	frame.Add(0, 0, core.NewVec3(4, 0, 0))
	frame.Add(1, 0, core.NewVec3(1, 1, 1))
	frame.Add(2, 0, core.NewVec3(0, 0, 100))

	var buf bytes.Buffer
	if err := WritePNG(&buf, frame); err != nil {
		t.Fatalf("WritePNG failed: %v", err)
	}
	img, err := png.Decode(&buf)
	if err != nil {
		t.Fatalf("Decoding PNG failed: %v", err)
	}

	for x := 0; x < 3; x++ {
		r, g, b, a := img.At(x, 0).RGBA()
		wr, wg, wb := frame.RGB(x, 0)
		if uint8(r>>8) != wr || uint8(g>>8) != wg || uint8(b>>8) != wb || a != 0xffff {
			t.Errorf("Pixel %d = (%d,%d,%d,%d), want (%d,%d,%d,255)", x, r>>8, g>>8, b>>8, a>>8, wr, wg, wb)
		}
	}
}

func TestFormatFromPath(t *testing.T) {
	tests := map[string]string{
		"out.png":       FormatPNG,
		"OUT.PNG":       FormatPNG,
		"image.ppm":     FormatPPM,
		"noext":         FormatPPM,
		"dir.png/x.ppm": FormatPPM,
	}
	for path, want := range tests {
		if got := FormatFromPath(path); got != want {
			t.Errorf("FormatFromPath(%q) = %q, want %q", path, got, want)
		}
	}
}

func TestSaveFrame(t *testing.T) {
	dir := t.TempDir()
	frame := NewFrame(1, 1, 1)
	frame.Add(0, 0, core.NewVec3(1, 1, 1))

	ppmPath := filepath.Join(dir, "out.ppm")
	if err := SaveFrame(ppmPath, FormatPPM, frame); err != nil {
		t.Fatalf("SaveFrame ppm failed: %v", err)
	}
	data, err := os.ReadFile(ppmPath)
	if err != nil {
		t.Fatal(err)
	}
	if !strings.HasPrefix(string(data), "P3\n1 1\n255\n") {
		t.Errorf("Unexpected PPM header: %q", data)
	}

	pngPath := filepath.Join(dir, "out.png")
	if err := SaveFrame(pngPath, FormatPNG, frame); err != nil {
		t.Fatalf("SaveFrame png failed: %v", err)
	}

	if err := SaveFrame(filepath.Join(dir, "out.tga"), "tga", frame); err == nil {
		t.Error("Expected error for unknown format")
	}
	if err := SaveFrame(filepath.Join(dir, "missing", "out.ppm"), FormatPPM, frame); err == nil {
		t.Error("Expected error for missing directory")
	}
}
