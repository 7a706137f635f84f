package loaders

import (
	"bytes"
	"encoding/binary"
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/df07/go-pathtracer/pkg/core"
)

// binaryQuadPLY builds a binary unit square with two triangle faces,
// an extra per-face property and an unknown trailing element
func binaryQuadPLY(order binary.ByteOrder, formatName string) []byte {
	var buf bytes.Buffer
	buf.WriteString("ply\n")
	buf.WriteString("format " + formatName + " 1.0\n")
	buf.WriteString("comment made by a test\n")
	buf.WriteString("element vertex 4\n")
	buf.WriteString("property float x\n")
	buf.WriteString("property float y\n")
	buf.WriteString("property float z\n")
	buf.WriteString("property uchar red\n")
	buf.WriteString("element face 2\n")
	buf.WriteString("property list uchar int vertex_indices\n")
	buf.WriteString("property ushort flags\n")
	buf.WriteString("element edge 1\n")
	buf.WriteString("property int vertex1\n")
	buf.WriteString("property int vertex2\n")
	buf.WriteString("end_header\n")

	vertices := [][3]float32{{0, 0, 0}, {1, 0, 0}, {1, 1, 0}, {0, 1, 0}}
	for _, v := range vertices {
		binary.Write(&buf, order, v)
		binary.Write(&buf, order, uint8(200))
	}

	faces := [][3]int32{{0, 1, 2}, {0, 2, 3}}
	for _, f := range faces {
		binary.Write(&buf, order, uint8(3))
		binary.Write(&buf, order, f)
		binary.Write(&buf, order, uint16(7))
	}

	binary.Write(&buf, order, [2]int32{0, 1})
	return buf.Bytes()
}

func checkQuad(t *testing.T, data *PLYData) {
	t.Helper()

	wantVertices := []core.Vec3{
		core.NewVec3(0, 0, 0), core.NewVec3(1, 0, 0), core.NewVec3(1, 1, 0), core.NewVec3(0, 1, 0),
	}
	if len(data.Vertices) != len(wantVertices) {
		t.Fatalf("Expected %d vertices, got %d", len(wantVertices), len(data.Vertices))
	}
	for i, want := range wantVertices {
		if data.Vertices[i] != want {
			t.Errorf("Vertex %d = %v, want %v", i, data.Vertices[i], want)
		}
	}

	wantFaces := []int{0, 1, 2, 0, 2, 3}
	if len(data.Faces) != len(wantFaces) {
		t.Fatalf("Expected faces %v, got %v", wantFaces, data.Faces)
	}
	for i := range wantFaces {
		if data.Faces[i] != wantFaces[i] {
			t.Errorf("Faces = %v, want %v", data.Faces, wantFaces)
			break
		}
	}
	if data.TriangleCount() != 2 {
		t.Errorf("TriangleCount = %d, want 2", data.TriangleCount())
	}
}

func TestReadPLYBinary(t *testing.T) {
	tests := []struct {
		name   string
		order  binary.ByteOrder
		format string
	}{
		{"little endian", binary.LittleEndian, PLYFormatBinaryLittle},
		{"big endian", binary.BigEndian, PLYFormatBinaryBig},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			data, err := ReadPLY(bytes.NewReader(binaryQuadPLY(tt.order, tt.format)))
			if err != nil {
				t.Fatalf("ReadPLY failed: %v", err)
			}
			checkQuad(t, data)
			if len(data.TexCoords) != 0 {
				t.Errorf("Expected no texture coordinates, got %d", len(data.TexCoords))
			}
		})
	}
}

func TestReadPLYASCIIQuadFace(t *testing.T) {
	input := `ply
format ascii 1.0
element vertex 4
property float x
property float y
property float z
property float u
property float v
element face 1
property list uchar int vertex_indices
end_header
0 0 0 0 0
1 0 0 1 0
1 1 0 1 1
0 1 0 0 1
4 0 1 2 3
`
	data, err := ReadPLY(strings.NewReader(input))
	if err != nil {
		t.Fatalf("ReadPLY failed: %v", err)
	}
	checkQuad(t, data)

	if len(data.TexCoords) != 4 {
		t.Fatalf("Expected 4 texture coordinates, got %d", len(data.TexCoords))
	}
	if data.TexCoords[2] != core.NewVec2(1, 1) {
		t.Errorf("TexCoords[2] = %v, want (1,1)", data.TexCoords[2])
	}
}

func TestReadPLYErrors(t *testing.T) {
	tests := []struct {
		name  string
		input string
	}{
		{"missing magic", "plx\nformat ascii 1.0\nend_header\n"},
		{"missing end_header", "ply\nformat ascii 1.0\nelement vertex 1\n"},
		{"missing format", "ply\nelement vertex 0\nend_header\n"},
		{"unknown format", "ply\nformat binary_middle_endian 1.0\nend_header\n"},
		{"bad count", "ply\nformat ascii 1.0\nelement vertex many\nend_header\n"},
		{"property without element", "ply\nformat ascii 1.0\nproperty float x\nend_header\n"},
		{"unknown type", "ply\nformat ascii 1.0\nelement vertex 1\nproperty quad x\nend_header\n0\n"},
		{"truncated body", "ply\nformat ascii 1.0\nelement vertex 2\nproperty float x\nend_header\n1\n"},
		{"bad number", "ply\nformat ascii 1.0\nelement vertex 1\nproperty float x\nend_header\nabc\n"},
		{"index out of range", "ply\nformat ascii 1.0\nelement vertex 3\nproperty float x\nelement face 1\nproperty list uchar int vertex_indices\nend_header\n0\n1\n2\n3 0 1 5\n"},
		{"degenerate face", "ply\nformat ascii 1.0\nelement vertex 3\nproperty float x\nelement face 1\nproperty list uchar int vertex_indices\nend_header\n0\n1\n2\n2 0 1\n"},
		{"huge vertex count", "ply\nformat ascii 1.0\nelement vertex 9000000000000000000\nproperty float x\nend_header\n0\n"},
		{"huge face count", "ply\nformat ascii 1.0\nelement vertex 3\nproperty float x\nelement face 9000000000000000000\nproperty list uchar int vertex_indices\nend_header\n0\n1\n2\n3 0 1 2\n"},
		{"huge list length", "ply\nformat ascii 1.0\nelement vertex 3\nproperty float x\nelement face 1\nproperty list int int vertex_indices\nend_header\n0\n1\n2\n2000000000 0 1 2\n"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if _, err := ReadPLY(strings.NewReader(tt.input)); err == nil {
				t.Error("Expected error, got nil")
			}
		})
	}
}

func TestReadPLYErrorsAreClassified(t *testing.T) {
	_, err := ReadPLY(strings.NewReader("ply\nformat ascii 1.0\nelement vertex x\nend_header\n"))
	if !errors.Is(err, ErrInvalidPLY) {
		t.Errorf("Expected ErrInvalidPLY, got %v", err)
	}
}

func TestReadPLYListLengthIsBounded(t *testing.T) {
	tests := []struct {
		name  string
		input string
	}{
		{"face list", "ply\nformat ascii 1.0\nelement vertex 3\nproperty float x\nelement face 1\nproperty list int int vertex_indices\nend_header\n0\n1\n2\n2000000000 0 1 2\n"},
		{"negative face list", "ply\nformat ascii 1.0\nelement vertex 3\nproperty float x\nelement face 1\nproperty list int int vertex_indices\nend_header\n0\n1\n2\n-4 0 1 2\n"},
		{"skipped list", "ply\nformat ascii 1.0\nelement vertex 1\nproperty float x\nproperty list int float extra\nend_header\n0 2000000000 1\n"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := ReadPLY(strings.NewReader(tt.input))
			if !errors.Is(err, ErrInvalidPLY) {
				t.Errorf("Expected ErrInvalidPLY, got %v", err)
			}
		})
	}
}

func TestLoadPLY(t *testing.T) {
	path := filepath.Join(t.TempDir(), "quad.ply")
	if err := os.WriteFile(path, binaryQuadPLY(binary.LittleEndian, PLYFormatBinaryLittle), 0644); err != nil {
		t.Fatal(err)
	}

	data, err := LoadPLY(path)
	if err != nil {
		t.Fatalf("LoadPLY failed: %v", err)
	}
	checkQuad(t, data)

	if _, err := LoadPLY(filepath.Join(t.TempDir(), "missing.ply")); err == nil {
		t.Error("Expected error for missing file")
	}
}
