package main

import (
	"bytes"
	"errors"
	"os"
	"path/filepath"
	"runtime"
	"strings"
	"testing"

	"github.com/df07/go-pathtracer/internal/config"
	"github.com/df07/go-pathtracer/pkg/core"
	"github.com/df07/go-pathtracer/pkg/renderer"
	"github.com/df07/go-pathtracer/pkg/scene"
)

func TestCreateScene(t *testing.T) {
	tests := []struct {
		name        string
		sceneName   string
		sceneFile   string
		expectError bool
	}{
		// Built-in scenes
		{"two-spheres scene", "two-spheres", "", false},
		{"random-spheres scene", "random-spheres", "", false},
		{"perlin scene", "perlin", "", false},
		{"earth scene", "earth", "", false},
		{"simple-light scene", "simple-light", "", false},
		{"cornell scene", "cornell", "", false},
		{"cornell-smoke scene", "cornell-smoke", "", false},
		{"final scene", "final", "", false},

		// Scene files
		{"yaml scene file", "", "scenes/cornell.yaml", false},

		// Invalid scenes
		{"unknown scene", "nonexistent", "", true},
		{"missing scene file", "", "scenes/nonexistent.yaml", true},
		{"empty scene name", "", "", true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := config.Default()
			cfg.Render.Scene = tt.sceneName
			cfg.Render.SceneFile = tt.sceneFile

			s, err := createScene(cfg, core.NewSeededSampler(42), core.NopLogger{})

			if tt.expectError {
				if err == nil {
					t.Errorf("Expected error for scene %q/%q, but got none", tt.sceneName, tt.sceneFile)
				}
				if s != nil {
					t.Errorf("Expected nil scene for invalid scene, got %v", s.Name)
				}
				return
			}

			if err != nil {
				t.Fatalf("Unexpected error: %v", err)
			}
			if s.CameraConfig.Width <= 0 {
				t.Errorf("Scene camera width should be positive, got %d", s.CameraConfig.Width)
			}
			if s.SamplingConfig.SamplesPerPixel <= 0 {
				t.Errorf("Scene samples per pixel should be positive, got %d", s.SamplingConfig.SamplesPerPixel)
			}
			if s.Objects.Len() == 0 {
				t.Error("Scene should contain objects")
			}
		})
	}
}

func TestCreateScene_UnknownSceneIsClassified(t *testing.T) {
	cfg := config.Default()
	cfg.Render.Scene = "nonexistent"

	_, err := createScene(cfg, core.NewSeededSampler(42), core.NopLogger{})
	if !errors.Is(err, scene.ErrUnknownScene) {
		t.Errorf("Expected ErrUnknownScene, got %v", err)
	}
}

func TestCreateScene_Overrides(t *testing.T) {
	cfg := config.Default()
	cfg.Render.Scene = "cornell"
	cfg.Render.Width = 64
	cfg.Render.SamplesPerPixel = 3
	cfg.Render.MaxDepth = 4

	s, err := createScene(cfg, core.NewSeededSampler(42), core.NopLogger{})
	if err != nil {
		t.Fatalf("Unexpected error: %v", err)
	}

	if s.CameraConfig.Width != 64 {
		t.Errorf("Expected width 64, got %d", s.CameraConfig.Width)
	}
	if s.Camera.Config().Width != 64 {
		t.Errorf("Camera should be rebuilt with width 64, got %d", s.Camera.Config().Width)
	}
	if s.SamplingConfig.SamplesPerPixel != 3 {
		t.Errorf("Expected 3 samples per pixel, got %d", s.SamplingConfig.SamplesPerPixel)
	}
	if s.SamplingConfig.MaxDepth != 4 {
		t.Errorf("Expected max depth 4, got %d", s.SamplingConfig.MaxDepth)
	}
	// Width must not disturb the rest of the camera
	if s.CameraConfig.VFov != 40 {
		t.Errorf("Expected the cornell vfov to survive, got %v", s.CameraConfig.VFov)
	}
}

func TestRenderScene_CountsPrimitivesInsideMeshes(t *testing.T) {
	dir := t.TempDir()
	ply := "ply\nformat ascii 1.0\nelement vertex 4\nproperty float x\nproperty float y\nproperty float z\n" +
		"element face 2\nproperty list uchar int vertex_indices\nend_header\n" +
		"0 0 -2\n1 0 -2\n1 1 -2\n0 1 -2\n3 0 1 2\n3 0 2 3\n"
	if err := os.WriteFile(filepath.Join(dir, "quad.ply"), []byte(ply), 0644); err != nil {
		t.Fatal(err)
	}
	sceneYAML := "materials:\n  m: {type: lambertian, color: [0.5, 0.5, 0.5]}\n" +
		"objects:\n  - {type: ply, path: quad.ply, material: m}\n" +
		"  - {type: sphere, center: [0, 0, -1], radius: 0.5, material: m}\n"
	path := filepath.Join(dir, "mesh.yaml")
	if err := os.WriteFile(path, []byte(sceneYAML), 0644); err != nil {
		t.Fatal(err)
	}

	cfg := config.Default()
	cfg.Render.SceneFile = path
	cfg.Render.Width = 4
	cfg.Render.SamplesPerPixel = 1
	cfg.Render.MaxDepth = 2
	sampler := core.NewSeededSampler(42)

	s, err := createScene(cfg, sampler, core.NopLogger{})
	if err != nil {
		t.Fatalf("createScene failed: %v", err)
	}
	_, stats, err := renderScene(s, sampler, core.NopLogger{})
	if err != nil {
		t.Fatalf("renderScene failed: %v", err)
	}

	if s.Objects.Len() != 2 {
		t.Errorf("Expected 2 top-level objects, got %d", s.Objects.Len())
	}
	// Two mesh triangles plus the sphere
	if stats.Primitives != 3 {
		t.Errorf("Expected 3 primitives, got %d", stats.Primitives)
	}
}

func smallConfig(t *testing.T) *config.Config {
	t.Helper()
	cfg := config.Default()
	cfg.Render.Scene = "two-spheres"
	cfg.Render.Width = 16
	cfg.Render.SamplesPerPixel = 2
	cfg.Render.MaxDepth = 5
	cfg.Output.Path = filepath.Join(t.TempDir(), "out.ppm")
	return cfg
}

func TestRun_WritesFile(t *testing.T) {
	cfg := smallConfig(t)

	if err := run(cfg, &bytes.Buffer{}, core.NopLogger{}); err != nil {
		t.Fatalf("run failed: %v", err)
	}

	data, err := os.ReadFile(cfg.Output.Path)
	if err != nil {
		t.Fatalf("Output file not written: %v", err)
	}
	// two-spheres is 16:9, so 16 wide gives 9 rows
	if !strings.HasPrefix(string(data), "P3\n16 9\n255\n") {
		t.Errorf("Unexpected PPM header: %q", firstLines(string(data), 3))
	}
	lines := strings.Split(strings.TrimSpace(string(data)), "\n")
	if len(lines) != 3+16*9 {
		t.Errorf("Expected %d lines, got %d", 3+16*9, len(lines))
	}
}

func TestRun_Deterministic(t *testing.T) {
	var outputs [2]string
	for i := range outputs {
		cfg := smallConfig(t)
		cfg.Output.Path = "-"

		var stdout bytes.Buffer
		if err := run(cfg, &stdout, core.NopLogger{}); err != nil {
			t.Fatalf("run failed: %v", err)
		}
		outputs[i] = stdout.String()
	}

	if outputs[0] != outputs[1] {
		t.Error("Same seed should produce identical images")
	}
}

func TestRun_Errors(t *testing.T) {
	tests := []struct {
		name   string
		modify func(cfg *config.Config)
	}{
		{"unknown scene", func(cfg *config.Config) { cfg.Render.Scene = "nonexistent" }},
		{"unwritable output", func(cfg *config.Config) {
			cfg.Output.Path = filepath.Join(cfg.Output.Path, "missing-dir", "out.ppm")
		}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := smallConfig(t)
			tt.modify(cfg)
			if err := run(cfg, &bytes.Buffer{}, core.NopLogger{}); err == nil {
				t.Error("Expected error, got none")
			}
		})
	}
}

func TestWriteOutput_Stdout(t *testing.T) {
	frame := renderer.NewFrame(2, 1, 1)
	frame.Add(0, 0, core.NewVec3(1, 1, 1))

	tests := []struct {
		name   string
		format string
		prefix string
	}{
		{"default is ppm", "", "P3\n2 1\n255\n"},
		{"explicit ppm", "ppm", "P3\n2 1\n255\n"},
		{"png", "png", "\x89PNG"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := config.Default()
			cfg.Output.Path = "-"
			cfg.Output.Format = tt.format

			var buf bytes.Buffer
			if err := writeOutput(cfg, frame, &buf); err != nil {
				t.Fatalf("writeOutput failed: %v", err)
			}
			if !strings.HasPrefix(buf.String(), tt.prefix) {
				t.Errorf("Expected output to start with %q, got %q", tt.prefix, firstLines(buf.String(), 3))
			}
		})
	}
}

func TestWriteOutput_FormatFromExtension(t *testing.T) {
	frame := renderer.NewFrame(1, 1, 1)
	cfg := config.Default()
	cfg.Output.Path = filepath.Join(t.TempDir(), "out.png")

	if err := writeOutput(cfg, frame, &bytes.Buffer{}); err != nil {
		t.Fatalf("writeOutput failed: %v", err)
	}
	data, err := os.ReadFile(cfg.Output.Path)
	if err != nil {
		t.Fatalf("Output file not written: %v", err)
	}
	if !bytes.HasPrefix(data, []byte("\x89PNG")) {
		t.Error("Expected a PNG file for a .png path")
	}
}

func TestWriteSceneList(t *testing.T) {
	var buf bytes.Buffer
	writeSceneList(&buf)

	out := buf.String()
	if !strings.Contains(out, "Description") {
		t.Error("Scene list should have a header")
	}
	for _, info := range scene.List() {
		if !strings.Contains(out, info.Name) {
			t.Errorf("Scene list missing %q", info.Name)
		}
	}
}

func TestApp_ScenesCommand(t *testing.T) {
	app := newApp()
	var buf bytes.Buffer
	app.Writer = &buf

	if err := app.Run([]string{"pathtracer", "scenes"}); err != nil {
		t.Fatalf("scenes command failed: %v", err)
	}
	if !strings.Contains(buf.String(), "cornell-smoke") {
		t.Errorf("Expected scene list output, got %q", buf.String())
	}
}

func TestApp_RenderCommand(t *testing.T) {
	t.Setenv("XDG_CONFIG_HOME", t.TempDir())
	out := filepath.Join(t.TempDir(), "render.ppm")

	app := newApp()
	app.Writer = &bytes.Buffer{}
	args := []string{"pathtracer", "render",
		"--scene", "two-spheres", "--width", "8", "--spp", "1", "--depth", "3", "--seed", "7", "--out", out}
	if err := app.Run(args); err != nil {
		t.Fatalf("render command failed: %v", err)
	}

	data, err := os.ReadFile(out)
	if err != nil {
		t.Fatalf("Output file not written: %v", err)
	}
	if !strings.HasPrefix(string(data), "P3\n8 ") {
		t.Errorf("Unexpected PPM header: %q", firstLines(string(data), 3))
	}
}

func TestApp_ConfigCommand(t *testing.T) {
	t.Setenv("XDG_CONFIG_HOME", t.TempDir())

	app := newApp()
	var buf bytes.Buffer
	app.Writer = &buf

	if err := app.Run([]string{"pathtracer", "config"}); err != nil {
		t.Fatalf("config command failed: %v", err)
	}
	for _, want := range []string{"scene: two-spheres", "seed: 42", "path: image.ppm"} {
		if !strings.Contains(buf.String(), want) {
			t.Errorf("Expected %q in config output, got:\n%s", want, buf.String())
		}
	}
}

func TestApp_ConfigCommandSave(t *testing.T) {
	if runtime.GOOS != "linux" {
		t.Skip("XDG_CONFIG_HOME only applies on Linux")
	}
	dir := t.TempDir()
	t.Setenv("XDG_CONFIG_HOME", dir)

	app := newApp()
	app.Writer = &bytes.Buffer{}
	if err := app.Run([]string{"pathtracer", "config", "--save"}); err != nil {
		t.Fatalf("config --save failed: %v", err)
	}

	cfg, err := config.Load(filepath.Join(dir, "pathtracer", config.FileName))
	if err != nil {
		t.Fatalf("Saved config should load: %v", err)
	}
	if cfg.Render.Scene != "two-spheres" {
		t.Errorf("Expected saved scene two-spheres, got %q", cfg.Render.Scene)
	}
}

func firstLines(s string, n int) string {
	lines := strings.SplitN(s, "\n", n+1)
	if len(lines) > n {
		lines = lines[:n]
	}
	return strings.Join(lines, "\n")
}
