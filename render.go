package main

import (
	"fmt"
	"io"

	"github.com/olekukonko/tablewriter"

	"github.com/df07/go-pathtracer/internal/config"
	"github.com/df07/go-pathtracer/pkg/core"
	"github.com/df07/go-pathtracer/pkg/renderer"
	"github.com/df07/go-pathtracer/pkg/scene"
)

// createScene builds the configured scene and applies the width, sample and
// depth overrides. Scene construction draws from sampler.
func createScene(cfg *config.Config, sampler core.Sampler, log core.Logger) (*scene.Scene, error) {
	opts := scene.Options{
		Sampler:  sampler,
		Logger:   log,
		AssetDir: cfg.Render.AssetDir,
	}

	var s *scene.Scene
	var err error
	if cfg.Render.SceneFile != "" {
		s, err = scene.LoadFile(cfg.Render.SceneFile, opts)
	} else {
		s, err = scene.Build(cfg.Render.Scene, opts)
	}
	if err != nil {
		return nil, err
	}

	if cfg.Render.Width > 0 {
		s.SetCameraConfig(renderer.MergeCameraConfig(s.CameraConfig, renderer.CameraConfig{Width: cfg.Render.Width}))
	}
	if cfg.Render.SamplesPerPixel > 0 {
		s.SamplingConfig.SamplesPerPixel = cfg.Render.SamplesPerPixel
	}
	if cfg.Render.MaxDepth > 0 {
		s.SamplingConfig.MaxDepth = cfg.Render.MaxDepth
	}
	return s, nil
}

// renderScene preprocesses the scene and traces every pixel
func renderScene(s *scene.Scene, sampler core.Sampler, log core.Logger) (*renderer.Frame, renderer.RenderStats, error) {
	if err := s.Preprocess(sampler, log); err != nil {
		return nil, renderer.RenderStats{}, err
	}

	rt := renderer.NewRaytracer(s, s.CameraConfig.Width, s.CameraConfig.Height())
	rt.SetSamplingConfig(s.SamplingConfig)
	rt.SetSampler(sampler)
	rt.SetLogger(log)

	frame, stats := rt.Render()
	stats.Primitives = s.GetPrimitiveCount()
	if s.BVH != nil {
		stats.BVH = s.BVH.Stats()
	}
	return frame, stats, nil
}

// writeOutput saves the frame to the configured path, or to stdout when the
// path is "-"
func writeOutput(cfg *config.Config, frame *renderer.Frame, stdout io.Writer) error {
	format := cfg.Output.Format
	if format == "" {
		format = renderer.FormatFromPath(cfg.Output.Path)
	}

	if cfg.Output.Path != "-" {
		return renderer.SaveFrame(cfg.Output.Path, format, frame)
	}

	switch format {
	case renderer.FormatPNG:
		return renderer.WritePNG(stdout, frame)
	case renderer.FormatPPM:
		return renderer.WritePPM(stdout, frame)
	default:
		return fmt.Errorf("unknown output format %q", format)
	}
}

// run renders the configured scene and writes the image
func run(cfg *config.Config, stdout io.Writer, log core.Logger) error {
	sampler := core.NewSeededSampler(cfg.Render.Seed)

	s, err := createScene(cfg, sampler, log)
	if err != nil {
		return err
	}
	log.Infof("Scene %s: %d objects, %d samples per pixel, max depth %d",
		s.Name, s.Objects.Len(), s.SamplingConfig.SamplesPerPixel, s.SamplingConfig.MaxDepth)

	frame, stats, err := renderScene(s, sampler, log)
	if err != nil {
		return err
	}

	if err := writeOutput(cfg, frame, stdout); err != nil {
		return fmt.Errorf("writing image: %w", err)
	}
	log.Infof("Render statistics:\n%s", stats.Table())
	return nil
}

// writeSceneList prints the built-in scenes as a table
func writeSceneList(w io.Writer) {
	table := tablewriter.NewWriter(w)
	table.SetAutoFormatHeaders(false)
	table.SetAutoWrapText(false)
	table.SetAlignment(tablewriter.ALIGN_LEFT)
	table.SetHeader([]string{"Scene", "Description"})
	for _, info := range scene.List() {
		table.Append([]string{info.Name, info.Description})
	}
	table.Render()
}
