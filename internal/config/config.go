// Package config handles renderer configuration loading and management.
package config

import (
	"errors"
	"fmt"
)

// ErrInvalidConfig is returned by Validate
var ErrInvalidConfig = errors.New("invalid config")

// Config holds all renderer settings.
type Config struct {
	Render  RenderConfig  `yaml:"render"`
	Output  OutputConfig  `yaml:"output"`
	Logging LoggingConfig `yaml:"logging"`

	// Source is the file the config was read from, empty for defaults only.
	Source string `yaml:"-"`
}

// RenderConfig selects the scene and sampling settings. Zero values for
// width, samples and depth keep the scene's own settings.
type RenderConfig struct {
	Scene           string `yaml:"scene"`      // Built-in scene name
	SceneFile       string `yaml:"scene_file"` // YAML scene description, takes priority over Scene
	AssetDir        string `yaml:"asset_dir"`  // Directory with texture images for built-in scenes
	Width           int    `yaml:"width"`
	SamplesPerPixel int    `yaml:"samples_per_pixel"`
	MaxDepth        int    `yaml:"max_depth"`
	Seed            int64  `yaml:"seed"`
}

// OutputConfig holds image output settings.
type OutputConfig struct {
	Path   string `yaml:"path"`   // "-" writes to stdout
	Format string `yaml:"format"` // ppm or png; empty picks from the path extension
}

// LoggingConfig holds logging settings.
type LoggingConfig struct {
	Level   string `yaml:"level"`
	LogFile string `yaml:"log_file"`
}

// Default returns a Config with sensible default values.
func Default() *Config {
	return &Config{
		Render: RenderConfig{
			Scene: "two-spheres",
			Seed:  42,
		},
		Output: OutputConfig{
			Path: "image.ppm",
		},
		Logging: LoggingConfig{
			Level: "info",
		},
	}
}

// Validate checks value ranges and enumerations.
func (c *Config) Validate() error {
	if c.Render.Scene == "" && c.Render.SceneFile == "" {
		return fmt.Errorf("%w: no scene or scene file", ErrInvalidConfig)
	}
	if c.Render.Width < 0 || c.Render.SamplesPerPixel < 0 || c.Render.MaxDepth < 0 {
		return fmt.Errorf("%w: width, samples and depth must not be negative", ErrInvalidConfig)
	}
	switch c.Output.Format {
	case "", "ppm", "png":
	default:
		return fmt.Errorf("%w: unknown output format %q", ErrInvalidConfig, c.Output.Format)
	}
	if c.Output.Path == "" {
		return fmt.Errorf("%w: empty output path", ErrInvalidConfig)
	}
	switch c.Logging.Level {
	case "debug", "info", "warn", "error":
	default:
		return fmt.Errorf("%w: unknown log level %q", ErrInvalidConfig, c.Logging.Level)
	}
	return nil
}
