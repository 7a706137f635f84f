package main

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/urfave/cli"
	"go.uber.org/zap"
	"gopkg.in/yaml.v3"

	"github.com/df07/go-pathtracer/internal/config"
	"github.com/df07/go-pathtracer/internal/logger"
)

func main() {
	// Console logger until the config picks the real level and file
	if err := logger.Init("info", ""); err != nil {
		fmt.Fprintf(os.Stderr, "Logger error: %v\n", err)
		os.Exit(1)
	}

	app := newApp()
	if err := app.Run(os.Args); err != nil {
		logger.Error("pathtracer failed", zap.Error(err))
		logger.Sync()
		os.Exit(1)
	}
}

func newApp() *cli.App {
	app := cli.NewApp()
	app.Name = "pathtracer"
	app.Usage = "render scenes using offline path tracing"
	app.Version = "0.1.0"
	app.Flags = []cli.Flag{
		cli.StringFlag{
			Name:  "config, c",
			Usage: "config file (default: ./pathtracer.yaml, then the user config dir)",
		},
		cli.BoolFlag{
			Name:  "v",
			Usage: "enable verbose logging",
		},
		cli.BoolFlag{
			Name:  "vv",
			Usage: "enable even more verbose logging",
		},
		cli.StringFlag{
			Name:  "log-file",
			Usage: "also write logs to this rotating file",
		},
	}
	app.Commands = []cli.Command{
		{
			Name:  "render",
			Usage: "render a scene to an image",
			Description: `
Render a built-in scene or a YAML scene description with a single-threaded
path tracer. Flags override values from the config file; with a fixed seed
the output is bit-for-bit reproducible.`,
			Flags: []cli.Flag{
				cli.StringFlag{
					Name:  "scene, s",
					Usage: "built-in scene name (see the scenes command)",
				},
				cli.StringFlag{
					Name:  "scene-file, f",
					Usage: "YAML scene description",
				},
				cli.StringFlag{
					Name:  "asset-dir",
					Usage: "directory holding texture images",
				},
				cli.IntFlag{
					Name:  "width",
					Usage: "image width, the height follows the camera aspect ratio",
				},
				cli.IntFlag{
					Name:  "spp",
					Usage: "samples per pixel",
				},
				cli.IntFlag{
					Name:  "depth",
					Usage: "maximum ray bounce depth",
				},
				cli.Int64Flag{
					Name:  "seed",
					Usage: "random seed",
				},
				cli.StringFlag{
					Name:  "out, o",
					Usage: "image filename, - writes to stdout",
				},
				cli.StringFlag{
					Name:  "format",
					Usage: "ppm or png (default: from the output extension)",
				},
			},
			Action: renderCommand,
		},
		{
			Name:   "scenes",
			Usage:  "list built-in scenes",
			Action: listScenes,
		},
		{
			Name:  "config",
			Usage: "print the effective config as YAML",
			Flags: []cli.Flag{
				cli.BoolFlag{
					Name:  "save",
					Usage: "write it to the user config dir instead",
				},
			},
			Action: configCommand,
		},
	}
	return app
}

// overrides collects the flag values that take priority over the config file
func overrides(ctx *cli.Context) config.Overrides {
	o := config.Overrides{
		Scene:           ctx.String("scene"),
		SceneFile:       ctx.String("scene-file"),
		AssetDir:        ctx.String("asset-dir"),
		Width:           ctx.Int("width"),
		SamplesPerPixel: ctx.Int("spp"),
		MaxDepth:        ctx.Int("depth"),
		Seed:            ctx.Int64("seed"),
		SeedSet:         ctx.IsSet("seed"),
		OutputPath:      ctx.String("out"),
		OutputFormat:    ctx.String("format"),
		LogFile:         ctx.GlobalString("log-file"),
	}
	if ctx.GlobalBool("v") {
		o.LogLevel = "info"
	}
	if ctx.GlobalBool("vv") {
		o.LogLevel = "debug"
	}
	return o
}

func renderCommand(ctx *cli.Context) error {
	cfg, err := config.Load(ctx.GlobalString("config"))
	if err != nil {
		return err
	}
	cfg.Apply(overrides(ctx))
	if err := cfg.Validate(); err != nil {
		return err
	}

	if err := logger.Init(cfg.Logging.Level, cfg.Logging.LogFile); err != nil {
		return fmt.Errorf("initializing logger: %w", err)
	}
	defer logger.Sync()
	if cfg.Source != "" {
		logger.Debug("loaded config", zap.String("path", cfg.Source))
	}

	if err := run(cfg, ctx.App.Writer, logger.Sugar); err != nil {
		return err
	}
	if cfg.Output.Path != "-" {
		logger.Info("saved image", zap.String("path", cfg.Output.Path))
	}
	return nil
}

func listScenes(ctx *cli.Context) error {
	writeSceneList(ctx.App.Writer)
	return nil
}

func configCommand(ctx *cli.Context) error {
	cfg, err := config.Load(ctx.GlobalString("config"))
	if err != nil {
		return err
	}

	if ctx.Bool("save") {
		if cfg.Source != "" {
			logger.Warn("saving a copy of a loaded config", zap.String("source", cfg.Source))
		}
		if err := cfg.Save(); err != nil {
			return fmt.Errorf("saving config: %w", err)
		}
		logger.Info("saved config", zap.String("path", filepath.Join(config.ConfigDir(), config.FileName)))
		return nil
	}

	enc := yaml.NewEncoder(ctx.App.Writer)
	enc.SetIndent(2)
	if err := enc.Encode(cfg); err != nil {
		return err
	}
	return enc.Close()
}
