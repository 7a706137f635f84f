package config

// Overrides holds command-line values. Zero values leave the config alone.
type Overrides struct {
	Scene           string
	SceneFile       string
	AssetDir        string
	Width           int
	SamplesPerPixel int
	MaxDepth        int
	Seed            int64
	SeedSet         bool // Seed 0 is a valid override
	OutputPath      string
	OutputFormat    string
	LogLevel        string
	LogFile         string
}

// Apply applies CLI flag overrides to the config (highest priority).
func (c *Config) Apply(o Overrides) {
	if o.SceneFile != "" {
		c.Render.SceneFile = o.SceneFile
	}
	if o.Scene != "" {
		c.Render.Scene = o.Scene
		// An explicit built-in scene beats a scene file from the config file
		if o.SceneFile == "" {
			c.Render.SceneFile = ""
		}
	}
	if o.AssetDir != "" {
		c.Render.AssetDir = o.AssetDir
	}
	if o.Width > 0 {
		c.Render.Width = o.Width
	}
	if o.SamplesPerPixel > 0 {
		c.Render.SamplesPerPixel = o.SamplesPerPixel
	}
	if o.MaxDepth > 0 {
		c.Render.MaxDepth = o.MaxDepth
	}
	if o.SeedSet {
		c.Render.Seed = o.Seed
	}
	if o.OutputPath != "" {
		c.Output.Path = o.OutputPath
	}
	if o.OutputFormat != "" {
		c.Output.Format = o.OutputFormat
	}
	if o.LogLevel != "" {
		c.Logging.Level = o.LogLevel
	}
	if o.LogFile != "" {
		c.Logging.LogFile = o.LogFile
	}
}
