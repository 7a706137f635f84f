package config

import (
	"fmt"
	"os"
	"path/filepath"

	"gopkg.in/yaml.v3"
)

// FileName is the config file searched for when no path is given
const FileName = "pathtracer.yaml"

// Load overlays a YAML file on the defaults. An explicit path must exist.
// Without one the working directory and then ConfigDir are searched, and
// finding nothing leaves the defaults. Flags go on top with Apply.
func Load(path string) (*Config, error) {
	cfg := Default()
	if path == "" {
		if path = searchConfigFile(); path == "" {
			return cfg, nil
		}
	}

	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("loading config from %s: %w", path, err)
	}
	// Keys absent from the file keep their defaults
	if err := yaml.Unmarshal(data, cfg); err != nil {
		return nil, fmt.Errorf("parsing config %s: %w", path, err)
	}
	cfg.Source = path
	return cfg, nil
}

func searchConfigFile() string {
	for _, dir := range []string{".", ConfigDir()} {
		path := filepath.Join(dir, FileName)
		if _, err := os.Stat(path); err == nil {
			return path
		}
	}
	return ""
}

// ConfigDir is the per-user directory Save writes to: $XDG_CONFIG_HOME or
// ~/.config on Linux, Application Support on macOS and %AppData% on Windows.
func ConfigDir() string {
	dir, err := os.UserConfigDir()
	if err != nil {
		// No home directory, as in some containers
		return "."
	}
	return filepath.Join(dir, "pathtracer")
}
