package commands

import (
	"errors"
	"fmt"
	"os"
	"strconv"
	"strings"

	"github.com/agiangrant/arbor/layout"
	"github.com/pelletier/go-toml/v2"
)

// ConfigFile is the project file read from the working directory.
const ConfigFile = "arbor.toml"

// ProjectConfig represents the arbor.toml configuration file
type ProjectConfig struct {
	Render RenderConfig `toml:"render"`
	Log    LogConfig    `toml:"log"`
}

type RenderConfig struct {
	// Output directory for PNGs
	OutputDir string `toml:"output_dir"`
	// Viewport sizes rendered when -sizes is not given, as "WxH"
	Sizes []string `toml:"sizes"`
	// Default-property table applied to every scene (TOML or YAML)
	Defaults string `toml:"defaults"`
	// Surface color behind the root widget, as a hex string
	Clear string `toml:"clear"`
}

type LogConfig struct {
	// debug, info, warn or error
	Level string `toml:"level"`
}

// DefaultConfig returns a sensible default configuration
func DefaultConfig() ProjectConfig {
	return ProjectConfig{
		Render: RenderConfig{
			OutputDir: "out",
		},
		Log: LogConfig{
			Level: "warn",
		},
	}
}

// LoadConfig loads the project configuration from path.
// If the file doesn't exist, returns default config
func LoadConfig(path string) (ProjectConfig, error) {
	config := DefaultConfig()

	data, err := os.ReadFile(path)
	if errors.Is(err, os.ErrNotExist) {
		return config, nil
	}
	if err != nil {
		return config, fmt.Errorf("failed to read %s: %w", path, err)
	}

	if err := toml.Unmarshal(data, &config); err != nil {
		return config, fmt.Errorf("failed to parse %s: %w", path, err)
	}

	// Apply defaults for empty values
	if config.Render.OutputDir == "" {
		config.Render.OutputDir = "out"
	}
	if _, err := parseSizes(config.Render.Sizes); err != nil {
		return config, fmt.Errorf("%s: render.sizes: %w", path, err)
	}

	return config, nil
}

// SaveConfig saves the configuration to path
func SaveConfig(path string, config ProjectConfig) error {
	data, err := toml.Marshal(config)
	if err != nil {
		return fmt.Errorf("failed to marshal config: %w", err)
	}

	if err := os.WriteFile(path, data, 0644); err != nil {
		return fmt.Errorf("failed to write %s: %w", path, err)
	}

	return nil
}

// parseSize reads "WxH" into a size.
func parseSize(s string) (layout.Size, error) {
	w, h, ok := strings.Cut(strings.ToLower(strings.TrimSpace(s)), "x")
	if !ok {
		return layout.Size{}, fmt.Errorf("bad size %q, want WxH", s)
	}
	width, err := strconv.ParseFloat(w, 64)
	if err != nil || width <= 0 {
		return layout.Size{}, fmt.Errorf("bad width in %q", s)
	}
	height, err := strconv.ParseFloat(h, 64)
	if err != nil || height <= 0 {
		return layout.Size{}, fmt.Errorf("bad height in %q", s)
	}
	return layout.Sz(width, height), nil
}

func parseSizes(list []string) ([]layout.Size, error) {
	sizes := make([]layout.Size, 0, len(list))
	for _, s := range list {
		if strings.TrimSpace(s) == "" {
			continue
		}
		size, err := parseSize(s)
		if err != nil {
			return nil, err
		}
		sizes = append(sizes, size)
	}
	return sizes, nil
}
