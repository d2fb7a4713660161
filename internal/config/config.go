// Package config handles globe configuration loading and management.
package config

import (
	"errors"
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/Faultbox/globe/pkg/globe"
)

// ErrInvalid is wrapped by every Validate failure.
var ErrInvalid = errors.New("invalid config")

// Config holds all settings.
type Config struct {
	Render  RenderConfig  `yaml:"render"`
	World   WorldConfig   `yaml:"world"`
	Output  OutputConfig  `yaml:"output"`
	Viewer  ViewerConfig  `yaml:"viewer"`
	Server  ServerConfig  `yaml:"server"`
	Logging LoggingConfig `yaml:"logging"`
}

// RenderConfig holds view and rasterizer settings.
type RenderConfig struct {
	Width      int    `yaml:"width"`
	Height     int    `yaml:"height"`
	LonDeg     int    `yaml:"lon"`
	LatDeg     int    `yaml:"lat"`
	Workers    int    `yaml:"workers"` // 0 = all CPUs
	Palette    string `yaml:"palette"`
	Background string `yaml:"background"` // "r,g,b" or "#rrggbb"
}

// WorldConfig selects the heightmap and how altitudes are interpreted.
type WorldConfig struct {
	Path          string         `yaml:"path"` // empty = generated world
	MaxLandHeight int            `yaml:"max_land_height"`
	GATScale      float32        `yaml:"gat_scale"`
	ImageMax      float32        `yaml:"image_max"`
	Generate      GenerateConfig `yaml:"generate"`
}

// GenerateConfig holds procedural world settings.
type GenerateConfig struct {
	Width       int     `yaml:"width"`
	Height      int     `yaml:"height"`
	Seed        int64   `yaml:"seed"`
	Frequency   float64 `yaml:"frequency"`
	Octaves     int     `yaml:"octaves"`
	Lacunarity  float64 `yaml:"lacunarity"`
	Persistence float64 `yaml:"persistence"`
	SeaLevel    float64 `yaml:"sea_level"`
	MaxHeight   int     `yaml:"max_height"`
}

// OutputConfig holds image export settings.
type OutputConfig struct {
	Path  string `yaml:"path"`
	Scale int    `yaml:"scale"`
}

// ViewerConfig holds interactive window settings.
type ViewerConfig struct {
	Title      string  `yaml:"title"`
	StepDeg    int     `yaml:"step_deg"`
	SpinDegSec float64 `yaml:"spin_deg_per_sec"`
	Fullscreen bool    `yaml:"fullscreen"`
	VSync      bool    `yaml:"vsync"`

	ScreenshotDir string `yaml:"screenshot_dir"`
}

// ServerConfig holds SSH server settings.
type ServerConfig struct {
	Addr        string        `yaml:"addr"`
	HostKey     string        `yaml:"host_key"`
	FrameRate   int           `yaml:"frame_rate"`
	SpinDeg     int           `yaml:"spin_deg"`
	StepDeg     int           `yaml:"step_deg"`
	IdleTimeout time.Duration `yaml:"idle_timeout"`
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
			Width:      640,
			Height:     480,
			Palette:    "gradient",
			Background: "0,0,0",
		},
		World: WorldConfig{
			MaxLandHeight: 100,
			GATScale:      1,
			ImageMax:      255,
			Generate: GenerateConfig{
				Width:       360,
				Height:      180,
				Seed:        1,
				Frequency:   4,
				Octaves:     5,
				Lacunarity:  2,
				Persistence: 0.5,
				SeaLevel:    0.55,
				MaxHeight:   100,
			},
		},
		Output: OutputConfig{
			Path:  "globe.png",
			Scale: 1,
		},
		Viewer: ViewerConfig{
			Title:      "globe",
			StepDeg:    5,
			SpinDegSec: 0,
			Fullscreen: false,
			VSync:      true,

			ScreenshotDir: "screenshots",
		},
		Server: ServerConfig{
			Addr:        ":2222",
			HostKey:     "",
			FrameRate:   10,
			SpinDeg:     2,
			StepDeg:     5,
			IdleTimeout: 30 * time.Minute,
		},
		Logging: LoggingConfig{
			Level:   "info",
			LogFile: "",
		},
	}
}

// Validate reports the first setting that cannot be used.
func (c *Config) Validate() error {
	switch {
	case c.Render.Width <= 0 || c.Render.Height <= 0:
		return fmt.Errorf("%w: render size %dx%d", ErrInvalid, c.Render.Width, c.Render.Height)
	case c.Render.Workers < 0:
		return fmt.Errorf("%w: render.workers %d", ErrInvalid, c.Render.Workers)
	case c.Output.Scale < 1:
		return fmt.Errorf("%w: output.scale %d", ErrInvalid, c.Output.Scale)
	case c.World.Path == "" && (c.World.Generate.Width <= 0 || c.World.Generate.Height <= 0):
		return fmt.Errorf("%w: world.generate size %dx%d", ErrInvalid, c.World.Generate.Width, c.World.Generate.Height)
	case c.Server.FrameRate <= 0:
		return fmt.Errorf("%w: server.frame_rate %d", ErrInvalid, c.Server.FrameRate)
	}
	if _, err := globe.PaletteByName(c.Render.Palette); err != nil {
		return fmt.Errorf("%w: %v", ErrInvalid, err)
	}
	if _, err := ParseRGB(c.Render.Background); err != nil {
		return fmt.Errorf("%w: render.background: %v", ErrInvalid, err)
	}
	return nil
}

// ColorMap builds the kernel color settings from the config.
func (c *Config) ColorMap() (globe.ColorMap, error) {
	fn, err := globe.PaletteByName(c.Render.Palette)
	if err != nil {
		return globe.ColorMap{}, err
	}
	return globe.ColorMap{MaxLandHeight: c.World.MaxLandHeight, Color: fn}, nil
}

// ParseRGB parses "r,g,b" (decimal) or "#rrggbb".
func ParseRGB(s string) (globe.RGB, error) {
	s = strings.TrimSpace(s)
	if s == "" {
		return globe.RGB{}, nil
	}

	if strings.HasPrefix(s, "#") {
		if len(s) != 7 {
			return globe.RGB{}, fmt.Errorf("bad hex color %q", s)
		}
		v, err := strconv.ParseUint(s[1:], 16, 32)
		if err != nil {
			return globe.RGB{}, fmt.Errorf("bad hex color %q: %w", s, err)
		}
		return globe.RGB{R: uint8(v >> 16), G: uint8(v >> 8), B: uint8(v)}, nil
	}

	parts := strings.Split(s, ",")
	if len(parts) != 3 {
		return globe.RGB{}, fmt.Errorf("bad color %q: want r,g,b", s)
	}
	var ch [3]uint8
	for i, p := range parts {
		v, err := strconv.ParseUint(strings.TrimSpace(p), 10, 8)
		if err != nil {
			return globe.RGB{}, fmt.Errorf("bad color %q: %w", s, err)
		}
		ch[i] = uint8(v)
	}
	return globe.RGB{R: ch[0], G: ch[1], B: ch[2]}, nil
}
