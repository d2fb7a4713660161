package config

import (
	"github.com/Faultbox/globe/internal/worldgen"
	"github.com/Faultbox/globe/pkg/formats"
	"github.com/Faultbox/globe/pkg/globe"
)

// GenerateParams converts the generator section to worldgen parameters.
func (c *Config) GenerateParams() worldgen.Params {
	g := c.World.Generate
	return worldgen.Params{
		Width:       g.Width,
		Height:      g.Height,
		Seed:        g.Seed,
		Frequency:   g.Frequency,
		Octaves:     g.Octaves,
		Lacunarity:  g.Lacunarity,
		Persistence: g.Persistence,
		SeaLevel:    g.SeaLevel,
		MaxHeight:   g.MaxHeight,
	}
}

// LoadOptions returns how heightmap files are converted to altitudes.
func (c *Config) LoadOptions() formats.LoadOptions {
	return formats.LoadOptions{GATScale: c.World.GATScale, ImageMax: c.World.ImageMax}
}

// LoadWorld reads World.Path, or generates a world when no path is set.
func (c *Config) LoadWorld() (globe.Heightmap, error) {
	if c.World.Path == "" {
		return worldgen.Generate(c.GenerateParams())
	}
	return formats.LoadHeightmap(c.World.Path, c.LoadOptions())
}
