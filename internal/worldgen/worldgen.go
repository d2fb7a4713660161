// Package worldgen builds procedural heightmaps that wrap around the globe
// without a visible seam at the antimeridian.
package worldgen

import (
	"errors"
	"fmt"
	"math"

	"github.com/Faultbox/globe/pkg/globe"
)

// ErrInvalidParams is returned when Params cannot produce a heightmap.
var ErrInvalidParams = errors.New("invalid worldgen params")

// Params controls terrain generation.
type Params struct {
	Width, Height int
	Seed          int64

	Frequency   float64 // base frequency, in cycles per map height
	Octaves     int
	Lacunarity  float64
	Persistence float64

	// SeaLevel is the noise value in (0, 1) that maps to altitude 0.
	SeaLevel float64
	// MaxHeight bounds altitudes to [-MaxHeight, MaxHeight].
	MaxHeight int
}

// DefaultParams returns a 360x180 world, one cell per degree.
func DefaultParams() Params {
	return Params{
		Width:       360,
		Height:      180,
		Seed:        1,
		Frequency:   4,
		Octaves:     5,
		Lacunarity:  2,
		Persistence: 0.5,
		SeaLevel:    0.55,
		MaxHeight:   100,
	}
}

func (p Params) validate() error {
	switch {
	case p.Width <= 0 || p.Height <= 0:
		return fmt.Errorf("%w: size %dx%d", ErrInvalidParams, p.Width, p.Height)
	case p.Octaves <= 0:
		return fmt.Errorf("%w: octaves %d", ErrInvalidParams, p.Octaves)
	case p.SeaLevel <= 0 || p.SeaLevel >= 1:
		return fmt.Errorf("%w: sea level %g not in (0, 1)", ErrInvalidParams, p.SeaLevel)
	case p.MaxHeight < 0:
		return fmt.Errorf("%w: max height %d", ErrInvalidParams, p.MaxHeight)
	}
	return nil
}

// Generate returns a heightmap whose first and last columns are neighbours.
// The same Params always yield the same altitudes.
func Generate(p Params) (globe.Heightmap, error) {
	if err := p.validate(); err != nil {
		return globe.Heightmap{}, err
	}

	sn := newSimplex(p.Seed)
	w, h := float64(p.Width), float64(p.Height)
	alts := make([]int32, p.Width*p.Height)

	for row := 0; row < p.Height; row++ {
		y := float64(row) / h
		for col := 0; col < p.Width; col++ {
			x := float64(col) / h

			// Blend with the copy one period to the left so col W-1 meets col 0.
			u := float64(col) / w
			a := sn.fractal(x, y, p.Frequency, p.Octaves, p.Lacunarity, p.Persistence)
			b := sn.fractal(x-w/h, y, p.Frequency, p.Octaves, p.Lacunarity, p.Persistence)
			n := a*(1-u) + b*u

			alts[row*p.Width+col] = p.altitude(n)
		}
	}

	return globe.Heightmap{Width: p.Width, Height: p.Height, Altitudes: alts}, nil
}

// altitude maps noise in [0, 1] to [-MaxHeight, MaxHeight] with SeaLevel at 0.
func (p Params) altitude(n float64) int32 {
	var v float64
	if n >= p.SeaLevel {
		v = (n - p.SeaLevel) / (1 - p.SeaLevel)
	} else {
		v = (n - p.SeaLevel) / p.SeaLevel
	}
	return int32(math.Round(v * float64(p.MaxHeight)))
}
