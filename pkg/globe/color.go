package globe

import (
	"errors"
	"fmt"
	"sort"
	"strings"

	gmath "github.com/Faultbox/globe/pkg/math"
)

// ErrUnknownPalette is returned by PaletteByName.
var ErrUnknownPalette = errors.New("unknown palette")

// ColorFunc maps a normalised altitude t in [0, 1] to a color.
// Implementations must clamp t themselves and must be safe for concurrent
// use, since every render band calls the same function.
type ColorFunc func(t float32) RGB

// Named endpoint colors.
var (
	Blue  = RGB{R: 0, G: 0, B: 255}
	Green = RGB{R: 0, G: 255, B: 0}
)

// DefaultGradient goes from blue at sea level to green at MaxLandHeight.
var DefaultGradient = Gradient(Blue, Green)

// Gradient returns a two-stop linear gradient. Channels are interpolated in
// float32 and truncated.
func Gradient(from, to RGB) ColorFunc {
	return func(t float32) RGB {
		return lerpRGB(from, to, gmath.Clamp(t, 0, 1))
	}
}

func lerpRGB(a, b RGB, t float32) RGB {
	return RGB{
		R: lerpChannel(a.R, b.R, t),
		G: lerpChannel(a.G, b.G, t),
		B: lerpChannel(a.B, b.B, t),
	}
}

func lerpChannel(a, b uint8, t float32) uint8 {
	return uint8(gmath.Clamp(float32(a)*(1-t)+float32(b)*t, 0, 255))
}

// Stop is one control point of a Ramp.
type Stop struct {
	At    float32
	Color RGB
}

// Ramp returns a piecewise linear gradient through stops. Stops are sorted by
// At; t below the first stop or above the last takes that stop's color.
// A ramp with no stops is black.
func Ramp(stops ...Stop) ColorFunc {
	s := make([]Stop, len(stops))
	copy(s, stops)
	sort.SliceStable(s, func(i, j int) bool { return s[i].At < s[j].At })

	return func(t float32) RGB {
		if len(s) == 0 {
			return RGB{}
		}
		t = gmath.Clamp(t, 0, 1)
		if t <= s[0].At {
			return s[0].Color
		}
		for i := 1; i < len(s); i++ {
			if t > s[i].At {
				continue
			}
			lo, hi := s[i-1], s[i]
			span := hi.At - lo.At
			if span <= 0 {
				return hi.Color
			}
			return lerpRGB(lo.Color, hi.Color, (t-lo.At)/span)
		}
		return s[len(s)-1].Color
	}
}

// TerrainRamp is a coastline-to-snow ramp for maps whose MaxLandHeight is the
// highest peak.
var TerrainRamp = Ramp(
	Stop{0.00, RGB{R: 10, G: 40, B: 120}},
	Stop{0.02, RGB{R: 40, G: 110, B: 190}},
	Stop{0.04, RGB{R: 210, G: 200, B: 140}},
	Stop{0.20, RGB{R: 60, G: 150, B: 60}},
	Stop{0.55, RGB{R: 120, G: 100, B: 60}},
	Stop{0.85, RGB{R: 150, G: 140, B: 130}},
	Stop{1.00, RGB{R: 250, G: 250, B: 250}},
)

var palettes = map[string]ColorFunc{
	"gradient": DefaultGradient,
	"terrain":  TerrainRamp,
}

// PaletteNames lists the names accepted by PaletteByName.
func PaletteNames() []string {
	names := make([]string, 0, len(palettes))
	for name := range palettes {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// PaletteByName looks up a built-in color policy. An empty name selects
// "gradient".
func PaletteByName(name string) (ColorFunc, error) {
	if name == "" {
		return DefaultGradient, nil
	}
	fn, ok := palettes[strings.ToLower(name)]
	if !ok {
		return nil, fmt.Errorf("%w: %q (have %s)", ErrUnknownPalette, name, strings.Join(PaletteNames(), ", "))
	}
	return fn, nil
}
