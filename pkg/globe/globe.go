// Package globe renders an orthographic view of a rotated planet onto a
// caller-owned RGB pixel buffer.
//
// Every pixel inside the projected disc is traced back to a point on the unit
// sphere, rotated into the planet's own frame, converted to longitude and
// latitude, and looked up in an equirectangular heightmap. The altitude found
// there is normalised and turned into a color by a ColorFunc.
//
// Pixels outside the disc are never written. Callers that want a background
// must fill the buffer before rendering.
package globe

import (
	"errors"
	"fmt"
)

// Contract errors returned before any pixel is written.
var (
	ErrInvalidViewport  = errors.New("invalid viewport dimensions")
	ErrInvalidHeightmap = errors.New("invalid heightmap dimensions")
	ErrAltitudeLength   = errors.New("altitude count does not match heightmap dimensions")
	ErrBufferLength     = errors.New("pixel buffer length does not match viewport dimensions")
)

// RGB is a single 8-bit-per-channel output pixel.
type RGB struct {
	R, G, B uint8
}

// Viewport is the output image size in pixels.
type Viewport struct {
	Width  int
	Height int
}

// Validate checks that both dimensions are positive.
func (v Viewport) Validate() error {
	if v.Width <= 0 || v.Height <= 0 {
		return fmt.Errorf("%w: %dx%d", ErrInvalidViewport, v.Width, v.Height)
	}
	return nil
}

// Rotation is the viewing rotation in whole degrees. The given longitude and
// latitude end up at the center of the disc. Any range is accepted.
type Rotation struct {
	LonDeg int
	LatDeg int
}

// Heightmap is an equirectangular altitude grid addressed as
// Altitudes[row*Width+col]. Columns span longitude -180..180 and rows span
// latitude -90..90; with a zero rotation row 0 appears at the top of the disc.
type Heightmap struct {
	Width     int
	Height    int
	Altitudes []int32
}

// Validate checks dimensions and that the altitude slice matches them.
func (h Heightmap) Validate() error {
	if h.Width <= 0 || h.Height <= 0 {
		return fmt.Errorf("%w: %dx%d", ErrInvalidHeightmap, h.Width, h.Height)
	}
	if len(h.Altitudes) != h.Width*h.Height {
		return fmt.Errorf("%w: have %d, want %dx%d=%d",
			ErrAltitudeLength, len(h.Altitudes), h.Width, h.Height, h.Width*h.Height)
	}
	return nil
}

// ColorMap turns altitudes into colors. Altitudes are divided by
// MaxLandHeight and clamped to [0, 1] before Color is applied. A zero
// MaxLandHeight maps every altitude to 0. A nil Color uses DefaultGradient.
type ColorMap struct {
	MaxLandHeight int
	Color         ColorFunc
}

// Normalize maps an altitude to [0, 1].
func (c ColorMap) Normalize(altitude int32) float32 {
	if c.MaxLandHeight == 0 {
		return 0
	}
	t := float32(altitude) / float32(c.MaxLandHeight)
	if t < 0 {
		return 0
	}
	if t > 1 {
		return 1
	}
	return t
}

// Shade returns the color for an altitude.
func (c ColorMap) Shade(altitude int32) RGB {
	fn := c.Color
	if fn == nil {
		fn = DefaultGradient
	}
	return fn(c.Normalize(altitude))
}

// PixelBuffer is a caller-owned row-major RGB image.
type PixelBuffer struct {
	Width  int
	Height int
	Pix    []RGB
}

// NewPixelBuffer allocates a zeroed (black) buffer.
func NewPixelBuffer(width, height int) *PixelBuffer {
	if width < 0 {
		width = 0
	}
	if height < 0 {
		height = 0
	}
	return &PixelBuffer{
		Width:  width,
		Height: height,
		Pix:    make([]RGB, width*height),
	}
}

// Validate checks that Pix matches the declared dimensions.
func (b *PixelBuffer) Validate() error {
	if b.Width <= 0 || b.Height <= 0 {
		return fmt.Errorf("%w: %dx%d", ErrInvalidViewport, b.Width, b.Height)
	}
	if len(b.Pix) != b.Width*b.Height {
		return fmt.Errorf("%w: have %d, want %dx%d=%d",
			ErrBufferLength, len(b.Pix), b.Width, b.Height, b.Width*b.Height)
	}
	return nil
}

// Fill sets every pixel to c.
func (b *PixelBuffer) Fill(c RGB) {
	for i := range b.Pix {
		b.Pix[i] = c
	}
}

// At returns the pixel at (x, y). Out-of-range coordinates return black.
func (b *PixelBuffer) At(x, y int) RGB {
	if x < 0 || y < 0 || x >= b.Width || y >= b.Height {
		return RGB{}
	}
	return b.Pix[y*b.Width+x]
}
