package formats

import (
	"errors"
	"fmt"
	"image"
	"image/color"
	_ "image/png" // register PNG decoder
	"io"
	"math"

	_ "golang.org/x/image/tiff" // register TIFF decoder

	"github.com/Faultbox/globe/pkg/globe"
)

// ErrEmptyImage is returned for images with no pixels.
var ErrEmptyImage = errors.New("image has no pixels")

// DecodeImageHeightmap reads a PNG or TIFF image as a heightmap. Each pixel is
// converted to 16-bit luminance and mapped to [0, scale], so a 16-bit
// grayscale DEM keeps its full precision.
func DecodeImageHeightmap(r io.Reader, scale float32) (globe.Heightmap, error) {
	img, format, err := image.Decode(r)
	if err != nil {
		return globe.Heightmap{}, fmt.Errorf("decoding image: %w", err)
	}
	hm := ImageHeightmap(img, scale)
	if len(hm.Altitudes) == 0 {
		return globe.Heightmap{}, fmt.Errorf("%w: %s", ErrEmptyImage, format)
	}
	return hm, nil
}

// ImageHeightmap samples an already decoded image. Image row 0 becomes
// heightmap row 0.
func ImageHeightmap(img image.Image, scale float32) globe.Heightmap {
	b := img.Bounds()
	w, h := b.Dx(), b.Dy()
	alts := make([]int32, w*h)
	for y := 0; y < h; y++ {
		for x := 0; x < w; x++ {
			g := color.Gray16Model.Convert(img.At(b.Min.X+x, b.Min.Y+y)).(color.Gray16)
			alts[y*w+x] = int32(math.Round(float64(g.Y) * float64(scale) / 0xffff))
		}
	}
	return globe.Heightmap{Width: w, Height: h, Altitudes: alts}
}
