// Package export turns rendered pixel buffers into image files.
package export

import (
	"errors"
	"fmt"
	"image"
	"image/jpeg"
	"image/png"
	"io"
	"os"
	"path/filepath"
	"strings"

	"golang.org/x/image/bmp"
	"golang.org/x/image/draw"
	"golang.org/x/image/tiff"

	"github.com/Faultbox/globe/pkg/globe"
)

var (
	ErrUnknownFormat = errors.New("unknown image format")
	ErrInvalidScale  = errors.New("scale factor must be at least 1")
)

// Format is an output image encoding.
type Format int

const (
	PNG Format = iota
	BMP
	TIFF
	JPEG
)

func (f Format) String() string {
	switch f {
	case PNG:
		return "png"
	case BMP:
		return "bmp"
	case TIFF:
		return "tiff"
	case JPEG:
		return "jpeg"
	default:
		return fmt.Sprintf("Format(%d)", int(f))
	}
}

// jpegQuality is used for lossy output.
const jpegQuality = 92

// FormatFromPath picks a format from the file extension.
func FormatFromPath(path string) (Format, error) {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".png":
		return PNG, nil
	case ".bmp":
		return BMP, nil
	case ".tif", ".tiff":
		return TIFF, nil
	case ".jpg", ".jpeg":
		return JPEG, nil
	default:
		return 0, fmt.Errorf("%w: %q", ErrUnknownFormat, filepath.Ext(path))
	}
}

// ToImage copies buf into an opaque RGBA image.
func ToImage(buf *globe.PixelBuffer) *image.RGBA {
	img := image.NewRGBA(image.Rect(0, 0, buf.Width, buf.Height))
	for i, c := range buf.Pix {
		o := i * 4
		img.Pix[o] = c.R
		img.Pix[o+1] = c.G
		img.Pix[o+2] = c.B
		img.Pix[o+3] = 0xff
	}
	return img
}

// Scale enlarges img by an integer factor with nearest-neighbour sampling,
// keeping the hard pixel edges of small renders.
func Scale(img image.Image, factor int) (image.Image, error) {
	if factor < 1 {
		return nil, fmt.Errorf("%w: %d", ErrInvalidScale, factor)
	}
	if factor == 1 {
		return img, nil
	}

	b := img.Bounds()
	dst := image.NewRGBA(image.Rect(0, 0, b.Dx()*factor, b.Dy()*factor))
	draw.NearestNeighbor.Scale(dst, dst.Bounds(), img, b, draw.Src, nil)
	return dst, nil
}

// Encode writes img to w in the given format.
func Encode(w io.Writer, img image.Image, f Format) error {
	switch f {
	case PNG:
		return png.Encode(w, img)
	case BMP:
		return bmp.Encode(w, img)
	case TIFF:
		return tiff.Encode(w, img, &tiff.Options{Compression: tiff.Deflate})
	case JPEG:
		return jpeg.Encode(w, img, &jpeg.Options{Quality: jpegQuality})
	default:
		return fmt.Errorf("%w: %v", ErrUnknownFormat, f)
	}
}

// WriteFile scales buf and saves it, choosing the format from the extension.
func WriteFile(path string, buf *globe.PixelBuffer, factor int) error {
	format, err := FormatFromPath(path)
	if err != nil {
		return err
	}

	img, err := Scale(ToImage(buf), factor)
	if err != nil {
		return err
	}

	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("creating %s: %w", path, err)
	}

	if err := Encode(f, img, format); err != nil {
		_ = f.Close()
		return fmt.Errorf("encoding %s: %w", format, err)
	}
	return f.Close()
}
