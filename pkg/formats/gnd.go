package formats

import (
	"bytes"
	"encoding/binary"
	"errors"
	"fmt"
	"math"
	"os"

	"golang.org/x/text/encoding/korean"

	"github.com/Faultbox/globe/pkg/globe"
)

// GND format errors.
var (
	ErrInvalidGNDMagic       = errors.New("invalid GND magic: expected 'GRGN'")
	ErrUnsupportedGNDVersion = errors.New("unsupported GND version")
	ErrTruncatedGNDData      = errors.New("truncated GND data")
)

const (
	gndHeaderSize  = 18 // magic, version, width, height, zoom
	gndSurfaceSize = 40 // 8 UVs, texture and lightmap IDs, BGRA color
	gndTileSize    = 28 // 4 corner heights, 3 surface IDs
)

// GNDVersion represents the GND file version.
type GNDVersion struct {
	Major uint8
	Minor uint8
}

// String returns the version as "Major.Minor".
func (v GNDVersion) String() string {
	return fmt.Sprintf("%d.%d", v.Major, v.Minor)
}

// GNDTile is one ground tile. Heights grow downward, as in GAT.
type GNDTile struct {
	Heights      [4]float32 // bottom-left, bottom-right, top-left, top-right
	TopSurface   int32      // -1 = none
	FrontSurface int32
	RightSurface int32
}

// GND is the terrain part of a ground mesh file. Textures keep their
// names for reporting; lightmaps and surfaces are skipped.
type GND struct {
	Version  GNDVersion
	Width    uint32
	Height   uint32
	Zoom     float32
	Textures []string
	Tiles    []GNDTile
}

// gndReader walks the variable-length sections with bounds checks.
type gndReader struct {
	data []byte
	off  int
}

func (r *gndReader) take(n int, what string) ([]byte, error) {
	if n < 0 || r.off+n > len(r.data) {
		return nil, fmt.Errorf("%w: reading %s", ErrTruncatedGNDData, what)
	}
	b := r.data[r.off : r.off+n]
	r.off += n
	return b, nil
}

func (r *gndReader) uint32(what string) (uint32, error) {
	b, err := r.take(4, what)
	if err != nil {
		return 0, err
	}
	return binary.LittleEndian.Uint32(b), nil
}

// ParseGND parses a GND file from raw bytes.
func ParseGND(data []byte) (*GND, error) {
	if len(data) < gndHeaderSize {
		return nil, ErrTruncatedGNDData
	}
	if string(data[0:4]) != "GRGN" {
		return nil, ErrInvalidGNDMagic
	}

	// Version is stored as [major, minor]; 1.5 through 1.9 share a layout.
	version := GNDVersion{Major: data[4], Minor: data[5]}
	if version.Major != 1 || version.Minor < 5 || version.Minor > 9 {
		return nil, fmt.Errorf("%w: %s", ErrUnsupportedGNDVersion, version)
	}

	gnd := &GND{
		Version: version,
		Width:   binary.LittleEndian.Uint32(data[6:10]),
		Height:  binary.LittleEndian.Uint32(data[10:14]),
		Zoom:    math.Float32frombits(binary.LittleEndian.Uint32(data[14:18])),
	}
	if gnd.Width == 0 || gnd.Height == 0 || gnd.Width > 1024 || gnd.Height > 1024 {
		return nil, fmt.Errorf("invalid GND dimensions: %dx%d", gnd.Width, gnd.Height)
	}

	r := &gndReader{data: data, off: gndHeaderSize}

	textureCount, err := r.uint32("texture count")
	if err != nil {
		return nil, err
	}
	nameLen, err := r.uint32("texture name length")
	if err != nil {
		return nil, err
	}
	names, err := r.take(int(textureCount)*int(nameLen), "texture names")
	if err != nil {
		return nil, err
	}
	gnd.Textures = make([]string, textureCount)
	for i := range gnd.Textures {
		gnd.Textures[i] = decodeName(names[i*int(nameLen) : (i+1)*int(nameLen)])
	}

	// Lightmaps: count, width, height, cells, then 4 bytes per texel.
	var lm [4]uint32
	for i, what := range []string{"lightmap count", "lightmap width", "lightmap height", "lightmap cells"} {
		if lm[i], err = r.uint32(what); err != nil {
			return nil, err
		}
	}
	if _, err := r.take(int(lm[0])*int(lm[1])*int(lm[2])*int(lm[3])*4, "lightmaps"); err != nil {
		return nil, err
	}

	surfaceCount, err := r.uint32("surface count")
	if err != nil {
		return nil, err
	}
	if _, err := r.take(int(surfaceCount)*gndSurfaceSize, "surfaces"); err != nil {
		return nil, err
	}

	tileCount := int(gnd.Width * gnd.Height)
	tiles, err := r.take(tileCount*gndTileSize, "tiles")
	if err != nil {
		return nil, err
	}
	gnd.Tiles = make([]GNDTile, tileCount)
	if err := binary.Read(bytes.NewReader(tiles), binary.LittleEndian, gnd.Tiles); err != nil {
		return nil, fmt.Errorf("%w: decoding tiles: %v", ErrTruncatedGNDData, err)
	}

	return gnd, nil
}

// decodeName converts a NUL-padded EUC-KR name to UTF-8, falling back to
// the raw bytes when they are not valid EUC-KR.
func decodeName(b []byte) string {
	if i := bytes.IndexByte(b, 0); i >= 0 {
		b = b[:i]
	}
	s, err := korean.EUCKR.NewDecoder().Bytes(b)
	if err != nil {
		return string(b)
	}
	return string(s)
}

// ParseGNDFile parses a GND file from disk.
func ParseGNDFile(path string) (*GND, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading GND file: %w", err)
	}
	return ParseGND(data)
}

// GetTile returns the tile at the given coordinates, or nil when out of bounds.
func (g *GND) GetTile(x, y int) *GNDTile {
	if x < 0 || y < 0 || x >= int(g.Width) || y >= int(g.Height) {
		return nil
	}
	return &g.Tiles[y*int(g.Width)+x]
}

// Heightmap converts the ground mesh to upward altitudes, one sample per
// tile, with the same orientation and rounding as GAT.Heightmap.
func (g *GND) Heightmap(scale float32) globe.Heightmap {
	w, h := int(g.Width), int(g.Height)
	alts := make([]int32, w*h)
	for y := 0; y < h; y++ {
		for x := 0; x < w; x++ {
			t := &g.Tiles[(h-1-y)*w+x]
			avg := (t.Heights[0] + t.Heights[1] + t.Heights[2] + t.Heights[3]) / 4
			alts[y*w+x] = int32(math.Round(float64(-avg * scale)))
		}
	}
	return globe.Heightmap{Width: w, Height: h, Altitudes: alts}
}
