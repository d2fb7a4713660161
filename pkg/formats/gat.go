package formats

import (
	"bytes"
	"encoding/binary"
	"errors"
	"fmt"
	"math"
	"os"

	"github.com/Faultbox/globe/pkg/globe"
)

// GAT format errors.
var (
	ErrInvalidGATMagic       = errors.New("invalid GAT magic: expected 'GRAT'")
	ErrUnsupportedGATVersion = errors.New("unsupported GAT version")
	ErrTruncatedGATData      = errors.New("truncated GAT data")
)

// gatHeaderSize is magic(4) + version(2) + width(4) + height(4).
const gatHeaderSize = 14

// GATVersion represents the GAT file version.
type GATVersion struct {
	Major uint8
	Minor uint8
}

// String returns the version as "Major.Minor".
func (v GATVersion) String() string {
	return fmt.Sprintf("%d.%d", v.Major, v.Minor)
}

// GATCellType is the terrain class stored with each cell.
type GATCellType uint32

// Cell type constants.
const (
	GATWalkable      GATCellType = 0
	GATBlocked       GATCellType = 1
	GATWater         GATCellType = 2
	GATWalkableWater GATCellType = 3
	GATSnipeable     GATCellType = 4
	GATBlockedSnipe  GATCellType = 5
)

// String returns a human-readable cell type name.
func (t GATCellType) String() string {
	switch t {
	case GATWalkable:
		return "Walkable"
	case GATBlocked:
		return "Blocked"
	case GATWater:
		return "Water"
	case GATWalkableWater:
		return "Walkable+Water"
	case GATSnipeable:
		return "Snipeable"
	case GATBlockedSnipe:
		return "Blocked+Snipe"
	default:
		return fmt.Sprintf("Unknown(%d)", t)
	}
}

// IsWater returns true if the cell contains water.
func (t GATCellType) IsWater() bool {
	return t == GATWater || t == GATWalkableWater
}

// GATCell is a single cell of the table.
type GATCell struct {
	// Heights of the corners: [0] bottom-left, [1] bottom-right,
	// [2] top-left, [3] top-right. The axis points down, so smaller
	// values are higher ground.
	Heights [4]float32
	Type    GATCellType
}

// AverageHeight returns the average of the four corner heights.
func (c *GATCell) AverageHeight() float32 {
	return (c.Heights[0] + c.Heights[1] + c.Heights[2] + c.Heights[3]) / 4.0
}

// GAT is a parsed ground altitude table.
type GAT struct {
	Version GATVersion
	Width   uint32
	Height  uint32
	Cells   []GATCell
}

// GetCell returns the cell at the given coordinates, or nil when out of bounds.
func (g *GAT) GetCell(x, y int) *GATCell {
	if x < 0 || y < 0 || x >= int(g.Width) || y >= int(g.Height) {
		return nil
	}
	return &g.Cells[y*int(g.Width)+x]
}

// ParseGAT parses a GAT file from raw bytes.
func ParseGAT(data []byte) (*GAT, error) {
	if len(data) < gatHeaderSize {
		return nil, ErrTruncatedGATData
	}

	if string(data[0:4]) != "GRAT" {
		return nil, ErrInvalidGATMagic
	}

	// Version is stored as [minor, major]
	version := GATVersion{
		Major: data[5],
		Minor: data[4],
	}
	if version.Major < 1 || version.Major > 3 {
		return nil, fmt.Errorf("%w: %s", ErrUnsupportedGATVersion, version)
	}

	width := binary.LittleEndian.Uint32(data[6:10])
	height := binary.LittleEndian.Uint32(data[10:14])
	if width == 0 || height == 0 || width > 4096 || height > 4096 {
		return nil, fmt.Errorf("invalid GAT dimensions: %dx%d", width, height)
	}

	cellCount := int(width * height)
	r := bytes.NewReader(data[gatHeaderSize:])
	if r.Len() < cellCount*20 {
		return nil, fmt.Errorf("%w: have %d bytes for %d cells", ErrTruncatedGATData, r.Len(), cellCount)
	}

	gat := &GAT{
		Version: version,
		Width:   width,
		Height:  height,
		Cells:   make([]GATCell, cellCount),
	}
	// Each cell is four float32 heights followed by a uint32 type.
	if err := binary.Read(r, binary.LittleEndian, gat.Cells); err != nil {
		return nil, fmt.Errorf("%w: reading cells: %v", ErrTruncatedGATData, err)
	}

	return gat, nil
}

// ParseGATFile parses a GAT file from disk.
func ParseGATFile(path string) (*GAT, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading GAT file: %w", err)
	}
	return ParseGAT(data)
}

// GetAltitudeRange returns the lowest and highest altitude in the table,
// measured upward like Heightmap altitudes.
func (g *GAT) GetAltitudeRange() (min, max float32) {
	if len(g.Cells) == 0 {
		return 0, 0
	}

	min = -g.Cells[0].Heights[0]
	max = min
	for _, cell := range g.Cells {
		for _, h := range cell.Heights {
			if -h < min {
				min = -h
			}
			if -h > max {
				max = -h
			}
		}
	}
	return min, max
}

// Heightmap converts the table to an upward altitude grid, one sample per
// cell, multiplying by scale and rounding. Rows are flipped so that the
// table's top edge becomes heightmap row 0. Water cells are pushed to at
// least one unit below sea level.
func (g *GAT) Heightmap(scale float32) globe.Heightmap {
	w, h := int(g.Width), int(g.Height)
	alts := make([]int32, w*h)
	for y := 0; y < h; y++ {
		for x := 0; x < w; x++ {
			cell := &g.Cells[(h-1-y)*w+x]
			alt := int32(math.Round(float64(-cell.AverageHeight() * scale)))
			if cell.Type.IsWater() && alt >= 0 {
				alt = -1
			}
			alts[y*w+x] = alt
		}
	}
	return globe.Heightmap{Width: w, Height: h, Altitudes: alts}
}
