package globe

import (
	gmath "github.com/Faultbox/globe/pkg/math"
)

// wrap returns i mod n in [0, n).
func wrap(i, n int) int {
	i %= n
	if i < 0 {
		i += n
	}
	return i
}

// Cell maps longitude/latitude in radians to heightmap column and row.
// Fractions are truncated toward zero and then wrapped, so the seam at ±180°
// and both poles stay inside the grid.
func (h Heightmap) Cell(lon, lat float32) (col, row int) {
	xFrac := lon/(2*gmath.Pi) + 0.5
	yFrac := lat/gmath.Pi + 0.5
	col = wrap(int(xFrac*float32(h.Width)), h.Width)
	row = wrap(int(yFrac*float32(h.Height)), h.Height)
	return col, row
}

// Sample returns the altitude under longitude/latitude.
func (h Heightmap) Sample(lon, lat float32) int32 {
	col, row := h.Cell(lon, lat)
	return h.Altitudes[row*h.Width+col]
}
