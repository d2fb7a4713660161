package globe

import (
	"testing"

	gmath "github.com/Faultbox/globe/pkg/math"
)

func TestWrap(t *testing.T) {
	tests := []struct {
		i, n, want int
	}{
		{0, 4, 0},
		{3, 4, 3},
		{4, 4, 0},
		{5, 4, 1},
		{-1, 4, 3},
		{-4, 4, 0},
		{-5, 4, 3},
	}
	for _, tc := range tests {
		if got := wrap(tc.i, tc.n); got != tc.want {
			t.Errorf("wrap(%d, %d) = %d, want %d", tc.i, tc.n, got, tc.want)
		}
	}
}

func TestCellWrapsSeamAndPoles(t *testing.T) {
	hm := solidWorld(8, 4, 0)
	tests := []struct {
		name     string
		lon, lat float32
		col, row int
	}{
		{"east seam", gmath.Pi, 0, 0, 2},
		{"west seam", -gmath.Pi, 0, 0, 2},
		{"north pole", 0, gmath.Pi / 2, 4, 0},
		{"south pole", 0, -gmath.Pi / 2, 4, 0},
		{"prime meridian", 0, 0, 4, 2},
		{"just west of seam", gmath.Pi - 0.01, 0, 7, 2},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			col, row := hm.Cell(tt.lon, tt.lat)
			if col != tt.col || row != tt.row {
				t.Errorf("Cell(%v, %v) = (%d, %d), want (%d, %d)", tt.lon, tt.lat, col, row, tt.col, tt.row)
			}
		})
	}
}

func TestSampleSeamContinuity(t *testing.T) {
	hm := patternWorld(12, 6)
	// Sampling at lon=+π must hit column 0, the same column as lon=-π.
	for row := 0; row < hm.Height; row++ {
		lat := (float32(row)+0.5)/float32(hm.Height)*gmath.Pi - gmath.Pi/2
		east := hm.Sample(gmath.Pi, lat)
		west := hm.Sample(-gmath.Pi, lat)
		if col0 := hm.Altitudes[row*hm.Width]; east != west || east != col0 {
			t.Errorf("row %d: east %d, west %d, column 0 %d", row, east, west, col0)
		}
	}
}

func TestNormalize(t *testing.T) {
	tests := []struct {
		alt  int32
		max  int
		want float32
	}{
		{0, 100, 0},
		{50, 100, 0.5},
		{100, 100, 1},
		{150, 100, 1},
		{-10, 100, 0},
		{10, 0, 0},
	}
	for _, tc := range tests {
		if got := (ColorMap{MaxLandHeight: tc.max}).Normalize(tc.alt); got != tc.want {
			t.Errorf("Normalize(%d / %d) = %v, want %v", tc.alt, tc.max, got, tc.want)
		}
	}
}
