package globe

import (
	"testing"

	gmath "github.com/Faultbox/globe/pkg/math"
)

// referenceRender is a line-by-line float32 rendition of the per-pixel loop
// with no shared helpers, so any change in operation order inside the
// package shows up as a pixel difference.
func referenceRender(winW, winH, lonDeg, latDeg, worldW, worldH int, alts []int32, maxLand int, out []RGB) {
	pi := gmath.Pi
	rotLon := float32(lonDeg) * pi / 180
	rotLat := float32(latDeg) * pi / 180
	centerX := winW / 2
	centerY := winH / 2
	radius := int(float32(winH) / 2.2)

	cosLat := gmath.Cos(rotLat)
	sinLat := gmath.Sin(rotLat)
	cosLon := gmath.Cos(rotLon)
	sinLon := gmath.Sin(rotLon)

	for dy := -radius; dy <= radius; dy++ {
		for dx := -radius; dx <= radius; dx++ {
			fx := float32(dx) / float32(radius)
			fy := -float32(dy) / float32(radius)
			r2 := fx*fx + fy*fy
			if r2 > 1 {
				continue
			}

			fz := gmath.Sqrt(1 - r2)
			x0, y0, z0 := fx, fy, fz

			x2 := x0*cosLon + y0*sinLat*sinLon + z0*cosLat*sinLon
			y2 := y0*cosLat - z0*sinLat
			z2 := -x0*sinLon + y0*sinLat*cosLon + z0*cosLat*cosLon

			lon := gmath.Atan2(x2, z2)
			lat := gmath.Asin(-y2)

			xFrac := lon/(2*pi) + 0.5
			yFrac := lat/pi + 0.5

			wx := int(xFrac*float32(worldW)) % worldW
			wy := int(yFrac*float32(worldH)) % worldH
			if wx < 0 {
				wx += worldW
			}
			if wy < 0 {
				wy += worldH
			}

			altitude := alts[wy*worldW+wx]
			t := float32(0)
			if maxLand != 0 {
				t = gmath.Clamp(float32(altitude)/float32(maxLand), 0, 1)
			}
			c := RGB{
				R: 0,
				G: uint8(255 * t),
				B: uint8(255 * (1 - t)),
			}

			sx := centerX + dx
			sy := centerY + dy
			if sx >= 0 && sx < winW && sy >= 0 && sy < winH {
				out[sy*winW+sx] = c
			}
		}
	}
}

func TestRenderMatchesReferenceLoop(t *testing.T) {
	const (
		winW, winH     = 200, 150
		worldW, worldH = 360, 180
		maxLand        = 100
	)
	// Neighbouring cells get different altitudes so that landing one cell
	// off changes the color.
	alts := make([]int32, worldW*worldH)
	for row := 0; row < worldH; row++ {
		for col := 0; col < worldW; col++ {
			alts[row*worldW+col] = int32((col*7 + row*13) % 101)
		}
	}

	step := 7
	if testing.Short() {
		step = 29
	}

	got := make([]RGB, winW*winH)
	want := make([]RGB, winW*winH)
	for lon := -180; lon <= 180; lon += step {
		for lat := -90; lat <= 90; lat += step {
			for i := range got {
				got[i] = sentinel
				want[i] = sentinel
			}
			referenceRender(winW, winH, lon, lat, worldW, worldH, alts, maxLand, want)
			if err := RenderGlobe(winW, winH, lon, lat, worldW, worldH, alts, maxLand, got); err != nil {
				t.Fatalf("RenderGlobe(%d, %d) failed: %v", lon, lat, err)
			}

			mismatches := 0
			first := -1
			for i := range got {
				if got[i] != want[i] {
					if first < 0 {
						first = i
					}
					mismatches++
				}
			}
			if mismatches > 0 {
				t.Fatalf("rotation (%d, %d): %d pixels differ, first at (%d, %d): got %v, want %v",
					lon, lat, mismatches, first%winW, first/winW, got[first], want[first])
			}
		}
	}
}
