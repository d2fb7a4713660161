package viewer

import (
	"math"
	"time"

	"github.com/veandco/go-sdl2/sdl"

	"github.com/Faultbox/globe/pkg/globe"
)

// view is the interactive camera. Longitude is tracked in fractional
// degrees so slow spins still move; rendering rounds to whole degrees.
type view struct {
	lon, lat   float64
	spinning   bool
	stepDeg    float64
	spinDegSec float64
	home       globe.Rotation
}

func newView(home globe.Rotation, stepDeg int, spinDegSec float64) *view {
	return &view{
		lon:        float64(home.LonDeg),
		lat:        float64(home.LatDeg),
		spinning:   spinDegSec != 0,
		stepDeg:    float64(stepDeg),
		spinDegSec: spinDegSec,
		home:       home,
	}
}

// key applies a key press and reports whether the viewer should quit.
func (v *view) key(sc sdl.Scancode) (quit bool) {
	switch sc {
	case sdl.SCANCODE_ESCAPE, sdl.SCANCODE_Q:
		return true
	case sdl.SCANCODE_UP, sdl.SCANCODE_W:
		v.lat += v.stepDeg
	case sdl.SCANCODE_DOWN, sdl.SCANCODE_S:
		v.lat -= v.stepDeg
	case sdl.SCANCODE_LEFT, sdl.SCANCODE_A:
		v.lon -= v.stepDeg
	case sdl.SCANCODE_RIGHT, sdl.SCANCODE_D:
		v.lon += v.stepDeg
	case sdl.SCANCODE_SPACE:
		v.spinning = !v.spinning
	case sdl.SCANCODE_R:
		v.lon, v.lat = float64(v.home.LonDeg), float64(v.home.LatDeg)
	}
	v.normalize()
	return false
}

// advance moves the spin forward by dt.
func (v *view) advance(dt time.Duration) {
	if v.spinning {
		v.lon += v.spinDegSec * dt.Seconds()
		v.normalize()
	}
}

func (v *view) normalize() {
	v.lon = math.Mod(math.Mod(v.lon+180, 360)+360, 360) - 180
	v.lat = math.Max(-90, math.Min(90, v.lat))
}

func (v *view) rotation() globe.Rotation {
	return globe.Rotation{
		LonDeg: int(math.Round(v.lon)),
		LatDeg: int(math.Round(v.lat)),
	}
}
