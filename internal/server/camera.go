package server

import "github.com/Faultbox/globe/pkg/globe"

// camera is the per-session view state.
type camera struct {
	lon, lat int
	spinning bool

	home    globe.Rotation
	stepDeg int
	spinDeg int
}

func newCamera(home globe.Rotation, stepDeg, spinDeg int) *camera {
	return &camera{
		lon:      home.LonDeg,
		lat:      home.LatDeg,
		spinning: spinDeg != 0,
		home:     home,
		stepDeg:  stepDeg,
		spinDeg:  spinDeg,
	}
}

// apply updates the view for one action.
func (c *camera) apply(a Action) {
	switch a {
	case ActionUp:
		c.lat += c.stepDeg
	case ActionDown:
		c.lat -= c.stepDeg
	case ActionLeft:
		c.lon -= c.stepDeg
	case ActionRight:
		c.lon += c.stepDeg
	case ActionToggleSpin:
		c.spinning = !c.spinning
	case ActionReset:
		c.lon, c.lat = c.home.LonDeg, c.home.LatDeg
	}
	c.normalize()
}

// tick advances the automatic spin by one frame.
func (c *camera) tick() {
	if c.spinning {
		c.lon += c.spinDeg
		c.normalize()
	}
}

// normalize keeps lon in [-180, 180) and stops lat at the poles.
func (c *camera) normalize() {
	c.lon = ((c.lon+180)%360+360)%360 - 180
	c.lat = max(-90, min(90, c.lat))
}

func (c *camera) rotation() globe.Rotation {
	return globe.Rotation{LonDeg: c.lon, LatDeg: c.lat}
}
