package globe

import (
	gmath "github.com/Faultbox/globe/pkg/math"
)

// View holds everything about the screen-to-sphere mapping that is fixed for
// a single render: disc placement and the rotation trig. It is read-only
// once built and safe to share between goroutines.
type View struct {
	CenterX, CenterY int
	Radius           int

	radius   float32
	rotation gmath.ViewRotation
}

// NewView places the disc in the middle of vp with radius height/2.2 and
// precomputes the rotation trig once.
func NewView(vp Viewport, rot Rotation) View {
	return View{
		CenterX:  vp.Width / 2,
		CenterY:  vp.Height / 2,
		Radius:   discRadius(vp.Height),
		radius:   float32(discRadius(vp.Height)),
		rotation: gmath.NewViewRotation(gmath.Radians(rot.LonDeg), gmath.Radians(rot.LatDeg)),
	}
}

func discRadius(height int) int {
	return int(float32(height) / 2.2)
}

// Disc maps a pixel offset from the disc center to unit-disc coordinates.
// Screen y grows downward, disc y grows upward. ok is false outside the disc.
func (v View) Disc(dx, dy int) (fx, fy float32, ok bool) {
	fx = float32(dx) / v.radius
	fy = -float32(dy) / v.radius
	return fx, fy, fx*fx+fy*fy <= 1
}

// Sphere lifts a unit-disc point onto the near hemisphere (z >= 0) and
// rotates it into the globe's frame.
func (v View) Sphere(fx, fy float32) gmath.Vec3 {
	r2 := fx*fx + fy*fy
	fz := gmath.Sqrt(1 - r2)
	return v.rotation.Apply(gmath.Vec3{X: fx, Y: fy, Z: fz})
}

// LonLat converts a globe-frame unit vector to longitude in (-π, π] and
// latitude in [-π/2, π/2].
func LonLat(p gmath.Vec3) (lon, lat float32) {
	return gmath.Atan2(p.X, p.Z), gmath.Asin(-p.Y)
}

// Unproject runs the full pixel-to-sphere mapping for an offset from the
// disc center.
func (v View) Unproject(dx, dy int) (lon, lat float32, ok bool) {
	fx, fy, ok := v.Disc(dx, dy)
	if !ok {
		return 0, 0, false
	}
	lon, lat = LonLat(v.Sphere(fx, fy))
	return lon, lat, true
}
