package math

// ViewRotation turns a point on the visible hemisphere into the globe's own
// frame so that (lon, lat) faces the viewer. It is RotateY(lon) applied after
// RotateX(lat), kept as its four trig values instead of a matrix so every
// component is evaluated term by term in a fixed order.
type ViewRotation struct {
	CosLon, SinLon float32
	CosLat, SinLat float32
}

// NewViewRotation precomputes the trig for a rotation given in radians.
func NewViewRotation(lon, lat float32) ViewRotation {
	return ViewRotation{
		CosLon: Cos(lon),
		SinLon: Sin(lon),
		CosLat: Cos(lat),
		SinLat: Sin(lat),
	}
}

// Apply rotates p. Products are evaluated left to right, e.g.
// (p.Y*SinLat)*SinLon, which fixes float32 rounding.
func (r ViewRotation) Apply(p Vec3) Vec3 {
	return Vec3{
		X: p.X*r.CosLon + p.Y*r.SinLat*r.SinLon + p.Z*r.CosLat*r.SinLon,
		Y: p.Y*r.CosLat - p.Z*r.SinLat,
		Z: -p.X*r.SinLon + p.Y*r.SinLat*r.CosLon + p.Z*r.CosLat*r.CosLon,
	}
}
