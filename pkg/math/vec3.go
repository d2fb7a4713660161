// Package math provides the float32 scalar, vector and rotation helpers used
// by the globe projection.
package math

// Vec3 is a 3D vector.
type Vec3 struct {
	X, Y, Z float32
}
