package math

import "math"

// Pi is π rounded to float32.
const Pi = float32(math.Pi)

// Radians converts whole degrees to radians.
func Radians(deg int) float32 {
	return float32(deg) * Pi / 180
}

// Sin returns the sine of x.
func Sin(x float32) float32 { return float32(math.Sin(float64(x))) }

// Cos returns the cosine of x.
func Cos(x float32) float32 { return float32(math.Cos(float64(x))) }

// Sqrt returns the square root of x.
func Sqrt(x float32) float32 { return float32(math.Sqrt(float64(x))) }

// Atan2 returns the arc tangent of y/x in (-π, π].
func Atan2(y, x float32) float32 { return float32(math.Atan2(float64(y), float64(x))) }

// Asin returns the arc sine of x in [-π/2, π/2].
// Inputs a rounding step outside [-1, 1] are pulled back in rather than
// producing NaN.
func Asin(x float32) float32 {
	if x > 1 {
		x = 1
	} else if x < -1 {
		x = -1
	}
	return float32(math.Asin(float64(x)))
}

// Clamp limits x to [lo, hi]. NaN is returned unchanged.
func Clamp(x, lo, hi float32) float32 {
	if x < lo {
		return lo
	}
	if x > hi {
		return hi
	}
	return x
}
