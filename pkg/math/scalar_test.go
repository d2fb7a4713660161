package math

import (
	"math"
	"testing"
)

func TestRadians(t *testing.T) {
	tests := []struct {
		deg  int
		want float64
	}{
		{0, 0},
		{180, math.Pi},
		{-90, -math.Pi / 2},
		{360, 2 * math.Pi},
	}
	for _, tc := range tests {
		got := Radians(tc.deg)
		if math.Abs(float64(got)-tc.want) > 1e-6 {
			t.Errorf("Radians(%d) = %v, want %v", tc.deg, got, tc.want)
		}
	}
}

func TestAsinClampsRoundingOvershoot(t *testing.T) {
	if got := Asin(1.0000001); got != Pi/2 {
		t.Errorf("Asin(1+eps) = %v, want %v", got, Pi/2)
	}
	if got := Asin(-1.0000001); got != -Pi/2 {
		t.Errorf("Asin(-1-eps) = %v, want %v", got, -Pi/2)
	}
}

func TestClamp(t *testing.T) {
	tests := []struct {
		x, want float32
	}{
		{-0.5, 0},
		{0, 0},
		{0.25, 0.25},
		{1, 1},
		{7, 1},
		{float32(math.Inf(1)), 1},
		{float32(math.Inf(-1)), 0},
	}
	for _, tc := range tests {
		if got := Clamp(tc.x, 0, 1); got != tc.want {
			t.Errorf("Clamp(%v) = %v, want %v", tc.x, got, tc.want)
		}
	}
}
