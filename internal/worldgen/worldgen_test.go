package worldgen

import (
	"errors"
	"math"
	"testing"
)

func smallParams() Params {
	p := DefaultParams()
	p.Width, p.Height = 64, 32
	return p
}

func TestGenerateDeterministic(t *testing.T) {
	p := smallParams()

	a, err := Generate(p)
	if err != nil {
		t.Fatalf("Generate: %v", err)
	}
	b, err := Generate(p)
	if err != nil {
		t.Fatalf("Generate: %v", err)
	}

	for i := range a.Altitudes {
		if a.Altitudes[i] != b.Altitudes[i] {
			t.Fatalf("altitude %d differs: %d vs %d", i, a.Altitudes[i], b.Altitudes[i])
		}
	}

	p.Seed = 2
	c, err := Generate(p)
	if err != nil {
		t.Fatalf("Generate: %v", err)
	}
	same := true
	for i := range a.Altitudes {
		if a.Altitudes[i] != c.Altitudes[i] {
			same = false
			break
		}
	}
	if same {
		t.Error("different seeds produced identical worlds")
	}
}

func TestGenerateShapeAndRange(t *testing.T) {
	p := smallParams()
	hm, err := Generate(p)
	if err != nil {
		t.Fatalf("Generate: %v", err)
	}

	if hm.Width != p.Width || hm.Height != p.Height {
		t.Errorf("size = %dx%d, want %dx%d", hm.Width, hm.Height, p.Width, p.Height)
	}
	if err := hm.Validate(); err != nil {
		t.Errorf("generated heightmap invalid: %v", err)
	}

	limit := int32(p.MaxHeight)
	var land, water int
	for _, a := range hm.Altitudes {
		if a < -limit || a > limit {
			t.Fatalf("altitude %d outside [-%d, %d]", a, limit, limit)
		}
		if a > 0 {
			land++
		} else {
			water++
		}
	}
	if land == 0 || water == 0 {
		t.Errorf("expected both land and water, got land=%d water=%d", land, water)
	}
}

func TestGenerateSeamless(t *testing.T) {
	p := smallParams()
	p.Width, p.Height = 256, 64
	hm, err := Generate(p)
	if err != nil {
		t.Fatalf("Generate: %v", err)
	}

	// The jump across the antimeridian should be no larger than a typical
	// step between interior neighbours.
	var seam, interior float64
	for row := 0; row < hm.Height; row++ {
		line := hm.Altitudes[row*hm.Width : (row+1)*hm.Width]
		seam += math.Abs(float64(line[0] - line[hm.Width-1]))
		interior += math.Abs(float64(line[hm.Width/2] - line[hm.Width/2-1]))
	}
	if seam > 3*interior+float64(hm.Height) {
		t.Errorf("seam difference %.0f much larger than interior %.0f", seam, interior)
	}
}

func TestGenerateInvalid(t *testing.T) {
	tests := []struct {
		name   string
		modify func(*Params)
	}{
		{"zero width", func(p *Params) { p.Width = 0 }},
		{"zero octaves", func(p *Params) { p.Octaves = 0 }},
		{"sea level zero", func(p *Params) { p.SeaLevel = 0 }},
		{"sea level one", func(p *Params) { p.SeaLevel = 1 }},
		{"negative max", func(p *Params) { p.MaxHeight = -1 }},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			p := smallParams()
			tt.modify(&p)
			if _, err := Generate(p); !errors.Is(err, ErrInvalidParams) {
				t.Errorf("expected ErrInvalidParams, got %v", err)
			}
		})
	}
}

func TestAltitudeMapping(t *testing.T) {
	p := Params{SeaLevel: 0.5, MaxHeight: 100}

	tests := []struct {
		n    float64
		want int32
	}{
		{0, -100},
		{0.25, -50},
		{0.5, 0},
		{0.75, 50},
		{1, 100},
	}
	for _, tt := range tests {
		if got := p.altitude(tt.n); got != tt.want {
			t.Errorf("altitude(%v) = %d, want %d", tt.n, got, tt.want)
		}
	}
}

func TestNoiseRange(t *testing.T) {
	sn := newSimplex(7)
	for i := 0; i < 1000; i++ {
		x := float64(i) * 0.137
		y := float64(i) * 0.071
		v := sn.fractal(x, y, 1, 4, 2, 0.5)
		if v < 0 || v > 1 {
			t.Fatalf("fractal(%v, %v) = %v outside [0, 1]", x, y, v)
		}
	}
}
