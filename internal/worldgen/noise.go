package worldgen

import (
	"math"
	"math/rand"
)

// simplex generates 2D simplex noise from a seed-shuffled permutation table.
type simplex struct {
	perm [512]int
}

func newSimplex(seed int64) *simplex {
	sn := &simplex{}
	r := rand.New(rand.NewSource(seed))

	p := r.Perm(256)
	for i := range sn.perm {
		sn.perm[i] = p[i&255]
	}
	return sn
}

func grad(hash int, x, y float64) float64 {
	h := hash & 7
	u, v := x, y
	if h >= 4 {
		u, v = y, x
	}
	if h&1 != 0 {
		u = -u
	}
	if h&2 != 0 {
		v = -v
	}
	return u + v
}

const (
	skew   = 0.3660254037844386  // (sqrt(3) - 1) / 2
	unskew = 0.21132486540518713 // (3 - sqrt(3)) / 6
)

// corner returns one simplex corner's contribution.
func (sn *simplex) corner(hash int, x, y float64) float64 {
	t := 0.5 - x*x - y*y
	if t <= 0 {
		return 0
	}
	t *= t
	return t * t * grad(hash, x, y)
}

// at returns noise in roughly [-1, 1].
func (sn *simplex) at(x, y float64) float64 {
	s := (x + y) * skew
	i := math.Floor(x + s)
	j := math.Floor(y + s)

	t := (i + j) * unskew
	x0 := x - (i - t)
	y0 := y - (j - t)

	i1, j1 := 0, 1
	if x0 > y0 {
		i1, j1 = 1, 0
	}

	x1 := x0 - float64(i1) + unskew
	y1 := y0 - float64(j1) + unskew
	x2 := x0 - 1 + 2*unskew
	y2 := y0 - 1 + 2*unskew

	ii := int(i) & 255
	jj := int(j) & 255

	n := sn.corner(sn.perm[ii+sn.perm[jj]], x0, y0) +
		sn.corner(sn.perm[ii+i1+sn.perm[jj+j1]], x1, y1) +
		sn.corner(sn.perm[ii+1+sn.perm[jj+1]], x2, y2)
	return 70 * n
}

// fractal sums octaves and maps the result to [0, 1].
func (sn *simplex) fractal(x, y, freq float64, octaves int, lacunarity, persistence float64) float64 {
	var total, maxAmp float64
	amp := 1.0

	for i := 0; i < octaves; i++ {
		total += sn.at(x*freq, y*freq) * amp
		maxAmp += amp
		freq *= lacunarity
		amp *= persistence
	}
	if maxAmp == 0 {
		return 0.5
	}

	v := (total/maxAmp + 1) / 2
	return math.Max(0, math.Min(1, v))
}
