package formats

import "github.com/Faultbox/globe/pkg/globe"

// HeightmapStats summarises a heightmap.
type HeightmapStats struct {
	Min, Max     int32
	Mean         float64
	LandFraction float64 // share of samples above sea level (altitude > 0)
}

// Stats scans every sample of hm.
func Stats(hm globe.Heightmap) HeightmapStats {
	if len(hm.Altitudes) == 0 {
		return HeightmapStats{}
	}

	s := HeightmapStats{Min: hm.Altitudes[0], Max: hm.Altitudes[0]}
	var sum float64
	var land int
	for _, a := range hm.Altitudes {
		if a < s.Min {
			s.Min = a
		}
		if a > s.Max {
			s.Max = a
		}
		if a > 0 {
			land++
		}
		sum += float64(a)
	}
	n := float64(len(hm.Altitudes))
	s.Mean = sum / n
	s.LandFraction = float64(land) / n
	return s
}
