// Package topo computes terrain metrics from an ordered table of
// geo-referenced elevation points: per-step great-circle distance and
// vertical change, degenerate-step filtering, and mean/median/max
// aggregates for slope and obstacle height.
package topo

import "math"

const (
	// EarthRadiusMeters is the mean Earth radius of the spherical model.
	EarthRadiusMeters = 6371000.0

	// MinHorizontalStepMeters is the cleaning threshold for a step's
	// horizontal run. Steps shorter than 1 cm are measurement noise, not
	// traversable terrain, and their slope ratios blow up numerically.
	MinHorizontalStepMeters = 0.01
)

// HaversineMeters returns the great-circle distance in meters between two
// points on a sphere of radius EarthRadiusMeters. Inputs are latitude and
// longitude in radians; degree conversion is the caller's responsibility.
func HaversineMeters(lat1, lon1, lat2, lon2 float64) float64 {
	deltaLat := lat2 - lat1
	deltaLon := lon2 - lon1

	a := math.Sin(deltaLat/2)*math.Sin(deltaLat/2) +
		math.Cos(lat1)*math.Cos(lat2)*
			math.Sin(deltaLon/2)*math.Sin(deltaLon/2)

	c := 2 * math.Atan2(math.Sqrt(a), math.Sqrt(1-a))

	return EarthRadiusMeters * c
}
