package scorer

import (
	"liveable/internal/district"
	"liveable/internal/feature"
	"liveable/internal/geo"
	"liveable/internal/score"
)

const (
	defaultSafetyScore = 75
	safetyRadiusMeters = 1000
)

// Safety scores a district from active dengue clusters within 1 km of its
// centroid: base 85 minus 10 per cluster, floored at 40.
func Safety(d district.District, dengue []feature.Feature) score.Dimension {
	if !hasCentroid(d) {
		return defaultDimension(defaultSafetyScore)
	}

	count := geo.CountWithinRadius(d.Lat, d.Lng, feature.Geometries(dengue), safetyRadiusMeters)

	s := 85 - count*10
	if s < 40 {
		s = 40
	}

	return score.Dimension{
		Score:  score.Clamp(s),
		Source: score.SourceGeoJSON,
		Inputs: map[string]float64{"dengueClusters": float64(count)},
	}
}
