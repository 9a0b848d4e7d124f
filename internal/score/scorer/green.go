package scorer

import (
	"liveable/internal/district"
	"liveable/internal/feature"
	"liveable/internal/geo"
	"liveable/internal/score"
)

const (
	defaultGreenScore = 60
	greenRadiusMeters = 3000
)

// GreenSpace scores a district from the number of parks within 3 km of its
// centroid: base 40 plus 6 per park, capped at 95.
func GreenSpace(d district.District, parks []feature.Feature) score.Dimension {
	if !hasCentroid(d) {
		return defaultDimension(defaultGreenScore)
	}

	count := geo.CountWithinRadius(d.Lat, d.Lng, feature.Geometries(parks), greenRadiusMeters)

	s := 40 + count*6
	if s > 95 {
		s = 95
	}

	return score.Dimension{
		Score:  score.Clamp(s),
		Source: score.SourceGeoJSON,
		Inputs: map[string]float64{"parksNearby": float64(count)},
	}
}
