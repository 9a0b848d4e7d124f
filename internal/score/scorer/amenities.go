package scorer

import (
	"liveable/internal/district"
	"liveable/internal/feature"
	"liveable/internal/geo"
	"liveable/internal/score"
)

const (
	defaultAmenitiesScore = 60
	amenitiesRadiusMeters = 2000
)

// Amenities scores a district from the daily-needs amenities within 2 km of
// its centroid. Hawker centres weigh most, then supermarkets, then childcare
// and gyms; capped at 95.
func Amenities(d district.District, in *Inputs) score.Dimension {
	if !hasCentroid(d) {
		return defaultDimension(defaultAmenitiesScore)
	}

	count := func(dataset string) int {
		return geo.CountWithinRadius(d.Lat, d.Lng,
			feature.Geometries(in.features(dataset)), amenitiesRadiusMeters)
	}

	hawkers := count(feature.DatasetHawkers)
	supermarkets := count(feature.DatasetSupermarkets)
	childcare := count(feature.DatasetChildcare)
	gyms := count(feature.DatasetGyms)

	s := 35 + hawkers*5 + supermarkets*3 + childcare*2 + gyms*2
	if s > 95 {
		s = 95
	}

	return score.Dimension{
		Score:  score.Clamp(s),
		Source: score.SourceGeoJSON,
		Inputs: map[string]float64{
			"hawkers":      float64(hawkers),
			"supermarkets": float64(supermarkets),
			"childcare":    float64(childcare),
			"gyms":         float64(gyms),
		},
	}
}
