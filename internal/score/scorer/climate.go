package scorer

import (
	"liveable/internal/district"
	"liveable/internal/readings"
	"liveable/internal/score"
)

// defaultClimateScore applies when no rainfall station reading is available.
const defaultClimateScore = 70

// Climate scores a district from the precipitation rate at the nearest
// reporting station. Moderate rainfall reads as a healthy environment; dry
// heat stress and flooding-level rain both score lower. Feeds the
// environmental composite only.
func Climate(d district.District, rain *readings.Rainfall) score.Dimension {
	if !hasCentroid(d) {
		return defaultDimension(defaultClimateScore)
	}

	nearest := readings.NearestStation(rain, d.Lat, d.Lng)
	if nearest == nil {
		return defaultDimension(defaultClimateScore)
	}

	return score.Dimension{
		Score:  score.Clamp(score.Round(rainfallCurve(nearest.Value))),
		Source: score.SourceLive,
		Inputs: map[string]float64{"rainfall": nearest.Value},
		Bucket: nearest.Station,
	}
}

// rainfallCurve maps mm/hr precipitation onto the score scale.
func rainfallCurve(r float64) float64 {
	switch {
	case r <= 0:
		return 60
	case r <= 5:
		return 90
	case r <= 20:
		return 75
	case r <= 50:
		return 55
	default:
		return 40
	}
}
