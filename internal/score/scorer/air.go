package scorer

import (
	"math"

	"liveable/internal/district"
	"liveable/internal/readings"
	"liveable/internal/score"
)

// defaultAirScore applies when no particulate reading covers the district's
// region.
const defaultAirScore = 70

// AirQuality scores a district from the particulate index reading of its
// region bucket. Lower index, higher score.
func AirQuality(d district.District, psi readings.RegionValues) score.Dimension {
	p, ok := psi.Region(string(d.Region))
	if !ok {
		return defaultDimension(defaultAirScore)
	}

	return score.Dimension{
		Score:  score.Clamp(score.Round(psiCurve(p))),
		Source: score.SourceLive,
		Inputs: map[string]float64{"psi": p},
		Bucket: string(d.Region),
	}
}

// psiCurve maps a particulate index value onto the score scale:
// 0-50 good (95-85), 50-100 moderate (85-65), 100-150 unhealthy (65-45),
// 150-200 very unhealthy (45-30), beyond hazardous, floored at 10.
func psiCurve(p float64) float64 {
	switch {
	case p <= 50:
		return 95 - p*0.2
	case p <= 100:
		return 85 - (p-50)*0.4
	case p <= 150:
		return 65 - (p-100)*0.4
	case p <= 200:
		return 45 - (p-150)*0.3
	default:
		return math.Max(10, 30-(p-200)*0.2)
	}
}
