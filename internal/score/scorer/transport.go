package scorer

import (
	"liveable/internal/district"
	"liveable/internal/score"
)

// Transport scores a district from its static MRT station count:
// base 40 plus 8 per station, capped at 95. Districts without rail coverage
// keep the base score.
func Transport(d district.District) score.Dimension {
	stations := district.MRTStations(d.Name)

	s := 40 + stations*8
	if s > 95 {
		s = 95
	}

	return score.Dimension{
		Score:  score.Clamp(s),
		Source: score.SourceStatic,
		Inputs: map[string]float64{"mrtStations": float64(stations)},
	}
}
