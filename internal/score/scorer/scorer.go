// Package scorer holds the pure per-dimension scoring functions and the
// aggregator that combines them into district composites. Every scorer maps
// its raw inputs through a monotonic piecewise curve, clamps to [0, 100] and
// records provenance. Missing inputs fall back to a documented default
// value instead of failing the computation.
package scorer

import (
	"liveable/internal/district"
	"liveable/internal/feature"
	"liveable/internal/readings"
	"liveable/internal/score"
)

// Inputs is one immutable snapshot of the shared data a scoring pass runs
// on. A batch computation builds it once and scores every district against
// it, so scores within one batch are cross-comparable.
type Inputs struct {
	PSI      readings.RegionValues
	Rain     *readings.Rainfall
	Features map[string][]feature.Feature
}

func (in *Inputs) features(dataset string) []feature.Feature {
	if in == nil || in.Features == nil {
		return nil
	}
	return in.Features[dataset]
}

// hasCentroid reports whether a district carries a usable centroid. The
// catalog always does; the zero coordinate guards direct calls with a
// zero-value district.
func hasCentroid(d district.District) bool {
	return d.Lat != 0 || d.Lng != 0
}

func defaultDimension(value int) score.Dimension {
	return score.Dimension{Score: value, Source: score.SourceDefault}
}
