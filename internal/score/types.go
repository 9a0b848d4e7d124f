package score

import (
	"math"
	"time"
)

// Source tags the provenance of a computed dimension score, so consumers can
// distinguish measured values from fallbacks.
type Source string

const (
	// SourceLive — derived from a live environmental reading.
	SourceLive Source = "data.gov.sg"
	// SourceGeoJSON — derived from a geospatial feature count.
	SourceGeoJSON Source = "geojson"
	// SourceStatic — derived from the bundled static lookup table.
	SourceStatic Source = "static"
	// SourceDefault — documented default, used when inputs were missing.
	SourceDefault Source = "default"
)

// Dimension is the computed result of one scoring dimension for one
// district: the clamped 0-100 value plus the provenance record of the raw
// inputs it was derived from. Bucket names the region or station the
// reading came from, when one was used.
type Dimension struct {
	Score  int                `json:"score"`
	Source Source             `json:"source"`
	Inputs map[string]float64 `json:"inputs,omitempty"`
	Bucket string             `json:"bucket,omitempty"`
}

// Details carries the full per-dimension breakdown of a composite.
type Details struct {
	AirQuality Dimension `json:"airQuality"`
	Transport  Dimension `json:"transport"`
	GreenSpace Dimension `json:"greenSpace"`
	Amenities  Dimension `json:"amenities"`
	Safety     Dimension `json:"safety"`
	Climate    Dimension `json:"climate"`
}

// Composite is the aggregation result for one district: the overall
// liveability value, the parallel environmental-outcomes value, and the
// detail payload the UI renders "why this score" explanations from.
type Composite struct {
	District string `json:"district"`

	Overall    int `json:"overall"`
	AirQuality int `json:"airQuality"`
	Transport  int `json:"transport"`
	GreenSpace int `json:"greenSpace"`
	Amenities  int `json:"amenities"`
	Safety     int `json:"safety"`

	EnvScore         int `json:"envScore"`
	EnvAirQuality    int `json:"envAirQuality"`
	EnvGreenCoverage int `json:"envGreenCoverage"`
	EnvVectorSafety  int `json:"envVectorSafety"`
	EnvClimate       int `json:"envClimate"`

	Details    Details   `json:"details"`
	ComputedAt time.Time `json:"computedAt"`
}

// Batch is the result of computing all districts from one shared input
// snapshot.
type Batch struct {
	Districts     map[string]*Composite `json:"districts"`
	LastUpdated   time.Time             `json:"lastUpdated"`
	Sources       []string              `json:"sources"`
	ComputeTimeMS int64                 `json:"computeTime"`
}

// Liveability weight vector. Fixed, convex, sums to 1.0.
const (
	WeightAirQuality = 0.20
	WeightTransport  = 0.25
	WeightGreenSpace = 0.20
	WeightAmenities  = 0.20
	WeightSafety     = 0.15
)

// Environmental-outcomes weight vector. Fixed, convex, sums to 1.0.
const (
	EnvWeightAirQuality   = 0.35
	EnvWeightGreenCover   = 0.30
	EnvWeightVectorSafety = 0.20
	EnvWeightClimate      = 0.15
)

// Overall combines the five liveability dimension scores with the fixed
// weight vector, rounding to the nearest integer.
func Overall(air, transport, green, amenities, safety int) int {
	return Clamp(int(math.Round(
		float64(air)*WeightAirQuality +
			float64(transport)*WeightTransport +
			float64(green)*WeightGreenSpace +
			float64(amenities)*WeightAmenities +
			float64(safety)*WeightSafety)))
}

// Environmental combines the four environmental dimension scores with the
// environmental weight vector.
func Environmental(air, green, vector, climate int) int {
	return Clamp(int(math.Round(
		float64(air)*EnvWeightAirQuality +
			float64(green)*EnvWeightGreenCover +
			float64(vector)*EnvWeightVectorSafety +
			float64(climate)*EnvWeightClimate)))
}

// Clamp bounds a score to [0, 100].
func Clamp(v int) int {
	switch {
	case v < 0:
		return 0
	case v > 100:
		return 100
	default:
		return v
	}
}

// Round converts a raw curve value to the integer score scale.
// Halves round away from zero.
func Round(v float64) int {
	return int(math.Round(v))
}
