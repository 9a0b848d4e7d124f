package scorer

import (
	"context"
	"sync"
	"time"

	"liveable/internal/district"
	"liveable/internal/feature"
	"liveable/internal/readings"
	"liveable/internal/score"
)

// UnknownDistrictError is returned when a score is requested for a district
// the catalog does not contain. There is no meaningful default for a
// district that does not exist, so this is the one hard failure of the
// scoring path.
type UnknownDistrictError struct {
	message string
}

func (e *UnknownDistrictError) Error() string {
	return e.message
}

func NewUnknownDistrictError(name string) *UnknownDistrictError {
	return &UnknownDistrictError{message: "unknown district: " + name}
}

// batchSources labels the data sources a batch was computed from, carried in
// the batch payload for UI display.
var batchSources = []string{"data.gov.sg PSI", "GeoJSON amenities", "Static MRT data"}

// Aggregator computes district composites from the shared inputs held by the
// feature store and the readings client. Both methods are pure functions of
// their (possibly cached) inputs: two calls within the caches' TTL windows
// produce identical values.
type Aggregator struct {
	features *feature.Store
	readings *readings.Client
}

// NewAggregator wires the aggregator to its input loaders.
func NewAggregator(features *feature.Store, readings *readings.Client) *Aggregator {
	return &Aggregator{features: features, readings: readings}
}

// ComputeOne computes the composite for a single district. Fails only for
// unknown district names; missing inputs degrade to per-dimension defaults.
func (a *Aggregator) ComputeOne(ctx context.Context, name string) (*score.Composite, error) {
	d, ok := district.Lookup(name)
	if !ok {
		return nil, NewUnknownDistrictError(name)
	}

	in := a.loadInputs(ctx)
	return compute(d, in, time.Now().UTC()), nil
}

// ComputeAll computes composites for the whole catalog. Shared inputs are
// loaded exactly once and every district is scored against that single
// snapshot, so scores within one batch are cross-comparable and the batch
// cost is bounded by the slowest fetch, not the district count.
func (a *Aggregator) ComputeAll(ctx context.Context) *score.Batch {
	start := time.Now()
	in := a.loadInputs(ctx)

	now := time.Now().UTC()
	districts := make(map[string]*score.Composite, district.Count())
	for _, name := range district.Names() {
		d, _ := district.Lookup(name)
		districts[name] = compute(d, in, now)
	}

	return &score.Batch{
		Districts:     districts,
		LastUpdated:   now,
		Sources:       batchSources,
		ComputeTimeMS: time.Since(start).Milliseconds(),
	}
}

// loadInputs gathers the shared snapshot concurrently: both reading kinds
// and all scoring datasets in flight at once, each behind its own cache.
func (a *Aggregator) loadInputs(ctx context.Context) *Inputs {
	var (
		in Inputs
		wg sync.WaitGroup
	)

	wg.Add(1)
	go func() {
		defer wg.Done()
		in.PSI = a.readings.PSI(ctx)
	}()

	wg.Add(1)
	go func() {
		defer wg.Done()
		in.Rain = a.readings.Rainfall(ctx)
	}()

	wg.Add(1)
	go func() {
		defer wg.Done()
		in.Features = a.features.LoadAll(ctx, feature.ScoringDatasets...)
	}()

	wg.Wait()
	return &in
}

// compute runs the six dimension scorers for one district over one input
// snapshot and applies the two weight vectors.
func compute(d district.District, in *Inputs, now time.Time) *score.Composite {
	air := AirQuality(d, in.PSI)
	transport := Transport(d)
	green := GreenSpace(d, in.features(feature.DatasetParks))
	amenities := Amenities(d, in)
	safety := Safety(d, in.features(feature.DatasetDengue))
	climate := Climate(d, in.Rain)

	return &score.Composite{
		District: d.Name,

		Overall:    score.Overall(air.Score, transport.Score, green.Score, amenities.Score, safety.Score),
		AirQuality: air.Score,
		Transport:  transport.Score,
		GreenSpace: green.Score,
		Amenities:  amenities.Score,
		Safety:     safety.Score,

		EnvScore:         score.Environmental(air.Score, green.Score, safety.Score, climate.Score),
		EnvAirQuality:    air.Score,
		EnvGreenCoverage: green.Score,
		EnvVectorSafety:  safety.Score,
		EnvClimate:       climate.Score,

		Details: score.Details{
			AirQuality: air,
			Transport:  transport,
			GreenSpace: green,
			Amenities:  amenities,
			Safety:     safety,
			Climate:    climate,
		},
		ComputedAt: now,
	}
}
