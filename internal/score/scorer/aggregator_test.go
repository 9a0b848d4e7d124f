package scorer

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"liveable/internal/district"
	"liveable/internal/feature"
	"liveable/internal/readings"
	"liveable/internal/score"
)

const testPSIBody = `{
  "items": [{"readings": {"psi_twenty_four_hourly": {"west": 53, "east": 54, "central": 55, "south": 52, "north": 51}}}]
}`

const testRainfallBody = `{
  "metadata": {"stations": [
    {"id": "S111", "name": "Bishan Station", "location": {"latitude": 1.3526, "longitude": 103.8352}}
  ]},
  "items": [{"readings": [{"station_id": "S111", "value": 2.5}]}]
}`

// parksNearBishan puts one park inside Bishan's 3 km radius.
const testGeoJSONBody = `{
  "type": "FeatureCollection",
  "features": [
    {"type": "Feature", "geometry": {"type": "Point", "coordinates": [103.8352, 1.3620]}, "properties": {}}
  ]
}`

type testEnv struct {
	agg       *Aggregator
	fetches   *atomic.Int32
	psiCalls  *atomic.Int32
	rainCalls *atomic.Int32
}

type spyFetcher struct {
	calls *atomic.Int32
	fail  bool
}

func (f *spyFetcher) Fetch(ctx context.Context, dataset string) ([]byte, error) {
	f.calls.Add(1)
	if f.fail {
		return nil, errors.New("asset host down")
	}
	return []byte(testGeoJSONBody), nil
}

func newTestEnv(t *testing.T, failReadings bool) *testEnv {
	t.Helper()

	var fetches, psiCalls, rainCalls atomic.Int32
	provider := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if failReadings {
			w.WriteHeader(http.StatusServiceUnavailable)
			return
		}
		switch r.URL.Path {
		case "/environment/psi":
			psiCalls.Add(1)
			w.Write([]byte(testPSIBody))
		case "/environment/rainfall":
			rainCalls.Add(1)
			w.Write([]byte(testRainfallBody))
		}
	}))
	t.Cleanup(provider.Close)

	store := feature.NewStore(&spyFetcher{calls: &fetches}, time.Hour)
	t.Cleanup(store.Close)
	client := readings.NewClient(provider.URL, 10*time.Minute, time.Second)
	t.Cleanup(client.Close)

	return &testEnv{
		agg:       NewAggregator(store, client),
		fetches:   &fetches,
		psiCalls:  &psiCalls,
		rainCalls: &rainCalls,
	}
}

func TestComputeOne_UnknownDistrict(t *testing.T) {
	env := newTestEnv(t, false)

	_, err := env.agg.ComputeOne(context.Background(), "Atlantis")
	require.Error(t, err)
	var unknown *UnknownDistrictError
	assert.ErrorAs(t, err, &unknown)
	assert.Contains(t, err.Error(), "unknown district: Atlantis")
}

func TestComputeOne_Bishan(t *testing.T) {
	env := newTestEnv(t, false)

	composite, err := env.agg.ComputeOne(context.Background(), "Bishan")
	require.NoError(t, err)

	assert.Equal(t, "Bishan", composite.District)
	// central PSI 55: 85 - 5*0.4 = 83
	assert.Equal(t, 83, composite.AirQuality)
	assert.Equal(t, score.SourceLive, composite.Details.AirQuality.Source)
	// 2 MRT stations: 40 + 16 = 56
	assert.Equal(t, 56, composite.Transport)
	// one park in range: 40 + 6 = 46
	assert.Equal(t, 46, composite.GreenSpace)
	// rainfall 2.5 at Bishan Station: 90
	assert.Equal(t, 90, composite.EnvClimate)
	assert.Equal(t, "Bishan Station", composite.Details.Climate.Bucket)

	assert.Equal(t,
		score.Overall(composite.AirQuality, composite.Transport, composite.GreenSpace,
			composite.Amenities, composite.Safety),
		composite.Overall)
	assert.Equal(t,
		score.Environmental(composite.AirQuality, composite.GreenSpace,
			composite.Safety, composite.EnvClimate),
		composite.EnvScore)
}

func TestComputeOne_Deterministic(t *testing.T) {
	env := newTestEnv(t, false)

	first, err := env.agg.ComputeOne(context.Background(), "Tampines")
	require.NoError(t, err)
	second, err := env.agg.ComputeOne(context.Background(), "Tampines")
	require.NoError(t, err)

	// Identical except for the computation timestamp.
	second.ComputedAt = first.ComputedAt
	assert.Equal(t, first, second)
}

func TestComputeAll_CoversCatalogAndHonorsWeights(t *testing.T) {
	env := newTestEnv(t, false)

	batch := env.agg.ComputeAll(context.Background())
	require.Len(t, batch.Districts, district.Count())
	assert.Equal(t, batchSources, batch.Sources)

	for name, composite := range batch.Districts {
		assert.Equal(t, name, composite.District)
		assert.Equal(t,
			score.Overall(composite.AirQuality, composite.Transport, composite.GreenSpace,
				composite.Amenities, composite.Safety),
			composite.Overall, name)
		assert.Equal(t,
			score.Environmental(composite.EnvAirQuality, composite.EnvGreenCoverage,
				composite.EnvVectorSafety, composite.EnvClimate),
			composite.EnvScore, name)

		for _, v := range []int{
			composite.Overall, composite.AirQuality, composite.Transport,
			composite.GreenSpace, composite.Amenities, composite.Safety,
			composite.EnvScore, composite.EnvClimate,
		} {
			assert.GreaterOrEqual(t, v, 0, name)
			assert.LessOrEqual(t, v, 100, name)
		}
	}
}

func TestComputeAll_LoadsSharedInputsOnce(t *testing.T) {
	env := newTestEnv(t, false)

	env.agg.ComputeAll(context.Background())

	assert.Equal(t, int32(len(feature.ScoringDatasets)), env.fetches.Load(),
		"one fetch per dataset regardless of district count")
	assert.Equal(t, int32(1), env.psiCalls.Load())
	assert.Equal(t, int32(1), env.rainCalls.Load())
}

func TestBatchEquivalence(t *testing.T) {
	env := newTestEnv(t, false)

	batch := env.agg.ComputeAll(context.Background())
	single, err := env.agg.ComputeOne(context.Background(), "Tampines")
	require.NoError(t, err)

	batched := batch.Districts["Tampines"]
	require.NotNil(t, batched)

	single.ComputedAt = batched.ComputedAt
	assert.Equal(t, batched, single)
}

func TestGracefulDegradation_FailingReadings(t *testing.T) {
	env := newTestEnv(t, true)

	composite, err := env.agg.ComputeOne(context.Background(), "Bishan")
	require.NoError(t, err)

	assert.Equal(t, 70, composite.AirQuality)
	assert.Equal(t, score.SourceDefault, composite.Details.AirQuality.Source)
	assert.Equal(t, 70, composite.EnvClimate)
	assert.Equal(t, score.SourceDefault, composite.Details.Climate.Source)

	// Still a complete, renderable composite.
	assert.Greater(t, composite.Overall, 0)
	assert.Greater(t, composite.EnvScore, 0)
}

func TestGracefulDegradation_FailingDatasets(t *testing.T) {
	var fetches atomic.Int32
	store := feature.NewStore(&spyFetcher{calls: &fetches, fail: true}, time.Hour)
	defer store.Close()

	provider := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path == "/environment/psi" {
			w.Write([]byte(testPSIBody))
			return
		}
		w.Write([]byte(testRainfallBody))
	}))
	defer provider.Close()
	client := readings.NewClient(provider.URL, time.Minute, time.Second)
	defer client.Close()

	agg := NewAggregator(store, client)
	composite, err := agg.ComputeOne(context.Background(), "Bishan")
	require.NoError(t, err)

	// Feature counts degrade to zero, formulas fall back to their bases.
	assert.Equal(t, 40, composite.GreenSpace)
	assert.Equal(t, 35, composite.Amenities)
	assert.Equal(t, 85, composite.Safety)
}
