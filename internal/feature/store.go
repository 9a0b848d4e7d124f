package feature

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"sync"
	"time"

	"github.com/paulmach/orb"
	"github.com/paulmach/orb/geojson"
	"golang.org/x/sync/singleflight"

	"liveable/internal/cache"
)

// Dataset names known to the scoring engine.
const (
	DatasetParks        = "parks"
	DatasetHawkers      = "hawkers"
	DatasetSupermarkets = "supermarkets"
	DatasetGyms         = "gyms"
	DatasetChildcare    = "childcare"
	DatasetCycling      = "cycling"
	DatasetDengue       = "dengue"
)

// filenames maps dataset names to the asset files they are served from.
var filenames = map[string]string{
	DatasetParks:        "Parks.geojson",
	DatasetHawkers:      "HawkerCentresGEOJSON.geojson",
	DatasetSupermarkets: "SupermarketsGEOJSON.geojson",
	DatasetGyms:         "GymsSGGEOJSON.geojson",
	DatasetChildcare:    "ChildCareServices.geojson",
	DatasetCycling:      "CyclingPathNetworkGEOJSON.geojson",
	DatasetDengue:       "DengueClustersGEOJSON.geojson",
}

// ScoringDatasets are the datasets one aggregation cycle loads.
var ScoringDatasets = []string{
	DatasetParks, DatasetHawkers, DatasetSupermarkets,
	DatasetGyms, DatasetChildcare, DatasetCycling, DatasetDengue,
}

// Feature is a single geospatial record from a static dataset.
// Properties are carried for display only; scoring uses the geometry.
type Feature struct {
	Geometry   orb.Geometry       `json:"geometry"`
	Properties geojson.Properties `json:"properties"`
}

// Geometries extracts the geometry slice the geo primitives operate on.
func Geometries(feats []Feature) []orb.Geometry {
	geoms := make([]orb.Geometry, len(feats))
	for i, f := range feats {
		geoms[i] = f.Geometry
	}
	return geoms
}

// Fetcher retrieves the raw bytes of a named dataset.
type Fetcher interface {
	Fetch(ctx context.Context, dataset string) ([]byte, error)
}

// HTTPFetcher fetches dataset files from a static asset base URL.
type HTTPFetcher struct {
	baseURL string
	client  *http.Client
}

// NewHTTPFetcher creates a fetcher for the given asset base URL with a
// bounded request timeout.
func NewHTTPFetcher(baseURL string, timeout time.Duration) *HTTPFetcher {
	return &HTTPFetcher{
		baseURL: baseURL,
		client:  &http.Client{Timeout: timeout},
	}
}

// Fetch downloads the file backing the named dataset.
func (f *HTTPFetcher) Fetch(ctx context.Context, dataset string) ([]byte, error) {
	file, ok := filenames[dataset]
	if !ok {
		return nil, fmt.Errorf("unknown dataset %q", dataset)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, f.baseURL+"/"+file, nil)
	if err != nil {
		return nil, err
	}
	resp, err := f.client.Do(req)
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("dataset %s: status %s", dataset, resp.Status)
	}
	return io.ReadAll(resp.Body)
}

// Store loads named geospatial feature collections and caches them as
// immutable in-memory slices. Cached collections stay valid for the
// configured TTL (static data, typically an hour). Concurrent loads of the
// same uncached dataset share one fetch via singleflight, so the five
// dimension scorers requesting overlapping datasets within a single
// aggregation call never trigger redundant downloads.
type Store struct {
	fetcher Fetcher
	cache   *cache.Cache[[]Feature]
	group   singleflight.Group
}

// NewStore creates a feature store over the given fetcher with the given
// cache TTL.
func NewStore(fetcher Fetcher, ttl time.Duration) *Store {
	return &Store{
		fetcher: fetcher,
		cache:   cache.New[[]Feature](ttl),
	}
}

// Load returns the features of the named dataset. A fetch or parse failure
// degrades to an empty collection and a log line: a missing dataset reduces
// one scorer's inputs to "no data", it never fails a composite computation.
func (s *Store) Load(ctx context.Context, dataset string) []Feature {
	if feats, ok := s.cache.Get(dataset); ok {
		return feats
	}

	v, err, _ := s.group.Do(dataset, func() (any, error) {
		// Re-check under the flight: a concurrent caller may have
		// populated the cache while this one was queued.
		if feats, ok := s.cache.Get(dataset); ok {
			return feats, nil
		}

		body, err := s.fetcher.Fetch(ctx, dataset)
		if err != nil {
			return nil, err
		}
		feats, err := parse(body)
		if err != nil {
			return nil, err
		}
		s.cache.Set(dataset, feats)
		return feats, nil
	})
	if err != nil {
		slog.Warn("dataset load failed", "dataset", dataset, "error", err)
		return []Feature{}
	}
	return v.([]Feature)
}

// LoadAll loads a batch of datasets concurrently and returns them keyed by
// name. Used once per aggregation cycle.
func (s *Store) LoadAll(ctx context.Context, datasets ...string) map[string][]Feature {
	var (
		mu     sync.Mutex
		wg     sync.WaitGroup
		result = make(map[string][]Feature, len(datasets))
	)

	for _, dataset := range datasets {
		wg.Add(1)
		go func() {
			defer wg.Done()
			feats := s.Load(ctx, dataset)
			mu.Lock()
			result[dataset] = feats
			mu.Unlock()
		}()
	}

	wg.Wait()
	return result
}

// Clear drops all cached datasets.
func (s *Store) Clear() {
	s.cache.Clear()
}

// Close releases the cache janitor.
func (s *Store) Close() {
	s.cache.Close()
}

// parse narrows a GeoJSON feature collection to the typed Feature slice the
// scorers depend on. Features without geometry are dropped here.
func parse(body []byte) ([]Feature, error) {
	fc, err := geojson.UnmarshalFeatureCollection(body)
	if err != nil {
		return nil, err
	}

	feats := make([]Feature, 0, len(fc.Features))
	for _, f := range fc.Features {
		if f == nil || f.Geometry == nil {
			continue
		}
		feats = append(feats, Feature{
			Geometry:   f.Geometry,
			Properties: f.Properties,
		})
	}
	return feats, nil
}
