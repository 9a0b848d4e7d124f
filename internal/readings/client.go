package readings

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"math"
	"net/http"
	"time"

	"golang.org/x/sync/singleflight"

	"liveable/internal/cache"
)

// Measurement kinds served by the provider.
const (
	kindPSI      = "psi"
	kindRainfall = "rainfall"
)

// RegionValues holds one regionally bucketed reading per region name.
type RegionValues map[string]float64

// Region returns the reading for a named region bucket.
func (rv RegionValues) Region(name string) (float64, bool) {
	if rv == nil {
		return 0, false
	}
	v, ok := rv[name]
	return v, ok
}

// Station is one reporting station with its coordinate.
type Station struct {
	ID   string
	Name string
	Lat  float64
	Lng  float64
}

// StationReading is a single station-bucketed scalar measurement.
type StationReading struct {
	StationID string
	Value     float64
}

// Rainfall is the latest precipitation snapshot: per-station readings plus
// the station coordinates needed for nearest-station lookup.
type Rainfall struct {
	Readings []StationReading
	Stations map[string]Station
}

// NearestValue is the reading of the station closest to a query point.
type NearestValue struct {
	Value   float64
	Station string
}

// NearestStation finds the reading of the closest reporting station using a
// euclidean approximation over raw coordinates, which is acceptable at city
// scale. Returns nil when no reading has a located station.
func NearestStation(r *Rainfall, lat, lng float64) *NearestValue {
	if r == nil {
		return nil
	}

	var nearest *NearestValue
	minDist := math.Inf(1)
	for _, reading := range r.Readings {
		station, ok := r.Stations[reading.StationID]
		if !ok {
			continue
		}
		dLat := station.Lat - lat
		dLng := station.Lng - lng
		dist := math.Sqrt(dLat*dLat + dLng*dLng)
		if dist < minDist {
			minDist = dist
			nearest = &NearestValue{Value: reading.Value, Station: station.Name}
		}
	}
	return nearest
}

// Client fetches current environmental measurements from the data provider.
// Readings drive user-visible "current conditions", so they are cached for a
// short TTL only. Network or parse failures degrade to nil: the dimension
// scorers treat a nil snapshot as "use default", the aggregation path never
// sees an error from here.
type Client struct {
	baseURL string
	client  *http.Client

	psiCache  *cache.Cache[RegionValues]
	rainCache *cache.Cache[*Rainfall]
	group     singleflight.Group
}

// NewClient creates a readings client for the provider base URL
// (e.g. "https://api.data.gov.sg/v1") with the given cache TTL and
// request timeout.
func NewClient(baseURL string, ttl, timeout time.Duration) *Client {
	return &Client{
		baseURL:   baseURL,
		client:    &http.Client{Timeout: timeout},
		psiCache:  cache.New[RegionValues](ttl),
		rainCache: cache.New[*Rainfall](ttl),
	}
}

// PSI returns the latest 24-hour air particulate index per region, or nil
// when the provider is unreachable.
func (c *Client) PSI(ctx context.Context) RegionValues {
	if v, ok := c.psiCache.Get(kindPSI); ok {
		return v
	}

	v, err, _ := c.group.Do(kindPSI, func() (any, error) {
		if cached, ok := c.psiCache.Get(kindPSI); ok {
			return cached, nil
		}
		values, err := c.fetchPSI(ctx)
		if err != nil {
			return nil, err
		}
		c.psiCache.Set(kindPSI, values)
		return values, nil
	})
	if err != nil {
		slog.Warn("psi fetch failed", "error", err)
		return nil
	}
	return v.(RegionValues)
}

// Rainfall returns the latest precipitation snapshot, or nil when the
// provider is unreachable.
func (c *Client) Rainfall(ctx context.Context) *Rainfall {
	if v, ok := c.rainCache.Get(kindRainfall); ok {
		return v
	}

	v, err, _ := c.group.Do(kindRainfall, func() (any, error) {
		if cached, ok := c.rainCache.Get(kindRainfall); ok {
			return cached, nil
		}
		rain, err := c.fetchRainfall(ctx)
		if err != nil {
			return nil, err
		}
		c.rainCache.Set(kindRainfall, rain)
		return rain, nil
	})
	if err != nil {
		slog.Warn("rainfall fetch failed", "error", err)
		return nil
	}
	return v.(*Rainfall)
}

// Clear drops all cached readings.
func (c *Client) Clear() {
	c.psiCache.Clear()
	c.rainCache.Clear()
}

// Close releases the cache janitors.
func (c *Client) Close() {
	c.psiCache.Close()
	c.rainCache.Close()
}

// Provider payload shapes. Only the fields the core extracts are declared;
// provider-specific naming stays inside this package.

type psiPayload struct {
	Items []struct {
		Readings struct {
			PSITwentyFourHourly map[string]float64 `json:"psi_twenty_four_hourly"`
		} `json:"readings"`
	} `json:"items"`
}

type rainfallPayload struct {
	Metadata struct {
		Stations []struct {
			ID       string `json:"id"`
			Name     string `json:"name"`
			Location struct {
				Latitude  float64 `json:"latitude"`
				Longitude float64 `json:"longitude"`
			} `json:"location"`
		} `json:"stations"`
	} `json:"metadata"`
	Items []struct {
		Readings []struct {
			StationID string  `json:"station_id"`
			Value     float64 `json:"value"`
		} `json:"readings"`
	} `json:"items"`
}

func (c *Client) fetchPSI(ctx context.Context) (RegionValues, error) {
	body, err := c.fetch(ctx, "/environment/psi")
	if err != nil {
		return nil, err
	}

	var payload psiPayload
	if err := json.Unmarshal(body, &payload); err != nil {
		return nil, err
	}
	if len(payload.Items) == 0 {
		return nil, fmt.Errorf("psi: empty items")
	}
	return RegionValues(payload.Items[0].Readings.PSITwentyFourHourly), nil
}

func (c *Client) fetchRainfall(ctx context.Context) (*Rainfall, error) {
	body, err := c.fetch(ctx, "/environment/rainfall")
	if err != nil {
		return nil, err
	}

	var payload rainfallPayload
	if err := json.Unmarshal(body, &payload); err != nil {
		return nil, err
	}
	if len(payload.Items) == 0 {
		return nil, fmt.Errorf("rainfall: empty items")
	}

	rain := Rainfall{
		Stations: make(map[string]Station, len(payload.Metadata.Stations)),
	}
	for _, s := range payload.Metadata.Stations {
		rain.Stations[s.ID] = Station{
			ID:   s.ID,
			Name: s.Name,
			Lat:  s.Location.Latitude,
			Lng:  s.Location.Longitude,
		}
	}
	for _, r := range payload.Items[0].Readings {
		rain.Readings = append(rain.Readings, StationReading{
			StationID: r.StationID,
			Value:     r.Value,
		})
	}
	return &rain, nil
}

func (c *Client) fetch(ctx context.Context, endpoint string) ([]byte, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.baseURL+endpoint, nil)
	if err != nil {
		return nil, err
	}
	resp, err := c.client.Do(req)
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("%s: status %s", endpoint, resp.Status)
	}
	return io.ReadAll(resp.Body)
}
