package geo

import (
	"math"
	"sort"

	"github.com/paulmach/orb"
)

// earthRadius is the fixed mean Earth radius in meters used for all
// great-circle calculations.
const earthRadius = 6371000.0

// Distance returns the great-circle (haversine) distance in meters between
// two coordinates. Identical coordinates yield exactly 0.
func Distance(lat1, lng1, lat2, lng2 float64) float64 {
	if lat1 == lat2 && lng1 == lng2 {
		return 0
	}

	dLat := (lat2 - lat1) * math.Pi / 180
	dLng := (lng2 - lng1) * math.Pi / 180

	a := math.Sin(dLat/2)*math.Sin(dLat/2) +
		math.Cos(lat1*math.Pi/180)*math.Cos(lat2*math.Pi/180)*
			math.Sin(dLng/2)*math.Sin(dLng/2)
	if a > 1 {
		a = 1
	}

	return earthRadius * 2 * math.Atan2(math.Sqrt(a), math.Sqrt(1-a))
}

// Centroid reduces a geometry to a representative point.
// Points map to themselves, polygons to the unweighted mean of the first
// ring's vertices, line strings to the middle vertex by index.
// The second return value is false for unsupported or empty geometries;
// callers are expected to skip such features.
func Centroid(g orb.Geometry) (orb.Point, bool) {
	switch geom := g.(type) {
	case orb.Point:
		return geom, true
	case orb.Polygon:
		if len(geom) == 0 || len(geom[0]) == 0 {
			return orb.Point{}, false
		}
		ring := geom[0]
		var sumLng, sumLat float64
		for _, p := range ring {
			sumLng += p.Lon()
			sumLat += p.Lat()
		}
		n := float64(len(ring))
		return orb.Point{sumLng / n, sumLat / n}, true
	case orb.LineString:
		if len(geom) == 0 {
			return orb.Point{}, false
		}
		return geom[len(geom)/2], true
	default:
		return orb.Point{}, false
	}
}

// CountWithinRadius counts geometries whose centroid lies within radius
// meters of the given coordinate. The boundary is inclusive. Geometries
// without a resolvable centroid are skipped.
func CountWithinRadius(lat, lng float64, geoms []orb.Geometry, radius float64) int {
	count := 0
	for _, g := range geoms {
		c, ok := Centroid(g)
		if !ok {
			continue
		}
		if Distance(lat, lng, c.Lat(), c.Lon()) <= radius {
			count++
		}
	}
	return count
}

// Neighbor is one result of a Nearest query: the index of the matched
// geometry in the input slice and its distance from the query point.
type Neighbor struct {
	Index  int
	Meters float64
}

// Nearest returns up to limit geometries within maxDistance meters of the
// given coordinate, ascending by distance. Ties keep input order. The result
// is empty, never nil-with-error, when nothing qualifies.
func Nearest(lat, lng float64, geoms []orb.Geometry, maxDistance float64, limit int) []Neighbor {
	neighbors := make([]Neighbor, 0)
	for i, g := range geoms {
		c, ok := Centroid(g)
		if !ok {
			continue
		}
		d := Distance(lat, lng, c.Lat(), c.Lon())
		if d <= maxDistance {
			neighbors = append(neighbors, Neighbor{Index: i, Meters: d})
		}
	}

	sort.SliceStable(neighbors, func(i, j int) bool {
		return neighbors[i].Meters < neighbors[j].Meters
	})

	if limit >= 0 && len(neighbors) > limit {
		neighbors = neighbors[:limit]
	}
	return neighbors
}
