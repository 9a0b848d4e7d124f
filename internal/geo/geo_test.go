package geo

import (
	"testing"

	"github.com/paulmach/orb"
	"github.com/stretchr/testify/assert"
)

// metersToLatDegrees converts a northward offset in meters to degrees of
// latitude, accurate enough for test fixtures at city scale.
func metersToLatDegrees(m float64) float64 {
	return m / 111194.9
}

func TestDistance_IdenticalCoordinates(t *testing.T) {
	assert.Equal(t, 0.0, Distance(1.3521, 103.8198, 1.3521, 103.8198))
}

func TestDistance_KnownPair(t *testing.T) {
	// Bishan to Tampines, roughly 13.5 km.
	d := Distance(1.3526, 103.8352, 1.3496, 103.9568)
	assert.InDelta(t, 13530, d, 200)
}

func TestDistance_NorthwardOffset(t *testing.T) {
	d := Distance(1.35, 103.82, 1.35+metersToLatDegrees(1000), 103.82)
	assert.InDelta(t, 1000, d, 5)
}

func TestCentroid_Point(t *testing.T) {
	p, ok := Centroid(orb.Point{103.82, 1.35})
	assert.True(t, ok)
	assert.Equal(t, orb.Point{103.82, 1.35}, p)
}

func TestCentroid_Polygon(t *testing.T) {
	poly := orb.Polygon{{
		{103.80, 1.30}, {103.84, 1.30}, {103.84, 1.34}, {103.80, 1.34},
	}}
	p, ok := Centroid(poly)
	assert.True(t, ok)
	assert.InDelta(t, 103.82, p.Lon(), 1e-9)
	assert.InDelta(t, 1.32, p.Lat(), 1e-9)
}

func TestCentroid_LineMidpointByIndex(t *testing.T) {
	line := orb.LineString{{103.80, 1.30}, {103.81, 1.31}, {103.82, 1.32}}
	p, ok := Centroid(line)
	assert.True(t, ok)
	assert.Equal(t, orb.Point{103.81, 1.31}, p)
}

func TestCentroid_Unsupported(t *testing.T) {
	_, ok := Centroid(orb.MultiPoint{{103.80, 1.30}})
	assert.False(t, ok)

	_, ok = Centroid(orb.Polygon{})
	assert.False(t, ok)
}

func TestRadiusSearchScenario(t *testing.T) {
	const lat, lng = 1.35, 103.82
	geoms := []orb.Geometry{
		orb.Point{lng, lat + metersToLatDegrees(100)},
		orb.Point{lng, lat + metersToLatDegrees(600)},
		orb.Point{lng, lat + metersToLatDegrees(3000)},
	}

	assert.Equal(t, 2, CountWithinRadius(lat, lng, geoms, 2000))

	nearest := Nearest(lat, lng, geoms, 2000, 5)
	assert.Len(t, nearest, 2)
	assert.Equal(t, 0, nearest[0].Index)
	assert.Equal(t, 1, nearest[1].Index)
	assert.InDelta(t, 100, nearest[0].Meters, 5)
	assert.InDelta(t, 600, nearest[1].Meters, 5)
}

func TestNearest_LimitAndEmpty(t *testing.T) {
	const lat, lng = 1.35, 103.82
	geoms := []orb.Geometry{
		orb.Point{lng, lat + metersToLatDegrees(300)},
		orb.Point{lng, lat + metersToLatDegrees(200)},
		orb.Point{lng, lat + metersToLatDegrees(100)},
	}

	nearest := Nearest(lat, lng, geoms, 5000, 2)
	assert.Len(t, nearest, 2)
	assert.Equal(t, 2, nearest[0].Index)
	assert.Equal(t, 1, nearest[1].Index)

	assert.Empty(t, Nearest(lat, lng, geoms, 50, 10))
}

func TestNearest_SkipsUnsupportedGeometry(t *testing.T) {
	const lat, lng = 1.35, 103.82
	geoms := []orb.Geometry{
		orb.MultiPoint{{lng, lat}},
		orb.Point{lng, lat + metersToLatDegrees(100)},
	}
	nearest := Nearest(lat, lng, geoms, 2000, 10)
	assert.Len(t, nearest, 1)
	assert.Equal(t, 1, nearest[0].Index)
}
