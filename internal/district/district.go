package district

import "sort"

// Region is the coarse geographic bucket used to match districts to
// regionally reported environmental readings.
type Region string

const (
	RegionNorth   Region = "north"
	RegionSouth   Region = "south"
	RegionEast    Region = "east"
	RegionWest    Region = "west"
	RegionCentral Region = "central"
)

// District is one planning area: a representative centroid plus the region
// bucket its environmental readings come from.
type District struct {
	Name   string  `json:"name"`
	Lat    float64 `json:"lat"`
	Lng    float64 `json:"lng"`
	Region Region  `json:"region"`
}

// catalog is the fixed set of Singapore planning areas. It is build-time
// data: districts are never created or destroyed at runtime.
var catalog = map[string]District{
	"Ang Mo Kio":              {"Ang Mo Kio", 1.3691, 103.8454, RegionNorth},
	"Bedok":                   {"Bedok", 1.3236, 103.9273, RegionEast},
	"Bishan":                  {"Bishan", 1.3526, 103.8352, RegionCentral},
	"Boon Lay":                {"Boon Lay", 1.3187, 103.7064, RegionWest},
	"Bukit Batok":             {"Bukit Batok", 1.3590, 103.7637, RegionWest},
	"Bukit Merah":             {"Bukit Merah", 1.2819, 103.8239, RegionSouth},
	"Bukit Panjang":           {"Bukit Panjang", 1.3774, 103.7719, RegionWest},
	"Bukit Timah":             {"Bukit Timah", 1.3294, 103.8021, RegionCentral},
	"Central Water Catchment": {"Central Water Catchment", 1.3724, 103.8133, RegionCentral},
	"Changi":                  {"Changi", 1.3644, 103.9915, RegionEast},
	"Changi Bay":              {"Changi Bay", 1.3311, 104.0086, RegionEast},
	"Choa Chu Kang":           {"Choa Chu Kang", 1.3840, 103.7470, RegionWest},
	"Clementi":                {"Clementi", 1.3162, 103.7649, RegionWest},
	"Downtown Core":           {"Downtown Core", 1.2789, 103.8536, RegionCentral},
	"Geylang":                 {"Geylang", 1.3201, 103.8918, RegionCentral},
	"Hougang":                 {"Hougang", 1.3612, 103.8863, RegionNorth},
	"Jurong East":             {"Jurong East", 1.3329, 103.7436, RegionWest},
	"Jurong West":             {"Jurong West", 1.3404, 103.7090, RegionWest},
	"Kallang":                 {"Kallang", 1.3100, 103.8651, RegionCentral},
	"Lim Chu Kang":            {"Lim Chu Kang", 1.4258, 103.7122, RegionWest},
	"Mandai":                  {"Mandai", 1.4044, 103.7888, RegionNorth},
	"Marina East":             {"Marina East", 1.2807, 103.8636, RegionCentral},
	"Marina South":            {"Marina South", 1.2730, 103.8607, RegionCentral},
	"Marine Parade":           {"Marine Parade", 1.3017, 103.9073, RegionEast},
	"Museum":                  {"Museum", 1.2966, 103.8485, RegionCentral},
	"Newton":                  {"Newton", 1.3138, 103.8381, RegionCentral},
	"North-Eastern Islands":   {"North-Eastern Islands", 1.3789, 104.0183, RegionEast},
	"Novena":                  {"Novena", 1.3204, 103.8438, RegionCentral},
	"Orchard":                 {"Orchard", 1.3048, 103.8318, RegionCentral},
	"Outram":                  {"Outram", 1.2801, 103.8387, RegionCentral},
	"Pasir Ris":               {"Pasir Ris", 1.3721, 103.9474, RegionEast},
	"Paya Lebar":              {"Paya Lebar", 1.3180, 103.8914, RegionCentral},
	"Pioneer":                 {"Pioneer", 1.3149, 103.6973, RegionWest},
	"Punggol":                 {"Punggol", 1.4041, 103.9025, RegionNorth},
	"Queenstown":              {"Queenstown", 1.2942, 103.7861, RegionCentral},
	"River Valley":            {"River Valley", 1.2916, 103.8302, RegionCentral},
	"Rochor":                  {"Rochor", 1.3036, 103.8554, RegionCentral},
	"Seletar":                 {"Seletar", 1.4047, 103.8679, RegionNorth},
	"Sembawang":               {"Sembawang", 1.4491, 103.8185, RegionNorth},
	"Sengkang":                {"Sengkang", 1.3868, 103.8914, RegionNorth},
	"Serangoon":               {"Serangoon", 1.3554, 103.8679, RegionNorth},
	"Simpang":                 {"Simpang", 1.4315, 103.8648, RegionNorth},
	"Singapore River":         {"Singapore River", 1.2879, 103.8461, RegionCentral},
	"Southern Islands":        {"Southern Islands", 1.2300, 103.8300, RegionSouth},
	"Straits View":            {"Straits View", 1.2750, 103.8650, RegionSouth},
	"Sungei Kadut":            {"Sungei Kadut", 1.4172, 103.7548, RegionNorth},
	"Tampines":                {"Tampines", 1.3496, 103.9568, RegionEast},
	"Tanglin":                 {"Tanglin", 1.3077, 103.8123, RegionCentral},
	"Tengah":                  {"Tengah", 1.3685, 103.7390, RegionWest},
	"Toa Payoh":               {"Toa Payoh", 1.3343, 103.8563, RegionCentral},
	"Tuas":                    {"Tuas", 1.3187, 103.6363, RegionWest},
	"Western Islands":         {"Western Islands", 1.2600, 103.7200, RegionWest},
	"Western Water Catchment": {"Western Water Catchment", 1.3842, 103.6989, RegionWest},
	"Woodlands":               {"Woodlands", 1.4382, 103.7890, RegionNorth},
	"Yishun":                  {"Yishun", 1.4304, 103.8354, RegionNorth},
}

// mrtStations maps each district to its MRT station count. Static data,
// updated as of 2024.
var mrtStations = map[string]int{
	"Ang Mo Kio":              3,
	"Bedok":                   4,
	"Bishan":                  2,
	"Boon Lay":                2,
	"Bukit Batok":             2,
	"Bukit Merah":             5,
	"Bukit Panjang":           3,
	"Bukit Timah":             4,
	"Central Water Catchment": 0,
	"Changi":                  2,
	"Changi Bay":              0,
	"Choa Chu Kang":           2,
	"Clementi":                2,
	"Downtown Core":           8,
	"Geylang":                 3,
	"Hougang":                 3,
	"Jurong East":             2,
	"Jurong West":             3,
	"Kallang":                 3,
	"Lim Chu Kang":            0,
	"Mandai":                  0,
	"Marina East":             1,
	"Marina South":            2,
	"Marine Parade":           3,
	"Museum":                  3,
	"Newton":                  1,
	"North-Eastern Islands":   0,
	"Novena":                  2,
	"Orchard":                 3,
	"Outram":                  4,
	"Pasir Ris":               3,
	"Paya Lebar":              2,
	"Pioneer":                 1,
	"Punggol":                 3,
	"Queenstown":              4,
	"River Valley":            1,
	"Rochor":                  2,
	"Seletar":                 0,
	"Sembawang":               2,
	"Sengkang":                4,
	"Serangoon":               3,
	"Simpang":                 0,
	"Singapore River":         2,
	"Southern Islands":        0,
	"Straits View":            0,
	"Sungei Kadut":            0,
	"Tampines":                5,
	"Tanglin":                 1,
	"Tengah":                  0,
	"Toa Payoh":               2,
	"Tuas":                    0,
	"Western Islands":         0,
	"Western Water Catchment": 0,
	"Woodlands":               3,
	"Yishun":                  2,
}

// Lookup returns the district with the given name.
func Lookup(name string) (District, bool) {
	d, ok := catalog[name]
	return d, ok
}

// Names returns all district names in sorted order, so batch computations
// iterate deterministically.
func Names() []string {
	names := make([]string, 0, len(catalog))
	for name := range catalog {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// Count returns the catalog size.
func Count() int {
	return len(catalog)
}

// MRTStations returns the static MRT station count for a district,
// 0 for unknown names.
func MRTStations(name string) int {
	return mrtStations[name]
}
