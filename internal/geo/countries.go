// Package geo holds the static country coordinate table used for globe markers,
// nearest-country lookups and translating country names into provider query codes.
package geo

// Country is one marker on the globe
type Country struct {
	Name string  `json:"name"`
	Lat  float64 `json:"lat"`
	Lng  float64 `json:"lng"`
	ISO2 string  `json:"iso2"`
}

var countries = []Country{
	{"United States", 39.8283, -98.5795, "US"},
	{"China", 35.8617, 104.1954, "CN"},
	{"India", 20.5937, 78.9629, "IN"},
	{"Brazil", -14.2350, -51.9253, "BR"},
	{"Russia", 61.5240, 105.3188, "RU"},
	{"Japan", 36.2048, 138.2529, "JP"},
	{"Germany", 51.1657, 10.4515, "DE"},
	{"United Kingdom", 55.3781, -3.4360, "GB"},
	{"France", 46.2276, 2.2137, "FR"},
	{"Italy", 41.8719, 12.5674, "IT"},
	{"Canada", 56.1304, -106.3468, "CA"},
	{"Australia", -25.2744, 133.7751, "AU"},
	{"Mexico", 23.6345, -102.5528, "MX"},
	{"South Korea", 35.9078, 127.7669, "KR"},
	{"Spain", 40.4637, -3.7492, "ES"},
	{"Turkey", 38.9637, 35.2433, "TR"},
	{"Indonesia", -0.7893, 113.9213, "ID"},
	{"Netherlands", 52.1326, 5.2913, "NL"},
	{"Saudi Arabia", 23.8859, 45.0792, "SA"},
	{"Switzerland", 46.8182, 8.2275, "CH"},
	{"Taiwan", 23.6978, 120.9605, "TW"},
	{"Belgium", 50.5039, 4.4699, "BE"},
	{"Argentina", -38.4161, -63.6167, "AR"},
	{"Sweden", 60.1282, 18.6435, "SE"},
	{"Poland", 51.9194, 19.1451, "PL"},
	{"Ireland", 53.4129, -8.2439, "IE"},
	{"Israel", 31.0461, 34.8516, "IL"},
	{"Nigeria", 9.0820, 8.6753, "NG"},
	{"Egypt", 26.0975, 30.0444, "EG"},
	{"South Africa", -30.5595, 22.9375, "ZA"},
	{"Thailand", 15.8700, 100.9925, "TH"},
	{"Malaysia", 4.2105, 101.9758, "MY"},
	{"Singapore", 1.3521, 103.8198, "SG"},
	{"Philippines", 12.8797, 121.7740, "PH"},
	{"Vietnam", 14.0583, 108.2772, "VN"},
	{"Chile", -35.6751, -71.5430, "CL"},
	{"Norway", 60.4720, 8.4689, "NO"},
	{"Finland", 61.9241, 25.7482, "FI"},
	{"Denmark", 56.2639, 9.5018, "DK"},
	{"Ukraine", 48.3794, 31.1656, "UA"},
	{"Bangladesh", 23.6850, 90.3563, "BD"},
	{"Pakistan", 30.3753, 69.3451, "PK"},
	{"Kenya", -0.0236, 37.9062, "KE"},
	{"Morocco", 31.7917, -7.0926, "MA"},
	{"New Zealand", -40.9006, 174.8860, "NZ"},
	{"Portugal", 39.3999, -8.2245, "PT"},
	{"Greece", 39.0742, 21.8243, "GR"},
	{"Czech Republic", 49.8175, 15.4730, "CZ"},
	{"Hungary", 47.1625, 19.5033, "HU"},
	{"Austria", 47.5162, 14.5501, "AT"},
	{"Colombia", 4.5709, -74.2973, "CO"},
}

// byKey indexes the table by normalized name and ISO2 code
var byKey = func() map[string]Country {
	m := make(map[string]Country, len(countries)*2)
	for _, c := range countries {
		m[normalizeKey(c.Name)] = c
		m[normalizeKey(c.ISO2)] = c
	}
	return m
}()

// Countries returns a copy of the table in declaration order
func Countries() []Country {
	out := make([]Country, len(countries))
	copy(out, countries)
	return out
}
