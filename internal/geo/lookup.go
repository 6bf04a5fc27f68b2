package geo

import (
	"math"
	"strings"
	"unicode"
)

// NearestThreshold is the maximum latitude and longitude difference, in degrees,
// for a point to match a country marker.
const NearestThreshold = 5.0

const earthRadiusKm = 6371.0

// Lookup finds a country by name or ISO2 code, ignoring case and punctuation
func Lookup(name string) (Country, bool) {
	key := normalizeKey(name)
	if key == "" {
		return Country{}, false
	}
	c, ok := byKey[key]
	return c, ok
}

// Nearest returns the closest country whose marker lies within NearestThreshold degrees
// of (lat, lng) on both axes. The table is small, so this is a linear scan.
func Nearest(lat, lng float64) (Country, bool) {
	var (
		best     Country
		bestDist = math.Inf(1)
		found    bool
	)
	for _, c := range countries {
		if math.Abs(c.Lat-lat) >= NearestThreshold || math.Abs(c.Lng-lng) >= NearestThreshold {
			continue
		}
		d := haversine(lat, lng, c.Lat, c.Lng)
		if d < bestDist {
			best, bestDist, found = c, d, true
		}
	}
	return best, found
}

// Distance returns the great-circle distance in kilometres between two countries' markers
func Distance(from, to string) (float64, bool) {
	a, ok := Lookup(from)
	if !ok {
		return 0, false
	}
	b, ok := Lookup(to)
	if !ok {
		return 0, false
	}
	return haversine(a.Lat, a.Lng, b.Lat, b.Lng), true
}

func haversine(lat1, lng1, lat2, lng2 float64) float64 {
	dLat := toRadians(lat2 - lat1)
	dLng := toRadians(lng2 - lng1)
	a := math.Sin(dLat/2)*math.Sin(dLat/2) +
		math.Cos(toRadians(lat1))*math.Cos(toRadians(lat2))*math.Sin(dLng/2)*math.Sin(dLng/2)
	return earthRadiusKm * 2 * math.Atan2(math.Sqrt(a), math.Sqrt(1-a))
}

func toRadians(deg float64) float64 {
	return deg * math.Pi / 180
}

// normalizeKey lowercases s and collapses everything that is not a letter or digit
// into single spaces, so "south-korea" and "South Korea" share a key.
func normalizeKey(s string) string {
	s = strings.ToLower(strings.TrimSpace(s))
	var b strings.Builder
	b.Grow(len(s))
	prevSpace := false

	for _, r := range s {
		if unicode.IsLetter(r) || unicode.IsDigit(r) {
			b.WriteRune(r)
			prevSpace = false
			continue
		}
		if !prevSpace {
			b.WriteByte(' ')
			prevSpace = true
		}
	}

	return strings.TrimSpace(b.String())
}
