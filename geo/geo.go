// Package geo provides great-circle distance math shared by the store
// discovery, cart and order flows.
package geo

import "math"

const earthRadiusKm = 6371

// DistanceKm returns the haversine distance in kilometers between two
// points given in decimal degrees. It is symmetric and returns 0 for
// identical points.
func DistanceKm(lat1, lon1, lat2, lon2 float64) float64 {
	dLat := deg2rad(lat2 - lat1)
	dLon := deg2rad(lon2 - lon1)

	a := math.Sin(dLat/2)*math.Sin(dLat/2) +
		math.Cos(deg2rad(lat1))*math.Cos(deg2rad(lat2))*
			math.Sin(dLon/2)*math.Sin(dLon/2)

	c := 2 * math.Atan2(math.Sqrt(a), math.Sqrt(1-a))
	return earthRadiusKm * c
}

func deg2rad(deg float64) float64 {
	return deg * (math.Pi / 180)
}

// HasCoords reports whether a lat/lng pair is resolvable. The source data
// stores missing coordinates as 0, so (0,0) counts as missing; callers must
// check this before asking for a distance.
func HasCoords(lat, lng float64) bool {
	return lat != 0 && lng != 0
}
