package geo

import "math"

// earthRadiusMiles is the mean Earth radius used for great-circle distances.
const earthRadiusMiles = 3958.8

// Miles returns the great-circle distance in miles between two points using
// the haversine formula. It is a pure function: any finite latitude/longitude
// pair is accepted and produces a finite result; range validation belongs to
// the caller.
func Miles(lat1, lon1, lat2, lon2 float64) float64 {
	lat1Rad := toRadians(lat1)
	lat2Rad := toRadians(lat2)
	deltaLat := toRadians(lat2 - lat1)
	deltaLon := toRadians(lon2 - lon1)

	a := math.Sin(deltaLat/2)*math.Sin(deltaLat/2) +
		math.Cos(lat1Rad)*math.Cos(lat2Rad)*
			math.Sin(deltaLon/2)*math.Sin(deltaLon/2)

	c := 2 * math.Atan2(math.Sqrt(a), math.Sqrt(1-a))

	return earthRadiusMiles * c
}

// RoundMiles rounds a distance to one decimal place. Rounding happens at the
// presentation boundary, not inside the distance computation.
func RoundMiles(miles float64) float64 {
	return math.Round(miles*10) / 10
}

func toRadians(degrees float64) float64 {
	return degrees * math.Pi / 180
}
