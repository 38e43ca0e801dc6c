// Package geo holds pure geometry helpers used by the catalog seed and the
// arrival estimation feature bundle.
package geo

import "math"

const earthRadiusKm = 6371

// DistanceKm calculates the great-circle distance between two coordinates
// using the haversine formula, rounded to the nearest whole kilometer.
func DistanceKm(lat1, lng1, lat2, lng2 float64) int {
	phi1 := lat1 * math.Pi / 180
	phi2 := lat2 * math.Pi / 180
	deltaPhi := (lat2 - lat1) * math.Pi / 180
	deltaLambda := (lng2 - lng1) * math.Pi / 180

	a := math.Sin(deltaPhi/2)*math.Sin(deltaPhi/2) +
		math.Cos(phi1)*math.Cos(phi2)*math.Sin(deltaLambda/2)*math.Sin(deltaLambda/2)
	c := 2 * math.Atan2(math.Sqrt(a), math.Sqrt(1-a))

	return int(math.Round(earthRadiusKm * c))
}

// EstimateDurationHours estimates travel time for a distance at the given
// average speed, rounded to one decimal. Used only when a route's nominal
// duration is not otherwise specified.
func EstimateDurationHours(distanceKm int, averageSpeedKmh float64) float64 {
	return math.Round(float64(distanceKm)/averageSpeedKmh*10) / 10
}
