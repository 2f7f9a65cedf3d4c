package geo

import "math"

// EarthRadiusMiles is the mean Earth radius used for great-circle distances.
const EarthRadiusMiles = 3959.0

// milesPerDegreeLat is the approximate north-south span of one degree of latitude.
const milesPerDegreeLat = 69.0

// milesPerDegreeLngEquator is the east-west span of one degree of longitude at the equator.
const milesPerDegreeLngEquator = 69.172

// HaversineMiles calculates the great-circle distance in miles between two
// WGS84 coordinate pairs using the haversine formula.
// Numerically stable for all valid coordinates; antimeridian crossing is not
// specially handled, which is an acceptable approximation for continental US use.
func HaversineMiles(lat1, lng1, lat2, lng2 float64) float64 {
	dLat := toRadians(lat2 - lat1)
	dLng := toRadians(lng2 - lng1)

	a := math.Sin(dLat/2)*math.Sin(dLat/2) +
		math.Cos(toRadians(lat1))*math.Cos(toRadians(lat2))*
			math.Sin(dLng/2)*math.Sin(dLng/2)

	c := 2 * math.Atan2(math.Sqrt(a), math.Sqrt(1-a))

	return EarthRadiusMiles * c
}

func toRadians(degrees float64) float64 {
	return degrees * math.Pi / 180.0
}

func toDegrees(radians float64) float64 {
	return radians * 180.0 / math.Pi
}
