// Package geo computes geodesic distances between coordinates.
package geo

import "github.com/tidwall/geodesic"

// Point is a latitude/longitude pair in decimal degrees.
type Point struct {
	Lat float64
	Lon float64
}

// DistanceKm returns the geodesic distance between a and b on the WGS-84
// ellipsoid in kilometers. Karney's method converges for every pair,
// antipodal ones included.
func DistanceKm(a, b Point) float64 {
	if a == b {
		return 0
	}

	var meters float64
	geodesic.WGS84.Inverse(a.Lat, a.Lon, b.Lat, b.Lon, &meters, nil, nil)

	return meters / 1000
}
