// Package geo provides great-circle distance math for route planning.
package geo

import "math"

// earthRadiusKm is the mean radius of Earth.
const earthRadiusKm = 6371.0

// Point is a WGS-84 coordinate pair.
type Point struct {
	Lat float64
	Lon float64
}

// DistanceKm returns the Haversine great-circle distance between two points
// in kilometers. Symmetric in its arguments; NaN inputs propagate as NaN.
func DistanceKm(lat1, lon1, lat2, lon2 float64) float64 {
	dLat := degToRad(lat2 - lat1)
	dLon := degToRad(lon2 - lon1)

	sinLat := math.Sin(dLat / 2)
	sinLon := math.Sin(dLon / 2)

	h := sinLat*sinLat +
		math.Cos(degToRad(lat1))*math.Cos(degToRad(lat2))*sinLon*sinLon

	return 2 * earthRadiusKm * math.Asin(math.Sqrt(h))
}

// PathDistanceKm sums DistanceKm over consecutive points in traversal order.
// Zero for paths shorter than two points.
func PathDistanceKm(points []Point) float64 {
	total := 0.0
	for i := 0; i+1 < len(points); i++ {
		total += DistanceKm(points[i].Lat, points[i].Lon, points[i+1].Lat, points[i+1].Lon)
	}
	return total
}

func degToRad(deg float64) float64 {
	return deg * (math.Pi / 180.0)
}
