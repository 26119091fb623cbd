package utils

import (
	"math"

	"midway_server/models"
)

// EarthRadiusMeters is the mean earth radius used by the haversine formula
const EarthRadiusMeters = 6371000.0

// walkingPaceMetersPerMinute is roughly a 5 km/h pace
const walkingPaceMetersPerMinute = 83.33

// DegreesToRadians converts degrees to radians
func DegreesToRadians(d float64) float64 {
	return d * math.Pi / 180.0
}

// HaversineDistance returns the great-circle distance in meters between two
// coordinates. Fails with ErrInvalidCoordinate when either point is out of
// the valid lat/lng ranges.
func HaversineDistance(p1, p2 models.Coordinate) (float64, error) {
	if !p1.IsValid() || !p2.IsValid() {
		return 0, models.ErrInvalidCoordinate
	}

	lat1 := DegreesToRadians(p1.Latitude)
	lat2 := DegreesToRadians(p2.Latitude)
	dLat := DegreesToRadians(p2.Latitude - p1.Latitude)
	dLon := DegreesToRadians(p2.Longitude - p1.Longitude)

	a := math.Sin(dLat/2)*math.Sin(dLat/2) +
		math.Cos(lat1)*math.Cos(lat2)*math.Sin(dLon/2)*math.Sin(dLon/2)
	c := 2 * math.Atan2(math.Sqrt(a), math.Sqrt(1-a))

	return EarthRadiusMeters * c, nil
}

// Midpoint returns the arithmetic mean of the two coordinates. This is a
// planar approximation, not the geodesic midpoint; at city scale the error
// is negligible and downstream scoring depends on this exact behavior.
func Midpoint(p1, p2 models.Coordinate) models.Coordinate {
	return models.Coordinate{
		Latitude:  (p1.Latitude + p2.Latitude) / 2,
		Longitude: (p1.Longitude + p2.Longitude) / 2,
	}
}

// WalkingMinutes returns the walking time for a distance in meters,
// rounded up to whole minutes.
func WalkingMinutes(meters float64) int {
	if meters <= 0 {
		return 0
	}
	return int(math.Ceil(meters / walkingPaceMetersPerMinute))
}
