package models

// Coordinate is a WGS84 latitude/longitude pair
type Coordinate struct {
	Latitude  float64 `dynamodbav:"latitude" json:"latitude"`
	Longitude float64 `dynamodbav:"longitude" json:"longitude"`
}

// IsValid reports whether the coordinate is inside the valid lat/lng ranges
func (c Coordinate) IsValid() bool {
	return c.Latitude >= -90 && c.Latitude <= 90 &&
		c.Longitude >= -180 && c.Longitude <= 180
}
