package evaluation

import "math"

const earthRadiusMeters = 6371000

// Coordinate is a WGS84 point in decimal degrees.
type Coordinate struct {
	Latitude  float64
	Longitude float64
}

// Validate checks latitude ∈ [-90,90] and longitude ∈ [-180,180].
func (c Coordinate) Validate(field string) error {
	if math.IsNaN(c.Latitude) || c.Latitude < -90 || c.Latitude > 90 {
		return &InvalidInputError{Field: field + ".latitude", Reason: "must be between -90 and 90"}
	}
	if math.IsNaN(c.Longitude) || c.Longitude < -180 || c.Longitude > 180 {
		return &InvalidInputError{Field: field + ".longitude", Reason: "must be between -180 and 180"}
	}
	return nil
}

// DistanceMeters returns the great-circle distance between a and b using the
// haversine formula. Inputs are not range-checked; NaN or Inf propagate.
func DistanceMeters(a, b Coordinate) float64 {
	dLat := (b.Latitude - a.Latitude) * (math.Pi / 180.0)
	dLon := (b.Longitude - a.Longitude) * (math.Pi / 180.0)

	lat1Rad := a.Latitude * (math.Pi / 180.0)
	lat2Rad := b.Latitude * (math.Pi / 180.0)

	h := math.Sin(dLat/2)*math.Sin(dLat/2) +
		math.Sin(dLon/2)*math.Sin(dLon/2)*math.Cos(lat1Rad)*math.Cos(lat2Rad)

	// rounding can push h a hair outside [0,1]
	h = math.Min(1, math.Max(0, h))

	c := 2 * math.Atan2(math.Sqrt(h), math.Sqrt(1-h))

	return earthRadiusMeters * c
}
