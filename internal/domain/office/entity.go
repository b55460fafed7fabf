package office

import "time"

// DefaultRadiusMeters applies when a location is created without a radius.
const DefaultRadiusMeters = 100

// Location is a circular geofence employees check in against.
type Location struct {
	ID           int64
	Name         string
	Latitude     float64
	Longitude    float64
	RadiusMeters int
	CreatedAt    time.Time
	UpdatedAt    time.Time
}
