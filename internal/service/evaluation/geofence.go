package evaluation

// Geofence is the circular allowed area around an office.
type Geofence struct {
	Name         string
	Center       Coordinate
	RadiusMeters float64
}

type LocationValidation struct {
	IsValid        bool
	DistanceMeters float64
}

// ValidateLocation reports whether point lies inside office's radius.
// A point exactly on the boundary is valid.
func ValidateLocation(point Coordinate, office Geofence) (LocationValidation, error) {
	if err := point.Validate("point"); err != nil {
		return LocationValidation{}, err
	}
	if err := office.Center.Validate("office"); err != nil {
		return LocationValidation{}, err
	}
	if !(office.RadiusMeters > 0) {
		return LocationValidation{}, &InvalidInputError{Field: "office.radius_meters", Reason: "must be greater than zero"}
	}

	distance := DistanceMeters(point, office.Center)
	return LocationValidation{
		IsValid:        distance <= office.RadiusMeters,
		DistanceMeters: distance,
	}, nil
}
