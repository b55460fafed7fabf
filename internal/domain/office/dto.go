package office

import (
	"math"
	"time"

	"github.com/corvitlabs/attendance-tracker/internal/pkg/validator"
)

type LocationResponse struct {
	ID           int64   `json:"id"`
	Name         string  `json:"name"`
	Latitude     float64 `json:"latitude"`
	Longitude    float64 `json:"longitude"`
	RadiusMeters int     `json:"radius_meters"`
	CreatedAt    string  `json:"created_at"`
	UpdatedAt    string  `json:"updated_at"`
}

func NewLocationResponse(l Location) LocationResponse {
	return LocationResponse{
		ID:           l.ID,
		Name:         l.Name,
		Latitude:     l.Latitude,
		Longitude:    l.Longitude,
		RadiusMeters: l.RadiusMeters,
		CreatedAt:    l.CreatedAt.Format(time.RFC3339),
		UpdatedAt:    l.UpdatedAt.Format(time.RFC3339),
	}
}

type CreateLocationRequest struct {
	Name         string   `json:"name"`
	Latitude     *float64 `json:"latitude"`
	Longitude    *float64 `json:"longitude"`
	RadiusMeters *int     `json:"radius_meters,omitempty"`
}

func (r *CreateLocationRequest) Validate() error {
	var errs validator.ValidationErrors

	if validator.IsEmpty(r.Name) {
		errs = append(errs, validator.ValidationError{Field: "name", Message: "name is required"})
	} else if len(r.Name) > 100 {
		errs = append(errs, validator.ValidationError{Field: "name", Message: "name must not exceed 100 characters"})
	}

	if r.Latitude == nil {
		errs = append(errs, validator.ValidationError{Field: "latitude", Message: "latitude is required"})
	} else {
		errs = append(errs, validateLatitude(*r.Latitude)...)
	}

	if r.Longitude == nil {
		errs = append(errs, validator.ValidationError{Field: "longitude", Message: "longitude is required"})
	} else {
		errs = append(errs, validateLongitude(*r.Longitude)...)
	}

	if r.RadiusMeters != nil {
		errs = append(errs, validateRadius(*r.RadiusMeters)...)
	}

	if len(errs) > 0 {
		return errs
	}

	return nil
}

// Radius returns the requested radius or DefaultRadiusMeters.
func (r *CreateLocationRequest) Radius() int {
	if r.RadiusMeters == nil {
		return DefaultRadiusMeters
	}
	return *r.RadiusMeters
}

type UpdateLocationRequest struct {
	ID           int64    `json:"-"`
	Name         *string  `json:"name,omitempty"`
	Latitude     *float64 `json:"latitude,omitempty"`
	Longitude    *float64 `json:"longitude,omitempty"`
	RadiusMeters *int     `json:"radius_meters,omitempty"`
}

func (r *UpdateLocationRequest) Validate() error {
	var errs validator.ValidationErrors

	if r.ID <= 0 {
		errs = append(errs, validator.ValidationError{Field: "id", Message: "id is required"})
	}
	if r.Name != nil && (validator.IsEmpty(*r.Name) || len(*r.Name) > 100) {
		errs = append(errs, validator.ValidationError{Field: "name", Message: "name must be between 1 and 100 characters"})
	}
	if r.Latitude != nil {
		errs = append(errs, validateLatitude(*r.Latitude)...)
	}
	if r.Longitude != nil {
		errs = append(errs, validateLongitude(*r.Longitude)...)
	}
	if r.RadiusMeters != nil {
		errs = append(errs, validateRadius(*r.RadiusMeters)...)
	}

	if len(errs) > 0 {
		return errs
	}

	return nil
}

func validateLatitude(lat float64) validator.ValidationErrors {
	if lat < -90 || lat > 90 || math.IsNaN(lat) {
		return validator.ValidationErrors{{Field: "latitude", Message: "latitude must be between -90 and 90"}}
	}
	return nil
}

func validateLongitude(lng float64) validator.ValidationErrors {
	if lng < -180 || lng > 180 || math.IsNaN(lng) {
		return validator.ValidationErrors{{Field: "longitude", Message: "longitude must be between -180 and 180"}}
	}
	return nil
}

func validateRadius(radius int) validator.ValidationErrors {
	if radius <= 0 || radius > 10000 {
		return validator.ValidationErrors{{Field: "radius_meters", Message: "radius_meters must be between 1 and 10000"}}
	}
	return nil
}
