package office

import (
	"context"
	"errors"
	"fmt"
	"log/slog"

	"github.com/corvitlabs/attendance-tracker/internal/domain/office"
)

type OfficeServiceImpl struct {
	office.LocationRepository
}

func NewOfficeService(locationRepository office.LocationRepository) office.OfficeService {
	return &OfficeServiceImpl{LocationRepository: locationRepository}
}

// Create implements office.OfficeService.
func (s *OfficeServiceImpl) Create(ctx context.Context, req office.CreateLocationRequest) (office.LocationResponse, error) {
	if err := req.Validate(); err != nil {
		return office.LocationResponse{}, err
	}

	created, err := s.LocationRepository.Create(ctx, office.Location{
		Name:         req.Name,
		Latitude:     *req.Latitude,
		Longitude:    *req.Longitude,
		RadiusMeters: req.Radius(),
	})
	if err != nil {
		return office.LocationResponse{}, fmt.Errorf("failed to create office location: %w", err)
	}

	slog.Info("office location created", "office_id", created.ID, "radius_meters", created.RadiusMeters)
	return office.NewLocationResponse(created), nil
}

// GetByID implements office.OfficeService.
func (s *OfficeServiceImpl) GetByID(ctx context.Context, id int64) (office.LocationResponse, error) {
	loc, err := s.LocationRepository.GetByID(ctx, id)
	if err != nil {
		return office.LocationResponse{}, err
	}
	return office.NewLocationResponse(loc), nil
}

// List implements office.OfficeService.
func (s *OfficeServiceImpl) List(ctx context.Context) ([]office.LocationResponse, error) {
	locations, err := s.LocationRepository.List(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to list office locations: %w", err)
	}

	out := make([]office.LocationResponse, 0, len(locations))
	for _, l := range locations {
		out = append(out, office.NewLocationResponse(l))
	}
	return out, nil
}

// Update implements office.OfficeService.
func (s *OfficeServiceImpl) Update(ctx context.Context, req office.UpdateLocationRequest) (office.LocationResponse, error) {
	if err := req.Validate(); err != nil {
		return office.LocationResponse{}, err
	}

	updated, err := s.LocationRepository.Update(ctx, req)
	if err != nil {
		return office.LocationResponse{}, err
	}
	return office.NewLocationResponse(updated), nil
}

// Delete implements office.OfficeService.
func (s *OfficeServiceImpl) Delete(ctx context.Context, id int64) error {
	if err := s.LocationRepository.Delete(ctx, id); err != nil {
		return err
	}
	slog.Info("office location deleted", "office_id", id)
	return nil
}

// Resolve implements office.OfficeService.
func (s *OfficeServiceImpl) Resolve(ctx context.Context, id *int64) (office.Location, error) {
	if id != nil {
		return s.LocationRepository.GetByID(ctx, *id)
	}

	loc, err := s.LocationRepository.GetDefault(ctx)
	if err != nil {
		if errors.Is(err, office.ErrLocationNotFound) {
			return office.Location{}, office.ErrNoOfficeConfigured
		}
		return office.Location{}, err
	}
	return loc, nil
}
