package office

import "context"

type LocationRepository interface {
	Create(ctx context.Context, loc Location) (Location, error)
	GetByID(ctx context.Context, id int64) (Location, error)
	// GetDefault returns the location with the lowest id.
	GetDefault(ctx context.Context) (Location, error)
	List(ctx context.Context) ([]Location, error)
	Update(ctx context.Context, req UpdateLocationRequest) (Location, error)
	Delete(ctx context.Context, id int64) error
}
