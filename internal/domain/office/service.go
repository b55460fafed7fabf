package office

import "context"

type OfficeService interface {
	Create(ctx context.Context, req CreateLocationRequest) (LocationResponse, error)
	GetByID(ctx context.Context, id int64) (LocationResponse, error)
	List(ctx context.Context) ([]LocationResponse, error)
	Update(ctx context.Context, req UpdateLocationRequest) (LocationResponse, error)
	Delete(ctx context.Context, id int64) error

	// Resolve returns the office a check-in is validated against: id when
	// given, the default office otherwise.
	Resolve(ctx context.Context, id *int64) (Location, error)
}
