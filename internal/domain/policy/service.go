package policy

import "context"

type PolicyService interface {
	// Initialize seeds the documented defaults. A nil mode uses the configured default.
	Initialize(ctx context.Context, req InitializeRequest) ([]ConfigResponse, error)
	List(ctx context.Context) ([]ConfigResponse, error)
	Get(ctx context.Context, key string) (ConfigResponse, error)
	Update(ctx context.Context, req UpdateConfigRequest) (ConfigResponse, error)
	Delete(ctx context.Context, key string) error

	// Snapshot takes one consistent read of the configuration table.
	Snapshot(ctx context.Context) (Snapshot, error)
}
