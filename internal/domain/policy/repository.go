package policy

import "context"

type SystemConfigRepository interface {
	// ListAll returns every row in one read.
	ListAll(ctx context.Context) ([]SystemConfig, error)
	GetByKey(ctx context.Context, key string) (SystemConfig, error)
	Upsert(ctx context.Context, key, value string) (SystemConfig, error)
	// InsertIfAbsent leaves an existing row untouched and returns it.
	InsertIfAbsent(ctx context.Context, key, value string) (SystemConfig, error)
	Update(ctx context.Context, key, value string) (SystemConfig, error)
	Delete(ctx context.Context, key string) error
}
