package user

import "context"

type UserService interface {
	Create(ctx context.Context, req CreateUserRequest) (UserResponse, error)
	// CreateAdmin bootstraps the first admin account and fails once one exists.
	CreateAdmin(ctx context.Context, req CreateUserRequest) (UserResponse, error)
	List(ctx context.Context, filter ListUsersFilter) ([]UserResponse, error)
	GetByID(ctx context.Context, id int64) (UserResponse, error)
	Update(ctx context.Context, req UpdateUserRequest) (UserResponse, error)
	Activate(ctx context.Context, id int64) (UserResponse, error)
	Deactivate(ctx context.Context, id int64) (UserResponse, error)
	Delete(ctx context.Context, actorID, id int64) error
}
