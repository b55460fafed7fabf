package user

import (
	"context"
)

type UserRepository interface {
	Create(ctx context.Context, newUser User) (User, error)
	GetByID(ctx context.Context, id int64) (User, error)
	GetByEmail(ctx context.Context, email string) (User, error)
	List(ctx context.Context, filter ListUsersFilter) ([]User, error)
	Update(ctx context.Context, req UpdateUserRequest) (User, error)
	SetActive(ctx context.Context, id int64, active bool) (User, error)
	Delete(ctx context.Context, id int64) error
	ExistsByEmailOrEmployeeID(ctx context.Context, email, employeeID string) (emailTaken bool, employeeIDTaken bool, err error)
	CountByRole(ctx context.Context, role Role) (int, error)
	// LockAdminBootstrap serializes admin bootstrap; it must run inside a transaction.
	LockAdminBootstrap(ctx context.Context) error
}
