package auth

import (
	"context"

	"github.com/corvitlabs/attendance-tracker/internal/domain/user"
)

type AuthService interface {
	Login(ctx context.Context, req LoginRequest) (TokenResponse, error)
	Logout(ctx context.Context, req LogoutRequest) error
	Me(ctx context.Context, userID int64) (user.UserResponse, error)
}
