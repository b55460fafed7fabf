package middleware

import (
	"context"
	"strconv"

	"github.com/corvitlabs/attendance-tracker/internal/domain/attendance"
	"github.com/corvitlabs/attendance-tracker/internal/domain/auth"
	"github.com/corvitlabs/attendance-tracker/internal/domain/user"
	"github.com/go-chi/jwtauth/v5"
)

// Claims is the part of an access token the handlers act on.
type Claims struct {
	UserID    int64
	Email     string
	Role      user.Role
	TokenID   string
	ExpiresAt int64
}

// Requester returns the caller as seen by the attendance service.
func (c Claims) Requester() attendance.Requester {
	return attendance.Requester{UserID: c.UserID, Role: c.Role}
}

// ClaimsFromContext reads the verified token placed by jwtauth.Verifier.
func ClaimsFromContext(ctx context.Context) (Claims, error) {
	token, claims, err := jwtauth.FromContext(ctx)
	if err != nil || token == nil {
		return Claims{}, auth.ErrInvalidToken
	}

	rawID, ok := claims["user_id"].(string)
	if !ok || rawID == "" {
		return Claims{}, auth.ErrInvalidToken
	}
	userID, err := strconv.ParseInt(rawID, 10, 64)
	if err != nil || userID <= 0 {
		return Claims{}, auth.ErrInvalidToken
	}

	role, _ := claims["role"].(string)
	email, _ := claims["email"].(string)

	return Claims{
		UserID:    userID,
		Email:     email,
		Role:      roleFromContext(ctx, role),
		TokenID:   token.JwtID(),
		ExpiresAt: token.Expiration().Unix(),
	}, nil
}
