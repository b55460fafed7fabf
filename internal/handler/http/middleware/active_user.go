package middleware

import (
	"context"
	"errors"
	"net/http"

	"github.com/corvitlabs/attendance-tracker/internal/domain/auth"
	"github.com/corvitlabs/attendance-tracker/internal/domain/user"
	"github.com/corvitlabs/attendance-tracker/internal/handler/http/response"
)

// UserLookup loads the account behind a token.
type UserLookup interface {
	GetByID(ctx context.Context, id int64) (user.UserResponse, error)
}

type currentRoleKey struct{}

// ActiveUserRequired rejects tokens whose account was deactivated or deleted
// after the token was issued. The stored role replaces the token's role for
// the rest of the request. It must run after AuthRequired.
func ActiveUserRequired(users UserLookup) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			claims, err := ClaimsFromContext(r.Context())
			if err != nil {
				response.HandleError(w, err)
				return
			}

			u, err := users.GetByID(r.Context(), claims.UserID)
			if err != nil {
				if errors.Is(err, user.ErrUserNotFound) {
					response.HandleError(w, auth.ErrInvalidToken)
					return
				}
				response.HandleError(w, err)
				return
			}
			if !u.IsActive {
				response.HandleError(w, user.ErrUserInactive)
				return
			}

			ctx := context.WithValue(r.Context(), currentRoleKey{}, user.Role(u.Role))
			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}

// roleFromContext prefers the role loaded by ActiveUserRequired over the
// role carried in the token.
func roleFromContext(ctx context.Context, tokenRole string) user.Role {
	if role, ok := ctx.Value(currentRoleKey{}).(user.Role); ok {
		return role
	}
	return user.Role(tokenRole)
}
