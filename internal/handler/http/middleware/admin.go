package middleware

import (
	"net/http"

	"github.com/corvitlabs/attendance-tracker/internal/domain/auth"
	"github.com/corvitlabs/attendance-tracker/internal/domain/user"
	"github.com/corvitlabs/attendance-tracker/internal/handler/http/response"
	"github.com/go-chi/jwtauth/v5"
)

// AdminOnly guards system configuration, which only admins may change.
func AdminOnly(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		_, claims, err := jwtauth.FromContext(r.Context())
		if err != nil {
			response.HandleError(w, auth.ErrInvalidToken)
			return
		}

		role, ok := claims["role"].(string)
		if !ok || roleFromContext(r.Context(), role) != user.RoleAdmin {
			response.HandleError(w, user.ErrAdminPrivilegeRequired)
			return
		}

		next.ServeHTTP(w, r)
	})
}
