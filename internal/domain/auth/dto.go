package auth

import (
	"github.com/corvitlabs/attendance-tracker/internal/domain/user"
	"github.com/corvitlabs/attendance-tracker/internal/pkg/validator"
)

type LoginRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

func (r *LoginRequest) Validate() error {
	var errs validator.ValidationErrors

	if validator.IsEmpty(r.Email) {
		errs = append(errs, validator.ValidationError{
			Field:   "email",
			Message: "email is required",
		})
	} else if !validator.IsValidEmail(r.Email) {
		errs = append(errs, validator.ValidationError{
			Field:   "email",
			Message: "email must be a valid email address",
		})
	}

	if validator.IsEmpty(r.Password) {
		errs = append(errs, validator.ValidationError{
			Field:   "password",
			Message: "password is required",
		})
	}

	if len(errs) > 0 {
		return errs
	}

	return nil
}

type TokenResponse struct {
	AccessToken          string            `json:"access_token"`
	AccessTokenExpiresIn int64             `json:"access_token_expires_in"`
	User                 user.UserResponse `json:"user"`
}

// LogoutRequest carries the claims of the token being revoked.
type LogoutRequest struct {
	TokenID   string
	ExpiresAt int64
}
