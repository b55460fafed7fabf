package user

import (
	"time"

	"github.com/corvitlabs/attendance-tracker/internal/pkg/validator"
)

// UserResponse represents user data in API responses
type UserResponse struct {
	ID         int64  `json:"id"`
	EmployeeID string `json:"employee_id"`
	Name       string `json:"name"`
	Email      string `json:"email"`
	Role       string `json:"role"`
	IsActive   bool   `json:"is_active"`
	CreatedAt  string `json:"created_at"`
	UpdatedAt  string `json:"updated_at"`
}

func NewUserResponse(u User) UserResponse {
	return UserResponse{
		ID:         u.ID,
		EmployeeID: u.EmployeeID,
		Name:       u.Name,
		Email:      u.Email,
		Role:       string(u.Role),
		IsActive:   u.IsActive,
		CreatedAt:  u.CreatedAt.Format(time.RFC3339),
		UpdatedAt:  u.UpdatedAt.Format(time.RFC3339),
	}
}

// CreateUserRequest represents request to create a new user
type CreateUserRequest struct {
	EmployeeID string `json:"employee_id"`
	Name       string `json:"name"`
	Email      string `json:"email"`
	Password   string `json:"password"`
	Role       string `json:"role,omitempty"` // defaults to employee
}

func (r *CreateUserRequest) Validate() error {
	var errs validator.ValidationErrors

	errs = append(errs, validateEmployeeID(r.EmployeeID)...)
	errs = append(errs, validateName(r.Name)...)
	errs = append(errs, validateEmail(r.Email)...)

	if validator.IsEmpty(r.Password) {
		errs = append(errs, validator.ValidationError{
			Field:   "password",
			Message: "password is required",
		})
	} else if len(r.Password) < 6 || len(r.Password) > 100 {
		errs = append(errs, validator.ValidationError{
			Field:   "password",
			Message: "password must be between 6 and 100 characters",
		})
	}

	if r.Role != "" && !Role(r.Role).IsValid() {
		errs = append(errs, validator.ValidationError{
			Field:   "role",
			Message: "role must be one of: employee, manager, hr, admin",
		})
	}

	if len(errs) > 0 {
		return errs
	}

	return nil
}

// UpdateUserRequest represents request to update user
type UpdateUserRequest struct {
	ID       int64   `json:"-"`
	Name     *string `json:"name,omitempty"`
	Email    *string `json:"email,omitempty"`
	Role     *string `json:"role,omitempty"`
	IsActive *bool   `json:"is_active,omitempty"`
}

func (r *UpdateUserRequest) Validate() error {
	var errs validator.ValidationErrors

	if r.ID <= 0 {
		errs = append(errs, validator.ValidationError{
			Field:   "id",
			Message: "id is required",
		})
	}

	if r.Name != nil {
		errs = append(errs, validateName(*r.Name)...)
	}

	if r.Email != nil {
		errs = append(errs, validateEmail(*r.Email)...)
	}

	if r.Role != nil && !Role(*r.Role).IsValid() {
		errs = append(errs, validator.ValidationError{
			Field:   "role",
			Message: "role must be one of: employee, manager, hr, admin",
		})
	}

	if len(errs) > 0 {
		return errs
	}

	return nil
}

// ListUsersFilter narrows List. ActiveOnly mirrors GET /users?active=true.
type ListUsersFilter struct {
	ActiveOnly bool
}

func validateEmployeeID(id string) validator.ValidationErrors {
	if validator.IsEmpty(id) {
		return validator.ValidationErrors{{Field: "employee_id", Message: "employee_id is required"}}
	}
	if len(id) < 3 || len(id) > 50 {
		return validator.ValidationErrors{{Field: "employee_id", Message: "employee_id must be between 3 and 50 characters"}}
	}
	return nil
}

func validateName(name string) validator.ValidationErrors {
	if validator.IsEmpty(name) {
		return validator.ValidationErrors{{Field: "name", Message: "name is required"}}
	}
	if len(name) < 2 || len(name) > 100 {
		return validator.ValidationErrors{{Field: "name", Message: "name must be between 2 and 100 characters"}}
	}
	return nil
}

func validateEmail(email string) validator.ValidationErrors {
	if validator.IsEmpty(email) {
		return validator.ValidationErrors{{Field: "email", Message: "email is required"}}
	}
	if !validator.IsValidEmail(email) {
		return validator.ValidationErrors{{Field: "email", Message: "invalid email format"}}
	}
	return nil
}
