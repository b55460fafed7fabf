package user

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strings"

	"github.com/corvitlabs/attendance-tracker/internal/domain/user"
	"github.com/corvitlabs/attendance-tracker/internal/pkg/database"
	"golang.org/x/crypto/bcrypt"
)

type UserServiceImpl struct {
	tx database.Transactor
	user.UserRepository
}

func NewUserService(tx database.Transactor, userRepository user.UserRepository) user.UserService {
	return &UserServiceImpl{
		tx:             tx,
		UserRepository: userRepository,
	}
}

func hashPassword(password string) (string, error) {
	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return "", err
	}
	return string(hash), nil
}

// Create implements user.UserService.
func (s *UserServiceImpl) Create(ctx context.Context, req user.CreateUserRequest) (user.UserResponse, error) {
	if err := req.Validate(); err != nil {
		return user.UserResponse{}, err
	}

	role := user.RoleEmployee
	if req.Role != "" {
		role = user.Role(req.Role)
	}

	created, err := s.create(ctx, req, role)
	if err != nil {
		return user.UserResponse{}, err
	}
	return user.NewUserResponse(created), nil
}

// CreateAdmin implements user.UserService.
func (s *UserServiceImpl) CreateAdmin(ctx context.Context, req user.CreateUserRequest) (user.UserResponse, error) {
	if err := req.Validate(); err != nil {
		return user.UserResponse{}, err
	}

	var created user.User
	err := s.tx.WithinTransaction(ctx, func(txCtx context.Context) error {
		if err := s.UserRepository.LockAdminBootstrap(txCtx); err != nil {
			return fmt.Errorf("failed to lock admin bootstrap: %w", err)
		}
		admins, err := s.UserRepository.CountByRole(txCtx, user.RoleAdmin)
		if err != nil {
			return fmt.Errorf("failed to count admins: %w", err)
		}
		if admins > 0 {
			return user.ErrAdminAlreadyExists
		}

		created, err = s.create(txCtx, req, user.RoleAdmin)
		return err
	})
	if err != nil {
		return user.UserResponse{}, err
	}

	slog.Info("admin account created", "user_id", created.ID, "email", created.Email)
	return user.NewUserResponse(created), nil
}

func (s *UserServiceImpl) create(ctx context.Context, req user.CreateUserRequest, role user.Role) (user.User, error) {
	email := strings.ToLower(strings.TrimSpace(req.Email))
	employeeID := strings.TrimSpace(req.EmployeeID)

	emailTaken, employeeIDTaken, err := s.UserRepository.ExistsByEmailOrEmployeeID(ctx, email, employeeID)
	if err != nil {
		return user.User{}, fmt.Errorf("failed to check user uniqueness: %w", err)
	}
	if emailTaken {
		return user.User{}, user.ErrUserEmailExists
	}
	if employeeIDTaken {
		return user.User{}, user.ErrEmployeeIDExists
	}

	hash, err := hashPassword(req.Password)
	if err != nil {
		return user.User{}, fmt.Errorf("failed to hash password: %w", err)
	}

	created, err := s.UserRepository.Create(ctx, user.User{
		EmployeeID:   employeeID,
		Name:         strings.TrimSpace(req.Name),
		Email:        email,
		PasswordHash: hash,
		Role:         role,
		IsActive:     true,
	})
	if err != nil {
		if errors.Is(err, user.ErrUserEmailExists) || errors.Is(err, user.ErrEmployeeIDExists) {
			return user.User{}, err
		}
		slog.Error("failed to create user", "email", email, "error", err)
		return user.User{}, fmt.Errorf("failed to create user: %w", err)
	}
	return created, nil
}

// List implements user.UserService.
func (s *UserServiceImpl) List(ctx context.Context, filter user.ListUsersFilter) ([]user.UserResponse, error) {
	users, err := s.UserRepository.List(ctx, filter)
	if err != nil {
		return nil, fmt.Errorf("failed to list users: %w", err)
	}

	out := make([]user.UserResponse, 0, len(users))
	for _, u := range users {
		out = append(out, user.NewUserResponse(u))
	}
	return out, nil
}

// GetByID implements user.UserService.
func (s *UserServiceImpl) GetByID(ctx context.Context, id int64) (user.UserResponse, error) {
	u, err := s.UserRepository.GetByID(ctx, id)
	if err != nil {
		return user.UserResponse{}, err
	}
	return user.NewUserResponse(u), nil
}

// Update implements user.UserService.
func (s *UserServiceImpl) Update(ctx context.Context, req user.UpdateUserRequest) (user.UserResponse, error) {
	if err := req.Validate(); err != nil {
		return user.UserResponse{}, err
	}
	if req.Email != nil {
		email := strings.ToLower(strings.TrimSpace(*req.Email))
		req.Email = &email
	}

	updated, err := s.UserRepository.Update(ctx, req)
	if err != nil {
		return user.UserResponse{}, err
	}
	return user.NewUserResponse(updated), nil
}

// Activate implements user.UserService.
func (s *UserServiceImpl) Activate(ctx context.Context, id int64) (user.UserResponse, error) {
	u, err := s.UserRepository.SetActive(ctx, id, true)
	if err != nil {
		return user.UserResponse{}, err
	}
	return user.NewUserResponse(u), nil
}

// Deactivate implements user.UserService.
func (s *UserServiceImpl) Deactivate(ctx context.Context, id int64) (user.UserResponse, error) {
	u, err := s.UserRepository.SetActive(ctx, id, false)
	if err != nil {
		return user.UserResponse{}, err
	}
	return user.NewUserResponse(u), nil
}

// Delete implements user.UserService.
func (s *UserServiceImpl) Delete(ctx context.Context, actorID, id int64) error {
	if actorID == id {
		return user.ErrCannotDeleteSelf
	}
	if err := s.UserRepository.Delete(ctx, id); err != nil {
		return err
	}
	slog.Info("user deleted", "user_id", id, "by", actorID)
	return nil
}
