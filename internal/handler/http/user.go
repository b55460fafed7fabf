package http

import (
	"encoding/json"
	"log/slog"
	"net/http"

	"github.com/corvitlabs/attendance-tracker/internal/domain/user"
	"github.com/corvitlabs/attendance-tracker/internal/handler/http/middleware"
	"github.com/corvitlabs/attendance-tracker/internal/handler/http/response"
)

type UserHandler interface {
	CreateAdmin(w http.ResponseWriter, r *http.Request)
	Create(w http.ResponseWriter, r *http.Request)
	List(w http.ResponseWriter, r *http.Request)
	Get(w http.ResponseWriter, r *http.Request)
	Update(w http.ResponseWriter, r *http.Request)
	Activate(w http.ResponseWriter, r *http.Request)
	Deactivate(w http.ResponseWriter, r *http.Request)
	Delete(w http.ResponseWriter, r *http.Request)
}

type userHandlerImpl struct {
	userService user.UserService
}

func NewUserHandler(userService user.UserService) UserHandler {
	return &userHandlerImpl{userService: userService}
}

// CreateAdmin handles POST /users/admin. It only succeeds while no admin exists.
func (h *userHandlerImpl) CreateAdmin(w http.ResponseWriter, r *http.Request) {
	var req user.CreateUserRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		response.BadRequest(w, "Invalid request format", nil)
		return
	}

	if err := req.Validate(); err != nil {
		response.HandleError(w, err)
		return
	}

	result, err := h.userService.CreateAdmin(r.Context(), req)
	if err != nil {
		slog.Error("Create admin service error", "error", err)
		response.HandleError(w, err)
		return
	}

	response.Created(w, "Admin user created successfully", result)
}

// Create handles POST /users
func (h *userHandlerImpl) Create(w http.ResponseWriter, r *http.Request) {
	var req user.CreateUserRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		response.BadRequest(w, "Invalid request format", nil)
		return
	}

	if err := req.Validate(); err != nil {
		response.HandleError(w, err)
		return
	}

	result, err := h.userService.Create(r.Context(), req)
	if err != nil {
		slog.Error("Create user service error", "error", err)
		response.HandleError(w, err)
		return
	}

	response.Created(w, "User created successfully", result)
}

// List handles GET /users?active=true
func (h *userHandlerImpl) List(w http.ResponseWriter, r *http.Request) {
	filter := user.ListUsersFilter{ActiveOnly: r.URL.Query().Get("active") == "true"}

	users, err := h.userService.List(r.Context(), filter)
	if err != nil {
		slog.Error("List users service error", "error", err)
		response.HandleError(w, err)
		return
	}

	response.Success(w, users)
}

// Get handles GET /users/{id}. Users may read their own profile without user.manage.
func (h *userHandlerImpl) Get(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r, "id")
	if err != nil {
		response.HandleError(w, err)
		return
	}

	claims, err := middleware.ClaimsFromContext(r.Context())
	if err != nil {
		response.HandleError(w, err)
		return
	}
	if claims.UserID != id && !user.HasPermission(claims.Role, user.PermissionUserManage) {
		response.HandleError(w, user.ErrInsufficientPermissions)
		return
	}

	result, err := h.userService.GetByID(r.Context(), id)
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.Success(w, result)
}

// Update handles PUT /users/{id}
func (h *userHandlerImpl) Update(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r, "id")
	if err != nil {
		response.HandleError(w, err)
		return
	}

	var req user.UpdateUserRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		response.BadRequest(w, "Invalid request format", nil)
		return
	}
	req.ID = id

	if err := req.Validate(); err != nil {
		response.HandleError(w, err)
		return
	}

	result, err := h.userService.Update(r.Context(), req)
	if err != nil {
		slog.Error("Update user service error", "error", err)
		response.HandleError(w, err)
		return
	}

	response.SuccessWithMessage(w, "User updated successfully", result)
}

// Activate handles POST /users/{id}/activate
func (h *userHandlerImpl) Activate(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r, "id")
	if err != nil {
		response.HandleError(w, err)
		return
	}

	result, err := h.userService.Activate(r.Context(), id)
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.SuccessWithMessage(w, "User activated successfully", result)
}

// Deactivate handles POST /users/{id}/deactivate
func (h *userHandlerImpl) Deactivate(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r, "id")
	if err != nil {
		response.HandleError(w, err)
		return
	}

	result, err := h.userService.Deactivate(r.Context(), id)
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.SuccessWithMessage(w, "User deactivated successfully", result)
}

// Delete handles DELETE /users/{id}
func (h *userHandlerImpl) Delete(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r, "id")
	if err != nil {
		response.HandleError(w, err)
		return
	}

	claims, err := middleware.ClaimsFromContext(r.Context())
	if err != nil {
		response.HandleError(w, err)
		return
	}

	if err := h.userService.Delete(r.Context(), claims.UserID, id); err != nil {
		slog.Error("Delete user service error", "error", err)
		response.HandleError(w, err)
		return
	}

	response.SuccessWithMessage(w, "User deleted successfully", nil)
}
