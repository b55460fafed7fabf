package http

import (
	"encoding/json"
	"errors"
	"io"
	"log/slog"
	"net/http"

	"github.com/corvitlabs/attendance-tracker/internal/domain/policy"
	"github.com/corvitlabs/attendance-tracker/internal/handler/http/response"
	"github.com/go-chi/chi/v5"
)

type SystemConfigHandler interface {
	Initialize(w http.ResponseWriter, r *http.Request)
	List(w http.ResponseWriter, r *http.Request)
	Get(w http.ResponseWriter, r *http.Request)
	Update(w http.ResponseWriter, r *http.Request)
	Delete(w http.ResponseWriter, r *http.Request)
	Snapshot(w http.ResponseWriter, r *http.Request)
}

type systemConfigHandlerImpl struct {
	policyService policy.PolicyService
}

func NewSystemConfigHandler(policyService policy.PolicyService) SystemConfigHandler {
	return &systemConfigHandlerImpl{policyService: policyService}
}

// Initialize handles POST /system-config/initialize. The body is optional.
func (h *systemConfigHandlerImpl) Initialize(w http.ResponseWriter, r *http.Request) {
	var req policy.InitializeRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil && !errors.Is(err, io.EOF) {
		response.BadRequest(w, "Invalid request format", nil)
		return
	}

	if err := req.Validate(); err != nil {
		response.HandleError(w, err)
		return
	}

	configs, err := h.policyService.Initialize(r.Context(), req)
	if err != nil {
		slog.Error("Initialize system config service error", "error", err)
		response.HandleError(w, err)
		return
	}

	response.SuccessWithMessage(w, "System configuration initialized successfully", configs)
}

// List handles GET /system-config
func (h *systemConfigHandlerImpl) List(w http.ResponseWriter, r *http.Request) {
	configs, err := h.policyService.List(r.Context())
	if err != nil {
		slog.Error("List system config service error", "error", err)
		response.HandleError(w, err)
		return
	}

	response.Success(w, configs)
}

// Get handles GET /system-config/{key}
func (h *systemConfigHandlerImpl) Get(w http.ResponseWriter, r *http.Request) {
	config, err := h.policyService.Get(r.Context(), chi.URLParam(r, "key"))
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.Success(w, config)
}

// Update handles PUT /system-config/{key}
func (h *systemConfigHandlerImpl) Update(w http.ResponseWriter, r *http.Request) {
	var req policy.UpdateConfigRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		response.BadRequest(w, "Invalid request format", nil)
		return
	}
	req.Key = chi.URLParam(r, "key")

	if err := req.Validate(); err != nil {
		response.HandleError(w, err)
		return
	}

	config, err := h.policyService.Update(r.Context(), req)
	if err != nil {
		slog.Error("Update system config service error", "error", err, "key", req.Key)
		response.HandleError(w, err)
		return
	}

	response.SuccessWithMessage(w, "Configuration updated successfully", config)
}

// Delete handles DELETE /system-config/{key}. The key falls back to its default.
func (h *systemConfigHandlerImpl) Delete(w http.ResponseWriter, r *http.Request) {
	key := chi.URLParam(r, "key")
	if err := h.policyService.Delete(r.Context(), key); err != nil {
		slog.Error("Delete system config service error", "error", err, "key", key)
		response.HandleError(w, err)
		return
	}

	response.SuccessWithMessage(w, "Configuration deleted successfully", nil)
}

// Snapshot handles GET /system-config/snapshot
func (h *systemConfigHandlerImpl) Snapshot(w http.ResponseWriter, r *http.Request) {
	snap, err := h.policyService.Snapshot(r.Context())
	if err != nil {
		slog.Error("Policy snapshot error", "error", err)
		response.HandleError(w, err)
		return
	}

	response.Success(w, policy.NewSnapshotResponse(snap))
}
