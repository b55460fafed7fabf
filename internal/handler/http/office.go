package http

import (
	"encoding/json"
	"log/slog"
	"net/http"

	"github.com/corvitlabs/attendance-tracker/internal/domain/office"
	"github.com/corvitlabs/attendance-tracker/internal/handler/http/response"
)

type OfficeHandler interface {
	Create(w http.ResponseWriter, r *http.Request)
	List(w http.ResponseWriter, r *http.Request)
	Get(w http.ResponseWriter, r *http.Request)
	Update(w http.ResponseWriter, r *http.Request)
	Delete(w http.ResponseWriter, r *http.Request)
}

type officeHandlerImpl struct {
	officeService office.OfficeService
}

func NewOfficeHandler(officeService office.OfficeService) OfficeHandler {
	return &officeHandlerImpl{officeService: officeService}
}

// Create handles POST /office-locations
func (h *officeHandlerImpl) Create(w http.ResponseWriter, r *http.Request) {
	var req office.CreateLocationRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		response.BadRequest(w, "Invalid request format", nil)
		return
	}

	if err := req.Validate(); err != nil {
		response.HandleError(w, err)
		return
	}

	result, err := h.officeService.Create(r.Context(), req)
	if err != nil {
		slog.Error("Create office location service error", "error", err)
		response.HandleError(w, err)
		return
	}

	response.Created(w, "Office location created successfully", result)
}

// List handles GET /office-locations
func (h *officeHandlerImpl) List(w http.ResponseWriter, r *http.Request) {
	locations, err := h.officeService.List(r.Context())
	if err != nil {
		slog.Error("List office locations service error", "error", err)
		response.HandleError(w, err)
		return
	}

	response.Success(w, locations)
}

// Get handles GET /office-locations/{id}
func (h *officeHandlerImpl) Get(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r, "id")
	if err != nil {
		response.HandleError(w, err)
		return
	}

	result, err := h.officeService.GetByID(r.Context(), id)
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.Success(w, result)
}

// Update handles PUT /office-locations/{id}
func (h *officeHandlerImpl) Update(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r, "id")
	if err != nil {
		response.HandleError(w, err)
		return
	}

	var req office.UpdateLocationRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		response.BadRequest(w, "Invalid request format", nil)
		return
	}
	req.ID = id

	if err := req.Validate(); err != nil {
		response.HandleError(w, err)
		return
	}

	result, err := h.officeService.Update(r.Context(), req)
	if err != nil {
		slog.Error("Update office location service error", "error", err)
		response.HandleError(w, err)
		return
	}

	response.SuccessWithMessage(w, "Office location updated successfully", result)
}

// Delete handles DELETE /office-locations/{id}
func (h *officeHandlerImpl) Delete(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r, "id")
	if err != nil {
		response.HandleError(w, err)
		return
	}

	if err := h.officeService.Delete(r.Context(), id); err != nil {
		slog.Error("Delete office location service error", "error", err)
		response.HandleError(w, err)
		return
	}

	response.SuccessWithMessage(w, "Office location deleted successfully", nil)
}
