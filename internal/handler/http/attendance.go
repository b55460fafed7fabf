package http

import (
	"encoding/json"
	"errors"
	"io"
	"log/slog"
	"net/http"

	"github.com/corvitlabs/attendance-tracker/internal/domain/attendance"
	"github.com/corvitlabs/attendance-tracker/internal/handler/http/middleware"
	"github.com/corvitlabs/attendance-tracker/internal/handler/http/response"
	"github.com/corvitlabs/attendance-tracker/internal/pkg/validator"
)

type AttendanceHandler interface {
	CheckIn(w http.ResponseWriter, r *http.Request)
	CheckOut(w http.ResponseWriter, r *http.Request)
	StartBreak(w http.ResponseWriter, r *http.Request)
	EndBreak(w http.ResponseWriter, r *http.Request)
	Today(w http.ResponseWriter, r *http.Request)
	List(w http.ResponseWriter, r *http.Request)
	Get(w http.ResponseWriter, r *http.Request)
	ListBreaks(w http.ResponseWriter, r *http.Request)
	ValidateLocation(w http.ResponseWriter, r *http.Request)
}

type attendanceHandlerImpl struct {
	attendanceService attendance.AttendanceService
}

func NewAttendanceHandler(attendanceService attendance.AttendanceService) AttendanceHandler {
	return &attendanceHandlerImpl{
		attendanceService: attendanceService,
	}
}

// CheckIn handles POST /attendance/check-in
func (h *attendanceHandlerImpl) CheckIn(w http.ResponseWriter, r *http.Request) {
	claims, err := middleware.ClaimsFromContext(r.Context())
	if err != nil {
		response.HandleError(w, err)
		return
	}

	var req attendance.CheckInRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		response.BadRequest(w, "Invalid request format", nil)
		return
	}
	req.UserID = claims.UserID

	result, err := h.attendanceService.CheckIn(r.Context(), req)
	if err != nil {
		slog.Error("Check in service error", "error", err, "user_id", claims.UserID)
		response.HandleError(w, err)
		return
	}

	response.Created(w, "Checked in successfully", result)
}

// CheckOut handles POST /attendance/check-out. Coordinates are optional.
func (h *attendanceHandlerImpl) CheckOut(w http.ResponseWriter, r *http.Request) {
	claims, err := middleware.ClaimsFromContext(r.Context())
	if err != nil {
		response.HandleError(w, err)
		return
	}

	var req attendance.CheckOutRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil && !errors.Is(err, io.EOF) {
		response.BadRequest(w, "Invalid request format", nil)
		return
	}
	req.UserID = claims.UserID

	result, err := h.attendanceService.CheckOut(r.Context(), req)
	if err != nil {
		slog.Error("Check out service error", "error", err, "user_id", claims.UserID)
		response.HandleError(w, err)
		return
	}

	response.SuccessWithMessage(w, "Checked out successfully", result)
}

// StartBreak handles POST /attendance/breaks
func (h *attendanceHandlerImpl) StartBreak(w http.ResponseWriter, r *http.Request) {
	claims, err := middleware.ClaimsFromContext(r.Context())
	if err != nil {
		response.HandleError(w, err)
		return
	}

	var req attendance.StartBreakRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		response.BadRequest(w, "Invalid request format", nil)
		return
	}
	req.UserID = claims.UserID

	result, err := h.attendanceService.StartBreak(r.Context(), req)
	if err != nil {
		slog.Error("Start break service error", "error", err, "user_id", claims.UserID)
		response.HandleError(w, err)
		return
	}

	response.Created(w, "Break started", result)
}

// EndBreak handles POST /attendance/breaks/{id}/end
func (h *attendanceHandlerImpl) EndBreak(w http.ResponseWriter, r *http.Request) {
	claims, err := middleware.ClaimsFromContext(r.Context())
	if err != nil {
		response.HandleError(w, err)
		return
	}

	breakID, err := pathID(r, "id")
	if err != nil {
		response.HandleError(w, err)
		return
	}

	result, err := h.attendanceService.EndBreak(r.Context(), attendance.EndBreakRequest{
		UserID:  claims.UserID,
		BreakID: breakID,
	})
	if err != nil {
		slog.Error("End break service error", "error", err, "user_id", claims.UserID)
		response.HandleError(w, err)
		return
	}

	response.SuccessWithMessage(w, "Break ended", result)
}

// Today handles GET /attendance/today
func (h *attendanceHandlerImpl) Today(w http.ResponseWriter, r *http.Request) {
	claims, err := middleware.ClaimsFromContext(r.Context())
	if err != nil {
		response.HandleError(w, err)
		return
	}

	result, err := h.attendanceService.Today(r.Context(), claims.UserID)
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.Success(w, result)
}

// List handles GET /attendance
func (h *attendanceHandlerImpl) List(w http.ResponseWriter, r *http.Request) {
	claims, err := middleware.ClaimsFromContext(r.Context())
	if err != nil {
		response.HandleError(w, err)
		return
	}

	var errs validator.ValidationErrors
	filter := attendance.AttendanceFilter{
		Date:      queryString(r, "date"),
		StartDate: queryString(r, "start_date"),
		EndDate:   queryString(r, "end_date"),
		Status:    queryString(r, "status"),
		Page:      queryInt(r, "page", &errs),
		Limit:     queryInt(r, "limit", &errs),
	}
	if userID := queryInt(r, "user_id", &errs); userID > 0 {
		id := int64(userID)
		filter.UserID = &id
	}
	if len(errs) > 0 {
		response.HandleError(w, errs)
		return
	}

	result, err := h.attendanceService.List(r.Context(), claims.Requester(), filter)
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.SuccessWithMeta(w, result, &response.Meta{
		Page:       result.Page,
		Limit:      result.Limit,
		TotalItems: result.TotalCount,
		TotalPages: result.TotalPages,
	})
}

// Get handles GET /attendance/{id}
func (h *attendanceHandlerImpl) Get(w http.ResponseWriter, r *http.Request) {
	claims, err := middleware.ClaimsFromContext(r.Context())
	if err != nil {
		response.HandleError(w, err)
		return
	}

	id, err := pathID(r, "id")
	if err != nil {
		response.HandleError(w, err)
		return
	}

	result, err := h.attendanceService.GetByID(r.Context(), claims.Requester(), id)
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.Success(w, result)
}

// ListBreaks handles GET /attendance/{id}/breaks
func (h *attendanceHandlerImpl) ListBreaks(w http.ResponseWriter, r *http.Request) {
	claims, err := middleware.ClaimsFromContext(r.Context())
	if err != nil {
		response.HandleError(w, err)
		return
	}

	id, err := pathID(r, "id")
	if err != nil {
		response.HandleError(w, err)
		return
	}

	result, err := h.attendanceService.ListBreaks(r.Context(), claims.Requester(), id)
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.Success(w, result)
}

// ValidateLocation handles POST /attendance/validate-location
func (h *attendanceHandlerImpl) ValidateLocation(w http.ResponseWriter, r *http.Request) {
	var req attendance.ValidateLocationRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		response.BadRequest(w, "Invalid request format", nil)
		return
	}

	result, err := h.attendanceService.ValidateLocation(r.Context(), req)
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.Success(w, result)
}
