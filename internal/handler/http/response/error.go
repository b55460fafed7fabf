package response

import (
	"errors"
	"net/http"

	"github.com/corvitlabs/attendance-tracker/internal/domain/attendance"
	"github.com/corvitlabs/attendance-tracker/internal/domain/auth"
	"github.com/corvitlabs/attendance-tracker/internal/domain/office"
	"github.com/corvitlabs/attendance-tracker/internal/domain/policy"
	"github.com/corvitlabs/attendance-tracker/internal/domain/report"
	"github.com/corvitlabs/attendance-tracker/internal/domain/user"
	"github.com/corvitlabs/attendance-tracker/internal/pkg/validator"
	"github.com/corvitlabs/attendance-tracker/internal/service/evaluation"
)

// HandleError maps domain errors to HTTP responses
func HandleError(w http.ResponseWriter, err error) {
	var validationErrs validator.ValidationErrors
	if errors.As(err, &validationErrs) {
		ValidationError(w, validationErrs.ToMap())
		return
	}

	var configErr *policy.ConfigurationError
	if errors.As(err, &configErr) {
		ConfigurationError(w, configErr.Key, configErr.Reason)
		return
	}

	var inputErr *evaluation.InvalidInputError
	if errors.As(err, &inputErr) {
		BadRequest(w, "Invalid input", map[string]string{inputErr.Field: inputErr.Reason})
		return
	}

	switch {
	// Auth domain errors
	case errors.Is(err, auth.ErrInvalidCredentials),
		errors.Is(err, auth.ErrInvalidToken),
		errors.Is(err, auth.ErrTokenRevoked):
		Unauthorized(w, err.Error())
	case errors.Is(err, auth.ErrAccountInactive):
		Forbidden(w, err.Error())

	// User domain errors
	case errors.Is(err, user.ErrUserNotFound):
		NotFound(w, "User not found")
	case errors.Is(err, user.ErrUserEmailExists),
		errors.Is(err, user.ErrEmployeeIDExists),
		errors.Is(err, user.ErrAdminAlreadyExists):
		Conflict(w, err.Error())
	case errors.Is(err, user.ErrUserInactive):
		Forbidden(w, err.Error())
	case errors.Is(err, user.ErrAdminPrivilegeRequired),
		errors.Is(err, user.ErrInsufficientPermissions):
		Forbidden(w, err.Error())
	case errors.Is(err, user.ErrCannotDeleteSelf):
		BadRequest(w, err.Error(), nil)

	// Office domain errors
	case errors.Is(err, office.ErrLocationNotFound):
		NotFound(w, "Office location not found")
	case errors.Is(err, office.ErrNoOfficeConfigured):
		Conflict(w, err.Error())

	// Policy domain errors
	case errors.Is(err, policy.ErrConfigNotFound):
		NotFound(w, "Configuration not found")
	case errors.Is(err, policy.ErrInvalidSeedMode):
		BadRequest(w, err.Error(), nil)

	// Attendance domain errors
	case errors.Is(err, attendance.ErrAttendanceNotFound):
		NotFound(w, "Attendance record not found")
	case errors.Is(err, attendance.ErrBreakNotFound):
		NotFound(w, "Break record not found")
	case errors.Is(err, attendance.ErrAlreadyCheckedIn),
		errors.Is(err, attendance.ErrAlreadyCheckedOut),
		errors.Is(err, attendance.ErrBreakInProgress),
		errors.Is(err, attendance.ErrBreakAlreadyEnded):
		Conflict(w, err.Error())
	case errors.Is(err, attendance.ErrNotCheckedIn),
		errors.Is(err, attendance.ErrInvalidBreakType),
		errors.Is(err, attendance.ErrPrayerKindRequired):
		BadRequest(w, err.Error(), nil)
	case errors.Is(err, attendance.ErrOutsideAllowedRadius):
		Forbidden(w, err.Error())
	case errors.Is(err, attendance.ErrUnauthorized):
		Forbidden(w, err.Error())

	// Report domain errors
	case errors.Is(err, report.ErrReportGenerationFailed):
		InternalServerError(w, "Failed to generate report")

	default:
		InternalServerError(w, "An unexpected error occurred")
	}
}
