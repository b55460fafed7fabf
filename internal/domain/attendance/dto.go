package attendance

import (
	"fmt"
	"math"
	"time"

	"github.com/corvitlabs/attendance-tracker/internal/domain/user"
	"github.com/corvitlabs/attendance-tracker/internal/pkg/validator"
)

const DateLayout = "2006-01-02"

// Requester is the authenticated caller, taken from the token claims.
type Requester struct {
	UserID int64
	Role   user.Role
}

// CanViewAll reports whether the requester may read other users' records.
func (r Requester) CanViewAll() bool {
	return user.HasPermission(r.Role, user.PermissionAttendanceViewAll)
}

// ========================================
// CHECK-IN / CHECK-OUT
// ========================================

type CheckInRequest struct {
	UserID           int64    `json:"-"`
	Latitude         *float64 `json:"latitude"`
	Longitude        *float64 `json:"longitude"`
	OfficeLocationID *int64   `json:"office_location_id,omitempty"`
}

func (r *CheckInRequest) Validate() error {
	var errs validator.ValidationErrors

	errs = append(errs, validateCoordinates(r.Latitude, r.Longitude, true)...)

	if r.OfficeLocationID != nil && *r.OfficeLocationID <= 0 {
		errs = append(errs, validator.ValidationError{
			Field:   "office_location_id",
			Message: "office_location_id must be a positive number",
		})
	}

	if len(errs) > 0 {
		return errs
	}

	return nil
}

// CheckOutRequest coordinates are optional; when given they are stored.
type CheckOutRequest struct {
	UserID    int64    `json:"-"`
	Latitude  *float64 `json:"latitude,omitempty"`
	Longitude *float64 `json:"longitude,omitempty"`
}

func (r *CheckOutRequest) Validate() error {
	var errs validator.ValidationErrors

	if (r.Latitude == nil) != (r.Longitude == nil) {
		errs = append(errs, validator.ValidationError{
			Field:   "latitude",
			Message: "latitude and longitude must be provided together",
		})
	} else {
		errs = append(errs, validateCoordinates(r.Latitude, r.Longitude, false)...)
	}

	if len(errs) > 0 {
		return errs
	}

	return nil
}

type ValidateLocationRequest struct {
	Latitude         *float64 `json:"latitude"`
	Longitude        *float64 `json:"longitude"`
	OfficeLocationID *int64   `json:"office_location_id,omitempty"`
}

func (r *ValidateLocationRequest) Validate() error {
	errs := validateCoordinates(r.Latitude, r.Longitude, true)
	if len(errs) > 0 {
		return errs
	}
	return nil
}

type LocationValidationResponse struct {
	IsValid      bool    `json:"is_valid"`
	Distance     float64 `json:"distance"`
	Message      string  `json:"message"`
	OfficeID     int64   `json:"office_id"`
	OfficeName   string  `json:"office_name"`
	RadiusMeters int     `json:"radius_meters"`
}

// LocationMessage renders the human readable verdict of a location check.
func LocationMessage(valid bool, distance float64, radius int) string {
	if valid {
		return fmt.Sprintf("Location is within office premises (%.0fm from office)", distance)
	}
	return fmt.Sprintf("Location is outside office premises (%.0fm from office, allowed %dm)", distance, radius)
}

// ========================================
// BREAKS
// ========================================

type StartBreakRequest struct {
	UserID     int64   `json:"-"`
	BreakType  string  `json:"break_type"`            // lunch, prayer, away
	PrayerKind *string `json:"prayer_kind,omitempty"` // fajr, zohar, asar, maghrib, isha
}

func (r *StartBreakRequest) Validate() error {
	var errs validator.ValidationErrors

	validTypes := []string{"lunch", "prayer", "away", "namaz", "afk"}
	if validator.IsEmpty(r.BreakType) {
		errs = append(errs, validator.ValidationError{
			Field:   "break_type",
			Message: "break_type is required",
		})
	} else if !validator.IsInSlice(r.BreakType, validTypes) {
		errs = append(errs, validator.ValidationError{
			Field:   "break_type",
			Message: "break_type must be one of: lunch, prayer, away",
		})
	}

	isPrayer := r.BreakType == "prayer" || r.BreakType == "namaz"
	validKinds := []string{"fajr", "zohar", "asar", "maghrib", "isha"}
	switch {
	case isPrayer && (r.PrayerKind == nil || validator.IsEmpty(*r.PrayerKind)):
		errs = append(errs, validator.ValidationError{
			Field:   "prayer_kind",
			Message: "prayer_kind is required for prayer breaks",
		})
	case isPrayer && !validator.IsInSlice(*r.PrayerKind, validKinds):
		errs = append(errs, validator.ValidationError{
			Field:   "prayer_kind",
			Message: "prayer_kind must be one of: fajr, zohar, asar, maghrib, isha",
		})
	case !isPrayer && r.PrayerKind != nil:
		errs = append(errs, validator.ValidationError{
			Field:   "prayer_kind",
			Message: "prayer_kind is only allowed for prayer breaks",
		})
	}

	if len(errs) > 0 {
		return errs
	}

	return nil
}

type EndBreakRequest struct {
	UserID  int64 `json:"-"`
	BreakID int64 `json:"break_id"`
}

func (r *EndBreakRequest) Validate() error {
	if r.BreakID <= 0 {
		return validator.ValidationErrors{{Field: "break_id", Message: "break_id is required"}}
	}
	return nil
}

type BreakResponse struct {
	ID                 int64   `json:"id"`
	AttendanceRecordID int64   `json:"attendance_record_id"`
	BreakType          string  `json:"break_type"`
	PrayerKind         *string `json:"prayer_kind,omitempty"`
	StartTime          string  `json:"start_time"`
	EndTime            *string `json:"end_time"`
	DurationMinutes    *int    `json:"duration_minutes"`
	MaxMinutes         int     `json:"max_minutes"`
	WithinWindow       bool    `json:"within_window"`
	IsCompliant        *bool   `json:"is_compliant"`
	ViolationReason    *string `json:"violation_reason"`
	CreatedAt          string  `json:"created_at"`
}

func NewBreakResponse(b Break, loc *time.Location) BreakResponse {
	return BreakResponse{
		ID:                 b.ID,
		AttendanceRecordID: b.AttendanceRecordID,
		BreakType:          b.BreakType,
		PrayerKind:         b.PrayerKind,
		StartTime:          b.StartTime.In(loc).Format(time.RFC3339),
		EndTime:            formatTime(b.EndTime, loc),
		DurationMinutes:    b.DurationMinutes,
		MaxMinutes:         b.MaxMinutes,
		WithinWindow:       b.WithinWindow,
		IsCompliant:        b.IsCompliant,
		ViolationReason:    b.ViolationReason,
		CreatedAt:          b.CreatedAt.In(loc).Format(time.RFC3339),
	}
}

func NewBreakResponses(breaks []Break, loc *time.Location) []BreakResponse {
	out := make([]BreakResponse, 0, len(breaks))
	for _, b := range breaks {
		out = append(out, NewBreakResponse(b, loc))
	}
	return out
}

// ========================================
// RESPONSES
// ========================================

type AttendanceResponse struct {
	ID                    int64           `json:"id"`
	UserID                int64           `json:"user_id"`
	UserName              *string         `json:"user_name,omitempty"`
	EmployeeID            *string         `json:"employee_id,omitempty"`
	OfficeLocationID      *int64          `json:"office_location_id,omitempty"`
	Date                  string          `json:"date"`
	CheckInTime           *string         `json:"check_in_time"`
	CheckOutTime          *string         `json:"check_out_time"`
	CheckInLatitude       *float64        `json:"check_in_latitude,omitempty"`
	CheckInLongitude      *float64        `json:"check_in_longitude,omitempty"`
	CheckOutLatitude      *float64        `json:"check_out_latitude,omitempty"`
	CheckOutLongitude     *float64        `json:"check_out_longitude,omitempty"`
	CheckInDistance       *float64        `json:"check_in_distance,omitempty"`
	CheckInLocationStatus string          `json:"check_in_location_status"`
	Status                string          `json:"status"`
	LateMinutes           *int            `json:"late_minutes"`
	EarlyMinutes          *int            `json:"early_minutes"`
	TotalWorkHours        *float64        `json:"total_work_hours"`
	Breaks                []BreakResponse `json:"breaks,omitempty"`
	CreatedAt             string          `json:"created_at"`
	UpdatedAt             string          `json:"updated_at"`
}

func NewAttendanceResponse(r Record, loc *time.Location) AttendanceResponse {
	resp := AttendanceResponse{
		ID:                    r.ID,
		UserID:                r.UserID,
		UserName:              r.UserName,
		EmployeeID:            r.UserEmployeeID,
		OfficeLocationID:      r.OfficeLocationID,
		Date:                  r.Date.Format(DateLayout),
		CheckInTime:           formatTime(r.CheckInTime, loc),
		CheckOutTime:          formatTime(r.CheckOutTime, loc),
		CheckInLatitude:       r.CheckInLatitude,
		CheckInLongitude:      r.CheckInLongitude,
		CheckOutLatitude:      r.CheckOutLatitude,
		CheckOutLongitude:     r.CheckOutLongitude,
		CheckInDistance:       r.CheckInDistance,
		CheckInLocationStatus: string(r.CheckInLocationStatus),
		Status:                r.Status,
		LateMinutes:           r.LateMinutes,
		EarlyMinutes:          r.EarlyMinutes,
		CreatedAt:             r.CreatedAt.In(loc).Format(time.RFC3339),
		UpdatedAt:             r.UpdatedAt.In(loc).Format(time.RFC3339),
	}
	if r.TotalWorkHours != nil {
		hours := r.TotalWorkHours.InexactFloat64()
		resp.TotalWorkHours = &hours
	}
	return resp
}

type TodayResponse struct {
	Date        string              `json:"date"`
	Attendance  *AttendanceResponse `json:"attendance"`
	ActiveBreak *BreakResponse      `json:"active_break"`
	Breaks      []BreakResponse     `json:"breaks"`
}

type ListAttendanceResponse struct {
	TotalCount  int64                `json:"total_count"`
	Page        int                  `json:"page"`
	Limit       int                  `json:"limit"`
	TotalPages  int                  `json:"total_pages"`
	Showing     string               `json:"showing"`
	Attendances []AttendanceResponse `json:"attendances"`
}

// NewListAttendanceResponse fills the paging fields the way every list endpoint reports them.
func NewListAttendanceResponse(items []AttendanceResponse, total int64, page, limit int) ListAttendanceResponse {
	totalPages := int(math.Ceil(float64(total) / float64(limit)))
	showing := "0 of 0"
	if len(items) > 0 {
		from := (page-1)*limit + 1
		showing = fmt.Sprintf("%d-%d of %d", from, from+len(items)-1, total)
	}
	return ListAttendanceResponse{
		TotalCount:  total,
		Page:        page,
		Limit:       limit,
		TotalPages:  totalPages,
		Showing:     showing,
		Attendances: items,
	}
}

// ========================================
// FILTERS
// ========================================

const (
	DefaultPage  = 1
	DefaultLimit = 10
	MaxLimit     = 100
)

type AttendanceFilter struct {
	UserID    *int64  `json:"user_id,omitempty"`
	Date      *string `json:"date,omitempty"`       // YYYY-MM-DD
	StartDate *string `json:"start_date,omitempty"` // YYYY-MM-DD
	EndDate   *string `json:"end_date,omitempty"`   // YYYY-MM-DD
	Status    *string `json:"status,omitempty"`

	// Pagination
	Page  int `json:"page"`
	Limit int `json:"limit"`
}

// Validate checks the filter and fills paging defaults.
func (f *AttendanceFilter) Validate() error {
	var errs validator.ValidationErrors

	if f.Page < 0 {
		errs = append(errs, validator.ValidationError{
			Field:   "page",
			Message: "page must be a positive number",
		})
	}
	if f.Page == 0 {
		f.Page = DefaultPage
	}

	if f.Limit < 0 {
		errs = append(errs, validator.ValidationError{
			Field:   "limit",
			Message: "limit must be a positive number",
		})
	}
	if f.Limit == 0 {
		f.Limit = DefaultLimit
	}
	if f.Limit > MaxLimit {
		errs = append(errs, validator.ValidationError{
			Field:   "limit",
			Message: fmt.Sprintf("limit must not exceed %d", MaxLimit),
		})
	}

	if f.Status != nil {
		validStatuses := []string{StatusPresent, StatusLate, StatusLeftEarly, StatusAbsent}
		if !validator.IsInSlice(*f.Status, validStatuses) {
			errs = append(errs, validator.ValidationError{
				Field:   "status",
				Message: "status must be one of: present, late, left_early, absent",
			})
		}
	}

	var start, end time.Time
	var startOK, endOK bool
	if f.Date != nil {
		if _, valid := validator.IsValidDate(*f.Date); !valid {
			errs = append(errs, validator.ValidationError{
				Field:   "date",
				Message: "date must be in YYYY-MM-DD format",
			})
		}
	}
	if f.StartDate != nil {
		if start, startOK = validator.IsValidDate(*f.StartDate); !startOK {
			errs = append(errs, validator.ValidationError{
				Field:   "start_date",
				Message: "start_date must be in YYYY-MM-DD format",
			})
		}
	}
	if f.EndDate != nil {
		if end, endOK = validator.IsValidDate(*f.EndDate); !endOK {
			errs = append(errs, validator.ValidationError{
				Field:   "end_date",
				Message: "end_date must be in YYYY-MM-DD format",
			})
		}
	}
	if startOK && endOK && end.Before(start) {
		errs = append(errs, validator.ValidationError{
			Field:   "end_date",
			Message: "end_date must not be before start_date",
		})
	}

	if len(errs) > 0 {
		return errs
	}

	return nil
}

// Offset returns the row offset of the current page.
func (f *AttendanceFilter) Offset() int {
	return (f.Page - 1) * f.Limit
}

func validateCoordinates(lat, lng *float64, required bool) validator.ValidationErrors {
	var errs validator.ValidationErrors

	if lat == nil {
		if required {
			errs = append(errs, validator.ValidationError{Field: "latitude", Message: "latitude is required"})
		}
	} else if math.IsNaN(*lat) || *lat < -90 || *lat > 90 {
		errs = append(errs, validator.ValidationError{Field: "latitude", Message: "latitude must be between -90 and 90"})
	}

	if lng == nil {
		if required {
			errs = append(errs, validator.ValidationError{Field: "longitude", Message: "longitude is required"})
		}
	} else if math.IsNaN(*lng) || *lng < -180 || *lng > 180 {
		errs = append(errs, validator.ValidationError{Field: "longitude", Message: "longitude must be between -180 and 180"})
	}

	return errs
}

func formatTime(t *time.Time, loc *time.Location) *string {
	if t == nil {
		return nil
	}
	s := t.In(loc).Format(time.RFC3339)
	return &s
}
