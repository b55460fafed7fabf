package attendance

import "errors"

// Attendance domain errors
var (
	// Check-in / check-out errors
	ErrAlreadyCheckedIn     = errors.New("you have already checked in today")
	ErrOutsideAllowedRadius = errors.New("you are outside the allowed radius")
	ErrNotCheckedIn         = errors.New("you have not checked in yet")
	ErrAlreadyCheckedOut    = errors.New("you have already checked out")

	// Break errors
	ErrBreakInProgress    = errors.New("a break is already in progress")
	ErrBreakNotFound      = errors.New("break record not found")
	ErrBreakAlreadyEnded  = errors.New("break has already ended")
	ErrInvalidBreakType   = errors.New("invalid break type")
	ErrPrayerKindRequired = errors.New("prayer_kind is required for prayer breaks")

	// General errors
	ErrAttendanceNotFound = errors.New("attendance record not found")
	ErrUnauthorized       = errors.New("unauthorized to access this attendance record")
)
