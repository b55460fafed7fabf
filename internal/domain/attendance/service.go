package attendance

import (
	"context"
	"time"
)

// AttendanceService defines business logic for attendance operations
type AttendanceService interface {
	// CheckIn validates the location and opens today's record
	CheckIn(ctx context.Context, req CheckInRequest) (AttendanceResponse, error)

	// CheckOut closes today's record and classifies the day
	CheckOut(ctx context.Context, req CheckOutRequest) (AttendanceResponse, error)

	StartBreak(ctx context.Context, req StartBreakRequest) (BreakResponse, error)

	EndBreak(ctx context.Context, req EndBreakRequest) (BreakResponse, error)

	// Today returns the requester's record, breaks and open break for the local date
	Today(ctx context.Context, userID int64) (TodayResponse, error)

	GetByID(ctx context.Context, requester Requester, id int64) (AttendanceResponse, error)

	List(ctx context.Context, requester Requester, filter AttendanceFilter) (ListAttendanceResponse, error)

	ListBreaks(ctx context.Context, requester Requester, attendanceID int64) ([]BreakResponse, error)

	ValidateLocation(ctx context.Context, req ValidateLocationRequest) (LocationValidationResponse, error)

	// MarkAbsent records absent for every active user without a record on date
	MarkAbsent(ctx context.Context, date time.Time) (int64, error)
}
