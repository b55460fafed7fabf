package attendance

import (
	"context"
	"time"
)

// AttendanceRepository defines data access methods for attendance records.
type AttendanceRepository interface {
	Create(ctx context.Context, record Record) (Record, error)

	GetByID(ctx context.Context, id int64) (Record, error)

	// GetByUserAndDate returns ErrAttendanceNotFound when the user has no
	// record for date. Used to prevent double check-in.
	GetByUserAndDate(ctx context.Context, userID int64, date time.Time) (Record, error)

	Update(ctx context.Context, record Record) (Record, error)

	List(ctx context.Context, filter AttendanceFilter) ([]Record, int64, error)

	// ListByDate returns every record of date joined with its user.
	ListByDate(ctx context.Context, date time.Time) ([]Record, error)

	// ListByUserAndRange returns the user's records with start <= date <= end, oldest first.
	ListByUserAndRange(ctx context.Context, userID int64, start, end time.Time) ([]Record, error)

	// CreateAbsentForMissing inserts an absent record for every active user
	// without a record on date and returns how many were created.
	CreateAbsentForMissing(ctx context.Context, date time.Time) (int64, error)
}

// BreakRepository defines data access methods for break records.
type BreakRepository interface {
	Create(ctx context.Context, b Break) (Break, error)

	GetByID(ctx context.Context, id int64) (Break, error)

	// GetOpenByUser returns ErrBreakNotFound when the user has no open break.
	GetOpenByUser(ctx context.Context, userID int64) (Break, error)

	// Close persists the end time and evaluation of an open break.
	Close(ctx context.Context, b Break) (Break, error)

	ListByAttendance(ctx context.Context, attendanceID int64) ([]Break, error)

	ListByAttendanceIDs(ctx context.Context, attendanceIDs []int64) (map[int64][]Break, error)

	// SumClosedMinutes totals duration_minutes of the record's closed breaks.
	SumClosedMinutes(ctx context.Context, attendanceID int64) (int, error)

	// CountCompliantPrayerBreaks counts the user's compliant prayer breaks on
	// date, ignoring excludeID.
	CountCompliantPrayerBreaks(ctx context.Context, userID int64, date time.Time, excludeID int64) (int, error)
}
