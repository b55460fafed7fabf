package attendance

import (
	"time"

	"github.com/shopspring/decimal"
)

type LocationStatus string

const (
	LocationValid   LocationStatus = "valid"
	LocationInvalid LocationStatus = "invalid"
)

const (
	StatusPresent   = "present"
	StatusLate      = "late"
	StatusLeftEarly = "left_early"
	StatusAbsent    = "absent"
)

// Record is one user's attendance for one local calendar date.
type Record struct {
	ID                    int64
	UserID                int64
	OfficeLocationID      *int64
	Date                  time.Time
	CheckInTime           *time.Time
	CheckOutTime          *time.Time
	CheckInLatitude       *float64
	CheckInLongitude      *float64
	CheckOutLatitude      *float64
	CheckOutLongitude     *float64
	CheckInDistance       *float64
	CheckInLocationStatus LocationStatus
	Status                string
	LateMinutes           *int
	EarlyMinutes          *int
	TotalWorkHours        *decimal.Decimal
	CreatedAt             time.Time
	UpdatedAt             time.Time

	// Join
	UserName       *string
	UserEmployeeID *string
}

// IsCheckedOut reports whether the day is closed.
func (r *Record) IsCheckedOut() bool {
	return r.CheckOutTime != nil
}

// Break is one break inside an attendance record. EndTime is nil while open.
type Break struct {
	ID                 int64
	AttendanceRecordID int64
	UserID             int64
	Date               time.Time
	BreakType          string
	PrayerKind         *string
	StartTime          time.Time
	EndTime            *time.Time
	DurationMinutes    *int
	MaxMinutes         int
	WithinWindow       bool
	IsCompliant        *bool
	ViolationReason    *string
	CreatedAt          time.Time
	UpdatedAt          time.Time
}

func (b *Break) IsOpen() bool {
	return b.EndTime == nil
}
