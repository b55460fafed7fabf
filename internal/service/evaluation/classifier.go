package evaluation

import (
	"time"

	"github.com/corvitlabs/attendance-tracker/internal/domain/policy"
	"github.com/shopspring/decimal"
)

type Status string

const (
	StatusPresent   Status = "present"
	StatusLate      Status = "late"
	StatusLeftEarly Status = "left_early"
	StatusAbsent    Status = "absent"
)

// AttendanceEvent is one user's instants for one day, in office local time.
type AttendanceEvent struct {
	CheckIn  *time.Time
	CheckOut *time.Time
}

// BreakAggregate is the day's closed-break total supplied by the caller.
type BreakAggregate struct {
	ClosedBreakMinutes int
}

// Classification is the derived attendance state. Pointer fields are nil
// when undefined for the status.
type Classification struct {
	Status         Status
	LateMinutes    *int
	EarlyMinutes   *int
	TotalWorkHours *decimal.Decimal
}

// ClassifyAttendance derives the day's status from scratch. It is a pure
// function of its arguments and may be called any number of times.
func ClassifyAttendance(event AttendanceEvent, snap policy.Snapshot, agg BreakAggregate) (Classification, error) {
	if event.CheckIn == nil {
		return Classification{Status: StatusAbsent}, nil
	}
	if agg.ClosedBreakMinutes < 0 {
		return Classification{}, &InvalidInputError{Field: "closed_break_minutes", Reason: "must not be negative"}
	}

	checkIn := *event.CheckIn
	result := Classification{Status: StatusPresent}

	graceEnd := AnchorTimeOfDay(snap.OfficeStart, checkIn).
		Add(time.Duration(snap.OfficeStartFlexibilityMinutes) * time.Minute)
	if checkIn.After(graceEnd) {
		late := atLeastOne(MinutesBetween(graceEnd, checkIn))
		result.Status = StatusLate
		result.LateMinutes = &late
	}

	if event.CheckOut == nil {
		return result, nil
	}

	checkOut := *event.CheckOut
	if checkOut.Before(checkIn) {
		return Classification{}, &InvalidInputError{Field: "check_out", Reason: "must not be before check_in"}
	}

	officeEnd := AnchorTimeOfDay(snap.OfficeEnd, checkIn)
	if checkOut.Before(officeEnd) {
		early := atLeastOne(MinutesBetween(checkOut, officeEnd))
		result.Status = StatusLeftEarly
		result.EarlyMinutes = &early
	}

	hours := totalWorkHours(checkIn, checkOut, snap.WorkHoursMode, agg)
	result.TotalWorkHours = &hours

	return result, nil
}

// totalWorkHours is rounded to two decimals and never negative.
func totalWorkHours(checkIn, checkOut time.Time, mode policy.WorkHoursMode, agg BreakAggregate) decimal.Decimal {
	worked := checkOut.Sub(checkIn)
	if mode == policy.WorkHoursExcludeBreaks {
		worked -= time.Duration(agg.ClosedBreakMinutes) * time.Minute
	}
	if worked < 0 {
		worked = 0
	}
	return decimal.NewFromInt(int64(worked)).
		Div(decimal.NewFromInt(int64(time.Hour))).
		Round(2)
}

// a partial minute past a boundary still counts as one minute
func atLeastOne(minutes int) int {
	if minutes < 1 {
		return 1
	}
	return minutes
}
