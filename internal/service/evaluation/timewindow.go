package evaluation

import (
	"math"
	"time"

	"github.com/corvitlabs/attendance-tracker/internal/domain/policy"
)

// AnchorTimeOfDay places tod on day's calendar date, in day's location.
// No timezone conversion happens: day is expected in office local time.
func AnchorTimeOfDay(tod policy.TimeOfDay, day time.Time) time.Time {
	return time.Date(day.Year(), day.Month(), day.Day(), tod.Hour, tod.Minute, 0, 0, day.Location())
}

// IsWithin reports start <= instant <= end, both bounds anchored to instant's date.
func IsWithin(instant time.Time, start, end policy.TimeOfDay) bool {
	from := AnchorTimeOfDay(start, instant)
	to := AnchorTimeOfDay(end, instant)
	return !instant.Before(from) && !instant.After(to)
}

// MinutesBetween returns floor((b - a) in minutes). Negative when a is after b.
func MinutesBetween(a, b time.Time) int {
	return int(math.Floor(b.Sub(a).Minutes()))
}
