package evaluation

import (
	"time"

	"github.com/corvitlabs/attendance-tracker/internal/domain/policy"
)

type BreakType string

const (
	BreakLunch  BreakType = "lunch"
	BreakPrayer BreakType = "prayer"
	BreakAway   BreakType = "away"
)

// ParseBreakType accepts the canonical names plus the legacy "namaz" and "afk".
func ParseBreakType(s string) (BreakType, bool) {
	switch s {
	case "lunch":
		return BreakLunch, true
	case "prayer", "namaz":
		return BreakPrayer, true
	case "away", "afk":
		return BreakAway, true
	default:
		return "", false
	}
}

type ViolationReason string

const (
	ReasonBreakTimeExceeded       ViolationReason = "BREAK_TIME_EXCEEDED"
	ReasonPrayerLimitReached      ViolationReason = "PRAYER_BREAK_LIMIT_REACHED"
	ReasonBreakOutsideAllowedTime ViolationReason = "BREAK_OUTSIDE_ALLOWED_TIME"
)

// BreakEvent is one break; End is nil while the break is open.
type BreakEvent struct {
	Type       BreakType
	PrayerKind policy.PrayerKind
	Start      time.Time
	End        *time.Time
}

// BreakEvaluation leaves DurationMinutes, Compliant and Reason nil while the
// break is open.
type BreakEvaluation struct {
	WithinWindow    bool
	MaxMinutes      int
	DurationMinutes *int
	Compliant       *bool
	Reason          *ViolationReason
}

// MaxBreakMinutes returns the allowance for a break type under snap.
func MaxBreakMinutes(t BreakType, kind policy.PrayerKind, snap policy.Snapshot) (int, error) {
	switch t {
	case BreakLunch:
		return snap.LunchMaxDurationMinutes, nil
	case BreakAway:
		return snap.AFKFlexibilityMinutes, nil
	case BreakPrayer:
		minutes, ok := snap.PrayerFlexibility.For(kind)
		if !ok {
			return 0, &InvalidInputError{Field: "prayer_kind", Reason: "must be one of: fajr, zohar, asar, maghrib, isha"}
		}
		return minutes, nil
	default:
		return 0, &InvalidInputError{Field: "break_type", Reason: "must be one of: lunch, prayer, away"}
	}
}

// IsWithinBreakWindow reports whether a break of type t may start at start.
// Only lunch has a fixed window.
func IsWithinBreakWindow(t BreakType, start time.Time, snap policy.Snapshot) bool {
	if t != BreakLunch {
		return true
	}
	return IsWithin(start, snap.LunchStart, snap.LunchEnd)
}

// EvaluateBreak checks a break's window, duration and the daily prayer cap.
// priorCompliantPrayerBreaks counts the same user's compliant prayer breaks
// earlier that day, excluding b.
func EvaluateBreak(b BreakEvent, snap policy.Snapshot, priorCompliantPrayerBreaks int) (BreakEvaluation, error) {
	maxMinutes, err := MaxBreakMinutes(b.Type, b.PrayerKind, snap)
	if err != nil {
		return BreakEvaluation{}, err
	}
	if priorCompliantPrayerBreaks < 0 {
		return BreakEvaluation{}, &InvalidInputError{Field: "prior_compliant_prayer_breaks", Reason: "must not be negative"}
	}

	result := BreakEvaluation{
		WithinWindow: IsWithinBreakWindow(b.Type, b.Start, snap),
		MaxMinutes:   maxMinutes,
	}

	if b.End == nil {
		return result, nil
	}
	if b.End.Before(b.Start) {
		return BreakEvaluation{}, &InvalidInputError{Field: "end", Reason: "must not be before start"}
	}

	duration := MinutesBetween(b.Start, *b.End)
	result.DurationMinutes = &duration

	var reason ViolationReason
	switch {
	case duration > maxMinutes:
		reason = ReasonBreakTimeExceeded
	case b.Type == BreakPrayer && priorCompliantPrayerBreaks >= snap.MaxPrayerBreaksPerDay:
		reason = ReasonPrayerLimitReached
	case !result.WithinWindow:
		reason = ReasonBreakOutsideAllowedTime
	}

	compliant := reason == ""
	result.Compliant = &compliant
	if !compliant {
		result.Reason = &reason
	}

	return result, nil
}
