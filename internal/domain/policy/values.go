package policy

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/shopspring/decimal"
)

// TimeOfDay is a wall-clock time without a date.
type TimeOfDay struct {
	Hour   int
	Minute int
}

// ParseTimeOfDay parses "HH:MM" (24-hour clock).
func ParseTimeOfDay(s string) (TimeOfDay, error) {
	parts := strings.Split(strings.TrimSpace(s), ":")
	if len(parts) != 2 {
		return TimeOfDay{}, fmt.Errorf("%q is not in HH:MM format", s)
	}
	hour, err := parseClockPart(parts[0], 23)
	if err != nil {
		return TimeOfDay{}, fmt.Errorf("invalid hour in %q", s)
	}
	minute, err := parseClockPart(parts[1], 59)
	if err != nil {
		return TimeOfDay{}, fmt.Errorf("invalid minute in %q", s)
	}
	return TimeOfDay{Hour: hour, Minute: minute}, nil
}

func parseClockPart(s string, max int) (int, error) {
	if len(s) == 0 || len(s) > 2 {
		return 0, fmt.Errorf("bad length")
	}
	for _, r := range s {
		if r < '0' || r > '9' {
			return 0, fmt.Errorf("not a digit")
		}
	}
	n, err := strconv.Atoi(s)
	if err != nil || n > max {
		return 0, fmt.Errorf("out of range")
	}
	return n, nil
}

func (t TimeOfDay) String() string {
	return fmt.Sprintf("%02d:%02d", t.Hour, t.Minute)
}

// Minutes returns minutes since midnight.
func (t TimeOfDay) Minutes() int {
	return t.Hour*60 + t.Minute
}

// Values is a raw key/value read of the configuration table.
type Values map[string]string

// Get returns the raw value of key, reporting false when absent.
func (v Values) Get(key string) (string, bool) {
	raw, ok := v[key]
	if !ok || strings.TrimSpace(raw) == "" {
		return "", false
	}
	return strings.TrimSpace(raw), true
}

// GetDuration returns a non-negative whole number of minutes.
func (v Values) GetDuration(key string) (int, error) {
	return v.getNonNegativeInt(key)
}

// GetCount returns a non-negative integer count.
func (v Values) GetCount(key string) (int, error) {
	return v.getNonNegativeInt(key)
}

func (v Values) getNonNegativeInt(key string) (int, error) {
	raw, ok := v.Get(key)
	if !ok {
		return 0, &ConfigurationError{Key: key, Reason: "value is missing"}
	}
	n, err := strconv.Atoi(raw)
	if err != nil {
		return 0, &ConfigurationError{Key: key, Reason: fmt.Sprintf("%q is not a whole number", raw)}
	}
	if n < 0 {
		return 0, &ConfigurationError{Key: key, Reason: "value must not be negative"}
	}
	return n, nil
}

// GetTimeOfDay returns an "HH:MM" value.
func (v Values) GetTimeOfDay(key string) (TimeOfDay, error) {
	raw, ok := v.Get(key)
	if !ok {
		return TimeOfDay{}, &ConfigurationError{Key: key, Reason: "value is missing"}
	}
	t, err := ParseTimeOfDay(raw)
	if err != nil {
		return TimeOfDay{}, &ConfigurationError{Key: key, Reason: err.Error()}
	}
	return t, nil
}

// GetDecimal returns a decimal value such as a coordinate.
func (v Values) GetDecimal(key string) (decimal.Decimal, error) {
	raw, ok := v.Get(key)
	if !ok {
		return decimal.Zero, &ConfigurationError{Key: key, Reason: "value is missing"}
	}
	d, err := decimal.NewFromString(raw)
	if err != nil {
		return decimal.Zero, &ConfigurationError{Key: key, Reason: fmt.Sprintf("%q is not a decimal", raw)}
	}
	return d, nil
}

// GetWorkHoursMode returns the work hours calculation method.
func (v Values) GetWorkHoursMode(key string) (WorkHoursMode, error) {
	raw, ok := v.Get(key)
	if !ok {
		return "", &ConfigurationError{Key: key, Reason: "value is missing"}
	}
	switch mode := WorkHoursMode(raw); mode {
	case WorkHoursExcludeBreaks, WorkHoursIncludeBreaks:
		return mode, nil
	default:
		return "", &ConfigurationError{Key: key, Reason: fmt.Sprintf("%q must be one of: exclude_breaks, include_breaks", raw)}
	}
}

// WithDefaults returns a copy where absent documented keys take their default.
func (v Values) WithDefaults() Values {
	merged := Defaults()
	for key, raw := range v {
		if _, ok := v.Get(key); ok {
			merged[key] = raw
		}
	}
	return merged
}

// ValidateValue checks raw against the kind of a documented key.
// Undocumented keys are free-form.
func ValidateValue(key, raw string) error {
	def, ok := Lookup(key)
	if !ok {
		return nil
	}
	single := Values{key: raw}
	var err error
	switch def.Kind {
	case KindTimeOfDay:
		_, err = single.GetTimeOfDay(key)
	case KindMinutes:
		_, err = single.GetDuration(key)
	case KindCount:
		_, err = single.GetCount(key)
	case KindDecimal:
		var d decimal.Decimal
		if d, err = single.GetDecimal(key); err == nil {
			err = checkCoordinate(key, d.InexactFloat64())
		}
	case KindWorkHoursMode:
		_, err = single.GetWorkHoursMode(key)
	}
	return err
}

// checkCoordinate range-checks the default office coordinates. Other keys pass.
func checkCoordinate(key string, value float64) error {
	var limit float64
	switch key {
	case KeyDefaultOfficeLatitude:
		limit = 90
	case KeyDefaultOfficeLongitude:
		limit = 180
	default:
		return nil
	}
	if value < -limit || value > limit {
		return &ConfigurationError{Key: key, Reason: fmt.Sprintf("%v is outside [-%v, %v]", value, limit, limit)}
	}
	return nil
}
