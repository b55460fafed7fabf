package policy

// Kind is the value category of a configuration key.
type Kind int

const (
	KindTimeOfDay Kind = iota
	KindMinutes
	KindCount
	KindDecimal
	KindWorkHoursMode
)

func (k Kind) String() string {
	switch k {
	case KindTimeOfDay:
		return "time-of-day (HH:MM)"
	case KindMinutes:
		return "minutes"
	case KindCount:
		return "count"
	case KindDecimal:
		return "decimal"
	case KindWorkHoursMode:
		return "work hours mode"
	default:
		return "unknown"
	}
}

const (
	KeyOfficeStartTime                = "office_start_time"
	KeyOfficeStartFlexibilityMinutes  = "office_start_flexibility_minutes"
	KeyOfficeEndTime                  = "office_end_time"
	KeyLunchStartTime                 = "lunch_start_time"
	KeyLunchEndTime                   = "lunch_end_time"
	KeyLunchMaxDurationMinutes        = "lunch_max_duration_minutes"
	KeyAFKFlexibilityMinutes          = "afk_flexibility_minutes"
	KeyFajrFlexibilityMinutes         = "fajr_prayer_flexibility_minutes"
	KeyZoharFlexibilityMinutes        = "zohar_prayer_flexibility_minutes"
	KeyAsarFlexibilityMinutes         = "asar_prayer_flexibility_minutes"
	KeyMaghribFlexibilityMinutes      = "maghrib_prayer_flexibility_minutes"
	KeyIshaFlexibilityMinutes         = "isha_prayer_flexibility_minutes"
	KeyMaxPrayerBreaksPerDay          = "max_prayer_breaks_per_day"
	KeyOfficeLocationRadiusMeters     = "office_location_radius_meters"
	KeyDefaultOfficeLatitude          = "default_office_latitude"
	KeyDefaultOfficeLongitude         = "default_office_longitude"
	KeyWorkHoursCalculationMethod     = "work_hours_calculation_method"
	KeyLateArrivalThresholdMinutes    = "late_arrival_threshold_minutes"
	KeyEarlyDepartureThresholdMinutes = "early_departure_threshold_minutes"
)

// Definition documents a known key: its kind and its seeded default.
type Definition struct {
	Key     string
	Kind    Kind
	Default string
}

// Definitions is the documented defaults table, in seeding order.
var Definitions = []Definition{
	{KeyOfficeStartTime, KindTimeOfDay, "10:00"},
	{KeyOfficeStartFlexibilityMinutes, KindMinutes, "20"},
	{KeyOfficeEndTime, KindTimeOfDay, "19:00"},
	{KeyLunchStartTime, KindTimeOfDay, "13:00"},
	{KeyLunchEndTime, KindTimeOfDay, "15:00"},
	{KeyLunchMaxDurationMinutes, KindMinutes, "60"},
	{KeyAFKFlexibilityMinutes, KindMinutes, "10"},
	{KeyFajrFlexibilityMinutes, KindMinutes, "15"},
	{KeyZoharFlexibilityMinutes, KindMinutes, "20"},
	{KeyAsarFlexibilityMinutes, KindMinutes, "15"},
	{KeyMaghribFlexibilityMinutes, KindMinutes, "15"},
	{KeyIshaFlexibilityMinutes, KindMinutes, "20"},
	{KeyMaxPrayerBreaksPerDay, KindCount, "1"},
	{KeyOfficeLocationRadiusMeters, KindCount, "100"},
	{KeyDefaultOfficeLatitude, KindDecimal, "31.740414"},
	{KeyDefaultOfficeLongitude, KindDecimal, "73.831978"},
	{KeyWorkHoursCalculationMethod, KindWorkHoursMode, string(WorkHoursExcludeBreaks)},
	{KeyLateArrivalThresholdMinutes, KindMinutes, "20"},
	{KeyEarlyDepartureThresholdMinutes, KindMinutes, "0"},
}

// PrayerFlexibilityKey maps a prayer kind to its flexibility key.
func PrayerFlexibilityKey(kind PrayerKind) string {
	return string(kind) + "_prayer_flexibility_minutes"
}

// Lookup returns the definition for key.
func Lookup(key string) (Definition, bool) {
	for _, d := range Definitions {
		if d.Key == key {
			return d, true
		}
	}
	return Definition{}, false
}

// Defaults returns the documented defaults as raw values.
func Defaults() Values {
	v := make(Values, len(Definitions))
	for _, d := range Definitions {
		v[d.Key] = d.Default
	}
	return v
}
