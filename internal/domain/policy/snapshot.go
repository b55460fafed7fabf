package policy

// PrayerFlexibility holds the allowed minutes per prayer kind.
type PrayerFlexibility struct {
	Fajr    int
	Zohar   int
	Asar    int
	Maghrib int
	Isha    int
}

// For returns the allowance for kind.
func (p PrayerFlexibility) For(kind PrayerKind) (int, bool) {
	switch kind {
	case PrayerFajr:
		return p.Fajr, true
	case PrayerZohar:
		return p.Zohar, true
	case PrayerAsar:
		return p.Asar, true
	case PrayerMaghrib:
		return p.Maghrib, true
	case PrayerIsha:
		return p.Isha, true
	default:
		return 0, false
	}
}

// Snapshot is a typed, point-in-time view of every policy value the
// evaluation engine reads. It holds no references and is safe to copy.
type Snapshot struct {
	OfficeStart                   TimeOfDay
	OfficeStartFlexibilityMinutes int
	OfficeEnd                     TimeOfDay

	LunchStart              TimeOfDay
	LunchEnd                TimeOfDay
	LunchMaxDurationMinutes int
	AFKFlexibilityMinutes   int
	PrayerFlexibility       PrayerFlexibility
	MaxPrayerBreaksPerDay   int

	OfficeRadiusMeters     int
	DefaultOfficeLatitude  float64
	DefaultOfficeLongitude float64

	WorkHoursMode WorkHoursMode

	LateArrivalThresholdMinutes    int
	EarlyDepartureThresholdMinutes int
}

// DefaultSnapshot resolves the documented defaults.
func DefaultSnapshot() Snapshot {
	snap, err := NewSnapshot(Defaults())
	if err != nil {
		panic("policy: documented defaults do not resolve: " + err.Error())
	}
	return snap
}

// NewSnapshot resolves raw values into a Snapshot. Absent keys take their
// documented default; a present value that does not parse is a
// *ConfigurationError naming the key.
func NewSnapshot(values Values) (Snapshot, error) {
	r := resolver{values: values.WithDefaults()}

	snap := Snapshot{
		OfficeStart:                   r.timeOfDay(KeyOfficeStartTime),
		OfficeStartFlexibilityMinutes: r.minutes(KeyOfficeStartFlexibilityMinutes),
		OfficeEnd:                     r.timeOfDay(KeyOfficeEndTime),
		LunchStart:                    r.timeOfDay(KeyLunchStartTime),
		LunchEnd:                      r.timeOfDay(KeyLunchEndTime),
		LunchMaxDurationMinutes:       r.minutes(KeyLunchMaxDurationMinutes),
		AFKFlexibilityMinutes:         r.minutes(KeyAFKFlexibilityMinutes),
		PrayerFlexibility: PrayerFlexibility{
			Fajr:    r.minutes(KeyFajrFlexibilityMinutes),
			Zohar:   r.minutes(KeyZoharFlexibilityMinutes),
			Asar:    r.minutes(KeyAsarFlexibilityMinutes),
			Maghrib: r.minutes(KeyMaghribFlexibilityMinutes),
			Isha:    r.minutes(KeyIshaFlexibilityMinutes),
		},
		MaxPrayerBreaksPerDay:          r.count(KeyMaxPrayerBreaksPerDay),
		OfficeRadiusMeters:             r.count(KeyOfficeLocationRadiusMeters),
		DefaultOfficeLatitude:          r.decimal(KeyDefaultOfficeLatitude),
		DefaultOfficeLongitude:         r.decimal(KeyDefaultOfficeLongitude),
		WorkHoursMode:                  r.workHoursMode(KeyWorkHoursCalculationMethod),
		LateArrivalThresholdMinutes:    r.minutes(KeyLateArrivalThresholdMinutes),
		EarlyDepartureThresholdMinutes: r.minutes(KeyEarlyDepartureThresholdMinutes),
	}
	if r.err != nil {
		return Snapshot{}, r.err
	}

	if snap.OfficeEnd.Minutes() <= snap.OfficeStart.Minutes() {
		return Snapshot{}, &ConfigurationError{Key: KeyOfficeEndTime, Reason: "must be after " + KeyOfficeStartTime}
	}
	if snap.LunchEnd.Minutes() < snap.LunchStart.Minutes() {
		return Snapshot{}, &ConfigurationError{Key: KeyLunchEndTime, Reason: "must not be before " + KeyLunchStartTime}
	}
	if err := checkCoordinate(KeyDefaultOfficeLatitude, snap.DefaultOfficeLatitude); err != nil {
		return Snapshot{}, err
	}
	if err := checkCoordinate(KeyDefaultOfficeLongitude, snap.DefaultOfficeLongitude); err != nil {
		return Snapshot{}, err
	}
	if snap.OfficeRadiusMeters == 0 {
		return Snapshot{}, &ConfigurationError{Key: KeyOfficeLocationRadiusMeters, Reason: "must be greater than zero"}
	}

	return snap, nil
}

// resolver keeps the first error so NewSnapshot reads as a flat list.
type resolver struct {
	values Values
	err    error
}

func (r *resolver) timeOfDay(key string) TimeOfDay {
	if r.err != nil {
		return TimeOfDay{}
	}
	v, err := r.values.GetTimeOfDay(key)
	r.err = err
	return v
}

func (r *resolver) minutes(key string) int {
	if r.err != nil {
		return 0
	}
	v, err := r.values.GetDuration(key)
	r.err = err
	return v
}

func (r *resolver) count(key string) int {
	if r.err != nil {
		return 0
	}
	v, err := r.values.GetCount(key)
	r.err = err
	return v
}

func (r *resolver) decimal(key string) float64 {
	if r.err != nil {
		return 0
	}
	v, err := r.values.GetDecimal(key)
	r.err = err
	return v.InexactFloat64()
}

func (r *resolver) workHoursMode(key string) WorkHoursMode {
	if r.err != nil {
		return ""
	}
	v, err := r.values.GetWorkHoursMode(key)
	r.err = err
	return v
}
