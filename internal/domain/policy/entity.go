package policy

import "time"

// SystemConfig is one stored key/value row of runtime policy.
type SystemConfig struct {
	ID          int64
	ConfigKey   string
	ConfigValue string
	CreatedAt   time.Time
	UpdatedAt   time.Time
}

// SeedMode controls how Initialize treats keys that already exist.
type SeedMode string

const (
	SeedModeFillMissing SeedMode = "fill_missing" // insert-if-absent, keeps operator values
	SeedModeOverwrite   SeedMode = "overwrite"    // reset every known key to its default
)

func (m SeedMode) IsValid() bool {
	return m == SeedModeFillMissing || m == SeedModeOverwrite
}

// WorkHoursMode decides whether closed breaks reduce total work hours.
type WorkHoursMode string

const (
	WorkHoursExcludeBreaks WorkHoursMode = "exclude_breaks"
	WorkHoursIncludeBreaks WorkHoursMode = "include_breaks"
)

// PrayerKind is one of the five daily prayers.
type PrayerKind string

const (
	PrayerFajr    PrayerKind = "fajr"
	PrayerZohar   PrayerKind = "zohar"
	PrayerAsar    PrayerKind = "asar"
	PrayerMaghrib PrayerKind = "maghrib"
	PrayerIsha    PrayerKind = "isha"
)

var PrayerKinds = []PrayerKind{PrayerFajr, PrayerZohar, PrayerAsar, PrayerMaghrib, PrayerIsha}

func (k PrayerKind) IsValid() bool {
	for _, p := range PrayerKinds {
		if p == k {
			return true
		}
	}
	return false
}
