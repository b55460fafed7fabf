package policy

import (
	"github.com/corvitlabs/attendance-tracker/internal/pkg/validator"
)

type ConfigResponse struct {
	ID          int64  `json:"id"`
	ConfigKey   string `json:"config_key"`
	ConfigValue string `json:"config_value"`
	CreatedAt   string `json:"created_at"`
	UpdatedAt   string `json:"updated_at"`
}

type InitializeRequest struct {
	Mode *string `json:"mode,omitempty"` // fill_missing, overwrite
}

func (r *InitializeRequest) Validate() error {
	var errs validator.ValidationErrors

	if r.Mode != nil && !SeedMode(*r.Mode).IsValid() {
		errs = append(errs, validator.ValidationError{
			Field:   "mode",
			Message: "mode must be one of: fill_missing, overwrite",
		})
	}

	if len(errs) > 0 {
		return errs
	}

	return nil
}

type UpdateConfigRequest struct {
	Key   string `json:"-"`
	Value string `json:"value"`
}

func (r *UpdateConfigRequest) Validate() error {
	var errs validator.ValidationErrors

	if validator.IsEmpty(r.Key) {
		errs = append(errs, validator.ValidationError{
			Field:   "key",
			Message: "key is required",
		})
	}

	if validator.IsEmpty(r.Value) {
		errs = append(errs, validator.ValidationError{
			Field:   "value",
			Message: "value is required",
		})
	} else if err := ValidateValue(r.Key, r.Value); err != nil {
		def, _ := Lookup(r.Key)
		errs = append(errs, validator.ValidationError{
			Field:   "value",
			Message: "value must be a valid " + def.Kind.String(),
		})
	}

	if len(errs) > 0 {
		return errs
	}

	return nil
}

// SnapshotResponse is the typed policy as exposed to clients.
type SnapshotResponse struct {
	OfficeStartTime               string         `json:"office_start_time"`
	OfficeStartFlexibilityMinutes int            `json:"office_start_flexibility_minutes"`
	OfficeEndTime                 string         `json:"office_end_time"`
	LunchStartTime                string         `json:"lunch_start_time"`
	LunchEndTime                  string         `json:"lunch_end_time"`
	LunchMaxDurationMinutes       int            `json:"lunch_max_duration_minutes"`
	AFKFlexibilityMinutes         int            `json:"afk_flexibility_minutes"`
	PrayerFlexibility             map[string]int `json:"prayer_flexibility"`
	MaxPrayerBreaksPerDay         int            `json:"max_prayer_breaks_per_day"`
	OfficeRadiusMeters            int            `json:"office_location_radius_meters"`
	WorkHoursCalculationMethod    string         `json:"work_hours_calculation_method"`
}

func NewSnapshotResponse(s Snapshot) SnapshotResponse {
	prayer := make(map[string]int, len(PrayerKinds))
	for _, kind := range PrayerKinds {
		minutes, _ := s.PrayerFlexibility.For(kind)
		prayer[string(kind)] = minutes
	}
	return SnapshotResponse{
		OfficeStartTime:               s.OfficeStart.String(),
		OfficeStartFlexibilityMinutes: s.OfficeStartFlexibilityMinutes,
		OfficeEndTime:                 s.OfficeEnd.String(),
		LunchStartTime:                s.LunchStart.String(),
		LunchEndTime:                  s.LunchEnd.String(),
		LunchMaxDurationMinutes:       s.LunchMaxDurationMinutes,
		AFKFlexibilityMinutes:         s.AFKFlexibilityMinutes,
		PrayerFlexibility:             prayer,
		MaxPrayerBreaksPerDay:         s.MaxPrayerBreaksPerDay,
		OfficeRadiusMeters:            s.OfficeRadiusMeters,
		WorkHoursCalculationMethod:    string(s.WorkHoursMode),
	}
}
