package policy

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewSnapshot_Defaults(t *testing.T) {
	snap, err := NewSnapshot(nil)
	require.NoError(t, err)

	assert.Equal(t, TimeOfDay{10, 0}, snap.OfficeStart)
	assert.Equal(t, 20, snap.OfficeStartFlexibilityMinutes)
	assert.Equal(t, TimeOfDay{19, 0}, snap.OfficeEnd)
	assert.Equal(t, TimeOfDay{13, 0}, snap.LunchStart)
	assert.Equal(t, TimeOfDay{15, 0}, snap.LunchEnd)
	assert.Equal(t, 60, snap.LunchMaxDurationMinutes)
	assert.Equal(t, 10, snap.AFKFlexibilityMinutes)
	assert.Equal(t, PrayerFlexibility{Fajr: 15, Zohar: 20, Asar: 15, Maghrib: 15, Isha: 20}, snap.PrayerFlexibility)
	assert.Equal(t, 1, snap.MaxPrayerBreaksPerDay)
	assert.Equal(t, 100, snap.OfficeRadiusMeters)
	assert.InDelta(t, 31.740414, snap.DefaultOfficeLatitude, 1e-9)
	assert.InDelta(t, 73.831978, snap.DefaultOfficeLongitude, 1e-9)
	assert.Equal(t, WorkHoursExcludeBreaks, snap.WorkHoursMode)

	assert.Equal(t, snap, DefaultSnapshot())
}

func TestNewSnapshot_Overrides(t *testing.T) {
	snap, err := NewSnapshot(Values{
		KeyOfficeStartTime:            "08:30",
		KeyZoharFlexibilityMinutes:    "25",
		KeyMaxPrayerBreaksPerDay:      "5",
		KeyWorkHoursCalculationMethod: "include_breaks",
	})
	require.NoError(t, err)

	assert.Equal(t, TimeOfDay{8, 30}, snap.OfficeStart)
	assert.Equal(t, 25, snap.PrayerFlexibility.Zohar)
	assert.Equal(t, 5, snap.MaxPrayerBreaksPerDay)
	assert.Equal(t, WorkHoursIncludeBreaks, snap.WorkHoursMode)
	// untouched keys keep their defaults
	assert.Equal(t, 15, snap.PrayerFlexibility.Fajr)
}

func TestNewSnapshot_Errors(t *testing.T) {
	tests := []struct {
		name    string
		values  Values
		wantKey string
	}{
		{"unparseable time", Values{KeyOfficeStartTime: "ten"}, KeyOfficeStartTime},
		{"unparseable minutes", Values{KeyLunchMaxDurationMinutes: "1h"}, KeyLunchMaxDurationMinutes},
		{"negative count", Values{KeyMaxPrayerBreaksPerDay: "-1"}, KeyMaxPrayerBreaksPerDay},
		{"bad mode", Values{KeyWorkHoursCalculationMethod: "sometimes"}, KeyWorkHoursCalculationMethod},
		{"bad latitude", Values{KeyDefaultOfficeLatitude: "31,74"}, KeyDefaultOfficeLatitude},
		{"end before start", Values{KeyOfficeEndTime: "09:00"}, KeyOfficeEndTime},
		{"end equals start", Values{KeyOfficeEndTime: "10:00"}, KeyOfficeEndTime},
		{"lunch inverted", Values{KeyLunchStartTime: "15:00", KeyLunchEndTime: "13:00"}, KeyLunchEndTime},
		{"latitude out of range", Values{KeyDefaultOfficeLatitude: "95"}, KeyDefaultOfficeLatitude},
		{"longitude out of range", Values{KeyDefaultOfficeLongitude: "200"}, KeyDefaultOfficeLongitude},
		{"both out of range", Values{KeyDefaultOfficeLatitude: "95", KeyDefaultOfficeLongitude: "200"}, KeyDefaultOfficeLatitude},
		{"zero radius", Values{KeyOfficeLocationRadiusMeters: "0"}, KeyOfficeLocationRadiusMeters},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := NewSnapshot(tt.values)
			var cfgErr *ConfigurationError
			require.ErrorAs(t, err, &cfgErr)
			assert.Equal(t, tt.wantKey, cfgErr.Key)
			assert.Contains(t, err.Error(), tt.wantKey)
		})
	}
}

func TestPrayerFlexibility_For(t *testing.T) {
	p := DefaultSnapshot().PrayerFlexibility
	for _, kind := range PrayerKinds {
		_, ok := p.For(kind)
		assert.True(t, ok, kind)
	}
	_, ok := p.For("tahajjud")
	assert.False(t, ok)
}

func TestNewSnapshotResponse(t *testing.T) {
	resp := NewSnapshotResponse(DefaultSnapshot())

	assert.Equal(t, "10:00", resp.OfficeStartTime)
	assert.Equal(t, "19:00", resp.OfficeEndTime)
	assert.Equal(t, 20, resp.PrayerFlexibility["zohar"])
	assert.Len(t, resp.PrayerFlexibility, 5)
	assert.Equal(t, "exclude_breaks", resp.WorkHoursCalculationMethod)
}

func TestUpdateConfigRequest_Validate(t *testing.T) {
	req := UpdateConfigRequest{Key: KeyOfficeEndTime, Value: "18:00"}
	assert.NoError(t, req.Validate())

	req = UpdateConfigRequest{Key: KeyOfficeEndTime, Value: "6pm"}
	err := req.Validate()
	require.Error(t, err)
	assert.Contains(t, err.Error(), "time-of-day")

	req = UpdateConfigRequest{Key: KeyOfficeEndTime}
	assert.Error(t, req.Validate())

	mode := "wipe"
	init := InitializeRequest{Mode: &mode}
	assert.Error(t, init.Validate())
	mode = string(SeedModeOverwrite)
	assert.NoError(t, init.Validate())
	assert.NoError(t, (&InitializeRequest{}).Validate())
}
