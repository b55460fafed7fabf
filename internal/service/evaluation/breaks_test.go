package evaluation

import (
	"testing"
	"time"

	"github.com/corvitlabs/attendance-tracker/internal/domain/policy"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseBreakType(t *testing.T) {
	tests := []struct {
		in     string
		want   BreakType
		wantOK bool
	}{
		{"lunch", BreakLunch, true},
		{"prayer", BreakPrayer, true},
		{"namaz", BreakPrayer, true},
		{"away", BreakAway, true},
		{"afk", BreakAway, true},
		{"coffee", "", false},
		{"", "", false},
	}
	for _, tt := range tests {
		got, ok := ParseBreakType(tt.in)
		assert.Equal(t, tt.wantOK, ok, tt.in)
		assert.Equal(t, tt.want, got, tt.in)
	}
}

func TestMaxBreakMinutes(t *testing.T) {
	snap := policy.DefaultSnapshot()

	tests := []struct {
		breakType BreakType
		kind      policy.PrayerKind
		want      int
	}{
		{BreakLunch, "", 60},
		{BreakAway, "", 10},
		{BreakPrayer, policy.PrayerFajr, 15},
		{BreakPrayer, policy.PrayerZohar, 20},
		{BreakPrayer, policy.PrayerAsar, 15},
		{BreakPrayer, policy.PrayerMaghrib, 15},
		{BreakPrayer, policy.PrayerIsha, 20},
	}
	for _, tt := range tests {
		got, err := MaxBreakMinutes(tt.breakType, tt.kind, snap)
		require.NoError(t, err)
		assert.Equal(t, tt.want, got, "%s/%s", tt.breakType, tt.kind)
	}

	_, err := MaxBreakMinutes(BreakPrayer, "tahajjud", snap)
	var inputErr *InvalidInputError
	require.ErrorAs(t, err, &inputErr)
	assert.Equal(t, "prayer_kind", inputErr.Field)

	_, err = MaxBreakMinutes("nap", "", snap)
	require.ErrorAs(t, err, &inputErr)
	assert.Equal(t, "break_type", inputErr.Field)
}

func TestIsWithinBreakWindow(t *testing.T) {
	snap := policy.DefaultSnapshot()

	assert.False(t, IsWithinBreakWindow(BreakLunch, at(12, 59, 0), snap))
	assert.True(t, IsWithinBreakWindow(BreakLunch, at(13, 0, 0), snap))
	assert.True(t, IsWithinBreakWindow(BreakLunch, at(15, 0, 0), snap))
	assert.False(t, IsWithinBreakWindow(BreakLunch, at(15, 1, 0), snap))

	// only lunch has a fixed window
	assert.True(t, IsWithinBreakWindow(BreakAway, at(8, 0, 0), snap))
	assert.True(t, IsWithinBreakWindow(BreakPrayer, at(22, 0, 0), snap))
}

func TestEvaluateBreak(t *testing.T) {
	snap := policy.DefaultSnapshot()

	closed := func(bt BreakType, kind policy.PrayerKind, start time.Time, minutes int) BreakEvent {
		return BreakEvent{Type: bt, PrayerKind: kind, Start: start, End: ptr(start.Add(time.Duration(minutes) * time.Minute))}
	}

	tests := []struct {
		name          string
		event         BreakEvent
		prior         int
		wantWindow    bool
		wantDuration  int
		wantCompliant bool
		wantReason    *ViolationReason
	}{
		{"lunch at limit", closed(BreakLunch, "", at(13, 30, 0), 60), 0, true, 60, true, nil},
		{"lunch over limit", closed(BreakLunch, "", at(13, 30, 0), 61), 0, true, 61, false, ptr(ReasonBreakTimeExceeded)},
		{"lunch outside window", closed(BreakLunch, "", at(12, 0, 0), 30), 0, false, 30, false, ptr(ReasonBreakOutsideAllowedTime)},
		{"lunch outside window and too long", closed(BreakLunch, "", at(16, 0, 0), 90), 0, false, 90, false, ptr(ReasonBreakTimeExceeded)},
		{"away at limit", closed(BreakAway, "", at(11, 0, 0), 10), 0, true, 10, true, nil},
		{"away over limit", closed(BreakAway, "", at(11, 0, 0), 11), 0, true, 11, false, ptr(ReasonBreakTimeExceeded)},
		{"first zohar", closed(BreakPrayer, policy.PrayerZohar, at(13, 10, 0), 20), 0, true, 20, true, nil},
		{"second prayer", closed(BreakPrayer, policy.PrayerAsar, at(16, 30, 0), 10), 1, true, 10, false, ptr(ReasonPrayerLimitReached)},
		{"second prayer and too long", closed(BreakPrayer, policy.PrayerAsar, at(16, 30, 0), 16), 1, true, 16, false, ptr(ReasonBreakTimeExceeded)},
		{"prior count ignored for lunch", closed(BreakLunch, "", at(14, 0, 0), 15), 3, true, 15, true, nil},
		{"partial minute floors", BreakEvent{Type: BreakAway, Start: at(11, 0, 0), End: ptr(at(11, 10, 59))}, 0, true, 10, true, nil},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := EvaluateBreak(tt.event, snap, tt.prior)
			require.NoError(t, err)

			assert.Equal(t, tt.wantWindow, got.WithinWindow)
			require.NotNil(t, got.DurationMinutes)
			assert.Equal(t, tt.wantDuration, *got.DurationMinutes)
			require.NotNil(t, got.Compliant)
			assert.Equal(t, tt.wantCompliant, *got.Compliant)
			assert.Equal(t, tt.wantReason, got.Reason)
		})
	}
}

func TestEvaluateBreak_Open(t *testing.T) {
	snap := policy.DefaultSnapshot()

	got, err := EvaluateBreak(BreakEvent{Type: BreakLunch, Start: at(12, 0, 0)}, snap, 0)
	require.NoError(t, err)

	assert.False(t, got.WithinWindow)
	assert.Equal(t, 60, got.MaxMinutes)
	assert.Nil(t, got.DurationMinutes)
	assert.Nil(t, got.Compliant)
	assert.Nil(t, got.Reason)
}

func TestEvaluateBreak_PrayerCapFromSnapshot(t *testing.T) {
	snap := policy.DefaultSnapshot()
	snap.MaxPrayerBreaksPerDay = 3
	event := BreakEvent{Type: BreakPrayer, PrayerKind: policy.PrayerIsha, Start: at(20, 0, 0), End: ptr(at(20, 15, 0))}

	got, err := EvaluateBreak(event, snap, 2)
	require.NoError(t, err)
	assert.True(t, *got.Compliant)

	got, err = EvaluateBreak(event, snap, 3)
	require.NoError(t, err)
	assert.False(t, *got.Compliant)
	assert.Equal(t, ptr(ReasonPrayerLimitReached), got.Reason)
}

func TestEvaluateBreak_InvalidInput(t *testing.T) {
	snap := policy.DefaultSnapshot()
	var inputErr *InvalidInputError

	_, err := EvaluateBreak(BreakEvent{Type: BreakAway, Start: at(11, 0, 0), End: ptr(at(10, 59, 0))}, snap, 0)
	require.ErrorAs(t, err, &inputErr)
	assert.Equal(t, "end", inputErr.Field)

	_, err = EvaluateBreak(BreakEvent{Type: BreakPrayer, Start: at(11, 0, 0)}, snap, 0)
	require.ErrorAs(t, err, &inputErr)
	assert.Equal(t, "prayer_kind", inputErr.Field)

	_, err = EvaluateBreak(BreakEvent{Type: BreakAway, Start: at(11, 0, 0)}, snap, -1)
	require.ErrorAs(t, err, &inputErr)
	assert.Equal(t, "prior_compliant_prayer_breaks", inputErr.Field)
}
