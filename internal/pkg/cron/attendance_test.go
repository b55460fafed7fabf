package cron

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/corvitlabs/attendance-tracker/internal/domain/attendance"
	"github.com/corvitlabs/attendance-tracker/internal/domain/policy"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type stubPolicyService struct {
	policy.PolicyService
	err error
}

func (s *stubPolicyService) Snapshot(ctx context.Context) (policy.Snapshot, error) {
	if s.err != nil {
		return policy.Snapshot{}, s.err
	}
	return policy.NewSnapshot(policy.Values{policy.KeyOfficeEndTime: "19:00"})
}

type stubAttendanceService struct {
	attendance.AttendanceService
	calls []time.Time
	err   error
}

func (s *stubAttendanceService) MarkAbsent(ctx context.Context, date time.Time) (int64, error) {
	s.calls = append(s.calls, date)
	return 3, s.err
}

func TestMarkAbsentUsers(t *testing.T) {
	pkt := time.FixedZone("PKT", 5*60*60)

	tests := []struct {
		name      string
		now       time.Time
		wantCalls int
	}{
		{"before office end", time.Date(2025, 3, 10, 18, 0, 0, 0, pkt), 0},
		{"inside grace period", time.Date(2025, 3, 10, 19, 29, 0, 0, pkt), 0},
		{"at cutoff", time.Date(2025, 3, 10, 19, 30, 0, 0, pkt), 1},
		{"late evening", time.Date(2025, 3, 10, 23, 0, 0, 0, pkt), 1},
		// 14:30 UTC is 19:30 in the office
		{"clock in utc", time.Date(2025, 3, 10, 14, 30, 0, 0, time.UTC), 1},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			att := &stubAttendanceService{}
			jobs := NewAttendanceJobs(att, &stubPolicyService{}, pkt, time.Minute, 30)
			jobs.now = func() time.Time { return tt.now }

			require.NoError(t, jobs.MarkAbsentUsers(context.Background()))
			require.Len(t, att.calls, tt.wantCalls)
			if tt.wantCalls > 0 {
				assert.Equal(t, pkt, att.calls[0].Location())
			}
		})
	}
}

func TestMarkAbsentUsers_Errors(t *testing.T) {
	pkt := time.FixedZone("PKT", 5*60*60)
	evening := func() time.Time { return time.Date(2025, 3, 10, 21, 0, 0, 0, pkt) }

	configErr := &policy.ConfigurationError{Key: policy.KeyOfficeEndTime, Reason: "invalid"}
	jobs := NewAttendanceJobs(&stubAttendanceService{}, &stubPolicyService{err: configErr}, pkt, time.Minute, 0)
	jobs.now = evening
	var target *policy.ConfigurationError
	assert.ErrorAs(t, jobs.MarkAbsentUsers(context.Background()), &target)

	dbErr := errors.New("connection refused")
	jobs = NewAttendanceJobs(&stubAttendanceService{err: dbErr}, &stubPolicyService{}, pkt, time.Minute, 0)
	jobs.now = evening
	assert.ErrorIs(t, jobs.MarkAbsentUsers(context.Background()), dbErr)
}

func TestScheduler(t *testing.T) {
	s := NewScheduler()
	ran := make(chan string, 4)
	s.AddJob("first", time.Hour, func(ctx context.Context) error {
		ran <- "first"
		return nil
	})
	failure := errors.New("boom")
	s.AddJob("second", time.Hour, func(ctx context.Context) error {
		ran <- "second"
		return failure
	})

	assert.ErrorIs(t, s.RunOnce(context.Background()), failure)
	assert.Equal(t, "first", <-ran)
	assert.Equal(t, "second", <-ran)

	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan error, 1)
	go func() { done <- s.Run(ctx) }()

	// Run executes each job immediately on start
	got := map[string]bool{<-ran: true, <-ran: true}
	assert.True(t, got["first"] && got["second"])

	cancel()
	select {
	case err := <-done:
		assert.NoError(t, err)
	case <-time.After(2 * time.Second):
		t.Fatal("scheduler did not stop")
	}
}
