package cron

import (
	"context"
	"fmt"
	"time"

	"github.com/corvitlabs/attendance-tracker/internal/domain/attendance"
	"github.com/corvitlabs/attendance-tracker/internal/domain/policy"
	"github.com/corvitlabs/attendance-tracker/internal/service/evaluation"
)

type AttendanceJobs struct {
	attendanceService attendance.AttendanceService
	policyService     policy.PolicyService
	loc               *time.Location
	interval          time.Duration
	grace             time.Duration
	now               func() time.Time
}

func NewAttendanceJobs(
	attendanceService attendance.AttendanceService,
	policyService policy.PolicyService,
	loc *time.Location,
	interval time.Duration,
	graceMinutes int,
) *AttendanceJobs {
	return &AttendanceJobs{
		attendanceService: attendanceService,
		policyService:     policyService,
		loc:               loc,
		interval:          interval,
		grace:             time.Duration(graceMinutes) * time.Minute,
		now:               time.Now,
	}
}

func (j *AttendanceJobs) RegisterJobs(scheduler *Scheduler) {
	scheduler.AddJob("mark_absent_users", j.interval, j.MarkAbsentUsers)
}

// MarkAbsentUsers records absent for today once the office has closed plus
// the grace period. Re-runs on the same day are no-ops.
func (j *AttendanceJobs) MarkAbsentUsers(ctx context.Context) error {
	snap, err := j.policyService.Snapshot(ctx)
	if err != nil {
		return fmt.Errorf("failed to read policy: %w", err)
	}

	now := j.now().In(j.loc)
	cutoff := evaluation.AnchorTimeOfDay(snap.OfficeEnd, now).Add(j.grace)
	if now.Before(cutoff) {
		return nil
	}

	if _, err := j.attendanceService.MarkAbsent(ctx, now); err != nil {
		return fmt.Errorf("failed to mark absent users: %w", err)
	}
	return nil
}
