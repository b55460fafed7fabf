package attendance

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"math"
	"time"

	"github.com/corvitlabs/attendance-tracker/internal/domain/attendance"
	"github.com/corvitlabs/attendance-tracker/internal/domain/office"
	"github.com/corvitlabs/attendance-tracker/internal/domain/policy"
	"github.com/corvitlabs/attendance-tracker/internal/pkg/database"
	"github.com/corvitlabs/attendance-tracker/internal/service/evaluation"
)

// Options tunes how check-ins are judged and which clock is read.
type Options struct {
	// RejectOutsideGeofence refuses check-ins outside the radius instead of
	// recording them with an invalid location status.
	RejectOutsideGeofence bool
	// Location is the office's operating timezone. Defaults to UTC.
	Location *time.Location
	// Now defaults to time.Now.
	Now func() time.Time
}

type AttendanceServiceImpl struct {
	tx             database.Transactor
	attendanceRepo attendance.AttendanceRepository
	breakRepo      attendance.BreakRepository
	officeService  office.OfficeService
	policyService  policy.PolicyService

	rejectOutside bool
	loc           *time.Location
	now           func() time.Time
}

func NewAttendanceService(
	tx database.Transactor,
	attendanceRepo attendance.AttendanceRepository,
	breakRepo attendance.BreakRepository,
	officeService office.OfficeService,
	policyService policy.PolicyService,
	opts Options,
) attendance.AttendanceService {
	if opts.Location == nil {
		opts.Location = time.UTC
	}
	if opts.Now == nil {
		opts.Now = time.Now
	}
	return &AttendanceServiceImpl{
		tx:             tx,
		attendanceRepo: attendanceRepo,
		breakRepo:      breakRepo,
		officeService:  officeService,
		policyService:  policyService,
		rejectOutside:  opts.RejectOutsideGeofence,
		loc:            opts.Location,
		now:            opts.Now,
	}
}

// localDate truncates t to its calendar date in the office timezone. Dates
// are carried as UTC midnight, the way the database returns DATE columns.
func (s *AttendanceServiceImpl) localDate(t time.Time) time.Time {
	local := t.In(s.loc)
	return time.Date(local.Year(), local.Month(), local.Day(), 0, 0, 0, 0, time.UTC)
}

// fence describes the office a location is checked against. ID is nil when
// the policy's default coordinates are used because no office row exists.
type fence struct {
	ID       *int64
	Name     string
	Radius   int
	Geofence evaluation.Geofence
}

func (s *AttendanceServiceImpl) resolveFence(ctx context.Context, officeID *int64, snap policy.Snapshot) (fence, error) {
	loc, err := s.officeService.Resolve(ctx, officeID)
	if err != nil {
		if errors.Is(err, office.ErrNoOfficeConfigured) {
			return fence{
				Name:   "Default office",
				Radius: snap.OfficeRadiusMeters,
				Geofence: evaluation.Geofence{
					Name:         "Default office",
					Center:       evaluation.Coordinate{Latitude: snap.DefaultOfficeLatitude, Longitude: snap.DefaultOfficeLongitude},
					RadiusMeters: float64(snap.OfficeRadiusMeters),
				},
			}, nil
		}
		return fence{}, err
	}

	id := loc.ID
	return fence{
		ID:     &id,
		Name:   loc.Name,
		Radius: loc.RadiusMeters,
		Geofence: evaluation.Geofence{
			Name:         loc.Name,
			Center:       evaluation.Coordinate{Latitude: loc.Latitude, Longitude: loc.Longitude},
			RadiusMeters: float64(loc.RadiusMeters),
		},
	}, nil
}

func roundMeters(d float64) float64 {
	return math.Round(d*100) / 100
}

// openRecord returns today's record, requiring a check-in without check-out.
func (s *AttendanceServiceImpl) openRecord(ctx context.Context, userID int64, date time.Time) (attendance.Record, error) {
	rec, err := s.attendanceRepo.GetByUserAndDate(ctx, userID, date)
	if err != nil {
		if errors.Is(err, attendance.ErrAttendanceNotFound) {
			return attendance.Record{}, attendance.ErrNotCheckedIn
		}
		return attendance.Record{}, fmt.Errorf("failed to get attendance for today: %w", err)
	}
	if rec.CheckInTime == nil {
		return attendance.Record{}, attendance.ErrNotCheckedIn
	}
	if rec.IsCheckedOut() {
		return attendance.Record{}, attendance.ErrAlreadyCheckedOut
	}
	return rec, nil
}

// ensureNoOpenBreak fails with ErrBreakInProgress when the user has an open break.
func (s *AttendanceServiceImpl) ensureNoOpenBreak(ctx context.Context, userID int64) error {
	_, err := s.breakRepo.GetOpenByUser(ctx, userID)
	switch {
	case err == nil:
		return attendance.ErrBreakInProgress
	case errors.Is(err, attendance.ErrBreakNotFound):
		return nil
	default:
		return fmt.Errorf("failed to look up open break: %w", err)
	}
}

func applyClassification(rec *attendance.Record, c evaluation.Classification) {
	rec.Status = string(c.Status)
	rec.LateMinutes = c.LateMinutes
	rec.EarlyMinutes = c.EarlyMinutes
	rec.TotalWorkHours = c.TotalWorkHours
}

// CheckIn implements attendance.AttendanceService.
func (s *AttendanceServiceImpl) CheckIn(ctx context.Context, req attendance.CheckInRequest) (attendance.AttendanceResponse, error) {
	if err := req.Validate(); err != nil {
		return attendance.AttendanceResponse{}, err
	}

	snap, err := s.policyService.Snapshot(ctx)
	if err != nil {
		return attendance.AttendanceResponse{}, err
	}

	now := s.now().In(s.loc)
	date := s.localDate(now)

	f, err := s.resolveFence(ctx, req.OfficeLocationID, snap)
	if err != nil {
		return attendance.AttendanceResponse{}, err
	}

	point := evaluation.Coordinate{Latitude: *req.Latitude, Longitude: *req.Longitude}
	check, err := evaluation.ValidateLocation(point, f.Geofence)
	if err != nil {
		return attendance.AttendanceResponse{}, err
	}

	locationStatus := attendance.LocationValid
	if !check.IsValid {
		if s.rejectOutside {
			slog.Info("check-in rejected outside geofence", "user_id", req.UserID, "distance_m", roundMeters(check.DistanceMeters), "radius_m", f.Radius)
			return attendance.AttendanceResponse{}, attendance.ErrOutsideAllowedRadius
		}
		locationStatus = attendance.LocationInvalid
	}

	class, err := evaluation.ClassifyAttendance(evaluation.AttendanceEvent{CheckIn: &now}, snap, evaluation.BreakAggregate{})
	if err != nil {
		return attendance.AttendanceResponse{}, err
	}

	distance := roundMeters(check.DistanceMeters)
	record := attendance.Record{
		UserID:                req.UserID,
		OfficeLocationID:      f.ID,
		Date:                  date,
		CheckInTime:           &now,
		CheckInLatitude:       req.Latitude,
		CheckInLongitude:      req.Longitude,
		CheckInDistance:       &distance,
		CheckInLocationStatus: locationStatus,
	}
	applyClassification(&record, class)

	var saved attendance.Record
	err = s.tx.WithinTransaction(ctx, func(txCtx context.Context) error {
		existing, err := s.attendanceRepo.GetByUserAndDate(txCtx, req.UserID, date)
		switch {
		case err == nil && existing.CheckInTime != nil:
			return attendance.ErrAlreadyCheckedIn
		case err == nil:
			// An absent row written by the sweep is replaced by the late check-in.
			record.ID = existing.ID
			saved, err = s.attendanceRepo.Update(txCtx, record)
			return err
		case errors.Is(err, attendance.ErrAttendanceNotFound):
			saved, err = s.attendanceRepo.Create(txCtx, record)
			return err
		default:
			return fmt.Errorf("failed to check existing attendance: %w", err)
		}
	})
	if err != nil {
		if !errors.Is(err, attendance.ErrAlreadyCheckedIn) {
			slog.Error("check-in failed", "user_id", req.UserID, "error", err)
		}
		return attendance.AttendanceResponse{}, err
	}

	slog.Info("checked in", "user_id", req.UserID, "status", saved.Status, "location_status", saved.CheckInLocationStatus)
	return attendance.NewAttendanceResponse(saved, s.loc), nil
}

// CheckOut implements attendance.AttendanceService.
func (s *AttendanceServiceImpl) CheckOut(ctx context.Context, req attendance.CheckOutRequest) (attendance.AttendanceResponse, error) {
	if err := req.Validate(); err != nil {
		return attendance.AttendanceResponse{}, err
	}

	snap, err := s.policyService.Snapshot(ctx)
	if err != nil {
		return attendance.AttendanceResponse{}, err
	}

	now := s.now().In(s.loc)
	date := s.localDate(now)

	var saved attendance.Record
	err = s.tx.WithinTransaction(ctx, func(txCtx context.Context) error {
		rec, err := s.openRecord(txCtx, req.UserID, date)
		if err != nil {
			return err
		}
		if err := s.ensureNoOpenBreak(txCtx, req.UserID); err != nil {
			return err
		}

		closedMinutes, err := s.breakRepo.SumClosedMinutes(txCtx, rec.ID)
		if err != nil {
			return fmt.Errorf("failed to sum break minutes: %w", err)
		}

		checkIn := rec.CheckInTime.In(s.loc)
		class, err := evaluation.ClassifyAttendance(
			evaluation.AttendanceEvent{CheckIn: &checkIn, CheckOut: &now},
			snap,
			evaluation.BreakAggregate{ClosedBreakMinutes: closedMinutes},
		)
		if err != nil {
			return err
		}

		rec.CheckOutTime = &now
		rec.CheckOutLatitude = req.Latitude
		rec.CheckOutLongitude = req.Longitude
		applyClassification(&rec, class)

		saved, err = s.attendanceRepo.Update(txCtx, rec)
		return err
	})
	if err != nil {
		return attendance.AttendanceResponse{}, err
	}

	slog.Info("checked out", "user_id", req.UserID, "status", saved.Status)
	return attendance.NewAttendanceResponse(saved, s.loc), nil
}

// StartBreak implements attendance.AttendanceService.
func (s *AttendanceServiceImpl) StartBreak(ctx context.Context, req attendance.StartBreakRequest) (attendance.BreakResponse, error) {
	if err := req.Validate(); err != nil {
		return attendance.BreakResponse{}, err
	}
	breakType, ok := evaluation.ParseBreakType(req.BreakType)
	if !ok {
		return attendance.BreakResponse{}, attendance.ErrInvalidBreakType
	}
	var kind policy.PrayerKind
	if breakType == evaluation.BreakPrayer {
		if req.PrayerKind == nil {
			return attendance.BreakResponse{}, attendance.ErrPrayerKindRequired
		}
		kind = policy.PrayerKind(*req.PrayerKind)
	}

	snap, err := s.policyService.Snapshot(ctx)
	if err != nil {
		return attendance.BreakResponse{}, err
	}

	now := s.now().In(s.loc)
	date := s.localDate(now)

	eval, err := evaluation.EvaluateBreak(evaluation.BreakEvent{Type: breakType, PrayerKind: kind, Start: now}, snap, 0)
	if err != nil {
		return attendance.BreakResponse{}, err
	}

	var created attendance.Break
	err = s.tx.WithinTransaction(ctx, func(txCtx context.Context) error {
		rec, err := s.openRecord(txCtx, req.UserID, date)
		if err != nil {
			return err
		}
		if err := s.ensureNoOpenBreak(txCtx, req.UserID); err != nil {
			return err
		}

		b := attendance.Break{
			AttendanceRecordID: rec.ID,
			UserID:             req.UserID,
			Date:               date,
			BreakType:          string(breakType),
			StartTime:          now,
			MaxMinutes:         eval.MaxMinutes,
			WithinWindow:       eval.WithinWindow,
		}
		if breakType == evaluation.BreakPrayer {
			k := string(kind)
			b.PrayerKind = &k
		}

		created, err = s.breakRepo.Create(txCtx, b)
		return err
	})
	if err != nil {
		return attendance.BreakResponse{}, err
	}

	slog.Info("break started", "user_id", req.UserID, "break_type", created.BreakType, "within_window", created.WithinWindow)
	return attendance.NewBreakResponse(created, s.loc), nil
}

// EndBreak implements attendance.AttendanceService.
func (s *AttendanceServiceImpl) EndBreak(ctx context.Context, req attendance.EndBreakRequest) (attendance.BreakResponse, error) {
	if err := req.Validate(); err != nil {
		return attendance.BreakResponse{}, err
	}

	snap, err := s.policyService.Snapshot(ctx)
	if err != nil {
		return attendance.BreakResponse{}, err
	}

	now := s.now().In(s.loc)

	var closed attendance.Break
	err = s.tx.WithinTransaction(ctx, func(txCtx context.Context) error {
		b, err := s.breakRepo.GetByID(txCtx, req.BreakID)
		if err != nil {
			return err
		}
		if b.UserID != req.UserID {
			return attendance.ErrUnauthorized
		}
		if !b.IsOpen() {
			return attendance.ErrBreakAlreadyEnded
		}

		breakType, ok := evaluation.ParseBreakType(b.BreakType)
		if !ok {
			return fmt.Errorf("break %d has unknown type %q", b.ID, b.BreakType)
		}
		var kind policy.PrayerKind
		if b.PrayerKind != nil {
			kind = policy.PrayerKind(*b.PrayerKind)
		}

		prior := 0
		if breakType == evaluation.BreakPrayer {
			prior, err = s.breakRepo.CountCompliantPrayerBreaks(txCtx, b.UserID, b.Date, b.ID)
			if err != nil {
				return fmt.Errorf("failed to count prayer breaks: %w", err)
			}
		}

		eval, err := evaluation.EvaluateBreak(evaluation.BreakEvent{
			Type:       breakType,
			PrayerKind: kind,
			Start:      b.StartTime.In(s.loc),
			End:        &now,
		}, snap, prior)
		if err != nil {
			return err
		}

		b.EndTime = &now
		b.MaxMinutes = eval.MaxMinutes
		b.WithinWindow = eval.WithinWindow
		b.DurationMinutes = eval.DurationMinutes
		b.IsCompliant = eval.Compliant
		b.ViolationReason = nil
		if eval.Reason != nil {
			reason := string(*eval.Reason)
			b.ViolationReason = &reason
		}

		closed, err = s.breakRepo.Close(txCtx, b)
		return err
	})
	if err != nil {
		return attendance.BreakResponse{}, err
	}

	slog.Info("break ended", "user_id", req.UserID, "break_id", closed.ID, "duration_minutes", closed.DurationMinutes, "compliant", closed.IsCompliant)
	return attendance.NewBreakResponse(closed, s.loc), nil
}

// Today implements attendance.AttendanceService.
func (s *AttendanceServiceImpl) Today(ctx context.Context, userID int64) (attendance.TodayResponse, error) {
	date := s.localDate(s.now())
	resp := attendance.TodayResponse{
		Date:   date.Format(attendance.DateLayout),
		Breaks: []attendance.BreakResponse{},
	}

	rec, err := s.attendanceRepo.GetByUserAndDate(ctx, userID, date)
	switch {
	case err == nil:
		att := attendance.NewAttendanceResponse(rec, s.loc)
		resp.Attendance = &att

		breaks, err := s.breakRepo.ListByAttendance(ctx, rec.ID)
		if err != nil {
			return attendance.TodayResponse{}, fmt.Errorf("failed to list today's breaks: %w", err)
		}
		resp.Breaks = attendance.NewBreakResponses(breaks, s.loc)
	case !errors.Is(err, attendance.ErrAttendanceNotFound):
		return attendance.TodayResponse{}, fmt.Errorf("failed to get today's attendance: %w", err)
	}

	open, err := s.breakRepo.GetOpenByUser(ctx, userID)
	switch {
	case err == nil:
		active := attendance.NewBreakResponse(open, s.loc)
		resp.ActiveBreak = &active
	case !errors.Is(err, attendance.ErrBreakNotFound):
		return attendance.TodayResponse{}, fmt.Errorf("failed to get open break: %w", err)
	}

	return resp, nil
}

func (s *AttendanceServiceImpl) authorizedRecord(ctx context.Context, requester attendance.Requester, id int64) (attendance.Record, error) {
	rec, err := s.attendanceRepo.GetByID(ctx, id)
	if err != nil {
		return attendance.Record{}, err
	}
	if !requester.CanViewAll() && rec.UserID != requester.UserID {
		return attendance.Record{}, attendance.ErrUnauthorized
	}
	return rec, nil
}

// GetByID implements attendance.AttendanceService.
func (s *AttendanceServiceImpl) GetByID(ctx context.Context, requester attendance.Requester, id int64) (attendance.AttendanceResponse, error) {
	rec, err := s.authorizedRecord(ctx, requester, id)
	if err != nil {
		return attendance.AttendanceResponse{}, err
	}

	breaks, err := s.breakRepo.ListByAttendance(ctx, rec.ID)
	if err != nil {
		return attendance.AttendanceResponse{}, fmt.Errorf("failed to list breaks: %w", err)
	}

	resp := attendance.NewAttendanceResponse(rec, s.loc)
	resp.Breaks = attendance.NewBreakResponses(breaks, s.loc)
	return resp, nil
}

// List implements attendance.AttendanceService.
func (s *AttendanceServiceImpl) List(ctx context.Context, requester attendance.Requester, filter attendance.AttendanceFilter) (attendance.ListAttendanceResponse, error) {
	if err := filter.Validate(); err != nil {
		return attendance.ListAttendanceResponse{}, err
	}
	if !requester.CanViewAll() {
		own := requester.UserID
		filter.UserID = &own
	}

	records, total, err := s.attendanceRepo.List(ctx, filter)
	if err != nil {
		return attendance.ListAttendanceResponse{}, fmt.Errorf("failed to list attendance: %w", err)
	}

	ids := make([]int64, 0, len(records))
	for _, r := range records {
		ids = append(ids, r.ID)
	}
	breaksByRecord, err := s.breakRepo.ListByAttendanceIDs(ctx, ids)
	if err != nil {
		return attendance.ListAttendanceResponse{}, fmt.Errorf("failed to list breaks: %w", err)
	}

	items := make([]attendance.AttendanceResponse, 0, len(records))
	for _, r := range records {
		resp := attendance.NewAttendanceResponse(r, s.loc)
		resp.Breaks = attendance.NewBreakResponses(breaksByRecord[r.ID], s.loc)
		items = append(items, resp)
	}

	return attendance.NewListAttendanceResponse(items, total, filter.Page, filter.Limit), nil
}

// ListBreaks implements attendance.AttendanceService.
func (s *AttendanceServiceImpl) ListBreaks(ctx context.Context, requester attendance.Requester, attendanceID int64) ([]attendance.BreakResponse, error) {
	rec, err := s.authorizedRecord(ctx, requester, attendanceID)
	if err != nil {
		return nil, err
	}

	breaks, err := s.breakRepo.ListByAttendance(ctx, rec.ID)
	if err != nil {
		return nil, fmt.Errorf("failed to list breaks: %w", err)
	}
	return attendance.NewBreakResponses(breaks, s.loc), nil
}

// ValidateLocation implements attendance.AttendanceService.
func (s *AttendanceServiceImpl) ValidateLocation(ctx context.Context, req attendance.ValidateLocationRequest) (attendance.LocationValidationResponse, error) {
	if err := req.Validate(); err != nil {
		return attendance.LocationValidationResponse{}, err
	}

	snap, err := s.policyService.Snapshot(ctx)
	if err != nil {
		return attendance.LocationValidationResponse{}, err
	}

	f, err := s.resolveFence(ctx, req.OfficeLocationID, snap)
	if err != nil {
		return attendance.LocationValidationResponse{}, err
	}

	check, err := evaluation.ValidateLocation(evaluation.Coordinate{Latitude: *req.Latitude, Longitude: *req.Longitude}, f.Geofence)
	if err != nil {
		return attendance.LocationValidationResponse{}, err
	}

	distance := roundMeters(check.DistanceMeters)
	resp := attendance.LocationValidationResponse{
		IsValid:      check.IsValid,
		Distance:     distance,
		Message:      attendance.LocationMessage(check.IsValid, distance, f.Radius),
		OfficeName:   f.Name,
		RadiusMeters: f.Radius,
	}
	if f.ID != nil {
		resp.OfficeID = *f.ID
	}
	return resp, nil
}

// MarkAbsent implements attendance.AttendanceService.
func (s *AttendanceServiceImpl) MarkAbsent(ctx context.Context, date time.Time) (int64, error) {
	day := s.localDate(date)
	created, err := s.attendanceRepo.CreateAbsentForMissing(ctx, day)
	if err != nil {
		slog.Error("failed to mark absent users", "date", day.Format(attendance.DateLayout), "error", err)
		return 0, err
	}
	if created > 0 {
		slog.Info("marked users absent", "date", day.Format(attendance.DateLayout), "count", created)
	}
	return created, nil
}
