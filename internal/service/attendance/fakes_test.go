package attendance

import (
	"context"
	"sort"
	"time"

	"github.com/corvitlabs/attendance-tracker/internal/domain/attendance"
	"github.com/corvitlabs/attendance-tracker/internal/domain/office"
	"github.com/corvitlabs/attendance-tracker/internal/domain/policy"
)

type passthroughTx struct{}

func (passthroughTx) WithinTransaction(ctx context.Context, fn func(context.Context) error) error {
	return fn(ctx)
}

type fakeClock struct{ t time.Time }

func (c *fakeClock) Now() time.Time { return c.t }

func (c *fakeClock) Set(t time.Time) { c.t = t }

type fakePolicyService struct {
	policy.PolicyService
	snap policy.Snapshot
	err  error
}

func (f *fakePolicyService) Snapshot(ctx context.Context) (policy.Snapshot, error) {
	return f.snap, f.err
}

type fakeOfficeService struct {
	office.OfficeService
	locations []office.Location
}

func (f *fakeOfficeService) Resolve(ctx context.Context, id *int64) (office.Location, error) {
	if id == nil {
		if len(f.locations) == 0 {
			return office.Location{}, office.ErrNoOfficeConfigured
		}
		return f.locations[0], nil
	}
	for _, l := range f.locations {
		if l.ID == *id {
			return l, nil
		}
	}
	return office.Location{}, office.ErrLocationNotFound
}

type fakeAttendanceRepo struct {
	records     map[int64]attendance.Record
	nextID      int64
	activeUsers []int64
}

func newFakeAttendanceRepo(activeUsers ...int64) *fakeAttendanceRepo {
	return &fakeAttendanceRepo{records: make(map[int64]attendance.Record), activeUsers: activeUsers}
}

func (f *fakeAttendanceRepo) Create(ctx context.Context, r attendance.Record) (attendance.Record, error) {
	f.nextID++
	r.ID = f.nextID
	f.records[r.ID] = r
	return r, nil
}

func (f *fakeAttendanceRepo) GetByID(ctx context.Context, id int64) (attendance.Record, error) {
	r, ok := f.records[id]
	if !ok {
		return attendance.Record{}, attendance.ErrAttendanceNotFound
	}
	return r, nil
}

func (f *fakeAttendanceRepo) GetByUserAndDate(ctx context.Context, userID int64, date time.Time) (attendance.Record, error) {
	for _, r := range f.records {
		if r.UserID == userID && r.Date.Equal(date) {
			return r, nil
		}
	}
	return attendance.Record{}, attendance.ErrAttendanceNotFound
}

func (f *fakeAttendanceRepo) Update(ctx context.Context, r attendance.Record) (attendance.Record, error) {
	if _, ok := f.records[r.ID]; !ok {
		return attendance.Record{}, attendance.ErrAttendanceNotFound
	}
	f.records[r.ID] = r
	return r, nil
}

func (f *fakeAttendanceRepo) sorted() []attendance.Record {
	out := make([]attendance.Record, 0, len(f.records))
	for _, r := range f.records {
		out = append(out, r)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID < out[j].ID })
	return out
}

func (f *fakeAttendanceRepo) List(ctx context.Context, filter attendance.AttendanceFilter) ([]attendance.Record, int64, error) {
	var matched []attendance.Record
	for _, r := range f.sorted() {
		if filter.UserID != nil && r.UserID != *filter.UserID {
			continue
		}
		if filter.Status != nil && r.Status != *filter.Status {
			continue
		}
		if filter.Date != nil && r.Date.Format(attendance.DateLayout) != *filter.Date {
			continue
		}
		matched = append(matched, r)
	}
	total := int64(len(matched))
	start := filter.Offset()
	if start > len(matched) {
		start = len(matched)
	}
	end := start + filter.Limit
	if end > len(matched) {
		end = len(matched)
	}
	return matched[start:end], total, nil
}

func (f *fakeAttendanceRepo) ListByDate(ctx context.Context, date time.Time) ([]attendance.Record, error) {
	var out []attendance.Record
	for _, r := range f.sorted() {
		if r.Date.Equal(date) {
			out = append(out, r)
		}
	}
	return out, nil
}

func (f *fakeAttendanceRepo) ListByUserAndRange(ctx context.Context, userID int64, start, end time.Time) ([]attendance.Record, error) {
	var out []attendance.Record
	for _, r := range f.sorted() {
		if r.UserID == userID && !r.Date.Before(start) && !r.Date.After(end) {
			out = append(out, r)
		}
	}
	return out, nil
}

func (f *fakeAttendanceRepo) CreateAbsentForMissing(ctx context.Context, date time.Time) (int64, error) {
	var created int64
	for _, userID := range f.activeUsers {
		if _, err := f.GetByUserAndDate(ctx, userID, date); err == nil {
			continue
		}
		f.Create(ctx, attendance.Record{UserID: userID, Date: date, Status: attendance.StatusAbsent})
		created++
	}
	return created, nil
}

type fakeBreakRepo struct {
	breaks map[int64]attendance.Break
	nextID int64
}

func newFakeBreakRepo() *fakeBreakRepo {
	return &fakeBreakRepo{breaks: make(map[int64]attendance.Break)}
}

func (f *fakeBreakRepo) Create(ctx context.Context, b attendance.Break) (attendance.Break, error) {
	f.nextID++
	b.ID = f.nextID
	f.breaks[b.ID] = b
	return b, nil
}

func (f *fakeBreakRepo) GetByID(ctx context.Context, id int64) (attendance.Break, error) {
	b, ok := f.breaks[id]
	if !ok {
		return attendance.Break{}, attendance.ErrBreakNotFound
	}
	return b, nil
}

func (f *fakeBreakRepo) GetOpenByUser(ctx context.Context, userID int64) (attendance.Break, error) {
	for _, b := range f.breaks {
		if b.UserID == userID && b.IsOpen() {
			return b, nil
		}
	}
	return attendance.Break{}, attendance.ErrBreakNotFound
}

func (f *fakeBreakRepo) Close(ctx context.Context, b attendance.Break) (attendance.Break, error) {
	f.breaks[b.ID] = b
	return b, nil
}

func (f *fakeBreakRepo) ListByAttendance(ctx context.Context, attendanceID int64) ([]attendance.Break, error) {
	out := []attendance.Break{}
	for _, b := range f.breaks {
		if b.AttendanceRecordID == attendanceID {
			out = append(out, b)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID < out[j].ID })
	return out, nil
}

func (f *fakeBreakRepo) ListByAttendanceIDs(ctx context.Context, ids []int64) (map[int64][]attendance.Break, error) {
	out := make(map[int64][]attendance.Break, len(ids))
	for _, id := range ids {
		breaks, _ := f.ListByAttendance(ctx, id)
		out[id] = breaks
	}
	return out, nil
}

func (f *fakeBreakRepo) SumClosedMinutes(ctx context.Context, attendanceID int64) (int, error) {
	total := 0
	for _, b := range f.breaks {
		if b.AttendanceRecordID == attendanceID && b.DurationMinutes != nil {
			total += *b.DurationMinutes
		}
	}
	return total, nil
}

func (f *fakeBreakRepo) CountCompliantPrayerBreaks(ctx context.Context, userID int64, date time.Time, excludeID int64) (int, error) {
	n := 0
	for _, b := range f.breaks {
		if b.UserID == userID && b.Date.Equal(date) && b.BreakType == "prayer" &&
			b.ID != excludeID && b.IsCompliant != nil && *b.IsCompliant {
			n++
		}
	}
	return n, nil
}
