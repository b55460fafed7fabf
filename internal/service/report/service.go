package report

import (
	"bytes"
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/corvitlabs/attendance-tracker/internal/domain/attendance"
	"github.com/corvitlabs/attendance-tracker/internal/domain/report"
	"github.com/corvitlabs/attendance-tracker/internal/domain/user"
	"github.com/shopspring/decimal"
	"github.com/xuri/excelize/v2"
	"golang.org/x/sync/errgroup"
)

type ReportServiceImpl struct {
	userRepo       user.UserRepository
	attendanceRepo attendance.AttendanceRepository
	breakRepo      attendance.BreakRepository
	loc            *time.Location
	now            func() time.Time
}

func NewReportService(
	userRepo user.UserRepository,
	attendanceRepo attendance.AttendanceRepository,
	breakRepo attendance.BreakRepository,
	loc *time.Location,
) report.ReportService {
	if loc == nil {
		loc = time.UTC
	}
	return &ReportServiceImpl{
		userRepo:       userRepo,
		attendanceRepo: attendanceRepo,
		breakRepo:      breakRepo,
		loc:            loc,
		now:            time.Now,
	}
}

func (s *ReportServiceImpl) today() time.Time {
	now := s.now().In(s.loc)
	return time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, time.UTC)
}

// DailySummary implements report.ReportService.
func (s *ReportServiceImpl) DailySummary(ctx context.Context, req report.DailySummaryRequest) (report.DailySummaryResponse, error) {
	if err := req.Validate(); err != nil {
		return report.DailySummaryResponse{}, err
	}

	date := s.today()
	if req.Date != "" {
		date, _ = time.Parse(attendance.DateLayout, req.Date)
	}

	var (
		users   []user.User
		records []attendance.Record
	)
	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		var err error
		users, err = s.userRepo.List(gctx, user.ListUsersFilter{ActiveOnly: true})
		return err
	})
	g.Go(func() error {
		var err error
		records, err = s.attendanceRepo.ListByDate(gctx, date)
		return err
	})
	if err := g.Wait(); err != nil {
		slog.Error("failed to load daily summary", "date", date.Format(attendance.DateLayout), "error", err)
		return report.DailySummaryResponse{}, fmt.Errorf("failed to load daily summary: %w", err)
	}

	resp := report.DailySummaryResponse{
		Date:           date.Format(attendance.DateLayout),
		TotalEmployees: len(users),
		LateDetails:    []report.LateDetail{},
	}

	// Buckets cover active users only so they add up to TotalEmployees.
	active := make(map[int64]bool, len(users))
	for _, u := range users {
		active[u.ID] = true
	}

	checkedIn := make(map[int64]bool, len(records))
	for _, r := range records {
		if r.CheckInTime == nil || !active[r.UserID] {
			continue
		}
		checkedIn[r.UserID] = true

		switch r.Status {
		case attendance.StatusPresent:
			resp.Present++
		case attendance.StatusLate:
			resp.Late++
		case attendance.StatusLeftEarly:
			resp.LeftEarly++
		}

		if r.LateMinutes != nil {
			detail := report.LateDetail{
				UserID:      r.UserID,
				CheckInTime: r.CheckInTime.In(s.loc).Format(time.RFC3339),
				LateMinutes: *r.LateMinutes,
			}
			if r.UserName != nil {
				detail.Name = *r.UserName
			}
			if r.UserEmployeeID != nil {
				detail.EmployeeID = *r.UserEmployeeID
			}
			resp.LateDetails = append(resp.LateDetails, detail)
		}
	}

	for _, u := range users {
		if !checkedIn[u.ID] {
			resp.Absent++
		}
	}

	return resp, nil
}

// EmployeeReport implements report.ReportService.
func (s *ReportServiceImpl) EmployeeReport(ctx context.Context, req report.EmployeeReportRequest) (report.EmployeeReportResponse, error) {
	if err := req.Validate(); err != nil {
		return report.EmployeeReportResponse{}, err
	}
	start, _ := time.Parse(attendance.DateLayout, req.StartDate)
	end, _ := time.Parse(attendance.DateLayout, req.EndDate)

	var (
		employee user.User
		records  []attendance.Record
	)
	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		var err error
		employee, err = s.userRepo.GetByID(gctx, req.UserID)
		return err
	})
	g.Go(func() error {
		var err error
		records, err = s.attendanceRepo.ListByUserAndRange(gctx, req.UserID, start, end)
		return err
	})
	if err := g.Wait(); err != nil {
		return report.EmployeeReportResponse{}, err
	}

	ids := make([]int64, 0, len(records))
	for _, r := range records {
		ids = append(ids, r.ID)
	}
	breaksByRecord, err := s.breakRepo.ListByAttendanceIDs(ctx, ids)
	if err != nil {
		return report.EmployeeReportResponse{}, fmt.Errorf("failed to load breaks: %w", err)
	}

	resp := report.EmployeeReportResponse{
		UserID:       employee.ID,
		EmployeeName: employee.Name,
		EmployeeID:   employee.EmployeeID,
		Period:       report.Period{StartDate: req.StartDate, EndDate: req.EndDate},
		DailyRecords: make([]report.DailyRecord, 0, len(records)),
	}

	totalHours := decimal.Zero
	daysWithHours := 0
	for _, r := range records {
		resp.Summary.TotalDays++
		switch r.Status {
		case attendance.StatusPresent:
			resp.Summary.PresentDays++
		case attendance.StatusLate:
			resp.Summary.LateDays++
		case attendance.StatusLeftEarly:
			resp.Summary.LeftEarlyDays++
		case attendance.StatusAbsent:
			resp.Summary.AbsentDays++
		}

		day := report.DailyRecord{
			Date:         r.Date.Format(attendance.DateLayout),
			Status:       r.Status,
			LateMinutes:  r.LateMinutes,
			EarlyMinutes: r.EarlyMinutes,
			Breaks:       attendance.NewBreakResponses(breaksByRecord[r.ID], s.loc),
		}
		if r.CheckInTime != nil {
			in := r.CheckInTime.In(s.loc).Format(time.RFC3339)
			day.CheckInTime = &in
		}
		if r.CheckOutTime != nil {
			out := r.CheckOutTime.In(s.loc).Format(time.RFC3339)
			day.CheckOutTime = &out
		}
		if r.TotalWorkHours != nil {
			hours := r.TotalWorkHours.InexactFloat64()
			day.TotalWorkHours = &hours
			totalHours = totalHours.Add(*r.TotalWorkHours)
			daysWithHours++
		}
		for _, b := range breaksByRecord[r.ID] {
			if b.IsCompliant != nil && !*b.IsCompliant {
				resp.Summary.BreakViolations++
			}
		}

		resp.DailyRecords = append(resp.DailyRecords, day)
	}

	resp.Summary.TotalWorkHours = totalHours.Round(2).InexactFloat64()
	if daysWithHours > 0 {
		resp.Summary.AverageWorkHours = totalHours.Div(decimal.NewFromInt(int64(daysWithHours))).Round(2).InexactFloat64()
	}

	return resp, nil
}

// ExportEmployeeReport implements report.ReportService.
func (s *ReportServiceImpl) ExportEmployeeReport(ctx context.Context, req report.EmployeeReportRequest) (*bytes.Buffer, string, error) {
	rep, err := s.EmployeeReport(ctx, req)
	if err != nil {
		return nil, "", err
	}

	f := excelize.NewFile()
	defer f.Close()

	sheet := "Attendance"
	idx, err := f.NewSheet(sheet)
	if err != nil {
		return nil, "", fmt.Errorf("%w: %v", report.ErrReportGenerationFailed, err)
	}
	f.SetActiveSheet(idx)
	f.DeleteSheet("Sheet1")

	headers := []string{"Date", "Check In", "Check Out", "Status", "Late (min)", "Early (min)", "Work Hours", "Breaks", "Break Violations"}
	for i := range headers {
		col, _ := excelize.ColumnNumberToName(i + 1)
		f.SetColWidth(sheet, col, col, 16)
	}
	f.SetColWidth(sheet, "B", "C", 26)

	headerStyle, _ := f.NewStyle(&excelize.Style{
		Font:      &excelize.Font{Bold: true, Size: 11},
		Fill:      excelize.Fill{Type: "pattern", Color: []string{"#4472C4"}, Pattern: 1},
		Alignment: &excelize.Alignment{Horizontal: "center", Vertical: "center"},
	})

	lastCol, _ := excelize.ColumnNumberToName(len(headers))
	f.SetCellValue(sheet, "A1", fmt.Sprintf("%s (%s) | %s to %s", rep.EmployeeName, rep.EmployeeID, rep.Period.StartDate, rep.Period.EndDate))
	f.MergeCell(sheet, "A1", lastCol+"1")
	f.SetCellStyle(sheet, "A1", "A1", headerStyle)

	summary := [][2]any{
		{"Total days", rep.Summary.TotalDays},
		{"Present", rep.Summary.PresentDays},
		{"Late", rep.Summary.LateDays},
		{"Left early", rep.Summary.LeftEarlyDays},
		{"Absent", rep.Summary.AbsentDays},
		{"Total work hours", rep.Summary.TotalWorkHours},
		{"Average work hours", rep.Summary.AverageWorkHours},
		{"Break violations", rep.Summary.BreakViolations},
	}
	row := 3
	for _, kv := range summary {
		f.SetCellValue(sheet, cell("A", row), kv[0])
		f.SetCellValue(sheet, cell("B", row), kv[1])
		row++
	}

	row++
	for i, h := range headers {
		col, _ := excelize.ColumnNumberToName(i + 1)
		f.SetCellValue(sheet, cell(col, row), h)
	}
	f.SetCellStyle(sheet, cell("A", row), cell(lastCol, row), headerStyle)
	row++

	for _, d := range rep.DailyRecords {
		violations := 0
		for _, b := range d.Breaks {
			if b.IsCompliant != nil && !*b.IsCompliant {
				violations++
			}
		}
		values := []any{d.Date, deref(d.CheckInTime), deref(d.CheckOutTime), d.Status, deref(d.LateMinutes), deref(d.EarlyMinutes), deref(d.TotalWorkHours), len(d.Breaks), violations}
		for i, v := range values {
			col, _ := excelize.ColumnNumberToName(i + 1)
			f.SetCellValue(sheet, cell(col, row), v)
		}
		row++
	}

	buf := new(bytes.Buffer)
	if err := f.Write(buf); err != nil {
		slog.Error("failed to write report workbook", "user_id", req.UserID, "error", err)
		return nil, "", report.ErrReportGenerationFailed
	}

	filename := fmt.Sprintf("attendance_%s_%s_%s.xlsx", rep.EmployeeID, rep.Period.StartDate, rep.Period.EndDate)
	return buf, filename, nil
}

func cell(col string, row int) string {
	return fmt.Sprintf("%s%d", col, row)
}

// deref renders nil pointers as empty cells.
func deref[T any](p *T) any {
	if p == nil {
		return ""
	}
	return *p
}
