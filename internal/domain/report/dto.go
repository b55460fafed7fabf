package report

import (
	"time"

	"github.com/corvitlabs/attendance-tracker/internal/domain/attendance"
	"github.com/corvitlabs/attendance-tracker/internal/pkg/validator"
)

// MaxReportDays caps the range of an employee report.
const MaxReportDays = 366

// ========================================
// DAILY SUMMARY
// ========================================

type DailySummaryRequest struct {
	Date string `json:"date"` // YYYY-MM-DD, defaults to today
}

func (r *DailySummaryRequest) Validate() error {
	if r.Date == "" {
		return nil
	}
	if _, ok := validator.IsValidDate(r.Date); !ok {
		return validator.ValidationErrors{{Field: "date", Message: "date must be in YYYY-MM-DD format"}}
	}
	return nil
}

type DailySummaryResponse struct {
	Date           string       `json:"date"`
	TotalEmployees int          `json:"total_employees"`
	Present        int          `json:"present"`
	Late           int          `json:"late"`
	LeftEarly      int          `json:"left_early"`
	Absent         int          `json:"absent"`
	LateDetails    []LateDetail `json:"late_details"`
}

type LateDetail struct {
	UserID      int64  `json:"user_id"`
	EmployeeID  string `json:"employee_id"`
	Name        string `json:"name"`
	CheckInTime string `json:"check_in_time"`
	LateMinutes int    `json:"late_minutes"`
}

// ========================================
// EMPLOYEE REPORT
// ========================================

type EmployeeReportRequest struct {
	UserID    int64  `json:"user_id"`
	StartDate string `json:"start_date"` // YYYY-MM-DD
	EndDate   string `json:"end_date"`   // YYYY-MM-DD
}

func (r *EmployeeReportRequest) Validate() error {
	var errs validator.ValidationErrors

	if r.UserID <= 0 {
		errs = append(errs, validator.ValidationError{
			Field:   "user_id",
			Message: "user_id is required",
		})
	}

	start, startOK := validator.IsValidDate(r.StartDate)
	if !startOK {
		errs = append(errs, validator.ValidationError{
			Field:   "start_date",
			Message: "start_date must be in YYYY-MM-DD format",
		})
	}
	end, endOK := validator.IsValidDate(r.EndDate)
	if !endOK {
		errs = append(errs, validator.ValidationError{
			Field:   "end_date",
			Message: "end_date must be in YYYY-MM-DD format",
		})
	}

	if startOK && endOK {
		if end.Before(start) {
			errs = append(errs, validator.ValidationError{
				Field:   "end_date",
				Message: "end_date must not be before start_date",
			})
		} else if end.Sub(start) > (MaxReportDays-1)*24*time.Hour {
			errs = append(errs, validator.ValidationError{
				Field:   "end_date",
				Message: "report range must not exceed 366 days",
			})
		}
	}

	if len(errs) > 0 {
		return errs
	}
	return nil
}

type EmployeeReportResponse struct {
	UserID       int64         `json:"user_id"`
	EmployeeName string        `json:"employee_name"`
	EmployeeID   string        `json:"employee_id"`
	Period       Period        `json:"period"`
	Summary      Summary       `json:"summary"`
	DailyRecords []DailyRecord `json:"daily_records"`
}

type Period struct {
	StartDate string `json:"start_date"`
	EndDate   string `json:"end_date"`
}

type Summary struct {
	TotalDays        int     `json:"total_days"`
	PresentDays      int     `json:"present_days"`
	LateDays         int     `json:"late_days"`
	LeftEarlyDays    int     `json:"left_early_days"`
	AbsentDays       int     `json:"absent_days"`
	TotalWorkHours   float64 `json:"total_work_hours"`
	AverageWorkHours float64 `json:"average_work_hours"`
	BreakViolations  int     `json:"break_violations"`
}

type DailyRecord struct {
	Date           string                     `json:"date"`
	CheckInTime    *string                    `json:"check_in_time"`
	CheckOutTime   *string                    `json:"check_out_time"`
	Status         string                     `json:"status"`
	LateMinutes    *int                       `json:"late_minutes"`
	EarlyMinutes   *int                       `json:"early_minutes"`
	TotalWorkHours *float64                   `json:"total_work_hours"`
	Breaks         []attendance.BreakResponse `json:"breaks"`
}
