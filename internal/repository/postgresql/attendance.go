package postgresql

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/corvitlabs/attendance-tracker/internal/domain/attendance"
	"github.com/corvitlabs/attendance-tracker/internal/pkg/database"
	"github.com/jackc/pgx/v5"
	"github.com/shopspring/decimal"
)

type attendanceRepository struct {
	db *database.DB
}

func NewAttendanceRepository(db *database.DB) attendance.AttendanceRepository {
	return &attendanceRepository{db: db}
}

const attendanceColumns = `
	a.id, a.user_id, a.office_location_id, a.date,
	a.check_in_time, a.check_out_time,
	a.check_in_latitude, a.check_in_longitude, a.check_out_latitude, a.check_out_longitude,
	a.check_in_distance, a.check_in_location_status,
	a.status, a.late_minutes, a.early_minutes, a.total_work_hours,
	a.created_at, a.updated_at`

const attendanceWithUserColumns = attendanceColumns + `, u.name, u.employee_id`

// scanAttendance reads attendanceColumns, plus the user join when withUser is set.
func scanAttendance(row pgx.Row, withUser bool) (attendance.Record, error) {
	var (
		rec            attendance.Record
		locationStatus *string
		hours          decimal.NullDecimal
	)
	dest := []any{
		&rec.ID, &rec.UserID, &rec.OfficeLocationID, &rec.Date,
		&rec.CheckInTime, &rec.CheckOutTime,
		&rec.CheckInLatitude, &rec.CheckInLongitude, &rec.CheckOutLatitude, &rec.CheckOutLongitude,
		&rec.CheckInDistance, &locationStatus,
		&rec.Status, &rec.LateMinutes, &rec.EarlyMinutes, &hours,
		&rec.CreatedAt, &rec.UpdatedAt,
	}
	if withUser {
		dest = append(dest, &rec.UserName, &rec.UserEmployeeID)
	}

	if err := row.Scan(dest...); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return attendance.Record{}, attendance.ErrAttendanceNotFound
		}
		return attendance.Record{}, err
	}

	if locationStatus != nil {
		rec.CheckInLocationStatus = attendance.LocationStatus(*locationStatus)
	}
	if hours.Valid {
		rec.TotalWorkHours = &hours.Decimal
	}
	return rec, nil
}

func collectAttendance(rows pgx.Rows, withUser bool) ([]attendance.Record, error) {
	defer rows.Close()

	var records []attendance.Record
	for rows.Next() {
		rec, err := scanAttendance(rows, withUser)
		if err != nil {
			return nil, err
		}
		records = append(records, rec)
	}
	return records, rows.Err()
}

// attendanceWriteArgs returns the mutable columns in insert order.
func attendanceWriteArgs(rec attendance.Record) []any {
	var locationStatus *string
	if rec.CheckInLocationStatus != "" {
		s := string(rec.CheckInLocationStatus)
		locationStatus = &s
	}
	var hours decimal.NullDecimal
	if rec.TotalWorkHours != nil {
		hours = decimal.NullDecimal{Decimal: *rec.TotalWorkHours, Valid: true}
	}
	return []any{
		rec.UserID, rec.OfficeLocationID, rec.Date,
		rec.CheckInTime, rec.CheckOutTime,
		rec.CheckInLatitude, rec.CheckInLongitude, rec.CheckOutLatitude, rec.CheckOutLongitude,
		rec.CheckInDistance, locationStatus,
		rec.Status, rec.LateMinutes, rec.EarlyMinutes, hours,
	}
}

// Create implements attendance.AttendanceRepository.
func (a *attendanceRepository) Create(ctx context.Context, rec attendance.Record) (attendance.Record, error) {
	q := GetQuerier(ctx, a.db)

	query := `
		INSERT INTO attendance_records AS a (
			user_id, office_location_id, date,
			check_in_time, check_out_time,
			check_in_latitude, check_in_longitude, check_out_latitude, check_out_longitude,
			check_in_distance, check_in_location_status,
			status, late_minutes, early_minutes, total_work_hours
		)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14, $15)
		RETURNING ` + attendanceColumns

	created, err := scanAttendance(q.QueryRow(ctx, query, attendanceWriteArgs(rec)...), false)
	if err != nil {
		if _, ok := uniqueConstraint(err); ok {
			return attendance.Record{}, attendance.ErrAlreadyCheckedIn
		}
		return attendance.Record{}, fmt.Errorf("failed to create attendance: %w", err)
	}
	return created, nil
}

// GetByID implements attendance.AttendanceRepository.
func (a *attendanceRepository) GetByID(ctx context.Context, id int64) (attendance.Record, error) {
	q := GetQuerier(ctx, a.db)

	query := `
		SELECT ` + attendanceWithUserColumns + `
		FROM attendance_records a
		JOIN users u ON u.id = a.user_id
		WHERE a.id = $1`

	return scanAttendance(q.QueryRow(ctx, query, id), true)
}

// GetByUserAndDate implements attendance.AttendanceRepository.
func (a *attendanceRepository) GetByUserAndDate(ctx context.Context, userID int64, date time.Time) (attendance.Record, error) {
	q := GetQuerier(ctx, a.db)

	query := `
		SELECT ` + attendanceColumns + `
		FROM attendance_records a
		WHERE a.user_id = $1 AND a.date = $2`

	// FOR UPDATE serialises concurrent check-out and break calls on the row
	if _, inTx := database.TxFromContext(ctx); inTx {
		query += ` FOR UPDATE`
	}

	return scanAttendance(q.QueryRow(ctx, query, userID, date), false)
}

// Update implements attendance.AttendanceRepository.
func (a *attendanceRepository) Update(ctx context.Context, rec attendance.Record) (attendance.Record, error) {
	q := GetQuerier(ctx, a.db)

	query := `
		UPDATE attendance_records AS a SET
			user_id = $1, office_location_id = $2, date = $3,
			check_in_time = $4, check_out_time = $5,
			check_in_latitude = $6, check_in_longitude = $7, check_out_latitude = $8, check_out_longitude = $9,
			check_in_distance = $10, check_in_location_status = $11,
			status = $12, late_minutes = $13, early_minutes = $14, total_work_hours = $15,
			updated_at = NOW()
		WHERE a.id = $16
		RETURNING ` + attendanceColumns

	args := append(attendanceWriteArgs(rec), rec.ID)
	updated, err := scanAttendance(q.QueryRow(ctx, query, args...), false)
	if err != nil {
		if errors.Is(err, attendance.ErrAttendanceNotFound) {
			return attendance.Record{}, err
		}
		return attendance.Record{}, fmt.Errorf("failed to update attendance %d: %w", rec.ID, err)
	}
	return updated, nil
}

// List implements attendance.AttendanceRepository.
func (a *attendanceRepository) List(ctx context.Context, filter attendance.AttendanceFilter) ([]attendance.Record, int64, error) {
	q := GetQuerier(ctx, a.db)

	baseWhere := "1 = 1"
	args := []interface{}{}
	argIdx := 1

	if filter.UserID != nil {
		baseWhere += fmt.Sprintf(" AND a.user_id = $%d", argIdx)
		args = append(args, *filter.UserID)
		argIdx++
	}
	if filter.Date != nil && *filter.Date != "" {
		baseWhere += fmt.Sprintf(" AND a.date = $%d", argIdx)
		args = append(args, *filter.Date)
		argIdx++
	}
	if filter.StartDate != nil && *filter.StartDate != "" {
		baseWhere += fmt.Sprintf(" AND a.date >= $%d", argIdx)
		args = append(args, *filter.StartDate)
		argIdx++
	}
	if filter.EndDate != nil && *filter.EndDate != "" {
		baseWhere += fmt.Sprintf(" AND a.date <= $%d", argIdx)
		args = append(args, *filter.EndDate)
		argIdx++
	}
	if filter.Status != nil && *filter.Status != "" {
		baseWhere += fmt.Sprintf(" AND a.status = $%d", argIdx)
		args = append(args, *filter.Status)
		argIdx++
	}

	var total int64
	countQuery := "SELECT COUNT(*) FROM attendance_records a WHERE " + baseWhere
	if err := q.QueryRow(ctx, countQuery, args...).Scan(&total); err != nil {
		return nil, 0, fmt.Errorf("failed to count attendance: %w", err)
	}

	selectQuery := fmt.Sprintf(`
		SELECT %s
		FROM attendance_records a
		JOIN users u ON u.id = a.user_id
		WHERE %s
		ORDER BY a.date DESC, a.id DESC
		LIMIT $%d OFFSET $%d
	`, attendanceWithUserColumns, baseWhere, argIdx, argIdx+1)
	args = append(args, filter.Limit, filter.Offset())

	rows, err := q.Query(ctx, selectQuery, args...)
	if err != nil {
		return nil, 0, fmt.Errorf("failed to query attendance: %w", err)
	}
	records, err := collectAttendance(rows, true)
	if err != nil {
		return nil, 0, err
	}
	return records, total, nil
}

// ListByDate implements attendance.AttendanceRepository.
func (a *attendanceRepository) ListByDate(ctx context.Context, date time.Time) ([]attendance.Record, error) {
	q := GetQuerier(ctx, a.db)

	query := `
		SELECT ` + attendanceWithUserColumns + `
		FROM attendance_records a
		JOIN users u ON u.id = a.user_id
		WHERE a.date = $1
		ORDER BY u.name ASC`

	rows, err := q.Query(ctx, query, date)
	if err != nil {
		return nil, fmt.Errorf("failed to query attendance by date: %w", err)
	}
	return collectAttendance(rows, true)
}

// ListByUserAndRange implements attendance.AttendanceRepository.
func (a *attendanceRepository) ListByUserAndRange(ctx context.Context, userID int64, start, end time.Time) ([]attendance.Record, error) {
	q := GetQuerier(ctx, a.db)

	query := `
		SELECT ` + attendanceColumns + `
		FROM attendance_records a
		WHERE a.user_id = $1 AND a.date BETWEEN $2 AND $3
		ORDER BY a.date ASC`

	rows, err := q.Query(ctx, query, userID, start, end)
	if err != nil {
		return nil, fmt.Errorf("failed to query attendance range: %w", err)
	}
	return collectAttendance(rows, false)
}

// CreateAbsentForMissing implements attendance.AttendanceRepository.
func (a *attendanceRepository) CreateAbsentForMissing(ctx context.Context, date time.Time) (int64, error) {
	q := GetQuerier(ctx, a.db)

	query := `
		INSERT INTO attendance_records (user_id, date, status)
		SELECT u.id, $1, 'absent'
		FROM users u
		WHERE u.is_active
		ON CONFLICT (user_id, date) DO NOTHING`

	tag, err := q.Exec(ctx, query, date)
	if err != nil {
		return 0, fmt.Errorf("failed to insert absent records: %w", err)
	}
	return tag.RowsAffected(), nil
}
