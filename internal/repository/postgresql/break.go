package postgresql

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/corvitlabs/attendance-tracker/internal/domain/attendance"
	"github.com/corvitlabs/attendance-tracker/internal/pkg/database"
	"github.com/jackc/pgx/v5"
)

type breakRepository struct {
	db *database.DB
}

func NewBreakRepository(db *database.DB) attendance.BreakRepository {
	return &breakRepository{db: db}
}

const breakColumns = `
	id, attendance_record_id, user_id, date, break_type, prayer_kind,
	start_time, end_time, duration_minutes, max_minutes, within_window,
	is_compliant, violation_reason, created_at, updated_at`

func scanBreak(row pgx.Row) (attendance.Break, error) {
	var b attendance.Break
	err := row.Scan(
		&b.ID, &b.AttendanceRecordID, &b.UserID, &b.Date, &b.BreakType, &b.PrayerKind,
		&b.StartTime, &b.EndTime, &b.DurationMinutes, &b.MaxMinutes, &b.WithinWindow,
		&b.IsCompliant, &b.ViolationReason, &b.CreatedAt, &b.UpdatedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return attendance.Break{}, attendance.ErrBreakNotFound
		}
		return attendance.Break{}, err
	}
	return b, nil
}

// Create implements attendance.BreakRepository.
func (r *breakRepository) Create(ctx context.Context, b attendance.Break) (attendance.Break, error) {
	q := GetQuerier(ctx, r.db)

	query := `
		INSERT INTO break_records (
			attendance_record_id, user_id, date, break_type, prayer_kind,
			start_time, max_minutes, within_window
		)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8)
		RETURNING ` + breakColumns

	created, err := scanBreak(q.QueryRow(ctx, query,
		b.AttendanceRecordID, b.UserID, b.Date, b.BreakType, b.PrayerKind,
		b.StartTime, b.MaxMinutes, b.WithinWindow,
	))
	if err != nil {
		// idx_break_records_one_open
		if _, ok := uniqueConstraint(err); ok {
			return attendance.Break{}, attendance.ErrBreakInProgress
		}
		return attendance.Break{}, fmt.Errorf("failed to create break: %w", err)
	}
	return created, nil
}

// GetByID implements attendance.BreakRepository.
func (r *breakRepository) GetByID(ctx context.Context, id int64) (attendance.Break, error) {
	q := GetQuerier(ctx, r.db)

	query := `SELECT ` + breakColumns + ` FROM break_records WHERE id = $1`
	if _, inTx := database.TxFromContext(ctx); inTx {
		query += ` FOR UPDATE`
	}
	return scanBreak(q.QueryRow(ctx, query, id))
}

// GetOpenByUser implements attendance.BreakRepository.
func (r *breakRepository) GetOpenByUser(ctx context.Context, userID int64) (attendance.Break, error) {
	q := GetQuerier(ctx, r.db)
	return scanBreak(q.QueryRow(ctx, `SELECT `+breakColumns+` FROM break_records WHERE user_id = $1 AND end_time IS NULL`, userID))
}

// Close implements attendance.BreakRepository.
func (r *breakRepository) Close(ctx context.Context, b attendance.Break) (attendance.Break, error) {
	q := GetQuerier(ctx, r.db)

	query := `
		UPDATE break_records SET
			end_time = $2, duration_minutes = $3, max_minutes = $4, within_window = $5,
			is_compliant = $6, violation_reason = $7, updated_at = NOW()
		WHERE id = $1 AND end_time IS NULL
		RETURNING ` + breakColumns

	closed, err := scanBreak(q.QueryRow(ctx, query,
		b.ID, b.EndTime, b.DurationMinutes, b.MaxMinutes, b.WithinWindow,
		b.IsCompliant, b.ViolationReason,
	))
	if errors.Is(err, attendance.ErrBreakNotFound) {
		return attendance.Break{}, attendance.ErrBreakAlreadyEnded
	}
	return closed, err
}

func (r *breakRepository) query(ctx context.Context, sql string, args ...any) ([]attendance.Break, error) {
	q := GetQuerier(ctx, r.db)

	rows, err := q.Query(ctx, sql, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to query breaks: %w", err)
	}
	defer rows.Close()

	var breaks []attendance.Break
	for rows.Next() {
		b, err := scanBreak(rows)
		if err != nil {
			return nil, err
		}
		breaks = append(breaks, b)
	}
	return breaks, rows.Err()
}

// ListByAttendance implements attendance.BreakRepository.
func (r *breakRepository) ListByAttendance(ctx context.Context, attendanceID int64) ([]attendance.Break, error) {
	return r.query(ctx, `SELECT `+breakColumns+` FROM break_records WHERE attendance_record_id = $1 ORDER BY start_time ASC`, attendanceID)
}

// ListByAttendanceIDs implements attendance.BreakRepository.
func (r *breakRepository) ListByAttendanceIDs(ctx context.Context, attendanceIDs []int64) (map[int64][]attendance.Break, error) {
	out := make(map[int64][]attendance.Break, len(attendanceIDs))
	if len(attendanceIDs) == 0 {
		return out, nil
	}

	breaks, err := r.query(ctx, `SELECT `+breakColumns+` FROM break_records WHERE attendance_record_id = ANY($1) ORDER BY start_time ASC`, attendanceIDs)
	if err != nil {
		return nil, err
	}
	for _, b := range breaks {
		out[b.AttendanceRecordID] = append(out[b.AttendanceRecordID], b)
	}
	return out, nil
}

// SumClosedMinutes implements attendance.BreakRepository.
func (r *breakRepository) SumClosedMinutes(ctx context.Context, attendanceID int64) (int, error) {
	q := GetQuerier(ctx, r.db)

	var total int
	err := q.QueryRow(ctx, `
		SELECT COALESCE(SUM(duration_minutes), 0)
		FROM break_records
		WHERE attendance_record_id = $1 AND end_time IS NOT NULL
	`, attendanceID).Scan(&total)
	return total, err
}

// CountCompliantPrayerBreaks implements attendance.BreakRepository.
func (r *breakRepository) CountCompliantPrayerBreaks(ctx context.Context, userID int64, date time.Time, excludeID int64) (int, error) {
	q := GetQuerier(ctx, r.db)

	var count int
	err := q.QueryRow(ctx, `
		SELECT COUNT(*)
		FROM break_records
		WHERE user_id = $1 AND date = $2 AND break_type = 'prayer'
		  AND is_compliant = TRUE AND id <> $3
	`, userID, date, excludeID).Scan(&count)
	return count, err
}
