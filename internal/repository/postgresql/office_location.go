package postgresql

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/corvitlabs/attendance-tracker/internal/domain/office"
	"github.com/corvitlabs/attendance-tracker/internal/pkg/database"
	"github.com/jackc/pgx/v5"
)

type officeLocationRepositoryImpl struct {
	db *database.DB
}

func NewOfficeLocationRepository(db *database.DB) office.LocationRepository {
	return &officeLocationRepositoryImpl{db: db}
}

const officeLocationColumns = `id, name, latitude, longitude, radius_meters, created_at, updated_at`

func scanOfficeLocation(row pgx.Row) (office.Location, error) {
	var l office.Location
	err := row.Scan(&l.ID, &l.Name, &l.Latitude, &l.Longitude, &l.RadiusMeters, &l.CreatedAt, &l.UpdatedAt)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return office.Location{}, office.ErrLocationNotFound
		}
		return office.Location{}, err
	}
	return l, nil
}

// Create implements office.LocationRepository.
func (r *officeLocationRepositoryImpl) Create(ctx context.Context, loc office.Location) (office.Location, error) {
	q := GetQuerier(ctx, r.db)

	query := `
		INSERT INTO office_locations (name, latitude, longitude, radius_meters)
		VALUES ($1, $2, $3, $4)
		RETURNING ` + officeLocationColumns

	return scanOfficeLocation(q.QueryRow(ctx, query, loc.Name, loc.Latitude, loc.Longitude, loc.RadiusMeters))
}

// GetByID implements office.LocationRepository.
func (r *officeLocationRepositoryImpl) GetByID(ctx context.Context, id int64) (office.Location, error) {
	q := GetQuerier(ctx, r.db)
	return scanOfficeLocation(q.QueryRow(ctx, `SELECT `+officeLocationColumns+` FROM office_locations WHERE id = $1`, id))
}

// GetDefault implements office.LocationRepository.
func (r *officeLocationRepositoryImpl) GetDefault(ctx context.Context) (office.Location, error) {
	q := GetQuerier(ctx, r.db)
	return scanOfficeLocation(q.QueryRow(ctx, `SELECT `+officeLocationColumns+` FROM office_locations ORDER BY id ASC LIMIT 1`))
}

// List implements office.LocationRepository.
func (r *officeLocationRepositoryImpl) List(ctx context.Context) ([]office.Location, error) {
	q := GetQuerier(ctx, r.db)

	rows, err := q.Query(ctx, `SELECT `+officeLocationColumns+` FROM office_locations ORDER BY id ASC`)
	if err != nil {
		return nil, fmt.Errorf("failed to query office locations: %w", err)
	}
	defer rows.Close()

	var locations []office.Location
	for rows.Next() {
		l, err := scanOfficeLocation(rows)
		if err != nil {
			return nil, err
		}
		locations = append(locations, l)
	}
	return locations, rows.Err()
}

// Update implements office.LocationRepository.
func (r *officeLocationRepositoryImpl) Update(ctx context.Context, req office.UpdateLocationRequest) (office.Location, error) {
	q := GetQuerier(ctx, r.db)

	updates := make(map[string]interface{})
	if req.Name != nil {
		updates["name"] = *req.Name
	}
	if req.Latitude != nil {
		updates["latitude"] = *req.Latitude
	}
	if req.Longitude != nil {
		updates["longitude"] = *req.Longitude
	}
	if req.RadiusMeters != nil {
		updates["radius_meters"] = *req.RadiusMeters
	}

	if len(updates) == 0 {
		return r.GetByID(ctx, req.ID)
	}
	updates["updated_at"] = time.Now()

	setClauses := make([]string, 0, len(updates))
	args := make([]interface{}, 0, len(updates)+1)
	i := 1
	for col, val := range updates {
		setClauses = append(setClauses, fmt.Sprintf("%s = $%d", col, i))
		args = append(args, val)
		i++
	}
	args = append(args, req.ID)

	sql := fmt.Sprintf("UPDATE office_locations SET %s WHERE id = $%d RETURNING %s", strings.Join(setClauses, ", "), i, officeLocationColumns)
	return scanOfficeLocation(q.QueryRow(ctx, sql, args...))
}

// Delete implements office.LocationRepository.
func (r *officeLocationRepositoryImpl) Delete(ctx context.Context, id int64) error {
	q := GetQuerier(ctx, r.db)

	tag, err := q.Exec(ctx, `DELETE FROM office_locations WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("failed to delete office location %d: %w", id, err)
	}
	if tag.RowsAffected() == 0 {
		return office.ErrLocationNotFound
	}
	return nil
}
