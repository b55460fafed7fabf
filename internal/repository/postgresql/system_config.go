package postgresql

import (
	"context"
	"errors"

	"github.com/corvitlabs/attendance-tracker/internal/domain/policy"
	"github.com/corvitlabs/attendance-tracker/internal/pkg/database"
	"github.com/jackc/pgx/v5"
)

type systemConfigRepositoryImpl struct {
	db *database.DB
}

func NewSystemConfigRepository(db *database.DB) policy.SystemConfigRepository {
	return &systemConfigRepositoryImpl{db: db}
}

const systemConfigColumns = `id, config_key, config_value, created_at, updated_at`

func scanSystemConfig(row pgx.Row) (policy.SystemConfig, error) {
	var c policy.SystemConfig
	err := row.Scan(&c.ID, &c.ConfigKey, &c.ConfigValue, &c.CreatedAt, &c.UpdatedAt)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return policy.SystemConfig{}, policy.ErrConfigNotFound
		}
		return policy.SystemConfig{}, err
	}
	return c, nil
}

// ListAll implements policy.SystemConfigRepository.
func (r *systemConfigRepositoryImpl) ListAll(ctx context.Context) ([]policy.SystemConfig, error) {
	q := GetQuerier(ctx, r.db)

	rows, err := q.Query(ctx, `SELECT `+systemConfigColumns+` FROM system_config ORDER BY config_key`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var configs []policy.SystemConfig
	for rows.Next() {
		c, err := scanSystemConfig(rows)
		if err != nil {
			return nil, err
		}
		configs = append(configs, c)
	}
	return configs, rows.Err()
}

// GetByKey implements policy.SystemConfigRepository.
func (r *systemConfigRepositoryImpl) GetByKey(ctx context.Context, key string) (policy.SystemConfig, error) {
	q := GetQuerier(ctx, r.db)
	return scanSystemConfig(q.QueryRow(ctx, `SELECT `+systemConfigColumns+` FROM system_config WHERE config_key = $1`, key))
}

// Upsert implements policy.SystemConfigRepository.
func (r *systemConfigRepositoryImpl) Upsert(ctx context.Context, key, value string) (policy.SystemConfig, error) {
	q := GetQuerier(ctx, r.db)

	query := `
		INSERT INTO system_config (config_key, config_value)
		VALUES ($1, $2)
		ON CONFLICT (config_key)
		DO UPDATE SET config_value = EXCLUDED.config_value, updated_at = NOW()
		RETURNING ` + systemConfigColumns

	return scanSystemConfig(q.QueryRow(ctx, query, key, value))
}

// InsertIfAbsent implements policy.SystemConfigRepository.
func (r *systemConfigRepositoryImpl) InsertIfAbsent(ctx context.Context, key, value string) (policy.SystemConfig, error) {
	q := GetQuerier(ctx, r.db)

	query := `
		INSERT INTO system_config (config_key, config_value)
		VALUES ($1, $2)
		ON CONFLICT (config_key) DO NOTHING
		RETURNING ` + systemConfigColumns

	c, err := scanSystemConfig(q.QueryRow(ctx, query, key, value))
	if errors.Is(err, policy.ErrConfigNotFound) {
		// DO NOTHING returns no row; the existing one is kept
		return r.GetByKey(ctx, key)
	}
	return c, err
}

// Update implements policy.SystemConfigRepository.
func (r *systemConfigRepositoryImpl) Update(ctx context.Context, key, value string) (policy.SystemConfig, error) {
	q := GetQuerier(ctx, r.db)

	query := `
		UPDATE system_config
		SET config_value = $2, updated_at = NOW()
		WHERE config_key = $1
		RETURNING ` + systemConfigColumns

	return scanSystemConfig(q.QueryRow(ctx, query, key, value))
}

// Delete implements policy.SystemConfigRepository.
func (r *systemConfigRepositoryImpl) Delete(ctx context.Context, key string) error {
	q := GetQuerier(ctx, r.db)

	tag, err := q.Exec(ctx, `DELETE FROM system_config WHERE config_key = $1`, key)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return policy.ErrConfigNotFound
	}
	return nil
}
