package postgres

import (
	"context"
	"fmt"

	"github.com/jmoiron/sqlx"
)

// SettingsRepository reads named rows from the general admin-settings
// table.
type SettingsRepository struct {
	db *DB
}

// NewSettingsRepository creates a settings repository.
func NewSettingsRepository(db *DB) *SettingsRepository {
	return &SettingsRepository{db: db}
}

// Values returns key -> numeric value for the requested setting keys.
// Keys without a row are absent from the result.
func (r *SettingsRepository) Values(ctx context.Context, keys ...string) (map[string]float64, error) {
	if len(keys) == 0 {
		return map[string]float64{}, nil
	}

	query, args, err := sqlx.In(`SELECT key, value FROM admin_settings WHERE key IN (?)`, keys)
	if err != nil {
		return nil, fmt.Errorf("failed to build settings query: %w", err)
	}
	query = r.db.conn.Rebind(query)

	rows, err := r.db.conn.QueryxContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to query admin settings: %w", err)
	}
	defer rows.Close()

	values := make(map[string]float64, len(keys))
	for rows.Next() {
		var (
			key   string
			value float64
		)
		if err := rows.Scan(&key, &value); err != nil {
			return nil, fmt.Errorf("failed to scan settings row: %w", err)
		}
		values[key] = value
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to read settings rows: %w", err)
	}

	return values, nil
}
