package postgres

import (
	"context"
	"fmt"
)

// PricingRepository reads the admin-managed price-configuration table.
type PricingRepository struct {
	db *DB
}

// NewPricingRepository creates a pricing repository.
func NewPricingRepository(db *DB) *PricingRepository {
	return &PricingRepository{db: db}
}

// ActiveValues returns key -> numeric value for all active pricing rows.
func (r *PricingRepository) ActiveValues(ctx context.Context) (map[string]float64, error) {
	query := `
		SELECT key, value
		FROM pricing_configurations
		WHERE is_active = true
	`

	rows, err := r.db.conn.QueryxContext(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("failed to query pricing configurations: %w", err)
	}
	defer rows.Close()

	values := make(map[string]float64)
	for rows.Next() {
		var (
			key   string
			value float64
		)
		if err := rows.Scan(&key, &value); err != nil {
			return nil, fmt.Errorf("failed to scan pricing row: %w", err)
		}
		values[key] = value
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to read pricing rows: %w", err)
	}

	return values, nil
}
