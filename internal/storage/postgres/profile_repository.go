package postgres

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/AlchemyApps/mindScript-sub004/internal/domain"
)

// ProfileRepository looks up user-profile fields.
type ProfileRepository struct {
	db *DB
}

// NewProfileRepository creates a profile repository.
func NewProfileRepository(db *DB) *ProfileRepository {
	return &ProfileRepository{db: db}
}

// FFTier returns the Friends & Family tier for a user. A NULL column
// maps to the empty tier; a missing row is domain.ErrProfileNotFound.
func (r *ProfileRepository) FFTier(ctx context.Context, userID string) (domain.FFTier, error) {
	query := `SELECT ff_tier FROM profiles WHERE user_id = $1`

	var tier sql.NullString
	err := r.db.conn.GetContext(ctx, &tier, query, userID)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return domain.FFTierNone, domain.ErrProfileNotFound
		}
		return domain.FFTierNone, fmt.Errorf("failed to get ff tier: %w", err)
	}

	if !tier.Valid {
		return domain.FFTierNone, nil
	}

	return domain.FFTier(tier.String), nil
}
