package postgres

import (
	"context"
	"fmt"

	"github.com/AlchemyApps/mindScript-sub004/internal/domain"
)

// PurchaseRepository persists purchase records.
type PurchaseRepository struct {
	db *DB
}

// NewPurchaseRepository creates a purchase repository.
func NewPurchaseRepository(db *DB) *PurchaseRepository {
	return &PurchaseRepository{db: db}
}

// Create inserts a purchase row. CogsCents rides along for margin
// reporting.
func (r *PurchaseRepository) Create(ctx context.Context, purchase *domain.Purchase) error {
	query := `
		INSERT INTO purchases (id, user_id, track_id, kind, amount_cents, cogs_cents, ff_tier, session_id, created_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9)
	`

	_, err := r.db.conn.ExecContext(
		ctx, query,
		purchase.ID, purchase.UserID, purchase.TrackID, string(purchase.Kind),
		purchase.AmountCents, purchase.CogsCents,
		string(purchase.FFTier), purchase.SessionID, purchase.CreatedAt,
	)
	if err != nil {
		return fmt.Errorf("failed to create purchase: %w", err)
	}

	return nil
}

// CountEdits returns how many edit purchases a user has made against a
// track.
func (r *PurchaseRepository) CountEdits(ctx context.Context, userID, trackID string) (int64, error) {
	query := `
		SELECT COUNT(*)
		FROM purchases
		WHERE user_id = $1 AND track_id = $2 AND kind = 'edit'
	`

	var count int64
	if err := r.db.conn.GetContext(ctx, &count, query, userID, trackID); err != nil {
		return 0, fmt.Errorf("failed to count edits: %w", err)
	}

	return count, nil
}
