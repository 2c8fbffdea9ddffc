package postgres

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/AlchemyApps/mindScript-sub004/internal/domain"
)

// RenderJobRepository persists render job state. All operations are
// single-row reads or updates.
type RenderJobRepository struct {
	db *DB
}

// NewRenderJobRepository creates a render job repository.
func NewRenderJobRepository(db *DB) *RenderJobRepository {
	return &RenderJobRepository{db: db}
}

// Create inserts a new job row.
func (r *RenderJobRepository) Create(ctx context.Context, job *domain.RenderJob) error {
	query := `
		INSERT INTO render_jobs (id, track_id, user_id, voice_provider, voice, script, status, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9)
	`

	_, err := r.db.conn.ExecContext(
		ctx, query,
		job.ID, job.TrackID, job.UserID,
		string(job.VoiceProvider), job.Voice, job.Script,
		string(job.Status), job.CreatedAt, job.UpdatedAt,
	)
	if err != nil {
		return fmt.Errorf("failed to create render job: %w", err)
	}

	return nil
}

// Get retrieves a job row by ID.
func (r *RenderJobRepository) Get(ctx context.Context, id string) (*domain.RenderJob, error) {
	query := `
		SELECT id, track_id, user_id, voice_provider, voice, script, status,
		       COALESCE(error, '') AS error, audio, created_at, updated_at
		FROM render_jobs
		WHERE id = $1
	`

	var job domain.RenderJob
	err := r.db.conn.GetContext(ctx, &job, query, id)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, domain.ErrRenderJobNotFound
		}
		return nil, fmt.Errorf("failed to get render job: %w", err)
	}

	return &job, nil
}

// SetStatus updates the job status and error message.
func (r *RenderJobRepository) SetStatus(ctx context.Context, id string, status domain.RenderStatus, errMsg string) error {
	query := `
		UPDATE render_jobs
		SET status = $2, error = NULLIF($3, ''), updated_at = NOW()
		WHERE id = $1
	`

	result, err := r.db.conn.ExecContext(ctx, query, id, string(status), errMsg)
	if err != nil {
		return fmt.Errorf("failed to update render job status: %w", err)
	}

	rows, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to get rows affected: %w", err)
	}
	if rows == 0 {
		return domain.ErrRenderJobNotFound
	}

	return nil
}

// Complete marks the job complete and stores the rendered audio.
func (r *RenderJobRepository) Complete(ctx context.Context, id string, audio []byte) error {
	query := `
		UPDATE render_jobs
		SET status = $2, audio = $3, error = NULL, updated_at = NOW()
		WHERE id = $1
	`

	result, err := r.db.conn.ExecContext(ctx, query, id, string(domain.RenderStatusComplete), audio)
	if err != nil {
		return fmt.Errorf("failed to complete render job: %w", err)
	}

	rows, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to get rows affected: %w", err)
	}
	if rows == 0 {
		return domain.ErrRenderJobNotFound
	}

	return nil
}
