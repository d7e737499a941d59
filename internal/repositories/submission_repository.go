package repositories

import (
	"context"
	"errors"
	"fmt"

	"wellen-backend/internal/models"

	"github.com/jackc/pgx/v5/pgxpool"
)

var ErrSubmissionNotFound = errors.New("submission not found")

type SubmissionRepository struct {
	DB *pgxpool.Pool
}

func NewSubmissionRepository(db *pgxpool.Pool) *SubmissionRepository {
	return &SubmissionRepository{DB: db}
}

// ListByWave returns every submission of the wave, newest first.
func (r *SubmissionRepository) ListByWave(ctx context.Context, waveID int) ([]models.Submission, error) {
	query := `
		SELECT id, wave_id, batch_id, actor_id, actor_name, location_id, location_name,
			item_type, item_id, item_name, container_item_id, quantity, unit_value,
			ts, COALESCE(photo_url, '')
		FROM submissions
		WHERE wave_id = $1
		ORDER BY ts DESC, id DESC
	`
	rows, err := r.DB.Query(ctx, query, waveID)
	if err != nil {
		return nil, fmt.Errorf("failed to list submissions for wave %d: %w", waveID, err)
	}
	defer rows.Close()

	var out []models.Submission
	for rows.Next() {
		var s models.Submission
		if err := rows.Scan(&s.ID, &s.WaveID, &s.BatchID, &s.ActorID, &s.ActorName,
			&s.LocationID, &s.LocationName, &s.ItemType, &s.ItemID, &s.ItemName,
			&s.ContainerItemID, &s.Quantity, &s.UnitValue, &s.Timestamp, &s.PhotoURL); err != nil {
			return nil, fmt.Errorf("failed to scan submission: %w", err)
		}
		out = append(out, s)
	}
	return out, rows.Err()
}

// CreateBatch inserts all records of one batched submit atomically and
// returns the number of rows written.
func (r *SubmissionRepository) CreateBatch(ctx context.Context, subs []models.Submission) (int, error) {
	if len(subs) == 0 {
		return 0, nil
	}
	tx, err := r.DB.Begin(ctx)
	if err != nil {
		return 0, fmt.Errorf("failed to begin submission batch: %w", err)
	}
	defer tx.Rollback(ctx)

	query := `
		INSERT INTO submissions(wave_id, batch_id, actor_id, actor_name, location_id,
			location_name, item_type, item_id, item_name, container_item_id, quantity,
			unit_value, ts, photo_url)
		VALUES($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, NULLIF($14, ''))
		RETURNING id
	`
	for i := range subs {
		s := &subs[i]
		if err := tx.QueryRow(ctx, query, s.WaveID, s.BatchID, s.ActorID, s.ActorName,
			s.LocationID, s.LocationName, s.ItemType, s.ItemID, s.ItemName,
			s.ContainerItemID, s.Quantity, s.UnitValue, s.Timestamp, s.PhotoURL).Scan(&s.ID); err != nil {
			return 0, fmt.Errorf("failed to insert submission: %w", err)
		}
	}
	if err := tx.Commit(ctx); err != nil {
		return 0, fmt.Errorf("failed to commit submission batch: %w", err)
	}
	return len(subs), nil
}

func (r *SubmissionRepository) UpdateQuantity(ctx context.Context, id, quantity int) error {
	tag, err := r.DB.Exec(ctx, `UPDATE submissions SET quantity = $2 WHERE id = $1`, id, quantity)
	if err != nil {
		return fmt.Errorf("failed to update submission %d: %w", id, err)
	}
	if tag.RowsAffected() == 0 {
		return ErrSubmissionNotFound
	}
	return nil
}

func (r *SubmissionRepository) Delete(ctx context.Context, id int) error {
	tag, err := r.DB.Exec(ctx, `DELETE FROM submissions WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("failed to delete submission %d: %w", id, err)
	}
	if tag.RowsAffected() == 0 {
		return ErrSubmissionNotFound
	}
	return nil
}
