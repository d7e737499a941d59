package repositories

import (
	"context"
	"fmt"

	"wellen-backend/internal/models"

	"github.com/jackc/pgx/v5/pgxpool"
)

type PhotoRepository struct {
	DB *pgxpool.Pool
}

func NewPhotoRepository(db *pgxpool.Pool) *PhotoRepository {
	return &PhotoRepository{DB: db}
}

func (r *PhotoRepository) ListByWave(ctx context.Context, waveID int) ([]models.FotoEntry, error) {
	query := `
		SELECT id, wave_id, actor_id, actor_name, location_id, location_name,
			photo_url, tags, ts
		FROM photo_entries
		WHERE wave_id = $1
		ORDER BY ts DESC, id DESC
	`
	rows, err := r.DB.Query(ctx, query, waveID)
	if err != nil {
		return nil, fmt.Errorf("failed to list photos for wave %d: %w", waveID, err)
	}
	defer rows.Close()

	var out []models.FotoEntry
	for rows.Next() {
		var p models.FotoEntry
		if err := rows.Scan(&p.ID, &p.WaveID, &p.ActorID, &p.ActorName,
			&p.LocationID, &p.LocationName, &p.PhotoURL, &p.Tags, &p.Timestamp); err != nil {
			return nil, fmt.Errorf("failed to scan photo entry: %w", err)
		}
		out = append(out, p)
	}
	return out, rows.Err()
}

func (r *PhotoRepository) CreateBatch(ctx context.Context, photos []models.FotoEntry) (int, error) {
	if len(photos) == 0 {
		return 0, nil
	}
	tx, err := r.DB.Begin(ctx)
	if err != nil {
		return 0, fmt.Errorf("failed to begin photo batch: %w", err)
	}
	defer tx.Rollback(ctx)

	query := `
		INSERT INTO photo_entries(wave_id, actor_id, actor_name, location_id,
			location_name, photo_url, tags, ts)
		VALUES($1, $2, $3, $4, $5, $6, $7, $8)
		RETURNING id
	`
	for i := range photos {
		p := &photos[i]
		if err := tx.QueryRow(ctx, query, p.WaveID, p.ActorID, p.ActorName,
			p.LocationID, p.LocationName, p.PhotoURL, p.Tags, p.Timestamp).Scan(&p.ID); err != nil {
			return 0, fmt.Errorf("failed to insert photo entry: %w", err)
		}
	}
	if err := tx.Commit(ctx); err != nil {
		return 0, fmt.Errorf("failed to commit photo batch: %w", err)
	}
	return len(photos), nil
}
