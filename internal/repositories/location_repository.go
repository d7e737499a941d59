package repositories

import (
	"context"
	"errors"
	"fmt"

	"wellen-backend/internal/models"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

var ErrLocationNotFound = errors.New("location not found")

type LocationRepository struct {
	DB *pgxpool.Pool
}

func NewLocationRepository(db *pgxpool.Pool) *LocationRepository {
	return &LocationRepository{DB: db}
}

// ListByWave returns the stores assigned to the wave, alphabetically.
func (r *LocationRepository) ListByWave(ctx context.Context, waveID int) ([]models.Location, error) {
	query := `
		SELECT l.id, l.name, COALESCE(l.address, ''), COALESCE(l.actor_id, 0)
		FROM locations l
		JOIN wave_locations wl ON wl.location_id = l.id
		WHERE wl.wave_id = $1
		ORDER BY l.name
	`
	rows, err := r.DB.Query(ctx, query, waveID)
	if err != nil {
		return nil, fmt.Errorf("failed to list locations for wave %d: %w", waveID, err)
	}
	defer rows.Close()

	var out []models.Location
	for rows.Next() {
		var l models.Location
		if err := rows.Scan(&l.ID, &l.Name, &l.Address, &l.ActorID); err != nil {
			return nil, fmt.Errorf("failed to scan location: %w", err)
		}
		out = append(out, l)
	}
	return out, rows.Err()
}

func (r *LocationRepository) Get(ctx context.Context, id int) (*models.Location, error) {
	l := &models.Location{}
	query := `SELECT id, name, COALESCE(address, ''), COALESCE(actor_id, 0) FROM locations WHERE id = $1`
	err := r.DB.QueryRow(ctx, query, id).Scan(&l.ID, &l.Name, &l.Address, &l.ActorID)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, ErrLocationNotFound
		}
		return nil, fmt.Errorf("failed to get location %d: %w", id, err)
	}
	return l, nil
}
