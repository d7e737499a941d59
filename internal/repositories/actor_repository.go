package repositories

import (
	"context"
	"errors"
	"fmt"

	"wellen-backend/internal/models"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

var ErrActorNotFound = errors.New("actor not found")

type ActorRepository struct {
	DB *pgxpool.Pool
}

func NewActorRepository(db *pgxpool.Pool) *ActorRepository {
	return &ActorRepository{DB: db}
}

func (r *ActorRepository) List(ctx context.Context) ([]models.Actor, error) {
	rows, err := r.DB.Query(ctx, `SELECT id, name FROM actors ORDER BY name`)
	if err != nil {
		return nil, fmt.Errorf("failed to list actors: %w", err)
	}
	defer rows.Close()

	var out []models.Actor
	for rows.Next() {
		var a models.Actor
		if err := rows.Scan(&a.ID, &a.Name); err != nil {
			return nil, fmt.Errorf("failed to scan actor: %w", err)
		}
		out = append(out, a)
	}
	return out, rows.Err()
}

func (r *ActorRepository) Get(ctx context.Context, id int) (*models.Actor, error) {
	a := &models.Actor{}
	err := r.DB.QueryRow(ctx, `SELECT id, name FROM actors WHERE id = $1`, id).Scan(&a.ID, &a.Name)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, ErrActorNotFound
		}
		return nil, fmt.Errorf("failed to get actor %d: %w", id, err)
	}
	return a, nil
}
