package services

import (
	"context"

	"wellen-backend/internal/models"
)

// Store interfaces decouple the progress/wizard core from the persistence
// layer; internal/repositories provides the pgx implementations.

type WaveStore interface {
	List(ctx context.Context) ([]models.WaveListItem, error)
	Get(ctx context.Context, id int) (*models.Wave, error)
	Create(ctx context.Context, w *models.Wave) error
	Update(ctx context.Context, w *models.Wave) error
	Delete(ctx context.Context, id int) error
}

type SubmissionStore interface {
	ListByWave(ctx context.Context, waveID int) ([]models.Submission, error)
	CreateBatch(ctx context.Context, subs []models.Submission) (int, error)
	UpdateQuantity(ctx context.Context, id, quantity int) error
	Delete(ctx context.Context, id int) error
}

type PhotoStore interface {
	ListByWave(ctx context.Context, waveID int) ([]models.FotoEntry, error)
	CreateBatch(ctx context.Context, photos []models.FotoEntry) (int, error)
}

type ActorStore interface {
	List(ctx context.Context) ([]models.Actor, error)
	Get(ctx context.Context, id int) (*models.Actor, error)
}

type LocationStore interface {
	ListByWave(ctx context.Context, waveID int) ([]models.Location, error)
	Get(ctx context.Context, id int) (*models.Location, error)
}
