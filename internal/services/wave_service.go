package services

import (
	"context"
	"errors"
	"fmt"
	"log"

	"wellen-backend/internal/cache"
	"wellen-backend/internal/models"
	"wellen-backend/internal/retry"
	"wellen-backend/internal/timeutil"
)

// WaveService owns wave CRUD and the derived list view-models. Lifecycle
// status and days-remaining are computed on read against Berlin "now" and
// never stored.
type WaveService struct {
	Waves      WaveStore
	ListPolicy retry.Policy
}

func NewWaveService(waves WaveStore) *WaveService {
	return &WaveService{Waves: waves, ListPolicy: retry.DefaultListPolicy}
}

// List returns all waves with counts and computed status. The read retries
// on failure and on an empty result to mask transient cold-start gaps of the
// backing store; no other operation auto-retries.
func (s *WaveService) List(ctx context.Context) ([]models.WaveListItem, error) {
	if data, ok := cache.GetWaveList(ctx); ok {
		return s.decorate(data), nil
	}

	var waves []models.WaveListItem
	err := retry.Do(ctx, s.ListPolicy, func(ctx context.Context) (bool, error) {
		var err error
		waves, err = s.Waves.List(ctx)
		if err != nil {
			log.Printf("[Waves] list fetch failed, retrying: %v", err)
			return false, err
		}
		return len(waves) == 0, nil
	})
	if err != nil {
		return nil, fmt.Errorf("list waves: %w", err)
	}
	if waves == nil {
		waves = []models.WaveListItem{}
	}

	cache.SetWaveList(ctx, waves)
	return s.decorate(waves), nil
}

// Get returns the full wave including all item collections, with its status
// computed.
func (s *WaveService) Get(ctx context.Context, id int) (*models.Wave, error) {
	if w, ok := cache.GetWave(ctx, id); ok {
		w.Status = models.ClassifyStatus(w.StartDate, w.EndDate, timeutil.Now())
		return w, nil
	}
	w, err := s.Waves.Get(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("load wave %d: %w", id, err)
	}
	cache.SetWave(ctx, w)
	w.Status = models.ClassifyStatus(w.StartDate, w.EndDate, timeutil.Now())
	return w, nil
}

func (s *WaveService) Create(ctx context.Context, w *models.Wave) error {
	if err := validateWave(w); err != nil {
		return err
	}
	if err := s.Waves.Create(ctx, w); err != nil {
		return fmt.Errorf("create wave: %w", err)
	}
	cache.InvalidateWaves(ctx)
	return nil
}

func (s *WaveService) Update(ctx context.Context, w *models.Wave) error {
	if err := validateWave(w); err != nil {
		return err
	}
	if err := s.Waves.Update(ctx, w); err != nil {
		return fmt.Errorf("update wave %d: %w", w.ID, err)
	}
	cache.InvalidateWaves(ctx)
	return nil
}

func (s *WaveService) Delete(ctx context.Context, id int) error {
	if err := s.Waves.Delete(ctx, id); err != nil {
		return fmt.Errorf("delete wave %d: %w", id, err)
	}
	cache.InvalidateWaves(ctx)
	return nil
}

func (s *WaveService) decorate(waves []models.WaveListItem) []models.WaveListItem {
	now := timeutil.Now()
	out := make([]models.WaveListItem, len(waves))
	for i, w := range waves {
		w.Status = models.ClassifyStatus(w.StartDate, w.EndDate, now)
		w.DaysRemaining = models.DaysRemaining(w.EndDate, now)
		out[i] = w
	}
	return out
}

func validateWave(w *models.Wave) error {
	if w.Name == "" {
		return errors.New("wave name is required")
	}
	if w.EndDate.Before(w.StartDate) {
		return errors.New("end date lies before start date")
	}
	switch w.GoalType {
	case models.GoalPercentage:
		if w.GoalPercentage <= 0 {
			return errors.New("a percentage goal is required")
		}
	case models.GoalValue:
		if w.GoalValue <= 0 {
			return errors.New("a value goal is required")
		}
	default:
		return errors.New("goal type must be percentage or value")
	}
	return nil
}
