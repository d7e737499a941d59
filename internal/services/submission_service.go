package services

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"

	"wellen-backend/internal/cache"
	"wellen-backend/internal/models"
	"wellen-backend/internal/timeutil"
)

// ProgressPublisher pushes accepted submissions to live listeners.
type ProgressPublisher interface {
	PublishSubmission(sub models.Submission)
}

// SubmissionService turns batched progress reports into persisted submission
// records. One batch writes one record per item (per product for container
// items), all sharing a batch ID so the UI can re-aggregate them into a
// composite row.
type SubmissionService struct {
	Waves       WaveStore
	Submissions SubmissionStore
	Photos      PhotoStore
	Actors      ActorStore
	Locations   LocationStore
	Publisher   ProgressPublisher
}

func NewSubmissionService(waves WaveStore, subs SubmissionStore, photos PhotoStore, actors ActorStore, locations LocationStore) *SubmissionService {
	return &SubmissionService{
		Waves:       waves,
		Submissions: subs,
		Photos:      photos,
		Actors:      actors,
		Locations:   locations,
	}
}

// SetPublisher wires the live feed; optional.
func (s *SubmissionService) SetPublisher(p ProgressPublisher) {
	s.Publisher = p
}

// SubmitBatch persists one batched progress report and returns the number of
// records written. The timestamp may be backdated (on-behalf entry); the
// zero value means "now" in the campaign timezone.
func (s *SubmissionService) SubmitBatch(ctx context.Context, waveID int, req *models.BatchSubmissionRequest) (int, error) {
	w, err := s.Waves.Get(ctx, waveID)
	if err != nil {
		return 0, fmt.Errorf("load wave %d: %w", waveID, err)
	}
	actor, err := s.Actors.Get(ctx, req.ActorID)
	if err != nil {
		return 0, fmt.Errorf("load actor %d: %w", req.ActorID, err)
	}
	location, err := s.Locations.Get(ctx, req.LocationID)
	if err != nil {
		return 0, fmt.Errorf("load location %d: %w", req.LocationID, err)
	}

	at := req.Timestamp
	if at.IsZero() {
		at = timeutil.Now()
	}

	if w.PhotoOnly {
		return s.submitPhotos(ctx, w, actor, location, req, at)
	}

	if len(req.Items) == 0 {
		return 0, errors.New("batch contains no items")
	}

	batchID := uuid.NewString()
	subs := make([]models.Submission, 0, len(req.Items))
	for _, item := range req.Items {
		if item.Quantity <= 0 {
			continue
		}
		if !item.ItemType.Valid() {
			return 0, fmt.Errorf("unknown item type %q", item.ItemType)
		}
		unitValue := resolveUnitValue(w, item)
		subs = append(subs, models.Submission{
			WaveID:          waveID,
			BatchID:         batchID,
			ActorID:         actor.ID,
			ActorName:       actor.Name,
			LocationID:      location.ID,
			LocationName:    location.Name,
			ItemType:        item.ItemType,
			ItemID:          item.ItemID,
			ItemName:        resolveItemName(w, item),
			ContainerItemID: item.ContainerItemID,
			Quantity:        item.Quantity,
			UnitValue:       unitValue,
			Timestamp:       at,
			PhotoURL:        req.PhotoURL,
		})
	}
	if len(subs) == 0 {
		return 0, errors.New("batch contains no positive quantities")
	}

	count, err := s.Submissions.CreateBatch(ctx, subs)
	if err != nil {
		return 0, fmt.Errorf("persist batch: %w", err)
	}
	cache.InvalidateWaves(ctx)

	if s.Publisher != nil {
		for _, sub := range subs {
			s.Publisher.PublishSubmission(sub)
		}
	}
	return count, nil
}

// UpdateQuantity changes a single submission record. Negative quantities
// clamp at 0, edits never go below zero.
func (s *SubmissionService) UpdateQuantity(ctx context.Context, id, quantity int) error {
	if quantity < 0 {
		quantity = 0
	}
	if err := s.Submissions.UpdateQuantity(ctx, id, quantity); err != nil {
		return fmt.Errorf("update submission %d: %w", id, err)
	}
	cache.InvalidateWaves(ctx)
	return nil
}

func (s *SubmissionService) Delete(ctx context.Context, id int) error {
	if err := s.Submissions.Delete(ctx, id); err != nil {
		return fmt.Errorf("delete submission %d: %w", id, err)
	}
	cache.InvalidateWaves(ctx)
	return nil
}

func (s *SubmissionService) submitPhotos(ctx context.Context, w *models.Wave, actor *models.Actor, location *models.Location, req *models.BatchSubmissionRequest, at time.Time) (int, error) {
	if len(req.Photos) == 0 {
		return 0, errors.New("photo-only wave needs at least one photo")
	}
	photos := make([]models.FotoEntry, 0, len(req.Photos))
	for _, p := range req.Photos {
		photos = append(photos, models.FotoEntry{
			WaveID:       w.ID,
			ActorID:      actor.ID,
			ActorName:    actor.Name,
			LocationID:   location.ID,
			LocationName: location.Name,
			PhotoURL:     p.URL,
			Tags:         p.Tags,
			Timestamp:    at,
		})
	}
	count, err := s.Photos.CreateBatch(ctx, photos)
	if err != nil {
		return 0, fmt.Errorf("persist photos: %w", err)
	}
	cache.InvalidateWaves(ctx)
	return count, nil
}

// resolveUnitValue prefers the submitted unit value, falling back to the
// wave catalog; missing values become 0 so progress always renders.
func resolveUnitValue(w *models.Wave, item models.BatchSubmissionItem) float64 {
	if item.UnitValue != nil {
		return *item.UnitValue
	}
	if item.ItemType.IsContainer() {
		for _, c := range w.ContainersOfType(item.ItemType) {
			for _, p := range c.Products {
				if p.ID == item.ItemID {
					return p.UnitValue
				}
			}
		}
		return 0
	}
	for _, it := range w.ItemsOfType(item.ItemType) {
		if it.ID == item.ItemID && it.UnitValue != nil {
			return *it.UnitValue
		}
	}
	return 0
}

func resolveItemName(w *models.Wave, item models.BatchSubmissionItem) string {
	if item.ItemType.IsContainer() {
		for _, c := range w.ContainersOfType(item.ItemType) {
			for _, p := range c.Products {
				if p.ID == item.ItemID {
					return p.Name
				}
			}
		}
		return ""
	}
	for _, it := range w.ItemsOfType(item.ItemType) {
		if it.ID == item.ItemID {
			return it.Name
		}
	}
	return ""
}
