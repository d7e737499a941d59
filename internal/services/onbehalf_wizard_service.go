package services

import (
	"context"
	"fmt"
	"strings"
	"sync"

	"github.com/google/uuid"

	"wellen-backend/internal/models"
	"wellen-backend/internal/timeutil"
	"wellen-backend/internal/wizard"
)

// OnBehalfWizardService hosts the administrator "on behalf of" entry flows.
// Sessions wrap the fixed 4-step machine; the service seeds entry rows from
// the wave catalog, serves the partitioned location list and fires the
// terminal batched submission.
type OnBehalfWizardService struct {
	Waves       WaveStore
	Actors      ActorStore
	Locations   LocationStore
	Submissions *SubmissionService

	mu       sync.Mutex
	sessions map[string]wizard.OnBehalfState
}

type OnBehalfSession struct {
	ID    string               `json:"id"`
	State wizard.OnBehalfState `json:"state"`
}

// PartitionedLocations lists the selected actor's own locations first
// (highlighted by the UI), then the remaining wave locations.
type PartitionedLocations struct {
	ActorLocations []models.Location `json:"actor_locations"`
	OtherLocations []models.Location `json:"other_locations"`
}

// SubmitResult is the outcome of the terminal step: a transient success
// marker before the flow fully resets.
type SubmitResult struct {
	Count                int      `json:"count"`
	MissingMandatoryTags []string `json:"missing_mandatory_tags,omitempty"`
}

func NewOnBehalfWizardService(waves WaveStore, actors ActorStore, locations LocationStore, subs *SubmissionService) *OnBehalfWizardService {
	return &OnBehalfWizardService{
		Waves:       waves,
		Actors:      actors,
		Locations:   locations,
		Submissions: subs,
		sessions:    map[string]wizard.OnBehalfState{},
	}
}

// Start opens a flow for the given wave, seeding zero-quantity entry rows
// from its catalog.
func (s *OnBehalfWizardService) Start(ctx context.Context, waveID int) (OnBehalfSession, error) {
	w, err := s.Waves.Get(ctx, waveID)
	if err != nil {
		return OnBehalfSession{}, fmt.Errorf("load wave %d: %w", waveID, err)
	}

	id := uuid.NewString()
	state := wizard.NewOnBehalf(w.ID, w.PhotoOnly, entryLines(w), w.PhotoTags)

	s.mu.Lock()
	s.sessions[id] = state
	s.mu.Unlock()
	return OnBehalfSession{ID: id, State: state}, nil
}

// Get returns the current session state.
func (s *OnBehalfWizardService) Get(id string) (OnBehalfSession, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	state, ok := s.sessions[id]
	if !ok {
		return OnBehalfSession{}, ErrWizardSessionNotFound
	}
	return OnBehalfSession{ID: id, State: state}, nil
}

// ListActors serves the step-1 directory.
func (s *OnBehalfWizardService) ListActors(ctx context.Context) ([]models.Actor, error) {
	actors, err := s.Actors.List(ctx)
	if err != nil {
		return nil, fmt.Errorf("list actors: %w", err)
	}
	if actors == nil {
		actors = []models.Actor{}
	}
	return actors, nil
}

// ListLocations serves the step-2 list, partitioned by the selected actor
// and filtered by a free-text search over name and address.
func (s *OnBehalfWizardService) ListLocations(ctx context.Context, id, query string) (PartitionedLocations, error) {
	s.mu.Lock()
	state, ok := s.sessions[id]
	s.mu.Unlock()
	if !ok {
		return PartitionedLocations{}, ErrWizardSessionNotFound
	}

	locations, err := s.Locations.ListByWave(ctx, state.WaveID)
	if err != nil {
		return PartitionedLocations{}, fmt.Errorf("list locations of wave %d: %w", state.WaveID, err)
	}

	out := PartitionedLocations{
		ActorLocations: []models.Location{},
		OtherLocations: []models.Location{},
	}
	needle := strings.ToLower(strings.TrimSpace(query))
	for _, loc := range locations {
		if needle != "" &&
			!strings.Contains(strings.ToLower(loc.Name), needle) &&
			!strings.Contains(strings.ToLower(loc.Address), needle) {
			continue
		}
		if loc.ActorID == state.ActorID && state.ActorID != 0 {
			out.ActorLocations = append(out.ActorLocations, loc)
		} else {
			out.OtherLocations = append(out.OtherLocations, loc)
		}
	}
	return out, nil
}

// Apply feeds one event into the session's machine. A cancelled machine
// (explicit cancel, or Back from step 1) closes the session entirely.
func (s *OnBehalfWizardService) Apply(id string, ev wizard.OnBehalfEvent) (OnBehalfSession, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	state, ok := s.sessions[id]
	if !ok {
		return OnBehalfSession{}, ErrWizardSessionNotFound
	}

	next, err := wizard.ApplyOnBehalf(state, ev)
	if err != nil {
		return OnBehalfSession{ID: id, State: state}, err
	}
	if next.Cancelled {
		delete(s.sessions, id)
		return OnBehalfSession{ID: id, State: next}, nil
	}
	s.sessions[id] = next
	return OnBehalfSession{ID: id, State: next}, nil
}

// Submit fires the terminal batched submission and fully resets the flow.
// Mandatory tags left unselected are reported, not enforced.
func (s *OnBehalfWizardService) Submit(ctx context.Context, id string) (SubmitResult, error) {
	s.mu.Lock()
	state, ok := s.sessions[id]
	s.mu.Unlock()
	if !ok {
		return SubmitResult{}, ErrWizardSessionNotFound
	}

	req, err := state.BuildRequest(timeutil.Now())
	if err != nil {
		return SubmitResult{}, err
	}

	count, err := s.Submissions.SubmitBatch(ctx, state.WaveID, req)
	if err != nil {
		return SubmitResult{}, err
	}

	s.mu.Lock()
	delete(s.sessions, id)
	s.mu.Unlock()
	return SubmitResult{
		Count:                count,
		MissingMandatoryTags: state.MissingMandatoryTags(),
	}, nil
}

// entryLines reduces the wave catalog to zero-quantity entry rows, one per
// flat item and one per container product.
func entryLines(w *models.Wave) []wizard.EntryLine {
	var lines []wizard.EntryLine
	for _, t := range models.CanonicalItemTypeOrder {
		if t.IsContainer() {
			for _, c := range w.ContainersOfType(t) {
				containerID := c.ID
				for _, p := range c.Products {
					id := containerID
					lines = append(lines, wizard.EntryLine{
						ItemType:        t,
						ItemID:          p.ID,
						ContainerItemID: &id,
						Name:            p.Name,
						UnitValue:       p.UnitValue,
					})
				}
			}
			continue
		}
		for _, it := range w.ItemsOfType(t) {
			unitValue := 0.0
			if it.UnitValue != nil {
				unitValue = *it.UnitValue
			}
			lines = append(lines, wizard.EntryLine{
				ItemType:  t,
				ItemID:    it.ID,
				Name:      it.Name,
				UnitValue: unitValue,
			})
		}
	}
	return lines
}
