package services

import (
	"context"
	"errors"
	"fmt"
	"sync"

	"github.com/google/uuid"

	"wellen-backend/internal/models"
	"wellen-backend/internal/wizard"
)

var ErrWizardSessionNotFound = errors.New("wizard session not found")

// AuthoringWizardService hosts wave authoring sessions: each session wraps
// the pure authoring machine, the service adds identity, persistence of the
// finished wave and the full-reset close semantics.
type AuthoringWizardService struct {
	Waves *WaveService

	mu       sync.Mutex
	sessions map[string]wizard.AuthoringState
}

// AuthoringSession is the view of one session returned to clients.
type AuthoringSession struct {
	ID    string                `json:"id"`
	State wizard.AuthoringState `json:"state"`
}

func NewAuthoringWizardService(waves *WaveService) *AuthoringWizardService {
	return &AuthoringWizardService{
		Waves:    waves,
		sessions: map[string]wizard.AuthoringState{},
	}
}

// Start opens a fresh authoring flow.
func (s *AuthoringWizardService) Start() AuthoringSession {
	id := uuid.NewString()
	state := wizard.NewAuthoring()

	s.mu.Lock()
	s.sessions[id] = state
	s.mu.Unlock()
	return AuthoringSession{ID: id, State: state}
}

// StartEdit opens an editing flow for an existing wave: everything prefilled
// and the type selection step skipped.
func (s *AuthoringWizardService) StartEdit(ctx context.Context, waveID int) (AuthoringSession, error) {
	w, err := s.Waves.Get(ctx, waveID)
	if err != nil {
		return AuthoringSession{}, err
	}
	id := uuid.NewString()
	state := wizard.NewAuthoringEdit(w)

	s.mu.Lock()
	s.sessions[id] = state
	s.mu.Unlock()
	return AuthoringSession{ID: id, State: state}, nil
}

// Get returns the current session state.
func (s *AuthoringWizardService) Get(id string) (AuthoringSession, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	state, ok := s.sessions[id]
	if !ok {
		return AuthoringSession{}, ErrWizardSessionNotFound
	}
	return AuthoringSession{ID: id, State: state}, nil
}

// Apply feeds one event into the session's machine. A Cancel event closes
// the session entirely: wizard-local state resets to initial values.
func (s *AuthoringWizardService) Apply(id string, ev wizard.AuthoringEvent) (AuthoringSession, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	state, ok := s.sessions[id]
	if !ok {
		return AuthoringSession{}, ErrWizardSessionNotFound
	}

	if _, isCancel := ev.(wizard.Cancel); isCancel {
		delete(s.sessions, id)
		return AuthoringSession{ID: id, State: wizard.NewAuthoring()}, nil
	}

	next, err := wizard.ApplyAuthoring(state, ev)
	if err != nil {
		return AuthoringSession{ID: id, State: state}, err
	}
	s.sessions[id] = next
	return AuthoringSession{ID: id, State: next}, nil
}

// Finish validates the final step, persists the wave and closes the session.
func (s *AuthoringWizardService) Finish(ctx context.Context, id string) (*models.Wave, error) {
	s.mu.Lock()
	state, ok := s.sessions[id]
	s.mu.Unlock()
	if !ok {
		return nil, ErrWizardSessionNotFound
	}

	w, err := state.BuildWave()
	if err != nil {
		return nil, err
	}

	if state.EditMode {
		err = s.Waves.Update(ctx, w)
	} else {
		err = s.Waves.Create(ctx, w)
	}
	if err != nil {
		return nil, fmt.Errorf("persist authored wave: %w", err)
	}

	s.mu.Lock()
	delete(s.sessions, id)
	s.mu.Unlock()
	return w, nil
}
