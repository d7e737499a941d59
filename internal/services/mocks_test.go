package services

import (
	"context"
	"errors"
	"sync"

	"wellen-backend/internal/models"
)

// In-memory stores backing the service tests.

type memWaveStore struct {
	mu     sync.Mutex
	waves  map[int]*models.Wave
	list   []models.WaveListItem
	nextID int

	listCalls int
	listErrs  []error // consumed per List call before the stored list is returned
}

func newMemWaveStore() *memWaveStore {
	return &memWaveStore{waves: map[int]*models.Wave{}, nextID: 1}
}

func (m *memWaveStore) List(ctx context.Context) ([]models.WaveListItem, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.listCalls++
	if len(m.listErrs) > 0 {
		err := m.listErrs[0]
		m.listErrs = m.listErrs[1:]
		if err != nil {
			return nil, err
		}
	}
	return append([]models.WaveListItem(nil), m.list...), nil
}

func (m *memWaveStore) Get(ctx context.Context, id int) (*models.Wave, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	w, ok := m.waves[id]
	if !ok {
		return nil, errors.New("wave not found")
	}
	cp := *w
	return &cp, nil
}

func (m *memWaveStore) Create(ctx context.Context, w *models.Wave) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	w.ID = m.nextID
	m.nextID++
	cp := *w
	m.waves[w.ID] = &cp
	return nil
}

func (m *memWaveStore) Update(ctx context.Context, w *models.Wave) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if _, ok := m.waves[w.ID]; !ok {
		return errors.New("wave not found")
	}
	cp := *w
	m.waves[w.ID] = &cp
	return nil
}

func (m *memWaveStore) Delete(ctx context.Context, id int) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if _, ok := m.waves[id]; !ok {
		return errors.New("wave not found")
	}
	delete(m.waves, id)
	return nil
}

type memSubmissionStore struct {
	mu     sync.Mutex
	subs   []models.Submission
	nextID int

	deleted []int
}

func newMemSubmissionStore() *memSubmissionStore {
	return &memSubmissionStore{nextID: 1}
}

func (m *memSubmissionStore) ListByWave(ctx context.Context, waveID int) ([]models.Submission, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	var out []models.Submission
	for _, s := range m.subs {
		if s.WaveID == waveID {
			out = append(out, s)
		}
	}
	return out, nil
}

func (m *memSubmissionStore) CreateBatch(ctx context.Context, subs []models.Submission) (int, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	for _, s := range subs {
		s.ID = m.nextID
		m.nextID++
		m.subs = append(m.subs, s)
	}
	return len(subs), nil
}

func (m *memSubmissionStore) UpdateQuantity(ctx context.Context, id, quantity int) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	for i := range m.subs {
		if m.subs[i].ID == id {
			m.subs[i].Quantity = quantity
			return nil
		}
	}
	return errors.New("submission not found")
}

func (m *memSubmissionStore) Delete(ctx context.Context, id int) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	for i := range m.subs {
		if m.subs[i].ID == id {
			m.subs = append(m.subs[:i], m.subs[i+1:]...)
			m.deleted = append(m.deleted, id)
			return nil
		}
	}
	return errors.New("submission not found")
}

func (m *memSubmissionStore) seed(subs ...models.Submission) {
	m.mu.Lock()
	defer m.mu.Unlock()
	for _, s := range subs {
		if s.ID == 0 {
			s.ID = m.nextID
		}
		if s.ID >= m.nextID {
			m.nextID = s.ID + 1
		}
		m.subs = append(m.subs, s)
	}
}

type memPhotoStore struct {
	mu     sync.Mutex
	photos []models.FotoEntry
}

func (m *memPhotoStore) ListByWave(ctx context.Context, waveID int) ([]models.FotoEntry, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	var out []models.FotoEntry
	for _, p := range m.photos {
		if p.WaveID == waveID {
			out = append(out, p)
		}
	}
	return out, nil
}

func (m *memPhotoStore) CreateBatch(ctx context.Context, photos []models.FotoEntry) (int, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.photos = append(m.photos, photos...)
	return len(photos), nil
}

type memActorStore struct {
	actors []models.Actor
}

func (m *memActorStore) List(ctx context.Context) ([]models.Actor, error) {
	return append([]models.Actor(nil), m.actors...), nil
}

func (m *memActorStore) Get(ctx context.Context, id int) (*models.Actor, error) {
	for _, a := range m.actors {
		if a.ID == id {
			cp := a
			return &cp, nil
		}
	}
	return nil, errors.New("actor not found")
}

type memLocationStore struct {
	locations []models.Location
}

func (m *memLocationStore) ListByWave(ctx context.Context, waveID int) ([]models.Location, error) {
	return append([]models.Location(nil), m.locations...), nil
}

func (m *memLocationStore) Get(ctx context.Context, id int) (*models.Location, error) {
	for _, l := range m.locations {
		if l.ID == id {
			cp := l
			return &cp, nil
		}
	}
	return nil, errors.New("location not found")
}
