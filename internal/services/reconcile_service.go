package services

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"time"

	"github.com/google/uuid"

	"wellen-backend/internal/cache"
	"wellen-backend/internal/models"
)

var (
	ErrNoEditSession    = errors.New("no row is being edited")
	ErrStaleEditSession = errors.New("edit session has been superseded")
	ErrRowNotFound      = errors.New("submission row not found")
)

// EditSession is the explicit value representing the one row currently in
// edit. Holding the session token is the only way to mutate the row, which
// makes "only one edit at a time" structural rather than conventional.
type EditSession struct {
	Token         string               `json:"token"`
	Row           models.SubmissionRow `json:"row"`
	Buffer        int                  `json:"buffer"`
	PendingDelete bool                 `json:"pending_delete"`
	StartedAt     time.Time            `json:"started_at"`
}

// ReconcileService owns the single global edit cursor over submission rows.
// Mutations update local state optimistically; derived values are recomputed
// client-side from the known unit values, never waiting on a re-fetch.
type ReconcileService struct {
	Submissions SubmissionStore

	mu      sync.Mutex
	session *EditSession
}

func NewReconcileService(subs SubmissionStore) *ReconcileService {
	return &ReconcileService{Submissions: subs}
}

// StartEdit begins editing the given row, seeding the quantity buffer from
// its current quantity. Entering edit on a new row silently exits edit on
// any other.
func (s *ReconcileService) StartEdit(ctx context.Context, waveID int, rowID string) (EditSession, error) {
	subs, err := s.Submissions.ListByWave(ctx, waveID)
	if err != nil {
		return EditSession{}, fmt.Errorf("load submissions of wave %d: %w", waveID, err)
	}

	var row *models.SubmissionRow
	for _, r := range BuildRows(subs) {
		if r.RowID == rowID {
			row = &r
			break
		}
	}
	if row == nil {
		return EditSession{}, ErrRowNotFound
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	s.session = &EditSession{
		Token:     uuid.NewString(),
		Row:       *row,
		Buffer:    row.Quantity,
		StartedAt: time.Now(),
	}
	return *s.session, nil
}

// Adjust shifts the quantity buffer by delta, clamped at 0.
func (s *ReconcileService) Adjust(token string, delta int) (EditSession, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	sess, err := s.active(token)
	if err != nil {
		return EditSession{}, err
	}
	sess.Buffer += delta
	if sess.Buffer < 0 {
		sess.Buffer = 0
	}
	sess.PendingDelete = false
	return *sess, nil
}

// Save persists the edited quantity and returns the optimistically updated
// row. For composite rows only the first constituent submission is updated,
// matching the source behavior this system reimplements; per-product edits
// go through the submission update endpoint directly.
func (s *ReconcileService) Save(ctx context.Context, token string) (models.SubmissionRow, error) {
	s.mu.Lock()
	sess, err := s.active(token)
	if err != nil {
		s.mu.Unlock()
		return models.SubmissionRow{}, err
	}
	row := sess.Row
	buffer := sess.Buffer
	s.mu.Unlock()

	if len(row.Refs) == 0 {
		return models.SubmissionRow{}, ErrRowNotFound
	}
	if err := s.Submissions.UpdateQuantity(ctx, row.Refs[0].SubmissionID, buffer); err != nil {
		return models.SubmissionRow{}, fmt.Errorf("update submission %d: %w", row.Refs[0].SubmissionID, err)
	}

	cache.InvalidateWaves(ctx)

	// Local recompute with the known unit values.
	row.Refs[0].Quantity = buffer
	row.Quantity = 0
	row.Value = 0
	for _, ref := range row.Refs {
		row.Quantity += ref.Quantity
		row.Value += float64(ref.Quantity) * ref.UnitValue
	}

	s.mu.Lock()
	if s.session != nil && s.session.Token == token {
		s.session = nil
	}
	s.mu.Unlock()
	return row, nil
}

// Cancel exits edit without persisting anything.
func (s *ReconcileService) Cancel(token string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, err := s.active(token); err != nil {
		return err
	}
	s.session = nil
	return nil
}

// RequestDelete arms the destructive action; deletion only proceeds after a
// second, explicit confirmation.
func (s *ReconcileService) RequestDelete(token string) (EditSession, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	sess, err := s.active(token)
	if err != nil {
		return EditSession{}, err
	}
	sess.PendingDelete = true
	return *sess, nil
}

// ConfirmDelete deletes every constituent submission of the armed row, so a
// composite row never leaves orphaned records behind.
func (s *ReconcileService) ConfirmDelete(ctx context.Context, token string) error {
	s.mu.Lock()
	sess, err := s.active(token)
	if err != nil {
		s.mu.Unlock()
		return err
	}
	if !sess.PendingDelete {
		s.mu.Unlock()
		return errors.New("delete has not been confirmed")
	}
	refs := append([]models.ProductSubmissionRef(nil), sess.Row.Refs...)
	s.mu.Unlock()

	for _, ref := range refs {
		if err := s.Submissions.Delete(ctx, ref.SubmissionID); err != nil {
			return fmt.Errorf("delete submission %d: %w", ref.SubmissionID, err)
		}
	}
	cache.InvalidateWaves(ctx)

	s.mu.Lock()
	if s.session != nil && s.session.Token == token {
		s.session = nil
	}
	s.mu.Unlock()
	return nil
}

// Current returns the active session, if any.
func (s *ReconcileService) Current() (EditSession, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.session == nil {
		return EditSession{}, false
	}
	return *s.session, true
}

func (s *ReconcileService) active(token string) (*EditSession, error) {
	if s.session == nil {
		return nil, ErrNoEditSession
	}
	if s.session.Token != token {
		return nil, ErrStaleEditSession
	}
	return s.session, nil
}
