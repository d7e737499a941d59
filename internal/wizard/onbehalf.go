package wizard

import (
	"errors"
	"fmt"
	"time"

	"wellen-backend/internal/models"
)

// On-behalf entry is a fixed 4-step flow an administrator walks through to
// retroactively submit for a field representative.
const (
	OnBehalfStepActor    = 1
	OnBehalfStepLocation = 2
	OnBehalfStepEntry    = 3
	OnBehalfStepConfirm  = 4
)

// EntryLine is one item/product row of the entry step, seeded from the wave
// catalog with quantity zero.
type EntryLine struct {
	ItemType        models.ItemType `json:"item_type"`
	ItemID          int             `json:"item_id"`
	ContainerItemID *int            `json:"container_item_id,omitempty"`
	Name            string          `json:"name"`
	UnitValue       float64         `json:"unit_value"`
	Quantity        int             `json:"quantity"`
}

// OnBehalfState is the on-behalf submission machine.
type OnBehalfState struct {
	WaveID    int               `json:"wave_id"`
	PhotoOnly bool              `json:"photo_only"`
	Tags      []models.PhotoTag `json:"tags,omitempty"`

	Step          int                   `json:"step"`
	ActorID       int                   `json:"actor_id"`
	LocationID    int                   `json:"location_id"`
	Lines         []EntryLine           `json:"lines"`
	Photos        []models.PhotoCapture `json:"photos"`
	EffectiveTime time.Time             `json:"effective_time"` // zero means "now"

	Cancelled bool `json:"cancelled"`
	Submitted bool `json:"submitted"`
}

// NewOnBehalf starts the flow for a wave. lines is the wave catalog reduced
// to zero-quantity entry rows; tags the predefined photo tags of photo-only
// waves.
func NewOnBehalf(waveID int, photoOnly bool, lines []EntryLine, tags []models.PhotoTag) OnBehalfState {
	return OnBehalfState{
		WaveID:    waveID,
		PhotoOnly: photoOnly,
		Tags:      tags,
		Step:      OnBehalfStepActor,
		Lines:     lines,
	}
}

// TotalQuantity sums the entered quantities across all rows.
func (s OnBehalfState) TotalQuantity() int {
	total := 0
	for _, l := range s.Lines {
		total += l.Quantity
	}
	return total
}

// MissingMandatoryTags lists mandatory tags no captured photo carries. The
// result is a hint, not a gate: submission proceeds regardless.
func (s OnBehalfState) MissingMandatoryTags() []string {
	var missing []string
	for _, tag := range s.Tags {
		if !tag.Mandatory {
			continue
		}
		found := false
		for _, p := range s.Photos {
			for _, t := range p.Tags {
				if t == tag.Name {
					found = true
				}
			}
		}
		if !found {
			missing = append(missing, tag.Name)
		}
	}
	return missing
}

// OnBehalfEvent is the tagged union of on-behalf inputs.
type OnBehalfEvent interface{ onBehalfEvent() }

type SelectActor struct{ ActorID int }

type SelectLocation struct{ LocationID int }

type SetQuantity struct {
	LineIndex int
	Quantity  int
}

type AddPhoto struct{ Photo models.PhotoCapture }

type RemovePhoto struct{ Index int }

type SetTimestamp struct{ At time.Time }

type NextOB struct{}

type BackOB struct{}

type CancelOB struct{}

func (SelectActor) onBehalfEvent()    {}
func (SelectLocation) onBehalfEvent() {}
func (SetQuantity) onBehalfEvent()    {}
func (AddPhoto) onBehalfEvent()       {}
func (RemovePhoto) onBehalfEvent()    {}
func (SetTimestamp) onBehalfEvent()   {}
func (NextOB) onBehalfEvent()         {}
func (BackOB) onBehalfEvent()         {}
func (CancelOB) onBehalfEvent()       {}

// ApplyOnBehalf advances the machine: (state, event) -> next state. The input
// state is never mutated.
func ApplyOnBehalf(s OnBehalfState, ev OnBehalfEvent) (OnBehalfState, error) {
	if s.Cancelled || s.Submitted {
		return s, errors.New("flow is finished")
	}
	s = s.clone()

	switch e := ev.(type) {
	case SelectActor:
		if s.Step != OnBehalfStepActor {
			return s, errors.New("actor selection belongs to step 1")
		}
		if e.ActorID <= 0 {
			return s, errors.New("invalid actor")
		}
		s.ActorID = e.ActorID
		return s, nil

	case SelectLocation:
		if s.Step != OnBehalfStepLocation {
			return s, errors.New("location selection belongs to step 2")
		}
		if e.LocationID <= 0 {
			return s, errors.New("invalid location")
		}
		s.LocationID = e.LocationID
		return s, nil

	case SetQuantity:
		if s.Step != OnBehalfStepEntry {
			return s, errors.New("quantities belong to step 3")
		}
		if s.PhotoOnly {
			return s, errors.New("photo-only wave has no quantity rows")
		}
		if e.LineIndex < 0 || e.LineIndex >= len(s.Lines) {
			return s, fmt.Errorf("no entry row %d", e.LineIndex)
		}
		q := e.Quantity
		if q < 0 {
			q = 0
		}
		s.Lines[e.LineIndex].Quantity = q
		return s, nil

	case AddPhoto:
		if s.Step != OnBehalfStepEntry {
			return s, errors.New("photos belong to step 3")
		}
		if !s.PhotoOnly {
			return s, errors.New("wave is quantity-based")
		}
		if e.Photo.URL == "" {
			return s, errors.New("photo has no URL")
		}
		s.Photos = append(s.Photos, e.Photo)
		return s, nil

	case RemovePhoto:
		if e.Index >= 0 && e.Index < len(s.Photos) {
			s.Photos = append(s.Photos[:e.Index:e.Index], s.Photos[e.Index+1:]...)
		}
		return s, nil

	case SetTimestamp:
		if s.Step != OnBehalfStepConfirm {
			return s, errors.New("the effective date is set on the confirm step")
		}
		s.EffectiveTime = e.At
		return s, nil

	case NextOB:
		if err := s.Gate(); err != nil {
			return s, err
		}
		if s.Step >= OnBehalfStepConfirm {
			return s, errors.New("already at the confirm step")
		}
		s.Step++
		return s, nil

	case BackOB:
		// Back from step 1 cancels the whole flow; otherwise return one step
		// and discard the selection of the step returned to.
		if s.Step == OnBehalfStepActor {
			s.Cancelled = true
			return s, nil
		}
		s.Step--
		switch s.Step {
		case OnBehalfStepActor:
			s.ActorID = 0
		case OnBehalfStepLocation:
			s.LocationID = 0
		case OnBehalfStepEntry:
			for i := range s.Lines {
				s.Lines[i].Quantity = 0
			}
			s.Photos = nil
		}
		return s, nil

	case CancelOB:
		s.Cancelled = true
		return s, nil
	}

	return s, fmt.Errorf("unhandled on-behalf event %T", ev)
}

// Gate validates the current step, blocking the forward transition.
func (s OnBehalfState) Gate() error {
	switch s.Step {
	case OnBehalfStepActor:
		if s.ActorID == 0 {
			return errors.New("select a representative")
		}
	case OnBehalfStepLocation:
		if s.LocationID == 0 {
			return errors.New("select a location")
		}
	case OnBehalfStepEntry:
		if s.PhotoOnly {
			if len(s.Photos) == 0 {
				return errors.New("capture at least one photo")
			}
		} else if s.TotalQuantity() <= 0 {
			return errors.New("enter at least one quantity")
		}
	}
	return nil
}

// BuildRequest assembles the terminal batched submission. Valid only on the
// confirm step.
func (s OnBehalfState) BuildRequest(now time.Time) (*models.BatchSubmissionRequest, error) {
	if s.Step != OnBehalfStepConfirm {
		return nil, errors.New("wizard has not reached the confirm step")
	}
	if err := s.Gate(); err != nil {
		return nil, err
	}

	at := s.EffectiveTime
	if at.IsZero() {
		at = now
	}

	req := &models.BatchSubmissionRequest{
		ActorID:    s.ActorID,
		LocationID: s.LocationID,
		Timestamp:  at,
	}
	if s.PhotoOnly {
		req.Photos = append([]models.PhotoCapture(nil), s.Photos...)
		return req, nil
	}
	for _, l := range s.Lines {
		if l.Quantity == 0 {
			continue
		}
		unitValue := l.UnitValue
		req.Items = append(req.Items, models.BatchSubmissionItem{
			ItemType:        l.ItemType,
			ItemID:          l.ItemID,
			ContainerItemID: l.ContainerItemID,
			Quantity:        l.Quantity,
			UnitValue:       &unitValue,
		})
	}
	return req, nil
}

func (s OnBehalfState) clone() OnBehalfState {
	c := s
	c.Lines = append([]EntryLine(nil), s.Lines...)
	c.Photos = append([]models.PhotoCapture(nil), s.Photos...)
	c.Tags = append([]models.PhotoTag(nil), s.Tags...)
	return c
}
