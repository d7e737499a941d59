package wizard

import (
	"errors"
	"fmt"

	"wellen-backend/internal/models"
	"wellen-backend/internal/timeutil"
)

// StepKind identifies a wave authoring step.
type StepKind string

const (
	StepTypeSelection StepKind = "type-selection"
	StepMetadata      StepKind = "wave-metadata"
	StepItems         StepKind = "items"
	StepScheduling    StepKind = "scheduling"
)

// Step is one entry of the computed step sequence. ItemType is set only for
// StepItems steps.
type Step struct {
	Kind     StepKind        `json:"kind"`
	ItemType models.ItemType `json:"item_type,omitempty"`
}

// AuthoringSteps computes the step sequence for the selected item types:
// type selection, metadata, one items step per selected type in canonical
// order, scheduling. Total count = 2 + len(selected) + 1.
func AuthoringSteps(selected []models.ItemType) []Step {
	steps := []Step{{Kind: StepTypeSelection}, {Kind: StepMetadata}}
	for _, t := range models.CanonicalItemTypeOrder {
		for _, s := range selected {
			if s == t {
				steps = append(steps, Step{Kind: StepItems, ItemType: t})
				break
			}
		}
	}
	return append(steps, Step{Kind: StepScheduling})
}

// WaveDraft accumulates the authored wave across steps. Dates stay strings
// until Finish so partially-entered metadata never fails parsing.
type WaveDraft struct {
	Name           string                                 `json:"name"`
	StartDate      string                                 `json:"start_date"`
	EndDate        string                                 `json:"end_date"`
	GoalType       models.GoalType                        `json:"goal_type"`
	GoalPercentage float64                                `json:"goal_percentage"`
	GoalValue      float64                                `json:"goal_value"`
	PhotoOnly      bool                                   `json:"photo_only"`
	LocationIDs    []int                                  `json:"location_ids"`
	Items          map[models.ItemType][]models.Item          `json:"items"`
	Containers     map[models.ItemType][]models.ContainerItem `json:"containers"`
	Schedules      []models.ScheduleEntry                 `json:"schedules"`
}

// AuthoringState is the wave authoring machine. The step sequence is stored
// as data, recomputed only when the type selection changes.
type AuthoringState struct {
	WaveID        int               `json:"wave_id"` // 0 when creating
	EditMode      bool              `json:"edit_mode"`
	SelectedTypes []models.ItemType `json:"selected_types"`
	Steps         []Step            `json:"steps"`
	Index         int               `json:"index"`
	Draft         WaveDraft         `json:"draft"`
}

// NewAuthoring starts a fresh authoring flow at the type selection step.
func NewAuthoring() AuthoringState {
	return AuthoringState{
		Steps: AuthoringSteps(nil),
		Draft: WaveDraft{
			Items:      map[models.ItemType][]models.Item{},
			Containers: map[models.ItemType][]models.ContainerItem{},
		},
	}
}

// NewAuthoringEdit starts an editing flow for an existing wave: all fields
// prefilled, type selection skipped since types are immutable once items
// exist.
func NewAuthoringEdit(w *models.Wave) AuthoringState {
	draft := WaveDraft{
		Name:           w.Name,
		StartDate:      w.StartDate.In(timeutil.Berlin).Format(timeutil.DateLayout),
		EndDate:        w.EndDate.In(timeutil.Berlin).Format(timeutil.DateLayout),
		GoalType:       w.GoalType,
		GoalPercentage: w.GoalPercentage,
		GoalValue:      w.GoalValue,
		PhotoOnly:      w.PhotoOnly,
		LocationIDs:    append([]int(nil), w.LocationIDs...),
		Items:          map[models.ItemType][]models.Item{},
		Containers:     map[models.ItemType][]models.ContainerItem{},
		Schedules:      append([]models.ScheduleEntry(nil), w.Schedules...),
	}
	for _, t := range []models.ItemType{models.ItemDisplay, models.ItemKartonware, models.ItemEinzelprodukt} {
		if items := w.ItemsOfType(t); len(items) > 0 {
			draft.Items[t] = append([]models.Item(nil), items...)
		}
	}
	for _, t := range []models.ItemType{models.ItemPalette, models.ItemSchuette} {
		if containers := w.ContainersOfType(t); len(containers) > 0 {
			draft.Containers[t] = append([]models.ContainerItem(nil), containers...)
		}
	}

	selected := w.SelectedTypes()
	return AuthoringState{
		WaveID:        w.ID,
		EditMode:      true,
		SelectedTypes: selected,
		Steps:         AuthoringSteps(selected),
		Index:         1, // jump directly to metadata
		Draft:         draft,
	}
}

// Current returns the step the machine is on.
func (s AuthoringState) Current() Step {
	return s.Steps[s.Index]
}

// AtFinalStep reports whether the machine sits on the scheduling step.
func (s AuthoringState) AtFinalStep() bool {
	return s.Index == len(s.Steps)-1
}

// AuthoringEvent is the tagged union of authoring inputs.
type AuthoringEvent interface{ authoringEvent() }

type SelectTypes struct{ Types []models.ItemType }

type SetMetadata struct {
	Name           string
	StartDate      string
	EndDate        string
	GoalType       models.GoalType
	GoalPercentage float64
	GoalValue      float64
	PhotoOnly      bool
	LocationIDs    []int
}

type AddItem struct {
	Type models.ItemType
	Item models.Item
}

type RemoveItem struct {
	Type   models.ItemType
	ItemID int
}

type AddContainer struct {
	Type      models.ItemType
	Container models.ContainerItem
}

type RemoveContainer struct {
	Type        models.ItemType
	ContainerID int
}

type AddSchedule struct{ Entry models.ScheduleEntry }

type RemoveSchedule struct{ Index int }

type Next struct{}

type Back struct{}

type Cancel struct{}

func (SelectTypes) authoringEvent()     {}
func (SetMetadata) authoringEvent()     {}
func (AddItem) authoringEvent()         {}
func (RemoveItem) authoringEvent()      {}
func (AddContainer) authoringEvent()    {}
func (RemoveContainer) authoringEvent() {}
func (AddSchedule) authoringEvent()     {}
func (RemoveSchedule) authoringEvent()  {}
func (Next) authoringEvent()            {}
func (Back) authoringEvent()            {}
func (Cancel) authoringEvent()          {}

// ApplyAuthoring advances the machine: (state, event) -> next state. The
// input state is never mutated.
func ApplyAuthoring(s AuthoringState, ev AuthoringEvent) (AuthoringState, error) {
	s = s.clone()

	switch e := ev.(type) {
	case SelectTypes:
		if s.Current().Kind != StepTypeSelection {
			return s, errors.New("type selection is only available on the first step")
		}
		if s.EditMode {
			return s, errors.New("item types are immutable when editing a wave")
		}
		for _, t := range e.Types {
			if !t.Valid() {
				return s, fmt.Errorf("unknown item type %q", t)
			}
		}
		s.SelectedTypes = append([]models.ItemType(nil), e.Types...)
		s.Steps = AuthoringSteps(s.SelectedTypes)
		s.pruneDeselected()
		return s, nil

	case SetMetadata:
		s.Draft.Name = e.Name
		s.Draft.StartDate = e.StartDate
		s.Draft.EndDate = e.EndDate
		s.Draft.GoalType = e.GoalType
		s.Draft.GoalPercentage = e.GoalPercentage
		s.Draft.GoalValue = e.GoalValue
		s.Draft.PhotoOnly = e.PhotoOnly
		s.Draft.LocationIDs = append([]int(nil), e.LocationIDs...)
		return s, nil

	case AddItem:
		if e.Type.IsContainer() {
			return s, fmt.Errorf("%s items carry nested products, use AddContainer", e.Type)
		}
		if !e.Type.Valid() {
			return s, fmt.Errorf("unknown item type %q", e.Type)
		}
		s.Draft.Items[e.Type] = append(s.Draft.Items[e.Type], e.Item)
		return s, nil

	case RemoveItem:
		items := s.Draft.Items[e.Type]
		for i, it := range items {
			if it.ID == e.ItemID {
				s.Draft.Items[e.Type] = append(items[:i:i], items[i+1:]...)
				break
			}
		}
		return s, nil

	case AddContainer:
		if !e.Type.IsContainer() {
			return s, fmt.Errorf("%s is not a container type", e.Type)
		}
		if len(e.Container.Products) == 0 {
			return s, errors.New("a container needs at least one product")
		}
		s.Draft.Containers[e.Type] = append(s.Draft.Containers[e.Type], e.Container)
		return s, nil

	case RemoveContainer:
		containers := s.Draft.Containers[e.Type]
		for i, c := range containers {
			if c.ID == e.ContainerID {
				s.Draft.Containers[e.Type] = append(containers[:i:i], containers[i+1:]...)
				break
			}
		}
		return s, nil

	case AddSchedule:
		if e.Entry.Week == "" || len(e.Entry.Weekdays) == 0 {
			return s, errors.New("a schedule entry needs a week and at least one weekday")
		}
		s.Draft.Schedules = append(s.Draft.Schedules, e.Entry)
		return s, nil

	case RemoveSchedule:
		if e.Index >= 0 && e.Index < len(s.Draft.Schedules) {
			s.Draft.Schedules = append(s.Draft.Schedules[:e.Index:e.Index], s.Draft.Schedules[e.Index+1:]...)
		}
		return s, nil

	case Next:
		if err := s.Gate(); err != nil {
			return s, err
		}
		if s.AtFinalStep() {
			return s, errors.New("already at the final step")
		}
		s.Index++
		return s, nil

	case Back:
		// Back never discards entered data. Editing floors at metadata since
		// type selection is immutable.
		floor := 0
		if s.EditMode {
			floor = 1
		}
		if s.Index > floor {
			s.Index--
		}
		return s, nil

	case Cancel:
		// Deliberate full reset, not a partial rollback.
		return NewAuthoring(), nil
	}

	return s, fmt.Errorf("unhandled authoring event %T", ev)
}

// Gate validates the current step, blocking Next (and Finish on the final
// step) until it passes.
func (s AuthoringState) Gate() error {
	switch step := s.Current(); step.Kind {
	case StepTypeSelection:
		if len(s.SelectedTypes) == 0 {
			return errors.New("select at least one item type")
		}
	case StepMetadata:
		if s.Draft.Name == "" || s.Draft.StartDate == "" || s.Draft.EndDate == "" {
			return errors.New("name, start date and end date are required")
		}
		switch s.Draft.GoalType {
		case models.GoalPercentage:
			if s.Draft.GoalPercentage <= 0 {
				return errors.New("a percentage goal is required")
			}
		case models.GoalValue:
			if s.Draft.GoalValue <= 0 {
				return errors.New("a value goal is required")
			}
		default:
			return errors.New("goal type must be percentage or value")
		}
	case StepItems:
		if step.ItemType.IsContainer() {
			if len(s.Draft.Containers[step.ItemType]) == 0 {
				return fmt.Errorf("add at least one %s", step.ItemType)
			}
		} else if len(s.Draft.Items[step.ItemType]) == 0 {
			return fmt.Errorf("add at least one %s item", step.ItemType)
		}
	case StepScheduling:
		if len(s.Draft.Schedules) == 0 {
			return errors.New("add at least one schedule entry")
		}
	}
	return nil
}

// BuildWave converts the finished draft into the outbound wave payload.
// Valid only when the machine sits on the final step and its gate passes.
func (s AuthoringState) BuildWave() (*models.Wave, error) {
	if !s.AtFinalStep() {
		return nil, errors.New("wizard has not reached the scheduling step")
	}
	if err := s.Gate(); err != nil {
		return nil, err
	}

	start, err := timeutil.ParseInBerlin(timeutil.DateLayout, s.Draft.StartDate)
	if err != nil {
		return nil, fmt.Errorf("invalid start date: %w", err)
	}
	end, err := timeutil.ParseInBerlin(timeutil.DateLayout, s.Draft.EndDate)
	if err != nil {
		return nil, fmt.Errorf("invalid end date: %w", err)
	}
	if end.Before(start) {
		return nil, errors.New("end date lies before start date")
	}

	w := &models.Wave{
		ID:             s.WaveID,
		Name:           s.Draft.Name,
		StartDate:      start,
		EndDate:        end,
		GoalType:       s.Draft.GoalType,
		GoalPercentage: s.Draft.GoalPercentage,
		GoalValue:      s.Draft.GoalValue,
		PhotoOnly:      s.Draft.PhotoOnly,
		LocationIDs:    append([]int(nil), s.Draft.LocationIDs...),
		Schedules:      append([]models.ScheduleEntry(nil), s.Draft.Schedules...),
		Displays:       s.Draft.Items[models.ItemDisplay],
		Kartonware:     s.Draft.Items[models.ItemKartonware],
		Einzelprodukte: s.Draft.Items[models.ItemEinzelprodukt],
		Paletten:       s.Draft.Containers[models.ItemPalette],
		Schuetten:      s.Draft.Containers[models.ItemSchuette],
	}
	return w, nil
}

func (s AuthoringState) clone() AuthoringState {
	c := s
	c.SelectedTypes = append([]models.ItemType(nil), s.SelectedTypes...)
	c.Steps = append([]Step(nil), s.Steps...)
	c.Draft.LocationIDs = append([]int(nil), s.Draft.LocationIDs...)
	c.Draft.Schedules = append([]models.ScheduleEntry(nil), s.Draft.Schedules...)
	c.Draft.Items = map[models.ItemType][]models.Item{}
	for t, items := range s.Draft.Items {
		c.Draft.Items[t] = append([]models.Item(nil), items...)
	}
	c.Draft.Containers = map[models.ItemType][]models.ContainerItem{}
	for t, containers := range s.Draft.Containers {
		c.Draft.Containers[t] = append([]models.ContainerItem(nil), containers...)
	}
	return c
}

func (s *AuthoringState) pruneDeselected() {
	selected := map[models.ItemType]bool{}
	for _, t := range s.SelectedTypes {
		selected[t] = true
	}
	for t := range s.Draft.Items {
		if !selected[t] {
			delete(s.Draft.Items, t)
		}
	}
	for t := range s.Draft.Containers {
		if !selected[t] {
			delete(s.Draft.Containers, t)
		}
	}
	if s.Index >= len(s.Steps) {
		s.Index = len(s.Steps) - 1
	}
}
