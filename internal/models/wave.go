package models

import (
	"time"

	"wellen-backend/internal/timeutil"
)

// GoalType selects which goal field of a wave is meaningful. Exactly one of
// GoalPercentage/GoalValue is read, the other is ignored even if present.
type GoalType string

const (
	GoalPercentage GoalType = "percentage"
	GoalValue      GoalType = "value"
)

// ItemType is the closed taxonomy of sellable item shapes.
type ItemType string

const (
	ItemDisplay       ItemType = "display"
	ItemKartonware    ItemType = "kartonware"
	ItemPalette       ItemType = "palette"
	ItemSchuette      ItemType = "schuette"
	ItemEinzelprodukt ItemType = "einzelprodukt"
)

// CanonicalItemTypeOrder is the fixed ordering used for wizard steps and
// catalog rendering.
var CanonicalItemTypeOrder = []ItemType{
	ItemDisplay,
	ItemKartonware,
	ItemPalette,
	ItemSchuette,
	ItemEinzelprodukt,
}

// IsContainer reports whether the type holds nested products instead of
// carrying its own quantity/target.
func (t ItemType) IsContainer() bool {
	return t == ItemPalette || t == ItemSchuette
}

// Valid reports whether t is part of the known taxonomy.
func (t ItemType) Valid() bool {
	for _, k := range CanonicalItemTypeOrder {
		if t == k {
			return true
		}
	}
	return false
}

// Wave lifecycle statuses, computed from the date range against Berlin "now".
const (
	WaveStatusUpcoming = "upcoming"
	WaveStatusActive   = "active"
	WaveStatusPast     = "past"
)

type Wave struct {
	ID             int       `json:"id"`
	Name           string    `json:"name"`
	StartDate      time.Time `json:"start_date"`
	EndDate        time.Time `json:"end_date"`
	GoalType       GoalType  `json:"goal_type"`
	GoalPercentage float64   `json:"goal_percentage,omitempty"`
	GoalValue      float64   `json:"goal_value,omitempty"`
	PhotoOnly      bool      `json:"photo_only"` // progress tracked via photos, not quantities
	LocationIDs    []int     `json:"location_ids"`

	Schedules []ScheduleEntry `json:"schedules"`
	PhotoTags []PhotoTag      `json:"photo_tags,omitempty"` // predefined tags for photo-only waves

	Displays       []Item          `json:"displays"`
	Kartonware     []Item          `json:"kartonware"`
	Einzelprodukte []Item          `json:"einzelprodukte"`
	Paletten       []ContainerItem `json:"paletten"`
	Schuetten      []ContainerItem `json:"schuetten"`

	Status    string    `json:"status,omitempty"` // derived, never persisted
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

// Item is a flat, directly-targeted sellable unit (display stand, carton,
// single product). UnitValue is set only on value-goal waves.
type Item struct {
	ID              int      `json:"id"`
	Name            string   `json:"name"`
	TargetQuantity  int      `json:"target_quantity"`
	CurrentQuantity int      `json:"current_quantity"`
	UnitValue       *float64 `json:"unit_value,omitempty"`
}

// ContainerItem is a palette or bin holding distinct products. It has no
// quantity or target of its own; progress is expressed per nested product.
type ContainerItem struct {
	ID       int       `json:"id"`
	Name     string    `json:"name"`
	Size     string    `json:"size,omitempty"`
	Products []Product `json:"products"`
}

type Product struct {
	ID                int     `json:"id"`
	Name              string  `json:"name"`
	UnitValue         float64 `json:"unit_value"` // per sales unit (VE)
	UnitsPerContainer int     `json:"units_per_container"`
	EAN               string  `json:"ean,omitempty"`
}

// PhotoTag is a predefined tag photos of a photo-only wave may carry.
// Mandatory tags are surfaced as hints on the confirm step, not enforced.
type PhotoTag struct {
	Name      string `json:"name"`
	Mandatory bool   `json:"mandatory"`
}

// ScheduleEntry assigns weekdays of a calendar week to the wave.
type ScheduleEntry struct {
	Week     string   `json:"week"` // ISO week start, YYYY-MM-DD
	Weekdays []string `json:"weekdays"`
}

// WaveListItem is the list view-model with embedded counts and status.
type WaveListItem struct {
	ID              int       `json:"id"`
	Name            string    `json:"name"`
	StartDate       time.Time `json:"start_date"`
	EndDate         time.Time `json:"end_date"`
	GoalType        GoalType  `json:"goal_type"`
	PhotoOnly       bool      `json:"photo_only"`
	ItemCount       int       `json:"item_count"`
	SubmissionCount int       `json:"submission_count"`
	LocationCount   int       `json:"location_count"`
	Status          string    `json:"status"`
	DaysRemaining   int       `json:"days_remaining"`
}

// ClassifyStatus computes the lifecycle status of a date range at the given
// instant, evaluated in the campaign timezone.
func ClassifyStatus(start, end, now time.Time) string {
	n := timeutil.ToBerlin(now)
	switch {
	case n.Before(timeutil.StartOfDay(start)):
		return WaveStatusUpcoming
	case n.After(timeutil.EndOfDay(end)):
		return WaveStatusPast
	default:
		return WaveStatusActive
	}
}

// DaysRemaining counts whole local days from now until the wave end, 0 for
// past waves.
func DaysRemaining(end, now time.Time) int {
	return timeutil.DaysBetween(now, end)
}

// ItemsOfType returns the flat items of the given type, nil for container
// types.
func (w *Wave) ItemsOfType(t ItemType) []Item {
	switch t {
	case ItemDisplay:
		return w.Displays
	case ItemKartonware:
		return w.Kartonware
	case ItemEinzelprodukt:
		return w.Einzelprodukte
	}
	return nil
}

// ContainersOfType returns the container items of the given type.
func (w *Wave) ContainersOfType(t ItemType) []ContainerItem {
	switch t {
	case ItemPalette:
		return w.Paletten
	case ItemSchuette:
		return w.Schuetten
	}
	return nil
}

// SelectedTypes lists the item types the wave actually carries, in canonical
// order.
func (w *Wave) SelectedTypes() []ItemType {
	var types []ItemType
	for _, t := range CanonicalItemTypeOrder {
		if len(w.ItemsOfType(t)) > 0 || len(w.ContainersOfType(t)) > 0 {
			types = append(types, t)
		}
	}
	return types
}

type Actor struct {
	ID   int    `json:"id"`
	Name string `json:"name"`
}

type Location struct {
	ID      int    `json:"id"`
	Name    string `json:"name"`
	Address string `json:"address,omitempty"`
	ActorID int    `json:"actor_id,omitempty"` // owning field representative
}
