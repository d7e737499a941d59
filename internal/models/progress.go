package models

// NormalizedLine is the comparable unit every item shape reduces to: flat
// items map one-to-one, container items contribute one line per nested
// product with quantities taken from matching submissions.
type NormalizedLine struct {
	ItemID         int      `json:"item_id"`
	ItemType       ItemType `json:"item_type"`
	Name           string   `json:"name"`
	UnitValue      float64  `json:"unit_value"`
	Quantity       int      `json:"quantity"`
	TargetQuantity int      `json:"target_quantity"` // 0 for container products
}

// Value is the monetary worth of the line.
func (l NormalizedLine) Value() float64 {
	return float64(l.Quantity) * l.UnitValue
}

// ProgressReport is the evaluated goal progress of a wave.
//
// ProgressRatio depends on the goal type: achieved percentage (one decimal)
// for percentage goals, total monetary value for value goals. BarPercent is
// the distinct UI-facing ratio relative to the goal itself, capped at 100.
type ProgressReport struct {
	TotalQuantity int     `json:"total_quantity"`
	TotalValue    float64 `json:"total_value"`
	ProgressRatio float64 `json:"progress_ratio"`
	GoalMet       bool    `json:"goal_met"`
	BarPercent    float64 `json:"bar_percent"`
}

// GroupSummary is a derived grouping of submissions, keyed by actor or by
// Berlin calendar day. Never persisted.
type GroupSummary struct {
	GroupKey      string       `json:"group_key"`
	Label         string       `json:"label"`
	Entries       []Submission `json:"entries"`
	TotalQuantity int          `json:"total_quantity"`
	TotalValue    float64      `json:"total_value"`
}

// HasValueEntries reports whether any entry carries monetary value; group
// headers show a money total when true, a bare count otherwise.
func (g GroupSummary) HasValueEntries() bool {
	for _, e := range g.Entries {
		if e.Value() > 0 {
			return true
		}
	}
	return false
}

// WaveProgress is the full progress view-model of a wave.
type WaveProgress struct {
	Wave   *Wave            `json:"wave"`
	Lines  []NormalizedLine `json:"lines"`
	Report ProgressReport   `json:"report"`
}
