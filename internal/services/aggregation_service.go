package services

import (
	"sort"
	"strconv"

	"wellen-backend/internal/models"
	"wellen-backend/internal/timeutil"
)

// GroupByActor partitions submissions by actor identity, preserving the
// first-seen order of actors.
func GroupByActor(subs []models.Submission) []models.GroupSummary {
	index := map[string]int{}
	var groups []models.GroupSummary

	for _, s := range subs {
		key := strconv.Itoa(s.ActorID)
		i, ok := index[key]
		if !ok {
			i = len(groups)
			index[key] = i
			groups = append(groups, models.GroupSummary{GroupKey: key, Label: s.ActorName})
		}
		groups[i].Entries = append(groups[i].Entries, s)
		groups[i].TotalQuantity += s.Quantity
		groups[i].TotalValue += s.Value()
	}
	return groups
}

// GroupByDay partitions submissions by Berlin calendar day, most recent day
// first. Every submission lands in exactly one bucket.
func GroupByDay(subs []models.Submission) []models.GroupSummary {
	index := map[string]int{}
	var groups []models.GroupSummary

	for _, s := range subs {
		key := timeutil.DayKey(s.Timestamp)
		i, ok := index[key]
		if !ok {
			i = len(groups)
			index[key] = i
			groups = append(groups, models.GroupSummary{GroupKey: key, Label: key})
		}
		groups[i].Entries = append(groups[i].Entries, s)
		groups[i].TotalQuantity += s.Quantity
		groups[i].TotalValue += s.Value()
	}

	// Day keys are ISO dates, lexicographic order is chronological.
	sort.Slice(groups, func(a, b int) bool {
		return groups[a].GroupKey > groups[b].GroupKey
	})
	return groups
}

// BuildRows shapes submissions into displayed rows: flat submissions map
// one-to-one, container submissions of one batch collapse into a composite
// row owning its per-product constituent refs. The aggregate quantity and
// value of a composite row always equal the sum over its refs.
func BuildRows(subs []models.Submission) []models.SubmissionRow {
	index := map[string]int{}
	var rows []models.SubmissionRow

	for _, s := range subs {
		if !s.ItemType.IsContainer() || s.ContainerItemID == nil {
			rows = append(rows, models.SubmissionRow{
				RowID:        strconv.Itoa(s.ID),
				WaveID:       s.WaveID,
				ActorID:      s.ActorID,
				ActorName:    s.ActorName,
				LocationID:   s.LocationID,
				LocationName: s.LocationName,
				ItemType:     s.ItemType,
				ItemID:       s.ItemID,
				Quantity:     s.Quantity,
				Value:        s.Value(),
				Timestamp:    s.Timestamp,
				Refs: []models.ProductSubmissionRef{{
					SubmissionID: s.ID,
					Quantity:     s.Quantity,
					UnitValue:    s.UnitValue,
				}},
			})
			continue
		}

		key := s.BatchID + "/" + strconv.Itoa(*s.ContainerItemID)
		i, ok := index[key]
		if !ok {
			i = len(rows)
			index[key] = i
			rows = append(rows, models.SubmissionRow{
				RowID:        strconv.Itoa(s.ID),
				WaveID:       s.WaveID,
				ActorID:      s.ActorID,
				ActorName:    s.ActorName,
				LocationID:   s.LocationID,
				LocationName: s.LocationName,
				ItemType:     s.ItemType,
				ItemID:       *s.ContainerItemID,
				Timestamp:    s.Timestamp,
			})
		}
		rows[i].Quantity += s.Quantity
		rows[i].Value += s.Value()
		rows[i].Refs = append(rows[i].Refs, models.ProductSubmissionRef{
			SubmissionID: s.ID,
			ProductID:    s.ItemID,
			ProductName:  s.ItemName,
			Quantity:     s.Quantity,
			UnitValue:    s.UnitValue,
		})
	}
	return rows
}
