package services

import (
	"testing"
	"time"

	"wellen-backend/internal/models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestGroupByActorFirstSeenOrder(t *testing.T) {
	subs := []models.Submission{
		{ActorID: 2, ActorName: "Beck", Quantity: 3, UnitValue: 10},
		{ActorID: 1, ActorName: "Arndt", Quantity: 1, UnitValue: 5},
		{ActorID: 2, ActorName: "Beck", Quantity: 2, UnitValue: 10},
	}

	groups := GroupByActor(subs)

	require.Len(t, groups, 2)
	assert.Equal(t, "2", groups[0].GroupKey)
	assert.Equal(t, "Beck", groups[0].Label)
	assert.Equal(t, 5, groups[0].TotalQuantity)
	assert.Equal(t, 50.0, groups[0].TotalValue)
	assert.Equal(t, "1", groups[1].GroupKey)
	assert.Len(t, groups[0].Entries, 2)
}

func TestGroupByDayBerlinMidnight(t *testing.T) {
	// Two submissions four minutes apart in UTC land in different Berlin
	// days: 21:58Z is 23:58 CEST, 22:02Z is already 00:02 the next day.
	before := time.Date(2024, 6, 1, 21, 58, 0, 0, time.UTC)
	after := time.Date(2024, 6, 1, 22, 2, 0, 0, time.UTC)
	subs := []models.Submission{
		{ID: 1, Timestamp: before, Quantity: 1},
		{ID: 2, Timestamp: after, Quantity: 1},
	}

	groups := GroupByDay(subs)

	require.Len(t, groups, 2)
	assert.Equal(t, "2024-06-02", groups[0].GroupKey)
	assert.Equal(t, "2024-06-01", groups[1].GroupKey)
}

func TestGroupByDayMostRecentFirstAndPartition(t *testing.T) {
	day := func(d int) time.Time { return time.Date(2024, 6, d, 10, 0, 0, 0, time.UTC) }
	subs := []models.Submission{
		{ID: 1, Timestamp: day(3)},
		{ID: 2, Timestamp: day(5)},
		{ID: 3, Timestamp: day(3)},
		{ID: 4, Timestamp: day(4)},
	}

	groups := GroupByDay(subs)

	require.Len(t, groups, 3)
	assert.Equal(t, "2024-06-05", groups[0].GroupKey)
	assert.Equal(t, "2024-06-04", groups[1].GroupKey)
	assert.Equal(t, "2024-06-03", groups[2].GroupKey)

	// Every submission lands in exactly one bucket.
	total := 0
	for _, g := range groups {
		total += len(g.Entries)
	}
	assert.Equal(t, len(subs), total)
}

func TestBuildRowsFlatSubmissions(t *testing.T) {
	subs := []models.Submission{
		{ID: 7, WaveID: 1, ItemType: models.ItemDisplay, ItemID: 3, Quantity: 4, UnitValue: 25},
	}

	rows := BuildRows(subs)

	require.Len(t, rows, 1)
	assert.Equal(t, "7", rows[0].RowID)
	assert.Equal(t, 4, rows[0].Quantity)
	assert.Equal(t, 100.0, rows[0].Value)
	assert.False(t, rows[0].Composite())
}

func TestBuildRowsCompositeAggregation(t *testing.T) {
	containerID := 9
	subs := []models.Submission{
		{ID: 1, BatchID: "b1", ItemType: models.ItemPalette, ItemID: 101, ItemName: "Riegel",
			ContainerItemID: &containerID, Quantity: 10, UnitValue: 1.5},
		{ID: 2, BatchID: "b1", ItemType: models.ItemPalette, ItemID: 102, ItemName: "Tafel",
			ContainerItemID: &containerID, Quantity: 4, UnitValue: 2},
		{ID: 3, BatchID: "b2", ItemType: models.ItemPalette, ItemID: 101, ItemName: "Riegel",
			ContainerItemID: &containerID, Quantity: 1, UnitValue: 1.5},
	}

	rows := BuildRows(subs)

	// Same batch folds into one composite row, a second batch stays separate.
	require.Len(t, rows, 2)
	composite := rows[0]
	assert.True(t, composite.Composite())
	assert.Equal(t, containerID, composite.ItemID)
	assert.Equal(t, 14, composite.Quantity)
	assert.Equal(t, 23.0, composite.Value)
	require.Len(t, composite.Refs, 2)
	assert.Equal(t, "Riegel", composite.Refs[0].ProductName)

	// Aggregate always equals the sum over refs.
	sum := 0
	for _, ref := range composite.Refs {
		sum += ref.Quantity
	}
	assert.Equal(t, composite.Quantity, sum)

	assert.False(t, rows[1].Composite())
}
