package wizard

import (
	"testing"
	"time"

	"wellen-backend/internal/models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func testLines() []EntryLine {
	containerID := 5
	return []EntryLine{
		{ItemType: models.ItemDisplay, ItemID: 1, Name: "Aufsteller", UnitValue: 25},
		{ItemType: models.ItemPalette, ItemID: 101, ContainerItemID: &containerID, Name: "Riegel", UnitValue: 1.5},
	}
}

func applyOB(t *testing.T, s OnBehalfState, events ...OnBehalfEvent) OnBehalfState {
	t.Helper()
	var err error
	for _, ev := range events {
		s, err = ApplyOnBehalf(s, ev)
		require.NoError(t, err)
	}
	return s
}

func atEntryStep(t *testing.T, photoOnly bool) OnBehalfState {
	t.Helper()
	var lines []EntryLine
	if !photoOnly {
		lines = testLines()
	}
	s := NewOnBehalf(1, photoOnly, lines, nil)
	return applyOB(t, s,
		SelectActor{ActorID: 1},
		NextOB{},
		SelectLocation{LocationID: 10},
		NextOB{},
	)
}

func TestStepGatesBlockForward(t *testing.T) {
	s := NewOnBehalf(1, false, testLines(), nil)

	_, err := ApplyOnBehalf(s, NextOB{})
	assert.Error(t, err)

	s = applyOB(t, s, SelectActor{ActorID: 1}, NextOB{})
	assert.Equal(t, OnBehalfStepLocation, s.Step)

	_, err = ApplyOnBehalf(s, NextOB{})
	assert.Error(t, err)
}

func TestEntryGateRequiresQuantity(t *testing.T) {
	s := atEntryStep(t, false)

	_, err := ApplyOnBehalf(s, NextOB{})
	assert.Error(t, err)

	s = applyOB(t, s, SetQuantity{LineIndex: 0, Quantity: 3}, NextOB{})
	assert.Equal(t, OnBehalfStepConfirm, s.Step)
}

func TestPhotoOnlyGateRequiresPhoto(t *testing.T) {
	s := atEntryStep(t, true)

	// Quantities do not exist on photo-only waves.
	_, err := ApplyOnBehalf(s, SetQuantity{LineIndex: 0, Quantity: 1})
	assert.Error(t, err)

	_, err = ApplyOnBehalf(s, NextOB{})
	assert.Error(t, err)

	s = applyOB(t, s,
		AddPhoto{Photo: models.PhotoCapture{URL: "https://cdn.example/1.jpg"}},
		NextOB{},
	)
	assert.Equal(t, OnBehalfStepConfirm, s.Step)
}

func TestQuantityClampsAtZero(t *testing.T) {
	s := atEntryStep(t, false)

	s = applyOB(t, s, SetQuantity{LineIndex: 0, Quantity: -5})
	assert.Equal(t, 0, s.Lines[0].Quantity)
}

func TestBackClearsReturnedToStep(t *testing.T) {
	s := atEntryStep(t, false)
	s = applyOB(t, s, SetQuantity{LineIndex: 0, Quantity: 3}, NextOB{})

	// Back from confirm clears the entry step.
	s = applyOB(t, s, BackOB{})
	assert.Equal(t, OnBehalfStepEntry, s.Step)
	assert.Equal(t, 0, s.TotalQuantity())

	// Back from entry clears the location selection.
	s = applyOB(t, s, BackOB{})
	assert.Equal(t, OnBehalfStepLocation, s.Step)
	assert.Equal(t, 0, s.LocationID)

	// Back from location clears the actor selection.
	s = applyOB(t, s, BackOB{})
	assert.Equal(t, OnBehalfStepActor, s.Step)
	assert.Equal(t, 0, s.ActorID)
}

func TestBackFromFirstStepCancels(t *testing.T) {
	s := NewOnBehalf(1, false, testLines(), nil)

	s = applyOB(t, s, BackOB{})
	assert.True(t, s.Cancelled)

	_, err := ApplyOnBehalf(s, SelectActor{ActorID: 1})
	assert.Error(t, err)
}

func TestMissingMandatoryTagsHint(t *testing.T) {
	tags := []models.PhotoTag{
		{Name: "Regal", Mandatory: true},
		{Name: "Kasse", Mandatory: true},
		{Name: "Außen", Mandatory: false},
	}
	s := NewOnBehalf(1, true, nil, tags)
	s.Step = OnBehalfStepEntry
	s = applyOB(t, s, AddPhoto{Photo: models.PhotoCapture{URL: "u", Tags: []string{"Kasse"}}})

	assert.Equal(t, []string{"Regal"}, s.MissingMandatoryTags())

	// The hint never blocks the gate.
	assert.NoError(t, s.Gate())
}

func TestBuildRequestSkipsZeroLines(t *testing.T) {
	s := atEntryStep(t, false)
	s = applyOB(t, s, SetQuantity{LineIndex: 1, Quantity: 12}, NextOB{})

	now := time.Date(2024, 6, 10, 9, 0, 0, 0, time.UTC)
	req, err := s.BuildRequest(now)
	require.NoError(t, err)

	assert.Equal(t, 1, req.ActorID)
	assert.Equal(t, 10, req.LocationID)
	require.Len(t, req.Items, 1)
	assert.Equal(t, 101, req.Items[0].ItemID)
	assert.Equal(t, 12, req.Items[0].Quantity)
	require.NotNil(t, req.Items[0].UnitValue)
	assert.Equal(t, 1.5, *req.Items[0].UnitValue)
	assert.Equal(t, now, req.Timestamp)
}

func TestBuildRequestBackdated(t *testing.T) {
	s := atEntryStep(t, false)
	s = applyOB(t, s, SetQuantity{LineIndex: 0, Quantity: 1}, NextOB{})

	backdate := time.Date(2024, 6, 1, 14, 0, 0, 0, time.UTC)
	s = applyOB(t, s, SetTimestamp{At: backdate})

	req, err := s.BuildRequest(time.Now())
	require.NoError(t, err)
	assert.Equal(t, backdate, req.Timestamp)
}

func TestBuildRequestOffConfirmStep(t *testing.T) {
	s := atEntryStep(t, false)

	_, err := s.BuildRequest(time.Now())
	assert.Error(t, err)
}
