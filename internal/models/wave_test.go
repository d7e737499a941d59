package models

import (
	"testing"
	"time"

	"wellen-backend/internal/timeutil"

	"github.com/stretchr/testify/assert"
)

func date(y int, m time.Month, d int) time.Time {
	return time.Date(y, m, d, 0, 0, 0, 0, timeutil.Berlin)
}

func TestClassifyStatus(t *testing.T) {
	start := date(2024, 6, 10)
	end := date(2024, 6, 20)

	assert.Equal(t, WaveStatusUpcoming, ClassifyStatus(start, end, date(2024, 6, 9)))
	assert.Equal(t, WaveStatusActive, ClassifyStatus(start, end, date(2024, 6, 10)))
	assert.Equal(t, WaveStatusActive, ClassifyStatus(start, end, date(2024, 6, 15)))
	// The end date itself still counts as active until local midnight.
	assert.Equal(t, WaveStatusActive, ClassifyStatus(start, end, time.Date(2024, 6, 20, 23, 0, 0, 0, timeutil.Berlin)))
	assert.Equal(t, WaveStatusPast, ClassifyStatus(start, end, date(2024, 6, 21)))
}

func TestClassifyStatusEvaluatesInBerlin(t *testing.T) {
	start := date(2024, 6, 10)
	end := date(2024, 6, 20)

	// 22:30 UTC on the end date is already past local midnight.
	lateUTC := time.Date(2024, 6, 20, 22, 30, 0, 0, time.UTC)
	assert.Equal(t, WaveStatusPast, ClassifyStatus(start, end, lateUTC))
}

func TestDaysRemaining(t *testing.T) {
	end := date(2024, 6, 20)

	assert.Equal(t, 5, DaysRemaining(end, date(2024, 6, 15)))
	assert.Equal(t, 0, DaysRemaining(end, date(2024, 6, 20)))
	assert.Equal(t, 0, DaysRemaining(end, date(2024, 6, 25)))
}

func TestItemTypeTaxonomy(t *testing.T) {
	assert.True(t, ItemPalette.IsContainer())
	assert.True(t, ItemSchuette.IsContainer())
	assert.False(t, ItemDisplay.IsContainer())

	assert.True(t, ItemKartonware.Valid())
	assert.False(t, ItemType("regal").Valid())
}

func TestSelectedTypesCanonicalOrder(t *testing.T) {
	w := &Wave{
		Einzelprodukte: []Item{{ID: 1}},
		Displays:       []Item{{ID: 2}},
		Schuetten:      []ContainerItem{{ID: 3}},
	}

	assert.Equal(t, []ItemType{ItemDisplay, ItemSchuette, ItemEinzelprodukt}, w.SelectedTypes())
}
