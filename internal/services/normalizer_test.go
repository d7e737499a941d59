package services

import (
	"testing"

	"wellen-backend/internal/models"

	"github.com/stretchr/testify/assert"
)

func f(v float64) *float64 { return &v }

func TestNormalizeFlatItems(t *testing.T) {
	w := &models.Wave{
		Displays: []models.Item{
			{ID: 1, Name: "Aufsteller A", TargetQuantity: 10, CurrentQuantity: 4, UnitValue: f(25)},
		},
		Kartonware: []models.Item{
			{ID: 2, Name: "Karton B", TargetQuantity: 20, CurrentQuantity: 7},
		},
	}

	lines := Normalize(w, nil)

	assert.Len(t, lines, 2)
	assert.Equal(t, models.ItemDisplay, lines[0].ItemType)
	assert.Equal(t, 4, lines[0].Quantity)
	assert.Equal(t, 10, lines[0].TargetQuantity)
	assert.Equal(t, 100.0, lines[0].Value())
	// Missing unit value falls back to 0, never an error.
	assert.Equal(t, 0.0, lines[1].UnitValue)
	assert.Equal(t, 0.0, lines[1].Value())
}

func TestNormalizeContainerProducts(t *testing.T) {
	containerID := 5
	w := &models.Wave{
		Paletten: []models.ContainerItem{
			{ID: containerID, Name: "Aktionspalette", Products: []models.Product{
				{ID: 101, Name: "Riegel", UnitValue: 1.5},
				{ID: 102, Name: "Tafel", UnitValue: 2.0},
			}},
		},
	}
	subs := []models.Submission{
		{ItemType: models.ItemPalette, ItemID: 101, ContainerItemID: &containerID, Quantity: 30},
		{ItemType: models.ItemPalette, ItemID: 101, ContainerItemID: &containerID, Quantity: 12},
		{ItemType: models.ItemPalette, ItemID: 102, ContainerItemID: &containerID, Quantity: 5},
	}

	lines := Normalize(w, subs)

	assert.Len(t, lines, 2)
	assert.Equal(t, 42, lines[0].Quantity)
	assert.Equal(t, 63.0, lines[0].Value())
	assert.Equal(t, 5, lines[1].Quantity)
	// Container products carry no own target.
	assert.Equal(t, 0, lines[0].TargetQuantity)
}

func TestNormalizeCanonicalOrder(t *testing.T) {
	w := &models.Wave{
		Einzelprodukte: []models.Item{{ID: 3, Name: "Einzel"}},
		Displays:       []models.Item{{ID: 1, Name: "Display"}},
		Schuetten: []models.ContainerItem{
			{ID: 2, Name: "Schütte", Products: []models.Product{{ID: 201, Name: "P"}}},
		},
	}

	lines := Normalize(w, nil)

	types := []models.ItemType{lines[0].ItemType, lines[1].ItemType, lines[2].ItemType}
	assert.Equal(t, []models.ItemType{models.ItemDisplay, models.ItemSchuette, models.ItemEinzelprodukt}, types)
}

func TestNormalizeNegativeQuantityClamped(t *testing.T) {
	w := &models.Wave{
		Displays: []models.Item{{ID: 1, Name: "A", CurrentQuantity: -3}},
	}

	lines := Normalize(w, nil)

	assert.Equal(t, 0, lines[0].Quantity)
}

func TestNormalizeNilWave(t *testing.T) {
	assert.Nil(t, Normalize(nil, nil))
}
