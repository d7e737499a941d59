package services

import (
	"wellen-backend/internal/models"
)

// Normalize reduces a wave's heterogeneous item catalog to comparable lines.
// Flat items map one-to-one with their own quantity and value; container
// items contribute one line per nested product with the quantity taken from
// matching submissions. Fails closed: a missing value or quantity becomes 0,
// never an error, so campaigns always render a number.
func Normalize(w *models.Wave, subs []models.Submission) []models.NormalizedLine {
	if w == nil {
		return nil
	}

	// Quantity sold per product, across all container submissions.
	productSold := map[int]int{}
	for _, s := range subs {
		if s.ItemType.IsContainer() {
			productSold[s.ItemID] += s.Quantity
		}
	}

	var lines []models.NormalizedLine
	for _, t := range models.CanonicalItemTypeOrder {
		if t.IsContainer() {
			for _, c := range w.ContainersOfType(t) {
				for _, p := range c.Products {
					lines = append(lines, models.NormalizedLine{
						ItemID:    p.ID,
						ItemType:  t,
						Name:      p.Name,
						UnitValue: p.UnitValue,
						Quantity:  productSold[p.ID],
					})
				}
			}
			continue
		}
		for _, it := range w.ItemsOfType(t) {
			unitValue := 0.0
			if it.UnitValue != nil {
				unitValue = *it.UnitValue
			}
			qty := it.CurrentQuantity
			if qty < 0 {
				qty = 0
			}
			lines = append(lines, models.NormalizedLine{
				ItemID:         it.ID,
				ItemType:       t,
				Name:           it.Name,
				UnitValue:      unitValue,
				Quantity:       qty,
				TargetQuantity: it.TargetQuantity,
			})
		}
	}
	return lines
}
