package models

import (
	"fmt"
	"math"
	"strings"
)

// FormatEUR renders a monetary value for display in the fixed German locale:
// two decimals, dot as thousands separator, comma as decimal separator.
// Presentation only; stored and transmitted values stay plain numbers.
func FormatEUR(v float64) string {
	neg := v < 0
	cents := int64(math.Round(math.Abs(v) * 100))
	whole := cents / 100
	frac := cents % 100

	digits := fmt.Sprintf("%d", whole)
	var b strings.Builder
	for i, d := range digits {
		if i > 0 && (len(digits)-i)%3 == 0 {
			b.WriteByte('.')
		}
		b.WriteRune(d)
	}

	sign := ""
	if neg {
		sign = "-"
	}
	return fmt.Sprintf("%s%s,%02d €", sign, b.String(), frac)
}
