package models

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestFormatEUR(t *testing.T) {
	cases := []struct {
		in   float64
		want string
	}{
		{0, "0,00 €"},
		{1.5, "1,50 €"},
		{999.99, "999,99 €"},
		{1234.56, "1.234,56 €"},
		{1234567.89, "1.234.567,89 €"},
		{-42.1, "-42,10 €"},
		{0.005, "0,01 €"}, // rounds half up at cent precision
	}
	for _, c := range cases {
		assert.Equal(t, c.want, FormatEUR(c.in), "FormatEUR(%v)", c.in)
	}
}
