package tools

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestCityCode(t *testing.T) {
	t.Parallel()

	tests := []struct {
		in   string
		want string
	}{
		{"Paris", "PAR"},
		{"NYC", "NYC"},
		{"ab", "AB"},
		{"", ""},
		{"münchen", "MÜN"},
	}

	for _, tt := range tests {
		assert.Equal(t, tt.want, cityCode(tt.in), "cityCode(%q)", tt.in)
	}
}

func TestTail(t *testing.T) {
	t.Parallel()

	assert.Equal(t, "8:30", tail("18:30", 4))
	assert.Equal(t, "123", tail("FL-NYCLAX123", 3))
	assert.Equal(t, "9", tail("9", 4))
	assert.Equal(t, "", tail("", 4))
}

func TestCapitalize(t *testing.T) {
	t.Parallel()

	tests := []struct {
		in   string
		want string
	}{
		{"deluxe", "Deluxe"},
		{"3-star", "3-star"},
		{"PREMIUM", "Premium"},
		{"", ""},
	}

	for _, tt := range tests {
		assert.Equal(t, tt.want, capitalize(tt.in), "capitalize(%q)", tt.in)
	}
}

func TestFormatAmount(t *testing.T) {
	t.Parallel()

	tests := []struct {
		in   float64
		want string
	}{
		{100.0, "100.0"},
		{249.99, "249.99"},
		{0, "0.0"},
		{-50, "-50.0"},
	}

	for _, tt := range tests {
		assert.Equal(t, tt.want, formatAmount(tt.in), "formatAmount(%v)", tt.in)
	}
}

func TestHashMod_Deterministic(t *testing.T) {
	t.Parallel()

	a := hashMod("vegetarian", 1000)
	b := hashMod("vegetarian", 1000)
	assert.Equal(t, a, b)
	assert.Less(t, a, uint64(1000))

	// Different inputs should not trivially collide
	assert.NotEqual(t, hashMod("FL-1,HT-1", 10000), hashMod("FL-1,HT-2", 10000))
}
