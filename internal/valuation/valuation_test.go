package valuation

import (
	"math/rand/v2"
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"

	"github.com/tropicaldog17/folio/internal/models"
)

func d(s string) decimal.Decimal {
	return decimal.RequireFromString(s)
}

func holding(qty, avg, last string) *models.Holding {
	h := &models.Holding{Symbol: "ACME", Quantity: d(qty)}
	if avg != "" {
		h.AveragePrice = models.Price(d(avg))
	}
	if last != "" {
		h.LastPrice = models.Price(d(last))
	}
	return h
}

func TestEffectivePrice(t *testing.T) {
	tests := []struct {
		name     string
		holding  *models.Holding
		expected string
		ok       bool
	}{
		{name: "last price wins", holding: holding("1", "50", "55"), expected: "55", ok: true},
		{name: "falls back to average", holding: holding("1", "50", ""), expected: "50", ok: true},
		{name: "no prices", holding: holding("1", "", ""), expected: "0", ok: false},
		{name: "nil holding", holding: nil, expected: "0", ok: false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			price, ok := EffectivePrice(tt.holding)
			assert.Equal(t, tt.ok, ok)
			assert.True(t, price.Equal(d(tt.expected)), "got %s", price)
		})
	}
}

func TestComputeTotal(t *testing.T) {
	tests := []struct {
		name     string
		holdings []*models.Holding
		expected string
	}{
		{name: "empty", holdings: nil, expected: "0"},
		{name: "average price only", holdings: []*models.Holding{holding("10", "50.00", "")}, expected: "500.00"},
		{name: "last price preferred", holdings: []*models.Holding{holding("10", "50.00", "55.00")}, expected: "550.00"},
		{
			name:     "unpriced holding contributes zero",
			holdings: []*models.Holding{holding("1000000", "", ""), holding("2", "1.50", "")},
			expected: "3.00",
		},
		{name: "nil entries ignored", holdings: []*models.Holding{nil, holding("1", "1", "")}, expected: "1"},
		{name: "round half up", holdings: []*models.Holding{holding("1", "0.125", "")}, expected: "0.13"},
		{name: "round down", holdings: []*models.Holding{holding("1", "0.124", "")}, expected: "0.12"},
		{
			// per-holding rounding would give 0.01 + 0.01 + 0.01 = 0.03
			name:     "rounds only the sum",
			holdings: []*models.Holding{holding("1", "0.005", ""), holding("1", "0.005", ""), holding("1", "0.005", "")},
			expected: "0.02",
		},
		{
			name:     "fractional quantities",
			holdings: []*models.Holding{holding("0.333", "3.01", ""), holding("5", "10.00", "")},
			expected: "51.00",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := ComputeTotal(tt.holdings)
			assert.True(t, got.Equal(d(tt.expected)), "expected %s, got %s", tt.expected, got)
			assert.LessOrEqual(t, -got.Exponent(), MoneyScale)
		})
	}
}

func TestComputeTotal_OrderInvariant(t *testing.T) {
	holdings := []*models.Holding{
		holding("3", "20.00", ""),
		holding("5", "10.00", "10.37"),
		holding("0.5", "", "99.99"),
		holding("7", "", ""),
		holding("1.25", "0.333", ""),
	}
	expected := ComputeTotal(holdings)

	r := rand.New(rand.NewPCG(1, 2))
	for i := 0; i < 20; i++ {
		shuffled := append([]*models.Holding(nil), holdings...)
		r.Shuffle(len(shuffled), func(a, b int) { shuffled[a], shuffled[b] = shuffled[b], shuffled[a] })
		assert.True(t, ComputeTotal(shuffled).Equal(expected))
	}
}

func TestPerturb(t *testing.T) {
	base := d("100.00")

	assert.True(t, Perturb(base, d("0.01")).Equal(d("101.00")))
	assert.True(t, Perturb(base, d("-0.01")).Equal(d("99.00")))
	assert.True(t, Perturb(base, decimal.Zero).Equal(base))
	assert.True(t, Perturb(base, d("0.5")).Equal(d("101.00")), "delta above bound is clamped")
	assert.True(t, Perturb(base, d("-0.5")).Equal(d("99.00")), "delta below bound is clamped")
	assert.True(t, Perturb(d("10.00"), d("0.0005")).Equal(d("10.01")), "10.005 rounds half up")
}
