// Package valuation holds the pure pricing rules for portfolios: how a holding is priced,
// how a portfolio total is aggregated, and how a simulated price move is applied.
//
// Rounding happens only at the portfolio total and at a price update. Per-holding products
// are summed at full precision so totals do not drift.
package valuation

import (
	"github.com/shopspring/decimal"

	"github.com/tropicaldog17/folio/internal/models"
)

// MoneyScale is the number of fractional digits kept for totals and prices.
const MoneyScale = models.MoneyScale

// MaxMove bounds the simulated relative price change per run (1%).
var MaxMove = decimal.New(1, -2)

// EffectivePrice returns the last price if known, else the average price.
// The boolean is false when the holding has neither.
func EffectivePrice(h *models.Holding) (decimal.Decimal, bool) {
	if h == nil {
		return decimal.Zero, false
	}
	if h.LastPrice.Valid {
		return h.LastPrice.Decimal, true
	}
	if h.AveragePrice.Valid {
		return h.AveragePrice.Decimal, true
	}
	return decimal.Zero, false
}

// MarketValue is effective price times quantity, unrounded. Unpriced holdings are worth zero.
func MarketValue(h *models.Holding) decimal.Decimal {
	price, ok := EffectivePrice(h)
	if !ok {
		return decimal.Zero
	}
	return price.Mul(h.Quantity)
}

// ComputeTotal sums the market value of holdings and rounds half-up to cents.
func ComputeTotal(holdings []*models.Holding) decimal.Decimal {
	total := decimal.Zero
	for _, h := range holdings {
		total = total.Add(MarketValue(h))
	}
	return RoundMoney(total)
}

// RoundMoney rounds d to MoneyScale digits, half away from zero.
func RoundMoney(d decimal.Decimal) decimal.Decimal {
	return d.Round(MoneyScale)
}

// Perturb applies a relative move delta to base and rounds the result to cents.
// delta is clamped to [-MaxMove, MaxMove].
func Perturb(base, delta decimal.Decimal) decimal.Decimal {
	if delta.GreaterThan(MaxMove) {
		delta = MaxMove
	} else if delta.LessThan(MaxMove.Neg()) {
		delta = MaxMove.Neg()
	}
	return RoundMoney(base.Mul(decimal.NewFromInt(1).Add(delta)))
}
