package models

import (
	"encoding/json"
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/tropicaldog17/folio/internal/errors"
)

func TestNewPortfolio(t *testing.T) {
	p := NewPortfolio("u1", "  Tech  ")
	assert.Equal(t, "Tech", p.Name)
	assert.Equal(t, "u1", p.OwnerID)
	assert.True(t, p.TotalValue.IsZero())
	assert.Empty(t, p.Holdings)
	require.NoError(t, p.Validate())
}

func TestValidatePortfolioName(t *testing.T) {
	for _, name := range []string{"", "   ", "\t\n"} {
		err := ValidatePortfolioName(name)
		require.Error(t, err)
		assert.True(t, errors.IsValidation(err), "expected validation error for %q", name)
	}
	assert.NoError(t, ValidatePortfolioName("Retirement"))
}

func TestHolding_Validate(t *testing.T) {
	tests := []struct {
		name      string
		holding   Holding
		wantField string
	}{
		{
			name:    "valid with average price",
			holding: Holding{Symbol: " acme ", Quantity: decimal.NewFromInt(10), AveragePrice: Price(decimal.NewFromInt(50))},
		},
		{
			name:    "valid without prices",
			holding: Holding{Symbol: "ACME", Quantity: decimal.NewFromInt(3)},
		},
		{
			name:      "blank symbol",
			holding:   Holding{Symbol: "  ", Quantity: decimal.NewFromInt(1)},
			wantField: "symbol",
		},
		{
			name:      "negative quantity",
			holding:   Holding{Symbol: "ACME", Quantity: decimal.NewFromInt(-1)},
			wantField: "quantity",
		},
		{
			name:      "negative average price",
			holding:   Holding{Symbol: "ACME", Quantity: decimal.NewFromInt(1), AveragePrice: Price(decimal.NewFromInt(-5))},
			wantField: "average_price",
		},
		{
			name:      "negative last price",
			holding:   Holding{Symbol: "ACME", Quantity: decimal.NewFromInt(1), LastPrice: Price(decimal.NewFromInt(-5))},
			wantField: "last_price",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			h := tt.holding
			err := h.Validate()
			if tt.wantField == "" {
				require.NoError(t, err)
				assert.Equal(t, "ACME", h.Symbol)
				return
			}
			var verr *errors.ErrValidation
			require.ErrorAs(t, err, &verr)
			assert.Equal(t, tt.wantField, verr.Field)
		})
	}
}

func TestPortfolio_MarshalJSONFixedScale(t *testing.T) {
	cases := map[string]string{
		"500":    "500.00",
		"0":      "0.00",
		"501.8":  "501.80",
		"12.345": "12.35",
	}
	for in, want := range cases {
		p := NewPortfolio("u1", "Tech")
		p.ID = 3
		p.TotalValue = decimal.RequireFromString(in)

		b, err := json.Marshal(p)
		require.NoError(t, err)

		var raw map[string]interface{}
		require.NoError(t, json.Unmarshal(b, &raw))
		assert.Equal(t, want, raw["total_value"], "total %s", in)
		assert.Equal(t, "Tech", raw["name"])
		assert.Equal(t, float64(3), raw["id"])
		assert.Contains(t, raw, "holdings")
	}
}

func TestPortfolio_JSONRoundTripKeepsTotal(t *testing.T) {
	p := NewPortfolio("u1", "Tech")
	p.TotalValue = decimal.RequireFromString("550")

	b, err := json.Marshal([]*Portfolio{p})
	require.NoError(t, err)
	assert.Contains(t, string(b), `"total_value":"550.00"`)

	var back []Portfolio
	require.NoError(t, json.Unmarshal(b, &back))
	require.Len(t, back, 1)
	assert.True(t, back[0].TotalValue.Equal(p.TotalValue))
}
