package models

import (
	"encoding/json"
	"strings"
	"time"

	"github.com/shopspring/decimal"

	"github.com/tropicaldog17/folio/internal/errors"
)

// MoneyScale is the number of fractional digits kept for totals and prices.
const MoneyScale int32 = 2

// Portfolio is a named, owner-scoped collection of holdings with a derived total value.
type Portfolio struct {
	ID         uint            `json:"id" gorm:"primaryKey;column:id;autoIncrement"`
	Name       string          `json:"name" gorm:"column:name;type:varchar(255);not null"`
	OwnerID    string          `json:"owner_id" gorm:"column:owner_id;type:varchar(255);not null;index"`
	TotalValue decimal.Decimal `json:"total_value" gorm:"column:total_value;type:numeric(20,2);not null;default:0"`
	Holdings   []*Holding      `json:"holdings" gorm:"foreignKey:PortfolioID;constraint:OnDelete:CASCADE"`
	CreatedAt  time.Time       `json:"created_at" gorm:"column:created_at;autoCreateTime"`
	UpdatedAt  time.Time       `json:"updated_at" gorm:"column:updated_at;autoUpdateTime"`
}

// TableName returns the table name for the Portfolio model
func (Portfolio) TableName() string {
	return "portfolios"
}

// MarshalJSON renders total_value at a fixed scale of MoneyScale digits ("500.00").
func (p Portfolio) MarshalJSON() ([]byte, error) {
	type portfolioJSON Portfolio
	return json.Marshal(struct {
		portfolioJSON
		TotalValue string `json:"total_value"`
	}{
		portfolioJSON: portfolioJSON(p),
		TotalValue:    p.TotalValue.StringFixed(MoneyScale),
	})
}

// NewPortfolio returns an empty portfolio owned by ownerID.
func NewPortfolio(ownerID, name string) *Portfolio {
	return &Portfolio{
		Name:       strings.TrimSpace(name),
		OwnerID:    ownerID,
		TotalValue: decimal.Zero,
		Holdings:   []*Holding{},
	}
}

// Validate checks the portfolio name.
func (p *Portfolio) Validate() error {
	return ValidatePortfolioName(p.Name)
}

// ValidatePortfolioName rejects blank names.
func ValidatePortfolioName(name string) error {
	if strings.TrimSpace(name) == "" {
		return &errors.ErrValidation{Field: "name", Message: "name is required"}
	}
	return nil
}

// Holding is a position in a single symbol within a portfolio.
type Holding struct {
	ID           uint                `json:"id" gorm:"primaryKey;column:id;autoIncrement"`
	PortfolioID  uint                `json:"portfolio_id" gorm:"column:portfolio_id;not null;index"`
	Symbol       string              `json:"symbol" gorm:"column:symbol;type:varchar(32);not null"`
	Quantity     decimal.Decimal     `json:"quantity" gorm:"column:quantity;type:numeric(30,10);not null;default:0"`
	AveragePrice decimal.NullDecimal `json:"average_price" gorm:"column:average_price;type:numeric(30,10)"`
	LastPrice    decimal.NullDecimal `json:"last_price" gorm:"column:last_price;type:numeric(30,10)"`
	CreatedAt    time.Time           `json:"created_at" gorm:"column:created_at;autoCreateTime"`
	UpdatedAt    time.Time           `json:"updated_at" gorm:"column:updated_at;autoUpdateTime"`
}

// TableName returns the table name for the Holding model
func (Holding) TableName() string {
	return "holdings"
}

// Validate normalizes the symbol and checks the numeric fields
func (h *Holding) Validate() error {
	h.Symbol = strings.ToUpper(strings.TrimSpace(h.Symbol))
	if h.Symbol == "" {
		return &errors.ErrValidation{Field: "symbol", Message: "symbol is required"}
	}
	if h.Quantity.IsNegative() {
		return &errors.ErrValidation{Field: "quantity", Message: "quantity cannot be negative"}
	}
	if h.AveragePrice.Valid && h.AveragePrice.Decimal.IsNegative() {
		return &errors.ErrValidation{Field: "average_price", Message: "average price cannot be negative"}
	}
	if h.LastPrice.Valid && h.LastPrice.Decimal.IsNegative() {
		return &errors.ErrValidation{Field: "last_price", Message: "last price cannot be negative"}
	}
	return nil
}

// Price wraps d as a present price.
func Price(d decimal.Decimal) decimal.NullDecimal {
	return decimal.NullDecimal{Decimal: d, Valid: true}
}

// PriceRefreshResult summarizes one price simulation run.
type PriceRefreshResult struct {
	HoldingsUpdated    int           `json:"holdings_updated"`
	HoldingsSkipped    int           `json:"holdings_skipped"`
	PortfoliosRevalued int           `json:"portfolios_revalued"`
	PortfoliosFailed   int           `json:"portfolios_failed"`
	StartedAt          time.Time     `json:"started_at"`
	Duration           time.Duration `json:"duration"`
}
