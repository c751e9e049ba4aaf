package services

import (
	"context"

	"github.com/tropicaldog17/folio/internal/models"
)

// PortfolioService defines the owner-scoped portfolio and holding operations.
// Every method takes the acting owner explicitly.
type PortfolioService interface {
	ListPortfolios(ctx context.Context, owner string) ([]*models.Portfolio, error)
	GetPortfolio(ctx context.Context, owner string, id uint) (*models.Portfolio, error)
	CreatePortfolio(ctx context.Context, owner, name string) (*models.Portfolio, error)
	UpdatePortfolio(ctx context.Context, owner string, id uint, name string) (*models.Portfolio, error)
	DeletePortfolio(ctx context.Context, owner string, id uint) error
	AddHolding(ctx context.Context, owner string, portfolioID uint, holding *models.Holding) (*models.Holding, error)
	RemoveHolding(ctx context.Context, owner string, holdingID uint) error
}

// PriceRefresher runs one pass of the price simulation.
type PriceRefresher interface {
	RefreshPrices(ctx context.Context) (*models.PriceRefreshResult, error)
}
