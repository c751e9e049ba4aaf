package repositories

import (
	"context"
	stderrors "errors"
	"fmt"

	"github.com/shopspring/decimal"
	"gorm.io/gorm"

	"github.com/tropicaldog17/folio/internal/errors"
	"github.com/tropicaldog17/folio/internal/models"
)

// PortfolioRepository defines the storage operations for portfolios
type PortfolioRepository interface {
	Create(ctx context.Context, p *models.Portfolio) error
	FindByID(ctx context.Context, id uint) (*models.Portfolio, error)
	FindByOwner(ctx context.Context, ownerID string) ([]*models.Portfolio, error)
	FindAll(ctx context.Context) ([]*models.Portfolio, error)
	UpdateName(ctx context.Context, id uint, name string) error
	UpdateTotalValue(ctx context.Context, id uint, total decimal.Decimal) error
	Delete(ctx context.Context, id uint) error
}

// HoldingRepository defines the storage operations for holdings
type HoldingRepository interface {
	Create(ctx context.Context, h *models.Holding) error
	FindByID(ctx context.Context, id uint) (*models.Holding, error)
	FindByPortfolio(ctx context.Context, portfolioID uint) ([]*models.Holding, error)
	FindAll(ctx context.Context) ([]*models.Holding, error)
	SaveAll(ctx context.Context, holdings []*models.Holding) error
	Delete(ctx context.Context, id uint) error
}

// storageError maps gorm failures onto the error taxonomy: a missing record becomes
// ErrNotFound, everything else ErrStorageUnavailable with the cause attached.
func storageError(op string, err error) error {
	if stderrors.Is(err, gorm.ErrRecordNotFound) {
		return fmt.Errorf("%s: %w", op, errors.ErrNotFound)
	}
	return fmt.Errorf("%s: %w: %w", op, errors.ErrStorageUnavailable, err)
}
