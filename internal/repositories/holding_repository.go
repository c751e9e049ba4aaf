package repositories

import (
	"context"
	"fmt"
	"time"

	"github.com/tropicaldog17/folio/internal/db"
	"github.com/tropicaldog17/folio/internal/errors"
	"github.com/tropicaldog17/folio/internal/models"
)

type holdingRepository struct {
	db *db.DB
}

// NewHoldingRepository creates a new holding repository
func NewHoldingRepository(database *db.DB) HoldingRepository {
	return &holdingRepository{db: database}
}

func (r *holdingRepository) Create(ctx context.Context, h *models.Holding) error {
	if h.PortfolioID == 0 {
		return &errors.ErrValidation{Field: "portfolio_id", Message: "holding must belong to a portfolio"}
	}
	if err := r.db.WithContext(ctx).Create(h).Error; err != nil {
		return storageError("failed to create holding", err)
	}
	return nil
}

func (r *holdingRepository) FindByID(ctx context.Context, id uint) (*models.Holding, error) {
	var h models.Holding
	if err := r.db.WithContext(ctx).First(&h, "id = ?", id).Error; err != nil {
		return nil, storageError(fmt.Sprintf("failed to get holding %d", id), err)
	}
	return &h, nil
}

func (r *holdingRepository) FindByPortfolio(ctx context.Context, portfolioID uint) ([]*models.Holding, error) {
	holdings := []*models.Holding{}
	err := r.db.WithContext(ctx).
		Where("portfolio_id = ?", portfolioID).
		Order("id ASC").
		Find(&holdings).Error
	if err != nil {
		return nil, storageError("failed to list holdings", err)
	}
	return holdings, nil
}

func (r *holdingRepository) FindAll(ctx context.Context) ([]*models.Holding, error) {
	var holdings []*models.Holding
	if err := r.db.WithContext(ctx).Order("id ASC").Find(&holdings).Error; err != nil {
		return nil, storageError("failed to list all holdings", err)
	}
	return holdings, nil
}

// SaveAll persists the last price of each holding. Every row commits on its own;
// a holding deleted in the meantime is silently skipped.
func (r *holdingRepository) SaveAll(ctx context.Context, holdings []*models.Holding) error {
	now := time.Now()
	for _, h := range holdings {
		err := r.db.WithContext(ctx).
			Model(&models.Holding{}).
			Where("id = ?", h.ID).
			Updates(map[string]interface{}{
				"last_price": h.LastPrice,
				"updated_at": now,
			}).Error
		if err != nil {
			return storageError(fmt.Sprintf("failed to save holding %d", h.ID), err)
		}
		h.UpdatedAt = now
	}
	return nil
}

func (r *holdingRepository) Delete(ctx context.Context, id uint) error {
	if err := r.db.WithContext(ctx).Delete(&models.Holding{}, id).Error; err != nil {
		return storageError("failed to delete holding", err)
	}
	return nil
}
