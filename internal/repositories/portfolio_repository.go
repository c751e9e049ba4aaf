package repositories

import (
	"context"
	"fmt"

	"github.com/shopspring/decimal"
	"gorm.io/gorm"

	"github.com/tropicaldog17/folio/internal/db"
	"github.com/tropicaldog17/folio/internal/models"
)

type portfolioRepository struct {
	db *db.DB
}

// NewPortfolioRepository creates a new portfolio repository
func NewPortfolioRepository(database *db.DB) PortfolioRepository {
	return &portfolioRepository{db: database}
}

func orderedHoldings(tx *gorm.DB) *gorm.DB {
	return tx.Order("holdings.id ASC")
}

func (r *portfolioRepository) Create(ctx context.Context, p *models.Portfolio) error {
	if err := p.Validate(); err != nil {
		return err
	}
	if err := r.db.WithContext(ctx).Omit("Holdings").Create(p).Error; err != nil {
		return storageError("failed to create portfolio", err)
	}
	if p.Holdings == nil {
		p.Holdings = []*models.Holding{}
	}
	return nil
}

func (r *portfolioRepository) FindByID(ctx context.Context, id uint) (*models.Portfolio, error) {
	var p models.Portfolio
	err := r.db.WithContext(ctx).
		Preload("Holdings", orderedHoldings).
		First(&p, "id = ?", id).Error
	if err != nil {
		return nil, storageError(fmt.Sprintf("failed to get portfolio %d", id), err)
	}
	return &p, nil
}

func (r *portfolioRepository) FindByOwner(ctx context.Context, ownerID string) ([]*models.Portfolio, error) {
	portfolios := []*models.Portfolio{}
	err := r.db.WithContext(ctx).
		Preload("Holdings", orderedHoldings).
		Where("owner_id = ?", ownerID).
		Order("id ASC").
		Find(&portfolios).Error
	if err != nil {
		return nil, storageError("failed to list portfolios", err)
	}
	return portfolios, nil
}

func (r *portfolioRepository) FindAll(ctx context.Context) ([]*models.Portfolio, error) {
	var portfolios []*models.Portfolio
	if err := r.db.WithContext(ctx).Order("id ASC").Find(&portfolios).Error; err != nil {
		return nil, storageError("failed to list all portfolios", err)
	}
	return portfolios, nil
}

func (r *portfolioRepository) UpdateName(ctx context.Context, id uint, name string) error {
	err := r.db.WithContext(ctx).
		Model(&models.Portfolio{}).
		Where("id = ?", id).
		Update("name", name).Error
	if err != nil {
		return storageError("failed to rename portfolio", err)
	}
	return nil
}

// UpdateTotalValue writes only the total_value column so a concurrent rename is kept.
func (r *portfolioRepository) UpdateTotalValue(ctx context.Context, id uint, total decimal.Decimal) error {
	err := r.db.WithContext(ctx).
		Model(&models.Portfolio{}).
		Where("id = ?", id).
		Update("total_value", total).Error
	if err != nil {
		return storageError("failed to update portfolio total value", err)
	}
	return nil
}

// Delete removes the portfolio and all of its holdings in one transaction.
func (r *portfolioRepository) Delete(ctx context.Context, id uint) error {
	err := r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Where("portfolio_id = ?", id).Delete(&models.Holding{}).Error; err != nil {
			return err
		}
		return tx.Delete(&models.Portfolio{}, id).Error
	})
	if err != nil {
		return storageError("failed to delete portfolio", err)
	}
	return nil
}
