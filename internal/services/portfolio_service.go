package services

import (
	"context"
	"fmt"
	"strings"

	"go.uber.org/zap"

	"github.com/tropicaldog17/folio/internal/auth"
	"github.com/tropicaldog17/folio/internal/errors"
	"github.com/tropicaldog17/folio/internal/models"
	"github.com/tropicaldog17/folio/internal/repositories"
)

type portfolioService struct {
	portfolios repositories.PortfolioRepository
	holdings   repositories.HoldingRepository
	revaluer   *Revaluer
	logger     *zap.Logger
}

// NewPortfolioService creates a new portfolio service
func NewPortfolioService(
	portfolios repositories.PortfolioRepository,
	holdings repositories.HoldingRepository,
	revaluer *Revaluer,
	logger *zap.Logger,
) PortfolioService {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &portfolioService{
		portfolios: portfolios,
		holdings:   holdings,
		revaluer:   revaluer,
		logger:     logger,
	}
}

// ListPortfolios returns every portfolio owned by owner
func (s *portfolioService) ListPortfolios(ctx context.Context, owner string) ([]*models.Portfolio, error) {
	if owner == "" {
		return nil, errors.ErrUnauthenticated
	}
	return s.portfolios.FindByOwner(ctx, owner)
}

// GetPortfolio returns one portfolio with its holdings
func (s *portfolioService) GetPortfolio(ctx context.Context, owner string, id uint) (*models.Portfolio, error) {
	return s.resolvePortfolio(ctx, owner, id)
}

// CreatePortfolio creates an empty portfolio for owner
func (s *portfolioService) CreatePortfolio(ctx context.Context, owner, name string) (*models.Portfolio, error) {
	if owner == "" {
		return nil, errors.ErrUnauthenticated
	}
	p := models.NewPortfolio(owner, name)
	if err := p.Validate(); err != nil {
		return nil, err
	}
	if err := s.portfolios.Create(ctx, p); err != nil {
		return nil, err
	}

	s.logger.Info("portfolio created", zap.Uint("portfolio_id", p.ID), zap.String("owner_id", owner))
	return p, nil
}

// UpdatePortfolio renames a portfolio; the total value is left untouched
func (s *portfolioService) UpdatePortfolio(ctx context.Context, owner string, id uint, name string) (*models.Portfolio, error) {
	if err := models.ValidatePortfolioName(name); err != nil {
		return nil, err
	}
	p, err := s.resolvePortfolio(ctx, owner, id)
	if err != nil {
		return nil, err
	}

	name = strings.TrimSpace(name)
	if err := s.portfolios.UpdateName(ctx, p.ID, name); err != nil {
		return nil, err
	}
	p.Name = name
	return p, nil
}

// DeletePortfolio deletes a portfolio together with its holdings
func (s *portfolioService) DeletePortfolio(ctx context.Context, owner string, id uint) error {
	p, err := s.resolvePortfolio(ctx, owner, id)
	if err != nil {
		return err
	}
	if err := s.portfolios.Delete(ctx, p.ID); err != nil {
		return err
	}

	s.logger.Info("portfolio deleted",
		zap.Uint("portfolio_id", p.ID),
		zap.Int("holdings_removed", len(p.Holdings)),
	)
	return nil
}

// AddHolding attaches a holding to a portfolio and revalues the portfolio
func (s *portfolioService) AddHolding(ctx context.Context, owner string, portfolioID uint, holding *models.Holding) (*models.Holding, error) {
	if holding == nil {
		return nil, &errors.ErrValidation{Field: "holding", Message: "holding is required"}
	}
	if err := holding.Validate(); err != nil {
		return nil, err
	}
	p, err := s.resolvePortfolio(ctx, owner, portfolioID)
	if err != nil {
		return nil, err
	}

	holding.ID = 0
	holding.PortfolioID = p.ID
	if err := s.holdings.Create(ctx, holding); err != nil {
		return nil, err
	}

	if _, err := s.revaluer.Revalue(ctx, p.ID); err != nil {
		return nil, fmt.Errorf("holding %d saved but revaluation failed: %w", holding.ID, err)
	}

	s.logger.Info("holding added",
		zap.Uint("portfolio_id", p.ID),
		zap.Uint("holding_id", holding.ID),
		zap.String("symbol", holding.Symbol),
	)
	return holding, nil
}

// RemoveHolding deletes a holding and revalues its portfolio
func (s *portfolioService) RemoveHolding(ctx context.Context, owner string, holdingID uint) error {
	if owner == "" {
		return errors.ErrUnauthenticated
	}
	holding, err := s.holdings.FindByID(ctx, holdingID)
	if err != nil {
		return err
	}
	p, err := s.resolvePortfolio(ctx, owner, holding.PortfolioID)
	if err != nil {
		return err
	}

	if err := s.holdings.Delete(ctx, holding.ID); err != nil {
		return err
	}
	if _, err := s.revaluer.Revalue(ctx, p.ID); err != nil {
		return fmt.Errorf("holding %d removed but revaluation failed: %w", holding.ID, err)
	}

	s.logger.Info("holding removed",
		zap.Uint("portfolio_id", p.ID),
		zap.Uint("holding_id", holding.ID),
	)
	return nil
}

// resolvePortfolio loads the portfolio and applies the ownership guard in one step.
func (s *portfolioService) resolvePortfolio(ctx context.Context, owner string, id uint) (*models.Portfolio, error) {
	if owner == "" {
		return nil, errors.ErrUnauthenticated
	}
	p, err := s.portfolios.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if err := auth.AssertOwner(p, owner); err != nil {
		s.logger.Warn("ownership check failed",
			zap.Uint("portfolio_id", id),
			zap.String("owner_id", owner),
		)
		return nil, err
	}
	return p, nil
}
