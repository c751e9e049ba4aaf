package services

import (
	"context"
	"fmt"
	"sync"

	"github.com/shopspring/decimal"
	"go.uber.org/zap"

	"github.com/tropicaldog17/folio/internal/repositories"
	"github.com/tropicaldog17/folio/internal/valuation"
)

// Revaluer recomputes and persists a portfolio's total value from the holdings
// currently in storage. Recomputations of the same portfolio are serialized so the
// last writer always read every holding committed before it started.
type Revaluer struct {
	portfolios repositories.PortfolioRepository
	holdings   repositories.HoldingRepository
	logger     *zap.Logger

	mu    sync.Mutex
	locks map[uint]*portfolioLock
}

type portfolioLock struct {
	sync.Mutex
	refs int
}

// NewRevaluer creates a new revaluer
func NewRevaluer(portfolios repositories.PortfolioRepository, holdings repositories.HoldingRepository, logger *zap.Logger) *Revaluer {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Revaluer{
		portfolios: portfolios,
		holdings:   holdings,
		logger:     logger,
		locks:      make(map[uint]*portfolioLock),
	}
}

// Revalue reads the holdings of portfolioID, computes the total and writes it back.
func (r *Revaluer) Revalue(ctx context.Context, portfolioID uint) (decimal.Decimal, error) {
	unlock := r.lock(portfolioID)
	defer unlock()

	holdings, err := r.holdings.FindByPortfolio(ctx, portfolioID)
	if err != nil {
		return decimal.Zero, fmt.Errorf("failed to load holdings for portfolio %d: %w", portfolioID, err)
	}

	total := valuation.ComputeTotal(holdings)
	if err := r.portfolios.UpdateTotalValue(ctx, portfolioID, total); err != nil {
		return decimal.Zero, err
	}

	r.logger.Debug("portfolio revalued",
		zap.Uint("portfolio_id", portfolioID),
		zap.Int("holdings", len(holdings)),
		zap.String("total_value", total.StringFixed(valuation.MoneyScale)),
	)
	return total, nil
}

func (r *Revaluer) lock(id uint) func() {
	r.mu.Lock()
	l, ok := r.locks[id]
	if !ok {
		l = &portfolioLock{}
		r.locks[id] = l
	}
	l.refs++
	r.mu.Unlock()

	l.Lock()
	return func() {
		l.Unlock()
		r.mu.Lock()
		l.refs--
		if l.refs == 0 {
			delete(r.locks, id)
		}
		r.mu.Unlock()
	}
}
