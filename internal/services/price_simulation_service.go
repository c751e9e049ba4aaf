package services

import (
	"context"
	"fmt"
	"math/rand/v2"
	"sync"
	"time"

	"github.com/shopspring/decimal"
	"go.uber.org/zap"

	"github.com/tropicaldog17/folio/internal/models"
	"github.com/tropicaldog17/folio/internal/repositories"
	"github.com/tropicaldog17/folio/internal/valuation"
)

// PriceSimulationService moves every holding's last price by a random amount within
// ±1% and revalues every portfolio. It is the only writer of last prices.
type PriceSimulationService struct {
	portfolios repositories.PortfolioRepository
	holdings   repositories.HoldingRepository
	revaluer   *Revaluer
	logger     *zap.Logger

	// runMu serializes runs; rng is only touched while it is held.
	runMu sync.Mutex
	rng   *rand.Rand
}

// NewPriceSimulationService creates a new price simulation service. A nil rng
// gets a randomly seeded source.
func NewPriceSimulationService(
	portfolios repositories.PortfolioRepository,
	holdings repositories.HoldingRepository,
	revaluer *Revaluer,
	rng *rand.Rand,
	logger *zap.Logger,
) *PriceSimulationService {
	if rng == nil {
		rng = rand.New(rand.NewPCG(rand.Uint64(), rand.Uint64()))
	}
	if logger == nil {
		logger = zap.NewNop()
	}
	return &PriceSimulationService{
		portfolios: portfolios,
		holdings:   holdings,
		revaluer:   revaluer,
		rng:        rng,
		logger:     logger,
	}
}

// Name identifies the job in scheduler logs.
func (s *PriceSimulationService) Name() string {
	return "price_simulation"
}

// Run executes one refresh, discarding the summary.
func (s *PriceSimulationService) Run(ctx context.Context) error {
	_, err := s.RefreshPrices(ctx)
	return err
}

// RefreshPrices perturbs all priced holdings, saves them as a batch, then revalues
// every portfolio. Holdings without any price are left as they are. Revaluation
// runs even when the save fails partway or ctx is cancelled after loading.
func (s *PriceSimulationService) RefreshPrices(ctx context.Context) (*models.PriceRefreshResult, error) {
	s.runMu.Lock()
	defer s.runMu.Unlock()

	result := &models.PriceRefreshResult{StartedAt: time.Now()}
	defer func() { result.Duration = time.Since(result.StartedAt) }()

	holdings, err := s.holdings.FindAll(ctx)
	if err != nil {
		return result, fmt.Errorf("failed to load holdings: %w", err)
	}

	updated := make([]*models.Holding, 0, len(holdings))
	for _, h := range holdings {
		base, ok := valuation.EffectivePrice(h)
		if !ok {
			result.HoldingsSkipped++
			continue
		}
		h.LastPrice = models.Price(valuation.Perturb(base, s.nextMove()))
		updated = append(updated, h)
	}

	var firstErr error
	if len(updated) > 0 {
		if err := s.holdings.SaveAll(ctx, updated); err != nil {
			// rows before the failure are already committed
			s.logger.Error("failed to save refreshed prices", zap.Error(err))
			firstErr = fmt.Errorf("failed to save refreshed prices: %w", err)
		} else {
			result.HoldingsUpdated = len(updated)
		}
	}

	// Once prices may have been written, totals are recomputed even if the caller goes away.
	revalueCtx := context.WithoutCancel(ctx)

	portfolios, err := s.portfolios.FindAll(revalueCtx)
	if err != nil {
		if firstErr == nil {
			firstErr = fmt.Errorf("failed to load portfolios: %w", err)
		}
		return result, firstErr
	}

	for _, p := range portfolios {
		if _, err := s.revaluer.Revalue(revalueCtx, p.ID); err != nil {
			result.PortfoliosFailed++
			s.logger.Error("failed to revalue portfolio", zap.Uint("portfolio_id", p.ID), zap.Error(err))
			if firstErr == nil {
				firstErr = err
			}
			continue
		}
		result.PortfoliosRevalued++
	}

	s.logger.Info("prices refreshed",
		zap.Int("holdings_updated", result.HoldingsUpdated),
		zap.Int("holdings_skipped", result.HoldingsSkipped),
		zap.Int("portfolios_revalued", result.PortfoliosRevalued),
		zap.Int("portfolios_failed", result.PortfoliosFailed),
	)
	return result, firstErr
}

// nextMove draws a relative change uniformly from [-1%, +1%).
func (s *PriceSimulationService) nextMove() decimal.Decimal {
	return decimal.NewFromFloat(s.rng.Float64()*2 - 1).Mul(valuation.MaxMove)
}
