package services

import (
	"context"
	"math/rand/v2"
	"sync"
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/tropicaldog17/folio/internal/db"
	"github.com/tropicaldog17/folio/internal/errors"
	"github.com/tropicaldog17/folio/internal/models"
	"github.com/tropicaldog17/folio/internal/repositories"
	"github.com/tropicaldog17/folio/internal/valuation"
)

type testEnv struct {
	database   *db.DB
	portfolios repositories.PortfolioRepository
	holdings   repositories.HoldingRepository
	revaluer   *Revaluer
	service    PortfolioService
	simulation *PriceSimulationService
}

func setupEnv(t *testing.T) *testEnv {
	t.Helper()
	database, err := db.OpenSQLite(":memory:")
	require.NoError(t, err)
	require.NoError(t, database.MigrateSchema())
	t.Cleanup(func() { database.Close() })

	portfolios := repositories.NewPortfolioRepository(database)
	holdings := repositories.NewHoldingRepository(database)
	revaluer := NewRevaluer(portfolios, holdings, zap.NewNop())

	return &testEnv{
		database:   database,
		portfolios: portfolios,
		holdings:   holdings,
		revaluer:   revaluer,
		service:    NewPortfolioService(portfolios, holdings, revaluer, zap.NewNop()),
		simulation: NewPriceSimulationService(portfolios, holdings, revaluer, rand.New(rand.NewPCG(42, 7)), zap.NewNop()),
	}
}

func dec(s string) decimal.Decimal {
	return decimal.RequireFromString(s)
}

func newHolding(symbol, qty, avg string) *models.Holding {
	h := &models.Holding{Symbol: symbol, Quantity: dec(qty)}
	if avg != "" {
		h.AveragePrice = models.Price(dec(avg))
	}
	return h
}

func (e *testEnv) storedTotal(t *testing.T, id uint) decimal.Decimal {
	t.Helper()
	p, err := e.portfolios.FindByID(context.Background(), id)
	require.NoError(t, err)
	return p.TotalValue
}

func (e *testEnv) assertTotalMatchesHoldings(t *testing.T, id uint) {
	t.Helper()
	p, err := e.portfolios.FindByID(context.Background(), id)
	require.NoError(t, err)
	expected := valuation.ComputeTotal(p.Holdings)
	assert.True(t, p.TotalValue.Equal(expected), "stored total %s, holdings say %s", p.TotalValue, expected)
}

func TestPortfolioService_CreateAndList(t *testing.T) {
	env := setupEnv(t)
	ctx := context.Background()

	p, err := env.service.CreatePortfolio(ctx, "u1", "Tech")
	require.NoError(t, err)
	assert.NotZero(t, p.ID)
	assert.Equal(t, "u1", p.OwnerID)
	assert.True(t, p.TotalValue.IsZero())
	assert.Empty(t, p.Holdings)

	_, err = env.service.CreatePortfolio(ctx, "u2", "Bonds")
	require.NoError(t, err)

	list, err := env.service.ListPortfolios(ctx, "u1")
	require.NoError(t, err)
	require.Len(t, list, 1)
	assert.Equal(t, "Tech", list[0].Name)
}

func TestPortfolioService_CreateValidation(t *testing.T) {
	env := setupEnv(t)
	ctx := context.Background()

	_, err := env.service.CreatePortfolio(ctx, "u1", "   ")
	assert.True(t, errors.IsValidation(err))

	_, err = env.service.CreatePortfolio(ctx, "", "Tech")
	assert.ErrorIs(t, err, errors.ErrUnauthenticated)

	_, err = env.service.ListPortfolios(ctx, "")
	assert.ErrorIs(t, err, errors.ErrUnauthenticated)
}

func TestPortfolioService_UpdatePortfolio(t *testing.T) {
	env := setupEnv(t)
	ctx := context.Background()

	p, err := env.service.CreatePortfolio(ctx, "u1", "Tech")
	require.NoError(t, err)
	_, err = env.service.AddHolding(ctx, "u1", p.ID, newHolding("ACME", "10", "50.00"))
	require.NoError(t, err)

	updated, err := env.service.UpdatePortfolio(ctx, "u1", p.ID, "Growth")
	require.NoError(t, err)
	assert.Equal(t, "Growth", updated.Name)
	assert.True(t, env.storedTotal(t, p.ID).Equal(dec("500.00")), "rename leaves total untouched")

	_, err = env.service.UpdatePortfolio(ctx, "u1", 9999, "Nope")
	assert.ErrorIs(t, err, errors.ErrNotFound)

	_, err = env.service.UpdatePortfolio(ctx, "u1", p.ID, "")
	assert.True(t, errors.IsValidation(err))
}

func TestPortfolioService_UpdateForbiddenLeavesStateUntouched(t *testing.T) {
	env := setupEnv(t)
	ctx := context.Background()

	p, err := env.service.CreatePortfolio(ctx, "u1", "Tech")
	require.NoError(t, err)
	_, err = env.service.AddHolding(ctx, "u1", p.ID, newHolding("ACME", "2", "10.00"))
	require.NoError(t, err)

	for _, intruder := range []string{"u2", "U1", "u1 "} {
		_, err = env.service.UpdatePortfolio(ctx, intruder, p.ID, "Hacked")
		assert.ErrorIs(t, err, errors.ErrForbidden, "owner %q", intruder)
	}

	stored, err := env.portfolios.FindByID(ctx, p.ID)
	require.NoError(t, err)
	assert.Equal(t, "Tech", stored.Name)
	assert.True(t, stored.TotalValue.Equal(dec("20.00")))
}

func TestPortfolioService_GetPortfolio(t *testing.T) {
	env := setupEnv(t)
	ctx := context.Background()

	p, err := env.service.CreatePortfolio(ctx, "u1", "Tech")
	require.NoError(t, err)

	got, err := env.service.GetPortfolio(ctx, "u1", p.ID)
	require.NoError(t, err)
	assert.Equal(t, p.ID, got.ID)

	_, err = env.service.GetPortfolio(ctx, "u2", p.ID)
	assert.ErrorIs(t, err, errors.ErrForbidden)

	_, err = env.service.GetPortfolio(ctx, "u1", p.ID+100)
	assert.ErrorIs(t, err, errors.ErrNotFound)
}

func TestPortfolioService_DeleteCascades(t *testing.T) {
	env := setupEnv(t)
	ctx := context.Background()

	p, err := env.service.CreatePortfolio(ctx, "u1", "Tech")
	require.NoError(t, err)
	h1, err := env.service.AddHolding(ctx, "u1", p.ID, newHolding("ACME", "1", "1"))
	require.NoError(t, err)
	h2, err := env.service.AddHolding(ctx, "u1", p.ID, newHolding("INIT", "1", "1"))
	require.NoError(t, err)

	assert.ErrorIs(t, env.service.DeletePortfolio(ctx, "u2", p.ID), errors.ErrForbidden)
	_, err = env.portfolios.FindByID(ctx, p.ID)
	require.NoError(t, err, "forbidden delete keeps the portfolio")

	require.NoError(t, env.service.DeletePortfolio(ctx, "u1", p.ID))

	_, err = env.portfolios.FindByID(ctx, p.ID)
	assert.ErrorIs(t, err, errors.ErrNotFound)
	for _, id := range []uint{h1.ID, h2.ID} {
		_, err = env.holdings.FindByID(ctx, id)
		assert.ErrorIs(t, err, errors.ErrNotFound)
	}

	assert.ErrorIs(t, env.service.DeletePortfolio(ctx, "u1", p.ID), errors.ErrNotFound)
}

func TestPortfolioService_AddHolding(t *testing.T) {
	env := setupEnv(t)
	ctx := context.Background()

	p, err := env.service.CreatePortfolio(ctx, "u1", "Tech")
	require.NoError(t, err)

	h, err := env.service.AddHolding(ctx, "u1", p.ID, newHolding("acme", "10", "50.00"))
	require.NoError(t, err)
	assert.NotZero(t, h.ID)
	assert.Equal(t, p.ID, h.PortfolioID)
	assert.Equal(t, "ACME", h.Symbol)
	assert.True(t, env.storedTotal(t, p.ID).Equal(dec("500.00")))

	// A holding with no prices at all is kept but adds nothing.
	_, err = env.service.AddHolding(ctx, "u1", p.ID, newHolding("GHOST", "1000", ""))
	require.NoError(t, err)
	assert.True(t, env.storedTotal(t, p.ID).Equal(dec("500.00")))
	env.assertTotalMatchesHoldings(t, p.ID)
}

func TestPortfolioService_AddHoldingFailures(t *testing.T) {
	env := setupEnv(t)
	ctx := context.Background()

	p, err := env.service.CreatePortfolio(ctx, "u1", "Tech")
	require.NoError(t, err)

	_, err = env.service.AddHolding(ctx, "u2", p.ID, newHolding("ACME", "10", "50"))
	assert.ErrorIs(t, err, errors.ErrForbidden)

	_, err = env.service.AddHolding(ctx, "u1", p.ID+1, newHolding("ACME", "10", "50"))
	assert.ErrorIs(t, err, errors.ErrNotFound)

	_, err = env.service.AddHolding(ctx, "u1", p.ID, newHolding("ACME", "-1", "50"))
	assert.True(t, errors.IsValidation(err))

	_, err = env.service.AddHolding(ctx, "u1", p.ID, nil)
	assert.True(t, errors.IsValidation(err))

	all, err := env.holdings.FindAll(ctx)
	require.NoError(t, err)
	assert.Empty(t, all, "failed adds never write")
	assert.True(t, env.storedTotal(t, p.ID).IsZero())
}

func TestPortfolioService_RemoveHolding(t *testing.T) {
	env := setupEnv(t)
	ctx := context.Background()

	p, err := env.service.CreatePortfolio(ctx, "u1", "Tech")
	require.NoError(t, err)
	keep, err := env.service.AddHolding(ctx, "u1", p.ID, newHolding("KEEP", "3", "20.00"))
	require.NoError(t, err)
	drop, err := env.service.AddHolding(ctx, "u1", p.ID, newHolding("DROP", "5", "10.00"))
	require.NoError(t, err)
	assert.True(t, env.storedTotal(t, p.ID).Equal(dec("110.00")))

	assert.ErrorIs(t, env.service.RemoveHolding(ctx, "u2", drop.ID), errors.ErrForbidden)
	assert.ErrorIs(t, env.service.RemoveHolding(ctx, "u1", 9999), errors.ErrNotFound)
	assert.True(t, env.storedTotal(t, p.ID).Equal(dec("110.00")))

	require.NoError(t, env.service.RemoveHolding(ctx, "u1", drop.ID))
	assert.True(t, env.storedTotal(t, p.ID).Equal(dec("60.00")))

	_, err = env.holdings.FindByID(ctx, keep.ID)
	require.NoError(t, err)
	_, err = env.portfolios.FindByID(ctx, p.ID)
	require.NoError(t, err, "removing a holding keeps the portfolio")
	env.assertTotalMatchesHoldings(t, p.ID)
}

func TestEndToEnd_TechPortfolio(t *testing.T) {
	env := setupEnv(t)
	ctx := context.Background()

	p, err := env.service.CreatePortfolio(ctx, "U1", "Tech")
	require.NoError(t, err)

	h, err := env.service.AddHolding(ctx, "U1", p.ID, newHolding("ACME", "10", "50.00"))
	require.NoError(t, err)
	assert.True(t, env.storedTotal(t, p.ID).Equal(dec("500.00")))

	// Scheduler-equivalent price update followed by recompute.
	h.LastPrice = models.Price(dec("55.00"))
	require.NoError(t, env.holdings.SaveAll(ctx, []*models.Holding{h}))
	total, err := env.revaluer.Revalue(ctx, p.ID)
	require.NoError(t, err)
	assert.True(t, total.Equal(dec("550.00")))
	assert.True(t, env.storedTotal(t, p.ID).Equal(dec("550.00")))

	require.NoError(t, env.service.RemoveHolding(ctx, "U1", h.ID))
	assert.True(t, env.storedTotal(t, p.ID).Equal(dec("0.00")))
}

func TestPortfolioService_ConcurrentAdds(t *testing.T) {
	env := setupEnv(t)
	ctx := context.Background()

	for round := 0; round < 10; round++ {
		p, err := env.service.CreatePortfolio(ctx, "u1", "Race")
		require.NoError(t, err)

		var wg sync.WaitGroup
		errs := make(chan error, 2)
		for _, h := range []*models.Holding{newHolding("A", "5", "10.00"), newHolding("B", "3", "20.00")} {
			wg.Add(1)
			go func(h *models.Holding) {
				defer wg.Done()
				_, err := env.service.AddHolding(ctx, "u1", p.ID, h)
				errs <- err
			}(h)
		}
		wg.Wait()
		close(errs)
		for err := range errs {
			require.NoError(t, err)
		}

		assert.True(t, env.storedTotal(t, p.ID).Equal(dec("110.00")), "round %d got %s", round, env.storedTotal(t, p.ID))
	}
}

func TestRevaluer_Idempotent(t *testing.T) {
	env := setupEnv(t)
	ctx := context.Background()

	p, err := env.service.CreatePortfolio(ctx, "u1", "Tech")
	require.NoError(t, err)
	_, err = env.service.AddHolding(ctx, "u1", p.ID, newHolding("ACME", "0.333", "3.01"))
	require.NoError(t, err)

	first, err := env.revaluer.Revalue(ctx, p.ID)
	require.NoError(t, err)
	second, err := env.revaluer.Revalue(ctx, p.ID)
	require.NoError(t, err)
	assert.True(t, first.Equal(second))
	assert.True(t, first.Equal(dec("1.00")))
	assert.Empty(t, env.revaluer.locks, "per-portfolio locks are released")
}
