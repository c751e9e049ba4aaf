package handlers

import (
	"net/http"

	"github.com/gorilla/mux"
	httpSwagger "github.com/swaggo/http-swagger"
	"go.uber.org/zap"

	"github.com/tropicaldog17/folio/internal/services"
)

// RouterConfig carries what NewRouter needs to build the API
type RouterConfig struct {
	Portfolios services.PortfolioService
	Prices     services.PriceRefresher
	// EnablePriceRefresh registers the admin refresh route; off unless set.
	EnablePriceRefresh bool
	Health             func() error
	OwnerHeader        string
	Logger             *zap.Logger
}

// NewRouter wires the REST API under /api
func NewRouter(cfg RouterConfig) http.Handler {
	logger := cfg.Logger
	if logger == nil {
		logger = zap.NewNop()
	}

	portfolioHandler := NewPortfolioHandler(cfg.Portfolios)
	priceHandler := NewPriceHandler(cfg.Prices)

	r := mux.NewRouter()
	r.Use(RequestIDMiddleware, LoggingMiddleware(logger), OwnerMiddleware(cfg.OwnerHeader))

	r.HandleFunc("/health", func(w http.ResponseWriter, req *http.Request) {
		if cfg.Health != nil {
			if err := cfg.Health(); err != nil {
				writeJSON(w, http.StatusServiceUnavailable, map[string]string{"status": "unhealthy"})
				return
			}
		}
		writeJSON(w, http.StatusOK, map[string]string{
			"status":  "healthy",
			"service": "folio",
		})
	}).Methods(http.MethodGet)

	api := r.PathPrefix("/api").Subrouter()

	// holdings route first so "holdings" is never read as a portfolio id
	api.HandleFunc("/portfolios/holdings/{holdingId:[0-9]+}", portfolioHandler.HandleRemoveHolding).Methods(http.MethodDelete)
	api.HandleFunc("/portfolios", portfolioHandler.HandleListPortfolios).Methods(http.MethodGet)
	api.HandleFunc("/portfolios", portfolioHandler.HandleCreatePortfolio).Methods(http.MethodPost)
	api.HandleFunc("/portfolios/{id:[0-9]+}", portfolioHandler.HandleGetPortfolio).Methods(http.MethodGet)
	api.HandleFunc("/portfolios/{id:[0-9]+}", portfolioHandler.HandleUpdatePortfolio).Methods(http.MethodPut)
	api.HandleFunc("/portfolios/{id:[0-9]+}", portfolioHandler.HandleDeletePortfolio).Methods(http.MethodDelete)
	api.HandleFunc("/portfolios/{portfolioId:[0-9]+}/holdings", portfolioHandler.HandleAddHolding).Methods(http.MethodPost)

	if cfg.Prices != nil && cfg.EnablePriceRefresh {
		api.HandleFunc("/admin/prices/refresh", priceHandler.HandleRefresh).Methods(http.MethodPost)
	}

	r.PathPrefix("/swagger/").Handler(httpSwagger.WrapHandler)

	return CORSMiddleware(cfg.OwnerHeader)(r)
}
