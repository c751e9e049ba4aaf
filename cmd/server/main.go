// @title Folio API
// @version 1.0
// @description Owner-scoped portfolios with continuously revalued totals.
// @BasePath /api
package main

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"go.uber.org/zap"

	_ "github.com/tropicaldog17/folio/docs"
	"github.com/tropicaldog17/folio/internal/config"
	"github.com/tropicaldog17/folio/internal/db"
	"github.com/tropicaldog17/folio/internal/handlers"
	"github.com/tropicaldog17/folio/internal/logger"
	"github.com/tropicaldog17/folio/internal/repositories"
	"github.com/tropicaldog17/folio/internal/scheduler"
	"github.com/tropicaldog17/folio/internal/services"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		panic(err)
	}

	log, err := logger.New()
	if err != nil {
		panic(err)
	}
	defer log.Sync()

	// Database connection
	database, err := db.Connect(cfg.Database)
	if err != nil {
		log.Fatal("Failed to connect to database", zap.Error(err))
	}
	defer database.Close()

	if err := database.Health(); err != nil {
		log.Fatal("Database health check failed", zap.Error(err))
	}
	log.Info("Database connection established", zap.String("driver", cfg.Database.Driver))

	if cfg.AutoMigrate {
		if err := database.MigrateSchema(); err != nil {
			log.Fatal("Schema migration failed", zap.Error(err))
		}
	}

	// Repositories and services
	portfolioRepo := repositories.NewPortfolioRepository(database)
	holdingRepo := repositories.NewHoldingRepository(database)

	revaluer := services.NewRevaluer(portfolioRepo, holdingRepo, log)
	portfolioService := services.NewPortfolioService(portfolioRepo, holdingRepo, revaluer, log)
	simulation := services.NewPriceSimulationService(portfolioRepo, holdingRepo, revaluer, nil, log)

	// Background price simulation
	sched := scheduler.New(log)
	if err := sched.AddJob(cfg.PriceRefreshInterval, simulation); err != nil {
		log.Fatal("Failed to schedule price simulation", zap.Error(err))
	}
	sched.Start()

	router := handlers.NewRouter(handlers.RouterConfig{
		Portfolios:         portfolioService,
		Prices:             simulation,
		EnablePriceRefresh: cfg.PriceRefreshEndpoint,
		Health:             database.Health,
		OwnerHeader:        cfg.OwnerHeader,
		Logger:             log,
	})

	server := &http.Server{
		Addr:              ":" + cfg.Port,
		Handler:           router,
		ReadHeaderTimeout: 10 * time.Second,
	}

	go func() {
		log.Info("Server starting", zap.String("port", cfg.Port))
		if err := server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Fatal("Server failed", zap.Error(err))
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit
	log.Info("Shutting down")

	ctx, cancel := context.WithTimeout(context.Background(), 15*time.Second)
	defer cancel()

	if err := server.Shutdown(ctx); err != nil {
		log.Error("Server shutdown failed", zap.Error(err))
	}
	sched.Stop()
	log.Info("Server stopped")
}
