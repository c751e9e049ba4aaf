// Package integration runs the portfolio stack against a real PostgreSQL
// started with testcontainers. These tests require Docker to be running.
//
// Usage:
//
//	go test ./tests/integration/
//
// The schema is applied with internal/migrate, the same path cmd/migrate uses.
package integration

import (
	"context"
	"fmt"
	"testing"
	"time"

	"github.com/testcontainers/testcontainers-go"
	"github.com/testcontainers/testcontainers-go/modules/postgres"
	"github.com/testcontainers/testcontainers-go/wait"

	"github.com/tropicaldog17/folio/internal/db"
	"github.com/tropicaldog17/folio/internal/migrate"
	"github.com/tropicaldog17/folio/migrations"
)

// TestContainer holds the PostgreSQL container and connection details
type TestContainer struct {
	Container testcontainers.Container
	DB        *db.DB
	Config    *db.Config
}

// suiteContainer is shared by every test in the package; TestMain owns its lifecycle.
var suiteContainer *TestContainer

func setupWithContext(ctx context.Context) (*TestContainer, error) {
	pgContainer, err := postgres.Run(ctx,
		"postgres:15-alpine",
		postgres.WithDatabase("folio_test"),
		postgres.WithUsername("folio_user"),
		postgres.WithPassword("folio_password"),
		testcontainers.WithWaitStrategy(
			wait.ForLog("database system is ready to accept connections").
				WithOccurrence(2).
				WithStartupTimeout(60*time.Second)),
	)
	if err != nil {
		return nil, fmt.Errorf("start postgres container: %w", err)
	}

	host, err := pgContainer.Host(ctx)
	if err != nil {
		return nil, fmt.Errorf("container host: %w", err)
	}
	port, err := pgContainer.MappedPort(ctx, "5432")
	if err != nil {
		return nil, fmt.Errorf("container port: %w", err)
	}

	config := &db.Config{
		Driver:   db.DriverPostgres,
		Host:     host,
		Port:     port.Port(),
		User:     "folio_user",
		Password: "folio_password",
		Name:     "folio_test",
		SSLMode:  "disable",
	}

	database, err := db.Connect(config)
	if err != nil {
		return nil, fmt.Errorf("connect to test database: %w", err)
	}

	sqlDB, err := database.GetSQLDB()
	if err != nil {
		return nil, err
	}
	if _, err := migrate.Run(ctx, sqlDB, migrations.FS, nil); err != nil {
		return nil, fmt.Errorf("run migrations: %w", err)
	}

	return &TestContainer{
		Container: pgContainer,
		DB:        database,
		Config:    config,
	}, nil
}

// Cleanup terminates the container and closes the database connection
func (tc *TestContainer) Cleanup() {
	if tc.DB != nil {
		_ = tc.DB.Close()
	}
	if tc.Container != nil {
		_ = tc.Container.Terminate(context.Background())
	}
}

// freshDB returns the suite database with every table emptied.
func freshDB(t *testing.T) *db.DB {
	t.Helper()
	if suiteContainer == nil {
		t.Skip("integration container not available")
	}
	if err := suiteContainer.DB.Exec("TRUNCATE holdings, portfolios RESTART IDENTITY CASCADE").Error; err != nil {
		t.Fatalf("Failed to truncate tables: %v", err)
	}
	return suiteContainer.DB
}
