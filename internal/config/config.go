// Package config loads server configuration from the environment.
package config

import (
	"fmt"
	"os"
	"strconv"
	"time"

	"github.com/joho/godotenv"

	"github.com/tropicaldog17/folio/internal/auth"
	"github.com/tropicaldog17/folio/internal/db"
	"github.com/tropicaldog17/folio/internal/scheduler"
)

// Config holds application configuration
type Config struct {
	Port                 string
	Database             *db.Config
	AutoMigrate          bool
	PriceRefreshInterval time.Duration
	OwnerHeader          string
	// PriceRefreshEndpoint exposes POST /api/admin/prices/refresh to any identified caller.
	PriceRefreshEndpoint bool
}

// Load reads configuration from environment variables, after applying a .env file if one exists.
func Load() (*Config, error) {
	_ = godotenv.Load()

	interval, err := getEnvAsDuration("PRICE_REFRESH_INTERVAL", scheduler.DefaultInterval)
	if err != nil {
		return nil, err
	}

	autoMigrate, err := getEnvAsBool("DB_AUTO_MIGRATE", true)
	if err != nil {
		return nil, err
	}

	refreshEndpoint, err := getEnvAsBool("PRICE_REFRESH_ENDPOINT_ENABLED", false)
	if err != nil {
		return nil, err
	}

	cfg := &Config{
		Port:                 getEnv("SERVER_PORT", "8080"),
		Database:             db.NewConfig(),
		AutoMigrate:          autoMigrate,
		PriceRefreshInterval: interval,
		OwnerHeader:          getEnv("OWNER_HEADER", auth.DefaultOwnerHeader),
		PriceRefreshEndpoint: refreshEndpoint,
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// Validate checks that required settings are usable
func (c *Config) Validate() error {
	if c.PriceRefreshInterval <= 0 {
		return fmt.Errorf("PRICE_REFRESH_INTERVAL must be positive, got %s", c.PriceRefreshInterval)
	}
	if _, err := strconv.Atoi(c.Port); err != nil {
		return fmt.Errorf("SERVER_PORT must be numeric: %w", err)
	}
	switch c.Database.Driver {
	case db.DriverPostgres, db.DriverSQLite:
	default:
		return fmt.Errorf("DB_DRIVER must be %q or %q, got %q", db.DriverPostgres, db.DriverSQLite, c.Database.Driver)
	}
	return nil
}

func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

func getEnvAsBool(key string, defaultValue bool) (bool, error) {
	value := os.Getenv(key)
	if value == "" {
		return defaultValue, nil
	}
	b, err := strconv.ParseBool(value)
	if err != nil {
		return false, fmt.Errorf("%s: %w", key, err)
	}
	return b, nil
}

// getEnvAsDuration accepts Go durations ("30s") or a bare number of seconds.
func getEnvAsDuration(key string, defaultValue time.Duration) (time.Duration, error) {
	value := os.Getenv(key)
	if value == "" {
		return defaultValue, nil
	}
	if secs, err := strconv.Atoi(value); err == nil {
		return time.Duration(secs) * time.Second, nil
	}
	d, err := time.ParseDuration(value)
	if err != nil {
		return 0, fmt.Errorf("%s: %w", key, err)
	}
	return d, nil
}
