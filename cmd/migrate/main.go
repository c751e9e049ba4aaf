package main

import (
	"context"
	"database/sql"
	"time"

	"github.com/joho/godotenv"
	_ "github.com/lib/pq"
	"go.uber.org/zap"

	"github.com/tropicaldog17/folio/internal/db"
	"github.com/tropicaldog17/folio/internal/logger"
	"github.com/tropicaldog17/folio/internal/migrate"
	"github.com/tropicaldog17/folio/migrations"
)

func main() {
	_ = godotenv.Load()

	log, err := logger.New()
	if err != nil {
		panic(err)
	}
	defer log.Sync()

	config := db.NewConfig()
	conn, err := sql.Open("postgres", config.DSN())
	if err != nil {
		log.Fatal("Failed to connect to database", zap.Error(err))
	}
	defer conn.Close()

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Minute)
	defer cancel()

	if err := conn.PingContext(ctx); err != nil {
		log.Fatal("Failed to ping database", zap.Error(err))
	}

	if _, err := migrate.Run(ctx, conn, migrations.FS, log); err != nil {
		log.Fatal("Migration failed", zap.Error(err))
	}
}
