// Package migrate applies numbered SQL files to a PostgreSQL database, recording
// each applied version in schema_migrations.
package migrate

import (
	"context"
	"database/sql"
	"fmt"
	"io/fs"
	"sort"
	"strconv"
	"strings"

	"go.uber.org/zap"
)

// Migration represents a database migration
type Migration struct {
	ID       int
	Filename string
	Content  string
}

// Load reads every NNN_name.sql file at the root of fsys, sorted by ID.
// Files whose prefix is not a number are ignored.
func Load(fsys fs.FS) ([]Migration, error) {
	entries, err := fs.ReadDir(fsys, ".")
	if err != nil {
		return nil, fmt.Errorf("read migrations: %w", err)
	}

	var migrations []Migration
	seen := make(map[int]string)
	for _, entry := range entries {
		name := entry.Name()
		if entry.IsDir() || !strings.HasSuffix(name, ".sql") {
			continue
		}

		prefix, _, ok := strings.Cut(name, "_")
		if !ok {
			continue
		}
		id, err := strconv.Atoi(prefix)
		if err != nil {
			continue
		}
		if prev, dup := seen[id]; dup {
			return nil, fmt.Errorf("duplicate migration version %d: %s and %s", id, prev, name)
		}
		seen[id] = name

		content, err := fs.ReadFile(fsys, name)
		if err != nil {
			return nil, fmt.Errorf("failed to read migration file %s: %w", name, err)
		}

		migrations = append(migrations, Migration{
			ID:       id,
			Filename: name,
			Content:  string(content),
		})
	}

	sort.Slice(migrations, func(i, j int) bool {
		return migrations[i].ID < migrations[j].ID
	})
	return migrations, nil
}

// Run applies every migration in fsys newer than the recorded version and
// returns how many were applied. Each migration runs in its own transaction.
func Run(ctx context.Context, db *sql.DB, fsys fs.FS, logger *zap.Logger) (int, error) {
	if logger == nil {
		logger = zap.NewNop()
	}

	if err := createMigrationsTable(ctx, db); err != nil {
		return 0, fmt.Errorf("failed to create migrations table: %w", err)
	}

	current, err := currentVersion(ctx, db)
	if err != nil {
		return 0, fmt.Errorf("failed to get current version: %w", err)
	}

	migrations, err := Load(fsys)
	if err != nil {
		return 0, err
	}

	applied := 0
	for _, m := range Pending(migrations, current) {
		logger.Info("Running migration", zap.Int("version", m.ID), zap.String("file", m.Filename))
		if err := apply(ctx, db, m); err != nil {
			return applied, fmt.Errorf("migration %d: %w", m.ID, err)
		}
		applied++
	}

	logger.Info("Migrations complete", zap.Int("applied", applied), zap.Int("previous_version", current))
	return applied, nil
}

// Pending returns the migrations newer than version, preserving order.
func Pending(migrations []Migration, version int) []Migration {
	var out []Migration
	for _, m := range migrations {
		if m.ID > version {
			out = append(out, m)
		}
	}
	return out
}

func createMigrationsTable(ctx context.Context, db *sql.DB) error {
	_, err := db.ExecContext(ctx, `
		CREATE TABLE IF NOT EXISTS schema_migrations (
			version INTEGER PRIMARY KEY,
			filename VARCHAR(255) NOT NULL,
			executed_at TIMESTAMP DEFAULT NOW()
		)
	`)
	return err
}

func currentVersion(ctx context.Context, db *sql.DB) (int, error) {
	var version int
	err := db.QueryRowContext(ctx, "SELECT COALESCE(MAX(version), 0) FROM schema_migrations").Scan(&version)
	return version, err
}

func apply(ctx context.Context, db *sql.DB, m Migration) error {
	tx, err := db.BeginTx(ctx, nil)
	if err != nil {
		return err
	}
	defer tx.Rollback()

	if _, err := tx.ExecContext(ctx, m.Content); err != nil {
		return fmt.Errorf("failed to execute migration: %w", err)
	}
	if _, err := tx.ExecContext(ctx,
		"INSERT INTO schema_migrations (version, filename) VALUES ($1, $2)",
		m.ID, m.Filename,
	); err != nil {
		return fmt.Errorf("failed to record migration: %w", err)
	}

	return tx.Commit()
}
