// Package db provides database connection and schema management for the
// card ledger.
package db

import (
	"context"
	"database/sql"
	"fmt"
	"log/slog"

	"github.com/mlvance/cardbank/internal/config"

	// Import sqlite driver for registration with database/sql
	_ "modernc.org/sqlite"
)

// DB wraps the database connection pool
type DB struct {
	*sql.DB
	logger *slog.Logger
}

// Connect opens the SQLite ledger file and applies pending schema migrations
func Connect(ctx context.Context, cfg *config.DatabaseConfig, logger *slog.Logger) (*DB, error) {
	logger.Info("opening ledger database", "path", cfg.Path)

	sqlDB, err := sql.Open("sqlite", cfg.DSN())
	if err != nil {
		logger.Error("failed to open database", "error", err)
		return nil, fmt.Errorf("failed to open database: %w", err)
	}

	// A single connection keeps every logical operation serialized against
	// the file, matching the single-user process model.
	sqlDB.SetMaxOpenConns(1)

	if err := sqlDB.PingContext(ctx); err != nil {
		_ = sqlDB.Close()
		logger.Error("failed to ping database", "error", err)
		return nil, fmt.Errorf("failed to ping database: %w", err)
	}

	db := &DB{
		DB:     sqlDB,
		logger: logger,
	}

	if err := db.Migrate(ctx); err != nil {
		_ = sqlDB.Close()
		logger.Error("failed to run migrations", "error", err)
		return nil, fmt.Errorf("failed to run migrations: %w", err)
	}

	logger.Info("ledger database ready", "path", cfg.Path)

	return db, nil
}

// Close closes the database connection and logs the closure.
func (db *DB) Close() error {
	db.logger.Info("closing ledger database")
	return db.DB.Close()
}
