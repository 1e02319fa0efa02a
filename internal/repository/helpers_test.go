package repository

import (
	"context"
	"io"
	"log/slog"
	"path/filepath"
	"testing"

	"github.com/mlvance/cardbank/internal/config"
	"github.com/mlvance/cardbank/internal/db"
)

// Luhn-valid fixtures under the 400000 issuer BIN.
const (
	testCardA = "4000008979544025"
	testCardB = "4000008859611191"
	testCardC = "4000001795823848"
)

func setupTestDB(t *testing.T) *db.DB {
	t.Helper()

	cfg := &config.DatabaseConfig{
		Path: filepath.Join(t.TempDir(), "card.db"),
	}
	logger := slog.New(slog.NewTextHandler(io.Discard, nil))

	database, err := db.Connect(context.Background(), cfg, logger)
	if err != nil {
		t.Fatalf("failed to open test database: %v", err)
	}

	t.Cleanup(func() {
		if err := database.Close(); err != nil {
			t.Logf("failed to close test database: %v", err)
		}
	})

	return database
}

func seedCards(t *testing.T, database *db.DB) {
	t.Helper()

	_, err := database.ExecContext(context.Background(), `
		INSERT INTO card (number, pin, balance) VALUES
			('`+testCardA+`', '1234', 500),
			('`+testCardB+`', '9876', 0),
			('`+testCardC+`', '0415', 100000);
	`)
	if err != nil {
		t.Fatalf("failed to seed cards: %v", err)
	}
}
