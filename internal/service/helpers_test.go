package service

import (
	"context"
	"io"
	"log/slog"
	"path/filepath"
	"testing"

	"github.com/mlvance/cardbank/internal/config"
	"github.com/mlvance/cardbank/internal/db"
	"github.com/mlvance/cardbank/internal/repository"
)

// Luhn-valid fixtures under the 400000 issuer BIN.
const (
	testCardA = "4000008979544025"
	testCardB = "4000008859611191"
	testCardC = "4000001795823848"
)

func testLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

func setupTestDB(t *testing.T) *db.DB {
	t.Helper()

	cfg := &config.DatabaseConfig{
		Path: filepath.Join(t.TempDir(), "card.db"),
	}

	database, err := db.Connect(context.Background(), cfg, testLogger())
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

func insertCard(t *testing.T, database *db.DB, number, pin string, balance int64) {
	t.Helper()

	repo := repository.NewCardRepository(database)
	if err := repo.Insert(context.Background(), number, pin, balance); err != nil {
		t.Fatalf("failed to insert card %s: %v", number, err)
	}
}

func balanceOf(t *testing.T, database *db.DB, number string) int64 {
	t.Helper()

	repo := repository.NewCardRepository(database)
	account, err := repo.FindByNumber(context.Background(), number)
	if err != nil {
		t.Fatalf("failed to read balance of %s: %v", number, err)
	}
	return account.Balance
}
