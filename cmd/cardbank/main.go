package main

import (
	"context"
	"log/slog"
	"os"

	"github.com/joho/godotenv"
	"github.com/mlvance/cardbank/internal/cli"
	"github.com/mlvance/cardbank/internal/config"
	"github.com/mlvance/cardbank/internal/db"
	"github.com/mlvance/cardbank/internal/repository"
	"github.com/mlvance/cardbank/internal/service"
)

func main() {
	// A local .env overrides nothing already exported.
	_ = godotenv.Load()

	cfg, err := config.Load()
	if err != nil {
		slog.Error("failed to load configuration", "error", err)
		os.Exit(1)
	}

	logger := cfg.Logger.NewLogger()
	slog.SetDefault(logger)

	logger.Info("starting cardbank",
		"db_path", cfg.Database.Path,
		"log_level", cfg.Logger.Level,
	)

	ctx := context.Background()
	database, err := db.Connect(ctx, &cfg.Database, logger)
	if err != nil {
		logger.Error("failed to open ledger database", "error", err)
		os.Exit(1)
	}
	defer database.Close()

	repo := repository.NewCardRepository(database)

	menu := cli.New(
		service.NewIssuerService(database, cfg.Issuer, logger),
		service.NewAuthService(repo, logger),
		service.NewAccountService(repo, logger),
		service.NewTransferService(database, logger),
		os.Stdin,
		os.Stdout,
		logger,
	)

	if err := menu.Run(ctx); err != nil {
		logger.Error("ledger failure", "error", err)
		os.Exit(1)
	}
}
