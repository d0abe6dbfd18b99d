package main

import (
	"context"
	"flag"
	"fmt"
	"log/slog"
	"os"
	"os/signal"
	"syscall"

	"coindex/database"
	"coindex/internal/api/repository"
	"coindex/internal/config"
	"coindex/internal/ingestion/coingecko"
)

// market-sync pulls the exchange listing from CoinGecko and upserts it into
// the catalog. Meant to be run from cron, never from the request path.
func main() {
	maxPages := flag.Int("max-pages", 0, "stop after this many listing pages (0 = all)")
	flag.Parse()

	cfg, err := config.LoadConfig()
	if err != nil {
		fmt.Fprintf(os.Stderr, "could not load config: %v\n", err)
		os.Exit(1)
	}

	logger := slog.New(slog.NewTextHandler(os.Stdout, nil))

	db, err := database.ConnectDB(cfg, logger)
	if err != nil {
		logger.Error("database connection failed", "error", err)
		os.Exit(1)
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	client := coingecko.NewClient(cfg.CoinGeckoAPIURL, cfg.CoinGeckoAPIKey, logger)
	syncService := coingecko.NewSyncService(
		client,
		repository.NewExchangeRepo(db),
		repository.NewReferenceRepo(db),
		logger,
	)

	if err := syncService.SyncExchanges(ctx, *maxPages); err != nil {
		logger.Error("exchange sync failed", "error", err)
		os.Exit(1)
	}
}
