package main

import (
	"context"
	"log"
	"os"

	"go.uber.org/zap"

	"auctionscout/internal/app"
	"auctionscout/internal/config"
	"auctionscout/internal/fetcher"
	"auctionscout/internal/normalize"
	"auctionscout/internal/observability"
	"auctionscout/internal/scheduler"
	"auctionscout/internal/scraper"
	"auctionscout/internal/storage"
	"auctionscout/internal/storage/mssql"
	"auctionscout/internal/storage/sheets"
)

func main() {
	configPath := "configs/config.yaml"
	if len(os.Args) > 1 {
		configPath = os.Args[1]
	}

	cfg, err := config.LoadConfig(configPath)
	if err != nil {
		log.Fatalf("Failed to load config: %v", err)
	}

	logger, err := observability.NewLogger(cfg.Observability.LogPath, cfg.Observability.LogLevel)
	if err != nil {
		log.Fatalf("Failed to init logger: %v", err)
	}
	defer func() { _ = logger.Sync() }()

	sites, err := config.LoadSites(cfg.SitesFile)
	if err != nil {
		logger.Fatalw("invalid sites file", "file", cfg.SitesFile, "error", err)
	}

	secrets := config.LoadSecrets()
	if err := secrets.ValidateFor(cfg.Storage.Driver); err != nil {
		logger.Fatalw("missing credentials", "error", err)
	}

	ctx, cancel := app.SignalContext(logger)
	defer cancel()

	repo, err := newRepository(ctx, cfg, secrets, logger)
	if err != nil {
		logger.Fatalw("failed to init storage", "driver", cfg.Storage.Driver, "error", err)
	}
	defer func() { _ = repo.Close() }()

	f := fetcher.NewFetcher(cfg)
	if cfg.Rod.Enabled {
		browser, err := fetcher.NewBrowser(cfg)
		if err != nil {
			logger.Fatalw("failed to start browser", "error", err)
		}
		defer func() { _ = browser.Close() }()
		f.UseBrowser(browser)
	}

	norm := normalize.New(cfg.Normalize.TrimNBSP, cfg.Normalize.CollapseSpaces)
	orch := app.NewOrchestrator(sites, f, scraper.NewScraper(norm), repo, logger)

	err = scheduler.Run(ctx, cfg.Scheduler, logger, func(runCtx context.Context) error {
		_, err := orch.Run(runCtx)
		return err
	})
	if err != nil {
		logger.Fatalw("run failed", "error", err)
	}
}

func newRepository(ctx context.Context, cfg *config.Config, secrets *config.Secrets, logger *zap.SugaredLogger) (storage.Repository, error) {
	switch cfg.Storage.Driver {
	case config.DriverMSSQL:
		return mssql.NewRepository(cfg.Storage.DSN, cfg.GetCommandTimeout(), logger)
	default:
		return sheets.NewRepository(ctx, secrets.SpreadsheetID, []byte(secrets.ServiceAccountJSON), logger)
	}
}
