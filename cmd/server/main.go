package main

import (
	"context"
	"log/slog"
	"os"
	"os/signal"
	"syscall"

	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/joho/godotenv"

	"github.com/minoru856-crypto/ai-shigeki/internal/config"
	"github.com/minoru856-crypto/ai-shigeki/internal/core"
	"github.com/minoru856-crypto/ai-shigeki/internal/logging"
	"github.com/minoru856-crypto/ai-shigeki/internal/roster"
	"github.com/minoru856-crypto/ai-shigeki/internal/web"
)

func main() {
	// Overload lets .env win over the inherited environment in development.
	if err := godotenv.Overload(); err != nil {
		slog.Info("no .env file found, using environment variables")
	}

	cfg, err := config.Load()
	if err != nil {
		slog.Error("failed to load configuration", "error", err)
		os.Exit(1)
	}
	logging.Setup(cfg.Logging.Level, cfg.Logging.Format)
	slog.Info("configuration loaded", "config", cfg.String())

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	synonyms := roster.DefaultSynonyms()
	if cfg.Extract.SynonymsFile != "" {
		synonyms, err = roster.LoadSynonyms(cfg.Extract.SynonymsFile)
		if err != nil {
			slog.Error("failed to load header synonyms", "path", cfg.Extract.SynonymsFile, "error", err)
			os.Exit(1)
		}
		slog.Info("header synonyms loaded", "path", cfg.Extract.SynonymsFile)
	}

	store, closeStore, err := openStore(ctx, cfg)
	if err != nil {
		slog.Error("failed to open roster store", "error", err)
		os.Exit(1)
	}
	defer closeStore()

	service := core.NewService(
		store,
		roster.NewExtractor(synonyms, cfg.Extract.HeaderScanRows),
		core.NewImportLimiter(cfg.Upload.MaxConcurrent, cfg.Upload.MaxWaitTime),
		core.WithImportTimeout(cfg.Upload.Timeout),
	)
	server := web.NewServer(service, cfg)

	errCh := make(chan error, 1)
	go func() { errCh <- server.Start() }()

	select {
	case err := <-errCh:
		if err != nil {
			slog.Error("server stopped", "error", err)
			os.Exit(1)
		}
		return
	case <-ctx.Done():
	}

	slog.Info("shutting down...")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), cfg.Server.ShutdownTimeout)
	defer cancel()

	if status := service.ImportLimiterStatus(); status.Active > 0 {
		slog.Info("waiting for imports to complete", "active", status.Active)
		if err := service.WaitForImports(shutdownCtx); err != nil {
			slog.Warn("imports did not complete in time", "error", err)
		}
	}
	if err := server.Shutdown(shutdownCtx); err != nil {
		slog.Error("shutdown error", "error", err)
	}
}

// openStore connects to PostgreSQL when DATABASE_URL is set and falls back
// to an in-memory store otherwise.
func openStore(ctx context.Context, cfg *config.Config) (core.RosterStore, func(), error) {
	if !cfg.Database.UsesDatabase() {
		slog.Warn("DATABASE_URL not set, roster is kept in memory only")
		return core.NewMemStore(), func() {}, nil
	}

	poolConfig, err := pgxpool.ParseConfig(cfg.Database.URL)
	if err != nil {
		return nil, nil, err
	}
	poolConfig.MaxConns = int32(cfg.Database.MaxConns)
	poolConfig.MinConns = int32(cfg.Database.MinConns)
	poolConfig.MaxConnLifetime = cfg.Database.MaxConnLifetime
	poolConfig.MaxConnIdleTime = cfg.Database.MaxConnIdleTime

	pool, err := pgxpool.NewWithConfig(ctx, poolConfig)
	if err != nil {
		return nil, nil, err
	}
	if err := pool.Ping(ctx); err != nil {
		pool.Close()
		return nil, nil, err
	}

	store := core.NewPgStore(pool)
	if err := store.EnsureSchema(ctx); err != nil {
		pool.Close()
		return nil, nil, err
	}
	slog.Info("connected to database", "database", poolConfig.ConnConfig.Database)
	return store, pool.Close, nil
}
