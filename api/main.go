package main

import (
	"context"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/rogerio-castellano/shop-inventory/internal/config"
	api "github.com/rogerio-castellano/shop-inventory/internal/http"
	"github.com/rogerio-castellano/shop-inventory/internal/http/handlers"
	rl "github.com/rogerio-castellano/shop-inventory/internal/http/rate_limiter"
	"github.com/rogerio-castellano/shop-inventory/internal/repo"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
)

// setupLogger configures the global zerolog logger: console output in
// development, JSON in production.
func setupLogger(cfg *config.Config) {
	level, err := zerolog.ParseLevel(cfg.LogLevel)
	if err != nil || level == zerolog.NoLevel {
		level = zerolog.InfoLevel
	}
	zerolog.SetGlobalLevel(level)

	if cfg.IsProduction() {
		log.Logger = zerolog.New(os.Stderr).With().Timestamp().Logger()
		return
	}
	log.Logger = log.Output(zerolog.ConsoleWriter{Out: os.Stderr, TimeFormat: time.RFC3339})
}

func main() {
	cfg, err := config.Load()
	if err != nil {
		log.Fatal().Err(err).Msg("failed to load config")
	}
	setupLogger(cfg)

	catalog := repo.NewCSVCatalogRepository(cfg.InventoryFile)
	sales := repo.NewCSVSalesRepository(cfg.SalesFile, catalog)
	metrics := repo.NewLedgerMetricsRepository(catalog, sales)

	// Creates the inventory file with its header on first run and fails
	// early on a corrupt one.
	items, err := catalog.Load()
	if err != nil {
		log.Fatal().Err(err).Str("path", cfg.InventoryFile).Msg("could not load inventory")
	}
	log.Info().
		Str("inventory", cfg.InventoryFile).
		Str("sales", cfg.SalesFile).
		Int("items", len(items)).
		Int("low_stock", len(repo.LowStock(items))).
		Msg("storage ready")

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	limiter := rl.New(cfg.RateLimitRPS, cfg.RateLimitBurst)
	go limiter.StartCleanupLoop(ctx, time.Minute, 5*time.Minute)

	srv := &http.Server{
		Addr:         fmt.Sprintf(":%d", cfg.Port),
		Handler:      api.NewRouter(handlers.NewServer(catalog, sales, metrics), limiter),
		ReadTimeout:  10 * time.Second,
		WriteTimeout: 30 * time.Second,
		IdleTimeout:  60 * time.Second,
	}

	// Graceful shutdown on SIGINT / SIGTERM
	go func() {
		log.Info().Msgf("✅ Dashboard running on :%d", cfg.Port)
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatal().Err(err).Msg("server error")
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	log.Info().Msg("shutting down")
	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer shutdownCancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		log.Error().Err(err).Msg("forced shutdown")
	}
}
