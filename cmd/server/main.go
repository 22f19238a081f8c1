package main

import (
	"context"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"go.uber.org/zap"

	"trading-journal-go/internal/config"
	"trading-journal-go/internal/journal"
	"trading-journal-go/internal/logger"
	"trading-journal-go/internal/notify"
	"trading-journal-go/internal/server"
	"trading-journal-go/internal/storage"
)

func main() {
	// Load application configuration
	cfg, err := config.LoadConfig("./configs")
	if err != nil {
		// We can't use the logger here because it's not initialized yet.
		fmt.Fprintf(os.Stderr, "could not load config: %v\n", err)
		os.Exit(1)
	}

	// Initialize logger
	log, err := logger.NewLogger(cfg.Logger.Level, cfg.Logger.Format)
	if err != nil {
		fmt.Fprintf(os.Stderr, "could not initialize logger: %v\n", err)
		os.Exit(1)
	}
	defer log.Sync()
	log.Info("Configuration loaded")

	// Initialize the blob store
	store, err := storage.NewStore(cfg.Database.DSN)
	if err != nil {
		log.Fatal("Failed to open journal storage", zap.Error(err))
	}
	log.Info("Journal storage opened", zap.String("dsn", cfg.Database.DSN))

	// Record stores and notification gateway
	trades := journal.NewTradeStore(store, log)
	alerts := journal.NewAlertStore(store, log)
	settings := journal.NewSettingsStore(store, log)
	pairs := journal.NewPairStore(store, log)
	pushClient := notify.NewPushClient(&cfg.Push, log.Named("push"))

	svc := journal.NewService(log, trades, alerts, settings, pairs, pushClient, pushClient)

	// Setup context for graceful shutdown
	ctx, cancel := context.WithCancel(context.Background())
	go func() {
		sigchan := make(chan os.Signal, 1)
		signal.Notify(sigchan, syscall.SIGINT, syscall.SIGTERM)
		<-sigchan
		log.Info("Shutdown signal received, gracefully shutting down...")
		cancel()
	}()

	srv := server.New(cfg.Server.Port, log, svc)
	go func() {
		if err := srv.Start(); err != nil && err != http.ErrServerClosed {
			log.Fatal("API server failed", zap.Error(err))
		}
	}()

	<-ctx.Done()

	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer shutdownCancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		log.Error("Failed to shut down API server", zap.Error(err))
	}

	log.Info("Journal server has been shut down.")
}
