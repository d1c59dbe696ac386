package main

import (
	"context"
	"log/slog"
	"os"
	"os/signal"
	"syscall"

	"github.com/joho/godotenv"
	"golang.org/x/sync/errgroup"

	"familypay/internal/bot"
	"familypay/internal/config"
	"familypay/internal/events"
	"familypay/internal/ledger"
	"familypay/internal/report"
	"familypay/internal/session"
	"familypay/internal/storage"
)

func main() {
	// Load .env file for local development (ignore errors in production/docker)
	_ = godotenv.Load()

	// Setup structured logging
	logger := slog.New(slog.NewTextHandler(os.Stdout, &slog.HandlerOptions{
		Level: slog.LevelInfo,
	}))
	slog.SetDefault(logger)

	logger.Info("Starting familypay")

	// Load configuration
	cfg := config.Load()

	// Validate configuration
	if err := cfg.Validate(); err != nil {
		logger.Error("Configuration validation failed", "error", err)
		os.Exit(1)
	}

	// Initialize SQLite store and run migrations
	store, err := storage.NewStore(cfg.SQLiteDBPath)
	if err != nil {
		logger.Error("Failed to initialize storage", "error", err, "path", cfg.SQLiteDBPath)
		os.Exit(1)
	}
	defer store.Close()

	// Initialize AMQP publisher for ledger events (optional)
	var publisher *events.Publisher
	if cfg.AMQPURL != "" {
		publisher, err = events.NewPublisher(cfg.AMQPURL, cfg.AMQPExchange, cfg.AMQPQueue)
		if err != nil {
			logger.Error("Failed to initialize AMQP publisher", "error", err)
			os.Exit(1)
		}
		logger.Info("AMQP publisher initialized", "exchange", cfg.AMQPExchange, "queue", cfg.AMQPQueue)
	} else {
		logger.Info("AMQP publishing disabled - no AMQP_URL provided")
	}

	ledgerService := ledger.NewService(store, publisher)
	defer ledgerService.Close()

	engine := session.NewEngine(ledgerService, report.NewBuilder(store))

	tgBot, err := bot.New(cfg.TelegramToken, cfg.PollTimeout, engine)
	if err != nil {
		logger.Error("Failed to initialize Telegram bot", "error", err)
		os.Exit(1)
	}

	// Setup graceful shutdown
	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	g, ctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		return tgBot.Run(ctx)
	})

	if err := g.Wait(); err != nil && err != context.Canceled {
		logger.Error("Bot stopped", "error", err)
		os.Exit(1)
	}

	logger.Info("Shutdown complete")
}
