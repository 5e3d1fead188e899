package main

import (
	"context"
	"os"
	"os/signal"
	"syscall"

	"github.com/joho/godotenv"
	"golang.org/x/sync/errgroup"

	"masareef/internal/amqp"
	"masareef/internal/config"
	"masareef/internal/flatfile"
	applog "masareef/internal/log"
	"masareef/internal/worker"
)

func main() {
	// Load .env file for local development (ignore errors in production/docker)
	_ = godotenv.Load()

	logger := applog.New(applog.DefaultConfig()).WithComponent(applog.ComponentWorker)
	applog.SetDefault(logger)

	logger.Info("Starting masareef-worker")

	cfg := config.Load()
	if err := cfg.Validate(); err != nil {
		logger.Error("Configuration validation failed", "error", err)
		os.Exit(1)
	}
	if cfg.AMQPURL == "" {
		logger.Error("AMQP_URL is required for the mirror worker")
		os.Exit(1)
	}

	// The worker maintains the flat-file replica of the primary ledger.
	replica, err := flatfile.NewStore(cfg.FlatFileDir)
	if err != nil {
		logger.Error("Failed to initialize flat-file replica", "error", err, "dir", cfg.FlatFileDir)
		os.Exit(1)
	}

	amqpClient, err := amqp.NewClient(cfg.AMQPURL, cfg.AMQPExchange, cfg.AMQPQueue)
	if err != nil {
		logger.Error("Failed to initialize AMQP client", "error", err)
		os.Exit(1)
	}
	defer amqpClient.Close()

	mirrorWorker := worker.NewMirrorWorker(replica)

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		return amqpClient.ConsumeMirror(gctx, func(msg *amqp.MirrorMessage) error {
			return mirrorWorker.HandleMirrorMessage(gctx, msg)
		})
	})

	logger.Info("Mirror worker running",
		"queue", cfg.AMQPQueue,
		"replica_dir", cfg.FlatFileDir)

	if err := g.Wait(); err != nil && err != context.Canceled {
		logger.Error("Mirror worker stopped with error", "error", err)
		os.Exit(1)
	}
	logger.Info("Mirror worker stopped gracefully")
}
