package main

import (
	"context"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/joho/godotenv"

	"masareef/internal/amqp"
	"masareef/internal/backend"
	"masareef/internal/cache"
	"masareef/internal/config"
	"masareef/internal/core"
	apphttp "masareef/internal/http"
	applog "masareef/internal/log"
	"masareef/internal/services"
)

func main() {
	// Load .env file for local development (ignore errors in production/docker)
	_ = godotenv.Load()

	logger := applog.New(applog.DefaultConfig()).WithComponent(applog.ComponentApp)
	applog.SetDefault(logger)

	cfg := config.Load()
	if err := cfg.Validate(); err != nil {
		logger.Error("Configuration validation failed", "error", err)
		os.Exit(1)
	}

	factory := backend.NewFactory(logger.Logger)

	primaryCfg, err := backend.FromAppConfig(cfg, backend.PrimarySlot)
	if err != nil {
		logger.Error("Invalid primary backend configuration", "error", err)
		os.Exit(1)
	}
	primary, err := factory.CreateStore(primaryCfg)
	if err != nil {
		logger.Error("Failed to initialize primary backend", "error", err, applog.FieldBackend, cfg.PrimaryBackend)
		os.Exit(1)
	}
	if primary.Cleanup != nil {
		defer primary.Cleanup()
	}

	fallbackCfg, err := backend.FromAppConfig(cfg, backend.FallbackSlot)
	if err != nil {
		logger.Error("Invalid fallback backend configuration", "error", err)
		os.Exit(1)
	}
	fallback, err := factory.CreateStore(fallbackCfg)
	if err != nil {
		logger.Error("Failed to initialize fallback backend", "error", err, applog.FieldBackend, cfg.FallbackBackend)
		os.Exit(1)
	}
	if fallback.Cleanup != nil {
		defer fallback.Cleanup()
	}

	ledgerCache := cache.NewLRUCache[[]core.Transaction](cfg.CacheSize, cfg.CacheTTL)
	cacheManager := cache.NewManager()
	cacheManager.Register(ledgerCache)
	cacheManager.StartCleanup(time.Minute)
	defer cacheManager.Stop()

	// AMQP mirror publishing is optional; appends still succeed without it.
	var mirror services.MirrorPublisher
	if cfg.AMQPURL != "" {
		amqpClient, err := amqp.NewClient(cfg.AMQPURL, cfg.AMQPExchange, cfg.AMQPQueue)
		if err != nil {
			logger.Error("Failed to initialize AMQP client", "error", err)
			os.Exit(1)
		}
		defer amqpClient.Close()
		mirror = amqpClient
		logger.Info("AMQP mirror publishing enabled", "exchange", cfg.AMQPExchange, "queue", cfg.AMQPQueue)
	} else {
		logger.Info("AMQP mirror publishing disabled - no AMQP_URL provided")
	}

	svc := services.NewLedgerService(primary.Store, fallback.Store, ledgerCache, mirror)

	srv := apphttp.NewServer(":"+cfg.Port, svc, cfg.DefaultUserID)
	srv.ReadTimeout = 10 * time.Second
	srv.WriteTimeout = 10 * time.Second
	srv.IdleTimeout = 60 * time.Second
	srv.MaxHeaderBytes = 1 << 16 // 64KB

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	go func() {
		sigChan := make(chan os.Signal, 1)
		signal.Notify(sigChan, syscall.SIGINT, syscall.SIGTERM)
		sig := <-sigChan
		logger.Info("Shutdown signal received", "signal", sig.String())

		shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 30*time.Second)
		defer shutdownCancel()

		if err := srv.Shutdown(shutdownCtx); err != nil {
			logger.Error("Server shutdown error", "error", err)
		}
		cancel()
	}()

	logger.Info("Starting masareef server",
		"port", cfg.Port,
		"primary", cfg.PrimaryBackend,
		"fallback", cfg.FallbackBackend,
		"cache_ttl", cfg.CacheTTL.String())
	if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
		logger.Error("Server error", "error", err, "port", cfg.Port)
		os.Exit(1)
	}

	<-ctx.Done()
	logger.Info("Server stopped gracefully")
}
