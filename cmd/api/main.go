package main

import (
	"context"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"razorpay-integration/config"
	httpHandler "razorpay-integration/internal/adapter/http/handler"
	pgStorage "razorpay-integration/internal/adapter/storage/postgres"
	redisStorage "razorpay-integration/internal/adapter/storage/redis"
	"razorpay-integration/internal/core/ports"
	"razorpay-integration/internal/razorpay"
	"razorpay-integration/internal/service"
	"razorpay-integration/pkg/logger"
)

func main() {
	// Load configuration
	cfg, err := config.Load("")
	if err != nil {
		fmt.Fprintf(os.Stderr, "failed to load config: %v\n", err)
		os.Exit(1)
	}

	// Initialize logger
	log := logger.New(cfg.Log.Level, cfg.Log.Pretty)

	log.Info().
		Str("mode", cfg.Server.Mode).
		Int("port", cfg.Server.Port).
		Msg("Starting Razorpay Integration Service")

	ctx := context.Background()

	// Initialize PostgreSQL pool
	pool, err := pgStorage.NewPool(ctx, cfg.Database, log)
	if err != nil {
		log.Fatal().Err(err).Msg("Failed to connect to PostgreSQL")
	}
	defer pool.Close()
	log.Info().Msg("PostgreSQL connected")

	// Initialize Redis client
	rdb, err := redisStorage.NewClient(ctx, cfg.Redis, log)
	if err != nil {
		log.Fatal().Err(err).Msg("Failed to connect to Redis")
	}
	defer rdb.Close()
	log.Info().Msg("Redis connected")

	// Initialize gateway client. Construction validates the credentials
	// against the live gateway, so a bad key pair fails the boot here
	// instead of on the first payment.
	gateway, err := razorpay.NewClient(ctx, cfg.Razorpay, log)
	if err != nil {
		log.Fatal().Err(err).Msg("Razorpay credential validation failed")
	}
	log.Info().Msg("Razorpay credentials validated")

	// Initialize repositories and stores
	logRepo := pgStorage.NewPaymentLogRepo(pool)
	replayGuard := redisStorage.NewReplayGuard(rdb)

	// Initialize services
	sigSvc := service.NewHMACSignatureService()
	linkSvc := service.NewPaymentLinkService(gateway, logRepo, log)
	callbackSvc := service.NewCallbackService(sigSvc, replayGuard, logRepo, cfg.Razorpay.KeySecret, log)

	// Background refund sweep: Failed entries move to Refund and each is
	// fully refunded on the gateway.
	sweeper := service.NewRefundSweeper(logRepo, gateway, cfg.Sweeper.Interval, cfg.Sweeper.Batch, log)
	sweepCtx, stopSweeper := context.WithCancel(ctx)
	defer stopSweeper()
	go sweeper.Start(sweepCtx)

	// Initialize health checkers
	pgHealth := pgStorage.NewHealthCheck(pool)
	redisHealth := redisStorage.NewHealthCheck(rdb)

	// Setup Gin router with all routes
	router := httpHandler.SetupRouter(httpHandler.RouterDeps{
		LinkSvc:        linkSvc,
		CallbackSvc:    callbackSvc,
		HealthCheckers: []ports.HealthChecker{pgHealth, redisHealth},
		Mode:           cfg.Server.Mode,
		Logger:         log,
	})

	// HTTP Server with graceful shutdown
	addr := fmt.Sprintf("%s:%d", cfg.Server.Host, cfg.Server.Port)
	srv := &http.Server{
		Addr:    addr,
		Handler: router,
	}

	// Start server in goroutine
	go func() {
		log.Info().Str("addr", addr).Msg("HTTP server listening")
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatal().Err(err).Msg("HTTP server failed")
		}
	}()

	// Graceful shutdown
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit
	log.Info().Msg("Shutting down server...")

	stopSweeper()

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	if err := srv.Shutdown(shutdownCtx); err != nil {
		log.Error().Err(err).Msg("Server forced to shutdown")
	}

	log.Info().Msg("Server exited")
}
