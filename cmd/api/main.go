package main

import (
	"context"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"dealer-payment-service/config"
	httpHandler "dealer-payment-service/internal/adapter/http/handler"
	pgStorage "dealer-payment-service/internal/adapter/storage/postgres"
	redisStorage "dealer-payment-service/internal/adapter/storage/redis"
	"dealer-payment-service/internal/core/ports"
	"dealer-payment-service/internal/service"
	"dealer-payment-service/pkg/logger"
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

	if err := cfg.Validate(); err != nil {
		log.Fatal().Err(err).Msg("Invalid configuration")
	}

	loc, err := time.LoadLocation(cfg.Payment.Timezone)
	if err != nil {
		log.Fatal().Err(err).Str("timezone", cfg.Payment.Timezone).Msg("Invalid timezone")
	}

	log.Info().
		Str("mode", cfg.Server.Mode).
		Int("port", cfg.Server.Port).
		Bool("vnpay", cfg.VNPay.Enabled).
		Bool("sepay", cfg.SePay.Enabled).
		Msg("Starting Dealer Payment Service")

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

	// Initialize repositories
	orderRepo := pgStorage.NewOrderRepo(pool)
	depositRepo := pgStorage.NewDepositRepo(pool)
	invoiceRepo := pgStorage.NewInvoiceRepo(pool)
	txRepo := pgStorage.NewTransactionRepo(pool)
	transactor := pgStorage.NewTransactor(pool)

	// Initialize Redis stores
	ackCache := redisStorage.NewAckCache(rdb)
	rateLimitStore := redisStorage.NewRateLimitStore(rdb)

	// Initialize gateway trust primitives
	vnpCodec := service.NewVNPaySignatureCodec(cfg.VNPay.HashSecret)
	sepVerifier := service.NewSePayWebhookVerifier(cfg.SePay.APIKey, cfg.SePay.WebhookSecret)
	tokenSvc := service.NewJWTTokenService(cfg.JWT.Secret, cfg.JWT.Expiry, cfg.JWT.Issuer)

	// Optional success notification email
	var notifier ports.Notifier
	if cfg.Mail.Enabled {
		notifier = service.NewMailNotifier(cfg.Mail, log)
	}

	// Initialize business services
	paymentSvc := service.NewPaymentService(
		orderRepo,
		depositRepo,
		invoiceRepo,
		txRepo,
		transactor,
		vnpCodec,
		cfg.VNPay,
		cfg.SePay,
		cfg.Payment,
		loc,
		log,
	)
	reconSvc := service.NewReconciliationService(
		txRepo,
		depositRepo,
		invoiceRepo,
		orderRepo,
		transactor,
		vnpCodec,
		sepVerifier,
		ackCache,
		notifier,
		cfg.VNPay,
		cfg.SePay,
		loc,
		log,
	)

	// Initialize health checkers
	pgHealth := pgStorage.NewHealthCheck(pool)
	redisHealth := redisStorage.NewHealthCheck(rdb)

	// Setup Gin router with all routes
	router := httpHandler.SetupRouter(httpHandler.RouterDeps{
		PaymentSvc:     paymentSvc,
		ReconSvc:       reconSvc,
		TokenSvc:       tokenSvc,
		RateLimitStore: rateLimitStore,
		HealthCheckers: []ports.HealthChecker{pgHealth, redisHealth},
		SePayCfg:       cfg.SePay,
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

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	if err := srv.Shutdown(shutdownCtx); err != nil {
		log.Error().Err(err).Msg("Server forced to shutdown")
	}

	log.Info().Msg("Server exited")
}
