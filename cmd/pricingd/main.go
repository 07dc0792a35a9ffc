package main

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/redis/go-redis/v9"
	"github.com/shopspring/decimal"

	"github.com/lendcore/loan-pricing/internal/application/usecase"
	"github.com/lendcore/loan-pricing/internal/domain/port"
	"github.com/lendcore/loan-pricing/internal/domain/service"
	"github.com/lendcore/loan-pricing/internal/domain/valueobject"
	"github.com/lendcore/loan-pricing/internal/infrastructure/adapter"
	"github.com/lendcore/loan-pricing/internal/infrastructure/cache"
	"github.com/lendcore/loan-pricing/internal/infrastructure/config"
	"github.com/lendcore/loan-pricing/internal/infrastructure/eligibility"
	"github.com/lendcore/loan-pricing/internal/infrastructure/kafka"
	pgRepo "github.com/lendcore/loan-pricing/internal/infrastructure/persistence/postgres"
	grpcPresentation "github.com/lendcore/loan-pricing/internal/presentation/grpc"
	"github.com/lendcore/loan-pricing/internal/presentation/rest"
	pkgkafka "github.com/lendcore/loan-pricing/pkg/kafka"
	"github.com/lendcore/loan-pricing/pkg/money"
	"github.com/lendcore/loan-pricing/pkg/observability"
	pkgpostgres "github.com/lendcore/loan-pricing/pkg/postgres"
)

func main() {
	if err := run(); err != nil {
		slog.Error("loan-pricing exited", "error", err)
		os.Exit(1)
	}
}

func run() error {
	ctx, cancel := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer cancel()

	cfg := config.Load()

	logger := observability.InitLogger(observability.LogConfig{
		Level:   cfg.Telemetry.LogLevel,
		Format:  cfg.Telemetry.LogFormat,
		Service: cfg.ServiceName,
	})

	if err := cfg.Validate(); err != nil {
		return fmt.Errorf("invalid configuration: %w", err)
	}

	logger.Info("starting loan-pricing",
		"http_port", cfg.HTTPPort,
		"grpc_port", cfg.GRPCPort,
	)

	if cfg.Telemetry.OTLPEndpoint != "" {
		shutdown, err := observability.InitTracer(ctx, observability.TracingConfig{
			ServiceName: cfg.ServiceName,
			Endpoint:    cfg.Telemetry.OTLPEndpoint,
			Insecure:    true,
			SampleRatio: cfg.Telemetry.TraceRatio,
		})
		if err != nil {
			logger.Warn("failed to initialize tracer, continuing without tracing", "error", err)
		} else {
			defer func() { _ = shutdown(context.Background()) }() //nolint:errcheck // best-effort tracer shutdown
		}
	}

	meterProvider, metricsHandler, err := observability.InitMetrics(observability.MetricsConfig{
		ServiceName: cfg.ServiceName,
	})
	if err != nil {
		return fmt.Errorf("init metrics: %w", err)
	}
	defer func() { _ = meterProvider.Shutdown(context.Background()) }() //nolint:errcheck

	pricingMetrics, err := observability.NewPricingMetrics(meterProvider.Meter(cfg.ServiceName))
	if err != nil {
		return fmt.Errorf("init pricing metrics: %w", err)
	}

	currency, err := money.NewCurrency(cfg.Pricing.Currency)
	if err != nil {
		return fmt.Errorf("pricing currency: %w", err)
	}
	defaultRule, err := valueobject.NewFeeRule(cfg.Pricing.DefaultDailyMaxFee.Div(decimal.NewFromInt(100)))
	if err != nil {
		return fmt.Errorf("default fee rule: %w", err)
	}

	// Database connection.
	dbCtx, dbCancel := context.WithTimeout(ctx, 10*time.Second)
	defer dbCancel()

	pool, err := pkgpostgres.NewPool(dbCtx, pkgpostgres.Config{
		Host:     cfg.DB.Host,
		Port:     cfg.DB.Port,
		User:     cfg.DB.User,
		Password: cfg.DB.Password,
		Database: cfg.DB.Name,
		SSLMode:  cfg.DB.SSLMode,
		AppName:  cfg.ServiceName,
		MaxConns: cfg.DB.MaxConns,
		ReadOnly: true,
	})
	if err != nil {
		return fmt.Errorf("connect to database: %w", err)
	}
	defer pool.Close()
	logger.Info("connected to database")

	readiness := map[string]rest.ReadinessCheck{
		"postgres": func(ctx context.Context) error { return pkgpostgres.HealthCheck(ctx, pool) },
	}

	// Collaborator lookups.
	limits := pgRepo.NewCreditLimitRepo(pool, currency)
	var feeRules port.FeeRuleProvider = adapter.NewFallbackFeeRuleProvider(
		pgRepo.NewFeeRuleRepo(pool, pgRepo.DefaultFeeRuleFeature), defaultRule, logger)

	var feeRuleCache *cache.FeeRuleCache
	if cfg.Redis.Addr != "" && cfg.Redis.FeeRuleTTL > 0 {
		redisClient, err := cache.NewRedisClient(ctx, cfg.Redis.Addr, cfg.Redis.Password, cfg.Redis.DB)
		if err != nil {
			return fmt.Errorf("connect to redis: %w", err)
		}
		defer redisClient.Close()
		feeRuleCache = cache.NewFeeRuleCache(feeRules, redisClient, cfg.Redis.FeeRuleTTL, logger)
		feeRules = feeRuleCache
		readiness["redis"] = func(ctx context.Context) error { return pingRedis(ctx, redisClient) }
		logger.Info("fee rule cache enabled", "addr", cfg.Redis.Addr, "ttl", cfg.Redis.FeeRuleTTL)
	}

	// Event publishing.
	kafkaCfg := pkgkafka.Config{
		ClientID:      cfg.ServiceName,
		ConsumerGroup: cfg.Kafka.ConsumerGroup,
		Brokers:       cfg.Kafka.Brokers,
		TLS:           cfg.Kafka.TLS,
		SASLEnabled:   cfg.Kafka.SASLMechanism != "",
		SASLMechanism: cfg.Kafka.SASLMechanism,
		SASLUsername:  cfg.Kafka.SASLUsername,
		SASLPassword:  cfg.Kafka.SASLPassword,
	}
	producer, err := pkgkafka.NewProducer(kafkaCfg)
	if err != nil {
		return fmt.Errorf("create kafka producer: %w", err)
	}
	defer producer.Close()
	publisher := kafka.NewEventPublisher(producer, cfg.Kafka.EventsTopic, logger)

	// Domain services.
	celFilter, err := eligibility.NewCELFilter(logger)
	if err != nil {
		return fmt.Errorf("create eligibility filter: %w", err)
	}
	catalog := eligibility.NewValidatingCatalog(
		pgRepo.NewProductCatalogRepo(pool, cfg.Pricing.SmallAmountThreshold), celFilter)
	selector := service.NewTenorSelector(service.NewAffordabilityFilter(), celFilter)
	engine := service.NewAmortizationEngine()
	orchestrator := service.NewPricingOrchestrator(service.NewFeeRuleAdjuster(), engine)

	quoteUC := usecase.NewQuoteLoanChoicesUseCase(limits, catalog, feeRules, publisher, selector, orchestrator, pricingMetrics, logger)
	scheduleUC := usecase.NewGenerateScheduleUseCase(engine, publisher, pricingMetrics, logger)
	tenorsUC := usecase.NewSelectTenorsUseCase(limits, catalog, selector, logger)

	// gRPC server.
	handler := grpcPresentation.NewPricingHandler(quoteUC, scheduleUC, tenorsUC, logger)
	grpcServer, err := grpcPresentation.NewServer(handler, grpcPresentation.ServerConfig{
		ServiceName:    cfg.ServiceName,
		Reflection:     cfg.GRPCReflection,
		RequestTimeout: cfg.Pricing.RequestTimeout,
		CertFile:       cfg.TLS.CertFile,
		KeyFile:        cfg.TLS.KeyFile,
		ClientCAFile:   cfg.TLS.ClientCAFile,
	}, logger)
	if err != nil {
		return fmt.Errorf("create gRPC server: %w", err)
	}

	// HTTP server (health checks, metrics).
	mux := http.NewServeMux()
	rest.NewHealthHandler(cfg.ServiceName, readiness, metricsHandler, logger).RegisterRoutes(mux)

	httpServer := &http.Server{
		Addr:              cfg.HTTPAddr(),
		Handler:           mux,
		ReadHeaderTimeout: 10 * time.Second,
	}

	errCh := make(chan error, 3)

	// Settings changes invalidate the cached fee rule.
	if feeRuleCache != nil && cfg.Kafka.SettingsTopic != "" {
		listener := kafka.NewSettingsListener(pgRepo.DefaultFeeRuleFeature, feeRuleCache, logger)
		consumer, err := pkgkafka.NewConsumer(kafkaCfg, cfg.Kafka.SettingsTopic, listener.Handle, logger)
		if err != nil {
			return fmt.Errorf("create settings consumer: %w", err)
		}
		defer consumer.Close()

		go func() {
			if err := consumer.Start(ctx); err != nil && !errors.Is(err, context.Canceled) {
				errCh <- fmt.Errorf("settings consumer error: %w", err)
			}
		}()
		logger.Info("listening for fee rule changes", "topic", cfg.Kafka.SettingsTopic)
	}

	go func() {
		if err := grpcServer.Serve(cfg.GRPCAddr()); err != nil {
			errCh <- fmt.Errorf("gRPC server error: %w", err)
		}
	}()

	go func() {
		logger.Info("HTTP server starting", "port", cfg.HTTPPort)
		if err := httpServer.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- fmt.Errorf("HTTP server error: %w", err)
		}
	}()

	var runErr error
	select {
	case <-ctx.Done():
		logger.Info("shutdown signal received")
	case runErr = <-errCh:
		logger.Error("server error", "error", runErr)
	}

	// Graceful shutdown.
	grpcServer.GracefulStop()

	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 15*time.Second)
	defer shutdownCancel()

	if err := httpServer.Shutdown(shutdownCtx); err != nil {
		logger.Error("HTTP server shutdown error", "error", err)
	}

	logger.Info("loan-pricing stopped")
	return runErr
}

func pingRedis(ctx context.Context, client *redis.Client) error {
	return client.Ping(ctx).Err()
}
