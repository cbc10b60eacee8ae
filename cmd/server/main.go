package main

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"

	httpAdapter "github.com/corebank/corebank/internal/adapter/http"
	"github.com/corebank/corebank/internal/adapter/http/handler"
	"github.com/corebank/corebank/internal/adapter/messaging"
	"github.com/corebank/corebank/internal/adapter/refgen"
	postgresRepo "github.com/corebank/corebank/internal/adapter/repository/postgres"
	redisRepo "github.com/corebank/corebank/internal/adapter/repository/redis"
	"github.com/corebank/corebank/internal/infrastructure/config"
	"github.com/corebank/corebank/internal/infrastructure/logger"
	"github.com/corebank/corebank/internal/infrastructure/metrics"
	"github.com/corebank/corebank/internal/infrastructure/postgres"
	"github.com/corebank/corebank/internal/infrastructure/redis"
	"github.com/corebank/corebank/internal/usecase"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		fmt.Fprintf(os.Stderr, "failed to load configuration: %v\n", err)
		os.Exit(1)
	}

	log := logger.New(logger.Config{Level: cfg.LogLevel, Format: cfg.LogFormat, Service: "corebank"})

	ctx := context.Background()

	// Migrate first so the repositories see the final schema.
	if err := postgres.RunMigrations(cfg.DatabaseURL, cfg.MigrationsPath, log); err != nil {
		log.Fatal().Err(err).Msg("failed to run migrations")
	}

	pool, err := postgres.NewPool(ctx, cfg.DatabaseURL, cfg.DatabaseMaxConns, cfg.DatabaseMinConns)
	if err != nil {
		log.Fatal().Err(err).Msg("failed to connect to postgres")
	}
	defer pool.Close()
	log.Info().Msg("connected to postgres")

	redisClient, err := redis.NewClient(ctx, cfg.RedisURL)
	if err != nil {
		log.Fatal().Err(err).Msg("failed to connect to redis")
	}
	defer redisClient.Close()
	log.Info().Msg("connected to redis")

	// Repositories and stores
	txManager := postgresRepo.NewTxManager(pool)
	accountRepo := postgresRepo.NewAccountRepository(pool)
	ledgerRepo := postgresRepo.NewLedgerRepository(pool)
	customerRepo := postgresRepo.NewCustomerRepository(pool)
	idempotencyStore := redisRepo.NewIdempotencyStore(redisClient, cfg.IdempotencyTTL)
	retrier := postgresRepo.NewRetrier(log)
	refGen := refgen.New()
	m := metrics.New()

	// Notifier: RabbitMQ when configured, log fallback otherwise.
	var notifier usecase.Notifier
	if cfg.AMQPURL != "" {
		amqpNotifier, err := messaging.NewNotifier(cfg.AMQPURL, cfg.AMQPExchange, log, m)
		if err != nil {
			log.Fatal().Err(err).Msg("failed to connect notifier to rabbitmq")
		}
		defer amqpNotifier.Close()
		notifier = amqpNotifier
	} else {
		log.Warn().Msg("AMQP_URL not set, transaction events will only be logged")
		notifier = messaging.NewLogNotifier(log)
	}

	// Use cases
	transactionUC := usecase.NewTransactionUseCase(
		txManager, accountRepo, ledgerRepo, idempotencyStore, refGen, retrier, notifier, log, m)
	ledgerUC := usecase.NewLedgerUseCase(accountRepo, ledgerRepo)
	projectionUC := usecase.NewProjectionUseCase(accountRepo, customerRepo)
	recoveryUC := usecase.NewRecoveryUseCase(idempotencyStore, ledgerRepo, log, m)

	// Reconcile idempotency records left in flight by a previous crash.
	completed, released, err := recoveryUC.ReconcileIdempotency(ctx)
	if err != nil {
		log.Fatal().Err(err).Msg("idempotency recovery failed")
	}
	log.Info().
		Int("completed", completed).
		Int("released", released).
		Msg("idempotency recovery finished")

	// Projection consumer
	consumerCtx, stopConsumer := context.WithCancel(ctx)
	defer stopConsumer()
	if cfg.AMQPURL != "" {
		consumer, err := messaging.NewProjectionConsumer(cfg.AMQPURL, messaging.ConsumerConfig{
			Exchange:        cfg.AMQPUpstreamXchg,
			Queue:           cfg.AMQPProjectionQueue,
			DeadLetterQueue: cfg.AMQPDeadLetterQueue,
			MaxRetries:      cfg.AMQPMaxRetries,
		}, projectionUC, log, m)
		if err != nil {
			log.Fatal().Err(err).Msg("failed to start projection consumer")
		}
		defer consumer.Close()

		go func() {
			if err := consumer.Start(consumerCtx); err != nil {
				log.Error().Err(err).Msg("projection consumer stopped")
			}
		}()
	}

	// HTTP surface
	router := httpAdapter.NewRouter(httpAdapter.RouterConfig{
		TransactionHandler: handler.NewTransactionHandler(transactionUC),
		AccountHandler:     handler.NewAccountHandler(accountRepo, ledgerUC),
		EntryHandler:       handler.NewEntryHandler(ledgerUC),
		HealthHandler:      handler.NewHealthHandler(pool, redisClient),
		Logger:             log,
	})

	server := &http.Server{
		Addr:         fmt.Sprintf(":%s", cfg.HTTPPort),
		Handler:      router,
		ReadTimeout:  cfg.HTTPReadTimeout,
		WriteTimeout: cfg.HTTPWriteTimeout,
		IdleTimeout:  cfg.HTTPIdleTimeout,
	}

	go func() {
		log.Info().Str("port", cfg.HTTPPort).Msg("starting server")
		if err := server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Fatal().Err(err).Msg("server failed")
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	log.Info().Msg("shutting down server...")
	stopConsumer()

	shutdownCtx, cancel := context.WithTimeout(context.Background(), cfg.HTTPShutdownTimeout)
	defer cancel()

	if err := server.Shutdown(shutdownCtx); err != nil {
		log.Fatal().Err(err).Msg("server forced to shutdown")
	}

	log.Info().Msg("server stopped")
}
