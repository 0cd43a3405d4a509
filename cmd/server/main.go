package main

import (
	"context"
	"os"
	"os/signal"
	"syscall"

	"github.com/gofiber/fiber/v2"
	"github.com/joho/godotenv"

	"github.com/bankcore/debit-card-service/internal/api"
	"github.com/bankcore/debit-card-service/internal/config"
	"github.com/bankcore/debit-card-service/internal/debit"
	"github.com/bankcore/debit-card-service/internal/events"
	eventskafka "github.com/bankcore/debit-card-service/internal/events/kafka"
	"github.com/bankcore/debit-card-service/internal/gateway"
	"github.com/bankcore/debit-card-service/internal/logging"
	"github.com/bankcore/debit-card-service/internal/resilience"
	"github.com/bankcore/debit-card-service/internal/storage/mongodb"
)

func main() {
	// Missing .env is fine; the environment may already be populated.
	_ = godotenv.Load()

	cfg := config.FromEnv()

	logger, err := logging.NewZapLogger(cfg.LogLevel)
	if err != nil {
		panic(err)
	}
	defer func() { _ = logger.Sync() }()

	ctx := context.Background()

	store, mongoClient, err := mongodb.Connect(ctx, cfg.MongoURI, cfg.MongoDatabase)
	if err != nil {
		logger.Errorf("mongo connection failed: %v", err)
		os.Exit(1)
	}
	defer func() { _ = mongoClient.Disconnect(context.Background()) }()

	if err := store.EnsureIndexes(ctx); err != nil {
		logger.Errorf("mongo index creation failed: %v", err)
		os.Exit(1)
	}

	resilienceCfg := resilience.DefaultConfig()
	resilienceCfg.CallTimeout = cfg.CallTimeout

	customerGateway := gateway.NewCustomerGateway(
		resilience.NewCaller("customer", resilienceCfg, logger),
		gateway.NewHTTPClient(cfg.CustomerServiceURL),
	)
	accountGateway := gateway.NewAccountGateway(
		resilience.NewCaller("account", resilienceCfg, logger),
		gateway.NewHTTPClient(cfg.AccountServiceURL),
	)
	transactionGateway := gateway.NewTransactionGateway(
		resilience.NewCaller("transaction", resilienceCfg, logger),
		gateway.NewHTTPClient(cfg.TransactionServiceURL),
	)

	var publisher events.Publisher = events.NopPublisher{}

	if len(cfg.KafkaBrokers) > 0 {
		kafkaPublisher := eventskafka.NewPublisher(cfg.KafkaBrokers, cfg.KafkaTopic)
		defer func() { _ = kafkaPublisher.Close() }()

		publisher = kafkaPublisher
	}

	validator := debit.NewValidator(customerGateway, accountGateway, store, logger)
	orchestrator := debit.NewOrchestrator(transactionGateway, logger)
	service := debit.NewService(validator, orchestrator, store, publisher, logger)

	app := fiber.New(fiber.Config{DisableStartupMessage: true})
	api.NewHandler(service, logger).Register(app)

	go func() {
		logger.Infof("debit card service listening on %s", cfg.ListenAddr)

		if err := app.Listen(cfg.ListenAddr); err != nil {
			logger.Errorf("http server stopped: %v", err)
			os.Exit(1)
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	logger.Infof("shutting down")

	if err := app.Shutdown(); err != nil {
		logger.Errorf("shutdown error: %v", err)
	}
}
