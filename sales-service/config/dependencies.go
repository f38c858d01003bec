package config

import (
	"context"
	"fmt"
	"os"

	"github.com/jmoiron/sqlx"
	_ "github.com/lib/pq"
	"github.com/motorline/sales-system/sales-service/application"
	"github.com/motorline/sales-system/sales-service/handlers"
	"github.com/motorline/sales-system/sales-service/infrastructure"
	sharedinfra "github.com/motorline/sales-system/shared/infrastructure"
	"github.com/motorline/sales-system/shared/telemetry"
	"github.com/redis/go-redis/v9"
	"github.com/rs/zerolog"
)

type Dependencies struct {
	Logger zerolog.Logger

	// Storage
	DB    *sqlx.DB
	Redis *redis.Client

	// Repositories
	OrderRepository     *infrastructure.PostgresOrderRepository
	StockRepository     *infrastructure.PostgresStockRepository
	FinanceRepository   *infrastructure.PostgresFinanceRepository
	DispatchRepository  *infrastructure.PostgresDispatchRepository
	SagaStateRepository *infrastructure.PostgresSagaStateRepository

	// Saga plumbing
	StateCache    *infrastructure.RedisStateCache
	SignalChannel *infrastructure.RedisSignalChannel

	// Use Cases
	Activities       *application.Activities
	FulfillOrder     *application.FulfillOrder
	DispatchDelivery *application.DispatchDelivery
	GetOrder         *application.GetOrder
	SignalOrder      *application.SignalOrder

	// HTTP Handlers
	OrderHandlers *handlers.OrderHandlers

	// Event Handlers
	OrderEventHandlers *handlers.OrderEventHandlers

	// Infrastructure
	EventPublisher  *sharedinfra.SNSPublisherAdapter
	EventSubscriber *sharedinfra.SQSSubscriberAdapter

	// Telemetry
	Telemetry         *telemetry.Telemetry
	TelemetryShutdown func()
}

func BuildDependencies(ctx context.Context, config *Config) (*Dependencies, error) {
	deps := &Dependencies{}

	logger := zerolog.New(os.Stdout).With().
		Timestamp().
		Str("service", config.ServiceName).
		Logger()
	deps.Logger = logger

	// Initialize telemetry first
	if config.Telemetry.Enabled {
		tel, telemetryShutdown, err := telemetry.Init(ctx, telemetry.Config{
			ServiceName:    config.ServiceName,
			ServiceVersion: "1.0.0",
			OTLPEndpoint:   config.Telemetry.OTLPEndpoint,
		})
		if err != nil {
			logger.Warn().Err(err).Msg("failed to initialize telemetry, continuing without it")
		} else {
			deps.Telemetry = tel
			deps.TelemetryShutdown = telemetryShutdown
		}
	}

	// Initialize database
	db, err := sqlx.Connect("postgres", config.GetDatabaseURL())
	if err != nil {
		return nil, fmt.Errorf("failed to connect to database: %w", err)
	}
	if err := db.Ping(); err != nil {
		db.Close()
		return nil, fmt.Errorf("failed to ping database: %w", err)
	}
	deps.DB = db

	// Initialize Redis
	redisClient := redis.NewClient(&redis.Options{
		Addr:     config.Redis.Addr,
		Password: config.Redis.Password,
		DB:       config.Redis.DB,
	})
	if err := redisClient.Ping(ctx).Err(); err != nil {
		db.Close()
		return nil, fmt.Errorf("failed to ping redis: %w", err)
	}
	deps.Redis = redisClient

	// Initialize AWS infrastructure
	eventPublisher, err := sharedinfra.NewSNSPublisherAdapter(config.AWS.SNSTopicArn)
	if err != nil {
		return nil, fmt.Errorf("failed to create SNS publisher: %w", err)
	}
	deps.EventPublisher = eventPublisher

	eventSubscriber, err := sharedinfra.NewSQSSubscriberAdapter(config.AWS.SQSQueueURL, logger)
	if err != nil {
		return nil, fmt.Errorf("failed to create SQS subscriber: %w", err)
	}
	deps.EventSubscriber = eventSubscriber

	// Initialize repositories
	deps.OrderRepository = infrastructure.NewPostgresOrderRepository(db)
	deps.StockRepository = infrastructure.NewPostgresStockRepository(db)
	deps.FinanceRepository = infrastructure.NewPostgresFinanceRepository(db)
	deps.DispatchRepository = infrastructure.NewPostgresDispatchRepository(db)
	deps.SagaStateRepository = infrastructure.NewPostgresSagaStateRepository(db)

	// Initialize saga plumbing
	deps.StateCache = infrastructure.NewRedisStateCache(redisClient)
	deps.SignalChannel = infrastructure.NewRedisSignalChannel(redisClient)

	// Initialize use cases
	deps.Activities = application.NewActivities(
		deps.OrderRepository,
		deps.StockRepository,
		deps.FinanceRepository,
		deps.DispatchRepository,
		logger,
	)

	timeouts := application.SagaTimeouts{
		ResupplyWait: config.Saga.ResupplyWait,
		FinanceWait:  config.Saga.FinanceWait,
		DeliveryWait: config.Saga.DeliveryWait,
	}

	deps.DispatchDelivery = application.NewDispatchDelivery(
		deps.Activities,
		deps.StateCache,
		deps.SignalChannel,
		deps.SagaStateRepository,
		eventPublisher,
		timeouts.DeliveryWait,
		logger,
	)
	deps.FulfillOrder = application.NewFulfillOrder(
		deps.Activities,
		deps.DispatchDelivery,
		deps.StateCache,
		deps.SignalChannel,
		deps.SagaStateRepository,
		eventPublisher,
		timeouts,
		logger,
	)
	deps.GetOrder = application.NewGetOrder(deps.Activities, deps.StateCache, logger)
	deps.SignalOrder = application.NewSignalOrder(
		deps.Activities,
		deps.SignalChannel,
		deps.SagaStateRepository,
		deps.StateCache,
		eventPublisher,
		logger,
	)

	// Initialize handlers
	deps.OrderHandlers = handlers.NewOrderHandlers(deps.FulfillOrder, deps.GetOrder, deps.SignalOrder, logger)
	deps.OrderEventHandlers = handlers.NewOrderEventHandlers(
		deps.StockRepository,
		deps.OrderRepository,
		deps.SignalChannel,
		logger,
	)

	return deps, nil
}

// Close closes all dependencies
func (d *Dependencies) Close() error {
	var errs []error

	if d.DB != nil {
		if err := d.DB.Close(); err != nil {
			errs = append(errs, fmt.Errorf("failed to close database: %w", err))
		}
	}

	if d.Redis != nil {
		if err := d.Redis.Close(); err != nil {
			errs = append(errs, fmt.Errorf("failed to close redis: %w", err))
		}
	}

	if d.EventPublisher != nil {
		if err := d.EventPublisher.Close(); err != nil {
			errs = append(errs, fmt.Errorf("failed to close event publisher: %w", err))
		}
	}

	if d.EventSubscriber != nil {
		if err := d.EventSubscriber.Close(); err != nil {
			errs = append(errs, fmt.Errorf("failed to close event subscriber: %w", err))
		}
	}

	if d.TelemetryShutdown != nil {
		d.TelemetryShutdown()
	}

	if len(errs) > 0 {
		return fmt.Errorf("errors closing dependencies: %v", errs)
	}
	return nil
}
