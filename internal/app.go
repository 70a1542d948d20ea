package internal

import (
	token_adapter "accomodate-service/internal/adapters/jwt"
	logger_adapter "accomodate-service/internal/adapters/logger"
	memory_adapter "accomodate-service/internal/adapters/memory"
	nominatim_client "accomodate-service/internal/adapters/nominatim"
	"accomodate-service/internal/adapters/notifier"
	overpass_client "accomodate-service/internal/adapters/overpass"
	postgres_adapter "accomodate-service/internal/adapters/postgres"
	rabbitmq_adapter "accomodate-service/internal/adapters/rabbitmq"
	redis_adapter "accomodate-service/internal/adapters/redis"
	"accomodate-service/internal/adapters/rest"
	"accomodate-service/internal/configs"
	"accomodate-service/internal/constants"
	"accomodate-service/internal/contracts"
	"accomodate-service/internal/core/port"
	"accomodate-service/internal/core/usecase"
	fluentlogger "accomodate-service/pkg/fluent_logger"
	"accomodate-service/pkg/postgres"
	"accomodate-service/pkg/rabbitmq/rabbitmq_common"
	"accomodate-service/pkg/rabbitmq/rabbitmq_producer"
	"context"
	"fmt"
	"log"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"strings"
	"syscall"
	"time"

	"github.com/fluent/fluent-logger-golang/fluent"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/redis/go-redis/v9"
)

const shutdownTimeout = 10 * time.Second

type App struct {
	config        *configs.AppConfig
	apiServer     *rest.Server
	geometryCache *usecase.GeometryCache
	sseNotifier   *notifier.SSENotifier

	dbPool      *pgxpool.Pool
	redisClient *redis.Client
	publisher   *rabbitmq_producer.Publisher
	connManager *rabbitmq_common.ConnectionManager

	logger       port.LoggerPort
	fluentClient *fluent.Fluent
}

func NewApp() (*App, error) {
	appConfig, err := configs.LoadConfig()
	if err != nil {
		return nil, fmt.Errorf("error loading application configuration: %w", err)
	}

	// --- 1. ИНИЦИАЛИЗАЦИЯ ЛОГГЕРОВ ---
	var activeLoggers []port.LoggerPort

	stdoutLogger := logger_adapter.NewSlogAdapter(logger_adapter.SlogConfig{
		Level:    parseLogLevel(appConfig.StdoutLogger.Level),
		IsJSON:   false,
		UseColor: true,
	})
	activeLoggers = append(activeLoggers, stdoutLogger)

	var fluentClient *fluent.Fluent
	if appConfig.FluentBit.Enabled {
		fluentClient, err = fluentlogger.NewClient(fluentlogger.Config{
			Host:      appConfig.FluentBit.Host,
			Port:      appConfig.FluentBit.Port,
			TagPrefix: appConfig.AppName,
			Async:     true,
		})
		if err != nil {
			stdoutLogger.Error("Failed to create fluentbit client", err, nil)
			return nil, fmt.Errorf("failed to create fluentbit client: %w", err)
		}

		fluentAdapter, err := logger_adapter.NewFluentLoggerAdapter(fluentClient, parseLogLevel(appConfig.FluentBit.Level))
		if err != nil {
			stdoutLogger.Error("Failed to create fluentbit adapter", err, nil)
			fluentClient.Close()
			return nil, err
		}
		activeLoggers = append(activeLoggers, fluentAdapter)
	}

	multiLogger, err := logger_adapter.NewMultiloggerAdapter(activeLoggers...)
	if err != nil {
		return nil, fmt.Errorf("failed to create multi-logger: %w", err)
	}

	// --- 2. БАЗОВЫЙ ЛОГГЕР ПРИЛОЖЕНИЯ ---
	baseLogger := multiLogger.WithFields(port.Fields{"service_name": appConfig.AppName})
	appLogger := baseLogger.WithFields(port.Fields{"component": "app"})
	appLogger.Info("Logger system initialized", port.Fields{
		"active_loggers": len(activeLoggers), "fluent_enabled": appConfig.FluentBit.Enabled,
	})

	application := &App{config: appConfig, logger: appLogger, fluentClient: fluentClient}
	ctx := context.Background()

	if err := contracts.Load(); err != nil {
		appLogger.Error("Failed to compile request schemas", err, nil)
		application.closeResources()
		return nil, fmt.Errorf("failed to compile request schemas: %w", err)
	}

	// --- 3. ХРАНИЛИЩА ---
	var userRepo port.UserRepositoryPort
	if appConfig.Database.URL != "" {
		dbPool, err := postgres.NewClient(ctx, postgres.Config{DatabaseURL: appConfig.Database.URL})
		if err != nil {
			appLogger.Error("Failed to connect to PostgreSQL", err, nil)
			application.closeResources()
			return nil, fmt.Errorf("failed to connect to PostgreSQL: %w", err)
		}
		application.dbPool = dbPool

		pgUsers, err := postgres_adapter.NewUserRepository(dbPool)
		if err != nil {
			application.closeResources()
			return nil, fmt.Errorf("failed to create postgres user repository: %w", err)
		}
		if err := pgUsers.Migrate(ctx); err != nil {
			appLogger.Error("Failed to migrate users table", err, nil)
			application.closeResources()
			return nil, fmt.Errorf("failed to migrate users table: %w", err)
		}
		userRepo = pgUsers
		appLogger.Info("Users are stored in PostgreSQL", nil)
	} else {
		userRepo = memory_adapter.NewUserRepository()
		appLogger.Warn("DATABASE_URL is not set, users are kept in memory", nil)
	}

	var sessionStore port.SessionStorePort
	if appConfig.Redis.Addr != "" {
		redisClient, err := redis_adapter.NewClient(ctx, redis_adapter.Config{
			Addr:     appConfig.Redis.Addr,
			Password: appConfig.Redis.Password,
			DB:       appConfig.Redis.DB,
		})
		if err != nil {
			appLogger.Error("Failed to connect to Redis", err, nil)
			application.closeResources()
			return nil, fmt.Errorf("failed to connect to Redis: %w", err)
		}
		application.redisClient = redisClient

		redisSessions, err := redis_adapter.NewSessionStore(redisClient)
		if err != nil {
			application.closeResources()
			return nil, fmt.Errorf("failed to create redis session store: %w", err)
		}
		sessionStore = redisSessions
		appLogger.Info("Sessions are stored in Redis", port.Fields{"addr": appConfig.Redis.Addr})
	} else {
		sessionStore = memory_adapter.NewSessionStore()
		appLogger.Warn("REDIS_ADDR is not set, sessions are kept in memory", nil)
	}

	seed := usecase.NewListingGenerator(appConfig.Seed).Generate(constants.Streets)
	listingRepo, err := memory_adapter.NewListingRepository(constants.StreetNames(), seed)
	if err != nil {
		application.closeResources()
		return nil, fmt.Errorf("failed to seed listing repository: %w", err)
	}
	appLogger.Info("Listing repository seeded", port.Fields{"listings": len(seed), "seed": appConfig.Seed})

	// --- 4. ВНЕШНИЕ СЕРВИСЫ ---
	tokenSvc, err := token_adapter.NewTokenService(appConfig.Auth.JWTSecret)
	if err != nil {
		application.closeResources()
		return nil, fmt.Errorf("failed to create token service: %w", err)
	}

	geocoder, err := nominatim_client.NewClient(nominatim_client.Config{
		BaseURL:       appConfig.Geocoder.BaseURL,
		UserAgent:     appConfig.Geocoder.UserAgent,
		Region:        appConfig.Geocoder.Region,
		RegionAliases: []string{"nj", strings.ToLower(appConfig.Geocoder.Region)},
		Timeout:       appConfig.HTTPClientTimeout,
	})
	if err != nil {
		application.closeResources()
		return nil, fmt.Errorf("failed to create geocoder: %w", err)
	}

	geometryProvider, err := overpass_client.NewClient(overpass_client.Config{
		BaseURL:   appConfig.Overpass.BaseURL,
		BBox:      appConfig.Overpass.BBox,
		UserAgent: appConfig.Geocoder.UserAgent,
		Timeout:   appConfig.HTTPClientTimeout,
	})
	if err != nil {
		application.closeResources()
		return nil, fmt.Errorf("failed to create geometry provider: %w", err)
	}

	var listingEvents port.ListingEventsPort = rabbitmq_adapter.NoopListingEvents{}
	if appConfig.RabbitMQ.Enabled {
		connManagerBridge := rabbitmq_adapter.NewPkgLoggerBridge(baseLogger.WithFields(port.Fields{"component": "rabbitmq_conn_manager"}))
		connManager, err := rabbitmq_common.GetManager(appConfig.RabbitMQ.URL, connManagerBridge)
		if err != nil {
			appLogger.Error("Failed to create connection manager", err, nil)
			application.closeResources()
			return nil, fmt.Errorf("failed to create connection manager: %w", err)
		}
		application.connManager = connManager

		publisher, err := rabbitmq_producer.NewPublisher(rabbitmq_producer.PublisherConfig{
			Config:                   rabbitmq_common.Config{URL: appConfig.RabbitMQ.URL},
			ExchangeName:             appConfig.RabbitMQ.Exchange,
			ExchangeType:             constants.ExchangeTypeTopic,
			DurableExchange:          true,
			DeclareExchangeIfMissing: true,
			Logger:                   rabbitmq_adapter.NewPkgLoggerBridge(baseLogger.WithFields(port.Fields{"component": "rabbitmq_publisher"})),
		}, connManager)
		if err != nil {
			appLogger.Error("Failed to create listing events publisher", err, nil)
			application.closeResources()
			return nil, fmt.Errorf("failed to create listing events publisher: %w", err)
		}
		application.publisher = publisher

		queueAdapter, err := rabbitmq_adapter.NewListingEventsQueueAdapter(publisher)
		if err != nil {
			application.closeResources()
			return nil, err
		}
		listingEvents = queueAdapter
		appLogger.Info("Listing events are published to RabbitMQ", port.Fields{"exchange": appConfig.RabbitMQ.Exchange})
	}

	sseNotifier := notifier.NewSSENotifier(baseLogger)
	application.sseNotifier = sseNotifier

	geometryCache := usecase.NewGeometryCache(geometryProvider, constants.StreetNames(), sseNotifier, baseLogger)
	application.geometryCache = geometryCache
	appLogger.Info("SSE Notifier and geometry cache initialized.", nil)

	// --- 5. USE CASES ---
	registry := usecase.NewSessionRegistry()
	ttl := appConfig.Auth.SessionTTL

	explorerUC := usecase.NewExplorerUseCase(listingRepo, registry, geometryCache)
	handlers := rest.Handlers{
		Auth: rest.NewAuthHandlers(
			usecase.NewRegisterUserUseCase(userRepo, sessionStore, tokenSvc, registry, ttl),
			usecase.NewLoginUserUseCase(userRepo, sessionStore, tokenSvc, registry, ttl),
			usecase.NewLogoutUserUseCase(sessionStore, registry),
		),
		Explorer: rest.NewExplorerHandlers(explorerUC, usecase.NewClusterListingsUseCase(explorerUC)),
		Listings: rest.NewListingHandlers(
			usecase.NewGetListingUseCase(listingRepo),
			usecase.NewCreateListingUseCase(listingRepo, geocoder, registry, listingEvents, sseNotifier),
			usecase.NewUpdateListingUseCase(listingRepo, geocoder, registry, listingEvents, sseNotifier),
			usecase.NewDeleteListingUseCase(listingRepo, registry, listingEvents, sseNotifier),
		),
		Geometry: rest.NewGeometryHandlers(geometryCache, sseNotifier),
	}
	authMW := rest.NewAuthMiddleware(usecase.NewValidateSessionUseCase(tokenSvc, sessionStore))
	appLogger.Info("All use cases initialized.", nil)

	application.apiServer = rest.NewServer(rest.ServerConfig{
		Port:           appConfig.Rest.Port,
		AllowedOrigins: appConfig.Rest.AllowedOrigins,
	}, handlers, authMW, baseLogger)
	appLogger.Info("REST API server configured.", nil)

	return application, nil
}

func (a *App) Run() error {
	defer a.shutdown()

	a.logger.Info("Application is starting...", nil)

	errorsCh := make(chan error, 1)
	go func() {
		if err := a.apiServer.Start(); err != nil && err != http.ErrServerClosed {
			errorsCh <- fmt.Errorf("HTTP server start error: %w", err)
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)

	a.logger.Info("Application running. Waiting for signals or component error...", port.Fields{"port": a.config.Rest.Port})
	select {
	case receivedSignal := <-quit:
		a.logger.Warn("Received OS signal, shutting down...", port.Fields{"signal": receivedSignal.String()})
		return nil
	case err := <-errorsCh:
		a.logger.Error("A critical component failed, shutting down", err, nil)
		return err
	}
}

func (a *App) shutdown() {
	a.logger.Info("Shutdown sequence initiated...", nil)

	ctx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()

	if a.apiServer != nil {
		if err := a.apiServer.Stop(ctx); err != nil {
			a.logger.Error("Error during API server shutdown", err, nil)
		}
	}
	// загрузка геометрии, завершившаяся после остановки, ничего не меняет
	if a.geometryCache != nil {
		a.geometryCache.Close()
	}
	if a.sseNotifier != nil {
		a.sseNotifier.Stop()
	}

	a.closeResources()
	a.logger.Info("Application shut down gracefully.", nil)

	if a.fluentClient != nil {
		if err := a.fluentClient.Close(); err != nil {
			fmt.Printf("ERROR: Error closing fluent client: %v\n", err)
		}
		a.fluentClient = nil
	}
}

// closeResources закрывает соединения с внешними системами. Безопасно вызывать на частично собранном App.
func (a *App) closeResources() {
	if a.publisher != nil {
		if err := a.publisher.Close(); err != nil {
			a.logger.Error("Error closing RabbitMQ publisher", err, nil)
		}
		a.publisher = nil
	}
	if a.connManager != nil {
		if err := a.connManager.Close(); err != nil {
			a.logger.Error("Error closing RabbitMQ connection", err, nil)
		}
		a.connManager = nil
	}
	if a.redisClient != nil {
		if err := a.redisClient.Close(); err != nil {
			a.logger.Error("Error closing Redis client", err, nil)
		}
		a.redisClient = nil
	}
	if a.dbPool != nil {
		a.dbPool.Close()
		a.dbPool = nil
		a.logger.Info("PostgreSQL pool closed.", nil)
	}
}

func parseLogLevel(levelStr string) slog.Level {
	switch strings.ToLower(levelStr) {
	case "debug":
		return slog.LevelDebug
	case "info":
		return slog.LevelInfo
	case "warn":
		return slog.LevelWarn
	case "error":
		return slog.LevelError
	default:
		log.Printf("Warning: Unknown log level '%s'. Defaulting to 'info'.", levelStr)
		return slog.LevelInfo
	}
}
