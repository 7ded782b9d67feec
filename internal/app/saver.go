package app

import (
	"context"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"sync"
	"syscall"

	"github.com/fluent/fluent-logger-golang/fluent"
	"github.com/jackc/pgx/v5/pgxpool"

	postgres_adapter "github.com/HRMetriX/couriesr-mules-project/internal/adapters/postgres"
	rabbitmq_adapter "github.com/HRMetriX/couriesr-mules-project/internal/adapters/rabbitmq"
	"github.com/HRMetriX/couriesr-mules-project/internal/adapters/rest"
	"github.com/HRMetriX/couriesr-mules-project/internal/adapters/telegram"
	"github.com/HRMetriX/couriesr-mules-project/internal/configs"
	"github.com/HRMetriX/couriesr-mules-project/internal/constants"
	"github.com/HRMetriX/couriesr-mules-project/internal/core/domain"
	"github.com/HRMetriX/couriesr-mules-project/internal/core/port"
	"github.com/HRMetriX/couriesr-mules-project/internal/core/usecase"
	"github.com/HRMetriX/couriesr-mules-project/internal/scheduler"
	"github.com/HRMetriX/couriesr-mules-project/pkg/postgres"
	"github.com/HRMetriX/couriesr-mules-project/pkg/rabbitmq/rabbitmq_common"
	"github.com/HRMetriX/couriesr-mules-project/pkg/rabbitmq/rabbitmq_consumer"
)

// SaverApp - сервис сохранения: слушает очередь собранных вакансий,
// пишет их в Postgres, отдает статистику по REST и шлет ежедневную сводку
type SaverApp struct {
	config       *configs.AppConfig
	dbPool       *pgxpool.Pool
	apiServer    *rest.Server
	fluentClient *fluent.Fluent
	logger       port.LoggerPort

	scrapedVacanciesListener port.EventListenerPort
	digestScheduler          *scheduler.DigestScheduler
}

// NewSaverApp - composition root сервиса сохранения
func NewSaverApp() (*SaverApp, error) {
	appConfig, err := configs.LoadSaverConfig()
	if err != nil {
		return nil, fmt.Errorf("error loading application configuration: %w", err)
	}

	baseLogger, fluentClient, err := buildLogger(appConfig)
	if err != nil {
		return nil, err
	}
	appLogger := baseLogger.WithFields(port.Fields{"component": "app"})
	appLogger.Info("Logger system initialized", port.Fields{
		"fluent_enabled": appConfig.FluentBit.Enabled,
	})

	dbPool, err := postgres.NewClient(context.Background(), postgres.Config{
		DatabaseURL: appConfig.Database.URL,
		MaxConns:    appConfig.Database.MaxConns,
	})
	if err != nil {
		appLogger.Error("Failed to connect to PostgreSQL", err, nil)
		return nil, fmt.Errorf("failed to connect to PostgreSQL: %w", err)
	}
	appLogger.Info("Successfully connected to PostgreSQL pool!", nil)

	storageAdapter := postgres_adapter.NewPostgresStorageAdapter(dbPool)
	if err := storageAdapter.EnsureSchema(context.Background()); err != nil {
		appLogger.Error("Failed to ensure database schema", err, nil)
		dbPool.Close()
		return nil, err
	}

	alertClient, err := telegram.NewClient(appConfig.Telegram.AlertBotToken, "")
	if err != nil {
		dbPool.Close()
		return nil, fmt.Errorf("failed to create telegram alert client: %w", err)
	}
	alertSender, err := telegram.NewAlertSenderAdapter(alertClient, appConfig.Telegram.AlertChatID)
	if err != nil {
		dbPool.Close()
		return nil, fmt.Errorf("failed to create alert sender: %w", err)
	}
	appLogger.Info("All outgoing adapters initialized.", nil)

	// Инициализация use-cases
	statsCriteria := domain.EligibilityCriteria{
		Currency:          constants.CurrencyRUR,
		MaxVacancyAgeDays: appConfig.Publication.MaxVacancyAgeDays,
		MaxParsedAgeDays:  appConfig.Publication.MaxParsedAgeDays,
	}
	saveVacanciesUseCase := usecase.NewSaveVacanciesUseCase(storageAdapter)
	collectCityStatsUseCase := usecase.NewCollectCityStatsUseCase(storageAdapter, constants.GetPublicationCities(), statsCriteria)
	getPendingVacanciesUseCase := usecase.NewGetPendingVacanciesUseCase(storageAdapter)
	sendStatsDigestUseCase := usecase.NewSendStatsDigestUseCase(collectCityStatsUseCase, alertSender)
	appLogger.Info("All use cases initialized.", nil)

	// Инициализация входящих адаптеров
	connManagerLogger := baseLogger.WithFields(port.Fields{"component": "rabbitmq_conn_manager"})
	connManager, err := rabbitmq_common.GetManager(appConfig.RabbitMQ.URL, rabbitmq_adapter.NewPkgLoggerBridge(connManagerLogger))
	if err != nil {
		appLogger.Error("Failed to create connection manager", err, nil)
		dbPool.Close()
		return nil, fmt.Errorf("failed to create connection manager: %w", err)
	}
	appLogger.Info("RabbitMQ Connection Manager initialized.", nil)

	consumerLogger := baseLogger.WithFields(port.Fields{"component": "rabbitmq_consumer"})
	scrapedConsumerCfg := rabbitmq_consumer.ConsumerConfig{
		Config:              rabbitmq_common.Config{URL: appConfig.RabbitMQ.URL},
		QueueName:           constants.QueueScrapedVacancies,
		DurableQueue:        true,
		ExchangeNameForBind: constants.VacanciesExchange,
		RoutingKeyForBind:   constants.RoutingKeyScrapedVacancies,
		PrefetchCount:       1,
		ConsumerTag:         "vacancy-saver-adapter",
		DeclareQueue:        true,

		EnableRetryMechanism: true,

		RetryExchange: constants.QueueScrapedVacancies + "_retry_ex",
		RetryQueue:    constants.QueueScrapedVacancies + "_retry_wait_10s",
		RetryTTL:      10000,

		FinalDLXExchange:   constants.FinalDLXExchange,
		FinalDLQ:           constants.FinalDLQ,
		FinalDLQRoutingKey: constants.FinalDLQRoutingKey,

		MaxRetries: 3,

		Logger: rabbitmq_adapter.NewPkgLoggerBridge(consumerLogger),
	}
	scrapedListener, err := rabbitmq_adapter.NewScrapedVacancyConsumerAdapter(scrapedConsumerCfg, saveVacanciesUseCase, baseLogger, connManager)
	if err != nil {
		appLogger.Error("Failed to create scraped vacancies listener", err, nil)
		dbPool.Close()
		return nil, err
	}
	appLogger.Info("Scraped Vacancy Events Listener initialized.", nil)

	// REST API Server
	apiHandlers := rest.NewVacancyHandler(collectCityStatsUseCase, getPendingVacanciesUseCase)
	apiServer := rest.NewServer(appConfig.Rest.PORT, apiHandlers, baseLogger)
	appLogger.Info("REST API server configured.", nil)

	digestScheduler := scheduler.NewDigestScheduler(sendStatsDigestUseCase, appConfig.StatsDigestCron, baseLogger)

	application := &SaverApp{
		config:                   appConfig,
		dbPool:                   dbPool,
		apiServer:                apiServer,
		fluentClient:             fluentClient,
		logger:                   appLogger,
		scrapedVacanciesListener: scrapedListener,
		digestScheduler:          digestScheduler,
	}

	return application, nil
}

// Run запускает все компоненты приложения и управляет их жизненным циклом
func (a *SaverApp) Run() error {
	// Единый контекст для всего приложения для управления graceful shutdown
	appCtx, cancelApp := context.WithCancel(context.Background())

	var wg sync.WaitGroup

	defer func() {
		a.logger.Info("Shutdown sequence initiated...", nil)

		a.logger.Info("Waiting for background processes to finish...", nil)
		wg.Wait()
		a.logger.Info("All background processes finished.", nil)

		if a.digestScheduler != nil {
			a.digestScheduler.Stop()
		}

		if a.apiServer != nil {
			if err := a.apiServer.Stop(context.Background()); err != nil {
				a.logger.Error("Error during API server shutdown", err, nil)
			}
		}

		if a.scrapedVacanciesListener != nil {
			if err := a.scrapedVacanciesListener.Close(); err != nil {
				a.logger.Error("Error closing scraped vacancies listener", err, nil)
			}
		}

		if a.dbPool != nil {
			a.dbPool.Close()
			a.logger.Info("PostgreSQL pool closed.", nil)
		}

		a.logger.Info("Application shut down gracefully.", nil)

		if a.fluentClient != nil {
			if err := a.fluentClient.Close(); err != nil {
				// Пишем в stdout, fluent может быть уже недоступен
				fmt.Printf("ERROR: Error closing fluent client: %v\n", err)
			}
		}
	}()

	a.logger.Info("Application is starting...", nil)

	errorsCh := make(chan error, 1)

	startListener := func(name string, listener port.EventListenerPort) {
		defer wg.Done()
		listenerLogger := a.logger.WithFields(port.Fields{"listener_name": name})
		listenerLogger.Info("Starting listener...", nil)

		if err := listener.Start(appCtx); err != nil {
			listenerLogger.Error("Listener stopped with an unexpected error", err, nil)
			errorsCh <- fmt.Errorf("%s error: %w", name, err)
		} else {
			listenerLogger.Info("Listener stopped gracefully due to context cancellation.", nil)
		}
	}

	wg.Add(1)
	go startListener("Scraped Vacancy Events Listener", a.scrapedVacanciesListener)

	go func() {
		a.logger.Info("Starting HTTP server...", port.Fields{"port": a.config.Rest.PORT})
		if err := a.apiServer.Start(); err != nil && err != http.ErrServerClosed {
			errorsCh <- fmt.Errorf("failed to start HTTP server: %w", err)
		}
	}()

	if err := a.digestScheduler.Start(appCtx); err != nil {
		a.logger.Error("Failed to start digest scheduler", err, nil)
		cancelApp()
		return err
	}

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)

	a.logger.Info("Application running. Waiting for signals or server error...", nil)
	select {
	case receivedSignal := <-quit:
		a.logger.Warn("Received OS signal, shutting down...", port.Fields{"signal": receivedSignal.String()})
	case err := <-errorsCh:
		a.logger.Error("A critical component failed, shutting down", err, nil)
	case <-appCtx.Done():
		a.logger.Warn("Context was cancelled unexpectedly, shutting down...", nil)
	}

	cancelApp()

	return nil
}
