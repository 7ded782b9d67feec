package app

import (
	"context"
	"fmt"
	"os/signal"
	"syscall"

	"github.com/fluent/fluent-logger-golang/fluent"

	"github.com/HRMetriX/couriesr-mules-project/internal/adapters/hh"
	rabbitmq_adapter "github.com/HRMetriX/couriesr-mules-project/internal/adapters/rabbitmq"
	"github.com/HRMetriX/couriesr-mules-project/internal/adapters/telegram"
	"github.com/HRMetriX/couriesr-mules-project/internal/configs"
	"github.com/HRMetriX/couriesr-mules-project/internal/constants"
	"github.com/HRMetriX/couriesr-mules-project/internal/contextkeys"
	"github.com/HRMetriX/couriesr-mules-project/internal/core/port"
	"github.com/HRMetriX/couriesr-mules-project/internal/core/usecase"
	"github.com/HRMetriX/couriesr-mules-project/pkg/rabbitmq/rabbitmq_common"
	"github.com/HRMetriX/couriesr-mules-project/pkg/rabbitmq/rabbitmq_producer"
)

// ParserApp - одноразовый проход скрейпинга hh.ru по всем городам.
// Собранные вакансии уходят в очередь, сохранением занимается saver.
type ParserApp struct {
	config       *configs.AppConfig
	fluentClient *fluent.Fluent
	baseLogger   port.LoggerPort
	logger       port.LoggerPort

	ingest      *usecase.IngestCityVacanciesUseCase
	alertSender port.AlertPort
	producer    *rabbitmq_producer.Publisher
	connManager *rabbitmq_common.ConnectionManager
}

// NewParserApp - composition root бинарника скрейпинга
func NewParserApp() (*ParserApp, error) {
	appConfig, err := configs.LoadParserConfig()
	if err != nil {
		return nil, fmt.Errorf("error loading application configuration: %w", err)
	}

	baseLogger, fluentClient, err := buildLogger(appConfig)
	if err != nil {
		return nil, err
	}
	appLogger := baseLogger.WithFields(port.Fields{"component": "app"})

	connManagerLogger := baseLogger.WithFields(port.Fields{"component": "rabbitmq_conn_manager"})
	connManager, err := rabbitmq_common.GetManager(appConfig.RabbitMQ.URL, rabbitmq_adapter.NewPkgLoggerBridge(connManagerLogger))
	if err != nil {
		appLogger.Error("Failed to create connection manager", err, nil)
		return nil, fmt.Errorf("failed to create connection manager: %w", err)
	}

	producerLogger := baseLogger.WithFields(port.Fields{"component": "rabbitmq_producer"})
	producerCfg := rabbitmq_producer.PublisherConfig{
		Config:                   rabbitmq_common.Config{URL: appConfig.RabbitMQ.URL},
		ExchangeName:             constants.VacanciesExchange,
		ExchangeType:             "direct",
		DurableExchange:          true,
		DeclareExchangeIfMissing: true,

		Logger: rabbitmq_adapter.NewPkgLoggerBridge(producerLogger),
	}
	producer, err := rabbitmq_producer.NewPublisher(producerCfg, connManager)
	if err != nil {
		appLogger.Error("Failed to create event producer", err, nil)
		return nil, fmt.Errorf("failed to create event producer: %w", err)
	}

	queueAdapter, err := rabbitmq_adapter.NewScrapedVacancyQueueAdapter(producer, constants.RoutingKeyScrapedVacancies)
	if err != nil {
		return nil, err
	}

	fetcher := hh.NewHHFetcherAdapter(constants.HHAPIBaseURL)

	alertClient, err := telegram.NewClient(appConfig.Telegram.AlertBotToken, "")
	if err != nil {
		return nil, fmt.Errorf("failed to create telegram alert client: %w", err)
	}
	alertSender, err := telegram.NewAlertSenderAdapter(alertClient, appConfig.Telegram.AlertChatID)
	if err != nil {
		return nil, err
	}
	appLogger.Info("All outgoing adapters initialized.", nil)

	ingest := usecase.NewIngestCityVacanciesUseCase(fetcher, queueAdapter, appConfig.Parser.LookbackDays)
	appLogger.Info("All use cases initialized.", nil)

	return &ParserApp{
		config:       appConfig,
		fluentClient: fluentClient,
		baseLogger:   baseLogger,
		logger:       appLogger,
		ingest:       ingest,
		alertSender:  alertSender,
		producer:     producer,
		connManager:  connManager,
	}, nil
}

// Run делает один проход скрейпинга по всем городам
func (a *ParserApp) Run() error {
	ctx, cancel := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer cancel()

	defer func() {
		if a.producer != nil {
			if err := a.producer.Close(); err != nil {
				a.logger.Error("Error closing event producer", err, nil)
			}
		}
		if a.connManager != nil {
			if err := a.connManager.Close(); err != nil {
				a.logger.Error("Error closing connection manager", err, nil)
			}
		}
		a.logger.Info("Scrape run shut down.", nil)
		if a.fluentClient != nil {
			if err := a.fluentClient.Close(); err != nil {
				fmt.Printf("ERROR: Error closing fluent client: %v\n", err)
			}
		}
	}()

	a.logger.Info("Scrape run starting...", nil)

	runCtx := contextkeys.ContextWithLogger(ctx, a.baseLogger)

	stats := make(map[string]string)
	var failed int
	var totalEnqueued int

	for _, city := range constants.GetPublicationCities() {
		if runCtx.Err() != nil {
			a.logger.Warn("Scrape run cancelled", nil)
			break
		}

		fetchStats, err := a.ingest.Execute(runCtx, city)
		if err != nil {
			a.logger.Error("City scrape failed", err, port.Fields{"city": city.Slug})
			stats[city.Name] = fmt.Sprintf("ошибка: %v", err)
			failed++
			continue
		}

		stats[city.Name] = fmt.Sprintf("собрано %d, отправлено %d", fetchStats.Fetched, fetchStats.Enqueued)
		totalEnqueued += fetchStats.Enqueued
	}

	stats["итого"] = fmt.Sprintf("%d вакансий в очереди", totalEnqueued)

	alert := port.Alert{
		Title: "Скрейпинг hh.ru завершен",
		Stats: stats,
	}
	if failed > 0 {
		alert.Title = "Скрейпинг hh.ru завершен с ошибками"
		alert.IsError = true
	}
	if err := a.alertSender.SendAlert(runCtx, alert); err != nil {
		a.logger.Error("Failed to send scrape report alert", err, nil)
	}

	if failed > 0 {
		return fmt.Errorf("scrape run finished with %d failed cities", failed)
	}
	return nil
}
