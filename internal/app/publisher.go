package app

import (
	"context"
	"fmt"
	"math/rand"
	"os/signal"
	"syscall"
	"time"

	"github.com/fluent/fluent-logger-golang/fluent"
	"github.com/jackc/pgx/v5/pgxpool"

	postgres_adapter "github.com/HRMetriX/couriesr-mules-project/internal/adapters/postgres"
	"github.com/HRMetriX/couriesr-mules-project/internal/adapters/redislock"
	"github.com/HRMetriX/couriesr-mules-project/internal/adapters/telegram"
	"github.com/HRMetriX/couriesr-mules-project/internal/configs"
	"github.com/HRMetriX/couriesr-mules-project/internal/constants"
	"github.com/HRMetriX/couriesr-mules-project/internal/contextkeys"
	"github.com/HRMetriX/couriesr-mules-project/internal/core/domain"
	"github.com/HRMetriX/couriesr-mules-project/internal/core/port"
	"github.com/HRMetriX/couriesr-mules-project/internal/core/usecase"
	"github.com/HRMetriX/couriesr-mules-project/pkg/postgres"
)

// Пауза между городами, чтобы не упереться в rate limit Bot API
const pauseBetweenCities = 5 * time.Second

// PublisherApp - одноразовый запуск публикации по всем городам.
// Запускается по расписанию извне (cron, CI), делает один проход и завершается.
type PublisherApp struct {
	config       *configs.AppConfig
	dbPool       *pgxpool.Pool
	fluentClient *fluent.Fluent
	baseLogger   port.LoggerPort
	logger       port.LoggerPort

	publishAll  *usecase.PublishAllCitiesUseCase
	alertSender port.AlertPort
	runLock     *redislock.RunLockAdapter
}

// NewPublisherApp - composition root бинарника публикации
func NewPublisherApp() (*PublisherApp, error) {
	appConfig, err := configs.LoadPublisherConfig()
	if err != nil {
		return nil, fmt.Errorf("error loading application configuration: %w", err)
	}

	baseLogger, fluentClient, err := buildLogger(appConfig)
	if err != nil {
		return nil, err
	}
	appLogger := baseLogger.WithFields(port.Fields{"component": "app"})

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

	postClient, err := telegram.NewClient(appConfig.Telegram.BotToken, "")
	if err != nil {
		dbPool.Close()
		return nil, fmt.Errorf("failed to create telegram client: %w", err)
	}
	channelPublisher, err := telegram.NewChannelPublisherAdapter(postClient)
	if err != nil {
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
		return nil, err
	}

	// Redis опционален: без него запуск идет без защиты от параллельной публикации
	var runLock *redislock.RunLockAdapter
	if appConfig.Redis.URL != "" {
		runLock, err = redislock.NewRunLockAdapter(appConfig.Redis.URL)
		if err != nil {
			appLogger.Warn("Redis unavailable, continuing without run lock", port.Fields{"error": err.Error()})
			runLock = nil
		}
	}
	appLogger.Info("All outgoing adapters initialized.", nil)

	// Инициализация use-cases
	selector := usecase.NewSelectForPublicationUseCase(rand.New(rand.NewSource(time.Now().UnixNano())))
	renderer := usecase.NewRenderPostUseCase(appConfig.Publication.ReferralLink)
	settings := usecase.PublicationSettings{
		TargetCount:       appConfig.Publication.VacanciesPerPost,
		Currency:          constants.CurrencyRUR,
		MaxVacancyAgeDays: appConfig.Publication.MaxVacancyAgeDays,
		MaxParsedAgeDays:  appConfig.Publication.MaxParsedAgeDays,
	}
	cityPublisher := usecase.NewPublishCityVacanciesUseCase(storageAdapter, channelPublisher, selector, renderer, settings)
	gate := usecase.NewShouldPublishNowUseCase(appConfig.Publication.PostTimesMSK, appConfig.Publication.RunningInCI, time.Now)

	var lockPort port.RunLockPort
	if runLock != nil {
		lockPort = runLock
	}
	publishAll := usecase.NewPublishAllCitiesUseCase(cityPublisher, gate, lockPort, constants.GetPublicationCities(), pauseBetweenCities)
	appLogger.Info("All use cases initialized.", nil)

	return &PublisherApp{
		config:       appConfig,
		dbPool:       dbPool,
		fluentClient: fluentClient,
		baseLogger:   baseLogger,
		logger:       appLogger,
		publishAll:   publishAll,
		alertSender:  alertSender,
		runLock:      runLock,
	}, nil
}

// Run выполняет один проход публикации и возвращает ошибку,
// если хотя бы один город завершился сбоем
func (a *PublisherApp) Run() error {
	ctx, cancel := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer cancel()

	defer func() {
		if a.runLock != nil {
			if err := a.runLock.Close(); err != nil {
				a.logger.Error("Error closing redis client", err, nil)
			}
		}
		if a.dbPool != nil {
			a.dbPool.Close()
		}
		a.logger.Info("Publication run shut down.", nil)
		if a.fluentClient != nil {
			if err := a.fluentClient.Close(); err != nil {
				fmt.Printf("ERROR: Error closing fluent client: %v\n", err)
			}
		}
	}()

	a.logger.Info("Publication run starting...", nil)

	runCtx := contextkeys.ContextWithLogger(ctx, a.baseLogger)
	report := a.publishAll.Execute(runCtx)

	a.sendRunReport(runCtx, report)

	if !report.Success {
		return fmt.Errorf("publication run finished with failed cities")
	}
	return nil
}

// sendRunReport шлет операторам итоговый алерт по запуску
func (a *PublisherApp) sendRunReport(ctx context.Context, report domain.RunReport) {
	if len(report.Results) == 0 {
		// Вне окна публикации или запуск перехвачен другим процессом
		return
	}

	stats := make(map[string]string, len(report.Results)+1)
	for slug, result := range report.Results {
		line := fmt.Sprintf("%s, опубликовано %d", result.State, result.PublishedCount)
		if result.Err != nil {
			line += fmt.Sprintf(" (%v)", result.Err)
		}
		stats[slug] = line
	}
	stats["итого"] = fmt.Sprintf("%d вакансий", report.TotalPublished)

	alert := port.Alert{
		Title: "Публикация вакансий завершена",
		Stats: stats,
	}
	if !report.Success {
		alert.Title = "Публикация вакансий завершена с ошибками"
		alert.IsError = true
	}

	if err := a.alertSender.SendAlert(ctx, alert); err != nil {
		a.logger.Error("Failed to send run report alert", err, nil)
	}
}
