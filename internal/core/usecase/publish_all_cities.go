package usecase

import (
	"context"
	"errors"
	"time"

	"github.com/HRMetriX/couriesr-mules-project/internal/contextkeys"
	"github.com/HRMetriX/couriesr-mules-project/internal/core/domain"
	"github.com/HRMetriX/couriesr-mules-project/internal/core/port"
)

const runLockKey = "publisher:run_lock"
const runLockTTL = 15 * time.Minute

// CityPublisher - шаг обработки одного города
type CityPublisher interface {
	Execute(ctx context.Context, city domain.City) domain.CityResult
}

// ScheduleGate решает, можно ли публиковать сейчас
type ScheduleGate interface {
	Execute(ctx context.Context) bool
}

// PublishAllCitiesUseCase - верхний уровень запуска публикации.
// Города обрабатываются последовательно, сбой одного города не
// прерывает остальные.
type PublishAllCitiesUseCase struct {
	cityPublisher CityPublisher
	gate          ScheduleGate
	runLock       port.RunLockPort
	cities        []domain.City
	pauseBetween  time.Duration
}

func NewPublishAllCitiesUseCase(
	cityPublisher CityPublisher,
	gate ScheduleGate,
	runLock port.RunLockPort,
	cities []domain.City,
	pauseBetween time.Duration,
) *PublishAllCitiesUseCase {
	return &PublishAllCitiesUseCase{
		cityPublisher: cityPublisher,
		gate:          gate,
		runLock:       runLock,
		cities:        cities,
		pauseBetween:  pauseBetween,
	}
}

func (uc *PublishAllCitiesUseCase) Execute(ctx context.Context) domain.RunReport {
	logger := contextkeys.LoggerFromContext(ctx).WithFields(port.Fields{
		"use_case": "PublishAllCities",
	})

	report := domain.RunReport{
		Results: make(map[string]domain.CityResult, len(uc.cities)),
		Success: true,
	}

	if !uc.gate.Execute(ctx) {
		logger.Info("Not in publication window, nothing to do", nil)
		return report
	}

	if uc.runLock != nil {
		if err := uc.runLock.Acquire(ctx, runLockKey, runLockTTL); err != nil {
			if errors.Is(err, domain.ErrRunLockBusy) {
				logger.Warn("Another publication run is in progress, skipping", nil)
				return report
			}
			// Недоступность блокировки не должна останавливать публикацию
			logger.Warn("Run lock unavailable, continuing without it", port.Fields{"error": err.Error()})
		} else {
			defer func() {
				if err := uc.runLock.Release(ctx, runLockKey); err != nil {
					logger.Warn("Failed to release run lock", port.Fields{"error": err.Error()})
				}
			}()
		}
	}

	for i, city := range uc.cities {
		cityLogger := logger.WithFields(port.Fields{"city": city.Slug})
		cityLogger.Info("Publishing city", port.Fields{"channel": city.ChannelID})

		result := uc.cityPublisher.Execute(ctx, city)
		report.Results[city.Slug] = result
		report.TotalPublished += result.PublishedCount

		switch result.State {
		case domain.CityStateFailed:
			cityLogger.Error("City failed", result.Err, nil)
			report.Success = false
		case domain.CityStateSkipped:
			cityLogger.Info("City skipped, no vacancies", nil)
		default:
			cityLogger.Info("City done", port.Fields{"published": result.PublishedCount})
		}

		// Пауза между городами, после последнего не ждем
		if uc.pauseBetween > 0 && i < len(uc.cities)-1 {
			select {
			case <-ctx.Done():
				logger.Warn("Run cancelled", port.Fields{"error": ctx.Err().Error()})
				report.Success = false
				return report
			case <-time.After(uc.pauseBetween):
			}
		}
	}

	logger.Info("Publication run finished", port.Fields{
		"total_published": report.TotalPublished,
		"cities":          len(uc.cities),
		"success":         report.Success,
	})

	return report
}
