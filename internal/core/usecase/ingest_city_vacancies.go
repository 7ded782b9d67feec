package usecase

import (
	"context"
	"fmt"
	"time"

	"github.com/HRMetriX/couriesr-mules-project/internal/contextkeys"
	"github.com/HRMetriX/couriesr-mules-project/internal/core/domain"
	"github.com/HRMetriX/couriesr-mules-project/internal/core/port"
)

// Размер пачки событий в одной публикации очереди
const enqueueBatchSize = 100

// IngestCityVacanciesUseCase - скрейпинг одного города: собрать вакансии
// из API и отправить их пачками в очередь на сохранение.
type IngestCityVacanciesUseCase struct {
	fetcher      port.VacancyFetcherPort
	queue        port.VacancyQueuePort
	lookbackDays int
}

func NewIngestCityVacanciesUseCase(fetcher port.VacancyFetcherPort, queue port.VacancyQueuePort, lookbackDays int) *IngestCityVacanciesUseCase {
	return &IngestCityVacanciesUseCase{
		fetcher:      fetcher,
		queue:        queue,
		lookbackDays: lookbackDays,
	}
}

func (uc *IngestCityVacanciesUseCase) Execute(ctx context.Context, city domain.City) (domain.FetchStats, error) {
	logger := contextkeys.LoggerFromContext(ctx).WithFields(port.Fields{
		"use_case": "IngestCityVacancies",
		"city":     city.Slug,
	})

	stats := domain.FetchStats{CitySlug: city.Slug}

	dateTo := time.Now().UTC()
	dateFrom := dateTo.AddDate(0, 0, -uc.lookbackDays)

	vacancies, err := uc.fetcher.FetchCourierVacancies(ctx, city, dateFrom, dateTo)
	if err != nil {
		logger.Error("Fetch failed", err, nil)
		return stats, fmt.Errorf("fetch vacancies for %s: %w", city.Slug, err)
	}
	stats.Fetched = len(vacancies)

	if len(vacancies) == 0 {
		logger.Info("No vacancies fetched", nil)
		return stats, nil
	}

	for start := 0; start < len(vacancies); start += enqueueBatchSize {
		end := start + enqueueBatchSize
		if end > len(vacancies) {
			end = len(vacancies)
		}
		if err := uc.queue.EnqueueScraped(ctx, city.Slug, vacancies[start:end]); err != nil {
			logger.Error("Enqueue failed", err, port.Fields{"enqueued_so_far": stats.Enqueued})
			return stats, fmt.Errorf("enqueue vacancies for %s: %w", city.Slug, err)
		}
		stats.Enqueued += end - start
	}

	logger.Info("City ingested", port.Fields{"fetched": stats.Fetched, "enqueued": stats.Enqueued})
	return stats, nil
}
