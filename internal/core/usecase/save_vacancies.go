package usecase

import (
	"context"

	"github.com/HRMetriX/couriesr-mules-project/internal/contextkeys"
	"github.com/HRMetriX/couriesr-mules-project/internal/core/domain"
	"github.com/HRMetriX/couriesr-mules-project/internal/core/port"
)

// SaveVacanciesUseCase сохраняет пачку вакансий из очереди
type SaveVacanciesUseCase struct {
	storage port.VacancyStoragePort
}

func NewSaveVacanciesUseCase(storage port.VacancyStoragePort) *SaveVacanciesUseCase {
	return &SaveVacanciesUseCase{storage: storage}
}

func (uc *SaveVacanciesUseCase) BatchSave(ctx context.Context, vacancies []domain.Vacancy) (domain.SaveStats, error) {
	logger := contextkeys.LoggerFromContext(ctx).WithFields(port.Fields{
		"use_case": "SaveVacancies",
		"batch":    len(vacancies),
	})

	if len(vacancies) == 0 {
		return domain.SaveStats{}, nil
	}

	stats, err := uc.storage.BatchUpsert(ctx, vacancies)
	if err != nil {
		logger.Error("Batch upsert failed", err, nil)
		return domain.SaveStats{}, err
	}

	logger.Info("Batch saved", port.Fields{"saved": stats.Saved, "skipped": stats.Skipped})
	return stats, nil
}
