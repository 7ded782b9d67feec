package usecase

import (
	"context"

	"github.com/HRMetriX/couriesr-mules-project/internal/contextkeys"
	"github.com/HRMetriX/couriesr-mules-project/internal/core/domain"
	"github.com/HRMetriX/couriesr-mules-project/internal/core/port"
)

type GetPendingVacanciesUseCase struct {
	storage port.VacancyStoragePort
}

func NewGetPendingVacanciesUseCase(storage port.VacancyStoragePort) *GetPendingVacanciesUseCase {
	return &GetPendingVacanciesUseCase{storage: storage}
}

func (uc *GetPendingVacanciesUseCase) Execute(ctx context.Context, citySlug string, limit int) ([]domain.Vacancy, error) {
	logger := contextkeys.LoggerFromContext(ctx).WithFields(port.Fields{
		"use_case": "GetPendingVacancies",
		"city":     citySlug,
		"limit":    limit,
	})

	result, err := uc.storage.GetPendingVacancies(ctx, citySlug, limit)
	if err != nil {
		logger.Error("Storage returned an error", err, nil)
		return nil, err
	}

	logger.Info("Use case finished successfully", port.Fields{"found_count": len(result)})
	return result, nil
}
