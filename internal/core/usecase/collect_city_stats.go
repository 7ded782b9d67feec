package usecase

import (
	"context"

	"github.com/HRMetriX/couriesr-mules-project/internal/contextkeys"
	"github.com/HRMetriX/couriesr-mules-project/internal/core/domain"
	"github.com/HRMetriX/couriesr-mules-project/internal/core/port"
)

// CollectCityStatsUseCase собирает сводку по всем городам для
// REST API и ежедневного дайджеста.
type CollectCityStatsUseCase struct {
	storage  port.VacancyStoragePort
	cities   []domain.City
	criteria domain.EligibilityCriteria
}

func NewCollectCityStatsUseCase(storage port.VacancyStoragePort, cities []domain.City, criteria domain.EligibilityCriteria) *CollectCityStatsUseCase {
	return &CollectCityStatsUseCase{storage: storage, cities: cities, criteria: criteria}
}

func (uc *CollectCityStatsUseCase) Execute(ctx context.Context) ([]domain.CityStats, error) {
	logger := contextkeys.LoggerFromContext(ctx).WithFields(port.Fields{
		"use_case": "CollectCityStats",
	})

	stats := make([]domain.CityStats, 0, len(uc.cities))
	for _, city := range uc.cities {
		criteria := uc.criteria
		criteria.CitySlug = city.Slug

		cityStats, err := uc.storage.GetCityStats(ctx, city, criteria)
		if err != nil {
			logger.Error("Failed to collect stats", err, port.Fields{"city": city.Slug})
			return nil, err
		}
		stats = append(stats, cityStats)
	}

	logger.Info("Stats collected", port.Fields{"cities": len(stats)})
	return stats, nil
}
