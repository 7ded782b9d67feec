package usecases_port

import (
	"context"

	"github.com/HRMetriX/couriesr-mules-project/internal/core/domain"
)

type CollectCityStatsUseCase interface {
	Execute(ctx context.Context) ([]domain.CityStats, error)
}
