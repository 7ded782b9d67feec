package usecases_port

import (
	"context"

	"github.com/HRMetriX/couriesr-mules-project/internal/core/domain"
)

type GetPendingVacanciesUseCase interface {
	Execute(ctx context.Context, citySlug string, limit int) ([]domain.Vacancy, error)
}
