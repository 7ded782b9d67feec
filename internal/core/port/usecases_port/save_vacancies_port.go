package usecases_port

import (
	"context"

	"github.com/HRMetriX/couriesr-mules-project/internal/core/domain"
)

type SaveVacanciesUseCase interface {
	BatchSave(ctx context.Context, vacancies []domain.Vacancy) (domain.SaveStats, error)
}
