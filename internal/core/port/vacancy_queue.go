package port

import (
	"context"

	"github.com/HRMetriX/couriesr-mules-project/internal/core/domain"
)

// VacancyQueuePort публикует пачки собранных вакансий в очередь
type VacancyQueuePort interface {
	EnqueueScraped(ctx context.Context, citySlug string, vacancies []domain.Vacancy) error
}
