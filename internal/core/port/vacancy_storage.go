package port

import (
	"context"

	"github.com/HRMetriX/couriesr-mules-project/internal/core/domain"
)

// VacancyStoragePort - доступ к хранилищу вакансий
type VacancyStoragePort interface {
	// GetEligibleForPublication возвращает кандидатов на публикацию:
	// неопубликованные, с нужной валютой, не старше отсечек,
	// отсортированные по salary_to_net DESC NULLS LAST, published_at DESC.
	GetEligibleForPublication(ctx context.Context, criteria domain.EligibilityCriteria) ([]domain.Vacancy, error)

	// MarkAsPosted помечает вакансии опубликованными одним запросом
	MarkAsPosted(ctx context.Context, ids []int64, channelID string) error

	// BatchUpsert сохраняет пачку вакансий; конфликт по (source, external_id)
	// обновляет запись и сбрасывает is_posted
	BatchUpsert(ctx context.Context, vacancies []domain.Vacancy) (domain.SaveStats, error)

	GetCityStats(ctx context.Context, city domain.City, criteria domain.EligibilityCriteria) (domain.CityStats, error)
	GetPendingVacancies(ctx context.Context, citySlug string, limit int) ([]domain.Vacancy, error)
}
