package port

import (
	"context"
	"time"

	"github.com/HRMetriX/couriesr-mules-project/internal/core/domain"
)

// VacancyFetcherPort - источник вакансий (API hh.ru)
type VacancyFetcherPort interface {
	// FetchCourierVacancies собирает курьерские вакансии города за окно дат
	FetchCourierVacancies(ctx context.Context, city domain.City, dateFrom, dateTo time.Time) ([]domain.Vacancy, error)
}
