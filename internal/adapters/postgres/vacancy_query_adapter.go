package postgres

import (
	"context"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5"

	"github.com/HRMetriX/couriesr-mules-project/internal/core/domain"
)

// Колонки таблицы vacancies в порядке сканирования
const vacancyColumns = `id, source, external_id, city_slug, city, channel_id,
	title, employer, employer_trusted,
	salary_from_net, salary_to_net, currency, gross, salary_period_name, salary_frequency_name,
	schedule_name, experience_name, employment_form_name,
	external_url, published_at, fingerprint, is_posted, posted_at, created_at, updated_at`

func scanVacancy(row pgx.Row) (domain.Vacancy, error) {
	var v domain.Vacancy
	err := row.Scan(
		&v.ID, &v.Source, &v.ExternalID, &v.CitySlug, &v.City, &v.ChannelID,
		&v.Title, &v.Employer, &v.EmployerTrusted,
		&v.SalaryFromNet, &v.SalaryToNet, &v.Currency, &v.Gross, &v.SalaryPeriodName, &v.SalaryFrequencyName,
		&v.ScheduleName, &v.ExperienceName, &v.EmploymentFormName,
		&v.ExternalURL, &v.PublishedAt, &v.Fingerprint, &v.IsPosted, &v.PostedAt, &v.CreatedAt, &v.UpdatedAt,
	)
	return v, err
}

// GetEligibleForPublication возвращает кандидатов на публикацию.
// Сортировка повторяет порядок выдачи постов: сначала вакансии с
// верхней зарплатой от высокой к низкой, потом по свежести.
func (a *PostgresStorageAdapter) GetEligibleForPublication(ctx context.Context, criteria domain.EligibilityCriteria) ([]domain.Vacancy, error) {
	now := time.Now().UTC()
	maxVacancyDate := now.AddDate(0, 0, -criteria.MaxVacancyAgeDays)
	maxParsedDate := now.AddDate(0, 0, -criteria.MaxParsedAgeDays)

	query := `SELECT ` + vacancyColumns + `
		FROM vacancies
		WHERE city_slug = $1
		  AND is_posted = false
		  AND currency = $2
		  AND published_at >= $3
		  AND created_at >= $4
		ORDER BY salary_to_net DESC NULLS LAST, published_at DESC
		LIMIT $5`

	rows, err := a.pool.Query(ctx, query, criteria.CitySlug, criteria.Currency, maxVacancyDate, maxParsedDate, criteria.Limit)
	if err != nil {
		return nil, fmt.Errorf("PostgresStorageAdapter: failed to query eligible vacancies: %w", err)
	}
	defer rows.Close()

	var vacancies []domain.Vacancy
	for rows.Next() {
		v, err := scanVacancy(rows)
		if err != nil {
			return nil, fmt.Errorf("PostgresStorageAdapter: failed to scan eligible vacancy: %w", err)
		}
		vacancies = append(vacancies, v)
	}
	if err = rows.Err(); err != nil {
		return nil, fmt.Errorf("PostgresStorageAdapter: error during eligible rows iteration: %w", err)
	}

	return vacancies, nil
}

// MarkAsPosted помечает вакансии опубликованными одним запросом
func (a *PostgresStorageAdapter) MarkAsPosted(ctx context.Context, ids []int64, channelID string) error {
	if len(ids) == 0 {
		return nil
	}

	now := time.Now().UTC()
	// Затронутых строк может быть меньше len(ids), если часть записей
	// удалили между выборкой и отметкой, это не ошибка
	_, err := a.pool.Exec(ctx,
		`UPDATE vacancies
		 SET is_posted = true, posted_at = $2, channel_id = $3, updated_at = $2
		 WHERE id = ANY($1)`,
		ids, now, channelID,
	)
	if err != nil {
		return fmt.Errorf("PostgresStorageAdapter: failed to mark vacancies as posted: %w", err)
	}
	return nil
}

// GetPendingVacancies возвращает неопубликованные вакансии города
func (a *PostgresStorageAdapter) GetPendingVacancies(ctx context.Context, citySlug string, limit int) ([]domain.Vacancy, error) {
	query := `SELECT ` + vacancyColumns + `
		FROM vacancies
		WHERE city_slug = $1 AND is_posted = false
		ORDER BY salary_to_net DESC NULLS LAST, published_at DESC
		LIMIT $2`

	rows, err := a.pool.Query(ctx, query, citySlug, limit)
	if err != nil {
		return nil, fmt.Errorf("PostgresStorageAdapter: failed to query pending vacancies: %w", err)
	}
	defer rows.Close()

	var vacancies []domain.Vacancy
	for rows.Next() {
		v, err := scanVacancy(rows)
		if err != nil {
			return nil, fmt.Errorf("PostgresStorageAdapter: failed to scan pending vacancy: %w", err)
		}
		vacancies = append(vacancies, v)
	}
	if err = rows.Err(); err != nil {
		return nil, fmt.Errorf("PostgresStorageAdapter: error during pending rows iteration: %w", err)
	}

	return vacancies, nil
}

// GetCityStats собирает сводку по городу одним запросом
func (a *PostgresStorageAdapter) GetCityStats(ctx context.Context, city domain.City, criteria domain.EligibilityCriteria) (domain.CityStats, error) {
	now := time.Now().UTC()
	maxVacancyDate := now.AddDate(0, 0, -criteria.MaxVacancyAgeDays)
	maxParsedDate := now.AddDate(0, 0, -criteria.MaxParsedAgeDays)

	stats := domain.CityStats{CitySlug: city.Slug, CityName: city.Name}

	query := `SELECT
		count(*),
		count(*) FILTER (WHERE is_posted),
		count(*) FILTER (WHERE is_posted = false
			AND currency = $2
			AND published_at >= $3
			AND created_at >= $4),
		count(*) FILTER (WHERE created_at >= $5),
		avg(salary_to_net)
	FROM vacancies
	WHERE city_slug = $1`

	err := a.pool.QueryRow(ctx, query,
		city.Slug, criteria.Currency, maxVacancyDate, maxParsedDate, now.Add(-24*time.Hour),
	).Scan(&stats.Total, &stats.Posted, &stats.AwaitingPublish, &stats.AddedLastDay, &stats.AvgSalaryToNet)
	if err != nil {
		return domain.CityStats{}, fmt.Errorf("PostgresStorageAdapter: failed to query stats for %s: %w", city.Slug, err)
	}

	return stats, nil
}
