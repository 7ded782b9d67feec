package postgres

import (
	"context"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5"

	"github.com/HRMetriX/couriesr-mules-project/internal/core/domain"
)

// BatchUpsert сохраняет пачку вакансий через COPY во временную таблицу
// с последующим слиянием. Конфликт по (source, external_id) означает,
// что объявление перевыложено: запись обновляется, is_posted сбрасывается
// и вакансия снова становится кандидатом на публикацию.
func (a *PostgresStorageAdapter) BatchUpsert(ctx context.Context, vacancies []domain.Vacancy) (domain.SaveStats, error) {
	stats := domain.SaveStats{}
	if len(vacancies) == 0 {
		return stats, nil
	}

	tx, err := a.pool.Begin(ctx)
	if err != nil {
		return stats, fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer tx.Rollback(ctx)

	// 1. подготовка строк: отпечатки и дедупликация внутри пачки,
	// иначе ON CONFLICT упадет на повторном (source, external_id)
	now := time.Now().UTC()
	batchSeen := make(map[string]struct{}, len(vacancies))
	copyRows := make([][]interface{}, 0, len(vacancies))

	for _, v := range vacancies {
		key := fmt.Sprintf("%s|%s", v.Source, v.ExternalID)
		if _, seen := batchSeen[key]; seen {
			stats.Skipped++
			continue
		}
		batchSeen[key] = struct{}{}

		fingerprint := v.Fingerprint
		if fingerprint == "" {
			fingerprint = CalculateFingerprint(v)
		}

		copyRows = append(copyRows, []interface{}{
			v.Source, v.ExternalID, v.CitySlug, v.City, v.ChannelID,
			v.Title, v.Employer, v.EmployerTrusted,
			v.SalaryFromNet, v.SalaryToNet, v.Currency, v.Gross,
			v.SalaryPeriodName, v.SalaryFrequencyName,
			v.ScheduleName, v.ExperienceName, v.EmploymentFormName,
			v.ExternalURL, v.PublishedAt, fingerprint,
			false, // is_posted
			nil,   // posted_at
			now, now,
		})
	}

	// 2. временная таблица без id: его выдает sequence основной таблицы
	_, err = tx.Exec(ctx, `CREATE TEMP TABLE temp_vacancies (LIKE vacancies) ON COMMIT DROP`)
	if err != nil {
		return stats, fmt.Errorf("failed to create temp table for vacancies: %w", err)
	}
	_, err = tx.Exec(ctx, `ALTER TABLE temp_vacancies DROP COLUMN id`)
	if err != nil {
		return stats, fmt.Errorf("failed to alter temp table: %w", err)
	}

	columns := []string{
		"source", "external_id", "city_slug", "city", "channel_id",
		"title", "employer", "employer_trusted",
		"salary_from_net", "salary_to_net", "currency", "gross",
		"salary_period_name", "salary_frequency_name",
		"schedule_name", "experience_name", "employment_form_name",
		"external_url", "published_at", "fingerprint",
		"is_posted", "posted_at", "created_at", "updated_at",
	}

	// 3. COPY во временную таблицу
	_, err = tx.CopyFrom(
		ctx,
		pgx.Identifier{"temp_vacancies"},
		columns,
		pgx.CopyFromRows(copyRows),
	)
	if err != nil {
		return stats, fmt.Errorf("failed to copy to temp_vacancies: %w", err)
	}

	// 4. атомарное слияние с основной таблицей
	rows, err := tx.Query(ctx, `
		INSERT INTO vacancies (
			source, external_id, city_slug, city, channel_id,
			title, employer, employer_trusted,
			salary_from_net, salary_to_net, currency, gross,
			salary_period_name, salary_frequency_name,
			schedule_name, experience_name, employment_form_name,
			external_url, published_at, fingerprint,
			is_posted, posted_at, created_at, updated_at
		)
		SELECT
			source, external_id, city_slug, city, channel_id,
			title, employer, employer_trusted,
			salary_from_net, salary_to_net, currency, gross,
			salary_period_name, salary_frequency_name,
			schedule_name, experience_name, employment_form_name,
			external_url, published_at, fingerprint,
			is_posted, posted_at, created_at, updated_at
		FROM temp_vacancies
		ON CONFLICT (source, external_id) DO UPDATE SET
			title = EXCLUDED.title,
			employer = EXCLUDED.employer,
			employer_trusted = EXCLUDED.employer_trusted,
			salary_from_net = EXCLUDED.salary_from_net,
			salary_to_net = EXCLUDED.salary_to_net,
			currency = EXCLUDED.currency,
			gross = EXCLUDED.gross,
			salary_period_name = EXCLUDED.salary_period_name,
			salary_frequency_name = EXCLUDED.salary_frequency_name,
			schedule_name = EXCLUDED.schedule_name,
			experience_name = EXCLUDED.experience_name,
			employment_form_name = EXCLUDED.employment_form_name,
			external_url = EXCLUDED.external_url,
			published_at = EXCLUDED.published_at,
			fingerprint = EXCLUDED.fingerprint,
			is_posted = false,
			updated_at = EXCLUDED.updated_at
		RETURNING id`)
	if err != nil {
		return stats, fmt.Errorf("failed to merge from temp_vacancies: %w", err)
	}

	for rows.Next() {
		var id int64
		if err := rows.Scan(&id); err != nil {
			rows.Close()
			return stats, fmt.Errorf("failed to scan returned id: %w", err)
		}
		stats.Saved++
	}
	rows.Close()
	if err := rows.Err(); err != nil {
		return stats, fmt.Errorf("error during merge rows iteration: %w", err)
	}

	if err := tx.Commit(ctx); err != nil {
		return stats, fmt.Errorf("failed to commit batch upsert: %w", err)
	}

	return stats, nil
}
