package postgres

import (
	"context"
	"fmt"
)

// Схема хранится рядом с кодом: отдельного инструмента миграций у проекта нет,
// таблица одна и меняется редко
const createSchemaQuery = `
CREATE TABLE IF NOT EXISTS vacancies (
	id                    BIGSERIAL PRIMARY KEY,
	source                TEXT        NOT NULL,
	external_id           TEXT        NOT NULL,
	city_slug             TEXT        NOT NULL,
	city                  TEXT        NOT NULL,
	channel_id            TEXT        NOT NULL,
	title                 TEXT        NOT NULL,
	employer              TEXT        NOT NULL,
	employer_trusted      BOOLEAN,
	salary_from_net       BIGINT,
	salary_to_net         BIGINT,
	currency              TEXT        NOT NULL,
	gross                 BOOLEAN,
	salary_period_name    TEXT,
	salary_frequency_name TEXT,
	schedule_name         TEXT,
	experience_name       TEXT,
	employment_form_name  TEXT,
	external_url          TEXT        NOT NULL,
	published_at          TIMESTAMPTZ NOT NULL,
	fingerprint           TEXT        NOT NULL,
	is_posted             BOOLEAN     NOT NULL DEFAULT false,
	posted_at             TIMESTAMPTZ,
	created_at            TIMESTAMPTZ NOT NULL DEFAULT now(),
	updated_at            TIMESTAMPTZ NOT NULL DEFAULT now(),

	CONSTRAINT vacancies_source_external_id_key UNIQUE (source, external_id)
);

CREATE INDEX IF NOT EXISTS idx_vacancies_city_pending
	ON vacancies (city_slug, published_at DESC)
	WHERE is_posted = false;

CREATE INDEX IF NOT EXISTS idx_vacancies_fingerprint
	ON vacancies (fingerprint);
`

// EnsureSchema создает таблицу вакансий и индексы, если их еще нет
func (a *PostgresStorageAdapter) EnsureSchema(ctx context.Context) error {
	if _, err := a.pool.Exec(ctx, createSchemaQuery); err != nil {
		return fmt.Errorf("PostgresStorageAdapter: failed to ensure schema: %w", err)
	}
	return nil
}
