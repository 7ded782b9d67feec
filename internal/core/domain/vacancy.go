package domain

import "time"

// Vacancy - основная сущность вакансии, отражение таблицы vacancies
type Vacancy struct {
	ID         int64  `db:"id"`
	Source     string `db:"source"`
	ExternalID string `db:"external_id"`

	CitySlug  string `db:"city_slug"`
	City      string `db:"city"`
	ChannelID string `db:"channel_id"`

	Title           string `db:"title"`
	Employer        string `db:"employer"`
	EmployerTrusted *bool  `db:"employer_trusted"`

	SalaryFromNet       *int64  `db:"salary_from_net"`
	SalaryToNet         *int64  `db:"salary_to_net"`
	Currency            string  `db:"currency"`
	Gross               *bool   `db:"gross"`
	SalaryPeriodName    *string `db:"salary_period_name"`
	SalaryFrequencyName *string `db:"salary_frequency_name"`

	ScheduleName       *string `db:"schedule_name"`
	ExperienceName     *string `db:"experience_name"`
	EmploymentFormName *string `db:"employment_form_name"`

	ExternalURL string    `db:"external_url"`
	PublishedAt time.Time `db:"published_at"`

	Latitude    *float64 `db:"-"`
	Longitude   *float64 `db:"-"`
	Fingerprint string   `db:"fingerprint"`

	IsPosted bool       `db:"is_posted"`
	PostedAt *time.Time `db:"posted_at"`

	CreatedAt time.Time `db:"created_at"`
	UpdatedAt time.Time `db:"updated_at"`
}

// HasSalaryTo сообщает, указана ли у вакансии верхняя граница зарплаты.
// Селектор делит пул именно по этому признаку.
func (v Vacancy) HasSalaryTo() bool {
	return v.SalaryToNet != nil
}
