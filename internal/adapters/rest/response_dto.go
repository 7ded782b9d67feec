package rest

import "time"

// DTO ответов API, чтобы не отдавать доменные структуры наружу

type CityStatsResponse struct {
	CitySlug        string   `json:"citySlug"`
	CityName        string   `json:"cityName"`
	Total           int64    `json:"total"`
	Posted          int64    `json:"posted"`
	AwaitingPublish int64    `json:"awaitingPublish"`
	AddedLastDay    int64    `json:"addedLastDay"`
	AvgSalaryToNet  *float64 `json:"avgSalaryToNet,omitempty"`
}

type PendingVacancyResponse struct {
	ID          int64     `json:"id"`
	Source      string    `json:"source"`
	ExternalID  string    `json:"externalId"`
	CitySlug    string    `json:"citySlug"`
	Title       string    `json:"title"`
	Employer    string    `json:"employer"`
	SalaryToNet *int64    `json:"salaryToNet,omitempty"`
	ExternalURL string    `json:"externalUrl"`
	PublishedAt time.Time `json:"publishedAt"`
}
