package rabbitmq

import (
	"time"

	"github.com/HRMetriX/couriesr-mules-project/internal/core/domain"
)

// Имя и версия события из JSON-схемы scraped-vacancy/v1.json
const (
	scrapedVacancyEventType    = "ScrapedVacancyEvent"
	scrapedVacancyEventVersion = "1.0.0"
)

// DTO точно соответствует JSON-схеме scraped-vacancy/v1.json
type ScrapedVacancyEventDTO struct {
	CitySlug  string       `json:"citySlug"`
	Vacancies []VacancyDTO `json:"vacancies"`
}

type VacancyDTO struct {
	Source     string `json:"source"`
	ExternalID string `json:"externalId"`

	CitySlug  string `json:"citySlug"`
	City      string `json:"city"`
	ChannelID string `json:"channelId"`

	Title           string `json:"title"`
	Employer        string `json:"employer"`
	EmployerTrusted *bool  `json:"employerTrusted,omitempty"`

	SalaryFromNet       *int64  `json:"salaryFromNet,omitempty"`
	SalaryToNet         *int64  `json:"salaryToNet,omitempty"`
	Currency            string  `json:"currency"`
	Gross               *bool   `json:"gross,omitempty"`
	SalaryPeriodName    *string `json:"salaryPeriodName,omitempty"`
	SalaryFrequencyName *string `json:"salaryFrequencyName,omitempty"`

	ScheduleName       *string `json:"scheduleName,omitempty"`
	ExperienceName     *string `json:"experienceName,omitempty"`
	EmploymentFormName *string `json:"employmentFormName,omitempty"`

	ExternalURL string    `json:"externalUrl"`
	PublishedAt time.Time `json:"publishedAt"`

	Latitude  *float64 `json:"latitude,omitempty"`
	Longitude *float64 `json:"longitude,omitempty"`
}

func toVacancyDTO(v domain.Vacancy) VacancyDTO {
	return VacancyDTO{
		Source:              v.Source,
		ExternalID:          v.ExternalID,
		CitySlug:            v.CitySlug,
		City:                v.City,
		ChannelID:           v.ChannelID,
		Title:               v.Title,
		Employer:            v.Employer,
		EmployerTrusted:     v.EmployerTrusted,
		SalaryFromNet:       v.SalaryFromNet,
		SalaryToNet:         v.SalaryToNet,
		Currency:            v.Currency,
		Gross:               v.Gross,
		SalaryPeriodName:    v.SalaryPeriodName,
		SalaryFrequencyName: v.SalaryFrequencyName,
		ScheduleName:        v.ScheduleName,
		ExperienceName:      v.ExperienceName,
		EmploymentFormName:  v.EmploymentFormName,
		ExternalURL:         v.ExternalURL,
		PublishedAt:         v.PublishedAt,
		Latitude:            v.Latitude,
		Longitude:           v.Longitude,
	}
}

func toDomainVacancy(dto VacancyDTO) domain.Vacancy {
	return domain.Vacancy{
		Source:              dto.Source,
		ExternalID:          dto.ExternalID,
		CitySlug:            dto.CitySlug,
		City:                dto.City,
		ChannelID:           dto.ChannelID,
		Title:               dto.Title,
		Employer:            dto.Employer,
		EmployerTrusted:     dto.EmployerTrusted,
		SalaryFromNet:       dto.SalaryFromNet,
		SalaryToNet:         dto.SalaryToNet,
		Currency:            dto.Currency,
		Gross:               dto.Gross,
		SalaryPeriodName:    dto.SalaryPeriodName,
		SalaryFrequencyName: dto.SalaryFrequencyName,
		ScheduleName:        dto.ScheduleName,
		ExperienceName:      dto.ExperienceName,
		EmploymentFormName:  dto.EmploymentFormName,
		ExternalURL:         dto.ExternalURL,
		PublishedAt:         dto.PublishedAt,
		Latitude:            dto.Latitude,
		Longitude:           dto.Longitude,
	}
}
