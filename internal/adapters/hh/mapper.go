package hh

import (
	"fmt"
	"math"
	"time"

	"github.com/HRMetriX/couriesr-mules-project/internal/constants"
	"github.com/HRMetriX/couriesr-mules-project/internal/core/domain"
)

// API отдает published_at с часовым поясом без двоеточия
const publishedAtLayout = "2006-01-02T15:04:05-0700"

// Ставка НДФЛ для пересчета "до вычета" в "на руки"
const netRate = 0.87

func toDomainVacancy(dto vacancyDTO, city domain.City) (domain.Vacancy, error) {
	publishedAt, err := time.Parse(publishedAtLayout, dto.PublishedAt)
	if err != nil {
		publishedAt, err = time.Parse(time.RFC3339, dto.PublishedAt)
		if err != nil {
			return domain.Vacancy{}, fmt.Errorf("invalid published_at %q: %w", dto.PublishedAt, err)
		}
	}

	vacancy := domain.Vacancy{
		Source:      constants.SourceHH,
		ExternalID:  dto.ID,
		CitySlug:    city.Slug,
		City:        city.Name,
		ChannelID:   city.ChannelID,
		Title:       dto.Name,
		Currency:    constants.CurrencyRUR,
		ExternalURL: dto.AlternateURL,
		PublishedAt: publishedAt,
	}

	if dto.Employer != nil {
		vacancy.Employer = dto.Employer.Name
		vacancy.EmployerTrusted = dto.Employer.Trusted
	}

	if dto.Salary != nil {
		vacancy.SalaryFromNet = netAmount(dto.Salary.From, dto.Salary.Gross)
		vacancy.SalaryToNet = netAmount(dto.Salary.To, dto.Salary.Gross)
		vacancy.Gross = dto.Salary.Gross
		if dto.Salary.Currency != "" {
			vacancy.Currency = dto.Salary.Currency
		}
	}

	if dto.SalaryRange != nil {
		if dto.SalaryRange.Mode != nil {
			vacancy.SalaryPeriodName = nonEmpty(dto.SalaryRange.Mode.Name)
		}
		if dto.SalaryRange.Frequency != nil {
			vacancy.SalaryFrequencyName = nonEmpty(dto.SalaryRange.Frequency.Name)
		}
	}

	if dto.Schedule != nil {
		vacancy.ScheduleName = nonEmpty(dto.Schedule.Name)
	}
	if dto.Experience != nil {
		vacancy.ExperienceName = nonEmpty(dto.Experience.Name)
	}
	if dto.EmploymentForm != nil {
		vacancy.EmploymentFormName = nonEmpty(dto.EmploymentForm.Name)
	}

	if dto.Address != nil {
		vacancy.Latitude = dto.Address.Lat
		vacancy.Longitude = dto.Address.Lng
	}

	return vacancy, nil
}

// netAmount приводит сумму "до вычета" к сумме "на руки"
func netAmount(amount *int64, gross *bool) *int64 {
	if amount == nil {
		return nil
	}
	value := *amount
	if gross != nil && *gross {
		value = int64(math.Round(float64(value) * netRate))
	}
	return &value
}

func nonEmpty(s string) *string {
	if s == "" {
		return nil
	}
	return &s
}
