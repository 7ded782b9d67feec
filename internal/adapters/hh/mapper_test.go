package hh

import (
	"testing"

	"github.com/HRMetriX/couriesr-mules-project/internal/core/domain"
)

func testMapperCity() domain.City {
	return domain.City{Slug: "msk", Name: "Москва", ChannelID: "@courier_jobs_msk"}
}

func i64(v int64) *int64 { return &v }

func b(v bool) *bool { return &v }

func TestToDomainVacancy_BasicFields(t *testing.T) {
	dto := vacancyDTO{
		ID:           "12345",
		Name:         "Курьер",
		AlternateURL: "https://hh.ru/vacancy/12345",
		PublishedAt:  "2026-03-10T14:30:00+0300",
		Employer:     &employerDTO{Name: "Доставка Плюс", Trusted: b(true)},
	}

	v, err := toDomainVacancy(dto, testMapperCity())
	if err != nil {
		t.Fatalf("toDomainVacancy() error = %v", err)
	}

	if v.Source != "hh" {
		t.Errorf("Source = %q, want hh", v.Source)
	}
	if v.ExternalID != "12345" {
		t.Errorf("ExternalID = %q, want 12345", v.ExternalID)
	}
	if v.CitySlug != "msk" || v.ChannelID != "@courier_jobs_msk" {
		t.Errorf("city fields = %q/%q, want msk/@courier_jobs_msk", v.CitySlug, v.ChannelID)
	}
	if v.Currency != "RUR" {
		t.Errorf("Currency = %q, want default RUR", v.Currency)
	}
	if v.Employer != "Доставка Плюс" {
		t.Errorf("Employer = %q, want Доставка Плюс", v.Employer)
	}
	if v.PublishedAt.Hour() != 14 || v.PublishedAt.Minute() != 30 {
		t.Errorf("PublishedAt = %v, want 14:30 local", v.PublishedAt)
	}
}

func TestToDomainVacancy_GrossConvertedToNet(t *testing.T) {
	dto := vacancyDTO{
		ID:          "1",
		Name:        "Курьер",
		PublishedAt: "2026-03-10T14:30:00+0300",
		Salary: &salaryDTO{
			From:     i64(100000),
			To:       i64(150000),
			Currency: "RUR",
			Gross:    b(true),
		},
	}

	v, err := toDomainVacancy(dto, testMapperCity())
	if err != nil {
		t.Fatalf("toDomainVacancy() error = %v", err)
	}

	if v.SalaryFromNet == nil || *v.SalaryFromNet != 87000 {
		t.Errorf("SalaryFromNet = %v, want 87000", v.SalaryFromNet)
	}
	if v.SalaryToNet == nil || *v.SalaryToNet != 130500 {
		t.Errorf("SalaryToNet = %v, want 130500", v.SalaryToNet)
	}
}

func TestToDomainVacancy_NetSalaryUnchanged(t *testing.T) {
	dto := vacancyDTO{
		ID:          "1",
		Name:        "Курьер",
		PublishedAt: "2026-03-10T14:30:00+0300",
		Salary: &salaryDTO{
			From:  i64(80000),
			Gross: b(false),
		},
	}

	v, err := toDomainVacancy(dto, testMapperCity())
	if err != nil {
		t.Fatalf("toDomainVacancy() error = %v", err)
	}
	if v.SalaryFromNet == nil || *v.SalaryFromNet != 80000 {
		t.Errorf("SalaryFromNet = %v, want 80000 unchanged", v.SalaryFromNet)
	}
	if v.SalaryToNet != nil {
		t.Errorf("SalaryToNet = %v, want nil", v.SalaryToNet)
	}
}

func TestToDomainVacancy_CurrencyOverride(t *testing.T) {
	dto := vacancyDTO{
		ID:          "1",
		Name:        "Курьер",
		PublishedAt: "2026-03-10T14:30:00+0300",
		Salary:      &salaryDTO{From: i64(500), Currency: "KZT"},
	}

	v, err := toDomainVacancy(dto, testMapperCity())
	if err != nil {
		t.Fatalf("toDomainVacancy() error = %v", err)
	}
	if v.Currency != "KZT" {
		t.Errorf("Currency = %q, want KZT from salary block", v.Currency)
	}
}

func TestToDomainVacancy_RFC3339Fallback(t *testing.T) {
	dto := vacancyDTO{
		ID:          "1",
		Name:        "Курьер",
		PublishedAt: "2026-03-10T14:30:00+03:00",
	}

	v, err := toDomainVacancy(dto, testMapperCity())
	if err != nil {
		t.Fatalf("toDomainVacancy() error = %v, want RFC3339 fallback to work", err)
	}
	if v.PublishedAt.Hour() != 14 {
		t.Errorf("PublishedAt hour = %d, want 14", v.PublishedAt.Hour())
	}
}

func TestToDomainVacancy_BadPublishedAt(t *testing.T) {
	dto := vacancyDTO{
		ID:          "1",
		Name:        "Курьер",
		PublishedAt: "вчера",
	}

	if _, err := toDomainVacancy(dto, testMapperCity()); err == nil {
		t.Error("toDomainVacancy() error = nil, want parse error")
	}
}

func TestToDomainVacancy_OptionalDictionaries(t *testing.T) {
	dto := vacancyDTO{
		ID:          "1",
		Name:        "Курьер",
		PublishedAt: "2026-03-10T14:30:00+0300",
		SalaryRange: &salaryRangeDTO{
			Mode:      &dictItemDTO{Name: "за месяц"},
			Frequency: &dictItemDTO{Name: ""},
		},
		Schedule: &dictItemDTO{Name: "Сменный график"},
		Address:  &addressDTO{Lat: f64(55.75), Lng: f64(37.62)},
	}

	v, err := toDomainVacancy(dto, testMapperCity())
	if err != nil {
		t.Fatalf("toDomainVacancy() error = %v", err)
	}
	if v.SalaryPeriodName == nil || *v.SalaryPeriodName != "за месяц" {
		t.Errorf("SalaryPeriodName = %v, want за месяц", v.SalaryPeriodName)
	}
	if v.SalaryFrequencyName != nil {
		t.Errorf("SalaryFrequencyName = %v, want nil for empty name", v.SalaryFrequencyName)
	}
	if v.ScheduleName == nil || *v.ScheduleName != "Сменный график" {
		t.Errorf("ScheduleName = %v, want Сменный график", v.ScheduleName)
	}
	if v.Latitude == nil || *v.Latitude != 55.75 {
		t.Errorf("Latitude = %v, want 55.75", v.Latitude)
	}
}

func f64(v float64) *float64 { return &v }
