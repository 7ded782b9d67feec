package constants

import "github.com/HRMetriX/couriesr-mules-project/internal/core/domain"

// Источник вакансий
const SourceHH = "hh"

// Валюта, с которой работает публикация
const CurrencyRUR = "RUR"

// GetPublicationCities возвращает города, по которым ведутся каналы.
// AreaID - идентификаторы регионов в справочнике hh.ru.
func GetPublicationCities() []domain.City {
	return []domain.City{
		{Slug: "msk", Name: "Москва", AreaID: "1", ChannelID: "@courier_jobs_msk"},
		{Slug: "spb", Name: "Санкт-Петербург", AreaID: "2", ChannelID: "@courier_jobs_spb"},
		{Slug: "nsk", Name: "Новосибирск", AreaID: "4", ChannelID: "@courier_jobs_nsk"},
		{Slug: "ekb", Name: "Екатеринбург", AreaID: "3", ChannelID: "@courier_jobs_ekb"},
		{Slug: "kzn", Name: "Казань", AreaID: "88", ChannelID: "@courier_jobs_kzn"},
	}
}

// CityBySlug ищет город по слагу
func CityBySlug(slug string) (domain.City, bool) {
	for _, c := range GetPublicationCities() {
		if c.Slug == slug {
			return c, true
		}
	}
	return domain.City{}, false
}
