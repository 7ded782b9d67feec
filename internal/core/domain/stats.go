package domain

// CityStats - сводка по вакансиям одного города
type CityStats struct {
	CitySlug        string
	CityName        string
	Total           int64
	Posted          int64
	AwaitingPublish int64 // еще не опубликованные и подходящие по критериям
	AddedLastDay    int64
	AvgSalaryToNet  *float64
}

// SaveStats - итог сохранения одной пачки событий
type SaveStats struct {
	Saved   int
	Skipped int
}

// FetchStats - итог скрейпинга одного города
type FetchStats struct {
	CitySlug string
	Fetched  int
	Enqueued int
}
