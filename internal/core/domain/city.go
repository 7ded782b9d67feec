package domain

// City описывает город, для которого ведется публикация
type City struct {
	Slug      string // короткий идентификатор (msk, spb, ...)
	Name      string // человекочитаемое название
	AreaID    string // id региона в API hh.ru
	ChannelID string // телеграм-канал вида @courier_jobs_msk
}

// EligibilityCriteria - параметры выборки кандидатов на публикацию
type EligibilityCriteria struct {
	CitySlug          string
	Currency          string
	MaxVacancyAgeDays int // отсечка по published_at
	MaxParsedAgeDays  int // отсечка по created_at
	Limit             int
}
