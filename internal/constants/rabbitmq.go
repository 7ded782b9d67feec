package constants

// Имена очередей
const (
	QueueScrapedVacancies = "scraped_vacancies"
)

// Обменник и ключи маршрутизации
const (
	VacanciesExchange          = "vacancies"
	RoutingKeyScrapedVacancies = "db.vacancies.save"
)

const (
	FinalDLXExchange   = "scraped_vacancies_final_dlx"
	FinalDLQ           = "scraped_vacancies_final_dlq"
	FinalDLQRoutingKey = "vacancies.dlq.key"
)
