package constants

// Параметры поиска в API hh.ru
const (
	HHAPIBaseURL = "https://api.hh.ru"

	SearchText              = "Курьер"
	SearchField             = "name"
	ProfessionalRoleCourier = "58"

	PerPageMax = 100
	// API отдает не больше 2000 результатов, то есть страницы 0..19
	MaxPageIndex = 19
)
