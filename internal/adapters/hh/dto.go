package hh

// DTO ответов API hh.ru, только нужные поля

type vacanciesPageDTO struct {
	Items   []vacancyDTO `json:"items"`
	Found   int          `json:"found"`
	Pages   int          `json:"pages"`
	Page    int          `json:"page"`
	PerPage int          `json:"per_page"`
}

type vacancyDTO struct {
	ID             string             `json:"id"`
	Name           string             `json:"name"`
	Salary         *salaryDTO         `json:"salary"`
	SalaryRange    *salaryRangeDTO    `json:"salary_range"`
	Schedule       *dictItemDTO       `json:"schedule"`
	Experience     *dictItemDTO       `json:"experience"`
	EmploymentForm *dictItemDTO       `json:"employment_form"`
	Employer       *employerDTO       `json:"employer"`
	Area           *dictItemDTO       `json:"area"`
	Address        *addressDTO        `json:"address"`
	PublishedAt    string             `json:"published_at"`
	AlternateURL   string             `json:"alternate_url"`
}

type salaryDTO struct {
	From     *int64 `json:"from"`
	To       *int64 `json:"to"`
	Currency string `json:"currency"`
	Gross    *bool  `json:"gross"`
}

type salaryRangeDTO struct {
	Mode      *dictItemDTO `json:"mode"`
	Frequency *dictItemDTO `json:"frequency"`
}

type dictItemDTO struct {
	ID   string `json:"id"`
	Name string `json:"name"`
}

type employerDTO struct {
	Name    string `json:"name"`
	Trusted *bool  `json:"trusted"`
}

type addressDTO struct {
	Lat *float64 `json:"lat"`
	Lng *float64 `json:"lng"`
}

type industryDTO struct {
	ID   string `json:"id"`
	Name string `json:"name"`
}
