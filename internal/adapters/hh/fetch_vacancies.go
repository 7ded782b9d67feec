package hh

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"time"

	"github.com/gocolly/colly/v2"

	"github.com/HRMetriX/couriesr-mules-project/internal/constants"
	"github.com/HRMetriX/couriesr-mules-project/internal/contextkeys"
	"github.com/HRMetriX/couriesr-mules-project/internal/core/domain"
	"github.com/HRMetriX/couriesr-mules-project/internal/core/port"
)

const dateParamLayout = "2006-01-02"

// API не отдает результаты глубже 2000, приходится дробить выборку
var errDepthLimitExceeded = errors.New("hh adapter: result window exceeds 2000 items")

// FetchCourierVacancies собирает курьерские вакансии города за окно дат.
// Если выборка упирается в потолок 2000 результатов, она дробится сначала
// по отраслям работодателей, затем по отдельным дням.
func (a *HHFetcherAdapter) FetchCourierVacancies(ctx context.Context, city domain.City, dateFrom, dateTo time.Time) ([]domain.Vacancy, error) {
	logger := contextkeys.LoggerFromContext(ctx)

	params := a.baseSearchParams(city, dateFrom, dateTo)

	items, err := a.fetchAllPages(ctx, params)
	if err == nil {
		return a.mapUnique(ctx, city, items), nil
	}
	if !errors.Is(err, errDepthLimitExceeded) {
		return nil, err
	}

	logger.Warn("Result window exceeds API depth limit, splitting by industry", port.Fields{
		"city": city.Slug,
	})

	industries, err := a.fetchIndustries(ctx)
	if err != nil {
		return nil, err
	}

	var all []vacancyDTO
	for _, industry := range industries {
		if ctx.Err() != nil {
			return nil, ctx.Err()
		}

		params := a.baseSearchParams(city, dateFrom, dateTo)
		params.Set("industry", industry.ID)

		items, err := a.fetchAllPages(ctx, params)
		if errors.Is(err, errDepthLimitExceeded) {
			items, err = a.fetchByDays(ctx, city, industry.ID, dateFrom, dateTo)
		}
		if err != nil {
			return nil, fmt.Errorf("hh adapter: industry %s: %w", industry.ID, err)
		}
		all = append(all, items...)
	}

	return a.mapUnique(ctx, city, all), nil
}

// fetchByDays дробит выборку по отрасли на окна в один день
func (a *HHFetcherAdapter) fetchByDays(ctx context.Context, city domain.City, industryID string, dateFrom, dateTo time.Time) ([]vacancyDTO, error) {
	logger := contextkeys.LoggerFromContext(ctx)

	var all []vacancyDTO
	for day := dateFrom; !day.After(dateTo); day = day.AddDate(0, 0, 1) {
		if ctx.Err() != nil {
			return nil, ctx.Err()
		}

		params := a.baseSearchParams(city, day, day)
		params.Set("industry", industryID)

		items, err := a.fetchAllPages(ctx, params)
		if errors.Is(err, errDepthLimitExceeded) {
			// дальше дробить некуда, забираем первые 2000
			logger.Warn("Single day still exceeds depth limit, taking first pages only", port.Fields{
				"city":     city.Slug,
				"industry": industryID,
				"day":      day.Format(dateParamLayout),
			})
			all = append(all, items...)
			continue
		}
		if err != nil {
			return nil, err
		}
		all = append(all, items...)
	}
	return all, nil
}

func (a *HHFetcherAdapter) baseSearchParams(city domain.City, dateFrom, dateTo time.Time) url.Values {
	params := url.Values{}
	params.Set("text", constants.SearchText)
	params.Set("search_field", constants.SearchField)
	params.Set("professional_role", constants.ProfessionalRoleCourier)
	params.Set("per_page", strconv.Itoa(constants.PerPageMax))
	params.Set("only_with_salary", "false")
	params.Set("area", city.AreaID)
	params.Set("date_from", dateFrom.Format(dateParamLayout))
	params.Set("date_to", dateTo.Format(dateParamLayout))
	return params
}

// fetchAllPages выгребает все страницы выборки до конца либо до потолка пагинации.
// При ошибке возвращает уже собранные элементы вместе с ней.
func (a *HHFetcherAdapter) fetchAllPages(ctx context.Context, params url.Values) ([]vacancyDTO, error) {
	var items []vacancyDTO
	for page := 0; ; page++ {
		if ctx.Err() != nil {
			return items, ctx.Err()
		}

		params.Set("page", strconv.Itoa(page))
		pageData, err := a.fetchPage(params)
		if err != nil {
			return items, err
		}

		items = append(items, pageData.Items...)

		if page >= pageData.Pages-1 || page >= constants.MaxPageIndex {
			return items, nil
		}
	}
}

func (a *HHFetcherAdapter) fetchPage(params url.Values) (*vacanciesPageDTO, error) {
	// наследует лимиты, но имеет свои собственные обработчики
	collector := a.collector.Clone()

	var pageData vacanciesPageDTO
	var responseErr error

	collector.OnResponse(func(r *colly.Response) {
		if jsonErr := json.Unmarshal(r.Body, &pageData); jsonErr != nil {
			responseErr = fmt.Errorf("hh adapter: failed to parse response from %s: %w", r.Request.URL.String(), jsonErr)
		}
	})

	collector.OnError(func(r *colly.Response, err error) {
		if r.StatusCode == http.StatusBadRequest && strings.Contains(string(r.Body), "2000") {
			responseErr = errDepthLimitExceeded
			return
		}
		responseErr = fmt.Errorf("hh adapter: request to %s failed with status %d: %w", r.Request.URL, r.StatusCode, err)
	})

	targetURL := a.baseURL + "/vacancies?" + params.Encode()
	if visitErr := collector.Visit(targetURL); visitErr != nil {
		return nil, fmt.Errorf("hh adapter: failed to visit URL %s: %w", targetURL, visitErr)
	}
	collector.Wait()

	if responseErr != nil {
		return nil, responseErr
	}
	return &pageData, nil
}

// fetchIndustries забирает справочник отраслей верхнего уровня
func (a *HHFetcherAdapter) fetchIndustries(ctx context.Context) ([]industryDTO, error) {
	if ctx.Err() != nil {
		return nil, ctx.Err()
	}

	collector := a.collector.Clone()

	var industries []industryDTO
	var responseErr error

	collector.OnResponse(func(r *colly.Response) {
		if jsonErr := json.Unmarshal(r.Body, &industries); jsonErr != nil {
			responseErr = fmt.Errorf("hh adapter: failed to parse industries: %w", jsonErr)
		}
	})

	collector.OnError(func(r *colly.Response, err error) {
		responseErr = fmt.Errorf("hh adapter: industries request failed with status %d: %w", r.StatusCode, err)
	})

	targetURL := a.baseURL + "/industries"
	if visitErr := collector.Visit(targetURL); visitErr != nil {
		return nil, fmt.Errorf("hh adapter: failed to visit URL %s: %w", targetURL, visitErr)
	}
	collector.Wait()

	if responseErr != nil {
		return nil, responseErr
	}
	return industries, nil
}

// mapUnique превращает DTO в доменные вакансии, отбрасывая дубликаты
// по внешнему идентификатору (дробление по отраслям может их давать)
func (a *HHFetcherAdapter) mapUnique(ctx context.Context, city domain.City, items []vacancyDTO) []domain.Vacancy {
	logger := contextkeys.LoggerFromContext(ctx)

	seen := make(map[string]struct{}, len(items))
	vacancies := make([]domain.Vacancy, 0, len(items))
	for _, item := range items {
		if item.ID == "" {
			continue
		}
		if _, ok := seen[item.ID]; ok {
			continue
		}
		seen[item.ID] = struct{}{}

		vacancy, err := toDomainVacancy(item, city)
		if err != nil {
			logger.Warn("Skipping unmappable vacancy", port.Fields{
				"external_id": item.ID,
				"error":       err.Error(),
			})
			continue
		}
		vacancies = append(vacancies, vacancy)
	}
	return vacancies
}
