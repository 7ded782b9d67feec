package usecase

import (
	"context"
	"fmt"

	"github.com/HRMetriX/couriesr-mules-project/internal/contextkeys"
	"github.com/HRMetriX/couriesr-mules-project/internal/core/domain"
	"github.com/HRMetriX/couriesr-mules-project/internal/core/port"
)

// Кандидатов берем с запасом, чтобы было из чего выбирать
const eligiblePoolFactor = 3

// PublicationSettings - параметры отбора и публикации
type PublicationSettings struct {
	TargetCount       int
	Currency          string
	MaxVacancyAgeDays int
	MaxParsedAgeDays  int
}

// PublishCityVacanciesUseCase проводит один город через весь цикл:
// выборка кандидатов -> отбор -> рендер -> отправка -> отметка в БД.
type PublishCityVacanciesUseCase struct {
	storage   port.VacancyStoragePort
	messenger port.MessengerPort
	selector  *SelectForPublicationUseCase
	renderer  *RenderPostUseCase
	settings  PublicationSettings
}

func NewPublishCityVacanciesUseCase(
	storage port.VacancyStoragePort,
	messenger port.MessengerPort,
	selector *SelectForPublicationUseCase,
	renderer *RenderPostUseCase,
	settings PublicationSettings,
) *PublishCityVacanciesUseCase {
	return &PublishCityVacanciesUseCase{
		storage:   storage,
		messenger: messenger,
		selector:  selector,
		renderer:  renderer,
		settings:  settings,
	}
}

func (uc *PublishCityVacanciesUseCase) Execute(ctx context.Context, city domain.City) domain.CityResult {
	logger := contextkeys.LoggerFromContext(ctx).WithFields(port.Fields{
		"use_case": "PublishCityVacancies",
		"city":     city.Slug,
		"channel":  city.ChannelID,
	})

	result := domain.CityResult{CitySlug: city.Slug, State: domain.CityStatePending}

	criteria := domain.EligibilityCriteria{
		CitySlug:          city.Slug,
		Currency:          uc.settings.Currency,
		MaxVacancyAgeDays: uc.settings.MaxVacancyAgeDays,
		MaxParsedAgeDays:  uc.settings.MaxParsedAgeDays,
		Limit:             uc.settings.TargetCount * eligiblePoolFactor,
	}

	eligible, err := uc.storage.GetEligibleForPublication(ctx, criteria)
	if err != nil {
		logger.Error("Failed to fetch eligible vacancies", err, nil)
		result.State = domain.CityStateFailed
		result.Err = fmt.Errorf("fetch eligible vacancies for %s: %w", city.Slug, err)
		return result
	}
	result.State = domain.CityStateFetched

	if len(eligible) == 0 {
		logger.Info("No vacancies to publish", nil)
		result.State = domain.CityStateSkipped
		return result
	}

	selection := uc.selector.Execute(ctx, eligible, uc.settings.TargetCount)
	if len(selection) == 0 {
		logger.Info("Selection is empty, nothing to publish", nil)
		result.State = domain.CityStateSkipped
		return result
	}
	result.State = domain.CityStateSelected

	post, err := uc.renderer.Execute(ctx, selection, city.Name)
	if err != nil {
		logger.Error("Failed to render post", err, port.Fields{"selected": len(selection)})
		result.State = domain.CityStateFailed
		result.Err = fmt.Errorf("render post for %s: %w", city.Slug, err)
		return result
	}
	result.State = domain.CityStateRendered

	if err := uc.messenger.SendPost(ctx, city.ChannelID, post); err != nil {
		logger.Error("Failed to send post", err, nil)
		result.State = domain.CityStateFailed
		result.Err = fmt.Errorf("send post to %s: %w", city.ChannelID, err)
		return result
	}
	result.State = domain.CityStateSent
	result.PublishedCount = len(selection)

	ids := make([]int64, 0, len(selection))
	for _, v := range selection {
		ids = append(ids, v.ID)
	}

	// Пост уже в канале, поэтому ошибка отметки не роняет город.
	// Цена - возможная повторная публикация этих вакансий.
	if err := uc.storage.MarkAsPosted(ctx, ids, city.ChannelID); err != nil {
		logger.Warn("Post sent but vacancies were not marked as posted", port.Fields{
			"error": err.Error(),
			"ids":   len(ids),
		})
		return result
	}
	result.State = domain.CityStateMarked

	logger.Info("City published", port.Fields{"published": result.PublishedCount})
	return result
}
