package rabbitmq

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/google/uuid"
	amqp "github.com/rabbitmq/amqp091-go"

	"github.com/HRMetriX/couriesr-mules-project/internal/contextkeys"
	"github.com/HRMetriX/couriesr-mules-project/internal/core/domain"
	"github.com/HRMetriX/couriesr-mules-project/internal/core/port"
	"github.com/HRMetriX/couriesr-mules-project/pkg/rabbitmq/rabbitmq_producer"
)

const publishTimeout = 10 * time.Second

// ScrapedVacancyQueueAdapter отправляет пачки собранных вакансий в очередь
type ScrapedVacancyQueueAdapter struct {
	producer   *rabbitmq_producer.Publisher
	routingKey string
}

// NewScrapedVacancyQueueAdapter создает новый экземпляр
func NewScrapedVacancyQueueAdapter(producer *rabbitmq_producer.Publisher, routingKey string) (*ScrapedVacancyQueueAdapter, error) {
	if producer == nil {
		return nil, fmt.Errorf("producer cannot be nil")
	}
	if routingKey == "" {
		return nil, fmt.Errorf("routingKey cannot be empty")
	}
	return &ScrapedVacancyQueueAdapter{
		producer:   producer,
		routingKey: routingKey,
	}, nil
}

// EnqueueScraped реализует port.VacancyQueuePort
func (a *ScrapedVacancyQueueAdapter) EnqueueScraped(ctx context.Context, citySlug string, vacancies []domain.Vacancy) error {
	logger := contextkeys.LoggerFromContext(ctx)

	eventDTO := ScrapedVacancyEventDTO{
		CitySlug:  citySlug,
		Vacancies: make([]VacancyDTO, 0, len(vacancies)),
	}
	for _, v := range vacancies {
		eventDTO.Vacancies = append(eventDTO.Vacancies, toVacancyDTO(v))
	}

	eventJSON, err := json.Marshal(eventDTO)
	if err != nil {
		return fmt.Errorf("failed to marshal scraped vacancies event for city %s: %w", citySlug, err)
	}

	msg := amqp.Publishing{
		ContentType:  "application/json",
		Body:         eventJSON,
		DeliveryMode: amqp.Persistent,
		MessageId:    uuid.NewString(),
		Timestamp:    time.Now(),
		Headers: amqp.Table{
			"event-type":    scrapedVacancyEventType,
			"event-version": scrapedVacancyEventVersion,
		},
	}

	publishCtx, cancel := context.WithTimeout(ctx, publishTimeout)
	defer cancel()

	logger.Info("Publishing scraped vacancies batch", port.Fields{
		"city_slug":   citySlug,
		"batch_size":  len(vacancies),
		"routing_key": a.routingKey,
	})
	return a.producer.Publish(publishCtx, a.routingKey, msg)
}
