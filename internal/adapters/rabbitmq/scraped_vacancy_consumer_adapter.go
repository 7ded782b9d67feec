package rabbitmq

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	amqp "github.com/rabbitmq/amqp091-go"

	"github.com/HRMetriX/couriesr-mules-project/internal/contracts"
	"github.com/HRMetriX/couriesr-mules-project/internal/core/domain"
	"github.com/HRMetriX/couriesr-mules-project/internal/core/port"
	"github.com/HRMetriX/couriesr-mules-project/internal/core/port/usecases_port"
	"github.com/HRMetriX/couriesr-mules-project/pkg/rabbitmq/rabbitmq_common"
	"github.com/HRMetriX/couriesr-mules-project/pkg/rabbitmq/rabbitmq_consumer"
)

const (
	consumerBatchSize    = 100
	consumerBatchTimeout = 10 * time.Second
)

// ScrapedVacancyConsumerAdapter - входящий адаптер, который слушает очередь
// собранных вакансий и вызывает use case для их сохранения
type ScrapedVacancyConsumerAdapter struct {
	consumer rabbitmq_consumer.Consumer
	useCase  usecases_port.SaveVacanciesUseCase
	logger   port.LoggerPort
}

// NewScrapedVacancyConsumerAdapter создает новый адаптер
func NewScrapedVacancyConsumerAdapter(
	consumerCfg rabbitmq_consumer.ConsumerConfig,
	useCase usecases_port.SaveVacanciesUseCase,
	logger port.LoggerPort,
	connManager *rabbitmq_common.ConnectionManager,
) (*ScrapedVacancyConsumerAdapter, error) {

	adapter := &ScrapedVacancyConsumerAdapter{
		useCase: useCase,
		logger:  logger,
	}

	// Создаем consumer, передавая ему метод этого адаптера как обработчик
	consumer, err := rabbitmq_consumer.NewBatchConsumer(consumerCfg, adapter.batchMessageHandler, consumerBatchSize, consumerBatchTimeout, connManager)
	if err != nil {
		return nil, fmt.Errorf("failed to create RabbitMQ consumer for scraped vacancies: %w", err)
	}
	adapter.consumer = consumer

	return adapter, nil
}

// batchMessageHandler - обработчик, который принимает срез сообщений.
// Одно сообщение несет пачку вакансий одного города.
func (a *ScrapedVacancyConsumerAdapter) batchMessageHandler(deliveries []amqp.Delivery) error {
	a.logger.Info("Received batch of messages to process", port.Fields{
		"batch_size": len(deliveries),
	})

	vacancies := make([]domain.Vacancy, 0, len(deliveries))
	for _, d := range deliveries {
		batch, err := a.unmarshalEvent(d)
		if err != nil {
			a.logger.Error("Failed to unmarshal message in batch, whole batch will be requeued", err, port.Fields{
				"delivery_tag": d.DeliveryTag,
			})
			return err
		}
		vacancies = append(vacancies, batch...)
	}

	if len(vacancies) == 0 {
		a.logger.Info("No valid vacancies in batch to save", nil)
		return nil
	}

	stats, err := a.useCase.BatchSave(context.Background(), vacancies)
	if err != nil {
		return err
	}

	a.logger.Info("Batch saved", port.Fields{
		"saved":   stats.Saved,
		"skipped": stats.Skipped,
	})
	return nil
}

// unmarshalEvent - функция для разбора одного сообщения
func (a *ScrapedVacancyConsumerAdapter) unmarshalEvent(d amqp.Delivery) ([]domain.Vacancy, error) {
	// Валидация по схеме
	eventType, _ := d.Headers["event-type"].(string)
	eventVersion, _ := d.Headers["event-version"].(string)
	if err := contracts.ValidateEvent(eventType, eventVersion, d.Body); err != nil {
		return nil, fmt.Errorf("message failed schema validation: %w", err)
	}

	// Десериализация в DTO
	var dto ScrapedVacancyEventDTO
	if err := json.Unmarshal(d.Body, &dto); err != nil {
		return nil, fmt.Errorf("failed to unmarshal incoming event DTO: %w", err)
	}

	// Трансляция из DTO в домен
	vacancies := make([]domain.Vacancy, 0, len(dto.Vacancies))
	for _, v := range dto.Vacancies {
		vacancies = append(vacancies, toDomainVacancy(v))
	}
	return vacancies, nil
}

// Start реализует port.EventListenerPort, запуская прослушивание очереди
func (a *ScrapedVacancyConsumerAdapter) Start(ctx context.Context) error {
	return a.consumer.StartConsuming(ctx)
}

// Close реализует port.EventListenerPort, корректно останавливая консьюмера
func (a *ScrapedVacancyConsumerAdapter) Close() error {
	return a.consumer.Close()
}
