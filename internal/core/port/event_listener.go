package port

import "context"

// EventListenerPort - входящий слушатель событий из очереди
type EventListenerPort interface {
	Start(ctx context.Context) error
	Close() error
}
