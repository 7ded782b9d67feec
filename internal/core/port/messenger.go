package port

import (
	"context"

	"github.com/HRMetriX/couriesr-mules-project/internal/core/domain"
)

// MessengerPort отправляет готовый пост в канал города
type MessengerPort interface {
	SendPost(ctx context.Context, channelID string, post domain.PostContent) error
}

// Alert - служебное уведомление для операторов
type Alert struct {
	Title   string
	Details string
	Stats   map[string]string
	IsError bool
}

// AlertPort отправляет служебные уведомления (итоги запуска, сбои, дайджесты)
type AlertPort interface {
	SendAlert(ctx context.Context, alert Alert) error
}
