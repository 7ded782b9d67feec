package telegram

import (
	"context"
	"fmt"

	"github.com/HRMetriX/couriesr-mules-project/internal/core/domain"
)

const referralButtonText = "🚀 Работать на себя"

// ChannelPublisherAdapter реализует port.MessengerPort:
// публикация постов в городские каналы
type ChannelPublisherAdapter struct {
	client *Client
}

func NewChannelPublisherAdapter(client *Client) (*ChannelPublisherAdapter, error) {
	if client == nil {
		return nil, fmt.Errorf("telegram client cannot be nil")
	}
	return &ChannelPublisherAdapter{client: client}, nil
}

func (a *ChannelPublisherAdapter) SendPost(ctx context.Context, channelID string, post domain.PostContent) error {
	buttonText := ""
	if post.ButtonURL != "" {
		buttonText = referralButtonText
	}
	return a.client.SendMessage(ctx, channelID, post.Text, buttonText, post.ButtonURL)
}
