package telegram

import (
	"context"
	"fmt"
	"html"
	"sort"
	"strings"
	"time"
	"unicode/utf8"

	"github.com/HRMetriX/couriesr-mules-project/internal/core/port"
)

const alertProjectName = "Courier Mules"
const maxAlertLength = 4000

// AlertSenderAdapter реализует port.AlertPort: служебные уведомления
// операторам в отдельный чат
type AlertSenderAdapter struct {
	client *Client
	chatID string
}

func NewAlertSenderAdapter(client *Client, chatID string) (*AlertSenderAdapter, error) {
	if client == nil {
		return nil, fmt.Errorf("telegram client cannot be nil")
	}
	if chatID == "" {
		return nil, fmt.Errorf("alert chat id is required")
	}
	return &AlertSenderAdapter{client: client, chatID: chatID}, nil
}

func (a *AlertSenderAdapter) SendAlert(ctx context.Context, alert port.Alert) error {
	emoji := "ℹ️"
	if alert.IsError {
		emoji = "❌"
	}

	parts := []string{
		fmt.Sprintf("<b>%s %s</b>", emoji, alertProjectName),
		fmt.Sprintf("<i>🕐 %s</i>", time.Now().Format("02.01.2006 15:04:05")),
		fmt.Sprintf("\n<b>%s</b>", html.EscapeString(alert.Title)),
	}

	if alert.Details != "" {
		parts = append(parts, fmt.Sprintf("\n📝 <b>Детали:</b>\n%s", html.EscapeString(alert.Details)))
	}

	if len(alert.Stats) > 0 {
		parts = append(parts, fmt.Sprintf("\n📊 <b>Статистика:</b>\n%s", formatStats(alert.Stats)))
	}

	text := strings.Join(parts, "\n")

	// Лимит Telegram, статистику проще отрезать, чем терять алерт
	if utf8.RuneCountInString(text) > maxAlertLength {
		text = strings.Join(parts[:3], "\n")
		text += "\n\n⚠️ <i>Статистика обрезана</i>"
	}

	return a.client.SendMessage(ctx, a.chatID, text, "", "")
}

func formatStats(stats map[string]string) string {
	keys := make([]string, 0, len(stats))
	for k := range stats {
		keys = append(keys, k)
	}
	sort.Strings(keys)

	lines := make([]string, 0, len(keys))
	for _, k := range keys {
		lines = append(lines, fmt.Sprintf("  • %s: %s", html.EscapeString(k), html.EscapeString(stats[k])))
	}
	return strings.Join(lines, "\n")
}
