package telegram

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"time"
)

const defaultBaseURL = "https://api.telegram.org"
const requestTimeout = 30 * time.Second

// Client - минимальный клиент Bot API: только sendMessage,
// больше этому проекту от Telegram ничего не нужно
type Client struct {
	httpClient *http.Client
	baseURL    string
	token      string
}

func NewClient(token string, baseURL string) (*Client, error) {
	if token == "" {
		return nil, fmt.Errorf("telegram bot token is required")
	}
	if baseURL == "" {
		baseURL = defaultBaseURL
	}
	return &Client{
		httpClient: &http.Client{Timeout: requestTimeout},
		baseURL:    baseURL,
		token:      token,
	}, nil
}

type inlineKeyboardButton struct {
	Text string `json:"text"`
	URL  string `json:"url"`
}

type replyMarkup struct {
	InlineKeyboard [][]inlineKeyboardButton `json:"inline_keyboard"`
}

type sendMessageRequest struct {
	ChatID                string       `json:"chat_id"`
	Text                  string       `json:"text"`
	ParseMode             string       `json:"parse_mode"`
	DisableWebPagePreview bool         `json:"disable_web_page_preview"`
	ReplyMarkup           *replyMarkup `json:"reply_markup,omitempty"`
}

type apiResponse struct {
	OK          bool   `json:"ok"`
	ErrorCode   int    `json:"error_code"`
	Description string `json:"description"`
}

// SendMessage отправляет HTML-сообщение, опционально с одной inline-кнопкой
func (c *Client) SendMessage(ctx context.Context, chatID, text, buttonText, buttonURL string) error {
	payload := sendMessageRequest{
		ChatID:                chatID,
		Text:                  text,
		ParseMode:             "HTML",
		DisableWebPagePreview: true,
	}
	if buttonURL != "" {
		payload.ReplyMarkup = &replyMarkup{
			InlineKeyboard: [][]inlineKeyboardButton{{
				{Text: buttonText, URL: buttonURL},
			}},
		}
	}

	body, err := json.Marshal(payload)
	if err != nil {
		return fmt.Errorf("telegram client: failed to marshal sendMessage payload: %w", err)
	}

	url := fmt.Sprintf("%s/bot%s/sendMessage", c.baseURL, c.token)
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, url, bytes.NewReader(body))
	if err != nil {
		return fmt.Errorf("telegram client: failed to create request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return fmt.Errorf("telegram client: request failed: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		var apiResp apiResponse
		respBody, _ := io.ReadAll(io.LimitReader(resp.Body, 4096))
		if err := json.Unmarshal(respBody, &apiResp); err == nil && apiResp.Description != "" {
			return fmt.Errorf("telegram client: sendMessage to %s failed with status %d: %s", chatID, resp.StatusCode, apiResp.Description)
		}
		return fmt.Errorf("telegram client: sendMessage to %s failed with status %d", chatID, resp.StatusCode)
	}

	return nil
}
