package telegram

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
)

func TestClient_SendMessage(t *testing.T) {
	var gotPath string
	var gotPayload sendMessageRequest

	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotPath = r.URL.Path
		if err := json.NewDecoder(r.Body).Decode(&gotPayload); err != nil {
			t.Errorf("failed to decode request body: %v", err)
		}
		w.Write([]byte(`{"ok":true}`))
	}))
	defer server.Close()

	client, err := NewClient("test-token", server.URL)
	if err != nil {
		t.Fatalf("NewClient() error = %v", err)
	}

	err = client.SendMessage(context.Background(), "@courier_jobs_msk", "<b>Привет</b>", "Открыть", "https://example.org/ref")
	if err != nil {
		t.Fatalf("SendMessage() error = %v, want nil", err)
	}

	if gotPath != "/bottest-token/sendMessage" {
		t.Errorf("request path = %q, want /bottest-token/sendMessage", gotPath)
	}
	if gotPayload.ChatID != "@courier_jobs_msk" {
		t.Errorf("chat_id = %q, want @courier_jobs_msk", gotPayload.ChatID)
	}
	if gotPayload.ParseMode != "HTML" {
		t.Errorf("parse_mode = %q, want HTML", gotPayload.ParseMode)
	}
	if !gotPayload.DisableWebPagePreview {
		t.Error("disable_web_page_preview = false, want true")
	}
	if gotPayload.ReplyMarkup == nil || len(gotPayload.ReplyMarkup.InlineKeyboard) != 1 {
		t.Fatal("inline keyboard missing")
	}
	if btn := gotPayload.ReplyMarkup.InlineKeyboard[0][0]; btn.URL != "https://example.org/ref" {
		t.Errorf("button url = %q, want referral link", btn.URL)
	}
}

func TestClient_SendMessage_NoButton(t *testing.T) {
	var gotPayload sendMessageRequest

	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		json.NewDecoder(r.Body).Decode(&gotPayload)
		w.Write([]byte(`{"ok":true}`))
	}))
	defer server.Close()

	client, _ := NewClient("test-token", server.URL)
	if err := client.SendMessage(context.Background(), "@ch", "текст", "", ""); err != nil {
		t.Fatalf("SendMessage() error = %v", err)
	}
	if gotPayload.ReplyMarkup != nil {
		t.Error("reply_markup present without a button url")
	}
}

func TestClient_SendMessage_APIError(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusBadRequest)
		w.Write([]byte(`{"ok":false,"error_code":400,"description":"Bad Request: chat not found"}`))
	}))
	defer server.Close()

	client, _ := NewClient("test-token", server.URL)
	err := client.SendMessage(context.Background(), "@missing", "текст", "", "")
	if err == nil {
		t.Fatal("SendMessage() error = nil, want API error")
	}
	if !strings.Contains(err.Error(), "chat not found") {
		t.Errorf("error = %v, want Bot API description included", err)
	}
}

func TestNewClient_RequiresToken(t *testing.T) {
	if _, err := NewClient("", ""); err == nil {
		t.Error("NewClient() error = nil for empty token, want error")
	}
}
