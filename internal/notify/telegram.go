// Package notify delivers run results to a Telegram chat.
package notify

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"

	jsoniter "github.com/json-iterator/go"
	"github.com/rs/zerolog"
)

var json = jsoniter.ConfigCompatibleWithStandardLibrary

// DefaultBaseURL is the Telegram Bot API endpoint.
const DefaultBaseURL = "https://api.telegram.org"

// Telegram sends messages through a Telegram bot.
type Telegram struct {
	BotToken   string
	ChatID     int64
	TopicID    int64  // Message thread to post in, 0 for none
	BaseURL    string // Defaults to DefaultBaseURL
	HTTPClient *http.Client
	Logger     zerolog.Logger
}

type sendMessageParams struct {
	ChatID          int64  `json:"chat_id"`
	Text            string `json:"text"`
	ParseMode       string `json:"parse_mode"`
	MessageThreadID int64  `json:"message_thread_id"`
}

type sendMessageResponse struct {
	OK          bool   `json:"ok"`
	Description string `json:"description"`
}

// Enabled reports whether the bot token and chat id are configured.
func (t *Telegram) Enabled() bool {
	return t.BotToken != "" && t.ChatID != 0
}

// Send posts text, formatted as Markdown, to the chat.
//
// If the notifier is not enabled it logs that and returns nil.
func (t *Telegram) Send(ctx context.Context, text string) error {
	if !t.Enabled() {
		t.Logger.Info().Msg("telegram bot token or chat id not configured, skipping notification")
		return nil
	}

	body, err := json.Marshal(&sendMessageParams{
		ChatID:          t.ChatID,
		Text:            text,
		ParseMode:       "Markdown",
		MessageThreadID: t.TopicID,
	})
	if err != nil {
		return fmt.Errorf("failed to marshal message: %w", err)
	}

	baseURL := t.BaseURL
	if baseURL == "" {
		baseURL = DefaultBaseURL
	}
	req, err := http.NewRequestWithContext(
		ctx, http.MethodPost, fmt.Sprintf("%s/bot%s/sendMessage", strings.TrimSuffix(baseURL, "/"), t.BotToken), bytes.NewReader(body),
	)
	if err != nil {
		return fmt.Errorf("failed to create request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("User-Agent", "tc-eo-ssl")

	httpClient := t.HTTPClient
	if httpClient == nil {
		httpClient = &http.Client{Timeout: 30 * time.Second}
	}
	resp, err := httpClient.Do(req)
	if err != nil {
		// The URL holds the bot token, so only report the underlying cause.
		return fmt.Errorf("failed to send message: %w", unwrapURLError(err))
	}
	defer func() { _ = resp.Body.Close() }()

	respBody, _ := io.ReadAll(io.LimitReader(resp.Body, 4096))
	var result sendMessageResponse
	if err := json.Unmarshal(respBody, &result); err != nil {
		return fmt.Errorf("unexpected response status %s", resp.Status)
	}
	if !result.OK {
		return fmt.Errorf("telegram rejected message (%s): %s", resp.Status, result.Description)
	}

	t.Logger.Info().Int64("chat_id", t.ChatID).Msg("telegram notification sent")
	return nil
}

func unwrapURLError(err error) error {
	var urlErr *url.Error
	if errors.As(err, &urlErr) {
		return urlErr.Err
	}
	return err
}
