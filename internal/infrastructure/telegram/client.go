// Package telegram is a minimal Telegram Bot API client covering the three
// operations the bot performs: sending, forwarding and deleting messages.
package telegram

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"time"

	"github.com/hashicorp/go-retryablehttp"
)

// Messenger is the outbound messaging capability consumed by the intake
// pipeline and the scheduled jobs.
type Messenger interface {
	// SendText sends a text message and returns the sent message ID.
	// threadID 0 targets the chat's main timeline.
	SendText(ctx context.Context, chatID string, threadID int, text string) (int, error)

	// ForwardMessage forwards messageID from one chat to another.
	ForwardMessage(ctx context.Context, toChatID, fromChatID string, messageID int) error

	// DeleteMessage removes a previously sent message.
	DeleteMessage(ctx context.Context, chatID string, messageID int) error
}

const defaultBaseURL = "https://api.telegram.org"

// Client calls the Telegram Bot API over HTTP with retries on transient
// failures.
type Client struct {
	http    *retryablehttp.Client
	baseURL string
	token   string
}

var _ Messenger = (*Client)(nil)

// NewClient creates a Bot API client for the given token.
func NewClient(token string, logger *slog.Logger) *Client {
	rc := retryablehttp.NewClient()
	rc.RetryMax = 3
	rc.RetryWaitMin = 500 * time.Millisecond
	rc.RetryWaitMax = 5 * time.Second
	rc.HTTPClient.Timeout = 30 * time.Second
	rc.Logger = nil
	if logger != nil {
		rc.Logger = slogAdapter{logger}
	}

	return &Client{
		http:    rc,
		baseURL: defaultBaseURL,
		token:   token,
	}
}

// WithBaseURL points the client at a different API host. Used by tests.
func (c *Client) WithBaseURL(baseURL string) *Client {
	c.baseURL = baseURL
	return c
}

// apiResponse is the envelope every Bot API method answers with.
type apiResponse struct {
	OK          bool            `json:"ok"`
	Description string          `json:"description"`
	Result      json.RawMessage `json:"result"`
}

// SendText sends a text message to a chat or forum thread.
func (c *Client) SendText(ctx context.Context, chatID string, threadID int, text string) (int, error) {
	payload := map[string]interface{}{
		"chat_id": chatID,
		"text":    text,
	}
	if threadID != 0 {
		payload["message_thread_id"] = threadID
	}

	result, err := c.call(ctx, "sendMessage", payload)
	if err != nil {
		return 0, err
	}

	var sent struct {
		MessageID int `json:"message_id"`
	}
	if err := json.Unmarshal(result, &sent); err != nil {
		return 0, fmt.Errorf("decoding sendMessage result: %w", err)
	}
	return sent.MessageID, nil
}

// ForwardMessage forwards a message between chats.
func (c *Client) ForwardMessage(ctx context.Context, toChatID, fromChatID string, messageID int) error {
	_, err := c.call(ctx, "forwardMessage", map[string]interface{}{
		"chat_id":      toChatID,
		"from_chat_id": fromChatID,
		"message_id":   messageID,
	})
	return err
}

// DeleteMessage removes a message the bot sent earlier.
func (c *Client) DeleteMessage(ctx context.Context, chatID string, messageID int) error {
	_, err := c.call(ctx, "deleteMessage", map[string]interface{}{
		"chat_id":    chatID,
		"message_id": messageID,
	})
	return err
}

// call posts one Bot API method and unwraps the response envelope.
func (c *Client) call(ctx context.Context, method string, payload interface{}) (json.RawMessage, error) {
	body, err := json.Marshal(payload)
	if err != nil {
		return nil, fmt.Errorf("encoding %s payload: %w", method, err)
	}

	url := fmt.Sprintf("%s/bot%s/%s", c.baseURL, c.token, method)
	req, err := retryablehttp.NewRequestWithContext(ctx, http.MethodPost, url, bytes.NewReader(body))
	if err != nil {
		return nil, fmt.Errorf("building %s request: %w", method, err)
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := c.http.Do(req)
	if err != nil {
		return nil, fmt.Errorf("calling %s: %w", method, err)
	}
	defer resp.Body.Close()

	data, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("reading %s response: %w", method, err)
	}

	var envelope apiResponse
	if err := json.Unmarshal(data, &envelope); err != nil {
		return nil, fmt.Errorf("decoding %s response: %w", method, err)
	}
	if !envelope.OK {
		return nil, fmt.Errorf("%s failed: %s", method, envelope.Description)
	}
	return envelope.Result, nil
}

// slogAdapter bridges retryablehttp's leveled logger onto slog.
type slogAdapter struct {
	logger *slog.Logger
}

func (a slogAdapter) Error(msg string, keysAndValues ...interface{}) {
	a.logger.Error(msg, keysAndValues...)
}

func (a slogAdapter) Info(msg string, keysAndValues ...interface{}) {
	a.logger.Info(msg, keysAndValues...)
}

func (a slogAdapter) Debug(msg string, keysAndValues ...interface{}) {
	a.logger.Debug(msg, keysAndValues...)
}

func (a slogAdapter) Warn(msg string, keysAndValues ...interface{}) {
	a.logger.Warn(msg, keysAndValues...)
}
