// Package notifier delivers fleet messages to the team chat webhook.
package notifier

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"time"
)

// Notifier sends one text message. Delivery is best-effort: callers log and
// swallow errors, a failed alert must never fail the request that raised it.
type Notifier interface {
	Send(ctx context.Context, text string) error
}

// Discord posts messages to a Discord-compatible webhook. The response body
// is never consumed; fire and forget.
type Discord struct {
	webhookURL string
	botName    string
	avatarURL  string
	client     *http.Client
}

// NewDiscord creates a webhook notifier.
func NewDiscord(webhookURL, botName, avatarURL string) *Discord {
	return &Discord{
		webhookURL: webhookURL,
		botName:    botName,
		avatarURL:  avatarURL,
		client:     &http.Client{Timeout: 10 * time.Second},
	}
}

type webhookPayload struct {
	Content   string `json:"content"`
	Username  string `json:"username,omitempty"`
	AvatarURL string `json:"avatar_url,omitempty"`
}

// Send posts the message to the webhook.
func (d *Discord) Send(ctx context.Context, text string) error {
	body, err := json.Marshal(webhookPayload{
		Content:   text,
		Username:  d.botName,
		AvatarURL: d.avatarURL,
	})
	if err != nil {
		return fmt.Errorf("marshal webhook payload: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, d.webhookURL, bytes.NewReader(body))
	if err != nil {
		return fmt.Errorf("build webhook request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := d.client.Do(req)
	if err != nil {
		return fmt.Errorf("post webhook: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode >= 300 {
		return fmt.Errorf("webhook returned status %d", resp.StatusCode)
	}
	return nil
}

// Noop discards every message. Used when no webhook URL is configured.
type Noop struct{}

// Send does nothing.
func (Noop) Send(context.Context, string) error { return nil }
