package notify

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"time"
)

// Notifier delivers out-of-band alerts about deployment outcomes. Delivery
// is best effort; callers must not let a notification failure mask the
// error being reported.
type Notifier interface {
	Notify(ctx context.Context, title, message, trace string) error
}

// Nop discards all notifications. Used when no webhook is configured.
type Nop struct{}

var _ Notifier = Nop{}

func (Nop) Notify(context.Context, string, string, string) error {
	return nil
}

// WebhookNotifier POSTs a JSON payload to a configured endpoint.
type WebhookNotifier struct {
	url    string
	client *http.Client
}

var _ Notifier = (*WebhookNotifier)(nil)

// NewWebhookNotifier builds a notifier for url with a short request timeout.
func NewWebhookNotifier(url string) *WebhookNotifier {
	return &WebhookNotifier{
		url:    url,
		client: &http.Client{Timeout: 10 * time.Second},
	}
}

type payload struct {
	Title   string `json:"title"`
	Message string `json:"message"`
	Trace   string `json:"trace,omitempty"`
	SentAt  string `json:"sent_at"`
}

func (n *WebhookNotifier) Notify(ctx context.Context, title, message, trace string) error {
	body, err := json.Marshal(payload{
		Title:   title,
		Message: message,
		Trace:   trace,
		SentAt:  time.Now().UTC().Format(time.RFC3339),
	})
	if err != nil {
		return fmt.Errorf("encoding notification: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, n.url, bytes.NewReader(body))
	if err != nil {
		return fmt.Errorf("building notification request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := n.client.Do(req)
	if err != nil {
		return fmt.Errorf("delivering notification: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return fmt.Errorf("notification endpoint returned %s", resp.Status)
	}
	return nil
}
