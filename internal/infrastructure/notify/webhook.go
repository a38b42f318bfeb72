// Package notify delivers change notifications to subscriber webhooks.
package notify

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"time"

	"github.com/lunchradar/backend/internal/domain"
)

const defaultTimeout = 10 * time.Second

// Webhook POSTs change notifications as JSON to a target URL.
type Webhook struct {
	httpClient *http.Client
}

// NewWebhook creates a webhook sink; timeout <= 0 uses the default.
func NewWebhook(timeout time.Duration) *Webhook {
	if timeout <= 0 {
		timeout = defaultTimeout
	}
	return &Webhook{httpClient: &http.Client{Timeout: timeout}}
}

// Notify delivers the payload to a single target. Any failure surfaces as
// domain.ErrNotificationFailed; the sweep logs it without propagating.
func (w *Webhook) Notify(ctx context.Context, target string, payload domain.ChangeNotification) error {
	body, err := json.Marshal(payload)
	if err != nil {
		return fmt.Errorf("%w: encoding payload: %v", domain.ErrNotificationFailed, err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, target, bytes.NewReader(body))
	if err != nil {
		return fmt.Errorf("%w: creating request for %s: %v", domain.ErrNotificationFailed, target, err)
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := w.httpClient.Do(req)
	if err != nil {
		return fmt.Errorf("%w: posting to %s: %v", domain.ErrNotificationFailed, target, err)
	}
	defer resp.Body.Close()
	io.Copy(io.Discard, io.LimitReader(resp.Body, 1024))

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return fmt.Errorf("%w: %s returned status %d", domain.ErrNotificationFailed, target, resp.StatusCode)
	}
	return nil
}
