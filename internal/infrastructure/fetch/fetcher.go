// Package fetch retrieves restaurant pages over HTTP with a browser-like
// request identity; many restaurant sites refuse obvious bots.
package fetch

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"time"

	"github.com/hashicorp/go-retryablehttp"

	"github.com/lunchradar/backend/internal/domain"
)

const defaultTimeout = 30 * time.Second

// Client fetches web pages via HTTP with transport-level retries for
// transient failures. Redirects follow net/http defaults.
type Client struct {
	http      *retryablehttp.Client
	userAgent string
}

// Config holds fetcher configuration
type Config struct {
	Timeout   time.Duration
	UserAgent string
	Retries   int
}

// NewClient creates a page fetcher
func NewClient(cfg Config) *Client {
	timeout := cfg.Timeout
	if timeout <= 0 {
		timeout = defaultTimeout
	}

	rc := retryablehttp.NewClient()
	rc.RetryMax = cfg.Retries
	rc.HTTPClient.Timeout = timeout
	rc.Logger = nil

	return &Client{http: rc, userAgent: cfg.UserAgent}
}

// Fetch retrieves the raw body of the given URL. Non-success statuses and
// transport failures surface as domain.ErrFetchFailed.
func (c *Client) Fetch(ctx context.Context, url string) (string, error) {
	req, err := retryablehttp.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return "", fmt.Errorf("%w: creating request for %s: %v", domain.ErrFetchFailed, url, err)
	}
	if c.userAgent != "" {
		req.Header.Set("User-Agent", c.userAgent)
	}
	req.Header.Set("Accept", "text/html,application/xhtml+xml")

	resp, err := c.http.Do(req)
	if err != nil {
		return "", fmt.Errorf("%w: fetching %s: %v", domain.ErrFetchFailed, url, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return "", fmt.Errorf("%w: unexpected status %d for %s", domain.ErrFetchFailed, resp.StatusCode, url)
	}

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return "", fmt.Errorf("%w: reading body of %s: %v", domain.ErrFetchFailed, url, err)
	}

	return string(body), nil
}
