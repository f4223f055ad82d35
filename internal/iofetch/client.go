// Package iofetch implements the checkpointed API scrapers that build
// the seed input files: WoRMS for the family taxonomy and iNaturalist
// for licensed species photos. Both APIs ask for about one request per
// second; a shared rate-limited client enforces that.
package iofetch

import (
	"context"
	"encoding/json"
	"io"
	"log/slog"
	"net/http"
	"time"
)

const userAgent = "UmiLogBot/1.0 (dive logging app; seed data fetcher)"

// Client is a rate-limited HTTP JSON client. Request failures are
// tolerated by design: a fetch loop runs for hours, and one bad record
// must not abort the whole run.
type Client struct {
	http  *http.Client
	delay time.Duration
	last  time.Time
}

// NewClient creates a client with a fixed delay between requests.
func NewClient(delayMs int) *Client {
	if delayMs < 0 {
		delayMs = 0
	}
	return &Client{
		http:  &http.Client{Timeout: 30 * time.Second},
		delay: time.Duration(delayMs) * time.Millisecond,
	}
}

// GetJSON fetches url after the rate-limit delay and decodes the JSON
// body into out. A failed request, a non-2xx status or a 204 empty
// response is logged and reported as ok=false; the returned error is
// non-nil only on context cancellation.
func (c *Client) GetJSON(
	ctx context.Context,
	url string,
	out any,
) (bool, error) {
	if err := c.wait(ctx); err != nil {
		return false, err
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		slog.Warn("cannot build request", "url", url, "error", err)
		return false, nil
	}
	req.Header.Set("User-Agent", userAgent)

	resp, err := c.http.Do(req)
	if err != nil {
		if ctx.Err() != nil {
			return false, ctx.Err()
		}
		slog.Warn("request failed", "url", url, "error", err)
		return false, nil
	}
	defer resp.Body.Close()

	if resp.StatusCode == http.StatusNoContent {
		return false, nil
	}
	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		slog.Warn("unexpected status",
			"url", url, "status", resp.StatusCode)
		return false, nil
	}

	bs, err := io.ReadAll(resp.Body)
	if err != nil {
		slog.Warn("cannot read response", "url", url, "error", err)
		return false, nil
	}
	if err := json.Unmarshal(bs, out); err != nil {
		slog.Warn("cannot decode response", "url", url, "error", err)
		return false, nil
	}
	return true, nil
}

// wait blocks until the rate-limit interval since the previous request
// has passed, or the context is canceled.
func (c *Client) wait(ctx context.Context) error {
	if c.delay == 0 {
		return ctx.Err()
	}

	elapsed := time.Since(c.last)
	if elapsed < c.delay {
		select {
		case <-ctx.Done():
			return ctx.Err()
		case <-time.After(c.delay - elapsed):
		}
	}
	c.last = time.Now()
	return nil
}
