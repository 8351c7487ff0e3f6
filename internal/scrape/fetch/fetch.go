// Package fetch issues the single GET requests the scrapers are built on.
package fetch

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"time"

	"jobscrape/internal/scrape/util"
)

const DefaultUserAgent = "jobscrape/1.0 (+local)"

// Getter returns the body of rawURL. Any error means the page is unusable.
type Getter interface {
	Get(ctx context.Context, rawURL string) ([]byte, error)
}

// StatusError is returned for any non-2xx response.
type StatusError struct {
	URL    string
	Status int
}

func (e *StatusError) Error() string {
	return fmt.Sprintf("GET %s: status %d", e.URL, e.Status)
}

type Config struct {
	Timeout   time.Duration
	UserAgent string
}

type Client struct {
	hc      *http.Client
	ua      string
	limiter *util.HostLimiter
}

var _ Getter = (*Client)(nil)

// New builds a Client. limiter may be nil.
func New(cfg Config, limiter *util.HostLimiter) *Client {
	if cfg.Timeout <= 0 {
		cfg.Timeout = 20 * time.Second
	}
	if cfg.UserAgent == "" {
		cfg.UserAgent = DefaultUserAgent
	}
	return &Client{
		hc:      &http.Client{Timeout: cfg.Timeout},
		ua:      cfg.UserAgent,
		limiter: limiter,
	}
}

func (c *Client) Get(ctx context.Context, rawURL string) ([]byte, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, rawURL, nil)
	if err != nil {
		return nil, fmt.Errorf("build request %s: %w", rawURL, err)
	}
	req.Header.Set("User-Agent", c.ua)
	req.Header.Set("Accept", "text/html,application/xhtml+xml")

	if c.limiter != nil {
		if err := c.limiter.WaitURL(ctx, rawURL); err != nil {
			return nil, err
		}
	}

	res, err := c.hc.Do(req)
	if err != nil {
		return nil, fmt.Errorf("GET %s: %w", rawURL, err)
	}
	defer res.Body.Close()

	if res.StatusCode < 200 || res.StatusCode > 299 {
		_, _ = io.Copy(io.Discard, io.LimitReader(res.Body, 4096))
		return nil, &StatusError{URL: rawURL, Status: res.StatusCode}
	}

	b, err := io.ReadAll(res.Body)
	if err != nil {
		return nil, fmt.Errorf("read %s: %w", rawURL, err)
	}
	return b, nil
}
