// Package fetch implements the Fetcher interfaces.
// It performs HTTP GET requests against wiki pages and the MediaWiki API
// with sensible defaults for scraping.
package fetch

import (
	"context"
	"errors"
	"fmt"
	"io"
	"net/http"
	"time"

	"github.com/gaurav-prasanna/wikiplain/core"
)

const (
	DefaultTimeout   = 30 * time.Second
	DefaultUserAgent = "wikiplain/1.0 (https://github.com/gaurav-prasanna/wikiplain)"
)

// ErrArticleNotFound is returned when the API reports a missing page.
var ErrArticleNotFound = errors.New("article not found")

// HTTPFetcher fetches wiki pages and API responses via HTTP.
type HTTPFetcher struct {
	client    *http.Client
	userAgent string
}

// Options configures an HTTPFetcher. Zero values fall back to defaults.
type Options struct {
	Timeout   time.Duration
	UserAgent string
}

// New creates an HTTPFetcher.
func New(opts Options) *HTTPFetcher {
	if opts.Timeout <= 0 {
		opts.Timeout = DefaultTimeout
	}
	if opts.UserAgent == "" {
		opts.UserAgent = DefaultUserAgent
	}
	return &HTTPFetcher{
		client:    &http.Client{Timeout: opts.Timeout},
		userAgent: opts.UserAgent,
	}
}

// Fetch retrieves the HTML content of the given URL.
func (f *HTTPFetcher) Fetch(ctx context.Context, url string) (*core.FetchResult, error) {
	body, status, err := f.get(ctx, url, "text/html,application/xhtml+xml")
	if err != nil {
		return nil, err
	}
	return &core.FetchResult{
		URL:        url,
		StatusCode: status,
		HTML:       string(body),
	}, nil
}

// get performs a GET and returns the body of a 2xx response.
func (f *HTTPFetcher) get(ctx context.Context, url, accept string) ([]byte, int, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return nil, 0, fmt.Errorf("creating request: %w", err)
	}
	req.Header.Set("User-Agent", f.userAgent)
	req.Header.Set("Accept", accept)

	resp, err := f.client.Do(req)
	if err != nil {
		return nil, 0, fmt.Errorf("fetching %s: %w", url, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return nil, resp.StatusCode, fmt.Errorf("unexpected status %d for %s", resp.StatusCode, url)
	}

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, resp.StatusCode, fmt.Errorf("reading response body: %w", err)
	}
	return body, resp.StatusCode, nil
}
