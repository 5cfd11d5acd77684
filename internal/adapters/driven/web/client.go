// Package web provides PageFetcher adapters: a plain HTTP client and a
// headless-browser client for pages that render their content with
// scripts.
package web

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"time"

	"github.com/flywheel-labs/paperscout/internal/core/ports/driven"
)

// Ensure Client implements the interface.
var _ driven.PageFetcher = (*Client)(nil)

// maxPageBytes caps how much of a page body is read. Listing and detail
// pages are far smaller; the cap guards against misbehaving servers.
const maxPageBytes = 10 << 20

// Client fetches pages over plain HTTP.
type Client struct {
	client    *http.Client
	userAgent string
}

// NewClient creates an HTTP page fetcher.
func NewClient(userAgent string, timeout time.Duration) *Client {
	return &Client{
		client: &http.Client{
			Timeout: timeout,
		},
		userAgent: userAgent,
	}
}

// FetchPage retrieves the page body at url.
func (c *Client) FetchPage(ctx context.Context, url string) ([]byte, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, http.NoBody)
	if err != nil {
		return nil, fmt.Errorf("create request: %w", err)
	}
	req.Header.Set("User-Agent", c.userAgent)

	resp, err := c.client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("fetch %s: %w", url, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("fetch %s: status %d", url, resp.StatusCode)
	}

	body, err := io.ReadAll(io.LimitReader(resp.Body, maxPageBytes))
	if err != nil {
		return nil, fmt.Errorf("read %s: %w", url, err)
	}
	return body, nil
}
