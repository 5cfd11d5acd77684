package web

import (
	"context"
	"fmt"
	"time"

	"github.com/chromedp/chromedp"

	"github.com/flywheel-labs/paperscout/internal/core/ports/driven"
)

// Ensure Browser implements the interface.
var _ driven.PageFetcher = (*Browser)(nil)

// settleDelay gives scripts time to populate the page after the article
// elements first appear.
const settleDelay = 2 * time.Second

// Browser fetches pages through headless Chrome, for listings that render
// their content with scripts.
type Browser struct {
	userAgent string
	timeout   time.Duration
}

// NewBrowser creates a headless-browser page fetcher.
func NewBrowser(userAgent string, timeout time.Duration) *Browser {
	return &Browser{userAgent: userAgent, timeout: timeout}
}

// FetchPage navigates to url, waits for an article element to appear and
// returns the rendered document.
func (b *Browser) FetchPage(ctx context.Context, url string) ([]byte, error) {
	opts := append(chromedp.DefaultExecAllocatorOptions[:],
		chromedp.UserAgent(b.userAgent),
		chromedp.NoSandbox,
		chromedp.DisableGPU,
	)

	allocCtx, cancelAlloc := chromedp.NewExecAllocator(ctx, opts...)
	defer cancelAlloc()

	browserCtx, cancelBrowser := chromedp.NewContext(allocCtx)
	defer cancelBrowser()

	if b.timeout > 0 {
		var cancel context.CancelFunc
		browserCtx, cancel = context.WithTimeout(browserCtx, b.timeout)
		defer cancel()
	}

	var html string
	err := chromedp.Run(browserCtx,
		chromedp.Navigate(url),
		chromedp.WaitVisible("article", chromedp.ByQuery),
		chromedp.Sleep(settleDelay),
		chromedp.OuterHTML("html", &html, chromedp.ByQuery),
	)
	if err != nil {
		return nil, fmt.Errorf("render %s: %w", url, err)
	}
	return []byte(html), nil
}
