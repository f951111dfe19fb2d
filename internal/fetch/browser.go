// Package fetch - browser.go renders response sheets that are assembled client-side.
package fetch

import (
	"context"
	"fmt"
	"time"

	"github.com/chromedp/chromedp"
	"go.uber.org/zap"
)

// BrowserFetcher renders pages in a headless browser and returns the final HTML.
// Requires Chrome/Chromium to be installed on the system.
type BrowserFetcher struct {
	Timeout     time.Duration
	WaitVisible string // Selector that must be present before the HTML is captured
	Logger      *zap.Logger
}

// NewBrowserFetcher creates a BrowserFetcher that waits for selector before capturing.
func NewBrowserFetcher(timeout time.Duration, selector string, logger *zap.Logger) *BrowserFetcher {
	if timeout <= 0 {
		timeout = DefaultTimeout
	}
	if selector == "" {
		selector = "body"
	}
	if logger == nil {
		logger = zap.NewNop()
	}
	return &BrowserFetcher{Timeout: timeout, WaitVisible: selector, Logger: logger}
}

// Fetch navigates to urlStr and returns the rendered document.
func (b *BrowserFetcher) Fetch(ctx context.Context, urlStr string) ([]byte, error) {
	if err := ValidateURL(urlStr); err != nil {
		return nil, err
	}

	b.Logger.Debug("starting headless browser", zap.String("url", urlStr))

	allocCtx, cancel := chromedp.NewExecAllocator(ctx,
		append(chromedp.DefaultExecAllocatorOptions[:],
			chromedp.Flag("headless", true),
			chromedp.Flag("disable-gpu", true),
			chromedp.Flag("no-sandbox", true),
			chromedp.Flag("disable-dev-shm-usage", true),
		)...,
	)
	defer cancel()

	browserCtx, cancel := chromedp.NewContext(allocCtx)
	defer cancel()

	browserCtx, cancel = context.WithTimeout(browserCtx, b.Timeout)
	defer cancel()

	var html string
	err := chromedp.Run(browserCtx,
		chromedp.Navigate(urlStr),
		chromedp.WaitReady(b.WaitVisible),
		chromedp.OuterHTML("html", &html),
	)
	if err != nil {
		return nil, &Error{
			URL:     urlStr,
			Message: "browser rendering failed",
			Cause:   fmt.Errorf("chromedp: %w", err),
		}
	}

	b.Logger.Debug("rendered page", zap.String("url", urlStr), zap.Int("bytes", len(html)))
	return []byte(html), nil
}
