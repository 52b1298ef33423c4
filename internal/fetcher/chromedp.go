package fetcher

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/chromedp/chromedp"

	"github.com/IshaanNene/sitebrief/internal/config"
	"github.com/IshaanNene/sitebrief/internal/types"
)

// ChromedpFetcher implements Fetcher on top of chromedp. Like
// BrowserFetcher, each Fetch owns a fresh allocator and tab.
type ChromedpFetcher struct {
	cfg    *config.FetcherConfig
	logger *slog.Logger
}

// NewChromedpFetcher creates a new chromedp-backed fetcher.
func NewChromedpFetcher(cfg *config.FetcherConfig, logger *slog.Logger) *ChromedpFetcher {
	return &ChromedpFetcher{
		cfg:    cfg,
		logger: logger.With("component", "chromedp_fetcher"),
	}
}

func (cf *ChromedpFetcher) allocatorOptions() []chromedp.ExecAllocatorOption {
	opts := append(chromedp.DefaultExecAllocatorOptions[:],
		chromedp.Flag("headless", cf.cfg.Headless),
		chromedp.Flag("disable-gpu", true),
		chromedp.Flag("disable-extensions", true),
		chromedp.Flag("disable-dev-shm-usage", true),
		chromedp.Flag("no-sandbox", true),
		chromedp.WindowSize(1920, 1080),
	)
	if cf.cfg.UserAgent != "" {
		opts = append(opts, chromedp.UserAgent(cf.cfg.UserAgent))
	}
	if cf.cfg.BrowserBin != "" {
		opts = append(opts, chromedp.ExecPath(cf.cfg.BrowserBin))
	}
	return opts
}

// Fetch navigates to the URL, waits for the body to be ready and returns
// the outer HTML of the document.
func (cf *ChromedpFetcher) Fetch(ctx context.Context, req *types.Request) (*types.Response, error) {
	start := time.Now()
	url := req.URLString()

	allocCtx, cancelAlloc := chromedp.NewExecAllocator(ctx, cf.allocatorOptions()...)
	defer cancelAlloc()

	tabCtx, cancelTab := chromedp.NewContext(allocCtx)
	defer cancelTab()

	timeout := cf.cfg.ReadyTimeout
	if req.Timeout > 0 {
		timeout = req.Timeout
	}
	runCtx, cancel := context.WithTimeout(tabCtx, timeout)
	defer cancel()

	var html, finalURL string
	err := chromedp.Run(runCtx,
		chromedp.Navigate(url),
		chromedp.WaitReady("body", chromedp.ByQuery),
		chromedp.OuterHTML("html", &html, chromedp.ByQuery),
		chromedp.Location(&finalURL),
	)
	if err != nil {
		return nil, &types.FetchError{URL: url, Err: fmt.Errorf("chromedp: %w", err)}
	}
	if finalURL == "" {
		finalURL = url
	}

	duration := time.Since(start)
	cf.logger.Debug("chromedp fetch complete",
		"url", url,
		"final_url", finalURL,
		"size", len(html),
		"duration", duration,
	)

	return types.NewBrowserResponse(req, []byte(html), finalURL, duration), nil
}

// Close is a no-op; allocators never outlive a single Fetch.
func (cf *ChromedpFetcher) Close() error {
	return nil
}

// Type returns the fetcher type identifier.
func (cf *ChromedpFetcher) Type() string {
	return "chromedp"
}
