package fetcher

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/go-rod/rod"
	"github.com/go-rod/rod/lib/launcher"
	"github.com/go-rod/rod/lib/proto"
	"github.com/go-rod/stealth"

	"github.com/IshaanNene/sitebrief/internal/config"
	"github.com/IshaanNene/sitebrief/internal/types"
)

// BrowserFetcher implements Fetcher using a headless Chromium driven by Rod.
// Every Fetch launches its own browser and tears it down before returning;
// no session is shared between URLs.
type BrowserFetcher struct {
	cfg    *config.FetcherConfig
	logger *slog.Logger
}

// NewBrowserFetcher creates a new headless browser fetcher.
func NewBrowserFetcher(cfg *config.FetcherConfig, logger *slog.Logger) *BrowserFetcher {
	return &BrowserFetcher{
		cfg:    cfg,
		logger: logger.With("component", "browser_fetcher"),
	}
}

// newLauncher builds a Chromium launcher with the usual container-safe flags.
func (bf *BrowserFetcher) newLauncher(ctx context.Context) *launcher.Launcher {
	l := launcher.New().
		Context(ctx).
		Headless(bf.cfg.Headless).
		Set("disable-gpu").
		Set("disable-dev-shm-usage").
		Set("no-sandbox").
		Set("disable-setuid-sandbox").
		Set("disable-blink-features", "AutomationControlled")

	if bf.cfg.BrowserBin != "" {
		l = l.Bin(bf.cfg.BrowserBin)
	}
	return l
}

// Fetch launches a browser, navigates to the URL, waits for the document
// body and returns the rendered HTML. The page, the browser connection and
// the browser process are released on every return path.
func (bf *BrowserFetcher) Fetch(ctx context.Context, req *types.Request) (*types.Response, error) {
	start := time.Now()
	url := req.URLString()

	l := bf.newLauncher(ctx)
	defer l.Cleanup()
	defer l.Kill()

	controlURL, err := l.Launch()
	if err != nil {
		return nil, &types.FetchError{URL: url, Err: fmt.Errorf("launch browser: %w", err)}
	}

	browser := rod.New().Context(ctx).ControlURL(controlURL)
	if err := browser.Connect(); err != nil {
		return nil, &types.FetchError{URL: url, Err: fmt.Errorf("connect browser: %w", err)}
	}
	defer func() {
		if err := browser.Close(); err != nil {
			bf.logger.Debug("browser close failed", "url", url, "error", err)
		}
	}()

	page, err := bf.openPage(browser)
	if err != nil {
		return nil, &types.FetchError{URL: url, Err: err}
	}
	defer func() { _ = page.Close() }()

	timeout := bf.cfg.ReadyTimeout
	if req.Timeout > 0 {
		timeout = req.Timeout
	}

	if err := page.Timeout(timeout).Navigate(url); err != nil {
		return nil, &types.FetchError{URL: url, Err: fmt.Errorf("navigate: %w", err)}
	}

	// The body element is the readiness signal.
	if _, err := page.Timeout(timeout).Element("body"); err != nil {
		return nil, &types.FetchError{URL: url, Err: fmt.Errorf("wait for body: %w", err)}
	}

	html, err := page.HTML()
	if err != nil {
		return nil, &types.FetchError{URL: url, Err: fmt.Errorf("read html: %w", err)}
	}

	finalURL := url
	if info, err := page.Info(); err == nil && info != nil {
		finalURL = info.URL
	}

	duration := time.Since(start)
	bf.logger.Debug("browser fetch complete",
		"url", url,
		"final_url", finalURL,
		"size", len(html),
		"duration", duration,
	)

	return types.NewBrowserResponse(req, []byte(html), finalURL, duration), nil
}

// openPage creates a blank page, optionally with stealth patches and a
// custom User-Agent.
func (bf *BrowserFetcher) openPage(browser *rod.Browser) (*rod.Page, error) {
	var (
		page *rod.Page
		err  error
	)
	if bf.cfg.Stealth {
		page, err = stealth.Page(browser)
		if err != nil {
			return nil, fmt.Errorf("stealth page: %w", err)
		}
	} else {
		page, err = browser.Page(proto.TargetCreateTarget{URL: "about:blank"})
		if err != nil {
			return nil, fmt.Errorf("open page: %w", err)
		}
	}

	if bf.cfg.UserAgent != "" {
		err := page.SetUserAgent(&proto.NetworkSetUserAgentOverride{
			UserAgent: bf.cfg.UserAgent,
		})
		if err != nil {
			bf.logger.Warn("failed to set user agent", "error", err)
		}
	}
	return page, nil
}

// Close is a no-op; browsers never outlive a single Fetch.
func (bf *BrowserFetcher) Close() error {
	return nil
}

// Type returns the fetcher type identifier.
func (bf *BrowserFetcher) Type() string {
	return "browser"
}
