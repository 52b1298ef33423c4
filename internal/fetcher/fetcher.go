package fetcher

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/IshaanNene/sitebrief/internal/config"
	"github.com/IshaanNene/sitebrief/internal/types"
)

// Fetcher is the interface for all page fetcher implementations.
type Fetcher interface {
	// Fetch retrieves the rendered HTML at the given request's URL.
	Fetch(ctx context.Context, req *types.Request) (*types.Response, error)

	// Close releases any resources held by the fetcher.
	Close() error

	// Type returns the fetcher type identifier.
	Type() string
}

// New creates the fetcher selected by cfg.Fetcher.Type.
func New(cfg *config.Config, logger *slog.Logger) (Fetcher, error) {
	switch cfg.Fetcher.Type {
	case "browser":
		return NewBrowserFetcher(&cfg.Fetcher, logger), nil
	case "chromedp":
		return NewChromedpFetcher(&cfg.Fetcher, logger), nil
	case "http":
		return NewHTTPFetcher(&cfg.Fetcher, logger), nil
	default:
		return nil, fmt.Errorf("%w: %s", types.ErrUnsupportedFetcher, cfg.Fetcher.Type)
	}
}
