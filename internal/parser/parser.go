package parser

import (
	"fmt"
	"log/slog"

	"github.com/IshaanNene/sitebrief/internal/types"
)

// ContentTags are the elements whose text is treated as page content.
var ContentTags = []string{"h1", "h2", "h3", "h4", "h5", "h6", "p", "li"}

// Extractor turns a fetched page into a single cleaned text blob.
type Extractor interface {
	// Extract returns the cleaned text of resp, or "" when nothing survives.
	Extract(resp *types.Response) (string, error)

	// Name returns the extractor identifier.
	Name() string
}

// New creates the extractor for mode ("css" or "xpath").
func New(mode string, logger *slog.Logger) (Extractor, error) {
	switch mode {
	case "", "css":
		return NewCSSExtractor(logger), nil
	case "xpath":
		return NewXPathExtractor(logger), nil
	default:
		return nil, fmt.Errorf("unsupported parser mode: %s", mode)
	}
}
