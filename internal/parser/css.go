package parser

import (
	"log/slog"
	"strings"

	"github.com/PuerkitoBio/goquery"

	"github.com/IshaanNene/sitebrief/internal/types"
)

// CSSExtractor selects content elements with goquery.
type CSSExtractor struct {
	selector string
	logger   *slog.Logger
}

// NewCSSExtractor creates a new goquery-based extractor.
func NewCSSExtractor(logger *slog.Logger) *CSSExtractor {
	return &CSSExtractor{
		selector: strings.Join(ContentTags, ", "),
		logger:   logger.With("component", "css_extractor"),
	}
}

func (e *CSSExtractor) Name() string { return "css" }

// Extract implements Extractor.
func (e *CSSExtractor) Extract(resp *types.Response) (string, error) {
	doc, err := resp.Document()
	if err != nil {
		return "", &types.ParseError{URL: resp.URLString(), Err: err}
	}

	var candidates []string
	doc.Find(e.selector).Each(func(_ int, sel *goquery.Selection) {
		if t := sel.Text(); strings.TrimSpace(t) != "" {
			candidates = append(candidates, t)
		}
	})

	text := Assemble(candidates)
	e.logger.Debug("text extracted",
		"url", resp.URLString(),
		"candidates", len(candidates),
		"chars", len(text),
	)
	return text, nil
}
