package parser

import (
	"bytes"
	"log/slog"
	"strings"

	"github.com/antchfx/htmlquery"
	"golang.org/x/net/html"

	"github.com/IshaanNene/sitebrief/internal/types"
)

// XPathExtractor selects content elements with an XPath expression.
// It produces the same text as CSSExtractor.
type XPathExtractor struct {
	expr   string
	logger *slog.Logger
}

// NewXPathExtractor creates a new htmlquery-based extractor.
func NewXPathExtractor(logger *slog.Logger) *XPathExtractor {
	return &XPathExtractor{
		expr:   contentXPath(ContentTags),
		logger: logger.With("component", "xpath_extractor"),
	}
}

// contentXPath builds //*[self::h1 or self::p ...], which keeps document order.
func contentXPath(tags []string) string {
	preds := make([]string, len(tags))
	for i, tag := range tags {
		preds[i] = "self::" + tag
	}
	return "//*[" + strings.Join(preds, " or ") + "]"
}

func (e *XPathExtractor) Name() string { return "xpath" }

// Extract implements Extractor.
func (e *XPathExtractor) Extract(resp *types.Response) (string, error) {
	doc, err := html.Parse(bytes.NewReader(resp.Body))
	if err != nil {
		return "", &types.ParseError{URL: resp.URLString(), Err: err}
	}

	nodes, err := htmlquery.QueryAll(doc, e.expr)
	if err != nil {
		return "", &types.ParseError{URL: resp.URLString(), Err: err}
	}

	candidates := make([]string, 0, len(nodes))
	for _, node := range nodes {
		if t := htmlquery.InnerText(node); strings.TrimSpace(t) != "" {
			candidates = append(candidates, t)
		}
	}

	text := Assemble(candidates)
	e.logger.Debug("text extracted",
		"url", resp.URLString(),
		"candidates", len(candidates),
		"chars", len(text),
	)
	return text, nil
}
