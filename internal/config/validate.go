package config

import (
	"fmt"
	"net/url"

	"github.com/IshaanNene/sitebrief/internal/types"
)

// Validate checks the configuration for invalid values.
func Validate(cfg *Config) error {
	// Malformed sites are skipped one by one at run time, not rejected here.
	if len(cfg.Sites) == 0 {
		return fmt.Errorf("at least one site is required")
	}

	switch cfg.Fetcher.Type {
	case "browser", "chromedp", "http":
	default:
		return fmt.Errorf("fetcher.type must be 'browser', 'chromedp' or 'http', got %q", cfg.Fetcher.Type)
	}
	if cfg.Fetcher.ReadyTimeout <= 0 {
		return fmt.Errorf("fetcher.ready_timeout must be > 0")
	}
	if cfg.Fetcher.Type == "http" {
		if cfg.Fetcher.RequestTimeout <= 0 {
			return fmt.Errorf("fetcher.request_timeout must be > 0")
		}
		if cfg.Fetcher.MaxBodySize <= 0 {
			return fmt.Errorf("fetcher.max_body_size must be > 0")
		}
	}

	if cfg.Parser.Mode != "css" && cfg.Parser.Mode != "xpath" {
		return fmt.Errorf("parser.mode must be 'css' or 'xpath', got %q", cfg.Parser.Mode)
	}

	switch cfg.AI.Provider {
	case "gemini", "openai":
		if cfg.AI.APIKey == "" {
			return fmt.Errorf("ai provider %q: %w (set SITEBRIEF_AI_API_KEY)", cfg.AI.Provider, types.ErrNoAPIKey)
		}
	case "ollama":
	case "custom":
		if cfg.AI.Endpoint == "" {
			return fmt.Errorf("ai.endpoint is required for the custom provider")
		}
	default:
		return fmt.Errorf("ai.provider must be gemini/openai/ollama/custom, got %q", cfg.AI.Provider)
	}
	if cfg.AI.Model == "" && cfg.AI.Provider != "custom" {
		return fmt.Errorf("ai.model must be set")
	}
	if cfg.AI.Timeout <= 0 {
		return fmt.Errorf("ai.timeout must be > 0")
	}
	if err := validateQuestions(cfg.AI.Questions); err != nil {
		return err
	}

	validFormats := map[string]bool{
		"xlsx": true, "csv": true, "json": true, "markdown": true,
	}
	if !validFormats[cfg.Report.Format] {
		return fmt.Errorf("report.format %q is not supported (valid: xlsx, csv, json, markdown)", cfg.Report.Format)
	}
	if cfg.Report.Filename == "" {
		return fmt.Errorf("report.filename must be set")
	}

	validLogLevels := map[string]bool{
		"debug": true, "info": true, "warn": true, "error": true,
	}
	if !validLogLevels[cfg.Logging.Level] {
		return fmt.Errorf("logging.level must be debug/info/warn/error, got %q", cfg.Logging.Level)
	}
	if cfg.Logging.Format != "text" && cfg.Logging.Format != "json" {
		return fmt.Errorf("logging.format must be 'text' or 'json', got %q", cfg.Logging.Format)
	}

	return nil
}

func validateQuestions(questions []types.Question) error {
	if len(questions) == 0 {
		return fmt.Errorf("ai.questions must not be empty")
	}
	seen := make(map[string]bool, len(questions))
	for i, q := range questions {
		if q.Key == "" || q.Text == "" || q.Column == "" {
			return fmt.Errorf("ai.questions[%d]: key, text and column are required", i)
		}
		if seen[q.Key] {
			return fmt.Errorf("ai.questions[%d]: duplicate key %q", i, q.Key)
		}
		seen[q.Key] = true
	}
	return nil
}

// ValidateURL checks if a URL string is valid for scraping.
func ValidateURL(rawURL string) error {
	u, err := url.Parse(rawURL)
	if err != nil {
		return fmt.Errorf("invalid URL: %w", err)
	}
	if u.Scheme != "http" && u.Scheme != "https" {
		return fmt.Errorf("URL scheme must be http or https, got %q", u.Scheme)
	}
	if u.Host == "" {
		return fmt.Errorf("URL must have a host")
	}
	return nil
}
