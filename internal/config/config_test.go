package config

import (
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/IshaanNene/sitebrief/internal/types"
)

func validConfig() *Config {
	cfg := DefaultConfig()
	cfg.AI.APIKey = "test-key"
	return cfg
}

func writeFile(t *testing.T, name, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), name)
	if err := os.WriteFile(path, []byte(content), 0o600); err != nil {
		t.Fatalf("write %s: %v", name, err)
	}
	return path
}

func TestDefaultConfigValid(t *testing.T) {
	if err := Validate(validConfig()); err != nil {
		t.Fatalf("default config should validate: %v", err)
	}
}

func TestDefaultSites(t *testing.T) {
	sites := DefaultSites()
	if len(sites) != 10 {
		t.Fatalf("expected 10 reference sites, got %d", len(sites))
	}
	if sites[0] != "https://www.snap.com" || sites[9] != "https://hmgroup.com" {
		t.Errorf("unexpected site order: %v", sites)
	}
}

func TestValidate(t *testing.T) {
	tests := []struct {
		name   string
		mutate func(*Config)
		want   string
	}{
		{"no sites", func(c *Config) { c.Sites = nil }, "at least one site"},
		{"bad fetcher", func(c *Config) { c.Fetcher.Type = "curl" }, "fetcher.type"},
		{"zero ready timeout", func(c *Config) { c.Fetcher.ReadyTimeout = 0 }, "ready_timeout"},
		{"bad parser", func(c *Config) { c.Parser.Mode = "regex" }, "parser.mode"},
		{"bad provider", func(c *Config) { c.AI.Provider = "bard" }, "ai.provider"},
		{"custom without endpoint", func(c *Config) { c.AI.Provider = "custom" }, "ai.endpoint"},
		{"zero ai timeout", func(c *Config) { c.AI.Timeout = 0 }, "ai.timeout"},
		{"no questions", func(c *Config) { c.AI.Questions = nil }, "ai.questions"},
		{"duplicate question", func(c *Config) {
			c.AI.Questions = append(c.AI.Questions, c.AI.Questions[0])
		}, "duplicate key"},
		{"bad format", func(c *Config) { c.Report.Format = "ods" }, "report.format"},
		{"bad log level", func(c *Config) { c.Logging.Level = "trace" }, "logging.level"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := validConfig()
			tt.mutate(cfg)
			err := Validate(cfg)
			if err == nil {
				t.Fatal("expected validation error")
			}
			if !strings.Contains(err.Error(), tt.want) {
				t.Errorf("expected error containing %q, got %v", tt.want, err)
			}
		})
	}
}

func TestValidateKeepsMalformedSites(t *testing.T) {
	cfg := validConfig()
	cfg.Sites = []string{"https://www.tesla.com", "www.stripe.com"}
	if err := Validate(cfg); err != nil {
		t.Fatalf("one malformed site should not reject the batch: %v", err)
	}
	if cfg.AI.MaxTokens != 0 {
		t.Errorf("expected no default output cap, got %d", cfg.AI.MaxTokens)
	}

	if err := ValidateURL("www.stripe.com"); err == nil {
		t.Error("expected scheme error for www.stripe.com")
	}
	if err := ValidateURL("https://www.tesla.com"); err != nil {
		t.Errorf("unexpected error: %v", err)
	}
}

func TestValidateMissingAPIKey(t *testing.T) {
	cfg := DefaultConfig()
	cfg.AI.APIKey = ""
	err := Validate(cfg)
	if !errors.Is(err, types.ErrNoAPIKey) {
		t.Fatalf("expected ErrNoAPIKey, got %v", err)
	}

	cfg.AI.Provider = "ollama"
	if err := Validate(cfg); err != nil {
		t.Errorf("ollama should not need an API key: %v", err)
	}
}

func TestLoadFromFile(t *testing.T) {
	t.Setenv("SITEBRIEF_AI_API_KEY", "")
	t.Setenv("GEMINI_API_KEY", "from-env")

	path := writeFile(t, "sitebrief.yaml", `
sites:
  - https://stripe.com
fetcher:
  type: http
  ready_timeout: 5s
report:
  format: csv
  include_skipped: true
ai:
  questions:
    - key: hq
      text: Where is the headquarters?
      column: HQ
`)

	cfg, err := Load(path)
	if err != nil {
		t.Fatalf("load: %v", err)
	}

	if len(cfg.Sites) != 1 || cfg.Sites[0] != "https://stripe.com" {
		t.Errorf("unexpected sites: %v", cfg.Sites)
	}
	if cfg.Fetcher.Type != "http" {
		t.Errorf("expected http fetcher, got %q", cfg.Fetcher.Type)
	}
	if cfg.Fetcher.ReadyTimeout != 5*time.Second {
		t.Errorf("expected 5s ready timeout, got %s", cfg.Fetcher.ReadyTimeout)
	}
	if cfg.Report.Format != "csv" || !cfg.Report.IncludeSkipped {
		t.Errorf("unexpected report config: %+v", cfg.Report)
	}
	if len(cfg.AI.Questions) != 1 || cfg.AI.Questions[0].Key != "hq" {
		t.Errorf("expected configured questions to replace defaults, got %+v", cfg.AI.Questions)
	}
	if cfg.AI.Model != "gemini-1.5-flash" {
		t.Errorf("expected default model, got %q", cfg.AI.Model)
	}
	if cfg.AI.APIKey != "from-env" {
		t.Errorf("expected API key from GEMINI_API_KEY, got %q", cfg.AI.APIKey)
	}
}

func TestLoadEnvOverride(t *testing.T) {
	t.Setenv("SITEBRIEF_REPORT_FORMAT", "markdown")
	t.Setenv("SITEBRIEF_AI_API_KEY", "primary")
	t.Setenv("GEMINI_API_KEY", "fallback")

	path := writeFile(t, "sitebrief.yaml", "logging:\n  level: debug\n")
	cfg, err := Load(path)
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	if cfg.Report.Format != "markdown" {
		t.Errorf("expected env override, got %q", cfg.Report.Format)
	}
	if cfg.AI.APIKey != "primary" {
		t.Errorf("expected SITEBRIEF_AI_API_KEY to win, got %q", cfg.AI.APIKey)
	}
	if len(cfg.Sites) != len(DefaultSites()) {
		t.Errorf("expected default sites, got %d", len(cfg.Sites))
	}
	if len(cfg.AI.Questions) != 6 {
		t.Errorf("expected 6 default questions, got %d", len(cfg.AI.Questions))
	}
}

func TestLoadMissingExplicitFile(t *testing.T) {
	_, err := Load(filepath.Join(t.TempDir(), "nope.yaml"))
	if err == nil {
		t.Fatal("expected error for missing explicit config file")
	}
}

func TestLoadSitesFile(t *testing.T) {
	path := writeFile(t, "sites.yaml", "sites:\n  - https://www.tesla.com\n  - ' '\n  - https://stripe.com\n")
	sites, err := LoadSitesFile(path)
	if err != nil {
		t.Fatalf("load sites: %v", err)
	}
	if len(sites) != 2 || sites[0] != "https://www.tesla.com" || sites[1] != "https://stripe.com" {
		t.Errorf("unexpected sites: %v", sites)
	}

	_, err = LoadSitesFile(filepath.Join(t.TempDir(), "missing.yaml"))
	if !errors.Is(err, ErrSitesFileNotFound) {
		t.Errorf("expected ErrSitesFileNotFound, got %v", err)
	}

	empty := writeFile(t, "empty.yaml", "sites: []\n")
	if _, err := LoadSitesFile(empty); err == nil {
		t.Error("expected error for empty site list")
	}
}
