package config

import (
	"path/filepath"
	"time"

	"github.com/adrg/xdg"

	"github.com/IshaanNene/sitebrief/internal/types"
)

// Version is set at build time via ldflags.
var Version = "dev"

// AppName is used for the config file name, env prefix and XDG directory.
const AppName = "sitebrief"

// Config is the root configuration for sitebrief.
type Config struct {
	Sites   []string      `mapstructure:"sites"   yaml:"sites"`
	Fetcher FetcherConfig `mapstructure:"fetcher" yaml:"fetcher"`
	Parser  ParserConfig  `mapstructure:"parser"  yaml:"parser"`
	AI      AIConfig      `mapstructure:"ai"      yaml:"ai"`
	Report  ReportConfig  `mapstructure:"report"  yaml:"report"`
	Logging LoggingConfig `mapstructure:"logging" yaml:"logging"`
}

// FetcherConfig controls how pages are loaded.
type FetcherConfig struct {
	Type           string        `mapstructure:"type"            yaml:"type"` // browser, chromedp, http
	ReadyTimeout   time.Duration `mapstructure:"ready_timeout"   yaml:"ready_timeout"`
	RequestTimeout time.Duration `mapstructure:"request_timeout" yaml:"request_timeout"`
	Headless       bool          `mapstructure:"headless"        yaml:"headless"`
	Stealth        bool          `mapstructure:"stealth"         yaml:"stealth"`
	BrowserBin     string        `mapstructure:"browser_bin"     yaml:"browser_bin"`
	UserAgent      string        `mapstructure:"user_agent"      yaml:"user_agent"`
	MaxBodySize    int64         `mapstructure:"max_body_size"   yaml:"max_body_size"`
}

// ParserConfig controls text extraction.
type ParserConfig struct {
	Mode string `mapstructure:"mode" yaml:"mode"` // css, xpath
}

// AIConfig controls the completion service.
type AIConfig struct {
	Provider    string           `mapstructure:"provider"    yaml:"provider"`
	Model       string           `mapstructure:"model"       yaml:"model"`
	Endpoint    string           `mapstructure:"endpoint"    yaml:"endpoint"`
	APIKey      string           `mapstructure:"api_key"     yaml:"-"`
	Timeout     time.Duration    `mapstructure:"timeout"     yaml:"timeout"`
	MaxTokens   int              `mapstructure:"max_tokens"  yaml:"max_tokens"`
	Temperature float64          `mapstructure:"temperature" yaml:"temperature"`
	Questions   []types.Question `mapstructure:"questions"   yaml:"questions"`
}

// ReportConfig controls the output file.
type ReportConfig struct {
	Format         string `mapstructure:"format"          yaml:"format"` // xlsx, csv, json, markdown
	OutputDir      string `mapstructure:"output_dir"      yaml:"output_dir"`
	Filename       string `mapstructure:"filename"        yaml:"filename"`
	IncludeSkipped bool   `mapstructure:"include_skipped" yaml:"include_skipped"`
}

// LoggingConfig controls logging behavior.
type LoggingConfig struct {
	Level  string `mapstructure:"level"  yaml:"level"`
	Format string `mapstructure:"format" yaml:"format"`
}

// DefaultSites is the reference list of company sites.
func DefaultSites() []string {
	return []string{
		"https://www.snap.com",
		"https://www.dropbox.com",
		"https://www.tesla.com",
		"https://www.spacex.com",
		"https://robinhood.com",
		"https://stripe.com",
		"https://squareup.com",
		"https://www.shopify.com",
		"https://www.zara.com",
		"https://hmgroup.com",
	}
}

// DefaultConfig returns a Config with sensible defaults.
func DefaultConfig() *Config {
	return &Config{
		Sites: DefaultSites(),
		Fetcher: FetcherConfig{
			Type:           "browser",
			ReadyTimeout:   20 * time.Second,
			RequestTimeout: 30 * time.Second,
			Headless:       true,
			MaxBodySize:    10 * 1024 * 1024, // 10MB
		},
		Parser: ParserConfig{
			Mode: "css",
		},
		AI: AIConfig{
			Provider:    "gemini",
			Model:       "gemini-1.5-flash",
			Timeout:     60 * time.Second,
			Temperature: 0.2,
			Questions:   types.DefaultQuestions(),
		},
		Report: ReportConfig{
			Format:    "xlsx",
			OutputDir: ".",
			Filename:  "website_data",
		},
		Logging: LoggingConfig{
			Level:  "info",
			Format: "text",
		},
	}
}

// QuestionSet returns the configured questions as a QuestionSet.
func (c *Config) QuestionSet() types.QuestionSet {
	return types.QuestionSet(c.AI.Questions)
}

// XDGConfigDir returns the per-user config directory for sitebrief.
// On Linux: ~/.config/sitebrief
func XDGConfigDir() string {
	return filepath.Join(xdg.ConfigHome, AppName)
}
