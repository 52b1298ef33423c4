package main

import (
	"fmt"
	"log/slog"
	"os"
	"strings"

	"github.com/spf13/cobra"

	"github.com/IshaanNene/sitebrief/internal/config"
)

var (
	cfgFile string
	verbose bool
)

func main() {
	rootCmd := &cobra.Command{
		Use:   "sitebrief",
		Short: "Build company profiles from company websites",
		Long: `sitebrief loads each company website in a headless browser, extracts the
visible headings, paragraphs and list items, asks a language model a fixed
set of profile questions about that text, and writes one spreadsheet row per
company.

Profile columns:
  • Mission Statement
  • Products/Services
  • Founded
  • Headquarters
  • Executives
  • Awards

The API key is read from SITEBRIEF_AI_API_KEY, GEMINI_API_KEY or
OPENAI_API_KEY (a .env file in the working directory is honored).`,
		SilenceUsage: true,
	}

	rootCmd.PersistentFlags().StringVarP(&cfgFile, "config", "c", "", "config file path")
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "enable debug logging")

	rootCmd.AddCommand(runCmd())
	rootCmd.AddCommand(versionCmd())
	rootCmd.AddCommand(configCmd())

	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}

// versionCmd creates the "version" subcommand.
func versionCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "version",
		Short: "Print version information",
		Run: func(cmd *cobra.Command, args []string) {
			fmt.Printf("sitebrief %s\n", config.Version)
		},
	}
}

// configCmd creates the "config" subcommand for inspecting configuration.
func configCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "config",
		Short: "Show current configuration",
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := config.Load(cfgFile)
			if err != nil {
				return err
			}
			apiKey := "not set"
			if cfg.AI.APIKey != "" {
				apiKey = "set"
			}

			fmt.Printf("Sites:               %d configured\n", len(cfg.Sites))
			fmt.Printf("\nFetcher:\n")
			fmt.Printf("  Type:              %s\n", cfg.Fetcher.Type)
			fmt.Printf("  Ready Timeout:     %s\n", cfg.Fetcher.ReadyTimeout)
			fmt.Printf("  Headless:          %v\n", cfg.Fetcher.Headless)
			fmt.Printf("  Stealth:           %v\n", cfg.Fetcher.Stealth)
			fmt.Printf("\nParser:\n")
			fmt.Printf("  Mode:              %s\n", cfg.Parser.Mode)
			fmt.Printf("\nAI:\n")
			fmt.Printf("  Provider:          %s\n", cfg.AI.Provider)
			fmt.Printf("  Model:             %s\n", cfg.AI.Model)
			fmt.Printf("  Timeout:           %s\n", cfg.AI.Timeout)
			fmt.Printf("  API Key:           %s\n", apiKey)
			fmt.Printf("  Questions:         %d\n", len(cfg.AI.Questions))
			for _, q := range cfg.QuestionSet() {
				fmt.Printf("    %-22s %s\n", q.Key, q.Column)
			}
			fmt.Printf("\nReport:\n")
			fmt.Printf("  Format:            %s\n", cfg.Report.Format)
			fmt.Printf("  Output Dir:        %s\n", cfg.Report.OutputDir)
			fmt.Printf("  Filename:          %s\n", cfg.Report.Filename)
			fmt.Printf("  Include Skipped:   %v\n", cfg.Report.IncludeSkipped)
			fmt.Printf("\nConfig dir:          %s\n", config.XDGConfigDir())
			return nil
		},
	}
}

// setupLogger creates a structured logger on stderr from the logging config.
func setupLogger(cfg *config.Config) *slog.Logger {
	level := slog.LevelInfo
	switch strings.ToLower(cfg.Logging.Level) {
	case "debug":
		level = slog.LevelDebug
	case "warn":
		level = slog.LevelWarn
	case "error":
		level = slog.LevelError
	}
	if verbose {
		level = slog.LevelDebug
	}

	opts := &slog.HandlerOptions{
		Level: level,
	}

	var handler slog.Handler = slog.NewTextHandler(os.Stderr, opts)
	if cfg.Logging.Format == "json" {
		handler = slog.NewJSONHandler(os.Stderr, opts)
	}
	return slog.New(handler)
}
