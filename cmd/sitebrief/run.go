package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"strings"
	"syscall"
	"time"

	"github.com/spf13/cobra"

	"github.com/IshaanNene/sitebrief/internal/ai"
	"github.com/IshaanNene/sitebrief/internal/config"
	"github.com/IshaanNene/sitebrief/internal/fetcher"
	"github.com/IshaanNene/sitebrief/internal/observability"
	"github.com/IshaanNene/sitebrief/internal/parser"
	"github.com/IshaanNene/sitebrief/internal/pipeline"
	"github.com/IshaanNene/sitebrief/internal/storage"
)

var (
	sitesFile      string
	outputDir      string
	outputFormat   string
	outputName     string
	fetcherType    string
	parserMode     string
	aiProvider     string
	aiModel        string
	includeSkipped bool
	stealth        bool
)

// runCmd creates the "run" subcommand.
func runCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "run [url...]",
		Short: "Profile company websites and write the report",
		Long: `Profile each company website in order and write one report.

Sites come from the positional URLs, else from --sites, else from the
config file, else from the built-in reference list.`,
		RunE: runProfile,
	}

	cmd.Flags().StringVar(&sitesFile, "sites", "", "YAML file with a 'sites:' list of URLs")
	cmd.Flags().StringVarP(&outputDir, "output", "o", "", "output directory")
	cmd.Flags().StringVarP(&outputFormat, "format", "f", "", "report format: xlsx, csv, json, markdown")
	cmd.Flags().StringVar(&outputName, "filename", "", "report file name without extension")
	cmd.Flags().StringVar(&fetcherType, "fetcher", "", "page fetcher: browser, chromedp, http")
	cmd.Flags().StringVar(&parserMode, "parser", "", "text extractor: css, xpath")
	cmd.Flags().StringVar(&aiProvider, "provider", "", "LLM provider: gemini, openai, ollama, custom")
	cmd.Flags().StringVarP(&aiModel, "model", "m", "", "LLM model name")
	cmd.Flags().BoolVar(&includeSkipped, "include-skipped", false, "write blank rows for sites that could not be scraped")
	cmd.Flags().BoolVar(&stealth, "stealth", false, "apply stealth patches in the browser fetcher")

	return cmd
}

// runProfile executes the run command.
func runProfile(cmd *cobra.Command, args []string) error {
	// Load config
	cfg, err := config.Load(cfgFile)
	if err != nil {
		return fmt.Errorf("load config: %w", err)
	}

	// Apply CLI overrides
	if err := applyCLIOverrides(cfg, args); err != nil {
		return err
	}

	// Validate config
	if err := config.Validate(cfg); err != nil {
		return fmt.Errorf("invalid config: %w", err)
	}

	logger := setupLogger(cfg)
	qs := cfg.QuestionSet()

	for _, site := range cfg.Sites {
		if err := config.ValidateURL(site); err != nil {
			logger.Warn("site will be skipped", "url", site, "error", err)
		}
	}

	logger.Info("starting run",
		"sites", len(cfg.Sites),
		"fetcher", cfg.Fetcher.Type,
		"parser", cfg.Parser.Mode,
		"provider", cfg.AI.Provider,
		"model", cfg.AI.Model,
		"questions", len(qs),
		"format", cfg.Report.Format,
	)

	// Setup fetcher
	f, err := fetcher.New(cfg, logger)
	if err != nil {
		return fmt.Errorf("create fetcher: %w", err)
	}
	defer f.Close()

	// Setup extractor
	extractor, err := parser.New(cfg.Parser.Mode, logger)
	if err != nil {
		return fmt.Errorf("create extractor: %w", err)
	}

	// Setup LLM
	client := ai.NewLLMClient(ai.LLMConfig{
		Provider:    ai.LLMProvider(cfg.AI.Provider),
		Endpoint:    cfg.AI.Endpoint,
		Model:       cfg.AI.Model,
		APIKey:      cfg.AI.APIKey,
		MaxTokens:   cfg.AI.MaxTokens,
		Temperature: cfg.AI.Temperature,
	}, logger)
	profiler := ai.NewProfileExtractor(client, qs, cfg.AI.Timeout, logger)

	// Setup report writer
	writer, err := storage.NewReportWriter(cfg.Report.Format, cfg.Report.OutputDir, cfg.Report.Filename, logger)
	if err != nil {
		return fmt.Errorf("create report writer: %w", err)
	}

	metrics := observability.NewMetrics(logger)
	runner := pipeline.New(f, extractor, profiler, writer, logger)
	runner.SetMetrics(metrics)
	runner.SetIncludeSkipped(cfg.Report.IncludeSkipped)

	// Handle graceful shutdown
	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	report, err := runner.Run(ctx, cfg.Sites)
	if err != nil {
		return fmt.Errorf("write report: %w", err)
	}
	metrics.LogSummary()

	stats := metrics.Snapshot()
	fmt.Printf("Data saved to %s\n", runner.OutputPath())
	fmt.Printf("\n✅ Run complete in %s\n", metrics.Elapsed().Round(time.Millisecond))
	fmt.Printf("   Sites:     %d profiled, %d skipped of %d\n", stats["sites_processed"], stats["sites_skipped"], stats["sites_total"])
	fmt.Printf("   Questions: %d answered, %d failed\n", stats["questions_answered"], stats["questions_failed"])
	fmt.Printf("   Rows:      %d\n", report.Len())

	if ctx.Err() != nil {
		fmt.Println("\n⚠️  Run was interrupted; the report holds the sites finished before the signal.")
	}
	if report.Len() == 0 {
		fmt.Println("\n💡 No sites were profiled. Check connectivity, or try --fetcher http for static sites.")
	}

	return nil
}

// applyCLIOverrides applies command-line flag values and positional URLs
// to the config.
func applyCLIOverrides(cfg *config.Config, args []string) error {
	switch {
	case len(args) > 0:
		cfg.Sites = args
	case sitesFile != "":
		sites, err := config.LoadSitesFile(sitesFile)
		if err != nil {
			return fmt.Errorf("load sites file: %w", err)
		}
		cfg.Sites = sites
	}

	if outputDir != "" {
		cfg.Report.OutputDir = outputDir
	}
	if outputFormat != "" {
		cfg.Report.Format = strings.ToLower(outputFormat)
	}
	if outputName != "" {
		cfg.Report.Filename = outputName
	}
	if includeSkipped {
		cfg.Report.IncludeSkipped = true
	}
	if fetcherType != "" {
		cfg.Fetcher.Type = strings.ToLower(fetcherType)
	}
	if stealth {
		cfg.Fetcher.Stealth = true
	}
	if parserMode != "" {
		cfg.Parser.Mode = strings.ToLower(parserMode)
	}
	if p := strings.ToLower(aiProvider); p != "" && p != cfg.AI.Provider {
		cfg.AI.Provider = p
		// The loaded key belonged to the previous provider.
		if os.Getenv("SITEBRIEF_AI_API_KEY") == "" {
			cfg.AI.APIKey = config.ProviderAPIKey(cfg.AI.Provider)
		}
	}
	if aiModel != "" {
		cfg.AI.Model = aiModel
	}
	return nil
}
