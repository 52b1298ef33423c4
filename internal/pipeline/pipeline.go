package pipeline

import (
	"context"
	"errors"
	"log/slog"
	"strings"

	"github.com/IshaanNene/sitebrief/internal/observability"
	"github.com/IshaanNene/sitebrief/internal/types"
)

// Fetcher retrieves the rendered HTML of a page.
type Fetcher interface {
	Fetch(ctx context.Context, req *types.Request) (*types.Response, error)
}

// Extractor turns a fetched page into cleaned text.
type Extractor interface {
	Extract(resp *types.Response) (string, error)
}

// Profiler answers the question set against a page's text.
type Profiler interface {
	Extract(ctx context.Context, text string) (types.Answers, []*types.CompletionError)
	Questions() types.QuestionSet
}

// Writer persists the finished report.
type Writer interface {
	Write(report *types.Report, qs types.QuestionSet) (string, error)
}

// Runner drives each site through fetch, extract and profile in order, then
// writes one report.
type Runner struct {
	fetcher   Fetcher
	extractor Extractor
	profiler  Profiler
	writer    Writer
	metrics   *observability.Metrics
	logger    *slog.Logger

	includeSkipped bool
	outputPath     string
}

// New creates a Runner from its four stages.
func New(f Fetcher, e Extractor, p Profiler, w Writer, logger *slog.Logger) *Runner {
	return &Runner{
		fetcher:   f,
		extractor: e,
		profiler:  p,
		writer:    w,
		metrics:   observability.NewMetrics(logger),
		logger:    logger.With("component", "pipeline"),
	}
}

// SetMetrics replaces the run counters.
func (r *Runner) SetMetrics(m *observability.Metrics) {
	r.metrics = m
}

// SetIncludeSkipped makes skipped sites appear in the report as rows with
// blank answers instead of being omitted.
func (r *Runner) SetIncludeSkipped(include bool) {
	r.includeSkipped = include
}

// Metrics returns the run counters.
func (r *Runner) Metrics() *observability.Metrics {
	return r.metrics
}

// OutputPath returns the path of the last written report.
func (r *Runner) OutputPath() string {
	return r.outputPath
}

// Run processes urls sequentially and writes the report once at the end.
// Cancelling ctx stops the loop; a site interrupted part way is dropped and
// the sites finished before it are still written. The returned error is the
// writer's.
func (r *Runner) Run(ctx context.Context, urls []string) (*types.Report, error) {
	qs := r.profiler.Questions()
	report := types.NewReport()
	r.metrics.SitesTotal.Store(int64(len(urls)))

	for i, u := range urls {
		if err := ctx.Err(); err != nil {
			r.logger.Warn("run interrupted", "remaining", len(urls)-i, "error", err)
			break
		}

		r.logger.Info("processing", "url", u, "site", i+1, "of", len(urls))

		text, ok := r.Process(ctx, u)
		if !ok {
			r.metrics.SitesSkipped.Add(1)
			if ctx.Err() != nil {
				break
			}
			if r.includeSkipped {
				report.AddSkipped(u, qs)
			}
			continue
		}

		answers, failures := r.profiler.Extract(ctx, text)
		if err := ctx.Err(); err != nil {
			// Answers cut short by the interrupt are not kept.
			r.logger.Warn("run interrupted, dropping unfinished site", "url", u, "remaining", len(urls)-i-1, "error", err)
			r.metrics.SitesSkipped.Add(1)
			break
		}
		report.Add(u, answers)

		r.metrics.SitesProcessed.Add(1)
		r.metrics.QuestionsFailed.Add(int64(len(failures)))
		r.metrics.QuestionsAnswered.Add(int64(len(qs) - len(failures)))
	}

	path, err := r.writer.Write(report, qs)
	if err != nil {
		return report, err
	}
	r.outputPath = path
	return report, nil
}

// Process fetches u and extracts its text. Any failure is logged and
// reported as ("", false) so the caller can skip the site.
func (r *Runner) Process(ctx context.Context, u string) (string, bool) {
	req, err := types.NewRequest(u)
	if err != nil {
		r.logger.Error("invalid URL", "url", u, "error", err)
		return "", false
	}

	resp, err := r.fetcher.Fetch(ctx, req)
	if err != nil {
		r.metrics.FetchFailures.Add(1)
		var ferr *types.FetchError
		if errors.As(err, &ferr) && ferr.StatusCode > 0 {
			r.logger.Error("error scraping", "url", u, "status", ferr.StatusCode, "error", err)
		} else {
			r.logger.Error("error scraping", "url", u, "error", err)
		}
		return "", false
	}
	r.metrics.BytesDownloaded.Add(int64(len(resp.Body)))

	text, err := r.extractor.Extract(resp)
	if err != nil {
		r.logger.Error("error extracting text", "url", u, "error", err)
		return "", false
	}
	if strings.TrimSpace(text) == "" {
		r.logger.Warn("no content scraped", "url", u)
		return "", false
	}

	r.logger.Debug("text extracted", "url", u, "chars", len(text))
	return text, true
}
