package observability

import (
	"log/slog"
	"sync/atomic"
	"time"
)

// Metrics tracks counters for a single profiling run.
type Metrics struct {
	// Site metrics
	SitesTotal     atomic.Int64
	SitesProcessed atomic.Int64
	SitesSkipped   atomic.Int64

	// Fetch metrics
	FetchFailures   atomic.Int64
	BytesDownloaded atomic.Int64

	// Question metrics
	QuestionsAnswered atomic.Int64
	QuestionsFailed   atomic.Int64

	startTime time.Time
	logger    *slog.Logger
}

// NewMetrics creates a new Metrics instance.
func NewMetrics(logger *slog.Logger) *Metrics {
	return &Metrics{
		startTime: time.Now(),
		logger:    logger.With("component", "metrics"),
	}
}

// Elapsed returns the time since the metrics were created.
func (m *Metrics) Elapsed() time.Duration {
	return time.Since(m.startTime)
}

// Snapshot returns all metrics as a map.
func (m *Metrics) Snapshot() map[string]int64 {
	return map[string]int64{
		"sites_total":        m.SitesTotal.Load(),
		"sites_processed":    m.SitesProcessed.Load(),
		"sites_skipped":      m.SitesSkipped.Load(),
		"fetch_failures":     m.FetchFailures.Load(),
		"bytes_downloaded":   m.BytesDownloaded.Load(),
		"questions_answered": m.QuestionsAnswered.Load(),
		"questions_failed":   m.QuestionsFailed.Load(),
	}
}

// LogSummary writes the run totals at info level.
func (m *Metrics) LogSummary() {
	m.logger.Info("run summary",
		"sites", m.SitesTotal.Load(),
		"processed", m.SitesProcessed.Load(),
		"skipped", m.SitesSkipped.Load(),
		"answered", m.QuestionsAnswered.Load(),
		"failed", m.QuestionsFailed.Load(),
		"elapsed", m.Elapsed().Round(time.Millisecond),
	)
}
