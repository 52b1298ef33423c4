package ai

import (
	"context"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"github.com/IshaanNene/sitebrief/internal/types"
)

// ErrorPrefix starts every answer that stands in for a failed question.
const ErrorPrefix = "Error: "

// BuildPrompt embeds a question and the scraped page text into a prompt.
func BuildPrompt(question, text string) string {
	return fmt.Sprintf("Answer the following question based on the provided data:\n\nQuestion: %s\n\nData:\n%s", question, text)
}

// ProfileExtractor asks every question of a QuestionSet against one page.
type ProfileExtractor struct {
	client    Completer
	questions types.QuestionSet
	timeout   time.Duration
	logger    *slog.Logger
}

// NewProfileExtractor creates a profile extractor. A zero timeout leaves
// each completion bounded only by ctx and the client.
func NewProfileExtractor(client Completer, questions types.QuestionSet, timeout time.Duration, logger *slog.Logger) *ProfileExtractor {
	return &ProfileExtractor{
		client:    client,
		questions: questions,
		timeout:   timeout,
		logger:    logger.With("component", "profile_extractor"),
	}
}

// Questions returns the question set in use.
func (p *ProfileExtractor) Questions() types.QuestionSet { return p.questions }

// Extract asks each question in order, one round trip at a time. The
// returned Answers always holds every question key; a failed question gets
// an "Error: ..." answer and a matching CompletionError, and the remaining
// questions still run. After ctx is done no further completions are sent.
func (p *ProfileExtractor) Extract(ctx context.Context, text string) (types.Answers, []*types.CompletionError) {
	answers := types.NewAnswers(p.questions)
	var failures []*types.CompletionError

	for _, q := range p.questions {
		// Once ctx is done the remaining questions fail without a round trip.
		if err := ctx.Err(); err != nil {
			failures = append(failures, &types.CompletionError{Question: q.Key, Err: err})
			answers[q.Key] = ErrorPrefix + err.Error()
			continue
		}

		answer, err := p.ask(ctx, q, text)
		if err != nil {
			cerr := &types.CompletionError{Question: q.Key, Err: err}
			failures = append(failures, cerr)
			answers[q.Key] = ErrorPrefix + err.Error()
			p.logger.Warn("question failed", "question", q.Key, "error", err)
			continue
		}
		answers[q.Key] = answer
	}

	return answers, failures
}

func (p *ProfileExtractor) ask(ctx context.Context, q types.Question, text string) (string, error) {
	if p.timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, p.timeout)
		defer cancel()
	}

	answer, err := p.client.Generate(ctx, BuildPrompt(q.Text, text))
	if err != nil {
		return "", err
	}
	return strings.TrimSpace(answer), nil
}
