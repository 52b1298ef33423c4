package storage

import (
	"fmt"
	"log/slog"
	"strconv"
	"strings"

	"github.com/nao1215/markdown"

	"github.com/IshaanNene/sitebrief/internal/types"
)

// MarkdownWriter writes the report as a GitHub-flavored markdown table.
type MarkdownWriter struct {
	path   string
	logger *slog.Logger
}

// NewMarkdownWriter creates a new markdown report writer.
func NewMarkdownWriter(path string, logger *slog.Logger) *MarkdownWriter {
	return &MarkdownWriter{path: path, logger: logger.With("component", "markdown_writer")}
}

func (w *MarkdownWriter) Name() string { return "markdown" }

func (w *MarkdownWriter) Write(report *types.Report, qs types.QuestionSet) (string, error) {
	if err := w.write(report, qs); err != nil {
		return "", &types.StorageError{Backend: w.Name(), Err: err}
	}
	w.logger.Info("markdown written", "path", w.path, "rows", report.Len())
	return w.path, nil
}

func (w *MarkdownWriter) write(report *types.Report, qs types.QuestionSet) (err error) {
	rows := report.Rows(qs)
	for _, row := range rows {
		for i, cell := range row {
			row[i] = escapeCell(cell)
		}
	}

	f, err := createFile(w.path)
	if err != nil {
		return err
	}
	defer closeFile(f, &err)

	md := markdown.NewMarkdown(f)
	md.H1("Company Profiles")
	md.PlainText("")
	md.PlainText("Sites: " + strconv.Itoa(report.Len()))
	md.PlainText("")
	md.Table(markdown.TableSet{
		Header: qs.Header(),
		Rows:   rows,
	})

	if err := md.Build(); err != nil {
		return fmt.Errorf("build markdown: %w", err)
	}
	return nil
}

// escapeCell keeps multi-line answers inside one table cell.
func escapeCell(s string) string {
	s = strings.ReplaceAll(s, "|", `\|`)
	s = strings.ReplaceAll(s, "\r\n", "\n")
	return strings.ReplaceAll(s, "\n", "<br>")
}
