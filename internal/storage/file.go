package storage

import (
	"encoding/csv"
	"encoding/json"
	"fmt"
	"log/slog"
	"time"

	"github.com/IshaanNene/sitebrief/internal/types"
)

// --- CSV ---

// CSVWriter writes the report as CSV rows under a header row.
type CSVWriter struct {
	path   string
	logger *slog.Logger
}

// NewCSVWriter creates a new CSV report writer.
func NewCSVWriter(path string, logger *slog.Logger) *CSVWriter {
	return &CSVWriter{path: path, logger: logger.With("component", "csv_writer")}
}

func (w *CSVWriter) Name() string { return "csv" }

func (w *CSVWriter) Write(report *types.Report, qs types.QuestionSet) (string, error) {
	if err := w.write(report, qs); err != nil {
		return "", &types.StorageError{Backend: w.Name(), Err: err}
	}
	w.logger.Info("CSV written", "path", w.path, "rows", report.Len())
	return w.path, nil
}

func (w *CSVWriter) write(report *types.Report, qs types.QuestionSet) (err error) {
	f, err := createFile(w.path)
	if err != nil {
		return err
	}
	defer closeFile(f, &err)

	cw := csv.NewWriter(f)
	if err := cw.Write(qs.Header()); err != nil {
		return fmt.Errorf("write CSV header: %w", err)
	}
	if err := cw.WriteAll(report.Rows(qs)); err != nil {
		return fmt.Errorf("write CSV rows: %w", err)
	}
	return nil
}

// --- JSON ---

// JSONWriter writes the report as a JSON array, one object per site.
type JSONWriter struct {
	path   string
	logger *slog.Logger
}

// NewJSONWriter creates a new JSON report writer.
func NewJSONWriter(path string, logger *slog.Logger) *JSONWriter {
	return &JSONWriter{path: path, logger: logger.With("component", "json_writer")}
}

func (w *JSONWriter) Name() string { return "json" }

// jsonAnswer is one answer, listed in question-set order.
type jsonAnswer struct {
	Key    string `json:"key"`
	Column string `json:"column"`
	Answer string `json:"answer"`
}

type jsonEntry struct {
	Website   string       `json:"website"`
	Answers   []jsonAnswer `json:"answers"`
	Skipped   bool         `json:"skipped,omitempty"`
	Timestamp time.Time    `json:"timestamp"`
}

func (w *JSONWriter) Write(report *types.Report, qs types.QuestionSet) (string, error) {
	if err := w.write(report, qs); err != nil {
		return "", &types.StorageError{Backend: w.Name(), Err: err}
	}
	w.logger.Info("JSON written", "path", w.path, "rows", report.Len())
	return w.path, nil
}

func (w *JSONWriter) write(report *types.Report, qs types.QuestionSet) (err error) {
	output := make([]jsonEntry, 0, report.Len())
	for _, e := range report.Entries() {
		answers := make([]jsonAnswer, 0, len(qs))
		for _, q := range qs {
			answers = append(answers, jsonAnswer{Key: q.Key, Column: q.Column, Answer: e.Answers[q.Key]})
		}
		output = append(output, jsonEntry{
			Website:   e.URL,
			Answers:   answers,
			Skipped:   e.Skipped,
			Timestamp: e.Timestamp,
		})
	}

	f, err := createFile(w.path)
	if err != nil {
		return err
	}
	defer closeFile(f, &err)

	enc := json.NewEncoder(f)
	enc.SetIndent("", "  ")
	if err := enc.Encode(output); err != nil {
		return fmt.Errorf("encode JSON: %w", err)
	}
	return nil
}
