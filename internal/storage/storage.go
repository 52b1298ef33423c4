package storage

import (
	"fmt"
	"log/slog"
	"os"
	"path/filepath"

	"github.com/IshaanNene/sitebrief/internal/types"
)

// ReportWriter is the interface for all report output formats.
type ReportWriter interface {
	// Write serializes the report with one row per site and returns the
	// path of the written file.
	Write(report *types.Report, qs types.QuestionSet) (string, error)

	// Name returns the format identifier.
	Name() string
}

// Extensions maps each supported format to its file extension.
var Extensions = map[string]string{
	"xlsx":     "xlsx",
	"csv":      "csv",
	"json":     "json",
	"markdown": "md",
}

// NewReportWriter creates the writer for format, targeting
// <outputDir>/<filename>.<ext>.
func NewReportWriter(format, outputDir, filename string, logger *slog.Logger) (ReportWriter, error) {
	ext, ok := Extensions[format]
	if !ok {
		return nil, fmt.Errorf("%w: %s", types.ErrUnsupportedFormat, format)
	}
	path := filepath.Join(outputDir, filename+"."+ext)

	switch format {
	case "xlsx":
		return NewExcelWriter(path, logger), nil
	case "csv":
		return NewCSVWriter(path, logger), nil
	case "json":
		return NewJSONWriter(path, logger), nil
	default:
		return NewMarkdownWriter(path, logger), nil
	}
}

// createFile creates path and its parent directory.
func createFile(path string) (*os.File, error) {
	if err := ensureDir(path); err != nil {
		return nil, err
	}
	f, err := os.Create(path)
	if err != nil {
		return nil, fmt.Errorf("create output file: %w", err)
	}
	return f, nil
}

// closeFile closes f and keeps the first error seen by the writer.
func closeFile(f *os.File, err *error) {
	if cerr := f.Close(); cerr != nil && *err == nil {
		*err = cerr
	}
}

func ensureDir(path string) error {
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return fmt.Errorf("create output dir: %w", err)
	}
	return nil
}
