package storage

import (
	"fmt"
	"log/slog"

	"github.com/xuri/excelize/v2"

	"github.com/IshaanNene/sitebrief/internal/types"
)

// SheetName is the worksheet that holds the profiles.
const SheetName = "Profiles"

// ExcelWriter writes the report as an .xlsx workbook.
type ExcelWriter struct {
	path   string
	logger *slog.Logger
}

// NewExcelWriter creates a new xlsx report writer.
func NewExcelWriter(path string, logger *slog.Logger) *ExcelWriter {
	return &ExcelWriter{path: path, logger: logger.With("component", "excel_writer")}
}

func (w *ExcelWriter) Name() string { return "xlsx" }

func (w *ExcelWriter) Write(report *types.Report, qs types.QuestionSet) (string, error) {
	if err := w.write(report, qs); err != nil {
		return "", &types.StorageError{Backend: w.Name(), Err: err}
	}
	w.logger.Info("workbook written", "path", w.path, "rows", report.Len())
	return w.path, nil
}

func (w *ExcelWriter) write(report *types.Report, qs types.QuestionSet) error {
	f := excelize.NewFile()
	defer func() {
		if err := f.Close(); err != nil {
			w.logger.Warn("close workbook", "error", err)
		}
	}()

	if err := f.SetSheetName(f.GetSheetName(0), SheetName); err != nil {
		return fmt.Errorf("rename sheet: %w", err)
	}

	header := qs.Header()
	if err := f.SetSheetRow(SheetName, "A1", &header); err != nil {
		return fmt.Errorf("write header: %w", err)
	}
	bold, err := f.NewStyle(&excelize.Style{Font: &excelize.Font{Bold: true}})
	if err != nil {
		return fmt.Errorf("create header style: %w", err)
	}
	if err := f.SetRowStyle(SheetName, 1, 1, bold); err != nil {
		return fmt.Errorf("style header: %w", err)
	}

	for i, row := range report.Rows(qs) {
		cell, err := excelize.CoordinatesToCellName(1, i+2)
		if err != nil {
			return err
		}
		if err := f.SetSheetRow(SheetName, cell, &row); err != nil {
			return fmt.Errorf("write row %d: %w", i+2, err)
		}
	}

	if err := ensureDir(w.path); err != nil {
		return err
	}
	if err := f.SaveAs(w.path); err != nil {
		return fmt.Errorf("save workbook: %w", err)
	}
	return nil
}
