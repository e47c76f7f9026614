package exporter

import (
	"fmt"
	"io"
	"os"
	"path/filepath"

	"fuel-sheets/internal/extractor"
	"fuel-sheets/internal/logger"
	"fuel-sheets/internal/model"

	"github.com/xuri/excelize/v2"
)

// ExcelExporter writes all tables into one clean workbook, one sheet per table
type ExcelExporter struct {
	fileName string
}

// NewExcelExporter creates an ExcelExporter writing <fileName>.xlsx
func NewExcelExporter(fileName string) *ExcelExporter {
	return &ExcelExporter{fileName: fileName}
}

// Write serializes a single table as a one-sheet workbook
func (e *ExcelExporter) Write(table *model.Table, w io.Writer) error {
	f := excelize.NewFile()
	defer f.Close()

	styler, err := NewStyler(f)
	if err != nil {
		return err
	}
	if err := e.writeSheet(f, styler, "Sheet1", table); err != nil {
		return err
	}

	_, err = f.WriteTo(w)
	return err
}

// Export writes every table of result into <dir>/<fileName>.xlsx
func (e *ExcelExporter) Export(result *extractor.Result, dir string) ([]string, error) {
	if result.Len() == 0 {
		logger.Warn("No tables to write, skipping %s.xlsx", e.fileName)
		return nil, nil
	}
	if err := os.MkdirAll(dir, 0755); err != nil {
		return nil, fmt.Errorf("failed to create output directory: %w", err)
	}

	f := excelize.NewFile()
	defer f.Close()

	styler, err := NewStyler(f)
	if err != nil {
		return nil, err
	}

	for _, sheet := range result.Sheets() {
		table, _ := result.Table(sheet)
		if _, err := f.NewSheet(sheet); err != nil {
			return nil, fmt.Errorf("failed to create sheet %s: %w", sheet, err)
		}
		if err := e.writeSheet(f, styler, sheet, table); err != nil {
			return nil, err
		}
	}

	// Remove default "Sheet1"
	if idx, err := f.GetSheetIndex("Sheet1"); err == nil && idx != -1 {
		f.DeleteSheet("Sheet1")
	}

	path := filepath.Join(dir, e.fileName+".xlsx")
	if err := f.SaveAs(path); err != nil {
		return nil, fmt.Errorf("failed to save %s: %w", path, err)
	}
	logger.Debug("Wrote %d sheets to %s", result.Len(), path)

	return []string{path}, nil
}

func (e *ExcelExporter) writeSheet(f *excelize.File, s *Styler, sheet string, table *model.Table) error {
	if err := e.writeRow(f, sheet, 1, table.Columns(), s.HeaderStyle); err != nil {
		return err
	}

	for i := 0; i < table.Len(); i++ {
		row := i + 2
		for j, c := range table.Record(i) {
			cell, err := excelize.CoordinatesToCellName(j+1, row)
			if err != nil {
				return err
			}

			style := s.DefaultStyle
			var value interface{} = c.Value
			if n, ok := c.Float(); ok {
				value = n
				style = s.NumberStyle
			}
			if c.IsEmpty() {
				value = nil
			}

			if err := f.SetCellValue(sheet, cell, value); err != nil {
				return fmt.Errorf("failed to write %s!%s: %w", sheet, cell, err)
			}
			if err := f.SetCellStyle(sheet, cell, cell, style); err != nil {
				return fmt.Errorf("failed to style %s!%s: %w", sheet, cell, err)
			}
		}
	}

	if table.Width() > 0 {
		last, err := excelize.ColumnNumberToName(table.Width())
		if err != nil {
			return err
		}
		if err := f.SetColWidth(sheet, "A", last, 18); err != nil {
			return fmt.Errorf("failed to size columns of %s: %w", sheet, err)
		}
		if err := f.SetPanes(sheet, &excelize.Panes{Freeze: true, YSplit: 1, TopLeftCell: "A2", ActivePane: "bottomLeft"}); err != nil {
			return fmt.Errorf("failed to freeze header of %s: %w", sheet, err)
		}
	}
	return nil
}

func (e *ExcelExporter) writeRow(f *excelize.File, sheet string, row int, values []string, style int) error {
	for i, val := range values {
		cell, err := excelize.CoordinatesToCellName(i+1, row)
		if err != nil {
			return err
		}
		if err := f.SetCellValue(sheet, cell, val); err != nil {
			return fmt.Errorf("failed to write %s!%s: %w", sheet, cell, err)
		}
		if err := f.SetCellStyle(sheet, cell, cell, style); err != nil {
			return fmt.Errorf("failed to style %s!%s: %w", sheet, cell, err)
		}
	}
	return nil
}
