package workbook

import (
	"bytes"
	"fmt"
	"io"
	"strconv"
	"strings"
	"time"

	"fuel-sheets/internal/model"

	"github.com/xuri/excelize/v2"
)

// Workbook is a loaded spreadsheet. Cell values are read as displayed,
// with formulas resolved to the results cached in the file.
type Workbook struct {
	file   *excelize.File
	sheets []string
}

// Load parses workbook bytes
func Load(data []byte) (*Workbook, error) {
	return Read(bytes.NewReader(data))
}

// Read parses a workbook from r
func Read(r io.Reader) (*Workbook, error) {
	f, err := excelize.OpenReader(r)
	if err != nil {
		return nil, fmt.Errorf("failed to open workbook: %w", err)
	}
	return &Workbook{file: f, sheets: f.GetSheetList()}, nil
}

// Open parses the workbook at path
func Open(path string) (*Workbook, error) {
	f, err := excelize.OpenFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to open workbook %s: %w", path, err)
	}
	return &Workbook{file: f, sheets: f.GetSheetList()}, nil
}

// Close releases the underlying file
func (w *Workbook) Close() error {
	return w.file.Close()
}

// SheetNames returns the sheet names in workbook order
func (w *Workbook) SheetNames() []string {
	out := make([]string, len(w.sheets))
	copy(out, w.sheets)
	return out
}

// HasSheet reports whether a sheet with exactly this name exists.
// excelize resolves names case-insensitively, so the list is compared directly.
func (w *Workbook) HasSheet(name string) bool {
	for _, s := range w.sheets {
		if s == name {
			return true
		}
	}
	return false
}

// Sheet returns the cell grid of a sheet
func (w *Workbook) Sheet(name string) (*CellGrid, error) {
	if !w.HasSheet(name) {
		return nil, fmt.Errorf("workbook has no sheet %q", name)
	}
	return &CellGrid{file: w.file, sheet: name}, nil
}

// Rows opens a lazy row iterator over a sheet
func (w *Workbook) Rows(name string) (model.RowIterator, error) {
	grid, err := w.Sheet(name)
	if err != nil {
		return nil, err
	}
	rows, err := grid.Rows()
	if err != nil {
		return nil, err
	}
	return rows, nil
}

// CellGrid is the raw row/column view of one sheet
type CellGrid struct {
	file  *excelize.File
	sheet string
}

// Name returns the sheet name
func (g *CellGrid) Name() string {
	return g.sheet
}

// Rows returns a single-pass iterator over the sheet's rows.
// Rows missing from the file are yielded as empty rows.
func (g *CellGrid) Rows() (*RowIterator, error) {
	rows, err := g.file.Rows(g.sheet)
	if err != nil {
		return nil, fmt.Errorf("failed to read rows of %s: %w", g.sheet, err)
	}
	return &RowIterator{file: g.file, sheet: g.sheet, rows: rows}, nil
}

// RowIterator streams rows of a sheet
type RowIterator struct {
	file    *excelize.File
	sheet   string
	rows    *excelize.Rows
	rowNum  int // 1-based index of the current row
	current model.RawRow
	err     error
}

// Next advances to the next row
func (it *RowIterator) Next() bool {
	if it.err != nil || !it.rows.Next() {
		return false
	}
	it.rowNum++

	cols, err := it.rows.Columns()
	if err != nil {
		it.err = fmt.Errorf("row %d: %w", it.rowNum, err)
		return false
	}

	row, err := it.convert(cols)
	if err != nil {
		it.err = err
		return false
	}
	it.current = row
	return true
}

// Row returns the current row
func (it *RowIterator) Row() model.RawRow {
	return it.current
}

// Err returns the first error met while iterating
func (it *RowIterator) Err() error {
	if it.err != nil {
		return it.err
	}
	return it.rows.Error()
}

// Close releases the iterator
func (it *RowIterator) Close() error {
	return it.rows.Close()
}

func (it *RowIterator) convert(cols []string) (model.RawRow, error) {
	row := make(model.RawRow, len(cols))
	for i, value := range cols {
		if value == "" {
			continue
		}

		cellName, err := excelize.CoordinatesToCellName(i+1, it.rowNum)
		if err != nil {
			return nil, err
		}
		typ, err := it.file.GetCellType(it.sheet, cellName)
		if err != nil {
			return nil, fmt.Errorf("cell %s: %w", cellName, err)
		}
		row[i] = classify(typ, value)
	}
	return row, nil
}

// dateLayouts are the renderings excelize produces for common date number formats
var dateLayouts = []string{
	"2006-01-02",
	"2006-01-02 15:04:05",
	"2006-01-02 15:04",
	"01-02-06",
	"1-2-06",
	"1/2/06 15:04",
	"1/2/06",
	"1/2/2006",
	"02/01/2006",
	"2-Jan-06",
	"02-Jan-06",
	"02-Jan-2006",
	"Jan-06",
	"02 Jan 2006",
	"2 January 2006",
	"January 2006",
}

func classify(typ excelize.CellType, value string) model.Cell {
	switch typ {
	case excelize.CellTypeDate:
		return model.Date(value)
	case excelize.CellTypeUnset, excelize.CellTypeNumber:
		if isNumeric(value) {
			return model.Number(value)
		}
		if looksLikeDate(value) {
			return model.Date(value)
		}
		return model.Text(value)
	default:
		return model.Text(value)
	}
}

var numericNoise = strings.NewReplacer(",", "", "%", "", " ", "")

func isNumeric(value string) bool {
	_, err := strconv.ParseFloat(numericNoise.Replace(value), 64)
	return err == nil
}

func looksLikeDate(value string) bool {
	for _, layout := range dateLayouts {
		if _, err := time.Parse(layout, value); err == nil {
			return true
		}
	}
	return false
}
