package model

import "strconv"

// CellKind is the type of a raw cell value as reported by the workbook reader
type CellKind int

const (
	CellEmpty CellKind = iota
	CellText
	CellNumber
	CellDate
)

// String returns the string representation of the cell kind
func (k CellKind) String() string {
	switch k {
	case CellEmpty:
		return "empty"
	case CellText:
		return "text"
	case CellNumber:
		return "number"
	case CellDate:
		return "date"
	default:
		return "unknown"
	}
}

// Cell is one raw value of a sheet.
// Value holds the displayed text of the cell (formulas already resolved to
// their cached result), so numbers keep the precision shown in the workbook.
type Cell struct {
	Kind  CellKind
	Value string
}

// Empty returns an empty cell
func Empty() Cell { return Cell{} }

// Text returns a text cell; an empty string yields an empty cell
func Text(s string) Cell {
	if s == "" {
		return Empty()
	}
	return Cell{Kind: CellText, Value: s}
}

// Number returns a numeric cell holding its displayed text
func Number(s string) Cell {
	if s == "" {
		return Empty()
	}
	return Cell{Kind: CellNumber, Value: s}
}

// Date returns a date cell holding its displayed text
func Date(s string) Cell {
	if s == "" {
		return Empty()
	}
	return Cell{Kind: CellDate, Value: s}
}

// IsEmpty reports whether the cell carries no value
func (c Cell) IsEmpty() bool {
	return c.Kind == CellEmpty
}

// Float parses a numeric cell
func (c Cell) Float() (float64, bool) {
	if c.Kind != CellNumber {
		return 0, false
	}
	f, err := strconv.ParseFloat(c.Value, 64)
	if err != nil {
		return 0, false
	}
	return f, true
}

func (c Cell) String() string {
	return c.Value
}

// RawRow is an ordered sequence of cells. Its length varies row to row because
// readers usually omit trailing empty cells.
type RawRow []Cell

// TextRow builds a RawRow of text cells, treating "" as an empty cell
func TextRow(values ...string) RawRow {
	row := make(RawRow, len(values))
	for i, v := range values {
		row[i] = Text(v)
	}
	return row
}

// At returns the cell at index i, or an empty cell past the end of the row
func (r RawRow) At(i int) Cell {
	if i < 0 || i >= len(r) {
		return Empty()
	}
	return r[i]
}

// Strings returns the displayed values of the row
func (r RawRow) Strings() []string {
	out := make([]string, len(r))
	for i, c := range r {
		out[i] = c.Value
	}
	return out
}
