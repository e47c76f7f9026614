package model

// Table is the cleaned, column-aligned output of a sheet extraction.
// Every record has exactly one cell per column. A Table is not modified
// after construction.
type Table struct {
	columns []string
	records [][]Cell
}

// NewTable builds a table from column names and records.
// Records shorter than the column list are padded with empty cells,
// longer ones are truncated.
func NewTable(columns []string, records [][]Cell) *Table {
	cols := make([]string, len(columns))
	copy(cols, columns)

	aligned := make([][]Cell, 0, len(records))
	for _, rec := range records {
		aligned = append(aligned, Align(rec, len(cols)))
	}

	return &Table{columns: cols, records: aligned}
}

// Align returns a copy of cells with exactly width entries
func Align(cells []Cell, width int) []Cell {
	out := make([]Cell, width)
	copy(out, cells)
	return out
}

// Columns returns a copy of the column names in header order
func (t *Table) Columns() []string {
	out := make([]string, len(t.columns))
	copy(out, t.columns)
	return out
}

// Width returns the number of columns
func (t *Table) Width() int {
	return len(t.columns)
}

// Len returns the number of records
func (t *Table) Len() int {
	return len(t.records)
}

// IsEmpty reports whether the table has no records
func (t *Table) IsEmpty() bool {
	return len(t.records) == 0
}

// Record returns a copy of the i-th record
func (t *Table) Record(i int) []Cell {
	out := make([]Cell, len(t.records[i]))
	copy(out, t.records[i])
	return out
}

// Records returns a copy of all records in order
func (t *Table) Records() [][]Cell {
	out := make([][]Cell, len(t.records))
	for i := range t.records {
		out[i] = t.Record(i)
	}
	return out
}

// Equal reports whether both tables hold the same columns and records
func (t *Table) Equal(other *Table) bool {
	if other == nil || len(t.columns) != len(other.columns) || len(t.records) != len(other.records) {
		return false
	}
	for i := range t.columns {
		if t.columns[i] != other.columns[i] {
			return false
		}
	}
	for i := range t.records {
		for j := range t.records[i] {
			if t.records[i][j] != other.records[i][j] {
				return false
			}
		}
	}
	return true
}
