package model

// RowIterator is a finite, single-pass sequence of raw rows.
//
// Usage follows the bufio.Scanner shape:
//
//	for it.Next() {
//	    row := it.Row()
//	}
//	if err := it.Err(); err != nil { ... }
type RowIterator interface {
	Next() bool
	Row() RawRow
	Err() error
	Close() error
}

// SliceIterator iterates over rows held in memory
type SliceIterator struct {
	rows []RawRow
	pos  int
}

// NewSliceIterator creates an iterator over rows
func NewSliceIterator(rows []RawRow) *SliceIterator {
	return &SliceIterator{rows: rows, pos: -1}
}

// Next advances to the next row
func (it *SliceIterator) Next() bool {
	if it.pos+1 >= len(it.rows) {
		it.pos = len(it.rows)
		return false
	}
	it.pos++
	return true
}

// Row returns the current row
func (it *SliceIterator) Row() RawRow {
	if it.pos < 0 || it.pos >= len(it.rows) {
		return nil
	}
	return it.rows[it.pos]
}

// Err always returns nil
func (it *SliceIterator) Err() error { return nil }

// Close is a no-op
func (it *SliceIterator) Close() error { return nil }
