package extractor

import (
	"fmt"

	"fuel-sheets/internal/model"
)

// Extractor turns the raw rows of one sheet into a Table
type Extractor interface {
	Extract(rows model.RowIterator) (*model.Table, error)
}

// SheetExtractor applies a SheetSpec. It holds no state between calls.
type SheetExtractor struct {
	spec SheetSpec
}

// New creates an extractor for spec
func New(spec SheetSpec) *SheetExtractor {
	return &SheetExtractor{spec: spec}
}

// Spec returns the rule this extractor applies
func (e *SheetExtractor) Spec() SheetSpec {
	return e.spec
}

// Extract reads rows up to and including the header offset, aligns all
// remaining rows to the header and applies the sheet's policy. The run of
// blank records at the end of the sheet is trimmed before the policy runs;
// blank records between data rows are kept unless the policy removes them.
// It does not close rows.
func (e *SheetExtractor) Extract(rows model.RowIterator) (*model.Table, error) {
	header, err := e.readHeader(rows)
	if err != nil {
		return nil, err
	}

	columns := header.Strings()
	var records [][]model.Cell
	for rows.Next() {
		records = append(records, model.Align(rows.Row(), len(columns)))
	}
	if err := rows.Err(); err != nil {
		return nil, &SheetError{Sheet: e.spec.Name, Op: "read", Err: err}
	}

	columns, records = e.spec.Policy.apply(columns, trimTrailingBlank(records))
	return model.NewTable(columns, records), nil
}

func (e *SheetExtractor) readHeader(rows model.RowIterator) (model.RawRow, error) {
	for i := 0; i <= e.spec.HeaderOffset; i++ {
		if !rows.Next() {
			if err := rows.Err(); err != nil {
				return nil, &SheetError{Sheet: e.spec.Name, Op: "read", Err: err}
			}
			return nil, &SheetError{
				Sheet: e.spec.Name,
				Op:    "header",
				Err:   fmt.Errorf("%w: %d rows, header expected at row index %d", ErrMalformedSheet, i, e.spec.HeaderOffset),
			}
		}
	}
	return rows.Row(), nil
}

func (p Policy) apply(columns []string, records [][]model.Cell) ([]string, [][]model.Cell) {
	switch p.Kind {
	case PolicyDropIncompleteRows:
		kept := records[:0:0]
		for _, rec := range records {
			if isComplete(rec) {
				kept = append(kept, rec)
			}
		}
		return columns, kept

	case PolicyDropTrailingColumns:
		width := len(columns) - p.N
		if width < 0 {
			width = 0
		}
		for i := range records {
			records[i] = records[i][:width]
		}
		return columns[:width], records
	}

	return columns, records
}

func isComplete(rec []model.Cell) bool {
	for _, c := range rec {
		if c.IsEmpty() {
			return false
		}
	}
	return true
}

func trimTrailingBlank(records [][]model.Cell) [][]model.Cell {
	end := len(records)
	for end > 0 && isBlank(records[end-1]) {
		end--
	}
	return records[:end]
}

func isBlank(rec []model.Cell) bool {
	for _, c := range rec {
		if !c.IsEmpty() {
			return false
		}
	}
	return true
}
