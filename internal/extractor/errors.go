package extractor

import (
	"errors"
	"fmt"
)

// ErrSheetNotFound indicates a registered sheet is missing from the workbook.
var ErrSheetNotFound = errors.New("sheet not found")

// ErrMalformedSheet indicates a sheet has no row at its configured header offset.
var ErrMalformedSheet = errors.New("malformed sheet")

// SheetError represents a failure while extracting one sheet.
type SheetError struct {
	Sheet string
	Op    string // "lookup", "open", "header", "read"
	Err   error
}

func (e *SheetError) Error() string {
	return fmt.Sprintf("sheet %q (%s): %v", e.Sheet, e.Op, e.Err)
}

func (e *SheetError) Unwrap() error {
	return e.Err
}
