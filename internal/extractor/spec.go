package extractor

import "fmt"

// Sheet names of the published road fuel sales workbook
const (
	SheetMainTable     = "Main table"
	SheetTypicalLevels = "Typical levels"
	SheetData          = "Data"
	SheetStockData     = "Stock data"
)

// PolicyKind selects the cleanup applied after rows are aligned to the header
type PolicyKind int

const (
	PolicyNone PolicyKind = iota
	PolicyDropIncompleteRows
	PolicyDropTrailingColumns
)

// Policy is a post-processing rule for one sheet
type Policy struct {
	Kind PolicyKind
	N    int // column count for PolicyDropTrailingColumns
}

// KeepAll keeps every aligned row as-is
func KeepAll() Policy { return Policy{Kind: PolicyNone} }

// DropIncompleteRows discards records holding at least one empty cell
func DropIncompleteRows() Policy { return Policy{Kind: PolicyDropIncompleteRows} }

// DropTrailingColumns removes the last n columns from the header and every record
func DropTrailingColumns(n int) Policy { return Policy{Kind: PolicyDropTrailingColumns, N: n} }

func (p Policy) String() string {
	switch p.Kind {
	case PolicyNone:
		return "none"
	case PolicyDropIncompleteRows:
		return "drop-rows-with-any-empty-value"
	case PolicyDropTrailingColumns:
		return fmt.Sprintf("drop-trailing-%d-columns", p.N)
	default:
		return "unknown"
	}
}

// SheetSpec binds a sheet name to the 0-based index of its header row and
// the cleanup policy applied to its records.
type SheetSpec struct {
	Name         string
	HeaderOffset int
	Policy       Policy
}

// Specs is the layout of the source workbook, in extraction order.
// Offsets are fixed by the published document and are not detected from content.
var Specs = []SheetSpec{
	{Name: SheetMainTable, HeaderOffset: 7, Policy: DropTrailingColumns(2)},
	{Name: SheetTypicalLevels, HeaderOffset: 8, Policy: DropIncompleteRows()},
	{Name: SheetData, HeaderOffset: 6, Policy: KeepAll()},
	{Name: SheetStockData, HeaderOffset: 6, Policy: KeepAll()},
}

// LookupSpec returns the spec registered for a sheet name
func LookupSpec(name string) (SheetSpec, bool) {
	for _, s := range Specs {
		if s.Name == name {
			return s, true
		}
	}
	return SheetSpec{}, false
}
