package extractor

import (
	"fuel-sheets/internal/model"
)

// Logger receives the dispatcher's progress messages
type Logger interface {
	Info(format string, args ...interface{})
	Warn(format string, args ...interface{})
}

// Workbook gives access to the raw rows of named sheets.
// Sheet names are matched exactly.
type Workbook interface {
	HasSheet(name string) bool
	Rows(name string) (model.RowIterator, error)
}

// Registration binds a sheet name to the extractor that handles it
type Registration struct {
	Sheet     string
	Extractor Extractor
}

// DefaultRegistry returns one SheetExtractor per entry of Specs
func DefaultRegistry() []Registration {
	reg := make([]Registration, 0, len(Specs))
	for _, s := range Specs {
		reg = append(reg, Registration{Sheet: s.Name, Extractor: New(s)})
	}
	return reg
}

// Dispatcher runs every registered extractor against one workbook
type Dispatcher struct {
	registry []Registration
	log      Logger

	// OnSheet, if set, is called after each sheet has been extracted
	OnSheet func(sheet string)
}

// NewDispatcher creates a dispatcher over the default registry
func NewDispatcher(log Logger) *Dispatcher {
	return NewDispatcherWithRegistry(DefaultRegistry(), log)
}

// NewDispatcherWithRegistry creates a dispatcher over a custom registry.
// A nil log discards all messages.
func NewDispatcherWithRegistry(registry []Registration, log Logger) *Dispatcher {
	if log == nil {
		log = nopLogger{}
	}
	return &Dispatcher{registry: registry, log: log}
}

type nopLogger struct{}

func (nopLogger) Info(string, ...interface{}) {}
func (nopLogger) Warn(string, ...interface{}) {}

// ExtractAll extracts every registered sheet in registry order.
// Sheets yielding zero records are logged and left out of the result.
// Lookup and extraction failures abort the run and are returned as-is.
func (d *Dispatcher) ExtractAll(wb Workbook) (*Result, error) {
	result := newResult()

	for _, reg := range d.registry {
		d.log.Info("Export values for `%s` sheet", reg.Sheet)

		table, err := d.extractSheet(wb, reg)
		if err != nil {
			return nil, err
		}

		if d.OnSheet != nil {
			d.OnSheet(reg.Sheet)
		}

		if table.IsEmpty() {
			d.log.Warn("Sheet `%s` extracted empty table", reg.Sheet)
			continue
		}
		result.add(reg.Sheet, table)
	}

	return result, nil
}

func (d *Dispatcher) extractSheet(wb Workbook, reg Registration) (*model.Table, error) {
	if !wb.HasSheet(reg.Sheet) {
		return nil, &SheetError{Sheet: reg.Sheet, Op: "lookup", Err: ErrSheetNotFound}
	}

	rows, err := wb.Rows(reg.Sheet)
	if err != nil {
		return nil, &SheetError{Sheet: reg.Sheet, Op: "open", Err: err}
	}
	defer rows.Close()

	return reg.Extractor.Extract(rows)
}

// Result maps sheet names to their extracted tables, in extraction order
type Result struct {
	sheets []string
	tables map[string]*model.Table
}

func newResult() *Result {
	return &Result{tables: make(map[string]*model.Table)}
}

func (r *Result) add(sheet string, table *model.Table) {
	r.sheets = append(r.sheets, sheet)
	r.tables[sheet] = table
}

// Sheets returns the names of the non-empty sheets in extraction order
func (r *Result) Sheets() []string {
	out := make([]string, len(r.sheets))
	copy(out, r.sheets)
	return out
}

// Table returns the table extracted for sheet
func (r *Result) Table(sheet string) (*model.Table, bool) {
	t, ok := r.tables[sheet]
	return t, ok
}

// Len returns the number of tables in the result
func (r *Result) Len() int {
	return len(r.sheets)
}
