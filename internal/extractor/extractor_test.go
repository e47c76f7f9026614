package extractor

import (
	"errors"
	"testing"

	"fuel-sheets/internal/model"
)

// fillerRows returns n title/notes rows preceding a header
func fillerRows(n int) []model.RawRow {
	rows := make([]model.RawRow, n)
	for i := range rows {
		rows[i] = model.TextRow("title row")
	}
	return rows
}

func sheetRows(offset int, header model.RawRow, data ...model.RawRow) *model.SliceIterator {
	rows := append(fillerRows(offset), header)
	rows = append(rows, data...)
	return model.NewSliceIterator(rows)
}

func TestExtractHeaderOnly(t *testing.T) {
	for _, spec := range Specs {
		t.Run(spec.Name, func(t *testing.T) {
			header := model.TextRow("A", "B", "C", "D")
			table, err := New(spec).Extract(sheetRows(spec.HeaderOffset, header))
			if err != nil {
				t.Fatalf("Extract failed: %v", err)
			}
			if table.Len() != 0 {
				t.Errorf("Len() = %d, expected 0", table.Len())
			}

			expected := []string{"A", "B", "C", "D"}
			if spec.Policy.Kind == PolicyDropTrailingColumns {
				expected = expected[:len(expected)-spec.Policy.N]
			}
			assertColumns(t, table, expected)
		})
	}
}

func TestExtractMalformedSheet(t *testing.T) {
	for _, spec := range Specs {
		t.Run(spec.Name, func(t *testing.T) {
			for n := 0; n <= spec.HeaderOffset; n++ {
				_, err := New(spec).Extract(model.NewSliceIterator(fillerRows(n)))
				if !errors.Is(err, ErrMalformedSheet) {
					t.Fatalf("%d rows: expected ErrMalformedSheet, got %v", n, err)
				}

				var sheetErr *SheetError
				if !errors.As(err, &sheetErr) || sheetErr.Sheet != spec.Name {
					t.Errorf("%d rows: expected SheetError for %q, got %v", n, spec.Name, err)
				}
			}
		})
	}
}

func TestExtractDataSheet(t *testing.T) {
	spec, _ := LookupSpec(SheetData)
	rows := sheetRows(spec.HeaderOffset,
		model.TextRow("Date", "Price"),
		model.RawRow{model.Date("2020-01-01"), model.Number("1.10")},
		model.RawRow{model.Date("2020-01-02"), model.Number("1.12")},
	)

	table, err := New(spec).Extract(rows)
	if err != nil {
		t.Fatalf("Extract failed: %v", err)
	}

	assertColumns(t, table, []string{"Date", "Price"})
	if table.Len() != 2 {
		t.Fatalf("Len() = %d, expected 2", table.Len())
	}
	if got := table.Record(0)[1].Value; got != "1.10" {
		t.Errorf("Record(0)[1] = %q, expected 1.10", got)
	}
	if got := table.Record(1)[0].Value; got != "2020-01-02" {
		t.Errorf("Record(1)[0] = %q, expected 2020-01-02", got)
	}
}

func TestExtractPadsShortRows(t *testing.T) {
	spec, _ := LookupSpec(SheetStockData)
	rows := sheetRows(spec.HeaderOffset,
		model.TextRow("Date", "Petrol", "Diesel"),
		model.TextRow("2020-01-01"),
		model.TextRow(),
		model.TextRow("2020-01-02", "1", "2", "extra"),
	)

	table, err := New(spec).Extract(rows)
	if err != nil {
		t.Fatalf("Extract failed: %v", err)
	}
	if table.Len() != 3 {
		t.Fatalf("Len() = %d, expected 3", table.Len())
	}
	for i, rec := range table.Records() {
		if len(rec) != 3 {
			t.Errorf("record %d has %d cells, expected 3", i, len(rec))
		}
	}
	if !table.Record(0)[2].IsEmpty() {
		t.Error("missing trailing value should be empty")
	}
}

func TestExtractTrimsTrailingBlankRows(t *testing.T) {
	for _, spec := range Specs {
		t.Run(spec.Name, func(t *testing.T) {
			table, err := New(spec).Extract(sheetRows(spec.HeaderOffset,
				model.TextRow("A", "B", "C", "D"),
				model.TextRow(),
				model.TextRow("", "", "", ""),
				model.TextRow("", "", "", "", "beyond header"),
			))
			if err != nil {
				t.Fatalf("Extract failed: %v", err)
			}
			if table.Len() != 0 {
				t.Errorf("Len() = %d, expected 0", table.Len())
			}
		})
	}
}

func TestExtractDataKeepsInteriorBlankRows(t *testing.T) {
	spec, _ := LookupSpec(SheetData)
	rows := sheetRows(spec.HeaderOffset,
		model.TextRow("Date", "Price"),
		model.TextRow("2020-01-01", "1.10"),
		model.TextRow(),
		model.TextRow("2020-01-03", "1.30"),
		model.TextRow(),
		model.TextRow("", ""),
	)

	table, err := New(spec).Extract(rows)
	if err != nil {
		t.Fatalf("Extract failed: %v", err)
	}
	if table.Len() != 3 {
		t.Fatalf("Len() = %d, expected 3", table.Len())
	}
	if got := model.RawRow(table.Record(1)).Strings(); got[0] != "" || got[1] != "" {
		t.Errorf("Record(1) = %v, expected blank", got)
	}
	if got := table.Record(2)[0].Value; got != "2020-01-03" {
		t.Errorf("Record(2)[0] = %q, expected 2020-01-03", got)
	}
}

func TestExtractMainTableKeepsRowsBlankAfterTrim(t *testing.T) {
	spec, _ := LookupSpec(SheetMainTable)
	rows := sheetRows(spec.HeaderOffset,
		model.TextRow("Fuel", "Price", "Change", "Change %"),
		model.TextRow("Petrol", "1.50", "8", "+1%"),
		model.TextRow("", "", "9", "+1%"),
	)

	table, err := New(spec).Extract(rows)
	if err != nil {
		t.Fatalf("Extract failed: %v", err)
	}
	if table.Len() != 2 {
		t.Fatalf("Len() = %d, expected 2", table.Len())
	}
	if rec := table.Record(1); len(rec) != 2 || !rec[0].IsEmpty() || !rec[1].IsEmpty() {
		t.Errorf("Record(1) = %v, expected two empty cells", model.RawRow(rec).Strings())
	}
}

func TestExtractTypicalLevelsDropsIncompleteRows(t *testing.T) {
	spec, _ := LookupSpec(SheetTypicalLevels)
	rows := sheetRows(spec.HeaderOffset,
		model.TextRow("Region", "Petrol", "Diesel"),
		model.TextRow("North", "10", "11"),
		model.TextRow(),
		model.TextRow("South", "", "12"),
		model.TextRow("East", "13"),
		model.TextRow("West", "14", "15"),
	)

	table, err := New(spec).Extract(rows)
	if err != nil {
		t.Fatalf("Extract failed: %v", err)
	}

	if table.Len() != 2 {
		t.Fatalf("Len() = %d, expected 2", table.Len())
	}
	for i, rec := range table.Records() {
		for j, c := range rec {
			if c.IsEmpty() {
				t.Errorf("record %d column %d is empty", i, j)
			}
		}
	}
	if got := model.RawRow(table.Record(0)).Strings(); got[0] != "North" || got[1] != "10" || got[2] != "11" {
		t.Errorf("complete record changed: %v", got)
	}
	if got := table.Record(1)[0].Value; got != "West" {
		t.Errorf("Record(1)[0] = %q, expected West", got)
	}
}

func TestExtractMainTableDropsTrailingColumns(t *testing.T) {
	spec, _ := LookupSpec(SheetMainTable)

	for width := 2; width <= 6; width++ {
		header := make([]string, width)
		data := make([]string, width)
		for i := range header {
			header[i] = string(rune('A' + i))
			data[i] = "v"
		}

		table, err := New(spec).Extract(sheetRows(spec.HeaderOffset,
			model.TextRow(header...),
			model.TextRow(data...),
			model.TextRow(data...),
		))
		if err != nil {
			t.Fatalf("width %d: Extract failed: %v", width, err)
		}

		if table.Width() != width-2 {
			t.Errorf("width %d: header has %d columns, expected %d", width, table.Width(), width-2)
		}
		for i, rec := range table.Records() {
			if len(rec) != width-2 {
				t.Errorf("width %d: record %d has %d cells, expected %d", width, i, len(rec), width-2)
			}
		}
		assertColumns(t, table, header[:width-2])
	}
}

func TestExtractMainTableNarrowHeader(t *testing.T) {
	spec, _ := LookupSpec(SheetMainTable)
	table, err := New(spec).Extract(sheetRows(spec.HeaderOffset, model.TextRow("A"), model.TextRow("1")))
	if err != nil {
		t.Fatalf("Extract failed: %v", err)
	}
	if table.Width() != 0 {
		t.Errorf("Width() = %d, expected 0", table.Width())
	}
}

func TestExtractKeepsDuplicateAndEmptyHeaders(t *testing.T) {
	spec, _ := LookupSpec(SheetData)
	table, err := New(spec).Extract(sheetRows(spec.HeaderOffset,
		model.TextRow("Price", "", "Price"),
		model.TextRow("1", "2", "3"),
	))
	if err != nil {
		t.Fatalf("Extract failed: %v", err)
	}
	assertColumns(t, table, []string{"Price", "", "Price"})
}

func TestExtractIsIdempotent(t *testing.T) {
	for _, spec := range Specs {
		t.Run(spec.Name, func(t *testing.T) {
			build := func() *model.SliceIterator {
				return sheetRows(spec.HeaderOffset,
					model.TextRow("A", "B", "C", "D"),
					model.TextRow("1", "2", "3", "4"),
					model.TextRow("5", "", "7"),
				)
			}

			ext := New(spec)
			first, err := ext.Extract(build())
			if err != nil {
				t.Fatalf("first Extract failed: %v", err)
			}
			second, err := ext.Extract(build())
			if err != nil {
				t.Fatalf("second Extract failed: %v", err)
			}
			if !first.Equal(second) {
				t.Error("repeated extraction produced different tables")
			}
		})
	}
}

func TestSpecsLayout(t *testing.T) {
	tests := []struct {
		name   string
		offset int
		policy string
	}{
		{SheetData, 6, "none"},
		{SheetTypicalLevels, 8, "drop-rows-with-any-empty-value"},
		{SheetStockData, 6, "none"},
		{SheetMainTable, 7, "drop-trailing-2-columns"},
	}

	for _, tt := range tests {
		spec, ok := LookupSpec(tt.name)
		if !ok {
			t.Errorf("no spec for %q", tt.name)
			continue
		}
		if spec.HeaderOffset != tt.offset {
			t.Errorf("%s: offset = %d, expected %d", tt.name, spec.HeaderOffset, tt.offset)
		}
		if spec.Policy.String() != tt.policy {
			t.Errorf("%s: policy = %s, expected %s", tt.name, spec.Policy, tt.policy)
		}
	}

	if _, ok := LookupSpec("data"); ok {
		t.Error("LookupSpec should be case-sensitive")
	}
}

func assertColumns(t *testing.T, table *model.Table, expected []string) {
	t.Helper()
	got := table.Columns()
	if len(got) != len(expected) {
		t.Fatalf("Columns() = %v, expected %v", got, expected)
	}
	for i := range got {
		if got[i] != expected[i] {
			t.Errorf("Columns()[%d] = %q, expected %q", i, got[i], expected[i])
		}
	}
}
