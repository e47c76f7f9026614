package exporter

import (
	"bytes"
	"os"
	"path/filepath"
	"testing"

	"fuel-sheets/internal/extractor"
	"fuel-sheets/internal/logger"
	"fuel-sheets/internal/model"
)

type memoryWorkbook map[string][]model.RawRow

func (w memoryWorkbook) HasSheet(name string) bool {
	_, ok := w[name]
	return ok
}

func (w memoryWorkbook) Rows(name string) (model.RowIterator, error) {
	return model.NewSliceIterator(w[name]), nil
}

func dataSheet(data ...model.RawRow) []model.RawRow {
	rows := make([]model.RawRow, 6)
	for i := range rows {
		rows[i] = model.TextRow("Average road fuel sales")
	}
	rows = append(rows, model.TextRow("Date", "Price"))
	return append(rows, data...)
}

func extractData(t *testing.T, wb memoryWorkbook) *extractor.Result {
	t.Helper()
	spec, _ := extractor.LookupSpec(extractor.SheetData)
	d := extractor.NewDispatcherWithRegistry(
		[]extractor.Registration{{Sheet: spec.Name, Extractor: extractor.New(spec)}},
		logger.Discard(),
	)
	result, err := d.ExtractAll(wb)
	if err != nil {
		t.Fatalf("ExtractAll failed: %v", err)
	}
	return result
}

func TestWriteDataSheet(t *testing.T) {
	result := extractData(t, memoryWorkbook{
		extractor.SheetData: dataSheet(
			model.RawRow{model.Date("2020-01-01"), model.Number("1.10")},
			model.RawRow{model.Date("2020-01-02"), model.Number("1.12")},
		),
	})

	table, ok := result.Table(extractor.SheetData)
	if !ok {
		t.Fatal("Data sheet missing from result")
	}

	buf := &bytes.Buffer{}
	if err := NewCSVExporter().Write(table, buf); err != nil {
		t.Fatalf("Write failed: %v", err)
	}

	expected := "Date,Price\n2020-01-01,1.10\n2020-01-02,1.12\n"
	if buf.String() != expected {
		t.Errorf("output = %q, expected %q", buf.String(), expected)
	}
}

func TestWriteEmptyCellsAndQuoting(t *testing.T) {
	table := model.NewTable(
		[]string{"Region", "Note", ""},
		[][]model.Cell{
			model.TextRow("North", "", "x"),
			model.TextRow("South, East", `say "hi"`),
		},
	)

	buf := &bytes.Buffer{}
	if err := NewCSVExporter().Write(table, buf); err != nil {
		t.Fatalf("Write failed: %v", err)
	}

	expected := "Region,Note,\nNorth,,x\n\"South, East\",\"say \"\"hi\"\"\",\n"
	if buf.String() != expected {
		t.Errorf("output = %q, expected %q", buf.String(), expected)
	}
}

func TestWriteWithDelimiterAndEncoding(t *testing.T) {
	table := model.NewTable([]string{"Café", "£"}, [][]model.Cell{model.TextRow("1", "2")})

	exp, err := NewCSVExporterWith(';', "windows-1252")
	if err != nil {
		t.Fatalf("NewCSVExporterWith failed: %v", err)
	}

	buf := &bytes.Buffer{}
	if err := exp.Write(table, buf); err != nil {
		t.Fatalf("Write failed: %v", err)
	}

	expected := []byte("Caf\xe9;\xa3\n1;2\n")
	if !bytes.Equal(buf.Bytes(), expected) {
		t.Errorf("output = %q, expected %q", buf.Bytes(), expected)
	}
}

func TestNewCSVExporterWithUnknownEncoding(t *testing.T) {
	if _, err := NewCSVExporterWith(',', "klingon"); err == nil {
		t.Error("expected error for unknown encoding")
	}
}

func TestExportCreatesDirectory(t *testing.T) {
	result := extractData(t, memoryWorkbook{
		extractor.SheetData: dataSheet(model.TextRow("2020-01-01", "1.10")),
	})

	dir := filepath.Join(t.TempDir(), "nested", "exported_data")
	paths, err := NewCSVExporter().Export(result, dir)
	if err != nil {
		t.Fatalf("Export failed: %v", err)
	}

	expectedPath := filepath.Join(dir, "Data.csv")
	if len(paths) != 1 || paths[0] != expectedPath {
		t.Fatalf("Export() = %v, expected [%s]", paths, expectedPath)
	}

	content, err := os.ReadFile(expectedPath)
	if err != nil {
		t.Fatalf("Failed to read output: %v", err)
	}
	if string(content) != "Date,Price\n2020-01-01,1.10\n" {
		t.Errorf("file content = %q", content)
	}
}

func TestExportSkipsOmittedSheets(t *testing.T) {
	result := extractData(t, memoryWorkbook{extractor.SheetData: dataSheet()})
	if result.Len() != 0 {
		t.Fatalf("expected empty result, got %d tables", result.Len())
	}

	dir := t.TempDir()
	paths, err := NewCSVExporter().Export(result, dir)
	if err != nil {
		t.Fatalf("Export failed: %v", err)
	}
	if len(paths) != 0 {
		t.Errorf("expected no files, got %v", paths)
	}
	if _, err := os.Stat(filepath.Join(dir, "Data.csv")); !os.IsNotExist(err) {
		t.Error("omitted sheet should not be written")
	}
}
