package exporter

import (
	"encoding/csv"
	"fmt"
	"io"
	"os"
	"path/filepath"

	"fuel-sheets/internal/extractor"
	"fuel-sheets/internal/logger"
	"fuel-sheets/internal/model"

	"golang.org/x/text/encoding"
	"golang.org/x/text/encoding/htmlindex"
	"golang.org/x/text/transform"
)

// CSVExporter writes one delimited text file per table: a header line of
// column names followed by one line per record. Empty cells become empty
// fields and no index column is written.
type CSVExporter struct {
	delimiter rune
	encoding  encoding.Encoding // nil means UTF-8 passthrough
}

// NewCSVExporter creates a comma-separated UTF-8 exporter
func NewCSVExporter() *CSVExporter {
	return &CSVExporter{delimiter: ','}
}

// NewCSVExporterWith creates an exporter with a custom delimiter and text
// encoding label (any WHATWG label such as "utf-8" or "windows-1252")
func NewCSVExporterWith(delimiter rune, encodingLabel string) (*CSVExporter, error) {
	e := &CSVExporter{delimiter: delimiter}

	enc, err := htmlindex.Get(encodingLabel)
	if err != nil {
		return nil, fmt.Errorf("unknown encoding %q: %w", encodingLabel, err)
	}
	if name, _ := htmlindex.Name(enc); name != "utf-8" {
		e.encoding = enc
	}

	return e, nil
}

// Write serializes table to w
func (e *CSVExporter) Write(table *model.Table, w io.Writer) error {
	var encoder *transform.Writer
	if e.encoding != nil {
		encoder = transform.NewWriter(w, encoding.ReplaceUnsupported(e.encoding.NewEncoder()))
		w = encoder
	}

	cw := csv.NewWriter(w)
	cw.Comma = e.delimiter

	if err := cw.Write(table.Columns()); err != nil {
		return fmt.Errorf("failed to write header: %w", err)
	}

	fields := make([]string, table.Width())
	for i := 0; i < table.Len(); i++ {
		for j, c := range table.Record(i) {
			fields[j] = c.Value
		}
		if err := cw.Write(fields); err != nil {
			return fmt.Errorf("failed to write record %d: %w", i, err)
		}
	}

	cw.Flush()
	if err := cw.Error(); err != nil {
		return fmt.Errorf("failed to flush csv: %w", err)
	}

	if encoder != nil {
		if err := encoder.Close(); err != nil {
			return fmt.Errorf("failed to encode output: %w", err)
		}
	}
	return nil
}

// WriteFile serializes table to the file at path
func (e *CSVExporter) WriteFile(table *model.Table, path string) (err error) {
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("failed to create %s: %w", path, err)
	}
	defer func() {
		if cerr := f.Close(); cerr != nil && err == nil {
			err = fmt.Errorf("failed to close %s: %w", path, cerr)
		}
	}()

	return e.Write(table, f)
}

// Export writes each table of result to <dir>/<sheet>.csv, creating dir if needed
func (e *CSVExporter) Export(result *extractor.Result, dir string) ([]string, error) {
	if _, err := os.Stat(dir); os.IsNotExist(err) {
		logger.Info("Creating output dir")
	}
	if err := os.MkdirAll(dir, 0755); err != nil {
		return nil, fmt.Errorf("failed to create output directory: %w", err)
	}

	logger.Info("Write data to csv files into `%s` dir", dir)

	var written []string
	for _, sheet := range result.Sheets() {
		table, _ := result.Table(sheet)
		path := filepath.Join(dir, sheet+".csv")

		if err := e.WriteFile(table, path); err != nil {
			return written, err
		}
		logger.Debug("Wrote %d records to %s", table.Len(), path)

		written = append(written, path)
	}

	return written, nil
}
